package board

import (
	"embed"
	"html/template"
	"io"
)

//go:embed templates/*.html
var templateFiles embed.FS

var templates = template.Must(template.ParseFS(templateFiles, "templates/*.html"))

// RenderPage writes the full page: clock, route selector and any boards for the selection.
func RenderPage(w io.Writer, state PageState) error {
	return templates.ExecuteTemplate(w, "page", state)
}

// RenderBoards writes the content of the times container on its own.
func RenderBoards(w io.Writer, state PageState) error {
	return templates.ExecuteTemplate(w, "boards", state)
}

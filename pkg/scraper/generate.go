package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/islandferry/pkg/ferry"
)

// Generate scrapes source and writes the timetable document to output.
func Generate(ctx context.Context, source string, output string, timeout time.Duration) (*ferry.Document, error) {
	root, err := Fetch(ctx, &http.Client{Timeout: timeout}, source)
	if err != nil {
		return nil, err
	}

	document, err := Parse(root)
	if err != nil {
		return nil, err
	}

	if err := write(output, document.Encode); err != nil {
		return nil, err
	}

	log.Info().
		Int("schedules", len(document.Schedules)).
		Str("output", output).
		Msg("Wrote ferry schedule")

	return document, nil
}

// write replaces output atomically: the document goes to a temporary file in the same
// directory, which is renamed over output only once fully written.
func write(output string, encode func(io.Writer) error) error {
	dir := filepath.Dir(output)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	file, err := os.CreateTemp(dir, "."+filepath.Base(output)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(file.Name())

	if err := encode(file); err != nil {
		file.Close()
		return fmt.Errorf("encode %s: %w", output, err)
	}

	if err := file.Close(); err != nil {
		return err
	}

	if err := os.Chmod(file.Name(), 0644); err != nil {
		return err
	}

	return os.Rename(file.Name(), output)
}

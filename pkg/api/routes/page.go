package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/travigo/islandferry/pkg/board"
	"github.com/travigo/islandferry/pkg/ferry"
)

// PageRouter serves the schedule page and the boards fragment it swaps in on route change.
func PageRouter(router fiber.Router, backend *Backend) {
	router.Get("/", backend.getPage)
	router.Get("/departures", backend.getDeparturesFragment)
}

func (b *Backend) getPage(c *fiber.Ctx) error {
	now, err := b.now(c)
	if err != nil {
		return sendError(c, fiber.StatusBadRequest, err.Error())
	}

	document, err := b.document(c)
	if err != nil {
		return sendError(c, fiber.StatusBadGateway, "Could not load the ferry schedule")
	}

	var selected *ferry.Route
	if c.Query("route") != "" {
		route, err := requestedRoute(c)
		if err != nil {
			log.Debug().Err(err).Msg("Ignoring unreadable route on page request")
		} else {
			selected = &route
		}
	}

	state := b.Builder.Page(now, document, selected)

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return board.RenderPage(c, state)
}

func (b *Backend) getDeparturesFragment(c *fiber.Ctx) error {
	route, err := requestedRoute(c)
	if err != nil {
		return sendError(c, fiber.StatusBadRequest, err.Error())
	}

	now, err := b.now(c)
	if err != nil {
		return sendError(c, fiber.StatusBadRequest, err.Error())
	}

	document, err := b.document(c)
	if err != nil {
		return sendError(c, fiber.StatusBadGateway, "Could not load the ferry schedule")
	}

	state := board.PageState{
		Selected: &route,
		Boards:   b.Builder.Boards(now, document, route),
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return board.RenderBoards(c, state)
}

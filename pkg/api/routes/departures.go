package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
	"github.com/travigo/islandferry/pkg/ferry"
)

// APIRouter serves the JSON API.
func APIRouter(router fiber.Router, backend *Backend) {
	router.Get("/version", APIVersion)
	router.Get("/clock", backend.getClock)
	router.Get("/routes", backend.listRoutes)
	router.Get("/departures", backend.getDepartures)
}

func (b *Backend) getClock(c *fiber.Ctx) error {
	now, err := b.now(c)
	if err != nil {
		return sendError(c, fiber.StatusBadRequest, err.Error())
	}

	location := b.Builder.Classifier.Location

	return c.JSON(fiber.Map{
		"time":     ferry.FormatClock(now.In(location)),
		"timezone": location.String(),
	})
}

func (b *Backend) listRoutes(c *fiber.Ctx) error {
	now, err := b.now(c)
	if err != nil {
		return sendError(c, fiber.StatusBadRequest, err.Error())
	}

	document, err := b.document(c)
	if err != nil {
		return sendError(c, fiber.StatusBadGateway, "Could not load the ferry schedule")
	}

	return c.JSON(b.Builder.Routes(now, document))
}

func (b *Backend) getDepartures(c *fiber.Ctx) error {
	var groups []string
	switch c.Query("detail", "basic") {
	case "basic":
		groups = []string{"basic"}
	case "detailed":
		groups = []string{"basic", "detailed"}
	default:
		return sendError(c, fiber.StatusBadRequest, "detail must be basic or detailed")
	}

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

	boardsReduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: groups,
	}, b.Builder.Boards(now, document, route))
	if err != nil {
		return sendError(c, fiber.StatusInternalServerError, "Sheriff could not reduce boards")
	}

	return c.JSON(boardsReduced)
}

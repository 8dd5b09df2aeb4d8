package routes

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/travigo/islandferry/pkg/board"
	"github.com/travigo/islandferry/pkg/ferry"
	"github.com/travigo/islandferry/pkg/schedulesource"
)

// Backend carries what the handlers need to answer a request.
type Backend struct {
	Source  schedulesource.Source
	Builder *board.Builder
	Now     func() time.Time
}

func (b *Backend) now(c *fiber.Ctx) (time.Time, error) {
	at := c.Query("at")
	if at == "" {
		if b.Now != nil {
			return b.Now(), nil
		}
		return time.Now(), nil
	}

	parsed, err := time.Parse(time.RFC3339, at)
	if err != nil {
		return time.Time{}, errors.New("at must be an RFC3339 timestamp")
	}

	return parsed, nil
}

func (b *Backend) document(c *fiber.Ctx) (*ferry.Document, error) {
	document, err := b.Source.Load(c.UserContext())
	if err != nil {
		log.Error().Err(err).Str("source", b.Source.Name()).Msg("Failed to load schedule")
		return nil, err
	}

	return document, nil
}

func sendError(c *fiber.Ctx, status int, message string) error {
	c.Status(status)
	return c.JSON(fiber.Map{
		"error": message,
	})
}

func requestedRoute(c *fiber.Ctx) (ferry.Route, error) {
	key := c.Query("route")
	if key == "" {
		return ferry.Route{}, errors.New("a route must be selected")
	}

	return ferry.ParseRouteKey(key)
}

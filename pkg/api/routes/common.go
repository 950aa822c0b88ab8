package routes

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
	"github.com/travigo/dutyboard/pkg/board"
	"github.com/travigo/dutyboard/pkg/database"
	"github.com/travigo/dutyboard/pkg/query"
)

func responseGroups(c *fiber.Ctx) []string {
	if c.QueryBool("detailed", false) {
		return []string{"basic", "detailed"}
	}

	return []string{"basic"}
}

func sendReduced(c *fiber.Ctx, status int, value any) error {
	reduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: responseGroups(c),
	}, value)
	if err != nil {
		c.Status(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Sheriff could not reduce response",
		})
	}

	return c.Status(status).JSON(reduced)
}

func sendError(c *fiber.Ctx, status int, err error) error {
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func statusCode(status query.Status) int {
	switch status {
	case query.StatusFound:
		return fiber.StatusOK
	case query.StatusNotFound, query.StatusRunUnknown:
		return fiber.StatusNotFound
	case query.StatusWrongService, query.StatusRunUnassigned:
		return fiber.StatusConflict
	default:
		return fiber.StatusBadRequest
	}
}

// withEngine runs the handler against the active database, answering 503 until one is loaded
func withEngine(b *board.Board, handler func(c *fiber.Ctx, engine *query.Engine) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		engine, err := b.Engine()
		if errors.Is(err, database.ErrNotLoaded) {
			return sendError(c, fiber.StatusServiceUnavailable, err)
		}
		if err != nil {
			return sendError(c, fiber.StatusInternalServerError, err)
		}

		return handler(c, engine)
	}
}

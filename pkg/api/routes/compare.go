package routes

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/travigo/dutyboard/pkg/board"
	"github.com/travigo/dutyboard/pkg/database"
)

func CompareRouter(router fiber.Router, b *board.Board) {
	router.Get("/", func(c *fiber.Ctx) error {
		comparison, err := b.Compare(c.Query("a"), c.Query("b"))
		if errors.Is(err, database.ErrNotLoaded) {
			return sendError(c, fiber.StatusServiceUnavailable, err)
		}

		return sendReduced(c, statusCode(comparison.Status), comparison)
	})
}

package routes

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/travigo/dutyboard/pkg/board"
	"github.com/travigo/dutyboard/pkg/dataimporter/manager"
	"github.com/travigo/dutyboard/pkg/query"
)

func StatsRouter(router fiber.Router, b *board.Board) {
	router.Get("/", withEngine(b, getStats))
}

func getStats(c *fiber.Ctx, engine *query.Engine) error {
	db := engine.Database()

	return c.JSON(fiber.Map{
		"stats":    db.Stats(),
		"services": db.Services(),
	})
}

func ReloadRouter(router fiber.Router, b *board.Board) {
	router.Post("/", func(c *fiber.Ctx) error {
		err := b.Load(c.UserContext())

		var loadError *manager.LoadError
		switch {
		case errors.As(err, &loadError):
			c.Status(fiber.StatusUnprocessableEntity)
			return c.JSON(fiber.Map{
				"error":   err.Error(),
				"dataset": loadError.Dataset,
			})
		case err != nil:
			return sendError(c, fiber.StatusUnprocessableEntity, err)
		}

		return c.JSON(fiber.Map{
			"stats": b.Store.Get().Stats(),
		})
	})
}

package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/dutyboard/pkg/board"
	"github.com/travigo/dutyboard/pkg/query"
)

func PhonebookRouter(router fiber.Router, b *board.Board) {
	router.Get("/", withEngine(b, filterPhonebook))
}

func filterPhonebook(c *fiber.Ctx, engine *query.Engine) error {
	return sendReduced(c, fiber.StatusOK, engine.FilterPhonebook(c.Query("q")))
}

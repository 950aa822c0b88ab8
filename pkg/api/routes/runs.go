package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/dutyboard/pkg/board"
	"github.com/travigo/dutyboard/pkg/query"
)

func RunsRouter(router fiber.Router, b *board.Board) {
	router.Get("/:code", withEngine(b, getRun))
}

func getRun(c *fiber.Ctx, engine *query.Engine) error {
	result := engine.ByRun(c.Params("code"), c.Query("service"))

	return sendReduced(c, statusCode(result.Status), result)
}

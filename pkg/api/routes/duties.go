package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/dutyboard/pkg/board"
	"github.com/travigo/dutyboard/pkg/query"
)

func DutiesRouter(router fiber.Router, b *board.Board) {
	router.Get("/:identifier", withEngine(b, getDuty))
}

func getDuty(c *fiber.Ctx, engine *query.Engine) error {
	result := engine.ByDuty(c.Params("identifier"), c.Query("service"))

	return sendReduced(c, statusCode(result.Status), result)
}

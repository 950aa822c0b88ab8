package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/dutyboard/pkg/board"
	"github.com/travigo/dutyboard/pkg/query"
)

func CyclesRouter(router fiber.Router, b *board.Board) {
	router.Get("/", withEngine(b, listCycles))
	router.Get("/:identifier", withEngine(b, getCycle))
}

func listCycles(c *fiber.Ctx, engine *query.Engine) error {
	return c.JSON(engine.Database().Cycles())
}

func getCycle(c *fiber.Ctx, engine *query.Engine) error {
	result := engine.ByCycle(c.Params("identifier"), c.Query("service"))

	return sendReduced(c, statusCode(result.Status), result)
}

package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/dutyboard/pkg/board"
	"github.com/travigo/dutyboard/pkg/query"
)

func StationsRouter(router fiber.Router, b *board.Board) {
	router.Get("/", withEngine(b, listStations))
	router.Get("/:station", withEngine(b, getStation))
}

func listStations(c *fiber.Ctx, engine *query.Engine) error {
	return c.JSON(engine.Database().Stations())
}

func getStation(c *fiber.Ctx, engine *query.Engine) error {
	result := engine.ByStation(c.Params("station"), c.Query("from"), c.Query("to"), c.Query("service"))

	return sendReduced(c, statusCode(result.Status), result)
}

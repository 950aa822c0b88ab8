package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/dutyboard/pkg/board"
	"github.com/travigo/dutyboard/pkg/query"
)

func CrewRouter(router fiber.Router, b *board.Board) {
	router.Get("/", withEngine(b, suggestCrew))
	router.Get("/:member", withEngine(b, getCrewMember))
}

func suggestCrew(c *fiber.Ctx, engine *query.Engine) error {
	suggestions := engine.SuggestCrew(c.Query("q"))
	if suggestions == nil {
		suggestions = []query.CrewSuggestion{}
	}

	return sendReduced(c, fiber.StatusOK, suggestions)
}

func getCrewMember(c *fiber.Ctx, engine *query.Engine) error {
	result := engine.ByCrewMember(c.Params("member"), c.Query("service"))

	return sendReduced(c, statusCode(result.Status), result)
}

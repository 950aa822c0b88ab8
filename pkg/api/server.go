package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/dutyboard/pkg/api/routes"
	"github.com/travigo/dutyboard/pkg/board"
)

func NewApp(b *board.Board) *fiber.App {
	webApp := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})
	webApp.Use(NewLogger())

	group := webApp.Group("/core")

	group.Get("version", routes.APIVersion)

	routes.DutiesRouter(group.Group("/duties"), b)
	routes.RunsRouter(group.Group("/runs"), b)
	routes.CyclesRouter(group.Group("/cycles"), b)
	routes.StationsRouter(group.Group("/stations"), b)

	routes.CrewRouter(group.Group("/crew"), b)
	routes.PhonebookRouter(group.Group("/phonebook"), b)

	routes.CompareRouter(group.Group("/compare"), b)

	routes.AssignmentsRouter(group.Group("/assignments"), b)

	routes.StatsRouter(group.Group("/stats"), b)
	routes.ReloadRouter(group.Group("/reload"), b)

	return webApp
}

func SetupServer(listen string, b *board.Board) error {
	return NewApp(b).Listen(listen)
}

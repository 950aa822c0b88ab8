package routes

import (
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/travigo/dutyboard/pkg/board"
	"github.com/travigo/dutyboard/pkg/database"
	"github.com/travigo/dutyboard/pkg/recognition"
	"github.com/travigo/dutyboard/pkg/trainassign"
)

type assignmentRequest struct {
	Train string `json:"train"`
}

func AssignmentsRouter(router fiber.Router, b *board.Board) {
	router.Get("/", func(c *fiber.Ctx) error {
		return sendReduced(c, fiber.StatusOK, b.Assignments.Snapshot())
	})

	router.Post("/recognize", func(c *fiber.Ctx) error {
		return recognize(c, b)
	})

	router.Get("/:cycle", func(c *fiber.Ctx) error {
		assignment, found := b.Assignments.Lookup(c.Params("cycle"))
		if !found {
			return sendError(c, fiber.StatusNotFound, errors.New("cycle has no train assigned"))
		}

		return sendReduced(c, fiber.StatusOK, assignment)
	})

	router.Put("/:cycle", func(c *fiber.Ctx) error {
		var request assignmentRequest
		if err := c.BodyParser(&request); err != nil {
			return sendError(c, fiber.StatusBadRequest, err)
		}

		err := b.Assignments.Assign(c.Params("cycle"), request.Train)

		var conflict *trainassign.ConflictError
		switch {
		case errors.As(err, &conflict):
			c.Status(fiber.StatusConflict)
			return c.JSON(fiber.Map{
				"error": err.Error(),
				"cycle": conflict.Cycle,
			})
		case err != nil:
			return sendError(c, fiber.StatusBadRequest, err)
		}

		assignment, _ := b.Assignments.Lookup(c.Params("cycle"))
		return sendReduced(c, fiber.StatusOK, assignment)
	})

	router.Delete("/:cycle", func(c *fiber.Ctx) error {
		if !b.Assignments.Remove(c.Params("cycle")) {
			return sendError(c, fiber.StatusNotFound, errors.New("cycle has no train assigned"))
		}

		return c.SendStatus(fiber.StatusNoContent)
	})
}

func recognize(c *fiber.Ctx, b *board.Board) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return sendError(c, fiber.StatusBadRequest, err)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return sendError(c, fiber.StatusBadRequest, err)
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		return sendError(c, fiber.StatusBadRequest, err)
	}

	report, err := b.ApplyRecognized(c.UserContext(), image, fileHeader.Filename)
	switch {
	case errors.Is(err, database.ErrNotLoaded), errors.Is(err, recognition.ErrUnavailable):
		return sendError(c, fiber.StatusServiceUnavailable, err)
	case errors.Is(err, recognition.ErrNoPairs):
		return sendError(c, fiber.StatusUnprocessableEntity, err)
	case err != nil:
		return sendError(c, fiber.StatusBadGateway, err)
	}

	return sendReduced(c, fiber.StatusOK, report)
}

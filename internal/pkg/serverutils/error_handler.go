package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"virtual-lab-be/internal/lab"
)

// ErrorHandlerMiddleware converts errors bubbling out of handlers into
// the standard envelope. Flow violations map to 409, lookups to 404,
// everything unknown to 500.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		code := StatusForError(err)
		return ctx.Status(code).JSON(ErrorResponse(code, err.Error()))
	}
}

// StatusForError maps the flow sentinel errors onto HTTP status codes.
func StatusForError(err error) int {
	switch {
	case errors.Is(err, lab.ErrUnknownSupply),
		errors.Is(err, lab.ErrUnknownAction),
		errors.Is(err, lab.ErrUnknownSubject),
		errors.Is(err, lab.ErrUnknownQuestion),
		errors.Is(err, lab.ErrUnknownOption):
		return fiber.StatusNotFound
	case errors.Is(err, lab.ErrInvalidStep),
		errors.Is(err, lab.ErrActionDone),
		errors.Is(err, lab.ErrSubjectTested),
		errors.Is(err, lab.ErrReactionPending),
		errors.Is(err, lab.ErrQuizLocked):
		return fiber.StatusConflict
	case errors.Is(err, lab.ErrSuppliesMissing),
		errors.Is(err, lab.ErrNoSubject),
		errors.Is(err, lab.ErrObservationsShort),
		errors.Is(err, lab.ErrQuizIncomplete):
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}

package serverutils

import (
	"errors"

	"immoflow-be/internal/entity"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware maps errors bubbling out of handlers onto the
// response envelope. Domain sentinels get their proper status; anything
// unknown becomes an opaque 500.
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

		code := fiber.StatusInternalServerError
		message := "Internal server error"

		switch {
		case errors.Is(err, entity.ErrRequestNotFound):
			code = fiber.StatusNotFound
			message = err.Error()
		case errors.Is(err, entity.ErrDuplicateRequest):
			code = fiber.StatusConflict
			message = err.Error()
		case errors.Is(err, entity.ErrAlreadyProcessed),
			errors.Is(err, entity.ErrInvalidTransition):
			code = fiber.StatusConflict
			message = err.Error()
		case errors.Is(err, entity.ErrPermissionDenied):
			code = fiber.StatusForbidden
			message = err.Error()
		case errors.Is(err, entity.ErrPrerequisitesUnmet):
			code = fiber.StatusUnprocessableEntity
			message = err.Error()
		}

		var uploadErr *entity.DocumentUploadError
		if errors.As(err, &uploadErr) {
			code = fiber.StatusBadGateway
			message = uploadErr.Error()
		}

		return ctx.Status(code).JSON(ErrorResponse(code, message))
	}
}

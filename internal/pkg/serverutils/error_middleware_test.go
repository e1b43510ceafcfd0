package serverutils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"immoflow-be/internal/entity"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestErrorHandlerMiddlewareStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"not found", entity.ErrRequestNotFound, fiber.StatusNotFound},
		{"duplicate", entity.ErrDuplicateRequest, fiber.StatusConflict},
		{"already processed", entity.ErrAlreadyProcessed, fiber.StatusConflict},
		{"invalid transition", entity.ErrInvalidTransition, fiber.StatusConflict},
		{"permission denied", entity.ErrPermissionDenied, fiber.StatusForbidden},
		{"prerequisites unmet", entity.ErrPrerequisitesUnmet, fiber.StatusUnprocessableEntity},
		{"wrapped sentinel", fmt.Errorf("submit: %w", entity.ErrDuplicateRequest), fiber.StatusConflict},
		{"fiber error passes through", fiber.NewError(fiber.StatusBadRequest, "bad input"), fiber.StatusBadRequest},
		{"document upload failure", &entity.DocumentUploadError{DocumentType: "id_card", Err: errors.New("disk full")}, fiber.StatusBadGateway},
		{"unknown error is opaque 500", errors.New("pq: connection reset"), fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Use(ErrorHandlerMiddleware())
			app.Get("/boom", func(ctx *fiber.Ctx) error {
				return tt.err
			})

			resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
			assert.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			var body ApiError
			assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.False(t, body.Success)
			assert.Equal(t, tt.wantStatus, body.Code)
		})
	}
}

func TestErrorHandlerMiddlewareHidesInternalDetail(t *testing.T) {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware())
	app.Get("/boom", func(ctx *fiber.Ctx) error {
		return errors.New("pq: duplicate key value violates unique constraint")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
	assert.NoError(t, err)

	var body ApiError
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Internal server error", body.Message)
}

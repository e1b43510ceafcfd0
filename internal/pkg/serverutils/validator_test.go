package serverutils

import (
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

type sampleRequest struct {
	Email string `validate:"required,email"`
	Role  string `validate:"required,oneof=owner agency"`
}

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name    string
		req     sampleRequest
		wantErr bool
	}{
		{"valid request", sampleRequest{Email: "user@example.com", Role: "owner"}, false},
		{"bad email", sampleRequest{Email: "not-an-email", Role: "owner"}, true},
		{"role outside oneof", sampleRequest{Email: "user@example.com", Role: "admin"}, true},
		{"empty request", sampleRequest{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequest(tt.req)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var fiberErr *fiber.Error
			assert.True(t, errors.As(err, &fiberErr))
			assert.Equal(t, fiber.StatusBadRequest, fiberErr.Code)
		})
	}
}

func TestResponseEnvelope(t *testing.T) {
	ok := SuccessResponse("created", map[string]string{"id": "42"})
	assert.True(t, ok.Success)
	assert.Equal(t, "created", ok.Message)
	assert.Equal(t, "42", ok.Data["id"])

	fail := ErrorResponse(fiber.StatusConflict, "duplicate request")
	assert.False(t, fail.Success)
	assert.Equal(t, fiber.StatusConflict, fail.Code)
	assert.Equal(t, "duplicate request", fail.Message)
}

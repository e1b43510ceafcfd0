package repository

import (
	"context"

	"immoflow-be/internal/model"

	"github.com/google/uuid"
)

type AlertRepository interface {
	// Alert Operations
	CreateAlert(ctx context.Context, alert *model.Alert) error
	GetAlertsForUser(ctx context.Context, userID uuid.UUID, role string, limit, offset int) ([]model.Alert, int64, error)
	GetActiveCount(ctx context.Context, userID uuid.UUID, role string) (int64, error)
	Dismiss(ctx context.Context, alertID uuid.UUID, userID uuid.UUID) error
	DismissAll(ctx context.Context, userID uuid.UUID) error

	// Registry Operations
	GetAlertTypeByCode(ctx context.Context, code string) (*model.AlertType, error)
	GetUsersByRole(ctx context.Context, role string) ([]model.User, error) // Helper to resolve targets
}

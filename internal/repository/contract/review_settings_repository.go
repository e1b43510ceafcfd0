package contract

import (
	"context"

	"immoflow-be/internal/entity"
)

type ReviewSettingsRepository interface {
	// Get returns the single settings row, creating it with defaults when
	// the table is still empty.
	Get(ctx context.Context) (*entity.ReviewSettings, error)
	Update(ctx context.Context, settings *entity.ReviewSettings) error
}

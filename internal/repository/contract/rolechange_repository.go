package contract

import (
	"context"
	"time"

	"immoflow-be/internal/entity"
	"immoflow-be/internal/repository/specification"

	"github.com/google/uuid"
)

type RoleChangeRepository interface {
	// Create inserts the request. It returns entity.ErrDuplicateRequest when
	// the partial unique index on (user_id, to_role) over open statuses
	// rejects the row, which closes the check-then-insert race.
	Create(ctx context.Context, request *entity.RoleChangeRequest) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.RoleChangeRequest, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.RoleChangeRequest, error)
	FindAllWithUser(ctx context.Context, specs ...specification.Specification) ([]*entity.RoleChangeRequest, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	Update(ctx context.Context, request *entity.RoleChangeRequest) error
	UpdateRequestData(ctx context.Context, id uuid.UUID, data map[string]interface{}) error

	// Queries/Stats
	CountByStatusSince(ctx context.Context, since time.Time) (map[string]int64, error)
	AvgReviewHoursSince(ctx context.Context, since time.Time) (float64, error)
	DailyCountsSince(ctx context.Context, since time.Time) (map[string]int64, error)
	HasOpenRequest(ctx context.Context, userId uuid.UUID, toRole entity.UserRole) (bool, error)
}

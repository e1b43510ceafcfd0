package contract

import (
	"context"

	"immoflow-be/internal/entity"
	"immoflow-be/internal/repository/specification"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// Business Specific
	UpdateRole(ctx context.Context, id uuid.UUID, role entity.UserRole) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.UserStatus) error
	CountByRole(ctx context.Context) (map[string]int64, error)
}

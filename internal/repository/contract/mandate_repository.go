package contract

import (
	"context"

	"immoflow-be/internal/entity"
	"immoflow-be/internal/repository/specification"
)

type MandateRepository interface {
	Create(ctx context.Context, mandate *entity.Mandate) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Mandate, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Mandate, error)
	FindAllWithParties(ctx context.Context, specs ...specification.Specification) ([]*entity.Mandate, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	Update(ctx context.Context, mandate *entity.Mandate) error
}

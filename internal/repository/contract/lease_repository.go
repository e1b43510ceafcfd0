package contract

import (
	"context"

	"immoflow-be/internal/entity"
	"immoflow-be/internal/repository/specification"
)

type LeaseRepository interface {
	Create(ctx context.Context, lease *entity.Lease) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Lease, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Lease, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

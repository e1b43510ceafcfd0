package contract

import (
	"context"

	"immoflow-be/internal/entity"
	"immoflow-be/internal/repository/specification"

	"github.com/google/uuid"
)

type CertificationRepository interface {
	Create(ctx context.Context, cert *entity.Certification) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Certification, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Certification, error)
	FindAllWithLease(ctx context.Context, specs ...specification.Specification) ([]*entity.Certification, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	Update(ctx context.Context, cert *entity.Certification) error
	UpdateMetadata(ctx context.Context, id uuid.UUID, metadata map[string]interface{}) error
}

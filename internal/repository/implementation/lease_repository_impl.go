package implementation

import (
	"context"

	"immoflow-be/internal/entity"
	"immoflow-be/internal/model"
	"immoflow-be/internal/repository/contract"
	"immoflow-be/internal/repository/specification"

	"gorm.io/gorm"
)

type leaseRepositoryImpl struct {
	db *gorm.DB
}

func NewLeaseRepository(db *gorm.DB) contract.LeaseRepository {
	return &leaseRepositoryImpl{db: db}
}

func (r *leaseRepositoryImpl) Create(ctx context.Context, lease *entity.Lease) error {
	modelLease := &model.Lease{
		ID:            lease.ID,
		PropertyLabel: lease.PropertyLabel,
		OwnerID:       lease.OwnerID,
		TenantID:      lease.TenantID,
		MonthlyRent:   lease.MonthlyRent,
		Status:        string(lease.Status),
	}

	if err := r.db.WithContext(ctx).Create(modelLease).Error; err != nil {
		return err
	}

	lease.ID = modelLease.ID
	return nil
}

func (r *leaseRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Lease, error) {
	var modelLease model.Lease
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.First(&modelLease).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return r.mapToEntity(&modelLease), nil
}

func (r *leaseRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Lease, error) {
	var modelLeases []*model.Lease
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.Find(&modelLeases).Error; err != nil {
		return nil, err
	}

	var leases []*entity.Lease
	for _, ml := range modelLeases {
		leases = append(leases, r.mapToEntity(ml))
	}

	return leases, nil
}

func (r *leaseRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&model.Lease{})

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	err := query.Count(&count).Error
	return count, err
}

func (r *leaseRepositoryImpl) mapToEntity(ml *model.Lease) *entity.Lease {
	return &entity.Lease{
		ID:            ml.ID,
		PropertyLabel: ml.PropertyLabel,
		OwnerID:       ml.OwnerID,
		TenantID:      ml.TenantID,
		MonthlyRent:   ml.MonthlyRent,
		Status:        entity.LeaseStatus(ml.Status),
		CreatedAt:     ml.CreatedAt,
		UpdatedAt:     ml.UpdatedAt,
	}
}

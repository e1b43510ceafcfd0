package implementation

import (
	"context"

	"immoflow-be/internal/entity"
	"immoflow-be/internal/model"
	"immoflow-be/internal/repository/contract"
	"immoflow-be/internal/repository/specification"

	"gorm.io/gorm"
)

type mandateRepositoryImpl struct {
	db *gorm.DB
}

func NewMandateRepository(db *gorm.DB) contract.MandateRepository {
	return &mandateRepositoryImpl{db: db}
}

func (r *mandateRepositoryImpl) Create(ctx context.Context, mandate *entity.Mandate) error {
	modelMandate := &model.Mandate{
		ID:             mandate.ID,
		OwnerID:        mandate.OwnerID,
		AgencyID:       mandate.AgencyID,
		Status:         string(mandate.Status),
		CommissionRate: mandate.CommissionRate,
		FixedFee:       mandate.FixedFee,
		StartDate:      mandate.StartDate,
		EndDate:        mandate.EndDate,
	}

	if err := r.db.WithContext(ctx).Create(modelMandate).Error; err != nil {
		return err
	}

	mandate.ID = modelMandate.ID
	mandate.CreatedAt = modelMandate.CreatedAt
	return nil
}

func (r *mandateRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Mandate, error) {
	var modelMandate model.Mandate
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.First(&modelMandate).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return r.mapToEntity(&modelMandate), nil
}

func (r *mandateRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Mandate, error) {
	var modelMandates []*model.Mandate
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.Find(&modelMandates).Error; err != nil {
		return nil, err
	}

	var mandates []*entity.Mandate
	for _, mm := range modelMandates {
		mandates = append(mandates, r.mapToEntity(mm))
	}

	return mandates, nil
}

// FindAllWithParties returns mandates with both parties preloaded; every
// listing shows the counterpart's name.
func (r *mandateRepositoryImpl) FindAllWithParties(ctx context.Context, specs ...specification.Specification) ([]*entity.Mandate, error) {
	var modelMandates []*model.Mandate
	query := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("Agency")

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.Find(&modelMandates).Error; err != nil {
		return nil, err
	}

	var mandates []*entity.Mandate
	for _, mm := range modelMandates {
		mandate := r.mapToEntity(mm)
		mandate.Owner = entity.User{
			Id:       mm.Owner.Id,
			Email:    mm.Owner.Email,
			FullName: mm.Owner.FullName,
		}
		mandate.Agency = entity.User{
			Id:       mm.Agency.Id,
			Email:    mm.Agency.Email,
			FullName: mm.Agency.FullName,
		}
		mandates = append(mandates, mandate)
	}

	return mandates, nil
}

func (r *mandateRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&model.Mandate{})

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	err := query.Count(&count).Error
	return count, err
}

func (r *mandateRepositoryImpl) Update(ctx context.Context, mandate *entity.Mandate) error {
	return r.db.WithContext(ctx).Model(&model.Mandate{}).
		Where("id = ?", mandate.ID).
		Updates(map[string]interface{}{
			"status":          string(mandate.Status),
			"commission_rate": mandate.CommissionRate,
			"fixed_fee":       mandate.FixedFee,
			"end_date":        mandate.EndDate,
		}).Error
}

// mapToEntity converts model.Mandate to entity.Mandate
func (r *mandateRepositoryImpl) mapToEntity(mm *model.Mandate) *entity.Mandate {
	return &entity.Mandate{
		ID:             mm.ID,
		OwnerID:        mm.OwnerID,
		AgencyID:       mm.AgencyID,
		Status:         entity.MandateStatus(mm.Status),
		CommissionRate: mm.CommissionRate,
		FixedFee:       mm.FixedFee,
		StartDate:      mm.StartDate,
		EndDate:        mm.EndDate,
		CreatedAt:      mm.CreatedAt,
		UpdatedAt:      mm.UpdatedAt,
	}
}

package implementation

import (
	"context"
	"encoding/json"

	"immoflow-be/internal/entity"
	"immoflow-be/internal/model"
	"immoflow-be/internal/repository/contract"
	"immoflow-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type certificationRepositoryImpl struct {
	db *gorm.DB
}

func NewCertificationRepository(db *gorm.DB) contract.CertificationRepository {
	return &certificationRepositoryImpl{db: db}
}

func (r *certificationRepositoryImpl) Create(ctx context.Context, cert *entity.Certification) error {
	documents, err := json.Marshal(cert.Documents)
	if err != nil {
		return err
	}
	metadata, err := json.Marshal(cert.Metadata)
	if err != nil {
		return err
	}

	modelCert := &model.Certification{
		ID:                  cert.ID,
		LeaseID:             cert.LeaseID,
		CertificationNumber: certNumberOrNull(cert.CertificationNumber),
		Status:              string(cert.Status),
		Documents:           datatypes.JSON(documents),
		Metadata:            datatypes.JSON(metadata),
		RequestedAt:         cert.RequestedAt,
	}

	if err := r.db.WithContext(ctx).Create(modelCert).Error; err != nil {
		if isUniqueViolation(err) {
			return entity.ErrDuplicateRequest
		}
		return err
	}

	cert.ID = modelCert.ID
	cert.CreatedAt = modelCert.CreatedAt
	return nil
}

func (r *certificationRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Certification, error) {
	var modelCert model.Certification
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.First(&modelCert).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return r.mapToEntity(&modelCert), nil
}

func (r *certificationRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Certification, error) {
	var modelCerts []*model.Certification
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.Find(&modelCerts).Error; err != nil {
		return nil, err
	}

	var certs []*entity.Certification
	for _, mc := range modelCerts {
		certs = append(certs, r.mapToEntity(mc))
	}

	return certs, nil
}

// FindAllWithLease returns certifications with the lease preloaded so the
// property label shows up in listings.
func (r *certificationRepositoryImpl) FindAllWithLease(ctx context.Context, specs ...specification.Specification) ([]*entity.Certification, error) {
	var modelCerts []*model.Certification
	query := r.db.WithContext(ctx).Preload("Lease")

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.Find(&modelCerts).Error; err != nil {
		return nil, err
	}

	var certs []*entity.Certification
	for _, mc := range modelCerts {
		cert := r.mapToEntity(mc)
		cert.Lease = entity.Lease{
			ID:            mc.Lease.ID,
			PropertyLabel: mc.Lease.PropertyLabel,
			OwnerID:       mc.Lease.OwnerID,
			TenantID:      mc.Lease.TenantID,
			Status:        entity.LeaseStatus(mc.Lease.Status),
		}
		certs = append(certs, cert)
	}

	return certs, nil
}

func (r *certificationRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&model.Certification{})

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	err := query.Count(&count).Error
	return count, err
}

func (r *certificationRepositoryImpl) Update(ctx context.Context, cert *entity.Certification) error {
	return r.db.WithContext(ctx).Model(&model.Certification{}).
		Where("id = ?", cert.ID).
		Updates(map[string]interface{}{
			"status":               string(cert.Status),
			"certification_number": certNumberOrNull(cert.CertificationNumber),
			"reviewer_id":          cert.ReviewerID,
			"reviewer_notes":       cert.ReviewerNotes,
			"reviewed_at":          cert.ReviewedAt,
			"expires_at":           cert.ExpiresAt,
		}).Error
}

func (r *certificationRepositoryImpl) UpdateMetadata(ctx context.Context, id uuid.UUID, metadata map[string]interface{}) error {
	raw, err := json.Marshal(metadata)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Model(&model.Certification{}).
		Where("id = ?", id).
		Update("metadata", datatypes.JSON(raw)).Error
}

// certNumberOrNull stores un-numbered certifications as NULL so the unique
// index on certification_number never sees two empty strings collide.
func certNumberOrNull(n string) *string {
	if n == "" {
		return nil
	}
	return &n
}

// mapToEntity converts model.Certification to entity.Certification
func (r *certificationRepositoryImpl) mapToEntity(mc *model.Certification) *entity.Certification {
	var documents []string
	if len(mc.Documents) > 0 {
		_ = json.Unmarshal(mc.Documents, &documents)
	}
	var metadata map[string]interface{}
	if len(mc.Metadata) > 0 {
		_ = json.Unmarshal(mc.Metadata, &metadata)
	}

	number := ""
	if mc.CertificationNumber != nil {
		number = *mc.CertificationNumber
	}

	return &entity.Certification{
		ID:                  mc.ID,
		LeaseID:             mc.LeaseID,
		CertificationNumber: number,
		Status:              entity.CertificationStatus(mc.Status),
		ReviewerID:          mc.ReviewerID,
		ReviewerNotes:       mc.ReviewerNotes,
		Documents:           documents,
		Metadata:            metadata,
		RequestedAt:         mc.RequestedAt,
		ReviewedAt:          mc.ReviewedAt,
		ExpiresAt:           mc.ExpiresAt,
		CreatedAt:           mc.CreatedAt,
		UpdatedAt:           mc.UpdatedAt,
	}
}

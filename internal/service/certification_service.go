package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"immoflow-be/internal/dto"
	"immoflow-be/internal/entity"
	"immoflow-be/internal/pkg/logger"
	"immoflow-be/internal/repository/specification"
	"immoflow-be/internal/repository/unitofwork"
	adminEvents "immoflow-be/pkg/admin/events"
	"immoflow-be/pkg/admin/mapper"
	"immoflow-be/pkg/storage"

	"github.com/google/uuid"
)

type ICertificationService interface {
	Submit(ctx context.Context, userId uuid.UUID, req *dto.SubmitCertificationRequest) (*dto.SubmitCertificationResponse, error)
	List(ctx context.Context, userId uuid.UUID) ([]*dto.UserCertificationListResponse, error)
}

type certificationService struct {
	uowFactory       unitofwork.RepositoryFactory
	store            storage.Adapter
	publisher        adminEvents.Publisher
	documentPipeline IPublisherService
	logger           logger.ILogger
}

func NewCertificationService(
	uowFactory unitofwork.RepositoryFactory,
	store storage.Adapter,
	publisher adminEvents.Publisher,
	documentPipeline IPublisherService,
	log logger.ILogger,
) ICertificationService {
	return &certificationService{
		uowFactory:       uowFactory,
		store:            store,
		publisher:        publisher,
		documentPipeline: documentPipeline,
		logger:           log,
	}
}

// Submit files a certification for a lease. Only a lease party may submit,
// and an open or approved certification blocks a second one.
func (s *certificationService) Submit(ctx context.Context, userId uuid.UUID, req *dto.SubmitCertificationRequest) (*dto.SubmitCertificationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	lease, err := uow.LeaseRepository().FindOne(ctx, specification.ByID{ID: req.LeaseId})
	if err != nil {
		return nil, err
	}
	if lease == nil {
		return nil, entity.ErrRequestNotFound
	}
	if lease.OwnerID != userId && lease.TenantID != userId {
		return nil, entity.ErrPermissionDenied
	}

	existing, err := uow.CertificationRepository().Count(ctx,
		specification.Filter("lease_id", req.LeaseId),
		specification.ByStatuses{Statuses: []string{"pending", "under_review", "approved"}},
	)
	if err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, entity.ErrDuplicateRequest
	}

	// Store documents with compensation on failure
	var documents []string
	compensate := func() {
		for _, url := range documents {
			if delErr := s.store.Delete(ctx, url); delErr != nil {
				s.logger.Error("Certification", "Compensating delete failed, document orphaned", map[string]interface{}{
					"url":   url,
					"error": delErr.Error(),
				})
			}
		}
	}

	for i, upload := range req.Documents {
		content, err := base64.StdEncoding.DecodeString(upload.Content)
		if err != nil {
			compensate()
			return nil, &entity.DocumentUploadError{DocumentType: upload.FileName, Err: err}
		}

		key := fmt.Sprintf("%s_cert%d_%d%s", userId.String(), i, time.Now().UnixNano(), filepath.Ext(upload.FileName))
		url, err := s.store.Save(ctx, key, content)
		if err != nil {
			compensate()
			return nil, &entity.DocumentUploadError{DocumentType: upload.FileName, Err: err}
		}
		documents = append(documents, url)
	}

	metadata := make(map[string]interface{}, len(req.Metadata)+1)
	for k, v := range req.Metadata {
		metadata[k] = v
	}
	metadata["submitted_by"] = userId.String()

	cert := &entity.Certification{
		ID:          uuid.New(),
		LeaseID:     req.LeaseId,
		Status:      entity.CertificationStatusPending,
		Documents:   documents,
		Metadata:    metadata,
		RequestedAt: time.Now(),
	}

	if err := uow.CertificationRepository().Create(ctx, cert); err != nil {
		compensate()
		return nil, err
	}

	s.logger.Info("Certification", "Certification submitted", map[string]interface{}{
		"certification_id": cert.ID.String(),
		"lease_id":         req.LeaseId.String(),
		"user_id":          userId.String(),
	})

	s.publisher.PublishCertificationSubmitted(ctx, cert.ID, req.LeaseId, lease.PropertyLabel)
	s.enqueueDocuments(ctx, cert.ID, documents)

	return &dto.SubmitCertificationResponse{
		CertificationId: cert.ID.String(),
		Status:          string(cert.Status),
		Message:         "Certification request submitted and awaiting review",
	}, nil
}

func (s *certificationService) enqueueDocuments(ctx context.Context, certId uuid.UUID, documents []string) {
	if s.documentPipeline == nil {
		return
	}
	for _, url := range documents {
		payload, err := json.Marshal(dto.ProcessDocumentMessage{
			EntityType: "certification",
			EntityId:   certId,
			URL:        url,
		})
		if err != nil {
			continue
		}
		if err := s.documentPipeline.Publish(ctx, payload); err != nil {
			s.logger.Warn("Certification", "Failed to enqueue document for processing", map[string]interface{}{
				"certification_id": certId.String(),
				"url":              url,
				"error":            err.Error(),
			})
		}
	}
}

// List returns certifications for every lease the user is a party of.
func (s *certificationService) List(ctx context.Context, userId uuid.UUID) ([]*dto.UserCertificationListResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	leases, err := uow.LeaseRepository().FindAll(ctx, specification.LeaseParty{UserID: userId})
	if err != nil {
		return nil, err
	}
	if len(leases) == 0 {
		return nil, nil
	}

	leaseIds := make([]uuid.UUID, 0, len(leases))
	for _, l := range leases {
		leaseIds = append(leaseIds, l.ID)
	}

	certs, err := uow.CertificationRepository().FindAllWithLease(ctx,
		specification.ByLeaseIDs{LeaseIDs: leaseIds},
		specification.OrderBy{Field: "requested_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	var res []*dto.UserCertificationListResponse
	for _, c := range certs {
		res = append(res, mapper.CertificationToUserResponse(c))
	}
	return res, nil
}

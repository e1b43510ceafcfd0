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

type IRoleChangeService interface {
	Submit(ctx context.Context, userId uuid.UUID, req *dto.SubmitRoleChangeRequest) (*dto.SubmitRoleChangeResponse, error)
	Cancel(ctx context.Context, userId, requestId uuid.UUID) (*dto.CancelRoleChangeResponse, error)
	Get(ctx context.Context, userId, requestId uuid.UUID) (*dto.UserRoleChangeListResponse, error)
	List(ctx context.Context, userId uuid.UUID) ([]*dto.UserRoleChangeListResponse, error)
}

type roleChangeService struct {
	uowFactory       unitofwork.RepositoryFactory
	prerequisites    IPrerequisiteService
	store            storage.Adapter
	publisher        adminEvents.Publisher
	documentPipeline IPublisherService
	logger           logger.ILogger
}

func NewRoleChangeService(
	uowFactory unitofwork.RepositoryFactory,
	prerequisites IPrerequisiteService,
	store storage.Adapter,
	publisher adminEvents.Publisher,
	documentPipeline IPublisherService,
	log logger.ILogger,
) IRoleChangeService {
	return &roleChangeService{
		uowFactory:       uowFactory,
		prerequisites:    prerequisites,
		store:            store,
		publisher:        publisher,
		documentPipeline: documentPipeline,
		logger:           log,
	}
}

// Submit runs the full submission saga: prerequisite gate, document
// uploads, then the guarded insert. The partial unique index is the real
// duplicate guard; any file stored before a failure is deleted again.
func (s *roleChangeService) Submit(ctx context.Context, userId uuid.UUID, req *dto.SubmitRoleChangeRequest) (*dto.SubmitRoleChangeResponse, error) {
	targetRole := entity.UserRole(req.ToRole)
	if !targetRole.IsUpgradeTarget() {
		return nil, entity.ErrInvalidTransition
	}

	// 1. Prerequisite gate
	check, err := s.prerequisites.Check(ctx, userId, targetRole)
	if err != nil {
		return nil, err
	}
	if !check.CanUpgrade {
		return nil, fmt.Errorf("%w: %v", entity.ErrPrerequisitesUnmet, check.MissingRequirements)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	// 2. Friendly duplicate pre-check. Racing submissions slip past this;
	// the unique index below catches them.
	hasOpen, err := uow.RoleChangeRepository().HasOpenRequest(ctx, userId, targetRole)
	if err != nil {
		return nil, err
	}
	if hasOpen {
		return nil, entity.ErrDuplicateRequest
	}

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, entity.ErrRequestNotFound
	}

	// 3. Store documents
	documents := make(map[string]string, len(req.Documents))
	var stored []string
	compensate := func() {
		for _, url := range stored {
			if delErr := s.store.Delete(ctx, url); delErr != nil {
				s.logger.Error("RoleChange", "Compensating delete failed, document orphaned", map[string]interface{}{
					"url":   url,
					"error": delErr.Error(),
				})
			}
		}
	}

	for docType, upload := range req.Documents {
		content, err := base64.StdEncoding.DecodeString(upload.Content)
		if err != nil {
			compensate()
			return nil, &entity.DocumentUploadError{DocumentType: docType, Err: err}
		}

		key := fmt.Sprintf("%s_%s_%d%s", userId.String(), docType, time.Now().UnixNano(), filepath.Ext(upload.FileName))
		url, err := s.store.Save(ctx, key, content)
		if err != nil {
			compensate()
			return nil, &entity.DocumentUploadError{DocumentType: docType, Err: err}
		}
		stored = append(stored, url)
		documents[docType] = url
	}

	// 4. Guarded insert
	requestData := make(map[string]interface{}, len(req.RequestData))
	for k, v := range req.RequestData {
		requestData[k] = v
	}

	request := &entity.RoleChangeRequest{
		ID:          uuid.New(),
		UserID:      userId,
		FromRole:    user.Role,
		ToRole:      targetRole,
		Status:      entity.RoleChangeStatusPending,
		RequestData: requestData,
		Documents:   documents,
	}

	if err := uow.RoleChangeRepository().Create(ctx, request); err != nil {
		// Insert failed: whatever was stored is now orphaned, delete it.
		compensate()
		return nil, err
	}

	s.prerequisites.Invalidate(userId)

	s.logger.Info("RoleChange", "Role change request submitted", map[string]interface{}{
		"request_id": request.ID.String(),
		"user_id":    userId.String(),
		"to_role":    req.ToRole,
	})

	// 5. Fan out
	s.publisher.PublishRoleRequestSubmitted(ctx, request.ID, userId, string(user.Role), req.ToRole)
	s.enqueueDocuments(ctx, request.ID, documents)

	return &dto.SubmitRoleChangeResponse{
		RequestId: request.ID.String(),
		Status:    string(request.Status),
		Message:   "Your request has been submitted and is awaiting review",
	}, nil
}

// enqueueDocuments pushes each stored document into the processing
// pipeline. Failures are logged only; integrity metadata is best-effort.
func (s *roleChangeService) enqueueDocuments(ctx context.Context, requestId uuid.UUID, documents map[string]string) {
	if s.documentPipeline == nil {
		return
	}
	for docType, url := range documents {
		payload, err := json.Marshal(dto.ProcessDocumentMessage{
			EntityType:   "role_change_request",
			EntityId:     requestId,
			DocumentType: docType,
			URL:          url,
		})
		if err != nil {
			continue
		}
		if err := s.documentPipeline.Publish(ctx, payload); err != nil {
			s.logger.Warn("RoleChange", "Failed to enqueue document for processing", map[string]interface{}{
				"request_id": requestId.String(),
				"url":        url,
				"error":      err.Error(),
			})
		}
	}
}

// Cancel withdraws the user's own open request. A request that already
// reached a terminal state (cancelled included) errors explicitly so the
// caller learns the cancel changed nothing.
func (s *roleChangeService) Cancel(ctx context.Context, userId, requestId uuid.UUID) (*dto.CancelRoleChangeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	request, err := uow.RoleChangeRepository().FindOne(ctx, specification.ByID{ID: requestId})
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, entity.ErrRequestNotFound
	}
	if request.UserID != userId {
		return nil, entity.ErrPermissionDenied
	}

	if !request.Status.CanTransition(entity.RoleChangeStatusCancelled) {
		return nil, entity.ErrAlreadyProcessed
	}

	request.Status = entity.RoleChangeStatusCancelled
	if err := uow.RoleChangeRepository().Update(ctx, request); err != nil {
		return nil, err
	}

	s.prerequisites.Invalidate(userId)

	s.logger.Info("RoleChange", "Role change request cancelled", map[string]interface{}{
		"request_id": requestId.String(),
		"user_id":    userId.String(),
	})

	s.publisher.PublishRoleRequestCancelled(ctx, requestId, userId, string(request.ToRole))

	return &dto.CancelRoleChangeResponse{
		RequestId: requestId.String(),
		Status:    string(entity.RoleChangeStatusCancelled),
	}, nil
}

// Get returns one of the user's own requests. Requests belonging to other
// users read as not found rather than forbidden, so ids cannot be probed.
func (s *roleChangeService) Get(ctx context.Context, userId, requestId uuid.UUID) (*dto.UserRoleChangeListResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	request, err := uow.RoleChangeRepository().FindOne(ctx, specification.ByID{ID: requestId})
	if err != nil {
		return nil, err
	}
	if request == nil || request.UserID != userId {
		return nil, entity.ErrRequestNotFound
	}

	return mapper.RoleChangeToUserResponse(request), nil
}

// List returns the user's own request history, newest first.
func (s *roleChangeService) List(ctx context.Context, userId uuid.UUID) ([]*dto.UserRoleChangeListResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	requests, err := uow.RoleChangeRepository().FindAll(ctx,
		specification.ByUserID{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	var res []*dto.UserRoleChangeListResponse
	for _, r := range requests {
		res = append(res, mapper.RoleChangeToUserResponse(r))
	}
	return res, nil
}

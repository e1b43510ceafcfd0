package service

import (
	"context"
	"time"

	"immoflow-be/internal/dto"
	"immoflow-be/internal/entity"
	"immoflow-be/internal/pkg/logger"
	"immoflow-be/internal/repository/specification"
	"immoflow-be/internal/repository/unitofwork"
	adminEvents "immoflow-be/pkg/admin/events"
	"immoflow-be/pkg/admin/mapper"
	pkgEvents "immoflow-be/pkg/events"

	"github.com/google/uuid"
)

type IMandateService interface {
	Invite(ctx context.Context, ownerId uuid.UUID, req *dto.CreateMandateRequest) (*dto.CreateMandateResponse, error)
	Accept(ctx context.Context, agencyId, mandateId uuid.UUID) (*dto.AcceptMandateResponse, error)
	Terminate(ctx context.Context, userId, mandateId uuid.UUID, req *dto.TerminateMandateRequest) (*dto.TerminateMandateResponse, error)
	List(ctx context.Context, userId uuid.UUID) ([]*dto.MandateListResponse, error)
}

type mandateService struct {
	uowFactory unitofwork.RepositoryFactory
	publisher  adminEvents.Publisher
	logger     logger.ILogger
}

func NewMandateService(uowFactory unitofwork.RepositoryFactory, publisher adminEvents.Publisher, log logger.ILogger) IMandateService {
	return &mandateService{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     log,
	}
}

// Invite creates a pending mandate from an owner toward an agency. It
// activates only when the agency accepts.
func (s *mandateService) Invite(ctx context.Context, ownerId uuid.UUID, req *dto.CreateMandateRequest) (*dto.CreateMandateResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	owner, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: ownerId})
	if err != nil {
		return nil, err
	}
	if owner == nil || owner.Role != entity.UserRoleOwner {
		return nil, entity.ErrPermissionDenied
	}

	agency, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: req.AgencyId})
	if err != nil {
		return nil, err
	}
	if agency == nil || agency.Role != entity.UserRoleAgency {
		return nil, entity.ErrRequestNotFound
	}

	mandate := &entity.Mandate{
		ID:             uuid.New(),
		OwnerID:        ownerId,
		AgencyID:       req.AgencyId,
		Status:         entity.MandateStatusPending,
		CommissionRate: req.CommissionRate,
		FixedFee:       req.FixedFee,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
	}

	if err := uow.MandateRepository().Create(ctx, mandate); err != nil {
		return nil, err
	}

	s.logger.Info("Mandate", "Mandate invitation created", map[string]interface{}{
		"mandate_id": mandate.ID.String(),
		"owner_id":   ownerId.String(),
		"agency_id":  req.AgencyId.String(),
	})

	s.publisher.PublishMandateChanged(ctx, mandate.ID, ownerId, req.AgencyId, pkgEvents.MandateInvited)

	return &dto.CreateMandateResponse{
		MandateId: mandate.ID.String(),
		Status:    string(mandate.Status),
		Message:   "Mandate invitation sent to the agency",
	}, nil
}

// Accept activates a pending mandate. Only the invited agency may accept.
func (s *mandateService) Accept(ctx context.Context, agencyId, mandateId uuid.UUID) (*dto.AcceptMandateResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	mandate, err := uow.MandateRepository().FindOne(ctx, specification.ByID{ID: mandateId})
	if err != nil {
		return nil, err
	}
	if mandate == nil {
		return nil, entity.ErrRequestNotFound
	}
	if mandate.AgencyID != agencyId {
		return nil, entity.ErrPermissionDenied
	}
	if !mandate.Status.CanTransition(entity.MandateStatusActive) {
		return nil, entity.ErrInvalidTransition
	}

	mandate.Status = entity.MandateStatusActive
	if err := uow.MandateRepository().Update(ctx, mandate); err != nil {
		return nil, err
	}

	s.logger.Info("Mandate", "Mandate accepted", map[string]interface{}{
		"mandate_id": mandateId.String(),
		"agency_id":  agencyId.String(),
	})

	s.publisher.PublishMandateChanged(ctx, mandateId, mandate.OwnerID, mandate.AgencyID, pkgEvents.MandateAccepted)

	return &dto.AcceptMandateResponse{
		MandateId: mandateId.String(),
		Status:    string(entity.MandateStatusActive),
	}, nil
}

// Terminate ends a mandate early. Either party may terminate; repeating a
// terminate on an already terminated mandate is a no-op success.
func (s *mandateService) Terminate(ctx context.Context, userId, mandateId uuid.UUID, req *dto.TerminateMandateRequest) (*dto.TerminateMandateResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	mandate, err := uow.MandateRepository().FindOne(ctx, specification.ByID{ID: mandateId})
	if err != nil {
		return nil, err
	}
	if mandate == nil {
		return nil, entity.ErrRequestNotFound
	}
	if mandate.OwnerID != userId && mandate.AgencyID != userId {
		return nil, entity.ErrPermissionDenied
	}

	if mandate.Status == entity.MandateStatusTerminated {
		return &dto.TerminateMandateResponse{
			MandateId: mandateId.String(),
			Status:    string(mandate.Status),
		}, nil
	}
	if !mandate.Status.CanTransition(entity.MandateStatusTerminated) {
		return nil, entity.ErrInvalidTransition
	}

	mandate.Status = entity.MandateStatusTerminated
	if err := uow.MandateRepository().Update(ctx, mandate); err != nil {
		return nil, err
	}

	s.logger.Info("Mandate", "Mandate terminated", map[string]interface{}{
		"mandate_id": mandateId.String(),
		"by_user":    userId.String(),
		"reason":     req.Reason,
	})

	s.publisher.PublishMandateChanged(ctx, mandateId, mandate.OwnerID, mandate.AgencyID, pkgEvents.MandateTerminated)

	return &dto.TerminateMandateResponse{
		MandateId: mandateId.String(),
		Status:    string(entity.MandateStatusTerminated),
	}, nil
}

// List returns every mandate the user participates in, with expiry flags
// derived at read time.
func (s *mandateService) List(ctx context.Context, userId uuid.UUID) ([]*dto.MandateListResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	mandates, err := uow.MandateRepository().FindAllWithParties(ctx,
		specification.MandateParty{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var res []*dto.MandateListResponse
	for _, m := range mandates {
		res = append(res, mapper.MandateToResponse(m, now))
	}
	return res, nil
}

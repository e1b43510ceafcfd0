package service

import (
	"context"
	"time"

	"immoflow-be/internal/entity"
	"immoflow-be/internal/pkg/logger"
	"immoflow-be/internal/repository/specification"
	"immoflow-be/internal/repository/unitofwork"
	"immoflow-be/pkg/admin/certification"
	adminEvents "immoflow-be/pkg/admin/events"
	"immoflow-be/pkg/admin/rolechange"
	pkgEvents "immoflow-be/pkg/events"
)

const autoCloseNotes = "Closed automatically: review deadline exceeded"

// ISweeperService runs the periodic review-deadline sweep.
type ISweeperService interface {
	Start(ctx context.Context)
	SweepOnce(ctx context.Context) (int, error)
}

type sweeperService struct {
	uowFactory unitofwork.RepositoryFactory
	processor  *rolechange.Processor
	reviewer   *certification.Reviewer
	publisher  adminEvents.Publisher
	interval   time.Duration
	logger     logger.ILogger
}

func NewSweeperService(
	uowFactory unitofwork.RepositoryFactory,
	processor *rolechange.Processor,
	reviewer *certification.Reviewer,
	publisher adminEvents.Publisher,
	intervalSeconds int,
	log logger.ILogger,
) ISweeperService {
	if intervalSeconds < 1 {
		intervalSeconds = 300
	}
	return &sweeperService{
		uowFactory: uowFactory,
		processor:  processor,
		reviewer:   reviewer,
		publisher:  publisher,
		interval:   time.Duration(intervalSeconds) * time.Second,
		logger:     log,
	}
}

// Start runs the sweep loop until the context is cancelled.
func (s *sweeperService) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.logger.Info("SWEEPER", "Deadline sweep started", map[string]interface{}{
			"interval": s.interval.String(),
		})

		for {
			select {
			case <-ctx.Done():
				s.logger.Info("SWEEPER", "Deadline sweep stopped", nil)
				return
			case <-ticker.C:
				if _, err := s.SweepOnce(ctx); err != nil {
					s.logger.Error("SWEEPER", "Sweep pass failed", map[string]interface{}{
						"error": err.Error(),
					})
				}
				s.notifyExpiringMandates(ctx)
			}
		}
	}()
}

// SweepOnce applies the configured auto action to every overdue open role
// request and certification, returning how many it closed. Settings are
// re-read each pass so operator changes take effect without a restart.
func (s *sweeperService) SweepOnce(ctx context.Context) (int, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	settings, err := uow.ReviewSettingsRepository().Get(ctx)
	if err != nil {
		return 0, err
	}
	if settings.AutoAction == entity.AutoActionNone || settings.DeadlineHours <= 0 {
		return 0, nil
	}

	cutoff := settings.Deadline(time.Now())

	closed, err := s.sweepRoleRequests(ctx, uow, settings, cutoff)
	if err != nil {
		return closed, err
	}

	certsClosed, err := s.sweepCertifications(ctx, uow, settings, cutoff)
	closed += certsClosed
	return closed, err
}

func (s *sweeperService) sweepRoleRequests(ctx context.Context, uow unitofwork.UnitOfWork, settings *entity.ReviewSettings, cutoff time.Time) (int, error) {
	decision := entity.RoleChangeStatusRejected
	if settings.AutoAction == entity.AutoActionApprove {
		decision = entity.RoleChangeStatusApproved
	}

	overdue, err := uow.RoleChangeRepository().FindAll(ctx,
		specification.OpenRequests{},
		specification.CreatedBefore{Cutoff: cutoff},
	)
	if err != nil {
		return 0, err
	}

	closed := 0
	for _, request := range overdue {
		// Each request gets its own unit of work so one failure does not
		// abort the rest of the pass.
		requestUow := s.uowFactory.NewUnitOfWork(ctx)
		if _, err := s.processor.AutoClose(ctx, requestUow, request.ID, decision, autoCloseNotes); err != nil {
			s.logger.Error("SWEEPER", "Failed to auto-close overdue request", map[string]interface{}{
				"request_id": request.ID.String(),
				"error":      err.Error(),
			})
			continue
		}
		closed++
	}

	if closed > 0 {
		s.logger.Info("SWEEPER", "Auto-closed overdue role change requests", map[string]interface{}{
			"count":    closed,
			"decision": string(decision),
		})
	}

	return closed, nil
}

// sweepCertifications mirrors the role-request sweep for the certification
// queue. Certifications age from their requested_at stamp rather than row
// creation time.
func (s *sweeperService) sweepCertifications(ctx context.Context, uow unitofwork.UnitOfWork, settings *entity.ReviewSettings, cutoff time.Time) (int, error) {
	decision := entity.CertificationStatusRejected
	if settings.AutoAction == entity.AutoActionApprove {
		decision = entity.CertificationStatusApproved
	}

	overdue, err := uow.CertificationRepository().FindAll(ctx,
		specification.OpenRequests{},
		specification.RequestedBefore{Cutoff: cutoff},
	)
	if err != nil {
		return 0, err
	}

	closed := 0
	for _, cert := range overdue {
		certUow := s.uowFactory.NewUnitOfWork(ctx)
		if _, err := s.reviewer.AutoClose(ctx, certUow, cert.ID, decision, autoCloseNotes); err != nil {
			s.logger.Error("SWEEPER", "Failed to auto-close overdue certification", map[string]interface{}{
				"certification_id": cert.ID.String(),
				"error":            err.Error(),
			})
			continue
		}
		closed++
	}

	if closed > 0 {
		s.logger.Info("SWEEPER", "Auto-closed overdue certifications", map[string]interface{}{
			"count":    closed,
			"decision": string(decision),
		})
	}

	return closed, nil
}

// notifyExpiringMandates emits MANDATE_EXPIRING_SOON for active mandates
// whose end date crossed the warning threshold since the previous pass.
// The narrow window keeps each mandate from being announced every tick.
func (s *sweeperService) notifyExpiringMandates(ctx context.Context) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	threshold := time.Now().Add(entity.ExpiringSoonWindow)
	mandates, err := uow.MandateRepository().FindAll(ctx,
		specification.ByStatus{Status: string(entity.MandateStatusActive)},
		specification.EndingAfter{Cutoff: threshold.Add(-s.interval)},
		specification.EndingBefore{Cutoff: threshold},
	)
	if err != nil {
		s.logger.Error("SWEEPER", "Failed to scan for expiring mandates", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	for _, m := range mandates {
		s.publisher.PublishMandateChanged(ctx, m.ID, m.OwnerID, m.AgencyID, pkgEvents.MandateExpiringSoon)
	}
}

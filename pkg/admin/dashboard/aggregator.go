package dashboard

import (
	"context"
	"time"

	"immoflow-be/internal/dto"
	"immoflow-be/internal/entity"
	"immoflow-be/internal/pkg/logger"
	"immoflow-be/internal/repository/specification"
	"immoflow-be/internal/repository/unitofwork"
)

// Aggregator handles admin dashboard statistics
type Aggregator struct {
	logger logger.ILogger
}

// NewAggregator creates a new dashboard aggregator
func NewAggregator(logger logger.ILogger) *Aggregator {
	return &Aggregator{
		logger: logger,
	}
}

// GetStats collects queue depths and marketplace counts for the admin
// landing page.
func (a *Aggregator) GetStats(ctx context.Context, uow unitofwork.UnitOfWork, settings *entity.ReviewSettings) (*dto.DashboardResponse, error) {
	now := time.Now()

	pendingRoleChanges, err := uow.RoleChangeRepository().Count(ctx, specification.OpenRequests{})
	if err != nil {
		return nil, err
	}

	lateReviews, err := uow.RoleChangeRepository().Count(ctx,
		specification.OpenRequests{},
		specification.CreatedBefore{Cutoff: settings.Deadline(now)},
	)
	if err != nil {
		return nil, err
	}

	pendingCerts, err := uow.CertificationRepository().Count(ctx,
		specification.ByStatuses{Statuses: []string{"pending", "under_review"}},
	)
	if err != nil {
		return nil, err
	}

	activeMandates, err := uow.MandateRepository().Count(ctx,
		specification.ByStatus{Status: string(entity.MandateStatusActive)},
	)
	if err != nil {
		return nil, err
	}

	expiringMandates, err := uow.MandateRepository().Count(ctx,
		specification.ByStatus{Status: string(entity.MandateStatusActive)},
		specification.EndingBefore{Cutoff: now.Add(entity.ExpiringSoonWindow)},
	)
	if err != nil {
		return nil, err
	}

	totalUsers, err := uow.UserRepository().Count(ctx)
	if err != nil {
		return nil, err
	}

	usersByRole, err := uow.UserRepository().CountByRole(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.DashboardResponse{
		PendingRoleChanges:    pendingRoleChanges,
		PendingCertifications: pendingCerts,
		LateReviews:           lateReviews,
		ActiveMandates:        activeMandates,
		ExpiringMandates:      expiringMandates,
		TotalUsers:            totalUsers,
		UsersByRole:           usersByRole,
	}, nil
}

package service

import (
	"context"
	"encoding/json"
	"time"

	"immoflow-be/internal/dto"
	"immoflow-be/internal/entity"
	"immoflow-be/internal/pkg/logger"
	"immoflow-be/internal/pkg/mailer"
	"immoflow-be/internal/repository/unitofwork"
	"immoflow-be/pkg/admin/certification"
	"immoflow-be/pkg/admin/dashboard"
	"immoflow-be/pkg/admin/mapper"
	"immoflow-be/pkg/admin/rolechange"

	"github.com/google/uuid"
)

type IAdminService interface {
	GetRoleChangeQueue(ctx context.Context, page, limit int, status string) ([]*dto.AdminRoleChangeListResponse, error)
	ReviewRoleChange(ctx context.Context, adminId, requestId uuid.UUID, req *dto.AdminReviewRoleChangeRequest) (*dto.AdminReviewRoleChangeResponse, error)
	GetRoleChangeStatistics(ctx context.Context, days int) (*dto.RoleChangeStatisticsResponse, error)

	GetCertificationQueue(ctx context.Context, page, limit int, status string) ([]*dto.AdminCertificationListResponse, error)
	ReviewCertification(ctx context.Context, adminId, certId uuid.UUID, req *dto.AdminReviewCertificationRequest) (*dto.AdminReviewCertificationResponse, error)
	RevokeCertification(ctx context.Context, adminId, certId uuid.UUID, req *dto.AdminRevokeCertificationRequest) (*dto.AdminRevokeCertificationResponse, error)

	GetReviewSettings(ctx context.Context) (*dto.ReviewSettingsResponse, error)
	UpdateReviewSettings(ctx context.Context, adminId uuid.UUID, req *dto.UpdateReviewSettingsRequest) (*dto.ReviewSettingsResponse, error)

	GetDashboard(ctx context.Context) (*dto.DashboardResponse, error)
	GetLogs(level string, page, limit int) ([]dto.AdminLogEntry, error)
}

type adminService struct {
	uowFactory unitofwork.RepositoryFactory
	processor  *rolechange.Processor
	reviewer   *certification.Reviewer
	aggregator *dashboard.Aggregator
	email      mailer.IEmailService
	logger     logger.ILogger
}

func NewAdminService(
	uowFactory unitofwork.RepositoryFactory,
	processor *rolechange.Processor,
	reviewer *certification.Reviewer,
	aggregator *dashboard.Aggregator,
	email mailer.IEmailService,
	log logger.ILogger,
) IAdminService {
	return &adminService{
		uowFactory: uowFactory,
		processor:  processor,
		reviewer:   reviewer,
		aggregator: aggregator,
		email:      email,
		logger:     log,
	}
}

func (s *adminService) GetRoleChangeQueue(ctx context.Context, page, limit int, status string) ([]*dto.AdminRoleChangeListResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	requests, err := s.processor.GetQueue(ctx, uow, page, limit, status)
	if err != nil {
		return nil, err
	}

	settings, err := uow.ReviewSettingsRepository().Get(ctx)
	if err != nil {
		return nil, err
	}

	return mapper.RoleChangesToAdminResponse(requests, settings, time.Now()), nil
}

func (s *adminService) ReviewRoleChange(ctx context.Context, adminId, requestId uuid.UUID, req *dto.AdminReviewRoleChangeRequest) (*dto.AdminReviewRoleChangeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	var result *rolechange.ReviewResult
	var err error

	switch req.Action {
	case "approve":
		result, err = s.processor.Approve(ctx, uow, requestId, adminId, req.AdminNotes)
	case "reject":
		result, err = s.processor.Reject(ctx, uow, requestId, adminId, req.AdminNotes)
	case "under_review":
		result, err = s.processor.MarkUnderReview(ctx, uow, requestId, adminId)
	default:
		return nil, entity.ErrInvalidTransition
	}
	if err != nil {
		return nil, err
	}

	// Email is best-effort: the decision itself already committed.
	switch result.Status {
	case entity.RoleChangeStatusApproved:
		if mailErr := s.email.SendRoleApproved(result.UserEmail, result.UserName, string(result.NewRole)); mailErr != nil {
			s.logger.Warn("ADMIN", "Failed to send approval email", map[string]interface{}{
				"email": result.UserEmail,
				"error": mailErr.Error(),
			})
		}
	case entity.RoleChangeStatusRejected:
		if mailErr := s.email.SendRoleRejected(result.UserEmail, result.UserName, string(result.ToRole), req.AdminNotes); mailErr != nil {
			s.logger.Warn("ADMIN", "Failed to send rejection email", map[string]interface{}{
				"email": result.UserEmail,
				"error": mailErr.Error(),
			})
		}
	}

	reviewedAt := result.ReviewedAt
	return &dto.AdminReviewRoleChangeResponse{
		RequestId:  result.RequestId.String(),
		Status:     string(result.Status),
		NewRole:    string(result.NewRole),
		ReviewedAt: &reviewedAt,
	}, nil
}

func (s *adminService) GetRoleChangeStatistics(ctx context.Context, days int) (*dto.RoleChangeStatisticsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	settings, err := uow.ReviewSettingsRepository().Get(ctx)
	if err != nil {
		return nil, err
	}

	return s.processor.Statistics(ctx, uow, days, settings)
}

func (s *adminService) GetCertificationQueue(ctx context.Context, page, limit int, status string) ([]*dto.AdminCertificationListResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	certs, err := s.reviewer.GetQueue(ctx, uow, page, limit, status)
	if err != nil {
		return nil, err
	}

	settings, err := uow.ReviewSettingsRepository().Get(ctx)
	if err != nil {
		return nil, err
	}

	return mapper.CertificationsToAdminResponse(certs, settings, time.Now()), nil
}

func (s *adminService) ReviewCertification(ctx context.Context, adminId, certId uuid.UUID, req *dto.AdminReviewCertificationRequest) (*dto.AdminReviewCertificationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	result, err := s.reviewer.Review(ctx, uow, certId, adminId, req.Action, req.AdminNotes)
	if err != nil {
		return nil, err
	}

	if result.SubmitterEmail != "" {
		if mailErr := s.email.SendCertificationDecision(result.SubmitterEmail, result.PropertyLabel, string(result.Status), req.AdminNotes); mailErr != nil {
			s.logger.Warn("ADMIN", "Failed to send certification decision email", map[string]interface{}{
				"email": result.SubmitterEmail,
				"error": mailErr.Error(),
			})
		}
	}

	reviewedAt := result.ReviewedAt
	return &dto.AdminReviewCertificationResponse{
		CertificationId:     result.CertificationId.String(),
		Status:              string(result.Status),
		CertificationNumber: result.CertificationNumber,
		ReviewedAt:          &reviewedAt,
	}, nil
}

func (s *adminService) RevokeCertification(ctx context.Context, adminId, certId uuid.UUID, req *dto.AdminRevokeCertificationRequest) (*dto.AdminRevokeCertificationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	result, err := s.reviewer.Revoke(ctx, uow, certId, adminId, req.Reason)
	if err != nil {
		return nil, err
	}

	return &dto.AdminRevokeCertificationResponse{
		CertificationId: result.CertificationId.String(),
		Status:          string(result.Status),
		RevokedAt:       result.ReviewedAt,
	}, nil
}

func (s *adminService) GetReviewSettings(ctx context.Context) (*dto.ReviewSettingsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	settings, err := uow.ReviewSettingsRepository().Get(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.ReviewSettingsResponse{
		DeadlineHours: settings.DeadlineHours,
		AutoAction:    string(settings.AutoAction),
		UpdatedAt:     settings.UpdatedAt,
	}, nil
}

func (s *adminService) UpdateReviewSettings(ctx context.Context, adminId uuid.UUID, req *dto.UpdateReviewSettingsRequest) (*dto.ReviewSettingsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	settings, err := uow.ReviewSettingsRepository().Get(ctx)
	if err != nil {
		return nil, err
	}

	settings.DeadlineHours = req.DeadlineHours
	settings.AutoAction = entity.ReviewAutoAction(req.AutoAction)
	settings.UpdatedBy = &adminId

	if err := uow.ReviewSettingsRepository().Update(ctx, settings); err != nil {
		return nil, err
	}

	s.logger.Info("ADMIN", "Updated review settings", map[string]interface{}{
		"deadline_hours": req.DeadlineHours,
		"auto_action":    req.AutoAction,
		"updated_by":     adminId.String(),
	})

	return &dto.ReviewSettingsResponse{
		DeadlineHours: settings.DeadlineHours,
		AutoAction:    string(settings.AutoAction),
		UpdatedAt:     settings.UpdatedAt,
	}, nil
}

func (s *adminService) GetDashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	settings, err := uow.ReviewSettingsRepository().Get(ctx)
	if err != nil {
		return nil, err
	}

	return s.aggregator.GetStats(ctx, uow, settings)
}

func (s *adminService) GetLogs(level string, page, limit int) ([]dto.AdminLogEntry, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	entries, err := s.logger.GetLogs(level, limit, offset)
	if err != nil {
		return nil, err
	}

	res := make([]dto.AdminLogEntry, 0, len(entries))
	for _, e := range entries {
		entry := dto.AdminLogEntry{
			Id:        e.Id,
			Timestamp: e.Timestamp,
			Level:     e.Level,
			Module:    e.Module,
			Message:   e.Message,
		}
		if len(e.Details) > 0 {
			if raw, err := json.Marshal(e.Details); err == nil {
				entry.Details = string(raw)
			}
		}
		res = append(res, entry)
	}
	return res, nil
}

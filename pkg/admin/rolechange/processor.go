package rolechange

import (
	"context"
	"time"

	"immoflow-be/internal/dto"
	"immoflow-be/internal/entity"
	"immoflow-be/internal/pkg/logger"
	"immoflow-be/internal/repository/specification"
	"immoflow-be/internal/repository/unitofwork"
	adminEvents "immoflow-be/pkg/admin/events"

	"github.com/google/uuid"
)

// ReviewResult contains the outcome of an admin review action
type ReviewResult struct {
	RequestId  uuid.UUID
	Status     entity.RoleChangeStatus
	ToRole     entity.UserRole
	NewRole    entity.UserRole
	UserEmail  string
	UserName   string
	ReviewedAt time.Time
}

// Processor handles the role-change review workflow
type Processor struct {
	logger    logger.ILogger
	publisher adminEvents.Publisher
}

// NewProcessor creates a new role-change processor
func NewProcessor(logger logger.ILogger, publisher adminEvents.Publisher) *Processor {
	return &Processor{
		logger:    logger,
		publisher: publisher,
	}
}

// GetQueue retrieves paginated requests with optional status filter
func (p *Processor) GetQueue(ctx context.Context, uow unitofwork.UnitOfWork, page, limit int, status string) ([]*entity.RoleChangeRequest, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	var specs []specification.Specification
	if status != "" {
		specs = append(specs, specification.Filter("status", status))
	}
	specs = append(specs, specification.Pagination{Limit: limit, Offset: offset})
	specs = append(specs, specification.OrderBy{Field: "created_at", Desc: true})

	return uow.RoleChangeRepository().FindAllWithUser(ctx, specs...)
}

// Approve grants the requested role. The user's role flips inside the same
// transaction that closes the request, so readers never observe an approved
// request with an unchanged user.
func (p *Processor) Approve(ctx context.Context, uow unitofwork.UnitOfWork, requestId, adminId uuid.UUID, notes string) (*ReviewResult, error) {
	return p.decide(ctx, uow, requestId, &adminId, notes, entity.RoleChangeStatusApproved, false)
}

// Reject declines the request and records the reason.
func (p *Processor) Reject(ctx context.Context, uow unitofwork.UnitOfWork, requestId, adminId uuid.UUID, notes string) (*ReviewResult, error) {
	return p.decide(ctx, uow, requestId, &adminId, notes, entity.RoleChangeStatusRejected, false)
}

// AutoClose applies the configured deadline policy to an overdue request.
// No reviewer is recorded and the emitted event is flagged as automatic.
func (p *Processor) AutoClose(ctx context.Context, uow unitofwork.UnitOfWork, requestId uuid.UUID, decision entity.RoleChangeStatus, notes string) (*ReviewResult, error) {
	return p.decide(ctx, uow, requestId, nil, notes, decision, true)
}

// MarkUnderReview moves a pending request into under_review so other admins
// see it is being handled.
func (p *Processor) MarkUnderReview(ctx context.Context, uow unitofwork.UnitOfWork, requestId, adminId uuid.UUID) (*ReviewResult, error) {
	request, err := uow.RoleChangeRepository().FindOne(ctx, specification.ByID{ID: requestId})
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, entity.ErrRequestNotFound
	}
	if !request.Status.CanTransition(entity.RoleChangeStatusUnderReview) {
		return nil, entity.ErrAlreadyProcessed
	}

	now := time.Now()
	request.Status = entity.RoleChangeStatusUnderReview
	request.ReviewedBy = &adminId

	if err := uow.RoleChangeRepository().Update(ctx, request); err != nil {
		return nil, err
	}

	return &ReviewResult{
		RequestId:  requestId,
		Status:     request.Status,
		ReviewedAt: now,
	}, nil
}

func (p *Processor) decide(ctx context.Context, uow unitofwork.UnitOfWork, requestId uuid.UUID, adminId *uuid.UUID, notes string, decision entity.RoleChangeStatus, auto bool) (*ReviewResult, error) {
	// 1. Find the request
	request, err := uow.RoleChangeRepository().FindOne(ctx, specification.ByID{ID: requestId})
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, entity.ErrRequestNotFound
	}

	// 2. Check the transition table
	if request.Status.IsTerminal() {
		return nil, entity.ErrAlreadyProcessed
	}
	if !request.Status.CanTransition(decision) {
		return nil, entity.ErrInvalidTransition
	}

	// 3. Start transaction
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	// 4. Update request status
	now := time.Now()
	request.Status = decision
	request.AdminNotes = notes
	request.ReviewedBy = adminId
	request.ReviewedAt = &now
	if decision == entity.RoleChangeStatusApproved {
		request.ApprovedAt = &now
	}

	if err := uow.RoleChangeRepository().Update(ctx, request); err != nil {
		return nil, err
	}

	// 5. On approval, flip the user's role in the same transaction
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: request.UserID})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, entity.ErrRequestNotFound
	}

	result := &ReviewResult{
		RequestId:  requestId,
		Status:     decision,
		ToRole:     request.ToRole,
		UserEmail:  user.Email,
		UserName:   user.FullName,
		ReviewedAt: now,
	}

	if decision == entity.RoleChangeStatusApproved {
		if err := uow.UserRepository().UpdateRole(ctx, user.Id, request.ToRole); err != nil {
			return nil, err
		}
		result.NewRole = request.ToRole
	}

	// 6. Log the action
	p.logger.Info("ADMIN", "Reviewed role change request", map[string]interface{}{
		"requestId": requestId.String(),
		"userId":    request.UserID.String(),
		"toRole":    string(request.ToRole),
		"decision":  string(decision),
		"notes":     notes,
		"auto":      auto,
	})

	// 7. Emit the decision event
	p.publisher.PublishRoleRequestReviewed(ctx, requestId, request.UserID, string(request.ToRole), string(decision), notes, auto)

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return result, nil
}

// Statistics aggregates request counts over the trailing period.
func (p *Processor) Statistics(ctx context.Context, uow unitofwork.UnitOfWork, days int, settings *entity.ReviewSettings) (*dto.RoleChangeStatisticsResponse, error) {
	if days < 1 {
		days = 30
	}
	since := time.Now().AddDate(0, 0, -days)

	byStatus, err := uow.RoleChangeRepository().CountByStatusSince(ctx, since)
	if err != nil {
		return nil, err
	}

	var total, decided, approved int64
	for status, count := range byStatus {
		total += count
		switch entity.RoleChangeStatus(status) {
		case entity.RoleChangeStatusApproved:
			approved += count
			decided += count
		case entity.RoleChangeStatusRejected:
			decided += count
		}
	}

	approvalRate := 0.0
	if decided > 0 {
		approvalRate = float64(approved) / float64(decided)
	}

	avgHours, err := uow.RoleChangeRepository().AvgReviewHoursSince(ctx, since)
	if err != nil {
		return nil, err
	}

	lateCount, err := uow.RoleChangeRepository().Count(ctx,
		specification.OpenRequests{},
		specification.CreatedBefore{Cutoff: settings.Deadline(time.Now())},
	)
	if err != nil {
		return nil, err
	}

	daily, err := uow.RoleChangeRepository().DailyCountsSince(ctx, since)
	if err != nil {
		return nil, err
	}

	var breakdown []dto.DailyCount
	for d := 0; d < days; d++ {
		date := since.AddDate(0, 0, d).Format("2006-01-02")
		if count, ok := daily[date]; ok {
			breakdown = append(breakdown, dto.DailyCount{Date: date, Count: count})
		}
	}

	return &dto.RoleChangeStatisticsResponse{
		PeriodDays:     days,
		Total:          total,
		ByStatus:       byStatus,
		ApprovalRate:   approvalRate,
		AvgReviewHours: avgHours,
		LateCount:      lateCount,
		DailyBreakdown: breakdown,
	}, nil
}

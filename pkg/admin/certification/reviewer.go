package certification

import (
	"context"
	"fmt"
	"time"

	"immoflow-be/internal/entity"
	"immoflow-be/internal/pkg/logger"
	"immoflow-be/internal/repository/specification"
	"immoflow-be/internal/repository/unitofwork"
	adminEvents "immoflow-be/pkg/admin/events"

	"github.com/google/uuid"
)

// certValidity is how long an approved certification stays valid.
const certValidity = 365 * 24 * time.Hour

// ReviewResult contains the outcome of a certification review
type ReviewResult struct {
	CertificationId     uuid.UUID
	Status              entity.CertificationStatus
	CertificationNumber string
	PropertyLabel       string
	SubmitterEmail      string
	ReviewedAt          time.Time
}

// Reviewer handles the certification review workflow
type Reviewer struct {
	logger    logger.ILogger
	publisher adminEvents.Publisher
}

// NewReviewer creates a new certification reviewer
func NewReviewer(logger logger.ILogger, publisher adminEvents.Publisher) *Reviewer {
	return &Reviewer{
		logger:    logger,
		publisher: publisher,
	}
}

// GetQueue retrieves paginated certifications with optional status filter
func (r *Reviewer) GetQueue(ctx context.Context, uow unitofwork.UnitOfWork, page, limit int, status string) ([]*entity.Certification, error) {
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
	specs = append(specs, specification.OrderBy{Field: "requested_at", Desc: true})

	return uow.CertificationRepository().FindAllWithLease(ctx, specs...)
}

// Review applies approve/reject/under_review to a certification. Approval
// stamps the certification number and validity window.
func (r *Reviewer) Review(ctx context.Context, uow unitofwork.UnitOfWork, certId, adminId uuid.UUID, action, notes string) (*ReviewResult, error) {
	cert, err := uow.CertificationRepository().FindOne(ctx, specification.ByID{ID: certId})
	if err != nil {
		return nil, err
	}
	if cert == nil {
		return nil, entity.ErrRequestNotFound
	}

	var target entity.CertificationStatus
	switch action {
	case "approve":
		target = entity.CertificationStatusApproved
	case "reject":
		target = entity.CertificationStatusRejected
	case "under_review":
		target = entity.CertificationStatusUnderReview
	default:
		return nil, entity.ErrInvalidTransition
	}

	if cert.Status.IsTerminal() {
		return nil, entity.ErrAlreadyProcessed
	}
	if !cert.Status.CanTransition(target) {
		return nil, entity.ErrInvalidTransition
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	now := time.Now()
	cert.Status = target
	cert.ReviewerID = &adminId
	cert.ReviewerNotes = notes

	if target == entity.CertificationStatusApproved || target == entity.CertificationStatusRejected {
		cert.ReviewedAt = &now
	}
	if target == entity.CertificationStatusApproved {
		cert.CertificationNumber = generateNumber(certId, now)
		expires := now.Add(certValidity)
		cert.ExpiresAt = &expires
	}

	if err := uow.CertificationRepository().Update(ctx, cert); err != nil {
		return nil, err
	}

	r.logger.Info("ADMIN", "Reviewed certification", map[string]interface{}{
		"certificationId": certId.String(),
		"leaseId":         cert.LeaseID.String(),
		"action":          action,
		"notes":           notes,
	})

	result := &ReviewResult{
		CertificationId:     certId,
		Status:              target,
		CertificationNumber: cert.CertificationNumber,
		ReviewedAt:          now,
	}

	// Notify both lease parties on a final decision.
	if target == entity.CertificationStatusApproved || target == entity.CertificationStatusRejected {
		lease, err := uow.LeaseRepository().FindOne(ctx, specification.ByID{ID: cert.LeaseID})
		if err == nil && lease != nil {
			result.PropertyLabel = lease.PropertyLabel
			r.publisher.PublishCertificationReviewed(ctx, certId, cert.LeaseID, string(target), cert.CertificationNumber, lease.Parties())
		}
		result.SubmitterEmail = r.submitterEmail(ctx, uow, cert)
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return result, nil
}

// AutoClose applies the configured deadline policy to an overdue
// certification. No reviewer is recorded; the lease parties are still
// notified of the decision.
func (r *Reviewer) AutoClose(ctx context.Context, uow unitofwork.UnitOfWork, certId uuid.UUID, decision entity.CertificationStatus, notes string) (*ReviewResult, error) {
	cert, err := uow.CertificationRepository().FindOne(ctx, specification.ByID{ID: certId})
	if err != nil {
		return nil, err
	}
	if cert == nil {
		return nil, entity.ErrRequestNotFound
	}

	if cert.Status.IsTerminal() {
		return nil, entity.ErrAlreadyProcessed
	}
	if !cert.Status.CanTransition(decision) {
		return nil, entity.ErrInvalidTransition
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	now := time.Now()
	cert.Status = decision
	cert.ReviewerID = nil
	cert.ReviewerNotes = notes
	cert.ReviewedAt = &now

	if decision == entity.CertificationStatusApproved {
		cert.CertificationNumber = generateNumber(certId, now)
		expires := now.Add(certValidity)
		cert.ExpiresAt = &expires
	}

	if err := uow.CertificationRepository().Update(ctx, cert); err != nil {
		return nil, err
	}

	r.logger.Info("ADMIN", "Auto-closed overdue certification", map[string]interface{}{
		"certificationId": certId.String(),
		"leaseId":         cert.LeaseID.String(),
		"decision":        string(decision),
		"auto":            true,
	})

	result := &ReviewResult{
		CertificationId:     certId,
		Status:              decision,
		CertificationNumber: cert.CertificationNumber,
		ReviewedAt:          now,
	}

	lease, err := uow.LeaseRepository().FindOne(ctx, specification.ByID{ID: cert.LeaseID})
	if err == nil && lease != nil {
		result.PropertyLabel = lease.PropertyLabel
		r.publisher.PublishCertificationReviewed(ctx, certId, cert.LeaseID, string(decision), cert.CertificationNumber, lease.Parties())
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return result, nil
}

// submitterEmail resolves the requester's address from the submitted_by
// metadata left at submission time. Empty when it cannot be resolved.
func (r *Reviewer) submitterEmail(ctx context.Context, uow unitofwork.UnitOfWork, cert *entity.Certification) string {
	raw, ok := cert.Metadata["submitted_by"].(string)
	if !ok {
		return ""
	}
	submitterId, err := uuid.Parse(raw)
	if err != nil {
		return ""
	}
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: submitterId})
	if err != nil || user == nil {
		return ""
	}
	return user.Email
}

// Revoke withdraws an approved certification. Only approved certifications
// are revocable.
func (r *Reviewer) Revoke(ctx context.Context, uow unitofwork.UnitOfWork, certId, adminId uuid.UUID, reason string) (*ReviewResult, error) {
	cert, err := uow.CertificationRepository().FindOne(ctx, specification.ByID{ID: certId})
	if err != nil {
		return nil, err
	}
	if cert == nil {
		return nil, entity.ErrRequestNotFound
	}

	if !cert.Status.CanTransition(entity.CertificationStatusRevoked) {
		return nil, entity.ErrInvalidTransition
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	now := time.Now()
	cert.Status = entity.CertificationStatusRevoked
	cert.ReviewerID = &adminId
	cert.ReviewerNotes = reason

	if err := uow.CertificationRepository().Update(ctx, cert); err != nil {
		return nil, err
	}

	r.logger.Warn("ADMIN", "Revoked certification", map[string]interface{}{
		"certificationId": certId.String(),
		"reason":          reason,
	})

	lease, err := uow.LeaseRepository().FindOne(ctx, specification.ByID{ID: cert.LeaseID})
	if err == nil && lease != nil {
		r.publisher.PublishCertificationRevoked(ctx, certId, cert.LeaseID, reason, lease.Parties())
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return &ReviewResult{
		CertificationId: certId,
		Status:          entity.CertificationStatusRevoked,
		ReviewedAt:      now,
	}, nil
}

// generateNumber builds a human-readable certification number. The UUID
// prefix keeps it unique even when two approvals land the same second.
func generateNumber(certId uuid.UUID, at time.Time) string {
	return fmt.Sprintf("CERT-%s-%s", at.Format("20060102"), certId.String()[:8])
}

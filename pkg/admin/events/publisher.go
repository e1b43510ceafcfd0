package events

import (
	"context"
	"time"

	"immoflow-be/internal/pkg/logger"
	pkgEvents "immoflow-be/pkg/events"
	pkgNats "immoflow-be/pkg/nats"

	"github.com/google/uuid"
)

// Publisher abstracts event publishing for workflow transitions.
type Publisher interface {
	PublishRoleRequestReviewed(ctx context.Context, requestId, userId uuid.UUID, toRole, decision, notes string, auto bool)
	PublishRoleRequestSubmitted(ctx context.Context, requestId, userId uuid.UUID, fromRole, toRole string)
	PublishRoleRequestCancelled(ctx context.Context, requestId, userId uuid.UUID, toRole string)
	PublishCertificationSubmitted(ctx context.Context, certId, leaseId uuid.UUID, propertyLabel string)
	PublishCertificationReviewed(ctx context.Context, certId, leaseId uuid.UUID, decision, certNumber string, parties []uuid.UUID)
	PublishCertificationRevoked(ctx context.Context, certId, leaseId uuid.UUID, reason string, parties []uuid.UUID)
	PublishMandateChanged(ctx context.Context, mandateId, ownerId, agencyId uuid.UUID, eventType string)
}

// NatsPublisher implements Publisher using NATS
type NatsPublisher struct {
	publisher *pkgNats.Publisher
	logger    logger.ILogger
}

// NewNatsPublisher creates a new NATS-based event publisher
func NewNatsPublisher(publisher *pkgNats.Publisher, logger logger.ILogger) *NatsPublisher {
	return &NatsPublisher{
		publisher: publisher,
		logger:    logger,
	}
}

func (p *NatsPublisher) emit(ctx context.Context, eventType string, data map[string]interface{}) {
	if p.publisher == nil {
		return
	}

	evt := pkgEvents.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}

	if err := p.publisher.Publish(ctx, evt); err != nil {
		p.logger.Error("ADMIN", "Failed to publish "+eventType+" event", map[string]interface{}{"error": err.Error()})
	}
}

// PublishRoleRequestSubmitted emits ROLE_REQUEST_SUBMITTED so admins see new queue items
func (p *NatsPublisher) PublishRoleRequestSubmitted(ctx context.Context, requestId, userId uuid.UUID, fromRole, toRole string) {
	p.emit(ctx, pkgEvents.RoleRequestSubmitted, map[string]interface{}{
		"request_id":  requestId.String(),
		"user_id":     userId.String(),
		"from_role":   fromRole,
		"to_role":     toRole,
		"entity_type": "role_change_request",
		"entity_id":   requestId.String(),
	})
}

// PublishRoleRequestCancelled emits ROLE_REQUEST_CANCELLED when the
// requester withdraws an open request.
func (p *NatsPublisher) PublishRoleRequestCancelled(ctx context.Context, requestId, userId uuid.UUID, toRole string) {
	p.emit(ctx, pkgEvents.RoleRequestCancelled, map[string]interface{}{
		"request_id":  requestId.String(),
		"user_id":     userId.String(),
		"to_role":     toRole,
		"entity_type": "role_change_request",
		"entity_id":   requestId.String(),
	})
}

// PublishCertificationSubmitted emits CERTIFICATION_SUBMITTED so admins see
// new certification queue items.
func (p *NatsPublisher) PublishCertificationSubmitted(ctx context.Context, certId, leaseId uuid.UUID, propertyLabel string) {
	p.emit(ctx, pkgEvents.CertificationSubmitted, map[string]interface{}{
		"certification_id": certId.String(),
		"lease_id":         leaseId.String(),
		"property_label":   propertyLabel,
		"entity_type":      "certification",
		"entity_id":        certId.String(),
	})
}

// PublishRoleRequestReviewed emits the approval/rejection outcome. The auto
// flag marks decisions applied by the deadline sweep rather than an admin.
func (p *NatsPublisher) PublishRoleRequestReviewed(ctx context.Context, requestId, userId uuid.UUID, toRole, decision, notes string, auto bool) {
	eventType := pkgEvents.RoleRequestApproved
	if decision == "rejected" {
		eventType = pkgEvents.RoleRequestRejected
	}
	if auto {
		eventType = pkgEvents.RoleRequestAutoClosed
	}

	p.emit(ctx, eventType, map[string]interface{}{
		"request_id":  requestId.String(),
		"user_id":     userId.String(),
		"to_role":     toRole,
		"decision":    decision,
		"notes":       notes,
		"auto":        auto,
		"entity_type": "role_change_request",
		"entity_id":   requestId.String(),
	})
}

// PublishCertificationReviewed emits the certification decision toward every
// lease party.
func (p *NatsPublisher) PublishCertificationReviewed(ctx context.Context, certId, leaseId uuid.UUID, decision, certNumber string, parties []uuid.UUID) {
	eventType := pkgEvents.CertificationApproved
	if decision == "rejected" {
		eventType = pkgEvents.CertificationRejected
	}

	p.emit(ctx, eventType, map[string]interface{}{
		"certification_id":     certId.String(),
		"lease_id":             leaseId.String(),
		"decision":             decision,
		"certification_number": certNumber,
		"parties":              partyStrings(parties),
		"entity_type":          "certification",
		"entity_id":            certId.String(),
	})
}

// PublishCertificationRevoked emits CERTIFICATION_REVOKED
func (p *NatsPublisher) PublishCertificationRevoked(ctx context.Context, certId, leaseId uuid.UUID, reason string, parties []uuid.UUID) {
	p.emit(ctx, pkgEvents.CertificationRevoked, map[string]interface{}{
		"certification_id": certId.String(),
		"lease_id":         leaseId.String(),
		"reason":           reason,
		"parties":          partyStrings(parties),
		"entity_type":      "certification",
		"entity_id":        certId.String(),
	})
}

// PublishMandateChanged emits mandate lifecycle events (invited, accepted,
// terminated, expiring soon).
func (p *NatsPublisher) PublishMandateChanged(ctx context.Context, mandateId, ownerId, agencyId uuid.UUID, eventType string) {
	p.emit(ctx, eventType, map[string]interface{}{
		"mandate_id":  mandateId.String(),
		"owner_id":    ownerId.String(),
		"agency_id":   agencyId.String(),
		"entity_type": "mandate",
		"entity_id":   mandateId.String(),
	})
}

func partyStrings(ids []uuid.UUID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}

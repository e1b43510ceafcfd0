package events

import "time"

// Event defines the contract for all workflow events.
type Event interface {
	// EventType returns the unique code for this event (e.g. "ROLE_REQUEST_APPROVED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Workflow event codes. Each code must have a matching row in the
// alert_types registry for the alert worker to fan it out.
const (
	RoleRequestSubmitted  = "ROLE_REQUEST_SUBMITTED"
	RoleRequestApproved   = "ROLE_REQUEST_APPROVED"
	RoleRequestRejected   = "ROLE_REQUEST_REJECTED"
	RoleRequestCancelled  = "ROLE_REQUEST_CANCELLED"
	RoleRequestAutoClosed = "ROLE_REQUEST_AUTO_CLOSED"

	CertificationSubmitted = "CERTIFICATION_SUBMITTED"
	CertificationApproved  = "CERTIFICATION_APPROVED"
	CertificationRejected  = "CERTIFICATION_REJECTED"
	CertificationRevoked   = "CERTIFICATION_REVOKED"

	MandateInvited      = "MANDATE_INVITED"
	MandateAccepted     = "MANDATE_ACCEPTED"
	MandateTerminated   = "MANDATE_TERMINATED"
	MandateExpiringSoon = "MANDATE_EXPIRING_SOON"
)

// New builds a BaseEvent stamped with the current time.
func New(eventType string, data map[string]interface{}) Event {
	return BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
}

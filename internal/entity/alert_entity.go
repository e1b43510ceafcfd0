package entity

import (
	"time"

	"github.com/google/uuid"
)

type AlertSeverity string

const (
	AlertSeverityInfo     AlertSeverity = "info"
	AlertSeverityWarning  AlertSeverity = "warning"
	AlertSeverityCritical AlertSeverity = "critical"
)

// Alert is a write-only signal from a workflow transition to dashboards.
// At-most-once, best-effort: emission failures never block the transition
// that produced them. Exactly one of TargetRole / TargetUserID is set.
type Alert struct {
	ID             uuid.UUID
	AlertType      string
	Title          string
	Message        string
	Severity       AlertSeverity
	TargetRole     *UserRole
	TargetUserID   *uuid.UUID
	ActionRequired bool
	Category       string
	EntityType     string
	EntityID       *uuid.UUID
	Metadata       map[string]interface{}
	Dismissed      bool
	CreatedAt      time.Time
}

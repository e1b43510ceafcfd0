package entity

import (
	"time"

	"github.com/google/uuid"
)

type LeaseStatus string

const (
	LeaseStatusDraft      LeaseStatus = "draft"
	LeaseStatusActive     LeaseStatus = "active"
	LeaseStatusTerminated LeaseStatus = "terminated"
)

type Lease struct {
	ID            uuid.UUID
	PropertyLabel string
	OwnerID       uuid.UUID
	TenantID      uuid.UUID
	MonthlyRent   float64
	Status        LeaseStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Parties returns the user ids notified on certification transitions.
func (l *Lease) Parties() []uuid.UUID {
	return []uuid.UUID{l.OwnerID, l.TenantID}
}

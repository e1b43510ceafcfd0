package entity

import (
	"time"

	"github.com/google/uuid"
)

// MandateStatus represents the stored state of an agency mandate.
// Expiry is NOT a stored transition: it is derived from EndDate at read
// time and must never be used for authorization decisions.
type MandateStatus string

const (
	MandateStatusPending    MandateStatus = "pending"
	MandateStatusActive     MandateStatus = "active"
	MandateStatusTerminated MandateStatus = "terminated"
	MandateStatusExpired    MandateStatus = "expired"
)

func (s MandateStatus) CanTransition(to MandateStatus) bool {
	switch s {
	case MandateStatusPending:
		return to == MandateStatusActive || to == MandateStatusTerminated
	case MandateStatusActive:
		return to == MandateStatusTerminated || to == MandateStatusExpired
	}
	return false
}

type Mandate struct {
	ID             uuid.UUID
	OwnerID        uuid.UUID
	AgencyID       uuid.UUID
	Status         MandateStatus
	CommissionRate *float64
	FixedFee       *float64
	StartDate      time.Time
	EndDate        time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Owner  User
	Agency User
}

// ExpiringSoonWindow is the display window used by dashboards.
const ExpiringSoonWindow = 30 * 24 * time.Hour

// IsExpired derives expiry from the end date. Two readers can disagree
// around the boundary instant; acceptable for display only.
func (m *Mandate) IsExpired(now time.Time) bool {
	return m.Status == MandateStatusActive && now.After(m.EndDate)
}

// IsExpiringSoon reports whether an active mandate ends within the window.
func (m *Mandate) IsExpiringSoon(now time.Time) bool {
	if m.Status != MandateStatusActive || m.IsExpired(now) {
		return false
	}
	return m.EndDate.Sub(now) <= ExpiringSoonWindow
}

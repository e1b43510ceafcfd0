package entity

import (
	"time"

	"github.com/google/uuid"
)

// ReviewAutoAction is the operator-configured policy applied by the
// deadline sweep to overdue pending records.
type ReviewAutoAction string

const (
	// AutoActionNone only flags overdue records as late for display.
	AutoActionNone    ReviewAutoAction = "none"
	AutoActionApprove ReviewAutoAction = "approve"
	AutoActionReject  ReviewAutoAction = "reject"
)

func (a ReviewAutoAction) Valid() bool {
	return a == AutoActionNone || a == AutoActionApprove || a == AutoActionReject
}

// ReviewSettings is a single-row operator configuration for review queues.
type ReviewSettings struct {
	ID            uint
	DeadlineHours int
	AutoAction    ReviewAutoAction
	UpdatedBy     *uuid.UUID
	UpdatedAt     time.Time
}

// Deadline returns the cutoff instant: anything requested before it is
// overdue under the current settings.
func (s *ReviewSettings) Deadline(now time.Time) time.Time {
	return now.Add(-time.Duration(s.DeadlineHours) * time.Hour)
}

// IsLate reports whether a record requested at the given time has exceeded
// the configured deadline.
func (s *ReviewSettings) IsLate(requestedAt, now time.Time) bool {
	if s.DeadlineHours <= 0 {
		return false
	}
	return requestedAt.Before(s.Deadline(now))
}

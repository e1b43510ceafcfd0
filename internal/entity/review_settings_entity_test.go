package entity

import (
	"testing"
	"time"
)

func TestReviewSettingsIsLate(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		hours       int
		requestedAt time.Time
		want        bool
	}{
		{"well within deadline", 72, now.Add(-24 * time.Hour), false},
		{"just past deadline", 72, now.Add(-73 * time.Hour), true},
		{"exactly at deadline", 72, now.Add(-72 * time.Hour), false},
		{"zero deadline never flags", 0, now.Add(-1000 * time.Hour), false},
		{"negative deadline never flags", -5, now.Add(-1000 * time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &ReviewSettings{DeadlineHours: tt.hours}
			if got := s.IsLate(tt.requestedAt, now); got != tt.want {
				t.Errorf("IsLate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReviewAutoActionValid(t *testing.T) {
	for _, a := range []ReviewAutoAction{AutoActionNone, AutoActionApprove, AutoActionReject} {
		if !a.Valid() {
			t.Errorf("Valid(%s) = false, want true", a)
		}
	}
	if ReviewAutoAction("escalate").Valid() {
		t.Error("unknown auto action should be invalid")
	}
}

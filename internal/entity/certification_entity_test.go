package entity

import (
	"testing"
)

func TestCertificationStatusCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from CertificationStatus
		to   CertificationStatus
		want bool
	}{
		{"pending to under_review", CertificationStatusPending, CertificationStatusUnderReview, true},
		{"pending to approved", CertificationStatusPending, CertificationStatusApproved, true},
		{"pending to rejected", CertificationStatusPending, CertificationStatusRejected, true},
		{"pending to expired", CertificationStatusPending, CertificationStatusExpired, true},
		{"under_review to approved", CertificationStatusUnderReview, CertificationStatusApproved, true},
		{"under_review to rejected", CertificationStatusUnderReview, CertificationStatusRejected, true},
		{"under_review back to pending", CertificationStatusUnderReview, CertificationStatusPending, false},
		{"approved to revoked", CertificationStatusApproved, CertificationStatusRevoked, true},
		{"approved to rejected", CertificationStatusApproved, CertificationStatusRejected, false},
		{"rejected is frozen", CertificationStatusRejected, CertificationStatusApproved, false},
		{"revoked is frozen", CertificationStatusRevoked, CertificationStatusApproved, false},
		{"expired is frozen", CertificationStatusExpired, CertificationStatusUnderReview, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.CanTransition(tt.to); got != tt.want {
				t.Errorf("CanTransition(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestCertificationStatusIsTerminal(t *testing.T) {
	// Approved stays non-terminal because it remains revocable.
	if CertificationStatusApproved.IsTerminal() {
		t.Error("approved should not be terminal, it can still be revoked")
	}
	for _, s := range []CertificationStatus{CertificationStatusRejected, CertificationStatusExpired, CertificationStatusRevoked} {
		if !s.IsTerminal() {
			t.Errorf("IsTerminal(%s) = false, want true", s)
		}
	}
}

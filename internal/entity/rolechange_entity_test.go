package entity

import (
	"testing"
)

func TestRoleChangeStatusCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from RoleChangeStatus
		to   RoleChangeStatus
		want bool
	}{
		{"pending to under_review", RoleChangeStatusPending, RoleChangeStatusUnderReview, true},
		{"pending to approved", RoleChangeStatusPending, RoleChangeStatusApproved, true},
		{"pending to rejected", RoleChangeStatusPending, RoleChangeStatusRejected, true},
		{"pending to cancelled", RoleChangeStatusPending, RoleChangeStatusCancelled, true},
		{"under_review to approved", RoleChangeStatusUnderReview, RoleChangeStatusApproved, true},
		{"under_review to rejected", RoleChangeStatusUnderReview, RoleChangeStatusRejected, true},
		{"under_review to cancelled", RoleChangeStatusUnderReview, RoleChangeStatusCancelled, true},
		{"under_review back to pending", RoleChangeStatusUnderReview, RoleChangeStatusPending, false},
		{"approved is frozen", RoleChangeStatusApproved, RoleChangeStatusRejected, false},
		{"rejected is frozen", RoleChangeStatusRejected, RoleChangeStatusApproved, false},
		{"cancelled is frozen", RoleChangeStatusCancelled, RoleChangeStatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.CanTransition(tt.to); got != tt.want {
				t.Errorf("CanTransition(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestRoleChangeStatusIsTerminal(t *testing.T) {
	terminal := []RoleChangeStatus{RoleChangeStatusApproved, RoleChangeStatusRejected, RoleChangeStatusCancelled}
	open := []RoleChangeStatus{RoleChangeStatusPending, RoleChangeStatusUnderReview}

	for _, s := range terminal {
		if !s.IsTerminal() {
			t.Errorf("IsTerminal(%s) = false, want true", s)
		}
	}
	for _, s := range open {
		if s.IsTerminal() {
			t.Errorf("IsTerminal(%s) = true, want false", s)
		}
	}

	// Unknown statuses must not unlock any transition.
	if !RoleChangeStatus("garbage").IsTerminal() {
		t.Error("unknown status should be treated as terminal")
	}
}

func TestUserRoleIsUpgradeTarget(t *testing.T) {
	tests := []struct {
		role UserRole
		want bool
	}{
		{UserRoleOwner, true},
		{UserRoleAgency, true},
		{UserRoleTenant, false},
		{UserRoleAdmin, false},
		{UserRole("superuser"), false},
	}

	for _, tt := range tests {
		if got := tt.role.IsUpgradeTarget(); got != tt.want {
			t.Errorf("IsUpgradeTarget(%s) = %v, want %v", tt.role, got, tt.want)
		}
	}
}

package entity

import (
	"time"

	"github.com/google/uuid"
)

// RoleChangeStatus represents the lifecycle state of a role-change request.
type RoleChangeStatus string

const (
	RoleChangeStatusPending     RoleChangeStatus = "pending"
	RoleChangeStatusUnderReview RoleChangeStatus = "under_review"
	RoleChangeStatusApproved    RoleChangeStatus = "approved"
	RoleChangeStatusRejected    RoleChangeStatus = "rejected"
	RoleChangeStatusCancelled   RoleChangeStatus = "cancelled"
)

// IsTerminal reports whether no further transition is allowed.
func (s RoleChangeStatus) IsTerminal() bool {
	switch s {
	case RoleChangeStatusApproved, RoleChangeStatusRejected, RoleChangeStatusCancelled:
		return true
	case RoleChangeStatusPending, RoleChangeStatusUnderReview:
		return false
	}
	return true // unknown statuses are treated as frozen
}

// CanTransition checks the request transition table. A request may only
// leave pending/under_review, and cancellation follows the same rule.
func (s RoleChangeStatus) CanTransition(to RoleChangeStatus) bool {
	switch s {
	case RoleChangeStatusPending:
		return to == RoleChangeStatusUnderReview ||
			to == RoleChangeStatusApproved ||
			to == RoleChangeStatusRejected ||
			to == RoleChangeStatusCancelled
	case RoleChangeStatusUnderReview:
		return to == RoleChangeStatusApproved ||
			to == RoleChangeStatusRejected ||
			to == RoleChangeStatusCancelled
	}
	return false
}

type RoleChangeRequest struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	FromRole    UserRole
	ToRole      UserRole
	Status      RoleChangeStatus
	RequestData map[string]interface{}
	Documents   map[string]string // document type -> stored URL
	AdminNotes  string
	ReviewedBy  *uuid.UUID
	ReviewedAt  *time.Time
	ApprovedAt  *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	User User
}

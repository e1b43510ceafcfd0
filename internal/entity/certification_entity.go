package entity

import (
	"time"

	"github.com/google/uuid"
)

// CertificationStatus represents the lifecycle state of a lease certification.
type CertificationStatus string

const (
	CertificationStatusPending     CertificationStatus = "pending"
	CertificationStatusUnderReview CertificationStatus = "under_review"
	CertificationStatusApproved    CertificationStatus = "approved"
	CertificationStatusRejected    CertificationStatus = "rejected"
	CertificationStatusExpired     CertificationStatus = "expired"
	CertificationStatusRevoked     CertificationStatus = "revoked"
)

// IsTerminal reports whether the certification can no longer move.
// Approved is terminal for the happy path but remains revocable.
func (s CertificationStatus) IsTerminal() bool {
	switch s {
	case CertificationStatusRejected, CertificationStatusExpired, CertificationStatusRevoked:
		return true
	}
	return false
}

// CanTransition checks the certification transition table. Transitions are
// one-directional; nothing ever re-enters pending.
func (s CertificationStatus) CanTransition(to CertificationStatus) bool {
	switch s {
	case CertificationStatusPending:
		return to == CertificationStatusUnderReview ||
			to == CertificationStatusApproved ||
			to == CertificationStatusRejected ||
			to == CertificationStatusExpired
	case CertificationStatusUnderReview:
		return to == CertificationStatusApproved ||
			to == CertificationStatusRejected ||
			to == CertificationStatusExpired
	case CertificationStatusApproved:
		return to == CertificationStatusRevoked
	}
	return false
}

type Certification struct {
	ID                  uuid.UUID
	LeaseID             uuid.UUID
	CertificationNumber string
	Status              CertificationStatus
	ReviewerID          *uuid.UUID
	ReviewerNotes       string
	Documents           []string
	Metadata            map[string]interface{}
	RequestedAt         time.Time
	ReviewedAt          *time.Time
	ExpiresAt           *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time

	Lease Lease
}

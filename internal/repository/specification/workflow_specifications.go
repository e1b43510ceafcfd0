package specification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByUserID struct {
	UserID uuid.UUID
}

func (s ByUserID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}

type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

type ByStatuses struct {
	Statuses []string
}

func (s ByStatuses) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status IN ?", s.Statuses)
}

// OpenRequests keeps only requests still awaiting a decision.
type OpenRequests struct{}

func (s OpenRequests) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status IN ?", []string{"pending", "under_review"})
}

// RequestedBefore picks up items submitted before the cutoff. The deadline
// sweep uses this to find reviews that have gone past their window.
type RequestedBefore struct {
	Cutoff time.Time
}

func (s RequestedBefore) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("requested_at < ?", s.Cutoff)
}

type CreatedBefore struct {
	Cutoff time.Time
}

func (s CreatedBefore) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("created_at < ?", s.Cutoff)
}

type CreatedAfter struct {
	After time.Time
}

func (s CreatedAfter) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("created_at >= ?", s.After)
}

// --- Mandate specs ---

type MandateParty struct {
	UserID uuid.UUID
}

func (s MandateParty) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("owner_id = ? OR agency_id = ?", s.UserID, s.UserID)
}

type EndingBefore struct {
	Cutoff time.Time
}

func (s EndingBefore) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("end_date < ?", s.Cutoff)
}

type EndingAfter struct {
	Cutoff time.Time
}

func (s EndingAfter) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("end_date >= ?", s.Cutoff)
}

// --- Lease specs ---

type LeaseParty struct {
	UserID uuid.UUID
}

func (s LeaseParty) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("owner_id = ? OR tenant_id = ?", s.UserID, s.UserID)
}

type ByLeaseIDs struct {
	LeaseIDs []uuid.UUID
}

func (s ByLeaseIDs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("lease_id IN ?", s.LeaseIDs)
}

// --- Alert specs ---

type AlertsForUser struct {
	UserID uuid.UUID
	Role   string
}

func (s AlertsForUser) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ? OR target_role = ?", s.UserID, s.Role)
}

type NotDismissed struct{}

func (s NotDismissed) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("dismissed = ?", false)
}

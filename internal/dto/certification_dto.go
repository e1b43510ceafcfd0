package dto

import (
	"time"

	"github.com/google/uuid"
)

// --- User-Side Certification Request ---

type SubmitCertificationRequest struct {
	LeaseId   uuid.UUID         `json:"lease_id" validate:"required"`
	Documents []DocumentUpload  `json:"documents" validate:"required,min=1,dive"`
	Metadata  map[string]string `json:"metadata"`
}

type SubmitCertificationResponse struct {
	CertificationId string `json:"certification_id"`
	Status          string `json:"status"`
	Message         string `json:"message"`
}

type UserCertificationListResponse struct {
	Id                  uuid.UUID  `json:"id"`
	LeaseId             uuid.UUID  `json:"lease_id"`
	PropertyLabel       string     `json:"property_label"`
	CertificationNumber string     `json:"certification_number,omitempty"`
	Status              string     `json:"status"`
	Documents           []string   `json:"documents,omitempty"`
	RequestedAt         time.Time  `json:"requested_at"`
	ReviewedAt          *time.Time `json:"reviewed_at,omitempty"`
	ExpiresAt           *time.Time `json:"expires_at,omitempty"`
}

// --- Admin-Side Certification Review ---

type AdminCertificationListResponse struct {
	Id                  uuid.UUID            `json:"id"`
	Requester           AdminRequestUserInfo `json:"requester"`
	LeaseId             uuid.UUID            `json:"lease_id"`
	PropertyLabel       string               `json:"property_label"`
	CertificationNumber string               `json:"certification_number,omitempty"`
	Status              string               `json:"status"`
	Documents           []string             `json:"documents,omitempty"`
	AdminNotes          string               `json:"admin_notes,omitempty"`
	IsLate              bool                 `json:"is_late"`
	RequestedAt         time.Time            `json:"requested_at"`
	ReviewedAt          *time.Time           `json:"reviewed_at,omitempty"`
}

type AdminReviewCertificationRequest struct {
	Action     string `json:"action" validate:"required,oneof=approve reject under_review"`
	AdminNotes string `json:"admin_notes,omitempty"`
}

type AdminReviewCertificationResponse struct {
	CertificationId     string     `json:"certification_id"`
	Status              string     `json:"status"`
	CertificationNumber string     `json:"certification_number,omitempty"`
	ReviewedAt          *time.Time `json:"reviewed_at,omitempty"`
}

type AdminRevokeCertificationRequest struct {
	Reason string `json:"reason" validate:"required,min=10"`
}

type AdminRevokeCertificationResponse struct {
	CertificationId string    `json:"certification_id"`
	Status          string    `json:"status"`
	RevokedAt       time.Time `json:"revoked_at"`
}

package dto

import (
	"time"

	"github.com/google/uuid"
)

// --- User-Side Role Change Request ---

type SubmitRoleChangeRequest struct {
	ToRole      string            `json:"to_role" validate:"required,oneof=owner agency"`
	RequestData map[string]string `json:"request_data"`
	// Documents maps a document type (e.g. "identity_card") to its
	// base64-encoded content. Stored files are referenced by URL afterwards.
	Documents map[string]DocumentUpload `json:"documents" validate:"required,min=1,dive"`
}

type DocumentUpload struct {
	FileName string `json:"file_name" validate:"required"`
	Content  string `json:"content" validate:"required,base64"`
}

type SubmitRoleChangeResponse struct {
	RequestId string `json:"request_id"`
	Status    string `json:"status"`
	Message   string `json:"message"`
}

// --- User's Request List ---

type UserRoleChangeListResponse struct {
	Id          uuid.UUID         `json:"id"`
	FromRole    string            `json:"from_role"`
	ToRole      string            `json:"to_role"`
	Status      string            `json:"status"`
	Documents   map[string]string `json:"documents,omitempty"`
	AdminNotes  string            `json:"admin_notes,omitempty"`
	RequestedAt time.Time         `json:"requested_at"`
	ReviewedAt  *time.Time        `json:"reviewed_at,omitempty"`
}

type CancelRoleChangeResponse struct {
	RequestId string `json:"request_id"`
	Status    string `json:"status"`
}

// --- Prerequisite Check ---

type PrerequisiteCheckResponse struct {
	CanUpgrade           bool     `json:"can_upgrade"`
	TargetRole           string   `json:"target_role"`
	MissingRequirements  []string `json:"missing_requirements"`
	CompletionPercentage int      `json:"completion_percentage"`
	Recommendations      []string `json:"recommendations,omitempty"`
}

// --- Admin-Side Queue ---

type AdminRoleChangeListResponse struct {
	Id          uuid.UUID             `json:"id"`
	User        AdminRequestUserInfo  `json:"user"`
	FromRole    string                `json:"from_role"`
	ToRole      string                `json:"to_role"`
	Status      string                `json:"status"`
	RequestData map[string]string     `json:"request_data,omitempty"`
	Documents   map[string]string     `json:"documents,omitempty"`
	AdminNotes  string                `json:"admin_notes,omitempty"`
	IsLate      bool                  `json:"is_late"`
	RequestedAt time.Time             `json:"requested_at"`
	ReviewedAt  *time.Time            `json:"reviewed_at,omitempty"`
	ReviewedBy  *AdminRequestUserInfo `json:"reviewed_by,omitempty"`
}

type AdminRequestUserInfo struct {
	Id       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	FullName string    `json:"full_name"`
	Role     string    `json:"role"`
}

type AdminReviewRoleChangeRequest struct {
	Action     string `json:"action" validate:"required,oneof=approve reject under_review"`
	AdminNotes string `json:"admin_notes,omitempty"`
}

type AdminReviewRoleChangeResponse struct {
	RequestId  string     `json:"request_id"`
	Status     string     `json:"status"`
	NewRole    string     `json:"new_role,omitempty"`
	ReviewedAt *time.Time `json:"reviewed_at,omitempty"`
}

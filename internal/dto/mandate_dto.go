package dto

import (
	"time"

	"github.com/google/uuid"
)

// --- Mandate Lifecycle ---

type CreateMandateRequest struct {
	AgencyId       uuid.UUID `json:"agency_id" validate:"required"`
	CommissionRate *float64  `json:"commission_rate" validate:"omitempty,gte=0,lte=100"`
	FixedFee       *float64  `json:"fixed_fee" validate:"omitempty,gte=0"`
	StartDate      time.Time `json:"start_date" validate:"required"`
	EndDate        time.Time `json:"end_date" validate:"required,gtfield=StartDate"`
}

type CreateMandateResponse struct {
	MandateId string `json:"mandate_id"`
	Status    string `json:"status"`
	Message   string `json:"message"`
}

type MandatePartyInfo struct {
	Id       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	FullName string    `json:"full_name"`
}

type MandateListResponse struct {
	Id             uuid.UUID        `json:"id"`
	Owner          MandatePartyInfo `json:"owner"`
	Agency         MandatePartyInfo `json:"agency"`
	Status         string           `json:"status"`
	CommissionRate *float64         `json:"commission_rate,omitempty"`
	FixedFee       *float64         `json:"fixed_fee,omitempty"`
	StartDate      time.Time        `json:"start_date"`
	EndDate        time.Time        `json:"end_date"`
	IsExpired      bool             `json:"is_expired"`
	IsExpiringSoon bool             `json:"is_expiring_soon"`
	CreatedAt      time.Time        `json:"created_at"`
}

type AcceptMandateResponse struct {
	MandateId string `json:"mandate_id"`
	Status    string `json:"status"`
}

type TerminateMandateRequest struct {
	Reason string `json:"reason,omitempty"`
}

type TerminateMandateResponse struct {
	MandateId string `json:"mandate_id"`
	Status    string `json:"status"`
}

package dto

import (
	"time"

	"github.com/google/uuid"
)

type AlertResponse struct {
	Id             uuid.UUID         `json:"id"`
	TypeCode       string            `json:"type_code"`
	Title          string            `json:"title"`
	Message        string            `json:"message"`
	Severity       string            `json:"severity"`
	Category       string            `json:"category,omitempty"`
	ActionRequired bool              `json:"action_required"`
	EntityType     string            `json:"entity_type,omitempty"`
	EntityId       *uuid.UUID        `json:"entity_id,omitempty"`
	Metadata       map[string]string `json:"metadata,omitempty"`
	Dismissed      bool              `json:"dismissed"`
	CreatedAt      time.Time         `json:"created_at"`
}

type AlertListResponse struct {
	Alerts      []AlertResponse `json:"alerts"`
	UnreadCount int64           `json:"unread_count"`
}

type DismissAlertResponse struct {
	AlertId   string `json:"alert_id"`
	Dismissed bool   `json:"dismissed"`
}

// AlertPush is the websocket frame sent when a new alert lands.
type AlertPush struct {
	Type  string        `json:"type"` // always "alert"
	Alert AlertResponse `json:"alert"`
}

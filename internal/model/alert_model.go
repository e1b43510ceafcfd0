package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AlertType serves as a registry for event-to-alert mapping.
type AlertType struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Code           string    `gorm:"type:varchar(50);unique;not null" json:"code"`
	DisplayName    string    `gorm:"type:varchar(100);not null" json:"display_name"`
	Template       string    `gorm:"type:text;not null" json:"template"`
	TargetType     string    `gorm:"type:varchar(20);not null" json:"target_type"` // e.g. "SELF", "ADMIN", "ROLE"
	TargetRole     string    `gorm:"type:varchar(50)" json:"target_role,omitempty"`
	Severity       string    `gorm:"type:varchar(10);default:'info'" json:"severity"`
	Category       string    `gorm:"type:varchar(50)" json:"category,omitempty"`
	ActionRequired bool      `gorm:"default:false" json:"action_required"`
	IsActive       bool      `gorm:"default:true" json:"is_active"`
	CreatedAt      time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// Alert stores the actual alert history shown in the user's alert feed.
type Alert struct {
	ID             uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID         *uuid.UUID     `gorm:"type:uuid;index:idx_alerts_user_created,priority:1" json:"user_id,omitempty"`
	TargetRole     string         `gorm:"type:varchar(50);index" json:"target_role,omitempty"`
	TypeCode       string         `gorm:"type:varchar(50);not null;index:idx_alerts_type" json:"type_code"`
	Type           AlertType      `gorm:"foreignKey:TypeCode;references:Code;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	EntityType     string         `gorm:"type:varchar(50);index:idx_alerts_entity,priority:1" json:"entity_type,omitempty"`
	EntityID       *uuid.UUID     `gorm:"type:uuid;index:idx_alerts_entity,priority:2" json:"entity_id,omitempty"`
	Title          string         `gorm:"type:varchar(200);not null" json:"title"`
	Message        string         `gorm:"type:text;not null" json:"message"`
	Severity       string         `gorm:"type:varchar(10);not null;default:'info'" json:"severity"`
	Category       string         `gorm:"type:varchar(50)" json:"category,omitempty"`
	ActionRequired bool           `gorm:"default:false" json:"action_required"`
	Metadata       datatypes.JSON `gorm:"type:jsonb" json:"metadata,omitempty"`
	Dismissed      bool           `gorm:"default:false;index:idx_alerts_user_active,priority:2" json:"dismissed"`
	DismissedAt    *time.Time     `json:"dismissed_at,omitempty"`
	CreatedAt      time.Time      `gorm:"default:CURRENT_TIMESTAMP;index:idx_alerts_user_created,priority:2" json:"created_at"`
}

func (AlertType) TableName() string {
	return "alert_types"
}

func (Alert) TableName() string {
	return "alerts"
}

package model

import (
	"time"

	"github.com/google/uuid"
)

// ReviewSettings is a single-row table keyed by a fixed ID.
type ReviewSettings struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	DeadlineHours int        `gorm:"not null;default:72" json:"deadline_hours"`
	AutoAction    string     `gorm:"type:varchar(20);not null;default:'none'" json:"auto_action"`
	UpdatedBy     *uuid.UUID `gorm:"type:uuid" json:"updated_by,omitempty"`
	UpdatedAt     time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (ReviewSettings) TableName() string {
	return "review_settings"
}

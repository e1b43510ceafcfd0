package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// RoleChangeRequest rows are never physically deleted; terminal requests
// stay queryable for audit. The partial unique index guarding "one active
// request per (user, target role)" is created in cmd/migrate since GORM
// tags cannot express a predicate index.
type RoleChangeRequest struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID      uuid.UUID      `gorm:"type:uuid;not null;index"`
	FromRole    string         `gorm:"type:varchar(50);not null"`
	ToRole      string         `gorm:"type:varchar(50);not null"`
	Status      string         `gorm:"type:varchar(50);not null;default:'pending';index"`
	RequestData datatypes.JSON `gorm:"type:jsonb"`
	Documents   datatypes.JSON `gorm:"type:jsonb"`
	AdminNotes  string         `gorm:"type:text"`
	ReviewedBy  *uuid.UUID     `gorm:"type:uuid"`
	ReviewedAt  *time.Time
	ApprovedAt  *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	User User `gorm:"foreignKey:UserID"`
}

func (RoleChangeRequest) TableName() string {
	return "role_change_requests"
}

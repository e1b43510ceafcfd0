package model

import (
	"time"

	"github.com/google/uuid"
)

type Lease struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	PropertyLabel string    `gorm:"type:varchar(255);not null"`
	OwnerID       uuid.UUID `gorm:"type:uuid;not null;index"`
	TenantID      uuid.UUID `gorm:"type:uuid;not null;index"`
	MonthlyRent   float64   `gorm:"type:decimal(12,2)"`
	Status        string    `gorm:"type:varchar(50);not null;default:'draft'"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (Lease) TableName() string {
	return "leases"
}

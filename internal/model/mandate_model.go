package model

import (
	"time"

	"github.com/google/uuid"
)

type Mandate struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OwnerID        uuid.UUID `gorm:"type:uuid;not null;index"`
	AgencyID       uuid.UUID `gorm:"type:uuid;not null;index"`
	Status         string    `gorm:"type:varchar(50);not null;default:'pending';index"`
	CommissionRate *float64  `gorm:"type:decimal(5,2)"`
	FixedFee       *float64  `gorm:"type:decimal(12,2)"`
	StartDate      time.Time `gorm:"not null"`
	EndDate        time.Time `gorm:"not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Owner  User `gorm:"foreignKey:OwnerID"`
	Agency User `gorm:"foreignKey:AgencyID"`
}

func (Mandate) TableName() string {
	return "mandates"
}

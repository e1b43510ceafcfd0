package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Certification struct {
	ID      uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	LeaseID uuid.UUID `gorm:"type:uuid;not null;index"`
	// Nullable: the number is only stamped on approval. NULLs never collide
	// under the unique index, so un-numbered pending rows coexist.
	CertificationNumber *string        `gorm:"type:varchar(100);uniqueIndex"`
	Status              string         `gorm:"type:varchar(50);not null;default:'pending';index"`
	ReviewerID          *uuid.UUID     `gorm:"type:uuid"`
	ReviewerNotes       string         `gorm:"type:text"`
	Documents           datatypes.JSON `gorm:"type:jsonb"`
	Metadata            datatypes.JSON `gorm:"type:jsonb"`
	RequestedAt         time.Time      `gorm:"not null"`
	ReviewedAt          *time.Time
	ExpiresAt           *time.Time `gorm:"index"`
	CreatedAt           time.Time
	UpdatedAt           time.Time

	Lease Lease `gorm:"foreignKey:LeaseID"`
}

func (Certification) TableName() string {
	return "ansut_certifications"
}

package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	Id               uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email            string         `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash     *string        `gorm:"type:varchar(255)"`
	FullName         string         `gorm:"type:varchar(255);not null"`
	Phone            string         `gorm:"type:varchar(30)"`
	City             string         `gorm:"type:varchar(100)"`
	Role             string         `gorm:"type:varchar(50);not null;default:'tenant'"`
	Status           string         `gorm:"type:varchar(50);not null;default:'pending'"`
	EmailVerified    bool           `gorm:"default:false"`
	PhoneVerified    bool           `gorm:"default:false"`
	IdentityVerified bool           `gorm:"default:false"`
	AvatarURL        *string        `gorm:"type:text"`
	CreatedAt        time.Time      `gorm:"autoCreateTime"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime"`
	DeletedAt        gorm.DeletedAt `gorm:"index"`
}

func (User) TableName() string {
	return "users"
}

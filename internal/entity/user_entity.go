package entity

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string
type UserStatus string

const (
	UserRoleTenant UserRole = "tenant"
	UserRoleOwner  UserRole = "owner"
	UserRoleAgency UserRole = "agency"
	UserRoleAdmin  UserRole = "admin"

	UserStatusPending UserStatus = "pending"
	UserStatusActive  UserStatus = "active"
	UserStatusBlocked UserStatus = "blocked"
)

// IsUpgradeTarget reports whether a role can be requested through the
// role-change workflow. Admin is assigned out of band, never requested.
func (r UserRole) IsUpgradeTarget() bool {
	return r == UserRoleOwner || r == UserRoleAgency
}

type User struct {
	Id               uuid.UUID
	Email            string
	FullName         string
	Phone            string
	City             string
	Role             UserRole
	Status           UserStatus
	EmailVerified    bool
	PhoneVerified    bool
	IdentityVerified bool
	AvatarURL        *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

package domain

import "time"

// Role is the numeric access tier carried in tokens and stamped on explorer items.
type Role int

const (
	RoleAdmin  Role = 1
	RoleHR     Role = 2
	RoleSafety Role = 3
)

// DefaultOwnerRole is applied to items created without an explicit owner role.
const DefaultOwnerRole = RoleHR

// Roles lists every valid role, most privileged first.
func Roles() []Role {
	return []Role{RoleAdmin, RoleHR, RoleSafety}
}

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleHR || r == RoleSafety
}

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleHR:
		return "hr"
	case RoleSafety:
		return "safety"
	default:
		return "unknown"
	}
}

type User struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"size:255;not null;uniqueIndex"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Name         string    `json:"name" gorm:"size:150"`
	Role         Role      `json:"role" gorm:"not null;default:2"`
	Active       bool      `json:"active" gorm:"not null;default:true"`

	FailedLoginAttempts int        `json:"-" gorm:"not null;default:0"`
	LockedUntil         *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }

// Actor is the authenticated caller of a service operation.
type Actor struct {
	UserID int64
	Role   Role
}

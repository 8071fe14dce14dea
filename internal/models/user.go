package models

import (
	"time"
)

// User roles
const (
	RoleUser  = "user"
	RoleMod   = "mod"
	RoleAdmin = "admin"
)

// User statuses (moderation)
const (
	UserStatusOK     = 0
	UserStatusMuted  = 1
	UserStatusBanned = 2
)

type User struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Username      string     `gorm:"not null" json:"username"`
	Email         string     `gorm:"uniqueIndex;not null" json:"email"`
	Password      string     `gorm:"not null" json:"-"` // bcrypt hash
	Bio           string     `gorm:"size:200" json:"bio"`
	Karma         int        `gorm:"default:0" json:"karma"`
	Role          string     `gorm:"size:20;default:'user';not null" json:"role"` // user, mod, admin
	Status        int        `gorm:"default:0" json:"status"`                     // 0: ok, 1: muted, 2: banned
	PunishExpires *time.Time `json:"punish_expires"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// IsMod reports whether the user can moderate content.
func (u *User) IsMod() bool {
	return u.Role == RoleMod || u.Role == RoleAdmin
}

package models

import (
	"time"
)

// UserAchievement records an unlocked achievement. The unique index makes the
// award idempotent no matter how often the threshold check runs.
type UserAchievement struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_user_achievement" json:"user_id"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Code      string    `gorm:"size:40;not null;uniqueIndex:idx_user_achievement" json:"code"`
	CreatedAt time.Time `json:"created_at"`
}

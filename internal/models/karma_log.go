package models

import (
	"time"
)

type KarmaLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Amount    int       `gorm:"not null" json:"amount"`          // positive earns, negative deducts
	Action    string    `gorm:"size:100;not null" json:"action"` // action description
	CreatedAt time.Time `json:"created_at"`
}

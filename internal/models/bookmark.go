package models

import (
	"time"
)

// TopicBookmark marks a topic a user wants to follow.
type TopicBookmark struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_user_topic_bm" json:"user_id"`
	TopicID   uint      `gorm:"not null;index;uniqueIndex:idx_user_topic_bm" json:"topic_id"`
	Topic     Topic     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"topic"`
	CreatedAt time.Time `json:"created_at"`
}

package models

import (
	"time"
)

// TopicOption is one selectable choice of a MULTI_CHOICE topic.
type TopicOption struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	TopicID     uint      `gorm:"not null;index" json:"topic_id"`
	Label       string    `gorm:"size:120;not null" json:"label"`
	Description string    `gorm:"size:300" json:"description"`
	Order       int       `gorm:"column:sort_order;default:0" json:"order"`
	CreatedAt   time.Time `json:"created_at"`
}

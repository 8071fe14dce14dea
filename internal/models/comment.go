package models

import (
	"time"
)

type CommentStatus string

const (
	CommentStatusActive  CommentStatus = "ACTIVE"
	CommentStatusHidden  CommentStatus = "HIDDEN"
	CommentStatusDeleted CommentStatus = "DELETED"
)

// Comment sides for top-level comments on YES_NO topics.
const (
	SideAFavor = "AFAVOR"
	SideContra = "CONTRA"
)

type Comment struct {
	ID        uint          `gorm:"primaryKey" json:"id"`
	Cid       string        `gorm:"uniqueIndex;size:8;not null" json:"cid"`
	TopicID   uint          `gorm:"not null;index" json:"topic_id"`
	Topic     Topic         `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	UserID    uint          `gorm:"not null;index" json:"user_id"`
	User      User          `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	ParentID  *uint         `gorm:"index" json:"parent_id"` // null for top-level comments
	Parent    *Comment      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Side      *string       `gorm:"size:10" json:"side"`     // AFAVOR/CONTRA, top-level on YES_NO only
	OptionID  *uint         `gorm:"index" json:"option_id"`  // top-level on MULTI_CHOICE only
	Content   string        `gorm:"type:text;not null" json:"content"`
	Status    CommentStatus `gorm:"type:varchar(10);not null;default:'ACTIVE';index" json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

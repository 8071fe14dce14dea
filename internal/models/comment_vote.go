package models

import (
	"time"
)

// CommentVote is a quality up-vote on a comment, at most one per (user, comment).
type CommentVote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_user_comment" json:"user_id"`
	CommentID uint      `gorm:"not null;index;uniqueIndex:idx_user_comment" json:"comment_id"`
	Comment   Comment   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Value     int       `gorm:"not null;default:1" json:"value"`
	CreatedAt time.Time `json:"created_at"`
}

package models

import (
	"time"
)

type TopicType string

const (
	TopicTypeYesNo       TopicType = "YES_NO"
	TopicTypeMultiChoice TopicType = "MULTI_CHOICE"
)

type TopicStatus string

const (
	TopicStatusActive TopicStatus = "ACTIVE"
	TopicStatusHidden TopicStatus = "HIDDEN"
	TopicStatusLocked TopicStatus = "LOCKED"
)

type Topic struct {
	ID                 uint        `gorm:"primaryKey" json:"id"`
	Slug               string      `gorm:"uniqueIndex;size:80;not null" json:"slug"`
	UserID             uint        `gorm:"not null;index" json:"user_id"`
	User               User        `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	Title              string      `gorm:"not null" json:"title"`
	Description        string      `gorm:"type:text" json:"description"`
	Type               TopicType   `gorm:"type:varchar(20);not null;default:'YES_NO'" json:"type"`
	Status             TopicStatus `gorm:"type:varchar(20);not null;default:'ACTIVE';index" json:"status"`
	AllowMultipleVotes bool        `gorm:"default:false" json:"allow_multiple_votes"`
	MaxChoices         int         `gorm:"default:1" json:"max_choices"`
	Options            []TopicOption `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"options,omitempty"`
	CreatedAt          time.Time   `json:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at"`

	// Filled by list queries, not stored
	VoteCount    int64 `gorm:"-" json:"vote_count"`
	CommentCount int64 `gorm:"-" json:"comment_count"`
}

// IsMulti reports whether votes reference options instead of fixed buckets.
func (t *Topic) IsMulti() bool {
	return t.Type == TopicTypeMultiChoice
}

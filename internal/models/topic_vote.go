package models

import (
	"time"
)

// Binary vote values for YES_NO topics.
const (
	VoteSim     = "SIM"
	VoteNao     = "NAO"
	VoteDepende = "DEPENDE"
)

// TopicVote is one user's recorded choice on a topic. Binary topics use a
// singleton row per (user, topic) with a null OptionID and Vote holding the
// value; multi-choice topics use one row per selected option with Vote empty.
// The unique index over (user_id, topic_id, option_id) enforces both shapes.
type TopicVote struct {
	ID        uint         `gorm:"primaryKey" json:"id"`
	UserID    uint         `gorm:"not null;index;uniqueIndex:idx_user_topic_option" json:"user_id"`
	TopicID   uint         `gorm:"not null;index;uniqueIndex:idx_user_topic_option" json:"topic_id"`
	Topic     Topic        `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	OptionID  *uint        `gorm:"index;uniqueIndex:idx_user_topic_option" json:"option_id"`
	Option    *TopicOption `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Vote      string       `gorm:"size:10" json:"vote"` // SIM, NAO, DEPENDE; empty for option votes
	CreatedAt time.Time    `json:"created_at"`
}

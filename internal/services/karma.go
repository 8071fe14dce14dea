package services

import (
	"polemica/internal/db"
	"polemica/internal/models"
	"time"

	"gorm.io/gorm"
)

// Karma action labels (stored on the log rows)
const (
	ActionTopicCreate    = "Criou um tema"
	ActionTopicVote      = "Votou em um tema"
	ActionCommentCreate  = "Publicou um argumento"
	ActionCommentLiked   = "Argumento recebeu voto de qualidade"
	ActionCommentDeleted = "Removeu um argumento"
)

// Karma amounts
const (
	KarmaTopicCreate    = 2
	KarmaTopicVote      = 1
	KarmaCommentCreate  = 1
	KarmaCommentLiked   = 1
	KarmaCommentDeleted = -1
)

// Daily earn limits
const (
	DailyVoteKarmaLimit    = 10 // first 10 topic votes a day earn karma
	DailyCommentKarmaLimit = 5  // first 5 comments a day earn karma
)

// AddKarma writes the log row and the balance update in one transaction so
// the ledger and the denormalized total cannot drift.
func AddKarma(userID uint, amount int, action string) error {
	return db.DB.Transaction(func(tx *gorm.DB) error {
		entry := models.KarmaLog{
			UserID: userID,
			Amount: amount,
			Action: action,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}

		return tx.Model(&models.User{}).
			Where("id = ?", userID).
			UpdateColumn("karma", gorm.Expr("karma + ?", amount)).
			Error
	})
}

func getTodayRange() (time.Time, time.Time) {
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return startOfDay, startOfDay.Add(24 * time.Hour)
}

func countTodayKarmaLogs(userID uint, action string) int64 {
	startOfDay, endOfDay := getTodayRange()
	var count int64
	db.DB.Model(&models.KarmaLog{}).
		Where("user_id = ? AND action = ? AND created_at >= ? AND created_at < ?", userID, action, startOfDay, endOfDay).
		Count(&count)
	return count
}

// CanEarnVoteKarma checks the daily topic-vote earn limit.
func CanEarnVoteKarma(userID uint) bool {
	return countTodayKarmaLogs(userID, ActionTopicVote) < DailyVoteKarmaLimit
}

// CanEarnCommentKarma checks the daily comment earn limit.
func CanEarnCommentKarma(userID uint) bool {
	return countTodayKarmaLogs(userID, ActionCommentCreate) < DailyCommentKarmaLimit
}

// Activity kinds accepted by RecordActivity.
const (
	ActivityTopicCreate   = "topic_create"
	ActivityTopicVote     = "topic_vote"
	ActivityComment       = "comment"
	ActivityCommentLiked  = "comment_liked"
	ActivityCommentDelete = "comment_delete"
)

// RecordActivity awards karma for a user action (honoring daily limits) and
// re-checks achievement thresholds. Handlers call it for every successful
// vote or comment write.
func RecordActivity(userID uint, kind string) {
	switch kind {
	case ActivityTopicCreate:
		_ = AddKarma(userID, KarmaTopicCreate, ActionTopicCreate)
	case ActivityTopicVote:
		if CanEarnVoteKarma(userID) {
			_ = AddKarma(userID, KarmaTopicVote, ActionTopicVote)
		}
	case ActivityComment:
		if CanEarnCommentKarma(userID) {
			_ = AddKarma(userID, KarmaCommentCreate, ActionCommentCreate)
		}
	case ActivityCommentLiked:
		_ = AddKarma(userID, KarmaCommentLiked, ActionCommentLiked)
	case ActivityCommentDelete:
		_ = AddKarma(userID, KarmaCommentDeleted, ActionCommentDeleted)
	}

	CheckAchievements(userID)
}

// RecordActivityAsync runs RecordActivity off the request path.
func RecordActivityAsync(userID uint, kind string) {
	go RecordActivity(userID, kind)
}

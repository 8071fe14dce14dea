package services

import (
	"errors"
	"fmt"
	"polemica/internal/db"
	"polemica/internal/models"

	"gorm.io/gorm"
)

var (
	// ErrTopicLocked rejects writes on LOCKED topics.
	ErrTopicLocked = errors.New("este tema está bloqueado")
	// ErrInvalidOptions rejects option ids that do not belong to the topic.
	ErrInvalidOptions = errors.New("opções inválidas")
	// ErrInvalidVote rejects binary values outside SIM/NAO/DEPENDE.
	ErrInvalidVote = errors.New("voto inválido")
)

// ChoiceLimitError rejects selections above the topic's choice limit.
type ChoiceLimitError struct {
	Max int
}

func (e *ChoiceLimitError) Error() string {
	if e.Max == 1 {
		return "Você pode escolher no máximo 1 opção"
	}
	return fmt.Sprintf("Você pode escolher no máximo %d opções", e.Max)
}

// CastBinary upserts the singleton binary vote row for (user, topic).
// A repeated cast with the same value is a plain overwrite; removal is an
// explicit separate action, never a toggle.
func CastBinary(userID uint, topic *models.Topic, vote string) error {
	if topic.Status == models.TopicStatusLocked {
		return ErrTopicLocked
	}
	switch vote {
	case models.VoteSim, models.VoteNao, models.VoteDepende:
	default:
		return ErrInvalidVote
	}

	var existing models.TopicVote
	err := db.DB.Where("user_id = ? AND topic_id = ? AND option_id IS NULL", userID, topic.ID).
		First(&existing).Error
	if err == nil {
		return db.DB.Model(&existing).Update("vote", vote).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return db.DB.Create(&models.TopicVote{
		UserID:  userID,
		TopicID: topic.ID,
		Vote:    vote,
	}).Error
}

// CastMulti replaces the user's whole selection set on a MULTI_CHOICE topic.
// Validation runs before any write; the delete-then-insert replace is one
// transaction so a failure cannot leave the user voteless.
func CastMulti(userID uint, topic *models.Topic, optionIDs []uint) error {
	if topic.Status == models.TopicStatusLocked {
		return ErrTopicLocked
	}
	if len(optionIDs) == 0 {
		return ErrInvalidOptions
	}

	// De-duplicate before validating against the limit
	seen := make(map[uint]bool, len(optionIDs))
	unique := make([]uint, 0, len(optionIDs))
	for _, id := range optionIDs {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}

	if !topic.AllowMultipleVotes && len(unique) > 1 {
		return &ChoiceLimitError{Max: 1}
	}
	maxChoices := topic.MaxChoices
	if maxChoices < 1 {
		maxChoices = 1
	}
	if len(unique) > maxChoices {
		return &ChoiceLimitError{Max: maxChoices}
	}

	var owned int64
	if err := db.DB.Model(&models.TopicOption{}).
		Where("topic_id = ? AND id IN ?", topic.ID, unique).
		Count(&owned).Error; err != nil {
		return err
	}
	if owned != int64(len(unique)) {
		return ErrInvalidOptions
	}

	return db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND topic_id = ?", userID, topic.ID).
			Delete(&models.TopicVote{}).Error; err != nil {
			return err
		}
		votes := make([]models.TopicVote, 0, len(unique))
		for _, id := range unique {
			optionID := id
			votes = append(votes, models.TopicVote{
				UserID:   userID,
				TopicID:  topic.ID,
				OptionID: &optionID,
			})
		}
		return tx.Create(&votes).Error
	})
}

// ClearVotes removes every vote row of the user on the topic. Safe to repeat;
// clearing an empty state is a no-op.
func ClearVotes(userID uint, topicID uint) error {
	return db.DB.Where("user_id = ? AND topic_id = ?", userID, topicID).
		Delete(&models.TopicVote{}).Error
}

// UserVotes returns the user's current vote rows on a topic, for echoing the
// viewer state in topic detail responses.
func UserVotes(userID uint, topicID uint) ([]models.TopicVote, error) {
	var votes []models.TopicVote
	err := db.DB.Where("user_id = ? AND topic_id = ?", userID, topicID).
		Order("id ASC").
		Find(&votes).Error
	return votes, err
}

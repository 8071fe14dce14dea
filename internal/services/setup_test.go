package services

import (
	"polemica/internal/db"
	"polemica/internal/models"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB points the global connection at a fresh in-memory database.
func setupTestDB(t *testing.T) {
	t.Helper()

	g, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	// A single connection keeps every query on the same in-memory database
	sqlDB, err := g.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.Migrate(g); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	db.DB = g
}

func createTestUser(t *testing.T, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "x",
	}
	if err := db.DB.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func createBinaryTopic(t *testing.T, owner *models.User, slug string) *models.Topic {
	t.Helper()
	topic := &models.Topic{
		Slug:   slug,
		UserID: owner.ID,
		Title:  "Tema " + slug,
		Type:   models.TopicTypeYesNo,
		Status: models.TopicStatusActive,
	}
	if err := db.DB.Create(topic).Error; err != nil {
		t.Fatalf("create topic: %v", err)
	}
	return topic
}

func createMultiTopic(t *testing.T, owner *models.User, slug string, allowMultiple bool, maxChoices int, labels ...string) *models.Topic {
	t.Helper()
	topic := &models.Topic{
		Slug:               slug,
		UserID:             owner.ID,
		Title:              "Tema " + slug,
		Type:               models.TopicTypeMultiChoice,
		Status:             models.TopicStatusActive,
		AllowMultipleVotes: allowMultiple,
		MaxChoices:         maxChoices,
	}
	for i, label := range labels {
		topic.Options = append(topic.Options, models.TopicOption{Label: label, Order: i + 1})
	}
	if err := db.DB.Create(topic).Error; err != nil {
		t.Fatalf("create topic: %v", err)
	}
	return topic
}

func countTopicVotes(t *testing.T, userID, topicID uint) int64 {
	t.Helper()
	var count int64
	db.DB.Model(&models.TopicVote{}).Where("user_id = ? AND topic_id = ?", userID, topicID).Count(&count)
	return count
}

package db

import (
	"log"
	"os"
	"polemica/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		// Fallback for local dev if not set
		dsn = "host=localhost user=postgres password=postgres dbname=polemica port=5432 sslmode=disable TimeZone=America/Sao_Paulo"
	}

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Database connection established")

	if err := Migrate(DB); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed")

	seedTopics()
}

// Migrate runs AutoMigrate for every model. Shared with the test setup.
func Migrate(g *gorm.DB) error {
	return g.AutoMigrate(
		&models.User{},
		&models.Topic{},
		&models.TopicOption{},
		&models.TopicVote{},
		&models.Comment{},
		&models.CommentVote{},
		&models.KarmaLog{},
		&models.UserAchievement{},
		&models.Notification{},
		&models.Report{},
		&models.TopicBookmark{},
	)
}

func seedTopics() {
	var count int64
	DB.Model(&models.Topic{}).Count(&count)
	if count > 0 {
		log.Println("Topics already seeded, skipping")
		return
	}

	var admin models.User
	if err := DB.Where("role = ?", models.RoleAdmin).First(&admin).Error; err != nil {
		// No admin yet, nothing to own the seed topics
		return
	}

	topics := []models.Topic{
		{
			Slug:        "abacaxi-na-pizza",
			UserID:      admin.ID,
			Title:       "Abacaxi na pizza é aceitável?",
			Description: "O clássico dos clássicos.",
			Type:        models.TopicTypeYesNo,
		},
		{
			Slug:               "melhor-linguagem-backend",
			UserID:             admin.ID,
			Title:              "Qual a melhor linguagem para backend?",
			Type:               models.TopicTypeMultiChoice,
			AllowMultipleVotes: true,
			MaxChoices:         2,
			Options: []models.TopicOption{
				{Label: "Go", Order: 1},
				{Label: "Rust", Order: 2},
				{Label: "TypeScript", Order: 3},
				{Label: "Python", Order: 4},
			},
		},
	}

	for _, topic := range topics {
		if err := DB.Create(&topic).Error; err != nil {
			log.Printf("Failed to create topic %s: %v", topic.Slug, err)
		}
	}
	log.Println("Initial topics created successfully")
}

package services

import (
	"log"
	"polemica/internal/db"
	"polemica/internal/models"
)

// Achievement codes
const (
	AchievementFirstVote = "primeiro-voto" // cast a topic vote
	AchievementDebater   = "debatedor"     // 10 comments written
	AchievementEngaged   = "engajado"      // 50 topic votes cast
	AchievementRespected = "respeitado"    // karma >= 100
)

const respectedKarma = 100

// CheckAchievements re-evaluates every threshold for the user and awards
// whatever is newly crossed. Award rows are unique per (user, code), so the
// check is idempotent and safe to run after every activity.
func CheckAchievements(userID uint) {
	var voteCount int64
	db.DB.Model(&models.TopicVote{}).Where("user_id = ?", userID).Count(&voteCount)

	var commentCount int64
	db.DB.Model(&models.Comment{}).
		Where("user_id = ? AND status != ?", userID, models.CommentStatusDeleted).
		Count(&commentCount)

	var user models.User
	if err := db.DB.First(&user, userID).Error; err != nil {
		return
	}

	if voteCount >= 1 {
		award(userID, AchievementFirstVote)
	}
	if voteCount >= 50 {
		award(userID, AchievementEngaged)
	}
	if commentCount >= 10 {
		award(userID, AchievementDebater)
	}
	if user.Karma >= respectedKarma {
		award(userID, AchievementRespected)
	}
}

func award(userID uint, code string) {
	var count int64
	db.DB.Model(&models.UserAchievement{}).
		Where("user_id = ? AND code = ?", userID, code).
		Count(&count)
	if count > 0 {
		return
	}

	if err := db.DB.Create(&models.UserAchievement{UserID: userID, Code: code}).Error; err != nil {
		// Unique index may race with a concurrent award; nothing to do
		log.Printf("achievement %s for user %d not recorded: %v", code, userID, err)
	}
}

// UserAchievements lists the user's unlocked achievement codes.
func UserAchievements(userID uint) []string {
	var rows []models.UserAchievement
	db.DB.Where("user_id = ?", userID).Order("created_at ASC").Find(&rows)
	codes := make([]string, 0, len(rows))
	for _, r := range rows {
		codes = append(codes, r.Code)
	}
	return codes
}

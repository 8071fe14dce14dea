package handlers

import (
	"net/http"
	"polemica/internal/db"
	"polemica/internal/models"

	"github.com/gin-gonic/gin"
)

type BookmarkHandler struct{}

func NewBookmarkHandler() *BookmarkHandler {
	return &BookmarkHandler{}
}

// Toggle bookmarks a topic or removes the existing bookmark.
func (h *BookmarkHandler) Toggle(c *gin.Context) {
	user := currentUser(c)

	topic := findTopicBySlug(c)
	if topic == nil {
		return
	}
	if !canViewTopic(topic, user) {
		JSONError(c, http.StatusNotFound, MsgTopicNotFound)
		return
	}

	var existing models.TopicBookmark
	if err := db.DB.Where("user_id = ? AND topic_id = ?", user.ID, topic.ID).First(&existing).Error; err == nil {
		db.DB.Delete(&existing)
		c.JSON(http.StatusOK, gin.H{"bookmarked": false})
		return
	}

	bookmark := models.TopicBookmark{
		UserID:  user.ID,
		TopicID: topic.ID,
	}
	if err := db.DB.Create(&bookmark).Error; err != nil {
		JSONError(c, http.StatusInternalServerError, MsgInternal)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookmarked": true})
}

// List returns the user's bookmarked topics, newest first.
func (h *BookmarkHandler) List(c *gin.Context) {
	user := currentUser(c)

	var bookmarks []models.TopicBookmark
	err := db.DB.Preload("Topic").Preload("Topic.User").
		Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Find(&bookmarks).Error
	if err != nil {
		JSONError(c, http.StatusInternalServerError, MsgInternal)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": bookmarks})
}

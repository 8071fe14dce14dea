package handlers

import (
	"net/http"
	"polemica/internal/db"
	"polemica/internal/models"
	"polemica/internal/utils"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct{}

func NewNotificationHandler() *NotificationHandler {
	return &NotificationHandler{}
}

func (h *NotificationHandler) List(c *gin.Context) {
	user := currentUser(c)

	var notifications []models.Notification
	err := db.DB.Preload("Actor").
		Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Limit(50).
		Find(&notifications).Error
	if err != nil {
		JSONError(c, http.StatusInternalServerError, MsgInternal)
		return
	}

	var unread int64
	db.DB.Model(&models.Notification{}).Where("user_id = ? AND is_read = ?", user.ID, false).Count(&unread)

	c.JSON(http.StatusOK, gin.H{
		"data":   notifications,
		"unread": unread,
	})
}

func (h *NotificationHandler) Read(c *gin.Context) {
	user := currentUser(c)
	id := utils.StringToUint(c.Param("id"))

	result := db.DB.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, user.ID).
		Update("is_read", true)
	if result.Error != nil {
		JSONError(c, http.StatusInternalServerError, MsgInternal)
		return
	}
	if result.RowsAffected == 0 {
		JSONError(c, http.StatusNotFound, "Notificação não encontrada")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *NotificationHandler) ReadAll(c *gin.Context) {
	user := currentUser(c)

	if err := db.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", user.ID, false).
		Update("is_read", true).Error; err != nil {
		JSONError(c, http.StatusInternalServerError, MsgInternal)
		return
	}

	c.Status(http.StatusNoContent)
}

package handlers

import (
	"fmt"
	"net/http"
	"polemica/internal/db"
	"polemica/internal/models"
	"polemica/internal/utils"
	"time"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct{}

func NewAdminHandler() *AdminHandler {
	return &AdminHandler{}
}

type topicStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=ACTIVE HIDDEN LOCKED"`
}

// SetTopicStatus applies a moderation status transition. Topics are never
// hard-deleted; hiding and locking are the only removal mechanisms.
func (h *AdminHandler) SetTopicStatus(c *gin.Context) {
	mod := currentUser(c)

	topic := findTopicBySlug(c)
	if topic == nil {
		return
	}

	var req topicStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, http.StatusBadRequest, MsgInvalidPayload)
		return
	}

	newStatus := models.TopicStatus(req.Status)
	if newStatus == topic.Status {
		c.JSON(http.StatusOK, topic)
		return
	}

	if err := db.DB.Model(topic).Update("status", newStatus).Error; err != nil {
		JSONError(c, http.StatusInternalServerError, MsgInternal)
		return
	}
	topic.Status = newStatus

	utils.GetCache().Delete("topics:list:page:1")

	// Tell the author what happened to their topic
	if topic.UserID != mod.ID {
		go func() {
			db.DB.Create(&models.Notification{
				UserID:  topic.UserID,
				ActorID: &mod.ID,
				Type:    models.NotificationTypeModeration,
				Message: fmt.Sprintf("Seu tema \"%s\" foi alterado para %s pela moderação", topic.Title, newStatus),
			})
		}()
	}

	c.JSON(http.StatusOK, topic)
}

type punishRequest struct {
	Status int `json:"status" binding:"min=0,max=2"` // 0: ok, 1: muted, 2: banned
	Days   int `json:"days" binding:"omitempty,min=1,max=365"`
}

// PunishUser mutes or bans a user, optionally with an expiry.
func (h *AdminHandler) PunishUser(c *gin.Context) {
	userID := utils.StringToUint(c.Param("id"))

	var target models.User
	if err := db.DB.First(&target, userID).Error; err != nil {
		JSONError(c, http.StatusNotFound, "Usuário não encontrado")
		return
	}

	var req punishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, http.StatusBadRequest, MsgInvalidPayload)
		return
	}

	updates := map[string]interface{}{
		"status": req.Status,
	}
	if req.Status != models.UserStatusOK && req.Days > 0 {
		expires := time.Now().AddDate(0, 0, req.Days)
		updates["punish_expires"] = &expires
	} else {
		updates["punish_expires"] = nil
	}

	if err := db.DB.Model(&target).Updates(updates).Error; err != nil {
		JSONError(c, http.StatusInternalServerError, MsgInternal)
		return
	}

	c.JSON(http.StatusOK, target)
}

// ListReports shows open reports for the moderation queue, newest first.
func (h *AdminHandler) ListReports(c *gin.Context) {
	var reports []models.Report
	if err := db.DB.Order("created_at DESC").Limit(100).Find(&reports).Error; err != nil {
		JSONError(c, http.StatusInternalServerError, MsgInternal)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": reports})
}

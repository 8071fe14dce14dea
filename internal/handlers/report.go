package handlers

import (
	"fmt"
	"net/http"
	"polemica/internal/db"
	"polemica/internal/models"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct{}

func NewReportHandler() *ReportHandler {
	return &ReportHandler{}
}

type createReportRequest struct {
	ItemType string `json:"item_type" binding:"required,oneof=topic comment"`
	ItemID   uint   `json:"item_id" binding:"required"`
	Reason   string `json:"reason" binding:"required,max=200"`
}

// Create files a report and notifies every moderator.
func (h *ReportHandler) Create(c *gin.Context) {
	user := currentUser(c)

	var req createReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, http.StatusBadRequest, MsgInvalidPayload)
		return
	}

	// The reported item must exist
	var count int64
	if req.ItemType == "topic" {
		db.DB.Model(&models.Topic{}).Where("id = ?", req.ItemID).Count(&count)
	} else {
		db.DB.Model(&models.Comment{}).Where("id = ?", req.ItemID).Count(&count)
	}
	if count == 0 {
		JSONError(c, http.StatusNotFound, "Conteúdo não encontrado")
		return
	}

	report := models.Report{
		UserID:   user.ID,
		ItemType: req.ItemType,
		ItemID:   req.ItemID,
		Reason:   req.Reason,
	}
	if err := db.DB.Create(&report).Error; err != nil {
		JSONError(c, http.StatusInternalServerError, MsgInternal)
		return
	}

	go func() {
		var mods []models.User
		if err := db.DB.Where("role IN ?", []string{models.RoleMod, models.RoleAdmin}).Find(&mods).Error; err != nil {
			return
		}
		for _, mod := range mods {
			db.DB.Create(&models.Notification{
				UserID:  mod.ID,
				ActorID: &user.ID,
				Type:    models.NotificationTypeReport,
				Message: fmt.Sprintf("Denúncia de %s (%s %d): %s", user.Username, req.ItemType, req.ItemID, req.Reason),
			})
		}
	}()

	c.JSON(http.StatusCreated, report)
}

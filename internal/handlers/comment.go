package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"polemica/internal/db"
	"polemica/internal/middleware"
	"polemica/internal/models"
	"polemica/internal/services"
	"polemica/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CommentHandler struct{}

func NewCommentHandler() *CommentHandler {
	return &CommentHandler{}
}

// List returns a topic's top-level comments with nested replies.
// sort=top orders by quality-vote count (newest first on ties), sort=new by
// creation time; side/optionId filter both orderings identically.
func (h *CommentHandler) List(c *gin.Context) {
	topic := findTopicBySlug(c)
	if topic == nil {
		return
	}
	if !canViewTopic(topic, currentUser(c)) {
		JSONError(c, http.StatusNotFound, MsgTopicNotFound)
		return
	}

	sort := c.DefaultQuery("sort", services.SortTop)
	if sort != services.SortTop && sort != services.SortNew {
		sort = services.SortTop
	}

	side := c.Query("side")
	if side != "" && side != models.SideAFavor && side != models.SideContra {
		JSONError(c, http.StatusBadRequest, MsgInvalidPayload)
		return
	}

	params := services.CommentListParams{
		Sort:     sort,
		Side:     side,
		OptionID: utils.StringToUint(c.Query("optionId")),
		Page:     utils.StringToInt(c.Query("page")),
		PerPage:  utils.StringToInt(c.Query("perPage")),
	}

	views, pagination, err := services.ListComments(topic.ID, params)
	if err != nil {
		JSONError(c, http.StatusInternalServerError, MsgInternal)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":       views,
		"pagination": pagination,
	})
}

type createCommentRequest struct {
	TopicID  uint    `json:"topic_id" binding:"required"`
	ParentID *uint   `json:"parent_id"`
	Side     *string `json:"side" binding:"omitempty,oneof=AFAVOR CONTRA"`
	OptionID *uint   `json:"option_id"`
	Content  string  `json:"content" binding:"required,max=10000"`
}

func (h *CommentHandler) Create(c *gin.Context) {
	user := currentUser(c)
	if !checkCanWrite(c, user) {
		return
	}

	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, http.StatusBadRequest, MsgInvalidPayload)
		return
	}

	var topic models.Topic
	if err := db.DB.First(&topic, req.TopicID).Error; err != nil {
		JSONError(c, http.StatusNotFound, MsgTopicNotFound)
		return
	}
	if !canViewTopic(&topic, user) {
		JSONError(c, http.StatusNotFound, MsgTopicNotFound)
		return
	}
	if topic.Status == models.TopicStatusLocked {
		JSONError(c, http.StatusForbidden, MsgTopicLocked)
		return
	}

	comment := models.Comment{
		Cid:     utils.RandStringBytesMaskImpr(8),
		TopicID: topic.ID,
		UserID:  user.ID,
		Content: req.Content,
		Status:  models.CommentStatusActive,
	}

	if req.ParentID != nil {
		var parent models.Comment
		if err := db.DB.First(&parent, *req.ParentID).Error; err != nil {
			JSONError(c, http.StatusNotFound, MsgCommentNotFound)
			return
		}
		if parent.TopicID != topic.ID || parent.Status != models.CommentStatusActive {
			JSONError(c, http.StatusNotFound, MsgCommentNotFound)
			return
		}
		if parent.ParentID != nil {
			JSONError(c, http.StatusBadRequest, "Não é possível responder a uma resposta")
			return
		}
		comment.ParentID = req.ParentID
		// Replies never carry side/option tags
	} else {
		if req.Side != nil {
			if topic.IsMulti() {
				JSONError(c, http.StatusBadRequest, MsgInvalidPayload)
				return
			}
			comment.Side = req.Side
		}
		if req.OptionID != nil {
			if !topic.IsMulti() {
				JSONError(c, http.StatusBadRequest, MsgInvalidPayload)
				return
			}
			var owned int64
			db.DB.Model(&models.TopicOption{}).
				Where("topic_id = ? AND id = ?", topic.ID, *req.OptionID).
				Count(&owned)
			if owned == 0 {
				JSONError(c, http.StatusBadRequest, "Opções inválidas")
				return
			}
			comment.OptionID = req.OptionID
		}
	}

	if err := db.DB.Create(&comment).Error; err != nil {
		JSONError(c, http.StatusInternalServerError, MsgInternal)
		return
	}

	services.RecordActivityAsync(user.ID, services.ActivityComment)

	// Notify the parent author on replies, the topic author otherwise
	go func() {
		if comment.ParentID != nil {
			var parent models.Comment
			if err := db.DB.First(&parent, *comment.ParentID).Error; err == nil && parent.UserID != user.ID {
				db.DB.Create(&models.Notification{
					UserID:  parent.UserID,
					ActorID: &user.ID,
					Type:    models.NotificationTypeReplyComment,
					Message: fmt.Sprintf("%s respondeu seu argumento no tema \"%s\"", user.Username, topic.Title),
				})
			}
			return
		}
		if topic.UserID != user.ID {
			db.DB.Create(&models.Notification{
				UserID:  topic.UserID,
				ActorID: &user.ID,
				Type:    models.NotificationTypeCommentTopic,
				Message: fmt.Sprintf("%s publicou um argumento no seu tema \"%s\"", user.Username, topic.Title),
			})
		}
	}()

	view, err := services.LoadCommentView(comment.ID)
	if err != nil {
		JSONError(c, http.StatusInternalServerError, MsgInternal)
		return
	}
	c.JSON(http.StatusCreated, view)
}

type updateCommentRequest struct {
	Content *string `json:"content" binding:"omitempty,max=10000"`
	Status  *string `json:"status" binding:"omitempty,oneof=ACTIVE HIDDEN DELETED"`
}

// Update lets the author edit content while the comment is ACTIVE, and
// moderators change status.
func (h *CommentHandler) Update(c *gin.Context) {
	user := currentUser(c)

	comment := h.findComment(c)
	if comment == nil {
		return
	}

	var req updateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, http.StatusBadRequest, MsgInvalidPayload)
		return
	}
	if req.Content == nil && req.Status == nil {
		JSONError(c, http.StatusBadRequest, MsgInvalidPayload)
		return
	}

	updates := map[string]interface{}{}

	if req.Content != nil {
		if comment.UserID != user.ID {
			JSONError(c, http.StatusForbidden, MsgForbidden)
			return
		}
		if comment.Status != models.CommentStatusActive {
			JSONError(c, http.StatusForbidden, MsgForbidden)
			return
		}
		if *req.Content == "" {
			JSONError(c, http.StatusBadRequest, MsgInvalidPayload)
			return
		}
		updates["content"] = *req.Content
	}

	if req.Status != nil {
		if !user.IsMod() {
			JSONError(c, http.StatusForbidden, MsgForbidden)
			return
		}
		updates["status"] = *req.Status
	}

	if err := db.DB.Model(comment).Updates(updates).Error; err != nil {
		JSONError(c, http.StatusInternalServerError, MsgInternal)
		return
	}

	view, err := services.LoadCommentView(comment.ID)
	if err != nil {
		JSONError(c, http.StatusInternalServerError, MsgInternal)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Delete soft-deletes a comment; content stays in place, only the status
// flips, so the thread shape is preserved.
func (h *CommentHandler) Delete(c *gin.Context) {
	user := currentUser(c)

	comment := h.findComment(c)
	if comment == nil {
		return
	}

	if comment.UserID != user.ID && !user.IsMod() {
		JSONError(c, http.StatusForbidden, MsgForbidden)
		return
	}

	if err := db.DB.Model(comment).Update("status", models.CommentStatusDeleted).Error; err != nil {
		JSONError(c, http.StatusInternalServerError, MsgInternal)
		return
	}

	if comment.UserID == user.ID {
		services.RecordActivityAsync(user.ID, services.ActivityCommentDelete)
	}

	c.JSON(http.StatusOK, gin.H{"status": models.CommentStatusDeleted})
}

// Vote registers a quality up-vote, one per user per comment; repeats just
// return the current count.
func (h *CommentHandler) Vote(c *gin.Context) {
	user := currentUser(c)

	comment := h.findComment(c)
	if comment == nil {
		return
	}
	if comment.Status != models.CommentStatusActive {
		JSONError(c, http.StatusNotFound, MsgCommentNotFound)
		return
	}

	var topic models.Topic
	if err := db.DB.First(&topic, comment.TopicID).Error; err != nil {
		JSONError(c, http.StatusInternalServerError, MsgInternal)
		return
	}
	if topic.Status == models.TopicStatusLocked {
		JSONError(c, http.StatusForbidden, MsgTopicLocked)
		return
	}

	var existing models.CommentVote
	err := db.DB.Where("user_id = ? AND comment_id = ?", user.ID, comment.ID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		vote := models.CommentVote{
			UserID:    user.ID,
			CommentID: comment.ID,
			Value:     1,
		}
		if err := db.DB.Create(&vote).Error; err != nil {
			JSONError(c, http.StatusInternalServerError, MsgInternal)
			return
		}
		if comment.UserID != user.ID {
			services.RecordActivityAsync(comment.UserID, services.ActivityCommentLiked)
		}
	} else if err != nil {
		JSONError(c, http.StatusInternalServerError, MsgInternal)
		return
	}

	var votes int64
	db.DB.Model(&models.CommentVote{}).Where("comment_id = ?", comment.ID).Count(&votes)
	c.JSON(http.StatusOK, gin.H{"votes": votes})
}

func (h *CommentHandler) findComment(c *gin.Context) *models.Comment {
	id := utils.StringToUint(c.Param("id"))
	if id == 0 {
		JSONError(c, http.StatusNotFound, MsgCommentNotFound)
		return nil
	}

	var comment models.Comment
	if err := db.DB.First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			JSONError(c, http.StatusNotFound, MsgCommentNotFound)
		} else {
			JSONError(c, http.StatusInternalServerError, MsgInternal)
		}
		return nil
	}

	// Hidden-topic comments follow topic visibility
	var topic models.Topic
	if err := db.DB.First(&topic, comment.TopicID).Error; err == nil {
		if !canViewTopic(&topic, middleware.CurrentUser(c)) {
			JSONError(c, http.StatusNotFound, MsgCommentNotFound)
			return nil
		}
	}

	return &comment
}

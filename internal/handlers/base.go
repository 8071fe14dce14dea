package handlers

import (
	"errors"
	"net/http"
	"polemica/internal/db"
	"polemica/internal/middleware"
	"polemica/internal/models"
	"polemica/internal/services"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Canonical error messages (Portuguese-first, like the rest of the API)
const (
	MsgTopicNotFound   = "Tema não encontrado"
	MsgCommentNotFound = "Argumento não encontrado"
	MsgTopicLocked     = "Este tema está bloqueado"
	MsgInvalidPayload  = "Dados inválidos"
	MsgUnauthorized    = "Não autenticado"
	MsgForbidden       = "Sem permissão"
	MsgInternal        = "Erro interno do servidor"
)

// JSONError writes the uniform {error} body.
func JSONError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"error": message})
}

// findTopicBySlug loads a topic with its options, handling the 404 reply.
// Returns nil after replying when the topic is missing.
func findTopicBySlug(c *gin.Context) *models.Topic {
	slug := c.Param("slug")
	var topic models.Topic
	err := db.DB.Preload("Options", func(g *gorm.DB) *gorm.DB {
		return g.Order("sort_order ASC")
	}).Where("slug = ?", slug).First(&topic).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			JSONError(c, http.StatusNotFound, MsgTopicNotFound)
		} else {
			JSONError(c, http.StatusInternalServerError, MsgInternal)
		}
		return nil
	}
	return &topic
}

// canViewTopic gates HIDDEN topics to moderators and the author.
func canViewTopic(topic *models.Topic, user *models.User) bool {
	if topic.Status != models.TopicStatusHidden {
		return true
	}
	if user == nil {
		return false
	}
	return user.IsMod() || user.ID == topic.UserID
}

// checkCanWrite enforces mute/ban, lifting expired punishments in passing.
// Returns false after replying when the user may not write.
func checkCanWrite(c *gin.Context, user *models.User) bool {
	if user.Status == models.UserStatusBanned {
		JSONError(c, http.StatusForbidden, "Sua conta foi banida")
		return false
	}
	if user.Status == models.UserStatusMuted {
		if user.PunishExpires != nil && time.Now().After(*user.PunishExpires) {
			db.DB.Model(user).Updates(map[string]interface{}{
				"status":         models.UserStatusOK,
				"punish_expires": nil,
			})
			user.Status = models.UserStatusOK
			return true
		}
		JSONError(c, http.StatusForbidden, "Você está silenciado no momento")
		return false
	}
	return true
}

// mapBallotError translates vote reconciliation errors to HTTP replies.
func mapBallotError(c *gin.Context, err error) {
	var limitErr *services.ChoiceLimitError
	switch {
	case errors.Is(err, services.ErrTopicLocked):
		JSONError(c, http.StatusForbidden, MsgTopicLocked)
	case errors.Is(err, services.ErrInvalidOptions):
		JSONError(c, http.StatusBadRequest, "Opções inválidas")
	case errors.Is(err, services.ErrInvalidVote):
		JSONError(c, http.StatusBadRequest, "Voto inválido")
	case errors.As(err, &limitErr):
		JSONError(c, http.StatusBadRequest, limitErr.Error())
	default:
		JSONError(c, http.StatusInternalServerError, MsgInternal)
	}
}

func currentUser(c *gin.Context) *models.User {
	return middleware.CurrentUser(c)
}

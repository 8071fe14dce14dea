package handlers

import (
	"net/http"
	"polemica/internal/db"
	"polemica/internal/models"
	"polemica/internal/services"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"golang.org/x/crypto/bcrypt"
)

type AuthHandler struct{}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

type signupRequest struct {
	Username string `json:"username" binding:"required,min=3,max=30"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, http.StatusBadRequest, MsgInvalidPayload)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var existing models.User
	if err := db.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		JSONError(c, http.StatusConflict, "Este email já está cadastrado")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		JSONError(c, http.StatusInternalServerError, MsgInternal)
		return
	}

	user := models.User{
		Username: req.Username,
		Email:    email,
		Password: string(hash),
	}
	if err := db.DB.Create(&user).Error; err != nil {
		JSONError(c, http.StatusInternalServerError, MsgInternal)
		return
	}

	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	session.Save()

	c.JSON(http.StatusCreated, user)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, http.StatusBadRequest, MsgInvalidPayload)
		return
	}

	var user models.User
	if err := db.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).First(&user).Error; err != nil {
		JSONError(c, http.StatusUnauthorized, "Email ou senha incorretos")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		JSONError(c, http.StatusUnauthorized, "Email ou senha incorretos")
		return
	}

	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	session.Save()

	c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()
	c.Status(http.StatusNoContent)
}

// Me returns the session user with karma and achievements.
func (h *AuthHandler) Me(c *gin.Context) {
	user := currentUser(c)
	c.JSON(http.StatusOK, gin.H{
		"user":         user,
		"achievements": services.UserAchievements(user.ID),
	})
}

package handlers

import (
	"fmt"
	"math"
	"net/http"
	"polemica/internal/db"
	"polemica/internal/models"
	"polemica/internal/services"
	"polemica/internal/utils"
	"time"

	"github.com/gin-gonic/gin"
)

type TopicHandler struct{}

func NewTopicHandler() *TopicHandler {
	return &TopicHandler{}
}

type topicOptionRequest struct {
	Label       string `json:"label" binding:"required,max=120"`
	Description string `json:"description" binding:"max=300"`
}

type createTopicRequest struct {
	Title              string               `json:"title" binding:"required,max=200"`
	Description        string               `json:"description" binding:"max=5000"`
	Type               string               `json:"type" binding:"required,oneof=YES_NO MULTI_CHOICE"`
	AllowMultipleVotes bool                 `json:"allowMultipleVotes"`
	MaxChoices         int                  `json:"maxChoices" binding:"omitempty,min=1"`
	Options            []topicOptionRequest `json:"options" binding:"omitempty,dive"`
}

// fillTopicCounts batch-fills vote and comment totals for a topic page.
func fillTopicCounts(topics []models.Topic) {
	if len(topics) == 0 {
		return
	}

	topicIDs := make([]uint, len(topics))
	for i, t := range topics {
		topicIDs[i] = t.ID
	}

	type countResult struct {
		TopicID uint
		Count   int64
	}

	var voteResults []countResult
	db.DB.Model(&models.TopicVote{}).
		Select("topic_id, COUNT(*) as count").
		Where("topic_id IN ?", topicIDs).
		Group("topic_id").
		Scan(&voteResults)

	var commentResults []countResult
	db.DB.Model(&models.Comment{}).
		Select("topic_id, COUNT(*) as count").
		Where("topic_id IN ? AND status = ?", topicIDs, models.CommentStatusActive).
		Group("topic_id").
		Scan(&commentResults)

	voteMap := make(map[uint]int64)
	for _, r := range voteResults {
		voteMap[r.TopicID] = r.Count
	}
	commentMap := make(map[uint]int64)
	for _, r := range commentResults {
		commentMap[r.TopicID] = r.Count
	}

	for i := range topics {
		topics[i].VoteCount = voteMap[topics[i].ID]
		topics[i].CommentCount = commentMap[topics[i].ID]
	}
}

func (h *TopicHandler) Create(c *gin.Context) {
	user := currentUser(c)
	if !checkCanWrite(c, user) {
		return
	}

	var req createTopicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, http.StatusBadRequest, MsgInvalidPayload)
		return
	}

	topicType := models.TopicType(req.Type)
	if topicType == models.TopicTypeMultiChoice && len(req.Options) < 2 {
		JSONError(c, http.StatusBadRequest, "Temas de múltipla escolha precisam de pelo menos 2 opções")
		return
	}
	if topicType == models.TopicTypeYesNo && len(req.Options) > 0 {
		JSONError(c, http.StatusBadRequest, "Temas sim/não não aceitam opções")
		return
	}

	maxChoices := req.MaxChoices
	if maxChoices < 1 {
		maxChoices = 1
	}
	if topicType == models.TopicTypeMultiChoice && maxChoices > len(req.Options) {
		maxChoices = len(req.Options)
	}

	topic := models.Topic{
		Slug:               utils.Slugify(req.Title),
		UserID:             user.ID,
		Title:              req.Title,
		Description:        req.Description,
		Type:               topicType,
		Status:             models.TopicStatusActive,
		AllowMultipleVotes: req.AllowMultipleVotes,
		MaxChoices:         maxChoices,
	}
	for i, opt := range req.Options {
		topic.Options = append(topic.Options, models.TopicOption{
			Label:       opt.Label,
			Description: opt.Description,
			Order:       i + 1,
		})
	}

	if err := db.DB.Create(&topic).Error; err != nil {
		JSONError(c, http.StatusInternalServerError, MsgInternal)
		return
	}

	utils.GetCache().Delete("topics:list:page:1")

	services.RecordActivityAsync(user.ID, services.ActivityTopicCreate)

	c.JSON(http.StatusCreated, topic)
}

func (h *TopicHandler) List(c *gin.Context) {
	page := utils.StringToInt(c.Query("page"))
	if page < 1 {
		page = 1
	}
	perPage := 30

	cacheKey := fmt.Sprintf("topics:list:page:%d", page)
	if cached := utils.GetCache().Get(cacheKey); cached != nil {
		if data, ok := cached.(gin.H); ok {
			c.JSON(http.StatusOK, data)
			return
		}
	}

	var total int64
	db.DB.Model(&models.Topic{}).Where("status = ?", models.TopicStatusActive).Count(&total)

	totalPages := int(math.Ceil(float64(total) / float64(perPage)))
	if totalPages == 0 {
		totalPages = 1
	}

	var topics []models.Topic
	err := db.DB.Preload("User").
		Where("status = ?", models.TopicStatusActive).
		Order("created_at DESC").
		Limit(perPage).
		Offset((page - 1) * perPage).
		Find(&topics).Error
	if err != nil {
		JSONError(c, http.StatusInternalServerError, MsgInternal)
		return
	}

	fillTopicCounts(topics)

	data := gin.H{
		"data": topics,
		"pagination": services.Pagination{
			Page:       page,
			PerPage:    perPage,
			Total:      total,
			TotalPages: totalPages,
		},
	}

	utils.GetCache().Set(cacheKey, data, 1*time.Minute)

	c.JSON(http.StatusOK, data)
}

func (h *TopicHandler) Get(c *gin.Context) {
	topic := findTopicBySlug(c)
	if topic == nil {
		return
	}

	user := currentUser(c)
	if !canViewTopic(topic, user) {
		JSONError(c, http.StatusNotFound, MsgTopicNotFound)
		return
	}

	tally, err := services.TallyTopic(topic)
	if err != nil {
		JSONError(c, http.StatusInternalServerError, MsgInternal)
		return
	}

	var commentCount int64
	db.DB.Model(&models.Comment{}).
		Where("topic_id = ? AND parent_id IS NULL AND status = ?", topic.ID, models.CommentStatusActive).
		Count(&commentCount)

	data := gin.H{
		"topic":            topic,
		"description_html": utils.RenderMarkdown(topic.Description),
		"stats":            tally,
		"comment_count":    commentCount,
	}

	// Viewer-specific state, never cached
	if user != nil {
		votes, err := services.UserVotes(user.ID, topic.ID)
		if err == nil {
			if topic.IsMulti() {
				optionIDs := make([]uint, 0, len(votes))
				for _, v := range votes {
					if v.OptionID != nil {
						optionIDs = append(optionIDs, *v.OptionID)
					}
				}
				data["my_option_ids"] = optionIDs
			} else if len(votes) > 0 {
				data["my_vote"] = votes[0].Vote
			}
		}

		var bookmarked int64
		db.DB.Model(&models.TopicBookmark{}).
			Where("user_id = ? AND topic_id = ?", user.ID, topic.ID).
			Count(&bookmarked)
		data["bookmarked"] = bookmarked > 0
	}

	c.JSON(http.StatusOK, data)
}

// Stats returns only the fresh vote aggregate.
func (h *TopicHandler) Stats(c *gin.Context) {
	topic := findTopicBySlug(c)
	if topic == nil {
		return
	}

	if !canViewTopic(topic, currentUser(c)) {
		JSONError(c, http.StatusNotFound, MsgTopicNotFound)
		return
	}

	tally, err := services.TallyTopic(topic)
	if err != nil {
		JSONError(c, http.StatusInternalServerError, MsgInternal)
		return
	}

	c.JSON(http.StatusOK, tally)
}

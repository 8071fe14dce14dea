package handlers

import (
	"net/http"
	"polemica/internal/models"
	"polemica/internal/services"

	"github.com/gin-gonic/gin"
)

type VoteHandler struct{}

func NewVoteHandler() *VoteHandler {
	return &VoteHandler{}
}

// voteRequest carries a tagged action so set and clear share one contract
// instead of splitting the toggle decision between client-side verbs.
type voteRequest struct {
	Action    string `json:"action" binding:"omitempty,oneof=set clear"`
	Vote      string `json:"vote" binding:"omitempty,oneof=SIM NAO DEPENDE"`
	OptionIDs []uint `json:"optionIds"`
}

// Cast applies a vote submission and returns the fresh aggregate.
func (h *VoteHandler) Cast(c *gin.Context) {
	user := currentUser(c)
	if !checkCanWrite(c, user) {
		return
	}

	topic := findTopicBySlug(c)
	if topic == nil {
		return
	}
	if !canViewTopic(topic, user) {
		JSONError(c, http.StatusNotFound, MsgTopicNotFound)
		return
	}

	var req voteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, http.StatusBadRequest, MsgInvalidPayload)
		return
	}

	if req.Action == "clear" {
		h.clear(c, user, topic)
		return
	}

	var err error
	if topic.IsMulti() {
		err = services.CastMulti(user.ID, topic, req.OptionIDs)
	} else {
		err = services.CastBinary(user.ID, topic, req.Vote)
	}
	if err != nil {
		mapBallotError(c, err)
		return
	}

	services.RecordActivityAsync(user.ID, services.ActivityTopicVote)

	h.respondWithTally(c, topic)
}

// Clear removes the user's vote(s); repeating it is a no-op.
func (h *VoteHandler) Clear(c *gin.Context) {
	user := currentUser(c)

	topic := findTopicBySlug(c)
	if topic == nil {
		return
	}
	if !canViewTopic(topic, user) {
		JSONError(c, http.StatusNotFound, MsgTopicNotFound)
		return
	}

	h.clear(c, user, topic)
}

func (h *VoteHandler) clear(c *gin.Context, user *models.User, topic *models.Topic) {
	if err := services.ClearVotes(user.ID, topic.ID); err != nil {
		JSONError(c, http.StatusInternalServerError, MsgInternal)
		return
	}
	h.respondWithTally(c, topic)
}

func (h *VoteHandler) respondWithTally(c *gin.Context, topic *models.Topic) {
	tally, err := services.TallyTopic(topic)
	if err != nil {
		JSONError(c, http.StatusInternalServerError, MsgInternal)
		return
	}
	c.JSON(http.StatusOK, tally)
}

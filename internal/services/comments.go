package services

import (
	"math"
	"polemica/internal/db"
	"polemica/internal/models"
	"polemica/internal/utils"

	"gorm.io/gorm"
)

const (
	SortNew = "new"
	SortTop = "top"

	defaultPerPage = 50
	maxPerPage     = 100
)

// CommentListParams filters and paginates a topic's top-level comments.
type CommentListParams struct {
	Sort     string
	Side     string
	OptionID uint
	Page     int
	PerPage  int
}

// CommentView is a comment with its author, rendered body, nested ACTIVE
// replies (one level) and counts.
type CommentView struct {
	models.Comment
	ContentHTML string        `json:"content_html"`
	VoteCount   int64         `json:"vote_count"`
	ReplyCount  int64         `json:"reply_count"`
	Replies     []CommentView `json:"replies"`
}

// Pagination is the page envelope returned next to list data.
type Pagination struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"perPage"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// Clamp normalizes out-of-range paging input: page at least 1, perPage
// defaulting to 50 and capped at 100.
func (p *CommentListParams) Clamp() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage <= 0 {
		p.PerPage = defaultPerPage
	}
	if p.PerPage > maxPerPage {
		p.PerPage = maxPerPage
	}
}

// ListComments returns a page of top-level ACTIVE comments for a topic.
//
// The top sort works in two phases: an aggregation query selects and orders
// the page of comment ids by up-vote count (created_at breaking ties, newest
// first), then a second query hydrates those ids with author and replies.
// The split keeps the vote-count-driven sort out of the relation loading, so
// neither query degenerates into N+1 lookups.
func ListComments(topicID uint, params CommentListParams) ([]CommentView, *Pagination, error) {
	params.Clamp()
	offset := (params.Page - 1) * params.PerPage

	filtered := func() *gorm.DB {
		q := db.DB.Model(&models.Comment{}).
			Where("comments.topic_id = ? AND comments.parent_id IS NULL AND comments.status = ?",
				topicID, models.CommentStatusActive)
		if params.Side != "" {
			q = q.Where("comments.side = ?", params.Side)
		}
		if params.OptionID != 0 {
			q = q.Where("comments.option_id = ?", params.OptionID)
		}
		return q
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return nil, nil, err
	}

	totalPages := int(math.Ceil(float64(total) / float64(params.PerPage)))
	if totalPages == 0 {
		totalPages = 1
	}

	var ids []uint
	if params.Sort == SortTop {
		err := filtered().
			Joins("LEFT JOIN comment_votes ON comment_votes.comment_id = comments.id").
			Group("comments.id").
			Order("COUNT(comment_votes.id) DESC, comments.created_at DESC").
			Limit(params.PerPage).
			Offset(offset).
			Pluck("comments.id", &ids).Error
		if err != nil {
			return nil, nil, err
		}
	} else {
		err := filtered().
			Order("comments.created_at DESC").
			Limit(params.PerPage).
			Offset(offset).
			Pluck("comments.id", &ids).Error
		if err != nil {
			return nil, nil, err
		}
	}

	views, err := hydrateComments(ids)
	if err != nil {
		return nil, nil, err
	}

	pagination := &Pagination{
		Page:       params.Page,
		PerPage:    params.PerPage,
		Total:      total,
		TotalPages: totalPages,
	}
	return views, pagination, nil
}

// hydrateComments re-fetches comments by id with author, ACTIVE replies and
// counts, preserving the incoming id order.
func hydrateComments(ids []uint) ([]CommentView, error) {
	views := make([]CommentView, 0, len(ids))
	if len(ids) == 0 {
		return views, nil
	}

	var comments []models.Comment
	if err := db.DB.Preload("User").Where("id IN ?", ids).Find(&comments).Error; err != nil {
		return nil, err
	}

	var replies []models.Comment
	if err := db.DB.Preload("User").
		Where("parent_id IN ? AND status = ?", ids, models.CommentStatusActive).
		Order("created_at ASC").
		Find(&replies).Error; err != nil {
		return nil, err
	}

	replyMap := make(map[uint][]models.Comment)
	for _, r := range replies {
		replyMap[*r.ParentID] = append(replyMap[*r.ParentID], r)
	}

	allIDs := make([]uint, 0, len(ids)+len(replies))
	allIDs = append(allIDs, ids...)
	for _, r := range replies {
		allIDs = append(allIDs, r.ID)
	}
	voteCounts, err := commentVoteCounts(allIDs)
	if err != nil {
		return nil, err
	}

	byID := make(map[uint]models.Comment, len(comments))
	for _, c := range comments {
		byID[c.ID] = c
	}

	for _, id := range ids {
		c, ok := byID[id]
		if !ok {
			continue
		}
		view := newCommentView(c, voteCounts)
		children := replyMap[id]
		view.ReplyCount = int64(len(children))
		view.Replies = make([]CommentView, 0, len(children))
		for _, child := range children {
			view.Replies = append(view.Replies, newCommentView(child, voteCounts))
		}
		views = append(views, view)
	}
	return views, nil
}

func newCommentView(c models.Comment, voteCounts map[uint]int64) CommentView {
	return CommentView{
		Comment:     c,
		ContentHTML: utils.RenderMarkdown(c.Content),
		VoteCount:   voteCounts[c.ID],
		Replies:     []CommentView{},
	}
}

// commentVoteCounts batch-counts quality votes, one group query for the page.
func commentVoteCounts(ids []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(ids))
	if len(ids) == 0 {
		return counts, nil
	}
	type countRow struct {
		CommentID uint
		Count     int64
	}
	var rows []countRow
	err := db.DB.Model(&models.CommentVote{}).
		Select("comment_id, COUNT(*) as count").
		Where("comment_id IN ?", ids).
		Group("comment_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		counts[r.CommentID] = r.Count
	}
	return counts, nil
}

// LoadCommentView fetches a single comment with relations and counts, used by
// the create/edit endpoints to echo the full resource.
func LoadCommentView(id uint) (*CommentView, error) {
	var comment models.Comment
	if err := db.DB.Preload("User").First(&comment, id).Error; err != nil {
		return nil, err
	}

	var replyCount int64
	if err := db.DB.Model(&models.Comment{}).
		Where("parent_id = ? AND status = ?", id, models.CommentStatusActive).
		Count(&replyCount).Error; err != nil {
		return nil, err
	}

	voteCounts, err := commentVoteCounts([]uint{id})
	if err != nil {
		return nil, err
	}

	view := newCommentView(comment, voteCounts)
	view.ReplyCount = replyCount
	return &view, nil
}

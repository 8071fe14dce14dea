package handlers_test

import (
	"fmt"
	"net/http"
	"polemica/internal/db"
	"polemica/internal/models"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func createCommentAPI(t *testing.T, client *testClient, body gin.H) map[string]interface{} {
	t.Helper()
	w := client.do(http.MethodPost, "/api/comments", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("create comment failed (%d): %s", w.Code, w.Body.String())
	}
	return decodeBody(t, w)
}

func TestCommentCreateAndReply(t *testing.T) {
	r := setupServer(t)
	client := newClient(t, r)
	user := client.signup("gabi")
	topic := seedBinaryTopic(t, user, "debate")

	created := createCommentAPI(t, client, gin.H{
		"topic_id": topic.ID,
		"side":     "AFAVOR",
		"content":  "Concordo **fortemente**.",
	})
	if created["side"].(string) != "AFAVOR" {
		t.Errorf("expected side AFAVOR, got %v", created["side"])
	}
	if html := created["content_html"].(string); !strings.Contains(html, "<strong>") {
		t.Errorf("markdown should be rendered, got %q", html)
	}

	parentID := uint(created["id"].(float64))
	reply := createCommentAPI(t, client, gin.H{
		"topic_id":  topic.ID,
		"parent_id": parentID,
		"side":      "CONTRA",
		"content":   "Discordo.",
	})
	// Replies never carry side tags, even when the client sends one
	if reply["side"] != nil {
		t.Errorf("reply side must be null, got %v", reply["side"])
	}

	// One level of nesting only
	w := client.do(http.MethodPost, "/api/comments", gin.H{
		"topic_id":  topic.ID,
		"parent_id": uint(reply["id"].(float64)),
		"content":   "Resposta da resposta.",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for nested reply, got %d", w.Code)
	}
	assertErrorBody(t, w, "Não é possível responder a uma resposta")
}

func TestCommentSideRejectedOnMultiChoice(t *testing.T) {
	r := setupServer(t)
	client := newClient(t, r)
	user := client.signup("heitor")
	topic := seedMultiTopic(t, user, "frameworks", 1, "Gin", "Echo")

	w := client.do(http.MethodPost, "/api/comments", gin.H{
		"topic_id": topic.ID,
		"side":     "AFAVOR",
		"content":  "Time Gin.",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}

	// option_id must belong to the topic
	w = client.do(http.MethodPost, "/api/comments", gin.H{
		"topic_id":  topic.ID,
		"option_id": 9999,
		"content":   "Opção fantasma.",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for foreign option, got %d", w.Code)
	}
	assertErrorBody(t, w, "Opções inválidas")

	created := createCommentAPI(t, client, gin.H{
		"topic_id":  topic.ID,
		"option_id": topic.Options[0].ID,
		"content":   "Gin pela simplicidade.",
	})
	if uint(created["option_id"].(float64)) != topic.Options[0].ID {
		t.Errorf("expected option tag to persist, got %v", created["option_id"])
	}
}

func TestCommentLockedTopicRejectsNewComments(t *testing.T) {
	r := setupServer(t)
	client := newClient(t, r)
	user := client.signup("iara")
	topic := seedBinaryTopic(t, user, "encerrado")
	db.DB.Model(topic).Update("status", models.TopicStatusLocked)

	w := client.do(http.MethodPost, "/api/comments", gin.H{
		"topic_id": topic.ID,
		"content":  "Cheguei tarde.",
	})
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d: %s", w.Code, w.Body.String())
	}
	assertErrorBody(t, w, "Este tema está bloqueado")
}

func TestCommentEditPermissions(t *testing.T) {
	r := setupServer(t)
	author := newClient(t, r)
	user := author.signup("julia")
	topic := seedBinaryTopic(t, user, "edicao")

	created := createCommentAPI(t, author, gin.H{"topic_id": topic.ID, "content": "Rascunho."})
	commentID := uint(created["id"].(float64))
	path := fmt.Sprintf("/api/comments/%d", commentID)

	// The author can edit content
	w := author.do(http.MethodPatch, path, gin.H{"content": "Versão final."})
	if w.Code != http.StatusOK {
		t.Fatalf("author edit failed (%d): %s", w.Code, w.Body.String())
	}
	if got := decodeBody(t, w)["content"].(string); got != "Versão final." {
		t.Errorf("content not updated: %q", got)
	}

	// Another user cannot
	intruder := newClient(t, r)
	intruder.signup("kleber")
	w = intruder.do(http.MethodPatch, path, gin.H{"content": "Invasão."})
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for foreign edit, got %d", w.Code)
	}

	// Status changes are moderator-only
	w = author.do(http.MethodPatch, path, gin.H{"status": "HIDDEN"})
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-mod status change, got %d", w.Code)
	}

	mod := newClient(t, r)
	modUser := mod.signup("larissa")
	promote(t, modUser, models.RoleMod)
	w = mod.do(http.MethodPatch, path, gin.H{"status": "HIDDEN"})
	if w.Code != http.StatusOK {
		t.Fatalf("mod status change failed (%d): %s", w.Code, w.Body.String())
	}
	if got := decodeBody(t, w)["status"].(string); got != "HIDDEN" {
		t.Errorf("expected HIDDEN, got %q", got)
	}
}

func TestCommentSoftDelete(t *testing.T) {
	r := setupServer(t)
	client := newClient(t, r)
	user := client.signup("marina")
	topic := seedBinaryTopic(t, user, "remocao")

	created := createCommentAPI(t, client, gin.H{"topic_id": topic.ID, "content": "Me arrependi."})
	commentID := uint(created["id"].(float64))

	w := client.do(http.MethodDelete, fmt.Sprintf("/api/comments/%d", commentID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete failed (%d): %s", w.Code, w.Body.String())
	}
	if got := decodeBody(t, w)["status"].(string); got != "DELETED" {
		t.Errorf("expected DELETED, got %q", got)
	}

	// Row survives with flipped status
	var comment models.Comment
	if err := db.DB.First(&comment, commentID).Error; err != nil {
		t.Fatalf("soft-deleted comment must remain: %v", err)
	}
	if comment.Status != models.CommentStatusDeleted {
		t.Errorf("expected status DELETED, got %s", comment.Status)
	}

	// And it drops out of the listing
	w = client.do(http.MethodGet, "/api/topics/remocao/comments", nil)
	body := decodeBody(t, w)
	if data := body["data"].([]interface{}); len(data) != 0 {
		t.Errorf("deleted comment must not be listed, got %d", len(data))
	}
}

func TestCommentVoteIdempotent(t *testing.T) {
	r := setupServer(t)
	author := newClient(t, r)
	user := author.signup("nina")
	topic := seedBinaryTopic(t, user, "qualidade")

	created := createCommentAPI(t, author, gin.H{"topic_id": topic.ID, "content": "Bom argumento."})
	path := fmt.Sprintf("/api/comments/%d/vote", uint(created["id"].(float64)))

	voter := newClient(t, r)
	voter.signup("otavio")

	w := voter.do(http.MethodPost, path, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("vote failed (%d): %s", w.Code, w.Body.String())
	}
	if got := decodeBody(t, w)["votes"].(float64); got != 1 {
		t.Errorf("expected 1 vote, got %v", got)
	}

	// Repeats return the same count instead of stacking
	w = voter.do(http.MethodPost, path, nil)
	if got := decodeBody(t, w)["votes"].(float64); got != 1 {
		t.Errorf("repeated vote must stay at 1, got %v", got)
	}
}

func TestCommentListSortAndClampOverHTTP(t *testing.T) {
	r := setupServer(t)
	client := newClient(t, r)
	user := client.signup("paula")
	topic := seedBinaryTopic(t, user, "ranking")

	first := createCommentAPI(t, client, gin.H{"topic_id": topic.ID, "content": "primeiro"})
	createCommentAPI(t, client, gin.H{"topic_id": topic.ID, "content": "segundo"})

	voter := newClient(t, r)
	voter.signup("quim")
	voter.do(http.MethodPost, fmt.Sprintf("/api/comments/%d/vote", uint(first["id"].(float64))), nil)

	w := client.do(http.MethodGet, "/api/topics/ranking/comments?sort=top&perPage=500&page=0", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list failed (%d): %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)

	data := body["data"].([]interface{})
	if len(data) != 2 {
		t.Fatalf("expected 2 comments, got %d", len(data))
	}
	top := data[0].(map[string]interface{})
	if top["content"].(string) != "primeiro" {
		t.Errorf("up-voted comment should rank first, got %q", top["content"])
	}

	pagination := body["pagination"].(map[string]interface{})
	if pagination["perPage"].(float64) != 100 {
		t.Errorf("perPage 500 must clamp to 100, got %v", pagination["perPage"])
	}
	if pagination["page"].(float64) != 1 {
		t.Errorf("page 0 must clamp to 1, got %v", pagination["page"])
	}

	// Unknown sort falls back to top instead of erroring
	if w = client.do(http.MethodGet, "/api/topics/ranking/comments?sort=banana", nil); w.Code != http.StatusOK {
		t.Errorf("unknown sort must not fail, got %d", w.Code)
	}
}

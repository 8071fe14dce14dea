package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"polemica/internal/db"
	"polemica/internal/middleware"
	"polemica/internal/models"
	"polemica/internal/router"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupServer wires a fresh in-memory database into a full API router.
func setupServer(t *testing.T) *gin.Engine {
	t.Helper()

	g, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := g.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.Migrate(g); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	db.DB = g

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(sessions.Sessions("polemica_session", cookie.NewStore([]byte("test-secret"))))
	r.Use(middleware.LoadUser())
	router.RegisterRoutes(r)
	return r
}

// testClient replays session cookies across requests like a browser would.
type testClient struct {
	t       *testing.T
	router  *gin.Engine
	cookies []*http.Cookie
}

func newClient(t *testing.T, r *gin.Engine) *testClient {
	return &testClient{t: t, router: r}
}

func (c *testClient) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	c.t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			c.t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}

	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)

	if fresh := w.Result().Cookies(); len(fresh) > 0 {
		c.cookies = fresh
	}
	return w
}

// signup registers a user through the API and keeps the session cookie.
func (c *testClient) signup(username string) *models.User {
	c.t.Helper()

	w := c.do(http.MethodPost, "/api/signup", gin.H{
		"username": username,
		"email":    username + "@example.com",
		"password": "senha-segura",
	})
	if w.Code != http.StatusCreated {
		c.t.Fatalf("signup failed (%d): %s", w.Code, w.Body.String())
	}

	var user models.User
	if err := db.DB.Where("username = ?", username).First(&user).Error; err != nil {
		c.t.Fatalf("load user: %v", err)
	}
	return &user
}

// promote changes the role in place; LoadUser re-reads it on the next request.
func promote(t *testing.T, user *models.User, role string) {
	t.Helper()
	if err := db.DB.Model(user).Update("role", role).Error; err != nil {
		t.Fatalf("promote: %v", err)
	}
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
	return out
}

func seedBinaryTopic(t *testing.T, owner *models.User, slug string) *models.Topic {
	t.Helper()
	topic := &models.Topic{
		Slug:   slug,
		UserID: owner.ID,
		Title:  "Tema " + slug,
		Type:   models.TopicTypeYesNo,
		Status: models.TopicStatusActive,
	}
	if err := db.DB.Create(topic).Error; err != nil {
		t.Fatalf("create topic: %v", err)
	}
	return topic
}

func seedMultiTopic(t *testing.T, owner *models.User, slug string, maxChoices int, labels ...string) *models.Topic {
	t.Helper()
	topic := &models.Topic{
		Slug:               slug,
		UserID:             owner.ID,
		Title:              "Tema " + slug,
		Type:               models.TopicTypeMultiChoice,
		Status:             models.TopicStatusActive,
		AllowMultipleVotes: maxChoices > 1,
		MaxChoices:         maxChoices,
	}
	for i, label := range labels {
		topic.Options = append(topic.Options, models.TopicOption{Label: label, Order: i + 1})
	}
	if err := db.DB.Create(topic).Error; err != nil {
		t.Fatalf("create topic: %v", err)
	}
	return topic
}

func countVoteRows(t *testing.T, userID, topicID uint) int64 {
	t.Helper()
	var n int64
	db.DB.Model(&models.TopicVote{}).Where("user_id = ? AND topic_id = ?", userID, topicID).Count(&n)
	return n
}

func assertErrorBody(t *testing.T, w *httptest.ResponseRecorder, want string) {
	t.Helper()
	body := decodeBody(t, w)
	if got, _ := body["error"].(string); got != want {
		t.Errorf("expected error %q, got %q", want, got)
	}
}

func voteURL(slug string) string {
	return fmt.Sprintf("/api/topics/%s/vote", slug)
}

package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"futurenews/db"
	"futurenews/db/migrations"
	"futurenews/internal/cache"
	"futurenews/internal/entitlement"
	"futurenews/internal/generator"
	"futurenews/internal/repository"
	"futurenews/pkg/llm"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"
)

const e2eLimit = 3

type scriptedCompleter struct {
	batch  string
	detail string
}

func (s *scriptedCompleter) Model() string { return "scripted" }

func (s *scriptedCompleter) Complete(_ context.Context, req llm.CompletionRequest) (string, error) {
	if strings.Contains(req.Prompt, "Return a JSON array") {
		return s.batch, nil
	}
	return s.detail, nil
}

func fencedBatch(n int) string {
	items := make([]string, n)
	for i := range items {
		items[i] = fmt.Sprintf(`{"title":"Headline %d","domain":"d%d.example"}`, i+1, i+1)
	}
	return "Here are your stories:\n```json\n[" + strings.Join(items, ",") + "]\n```"
}

func newE2ERouter(t *testing.T) (*gin.Engine, *entitlement.Ledger) {
	t.Helper()
	conn, err := db.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	if err := migrations.Run(conn, "sqlite"); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	repo := repository.NewEntitlementRepository(conn, "sqlite")
	ledger := entitlement.NewLedger(repo, e2eLimit)
	gen := generator.New(&scriptedCompleter{
		batch:  fencedBatch(30),
		detail: `{"summary":"It shipped.","comments":[{"author":"a","text":"b","score":1,"time":"now"}]}`,
	}, 0)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	stories := NewStoryHandler(ledger, gen, cache.NewMemory())
	entitlements := NewEntitlementHandler(ledger)
	r.POST("/api/generate", stories.Generate)
	r.GET("/api/story/:id/details", stories.GetStoryDetails)
	r.GET("/api/trial/:device_id", entitlements.GetTrialStatus)
	r.GET("/api/tokens/:token", entitlements.GetTokenStatus)
	r.GET("/health", NewHealthHandler(repo).GetHealth)
	return r, ledger
}

func trialRemaining(t *testing.T, r *gin.Engine, deviceID string) int {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/trial/"+deviceID, nil))
	var res TrialStatusResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	return res.UsesRemaining
}

func TestEndToEnd_FreeTrial(t *testing.T) {
	r, _ := newE2ERouter(t)

	assert.Equal(t, e2eLimit, trialRemaining(t, r, "dev-1"))

	w := postGenerate(r, `{"year":2035,"lang":"en","device_id":"dev-1"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	var res GenerateResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 30, len(res.Stories))
	assert.Equal(t, 1, res.Stories[0].ID)
	assert.Equal(t, "https://d1.example", res.Stories[0].URL)
	assert.Equal(t, "anonymous", res.Stories[0].Author)
	assert.Equal(t, 30, res.Stories[29].ID)

	assert.Equal(t, e2eLimit-1, trialRemaining(t, r, "dev-1"))

	for i := 1; i < e2eLimit; i++ {
		w = postGenerate(r, `{"year":2035,"lang":"en","device_id":"dev-1"}`)
		assert.Equal(t, http.StatusOK, w.Code)
	}

	w = postGenerate(r, `{"year":2035,"lang":"en","device_id":"dev-1"}`)
	assert.Equal(t, http.StatusPaymentRequired, w.Code)
	assert.Equal(t, 0, trialRemaining(t, r, "dev-1"))
}

func TestEndToEnd_DetailUsesGeneratedBatch(t *testing.T) {
	r, _ := newE2ERouter(t)

	w := postGenerate(r, `{"year":2036,"lang":"de","device_id":"dev-2"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/story/3/details?year=2036&lang=de", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	var res StoryDetailResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 3, res.StoryID)
	assert.Equal(t, "It shipped.", res.Summary)
	assert.Equal(t, 1, len(res.Comments))
}

func TestEndToEnd_Token(t *testing.T) {
	r, ledger := newE2ERouter(t)

	issued, err := ledger.IssueToken(context.Background(), 1)
	assert.Equal(t, nil, err)

	body := fmt.Sprintf(`{"year":2040,"lang":"ko","token":%q}`, issued.Token)
	w := postGenerate(r, body)
	assert.Equal(t, http.StatusOK, w.Code)

	w = postGenerate(r, body)
	assert.Equal(t, http.StatusPaymentRequired, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/tokens/"+issued.Token, nil))
	var status TokenStatusResponse
	json.Unmarshal(w.Body.Bytes(), &status)
	assert.Equal(t, TokenStatusResponse{Valid: false, RemainingGenerations: 0}, status)
}

func TestEndToEnd_Health(t *testing.T) {
	r, _ := newE2ERouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

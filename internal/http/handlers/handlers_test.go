package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/neuralbrew/go-brew-backend/internal/domain"
	"github.com/neuralbrew/go-brew-backend/internal/recipe"
	"github.com/neuralbrew/go-brew-backend/internal/services"
	"github.com/neuralbrew/go-brew-backend/internal/store"
)

// stubGenerator satisfies the provider contract without any network.
type stubGenerator struct {
	artifact recipe.Artifact
	err      error
}

func (g stubGenerator) Generate(context.Context, string) (recipe.Artifact, error) {
	if g.err != nil {
		return recipe.Artifact{}, g.err
	}
	return g.artifact, nil
}

var testArtifact = recipe.Artifact{
	Name:         "Quantum Latte",
	Ingredients:  []string{"Espresso", "Milk"},
	Effects:      []string{"Focus"},
	Instructions: "Brew with milk and serve.",
}

// newTestRouter wires the handlers onto a bare engine over a fresh in-memory
// store. withProvider controls whether generation is configured.
func newTestRouter(t *testing.T, withProvider bool) (*gin.Engine, *store.MemoryStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st := store.NewMemory()
	recipes := &services.RecipeService{
		Store:   st,
		Sampler: recipe.NewSampler(rand.New(rand.NewSource(1))),
	}
	if withProvider {
		recipes.Generator = stubGenerator{artifact: testArtifact}
	}
	chat := &services.ChatService{Store: st, Recipes: recipes, MaxContentRunes: 2000}

	h := New(chat, recipes, 50)
	r := gin.New()
	r.GET("/messages", h.ListMessages)
	r.POST("/messages", h.PostMessage)
	r.POST("/messages/clear", h.ClearMessages)
	r.POST("/messages/:id/vote", h.VoteMessage)
	r.POST("/recipes/generate", h.GenerateRecipe)
	r.POST("/recipes/auto-generate", h.AutoGenerateRecipe)
	r.POST("/welcome", h.Welcome)
	return r, st
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd *bytes.Reader
	if body == "" {
		rd = bytes.NewReader(nil)
	} else {
		rd = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, into any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), into); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
}

func TestListMessages_EmptyIsArray(t *testing.T) {
	r, _ := newTestRouter(t, false)
	w := doJSON(t, r, http.MethodGet, "/messages", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if got := w.Body.String(); got != "[]" {
		t.Fatalf("empty list must be a bare array, got %q", got)
	}
}

func TestListMessages_LimitClamped(t *testing.T) {
	r, st := newTestRouter(t, false)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		st.AddMessage(ctx, &domain.Message{Username: "neo", Content: "x"})
	}

	cases := []struct {
		query string
		want  int
	}{
		{"?limit=2", 2},
		{"?limit=0", 1},
		{"?limit=-3", 1},
		{"?limit=9999", 5},
		{"?limit=abc", 5},
		{"", 5},
	}
	for _, tc := range cases {
		w := doJSON(t, r, http.MethodGet, "/messages"+tc.query, "")
		var msgs []domain.Message
		decode(t, w, &msgs)
		if len(msgs) != tc.want {
			t.Fatalf("limit %q: got %d messages, want %d", tc.query, len(msgs), tc.want)
		}
	}
}

func TestPostMessage_Plain(t *testing.T) {
	r, st := newTestRouter(t, false)
	w := doJSON(t, r, http.MethodPost, "/messages", `{"username":"neo","content":"hello terminal"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", w.Code, w.Body.String())
	}
	var resp PostMessageResponse
	decode(t, w, &resp)
	if resp.MessageID == "" {
		t.Fatalf("expected a messageId, got %s", w.Body.String())
	}
	if msgs, _ := st.RecentMessages(context.Background(), 10); len(msgs) != 1 {
		t.Fatalf("message not stored")
	}
}

func TestPostMessage_Validation(t *testing.T) {
	r, _ := newTestRouter(t, false)

	cases := []struct {
		name string
		body string
		code string
	}{
		{"no body", "", ErrCodeBadRequest},
		{"missing content", `{"username":"neo"}`, ErrCodeBadRequest},
		{"missing username", `{"content":"hi"}`, ErrCodeBadRequest},
		{"blank username", `{"username":"  ","content":"hi"}`, ErrCodeBadRequest},
		{"whitespace content", `{"username":"neo","content":"   "}`, ErrCodeBadRequest},
		{"unknown kind", `{"username":"neo","content":"hi","kind":"banana"}`, ErrCodeBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, "/messages", tc.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d body = %s", w.Code, w.Body.String())
			}
			var resp ErrorResponse
			decode(t, w, &resp)
			if resp.Code != tc.code {
				t.Fatalf("code = %q, want %q", resp.Code, tc.code)
			}
		})
	}
}

func TestPostMessage_ClearCommand(t *testing.T) {
	r, st := newTestRouter(t, false)
	st.AddMessage(context.Background(), &domain.Message{Username: "neo", Content: "x"})

	w := doJSON(t, r, http.MethodPost, "/messages", `{"username":"neo","content":"/clear"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", w.Code, w.Body.String())
	}
	var resp ClearedResponse
	decode(t, w, &resp)
	if !resp.Cleared {
		t.Fatalf("expected cleared response, got %s", w.Body.String())
	}
	if msgs, _ := st.RecentMessages(context.Background(), 10); len(msgs) != 0 {
		t.Fatalf("store not wiped")
	}
}

func TestPostMessage_RecipeCommand(t *testing.T) {
	r, st := newTestRouter(t, true)

	w := doJSON(t, r, http.MethodPost, "/messages", `{"username":"neo","content":"/recipe milk, cinnamon","isCommand":true}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", w.Code, w.Body.String())
	}
	var resp RecipeCommandResponse
	decode(t, w, &resp)
	if resp.CommandMessageID == "" || resp.RecipeMessageID == "" || resp.RecipeID == "" {
		t.Fatalf("incomplete recipe bundle: %s", w.Body.String())
	}
	if resp.Recipe == nil || resp.Recipe.Name != "Quantum Latte" {
		t.Fatalf("recipe missing from bundle: %s", w.Body.String())
	}
	// Command message plus bot announcement.
	if msgs, _ := st.RecentMessages(context.Background(), 10); len(msgs) != 2 {
		t.Fatalf("expected 2 stored messages, got %d", len(msgs))
	}
}

func TestPostMessage_RecipeCommand_ProviderUnconfigured(t *testing.T) {
	r, _ := newTestRouter(t, false)

	w := doJSON(t, r, http.MethodPost, "/messages", `{"username":"neo","content":"/recipe milk"}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d body = %s", w.Code, w.Body.String())
	}
	var resp ErrorResponse
	decode(t, w, &resp)
	if resp.Code != ErrCodeGenerateFailed {
		t.Fatalf("code = %q, want %q", resp.Code, ErrCodeGenerateFailed)
	}
}

func TestClearMessages(t *testing.T) {
	r, st := newTestRouter(t, false)
	st.AddMessage(context.Background(), &domain.Message{Username: "neo", Content: "x"})

	w := doJSON(t, r, http.MethodPost, "/messages/clear", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", w.Code, w.Body.String())
	}
	if msgs, _ := st.RecentMessages(context.Background(), 10); len(msgs) != 0 {
		t.Fatalf("store not wiped")
	}
}

func TestVoteMessage(t *testing.T) {
	r, st := newTestRouter(t, false)
	id, _ := st.AddMessage(context.Background(), &domain.Message{Username: "neo", Content: "vote"})

	w := doJSON(t, r, http.MethodPost, "/messages/"+id+"/vote", `{"username":"trinity","voteType":"up"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", w.Code, w.Body.String())
	}
	var resp VoteResponse
	decode(t, w, &resp)
	if !resp.Success || resp.Votes != 1 {
		t.Fatalf("unexpected vote response: %s", w.Body.String())
	}

	// Toggle: same direction retracts.
	w = doJSON(t, r, http.MethodPost, "/messages/"+id+"/vote", `{"username":"trinity","voteType":"up"}`)
	decode(t, w, &resp)
	if resp.Votes != 0 {
		t.Fatalf("expected retraction to 0, got %d", resp.Votes)
	}
}

func TestVoteMessage_Errors(t *testing.T) {
	r, st := newTestRouter(t, false)
	id, _ := st.AddMessage(context.Background(), &domain.Message{Username: "neo", Content: "vote"})

	cases := []struct {
		name   string
		path   string
		body   string
		status int
		code   string
	}{
		{"missing body", "/messages/" + id + "/vote", "", http.StatusBadRequest, ErrCodeBadRequest},
		{"bad direction", "/messages/" + id + "/vote", `{"username":"neo","voteType":"sideways"}`, http.StatusBadRequest, ErrCodeBadRequest},
		{"unknown message", "/messages/nope/vote", `{"username":"neo","voteType":"up"}`, http.StatusInternalServerError, ErrCodeNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, tc.path, tc.body)
			if w.Code != tc.status {
				t.Fatalf("status = %d, want %d (%s)", w.Code, tc.status, w.Body.String())
			}
			var resp ErrorResponse
			decode(t, w, &resp)
			if resp.Code != tc.code {
				t.Fatalf("code = %q, want %q", resp.Code, tc.code)
			}
		})
	}
}

func TestGenerateRecipe(t *testing.T) {
	r, _ := newTestRouter(t, true)

	w := doJSON(t, r, http.MethodPost, "/recipes/generate", `{"ingredients":"milk, cinnamon","username":"neo"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", w.Code, w.Body.String())
	}
	var resp GenerateRecipeResponse
	decode(t, w, &resp)
	if resp.Recipe == nil || resp.Recipe.ID == "" || resp.MessageID == "" {
		t.Fatalf("incomplete response: %s", w.Body.String())
	}
	if resp.Recipe.CreatedBy != services.CreatorBarista {
		t.Fatalf("createdBy = %q", resp.Recipe.CreatedBy)
	}
}

func TestGenerateRecipe_BodyOptional(t *testing.T) {
	r, _ := newTestRouter(t, true)
	w := doJSON(t, r, http.MethodPost, "/recipes/generate", "")
	if w.Code != http.StatusOK {
		t.Fatalf("bare POST should generate with defaults, got %d: %s", w.Code, w.Body.String())
	}
}

func TestGenerateRecipe_ProviderUnconfigured(t *testing.T) {
	r, _ := newTestRouter(t, false)
	w := doJSON(t, r, http.MethodPost, "/recipes/generate", `{"ingredients":"milk"}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d body = %s", w.Code, w.Body.String())
	}
	var resp ErrorResponse
	decode(t, w, &resp)
	if resp.Code != ErrCodeGenerateFailed || resp.Error != "generation provider not configured" {
		t.Fatalf("unexpected error body: %s", w.Body.String())
	}
}

func TestAutoGenerateRecipe(t *testing.T) {
	r, st := newTestRouter(t, true)

	w := doJSON(t, r, http.MethodPost, "/recipes/auto-generate", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", w.Code, w.Body.String())
	}
	var resp GenerateRecipeResponse
	decode(t, w, &resp)
	if resp.Recipe.CreatedBy != services.CreatorBrewBot {
		t.Fatalf("createdBy = %q, want %q", resp.Recipe.CreatedBy, services.CreatorBrewBot)
	}
	msgs, _ := st.RecentMessages(context.Background(), 10)
	if len(msgs) != 1 || msgs[0].Username != "[BREW_BOT]" {
		t.Fatalf("expected a brew bot announcement, got %+v", msgs)
	}
}

func TestWelcome(t *testing.T) {
	r, _ := newTestRouter(t, false)

	w := doJSON(t, r, http.MethodPost, "/welcome", `{"username":"neo"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", w.Code, w.Body.String())
	}
	var resp WelcomeResponse
	decode(t, w, &resp)
	if !resp.Welcomed || resp.Returning {
		t.Fatalf("first welcome: %s", w.Body.String())
	}

	w = doJSON(t, r, http.MethodPost, "/welcome", `{"username":"neo"}`)
	decode(t, w, &resp)
	if !resp.Returning {
		t.Fatalf("second welcome should report returning: %s", w.Body.String())
	}
}

func TestWelcome_Validation(t *testing.T) {
	r, _ := newTestRouter(t, false)
	for _, body := range []string{"", `{}`, `{"username":"   "}`} {
		w := doJSON(t, r, http.MethodPost, "/welcome", body)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("body %q: status = %d", body, w.Code)
		}
	}
}

func TestNew_ClampsMessageLimit(t *testing.T) {
	h := New(nil, nil, 0)
	if h.messageLimit != 100 {
		t.Fatalf("messageLimit = %d, want fallback 100", h.messageLimit)
	}
}

package telegram_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"workspace-assistant/internal/assistant"
	"workspace-assistant/internal/assistant/delivery/telegram"
	"workspace-assistant/internal/model"
	pkgLog "workspace-assistant/pkg/log"
	pkgTelegram "workspace-assistant/pkg/telegram"
)

// ── Mocks ──────────────────────────────────────────────────────────────────

type mockUseCase struct {
	mu      sync.Mutex
	inputs  []assistant.ProcessInput
	scopes  []model.Scope
	outputs []assistant.ProcessOutput
	err     error
}

func (m *mockUseCase) Process(ctx context.Context, sc model.Scope, input assistant.ProcessInput) (assistant.ProcessOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inputs = append(m.inputs, input)
	m.scopes = append(m.scopes, sc)
	if m.err != nil {
		return assistant.ProcessOutput{}, m.err
	}
	out := assistant.ProcessOutput{Kind: assistant.KindText, Text: "ok"}
	if len(m.outputs) > 0 {
		out = m.outputs[0]
		m.outputs = m.outputs[1:]
	}
	return out, nil
}

func (m *mockUseCase) calls() []assistant.ProcessInput {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]assistant.ProcessInput(nil), m.inputs...)
}

// ── Test Helpers ───────────────────────────────────────────────────────────

type testEnv struct {
	engine   *gin.Engine
	muc      *mockUseCase
	gateway  *telegram.ChatGateway
	messages *[]string
	mu       *sync.Mutex
}

func (env *testEnv) sent() []string {
	env.mu.Lock()
	defer env.mu.Unlock()
	return append([]string(nil), *env.messages...)
}

func newTestEnv(t *testing.T) (*testEnv, *httptest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	messages := &[]string{}
	var mu sync.Mutex

	tgServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "/sendMessage") {
			var payload map[string]interface{}
			json.NewDecoder(r.Body).Decode(&payload)
			if text, ok := payload["text"].(string); ok {
				mu.Lock()
				*messages = append(*messages, text)
				mu.Unlock()
			}
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"ok": true}`))
	}))

	bot := pkgTelegram.NewBot("test-token")
	bot.SetAPIURL(tgServer.URL)

	muc := &mockUseCase{}
	gateway := telegram.NewChatGateway(bot, 16, time.Hour)

	engine := gin.New()
	h := telegram.New(pkgLog.NewNoop(), muc, bot, gateway)
	engine.POST("/webhook/telegram", h.HandleWebhook)

	return &testEnv{
		engine:   engine,
		muc:      muc,
		gateway:  gateway,
		messages: messages,
		mu:       &mu,
	}, tgServer
}

func sendWebhook(engine *gin.Engine, chatID int64, text string) *httptest.ResponseRecorder {
	update := pkgTelegram.Update{
		UpdateID: 1,
		Message: &pkgTelegram.Message{
			MessageID: 1,
			Chat:      &pkgTelegram.Chat{ID: chatID, Type: "private", FirstName: "Dana"},
			From:      &pkgTelegram.User{ID: chatID, Username: "dana"},
			Text:      text,
		},
	}
	body, _ := json.Marshal(update)
	req, _ := http.NewRequest(http.MethodPost, "/webhook/telegram", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("condition not met within %v", timeout)
}

func assertContains(t *testing.T, msgs []string, substr string) {
	t.Helper()
	for _, m := range msgs {
		if strings.Contains(m, substr) {
			return
		}
	}
	t.Errorf("expected a message containing %q, got: %v", substr, msgs)
}

// ── Tests ──────────────────────────────────────────────────────────────────

func TestHandleWebhook_InvalidJSON(t *testing.T) {
	env, tgSrv := newTestEnv(t)
	defer tgSrv.Close()

	req, _ := http.NewRequest(http.MethodPost, "/webhook/telegram", bytes.NewBufferString("{bad json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.engine.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestHandleWebhook_NonMessageUpdate(t *testing.T) {
	env, tgSrv := newTestEnv(t)
	defer tgSrv.Close()

	body, _ := json.Marshal(pkgTelegram.Update{UpdateID: 1})
	req, _ := http.NewRequest(http.MethodPost, "/webhook/telegram", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.engine.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if len(env.muc.calls()) != 0 {
		t.Errorf("expected no engine calls, got %d", len(env.muc.calls()))
	}
}

func TestHandleStart(t *testing.T) {
	env, tgSrv := newTestEnv(t)
	defer tgSrv.Close()

	w := sendWebhook(env.engine, 123, "/start")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	waitFor(t, 500*time.Millisecond, func() bool { return len(env.sent()) >= 1 })
	assertContains(t, env.sent(), "Workspace Assistant")
	if len(env.muc.calls()) != 0 {
		t.Errorf("built-in command must not reach the engine")
	}
}

func TestHandleHelp(t *testing.T) {
	env, tgSrv := newTestEnv(t)
	defer tgSrv.Close()

	sendWebhook(env.engine, 123, "/help")
	waitFor(t, 500*time.Millisecond, func() bool { return len(env.sent()) >= 1 })
	assertContains(t, env.sent(), "send it")
}

func TestHandleMessage_ScopeAndReply(t *testing.T) {
	env, tgSrv := newTestEnv(t)
	defer tgSrv.Close()

	env.muc.outputs = []assistant.ProcessOutput{
		{Kind: assistant.KindText, Text: "You have 2 events today."},
	}
	w := sendWebhook(env.engine, 42, "what's on my calendar?")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	waitFor(t, 500*time.Millisecond, func() bool { return len(env.sent()) >= 1 })
	assertContains(t, env.sent(), "You have 2 events today.")

	calls := env.muc.calls()
	if len(calls) != 1 {
		t.Fatalf("expected 1 engine call, got %d", len(calls))
	}
	if calls[0].Message != "what's on my calendar?" {
		t.Errorf("unexpected message: %q", calls[0].Message)
	}
	if got := env.muc.scopes[0].UserID; got != "telegram_42" {
		t.Errorf("expected scope user telegram_42, got %q", got)
	}
}

func TestHandleMessage_SessionCarriesBetweenTurns(t *testing.T) {
	env, tgSrv := newTestEnv(t)
	defer tgSrv.Close()

	env.muc.outputs = []assistant.ProcessOutput{
		{
			Kind: assistant.KindText,
			Text: "What should the document be called?",
			Session: assistant.SessionState{
				PendingAction: assistant.PendingDocumentTitle,
			},
		},
		{Kind: assistant.KindNavigation, Text: "Created.", Target: "https://docs.google.com/document/d/x/edit"},
	}

	sendWebhook(env.engine, 7, "create a doc")
	waitFor(t, 500*time.Millisecond, func() bool { return len(env.muc.calls()) >= 1 })
	sendWebhook(env.engine, 7, "Meeting Notes")
	waitFor(t, 500*time.Millisecond, func() bool { return len(env.muc.calls()) >= 2 })

	calls := env.muc.calls()
	if calls[0].Session.PendingAction != assistant.PendingNone {
		t.Errorf("first turn should start with a clean session")
	}
	if calls[1].Session.PendingAction != assistant.PendingDocumentTitle {
		t.Errorf("second turn should carry the pending action, got %q", calls[1].Session.PendingAction)
	}
	if len(calls[1].History) != 2 {
		t.Errorf("second turn should carry the first exchange, got %d turns", len(calls[1].History))
	}
}

func TestHandleMessage_DraftReviewRendering(t *testing.T) {
	env, tgSrv := newTestEnv(t)
	defer tgSrv.Close()

	env.muc.outputs = []assistant.ProcessOutput{
		{
			Kind: assistant.KindDraftReview,
			Text: `Say "send it" to send.`,
			Draft: &assistant.DraftDetails{
				DraftID: "d-1",
				To:      "bob@example.com",
				Subject: "Status",
				Body:    "The report is ready.",
			},
		},
	}
	sendWebhook(env.engine, 9, "email bob")
	waitFor(t, 500*time.Millisecond, func() bool { return len(env.sent()) >= 1 })
	assertContains(t, env.sent(), "bob@example.com")
	assertContains(t, env.sent(), "The report is ready.")
}

func TestHandleMessage_EngineError(t *testing.T) {
	env, tgSrv := newTestEnv(t)
	defer tgSrv.Close()

	env.muc.err = context.DeadlineExceeded
	sendWebhook(env.engine, 11, "hello")
	waitFor(t, 500*time.Millisecond, func() bool { return len(env.sent()) >= 1 })
	assertContains(t, env.sent(), "Something went wrong")
}

func TestGateway_ObserveAndSearch(t *testing.T) {
	env, tgSrv := newTestEnv(t)
	defer tgSrv.Close()

	sendWebhook(env.engine, 55, "hi")
	waitFor(t, 500*time.Millisecond, func() bool { return len(env.muc.calls()) >= 1 })

	chats, err := env.gateway.SearchChats(context.Background(), "dana")
	if err != nil {
		t.Fatalf("SearchChats: %v", err)
	}
	if len(chats) != 1 || chats[0].ID != "55" {
		t.Fatalf("expected chat 55, got %+v", chats)
	}

	chats, err = env.gateway.SearchChats(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("SearchChats: %v", err)
	}
	if len(chats) != 0 {
		t.Errorf("expected no match, got %+v", chats)
	}
}

func TestGateway_SendMessage(t *testing.T) {
	env, tgSrv := newTestEnv(t)
	defer tgSrv.Close()

	if err := env.gateway.SendMessage(context.Background(), "77", "ping"); err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	assertContains(t, env.sent(), "ping")

	if err := env.gateway.SendMessage(context.Background(), "not-a-number", "ping"); err == nil {
		t.Error("expected error for non-numeric chat id")
	}
}

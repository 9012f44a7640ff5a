package telegram

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"workspace-assistant/internal/assistant"
	"workspace-assistant/internal/model"
	pkgLog "workspace-assistant/pkg/log"
	pkgResponse "workspace-assistant/pkg/response"
	pkgTelegram "workspace-assistant/pkg/telegram"
)

const (
	welcomeText = "👋 Welcome to *Workspace Assistant*!\n\nI can manage your calendar, email, and documents. Try:\n• _\"What's on my calendar tomorrow?\"_\n• _\"Email Bob that the report is ready\"_\n• _\"Create a doc called Sprint Notes\"_"
	helpText    = "*What I can do:*\n\n📅 Calendar: list, create, move, and cancel events\n📧 Email: find, read, summarize, and draft replies\n📄 Docs: create, open, summarize, and edit documents\n💬 Chat: draft and send messages\n\nDrafts are never sent without your confirmation. Say `send it` to confirm or `cancel` to discard."
)

// maxHistoryTurns bounds the conversation window sent to the engine.
const maxHistoryTurns = 20

type handler struct {
	l       pkgLog.Logger
	uc      assistant.UseCase
	bot     *pkgTelegram.Bot
	gateway *ChatGateway
	convos  *convoStore
}

// HandleWebhook is the Gin handler for incoming Telegram webhook updates.
// It responds with HTTP 200 immediately and processes the message in a
// background goroutine to avoid the Telegram webhook timeout (the pipeline
// runs two LLM calls plus Google API round-trips and can take several seconds).
func (h *handler) HandleWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	var update pkgTelegram.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		h.l.Errorf(ctx, "telegram handler: failed to parse update: %v", err)
		pkgResponse.Error(c, err, nil)
		return
	}

	// Ignore non-message updates (polls, channel_post, etc.)
	if update.Message == nil || update.Message.Chat == nil {
		pkgResponse.OK(c, map[string]string{"status": "ignored"})
		return
	}

	// Snapshot the message before spawning goroutine to avoid data races on gin context
	msg := update.Message

	// Process in goroutine, return 200 immediately to Telegram
	go func() {
		// Detach from HTTP request context (which gets cancelled after response)
		bgCtx := context.Background()
		if err := h.processMessage(bgCtx, msg); err != nil {
			h.l.Errorf(bgCtx, "telegram handler: background processMessage failed: %v", err)
			// Best-effort error notification to user
			_ = h.bot.SendMessage(bgCtx, msg.Chat.ID, "Something went wrong while handling your request. Please try again.")
		}
	}()

	pkgResponse.OK(c, map[string]string{"status": "accepted"})
}

// processMessage handles a single Telegram message end to end: built-in
// commands, one engine turn, and persisting the updated session.
func (h *handler) processMessage(ctx context.Context, msg *pkgTelegram.Message) error {
	if msg.Text == "" {
		return nil
	}

	h.gateway.Observe(msg.Chat.ID, msg.Chat.DisplayName())

	switch msg.Text {
	case "/start":
		return h.bot.SendMessageWithMode(ctx, msg.Chat.ID, welcomeText, "Markdown")
	case "/help":
		return h.bot.SendMessageWithMode(ctx, msg.Chat.ID, helpText, "Markdown")
	}

	sc := model.Scope{
		UserID: fmt.Sprintf("telegram_%d", msg.Chat.ID),
	}
	if msg.From != nil {
		sc.Username = msg.From.Username
	}

	convo := h.convos.Get(msg.Chat.ID)

	out, err := h.uc.Process(ctx, sc, assistant.ProcessInput{
		Message: msg.Text,
		History: convo.History,
		Session: convo.Session,
	})
	if err != nil {
		h.l.Errorf(ctx, "telegram handler: Process failed: %v", err)
		return h.bot.SendMessage(ctx, msg.Chat.ID, "Something went wrong while handling your request. Please try again.")
	}

	convo.Session = out.Session
	convo.History = appendTurns(convo.History, msg.Text, out.Text)
	h.convos.Put(msg.Chat.ID, convo)

	return h.sendOutput(ctx, msg.Chat.ID, out)
}

// sendOutput renders a process result as one Telegram message.
func (h *handler) sendOutput(ctx context.Context, chatID int64, out assistant.ProcessOutput) error {
	switch out.Kind {
	case assistant.KindDraftReview:
		reply := out.Text
		if out.Draft != nil {
			reply = "📝 *Draft*\n"
			if out.Draft.To != "" {
				reply += fmt.Sprintf("To: %s\n", out.Draft.To)
			}
			if out.Draft.ChatTarget != "" {
				reply += fmt.Sprintf("To: %s\n", out.Draft.ChatTarget)
			}
			if out.Draft.Subject != "" {
				reply += fmt.Sprintf("Subject: %s\n", out.Draft.Subject)
			}
			reply += fmt.Sprintf("\n%s\n\n%s", out.Draft.Body, out.Text)
		}
		return h.bot.SendMessageWithMode(ctx, chatID, reply, "Markdown")
	case assistant.KindNavigation:
		reply := out.Text
		if out.Target != "" {
			reply += fmt.Sprintf("\n%s", out.Target)
		}
		return h.bot.SendMessage(ctx, chatID, reply)
	case assistant.KindError:
		return h.bot.SendMessage(ctx, chatID, fmt.Sprintf("⚠️ %s", out.Text))
	default:
		return h.bot.SendMessage(ctx, chatID, out.Text)
	}
}

// appendTurns adds one exchange to the history, keeping the newest turns.
func appendTurns(history []model.Turn, userText, assistantText string) []model.Turn {
	history = append(history,
		model.Turn{Role: model.RoleUser, Content: userText},
		model.Turn{Role: model.RoleAssistant, Content: assistantText},
	)
	if len(history) > maxHistoryTurns {
		history = history[len(history)-maxHistoryTurns:]
	}
	return history
}

package telegram

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"workspace-assistant/internal/assistant/usecase"
	pkgTelegram "workspace-assistant/pkg/telegram"
)

// ChatGateway adapts the Telegram bot to the engine's chat collaborator
// contract. The Bot API cannot enumerate chats, so the gateway remembers
// every chat the webhook has seen and searches within those.
type ChatGateway struct {
	bot  *pkgTelegram.Bot
	seen *expirable.LRU[int64, seenChat]
}

type seenChat struct {
	ID   int64
	Name string
}

// NewChatGateway creates a gateway remembering up to size chats for ttl.
func NewChatGateway(bot *pkgTelegram.Bot, size int, ttl time.Duration) *ChatGateway {
	return &ChatGateway{
		bot:  bot,
		seen: expirable.NewLRU[int64, seenChat](size, nil, ttl),
	}
}

var _ usecase.ChatClient = (*ChatGateway)(nil)

// Observe records a chat so later searches can find it. Called by the
// webhook handler for every incoming message.
func (g *ChatGateway) Observe(chatID int64, name string) {
	if name == "" {
		name = strconv.FormatInt(chatID, 10)
	}
	g.seen.Add(chatID, seenChat{ID: chatID, Name: name})
}

// SendMessage implements usecase.ChatClient.
func (g *ChatGateway) SendMessage(ctx context.Context, chatID, text string) error {
	id, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid chat id %q: %w", chatID, err)
	}
	return g.bot.SendMessage(ctx, id, text)
}

// SearchChats implements usecase.ChatClient with a substring match over the
// chats seen so far.
func (g *ChatGateway) SearchChats(ctx context.Context, query string) ([]usecase.Chat, error) {
	query = strings.ToLower(strings.TrimSpace(query))

	var chats []usecase.Chat
	for _, id := range g.seen.Keys() {
		entry, ok := g.seen.Get(id)
		if !ok {
			continue
		}
		if query == "" || strings.Contains(strings.ToLower(entry.Name), query) {
			chats = append(chats, usecase.Chat{
				ID:   strconv.FormatInt(entry.ID, 10),
				Name: entry.Name,
			})
		}
	}
	return chats, nil
}

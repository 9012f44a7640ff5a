package telegram

import (
	"time"

	"github.com/gin-gonic/gin"

	"workspace-assistant/internal/assistant"
	pkgLog "workspace-assistant/pkg/log"
	pkgTelegram "workspace-assistant/pkg/telegram"
)

const (
	convoCacheSize = 1000
	convoCacheTTL  = 24 * time.Hour
)

// Handler is the interface for the Telegram delivery handler.
type Handler interface {
	HandleWebhook(c *gin.Context)
}

// New creates a new Telegram delivery handler.
func New(
	l pkgLog.Logger,
	uc assistant.UseCase,
	bot *pkgTelegram.Bot,
	gateway *ChatGateway,
) Handler {
	return &handler{
		l:       l,
		uc:      uc,
		bot:     bot,
		gateway: gateway,
		convos:  newConvoStore(convoCacheSize, convoCacheTTL),
	}
}

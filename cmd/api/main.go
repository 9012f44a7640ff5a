package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"workspace-assistant/config"
	_ "workspace-assistant/docs" // Swagger docs
	tgDelivery "workspace-assistant/internal/assistant/delivery/telegram"
	"workspace-assistant/internal/assistant/usecase"
	"workspace-assistant/internal/httpserver"
	"workspace-assistant/internal/intent"
	"workspace-assistant/pkg/datemath"
	"workspace-assistant/pkg/gcalendar"
	"workspace-assistant/pkg/gdocs"
	"workspace-assistant/pkg/gmail"
	"workspace-assistant/pkg/llmprovider"
	"workspace-assistant/pkg/log"
	"workspace-assistant/pkg/telegram"
)

const (
	draftStoreSize = 256
	chatCacheSize  = 1000
	chatCacheTTL   = 7 * 24 * time.Hour
)

// @title       Workspace Assistant API
// @description Conversational workspace assistant for Google Calendar, Gmail, Docs, and Telegram chat.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Workspace Assistant...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. LLM provider chain
	providers, err := llmprovider.InitializeProviders(&cfg.LLM)
	if err != nil {
		logger.Error(ctx, "Failed to initialize LLM providers: ", err)
		return
	}
	llm := llmprovider.NewManager(providers, &llmprovider.Config{
		FallbackEnabled: cfg.LLM.FallbackEnabled,
		RetryAttempts:   cfg.LLM.RetryAttempts,
		RetryDelay:      parseDurationOr(cfg.LLM.RetryDelay, time.Second),
		MaxTotalTimeout: parseDurationOr(cfg.LLM.MaxTotalTimeout, 60*time.Second),
	}, logger)
	logger.Infof(ctx, "LLM chain ready with %d provider(s)", len(providers))

	// 4. Intent pipeline
	classifier := intent.NewClassifier(llm, logger)
	extractor := intent.NewExtractor(llm, logger)

	// 5. Date resolution
	timezone := cfg.Assistant.Timezone
	dateMath, err := datemath.NewParser(timezone)
	if err != nil {
		logger.Warnf(ctx, "Invalid timezone %q, falling back to UTC: %v", timezone, err)
		timezone = "UTC"
		dateMath, _ = datemath.NewParser(timezone)
	}

	// 6. Google Workspace clients (one shared OAuth client). Interface-typed
	// so an unconfigured collaborator stays a nil interface and the engine
	// can tell the user the capability is off.
	var (
		calendarClient usecase.CalendarClient
		mailClient     usecase.MailClient
		docsClient     usecase.DocsClient
	)
	if cfg.Google.CredentialsPath != "" {
		httpClient, gErr := newGoogleHTTPClient(ctx, cfg.Google.CredentialsPath, cfg.Google.TokenPath)
		if gErr != nil {
			logger.Warnf(ctx, "Google Workspace not available (optional): %v", gErr)
			logger.Warn(ctx, "→ Run `go run scripts/gcal-auth/main.go` to generate token.json")
		} else {
			if calendarClient, gErr = gcalendar.NewClientFromHTTP(ctx, httpClient); gErr != nil {
				logger.Error(ctx, "Failed to create Calendar client: ", gErr)
				return
			}
			if mailClient, gErr = gmail.NewClientFromHTTP(ctx, httpClient); gErr != nil {
				logger.Error(ctx, "Failed to create Gmail client: ", gErr)
				return
			}
			if docsClient, gErr = gdocs.NewClientFromHTTP(ctx, httpClient); gErr != nil {
				logger.Error(ctx, "Failed to create Docs client: ", gErr)
				return
			}
			logger.Info(ctx, "✅ Google Workspace clients initialized")
		}
	} else {
		logger.Warn(ctx, "Google credentials not configured, Workspace features disabled")
	}

	// 7. Telegram bot and chat gateway. chatClient mirrors the Google
	// clients: nil interface when no bot token is configured.
	var (
		telegramHandler tgDelivery.Handler
		chatGateway     *tgDelivery.ChatGateway
		chatClient      usecase.ChatClient
		telegramBot     *telegram.Bot
	)
	if cfg.Telegram.BotToken != "" {
		telegramBot = telegram.NewBot(cfg.Telegram.BotToken)
		chatGateway = tgDelivery.NewChatGateway(telegramBot, chatCacheSize, chatCacheTTL)
		chatClient = chatGateway
	} else {
		logger.Warn(ctx, "TELEGRAM_BOT_TOKEN missing, Telegram delivery disabled")
	}

	// 8. Assistant engine
	drafts := usecase.NewDraftStore(draftStoreSize, parseDurationOr(cfg.Assistant.DraftTTL, 30*time.Minute))

	assistantUC := usecase.New(
		logger,
		classifier,
		extractor,
		llm,
		calendarClient,
		mailClient,
		docsClient,
		chatClient,
		drafts,
		dateMath,
		cfg.Google.CalendarID,
		timezone,
		cfg.Assistant.HistoryLimit,
	)

	// 9. Telegram delivery and webhook registration
	if telegramBot != nil {
		telegramHandler = tgDelivery.New(logger, assistantUC, telegramBot, chatGateway)

		webhookURL := cfg.Telegram.WebhookURL
		if webhookURL == "" {
			ngrokURL, ngrokErr := detectNgrokURL(ctx, "http://ngrok:4040")
			if ngrokErr != nil {
				logger.Warnf(ctx, "Could not detect ngrok URL: %v", ngrokErr)
			} else {
				webhookURL = ngrokURL + "/webhook/telegram"
				logger.Infof(ctx, "Auto-detected ngrok URL: %s", webhookURL)
			}
		}
		if webhookURL != "" {
			if whErr := telegramBot.SetWebhook(ctx, webhookURL); whErr != nil {
				logger.Warnf(ctx, "Failed to set Telegram webhook: %v", whErr)
			} else {
				logger.Infof(ctx, "✅ Telegram webhook registered at %s", webhookURL)
			}
		}
	}

	// 10. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:          logger,
		Port:            cfg.HTTPServer.Port,
		Mode:            cfg.HTTPServer.Mode,
		Environment:     cfg.Environment.Name,
		AssistantUC:     assistantUC,
		TelegramHandler: telegramHandler,
		RateLimitPerMin: cfg.Assistant.RateLimitPerMin,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 11. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}

// parseDurationOr parses a duration string, returning fallback on empty or
// invalid input.
func parseDurationOr(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}

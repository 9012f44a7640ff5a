package usecase

import (
	"context"

	"workspace-assistant/internal/intent"
	"workspace-assistant/pkg/datemath"
	"workspace-assistant/pkg/gcalendar"
	"workspace-assistant/pkg/gdocs"
	"workspace-assistant/pkg/gmail"
	"workspace-assistant/pkg/llmprovider"
	pkgLog "workspace-assistant/pkg/log"
)

// CalendarClient is the calendar collaborator contract.
type CalendarClient interface {
	CreateEvent(ctx context.Context, req gcalendar.CreateEventRequest) (*gcalendar.Event, error)
	ListEvents(ctx context.Context, req gcalendar.ListEventsRequest) ([]gcalendar.Event, error)
	GetEvent(ctx context.Context, calendarID, eventID string) (*gcalendar.Event, error)
	UpdateEvent(ctx context.Context, req gcalendar.UpdateEventRequest) (*gcalendar.Event, error)
	DeleteEvent(ctx context.Context, calendarID, eventID string) error
}

// MailClient is the mail collaborator contract.
type MailClient interface {
	SearchMessages(ctx context.Context, query string, maxResults int64) ([]gmail.MessageSummary, error)
	GetMessage(ctx context.Context, messageID string) (*gmail.Message, error)
	CreateDraft(ctx context.Context, req gmail.CreateDraftRequest) (*gmail.Draft, error)
	SendDraft(ctx context.Context, draftID string) error
	DeleteDraft(ctx context.Context, draftID string) error
}

// DocsClient is the documents collaborator contract.
type DocsClient interface {
	CreateDocument(ctx context.Context, title string) (*gdocs.Document, error)
	GetDocument(ctx context.Context, documentID string) (*gdocs.Document, error)
	GetDocumentText(ctx context.Context, documentID string) (string, error)
	SearchDocuments(ctx context.Context, query string, maxResults int64) ([]gdocs.Document, error)
	ReplaceText(ctx context.Context, req gdocs.ReplaceTextRequest) (int64, error)
}

// Chat identifies a reachable chat conversation.
type Chat struct {
	ID   string
	Name string
}

// ChatClient is the chat collaborator contract.
type ChatClient interface {
	SendMessage(ctx context.Context, chatID, text string) error
	SearchChats(ctx context.Context, query string) ([]Chat, error)
}

type implUseCase struct {
	l          pkgLog.Logger
	classifier intent.Classifier
	extractor  intent.Extractor
	llm        *llmprovider.Manager
	calendar   CalendarClient
	mail       MailClient
	docs       DocsClient
	chat       ChatClient
	drafts     *DraftStore
	dateMath   *datemath.Parser
	calendarID string
	timezone   string

	// historyLimit caps the turns forwarded to the LLM per request.
	// Zero means no cap.
	historyLimit int
}

// New creates a new assistant UseCase instance.
func New(
	l pkgLog.Logger,
	classifier intent.Classifier,
	extractor intent.Extractor,
	llm *llmprovider.Manager,
	calendar CalendarClient,
	mail MailClient,
	docs DocsClient,
	chat ChatClient,
	drafts *DraftStore,
	dateMath *datemath.Parser,
	calendarID string,
	timezone string,
	historyLimit int,
) *implUseCase {
	return &implUseCase{
		l:          l,
		classifier: classifier,
		extractor:  extractor,
		llm:        llm,
		calendar:   calendar,
		mail:       mail,
		docs:       docs,
		chat:       chat,
		drafts:     drafts,
		dateMath:   dateMath,
		calendarID: calendarID,
		timezone:   timezone,

		historyLimit: historyLimit,
	}
}

package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"workspace-assistant/internal/intent"
	"workspace-assistant/pkg/datemath"
	"workspace-assistant/pkg/gcalendar"
	"workspace-assistant/pkg/gdocs"
	"workspace-assistant/pkg/gmail"
	"workspace-assistant/pkg/llmprovider"
	"workspace-assistant/pkg/log"
)

// scriptedProvider returns queued responses in order, then errors.
type scriptedProvider struct {
	responses []string
	calls     int
}

func (p *scriptedProvider) GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error) {
	p.calls++
	if len(p.responses) == 0 {
		return nil, errors.New("no scripted responses left")
	}
	text := p.responses[0]
	p.responses = p.responses[1:]
	return &llmprovider.Response{
		Content: llmprovider.Message{Role: "assistant", Parts: []llmprovider.Part{{Text: text}}},
	}, nil
}

func (p *scriptedProvider) Name() string  { return "scripted" }
func (p *scriptedProvider) Model() string { return "scripted-model" }

func scriptedManager(responses ...string) *llmprovider.Manager {
	return llmprovider.NewManager(
		[]llmprovider.Provider{&scriptedProvider{responses: responses}},
		&llmprovider.Config{FallbackEnabled: false, RetryAttempts: 1, RetryDelay: time.Millisecond},
		log.NewNoop())
}

// fakeClassifier returns a fixed intent; failIfCalled guards bypass paths.
type fakeClassifier struct {
	intent       intent.Intent
	failIfCalled bool
	t            *testing.T
}

func (f *fakeClassifier) Classify(ctx context.Context, message string, history []string) (intent.ClassifierOutput, error) {
	if f.failIfCalled {
		f.t.Fatalf("classifier must not be called on this turn")
	}
	return intent.ClassifierOutput{Intent: f.intent, Confidence: 95}, nil
}

// fakeExtractor returns fixed details with the intent forced, like the real one.
type fakeExtractor struct {
	details intent.Details
}

func (f *fakeExtractor) Extract(ctx context.Context, in intent.Intent, message string, history []string) (intent.Details, error) {
	d := f.details
	d.Intent = in
	return d, nil
}

// fakeCalendar implements CalendarClient.
type fakeCalendar struct {
	events     []gcalendar.Event
	created    *gcalendar.Event
	updated    *gcalendar.Event
	deletedIDs []string
	listErr    error
	panicOnAny bool
}

func (f *fakeCalendar) CreateEvent(ctx context.Context, req gcalendar.CreateEventRequest) (*gcalendar.Event, error) {
	if f.panicOnAny {
		panic("calendar exploded")
	}
	f.created = &gcalendar.Event{ID: "event-new", Summary: req.Summary, StartTime: req.StartTime, EndTime: req.EndTime}
	return f.created, nil
}

func (f *fakeCalendar) ListEvents(ctx context.Context, req gcalendar.ListEventsRequest) ([]gcalendar.Event, error) {
	if f.panicOnAny {
		panic("calendar exploded")
	}
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.events, nil
}

func (f *fakeCalendar) GetEvent(ctx context.Context, calendarID, eventID string) (*gcalendar.Event, error) {
	if f.panicOnAny {
		panic("calendar exploded")
	}
	for i := range f.events {
		if f.events[i].ID == eventID {
			return &f.events[i], nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeCalendar) UpdateEvent(ctx context.Context, req gcalendar.UpdateEventRequest) (*gcalendar.Event, error) {
	f.updated = &gcalendar.Event{ID: req.EventID, Summary: req.Summary, StartTime: req.StartTime, EndTime: req.EndTime}
	if req.Summary == "" {
		for i := range f.events {
			if f.events[i].ID == req.EventID {
				f.updated.Summary = f.events[i].Summary
			}
		}
	}
	return f.updated, nil
}

func (f *fakeCalendar) DeleteEvent(ctx context.Context, calendarID, eventID string) error {
	f.deletedIDs = append(f.deletedIDs, eventID)
	return nil
}

// fakeMail implements MailClient.
type fakeMail struct {
	summaries []gmail.MessageSummary
	messages  map[string]*gmail.Message
	drafts    map[string]gmail.CreateDraftRequest
	sent      []string
	deleted   []string
	nextID    int
}

func newFakeMail() *fakeMail {
	return &fakeMail{
		messages: map[string]*gmail.Message{},
		drafts:   map[string]gmail.CreateDraftRequest{},
	}
}

func (f *fakeMail) SearchMessages(ctx context.Context, query string, maxResults int64) ([]gmail.MessageSummary, error) {
	return f.summaries, nil
}

func (f *fakeMail) GetMessage(ctx context.Context, messageID string) (*gmail.Message, error) {
	if m, ok := f.messages[messageID]; ok {
		return m, nil
	}
	return nil, errors.New("not found")
}

func (f *fakeMail) CreateDraft(ctx context.Context, req gmail.CreateDraftRequest) (*gmail.Draft, error) {
	f.nextID++
	id := "draft-" + string(rune('0'+f.nextID))
	f.drafts[id] = req
	return &gmail.Draft{ID: id, To: req.To, Subject: req.Subject, Body: req.Body}, nil
}

func (f *fakeMail) SendDraft(ctx context.Context, draftID string) error {
	if _, ok := f.drafts[draftID]; !ok {
		return errors.New("draft not found")
	}
	delete(f.drafts, draftID)
	f.sent = append(f.sent, draftID)
	return nil
}

func (f *fakeMail) DeleteDraft(ctx context.Context, draftID string) error {
	delete(f.drafts, draftID)
	f.deleted = append(f.deleted, draftID)
	return nil
}

// fakeDocs implements DocsClient.
type fakeDocs struct {
	documents []gdocs.Document
	texts     map[string]string
	created   *gdocs.Document
	replaced  []gdocs.ReplaceTextRequest
	changed   int64
}

func newFakeDocs() *fakeDocs {
	return &fakeDocs{texts: map[string]string{}}
}

func (f *fakeDocs) CreateDocument(ctx context.Context, title string) (*gdocs.Document, error) {
	f.created = &gdocs.Document{ID: "doc-new", Title: title, URL: "https://docs.google.com/document/d/doc-new/edit"}
	return f.created, nil
}

func (f *fakeDocs) GetDocument(ctx context.Context, documentID string) (*gdocs.Document, error) {
	for i := range f.documents {
		if f.documents[i].ID == documentID {
			return &f.documents[i], nil
		}
	}
	if f.created != nil && f.created.ID == documentID {
		return f.created, nil
	}
	return nil, errors.New("not found")
}

func (f *fakeDocs) GetDocumentText(ctx context.Context, documentID string) (string, error) {
	return f.texts[documentID], nil
}

func (f *fakeDocs) SearchDocuments(ctx context.Context, query string, maxResults int64) ([]gdocs.Document, error) {
	return f.documents, nil
}

func (f *fakeDocs) ReplaceText(ctx context.Context, req gdocs.ReplaceTextRequest) (int64, error) {
	f.replaced = append(f.replaced, req)
	return f.changed, nil
}

// fakeChat implements ChatClient.
type fakeChat struct {
	chats []Chat
	sent  map[string]string
}

func newFakeChat() *fakeChat {
	return &fakeChat{sent: map[string]string{}}
}

func (f *fakeChat) SendMessage(ctx context.Context, chatID, text string) error {
	f.sent[chatID] = text
	return nil
}

func (f *fakeChat) SearchChats(ctx context.Context, query string) ([]Chat, error) {
	return f.chats, nil
}

func datemathParser() (*datemath.Parser, error) {
	return datemath.NewParser("UTC")
}

// fixture wires a usecase out of fakes with sane defaults.
type fixture struct {
	uc       *implUseCase
	calendar *fakeCalendar
	mail     *fakeMail
	docs     *fakeDocs
	chat     *fakeChat
	drafts   *DraftStore
}

func newFixture(t *testing.T, classifier intent.Classifier, extractor intent.Extractor, llm *llmprovider.Manager) *fixture {
	t.Helper()

	dm, err := datemathParser()
	if err != nil {
		t.Fatalf("parser: %v", err)
	}

	f := &fixture{
		calendar: &fakeCalendar{},
		mail:     newFakeMail(),
		docs:     newFakeDocs(),
		chat:     newFakeChat(),
		drafts:   NewDraftStore(16, time.Minute),
	}
	f.uc = New(log.NewNoop(), classifier, extractor, llm,
		f.calendar, f.mail, f.docs, f.chat, f.drafts, dm, "primary", "UTC", 20)
	return f
}

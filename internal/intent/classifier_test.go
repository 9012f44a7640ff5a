package intent_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"workspace-assistant/internal/intent"
	"workspace-assistant/pkg/llmprovider"
	"workspace-assistant/pkg/log"
)

// scriptedProvider returns queued responses in order, then errors.
type scriptedProvider struct {
	responses []string
	err       error
	calls     int
}

func (p *scriptedProvider) GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
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

func newManager(p llmprovider.Provider) *llmprovider.Manager {
	return llmprovider.NewManager([]llmprovider.Provider{p},
		&llmprovider.Config{FallbackEnabled: false, RetryAttempts: 1, RetryDelay: time.Millisecond},
		log.NewNoop())
}

func TestClassify(t *testing.T) {
	t.Run("clean JSON", func(t *testing.T) {
		provider := &scriptedProvider{responses: []string{
			`{"intent": "create_event", "confidence": 95, "reasoning": "wants to schedule"}`,
		}}
		c := intent.NewClassifier(newManager(provider), log.NewNoop())

		out, err := c.Classify(context.Background(), "schedule lunch tomorrow", nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Intent != intent.IntentCreateEvent {
			t.Errorf("intent = %s, want create_event", out.Intent)
		}
		if out.Confidence != 95 {
			t.Errorf("confidence = %d, want 95", out.Confidence)
		}
	})

	t.Run("markdown fenced JSON", func(t *testing.T) {
		provider := &scriptedProvider{responses: []string{
			"```json\n{\"intent\": \"list_events\", \"confidence\": 90, \"reasoning\": \"\"}\n```",
		}}
		c := intent.NewClassifier(newManager(provider), log.NewNoop())

		out, err := c.Classify(context.Background(), "what's on my calendar", nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Intent != intent.IntentListEvents {
			t.Errorf("intent = %s, want list_events", out.Intent)
		}
	})

	t.Run("garbage JSON falls back to general_chat", func(t *testing.T) {
		provider := &scriptedProvider{responses: []string{"I think the user wants a calendar thing"}}
		c := intent.NewClassifier(newManager(provider), log.NewNoop())

		out, err := c.Classify(context.Background(), "hello", nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Intent != intent.IntentGeneralChat {
			t.Errorf("intent = %s, want general_chat", out.Intent)
		}
	})

	t.Run("out-of-enum intent falls back to general_chat", func(t *testing.T) {
		provider := &scriptedProvider{responses: []string{
			`{"intent": "launch_rocket", "confidence": 99, "reasoning": ""}`,
		}}
		c := intent.NewClassifier(newManager(provider), log.NewNoop())

		out, err := c.Classify(context.Background(), "launch the rocket", nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Intent != intent.IntentGeneralChat {
			t.Errorf("intent = %s, want general_chat", out.Intent)
		}
	})

	t.Run("provider outage uses keyword fallback", func(t *testing.T) {
		provider := &scriptedProvider{err: errors.New("connection refused")}
		c := intent.NewClassifier(newManager(provider), log.NewNoop())

		out, err := c.Classify(context.Background(), "please schedule a dentist appointment", nil)
		if err != nil {
			t.Fatalf("keyword fallback should not error: %v", err)
		}
		if out.Intent != intent.IntentCreateEvent {
			t.Errorf("intent = %s, want create_event", out.Intent)
		}
		if out.Confidence >= 50 {
			t.Errorf("keyword fallback confidence should be low, got %d", out.Confidence)
		}
	})

	t.Run("provider outage with no keyword match", func(t *testing.T) {
		provider := &scriptedProvider{err: errors.New("connection refused")}
		c := intent.NewClassifier(newManager(provider), log.NewNoop())

		out, err := c.Classify(context.Background(), "how are you", nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Intent != intent.IntentGeneralChat {
			t.Errorf("intent = %s, want general_chat", out.Intent)
		}
	})
}

func TestExtract(t *testing.T) {
	t.Run("extracts event slots", func(t *testing.T) {
		provider := &scriptedProvider{responses: []string{
			`{"intent": "create_event", "title": "Lunch with Sam", "startExpr": "tomorrow"}`,
		}}
		e := intent.NewExtractor(newManager(provider), log.NewNoop())

		details, err := e.Extract(context.Background(), intent.IntentCreateEvent, "lunch with Sam tomorrow", nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if details.Title != "Lunch with Sam" {
			t.Errorf("title = %q", details.Title)
		}
		if details.StartExpr != "tomorrow" {
			t.Errorf("startExpr = %q", details.StartExpr)
		}
	})

	t.Run("intent with no slots skips the LLM", func(t *testing.T) {
		provider := &scriptedProvider{err: errors.New("should not be called")}
		e := intent.NewExtractor(newManager(provider), log.NewNoop())

		details, err := e.Extract(context.Background(), intent.IntentSendEmailDraft, "send it", nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if details.Intent != intent.IntentSendEmailDraft {
			t.Errorf("intent = %s", details.Intent)
		}
		if provider.calls != 0 {
			t.Errorf("LLM called %d times for a slotless intent", provider.calls)
		}
	})

	t.Run("extractor cannot override the intent", func(t *testing.T) {
		provider := &scriptedProvider{responses: []string{
			`{"intent": "delete_event", "query": "standup"}`,
		}}
		e := intent.NewExtractor(newManager(provider), log.NewNoop())

		details, err := e.Extract(context.Background(), intent.IntentFindEvent, "find the standup", nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if details.Intent != intent.IntentFindEvent {
			t.Errorf("intent = %s, want find_event", details.Intent)
		}
	})

	t.Run("extraction failure yields bare details", func(t *testing.T) {
		provider := &scriptedProvider{responses: []string{"not json at all"}}
		e := intent.NewExtractor(newManager(provider), log.NewNoop())

		details, err := e.Extract(context.Background(), intent.IntentFindEmail, "emails from alice", nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if details.Intent != intent.IntentFindEmail {
			t.Errorf("intent = %s", details.Intent)
		}
		if details.Query != "" {
			t.Errorf("query should be empty on parse failure, got %q", details.Query)
		}
	})
}

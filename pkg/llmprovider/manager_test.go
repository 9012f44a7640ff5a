package llmprovider_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"workspace-assistant/pkg/llmprovider"
	"workspace-assistant/pkg/log"
)

type fakeProvider struct {
	name     string
	failures int // number of calls that fail before succeeding
	calls    int
	err      error
}

func (f *fakeProvider) GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error) {
	f.calls++
	if f.calls <= f.failures {
		if f.err != nil {
			return nil, f.err
		}
		return nil, errors.New("transient failure")
	}
	return &llmprovider.Response{
		Content:      llmprovider.Message{Role: "assistant", Parts: []llmprovider.Part{{Text: "ok from " + f.name}}},
		ProviderName: f.name,
	}, nil
}

func (f *fakeProvider) Name() string  { return f.name }
func (f *fakeProvider) Model() string { return "fake-model" }

func TestManager(t *testing.T) {
	cfg := &llmprovider.Config{
		FallbackEnabled: true,
		RetryAttempts:   1,
		RetryDelay:      time.Millisecond,
	}

	t.Run("first provider succeeds", func(t *testing.T) {
		primary := &fakeProvider{name: "primary"}
		secondary := &fakeProvider{name: "secondary"}
		m := llmprovider.NewManager([]llmprovider.Provider{primary, secondary}, cfg, log.NewNoop())

		resp, err := m.GenerateContent(context.Background(), &llmprovider.Request{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.Text() != "ok from primary" {
			t.Errorf("unexpected response: %q", resp.Text())
		}
		if secondary.calls != 0 {
			t.Errorf("secondary should not be called, got %d calls", secondary.calls)
		}
	})

	t.Run("falls back to next provider", func(t *testing.T) {
		primary := &fakeProvider{name: "primary", failures: 10}
		secondary := &fakeProvider{name: "secondary"}
		m := llmprovider.NewManager([]llmprovider.Provider{primary, secondary}, cfg, log.NewNoop())

		resp, err := m.GenerateContent(context.Background(), &llmprovider.Request{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.Text() != "ok from secondary" {
			t.Errorf("unexpected response: %q", resp.Text())
		}
	})

	t.Run("retries before falling back", func(t *testing.T) {
		primary := &fakeProvider{name: "primary", failures: 1}
		m := llmprovider.NewManager([]llmprovider.Provider{primary},
			&llmprovider.Config{FallbackEnabled: true, RetryAttempts: 3, RetryDelay: time.Millisecond},
			log.NewNoop())

		resp, err := m.GenerateContent(context.Background(), &llmprovider.Request{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if primary.calls != 2 {
			t.Errorf("expected 2 calls (1 failure + 1 success), got %d", primary.calls)
		}
		if resp.ProviderName != "primary" {
			t.Errorf("unexpected provider: %s", resp.ProviderName)
		}
	})

	t.Run("all providers fail", func(t *testing.T) {
		primary := &fakeProvider{name: "primary", failures: 10}
		secondary := &fakeProvider{name: "secondary", failures: 10}
		m := llmprovider.NewManager([]llmprovider.Provider{primary, secondary}, cfg, log.NewNoop())

		_, err := m.GenerateContent(context.Background(), &llmprovider.Request{})
		if !errors.Is(err, llmprovider.ErrAllProvidersFailed) {
			t.Fatalf("expected ErrAllProvidersFailed, got %v", err)
		}
	})

	t.Run("fallback disabled stops at first provider", func(t *testing.T) {
		primary := &fakeProvider{name: "primary", failures: 10}
		secondary := &fakeProvider{name: "secondary"}
		m := llmprovider.NewManager([]llmprovider.Provider{primary, secondary},
			&llmprovider.Config{FallbackEnabled: false, RetryAttempts: 1, RetryDelay: time.Millisecond},
			log.NewNoop())

		_, err := m.GenerateContent(context.Background(), &llmprovider.Request{})
		if err == nil {
			t.Fatal("expected error")
		}
		if secondary.calls != 0 {
			t.Errorf("secondary should not be called when fallback is disabled")
		}
	})

	t.Run("no providers", func(t *testing.T) {
		m := llmprovider.NewManager(nil, cfg, log.NewNoop())
		_, err := m.GenerateContent(context.Background(), &llmprovider.Request{})
		if !errors.Is(err, llmprovider.ErrNoProvidersConfigured) {
			t.Fatalf("expected ErrNoProvidersConfigured, got %v", err)
		}
	})
}

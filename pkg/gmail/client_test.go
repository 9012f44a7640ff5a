package gmail_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"workspace-assistant/pkg/gmail"
)

type rewriteTransport struct {
	Transport http.RoundTripper
	Host      string
}

func (t *rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.URL.Scheme = "http"
	req.URL.Host = t.Host
	return t.Transport.RoundTrip(req)
}

func newFakeClient(t *testing.T, handler http.HandlerFunc) (*gmail.Client, func()) {
	t.Helper()
	ts := httptest.NewServer(handler)

	tsClient := ts.Client()
	tsClient.Transport = &rewriteTransport{
		Transport: tsClient.Transport,
		Host:      strings.TrimPrefix(ts.URL, "http://"),
	}

	client, err := gmail.NewClientFromHTTP(context.Background(), tsClient)
	if err != nil {
		t.Fatalf("unexpected error creating client: %v", err)
	}
	return client, ts.Close
}

func TestGmailClient(t *testing.T) {
	t.Run("Search Messages E2E", func(t *testing.T) {
		client, closeFn := newFakeClient(t, func(w http.ResponseWriter, r *http.Request) {
			switch {
			case r.URL.Path == "/gmail/v1/users/me/messages" && r.Method == http.MethodGet:
				w.Write([]byte(`{"messages": [{"id": "msg-1", "threadId": "thread-1"}]}`))
			case r.URL.Path == "/gmail/v1/users/me/messages/msg-1" && r.Method == http.MethodGet:
				w.Write([]byte(`{
					"id": "msg-1",
					"threadId": "thread-1",
					"snippet": "Quarterly numbers attached",
					"payload": {
						"headers": [
							{"name": "From", "value": "alice@example.com"},
							{"name": "Subject", "value": "Q3 report"},
							{"name": "Date", "value": "Mon, 2 Mar 2026 09:00:00 -0500"}
						]
					}
				}`))
			default:
				w.WriteHeader(http.StatusNotFound)
			}
		})
		defer closeFn()

		summaries, err := client.SearchMessages(context.Background(), "from:alice", 10)
		if err != nil {
			t.Fatalf("failed to search messages: %v", err)
		}
		if len(summaries) != 1 {
			t.Fatalf("expected 1 summary, got %d", len(summaries))
		}
		if summaries[0].From != "alice@example.com" {
			t.Errorf("unexpected sender: %s", summaries[0].From)
		}
		if summaries[0].Subject != "Q3 report" {
			t.Errorf("unexpected subject: %s", summaries[0].Subject)
		}
	})

	t.Run("Get Message decodes unpadded body", func(t *testing.T) {
		// The API returns body data base64url-encoded without padding, so the
		// encoded length is deliberately not a multiple of 4 here.
		body := base64.RawURLEncoding.EncodeToString([]byte("Hello"))
		if strings.Contains(body, "=") || len(body)%4 == 0 {
			t.Fatalf("fixture must be unpadded with length %% 4 != 0, got %q", body)
		}
		client, closeFn := newFakeClient(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/gmail/v1/users/me/messages/msg-1" {
				w.Write([]byte(`{
					"id": "msg-1",
					"threadId": "thread-1",
					"snippet": "Hel...",
					"payload": {
						"mimeType": "text/plain",
						"body": {"data": "` + body + `"}
					}
				}`))
				return
			}
			w.WriteHeader(http.StatusNotFound)
		})
		defer closeFn()

		msg, err := client.GetMessage(context.Background(), "msg-1")
		if err != nil {
			t.Fatalf("failed to get message: %v", err)
		}
		if msg.Body != "Hello" {
			t.Errorf("body = %q, want the full decoded text, not the snippet", msg.Body)
		}
	})

	t.Run("Get Message decodes body", func(t *testing.T) {
		body := base64.URLEncoding.EncodeToString([]byte("Hello from the test"))
		client, closeFn := newFakeClient(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/gmail/v1/users/me/messages/msg-1" {
				w.Write([]byte(`{
					"id": "msg-1",
					"threadId": "thread-1",
					"payload": {
						"mimeType": "multipart/alternative",
						"headers": [{"name": "Subject", "value": "Hi"}],
						"parts": [
							{"mimeType": "text/plain", "body": {"data": "` + body + `"}}
						]
					}
				}`))
				return
			}
			w.WriteHeader(http.StatusNotFound)
		})
		defer closeFn()

		msg, err := client.GetMessage(context.Background(), "msg-1")
		if err != nil {
			t.Fatalf("failed to get message: %v", err)
		}
		if msg.Body != "Hello from the test" {
			t.Errorf("unexpected body: %q", msg.Body)
		}
	})

	t.Run("Create Draft E2E", func(t *testing.T) {
		client, closeFn := newFakeClient(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/gmail/v1/users/me/drafts" && r.Method == http.MethodPost {
				var payload struct {
					Message struct {
						Raw string `json:"raw"`
					} `json:"message"`
				}
				json.NewDecoder(r.Body).Decode(&payload)
				raw, _ := base64.URLEncoding.DecodeString(payload.Message.Raw)
				if !strings.Contains(string(raw), "To: bob@example.com") {
					t.Errorf("raw message missing recipient: %q", raw)
				}
				w.Write([]byte(`{"id": "draft-1"}`))
				return
			}
			w.WriteHeader(http.StatusNotFound)
		})
		defer closeFn()

		draft, err := client.CreateDraft(context.Background(), gmail.CreateDraftRequest{
			To:      "bob@example.com",
			Subject: "Lunch",
			Body:    "Noon?",
		})
		if err != nil {
			t.Fatalf("failed to create draft: %v", err)
		}
		if draft.ID != "draft-1" {
			t.Errorf("unexpected draft id: %s", draft.ID)
		}
	})

	t.Run("Send and Delete Draft E2E", func(t *testing.T) {
		client, closeFn := newFakeClient(t, func(w http.ResponseWriter, r *http.Request) {
			switch {
			case r.URL.Path == "/gmail/v1/users/me/drafts/send" && r.Method == http.MethodPost:
				w.Write([]byte(`{"id": "msg-sent"}`))
			case r.URL.Path == "/gmail/v1/users/me/drafts/draft-1" && r.Method == http.MethodDelete:
				w.WriteHeader(http.StatusNoContent)
			default:
				w.WriteHeader(http.StatusNotFound)
			}
		})
		defer closeFn()

		if err := client.SendDraft(context.Background(), "draft-1"); err != nil {
			t.Fatalf("failed to send draft: %v", err)
		}
		if err := client.DeleteDraft(context.Background(), "draft-1"); err != nil {
			t.Fatalf("failed to delete draft: %v", err)
		}
		if err := client.DeleteDraft(context.Background(), "missing"); err == nil {
			t.Fatalf("expected delete error for missing draft")
		}
	})
}

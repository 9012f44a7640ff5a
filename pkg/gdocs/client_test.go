package gdocs_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"workspace-assistant/pkg/gdocs"
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

func newFakeClient(t *testing.T, handler http.HandlerFunc) (*gdocs.Client, func()) {
	t.Helper()
	ts := httptest.NewServer(handler)

	tsClient := ts.Client()
	tsClient.Transport = &rewriteTransport{
		Transport: tsClient.Transport,
		Host:      strings.TrimPrefix(ts.URL, "http://"),
	}

	client, err := gdocs.NewClientFromHTTP(context.Background(), tsClient)
	if err != nil {
		t.Fatalf("unexpected error creating client: %v", err)
	}
	return client, ts.Close
}

func TestDocsClient(t *testing.T) {
	t.Run("Create Document E2E", func(t *testing.T) {
		client, closeFn := newFakeClient(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/v1/documents" && r.Method == http.MethodPost {
				w.Write([]byte(`{"documentId": "doc-1", "title": "Meeting Notes"}`))
				return
			}
			w.WriteHeader(http.StatusNotFound)
		})
		defer closeFn()

		doc, err := client.CreateDocument(context.Background(), "Meeting Notes")
		if err != nil {
			t.Fatalf("failed to create document: %v", err)
		}
		if doc.ID != "doc-1" {
			t.Errorf("unexpected id: %s", doc.ID)
		}
		if !strings.Contains(doc.URL, "doc-1") {
			t.Errorf("URL should embed the document id: %s", doc.URL)
		}
	})

	t.Run("Get Document Text flattens paragraphs", func(t *testing.T) {
		client, closeFn := newFakeClient(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/v1/documents/doc-1" {
				w.Write([]byte(`{
					"documentId": "doc-1",
					"title": "Meeting Notes",
					"body": {
						"content": [
							{"paragraph": {"elements": [{"textRun": {"content": "Agenda\n"}}]}},
							{"sectionBreak": {}},
							{"paragraph": {"elements": [
								{"textRun": {"content": "Item one. "}},
								{"textRun": {"content": "Item two.\n"}}
							]}}
						]
					}
				}`))
				return
			}
			w.WriteHeader(http.StatusNotFound)
		})
		defer closeFn()

		text, err := client.GetDocumentText(context.Background(), "doc-1")
		if err != nil {
			t.Fatalf("failed to get document text: %v", err)
		}
		want := "Agenda\nItem one. Item two.\n"
		if text != want {
			t.Errorf("text = %q, want %q", text, want)
		}
	})

	t.Run("Search Documents E2E", func(t *testing.T) {
		client, closeFn := newFakeClient(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/drive/v3/files" && r.Method == http.MethodGet {
				q := r.URL.Query().Get("q")
				if !strings.Contains(q, "name contains 'roadmap'") {
					t.Errorf("query missing name filter: %q", q)
				}
				w.Write([]byte(`{"files": [{"id": "doc-2", "name": "Roadmap 2026"}]}`))
				return
			}
			w.WriteHeader(http.StatusNotFound)
		})
		defer closeFn()

		documents, err := client.SearchDocuments(context.Background(), "roadmap", 5)
		if err != nil {
			t.Fatalf("failed to search documents: %v", err)
		}
		if len(documents) != 1 || documents[0].Title != "Roadmap 2026" {
			t.Fatalf("unexpected results: %+v", documents)
		}
	})

	t.Run("Replace Text E2E", func(t *testing.T) {
		client, closeFn := newFakeClient(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/v1/documents/doc-1:batchUpdate" && r.Method == http.MethodPost {
				w.Write([]byte(`{"replies": [{"replaceAllText": {"occurrencesChanged": 3}}]}`))
				return
			}
			w.WriteHeader(http.StatusNotFound)
		})
		defer closeFn()

		changed, err := client.ReplaceText(context.Background(), gdocs.ReplaceTextRequest{
			DocumentID:  "doc-1",
			Target:      "teh",
			Replacement: "the",
		})
		if err != nil {
			t.Fatalf("failed to replace text: %v", err)
		}
		if changed != 3 {
			t.Errorf("changed = %d, want 3", changed)
		}
	})

	t.Run("Replace Text Error E2E", func(t *testing.T) {
		client, closeFn := newFakeClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})
		defer closeFn()

		_, err := client.ReplaceText(context.Background(), gdocs.ReplaceTextRequest{
			DocumentID: "doc-1",
			Target:     "a",
		})
		if err == nil {
			t.Fatalf("expected replace error")
		}
	})
}

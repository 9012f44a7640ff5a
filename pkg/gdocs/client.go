package gdocs

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/api/docs/v1"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// Client wraps the Google Docs API service plus the Drive API for search.
type Client struct {
	docs  *docs.Service
	drive *drive.Service
}

// NewClientFromHTTP creates a Docs client from a pre-configured HTTP client.
func NewClientFromHTTP(ctx context.Context, httpClient *http.Client) (*Client, error) {
	docsSvc, err := docs.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create docs service: %w", err)
	}
	driveSvc, err := drive.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}
	return &Client{docs: docsSvc, drive: driveSvc}, nil
}

// CreateDocument creates an empty Google Doc with the given title.
func (c *Client) CreateDocument(ctx context.Context, title string) (*Document, error) {
	doc, err := c.docs.Documents.Create(&docs.Document{Title: title}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create document: %w", err)
	}
	return &Document{
		ID:    doc.DocumentId,
		Title: doc.Title,
		URL:   documentURL(doc.DocumentId),
	}, nil
}

// GetDocument fetches document metadata by ID.
func (c *Client) GetDocument(ctx context.Context, documentID string) (*Document, error) {
	doc, err := c.docs.Documents.Get(documentID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get document %s: %w", documentID, err)
	}
	return &Document{
		ID:    doc.DocumentId,
		Title: doc.Title,
		URL:   documentURL(doc.DocumentId),
	}, nil
}

// GetDocumentText fetches a document and flattens its body to plain text.
func (c *Client) GetDocumentText(ctx context.Context, documentID string) (string, error) {
	doc, err := c.docs.Documents.Get(documentID).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to get document %s: %w", documentID, err)
	}
	if doc.Body == nil {
		return "", nil
	}

	var sb strings.Builder
	for _, elem := range doc.Body.Content {
		if elem.Paragraph == nil {
			continue
		}
		for _, pe := range elem.Paragraph.Elements {
			if pe.TextRun != nil {
				sb.WriteString(pe.TextRun.Content)
			}
		}
	}
	return sb.String(), nil
}

// SearchDocuments finds Google Docs whose name matches the query, newest first.
func (c *Client) SearchDocuments(ctx context.Context, query string, maxResults int64) ([]Document, error) {
	q := fmt.Sprintf("mimeType='application/vnd.google-apps.document' and name contains '%s' and trashed=false",
		escapeDriveQuery(query))

	call := c.drive.Files.List().
		Q(q).
		OrderBy("modifiedTime desc").
		Fields("files(id, name)").
		Context(ctx)
	if maxResults > 0 {
		call = call.PageSize(maxResults)
	}

	resp, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to search documents: %w", err)
	}

	documents := make([]Document, 0, len(resp.Files))
	for _, f := range resp.Files {
		documents = append(documents, Document{
			ID:    f.Id,
			Title: f.Name,
			URL:   documentURL(f.Id),
		})
	}
	return documents, nil
}

// ReplaceText performs a find-and-replace across the document body.
// Returns the number of occurrences changed.
func (c *Client) ReplaceText(ctx context.Context, req ReplaceTextRequest) (int64, error) {
	batch := &docs.BatchUpdateDocumentRequest{
		Requests: []*docs.Request{
			{
				ReplaceAllText: &docs.ReplaceAllTextRequest{
					ContainsText: &docs.SubstringMatchCriteria{
						Text:      req.Target,
						MatchCase: req.MatchCase,
					},
					ReplaceText: req.Replacement,
				},
			},
		},
	}

	resp, err := c.docs.Documents.BatchUpdate(req.DocumentID, batch).Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("failed to replace text in document %s: %w", req.DocumentID, err)
	}

	var changed int64
	for _, reply := range resp.Replies {
		if reply.ReplaceAllText != nil {
			changed += reply.ReplaceAllText.OccurrencesChanged
		}
	}
	return changed, nil
}

func documentURL(id string) string {
	return "https://docs.google.com/document/d/" + id + "/edit"
}

// escapeDriveQuery escapes single quotes inside a Drive query literal.
func escapeDriveQuery(s string) string {
	return strings.ReplaceAll(s, "'", `\'`)
}

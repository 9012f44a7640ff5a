package gmail

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

const currentUser = "me"

// Client wraps the Gmail API service.
type Client struct {
	service *gmail.Service
}

// NewClientFromHTTP creates a Gmail client from a pre-configured HTTP client.
func NewClientFromHTTP(ctx context.Context, httpClient *http.Client) (*Client, error) {
	svc, err := gmail.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create gmail service: %w", err)
	}
	return &Client{service: svc}, nil
}

// SearchMessages runs a Gmail search query and returns per-message summaries.
// The query uses standard Gmail search syntax (from:, subject:, after: ...).
func (c *Client) SearchMessages(ctx context.Context, query string, maxResults int64) ([]MessageSummary, error) {
	call := c.service.Users.Messages.List(currentUser).Q(query).Context(ctx)
	if maxResults > 0 {
		call = call.MaxResults(maxResults)
	}

	resp, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to search messages: %w", err)
	}

	summaries := make([]MessageSummary, 0, len(resp.Messages))
	for _, ref := range resp.Messages {
		msg, err := c.service.Users.Messages.Get(currentUser, ref.Id).
			Format("metadata").
			MetadataHeaders("From", "Subject", "Date").
			Context(ctx).Do()
		if err != nil {
			return nil, fmt.Errorf("failed to fetch message %s: %w", ref.Id, err)
		}

		summary := MessageSummary{
			ID:       msg.Id,
			ThreadID: msg.ThreadId,
			Snippet:  msg.Snippet,
		}
		if msg.Payload != nil {
			summary.From = headerValue(msg.Payload.Headers, "From")
			summary.Subject = headerValue(msg.Payload.Headers, "Subject")
			summary.Date = headerValue(msg.Payload.Headers, "Date")
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// GetMessage fetches a single message with its decoded plain-text body.
func (c *Client) GetMessage(ctx context.Context, messageID string) (*Message, error) {
	msg, err := c.service.Users.Messages.Get(currentUser, messageID).Format("full").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get message %s: %w", messageID, err)
	}

	out := &Message{
		ID:       msg.Id,
		ThreadID: msg.ThreadId,
	}
	if msg.Payload != nil {
		out.From = headerValue(msg.Payload.Headers, "From")
		out.To = headerValue(msg.Payload.Headers, "To")
		out.Subject = headerValue(msg.Payload.Headers, "Subject")
		out.Date = headerValue(msg.Payload.Headers, "Date")
		out.Body = extractBody(msg.Payload)
	}
	if out.Body == "" {
		out.Body = msg.Snippet
	}
	return out, nil
}

// CreateDraft stores an unsent draft in the user's mailbox.
func (c *Client) CreateDraft(ctx context.Context, req CreateDraftRequest) (*Draft, error) {
	draft := &gmail.Draft{
		Message: &gmail.Message{
			Raw:      encodeRFC822(req.To, req.Subject, req.Body),
			ThreadId: req.ThreadID,
		},
	}

	created, err := c.service.Users.Drafts.Create(currentUser, draft).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create draft: %w", err)
	}

	return &Draft{
		ID:      created.Id,
		To:      req.To,
		Subject: req.Subject,
		Body:    req.Body,
	}, nil
}

// SendDraft sends a stored draft. The draft ID is invalid afterwards.
func (c *Client) SendDraft(ctx context.Context, draftID string) error {
	_, err := c.service.Users.Drafts.Send(currentUser, &gmail.Draft{Id: draftID}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to send draft %s: %w", draftID, err)
	}
	return nil
}

// DeleteDraft discards a stored draft without sending it.
func (c *Client) DeleteDraft(ctx context.Context, draftID string) error {
	if err := c.service.Users.Drafts.Delete(currentUser, draftID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to delete draft %s: %w", draftID, err)
	}
	return nil
}

func headerValue(headers []*gmail.MessagePartHeader, name string) string {
	for _, h := range headers {
		if strings.EqualFold(h.Name, name) {
			return h.Value
		}
	}
	return ""
}

// extractBody walks the MIME tree looking for the first text/plain part.
func extractBody(part *gmail.MessagePart) string {
	if part.MimeType == "text/plain" && part.Body != nil && part.Body.Data != "" {
		if decoded := decodeBodyData(part.Body.Data); decoded != "" {
			return decoded
		}
	}
	for _, child := range part.Parts {
		if body := extractBody(child); body != "" {
			return body
		}
	}
	// Fall back to whatever body the top level carries
	if part.Body != nil && part.Body.Data != "" {
		if decoded := decodeBodyData(part.Body.Data); decoded != "" {
			return decoded
		}
	}
	return ""
}

// decodeBodyData decodes the base64url body data the API returns. The API
// omits padding, so decode unpadded after stripping any padding present.
func decodeBodyData(data string) string {
	decoded, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(data, "="))
	if err != nil {
		return ""
	}
	return string(decoded)
}

// encodeRFC822 builds a minimal RFC 822 message and base64url-encodes it the
// way the Gmail API expects raw messages.
func encodeRFC822(to, subject, body string) string {
	var sb strings.Builder
	sb.WriteString("To: " + to + "\r\n")
	sb.WriteString("Subject: " + subject + "\r\n")
	sb.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	sb.WriteString("\r\n")
	sb.WriteString(body)
	return base64.URLEncoding.EncodeToString([]byte(sb.String()))
}

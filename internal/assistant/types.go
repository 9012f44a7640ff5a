package assistant

import "workspace-assistant/internal/model"

// PendingAction marks a suspended workflow the engine expects to resume on the
// very next turn. At most one is pending per session.
type PendingAction string

const (
	PendingNone          PendingAction = ""
	PendingDocumentTitle PendingAction = "awaiting_document_title"
	PendingEventUpdate   PendingAction = "awaiting_event_update"
)

// SessionState is the cross-turn memory of one conversation. It is carried by
// the caller on every request; the engine stores nothing server side.
type SessionState struct {
	PendingAction    PendingAction `json:"pending_action,omitempty"`
	LastEventID      string        `json:"last_event_id,omitempty"`
	LastEmailID      string        `json:"last_email_id,omitempty"`
	LastThreadID     string        `json:"last_thread_id,omitempty"`
	LastDraftID      string        `json:"last_draft_id,omitempty"`
	LastDraftSubject string        `json:"last_draft_subject,omitempty"`
	LastDraftBody    string        `json:"last_draft_body,omitempty"`
	LastRecipient    string        `json:"last_recipient,omitempty"`
	LastChatID       string        `json:"last_chat_id,omitempty"`
	LastDocumentID   string        `json:"last_document_id,omitempty"`
	LastSuggestionID string        `json:"last_suggestion_id,omitempty"`
}

// ClearDrafts wipes every draft-related field. Sent and Cancelled both end
// the draft lifecycle, so they share this.
func (s *SessionState) ClearDrafts() {
	s.LastDraftID = ""
	s.LastDraftSubject = ""
	s.LastDraftBody = ""
}

// UIContext tells the engine what the user currently has on screen.
type UIContext struct {
	Page            string `json:"page,omitempty"`
	FocusedEntityID string `json:"focused_entity_id,omitempty"`
	OpenDocumentID  string `json:"open_document_id,omitempty"`
}

// ProcessInput is one conversational turn.
type ProcessInput struct {
	Message string
	History []model.Turn
	Session SessionState
	UI      UIContext
}

// ResponseKind discriminates the response union.
type ResponseKind string

const (
	KindText           ResponseKind = "text"
	KindDraftReview    ResponseKind = "draft_review"
	KindNavigation     ResponseKind = "navigation"
	KindDocumentClosed ResponseKind = "document_closed"
	KindError          ResponseKind = "error"
)

// DraftDetails is the reviewable content of a pending draft.
type DraftDetails struct {
	DraftID    string `json:"draft_id"`
	To         string `json:"to,omitempty"`
	ChatTarget string `json:"chat_target,omitempty"`
	Subject    string `json:"subject,omitempty"`
	Body       string `json:"body"`
}

// ProcessOutput is the engine's answer for one turn. Draft is set only for
// draft_review, Target only for navigation.
type ProcessOutput struct {
	Kind    ResponseKind
	Text    string
	Draft   *DraftDetails
	Target  string
	Session SessionState
}

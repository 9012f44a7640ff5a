package intent

// Intent is the user's recognized intention for a single turn.
type Intent string

const (
	IntentGeneralChat Intent = "general_chat"

	IntentFindEvent   Intent = "find_event"
	IntentListEvents  Intent = "list_events"
	IntentCreateEvent Intent = "create_event"
	IntentUpdateEvent Intent = "update_event"
	IntentDeleteEvent Intent = "delete_event"

	IntentFindEmail        Intent = "find_email"
	IntentReadEmail        Intent = "read_email"
	IntentSummarizeEmail   Intent = "summarize_email"
	IntentComposeEmail     Intent = "compose_email"
	IntentReplyEmail       Intent = "reply_email"
	IntentSendEmailDraft   Intent = "send_email_draft"
	IntentRefineEmailDraft Intent = "refine_email_draft"
	IntentCancelEmailDraft Intent = "cancel_email_draft"

	IntentFindChat        Intent = "find_chat"
	IntentSendChatMessage Intent = "send_chat_message"
	IntentSendChatDraft   Intent = "send_chat_draft"
	IntentRefineChatDraft Intent = "refine_chat_draft"
	IntentCancelChatDraft Intent = "cancel_chat_draft"

	IntentCreateDocument    Intent = "create_document"
	IntentOpenDocument      Intent = "open_document"
	IntentCloseDocument     Intent = "close_document"
	IntentSummarizeDocument Intent = "summarize_document"
	IntentEditDocument      Intent = "edit_document"

	IntentApplySuggestion  Intent = "apply_suggestion"
	IntentRejectSuggestion Intent = "reject_suggestion"
)

// AllIntents lists every intent the classifier may emit, in prompt order.
var AllIntents = []Intent{
	IntentGeneralChat,
	IntentFindEvent, IntentListEvents, IntentCreateEvent, IntentUpdateEvent, IntentDeleteEvent,
	IntentFindEmail, IntentReadEmail, IntentSummarizeEmail, IntentComposeEmail, IntentReplyEmail,
	IntentSendEmailDraft, IntentRefineEmailDraft, IntentCancelEmailDraft,
	IntentFindChat, IntentSendChatMessage, IntentSendChatDraft, IntentRefineChatDraft, IntentCancelChatDraft,
	IntentCreateDocument, IntentOpenDocument, IntentCloseDocument, IntentSummarizeDocument, IntentEditDocument,
	IntentApplySuggestion, IntentRejectSuggestion,
}

// Valid reports whether the intent is one the engine knows how to dispatch.
func (i Intent) Valid() bool {
	for _, known := range AllIntents {
		if i == known {
			return true
		}
	}
	return false
}

// ClassifierOutput is the structured response of the first NLU stage.
type ClassifierOutput struct {
	Intent     Intent `json:"intent"`
	Confidence int    `json:"confidence"` // 0-100
	Reasoning  string `json:"reasoning"`
}

// Details carries the slots extracted in the second NLU stage. Only the
// fields relevant to the intent are populated; everything else stays empty.
type Details struct {
	Intent          Intent `json:"intent"`
	Title           string `json:"title,omitempty"`
	StartExpr       string `json:"startExpr,omitempty"`
	EndExpr         string `json:"endExpr,omitempty"`
	Query           string `json:"query,omitempty"`
	Recipient       string `json:"recipient,omitempty"`
	Subject         string `json:"subject,omitempty"`
	Body            string `json:"body,omitempty"`
	Instruction     string `json:"instruction,omitempty"`
	TargetText      string `json:"targetText,omitempty"`
	ReplacementText string `json:"replacementText,omitempty"`
	DraftID         string `json:"draftID,omitempty"`
	SuggestionID    string `json:"suggestionID,omitempty"`
	ChatTarget      string `json:"chatTarget,omitempty"`
	DocumentTitle   string `json:"documentTitle,omitempty"`
}

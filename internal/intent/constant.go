package intent

// Log prefixes
const (
	LogPrefixClassify = "internal.intent.Classify"
	LogPrefixExtract  = "internal.intent.Extract"
)

// Classifier prompt
const (
	PromptClassifySystem = `You are an intent classifier for a workspace assistant that manages calendar, mail, chat, and documents.

Current message: "%s"

Possible intents:
1. general_chat: greetings, questions about capabilities, anything not covered below
2. find_event: look up a specific calendar event by name or description
3. list_events: list calendar events in a time window ("what's on my calendar today")
4. create_event: schedule a new calendar event
5. update_event: move, rename, or otherwise change an existing event
6. delete_event: cancel or remove an event
7. find_email: search the mailbox ("emails from Alice about the report")
8. read_email: open and show a specific email
9. summarize_email: summarize a specific email or thread
10. compose_email: write a new email (produces a draft for review)
11. reply_email: reply to an email (produces a draft for review)
12. send_email_draft: approve and send the pending email draft
13. refine_email_draft: revise the pending email draft ("make it shorter")
14. cancel_email_draft: discard the pending email draft
15. find_chat: find a chat or conversation partner
16. send_chat_message: send a chat message (produces a draft for review)
17. send_chat_draft: approve and send the pending chat draft
18. refine_chat_draft: revise the pending chat draft
19. cancel_chat_draft: discard the pending chat draft
20. create_document: create a new document
21. open_document: open an existing document
22. close_document: close the current document
23. summarize_document: summarize the open document
24. edit_document: change text in the open document (produces a suggestion)
25. apply_suggestion: accept the pending edit suggestion
26. reject_suggestion: discard the pending edit suggestion

Approval words like "yes", "send it", "looks good" refer to whatever draft or suggestion is pending in the conversation history.

Return JSON with format:
{
  "intent": "<one of the intent names above>",
  "confidence": 0-100,
  "reasoning": "Brief explanation"
}`

	PromptHistoryPrefix = "Recent conversation:\n"
)

// Extractor prompt
const (
	PromptExtractSystem = `You are a detail extractor for a workspace assistant. The user's intent is already known: %s

Current message: "%s"

Extract the following fields from the message. Omit any field not present.
%s

Dates must be expressed as relative expressions the system can resolve, such as "today", "tomorrow", "in 3 days", "next friday", "one_month_ago", "end_of_the_year", or an explicit "2006-01-02" date.

Return JSON only, with format:
{
  "intent": "%s"%s
}`
)

// slotHints maps each intent to the extraction guidance and the JSON field
// skeleton appended to the extractor prompt.
var slotHints = map[Intent]struct {
	Guidance string
	Fields   string
}{
	IntentFindEvent: {
		Guidance: `- query: words identifying the event
- startExpr, endExpr: the time window to search, if mentioned`,
		Fields: `,
  "query": "...", "startExpr": "...", "endExpr": "..."`,
	},
	IntentListEvents: {
		Guidance: `- startExpr: start of the window (default "today")
- endExpr: end of the window (default same as startExpr)`,
		Fields: `,
  "startExpr": "...", "endExpr": "..."`,
	},
	IntentCreateEvent: {
		Guidance: `- title: the event name
- startExpr: when the event starts
- endExpr: when it ends, if mentioned`,
		Fields: `,
  "title": "...", "startExpr": "...", "endExpr": "..."`,
	},
	IntentUpdateEvent: {
		Guidance: `- query: words identifying the event to change
- instruction: what should change about it
- title: the new name, if the change is a rename
- startExpr, endExpr: the new time, if the change is a move`,
		Fields: `,
  "query": "...", "instruction": "...", "title": "...", "startExpr": "...", "endExpr": "..."`,
	},
	IntentDeleteEvent: {
		Guidance: `- query: words identifying the event to remove`,
		Fields: `,
  "query": "..."`,
	},
	IntentFindEmail: {
		Guidance: `- query: search terms (sender, subject words, topic)
- startExpr, endExpr: the time window, if mentioned`,
		Fields: `,
  "query": "...", "startExpr": "...", "endExpr": "..."`,
	},
	IntentReadEmail: {
		Guidance: `- query: words identifying which email to open`,
		Fields: `,
  "query": "..."`,
	},
	IntentSummarizeEmail: {
		Guidance: `- query: words identifying which email to summarize, if any`,
		Fields: `,
  "query": "..."`,
	},
	IntentComposeEmail: {
		Guidance: `- recipient: who the email is for
- subject: the subject line, if stated
- body: what the email should say`,
		Fields: `,
  "recipient": "...", "subject": "...", "body": "..."`,
	},
	IntentReplyEmail: {
		Guidance: `- body: what the reply should say
- query: words identifying which email to reply to, if not the last one discussed`,
		Fields: `,
  "body": "...", "query": "..."`,
	},
	IntentRefineEmailDraft: {
		Guidance: `- instruction: how the draft should change`,
		Fields: `,
  "instruction": "..."`,
	},
	IntentFindChat: {
		Guidance: `- chatTarget: the person or chat name to find`,
		Fields: `,
  "chatTarget": "..."`,
	},
	IntentSendChatMessage: {
		Guidance: `- chatTarget: who the message is for
- body: what the message should say`,
		Fields: `,
  "chatTarget": "...", "body": "..."`,
	},
	IntentRefineChatDraft: {
		Guidance: `- instruction: how the draft should change`,
		Fields: `,
  "instruction": "..."`,
	},
	IntentCreateDocument: {
		Guidance: `- documentTitle: the title for the new document, if stated`,
		Fields: `,
  "documentTitle": "..."`,
	},
	IntentOpenDocument: {
		Guidance: `- query: words identifying which document to open`,
		Fields: `,
  "query": "..."`,
	},
	IntentEditDocument: {
		Guidance: `- instruction: the edit the user wants
- targetText: the exact text to change, if quoted
- replacementText: the exact replacement, if quoted`,
		Fields: `,
  "instruction": "...", "targetText": "...", "replacementText": "..."`,
	},
}

// Classifier configuration
const (
	ClassifyTemperature = 0.1
	ExtractTemperature  = 0.0

	FallbackIntent     = IntentGeneralChat
	FallbackConfidence = 50
)

// Error messages
const (
	ErrMsgLLMCallFailed   = "LLM call failed"
	ErrMsgJSONParseFailed = "Failed to parse JSON, falling back to general_chat"
	ErrMsgEmptyResponse   = "Empty LLM response, falling back to general_chat"
	ErrMsgUnknownIntent   = "Unknown intent from LLM, falling back to general_chat"
)

// Fallback reasons
const (
	ReasonParsingError    = "Fallback due to parsing error"
	ReasonEmptyResponse   = "Fallback due to empty response"
	ReasonUnknownIntent   = "Fallback due to out-of-enum intent"
	ReasonKeywordFallback = "Keyword match while LLM unavailable"
)

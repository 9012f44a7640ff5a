package usecase

// Log prefixes
const (
	LogPrefixProcess = "assistant.usecase.Process"
	LogPrefixResolve = "assistant.usecase.resolveCandidate"
)

// Generation prompts
const (
	PromptPersona = `You are a helpful workspace assistant. You can manage the user's calendar, mail, chats, and documents. Answer briefly and plainly.

%s

User: %s
Assistant:`

	PromptSummarizeEmail = `Summarize the following email in two or three sentences. Keep names, dates, and action items.

From: %s
Subject: %s

%s`

	PromptSummarizeDocument = `Summarize the following document in a short paragraph. Keep the main points and any decisions or action items.

Title: %s

%s`

	PromptComposeEmailBody = `Write the body of a short, polite email. Do not include a subject line or signature placeholders.

Recipient: %s
Subject: %s
The email should say: %s`

	PromptReplyEmailBody = `Write the body of a short, polite reply to the email below. Do not include a subject line.

Original message from %s:
%s

The reply should say: %s`

	PromptRefineBody = `Revise the draft below according to the instruction. Return only the revised text, nothing else.

Instruction: %s

Draft:
%s`

	PromptResolveCandidate = `The user said: "%s"

Which one of these items do they mean? Use the timestamps to settle relative cues like "the latest one" or "the oldest one".

%s

Return JSON only: {"id": "<the matching id>"} or {"id": ""} if you cannot tell.`

	PromptProposeEdit = `The user wants to change a document. Propose a single find-and-replace edit.

Instruction: %s

Document text:
%s

Return JSON only: {"target": "<exact text to replace>", "replacement": "<new text>"}.
The target must appear verbatim in the document text.`
)

// Generation temperatures
const (
	GenerateTemperature = 0.7
	ResolveTemperature  = 0.0
	EditTemperature     = 0.2
)

// User-facing messages
const (
	MsgNoEventsToday     = "No events on your calendar for today."
	MsgNoEventsInRange   = "No events on your calendar for that period."
	MsgNoEmailsFound     = "I couldn't find any emails matching that."
	MsgNoDocumentsFound  = "I couldn't find a document matching that."
	MsgNoChatsFound      = "I couldn't find that chat."
	MsgNoEmailDraft      = "There's no email draft to work with. Ask me to compose one first."
	MsgNoChatDraft       = "There's no chat draft to work with. Ask me to write a message first."
	MsgNoSuggestion      = "There's no pending edit suggestion. Ask me to edit the document first."
	MsgNoOpenDocument    = "No document is open. Ask me to open or create one first."
	MsgAskDocumentTitle  = "What should the document be called?"
	MsgAskEventChange    = "What should change about it? For example a new time or a new name."
	MsgAskRecipient      = "Who should the email go to?"
	MsgAskChatTarget     = "Who should I send that to?"
	MsgAskEventTitle     = "What should the event be called, and when is it?"
	MsgBeMoreSpecific    = "I found several matches. Which one did you mean?"
	MsgGenericError      = "Sorry, something went wrong handling that. Please try again."
	MsgTargetNotInDoc    = "I couldn't find that text in the document anymore, so nothing was changed."
	MsgDraftDiscarded    = "Okay, I've discarded the draft."
	MsgCalendarOffline   = "Calendar isn't connected on this deployment, so I can't help with events."
	MsgMailOffline       = "Email isn't connected on this deployment, so I can't help with mail."
	MsgChatOffline       = "Chat isn't connected on this deployment, so I can't send messages."
	MsgDocsOffline       = "Documents aren't connected on this deployment, so I can't help with docs."
	MsgSuggestionDropped = "Okay, I've discarded the suggested edit."
	MsgDocumentClosed    = "Closed the document."
)

// Limits
const (
	maxSearchResults = 10 // also the candidate resolver's cap
	maxBodyPreview   = 800
	defaultEventHrs  = 1
)

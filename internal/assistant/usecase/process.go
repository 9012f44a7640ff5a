package usecase

import (
	"context"
	"fmt"
	"strings"

	"workspace-assistant/internal/assistant"
	"workspace-assistant/internal/intent"
	"workspace-assistant/internal/model"
)

var _ assistant.UseCase = (*implUseCase)(nil)

// Process runs one conversational turn.
func (uc *implUseCase) Process(ctx context.Context, sc model.Scope, input assistant.ProcessInput) (out assistant.ProcessOutput, err error) {
	// One recovery point for the whole turn. A panicking handler must not
	// take the conversation down; the caller gets the input session back
	// untouched so no half-applied state leaks.
	defer func() {
		if r := recover(); r != nil {
			uc.l.Errorf(ctx, "%s: recovered from panic: %v", LogPrefixProcess, r)
			out = errorOutput(input.Session, MsgGenericError)
			err = nil
		}
	}()

	if strings.TrimSpace(input.Message) == "" {
		return errorOutput(input.Session, "I didn't catch that. Could you say it again?"), nil
	}

	session := input.Session

	// The UI is authoritative about which document is on screen.
	if input.UI.OpenDocumentID != "" {
		session.LastDocumentID = input.UI.OpenDocumentID
	}

	turns := input.History
	if uc.historyLimit > 0 && len(turns) > uc.historyLimit {
		turns = turns[len(turns)-uc.historyLimit:]
	}
	history := renderHistory(turns)

	// A pending action consumes the turn before any classification.
	if session.PendingAction != assistant.PendingNone {
		return uc.resumePending(ctx, sc, session, input.Message, history)
	}

	cls, err := uc.classifier.Classify(ctx, input.Message, history)
	if err != nil {
		uc.l.Errorf(ctx, "%s: classify failed: %v", LogPrefixProcess, err)
		return errorOutput(input.Session, MsgGenericError), nil
	}

	details, err := uc.extractor.Extract(ctx, cls.Intent, input.Message, history)
	if err != nil {
		uc.l.Errorf(ctx, "%s: extract failed: %v", LogPrefixProcess, err)
		return errorOutput(input.Session, MsgGenericError), nil
	}

	uc.l.Infof(ctx, "%s: user=%s intent=%s", LogPrefixProcess, sc.UserID, details.Intent)

	return uc.dispatch(ctx, sc, session, input.Message, history, details)
}

// dispatch routes the extracted details to the intent's handler. The switch is
// exhaustive over the intent enum; anything unrecognized falls through to
// free-text chat.
func (uc *implUseCase) dispatch(ctx context.Context, sc model.Scope, session assistant.SessionState, message string, history []string, d intent.Details) (assistant.ProcessOutput, error) {
	if msg, missing := uc.missingCollaborator(d.Intent); missing {
		uc.l.Warnf(ctx, "%s: intent %s needs a collaborator that is not configured", LogPrefixProcess, d.Intent)
		return errorOutput(session, msg), nil
	}

	switch d.Intent {
	case intent.IntentFindEvent:
		return uc.handleFindEvent(ctx, session, message, d)
	case intent.IntentListEvents:
		return uc.handleListEvents(ctx, session, d)
	case intent.IntentCreateEvent:
		return uc.handleCreateEvent(ctx, session, d)
	case intent.IntentUpdateEvent:
		return uc.handleUpdateEvent(ctx, session, message, d)
	case intent.IntentDeleteEvent:
		return uc.handleDeleteEvent(ctx, session, message, d)

	case intent.IntentFindEmail:
		return uc.handleFindEmail(ctx, session, message, d)
	case intent.IntentReadEmail:
		return uc.handleReadEmail(ctx, session, message, d)
	case intent.IntentSummarizeEmail:
		return uc.handleSummarizeEmail(ctx, session, message, d)
	case intent.IntentComposeEmail:
		return uc.handleComposeEmail(ctx, session, d)
	case intent.IntentReplyEmail:
		return uc.handleReplyEmail(ctx, session, message, d)
	case intent.IntentSendEmailDraft:
		return uc.handleSendEmailDraft(ctx, session, d)
	case intent.IntentRefineEmailDraft:
		return uc.handleRefineEmailDraft(ctx, session, d)
	case intent.IntentCancelEmailDraft:
		return uc.handleCancelEmailDraft(ctx, session)

	case intent.IntentFindChat:
		return uc.handleFindChat(ctx, session, d)
	case intent.IntentSendChatMessage:
		return uc.handleSendChatMessage(ctx, session, d)
	case intent.IntentSendChatDraft:
		return uc.handleSendChatDraft(ctx, session, d)
	case intent.IntentRefineChatDraft:
		return uc.handleRefineChatDraft(ctx, session, d)
	case intent.IntentCancelChatDraft:
		return uc.handleCancelChatDraft(ctx, session)

	case intent.IntentCreateDocument:
		return uc.handleCreateDocument(ctx, session, d)
	case intent.IntentOpenDocument:
		return uc.handleOpenDocument(ctx, session, message, d)
	case intent.IntentCloseDocument:
		return uc.handleCloseDocument(ctx, session)
	case intent.IntentSummarizeDocument:
		return uc.handleSummarizeDocument(ctx, session)
	case intent.IntentEditDocument:
		return uc.handleEditDocument(ctx, session, d)

	case intent.IntentApplySuggestion:
		return uc.handleApplySuggestion(ctx, session, d)
	case intent.IntentRejectSuggestion:
		return uc.handleRejectSuggestion(ctx, session)

	case intent.IntentGeneralChat:
		return uc.handleGeneralChat(ctx, session, message, history)
	default:
		uc.l.Warnf(ctx, "%s: no handler for intent %q, treating as chat", LogPrefixProcess, d.Intent)
		return uc.handleGeneralChat(ctx, session, message, history)
	}
}

// missingCollaborator reports whether the intent needs a collaborator that was
// not wired at startup. Deployments may run without Google or Telegram access;
// the user then gets told the capability is off instead of a generic failure.
// Intents that only touch the draft store (cancel/refine chat drafts,
// reject_suggestion, close_document) need no collaborator and pass through.
func (uc *implUseCase) missingCollaborator(in intent.Intent) (string, bool) {
	switch in {
	case intent.IntentFindEvent, intent.IntentListEvents, intent.IntentCreateEvent,
		intent.IntentUpdateEvent, intent.IntentDeleteEvent:
		if uc.calendar == nil {
			return MsgCalendarOffline, true
		}
	case intent.IntentFindEmail, intent.IntentReadEmail, intent.IntentSummarizeEmail,
		intent.IntentComposeEmail, intent.IntentReplyEmail, intent.IntentSendEmailDraft,
		intent.IntentRefineEmailDraft, intent.IntentCancelEmailDraft:
		if uc.mail == nil {
			return MsgMailOffline, true
		}
	case intent.IntentFindChat, intent.IntentSendChatMessage, intent.IntentSendChatDraft:
		if uc.chat == nil {
			return MsgChatOffline, true
		}
	case intent.IntentCreateDocument, intent.IntentOpenDocument, intent.IntentSummarizeDocument,
		intent.IntentEditDocument, intent.IntentApplySuggestion:
		if uc.docs == nil {
			return MsgDocsOffline, true
		}
	}
	return "", false
}

// handleGeneralChat answers anything that maps to no workflow.
func (uc *implUseCase) handleGeneralChat(ctx context.Context, session assistant.SessionState, message string, history []string) (assistant.ProcessOutput, error) {
	historyBlock := ""
	if len(history) > 0 {
		historyBlock = "Recent conversation:\n" + strings.Join(history, "\n")
	}
	prompt := fmt.Sprintf(PromptPersona, historyBlock, message)

	text, err := uc.generateText(ctx, prompt, GenerateTemperature)
	if err != nil {
		uc.l.Warnf(ctx, "%s: chat generation failed: %v", LogPrefixProcess, err)
		return textOutput(session, "I'm having trouble thinking right now. Please try again in a moment."), nil
	}
	return textOutput(session, text), nil
}

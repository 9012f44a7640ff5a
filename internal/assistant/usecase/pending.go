package usecase

import (
	"context"
	"strings"

	"workspace-assistant/internal/assistant"
	"workspace-assistant/internal/intent"
	"workspace-assistant/internal/model"
)

// resumePending consumes a turn while a pending action is set. The raw text is
// the answer to the engine's own clarifying question, so classification is
// skipped entirely. The pending flag is always cleared here, whatever happens.
func (uc *implUseCase) resumePending(ctx context.Context, sc model.Scope, session assistant.SessionState, message string, history []string) (assistant.ProcessOutput, error) {
	pending := session.PendingAction
	session.PendingAction = assistant.PendingNone

	uc.l.Infof(ctx, "%s: user=%s resuming pending action %q", LogPrefixProcess, sc.UserID, pending)

	switch pending {
	case assistant.PendingDocumentTitle:
		title := strings.TrimSpace(message)
		if title == "" {
			return textOutput(session, MsgAskDocumentTitle), nil
		}
		return uc.createDocumentWithTitle(ctx, session, title)

	case assistant.PendingEventUpdate:
		// The message describes the change. Run it through the extractor with
		// the intent already fixed so the usual slot parsing applies.
		d, err := uc.extractor.Extract(ctx, intent.IntentUpdateEvent, message, history)
		if err != nil {
			uc.l.Errorf(ctx, "%s: extract during pending resume failed: %v", LogPrefixProcess, err)
			return errorOutput(session, MsgGenericError), nil
		}
		if d.Instruction == "" {
			d.Instruction = message
		}
		return uc.applyEventUpdate(ctx, session, session.LastEventID, d)

	default:
		uc.l.Warnf(ctx, "%s: unknown pending action %q dropped", LogPrefixProcess, pending)
		return errorOutput(session, MsgGenericError), nil
	}
}

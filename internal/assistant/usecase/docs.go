package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"workspace-assistant/internal/assistant"
	"workspace-assistant/internal/intent"
	"workspace-assistant/pkg/gdocs"
)

// handleCreateDocument creates a new document, suspending the turn when the
// title is missing.
func (uc *implUseCase) handleCreateDocument(ctx context.Context, session assistant.SessionState, d intent.Details) (assistant.ProcessOutput, error) {
	title := strings.TrimSpace(firstNonEmpty(d.DocumentTitle, d.Title))
	if title == "" {
		session.PendingAction = assistant.PendingDocumentTitle
		return textOutput(session, MsgAskDocumentTitle), nil
	}
	return uc.createDocumentWithTitle(ctx, session, title)
}

// createDocumentWithTitle is shared between the direct path and the
// awaiting_document_title resume path.
func (uc *implUseCase) createDocumentWithTitle(ctx context.Context, session assistant.SessionState, title string) (assistant.ProcessOutput, error) {
	doc, err := uc.docs.CreateDocument(ctx, title)
	if err != nil {
		uc.l.Errorf(ctx, "%s: document create failed: %v", LogPrefixProcess, err)
		return errorOutput(session, "I couldn't create the document."), nil
	}

	session.LastDocumentID = doc.ID
	return navigationOutput(session, fmt.Sprintf("Created %q.", doc.Title), doc.URL), nil
}

// handleOpenDocument finds a document and navigates to it.
func (uc *implUseCase) handleOpenDocument(ctx context.Context, session assistant.SessionState, message string, d intent.Details) (assistant.ProcessOutput, error) {
	query := firstNonEmpty(d.Query, d.DocumentTitle)
	if query == "" {
		return textOutput(session, "Which document should I open?"), nil
	}

	documents, err := uc.docs.SearchDocuments(ctx, query, maxSearchResults)
	if err != nil {
		uc.l.Errorf(ctx, "%s: document search failed: %v", LogPrefixProcess, err)
		return errorOutput(session, "I couldn't search your documents just now."), nil
	}
	if len(documents) == 0 {
		return textOutput(session, MsgNoDocumentsFound), nil
	}

	candidates := make([]Candidate, 0, len(documents))
	for _, doc := range documents {
		candidates = append(candidates, Candidate{ID: doc.ID, Label: doc.Title})
	}

	id, ok := uc.resolveCandidate(ctx, message, candidates)
	if !ok {
		return textOutput(session, MsgBeMoreSpecific+"\n"+candidateListing(candidates)), nil
	}

	for _, doc := range documents {
		if doc.ID == id {
			session.LastDocumentID = doc.ID
			return navigationOutput(session, fmt.Sprintf("Opening %q.", doc.Title), doc.URL), nil
		}
	}
	return textOutput(session, MsgNoDocumentsFound), nil
}

// handleCloseDocument drops the open-document context.
func (uc *implUseCase) handleCloseDocument(ctx context.Context, session assistant.SessionState) (assistant.ProcessOutput, error) {
	if session.LastDocumentID == "" {
		return textOutput(session, MsgNoOpenDocument), nil
	}

	session.LastDocumentID = ""
	session.LastSuggestionID = ""
	return assistant.ProcessOutput{
		Kind:    assistant.KindDocumentClosed,
		Text:    MsgDocumentClosed,
		Session: session,
	}, nil
}

// handleSummarizeDocument condenses the open document.
func (uc *implUseCase) handleSummarizeDocument(ctx context.Context, session assistant.SessionState) (assistant.ProcessOutput, error) {
	if session.LastDocumentID == "" {
		return errorOutput(session, MsgNoOpenDocument), nil
	}

	doc, err := uc.docs.GetDocument(ctx, session.LastDocumentID)
	if err != nil {
		uc.l.Errorf(ctx, "%s: document get failed: %v", LogPrefixProcess, err)
		return errorOutput(session, "I couldn't open that document."), nil
	}

	text, err := uc.docs.GetDocumentText(ctx, session.LastDocumentID)
	if err != nil {
		uc.l.Errorf(ctx, "%s: document read failed: %v", LogPrefixProcess, err)
		return errorOutput(session, "I couldn't read that document."), nil
	}
	if strings.TrimSpace(text) == "" {
		return textOutput(session, fmt.Sprintf("%q is empty.", doc.Title)), nil
	}

	summary, err := uc.generateText(ctx, fmt.Sprintf(PromptSummarizeDocument, doc.Title, text), GenerateTemperature)
	if err != nil {
		uc.l.Warnf(ctx, "%s: summary generation failed: %v", LogPrefixProcess, err)
		return errorOutput(session, "I couldn't summarize the document right now."), nil
	}
	return textOutput(session, summary), nil
}

// handleEditDocument proposes a find-and-replace edit as a suggestion for
// review. Nothing touches the document until the user applies it.
func (uc *implUseCase) handleEditDocument(ctx context.Context, session assistant.SessionState, d intent.Details) (assistant.ProcessOutput, error) {
	if session.LastDocumentID == "" {
		return errorOutput(session, MsgNoOpenDocument), nil
	}

	target := d.TargetText
	replacement := d.ReplacementText

	// Without exact quoted text the LLM reads the document and proposes
	// the concrete replacement.
	if target == "" || replacement == "" {
		if d.Instruction == "" {
			return textOutput(session, "What should I change in the document?"), nil
		}

		text, err := uc.docs.GetDocumentText(ctx, session.LastDocumentID)
		if err != nil {
			uc.l.Errorf(ctx, "%s: document read failed: %v", LogPrefixProcess, err)
			return errorOutput(session, "I couldn't read that document."), nil
		}

		raw, err := uc.generateText(ctx, fmt.Sprintf(PromptProposeEdit, d.Instruction, text), EditTemperature)
		if err != nil {
			uc.l.Warnf(ctx, "%s: edit proposal failed: %v", LogPrefixProcess, err)
			return errorOutput(session, "I couldn't work out that edit right now."), nil
		}

		var proposal struct {
			Target      string `json:"target"`
			Replacement string `json:"replacement"`
		}
		if err := json.Unmarshal([]byte(sanitizeJSONResponse(raw)), &proposal); err != nil || proposal.Target == "" {
			uc.l.Warnf(ctx, "%s: unusable edit proposal: %v", LogPrefixProcess, err)
			return errorOutput(session, "I couldn't work out that edit right now."), nil
		}
		if !strings.Contains(text, proposal.Target) {
			return errorOutput(session, MsgTargetNotInDoc), nil
		}
		target = proposal.Target
		replacement = proposal.Replacement
	}

	suggestion := uc.drafts.Put(StoredDraft{
		Kind:        DraftKindSuggestion,
		DocumentID:  session.LastDocumentID,
		Target:      target,
		Replacement: replacement,
		Instruction: d.Instruction,
	})

	session.LastSuggestionID = suggestion.ID

	return draftOutput(session,
		fmt.Sprintf("I suggest replacing %q with %q. Say \"apply it\" to make the change.", target, replacement),
		assistant.DraftDetails{
			DraftID: suggestion.ID,
			Body:    fmt.Sprintf("- %s\n+ %s", target, replacement),
		}), nil
}

// handleApplySuggestion commits the pending edit to the document.
func (uc *implUseCase) handleApplySuggestion(ctx context.Context, session assistant.SessionState, d intent.Details) (assistant.ProcessOutput, error) {
	suggestionID := firstNonEmpty(d.SuggestionID, session.LastSuggestionID)
	if suggestionID == "" {
		return textOutput(session, MsgNoSuggestion), nil
	}

	suggestion, ok := uc.drafts.Get(suggestionID)
	if !ok || suggestion.Kind != DraftKindSuggestion {
		return errorOutput(session, MsgNoSuggestion), nil
	}

	changed, err := uc.docs.ReplaceText(ctx, gdocs.ReplaceTextRequest{
		DocumentID:  suggestion.DocumentID,
		Target:      suggestion.Target,
		Replacement: suggestion.Replacement,
		MatchCase:   true,
	})
	if err != nil {
		uc.l.Errorf(ctx, "%s: replace failed: %v", LogPrefixProcess, err)
		return errorOutput(session, "I couldn't apply the edit."), nil
	}

	uc.drafts.Delete(suggestionID)
	session.LastSuggestionID = ""

	if changed == 0 {
		return errorOutput(session, MsgTargetNotInDoc), nil
	}
	return textOutput(session, fmt.Sprintf("Done, changed %d occurrence(s).", changed)), nil
}

// handleRejectSuggestion discards the pending edit.
func (uc *implUseCase) handleRejectSuggestion(ctx context.Context, session assistant.SessionState) (assistant.ProcessOutput, error) {
	if session.LastSuggestionID == "" {
		return textOutput(session, MsgNoSuggestion), nil
	}

	uc.drafts.Delete(session.LastSuggestionID)
	session.LastSuggestionID = ""
	return textOutput(session, MsgSuggestionDropped), nil
}

package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"workspace-assistant/internal/assistant"
	"workspace-assistant/internal/intent"
	"workspace-assistant/pkg/gmail"
)

// handleFindEmail searches the mailbox and reports matches.
func (uc *implUseCase) handleFindEmail(ctx context.Context, session assistant.SessionState, message string, d intent.Details) (assistant.ProcessOutput, error) {
	query := uc.buildMailQuery(d)
	if query == "" {
		return textOutput(session, "What should I search your mail for?"), nil
	}

	summaries, err := uc.mail.SearchMessages(ctx, query, maxSearchResults)
	if err != nil {
		uc.l.Errorf(ctx, "%s: mail search failed: %v", LogPrefixProcess, err)
		return errorOutput(session, "I couldn't reach your mailbox just now."), nil
	}
	if len(summaries) == 0 {
		return textOutput(session, MsgNoEmailsFound), nil
	}

	if len(summaries) == 1 {
		session.LastEmailID = summaries[0].ID
		session.LastThreadID = summaries[0].ThreadID
		session.LastRecipient = summaries[0].From
		text := fmt.Sprintf("Found one email: %s from %s. %s",
			summaries[0].Subject, summaries[0].From, truncate(summaries[0].Snippet, 200))
		return textOutput(session, text), nil
	}

	// Several hits: try to settle it from the user's own words before asking.
	candidates := mailCandidates(summaries)
	if id, ok := uc.resolveCandidate(ctx, message, candidates); ok {
		for _, s := range summaries {
			if s.ID == id {
				session.LastEmailID = s.ID
				session.LastThreadID = s.ThreadID
				session.LastRecipient = s.From
				text := fmt.Sprintf("This one looks right: %s from %s. %s",
					s.Subject, s.From, truncate(s.Snippet, 200))
				return textOutput(session, text), nil
			}
		}
	}

	text := MsgBeMoreSpecific + "\n" + candidateListing(candidates)
	return textOutput(session, text), nil
}

// handleReadEmail opens a specific email.
func (uc *implUseCase) handleReadEmail(ctx context.Context, session assistant.SessionState, message string, d intent.Details) (assistant.ProcessOutput, error) {
	msg, out, done := uc.findOneMessage(ctx, session, message, d)
	if done {
		return out, nil
	}

	session.LastEmailID = msg.ID
	session.LastThreadID = msg.ThreadID
	session.LastRecipient = msg.From

	text := fmt.Sprintf("From: %s\nSubject: %s\n\n%s", msg.From, msg.Subject, truncate(msg.Body, maxBodyPreview))
	return textOutput(session, text), nil
}

// handleSummarizeEmail condenses a specific email.
func (uc *implUseCase) handleSummarizeEmail(ctx context.Context, session assistant.SessionState, message string, d intent.Details) (assistant.ProcessOutput, error) {
	msg, out, done := uc.findOneMessage(ctx, session, message, d)
	if done {
		return out, nil
	}

	session.LastEmailID = msg.ID
	session.LastThreadID = msg.ThreadID
	session.LastRecipient = msg.From

	prompt := fmt.Sprintf(PromptSummarizeEmail, msg.From, msg.Subject, msg.Body)
	summary, err := uc.generateText(ctx, prompt, GenerateTemperature)
	if err != nil {
		uc.l.Warnf(ctx, "%s: summary generation failed: %v", LogPrefixProcess, err)
		return errorOutput(session, "I couldn't summarize that email right now."), nil
	}
	return textOutput(session, summary), nil
}

// handleComposeEmail drafts a new email for review. Nothing is sent here.
func (uc *implUseCase) handleComposeEmail(ctx context.Context, session assistant.SessionState, d intent.Details) (assistant.ProcessOutput, error) {
	recipient := firstNonEmpty(d.Recipient, session.LastRecipient)
	if recipient == "" {
		return textOutput(session, MsgAskRecipient), nil
	}

	subject := firstNonEmpty(d.Subject, "(no subject)")

	body := d.Body
	if body == "" {
		return textOutput(session, "What should the email say?"), nil
	}

	// Polish the user's phrasing into a sendable body.
	polished, err := uc.generateText(ctx, fmt.Sprintf(PromptComposeEmailBody, recipient, subject, body), GenerateTemperature)
	if err != nil {
		uc.l.Warnf(ctx, "%s: body generation failed, using raw text: %v", LogPrefixProcess, err)
		polished = body
	}

	draft, err := uc.mail.CreateDraft(ctx, gmail.CreateDraftRequest{
		To:      recipient,
		Subject: subject,
		Body:    polished,
	})
	if err != nil {
		uc.l.Errorf(ctx, "%s: draft create failed: %v", LogPrefixProcess, err)
		return errorOutput(session, "I couldn't create the draft."), nil
	}

	session.LastDraftID = draft.ID
	session.LastDraftSubject = subject
	session.LastDraftBody = polished
	session.LastRecipient = recipient

	return draftOutput(session,
		"Here's the draft. Say \"send it\" to send, or tell me what to change.",
		assistant.DraftDetails{
			DraftID: draft.ID,
			To:      recipient,
			Subject: subject,
			Body:    polished,
		}), nil
}

// handleReplyEmail drafts a reply within the original thread.
func (uc *implUseCase) handleReplyEmail(ctx context.Context, session assistant.SessionState, message string, d intent.Details) (assistant.ProcessOutput, error) {
	original, out, done := uc.findOneMessage(ctx, session, message, d)
	if done {
		return out, nil
	}

	if d.Body == "" {
		return textOutput(session, "What should the reply say?"), nil
	}

	body, err := uc.generateText(ctx,
		fmt.Sprintf(PromptReplyEmailBody, original.From, truncate(original.Body, maxBodyPreview), d.Body),
		GenerateTemperature)
	if err != nil {
		uc.l.Warnf(ctx, "%s: reply generation failed, using raw text: %v", LogPrefixProcess, err)
		body = d.Body
	}

	subject := original.Subject
	if !strings.HasPrefix(strings.ToLower(subject), "re:") {
		subject = "Re: " + subject
	}

	draft, err := uc.mail.CreateDraft(ctx, gmail.CreateDraftRequest{
		To:       original.From,
		Subject:  subject,
		Body:     body,
		ThreadID: original.ThreadID,
	})
	if err != nil {
		uc.l.Errorf(ctx, "%s: reply draft create failed: %v", LogPrefixProcess, err)
		return errorOutput(session, "I couldn't create the reply draft."), nil
	}

	session.LastEmailID = original.ID
	session.LastThreadID = original.ThreadID
	session.LastRecipient = original.From
	session.LastDraftID = draft.ID
	session.LastDraftSubject = subject
	session.LastDraftBody = body

	return draftOutput(session,
		"Here's the reply draft. Say \"send it\" to send, or tell me what to change.",
		assistant.DraftDetails{
			DraftID: draft.ID,
			To:      original.From,
			Subject: subject,
			Body:    body,
		}), nil
}

// handleSendEmailDraft sends the pending draft. No draft id anywhere is an
// error response, never a silent no-op.
func (uc *implUseCase) handleSendEmailDraft(ctx context.Context, session assistant.SessionState, d intent.Details) (assistant.ProcessOutput, error) {
	draftID := firstNonEmpty(d.DraftID, session.LastDraftID)
	if draftID == "" {
		return errorOutput(session, MsgNoEmailDraft), nil
	}

	if err := uc.mail.SendDraft(ctx, draftID); err != nil {
		uc.l.Errorf(ctx, "%s: draft send failed: %v", LogPrefixProcess, err)
		return errorOutput(session, "I couldn't send the draft."), nil
	}

	recipient := session.LastRecipient
	session.ClearDrafts()

	text := "Sent."
	if recipient != "" {
		text = fmt.Sprintf("Sent to %s.", recipient)
	}
	return textOutput(session, text), nil
}

// handleRefineEmailDraft regenerates the draft body per the instruction. The
// old draft is deleted and a fresh one created; the old id stops resolving.
func (uc *implUseCase) handleRefineEmailDraft(ctx context.Context, session assistant.SessionState, d intent.Details) (assistant.ProcessOutput, error) {
	draftID := firstNonEmpty(d.DraftID, session.LastDraftID)
	if draftID == "" {
		return errorOutput(session, MsgNoEmailDraft), nil
	}
	if d.Instruction == "" {
		return textOutput(session, "How should I change the draft?"), nil
	}

	revised, err := uc.generateText(ctx, fmt.Sprintf(PromptRefineBody, d.Instruction, session.LastDraftBody), GenerateTemperature)
	if err != nil {
		uc.l.Warnf(ctx, "%s: refine generation failed: %v", LogPrefixProcess, err)
		return errorOutput(session, "I couldn't revise the draft right now."), nil
	}

	if err := uc.mail.DeleteDraft(ctx, draftID); err != nil {
		uc.l.Warnf(ctx, "%s: stale draft delete failed: %v", LogPrefixProcess, err)
	}

	replacement, err := uc.mail.CreateDraft(ctx, gmail.CreateDraftRequest{
		To:       session.LastRecipient,
		Subject:  session.LastDraftSubject,
		Body:     revised,
		ThreadID: session.LastThreadID,
	})
	if err != nil {
		uc.l.Errorf(ctx, "%s: replacement draft create failed: %v", LogPrefixProcess, err)
		return errorOutput(session, "I couldn't update the draft."), nil
	}

	session.LastDraftID = replacement.ID
	session.LastDraftBody = revised

	return draftOutput(session,
		"Here's the revised draft. Say \"send it\" to send, or tell me what to change.",
		assistant.DraftDetails{
			DraftID: replacement.ID,
			To:      session.LastRecipient,
			Subject: session.LastDraftSubject,
			Body:    revised,
		}), nil
}

// handleCancelEmailDraft discards the pending draft.
func (uc *implUseCase) handleCancelEmailDraft(ctx context.Context, session assistant.SessionState) (assistant.ProcessOutput, error) {
	if session.LastDraftID == "" {
		return errorOutput(session, MsgNoEmailDraft), nil
	}

	if err := uc.mail.DeleteDraft(ctx, session.LastDraftID); err != nil {
		uc.l.Errorf(ctx, "%s: draft delete failed: %v", LogPrefixProcess, err)
		return errorOutput(session, "I couldn't discard the draft."), nil
	}

	session.ClearDrafts()
	return textOutput(session, MsgDraftDiscarded), nil
}

// findOneMessage locates one specific message: the remembered one when the
// request has no query, otherwise search + disambiguate.
func (uc *implUseCase) findOneMessage(ctx context.Context, session assistant.SessionState, message string, d intent.Details) (*gmail.Message, assistant.ProcessOutput, bool) {
	if d.Query == "" && session.LastEmailID != "" {
		msg, err := uc.mail.GetMessage(ctx, session.LastEmailID)
		if err == nil {
			return msg, assistant.ProcessOutput{}, false
		}
		uc.l.Warnf(ctx, "%s: remembered email %s gone: %v", LogPrefixProcess, session.LastEmailID, err)
	}

	query := uc.buildMailQuery(d)
	if query == "" {
		return nil, textOutput(session, "Which email do you mean?"), true
	}

	summaries, err := uc.mail.SearchMessages(ctx, query, maxSearchResults)
	if err != nil {
		uc.l.Errorf(ctx, "%s: mail search failed: %v", LogPrefixProcess, err)
		return nil, errorOutput(session, "I couldn't reach your mailbox just now."), true
	}
	if len(summaries) == 0 {
		return nil, textOutput(session, MsgNoEmailsFound), true
	}

	candidates := mailCandidates(summaries)
	id, ok := uc.resolveCandidate(ctx, message, candidates)
	if !ok {
		text := MsgBeMoreSpecific + "\n" + candidateListing(candidates)
		return nil, textOutput(session, text), true
	}

	msg, err := uc.mail.GetMessage(ctx, id)
	if err != nil {
		uc.l.Errorf(ctx, "%s: mail get failed: %v", LogPrefixProcess, err)
		return nil, errorOutput(session, "I couldn't open that email."), true
	}
	return msg, assistant.ProcessOutput{}, false
}

// buildMailQuery turns extracted slots into Gmail search syntax.
func (uc *implUseCase) buildMailQuery(d intent.Details) string {
	parts := []string{}
	if d.Query != "" {
		parts = append(parts, d.Query)
	}
	if d.StartExpr != "" {
		if t, err := uc.dateMath.Parse(d.StartExpr, time.Now()); err == nil {
			parts = append(parts, "after:"+t.Format("2006/01/02"))
		}
	}
	if d.EndExpr != "" {
		if t, err := uc.dateMath.Parse(d.EndExpr, time.Now()); err == nil {
			parts = append(parts, "before:"+t.AddDate(0, 0, 1).Format("2006/01/02"))
		}
	}
	return strings.Join(parts, " ")
}

func mailCandidates(summaries []gmail.MessageSummary) []Candidate {
	candidates := make([]Candidate, 0, len(summaries))
	for _, s := range summaries {
		label := s.Subject
		if s.From != "" {
			label = fmt.Sprintf("%s from %s", s.Subject, s.From)
		}
		candidates = append(candidates, Candidate{ID: s.ID, Label: label, When: s.Date})
	}
	return candidates
}

package usecase

import (
	"context"
	"fmt"

	"workspace-assistant/internal/assistant"
	"workspace-assistant/internal/intent"
)

// handleFindChat looks up a chat conversation by name.
func (uc *implUseCase) handleFindChat(ctx context.Context, session assistant.SessionState, d intent.Details) (assistant.ProcessOutput, error) {
	if d.ChatTarget == "" {
		return textOutput(session, MsgAskChatTarget), nil
	}

	chats, err := uc.chat.SearchChats(ctx, d.ChatTarget)
	if err != nil {
		uc.l.Errorf(ctx, "%s: chat search failed: %v", LogPrefixProcess, err)
		return errorOutput(session, "I couldn't look up your chats just now."), nil
	}
	if len(chats) == 0 {
		return textOutput(session, MsgNoChatsFound), nil
	}

	if len(chats) == 1 {
		session.LastChatID = chats[0].ID
		return textOutput(session, fmt.Sprintf("Found the chat with %s.", chats[0].Name)), nil
	}

	candidates := make([]Candidate, 0, len(chats))
	for _, c := range chats {
		candidates = append(candidates, Candidate{ID: c.ID, Label: c.Name})
	}
	return textOutput(session, MsgBeMoreSpecific+"\n"+candidateListing(candidates)), nil
}

// handleSendChatMessage drafts an outgoing chat message for review. The chat
// transport has no draft primitive, so the draft lives in the engine's store.
func (uc *implUseCase) handleSendChatMessage(ctx context.Context, session assistant.SessionState, d intent.Details) (assistant.ProcessOutput, error) {
	if d.Body == "" {
		return textOutput(session, "What should the message say?"), nil
	}

	chatID := session.LastChatID
	chatName := d.ChatTarget
	if d.ChatTarget != "" {
		chats, err := uc.chat.SearchChats(ctx, d.ChatTarget)
		if err != nil {
			uc.l.Errorf(ctx, "%s: chat search failed: %v", LogPrefixProcess, err)
			return errorOutput(session, "I couldn't look up your chats just now."), nil
		}
		if len(chats) == 0 {
			return textOutput(session, MsgNoChatsFound), nil
		}
		if len(chats) > 1 {
			candidates := make([]Candidate, 0, len(chats))
			for _, c := range chats {
				candidates = append(candidates, Candidate{ID: c.ID, Label: c.Name})
			}
			return textOutput(session, MsgBeMoreSpecific+"\n"+candidateListing(candidates)), nil
		}
		chatID = chats[0].ID
		chatName = chats[0].Name
	}
	if chatID == "" {
		return textOutput(session, MsgAskChatTarget), nil
	}

	draft := uc.drafts.Put(StoredDraft{
		Kind:     DraftKindChat,
		ChatID:   chatID,
		ChatName: chatName,
		Body:     d.Body,
	})

	session.LastChatID = chatID
	session.LastDraftID = draft.ID
	session.LastDraftBody = d.Body

	return draftOutput(session,
		fmt.Sprintf("Here's the message for %s. Say \"send it\" to send, or tell me what to change.", chatName),
		assistant.DraftDetails{
			DraftID:    draft.ID,
			ChatTarget: chatName,
			Body:       d.Body,
		}), nil
}

// handleSendChatDraft delivers the pending chat draft.
func (uc *implUseCase) handleSendChatDraft(ctx context.Context, session assistant.SessionState, d intent.Details) (assistant.ProcessOutput, error) {
	draftID := firstNonEmpty(d.DraftID, session.LastDraftID)
	if draftID == "" {
		return errorOutput(session, MsgNoChatDraft), nil
	}

	draft, ok := uc.drafts.Get(draftID)
	if !ok || draft.Kind != DraftKindChat {
		return errorOutput(session, MsgNoChatDraft), nil
	}

	if err := uc.chat.SendMessage(ctx, draft.ChatID, draft.Body); err != nil {
		uc.l.Errorf(ctx, "%s: chat send failed: %v", LogPrefixProcess, err)
		return errorOutput(session, "I couldn't send the message."), nil
	}

	uc.drafts.Delete(draftID)
	session.ClearDrafts()
	return textOutput(session, fmt.Sprintf("Sent to %s.", draft.ChatName)), nil
}

// handleRefineChatDraft rewrites the pending chat draft per the instruction.
// The old draft is dropped and a new id minted; the old id stops resolving.
func (uc *implUseCase) handleRefineChatDraft(ctx context.Context, session assistant.SessionState, d intent.Details) (assistant.ProcessOutput, error) {
	draftID := firstNonEmpty(d.DraftID, session.LastDraftID)
	if draftID == "" {
		return errorOutput(session, MsgNoChatDraft), nil
	}
	draft, ok := uc.drafts.Get(draftID)
	if !ok || draft.Kind != DraftKindChat {
		return errorOutput(session, MsgNoChatDraft), nil
	}
	if d.Instruction == "" {
		return textOutput(session, "How should I change the message?"), nil
	}

	revised, err := uc.generateText(ctx, fmt.Sprintf(PromptRefineBody, d.Instruction, draft.Body), GenerateTemperature)
	if err != nil {
		uc.l.Warnf(ctx, "%s: refine generation failed: %v", LogPrefixProcess, err)
		return errorOutput(session, "I couldn't revise the message right now."), nil
	}

	uc.drafts.Delete(draftID)
	replacement := uc.drafts.Put(StoredDraft{
		Kind:     DraftKindChat,
		ChatID:   draft.ChatID,
		ChatName: draft.ChatName,
		Body:     revised,
	})

	session.LastDraftID = replacement.ID
	session.LastDraftBody = revised

	return draftOutput(session,
		fmt.Sprintf("Here's the revised message for %s.", draft.ChatName),
		assistant.DraftDetails{
			DraftID:    replacement.ID,
			ChatTarget: draft.ChatName,
			Body:       revised,
		}), nil
}

// handleCancelChatDraft discards the pending chat draft.
func (uc *implUseCase) handleCancelChatDraft(ctx context.Context, session assistant.SessionState) (assistant.ProcessOutput, error) {
	if session.LastDraftID == "" {
		return errorOutput(session, MsgNoChatDraft), nil
	}

	uc.drafts.Delete(session.LastDraftID)
	session.ClearDrafts()
	return textOutput(session, MsgDraftDiscarded), nil
}

package http

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"workspace-assistant/internal/assistant"
	"workspace-assistant/internal/model"
)

var errMissingUser = errors.New("missing X-User-ID header")

// turnReq mirrors model.Turn on the wire.
type turnReq struct {
	Role    string `json:"role" binding:"required"`
	Content string `json:"content" binding:"required"`
}

type uiContextReq struct {
	Page            string `json:"page"`
	FocusedEntityID string `json:"focused_entity_id"`
	OpenDocumentID  string `json:"open_document_id"`
}

// processReq is the request body of POST /api/v1/assistant/message.
type processReq struct {
	InputText    string                 `json:"input_text" binding:"required"`
	History      []turnReq              `json:"history"`
	SessionState assistant.SessionState `json:"session_state"`
	UIContext    *uiContextReq          `json:"ui_context"`
}

func (r processReq) toInput() assistant.ProcessInput {
	input := assistant.ProcessInput{
		Message: r.InputText,
		Session: r.SessionState,
	}
	for _, t := range r.History {
		input.History = append(input.History, model.Turn{Role: t.Role, Content: t.Content})
	}
	if r.UIContext != nil {
		input.UI = assistant.UIContext{
			Page:            r.UIContext.Page,
			FocusedEntityID: r.UIContext.FocusedEntityID,
			OpenDocumentID:  r.UIContext.OpenDocumentID,
		}
	}
	return input
}

type draftResp struct {
	DraftID    string `json:"draft_id"`
	To         string `json:"to,omitempty"`
	ChatTarget string `json:"chat_target,omitempty"`
	Subject    string `json:"subject,omitempty"`
	Body       string `json:"body"`
}

// processResp is the response body of POST /api/v1/assistant/message.
type processResp struct {
	Kind         string                 `json:"kind"`
	ResponseText string                 `json:"response_text"`
	Draft        *draftResp             `json:"draft,omitempty"`
	Target       string                 `json:"target,omitempty"`
	SessionState assistant.SessionState `json:"session_state"`
}

func newProcessResp(out assistant.ProcessOutput) processResp {
	resp := processResp{
		Kind:         string(out.Kind),
		ResponseText: out.Text,
		Target:       out.Target,
		SessionState: out.Session,
	}
	if out.Draft != nil {
		resp.Draft = &draftResp{
			DraftID:    out.Draft.DraftID,
			To:         out.Draft.To,
			ChatTarget: out.Draft.ChatTarget,
			Subject:    out.Draft.Subject,
			Body:       out.Draft.Body,
		}
	}
	return resp
}

// scopeFromRequest builds the per-request user scope from headers.
func scopeFromRequest(c *gin.Context) (model.Scope, error) {
	userID := c.GetHeader("X-User-ID")
	if userID == "" {
		return model.Scope{}, errMissingUser
	}

	token := c.GetHeader("Authorization")
	token = strings.TrimPrefix(token, "Bearer ")

	return model.Scope{
		UserID:    userID,
		AuthToken: token,
	}, nil
}

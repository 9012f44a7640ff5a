package http

import (
	"github.com/gin-gonic/gin"

	"workspace-assistant/pkg/response"
)

// ProcessMessage godoc
// @Summary     Process one conversational turn
// @Description Classifies the message, runs the matching workflow, and returns the response plus updated session state.
// @Tags        Assistant
// @Accept      json
// @Produce     json
// @Param       X-User-ID header string true "Caller user id"
// @Param       body body processReq true "Turn data"
// @Success     200 {object} processResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     429 {object} response.Resp "Too Many Requests"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/assistant/message [POST]
func (h *handler) ProcessMessage(c *gin.Context) {
	ctx := c.Request.Context()

	sc, err := scopeFromRequest(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	var req processReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Warnf(ctx, "assistant.http.ProcessMessage: bad request: %v", err)
		response.Error(c, err, nil)
		return
	}

	out, err := h.uc.Process(ctx, sc, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "assistant.http.ProcessMessage: uc.Process: %v", err)
		response.InternalError(c, err)
		return
	}

	response.OK(c, newProcessResp(out))
}

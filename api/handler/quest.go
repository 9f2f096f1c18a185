package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/questgo/backend/api/transport"
	"github.com/questgo/backend/domain"
	"github.com/questgo/backend/pkg/httpcontext"
	questUC "github.com/questgo/backend/usecase/quest"
)

type QuestHandler struct {
	baseHandler
	uc *questUC.UseCase
}

func NewQuestHandler(uc *questUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *QuestHandler {
	return &QuestHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Activate a task from a scanned deep link
// @Tags quest
// @Router /api/v1/quest/activate [post]
func (h *QuestHandler) Activate(ctx *fasthttp.RequestCtx) {
	var req transport.ActivateRequest
	if !h.parseBody(ctx, &req) {
		return
	}
	if req.UserID == 0 {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "missing user id", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	reply, err := h.uc.Activate(stdCtx, req.UserID, req.Handle, req.TaskKey)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, reply)
}

// @Summary Submit photo evidence for the active task
// @Tags quest
// @Router /api/v1/quest/evidence [post]
func (h *QuestHandler) SubmitEvidence(ctx *fasthttp.RequestCtx) {
	var req transport.EvidenceRequest
	if !h.parseBody(ctx, &req) {
		return
	}
	if req.UserID == 0 || req.FileID == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "missing user id or file id", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	reply, err := h.uc.SubmitEvidence(stdCtx, req.UserID, req.FileID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, reply)
}

// @Summary Cancel the active task, reverting its credit if present
// @Tags quest
// @Router /api/v1/quest/cancel [post]
func (h *QuestHandler) Cancel(ctx *fasthttp.RequestCtx) {
	var req transport.CancelRequest
	if !h.parseBody(ctx, &req) {
		return
	}
	if req.UserID == 0 {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "missing user id", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	reply, err := h.uc.Cancel(stdCtx, req.UserID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, reply)
}

// @Summary Render the user's progress checklist
// @Tags quest
// @Router /api/v1/quest/progress/{userID} [get]
func (h *QuestHandler) Progress(ctx *fasthttp.RequestCtx) {
	raw, _ := ctx.UserValue("userID").(string)
	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || userID == 0 {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid user id", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	reply, err := h.uc.Progress(stdCtx, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, reply)
}

func (h *QuestHandler) parseBody(ctx *fasthttp.RequestCtx, dst interface{}) bool {
	if err := json.Unmarshal(ctx.PostBody(), dst); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return false
	}
	return true
}

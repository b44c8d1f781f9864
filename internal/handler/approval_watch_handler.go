package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/hetref/ngo-connect-service/internal/logger"
	"github.com/hetref/ngo-connect-service/internal/logic"
	"github.com/hetref/ngo-connect-service/internal/middleware"
	"github.com/hetref/ngo-connect-service/internal/model"
)

// ApprovalWatchHandler 确认页实时推送处理器
// 捐赠人确认页通过WebSocket订阅确认结果，轮询数据库并在状态变化时推送
type ApprovalWatchHandler struct {
	approvalLogic *logic.ApprovalLogic
	jwtSecret     string
	pollInterval  time.Duration
}

// NewApprovalWatchHandler 创建确认推送处理器
func NewApprovalWatchHandler(approvalLogic *logic.ApprovalLogic, jwtSecret string) *ApprovalWatchHandler {
	return &ApprovalWatchHandler{
		approvalLogic: approvalLogic,
		jwtSecret:     jwtSecret,
		pollInterval:  2 * time.Second,
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Watch 订阅确认记录变化
// 浏览器WebSocket无法自定义请求头，令牌通过query参数传递
func (h *ApprovalWatchHandler) Watch(c *gin.Context) {
	email, err := middleware.ParseSessionEmail(c.Query("token"), h.jwtSecret)
	if err != nil {
		ErrorResponse(c, http.StatusUnauthorized, "请先登录")
		return
	}

	id := c.Param("id")
	approval, err := h.approvalLogic.GetApproval(id, email)
	if err != nil {
		if errors.Is(err, logic.ErrApprovalNotFound) {
			ErrorResponse(c, http.StatusNotFound, err.Error())
			return
		}
		if errors.Is(err, logic.ErrNotDonor) {
			ErrorResponse(c, http.StatusForbidden, "没有权限访问该确认记录")
			return
		}
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("Failed to upgrade approval watch connection: %v", err)
		return
	}
	defer conn.Close()

	// 推送当前状态
	if err := conn.WriteJSON(ToApprovalResponse(approval)); err != nil {
		return
	}
	if approval.Decision != model.ApprovalDecisionPending {
		return
	}

	ticker := time.NewTicker(h.pollInterval)
	defer ticker.Stop()

	deadline := time.After(30 * time.Minute)
	lastDecision := approval.Decision

	for {
		select {
		case <-deadline:
			return
		case <-c.Request.Context().Done():
			return
		case <-ticker.C:
			current, err := h.approvalLogic.GetApproval(id, email)
			if err != nil {
				logger.Warn("Failed to reload approval %s: %v", id, err)
				return
			}

			if current.Decision == lastDecision {
				continue
			}
			lastDecision = current.Decision

			if err := conn.WriteJSON(ToApprovalResponse(current)); err != nil {
				return
			}
			if current.Decision != model.ApprovalDecisionPending {
				return
			}
		}
	}
}

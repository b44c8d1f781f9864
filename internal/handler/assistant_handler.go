package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hetref/ngo-connect-service/internal/assistant"
	"github.com/hetref/ngo-connect-service/internal/logger"
)

// AssistantHandler AI助手处理器
type AssistantHandler struct {
	client *assistant.Client
}

// NewAssistantHandler 创建AI助手处理器
func NewAssistantHandler(client *assistant.Client) *AssistantHandler {
	return &AssistantHandler{client: client}
}

// Chat 流式对话，token通过SSE推送
func (h *AssistantHandler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	messages := make([]assistant.Message, 0, len(req.Messages))
	for _, m := range req.Messages {
		messages = append(messages, assistant.Message{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	err := h.client.StreamChat(c.Request.Context(), messages, func(token string) error {
		c.SSEvent("message", token)
		c.Writer.Flush()
		return nil
	})
	if err != nil {
		logger.Warn("Assistant stream ended with error: %v", err)
		c.SSEvent("error", "对话生成失败")
		c.Writer.Flush()
		return
	}

	c.SSEvent("done", "")
	c.Writer.Flush()
}

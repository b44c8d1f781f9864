package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hetref/ngo-connect-service/internal/logic"
	"github.com/hetref/ngo-connect-service/internal/notify"
)

// NotifyHandler 通知转发处理器，各端点只做参数校验后转发给分发器
type NotifyHandler struct {
	notifier logic.Notifier
}

// NewNotifyHandler 创建通知转发处理器
func NewNotifyHandler(notifier logic.Notifier) *NotifyHandler {
	return &NotifyHandler{notifier: notifier}
}

// SendEmail 发送邮件
func (h *NotifyHandler) SendEmail(c *gin.Context) {
	var req SendEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	h.notifier.Dispatch(notify.ChannelEmail, req.To, notify.TemplateData{
		Template:  req.Template,
		DonorName: req.DonorName,
		NgoName:   req.NgoName,
		Date:      req.Date,
		Amount:    req.Amount,
		Currency:  req.Currency,
	})

	SuccessResponse(c, http.StatusOK, "邮件已提交发送", nil)
}

// SendSMS 发送短信
func (h *NotifyHandler) SendSMS(c *gin.Context) {
	var req SendSMSRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	h.notifier.Dispatch(notify.ChannelSMS, req.To, notify.TemplateData{
		Body: req.Body,
	})

	SuccessResponse(c, http.StatusOK, "短信已提交发送", nil)
}

// SendWhatsApp 发送WhatsApp模板消息
func (h *NotifyHandler) SendWhatsApp(c *gin.Context) {
	var req SendWhatsAppRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	h.notifier.Dispatch(notify.ChannelWhatsApp, req.Phone, notify.TemplateData{
		Template:  "donation_receipt",
		DonorName: req.Name,
		NgoName:   req.NgoName,
		Date:      req.Date,
		Email:     req.Email,
		Phone:     req.Phone,
		Amount:    req.Amount,
	})

	SuccessResponse(c, http.StatusOK, "WhatsApp消息已提交发送", nil)
}

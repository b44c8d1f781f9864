package notify

import (
	"errors"

	"github.com/hetref/ngo-connect-service/internal/config"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// SMSSender Twilio短信发送器
type SMSSender struct {
	client *twilio.RestClient
	from   string
}

// NewSMSSender 创建短信发送器
func NewSMSSender(cfg config.TwilioConfig) *SMSSender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})
	return &SMSSender{client: client, from: cfg.SMSFrom}
}

// Send 发送短信
func (s *SMSSender) Send(recipient string, data TemplateData) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(recipient)
	params.SetFrom(s.from)
	params.SetBody(RenderText(data))

	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		return err
	}
	if resp.ErrorMessage != nil && *resp.ErrorMessage != "" {
		return errors.New(*resp.ErrorMessage)
	}
	return nil
}

// WhatsAppSender Twilio WhatsApp发送器
type WhatsAppSender struct {
	client *twilio.RestClient
	from   string
}

// NewWhatsAppSender 创建WhatsApp发送器
func NewWhatsAppSender(cfg config.TwilioConfig) *WhatsAppSender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})
	return &WhatsAppSender{client: client, from: cfg.WhatsAppFrom}
}

// Send 发送WhatsApp消息
func (s *WhatsAppSender) Send(recipient string, data TemplateData) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo("whatsapp:" + recipient)
	params.SetFrom("whatsapp:" + s.from)
	params.SetBody(RenderText(data))

	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		return err
	}
	if resp.ErrorMessage != nil && *resp.ErrorMessage != "" {
		return errors.New(*resp.ErrorMessage)
	}
	return nil
}

package notify

import (
	"github.com/hetref/ngo-connect-service/internal/config"
	"gopkg.in/gomail.v2"
)

// EmailSender SMTP邮件发送器
type EmailSender struct {
	cfg config.SMTPConfig
}

// NewEmailSender 创建邮件发送器
func NewEmailSender(cfg config.SMTPConfig) *EmailSender {
	return &EmailSender{cfg: cfg}
}

// Send 发送HTML邮件
func (s *EmailSender) Send(recipient string, data TemplateData) error {
	body, err := RenderEmail(data)
	if err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", recipient)
	m.SetHeader("Subject", EmailSubject(data))
	m.SetBody("text/html", body)

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.User, s.cfg.Password)
	return d.DialAndSend(m)
}

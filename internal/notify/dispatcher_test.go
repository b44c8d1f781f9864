package notify

import (
	"errors"
	"strings"
	"testing"
	"time"
)

// blockingSender 模拟慢速/失败的发送器
type blockingSender struct {
	delay time.Duration
	err   error
	sent  chan TemplateData
}

func newBlockingSender(delay time.Duration, err error) *blockingSender {
	return &blockingSender{
		delay: delay,
		err:   err,
		sent:  make(chan TemplateData, 16),
	}
}

func (s *blockingSender) Send(recipient string, data TemplateData) error {
	time.Sleep(s.delay)
	s.sent <- data
	return s.err
}

func TestDispatchDoesNotBlockCaller(t *testing.T) {
	dispatcher, err := NewDispatcher(4, nil)
	if err != nil {
		t.Fatalf("NewDispatcher failed: %v", err)
	}
	defer dispatcher.Release()

	sender := newBlockingSender(200*time.Millisecond, nil)
	dispatcher.Register(ChannelEmail, sender)

	start := time.Now()
	dispatcher.Dispatch(ChannelEmail, "a@x.com", TemplateData{Template: "donation_receipt"})
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("Dispatch blocked for %v, must return immediately", elapsed)
	}

	select {
	case <-sender.sent:
	case <-time.After(time.Second):
		t.Error("notification was never sent")
	}
}

func TestDispatchSwallowsSendErrors(t *testing.T) {
	dispatcher, err := NewDispatcher(4, nil)
	if err != nil {
		t.Fatalf("NewDispatcher failed: %v", err)
	}
	defer dispatcher.Release()

	sender := newBlockingSender(0, errors.New("provider down"))
	dispatcher.Register(ChannelSMS, sender)

	// 发送失败只记录日志，不会panic也不会返回错误给调用方
	dispatcher.Dispatch(ChannelSMS, "+911111111111", TemplateData{Template: "approval_request"})

	select {
	case <-sender.sent:
	case <-time.After(time.Second):
		t.Error("send was never attempted")
	}
}

func TestDispatchUnknownChannelIsDropped(t *testing.T) {
	dispatcher, err := NewDispatcher(4, nil)
	if err != nil {
		t.Fatalf("NewDispatcher failed: %v", err)
	}
	defer dispatcher.Release()

	// 未注册渠道直接丢弃，不panic
	dispatcher.Dispatch(ChannelWhatsApp, "+911111111111", TemplateData{Template: "approval_request"})
}

func TestRenderEmailTemplates(t *testing.T) {
	data := TemplateData{
		Template:     "approval_request",
		DonorName:    "李四",
		NgoName:      "希望之光",
		Amount:       1000,
		Currency:     "INR",
		ApprovalLink: "https://example.com/approvals/abc",
	}

	html, err := RenderEmail(data)
	if err != nil {
		t.Fatalf("RenderEmail failed: %v", err)
	}
	if !strings.Contains(html, "https://example.com/approvals/abc") {
		t.Error("approval email must contain the approval link")
	}
	if !strings.Contains(html, "1000.00") {
		t.Error("approval email must contain the amount")
	}

	// 物资捐赠显示物资说明而不是金额
	data.ResourceDesc = "100本图书"
	html, err = RenderEmail(data)
	if err != nil {
		t.Fatalf("RenderEmail failed: %v", err)
	}
	if !strings.Contains(html, "100本图书") {
		t.Error("resource approval email must contain the resource description")
	}

	for _, template := range []string{"approval_result", "donation_receipt"} {
		data.Template = template
		if _, err := RenderEmail(data); err != nil {
			t.Errorf("RenderEmail(%s) failed: %v", template, err)
		}
	}
}

func TestRenderTextPrefersRawBody(t *testing.T) {
	data := TemplateData{
		Body:     "直接发送的正文",
		Template: "approval_request",
	}
	if got := RenderText(data); got != "直接发送的正文" {
		t.Errorf("RenderText = %q, want raw body", got)
	}
}

package logic

import (
	"github.com/hetref/ngo-connect-service/internal/notify"
)

// Notifier 通知分发接口，实现必须异步发送且不得阻塞调用方
type Notifier interface {
	Dispatch(channel notify.Channel, recipient string, data notify.TemplateData)
}

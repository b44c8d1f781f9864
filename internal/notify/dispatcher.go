package notify

import (
	"github.com/hetref/ngo-connect-service/internal/logger"
	"github.com/hetref/ngo-connect-service/internal/model"
	"github.com/panjf2000/ants/v2"
	"gorm.io/gorm"
)

// Channel 通知渠道
type Channel string

const (
	ChannelEmail    Channel = "email"
	ChannelSMS      Channel = "sms"
	ChannelWhatsApp Channel = "whatsapp"
)

// TemplateData 通知模板数据
type TemplateData struct {
	Template     string // approval_request, approval_result, donation_receipt
	Body         string // 设置后直接作为正文发送，不渲染模板
	DonorName    string
	NgoName      string
	Date         string
	Email        string
	Phone        string
	Amount       float64
	Currency     string
	ResourceDesc string
	ApprovalLink string
	Decision     string
}

// Sender 单渠道发送器
type Sender interface {
	Send(recipient string, data TemplateData) error
}

// Dispatcher 通知分发器，发送均为尽力而为，不阻塞、不回滚主流程
type Dispatcher struct {
	senders map[Channel]Sender
	pool    *ants.Pool
	db      *gorm.DB
}

// NewDispatcher 创建通知分发器
func NewDispatcher(poolSize int, db *gorm.DB) (*Dispatcher, error) {
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	return &Dispatcher{
		senders: make(map[Channel]Sender),
		pool:    pool,
		db:      db,
	}, nil
}

// Register 注册渠道发送器
func (d *Dispatcher) Register(channel Channel, sender Sender) {
	d.senders[channel] = sender
}

// Dispatch 异步发送通知，发送失败仅记录日志和发送记录
func (d *Dispatcher) Dispatch(channel Channel, recipient string, data TemplateData) {
	sender, ok := d.senders[channel]
	if !ok {
		logger.Warn("No sender registered for channel %s, notification to %s dropped", channel, recipient)
		return
	}

	err := d.pool.Submit(func() {
		if err := sender.Send(recipient, data); err != nil {
			logger.Warn("Failed to send %s notification to %s: %v", channel, recipient, err)
			d.record(channel, recipient, data.Template, "failed", err.Error())
			return
		}
		d.record(channel, recipient, data.Template, "sent", "")
	})
	if err != nil {
		logger.Warn("Failed to submit %s notification to pool: %v", channel, err)
	}
}

// record 尽力写入发送记录
func (d *Dispatcher) record(channel Channel, recipient, template, status, lastError string) {
	if d.db == nil {
		return
	}

	rec := model.DeliveryRecordModel{
		Channel:   string(channel),
		Recipient: recipient,
		Template:  template,
		Status:    status,
		LastError: lastError,
	}
	if err := d.db.Create(&rec).Error; err != nil {
		logger.Warn("Failed to save delivery record: %v", err)
	}
}

// Release 释放协程池
func (d *Dispatcher) Release() {
	d.pool.Release()
}

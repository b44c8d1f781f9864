package model

import (
	"time"
)

// DeliveryRecordModel 通知发送记录，尽力写入，失败不影响主流程
type DeliveryRecordModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	Channel   string `json:"channel" gorm:"not null;index"` // email, sms, whatsapp
	Recipient string `json:"recipient" gorm:"not null"`
	Template  string `json:"template"`
	Status    string `json:"status" gorm:"not null"` // sent, failed
	LastError string `json:"last_error"`
}

// TableName 自定义表名
func (DeliveryRecordModel) TableName() string {
	return "delivery_record"
}

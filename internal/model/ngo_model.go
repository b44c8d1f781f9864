package model

import (
	"time"
)

// NgoModel NGO组织模型，网关密钥为各NGO自有账户
type NgoModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name  string `json:"name" gorm:"not null" binding:"required"`
	Email string `json:"email" gorm:"not null;uniqueIndex"`
	Phone string `json:"phone"`

	// 支付网关凭证
	RazorpayKeyId     string `json:"-" gorm:"column:razorpay_key_id"`
	RazorpayKeySecret string `json:"-" gorm:"column:razorpay_key_secret"`
}

// HasGatewayCredentials 是否已配置网关凭证
func (n *NgoModel) HasGatewayCredentials() bool {
	return n.RazorpayKeyId != "" && n.RazorpayKeySecret != ""
}

// TableName 自定义表名
func (NgoModel) TableName() string {
	return "ngo"
}

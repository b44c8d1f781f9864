package model

import (
	"time"
)

// DonationModel 捐赠记录
type DonationModel struct {
	Id        string    `json:"id" gorm:"primaryKey;size:36"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	CampaignId int64 `json:"campaign_id" gorm:"not null;index"`
	NgoId      int64 `json:"ngo_id" gorm:"not null;index"`

	// 捐赠人信息
	DonorName  string `json:"donor_name" gorm:"not null"`
	DonorEmail string `json:"donor_email" gorm:"not null;index"`
	DonorPhone string `json:"donor_phone"`

	// 金额信息，resource方式时金额为0，填写物资说明
	Amount       float64 `json:"amount" gorm:"not null"`
	Currency     string  `json:"currency" gorm:"size:10;default:'INR'"`
	ResourceDesc string  `json:"resource_desc"`

	// 支付方式与状态
	Method DonationMethod `json:"method" gorm:"not null"`
	State  DonationState  `json:"state" gorm:"not null;index"`

	// 网关支付信息，客户端回报，未做服务端签名校验
	GatewayOrderId   string `json:"gateway_order_id" gorm:"index"`
	GatewayPaymentId string `json:"gateway_payment_id"`
}

// DonationMethod 捐赠方式
type DonationMethod string

const (
	DonationMethodGateway  DonationMethod = "gateway"  // 在线支付
	DonationMethodCash     DonationMethod = "cash"     // 现金
	DonationMethodResource DonationMethod = "resource" // 物资
)

// DonationState 捐赠状态
type DonationState string

const (
	DonationStateInitiated       DonationState = "initiated"        // 已发起
	DonationStateCompleted       DonationState = "completed"        // 已完成（网关）
	DonationStatePendingApproval DonationState = "pending_approval" // 待确认
	DonationStateApproved        DonationState = "approved"         // 已确认
	DonationStateRejected        DonationState = "rejected"         // 已拒绝
)

// IsTerminalSuccess 是否为计入募捐总额的终态
func (s DonationState) IsTerminalSuccess() bool {
	return s == DonationStateCompleted || s == DonationStateApproved
}

// TableName 自定义表名
func (DonationModel) TableName() string {
	return "donation"
}

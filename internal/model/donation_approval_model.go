package model

import (
	"time"
)

// DonationApprovalModel 捐赠确认记录，与待确认捐赠共用同一个ID
type DonationApprovalModel struct {
	Id        string    `json:"id" gorm:"primaryKey;size:36"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	NgoId int64 `json:"ngo_id" gorm:"not null;index"`

	// 捐赠人信息
	DonorName  string `json:"donor_name" gorm:"not null"`
	DonorEmail string `json:"donor_email" gorm:"not null;index"`
	DonorPhone string `json:"donor_phone"`

	// 捐赠内容
	Amount       float64        `json:"amount"`
	Currency     string         `json:"currency" gorm:"size:10;default:'INR'"`
	ResourceDesc string         `json:"resource_desc"`
	Method       DonationMethod `json:"method" gorm:"not null"`

	// 确认结果
	Decision  ApprovalDecision `json:"decision" gorm:"not null;default:'pending';index"`
	DecidedAt *time.Time       `json:"decided_at"`

	// 是否需要捐赠证书
	WantsCertificate bool `json:"wants_certificate" gorm:"default:false"`
}

// ApprovalDecision 确认结果
type ApprovalDecision string

const (
	ApprovalDecisionPending  ApprovalDecision = "pending"  // 待确认
	ApprovalDecisionApproved ApprovalDecision = "approved" // 已确认
	ApprovalDecisionRejected ApprovalDecision = "rejected" // 已拒绝
)

// TableName 自定义表名
func (DonationApprovalModel) TableName() string {
	return "donation_approval"
}

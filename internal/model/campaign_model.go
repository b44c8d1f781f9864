package model

import (
	"time"
)

// CampaignModel 募捐活动模型
type CampaignModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 基本信息
	Title       string `json:"title" gorm:"not null" binding:"required"`
	Description string `json:"description" gorm:"type:text"`
	ImageURL    string `json:"image_url"`
	Category    string `json:"category"`

	// 募捐信息
	TargetAmount float64 `json:"target_amount" gorm:"not null" binding:"required,min=0"`
	RaisedAmount float64 `json:"raised_amount" gorm:"default:0"`
	Currency     string  `json:"currency" gorm:"size:10;default:'INR'"`

	// 时间信息
	StartTime time.Time `json:"start_time" gorm:"not null"`

	// 状态
	Status CampaignStatus `json:"status" gorm:"default:'active'"`

	// 所属NGO
	NgoId int64 `json:"ngo_id" gorm:"not null;index"`
}

// CampaignStatus 活动状态
type CampaignStatus string

const (
	CampaignStatusActive   CampaignStatus = "active"   // 进行中
	CampaignStatusClosed   CampaignStatus = "closed"   // 已结束
	CampaignStatusArchived CampaignStatus = "archived" // 已归档
)

// TableName 自定义表名
func (CampaignModel) TableName() string {
	return "campaign"
}

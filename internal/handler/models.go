package handler

import (
	"time"

	"github.com/hetref/ngo-connect-service/internal/model"
)

// 通用响应结构
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// 分页信息结构
type Pagination struct {
	Page      int   `json:"page"`
	PageSize  int   `json:"pageSize"`
	Total     int64 `json:"total"`
	TotalPage int64 `json:"totalPage"`
}

// 活动相关请求/响应模型

// CampaignResponse 活动响应模型
type CampaignResponse struct {
	ID           int64     `json:"id"`
	NgoID        int64     `json:"ngoId"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	ImageURL     string    `json:"imageUrl"`
	Category     string    `json:"category"`
	TargetAmount float64   `json:"targetAmount"`
	RaisedAmount float64   `json:"raisedAmount"`
	Currency     string    `json:"currency"`
	Status       string    `json:"status"`
	StartTime    time.Time `json:"startTime"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ToCampaignResponse 转换活动响应
func ToCampaignResponse(campaign *model.CampaignModel) CampaignResponse {
	return CampaignResponse{
		ID:           campaign.Id,
		NgoID:        campaign.NgoId,
		Title:        campaign.Title,
		Description:  campaign.Description,
		ImageURL:     campaign.ImageURL,
		Category:     campaign.Category,
		TargetAmount: campaign.TargetAmount,
		RaisedAmount: campaign.RaisedAmount,
		Currency:     campaign.Currency,
		Status:       string(campaign.Status),
		StartTime:    campaign.StartTime,
		CreatedAt:    campaign.CreatedAt,
		UpdatedAt:    campaign.UpdatedAt,
	}
}

// ToCampaignResponseList 转换活动响应列表
func ToCampaignResponseList(campaigns []model.CampaignModel) []CampaignResponse {
	responses := make([]CampaignResponse, 0, len(campaigns))
	for i := range campaigns {
		responses = append(responses, ToCampaignResponse(&campaigns[i]))
	}
	return responses
}

// GetCampaignsResponse 获取活动列表响应
type GetCampaignsResponse struct {
	Campaigns  []CampaignResponse `json:"campaigns"`
	Pagination Pagination         `json:"pagination"`
}

// GetCampaignStatsResponse 获取活动统计响应
type GetCampaignStatsResponse struct {
	Stats map[string]interface{} `json:"stats"`
}

// 捐赠相关请求/响应模型

// CreateOrderRequest 创建网关订单请求
type CreateOrderRequest struct {
	CampaignID int64   `json:"campaignId" binding:"required"`
	Amount     float64 `json:"amount" binding:"required,gt=0"`
	Currency   string  `json:"currency"`
	DonorID    string  `json:"donorId"`
}

// CreateOrderResponse 创建网关订单响应
type CreateOrderResponse struct {
	OrderID  string `json:"orderId"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// RecordGatewayDonationRequest 记录网关捐赠请求
type RecordGatewayDonationRequest struct {
	CampaignID       int64   `json:"campaignId" binding:"required"`
	DonorName        string  `json:"donorName" binding:"required"`
	DonorEmail       string  `json:"donorEmail" binding:"required,email"`
	DonorPhone       string  `json:"donorPhone"`
	Amount           float64 `json:"amount" binding:"required,gt=0"`
	Currency         string  `json:"currency"`
	GatewayOrderID   string  `json:"gatewayOrderId" binding:"required"`
	GatewayPaymentID string  `json:"gatewayPaymentId" binding:"required"`
}

// RecordManualDonationRequest 记录现金/物资捐赠请求
type RecordManualDonationRequest struct {
	CampaignID       int64   `json:"campaignId" binding:"required"`
	DonorName        string  `json:"donorName" binding:"required"`
	DonorEmail       string  `json:"donorEmail" binding:"required,email"`
	DonorPhone       string  `json:"donorPhone"`
	Method           string  `json:"method" binding:"required,oneof=cash resource"`
	Amount           float64 `json:"amount"`
	Currency         string  `json:"currency"`
	ResourceDesc     string  `json:"resourceDesc"`
	WantsCertificate bool    `json:"wantsCertificate"`
}

// DonationResponse 捐赠响应模型
type DonationResponse struct {
	ID           string    `json:"id"`
	CampaignID   int64     `json:"campaignId"`
	DonorName    string    `json:"donorName"`
	DonorEmail   string    `json:"donorEmail"`
	Amount       float64   `json:"amount"`
	Currency     string    `json:"currency"`
	ResourceDesc string    `json:"resourceDesc,omitempty"`
	Method       string    `json:"method"`
	State        string    `json:"state"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ToDonationResponse 转换捐赠响应
func ToDonationResponse(donation *model.DonationModel) DonationResponse {
	return DonationResponse{
		ID:           donation.Id,
		CampaignID:   donation.CampaignId,
		DonorName:    donation.DonorName,
		DonorEmail:   donation.DonorEmail,
		Amount:       donation.Amount,
		Currency:     donation.Currency,
		ResourceDesc: donation.ResourceDesc,
		Method:       string(donation.Method),
		State:        string(donation.State),
		CreatedAt:    donation.CreatedAt,
	}
}

// ToDonationResponseList 转换捐赠响应列表
func ToDonationResponseList(donations []model.DonationModel) []DonationResponse {
	responses := make([]DonationResponse, 0, len(donations))
	for i := range donations {
		responses = append(responses, ToDonationResponse(&donations[i]))
	}
	return responses
}

// GetCampaignDonationsResponse 获取活动捐赠列表响应
type GetCampaignDonationsResponse struct {
	Donations  []DonationResponse `json:"donations"`
	Pagination Pagination         `json:"pagination"`
}

// 确认相关响应模型

// ApprovalResponse 确认记录响应模型
type ApprovalResponse struct {
	ID               string     `json:"id"`
	NgoID            int64      `json:"ngoId"`
	DonorName        string     `json:"donorName"`
	DonorEmail       string     `json:"donorEmail"`
	Amount           float64    `json:"amount"`
	Currency         string     `json:"currency"`
	ResourceDesc     string     `json:"resourceDesc,omitempty"`
	Method           string     `json:"method"`
	Decision         string     `json:"decision"`
	DecidedAt        *time.Time `json:"decidedAt,omitempty"`
	WantsCertificate bool       `json:"wantsCertificate"`
	CreatedAt        time.Time  `json:"createdAt"`
}

// ToApprovalResponse 转换确认记录响应
func ToApprovalResponse(approval *model.DonationApprovalModel) ApprovalResponse {
	return ApprovalResponse{
		ID:               approval.Id,
		NgoID:            approval.NgoId,
		DonorName:        approval.DonorName,
		DonorEmail:       approval.DonorEmail,
		Amount:           approval.Amount,
		Currency:         approval.Currency,
		ResourceDesc:     approval.ResourceDesc,
		Method:           string(approval.Method),
		Decision:         string(approval.Decision),
		DecidedAt:        approval.DecidedAt,
		WantsCertificate: approval.WantsCertificate,
		CreatedAt:        approval.CreatedAt,
	}
}

// 通知相关请求模型

// SendEmailRequest 发送邮件请求
type SendEmailRequest struct {
	To        string  `json:"to" binding:"required,email"`
	Template  string  `json:"template" binding:"required"`
	DonorName string  `json:"donorName"`
	NgoName   string  `json:"ngoName"`
	Date      string  `json:"date"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
}

// SendSMSRequest 发送短信请求
type SendSMSRequest struct {
	To   string `json:"to" binding:"required"`
	Body string `json:"body" binding:"required"`
}

// SendWhatsAppRequest 发送WhatsApp模板消息请求
type SendWhatsAppRequest struct {
	Name    string  `json:"name" binding:"required"`
	NgoName string  `json:"ngoName" binding:"required"`
	Date    string  `json:"date"`
	Email   string  `json:"email"`
	Phone   string  `json:"phone" binding:"required"`
	Amount  float64 `json:"amount"`
}

// 助手相关请求模型

// ChatMessage 对话消息
type ChatMessage struct {
	Role    string `json:"role" binding:"required,oneof=system user assistant"`
	Content string `json:"content" binding:"required"`
}

// ChatRequest 对话请求
type ChatRequest struct {
	Messages []ChatMessage `json:"messages" binding:"required,min=1,dive"`
}

package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hetref/ngo-connect-service/internal/logic"
	"github.com/hetref/ngo-connect-service/internal/model"
	"github.com/hetref/ngo-connect-service/internal/payment"
)

// DonationHandler 捐赠处理器
type DonationHandler struct {
	donationLogic *logic.DonationLogic
	campaignLogic *logic.CampaignLogic
	ngoLogic      *logic.NgoLogic
	gateway       payment.Gateway
}

// NewDonationHandler 创建捐赠处理器
func NewDonationHandler(donationLogic *logic.DonationLogic, campaignLogic *logic.CampaignLogic, ngoLogic *logic.NgoLogic, gateway payment.Gateway) *DonationHandler {
	return &DonationHandler{
		donationLogic: donationLogic,
		campaignLogic: campaignLogic,
		ngoLogic:      ngoLogic,
		gateway:       gateway,
	}
}

// CreateOrder 创建支付网关订单，使用活动所属NGO自有的网关凭证
func (h *DonationHandler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	campaign, err := h.campaignLogic.GetCampaign(req.CampaignID)
	if err != nil {
		if errors.Is(err, logic.ErrCampaignNotFound) {
			ErrorResponse(c, http.StatusNotFound, err.Error())
			return
		}
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	ngo, err := h.ngoLogic.GetNgo(campaign.NgoId)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	currency := req.Currency
	if currency == "" {
		currency = campaign.Currency
	}
	// 网关收据号上限40字符
	receipt := "don_" + uuid.NewString()

	order, err := h.gateway.CreateOrder(ngo, req.Amount, currency, receipt, req.DonorID)
	if err != nil {
		switch {
		case errors.Is(err, payment.ErrInvalidAmount):
			ErrorResponse(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, payment.ErrMissingCredentials):
			ErrorResponse(c, http.StatusUnauthorized, err.Error())
		default:
			ErrorResponse(c, http.StatusBadGateway, err.Error())
		}
		return
	}

	SuccessResponse(c, http.StatusOK, "网关订单创建成功", CreateOrderResponse{
		OrderID:  order.Id,
		Amount:   order.Amount,
		Currency: order.Currency,
	})
}

// RecordGatewayDonation 记录网关支付完成的捐赠
func (h *DonationHandler) RecordGatewayDonation(c *gin.Context) {
	var req RecordGatewayDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	donation := model.DonationModel{
		CampaignId:       req.CampaignID,
		DonorName:        req.DonorName,
		DonorEmail:       req.DonorEmail,
		DonorPhone:       req.DonorPhone,
		Amount:           req.Amount,
		Currency:         req.Currency,
		GatewayOrderId:   req.GatewayOrderID,
		GatewayPaymentId: req.GatewayPaymentID,
	}

	id, err := h.donationLogic.RecordGatewayDonation(&donation)
	if err != nil {
		if errors.Is(err, logic.ErrCampaignNotFound) {
			ErrorResponse(c, http.StatusNotFound, err.Error())
			return
		}
		if errors.Is(err, logic.ErrCampaignClosed) {
			ErrorResponse(c, http.StatusConflict, err.Error())
			return
		}
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	SuccessResponse(c, http.StatusCreated, "捐赠记录成功", gin.H{"donationId": id})
}

// RecordManualDonation 记录现金/物资捐赠，等待捐赠人确认
func (h *DonationHandler) RecordManualDonation(c *gin.Context) {
	var req RecordManualDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	donation := model.DonationModel{
		CampaignId:   req.CampaignID,
		DonorName:    req.DonorName,
		DonorEmail:   req.DonorEmail,
		DonorPhone:   req.DonorPhone,
		Amount:       req.Amount,
		Currency:     req.Currency,
		ResourceDesc: req.ResourceDesc,
		Method:       model.DonationMethod(req.Method),
	}

	id, err := h.donationLogic.RecordManualDonation(&donation, req.WantsCertificate)
	if err != nil {
		if errors.Is(err, logic.ErrCampaignNotFound) {
			ErrorResponse(c, http.StatusNotFound, err.Error())
			return
		}
		if errors.Is(err, logic.ErrCampaignClosed) {
			ErrorResponse(c, http.StatusConflict, err.Error())
			return
		}
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	SuccessResponse(c, http.StatusCreated, "捐赠已记录，等待捐赠人确认", gin.H{"donationId": id})
}

// GetDonation 获取捐赠详情
func (h *DonationHandler) GetDonation(c *gin.Context) {
	donation, err := h.donationLogic.GetDonation(c.Param("id"))
	if err != nil {
		if errors.Is(err, logic.ErrDonationNotFound) {
			ErrorResponse(c, http.StatusNotFound, err.Error())
			return
		}
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "获取捐赠详情成功", ToDonationResponse(donation))
}

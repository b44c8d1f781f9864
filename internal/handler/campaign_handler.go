package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hetref/ngo-connect-service/internal/logic"
	"github.com/hetref/ngo-connect-service/internal/model"
)

// CampaignHandler 募捐活动处理器
type CampaignHandler struct {
	campaignLogic *logic.CampaignLogic
	donationLogic *logic.DonationLogic
}

// NewCampaignHandler 创建募捐活动处理器
func NewCampaignHandler(campaignLogic *logic.CampaignLogic, donationLogic *logic.DonationLogic) *CampaignHandler {
	return &CampaignHandler{
		campaignLogic: campaignLogic,
		donationLogic: donationLogic,
	}
}

// CreateCampaign 创建募捐活动
func (h *CampaignHandler) CreateCampaign(c *gin.Context) {
	var campaign model.CampaignModel
	if err := c.ShouldBindJSON(&campaign); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.campaignLogic.CreateCampaign(&campaign); err != nil {
		if errors.Is(err, logic.ErrNgoNotFound) {
			ErrorResponse(c, http.StatusNotFound, err.Error())
			return
		}
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	SuccessResponse(c, http.StatusCreated, "募捐活动创建成功", ToCampaignResponse(&campaign))
}

// GetCampaigns 获取募捐活动列表
func (h *CampaignHandler) GetCampaigns(c *gin.Context) {
	ngoId, _ := strconv.ParseInt(c.DefaultQuery("ngo_id", "0"), 10, 64)
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	campaigns, total, err := h.campaignLogic.GetCampaigns(ngoId, page, pageSize)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	pagination := Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}

	SuccessResponse(c, http.StatusOK, "获取活动列表成功", GetCampaignsResponse{
		Campaigns:  ToCampaignResponseList(campaigns),
		Pagination: pagination,
	})
}

// GetCampaign 获取募捐活动详情
func (h *CampaignHandler) GetCampaign(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的活动ID")
		return
	}

	campaign, err := h.campaignLogic.GetCampaign(id)
	if err != nil {
		if errors.Is(err, logic.ErrCampaignNotFound) {
			ErrorResponse(c, http.StatusNotFound, err.Error())
			return
		}
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "获取活动详情成功", ToCampaignResponse(campaign))
}

// UpdateCampaign 更新募捐活动
func (h *CampaignHandler) UpdateCampaign(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的活动ID")
		return
	}

	var updates model.CampaignModel
	if err := c.ShouldBindJSON(&updates); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.campaignLogic.UpdateCampaign(id, &updates); err != nil {
		if errors.Is(err, logic.ErrCampaignNotFound) {
			ErrorResponse(c, http.StatusNotFound, err.Error())
			return
		}
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "活动更新成功", nil)
}

// GetCampaignDonations 获取活动捐赠记录
func (h *CampaignHandler) GetCampaignDonations(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的活动ID")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	donations, total, err := h.donationLogic.GetCampaignDonations(id, page, pageSize)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	pagination := Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}

	SuccessResponse(c, http.StatusOK, "获取活动捐赠记录成功", GetCampaignDonationsResponse{
		Donations:  ToDonationResponseList(donations),
		Pagination: pagination,
	})
}

// GetCampaignStats 获取活动统计信息
func (h *CampaignHandler) GetCampaignStats(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的活动ID")
		return
	}

	stats, err := h.campaignLogic.GetCampaignStats(id)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "获取活动统计信息成功", GetCampaignStatsResponse{Stats: stats})
}

package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hetref/ngo-connect-service/internal/logic"
	"github.com/hetref/ngo-connect-service/internal/model"
)

// NgoHandler NGO处理器
type NgoHandler struct {
	ngoLogic *logic.NgoLogic
}

// NewNgoHandler 创建NGO处理器
func NewNgoHandler(ngoLogic *logic.NgoLogic) *NgoHandler {
	return &NgoHandler{ngoLogic: ngoLogic}
}

// UpdateGatewayCredentialsRequest 更新网关凭证请求
type UpdateGatewayCredentialsRequest struct {
	KeyID     string `json:"keyId" binding:"required"`
	KeySecret string `json:"keySecret" binding:"required"`
}

// CreateNgo 注册NGO
func (h *NgoHandler) CreateNgo(c *gin.Context) {
	var ngo model.NgoModel
	if err := c.ShouldBindJSON(&ngo); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.ngoLogic.CreateNgo(&ngo); err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	SuccessResponse(c, http.StatusCreated, "NGO注册成功", ngo)
}

// GetNgo 获取NGO详情
func (h *NgoHandler) GetNgo(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的NGO ID")
		return
	}

	ngo, err := h.ngoLogic.GetNgo(id)
	if err != nil {
		if errors.Is(err, logic.ErrNgoNotFound) {
			ErrorResponse(c, http.StatusNotFound, err.Error())
			return
		}
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "获取NGO详情成功", ngo)
}

// UpdateGatewayCredentials 更新NGO支付网关凭证
func (h *NgoHandler) UpdateGatewayCredentials(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的NGO ID")
		return
	}

	var req UpdateGatewayCredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.ngoLogic.UpdateGatewayCredentials(id, req.KeyID, req.KeySecret); err != nil {
		if errors.Is(err, logic.ErrNgoNotFound) {
			ErrorResponse(c, http.StatusNotFound, err.Error())
			return
		}
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "网关凭证更新成功", nil)
}

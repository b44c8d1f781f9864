package router

import (
	"github.com/gin-gonic/gin"
	"github.com/hetref/ngo-connect-service/internal/assistant"
	"github.com/hetref/ngo-connect-service/internal/config"
	"github.com/hetref/ngo-connect-service/internal/handler"
	"github.com/hetref/ngo-connect-service/internal/logic"
	"github.com/hetref/ngo-connect-service/internal/middleware"
	"github.com/hetref/ngo-connect-service/internal/payment"
	"gorm.io/gorm"
)

func Setup(db *gorm.DB, notifier logic.Notifier, gateway payment.Gateway, assistantClient *assistant.Client, cfg *config.Config) *gin.Engine {
	r := gin.Default()

	// 中间件
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "ngo-connect-service",
		})
	})

	campaignLogic := logic.NewCampaignLogic(db)
	donationLogic := logic.NewDonationLogic(db, campaignLogic, notifier, cfg.Server.PublicURL)
	approvalLogic := logic.NewApprovalLogic(db, campaignLogic, notifier)
	ngoLogic := logic.NewNgoLogic(db)

	// API版本组
	v1 := r.Group("/api/v1")
	{
		// NGO相关路由
		ngoHandler := handler.NewNgoHandler(ngoLogic)
		ngos := v1.Group("/ngos")
		{
			ngos.POST("", ngoHandler.CreateNgo)
			ngos.GET("/:id", ngoHandler.GetNgo)
			ngos.PUT("/:id/gateway-credentials", ngoHandler.UpdateGatewayCredentials)
		}

		// 活动相关路由
		campaignHandler := handler.NewCampaignHandler(campaignLogic, donationLogic)
		campaigns := v1.Group("/campaigns")
		{
			campaigns.POST("", campaignHandler.CreateCampaign)
			campaigns.GET("", campaignHandler.GetCampaigns)
			campaigns.GET("/:id", campaignHandler.GetCampaign)
			campaigns.PUT("/:id", campaignHandler.UpdateCampaign)
			campaigns.GET("/:id/donations", campaignHandler.GetCampaignDonations)
			campaigns.GET("/:id/stats", campaignHandler.GetCampaignStats)
		}

		// 捐赠相关路由
		donationHandler := handler.NewDonationHandler(donationLogic, campaignLogic, ngoLogic, gateway)
		donations := v1.Group("/donations")
		{
			donations.POST("/order", donationHandler.CreateOrder)
			donations.POST("", donationHandler.RecordGatewayDonation)
			donations.POST("/manual", donationHandler.RecordManualDonation)
			donations.GET("/:id", donationHandler.GetDonation)
		}

		// 捐赠确认路由，需要捐赠人登录
		approvalHandler := handler.NewApprovalHandler(approvalLogic)
		approvalWatchHandler := handler.NewApprovalWatchHandler(approvalLogic, cfg.Auth.JWTSecret)
		approvals := v1.Group("/approvals")
		{
			approvals.GET("/:id/watch", approvalWatchHandler.Watch)

			authed := approvals.Group("")
			authed.Use(middleware.Auth(cfg.Auth.JWTSecret))
			{
				authed.GET("/:id", approvalHandler.GetApproval)
				authed.POST("/:id/approve", approvalHandler.Approve)
				authed.POST("/:id/reject", approvalHandler.Reject)
			}
		}

		// 通知转发路由
		notifyHandler := handler.NewNotifyHandler(notifier)
		notifyGroup := v1.Group("/notify")
		{
			notifyGroup.POST("/email", notifyHandler.SendEmail)
			notifyGroup.POST("/sms", notifyHandler.SendSMS)
			notifyGroup.POST("/whatsapp", notifyHandler.SendWhatsApp)
		}

		// AI助手路由
		assistantHandler := handler.NewAssistantHandler(assistantClient)
		v1.POST("/assistant/chat", assistantHandler.Chat)
	}

	return r
}

// CORS中间件
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

package main

import (
	"github.com/gin-gonic/gin"
	"github.com/hetref/ngo-connect-service/internal/assistant"
	"github.com/hetref/ngo-connect-service/internal/config"
	"github.com/hetref/ngo-connect-service/internal/logger"
	"github.com/hetref/ngo-connect-service/internal/notify"
	"github.com/hetref/ngo-connect-service/internal/payment"
	"github.com/hetref/ngo-connect-service/internal/repository"
	"github.com/hetref/ngo-connect-service/internal/router"
	"github.com/hetref/ngo-connect-service/internal/task"
)

func main() {
	// 加载配置
	cfg := config.Load()
	logger.Init(cfg.Log)
	defer logger.Sync()

	// 初始化数据库
	db, err := repository.Init(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database: %v", err)
	}

	// 初始化通知分发器
	notifier, err := notify.NewDispatcher(cfg.Notification.PoolSize, db)
	if err != nil {
		logger.Fatal("Failed to initialize notification dispatcher: %v", err)
	}
	defer notifier.Release()
	notifier.Register(notify.ChannelEmail, notify.NewEmailSender(cfg.Notification.SMTP))
	notifier.Register(notify.ChannelSMS, notify.NewSMSSender(cfg.Notification.Twilio))
	notifier.Register(notify.ChannelWhatsApp, notify.NewWhatsAppSender(cfg.Notification.Twilio))

	// 初始化支付网关与AI助手客户端
	gateway := payment.NewRazorpayGateway()
	assistantClient := assistant.NewClient(cfg.Assistant)

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化路由
	r := router.Setup(db, notifier, gateway, assistantClient, cfg)

	// 启动定时任务
	manager := task.Start(db, cfg)
	defer manager.Stop()

	// 启动服务器
	logger.Info("Server starting on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("Failed to start server: %v", err)
	}
}

package task

import (
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/hetref/ngo-connect-service/internal/config"
	"github.com/hetref/ngo-connect-service/internal/logger"
	"github.com/hetref/ngo-connect-service/internal/logic"
	"github.com/hetref/ngo-connect-service/internal/model"
	"gorm.io/gorm"
)

// CampaignRecountJob 已筹金额重算任务
// 捐赠写入与金额累加之间的崩溃会导致活动少计，定期按终态捐赠重算修复
type CampaignRecountJob struct {
	db            *gorm.DB
	config        *config.Config
	campaignLogic *logic.CampaignLogic
}

// NewCampaignRecountJob 创建已筹金额重算任务
func NewCampaignRecountJob(db *gorm.DB, cfg *config.Config) *CampaignRecountJob {
	return &CampaignRecountJob{
		db:            db,
		config:        cfg,
		campaignLogic: logic.NewCampaignLogic(db),
	}
}

// GetName 获取任务名称
func (j *CampaignRecountJob) GetName() string {
	return "campaign_raised_amount_recount"
}

// GetSchedule 获取调度配置
func (j *CampaignRecountJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.Task.Interval) * time.Second)
}

// Execute 执行任务
func (j *CampaignRecountJob) Execute() {
	logger.Info("Starting campaign raised amount recount task")

	var campaigns []model.CampaignModel
	err := j.db.Where("status = ?", model.CampaignStatusActive).Find(&campaigns).Error
	if err != nil {
		logger.Error("Failed to fetch campaigns: %v", err)
		return
	}

	recounted := 0
	for _, campaign := range campaigns {
		if err := j.campaignLogic.RecountRaisedAmount(campaign.Id); err != nil {
			logger.Error("Failed to recount campaign %d: %v", campaign.Id, err)
			continue
		}
		recounted++
	}

	logger.Info("Campaign recount completed. Recounted %d campaigns", recounted)
}

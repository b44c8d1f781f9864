package logic

import (
	"errors"
	"fmt"

	"github.com/hetref/ngo-connect-service/internal/model"
	"gorm.io/gorm"
)

// CampaignLogic 募捐活动业务逻辑
type CampaignLogic struct {
	db *gorm.DB
}

// NewCampaignLogic 创建募捐活动业务逻辑
func NewCampaignLogic(db *gorm.DB) *CampaignLogic {
	return &CampaignLogic{db: db}
}

// CreateCampaign 创建募捐活动
func (c *CampaignLogic) CreateCampaign(campaign *model.CampaignModel) error {
	if campaign.Title == "" {
		return errors.New("活动标题不能为空")
	}
	if campaign.TargetAmount <= 0 {
		return errors.New("目标金额必须大于0")
	}

	// 检查NGO是否存在
	var ngo model.NgoModel
	if err := c.db.First(&ngo, campaign.NgoId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNgoNotFound
		}
		return err
	}

	if campaign.Status == "" {
		campaign.Status = model.CampaignStatusActive
	}
	campaign.RaisedAmount = 0

	if err := c.db.Create(campaign).Error; err != nil {
		return fmt.Errorf("创建募捐活动失败: %w", err)
	}

	return nil
}

// GetCampaign 获取募捐活动详情
func (c *CampaignLogic) GetCampaign(id int64) (*model.CampaignModel, error) {
	var campaign model.CampaignModel
	if err := c.db.First(&campaign, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCampaignNotFound
		}
		return nil, fmt.Errorf("获取募捐活动失败: %w", err)
	}

	return &campaign, nil
}

// GetCampaigns 获取募捐活动列表
func (c *CampaignLogic) GetCampaigns(ngoId int64, page, pageSize int) ([]model.CampaignModel, int64, error) {
	var campaigns []model.CampaignModel
	var total int64

	query := c.db.Model(&model.CampaignModel{})
	if ngoId > 0 {
		query = query.Where("ngo_id = ?", ngoId)
	}

	// 获取总数
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("获取活动总数失败: %w", err)
	}

	// 分页查询
	offset := (page - 1) * pageSize
	if err := query.Offset(offset).Limit(pageSize).Order("created_at DESC").Find(&campaigns).Error; err != nil {
		return nil, 0, fmt.Errorf("获取活动列表失败: %w", err)
	}

	return campaigns, total, nil
}

// UpdateCampaign 管理员编辑活动基本信息，不允许修改已筹金额
func (c *CampaignLogic) UpdateCampaign(id int64, updates *model.CampaignModel) error {
	var campaign model.CampaignModel
	if err := c.db.First(&campaign, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCampaignNotFound
		}
		return err
	}

	fields := map[string]interface{}{}
	if updates.Title != "" {
		fields["title"] = updates.Title
	}
	if updates.Description != "" {
		fields["description"] = updates.Description
	}
	if updates.ImageURL != "" {
		fields["image_url"] = updates.ImageURL
	}
	if updates.Category != "" {
		fields["category"] = updates.Category
	}
	if updates.TargetAmount > 0 {
		fields["target_amount"] = updates.TargetAmount
	}
	if !updates.StartTime.IsZero() {
		fields["start_time"] = updates.StartTime
	}
	if updates.Status != "" {
		fields["status"] = updates.Status
	}
	if len(fields) == 0 {
		return nil
	}

	return c.db.Model(&campaign).Updates(fields).Error
}

// ApplyDonation 将捐赠金额累加到活动已筹金额
// 使用单条原子UPDATE，并发捐赠不会丢失增量
func (c *CampaignLogic) ApplyDonation(campaignId int64, amount float64) error {
	if amount < 0 {
		return errors.New("累加金额不能为负数")
	}

	result := c.db.Model(&model.CampaignModel{}).
		Where("id = ?", campaignId).
		Update("raised_amount", gorm.Expr("raised_amount + ?", amount))
	if result.Error != nil {
		return fmt.Errorf("更新已筹金额失败: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrCampaignNotFound
	}

	return nil
}

// RecountRaisedAmount 按终态捐赠重算已筹金额
// 捐赠写入与金额累加是两次独立写入，中间失败会导致少计，由定时任务调用本方法修复
func (c *CampaignLogic) RecountRaisedAmount(campaignId int64) error {
	var total float64
	err := c.db.Model(&model.DonationModel{}).
		Where("campaign_id = ? AND state IN ?", campaignId, []model.DonationState{
			model.DonationStateCompleted,
			model.DonationStateApproved,
		}).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	if err != nil {
		return fmt.Errorf("汇总捐赠金额失败: %w", err)
	}

	result := c.db.Model(&model.CampaignModel{}).
		Where("id = ?", campaignId).
		Update("raised_amount", total)
	if result.Error != nil {
		return fmt.Errorf("更新已筹金额失败: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrCampaignNotFound
	}

	return nil
}

// GetCampaignStats 获取活动捐赠统计信息
func (c *CampaignLogic) GetCampaignStats(campaignId int64) (map[string]interface{}, error) {
	var stats struct {
		TotalDonations int64
		TotalAmount    float64
		UniqueDonors   int64
		AverageAmount  float64
	}

	terminal := []model.DonationState{
		model.DonationStateCompleted,
		model.DonationStateApproved,
	}

	// 总捐赠笔数
	if err := c.db.Model(&model.DonationModel{}).Where("campaign_id = ? AND state IN ?", campaignId, terminal).Count(&stats.TotalDonations).Error; err != nil {
		return nil, fmt.Errorf("获取总捐赠笔数失败: %w", err)
	}

	// 总捐赠金额
	if err := c.db.Model(&model.DonationModel{}).Where("campaign_id = ? AND state IN ?", campaignId, terminal).Select("COALESCE(SUM(amount), 0)").Scan(&stats.TotalAmount).Error; err != nil {
		return nil, fmt.Errorf("获取总捐赠金额失败: %w", err)
	}

	// 唯一捐赠人数量
	if err := c.db.Model(&model.DonationModel{}).Where("campaign_id = ? AND state IN ?", campaignId, terminal).Select("COUNT(DISTINCT donor_email)").Scan(&stats.UniqueDonors).Error; err != nil {
		return nil, fmt.Errorf("获取唯一捐赠人数量失败: %w", err)
	}

	// 平均捐赠金额
	if stats.TotalDonations > 0 {
		stats.AverageAmount = stats.TotalAmount / float64(stats.TotalDonations)
	}

	return map[string]interface{}{
		"total_donations": stats.TotalDonations,
		"total_amount":    stats.TotalAmount,
		"unique_donors":   stats.UniqueDonors,
		"average_amount":  stats.AverageAmount,
	}, nil
}

package logic

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hetref/ngo-connect-service/internal/logger"
	"github.com/hetref/ngo-connect-service/internal/model"
	"github.com/hetref/ngo-connect-service/internal/notify"
	"gorm.io/gorm"
)

// ApprovalLogic 捐赠确认业务逻辑
//
// 状态机: pending -> approved / pending -> rejected，终态不可再变更。
// 只有会话邮箱与记录捐赠人邮箱一致的用户才能查看或处理确认。
type ApprovalLogic struct {
	db            *gorm.DB
	campaignLogic *CampaignLogic
	notifier      Notifier
}

// NewApprovalLogic 创建捐赠确认业务逻辑
func NewApprovalLogic(db *gorm.DB, campaignLogic *CampaignLogic, notifier Notifier) *ApprovalLogic {
	return &ApprovalLogic{
		db:            db,
		campaignLogic: campaignLogic,
		notifier:      notifier,
	}
}

// GetApproval 获取确认记录，ID不存在与身份不符是两种不同的错误
func (a *ApprovalLogic) GetApproval(id, sessionEmail string) (*model.DonationApprovalModel, error) {
	var approval model.DonationApprovalModel
	if err := a.db.First(&approval, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApprovalNotFound
		}
		return nil, fmt.Errorf("获取确认记录失败: %w", err)
	}

	if !strings.EqualFold(approval.DonorEmail, sessionEmail) {
		return nil, ErrNotDonor
	}

	return &approval, nil
}

// Approve 捐赠人确认捐赠，捐赠转为approved并累加活动已筹金额
// 重复确认返回ErrAlreadyDecided，金额不会重复累加
func (a *ApprovalLogic) Approve(id, sessionEmail string) (*model.DonationApprovalModel, error) {
	return a.decide(id, sessionEmail, model.ApprovalDecisionApproved)
}

// Reject 捐赠人拒绝捐赠，不产生任何金额累加
func (a *ApprovalLogic) Reject(id, sessionEmail string) (*model.DonationApprovalModel, error) {
	return a.decide(id, sessionEmail, model.ApprovalDecisionRejected)
}

// decide 处理确认决定
func (a *ApprovalLogic) decide(id, sessionEmail string, decision model.ApprovalDecision) (*model.DonationApprovalModel, error) {
	approval, err := a.GetApproval(id, sessionEmail)
	if err != nil {
		return nil, err
	}

	if approval.Decision != model.ApprovalDecisionPending {
		return nil, ErrAlreadyDecided
	}

	var donation model.DonationModel
	if err := a.db.First(&donation, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDonationNotFound
		}
		return nil, err
	}

	donationState := model.DonationStateApproved
	if decision == model.ApprovalDecisionRejected {
		donationState = model.DonationStateRejected
	}
	now := time.Now()

	// 开始事务
	tx := a.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	// 只允许从pending转出，并发的第二次确认在这里拿不到行
	result := tx.Model(&model.DonationApprovalModel{}).
		Where("id = ? AND decision = ?", id, model.ApprovalDecisionPending).
		Updates(map[string]interface{}{
			"decision":   decision,
			"decided_at": now,
		})
	if result.Error != nil {
		tx.Rollback()
		return nil, fmt.Errorf("更新确认记录失败: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		tx.Rollback()
		return nil, ErrAlreadyDecided
	}

	if err := tx.Model(&model.DonationModel{}).
		Where("id = ? AND state = ?", id, model.DonationStatePendingApproval).
		Update("state", donationState).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("更新捐赠状态失败: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	approval.Decision = decision
	approval.DecidedAt = &now

	// 确认通过才累加金额，累加失败不回滚确认结果
	if decision == model.ApprovalDecisionApproved && donation.Amount > 0 {
		if err := a.campaignLogic.ApplyDonation(donation.CampaignId, donation.Amount); err != nil {
			logger.Warn("Failed to apply approved donation %s to campaign %d: %v", id, donation.CampaignId, err)
		}
	}

	a.sendResult(approval)

	return approval, nil
}

// sendResult 发送确认结果通知
func (a *ApprovalLogic) sendResult(approval *model.DonationApprovalModel) {
	if a.notifier == nil {
		return
	}

	var ngo model.NgoModel
	ngoName := ""
	if err := a.db.First(&ngo, approval.NgoId).Error; err == nil {
		ngoName = ngo.Name
	}

	data := notify.TemplateData{
		Template:     "approval_result",
		DonorName:    approval.DonorName,
		NgoName:      ngoName,
		Date:         time.Now().Format("2006-01-02"),
		Email:        approval.DonorEmail,
		Phone:        approval.DonorPhone,
		Amount:       approval.Amount,
		Currency:     approval.Currency,
		ResourceDesc: approval.ResourceDesc,
		Decision:     string(approval.Decision),
	}

	a.notifier.Dispatch(notify.ChannelEmail, approval.DonorEmail, data)
	if approval.DonorPhone != "" {
		a.notifier.Dispatch(notify.ChannelWhatsApp, approval.DonorPhone, data)
	}
}

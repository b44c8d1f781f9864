package logic

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hetref/ngo-connect-service/internal/logger"
	"github.com/hetref/ngo-connect-service/internal/model"
	"github.com/hetref/ngo-connect-service/internal/notify"
	"gorm.io/gorm"
)

// DonationLogic 捐赠业务逻辑
type DonationLogic struct {
	db            *gorm.DB
	campaignLogic *CampaignLogic
	notifier      Notifier
	publicURL     string
}

// NewDonationLogic 创建捐赠业务逻辑
func NewDonationLogic(db *gorm.DB, campaignLogic *CampaignLogic, notifier Notifier, publicURL string) *DonationLogic {
	return &DonationLogic{
		db:            db,
		campaignLogic: campaignLogic,
		notifier:      notifier,
		publicURL:     publicURL,
	}
}

// RecordGatewayDonation 记录网关支付完成的捐赠
// 支付结果由客户端回报，服务端未做签名校验。记录后同步累加活动已筹金额，
// 累加失败仅记录日志，不回滚捐赠（接受两次写入之间的不一致，由定时重算修复）
func (d *DonationLogic) RecordGatewayDonation(donation *model.DonationModel) (string, error) {
	if err := d.validateDonation(donation); err != nil {
		return "", err
	}
	if donation.Amount <= 0 {
		return "", errors.New("捐赠金额必须大于0")
	}

	campaign, err := d.loadActiveCampaign(donation.CampaignId)
	if err != nil {
		return "", err
	}

	donation.Id = uuid.NewString()
	donation.NgoId = campaign.NgoId
	donation.Method = model.DonationMethodGateway
	donation.State = model.DonationStateCompleted
	if donation.Currency == "" {
		donation.Currency = campaign.Currency
	}

	if err := d.db.Create(donation).Error; err != nil {
		return "", fmt.Errorf("创建捐赠记录失败: %w", err)
	}

	if err := d.campaignLogic.ApplyDonation(donation.CampaignId, donation.Amount); err != nil {
		logger.Warn("Failed to apply donation %s to campaign %d: %v", donation.Id, donation.CampaignId, err)
	}

	d.sendReceipt(donation, campaign)

	return donation.Id, nil
}

// RecordManualDonation 记录现金/物资捐赠，进入待确认状态
// 捐赠与确认记录共用同一个ID，确认前不计入活动已筹金额
func (d *DonationLogic) RecordManualDonation(donation *model.DonationModel, wantsCertificate bool) (string, error) {
	if err := d.validateDonation(donation); err != nil {
		return "", err
	}

	switch donation.Method {
	case model.DonationMethodCash:
		if donation.Amount <= 0 {
			return "", errors.New("捐赠金额必须大于0")
		}
	case model.DonationMethodResource:
		if donation.ResourceDesc == "" {
			return "", errors.New("物资捐赠必须填写物资说明")
		}
		donation.Amount = 0
	default:
		return "", errors.New("人工确认仅支持现金或物资捐赠")
	}

	campaign, err := d.loadActiveCampaign(donation.CampaignId)
	if err != nil {
		return "", err
	}

	donation.Id = uuid.NewString()
	donation.NgoId = campaign.NgoId
	donation.State = model.DonationStatePendingApproval
	if donation.Currency == "" {
		donation.Currency = campaign.Currency
	}

	approval := model.DonationApprovalModel{
		Id:               donation.Id,
		NgoId:            campaign.NgoId,
		DonorName:        donation.DonorName,
		DonorEmail:       donation.DonorEmail,
		DonorPhone:       donation.DonorPhone,
		Amount:           donation.Amount,
		Currency:         donation.Currency,
		ResourceDesc:     donation.ResourceDesc,
		Method:           donation.Method,
		Decision:         model.ApprovalDecisionPending,
		WantsCertificate: wantsCertificate,
	}

	// 开始事务
	tx := d.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Create(donation).Error; err != nil {
		tx.Rollback()
		return "", fmt.Errorf("创建捐赠记录失败: %w", err)
	}
	if err := tx.Create(&approval).Error; err != nil {
		tx.Rollback()
		return "", fmt.Errorf("创建确认记录失败: %w", err)
	}
	if err := tx.Commit().Error; err != nil {
		return "", err
	}

	d.sendApprovalRequest(donation, campaign)

	return donation.Id, nil
}

// GetDonation 获取捐赠记录
func (d *DonationLogic) GetDonation(id string) (*model.DonationModel, error) {
	var donation model.DonationModel
	if err := d.db.First(&donation, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDonationNotFound
		}
		return nil, fmt.Errorf("获取捐赠记录失败: %w", err)
	}

	return &donation, nil
}

// GetCampaignDonations 获取活动捐赠列表
func (d *DonationLogic) GetCampaignDonations(campaignId int64, page, pageSize int) ([]model.DonationModel, int64, error) {
	var donations []model.DonationModel
	var total int64

	query := d.db.Model(&model.DonationModel{}).Where("campaign_id = ?", campaignId)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("获取捐赠总数失败: %w", err)
	}

	offset := (page - 1) * pageSize
	if err := query.Offset(offset).Limit(pageSize).Order("created_at DESC").Find(&donations).Error; err != nil {
		return nil, 0, fmt.Errorf("获取捐赠列表失败: %w", err)
	}

	return donations, total, nil
}

// validateDonation 校验捐赠基础数据
func (d *DonationLogic) validateDonation(donation *model.DonationModel) error {
	if donation.CampaignId == 0 {
		return errors.New("活动ID不能为空")
	}
	if donation.DonorName == "" {
		return errors.New("捐赠人姓名不能为空")
	}
	if donation.DonorEmail == "" {
		return errors.New("捐赠人邮箱不能为空")
	}
	return nil
}

// loadActiveCampaign 加载进行中的活动
func (d *DonationLogic) loadActiveCampaign(campaignId int64) (*model.CampaignModel, error) {
	var campaign model.CampaignModel
	if err := d.db.First(&campaign, campaignId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCampaignNotFound
		}
		return nil, err
	}

	if campaign.Status != model.CampaignStatusActive {
		return nil, ErrCampaignClosed
	}

	return &campaign, nil
}

// sendReceipt 发送捐赠回执通知
func (d *DonationLogic) sendReceipt(donation *model.DonationModel, campaign *model.CampaignModel) {
	if d.notifier == nil {
		return
	}

	data := notify.TemplateData{
		Template:  "donation_receipt",
		DonorName: donation.DonorName,
		NgoName:   campaign.Title,
		Date:      time.Now().Format("2006-01-02"),
		Email:     donation.DonorEmail,
		Phone:     donation.DonorPhone,
		Amount:    donation.Amount,
		Currency:  donation.Currency,
	}

	d.notifier.Dispatch(notify.ChannelEmail, donation.DonorEmail, data)
	if donation.DonorPhone != "" {
		d.notifier.Dispatch(notify.ChannelWhatsApp, donation.DonorPhone, data)
	}
}

// sendApprovalRequest 发送确认链接通知
func (d *DonationLogic) sendApprovalRequest(donation *model.DonationModel, campaign *model.CampaignModel) {
	if d.notifier == nil {
		return
	}

	data := notify.TemplateData{
		Template:     "approval_request",
		DonorName:    donation.DonorName,
		NgoName:      campaign.Title,
		Date:         time.Now().Format("2006-01-02"),
		Email:        donation.DonorEmail,
		Phone:        donation.DonorPhone,
		Amount:       donation.Amount,
		Currency:     donation.Currency,
		ResourceDesc: donation.ResourceDesc,
		ApprovalLink: fmt.Sprintf("%s/approvals/%s", d.publicURL, donation.Id),
	}

	d.notifier.Dispatch(notify.ChannelEmail, donation.DonorEmail, data)
	if donation.DonorPhone != "" {
		d.notifier.Dispatch(notify.ChannelSMS, donation.DonorPhone, data)
		d.notifier.Dispatch(notify.ChannelWhatsApp, donation.DonorPhone, data)
	}
}

package logic

import "errors"

// 业务错误
var (
	ErrCampaignNotFound = errors.New("募捐活动不存在")
	ErrCampaignClosed   = errors.New("募捐活动不在进行中，无法接受捐赠")
	ErrNgoNotFound      = errors.New("NGO不存在")
	ErrDonationNotFound = errors.New("捐赠记录不存在")
	ErrApprovalNotFound = errors.New("无效的确认ID")
	ErrNotDonor         = errors.New("当前用户不是该捐赠的捐赠人")
	ErrAlreadyDecided   = errors.New("该捐赠确认已处理，不能重复操作")
)

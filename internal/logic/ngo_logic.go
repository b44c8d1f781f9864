package logic

import (
	"errors"
	"fmt"

	"github.com/hetref/ngo-connect-service/internal/model"
	"gorm.io/gorm"
)

// NgoLogic NGO业务逻辑
type NgoLogic struct {
	db *gorm.DB
}

// NewNgoLogic 创建NGO业务逻辑
func NewNgoLogic(db *gorm.DB) *NgoLogic {
	return &NgoLogic{db: db}
}

// CreateNgo 注册NGO
func (n *NgoLogic) CreateNgo(ngo *model.NgoModel) error {
	if ngo.Name == "" {
		return errors.New("NGO名称不能为空")
	}
	if ngo.Email == "" {
		return errors.New("NGO邮箱不能为空")
	}

	if err := n.db.Create(ngo).Error; err != nil {
		return fmt.Errorf("创建NGO失败: %w", err)
	}

	return nil
}

// GetNgo 获取NGO详情
func (n *NgoLogic) GetNgo(id int64) (*model.NgoModel, error) {
	var ngo model.NgoModel
	if err := n.db.First(&ngo, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNgoNotFound
		}
		return nil, fmt.Errorf("获取NGO失败: %w", err)
	}

	return &ngo, nil
}

// UpdateGatewayCredentials 更新NGO自有的支付网关凭证
func (n *NgoLogic) UpdateGatewayCredentials(id int64, keyId, keySecret string) error {
	if keyId == "" || keySecret == "" {
		return errors.New("网关凭证不能为空")
	}

	result := n.db.Model(&model.NgoModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"razorpay_key_id":     keyId,
			"razorpay_key_secret": keySecret,
		})
	if result.Error != nil {
		return fmt.Errorf("更新网关凭证失败: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNgoNotFound
	}

	return nil
}

package payment

import (
	"errors"
	"math"

	"github.com/hetref/ngo-connect-service/internal/model"
)

var (
	ErrInvalidAmount      = errors.New("捐赠金额必须大于0")
	ErrMissingCredentials = errors.New("NGO未配置支付网关凭证")
	ErrGateway            = errors.New("支付网关请求失败")
)

// Order 网关订单
type Order struct {
	Id       string `json:"order_id"`
	Amount   int64  `json:"amount"` // 最小货币单位
	Currency string `json:"currency"`
}

// Gateway 支付网关，订单创建不触及账本
type Gateway interface {
	CreateOrder(ngo *model.NgoModel, amount float64, currency, receipt, donorId string) (*Order, error)
}

// ToMinorUnits 主单位转最小单位，网关要求金额按最小单位传递（×100）
func ToMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

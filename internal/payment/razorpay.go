package payment

import (
	"fmt"

	"github.com/hetref/ngo-connect-service/internal/model"
	razorpay "github.com/razorpay/razorpay-go"
)

// RazorpayGateway Razorpay网关适配器，凭证按NGO逐单创建客户端
type RazorpayGateway struct{}

// NewRazorpayGateway 创建Razorpay网关适配器
func NewRazorpayGateway() *RazorpayGateway {
	return &RazorpayGateway{}
}

// CreateOrder 创建网关订单
func (g *RazorpayGateway) CreateOrder(ngo *model.NgoModel, amount float64, currency, receipt, donorId string) (*Order, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if ngo == nil || !ngo.HasGatewayCredentials() {
		return nil, ErrMissingCredentials
	}

	client := razorpay.NewClient(ngo.RazorpayKeyId, ngo.RazorpayKeySecret)

	data := map[string]interface{}{
		"amount":   ToMinorUnits(amount),
		"currency": currency,
		"receipt":  receipt,
		"notes": map[string]interface{}{
			"userId": donorId,
		},
	}

	body, err := client.Order.Create(data, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}

	orderId, ok := body["id"].(string)
	if !ok {
		return nil, fmt.Errorf("%w: 响应中缺少订单ID", ErrGateway)
	}

	order := &Order{
		Id:       orderId,
		Amount:   ToMinorUnits(amount),
		Currency: currency,
	}
	if v, ok := body["amount"].(float64); ok {
		order.Amount = int64(v)
	}

	return order, nil
}

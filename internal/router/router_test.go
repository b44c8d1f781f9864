package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/hetref/ngo-connect-service/internal/assistant"
	"github.com/hetref/ngo-connect-service/internal/config"
	"github.com/hetref/ngo-connect-service/internal/model"
	"github.com/hetref/ngo-connect-service/internal/notify"
	"github.com/hetref/ngo-connect-service/internal/payment"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

const testSecret = "router-test-secret"

type nopNotifier struct{}

func (nopNotifier) Dispatch(channel notify.Channel, recipient string, data notify.TemplateData) {}

func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(
		&model.NgoModel{},
		&model.CampaignModel{},
		&model.DonationModel{},
		&model.DonationApprovalModel{},
		&model.DeliveryRecordModel{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	cfg := &config.Config{
		Server: config.ServerConfig{Port: "8080", Mode: "debug", PublicURL: "http://localhost:8080"},
		Auth:   config.AuthConfig{JWTSecret: testSecret},
	}

	r := Setup(db, nopNotifier{}, payment.NewRazorpayGateway(), assistant.NewClient(cfg.Assistant), cfg)
	return r, db
}

func mintToken(t *testing.T, email string) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"email": email})
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func doJSON(r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func seed(t *testing.T, db *gorm.DB) *model.CampaignModel {
	t.Helper()

	ngo := &model.NgoModel{Name: "希望之光", Email: "contact@hope.org"}
	if err := db.Create(ngo).Error; err != nil {
		t.Fatalf("failed to seed ngo: %v", err)
	}
	campaign := &model.CampaignModel{
		Title:        "乡村图书馆建设",
		TargetAmount: 10000,
		Currency:     "INR",
		StartTime:    time.Now().Add(-time.Hour),
		Status:       model.CampaignStatusActive,
		NgoId:        ngo.Id,
	}
	if err := db.Create(campaign).Error; err != nil {
		t.Fatalf("failed to seed campaign: %v", err)
	}
	return campaign
}

func TestHealth(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(r, http.MethodGet, "/health", "", nil)
	if w.Code != http.StatusOK {
		t.Errorf("health status = %d, want 200", w.Code)
	}
}

func TestGatewayDonationOverHTTP(t *testing.T) {
	r, db := newTestRouter(t)
	campaign := seed(t, db)

	w := doJSON(r, http.MethodPost, "/api/v1/donations", "", map[string]interface{}{
		"campaignId":       campaign.Id,
		"donorName":        "李四",
		"donorEmail":       "lisi@example.com",
		"amount":           500,
		"gatewayOrderId":   "order_1",
		"gatewayPaymentId": "pay_1",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("record donation status = %d, body %s", w.Code, w.Body.String())
	}

	var saved model.CampaignModel
	if err := db.First(&saved, campaign.Id).Error; err != nil {
		t.Fatalf("failed to load campaign: %v", err)
	}
	if saved.RaisedAmount != 500 {
		t.Errorf("raised_amount = %v, want 500", saved.RaisedAmount)
	}
}

func TestGatewayDonationRejectsMalformedPayload(t *testing.T) {
	r, db := newTestRouter(t)
	campaign := seed(t, db)

	// 缺少网关订单信息、非法金额等在边界处拒绝
	badPayloads := []map[string]interface{}{
		{"campaignId": campaign.Id, "donorName": "a", "donorEmail": "a@x.com", "amount": 500},
		{"campaignId": campaign.Id, "donorName": "a", "donorEmail": "not-an-email", "amount": 500, "gatewayOrderId": "o", "gatewayPaymentId": "p"},
		{"campaignId": campaign.Id, "donorName": "a", "donorEmail": "a@x.com", "amount": -5, "gatewayOrderId": "o", "gatewayPaymentId": "p"},
	}
	for i, payload := range badPayloads {
		if w := doJSON(r, http.MethodPost, "/api/v1/donations", "", payload); w.Code != http.StatusBadRequest {
			t.Errorf("payload %d: status = %d, want 400", i, w.Code)
		}
	}
}

func TestApprovalFlowOverHTTP(t *testing.T) {
	r, db := newTestRouter(t)
	campaign := seed(t, db)

	// 提交现金捐赠
	w := doJSON(r, http.MethodPost, "/api/v1/donations/manual", "", map[string]interface{}{
		"campaignId": campaign.Id,
		"donorName":  "李四",
		"donorEmail": "lisi@example.com",
		"method":     "cash",
		"amount":     1000,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("manual donation status = %d, body %s", w.Code, w.Body.String())
	}

	var created struct {
		Data struct {
			DonationID string `json:"donationId"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	id := created.Data.DonationID

	donorToken := mintToken(t, "lisi@example.com")
	otherToken := mintToken(t, "other@example.com")

	// 未登录 -> 401
	if w := doJSON(r, http.MethodGet, "/api/v1/approvals/"+id, "", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated: status = %d, want 401", w.Code)
	}

	// 已登录但身份不符 -> 403
	if w := doJSON(r, http.MethodGet, "/api/v1/approvals/"+id, otherToken, nil); w.Code != http.StatusForbidden {
		t.Errorf("wrong donor: status = %d, want 403", w.Code)
	}
	if w := doJSON(r, http.MethodPost, "/api/v1/approvals/"+id+"/approve", otherToken, nil); w.Code != http.StatusForbidden {
		t.Errorf("wrong donor approve: status = %d, want 403", w.Code)
	}

	// 无效ID -> 404
	if w := doJSON(r, http.MethodGet, "/api/v1/approvals/no-such-id", donorToken, nil); w.Code != http.StatusNotFound {
		t.Errorf("unknown id: status = %d, want 404", w.Code)
	}

	// 本人确认 -> 200
	if w := doJSON(r, http.MethodPost, "/api/v1/approvals/"+id+"/approve", donorToken, nil); w.Code != http.StatusOK {
		t.Errorf("approve: status = %d, body %s", w.Code, w.Body.String())
	}

	// 重复确认 -> 409
	if w := doJSON(r, http.MethodPost, "/api/v1/approvals/"+id+"/approve", donorToken, nil); w.Code != http.StatusConflict {
		t.Errorf("double approve: status = %d, want 409", w.Code)
	}

	var saved model.CampaignModel
	if err := db.First(&saved, campaign.Id).Error; err != nil {
		t.Fatalf("failed to load campaign: %v", err)
	}
	if saved.RaisedAmount != 1000 {
		t.Errorf("raised_amount = %v, want 1000", saved.RaisedAmount)
	}
}

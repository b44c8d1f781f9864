package logic

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hetref/ngo-connect-service/internal/model"
	"github.com/hetref/ngo-connect-service/internal/notify"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// newTestDB 每个测试使用独立的内存数据库
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

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

	return db
}

// fakeNotifier 记录分发调用，不实际发送
type fakeNotifier struct {
	mu         sync.Mutex
	Dispatches []fakeDispatch
}

type fakeDispatch struct {
	Channel   notify.Channel
	Recipient string
	Template  string
}

func (f *fakeNotifier) Dispatch(channel notify.Channel, recipient string, data notify.TemplateData) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Dispatches = append(f.Dispatches, fakeDispatch{
		Channel:   channel,
		Recipient: recipient,
		Template:  data.Template,
	})
}

func (f *fakeNotifier) count(template string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, d := range f.Dispatches {
		if d.Template == template {
			n++
		}
	}
	return n
}

func seedNgo(t *testing.T, db *gorm.DB) *model.NgoModel {
	t.Helper()

	ngo := &model.NgoModel{
		Name:  "希望之光",
		Email: "contact@hope.org",
		Phone: "+911234567890",
	}
	if err := db.Create(ngo).Error; err != nil {
		t.Fatalf("failed to seed ngo: %v", err)
	}
	return ngo
}

func seedCampaign(t *testing.T, db *gorm.DB, ngoId int64, target float64) *model.CampaignModel {
	t.Helper()

	campaign := &model.CampaignModel{
		Title:        "乡村图书馆建设",
		Description:  "为乡村学校建设图书馆",
		TargetAmount: target,
		Currency:     "INR",
		StartTime:    time.Now().Add(-24 * time.Hour),
		Status:       model.CampaignStatusActive,
		NgoId:        ngoId,
	}
	if err := db.Create(campaign).Error; err != nil {
		t.Fatalf("failed to seed campaign: %v", err)
	}
	return campaign
}

func campaignRaised(t *testing.T, db *gorm.DB, id int64) float64 {
	t.Helper()

	var campaign model.CampaignModel
	if err := db.First(&campaign, id).Error; err != nil {
		t.Fatalf("failed to load campaign %d: %v", id, err)
	}
	return campaign.RaisedAmount
}

package logic

import (
	"errors"
	"testing"

	"github.com/hetref/ngo-connect-service/internal/model"
)

// submitManual 走正常入口创建待确认捐赠
func submitManual(t *testing.T, donationLogic *DonationLogic, campaignId int64, email string, amount float64) string {
	t.Helper()

	donation := model.DonationModel{
		CampaignId: campaignId,
		DonorName:  "李四",
		DonorEmail: email,
		Amount:     amount,
		Method:     model.DonationMethodCash,
	}
	id, err := donationLogic.RecordManualDonation(&donation, false)
	if err != nil {
		t.Fatalf("RecordManualDonation failed: %v", err)
	}
	return id
}

func TestApproveHappyPath(t *testing.T) {
	db := newTestDB(t)
	ngo := seedNgo(t, db)
	campaign := seedCampaign(t, db, ngo.Id, 10000)

	notifier := &fakeNotifier{}
	campaignLogic := NewCampaignLogic(db)
	donationLogic := NewDonationLogic(db, campaignLogic, notifier, testPublicURL)
	approvalLogic := NewApprovalLogic(db, campaignLogic, notifier)

	id := submitManual(t, donationLogic, campaign.Id, "lisi@example.com", 1000)

	approval, err := approvalLogic.Approve(id, "lisi@example.com")
	if err != nil {
		t.Fatalf("Approve failed: %v", err)
	}
	if approval.Decision != model.ApprovalDecisionApproved {
		t.Errorf("decision = %s, want approved", approval.Decision)
	}
	if approval.DecidedAt == nil {
		t.Error("decided_at should be set")
	}

	// 捐赠转为approved并累加金额
	donation, err := donationLogic.GetDonation(id)
	if err != nil {
		t.Fatalf("GetDonation failed: %v", err)
	}
	if donation.State != model.DonationStateApproved {
		t.Errorf("donation state = %s, want approved", donation.State)
	}
	if got := campaignRaised(t, db, campaign.Id); got != 1000 {
		t.Errorf("raised_amount = %v, want 1000", got)
	}

	// 确认结果通知已分发
	if notifier.count("approval_result") == 0 {
		t.Error("expected approval_result notification")
	}
}

func TestApproveIsIdempotentSafe(t *testing.T) {
	db := newTestDB(t)
	ngo := seedNgo(t, db)
	campaign := seedCampaign(t, db, ngo.Id, 10000)

	campaignLogic := NewCampaignLogic(db)
	donationLogic := NewDonationLogic(db, campaignLogic, &fakeNotifier{}, testPublicURL)
	approvalLogic := NewApprovalLogic(db, campaignLogic, &fakeNotifier{})

	id := submitManual(t, donationLogic, campaign.Id, "lisi@example.com", 1000)

	if _, err := approvalLogic.Approve(id, "lisi@example.com"); err != nil {
		t.Fatalf("first Approve failed: %v", err)
	}

	// 第二次确认必须被拒绝，金额不得重复累加
	if _, err := approvalLogic.Approve(id, "lisi@example.com"); !errors.Is(err, ErrAlreadyDecided) {
		t.Errorf("second Approve = %v, want ErrAlreadyDecided", err)
	}
	if got := campaignRaised(t, db, campaign.Id); got != 1000 {
		t.Errorf("raised_amount = %v, want 1000 after double approve", got)
	}

	// 已确认的记录也不能再拒绝
	if _, err := approvalLogic.Reject(id, "lisi@example.com"); !errors.Is(err, ErrAlreadyDecided) {
		t.Errorf("Reject after approve = %v, want ErrAlreadyDecided", err)
	}
}

func TestRejectNeverAggregates(t *testing.T) {
	db := newTestDB(t)
	ngo := seedNgo(t, db)
	campaign := seedCampaign(t, db, ngo.Id, 10000)

	campaignLogic := NewCampaignLogic(db)
	donationLogic := NewDonationLogic(db, campaignLogic, &fakeNotifier{}, testPublicURL)
	approvalLogic := NewApprovalLogic(db, campaignLogic, &fakeNotifier{})

	id := submitManual(t, donationLogic, campaign.Id, "lisi@example.com", 1000)

	approval, err := approvalLogic.Reject(id, "lisi@example.com")
	if err != nil {
		t.Fatalf("Reject failed: %v", err)
	}
	if approval.Decision != model.ApprovalDecisionRejected {
		t.Errorf("decision = %s, want rejected", approval.Decision)
	}

	donation, err := donationLogic.GetDonation(id)
	if err != nil {
		t.Fatalf("GetDonation failed: %v", err)
	}
	if donation.State != model.DonationStateRejected {
		t.Errorf("donation state = %s, want rejected", donation.State)
	}
	if got := campaignRaised(t, db, campaign.Id); got != 0 {
		t.Errorf("raised_amount = %v, want 0 after reject", got)
	}
}

func TestApprovalUnknownId(t *testing.T) {
	db := newTestDB(t)
	approvalLogic := NewApprovalLogic(db, NewCampaignLogic(db), &fakeNotifier{})

	// 不存在的ID必须是明确的无效ID错误，而不是空状态
	if _, err := approvalLogic.GetApproval("no-such-id", "a@x.com"); !errors.Is(err, ErrApprovalNotFound) {
		t.Errorf("GetApproval = %v, want ErrApprovalNotFound", err)
	}
	if _, err := approvalLogic.Approve("no-such-id", "a@x.com"); !errors.Is(err, ErrApprovalNotFound) {
		t.Errorf("Approve = %v, want ErrApprovalNotFound", err)
	}
}

func TestApprovalDonorMismatch(t *testing.T) {
	db := newTestDB(t)
	ngo := seedNgo(t, db)
	campaign := seedCampaign(t, db, ngo.Id, 10000)

	campaignLogic := NewCampaignLogic(db)
	donationLogic := NewDonationLogic(db, campaignLogic, &fakeNotifier{}, testPublicURL)
	approvalLogic := NewApprovalLogic(db, campaignLogic, &fakeNotifier{})

	id := submitManual(t, donationLogic, campaign.Id, "lisi@example.com", 1000)

	// 邮箱不一致的已登录用户一律拒绝访问
	if _, err := approvalLogic.GetApproval(id, "other@example.com"); !errors.Is(err, ErrNotDonor) {
		t.Errorf("GetApproval = %v, want ErrNotDonor", err)
	}
	if _, err := approvalLogic.Approve(id, "other@example.com"); !errors.Is(err, ErrNotDonor) {
		t.Errorf("Approve = %v, want ErrNotDonor", err)
	}
	if got := campaignRaised(t, db, campaign.Id); got != 0 {
		t.Errorf("raised_amount = %v, want 0", got)
	}

	// 邮箱比较忽略大小写
	if _, err := approvalLogic.GetApproval(id, "LiSi@Example.com"); err != nil {
		t.Errorf("GetApproval with case-insensitive email = %v, want nil", err)
	}
}

// TestDonationLifecycleScenario 完整场景：
// 网关捐赠500 -> completed且raised=500；现金捐赠1000 -> 待确认raised不变；
// 确认 -> approved且raised=1500；重复确认 -> 拒绝且raised不变
func TestDonationLifecycleScenario(t *testing.T) {
	db := newTestDB(t)
	ngo := seedNgo(t, db)
	campaign := seedCampaign(t, db, ngo.Id, 10000)

	notifier := &fakeNotifier{}
	campaignLogic := NewCampaignLogic(db)
	donationLogic := NewDonationLogic(db, campaignLogic, notifier, testPublicURL)
	approvalLogic := NewApprovalLogic(db, campaignLogic, notifier)

	// 网关捐赠500
	gateway := model.DonationModel{
		CampaignId:       campaign.Id,
		DonorName:        "李四",
		DonorEmail:       "lisi@example.com",
		Amount:           500,
		GatewayOrderId:   "order_1",
		GatewayPaymentId: "pay_1",
	}
	gatewayId, err := donationLogic.RecordGatewayDonation(&gateway)
	if err != nil {
		t.Fatalf("RecordGatewayDonation failed: %v", err)
	}
	saved, _ := donationLogic.GetDonation(gatewayId)
	if saved.State != model.DonationStateCompleted {
		t.Fatalf("gateway donation state = %s, want completed", saved.State)
	}
	if got := campaignRaised(t, db, campaign.Id); got != 500 {
		t.Fatalf("raised_amount = %v, want 500", got)
	}

	// 现金捐赠1000，确认前不计入
	cashId := submitManual(t, donationLogic, campaign.Id, "lisi@example.com", 1000)
	if got := campaignRaised(t, db, campaign.Id); got != 500 {
		t.Fatalf("raised_amount = %v, want 500 while pending", got)
	}

	// 确认后计入
	if _, err := approvalLogic.Approve(cashId, "lisi@example.com"); err != nil {
		t.Fatalf("Approve failed: %v", err)
	}
	if got := campaignRaised(t, db, campaign.Id); got != 1500 {
		t.Fatalf("raised_amount = %v, want 1500", got)
	}

	// 重复确认不重复计入
	if _, err := approvalLogic.Approve(cashId, "lisi@example.com"); !errors.Is(err, ErrAlreadyDecided) {
		t.Fatalf("second Approve = %v, want ErrAlreadyDecided", err)
	}
	if got := campaignRaised(t, db, campaign.Id); got != 1500 {
		t.Fatalf("raised_amount = %v, want 1500 after double approve", got)
	}
}

package donations

import (
	"errors"
	"regexp"
	"sync"
	"testing"

	"github.com/mpgepmc/welfare_backend/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type sentEmail struct {
	ToName  string
	ToEmail string
	Subject string
	HTML    string
}

type recordingNotifier struct {
	mu    sync.Mutex
	sends []sentEmail
}

func (n *recordingNotifier) Send(toName, toEmail, subject, htmlContent string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sends = append(n.sends, sentEmail{toName, toEmail, subject, htmlContent})
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.sends)
}

func (n *recordingNotifier) last() sentEmail {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.sends[len(n.sends)-1]
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&models.Donation{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func newTestManager(t *testing.T) (*Manager, *recordingNotifier) {
	t.Helper()
	notifier := &recordingNotifier{}
	return NewManager(setupTestDB(t), notifier, "admin@example.com"), notifier
}

var orderNumberPattern = regexp.MustCompile(`^MPGepmc-[A-Z0-9]{6}$`)

func TestInitiateCreatesPendingDonation(t *testing.T) {
	manager, notifier := newTestManager(t)

	donation, err := manager.Initiate(500.00, PaymentMethodBankTransfer)
	if err != nil {
		t.Fatalf("Initiate returned error: %v", err)
	}
	if donation.Status != models.DonationPending {
		t.Errorf("status = %s, want PENDING", donation.Status)
	}
	if !orderNumberPattern.MatchString(donation.OrderNumber) {
		t.Errorf("order number %q does not match expected format", donation.OrderNumber)
	}
	if donation.Amount != 500.00 {
		t.Errorf("amount = %f, want 500.00", donation.Amount)
	}
	if notifier.count() != 0 {
		t.Errorf("Initiate sent %d notifications, want 0", notifier.count())
	}
}

func TestInitiateOrderNumbersAreUnique(t *testing.T) {
	manager, _ := newTestManager(t)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		donation, err := manager.Initiate(100, PaymentMethodBankTransfer)
		if err != nil {
			t.Fatalf("Initiate #%d returned error: %v", i, err)
		}
		if seen[donation.OrderNumber] {
			t.Fatalf("duplicate order number generated: %s", donation.OrderNumber)
		}
		seen[donation.OrderNumber] = true
	}
}

func TestInitiateRejectsUnavailableMethods(t *testing.T) {
	manager, _ := newTestManager(t)

	for _, method := range []string{"paypal", "card", ""} {
		_, err := manager.Initiate(100, method)
		if !errors.Is(err, ErrMethodUnavailable) {
			t.Errorf("Initiate(%q) error = %v, want ErrMethodUnavailable", method, err)
		}
	}

	var count int64
	manager.db.Model(&models.Donation{}).Count(&count)
	if count != 0 {
		t.Errorf("rejected methods created %d records, want 0", count)
	}
}

func TestInitiateRejectsNonPositiveAmounts(t *testing.T) {
	manager, _ := newTestManager(t)

	for _, amount := range []float64{0, -10} {
		_, err := manager.Initiate(amount, PaymentMethodBankTransfer)
		if !errors.Is(err, ErrInvalidAmount) {
			t.Errorf("Initiate(%f) error = %v, want ErrInvalidAmount", amount, err)
		}
	}

	var count int64
	manager.db.Model(&models.Donation{}).Count(&count)
	if count != 0 {
		t.Errorf("rejected amounts created %d records, want 0", count)
	}
}

func validVerification() VerificationInput {
	return VerificationInput{
		FullName:      "Jane Doe",
		Email:         "jane@example.com",
		TransactionID: "TXN123",
		SlipPath:      "MPGepmc-TEST01.jpg",
	}
}

func TestSubmitVerificationMovesToAwaiting(t *testing.T) {
	manager, notifier := newTestManager(t)

	donation, err := manager.Initiate(500, PaymentMethodBankTransfer)
	if err != nil {
		t.Fatalf("Initiate returned error: %v", err)
	}

	updated, err := manager.SubmitVerification(donation.OrderNumber, validVerification())
	if err != nil {
		t.Fatalf("SubmitVerification returned error: %v", err)
	}
	if updated.Status != models.DonationAwaitingVerification {
		t.Errorf("status = %s, want AWAITING_VERIFICATION", updated.Status)
	}
	if updated.FullName != "Jane Doe" || updated.Email != "jane@example.com" {
		t.Errorf("donor identity not attached: %+v", updated)
	}

	if notifier.count() != 1 {
		t.Fatalf("admin notifications sent = %d, want 1", notifier.count())
	}
	if notifier.last().ToEmail != "admin@example.com" {
		t.Errorf("notification went to %s, want the admin contact", notifier.last().ToEmail)
	}
}

func TestSubmitVerificationRejectsSecondSubmission(t *testing.T) {
	manager, _ := newTestManager(t)

	donation, _ := manager.Initiate(500, PaymentMethodBankTransfer)
	if _, err := manager.SubmitVerification(donation.OrderNumber, validVerification()); err != nil {
		t.Fatalf("first SubmitVerification returned error: %v", err)
	}

	_, err := manager.SubmitVerification(donation.OrderNumber, validVerification())
	if !errors.Is(err, ErrAlreadyInProgress) {
		t.Errorf("second SubmitVerification error = %v, want ErrAlreadyInProgress", err)
	}
}

func TestSubmitVerificationUnknownOrderNumber(t *testing.T) {
	manager, _ := newTestManager(t)

	_, err := manager.SubmitVerification("MPGepmc-ZZZZZZ", validVerification())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestSubmitVerificationRequiresSlip(t *testing.T) {
	manager, _ := newTestManager(t)

	donation, _ := manager.Initiate(500, PaymentMethodBankTransfer)
	input := validVerification()
	input.SlipPath = ""

	_, err := manager.SubmitVerification(donation.OrderNumber, input)
	if !errors.Is(err, ErrMissingEvidence) {
		t.Errorf("error = %v, want ErrMissingEvidence", err)
	}

	current, _ := manager.Get(donation.OrderNumber)
	if current.Status != models.DonationPending {
		t.Errorf("status mutated to %s on rejected submission", current.Status)
	}
}

func TestMarkOutcomeNotifiesDonorOnce(t *testing.T) {
	manager, notifier := newTestManager(t)

	donation, _ := manager.Initiate(500, PaymentMethodBankTransfer)
	manager.SubmitVerification(donation.OrderNumber, validVerification())
	adminNotifications := notifier.count()

	updated, changed, err := manager.MarkOutcome(donation.OrderNumber, models.DonationCompleted)
	if err != nil {
		t.Fatalf("MarkOutcome returned error: %v", err)
	}
	if !changed {
		t.Error("first MarkOutcome reported changed = false")
	}
	if updated.Status != models.DonationCompleted {
		t.Errorf("status = %s, want COMPLETED", updated.Status)
	}
	if notifier.count() != adminNotifications+1 {
		t.Fatalf("donor notifications sent = %d, want 1", notifier.count()-adminNotifications)
	}
	if notifier.last().ToEmail != "jane@example.com" {
		t.Errorf("notification went to %s, want the donor", notifier.last().ToEmail)
	}

	// Same outcome again: write succeeds, no second email.
	_, changed, err = manager.MarkOutcome(donation.OrderNumber, models.DonationCompleted)
	if err != nil {
		t.Fatalf("second MarkOutcome returned error: %v", err)
	}
	if changed {
		t.Error("second MarkOutcome reported changed = true")
	}
	if notifier.count() != adminNotifications+1 {
		t.Errorf("repeated MarkOutcome sent an extra notification")
	}
}

func TestMarkOutcomeFailedNotifiesDonor(t *testing.T) {
	manager, notifier := newTestManager(t)

	donation, _ := manager.Initiate(500, PaymentMethodBankTransfer)
	manager.SubmitVerification(donation.OrderNumber, validVerification())

	_, changed, err := manager.MarkOutcome(donation.OrderNumber, models.DonationFailed)
	if err != nil {
		t.Fatalf("MarkOutcome returned error: %v", err)
	}
	if !changed {
		t.Error("MarkOutcome reported changed = false")
	}
	last := notifier.last()
	if last.ToEmail != "jane@example.com" {
		t.Errorf("failure notification went to %s, want the donor", last.ToEmail)
	}
}

func TestMarkOutcomeRejectsInvalidOutcome(t *testing.T) {
	manager, _ := newTestManager(t)

	donation, _ := manager.Initiate(500, PaymentMethodBankTransfer)

	for _, outcome := range []models.DonationStatus{models.DonationPending, models.DonationAwaitingVerification, "REFUNDED"} {
		_, _, err := manager.MarkOutcome(donation.OrderNumber, outcome)
		if !errors.Is(err, ErrInvalidOutcome) {
			t.Errorf("MarkOutcome(%s) error = %v, want ErrInvalidOutcome", outcome, err)
		}
	}
}

func TestMarkOutcomeUnknownOrderNumber(t *testing.T) {
	manager, _ := newTestManager(t)

	_, _, err := manager.MarkOutcome("MPGepmc-ZZZZZZ", models.DonationCompleted)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestMarkOutcomeSkipsDonorWithoutEmail(t *testing.T) {
	manager, notifier := newTestManager(t)

	// Admin finalizes a donation that never went through verification.
	donation, _ := manager.Initiate(500, PaymentMethodBankTransfer)

	_, changed, err := manager.MarkOutcome(donation.OrderNumber, models.DonationFailed)
	if err != nil {
		t.Fatalf("MarkOutcome returned error: %v", err)
	}
	if !changed {
		t.Error("MarkOutcome reported changed = false")
	}
	if notifier.count() != 0 {
		t.Errorf("sent %d notifications for a donation with no donor email, want 0", notifier.count())
	}
}

func TestFullLifecycle(t *testing.T) {
	manager, notifier := newTestManager(t)

	donation, err := manager.Initiate(500.00, PaymentMethodBankTransfer)
	if err != nil {
		t.Fatalf("Initiate returned error: %v", err)
	}
	if donation.Status != models.DonationPending || !orderNumberPattern.MatchString(donation.OrderNumber) {
		t.Fatalf("unexpected initial record: %+v", donation)
	}

	updated, err := manager.SubmitVerification(donation.OrderNumber, validVerification())
	if err != nil {
		t.Fatalf("SubmitVerification returned error: %v", err)
	}
	if updated.Status != models.DonationAwaitingVerification {
		t.Fatalf("status after verification = %s", updated.Status)
	}
	if notifier.count() != 1 || notifier.last().ToEmail != "admin@example.com" {
		t.Fatal("admin was not notified of the submission")
	}

	final, changed, err := manager.MarkOutcome(donation.OrderNumber, models.DonationCompleted)
	if err != nil {
		t.Fatalf("MarkOutcome returned error: %v", err)
	}
	if final.Status != models.DonationCompleted || !changed {
		t.Fatalf("unexpected final record: %+v changed=%v", final, changed)
	}
	if notifier.count() != 2 || notifier.last().ToEmail != "jane@example.com" {
		t.Fatal("donor was not notified of completion")
	}
}

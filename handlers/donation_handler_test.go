package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/mpgepmc/welfare_backend/database"
	"github.com/mpgepmc/welfare_backend/donations"
	"github.com/mpgepmc/welfare_backend/models"
	"github.com/mpgepmc/welfare_backend/storage"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testNotifier struct {
	mu    sync.Mutex
	count int
}

func (n *testNotifier) Send(toName, toEmail, subject, htmlContent string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.count++
}

func (n *testNotifier) sends() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.count
}

// setupTestApp wires the handlers against a file-backed sqlite database so
// concurrent requests serialize instead of failing on the shared-cache lock.
func setupTestApp(t *testing.T) (*fiber.App, *testNotifier) {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db") + "?_busy_timeout=5000"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	err = db.AutoMigrate(
		&models.Donation{},
		&models.BankAccount{},
		&models.WelfareService{},
		&models.ServiceRequest{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	database.DB = db

	slips, err := storage.NewSlipStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create slip store: %v", err)
	}

	notifier := &testNotifier{}
	InitDonationHandlers(donations.NewManager(db, notifier, "admin@example.com"), slips)

	app := fiber.New()
	app.Post("/api/v1/donations", InitiateDonation)
	app.Get("/api/v1/donations/:orderNumber", GetDonationCheckout)
	app.Post("/api/v1/donations/:orderNumber/verification", SubmitDonationVerification)
	app.Post("/api/v1/admin/bank-accounts/:accountId/activate", AdminActivateBankAccount)
	return app, notifier
}

func initiateDonation(t *testing.T, app *fiber.App, body string) (*models.Donation, int) {
	t.Helper()

	req := httptest.NewRequest("POST", "/api/v1/donations", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusCreated {
		return nil, resp.StatusCode
	}
	var donation models.Donation
	if err := json.NewDecoder(resp.Body).Decode(&donation); err != nil {
		t.Fatalf("failed to decode donation: %v", err)
	}
	return &donation, resp.StatusCode
}

func postVerification(t *testing.T, app *fiber.App, orderNumber, slipName string) int {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	writer.WriteField("full_name", "Jane Doe")
	writer.WriteField("email", "jane@example.com")
	writer.WriteField("transaction_id", "TXN123")
	part, err := writer.CreateFormFile("transaction_slip", slipName)
	if err != nil {
		t.Fatalf("failed to build multipart body: %v", err)
	}
	io.WriteString(part, "slip bytes")
	writer.Close()

	req := httptest.NewRequest("POST", "/api/v1/donations/"+orderNumber+"/verification", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	return resp.StatusCode
}

func TestDonationFlowOverHTTP(t *testing.T) {
	app, notifier := setupTestApp(t)

	donation, status := initiateDonation(t, app, `{"amount": 500.00, "payment_method": "bank_transfer"}`)
	if status != fiber.StatusCreated {
		t.Fatalf("initiate status = %d, want 201", status)
	}
	if donation.Status != models.DonationPending {
		t.Fatalf("initial status = %s, want PENDING", donation.Status)
	}

	// Checkout info is available and warns that no bank account is active.
	req := httptest.NewRequest("GET", "/api/v1/donations/"+donation.OrderNumber, nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("checkout request failed: %v", err)
	}
	var checkout map[string]any
	json.NewDecoder(resp.Body).Decode(&checkout)
	resp.Body.Close()
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("checkout status = %d, want 200", resp.StatusCode)
	}
	if _, ok := checkout["warning"]; !ok {
		t.Error("checkout without an active bank account did not warn")
	}

	if status := postVerification(t, app, donation.OrderNumber, "slip.jpg"); status != fiber.StatusOK {
		t.Fatalf("verification status = %d, want 200", status)
	}
	if notifier.sends() != 1 {
		t.Errorf("admin notifications after verification = %d, want 1", notifier.sends())
	}

	// The donation has left PENDING; a second submission is rejected.
	if status := postVerification(t, app, donation.OrderNumber, "slip.jpg"); status != fiber.StatusConflict {
		t.Errorf("second verification status = %d, want 409", status)
	}
}

func TestInitiateRejectionsOverHTTP(t *testing.T) {
	app, _ := setupTestApp(t)

	if _, status := initiateDonation(t, app, `{"amount": 0, "payment_method": "bank_transfer"}`); status != fiber.StatusBadRequest {
		t.Errorf("zero amount status = %d, want 400", status)
	}
	if _, status := initiateDonation(t, app, `{"amount": 100, "payment_method": "paypal"}`); status != fiber.StatusBadRequest {
		t.Errorf("paypal status = %d, want 400", status)
	}

	var count int64
	database.DB.Model(&models.Donation{}).Count(&count)
	if count != 0 {
		t.Errorf("rejected initiations created %d records, want 0", count)
	}
}

func TestVerificationRejectsBadExtensionOverHTTP(t *testing.T) {
	app, _ := setupTestApp(t)

	donation, _ := initiateDonation(t, app, `{"amount": 250, "payment_method": "bank_transfer"}`)

	if status := postVerification(t, app, donation.OrderNumber, "statement.docx"); status != fiber.StatusBadRequest {
		t.Errorf("docx slip status = %d, want 400", status)
	}

	current, err := Donations.Get(donation.OrderNumber)
	if err != nil {
		t.Fatalf("failed to refetch donation: %v", err)
	}
	if current.Status != models.DonationPending {
		t.Errorf("status after rejected slip = %s, want PENDING", current.Status)
	}

	if status := postVerification(t, app, donation.OrderNumber, "proof.pdf"); status != fiber.StatusOK {
		t.Errorf("pdf slip status = %d, want 200", status)
	}
}

func TestActivateBankAccountKeepsSingleActive(t *testing.T) {
	app, _ := setupTestApp(t)

	var accounts []models.BankAccount
	for i := 0; i < 5; i++ {
		account := models.BankAccount{
			AccountTitle:  fmt.Sprintf("Account %d", i),
			AccountNumber: fmt.Sprintf("0000-%d", i),
			BankName:      "Test Bank",
		}
		if err := database.DB.Create(&account).Error; err != nil {
			t.Fatalf("failed to create account: %v", err)
		}
		accounts = append(accounts, account)
	}

	activate := func(id string) int {
		req := httptest.NewRequest("POST", "/api/v1/admin/bank-accounts/"+id+"/activate", nil)
		resp, err := app.Test(req, -1)
		if err != nil {
			t.Errorf("activate request failed: %v", err)
			return 0
		}
		resp.Body.Close()
		return resp.StatusCode
	}

	// A activates, then B: exactly B remains active.
	if status := activate(accounts[0].ID.String()); status != fiber.StatusOK {
		t.Fatalf("first activation status = %d", status)
	}
	if status := activate(accounts[1].ID.String()); status != fiber.StatusOK {
		t.Fatalf("second activation status = %d", status)
	}

	var active []models.BankAccount
	database.DB.Where("is_active = ?", true).Find(&active)
	if len(active) != 1 || active[0].ID != accounts[1].ID {
		t.Fatalf("active accounts after sequential activations = %d", len(active))
	}

	// Concurrent activations must never leave two accounts active.
	var wg sync.WaitGroup
	for _, account := range accounts {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			activate(id)
		}(account.ID.String())
	}
	wg.Wait()

	var activeCount int64
	database.DB.Model(&models.BankAccount{}).Where("is_active = ?", true).Count(&activeCount)
	if activeCount > 1 {
		t.Fatalf("concurrent activations left %d active accounts", activeCount)
	}
}

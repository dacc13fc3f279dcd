package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/mpgepmc/welfare_backend/database"
	"github.com/mpgepmc/welfare_backend/donations"
	"github.com/mpgepmc/welfare_backend/models"
	"github.com/mpgepmc/welfare_backend/storage"
)

var Donations *donations.Manager
var Slips *storage.SlipStore

// InitDonationHandlers wires the lifecycle manager and slip store used by
// the donation endpoints. Called once from main.
func InitDonationHandlers(manager *donations.Manager, slips *storage.SlipStore) {
	Donations = manager
	Slips = slips
}

type InitiateDonationRequest struct {
	Amount        float64 `json:"amount" validate:"required,gt=0"`
	PaymentMethod string  `json:"payment_method" validate:"required,oneof=bank_transfer paypal card"`
}

func InitiateDonation(c *fiber.Ctx) error {
	var req InitiateDonationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	donation, err := Donations.Initiate(req.Amount, req.PaymentMethod)
	if err != nil {
		if errors.Is(err, donations.ErrMethodUnavailable) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "The selected payment method is not available yet. Please choose Direct Bank Transfer."})
		}
		if errors.Is(err, donations.ErrInvalidAmount) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Please enter a donation amount greater than zero."})
		}
		log.Printf("🔥 Failed to initiate donation: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create donation"})
	}

	return c.Status(fiber.StatusCreated).JSON(donation)
}

// GetDonationCheckout returns the donation together with the active bank
// account the donor should transfer to.
func GetDonationCheckout(c *fiber.Ctx) error {
	orderNumber := c.Params("orderNumber")

	donation, err := Donations.Get(orderNumber)
	if err != nil {
		if errors.Is(err, donations.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Donation not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	response := fiber.Map{"donation": donation}

	var account models.BankAccount
	if err := database.DB.Where("is_active = ?", true).First(&account).Error; err != nil {
		response["bank_account"] = nil
		response["warning"] = "Bank details are not configured. Please add and activate a bank account in the admin panel to accept donations."
	} else {
		response["bank_account"] = account
	}

	if donation.Status != models.DonationPending {
		response["message"] = "This donation is already being processed. For updates, please contact us."
	}

	return c.JSON(response)
}

type VerificationRequest struct {
	FullName            string  `form:"full_name" validate:"required,min=2,max=150"`
	Email               string  `form:"email" validate:"required,email"`
	TransactionID       string  `form:"transaction_id" validate:"required,max=100"`
	SenderAccountName   *string `form:"sender_account_name" validate:"omitempty,max=150"`
	SenderAccountNumber *string `form:"sender_account_number" validate:"omitempty,max=50"`
}

// SubmitDonationVerification accepts the donor's transfer details plus the
// uploaded slip as a multipart form.
func SubmitDonationVerification(c *fiber.Ctx) error {
	orderNumber := c.Params("orderNumber")

	var req VerificationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse form"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	// Reject before the slip is written to disk; the manager re-checks the
	// state inside its transaction.
	donation, err := Donations.Get(orderNumber)
	if err != nil {
		if errors.Is(err, donations.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Donation not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	if donation.Status != models.DonationPending {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "This donation is already being processed. For updates, please contact us."})
	}

	file, err := c.FormFile("transaction_slip")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "A transaction slip upload is required"})
	}

	slipName, err := Slips.Save(file, orderNumber)
	if err != nil {
		if errors.Is(err, storage.ErrBadExtension) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Please upload a clear JPG, JPEG, PNG, or PDF of the transaction receipt."})
		}
		log.Printf("🔥 Failed to store slip for %s: %v", orderNumber, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to store transaction slip"})
	}

	updated, err := Donations.SubmitVerification(orderNumber, donations.VerificationInput{
		FullName:            req.FullName,
		Email:               req.Email,
		TransactionID:       req.TransactionID,
		SenderAccountName:   req.SenderAccountName,
		SenderAccountNumber: req.SenderAccountNumber,
		SlipPath:            slipName,
	})
	if err != nil {
		switch {
		case errors.Is(err, donations.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Donation not found"})
		case errors.Is(err, donations.ErrAlreadyInProgress):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "This donation is already being processed. For updates, please contact us."})
		default:
			log.Printf("🔥 Failed to submit verification for %s: %v", orderNumber, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to submit verification"})
		}
	}

	return c.JSON(updated)
}

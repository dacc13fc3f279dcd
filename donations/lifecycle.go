// Package donations owns the donation record's state transitions: a donor
// initiates a bank-transfer donation, submits proof of payment, and an
// administrator marks the final outcome. Status only moves forward on the
// public operations (PENDING → AWAITING_VERIFICATION); administrators set
// the terminal states directly.
package donations

import (
	"errors"
	"fmt"

	"github.com/mpgepmc/welfare_backend/models"
	"github.com/mpgepmc/welfare_backend/notifications"
	"github.com/mpgepmc/welfare_backend/utils"
	"gorm.io/gorm"
)

const PaymentMethodBankTransfer = "bank_transfer"

// Notifier delivers a single email without blocking the caller.
type Notifier interface {
	Send(toName, toEmail, subject, htmlContent string)
}

// AsyncNotifier hands each email to a background goroutine; delivery is
// best-effort and failures are logged inside the notifications package.
type AsyncNotifier struct{}

func (AsyncNotifier) Send(toName, toEmail, subject, htmlContent string) {
	go notifications.SendEmail(toName, toEmail, subject, htmlContent)
}

type Manager struct {
	db         *gorm.DB
	notifier   Notifier
	adminEmail string
}

func NewManager(db *gorm.DB, notifier Notifier, adminEmail string) *Manager {
	return &Manager{db: db, notifier: notifier, adminEmail: adminEmail}
}

// Initiate creates a PENDING donation with a freshly generated order number.
// Only direct bank transfer is currently supported; any other method is
// rejected before a record is created.
func (m *Manager) Initiate(amount float64, paymentMethod string) (*models.Donation, error) {
	if paymentMethod != PaymentMethodBankTransfer {
		return nil, ErrMethodUnavailable
	}
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	var donation models.Donation
	err := m.db.Transaction(func(tx *gorm.DB) error {
		orderNumber, err := utils.GenerateUniqueOrderNumber(tx)
		if err != nil {
			return err
		}
		donation = models.Donation{
			Amount:      amount,
			OrderNumber: orderNumber,
			Status:      models.DonationPending,
		}
		return tx.Create(&donation).Error
	})
	if err != nil {
		return nil, err
	}
	return &donation, nil
}

type VerificationInput struct {
	FullName            string
	Email               string
	TransactionID       string
	SenderAccountName   *string
	SenderAccountNumber *string
	SlipPath            string
}

// SubmitVerification attaches the donor's identity, bank reference and slip
// to a PENDING donation and moves it to AWAITING_VERIFICATION. The
// organization's admin contact is notified; the donor is not.
func (m *Manager) SubmitVerification(orderNumber string, input VerificationInput) (*models.Donation, error) {
	if input.SlipPath == "" {
		return nil, ErrMissingEvidence
	}

	var donation models.Donation
	err := m.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_number = ?", orderNumber).First(&donation).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if donation.Status != models.DonationPending {
			return ErrAlreadyInProgress
		}

		donation.FullName = input.FullName
		donation.Email = input.Email
		donation.TransactionID = input.TransactionID
		donation.SenderAccountName = input.SenderAccountName
		donation.SenderAccountNumber = input.SenderAccountNumber
		donation.SlipPath = input.SlipPath
		donation.Status = models.DonationAwaitingVerification
		return tx.Save(&donation).Error
	})
	if err != nil {
		return nil, err
	}

	if m.adminEmail != "" {
		m.notifier.Send(
			"Donations Team",
			m.adminEmail,
			fmt.Sprintf("Donation Verification Submitted: %s", donation.OrderNumber),
			verificationSubmittedHTML(&donation),
		)
	}
	return &donation, nil
}

// MarkOutcome sets a donation to COMPLETED or FAILED. The donor is emailed
// only when the persisted status actually changed on this write, so marking
// the same outcome twice sends at most one notification. The bool result
// reports whether the status changed.
func (m *Manager) MarkOutcome(orderNumber string, outcome models.DonationStatus) (*models.Donation, bool, error) {
	if outcome != models.DonationCompleted && outcome != models.DonationFailed {
		return nil, false, ErrInvalidOutcome
	}

	var donation models.Donation
	var changed bool
	err := m.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_number = ?", orderNumber).First(&donation).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		changed = donation.Status != outcome
		donation.Status = outcome
		return tx.Save(&donation).Error
	})
	if err != nil {
		return nil, false, err
	}

	if changed && donation.Email != "" {
		switch outcome {
		case models.DonationCompleted:
			m.notifier.Send(
				donation.FullName,
				donation.Email,
				fmt.Sprintf("Your Donation is Complete! (%s)", donation.OrderNumber),
				donationCompletedHTML(&donation),
			)
		case models.DonationFailed:
			m.notifier.Send(
				donation.FullName,
				donation.Email,
				fmt.Sprintf("Update Regarding Your Donation (%s)", donation.OrderNumber),
				donationFailedHTML(&donation),
			)
		}
	}
	return &donation, changed, nil
}

// Get fetches a donation by its order number.
func (m *Manager) Get(orderNumber string) (*models.Donation, error) {
	var donation models.Donation
	if err := m.db.Where("order_number = ?", orderNumber).First(&donation).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &donation, nil
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DonationStatus string

const (
	DonationPending              DonationStatus = "PENDING"
	DonationAwaitingVerification DonationStatus = "AWAITING_VERIFICATION"
	DonationCompleted            DonationStatus = "COMPLETED"
	DonationFailed               DonationStatus = "FAILED"
)

type Donation struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Amount      float64        `gorm:"type:numeric(12,2);not null" json:"amount"`
	OrderNumber string         `gorm:"size:20;not null;unique" json:"order_number"`
	Status      DonationStatus `gorm:"size:30;not null;default:'PENDING'" json:"status"`

	FullName            string  `gorm:"size:150" json:"full_name"`
	Email               string  `gorm:"size:255" json:"email"`
	TransactionID       string  `gorm:"size:100" json:"transaction_id"`
	SenderAccountName   *string `gorm:"size:150" json:"sender_account_name"`
	SenderAccountNumber *string `gorm:"size:50" json:"sender_account_number"`
	SlipPath            string  `gorm:"size:255" json:"slip_path"`
	ReceiptURL          *string `gorm:"size:255" json:"receipt_url"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (d *Donation) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

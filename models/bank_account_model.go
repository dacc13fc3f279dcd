package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BankAccount struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	AccountTitle  string    `gorm:"size:200;not null" json:"account_title"`
	AccountNumber string    `gorm:"size:50;not null" json:"account_number"`
	BankName      string    `gorm:"size:100;not null" json:"bank_name"`
	IBAN          string    `gorm:"size:50" json:"iban"`
	IsActive      bool      `gorm:"default:false" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *BankAccount) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ServiceRequest struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	ServiceID   *uuid.UUID `gorm:"index" json:"service_id"`
	FullName    string     `gorm:"size:100;not null" json:"full_name"`
	Email       string     `gorm:"size:255;not null" json:"email"`
	PhoneNumber *string    `gorm:"size:20" json:"phone_number"`
	Message     string     `gorm:"type:text;not null" json:"message"`
	IsProcessed bool       `gorm:"default:false" json:"is_processed"`

	Service WelfareService `gorm:"foreignkey:ServiceID" json:"service,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *ServiceRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

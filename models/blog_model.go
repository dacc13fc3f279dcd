package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BlogPost struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Title        string    `gorm:"size:250;not null;unique" json:"title"`
	Slug         string    `gorm:"size:250;unique" json:"slug"`
	ShortSummary string    `gorm:"size:1500" json:"short_summary"`
	Content      string    `gorm:"type:text" json:"content"`
	ImageURL     *string   `gorm:"size:255" json:"image_url"`
	IsPublished  bool      `gorm:"default:true" json:"is_published"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *BlogPost) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

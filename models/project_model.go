package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectCategory string

const (
	CategoryAIEducation  ProjectCategory = "AI_EDUCATION"
	CategoryAIAwareness  ProjectCategory = "AI_AWARENESS"
	CategoryHumanWelfare ProjectCategory = "HUMAN_WELFARE"
	CategoryDevelopment  ProjectCategory = "DEVELOPMENT"
)

type Project struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Title            string          `gorm:"size:250;not null;unique" json:"title"`
	Slug             string          `gorm:"size:250;unique" json:"slug"`
	Category         ProjectCategory `gorm:"size:50;not null;default:'HUMAN_WELFARE'" json:"category"`
	ShortDescription string          `gorm:"size:1500" json:"short_description"`
	FullDescription  string          `gorm:"type:text" json:"full_description"`
	ImageURL         *string         `gorm:"size:255" json:"image_url"`
	IsPublished      bool            `gorm:"default:true" json:"is_published"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WelfareService struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name             string    `gorm:"size:200;not null;unique" json:"name"`
	Slug             string    `gorm:"size:200;unique" json:"slug"`
	ShortDescription *string   `gorm:"size:500" json:"short_description"`
	FullDescription  *string   `gorm:"type:text" json:"full_description"`
	ImageURL         *string   `gorm:"size:255" json:"image_url"`
	IsActive         bool      `gorm:"default:true" json:"is_active"`
	HasPackages      bool      `gorm:"default:false" json:"has_packages"`

	Packages []ServicePackage `gorm:"foreignkey:ServiceID" json:"packages,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *WelfareService) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

type ServicePackage struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ServiceID   uuid.UUID `gorm:"not null;index" json:"service_id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Slug        string    `gorm:"size:100;index" json:"slug"`
	Description *string   `gorm:"type:text" json:"description"`
	Price       float64   `gorm:"type:numeric(10,2);not null" json:"price"`
	Duration    *string   `gorm:"size:100" json:"duration"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	SortOrder   int       `gorm:"default:0" json:"sort_order"`

	Features []ServiceFeature `gorm:"foreignkey:PackageID" json:"features,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *ServicePackage) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

type ServiceFeature struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	PackageID   uuid.UUID `gorm:"not null;index" json:"package_id"`
	FeatureText string    `gorm:"type:text;not null" json:"feature_text"`
	IsIncluded  bool      `gorm:"default:true" json:"is_included"`
	SortOrder   int       `gorm:"default:0" json:"sort_order"`
}

func (f *ServiceFeature) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

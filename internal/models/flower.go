package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category : famille de fleurs (roses, orchidées, bouquets de saison...)
type Category struct {
	ID        uint           `gorm:"primarykey" json:"-"`
	PublicID  string         `gorm:"size:36;uniqueIndex;not null" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name        string `gorm:"size:128;uniqueIndex;not null" json:"name"`
	Description string `gorm:"size:512" json:"description"`
}

func (Category) TableName() string { return "categories" }

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.PublicID == "" {
		c.PublicID = uuid.NewString()
	}
	return nil
}

// Flower : fiche catalogue. Le prix et le stock vendables vivent sur
// SupplierListing — la fleur n'est que la fiche botanique.
type Flower struct {
	ID        uint           `gorm:"primarykey" json:"-"`
	PublicID  string         `gorm:"size:36;uniqueIndex;not null" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name        string   `gorm:"size:128;not null;index" json:"name"`
	Description string   `gorm:"size:2048" json:"description"`
	Color       string   `gorm:"size:64" json:"color"`
	ImageURLs   []string `gorm:"serializer:json" json:"image_urls"`
	Tags        []string `gorm:"serializer:json" json:"tags"`

	CategoryID uint      `gorm:"not null;index" json:"-"`
	Category   *Category `json:"category,omitempty"`

	Listings []SupplierListing `gorm:"foreignKey:FlowerID" json:"listings,omitempty"`
}

func (Flower) TableName() string { return "flowers" }

func (f *Flower) BeforeCreate(tx *gorm.DB) error {
	if f.PublicID == "" {
		f.PublicID = uuid.NewString()
	}
	return nil
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Statuts d'une annonce fournisseur
const (
	ListingPending   = "pending"
	ListingAvailable = "available"
	ListingSoldOut   = "soldout"
	ListingWithdrawn = "withdrawn"
)

type Supplier struct {
	ID        uint           `gorm:"primarykey" json:"-"`
	PublicID  string         `gorm:"size:36;uniqueIndex;not null" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name    string `gorm:"size:128;not null" json:"name"`
	Email   string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Phone   string `gorm:"size:32" json:"phone"`
	Address string `gorm:"size:255" json:"address"`

	// Compte utilisateur qui gère ce fournisseur (rôle supplier)
	OwnerID uint `gorm:"index" json:"-"`

	Listings []SupplierListing `gorm:"foreignKey:SupplierID" json:"listings,omitempty"`
}

func (Supplier) TableName() string { return "suppliers" }

func (s *Supplier) BeforeCreate(tx *gorm.DB) error {
	if s.PublicID == "" {
		s.PublicID = uuid.NewString()
	}
	return nil
}

// SupplierListing : l'unité vendable. AvailableQuantity ne descend jamais
// sous zéro — la déduction passe par un UPDATE conditionnel (services/stock.go).
type SupplierListing struct {
	ID        uint           `gorm:"primarykey" json:"-"`
	PublicID  string         `gorm:"size:36;uniqueIndex;not null" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	SupplierID uint      `gorm:"not null;index" json:"-"`
	Supplier   *Supplier `json:"supplier,omitempty"`
	FlowerID   uint      `gorm:"not null;index" json:"-"`
	Flower     *Flower   `json:"flower,omitempty"`

	AvailableQuantity int    `gorm:"not null;default:0" json:"available_quantity"`
	UnitPrice         int64  `gorm:"not null" json:"unit_price"` // centimes
	Status            string `gorm:"size:32;not null;default:pending" json:"status"`
}

func (SupplierListing) TableName() string { return "supplier_listings" }

func (l *SupplierListing) BeforeCreate(tx *gorm.DB) error {
	if l.PublicID == "" {
		l.PublicID = uuid.NewString()
	}
	return nil
}

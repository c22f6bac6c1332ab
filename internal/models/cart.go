package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Cart : un seul panier actif (non validé) par utilisateur, créé
// paresseusement au premier accès.
type Cart struct {
	ID        uint           `gorm:"primarykey" json:"-"`
	PublicID  string         `gorm:"size:36;uniqueIndex;not null" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	UserID     uint       `gorm:"not null;index" json:"-"`
	CheckedOut bool       `gorm:"not null;default:false;index" json:"checked_out"`
	Items      []CartItem `gorm:"foreignKey:CartID" json:"items"`
}

func (Cart) TableName() string { return "carts" }

func (c *Cart) BeforeCreate(tx *gorm.DB) error {
	if c.PublicID == "" {
		c.PublicID = uuid.NewString()
	}
	return nil
}

// Total en centimes du panier
func (c *Cart) Total() int64 {
	var total int64
	for _, it := range c.Items {
		total += it.LineTotal
	}
	return total
}

// CartItem : le prix unitaire est figé au premier ajout, jamais relu
// depuis l'annonce lors d'un incrément. Suppression = soft delete.
type CartItem struct {
	ID        uint           `gorm:"primarykey" json:"-"`
	PublicID  string         `gorm:"size:36;uniqueIndex;not null" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	CartID    uint             `gorm:"not null;index" json:"-"`
	ListingID uint             `gorm:"not null;index" json:"-"`
	Listing   *SupplierListing `json:"listing,omitempty"`

	FlowerName string `gorm:"size:128;not null" json:"flower_name"`
	ImageURL   string `gorm:"size:512" json:"image_url"`
	Quantity   int    `gorm:"not null;default:1" json:"quantity"`
	UnitPrice  int64  `gorm:"not null" json:"unit_price"` // centimes, figé
	LineTotal  int64  `gorm:"not null" json:"line_total"` // Quantity × UnitPrice
}

func (CartItem) TableName() string { return "cart_items" }

func (i *CartItem) BeforeCreate(tx *gorm.DB) error {
	if i.PublicID == "" {
		i.PublicID = uuid.NewString()
	}
	return nil
}

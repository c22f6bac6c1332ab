package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User : compte local (email + mot de passe Argon2id) ou social (provider OAuth)
type User struct {
	ID        uint           `gorm:"primarykey" json:"-"`
	PublicID  string         `gorm:"size:36;uniqueIndex;not null" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name       string `gorm:"size:128;not null" json:"name"`
	Email      string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password   string `gorm:"size:255" json:"-"` // vide pour les comptes OAuth
	Role       Role   `gorm:"size:32;not null;default:customer" json:"role"`
	Provider   string `gorm:"size:32;not null;default:local" json:"provider"`
	ProviderID string `gorm:"size:128;index" json:"-"`

	Phone   string `gorm:"size:32" json:"phone"`
	Address string `gorm:"size:255" json:"address"`
}

func (User) TableName() string { return "users" }

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.PublicID == "" {
		u.PublicID = uuid.NewString()
	}
	return nil
}

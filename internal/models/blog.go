package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BlogStatus string

const (
	BlogDraft     BlogStatus = "draft"
	BlogPending   BlogStatus = "pending"
	BlogPublished BlogStatus = "published"
	BlogRejected  BlogStatus = "rejected"
)

// Blog : contenu éditorial soumis à validation. Le cycle de vie complet
// est dans services/blogflow.go — ne jamais muter Status directement
// depuis un handler.
type Blog struct {
	ID        uint           `gorm:"primarykey" json:"-"`
	PublicID  string         `gorm:"size:36;uniqueIndex;not null" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	AuthorID uint  `gorm:"not null;index" json:"-"`
	Author   *User `json:"author,omitempty"`

	Title    string   `gorm:"size:255;not null" json:"title"`
	Content  string   `gorm:"type:text" json:"content"`
	Tags     []string `gorm:"serializer:json" json:"tags"`
	Category string   `gorm:"size:128" json:"category"`

	Status          BlogStatus `gorm:"size:32;not null;default:draft;index" json:"status"`
	RejectionReason string     `gorm:"size:512" json:"rejection_reason,omitempty"`
	PublishedAt     *time.Time `json:"published_at,omitempty"`

	Comments []Comment `gorm:"foreignKey:BlogID" json:"comments,omitempty"`
}

func (Blog) TableName() string { return "blogs" }

func (b *Blog) BeforeCreate(tx *gorm.DB) error {
	if b.PublicID == "" {
		b.PublicID = uuid.NewString()
	}
	return nil
}

// Comment : arbre via ParentID. La modération masque (IsHidden) au lieu
// de supprimer, pour garder l'arbre cohérent.
type Comment struct {
	ID        uint           `gorm:"primarykey" json:"-"`
	PublicID  string         `gorm:"size:36;uniqueIndex;not null" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	BlogID   uint  `gorm:"not null;index" json:"-"`
	AuthorID uint  `gorm:"not null;index" json:"-"`
	Author   *User `json:"author,omitempty"`

	ParentID *uint  `gorm:"index" json:"-"`
	Content  string `gorm:"size:2048;not null" json:"content"`
	IsHidden bool   `gorm:"not null;default:false" json:"is_hidden"`

	Children []*Comment `gorm:"-" json:"children,omitempty"`
}

func (Comment) TableName() string { return "comments" }

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.PublicID == "" {
		c.PublicID = uuid.NewString()
	}
	return nil
}

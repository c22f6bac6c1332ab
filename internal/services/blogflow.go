package services

import (
	"fmt"
	"strings"
	"time"

	"fleura_back_end/internal/models"

	"gorm.io/gorm"
)

// Cycle de vie d'un blog :
//
//	draft ──SubmitForApproval──▶ pending ──Approve──▶ published
//	  ▲                            │
//	  │                            └──Reject(raison)──▶ rejected
//	  │                                                   │
//	  └────────── Unpublish / édition ────────────────────┘
//
// Toute mutation exige actor == auteur OU rôle admin.

// loadBlog charge un blog par PublicID et vérifie le droit de mutation.
func loadBlog(db *gorm.DB, actor Actor, publicID string) (*models.Blog, error) {
	var blog models.Blog
	if err := db.Where("public_id = ?", publicID).First(&blog).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("blog %s: %w", publicID, ErrNotFound)
		}
		return nil, err
	}
	if blog.AuthorID != actor.ID && !actor.Role.IsAdmin() {
		return nil, fmt.Errorf("blog %s: %w", publicID, ErrForbidden)
	}
	return &blog, nil
}

// SubmitForApproval : draft/rejected → pending. Un blog publié ne peut
// pas être re-soumis tel quel — il faut d'abord le dépublier ou l'éditer.
func SubmitForApproval(db *gorm.DB, actor Actor, publicID string) (*models.Blog, error) {
	blog, err := loadBlog(db, actor, publicID)
	if err != nil {
		return nil, err
	}

	if blog.Status != models.BlogDraft && blog.Status != models.BlogRejected {
		return nil, fmt.Errorf("soumission impossible depuis l'état %q: %w", blog.Status, ErrInvalidOperation)
	}

	blog.Status = models.BlogPending
	if err := db.Save(blog).Error; err != nil {
		return nil, err
	}
	return blog, nil
}

// Approve : admin uniquement, pending → published. Efface la raison de rejet.
func Approve(db *gorm.DB, actor Actor, publicID string) (*models.Blog, error) {
	if !actor.Role.CanModerate() {
		return nil, fmt.Errorf("approbation: %w", ErrForbidden)
	}

	var blog models.Blog
	if err := db.Where("public_id = ?", publicID).First(&blog).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("blog %s: %w", publicID, ErrNotFound)
		}
		return nil, err
	}

	if blog.Status != models.BlogPending {
		return nil, fmt.Errorf("approbation impossible depuis l'état %q: %w", blog.Status, ErrInvalidOperation)
	}

	now := time.Now()
	blog.Status = models.BlogPublished
	blog.RejectionReason = ""
	blog.PublishedAt = &now
	if err := db.Save(&blog).Error; err != nil {
		return nil, err
	}
	return &blog, nil
}

// Reject : admin uniquement, pending → rejected, raison obligatoire.
func Reject(db *gorm.DB, actor Actor, publicID, reason string) (*models.Blog, error) {
	if !actor.Role.CanModerate() {
		return nil, fmt.Errorf("rejet: %w", ErrForbidden)
	}
	if strings.TrimSpace(reason) == "" {
		return nil, fmt.Errorf("la raison du rejet est obligatoire: %w", ErrInvalidOperation)
	}

	var blog models.Blog
	if err := db.Where("public_id = ?", publicID).First(&blog).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("blog %s: %w", publicID, ErrNotFound)
		}
		return nil, err
	}

	if blog.Status != models.BlogPending {
		return nil, fmt.Errorf("rejet impossible depuis l'état %q: %w", blog.Status, ErrInvalidOperation)
	}

	blog.Status = models.BlogRejected
	blog.RejectionReason = reason
	if err := db.Save(&blog).Error; err != nil {
		return nil, err
	}
	return &blog, nil
}

// Publish : auteur/admin, draft → published. Idempotent si déjà publié.
func Publish(db *gorm.DB, actor Actor, publicID string) (*models.Blog, error) {
	blog, err := loadBlog(db, actor, publicID)
	if err != nil {
		return nil, err
	}

	switch blog.Status {
	case models.BlogPublished:
		return blog, nil // déjà publié
	case models.BlogDraft:
		now := time.Now()
		blog.Status = models.BlogPublished
		blog.PublishedAt = &now
		if err := db.Save(blog).Error; err != nil {
			return nil, err
		}
		return blog, nil
	default:
		return nil, fmt.Errorf("publication impossible depuis l'état %q: %w", blog.Status, ErrInvalidOperation)
	}
}

// Unpublish : auteur/admin, n'importe quel état → draft, sans précondition.
func Unpublish(db *gorm.DB, actor Actor, publicID string) (*models.Blog, error) {
	blog, err := loadBlog(db, actor, publicID)
	if err != nil {
		return nil, err
	}

	blog.Status = models.BlogDraft
	blog.PublishedAt = nil
	if err := db.Save(blog).Error; err != nil {
		return nil, err
	}
	return blog, nil
}

// BlogEdit : champs éditables du contenu
type BlogEdit struct {
	Title    string
	Content  string
	Tags     []string
	Category string
}

// EditContent : éditer un blog publié ou rejeté le ramène en draft et
// efface la raison de rejet — toute modification repasse en relecture.
func EditContent(db *gorm.DB, actor Actor, publicID string, edit BlogEdit) (*models.Blog, error) {
	blog, err := loadBlog(db, actor, publicID)
	if err != nil {
		return nil, err
	}

	blog.Title = edit.Title
	blog.Content = edit.Content
	blog.Tags = edit.Tags
	blog.Category = edit.Category

	if blog.Status == models.BlogPublished || blog.Status == models.BlogRejected {
		blog.Status = models.BlogDraft
		blog.RejectionReason = ""
		blog.PublishedAt = nil
	}

	if err := db.Save(blog).Error; err != nil {
		return nil, err
	}
	return blog, nil
}

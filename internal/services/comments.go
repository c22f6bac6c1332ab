package services

import (
	"errors"
	"fmt"

	"fleura_back_end/internal/models"

	"gorm.io/gorm"
)

// SetCommentHidden masque ou rétablit un commentaire. La modération des
// commentaires appartient à l'auteur du blog et aux admins — jamais à
// l'auteur du commentaire.
func SetCommentHidden(db *gorm.DB, actor Actor, blogPublicID, commentPublicID string, hidden bool) (*models.Comment, error) {
	var blog models.Blog
	if err := db.Where("public_id = ?", blogPublicID).First(&blog).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("blog %s: %w", blogPublicID, ErrNotFound)
		}
		return nil, err
	}
	if blog.AuthorID != actor.ID && !actor.Role.IsAdmin() {
		return nil, fmt.Errorf("modération du blog %s: %w", blogPublicID, ErrForbidden)
	}

	var comment models.Comment
	err := db.Where("blog_id = ? AND public_id = ?", blog.ID, commentPublicID).First(&comment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("commentaire %s: %w", commentPublicID, ErrNotFound)
		}
		return nil, err
	}

	comment.IsHidden = hidden
	if err := db.Save(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

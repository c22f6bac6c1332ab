package services

import (
	"errors"
	"testing"

	"fleura_back_end/internal/models"

	"gorm.io/gorm"
)

func seedComment(t *testing.T, db *gorm.DB, blogID, authorID uint) *models.Comment {
	t.Helper()
	comment := models.Comment{
		BlogID:   blogID,
		AuthorID: authorID,
		Content:  "Très joli bouquet !",
	}
	if err := db.Create(&comment).Error; err != nil {
		t.Fatalf("création commentaire: %v", err)
	}
	return &comment
}

func TestSetCommentHiddenByBlogAuthor(t *testing.T) {
	db := newTestDB(t)
	author := seedUser(t, db, models.RoleCustomer)
	commenter := seedUser(t, db, models.RoleCustomer)
	blog := seedBlog(t, db, author.ID, models.BlogPublished)
	comment := seedComment(t, db, blog.ID, commenter.ID)

	actor := Actor{ID: author.ID, Role: models.RoleCustomer}

	hidden, err := SetCommentHidden(db, actor, blog.PublicID, comment.PublicID, true)
	if err != nil {
		t.Fatalf("masquage: %v", err)
	}
	if !hidden.IsHidden {
		t.Error("le commentaire devrait être masqué")
	}

	restored, err := SetCommentHidden(db, actor, blog.PublicID, comment.PublicID, false)
	if err != nil {
		t.Fatalf("rétablissement: %v", err)
	}
	if restored.IsHidden {
		t.Error("le commentaire devrait être rétabli")
	}
}

func TestSetCommentHiddenForbiddenForNonBlogAuthor(t *testing.T) {
	db := newTestDB(t)
	blogAuthor := seedUser(t, db, models.RoleCustomer)
	commenter := seedUser(t, db, models.RoleCustomer)
	blog := seedBlog(t, db, blogAuthor.ID, models.BlogPublished)
	comment := seedComment(t, db, blog.ID, commenter.ID)

	// Même l'auteur du commentaire ne modère pas sur le blog d'autrui
	_, err := SetCommentHidden(db, Actor{ID: commenter.ID, Role: models.RoleCustomer},
		blog.PublicID, comment.PublicID, true)
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("erreur = %v, attendu ErrForbidden", err)
	}

	// Le commentaire n'a pas bougé
	var reloaded models.Comment
	if err := db.First(&reloaded, comment.ID).Error; err != nil {
		t.Fatalf("relecture commentaire: %v", err)
	}
	if reloaded.IsHidden {
		t.Error("le commentaire ne devrait pas être masqué")
	}

	// Un admin, lui, peut modérer le blog d'autrui
	moderated, err := SetCommentHidden(db, Actor{ID: commenter.ID, Role: models.RoleAdmin},
		blog.PublicID, comment.PublicID, true)
	if err != nil {
		t.Fatalf("masquage admin: %v", err)
	}
	if !moderated.IsHidden {
		t.Error("le commentaire devrait être masqué par l'admin")
	}
}

func TestSetCommentHiddenUnknownTargets(t *testing.T) {
	db := newTestDB(t)
	author := seedUser(t, db, models.RoleCustomer)
	blog := seedBlog(t, db, author.ID, models.BlogPublished)
	actor := Actor{ID: author.ID, Role: models.RoleCustomer}

	if _, err := SetCommentHidden(db, actor, blog.PublicID, "inexistant", true); !errors.Is(err, ErrNotFound) {
		t.Errorf("commentaire inconnu: erreur = %v, attendu ErrNotFound", err)
	}
	if _, err := SetCommentHidden(db, actor, "inexistant", "inexistant", true); !errors.Is(err, ErrNotFound) {
		t.Errorf("blog inconnu: erreur = %v, attendu ErrNotFound", err)
	}
}

func TestSetCommentHiddenScopedToBlog(t *testing.T) {
	db := newTestDB(t)
	authorA := seedUser(t, db, models.RoleCustomer)
	authorB := seedUser(t, db, models.RoleCustomer)
	blogA := seedBlog(t, db, authorA.ID, models.BlogPublished)
	blogB := seedBlog(t, db, authorB.ID, models.BlogPublished)
	comment := seedComment(t, db, blogB.ID, authorA.ID)

	// Le commentaire vit sur le blog B : le résoudre via le blog A échoue,
	// même pour l'auteur du blog A.
	_, err := SetCommentHidden(db, Actor{ID: authorA.ID, Role: models.RoleCustomer},
		blogA.PublicID, comment.PublicID, true)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("erreur = %v, attendu ErrNotFound", err)
	}
}

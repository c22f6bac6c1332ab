package blog

import (
	"net/http"

	"fleura_back_end/internal/database"
	"fleura_back_end/internal/middleware"
	"fleura_back_end/internal/models"
	"fleura_back_end/internal/services"
	"fleura_back_end/internal/utils"

	"github.com/gin-gonic/gin"
)

// ================== COMMENTAIRES ==================

// GET /api/blogs/:id/comments — arbre complet, commentaires masqués exclus
func ListComments(c *gin.Context) {
	var blog models.Blog
	if err := database.DB.Where("public_id = ?", c.Param("id")).First(&blog).Error; err != nil {
		utils.Fail(c, http.StatusNotFound, "Blog introuvable")
		return
	}

	var comments []models.Comment
	err := database.DB.Where("blog_id = ? AND is_hidden = ?", blog.ID, false).
		Preload("Author").
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		utils.FailFromError(c, err)
		return
	}

	utils.OK(c, http.StatusOK, "", buildCommentTree(comments))
}

// POST /api/blogs/:id/comments — body {content, parentId?}
// Les commentaires ne sont ouverts que sur les blogs publiés.
func CreateComment(c *gin.Context) {
	actor, _, err := middleware.ResolveActor(c.GetString("user_id"))
	if err != nil {
		utils.FailFromError(c, err)
		return
	}

	var blog models.Blog
	if err := database.DB.Where("public_id = ?", c.Param("id")).First(&blog).Error; err != nil {
		utils.Fail(c, http.StatusNotFound, "Blog introuvable")
		return
	}
	if blog.Status != models.BlogPublished {
		utils.Fail(c, http.StatusBadRequest, "Les commentaires ne sont ouverts que sur les blogs publiés")
		return
	}

	var input struct {
		Content  string `json:"content" binding:"required"`
		ParentID string `json:"parentId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, http.StatusBadRequest, "Contenu requis", err.Error())
		return
	}

	comment := models.Comment{
		BlogID:   blog.ID,
		AuthorID: actor.ID,
		Content:  input.Content,
	}

	if input.ParentID != "" {
		var parent models.Comment
		err := database.DB.Where("blog_id = ? AND public_id = ?", blog.ID, input.ParentID).
			First(&parent).Error
		if err != nil {
			utils.Fail(c, http.StatusNotFound, "Commentaire parent introuvable")
			return
		}
		comment.ParentID = &parent.ID
	}

	if err := database.DB.Create(&comment).Error; err != nil {
		utils.FailFromError(c, err)
		return
	}

	utils.OK(c, http.StatusCreated, "Commentaire publié", comment)
}

// PUT /api/blogs/:id/comments/:commentId/hide (auteur du blog ou admin)
func HideComment(c *gin.Context) {
	setCommentHidden(c, true, "Commentaire masqué")
}

// PUT /api/blogs/:id/comments/:commentId/unhide (auteur du blog ou admin)
func UnhideComment(c *gin.Context) {
	setCommentHidden(c, false, "Commentaire rétabli")
}

func setCommentHidden(c *gin.Context, hidden bool, message string) {
	actor, _, err := middleware.ResolveActor(c.GetString("user_id"))
	if err != nil {
		utils.FailFromError(c, err)
		return
	}

	comment, err := services.SetCommentHidden(database.DB, actor, c.Param("id"), c.Param("commentId"), hidden)
	if err != nil {
		utils.FailFromError(c, err)
		return
	}

	utils.OK(c, http.StatusOK, message, comment)
}

// buildCommentTree reconstruit l'arbre en mémoire. Les réponses dont le
// parent est masqué remontent à la racine plutôt que de disparaître.
func buildCommentTree(comments []models.Comment) []*models.Comment {
	byID := make(map[uint]*models.Comment, len(comments))
	for i := range comments {
		byID[comments[i].ID] = &comments[i]
	}

	roots := make([]*models.Comment, 0)
	for i := range comments {
		node := &comments[i]
		if node.ParentID != nil {
			if parent, ok := byID[*node.ParentID]; ok {
				parent.Children = append(parent.Children, node)
				continue
			}
		}
		roots = append(roots, node)
	}
	return roots
}

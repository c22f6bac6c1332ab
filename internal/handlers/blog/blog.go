package blog

import (
	"log"
	"net/http"

	"fleura_back_end/internal/database"
	"fleura_back_end/internal/middleware"
	"fleura_back_end/internal/models"
	"fleura_back_end/internal/services"
	"fleura_back_end/internal/utils"

	"github.com/gin-gonic/gin"
)

// ================== BLOGS : LECTURE ==================

// GET /api/blogs — uniquement les blogs publiés
func ListPublishedBlogs(c *gin.Context) {
	var blogs []models.Blog
	err := database.DB.Where("status = ?", models.BlogPublished).
		Preload("Author").
		Order("published_at DESC").
		Find(&blogs).Error
	if err != nil {
		utils.FailFromError(c, err)
		return
	}
	utils.OK(c, http.StatusOK, "", blogs)
}

// GET /api/blogs/mine — tous les blogs de l'auteur, tous états confondus
func ListMyBlogs(c *gin.Context) {
	actor, _, err := middleware.ResolveActor(c.GetString("user_id"))
	if err != nil {
		utils.FailFromError(c, err)
		return
	}

	var blogs []models.Blog
	err = database.DB.Where("author_id = ?", actor.ID).
		Order("updated_at DESC").
		Find(&blogs).Error
	if err != nil {
		utils.FailFromError(c, err)
		return
	}
	utils.OK(c, http.StatusOK, "", blogs)
}

// GET /api/blogs/:id — un blog non publié n'est visible que par son
// auteur ou un admin.
func GetBlog(c *gin.Context) {
	var blog models.Blog
	err := database.DB.Where("public_id = ?", c.Param("id")).
		Preload("Author").
		First(&blog).Error
	if err != nil {
		utils.Fail(c, http.StatusNotFound, "Blog introuvable")
		return
	}

	if blog.Status != models.BlogPublished {
		actor, _, err := middleware.ResolveActor(c.GetString("user_id"))
		if err != nil || (blog.AuthorID != actor.ID && !actor.Role.IsAdmin()) {
			utils.Fail(c, http.StatusNotFound, "Blog introuvable")
			return
		}
	}

	utils.OK(c, http.StatusOK, "", blog)
}

// ================== BLOGS : ÉCRITURE ==================

// POST /api/blogs — créé en draft, jamais publié directement
func CreateBlog(c *gin.Context) {
	actor, _, err := middleware.ResolveActor(c.GetString("user_id"))
	if err != nil {
		utils.FailFromError(c, err)
		return
	}

	var input struct {
		Title    string   `json:"title" binding:"required"`
		Content  string   `json:"content" binding:"required"`
		Tags     []string `json:"tags"`
		Category string   `json:"category"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, http.StatusBadRequest, "Titre et contenu requis", err.Error())
		return
	}

	blog := models.Blog{
		AuthorID: actor.ID,
		Title:    input.Title,
		Content:  input.Content,
		Tags:     input.Tags,
		Category: input.Category,
		Status:   models.BlogDraft,
	}
	if err := database.DB.Create(&blog).Error; err != nil {
		utils.FailFromError(c, err)
		return
	}

	utils.OK(c, http.StatusCreated, "Brouillon créé", blog)
}

// PUT /api/blogs/:id — éditer un blog publié ou rejeté le ramène en draft
func UpdateBlog(c *gin.Context) {
	actor, _, err := middleware.ResolveActor(c.GetString("user_id"))
	if err != nil {
		utils.FailFromError(c, err)
		return
	}

	var input struct {
		Title    string   `json:"title" binding:"required"`
		Content  string   `json:"content" binding:"required"`
		Tags     []string `json:"tags"`
		Category string   `json:"category"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, http.StatusBadRequest, "Titre et contenu requis", err.Error())
		return
	}

	blog, err := services.EditContent(database.DB, actor, c.Param("id"), services.BlogEdit{
		Title:    input.Title,
		Content:  input.Content,
		Tags:     input.Tags,
		Category: input.Category,
	})
	if err != nil {
		utils.FailFromError(c, err)
		return
	}

	utils.OK(c, http.StatusOK, "Blog mis à jour", blog)
}

// DELETE /api/blogs/:id (auteur ou admin) — soft delete
func DeleteBlog(c *gin.Context) {
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
	if blog.AuthorID != actor.ID && !actor.Role.IsAdmin() {
		utils.Fail(c, http.StatusForbidden, "Vous n'êtes pas l'auteur de ce blog")
		return
	}

	if err := database.DB.Delete(&blog).Error; err != nil {
		utils.FailFromError(c, err)
		return
	}

	utils.OK(c, http.StatusOK, "Blog supprimé", nil)
}

// ================== WORKFLOW DE VALIDATION ==================

// POST /api/blogs/:id/submit
func SubmitBlog(c *gin.Context) {
	actor, _, err := middleware.ResolveActor(c.GetString("user_id"))
	if err != nil {
		utils.FailFromError(c, err)
		return
	}

	blog, err := services.SubmitForApproval(database.DB, actor, c.Param("id"))
	if err != nil {
		utils.FailFromError(c, err)
		return
	}

	utils.OK(c, http.StatusOK, "Blog soumis pour validation", blog)
}

// POST /api/blogs/:id/publish — publication directe d'un brouillon
func PublishBlog(c *gin.Context) {
	actor, _, err := middleware.ResolveActor(c.GetString("user_id"))
	if err != nil {
		utils.FailFromError(c, err)
		return
	}

	blog, err := services.Publish(database.DB, actor, c.Param("id"))
	if err != nil {
		utils.FailFromError(c, err)
		return
	}

	utils.OK(c, http.StatusOK, "Blog publié", blog)
}

// POST /api/blogs/:id/unpublish
func UnpublishBlog(c *gin.Context) {
	actor, _, err := middleware.ResolveActor(c.GetString("user_id"))
	if err != nil {
		utils.FailFromError(c, err)
		return
	}

	blog, err := services.Unpublish(database.DB, actor, c.Param("id"))
	if err != nil {
		utils.FailFromError(c, err)
		return
	}

	utils.OK(c, http.StatusOK, "Blog dépublié", blog)
}

// ================== MODÉRATION (ADMIN) ==================

// GET /api/admin/blogs/pending
func ListPendingBlogs(c *gin.Context) {
	var blogs []models.Blog
	err := database.DB.Where("status = ?", models.BlogPending).
		Preload("Author").
		Order("updated_at ASC").
		Find(&blogs).Error
	if err != nil {
		utils.FailFromError(c, err)
		return
	}
	utils.OK(c, http.StatusOK, "", blogs)
}

// POST /api/admin/blogs/:id/approve
func ApproveBlog(c *gin.Context) {
	actor, _, err := middleware.ResolveActor(c.GetString("user_id"))
	if err != nil {
		utils.FailFromError(c, err)
		return
	}

	blog, err := services.Approve(database.DB, actor, c.Param("id"))
	if err != nil {
		utils.FailFromError(c, err)
		return
	}

	log.Printf("✅ Blog %q approuvé et publié", blog.Title)
	utils.OK(c, http.StatusOK, "Blog approuvé et publié", blog)
}

// POST /api/admin/blogs/:id/reject — body {reason}, raison obligatoire
func RejectBlog(c *gin.Context) {
	actor, _, err := middleware.ResolveActor(c.GetString("user_id"))
	if err != nil {
		utils.FailFromError(c, err)
		return
	}

	var input struct {
		Reason string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, http.StatusBadRequest, "La raison du rejet est obligatoire", err.Error())
		return
	}

	blog, err := services.Reject(database.DB, actor, c.Param("id"), input.Reason)
	if err != nil {
		utils.FailFromError(c, err)
		return
	}

	log.Printf("⚠️ Blog %q rejeté : %s", blog.Title, input.Reason)
	utils.OK(c, http.StatusOK, "Blog rejeté", blog)
}

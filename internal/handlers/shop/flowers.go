package shop

import (
	"errors"
	"net/http"
	"strconv"

	"fleura_back_end/internal/cache"
	"fleura_back_end/internal/database"
	"fleura_back_end/internal/models"
	"fleura_back_end/internal/services"
	"fleura_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ================== CATALOGUE PUBLIC ==================

// GET /api/flowers?page=1&limit=20&category=<publicId>&sort=name|recent
func ListFlowers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	q := database.DB.Model(&models.Flower{}).Preload("Category").Preload("Listings")

	if catID := c.Query("category"); catID != "" {
		var cat models.Category
		if err := database.DB.Where("public_id = ?", catID).First(&cat).Error; err != nil {
			utils.Fail(c, http.StatusNotFound, "Catégorie introuvable")
			return
		}
		q = q.Where("category_id = ?", cat.ID)
	}

	switch c.DefaultQuery("sort", "recent") {
	case "name":
		q = q.Order("name ASC")
	default:
		q = q.Order("created_at DESC")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		utils.FailFromError(c, err)
		return
	}

	var flowers []models.Flower
	if err := q.Offset((page - 1) * limit).Limit(limit).Find(&flowers).Error; err != nil {
		utils.FailFromError(c, err)
		return
	}

	utils.OK(c, http.StatusOK, "", gin.H{
		"flowers": flowers,
		"page":    page,
		"limit":   limit,
		"total":   total,
	})
}

// GET /api/flowers/:id
func GetFlower(c *gin.Context) {
	flower, err := cache.GetFlowerFromCache(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Fail(c, http.StatusNotFound, "Fleur introuvable")
			return
		}
		utils.FailFromError(c, err)
		return
	}
	utils.OK(c, http.StatusOK, "", flower)
}

// ================== ADMINISTRATION DU CATALOGUE ==================

// POST /api/flowers (admin)
func CreateFlower(c *gin.Context) {
	var input struct {
		Name        string   `json:"name" binding:"required"`
		Description string   `json:"description"`
		Color       string   `json:"color"`
		Tags        []string `json:"tags"`
		CategoryID  string   `json:"categoryId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, http.StatusBadRequest, "Données invalides", err.Error())
		return
	}

	var cat models.Category
	if err := database.DB.Where("public_id = ?", input.CategoryID).First(&cat).Error; err != nil {
		utils.Fail(c, http.StatusNotFound, "Catégorie introuvable")
		return
	}

	flower := models.Flower{
		Name:        input.Name,
		Description: input.Description,
		Color:       input.Color,
		Tags:        input.Tags,
		CategoryID:  cat.ID,
	}
	if err := database.DB.Create(&flower).Error; err != nil {
		utils.FailFromError(c, err)
		return
	}

	go services.IndexFlower(flower)

	utils.OK(c, http.StatusCreated, "Fleur créée", flower)
}

// PUT /api/flowers/:id (admin)
func UpdateFlower(c *gin.Context) {
	var flower models.Flower
	if err := database.DB.Where("public_id = ?", c.Param("id")).First(&flower).Error; err != nil {
		utils.Fail(c, http.StatusNotFound, "Fleur introuvable")
		return
	}

	var input struct {
		Name        string   `json:"name"`
		Description string   `json:"description"`
		Color       string   `json:"color"`
		Tags        []string `json:"tags"`
		CategoryID  string   `json:"categoryId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, http.StatusBadRequest, "Données invalides", err.Error())
		return
	}

	if input.Name != "" {
		flower.Name = input.Name
	}
	if input.Description != "" {
		flower.Description = input.Description
	}
	if input.Color != "" {
		flower.Color = input.Color
	}
	if input.Tags != nil {
		flower.Tags = input.Tags
	}
	if input.CategoryID != "" {
		var cat models.Category
		if err := database.DB.Where("public_id = ?", input.CategoryID).First(&cat).Error; err != nil {
			utils.Fail(c, http.StatusNotFound, "Catégorie introuvable")
			return
		}
		flower.CategoryID = cat.ID
	}

	if err := database.DB.Save(&flower).Error; err != nil {
		utils.FailFromError(c, err)
		return
	}

	cache.InvalidateFlowerCache(flower.PublicID)
	go services.IndexFlower(flower)

	utils.OK(c, http.StatusOK, "Fleur mise à jour", flower)
}

// DELETE /api/flowers/:id (admin) — soft delete
func DeleteFlower(c *gin.Context) {
	var flower models.Flower
	if err := database.DB.Where("public_id = ?", c.Param("id")).First(&flower).Error; err != nil {
		utils.Fail(c, http.StatusNotFound, "Fleur introuvable")
		return
	}

	if err := database.DB.Delete(&flower).Error; err != nil {
		utils.FailFromError(c, err)
		return
	}

	cache.InvalidateFlowerCache(flower.PublicID)
	go services.RemoveFlowerFromIndex(flower.PublicID)

	utils.OK(c, http.StatusOK, "Fleur supprimée", nil)
}

// POST /api/flowers/:id/images (admin, multipart)
func UploadFlowerImage(c *gin.Context) {
	var flower models.Flower
	if err := database.DB.Where("public_id = ?", c.Param("id")).First(&flower).Error; err != nil {
		utils.Fail(c, http.StatusNotFound, "Fleur introuvable")
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		utils.Fail(c, http.StatusBadRequest, "Fichier image manquant")
		return
	}

	url, err := services.UploadFlowerImage(flower.PublicID, file)
	if err != nil {
		utils.FailFromError(c, err)
		return
	}

	flower.ImageURLs = append(flower.ImageURLs, url)
	if err := database.DB.Save(&flower).Error; err != nil {
		utils.FailFromError(c, err)
		return
	}
	cache.InvalidateFlowerCache(flower.PublicID)

	utils.OK(c, http.StatusCreated, "Image ajoutée", gin.H{"url": url})
}

// DELETE /api/flowers/:id/images (admin) — body {url}
func DeleteFlowerImage(c *gin.Context) {
	var flower models.Flower
	if err := database.DB.Where("public_id = ?", c.Param("id")).First(&flower).Error; err != nil {
		utils.Fail(c, http.StatusNotFound, "Fleur introuvable")
		return
	}

	var input struct {
		URL string `json:"url" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, http.StatusBadRequest, "URL manquante")
		return
	}

	kept := flower.ImageURLs[:0]
	found := false
	for _, u := range flower.ImageURLs {
		if u == input.URL {
			found = true
			continue
		}
		kept = append(kept, u)
	}
	if !found {
		utils.Fail(c, http.StatusNotFound, "Image introuvable")
		return
	}

	if err := services.RemoveFlowerImage(input.URL); err != nil {
		utils.FailFromError(c, err)
		return
	}

	flower.ImageURLs = kept
	if err := database.DB.Save(&flower).Error; err != nil {
		utils.FailFromError(c, err)
		return
	}
	cache.InvalidateFlowerCache(flower.PublicID)

	utils.OK(c, http.StatusOK, "Image supprimée", nil)
}

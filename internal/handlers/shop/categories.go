package shop

import (
	"net/http"

	"fleura_back_end/internal/database"
	"fleura_back_end/internal/models"
	"fleura_back_end/internal/utils"

	"github.com/gin-gonic/gin"
)

// ================== CATÉGORIES ==================

// GET /api/categories
func ListCategories(c *gin.Context) {
	var categories []models.Category
	if err := database.DB.Order("name ASC").Find(&categories).Error; err != nil {
		utils.FailFromError(c, err)
		return
	}
	utils.OK(c, http.StatusOK, "", categories)
}

// GET /api/categories/:id
func GetCategory(c *gin.Context) {
	var cat models.Category
	if err := database.DB.Where("public_id = ?", c.Param("id")).First(&cat).Error; err != nil {
		utils.Fail(c, http.StatusNotFound, "Catégorie introuvable")
		return
	}

	var flowers []models.Flower
	if err := database.DB.Where("category_id = ?", cat.ID).Preload("Listings").Find(&flowers).Error; err != nil {
		utils.FailFromError(c, err)
		return
	}

	utils.OK(c, http.StatusOK, "", gin.H{
		"category": cat,
		"flowers":  flowers,
	})
}

// POST /api/categories (admin)
func CreateCategory(c *gin.Context) {
	var input struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, http.StatusBadRequest, "Données invalides", err.Error())
		return
	}

	cat := models.Category{Name: input.Name, Description: input.Description}
	if err := database.DB.Create(&cat).Error; err != nil {
		utils.FailFromError(c, err)
		return
	}

	utils.OK(c, http.StatusCreated, "Catégorie créée", cat)
}

// PUT /api/categories/:id (admin)
func UpdateCategory(c *gin.Context) {
	var cat models.Category
	if err := database.DB.Where("public_id = ?", c.Param("id")).First(&cat).Error; err != nil {
		utils.Fail(c, http.StatusNotFound, "Catégorie introuvable")
		return
	}

	var input struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, http.StatusBadRequest, "Données invalides", err.Error())
		return
	}

	if input.Name != "" {
		cat.Name = input.Name
	}
	if input.Description != "" {
		cat.Description = input.Description
	}
	if err := database.DB.Save(&cat).Error; err != nil {
		utils.FailFromError(c, err)
		return
	}

	utils.OK(c, http.StatusOK, "Catégorie mise à jour", cat)
}

// DELETE /api/categories/:id (admin) — refusé si des fleurs y sont rattachées
func DeleteCategory(c *gin.Context) {
	var cat models.Category
	if err := database.DB.Where("public_id = ?", c.Param("id")).First(&cat).Error; err != nil {
		utils.Fail(c, http.StatusNotFound, "Catégorie introuvable")
		return
	}

	var count int64
	if err := database.DB.Model(&models.Flower{}).Where("category_id = ?", cat.ID).Count(&count).Error; err != nil {
		utils.FailFromError(c, err)
		return
	}
	if count > 0 {
		utils.Fail(c, http.StatusBadRequest, "Impossible de supprimer une catégorie contenant des fleurs")
		return
	}

	if err := database.DB.Delete(&cat).Error; err != nil {
		utils.FailFromError(c, err)
		return
	}

	utils.OK(c, http.StatusOK, "Catégorie supprimée", nil)
}

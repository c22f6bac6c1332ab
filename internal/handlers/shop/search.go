package shop

import (
	"log"
	"net/http"
	"strings"

	"fleura_back_end/internal/database"
	"fleura_back_end/internal/models"
	"fleura_back_end/internal/services"
	"fleura_back_end/internal/utils"

	"github.com/gin-gonic/gin"
)

// ================== RECHERCHE ==================

// GET /api/search?q=rose
// Elasticsearch en premier, repli SQL LIKE si l'index est indisponible.
func SearchFlowers(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		utils.Fail(c, http.StatusBadRequest, "Paramètre de recherche manquant")
		return
	}

	ids, err := services.SearchFlowers(query)
	if err != nil {
		log.Printf("⚠️ Recherche Elastic indisponible, repli SQL: %v", err)
		searchFlowersSQL(c, query)
		return
	}

	if len(ids) == 0 {
		utils.OK(c, http.StatusOK, "", []models.Flower{})
		return
	}

	var flowers []models.Flower
	err = database.DB.Where("public_id IN ?", ids).
		Preload("Category").Preload("Listings").
		Find(&flowers).Error
	if err != nil {
		utils.FailFromError(c, err)
		return
	}

	utils.OK(c, http.StatusOK, "", flowers)
}

// searchFlowersSQL : repli LIKE sur nom, description et couleur.
func searchFlowersSQL(c *gin.Context, query string) {
	pattern := "%" + query + "%"

	var flowers []models.Flower
	err := database.DB.Where("name LIKE ? OR description LIKE ? OR color LIKE ?", pattern, pattern, pattern).
		Preload("Category").Preload("Listings").
		Limit(50).
		Find(&flowers).Error
	if err != nil {
		utils.FailFromError(c, err)
		return
	}

	utils.OK(c, http.StatusOK, "", flowers)
}

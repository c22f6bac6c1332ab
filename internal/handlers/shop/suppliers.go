package shop

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

// ================== FOURNISSEURS ==================

// GET /api/suppliers
func ListSuppliers(c *gin.Context) {
	var suppliers []models.Supplier
	if err := database.DB.Order("name ASC").Find(&suppliers).Error; err != nil {
		utils.FailFromError(c, err)
		return
	}
	utils.OK(c, http.StatusOK, "", suppliers)
}

// GET /api/suppliers/:id
func GetSupplier(c *gin.Context) {
	var supplier models.Supplier
	err := database.DB.Where("public_id = ?", c.Param("id")).
		Preload("Listings").Preload("Listings.Flower").
		First(&supplier).Error
	if err != nil {
		utils.Fail(c, http.StatusNotFound, "Fournisseur introuvable")
		return
	}
	utils.OK(c, http.StatusOK, "", supplier)
}

// POST /api/suppliers (supplier ou admin) — crée la fiche fournisseur
// rattachée au compte appelant.
func CreateSupplier(c *gin.Context) {
	actor, u, err := middleware.ResolveActor(c.GetString("user_id"))
	if err != nil {
		utils.FailFromError(c, err)
		return
	}

	var input struct {
		Name    string `json:"name" binding:"required"`
		Email   string `json:"email" binding:"required,email"`
		Phone   string `json:"phone"`
		Address string `json:"address"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, http.StatusBadRequest, "Données invalides", err.Error())
		return
	}

	// Un compte = une fiche fournisseur
	var count int64
	database.DB.Model(&models.Supplier{}).Where("owner_id = ?", actor.ID).Count(&count)
	if count > 0 && !actor.Role.IsAdmin() {
		utils.Fail(c, http.StatusBadRequest, "Ce compte possède déjà une fiche fournisseur")
		return
	}

	supplier := models.Supplier{
		Name:    input.Name,
		Email:   input.Email,
		Phone:   input.Phone,
		Address: input.Address,
		OwnerID: actor.ID,
	}
	if err := database.DB.Create(&supplier).Error; err != nil {
		utils.FailFromError(c, err)
		return
	}

	log.Printf("🆕 Fiche fournisseur créée : %s (compte %s)", supplier.Name, u.Email)
	utils.OK(c, http.StatusCreated, "Fournisseur créé", supplier)
}

// PUT /api/suppliers/:id (propriétaire ou admin)
func UpdateSupplier(c *gin.Context) {
	actor, _, err := middleware.ResolveActor(c.GetString("user_id"))
	if err != nil {
		utils.FailFromError(c, err)
		return
	}

	supplier, ok := loadOwnedSupplier(c, actor, c.Param("id"))
	if !ok {
		return
	}

	var input struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Phone   string `json:"phone"`
		Address string `json:"address"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, http.StatusBadRequest, "Données invalides", err.Error())
		return
	}

	if input.Name != "" {
		supplier.Name = input.Name
	}
	if input.Email != "" {
		supplier.Email = input.Email
	}
	if input.Phone != "" {
		supplier.Phone = input.Phone
	}
	if input.Address != "" {
		supplier.Address = input.Address
	}
	if err := database.DB.Save(supplier).Error; err != nil {
		utils.FailFromError(c, err)
		return
	}

	utils.OK(c, http.StatusOK, "Fournisseur mis à jour", supplier)
}

// ================== ANNONCES (LISTINGS) ==================

// POST /api/suppliers/:id/listings (propriétaire ou admin)
func CreateListing(c *gin.Context) {
	actor, _, err := middleware.ResolveActor(c.GetString("user_id"))
	if err != nil {
		utils.FailFromError(c, err)
		return
	}

	supplier, ok := loadOwnedSupplier(c, actor, c.Param("id"))
	if !ok {
		return
	}

	var input struct {
		FlowerID          string `json:"flowerId" binding:"required"`
		AvailableQuantity int    `json:"availableQuantity"`
		UnitPrice         int64  `json:"unitPrice" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, http.StatusBadRequest, "Données invalides", err.Error())
		return
	}
	if input.AvailableQuantity < 0 || input.UnitPrice <= 0 {
		utils.Fail(c, http.StatusBadRequest, "Quantité ou prix invalide")
		return
	}

	var flower models.Flower
	if err := database.DB.Where("public_id = ?", input.FlowerID).First(&flower).Error; err != nil {
		utils.Fail(c, http.StatusNotFound, "Fleur introuvable")
		return
	}

	listing := models.SupplierListing{
		SupplierID:        supplier.ID,
		FlowerID:          flower.ID,
		AvailableQuantity: input.AvailableQuantity,
		UnitPrice:         input.UnitPrice,
		Status:            models.ListingPending,
	}
	if err := database.DB.Create(&listing).Error; err != nil {
		utils.FailFromError(c, err)
		return
	}

	utils.OK(c, http.StatusCreated, "Annonce créée (en attente de validation)", listing)
}

// PUT /api/suppliers/:id/listings/:listingId (propriétaire ou admin)
func UpdateListing(c *gin.Context) {
	actor, _, err := middleware.ResolveActor(c.GetString("user_id"))
	if err != nil {
		utils.FailFromError(c, err)
		return
	}

	supplier, ok := loadOwnedSupplier(c, actor, c.Param("id"))
	if !ok {
		return
	}

	var listing models.SupplierListing
	err = database.DB.Where("supplier_id = ? AND public_id = ?", supplier.ID, c.Param("listingId")).
		First(&listing).Error
	if err != nil {
		utils.Fail(c, http.StatusNotFound, "Annonce introuvable")
		return
	}

	var input struct {
		AvailableQuantity *int   `json:"availableQuantity"`
		UnitPrice         *int64 `json:"unitPrice"`
		Status            string `json:"status"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, http.StatusBadRequest, "Données invalides", err.Error())
		return
	}

	if input.AvailableQuantity != nil {
		if *input.AvailableQuantity < 0 {
			utils.Fail(c, http.StatusBadRequest, "Quantité invalide")
			return
		}
		listing.AvailableQuantity = *input.AvailableQuantity
	}
	if input.UnitPrice != nil {
		if *input.UnitPrice <= 0 {
			utils.Fail(c, http.StatusBadRequest, "Prix invalide")
			return
		}
		listing.UnitPrice = *input.UnitPrice
	}
	if input.Status != "" {
		switch input.Status {
		case models.ListingAvailable, models.ListingSoldOut, models.ListingWithdrawn:
			// La mise en ligne initiale (pending → available) est réservée aux admins
			if listing.Status == models.ListingPending && !actor.Role.IsAdmin() {
				utils.Fail(c, http.StatusForbidden, "Annonce en attente de validation par un administrateur")
				return
			}
			listing.Status = input.Status
		default:
			utils.Fail(c, http.StatusBadRequest, "Statut d'annonce invalide")
			return
		}
	}

	if err := database.DB.Save(&listing).Error; err != nil {
		utils.FailFromError(c, err)
		return
	}

	utils.OK(c, http.StatusOK, "Annonce mise à jour", listing)
}

// DELETE /api/suppliers/:id/listings/:listingId (propriétaire ou admin)
func DeleteListing(c *gin.Context) {
	actor, _, err := middleware.ResolveActor(c.GetString("user_id"))
	if err != nil {
		utils.FailFromError(c, err)
		return
	}

	supplier, ok := loadOwnedSupplier(c, actor, c.Param("id"))
	if !ok {
		return
	}

	var listing models.SupplierListing
	err = database.DB.Where("supplier_id = ? AND public_id = ?", supplier.ID, c.Param("listingId")).
		First(&listing).Error
	if err != nil {
		utils.Fail(c, http.StatusNotFound, "Annonce introuvable")
		return
	}

	if err := database.DB.Delete(&listing).Error; err != nil {
		utils.FailFromError(c, err)
		return
	}

	utils.OK(c, http.StatusOK, "Annonce supprimée", nil)
}

// loadOwnedSupplier charge le fournisseur et vérifie propriétaire-ou-admin.
// Écrit la réponse d'erreur et retourne ok=false en cas d'échec.
func loadOwnedSupplier(c *gin.Context, actor services.Actor, publicID string) (*models.Supplier, bool) {
	var supplier models.Supplier
	if err := database.DB.Where("public_id = ?", publicID).First(&supplier).Error; err != nil {
		utils.Fail(c, http.StatusNotFound, "Fournisseur introuvable")
		return nil, false
	}
	if supplier.OwnerID != actor.ID && !actor.Role.IsAdmin() {
		utils.Fail(c, http.StatusForbidden, "Vous n'êtes pas le gestionnaire de ce fournisseur")
		return nil, false
	}
	return &supplier, true
}

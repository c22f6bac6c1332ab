package order

import (
	"log"
	"net/http"
	"time"

	"fleura_back_end/internal/database"
	"fleura_back_end/internal/middleware"
	"fleura_back_end/internal/models"
	"fleura_back_end/internal/services"
	"fleura_back_end/internal/utils"

	"github.com/gin-gonic/gin"
)

// ================== COMMANDES ==================

// POST /api/orders/checkout
func Checkout(c *gin.Context) {
	actor, _, err := middleware.ResolveActor(c.GetString("user_id"))
	if err != nil {
		utils.FailFromError(c, err)
		return
	}

	var input struct {
		ShippingName    string `json:"shippingName" binding:"required"`
		ShippingStreet  string `json:"shippingStreet" binding:"required"`
		ShippingCity    string `json:"shippingCity" binding:"required"`
		ShippingZip     string `json:"shippingZip" binding:"required"`
		ShippingCountry string `json:"shippingCountry" binding:"required"`
		BillingStreet   string `json:"billingStreet"`
		BillingCity     string `json:"billingCity"`
		BillingZip      string `json:"billingZip"`
		BillingCountry  string `json:"billingCountry"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, http.StatusBadRequest, "Adresse de livraison incomplète", err.Error())
		return
	}

	// Facturation = livraison si non fournie
	if input.BillingStreet == "" {
		input.BillingStreet = input.ShippingStreet
		input.BillingCity = input.ShippingCity
		input.BillingZip = input.ShippingZip
		input.BillingCountry = input.ShippingCountry
	}

	ord, err := services.Checkout(database.DB, actor.ID, services.CheckoutInput{
		ShippingName:    input.ShippingName,
		ShippingStreet:  input.ShippingStreet,
		ShippingCity:    input.ShippingCity,
		ShippingZip:     input.ShippingZip,
		ShippingCountry: input.ShippingCountry,
		BillingStreet:   input.BillingStreet,
		BillingCity:     input.BillingCity,
		BillingZip:      input.BillingZip,
		BillingCountry:  input.BillingCountry,
	})
	if err != nil {
		utils.FailFromError(c, err)
		return
	}

	log.Printf("✅ Commande %s créée (total %d centimes)", ord.OrderNo, ord.Total)
	utils.OK(c, http.StatusCreated, "Commande créée", ord)
}

// GET /api/orders
func ListMyOrders(c *gin.Context) {
	actor, _, err := middleware.ResolveActor(c.GetString("user_id"))
	if err != nil {
		utils.FailFromError(c, err)
		return
	}

	var orders []models.Order
	err = database.DB.Where("user_id = ?", actor.ID).
		Preload("Details").
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		utils.FailFromError(c, err)
		return
	}

	utils.OK(c, http.StatusOK, "", orders)
}

// GET /api/orders/:id (propriétaire ou admin)
func GetOrder(c *gin.Context) {
	actor, _, err := middleware.ResolveActor(c.GetString("user_id"))
	if err != nil {
		utils.FailFromError(c, err)
		return
	}

	var ord models.Order
	err = database.DB.Where("public_id = ?", c.Param("id")).
		Preload("Details").Preload("Payments").Preload("Deliveries").Preload("Invoices").
		First(&ord).Error
	if err != nil {
		utils.Fail(c, http.StatusNotFound, "Commande introuvable")
		return
	}
	if ord.UserID != actor.ID && !actor.Role.IsAdmin() {
		utils.Fail(c, http.StatusForbidden, "Cette commande ne vous appartient pas")
		return
	}

	utils.OK(c, http.StatusOK, "", ord)
}

// POST /api/orders/:id/cancel (propriétaire ou admin)
func CancelOrder(c *gin.Context) {
	actor, _, err := middleware.ResolveActor(c.GetString("user_id"))
	if err != nil {
		utils.FailFromError(c, err)
		return
	}

	ord, err := services.CancelOrder(database.DB, actor, c.Param("id"))
	if err != nil {
		utils.FailFromError(c, err)
		return
	}

	log.Printf("🔄 Commande %s annulée, stock restauré", ord.OrderNo)
	utils.OK(c, http.StatusOK, "Commande annulée", ord)
}

// ================== ADMINISTRATION ==================

// GET /api/admin/orders?status=processing
func AdminListOrders(c *gin.Context) {
	q := database.DB.Model(&models.Order{}).Preload("Details").Order("created_at DESC")
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var orders []models.Order
	if err := q.Find(&orders).Error; err != nil {
		utils.FailFromError(c, err)
		return
	}

	utils.OK(c, http.StatusOK, "", orders)
}

// PUT /api/admin/orders/:id/status — avance la commande et crée la
// livraison au passage en "shipped".
func AdminUpdateOrderStatus(c *gin.Context) {
	var ord models.Order
	if err := database.DB.Where("public_id = ?", c.Param("id")).First(&ord).Error; err != nil {
		utils.Fail(c, http.StatusNotFound, "Commande introuvable")
		return
	}

	var input struct {
		Status     string `json:"status" binding:"required"`
		Carrier    string `json:"carrier"`
		TrackingNo string `json:"trackingNo"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, http.StatusBadRequest, "Données invalides", err.Error())
		return
	}

	next := models.OrderStatus(input.Status)
	switch next {
	case models.OrderProcessing, models.OrderShipped, models.OrderDelivered:
	default:
		utils.Fail(c, http.StatusBadRequest, "Statut de commande invalide")
		return
	}
	if ord.Status == models.OrderCancelled {
		utils.Fail(c, http.StatusBadRequest, "Impossible de faire avancer une commande annulée")
		return
	}

	if next == models.OrderShipped && ord.Status != models.OrderShipped {
		now := time.Now()
		delivery := models.Delivery{
			OrderID:    ord.ID,
			Carrier:    input.Carrier,
			TrackingNo: input.TrackingNo,
			Status:     "shipped",
			ShippedAt:  &now,
		}
		if err := database.DB.Create(&delivery).Error; err != nil {
			utils.FailFromError(c, err)
			return
		}
		log.Printf("📤 Commande %s expédiée via %s (%s)", ord.OrderNo, input.Carrier, input.TrackingNo)
	}

	ord.Status = next
	if err := database.DB.Save(&ord).Error; err != nil {
		utils.FailFromError(c, err)
		return
	}

	utils.OK(c, http.StatusOK, "Statut de la commande mis à jour", ord)
}

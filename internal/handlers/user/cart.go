package user

import (
	"context"
	"net/http"

	"fleura_back_end/internal/database"
	"fleura_back_end/internal/middleware"
	"fleura_back_end/internal/services"
	"fleura_back_end/internal/utils"

	"github.com/gin-gonic/gin"
)

// Panier : les règles (fusion des lignes, prix figé, périmètre par
// utilisateur) vivent dans services/cart.go ; ici on ne fait que le
// mapping HTTP et la notification temps réel.

// GET /api/cart
func GetCart(c *gin.Context) {
	actor, _, err := middleware.ResolveActor(c.GetString("user_id"))
	if err != nil {
		utils.FailFromError(c, err)
		return
	}

	cart, err := services.GetOrCreateActiveCart(database.DB, actor.ID)
	if err != nil {
		utils.FailFromError(c, err)
		return
	}

	utils.OK(c, http.StatusOK, "", gin.H{
		"cart":  cart,
		"total": cart.Total(),
		"count": len(cart.Items),
	})
}

// POST /api/cart/add
func AddToCart(c *gin.Context) {
	actor, _, err := middleware.ResolveActor(c.GetString("user_id"))
	if err != nil {
		utils.FailFromError(c, err)
		return
	}

	var input struct {
		ListingID string `json:"listingId" binding:"required"`
		Quantity  int    `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, http.StatusBadRequest, "Données invalides", err.Error())
		return
	}

	cart, err := services.AddToCart(database.DB, actor.ID, input.ListingID, input.Quantity)
	if err != nil {
		utils.FailFromError(c, err)
		return
	}

	notifyCartChange(c.GetString("user_id"), "updated")
	utils.OK(c, http.StatusOK, "Produit ajouté au panier", gin.H{
		"cart":  cart,
		"total": cart.Total(),
		"count": len(cart.Items),
	})
}

// PUT /api/cart/items/:itemId
func UpdateCartItem(c *gin.Context) {
	actor, _, err := middleware.ResolveActor(c.GetString("user_id"))
	if err != nil {
		utils.FailFromError(c, err)
		return
	}

	var input struct {
		Quantity int `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, http.StatusBadRequest, "Données invalides", err.Error())
		return
	}

	cart, err := services.UpdateCartItem(database.DB, actor.ID, c.Param("itemId"), input.Quantity)
	if err != nil {
		utils.FailFromError(c, err)
		return
	}

	notifyCartChange(c.GetString("user_id"), "updated")
	utils.OK(c, http.StatusOK, "Panier mis à jour", gin.H{
		"cart":  cart,
		"total": cart.Total(),
		"count": len(cart.Items),
	})
}

// DELETE /api/cart/items/:itemId
func RemoveCartItem(c *gin.Context) {
	actor, _, err := middleware.ResolveActor(c.GetString("user_id"))
	if err != nil {
		utils.FailFromError(c, err)
		return
	}

	cart, err := services.RemoveCartItem(database.DB, actor.ID, c.Param("itemId"))
	if err != nil {
		utils.FailFromError(c, err)
		return
	}

	notifyCartChange(c.GetString("user_id"), "updated")
	utils.OK(c, http.StatusOK, "Produit supprimé du panier", gin.H{
		"cart":  cart,
		"total": cart.Total(),
		"count": len(cart.Items),
	})
}

// DELETE /api/cart/clear
func ClearCart(c *gin.Context) {
	actor, _, err := middleware.ResolveActor(c.GetString("user_id"))
	if err != nil {
		utils.FailFromError(c, err)
		return
	}

	if err := services.ClearCart(database.DB, actor.ID); err != nil {
		utils.FailFromError(c, err)
		return
	}

	notifyCartChange(c.GetString("user_id"), "cleared")
	utils.OK(c, http.StatusOK, "Panier vidé avec succès", nil)
}

// notifyCartChange publie sur Redis pour réveiller les websockets du user.
func notifyCartChange(userPublicID, event string) {
	if database.Redis == nil {
		return
	}
	database.Redis.Publish(context.Background(), "cart:"+userPublicID, event)
}

package middleware

import (
	"net/http"

	"fleura_back_end/internal/models"

	"github.com/gin-gonic/gin"
)

// RequireAdmin vérifie que l'appelant a le rôle admin.
func RequireAdmin(c *gin.Context) {
	role := models.Role(c.GetString("role"))
	if !role.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{"error": "Accès réservé aux administrateurs"})
		c.Abort()
		return
	}
	c.Next()
}

// RequireSupplier vérifie que l'appelant peut gérer des annonces.
func RequireSupplier(c *gin.Context) {
	role := models.Role(c.GetString("role"))
	if !role.CanSell() {
		c.JSON(http.StatusForbidden, gin.H{"error": "Accès réservé aux fournisseurs"})
		c.Abort()
		return
	}
	c.Next()
}

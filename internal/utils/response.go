package utils

import (
	"errors"
	"log"
	"net/http"

	"fleura_back_end/internal/services"

	"github.com/gin-gonic/gin"
)

// Enveloppe uniforme de toutes les réponses API :
// {succeeded, message, data, errors}

func OK(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, gin.H{
		"succeeded": true,
		"message":   message,
		"data":      data,
		"errors":    nil,
	})
}

func Fail(c *gin.Context, status int, message string, errs ...string) {
	c.JSON(status, gin.H{
		"succeeded": false,
		"message":   message,
		"data":      nil,
		"errors":    errs,
	})
}

// FailFromError traduit la taxonomie métier en code HTTP. Les erreurs
// inattendues sont loggées côté serveur et masquées au client.
func FailFromError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		Fail(c, http.StatusNotFound, "Ressource introuvable")
	case errors.Is(err, services.ErrUnauthorized):
		Fail(c, http.StatusUnauthorized, "Non authentifié")
	case errors.Is(err, services.ErrForbidden):
		Fail(c, http.StatusForbidden, "Accès refusé")
	case errors.Is(err, services.ErrInvalidOperation):
		Fail(c, http.StatusBadRequest, err.Error())
	default:
		log.Printf("❌ Erreur interne: %v", err)
		Fail(c, http.StatusInternalServerError, "Une erreur est survenue, veuillez réessayer")
	}
}

package order

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"fleura_back_end/internal/database"
	"fleura_back_end/internal/middleware"
	"fleura_back_end/internal/models"
	"fleura_back_end/internal/utils"

	"github.com/gin-gonic/gin"
)

// ================== FACTURES ==================

// POST /api/orders/:id/invoice — génère (ou retourne) la facture d'une
// commande payée.
func CreateInvoice(c *gin.Context) {
	actor, _, err := middleware.ResolveActor(c.GetString("user_id"))
	if err != nil {
		utils.FailFromError(c, err)
		return
	}

	var ord models.Order
	err = database.DB.Where("public_id = ?", c.Param("id")).Preload("Invoices").First(&ord).Error
	if err != nil {
		utils.Fail(c, http.StatusNotFound, "Commande introuvable")
		return
	}
	if ord.UserID != actor.ID && !actor.Role.IsAdmin() {
		utils.Fail(c, http.StatusForbidden, "Cette commande ne vous appartient pas")
		return
	}
	if ord.PaymentStatus != models.PaymentPaid {
		utils.Fail(c, http.StatusBadRequest, "La facture n'est disponible qu'après paiement")
		return
	}

	// Une facture par commande : idempotent
	if len(ord.Invoices) > 0 {
		utils.OK(c, http.StatusOK, "", ord.Invoices[0])
		return
	}

	invoice := models.Invoice{
		OrderID:  ord.ID,
		Number:   fmt.Sprintf("INV-%s", ord.OrderNo),
		IssuedAt: time.Now(),
		Total:    ord.Total,
	}
	if err := database.DB.Create(&invoice).Error; err != nil {
		utils.FailFromError(c, err)
		return
	}

	log.Printf("✅ Facture %s émise pour la commande %s", invoice.Number, ord.OrderNo)
	utils.OK(c, http.StatusCreated, "Facture émise", invoice)
}

// GET /api/orders/:id/invoice/pdf — rend la facture en PDF (Chrome headless)
func DownloadInvoicePDF(c *gin.Context) {
	actor, _, err := middleware.ResolveActor(c.GetString("user_id"))
	if err != nil {
		utils.FailFromError(c, err)
		return
	}

	var ord models.Order
	err = database.DB.Where("public_id = ?", c.Param("id")).Preload("Invoices").First(&ord).Error
	if err != nil {
		utils.Fail(c, http.StatusNotFound, "Commande introuvable")
		return
	}
	if ord.UserID != actor.ID && !actor.Role.IsAdmin() {
		utils.Fail(c, http.StatusForbidden, "Cette commande ne vous appartient pas")
		return
	}
	if len(ord.Invoices) == 0 {
		utils.Fail(c, http.StatusNotFound, "Aucune facture pour cette commande")
		return
	}
	invoice := ord.Invoices[0]

	pdf, err := utils.RenderInvoicePDF(invoice.PublicID, "")
	if err != nil {
		log.Printf("❌ Erreur génération PDF facture %s: %v", invoice.Number, err)
		utils.Fail(c, http.StatusInternalServerError, "Impossible de générer le PDF")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.pdf", invoice.Number))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// SendOrderConfirmation : email de confirmation avec la facture PDF en
// pièce jointe. Appelé en goroutine après réconciliation du paiement.
func SendOrderConfirmation(ord *models.Order) {
	var u models.User
	if err := database.DB.First(&u, ord.UserID).Error; err != nil {
		log.Printf("❌ Utilisateur introuvable pour la commande %s: %v", ord.OrderNo, err)
		return
	}

	// Recharge les lignes pour le récapitulatif
	if len(ord.Details) == 0 {
		database.DB.Preload("Details").First(ord, ord.ID)
	}

	// Émet la facture si elle n'existe pas encore
	var invoice models.Invoice
	err := database.DB.Where("order_id = ?", ord.ID).First(&invoice).Error
	if err != nil {
		invoice = models.Invoice{
			OrderID:  ord.ID,
			Number:   fmt.Sprintf("INV-%s", ord.OrderNo),
			IssuedAt: time.Now(),
			Total:    ord.Total,
		}
		if err := database.DB.Create(&invoice).Error; err != nil {
			log.Printf("❌ Erreur émission facture pour %s: %v", ord.OrderNo, err)
			return
		}
	}

	var pdf []byte
	if rendered, err := utils.RenderInvoicePDF(invoice.PublicID, ""); err != nil {
		log.Printf("⚠️ PDF indisponible pour %s, email envoyé sans pièce jointe: %v", invoice.Number, err)
	} else {
		pdf = rendered
	}

	html := utils.GenerateOrderConfirmationHTML(*ord)
	if err := utils.SendEmail(u.Email, "Confirmation de votre commande Fleura", html, pdf); err != nil {
		log.Printf("❌ Erreur envoi confirmation commande %s: %v", ord.OrderNo, err)
		return
	}
	log.Printf("✅ Confirmation de commande envoyée à %s (%s)", u.Email, ord.OrderNo)
}

package payement

import (
	"encoding/json"
	"log"
	"net/http"
	"os"

	"fleura_back_end/internal/database"
	"fleura_back_end/internal/handlers/order"
	"fleura_back_end/internal/middleware"
	"fleura_back_end/internal/models"
	"fleura_back_end/internal/services"
	"fleura_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/paymentintent"
	"github.com/stripe/stripe-go/v83/webhook"
)

// ================== STRIPE : CRÉATION DU PAIEMENT ==================

// POST /api/payments/stripe/create — body {orderId}
func CreatePaymentIntent(c *gin.Context) {
	actor, u, err := middleware.ResolveActor(c.GetString("user_id"))
	if err != nil {
		utils.FailFromError(c, err)
		return
	}

	var input struct {
		OrderID string `json:"orderId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, http.StatusBadRequest, "Identifiant de commande requis", err.Error())
		return
	}

	var ord models.Order
	if err := database.DB.Where("public_id = ?", input.OrderID).First(&ord).Error; err != nil {
		utils.Fail(c, http.StatusNotFound, "Commande introuvable")
		return
	}
	if ord.UserID != actor.ID {
		utils.Fail(c, http.StatusForbidden, "Cette commande ne vous appartient pas")
		return
	}
	if ord.PaymentStatus == models.PaymentPaid {
		utils.Fail(c, http.StatusBadRequest, "Cette commande est déjà payée")
		return
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(ord.Total), // déjà en centimes
		Currency: stripe.String("eur"),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
		Metadata: map[string]string{
			"order_no": ord.OrderNo,
			"email":    u.Email,
		},
	}

	intent, err := paymentintent.New(params)
	if err != nil {
		log.Println("❌ Erreur Stripe:", err)
		utils.Fail(c, http.StatusInternalServerError, "Erreur lors de la création du paiement")
		return
	}

	log.Printf("💳 PaymentIntent créé : %s (%.2f€) pour %s", intent.ID, float64(ord.Total)/100, u.Email)
	utils.OK(c, http.StatusOK, "", gin.H{
		"clientSecret": intent.ClientSecret,
		"paymentId":    intent.ID,
	})
}

// ================== STRIPE : WEBHOOK ==================

// POST /api/payments/stripe/webhook
func StripeWebhook(c *gin.Context) {
	const MaxBodyBytes = int64(65536)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodyBytes)

	payload, err := c.GetRawData()
	if err != nil {
		log.Println("❌ Lecture payload échouée:", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Échec lecture body"})
		return
	}

	secret := os.Getenv("STRIPE_WEBHOOK_SECRET")
	var event stripe.Event

	if secret == "" {
		log.Println("⚠️ Pas de STRIPE_WEBHOOK_SECRET — mode test")
		if err := json.Unmarshal(payload, &event); err != nil {
			log.Println("❌ JSON invalide:", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "JSON invalide"})
			return
		}
	} else {
		event, err = webhook.ConstructEvent(payload, c.GetHeader("Stripe-Signature"), secret)
		if err != nil {
			log.Println("❌ Signature Stripe invalide:", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Signature invalide"})
			return
		}
	}

	log.Printf("📥 Événement Stripe reçu : %s", event.Type)
	handleStripeEvent(event)

	c.Status(http.StatusOK)
}

func handleStripeEvent(event stripe.Event) {
	switch event.Type {
	case "payment_intent.succeeded", "payment_intent.payment_failed":
	default:
		log.Printf("ℹ️ Événement ignoré : %s", event.Type)
		return
	}

	var pi stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
		log.Println("❌ Erreur décodage PaymentIntent:", err)
		return
	}

	orderNo := pi.Metadata["order_no"]
	if orderNo == "" {
		log.Println("⚠️ PaymentIntent sans order_no, ignoré")
		return
	}

	if event.Type == "payment_intent.payment_failed" {
		if _, err := services.MarkOrderPaymentFailed(database.DB, orderNo, "stripe", pi.ID, pi.Amount); err != nil {
			log.Printf("⚠️ Échec Stripe pour une commande inconnue %s: %v", orderNo, err)
		}
		return
	}

	// Stripe rejoue les webhooks : ne pas enregistrer deux fois
	var existing models.Order
	if err := database.DB.Where("order_no = ?", orderNo).First(&existing).Error; err == nil &&
		existing.PaymentStatus == models.PaymentPaid {
		log.Printf("🔁 Commande %s déjà payée, webhook ignoré", orderNo)
		return
	}

	ord, err := services.MarkOrderPaid(database.DB, orderNo, "stripe", pi.ID, "", pi.Amount)
	if err != nil {
		log.Printf("⚠️ Paiement Stripe pour une commande inconnue %s: %v", orderNo, err)
		return
	}

	log.Printf("✅ Paiement Stripe confirmé pour %s", orderNo)
	go order.SendOrderConfirmation(ord)
}

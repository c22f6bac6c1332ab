package payement

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"fleura_back_end/internal/database"
	"fleura_back_end/internal/handlers/order"
	"fleura_back_end/internal/middleware"
	"fleura_back_end/internal/models"
	"fleura_back_end/internal/services"
	"fleura_back_end/internal/utils"

	"github.com/gin-gonic/gin"
)

// ================== VNPAY : CRÉATION DU PAIEMENT ==================

// POST /api/payments/vnpay/create — body {orderId}
// Retourne l'URL de redirection vers la passerelle et son QR code.
func CreateVNPayPayment(c *gin.Context) {
	actor, _, err := middleware.ResolveActor(c.GetString("user_id"))
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

	orderInfo := fmt.Sprintf("Paiement commande %s", ord.OrderNo)
	paymentURL := utils.BuildPaymentURL(ord.OrderNo, orderInfo, c.ClientIP(), ord.Total)

	qr, err := utils.GeneratePaymentQR(paymentURL)
	if err != nil {
		log.Printf("⚠️ QR indisponible pour %s: %v", ord.OrderNo, err)
		qr = ""
	}

	utils.OK(c, http.StatusOK, "", gin.H{
		"paymentUrl": paymentURL,
		"qrCode":     qr,
	})
}

// ================== VNPAY : CALLBACK ==================

// GET /api/payments/vnpay/callback
// La passerelle rappelle cette URL après le paiement. La signature est
// vérifiée avant toute lecture des paramètres ; une commande inconnue est
// un no-op loggé (la passerelle peut rejouer le callback).
func VNPayCallback(c *gin.Context) {
	query := c.Request.URL.Query()

	if !utils.VerifyCallback(query) {
		log.Printf("❌ Callback VNPay rejeté : signature invalide (txnRef=%s)", query.Get("vnp_TxnRef"))
		utils.Fail(c, http.StatusBadRequest, "Signature invalide")
		return
	}

	orderNo := query.Get("vnp_TxnRef")
	responseCode := query.Get("vnp_ResponseCode")
	bankCode := query.Get("vnp_BankCode")
	txnNo := query.Get("vnp_TransactionNo")

	amount, err := strconv.ParseInt(query.Get("vnp_Amount"), 10, 64)
	if err != nil {
		utils.Fail(c, http.StatusBadRequest, "Montant invalide")
		return
	}

	if responseCode == utils.ResponseCodeOK {
		ord, err := services.MarkOrderPaid(database.DB, orderNo, "vnpay", txnNo, bankCode, amount)
		if err != nil {
			// Commande inconnue : callback valide mais sans objet — on logge
			// et on répond OK pour que la passerelle arrête de rejouer.
			// Toute autre erreur (base indisponible...) renvoie un 5xx pour
			// que la passerelle retente la réconciliation.
			if errors.Is(err, services.ErrNotFound) {
				log.Printf("⚠️ Callback VNPay pour une commande inconnue %s: %v", orderNo, err)
				utils.OK(c, http.StatusOK, "Callback reçu", nil)
				return
			}
			utils.FailFromError(c, err)
			return
		}

		log.Printf("✅ Paiement VNPay confirmé pour %s (banque %s)", orderNo, bankCode)
		go order.SendOrderConfirmation(ord)
		utils.OK(c, http.StatusOK, "Paiement confirmé", gin.H{"order": ord})
		return
	}

	if _, err := services.MarkOrderPaymentFailed(database.DB, orderNo, "vnpay", txnNo, amount); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			log.Printf("⚠️ Callback VNPay (échec) pour une commande inconnue %s: %v", orderNo, err)
			utils.OK(c, http.StatusOK, "Callback reçu", nil)
			return
		}
		utils.FailFromError(c, err)
		return
	}

	log.Printf("⚠️ Paiement VNPay refusé pour %s (code %s)", orderNo, responseCode)
	utils.OK(c, http.StatusOK, "Paiement refusé par la passerelle", gin.H{
		"responseCode": responseCode,
	})
}

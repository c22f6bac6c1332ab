package services

import (
	"errors"
	"fmt"
	"time"

	"fleura_back_end/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TVA et frais de port fixes, en centimes / pourcentage entier
const (
	taxRatePercent = 10
	flatShipping   = int64(500)
)

// CheckoutInput : adresses snapshotées dans la commande
type CheckoutInput struct {
	ShippingName    string
	ShippingStreet  string
	ShippingCity    string
	ShippingZip     string
	ShippingCountry string
	BillingStreet   string
	BillingCity     string
	BillingZip      string
	BillingCountry  string
}

// Checkout transforme le panier actif en commande, dans une seule
// transaction : déduction du stock de chaque annonce, snapshot des prix
// unitaires dans les lignes, soft delete des lignes du panier et clôture
// du panier. Si une seule déduction échoue, tout est annulé.
func Checkout(db *gorm.DB, userID uint, input CheckoutInput) (*models.Order, error) {
	cart, err := GetOrCreateActiveCart(db, userID)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, fmt.Errorf("panier vide: %w", ErrInvalidOperation)
	}

	var order *models.Order
	err = db.Transaction(func(tx *gorm.DB) error {
		var subtotal int64
		details := make([]models.OrderDetail, 0, len(cart.Items))

		for _, item := range cart.Items {
			ok, err := DeductAvailableQuantity(tx, item.ListingID, item.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("stock insuffisant pour %q: %w", item.FlowerName, ErrInvalidOperation)
			}

			details = append(details, models.OrderDetail{
				ListingID:  item.ListingID,
				FlowerName: item.FlowerName,
				Quantity:   item.Quantity,
				UnitPrice:  item.UnitPrice,
				LineTotal:  item.LineTotal,
			})
			subtotal += item.LineTotal
		}

		tax := subtotal * taxRatePercent / 100
		o := models.Order{
			OrderNo:         generateOrderNo(),
			UserID:          userID,
			Status:          models.OrderCreated,
			PaymentStatus:   models.PaymentPending,
			Subtotal:        subtotal,
			Tax:             tax,
			Shipping:        flatShipping,
			Total:           subtotal + tax + flatShipping,
			ShippingName:    input.ShippingName,
			ShippingStreet:  input.ShippingStreet,
			ShippingCity:    input.ShippingCity,
			ShippingZip:     input.ShippingZip,
			ShippingCountry: input.ShippingCountry,
			BillingStreet:   input.BillingStreet,
			BillingCity:     input.BillingCity,
			BillingZip:      input.BillingZip,
			BillingCountry:  input.BillingCountry,
			Details:         details,
		}
		if err := tx.Create(&o).Error; err != nil {
			return err
		}

		// Vide puis clôture le panier
		if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Cart{}).Where("id = ?", cart.ID).
			Update("checked_out", true).Error; err != nil {
			return err
		}

		order = &o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// CancelOrder : annule une commande non expédiée et re-crédite le stock.
func CancelOrder(db *gorm.DB, actor Actor, orderPublicID string) (*models.Order, error) {
	var order models.Order
	if err := db.Preload("Details").Where("public_id = ?", orderPublicID).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("commande %s: %w", orderPublicID, ErrNotFound)
		}
		return nil, err
	}
	if order.UserID != actor.ID && !actor.Role.IsAdmin() {
		return nil, fmt.Errorf("commande %s: %w", orderPublicID, ErrForbidden)
	}
	if order.Status == models.OrderShipped || order.Status == models.OrderDelivered {
		return nil, fmt.Errorf("annulation impossible depuis l'état %q: %w", order.Status, ErrInvalidOperation)
	}
	if order.Status == models.OrderCancelled {
		return &order, nil // déjà annulée
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		for _, d := range order.Details {
			if err := RestoreAvailableQuantity(tx, d.ListingID, d.Quantity); err != nil {
				return err
			}
		}
		order.Status = models.OrderCancelled
		return tx.Save(&order).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// MarkOrderPaid : réconciliation après callback de la passerelle de
// paiement. Enregistre le paiement et fait avancer la commande.
func MarkOrderPaid(db *gorm.DB, orderNo, provider, txnRef, bankCode string, amount int64) (*models.Order, error) {
	var order models.Order
	if err := db.Where("order_no = ?", orderNo).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("commande %s: %w", orderNo, ErrNotFound)
		}
		return nil, err
	}

	now := time.Now()
	err := db.Transaction(func(tx *gorm.DB) error {
		payment := models.Payment{
			OrderID:  order.ID,
			Provider: provider,
			TxnRef:   txnRef,
			Amount:   amount,
			Status:   models.PaymentPaid,
			BankCode: bankCode,
			PaidAt:   &now,
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}
		order.PaymentStatus = models.PaymentPaid
		order.Status = models.OrderProcessing
		return tx.Save(&order).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// MarkOrderPaymentFailed : trace l'échec sans toucher au statut logistique.
func MarkOrderPaymentFailed(db *gorm.DB, orderNo, provider, txnRef string, amount int64) (*models.Order, error) {
	var order models.Order
	if err := db.Where("order_no = ?", orderNo).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("commande %s: %w", orderNo, ErrNotFound)
		}
		return nil, err
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		payment := models.Payment{
			OrderID:  order.ID,
			Provider: provider,
			TxnRef:   txnRef,
			Amount:   amount,
			Status:   models.PaymentFailed,
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}
		order.PaymentStatus = models.PaymentFailed
		return tx.Save(&order).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// generateOrderNo : FL + horodatage + suffixe aléatoire, unique et lisible
// sur un relevé bancaire.
func generateOrderNo() string {
	return fmt.Sprintf("FL%s%s", time.Now().Format("20060102150405"), uuid.NewString()[:8])
}

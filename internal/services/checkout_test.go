package services

import (
	"errors"
	"testing"

	"fleura_back_end/internal/models"
)

func testCheckoutInput() CheckoutInput {
	return CheckoutInput{
		ShippingName:    "Jean Dupont",
		ShippingStreet:  "12 rue des Lilas",
		ShippingCity:    "Lille",
		ShippingZip:     "59000",
		ShippingCountry: "FR",
		BillingStreet:   "12 rue des Lilas",
		BillingCity:     "Lille",
		BillingZip:      "59000",
		BillingCountry:  "FR",
	}
}

func TestCheckoutCreatesOrderAndDeductsStock(t *testing.T) {
	db := newTestDB(t)
	u := seedUser(t, db, models.RoleCustomer)
	listing := seedListing(t, db, 10, 1500)

	if _, err := AddToCart(db, u.ID, listing.PublicID, 3); err != nil {
		t.Fatalf("ajout panier: %v", err)
	}

	order, err := Checkout(db, u.ID, testCheckoutInput())
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}

	if order.OrderNo == "" {
		t.Error("numéro de commande vide")
	}
	if order.Status != models.OrderCreated {
		t.Errorf("statut = %q, attendu %q", order.Status, models.OrderCreated)
	}
	if order.PaymentStatus != models.PaymentPending {
		t.Errorf("statut paiement = %q, attendu %q", order.PaymentStatus, models.PaymentPending)
	}

	// Montants : 3 × 1500 = 4500, TVA 10% = 450, port 500
	if order.Subtotal != 4500 {
		t.Errorf("sous-total = %d, attendu 4500", order.Subtotal)
	}
	if order.Tax != 450 {
		t.Errorf("TVA = %d, attendu 450", order.Tax)
	}
	if order.Total != 4500+450+500 {
		t.Errorf("total = %d, attendu %d", order.Total, 4500+450+500)
	}

	// Stock déduit
	if got := reloadListing(t, db, listing.ID).AvailableQuantity; got != 7 {
		t.Errorf("stock = %d, attendu 7", got)
	}

	// Lignes snapshotées
	if len(order.Details) != 1 {
		t.Fatalf("lignes = %d, attendu 1", len(order.Details))
	}
	if order.Details[0].UnitPrice != 1500 || order.Details[0].Quantity != 3 {
		t.Errorf("ligne = %d × %d, attendu 3 × 1500",
			order.Details[0].Quantity, order.Details[0].UnitPrice)
	}

	// Le panier est clôturé et un nouveau panier actif est vide
	cart, err := GetOrCreateActiveCart(db, u.ID)
	if err != nil {
		t.Fatalf("panier post-checkout: %v", err)
	}
	if len(cart.Items) != 0 {
		t.Errorf("le nouveau panier devrait être vide, contient %d lignes", len(cart.Items))
	}
}

func TestCheckoutEmptyCartFails(t *testing.T) {
	db := newTestDB(t)
	u := seedUser(t, db, models.RoleCustomer)

	_, err := Checkout(db, u.ID, testCheckoutInput())
	if !errors.Is(err, ErrInvalidOperation) {
		t.Errorf("erreur = %v, attendu ErrInvalidOperation", err)
	}
}

func TestCheckoutInsufficientStockRollsBack(t *testing.T) {
	db := newTestDB(t)
	u := seedUser(t, db, models.RoleCustomer)
	listing := seedListing(t, db, 2, 1500)

	// L'annonce n'a que 2 unités mais le client en veut 5
	if _, err := AddToCart(db, u.ID, listing.PublicID, 5); err != nil {
		t.Fatalf("ajout panier: %v", err)
	}

	_, err := Checkout(db, u.ID, testCheckoutInput())
	if !errors.Is(err, ErrInvalidOperation) {
		t.Fatalf("erreur = %v, attendu ErrInvalidOperation", err)
	}

	// Rien n'a bougé : stock intact, panier toujours actif, zéro commande
	if got := reloadListing(t, db, listing.ID).AvailableQuantity; got != 2 {
		t.Errorf("stock = %d, attendu 2 (rollback)", got)
	}
	cart, err := GetOrCreateActiveCart(db, u.ID)
	if err != nil {
		t.Fatalf("panier: %v", err)
	}
	if len(cart.Items) != 1 {
		t.Errorf("le panier devrait être intact, contient %d lignes", len(cart.Items))
	}
	var count int64
	db.Model(&models.Order{}).Count(&count)
	if count != 0 {
		t.Errorf("commandes = %d, attendu 0", count)
	}
}

func TestCancelOrderRestoresStock(t *testing.T) {
	db := newTestDB(t)
	u := seedUser(t, db, models.RoleCustomer)
	listing := seedListing(t, db, 10, 1500)

	if _, err := AddToCart(db, u.ID, listing.PublicID, 4); err != nil {
		t.Fatalf("ajout panier: %v", err)
	}
	order, err := Checkout(db, u.ID, testCheckoutInput())
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if got := reloadListing(t, db, listing.ID).AvailableQuantity; got != 6 {
		t.Fatalf("stock = %d, attendu 6", got)
	}

	actor := Actor{ID: u.ID, Role: models.RoleCustomer}
	cancelled, err := CancelOrder(db, actor, order.PublicID)
	if err != nil {
		t.Fatalf("annulation: %v", err)
	}
	if cancelled.Status != models.OrderCancelled {
		t.Errorf("statut = %q, attendu %q", cancelled.Status, models.OrderCancelled)
	}
	if got := reloadListing(t, db, listing.ID).AvailableQuantity; got != 10 {
		t.Errorf("stock = %d, attendu 10 (restauré)", got)
	}

	// Annuler deux fois est idempotent
	if _, err := CancelOrder(db, actor, order.PublicID); err != nil {
		t.Errorf("seconde annulation: %v", err)
	}
	if got := reloadListing(t, db, listing.ID).AvailableQuantity; got != 10 {
		t.Errorf("stock = %d, attendu 10 (pas de double restauration)", got)
	}
}

func TestCancelOrderForbiddenForStranger(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, models.RoleCustomer)
	stranger := seedUser(t, db, models.RoleCustomer)
	listing := seedListing(t, db, 10, 1500)

	if _, err := AddToCart(db, owner.ID, listing.PublicID, 1); err != nil {
		t.Fatalf("ajout panier: %v", err)
	}
	order, err := Checkout(db, owner.ID, testCheckoutInput())
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}

	_, err = CancelOrder(db, Actor{ID: stranger.ID, Role: models.RoleCustomer}, order.PublicID)
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("erreur = %v, attendu ErrForbidden", err)
	}

	// Un admin peut annuler la commande d'autrui
	if _, err := CancelOrder(db, Actor{ID: stranger.ID, Role: models.RoleAdmin}, order.PublicID); err != nil {
		t.Errorf("annulation admin: %v", err)
	}
}

func TestCancelShippedOrderFails(t *testing.T) {
	db := newTestDB(t)
	u := seedUser(t, db, models.RoleCustomer)
	listing := seedListing(t, db, 10, 1500)

	if _, err := AddToCart(db, u.ID, listing.PublicID, 1); err != nil {
		t.Fatalf("ajout panier: %v", err)
	}
	order, err := Checkout(db, u.ID, testCheckoutInput())
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}

	if err := db.Model(order).Update("status", models.OrderShipped).Error; err != nil {
		t.Fatalf("passage en shipped: %v", err)
	}

	_, err = CancelOrder(db, Actor{ID: u.ID, Role: models.RoleCustomer}, order.PublicID)
	if !errors.Is(err, ErrInvalidOperation) {
		t.Errorf("erreur = %v, attendu ErrInvalidOperation", err)
	}
}

func TestMarkOrderPaid(t *testing.T) {
	db := newTestDB(t)
	u := seedUser(t, db, models.RoleCustomer)
	listing := seedListing(t, db, 10, 1500)

	if _, err := AddToCart(db, u.ID, listing.PublicID, 1); err != nil {
		t.Fatalf("ajout panier: %v", err)
	}
	order, err := Checkout(db, u.ID, testCheckoutInput())
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}

	paid, err := MarkOrderPaid(db, order.OrderNo, "vnpay", "TXN123", "NCB", order.Total)
	if err != nil {
		t.Fatalf("réconciliation: %v", err)
	}
	if paid.PaymentStatus != models.PaymentPaid {
		t.Errorf("statut paiement = %q, attendu %q", paid.PaymentStatus, models.PaymentPaid)
	}
	if paid.Status != models.OrderProcessing {
		t.Errorf("statut = %q, attendu %q", paid.Status, models.OrderProcessing)
	}

	var payments []models.Payment
	if err := db.Where("order_id = ?", paid.ID).Find(&payments).Error; err != nil {
		t.Fatalf("lecture paiements: %v", err)
	}
	if len(payments) != 1 {
		t.Fatalf("paiements = %d, attendu 1", len(payments))
	}
	if payments[0].Provider != "vnpay" || payments[0].TxnRef != "TXN123" {
		t.Errorf("paiement enregistré = %s/%s, attendu vnpay/TXN123",
			payments[0].Provider, payments[0].TxnRef)
	}
	if payments[0].PaidAt == nil {
		t.Error("PaidAt devrait être renseigné")
	}
}

func TestMarkOrderPaidUnknownOrder(t *testing.T) {
	db := newTestDB(t)

	_, err := MarkOrderPaid(db, "FL00000000000000abcdef00", "vnpay", "TXN", "", 100)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("erreur = %v, attendu ErrNotFound", err)
	}
}

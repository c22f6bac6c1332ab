package services

import (
	"errors"
	"testing"

	"fleura_back_end/internal/models"
)

func TestGetOrCreateActiveCartIsSingleton(t *testing.T) {
	db := newTestDB(t)
	u := seedUser(t, db, models.RoleCustomer)

	first, err := GetOrCreateActiveCart(db, u.ID)
	if err != nil {
		t.Fatalf("création panier: %v", err)
	}
	second, err := GetOrCreateActiveCart(db, u.ID)
	if err != nil {
		t.Fatalf("relecture panier: %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("deux paniers actifs pour le même utilisateur: %d et %d", first.ID, second.ID)
	}
}

func TestAddToCartMergesLinesAndFreezesPrice(t *testing.T) {
	db := newTestDB(t)
	u := seedUser(t, db, models.RoleCustomer)
	listing := seedListing(t, db, 100, 1500)

	if _, err := AddToCart(db, u.ID, listing.PublicID, 2); err != nil {
		t.Fatalf("premier ajout: %v", err)
	}

	// Le fournisseur change son prix après le premier ajout
	if err := db.Model(listing).Update("unit_price", 9999).Error; err != nil {
		t.Fatalf("changement de prix: %v", err)
	}

	cart, err := AddToCart(db, u.ID, listing.PublicID, 3)
	if err != nil {
		t.Fatalf("second ajout: %v", err)
	}

	if len(cart.Items) != 1 {
		t.Fatalf("lignes = %d, attendu 1 (fusion)", len(cart.Items))
	}
	item := cart.Items[0]
	if item.Quantity != 5 {
		t.Errorf("quantité = %d, attendu 5", item.Quantity)
	}
	if item.UnitPrice != 1500 {
		t.Errorf("prix unitaire = %d, attendu 1500 (figé au premier ajout)", item.UnitPrice)
	}
	if item.LineTotal != 5*1500 {
		t.Errorf("total ligne = %d, attendu %d", item.LineTotal, 5*1500)
	}
}

func TestAddToCartRejectsUnavailableListing(t *testing.T) {
	db := newTestDB(t)
	u := seedUser(t, db, models.RoleCustomer)
	listing := seedListing(t, db, 10, 1500)

	if err := db.Model(listing).Update("status", models.ListingWithdrawn).Error; err != nil {
		t.Fatalf("retrait annonce: %v", err)
	}

	_, err := AddToCart(db, u.ID, listing.PublicID, 1)
	if !errors.Is(err, ErrInvalidOperation) {
		t.Errorf("erreur = %v, attendu ErrInvalidOperation", err)
	}
}

func TestAddToCartRejectsBadQuantity(t *testing.T) {
	db := newTestDB(t)
	u := seedUser(t, db, models.RoleCustomer)
	listing := seedListing(t, db, 10, 1500)

	for _, qty := range []int{0, -1} {
		if _, err := AddToCart(db, u.ID, listing.PublicID, qty); !errors.Is(err, ErrInvalidOperation) {
			t.Errorf("qty=%d: erreur = %v, attendu ErrInvalidOperation", qty, err)
		}
	}
}

func TestUpdateCartItemScopedToOwnCart(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, models.RoleCustomer)
	intruder := seedUser(t, db, models.RoleCustomer)
	listing := seedListing(t, db, 10, 1500)

	cart, err := AddToCart(db, owner.ID, listing.PublicID, 2)
	if err != nil {
		t.Fatalf("ajout: %v", err)
	}
	itemID := cart.Items[0].PublicID

	// L'intrus connaît l'id de la ligne mais ne possède pas le panier
	if _, err := UpdateCartItem(db, intruder.ID, itemID, 99); !errors.Is(err, ErrNotFound) {
		t.Errorf("erreur = %v, attendu ErrNotFound", err)
	}

	// Le propriétaire, lui, peut modifier
	updated, err := UpdateCartItem(db, owner.ID, itemID, 4)
	if err != nil {
		t.Fatalf("mise à jour: %v", err)
	}
	if updated.Items[0].Quantity != 4 {
		t.Errorf("quantité = %d, attendu 4", updated.Items[0].Quantity)
	}
	if updated.Items[0].LineTotal != 4*1500 {
		t.Errorf("total ligne = %d, attendu %d", updated.Items[0].LineTotal, 4*1500)
	}
}

func TestRemoveCartItemAndClear(t *testing.T) {
	db := newTestDB(t)
	u := seedUser(t, db, models.RoleCustomer)
	listing := seedListing(t, db, 10, 1500)

	cart, err := AddToCart(db, u.ID, listing.PublicID, 2)
	if err != nil {
		t.Fatalf("ajout: %v", err)
	}
	itemID := cart.Items[0].PublicID

	cart, err = RemoveCartItem(db, u.ID, itemID)
	if err != nil {
		t.Fatalf("suppression: %v", err)
	}
	if len(cart.Items) != 0 {
		t.Errorf("lignes = %d, attendu 0", len(cart.Items))
	}

	// Supprimer une ligne déjà supprimée est une erreur
	if _, err := RemoveCartItem(db, u.ID, itemID); !errors.Is(err, ErrNotFound) {
		t.Errorf("erreur = %v, attendu ErrNotFound", err)
	}

	// Vider un panier vide est un succès
	if err := ClearCart(db, u.ID); err != nil {
		t.Errorf("vidage panier vide: %v", err)
	}
}

func TestRemovedCartItemIsSoftDeleted(t *testing.T) {
	db := newTestDB(t)
	u := seedUser(t, db, models.RoleCustomer)
	listing := seedListing(t, db, 10, 1500)

	cart, err := AddToCart(db, u.ID, listing.PublicID, 2)
	if err != nil {
		t.Fatalf("ajout: %v", err)
	}
	itemID := cart.Items[0].PublicID

	if _, err := RemoveCartItem(db, u.ID, itemID); err != nil {
		t.Fatalf("suppression: %v", err)
	}

	// La ligne reste en base, marquée deleted_at
	var count int64
	db.Unscoped().Model(&models.CartItem{}).
		Where("public_id = ? AND deleted_at IS NOT NULL", itemID).
		Count(&count)
	if count != 1 {
		t.Errorf("lignes soft-deleted = %d, attendu 1", count)
	}
}

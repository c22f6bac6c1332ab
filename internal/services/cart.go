package services

import (
	"errors"
	"fmt"

	"fleura_back_end/internal/models"

	"gorm.io/gorm"
)

// GetOrCreateActiveCart : un seul panier non validé par utilisateur,
// créé paresseusement au premier accès.
func GetOrCreateActiveCart(db *gorm.DB, userID uint) (*models.Cart, error) {
	var cart models.Cart
	err := db.Preload("Items").
		Where("user_id = ? AND checked_out = ?", userID, false).
		First(&cart).Error
	if err == nil {
		return &cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	cart = models.Cart{UserID: userID}
	if err := db.Create(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

// AddToCart ajoute qty unités d'une annonce au panier actif. Si la ligne
// existe déjà, on incrémente la quantité en gardant le prix unitaire figé
// au premier ajout — jamais relu depuis l'annonce.
func AddToCart(db *gorm.DB, userID uint, listingPublicID string, qty int) (*models.Cart, error) {
	if qty <= 0 {
		return nil, fmt.Errorf("quantité invalide: %w", ErrInvalidOperation)
	}

	var listing models.SupplierListing
	if err := db.Preload("Flower").Where("public_id = ?", listingPublicID).First(&listing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("annonce %s: %w", listingPublicID, ErrNotFound)
		}
		return nil, err
	}
	if listing.Status != models.ListingAvailable {
		return nil, fmt.Errorf("annonce %s non disponible à la vente: %w", listingPublicID, ErrInvalidOperation)
	}

	cart, err := GetOrCreateActiveCart(db, userID)
	if err != nil {
		return nil, err
	}

	// Ligne existante pour (panier, annonce) ?
	var item models.CartItem
	err = db.Where("cart_id = ? AND listing_id = ?", cart.ID, listing.ID).First(&item).Error
	switch {
	case err == nil:
		item.Quantity += qty
		item.LineTotal = int64(item.Quantity) * item.UnitPrice
		if err := db.Save(&item).Error; err != nil {
			return nil, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		imageURL := ""
		flowerName := ""
		if listing.Flower != nil {
			flowerName = listing.Flower.Name
			if len(listing.Flower.ImageURLs) > 0 {
				imageURL = listing.Flower.ImageURLs[0]
			}
		}
		item = models.CartItem{
			CartID:     cart.ID,
			ListingID:  listing.ID,
			FlowerName: flowerName,
			ImageURL:   imageURL,
			Quantity:   qty,
			UnitPrice:  listing.UnitPrice, // snapshot
			LineTotal:  int64(qty) * listing.UnitPrice,
		}
		if err := db.Create(&item).Error; err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	return GetOrCreateActiveCart(db, userID)
}

// UpdateCartItem change la quantité d'une ligne. La ligne est résolue via
// le panier de l'appelant, pas par un lookup aveugle d'ID — impossible de
// toucher le panier d'un autre utilisateur.
func UpdateCartItem(db *gorm.DB, userID uint, itemPublicID string, qty int) (*models.Cart, error) {
	if qty <= 0 {
		return nil, fmt.Errorf("quantité invalide: %w", ErrInvalidOperation)
	}

	cart, err := GetOrCreateActiveCart(db, userID)
	if err != nil {
		return nil, err
	}

	var item models.CartItem
	if err := db.Where("cart_id = ? AND public_id = ?", cart.ID, itemPublicID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("ligne %s: %w", itemPublicID, ErrNotFound)
		}
		return nil, err
	}

	item.Quantity = qty
	item.LineTotal = int64(qty) * item.UnitPrice
	if err := db.Save(&item).Error; err != nil {
		return nil, err
	}

	return GetOrCreateActiveCart(db, userID)
}

// RemoveCartItem retire une ligne (soft delete, jamais de suppression physique).
func RemoveCartItem(db *gorm.DB, userID uint, itemPublicID string) (*models.Cart, error) {
	cart, err := GetOrCreateActiveCart(db, userID)
	if err != nil {
		return nil, err
	}

	res := db.Where("cart_id = ? AND public_id = ?", cart.ID, itemPublicID).Delete(&models.CartItem{})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("ligne %s: %w", itemPublicID, ErrNotFound)
	}

	return GetOrCreateActiveCart(db, userID)
}

// ClearCart vide le panier actif (soft delete de toutes les lignes).
// Vider un panier déjà vide est un succès.
func ClearCart(db *gorm.DB, userID uint) error {
	cart, err := GetOrCreateActiveCart(db, userID)
	if err != nil {
		return err
	}
	return db.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error
}

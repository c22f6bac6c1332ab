package services

import (
	"fmt"

	"fleura_back_end/internal/models"

	"gorm.io/gorm"
)

// DeductAvailableQuantity retire qty unités du stock d'une annonce.
//
//   - qty ≤ 0 : succès sans mutation (no-op)
//   - qty > stock disponible : false, aucune mutation
//   - sinon : décrément en un seul UPDATE conditionnel, donc pas de
//     lecture-modification-écriture perdable entre deux requêtes
func DeductAvailableQuantity(db *gorm.DB, listingID uint, qty int) (bool, error) {
	if qty <= 0 {
		return true, nil
	}

	res := db.Model(&models.SupplierListing{}).
		Where("id = ? AND available_quantity >= ?", listingID, qty).
		Update("available_quantity", gorm.Expr("available_quantity - ?", qty))
	if res.Error != nil {
		return false, fmt.Errorf("déduction stock annonce %d: %w", listingID, res.Error)
	}

	// RowsAffected == 0 : annonce inconnue OU stock insuffisant — dans
	// les deux cas, rien n'a bougé.
	return res.RowsAffected > 0, nil
}

// RestoreAvailableQuantity re-crédite le stock (annulation de commande).
func RestoreAvailableQuantity(db *gorm.DB, listingID uint, qty int) error {
	if qty <= 0 {
		return nil
	}
	return db.Model(&models.SupplierListing{}).
		Where("id = ?", listingID).
		Update("available_quantity", gorm.Expr("available_quantity + ?", qty)).Error
}

package services

import (
	"fmt"
	"testing"

	"fleura_back_end/internal/database"
	"fleura_back_end/internal/models"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB ouvre une base SQLite en mémoire, isolée par test.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("ouverture base de test: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("accès sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migration base de test: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, role models.Role) *models.User {
	t.Helper()
	// Email unique par appel : un même test peut semer plusieurs
	// utilisateurs du même rôle sans violer l'index unique.
	u := models.User{
		Name:     "Test " + string(role),
		Email:    fmt.Sprintf("%s-%s@test.local", uuid.NewString()[:8], role),
		Role:     role,
		Provider: "local",
	}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("création utilisateur: %v", err)
	}
	return &u
}

// seedListing crée la chaîne complète catégorie → fleur → fournisseur →
// annonce disponible.
func seedListing(t *testing.T, db *gorm.DB, qty int, unitPrice int64) *models.SupplierListing {
	t.Helper()

	cat := models.Category{Name: "Bouquets"}
	if err := db.Create(&cat).Error; err != nil {
		t.Fatalf("création catégorie: %v", err)
	}
	flower := models.Flower{Name: "Rose rouge", CategoryID: cat.ID}
	if err := db.Create(&flower).Error; err != nil {
		t.Fatalf("création fleur: %v", err)
	}
	supplier := models.Supplier{
		Name:  "Jardin du Nord",
		Email: fmt.Sprintf("%s-supplier@test.local", t.Name()),
	}
	if err := db.Create(&supplier).Error; err != nil {
		t.Fatalf("création fournisseur: %v", err)
	}

	listing := models.SupplierListing{
		SupplierID:        supplier.ID,
		FlowerID:          flower.ID,
		AvailableQuantity: qty,
		UnitPrice:         unitPrice,
		Status:            models.ListingAvailable,
	}
	if err := db.Create(&listing).Error; err != nil {
		t.Fatalf("création annonce: %v", err)
	}
	return &listing
}

func reloadListing(t *testing.T, db *gorm.DB, id uint) *models.SupplierListing {
	t.Helper()
	var l models.SupplierListing
	if err := db.First(&l, id).Error; err != nil {
		t.Fatalf("relecture annonce %d: %v", id, err)
	}
	return &l
}

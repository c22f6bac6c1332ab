package payement

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"fleura_back_end/internal/database"
	"fleura_back_end/internal/models"
	"fleura_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newCallbackTestDB(t *testing.T) *gorm.DB {
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
	database.DB = db
	return db
}

func newCallbackRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/payments/vnpay/callback", VNPayCallback)
	return r
}

// signedCallbackQuery construit un callback correctement signé avec le
// secret de test posé par t.Setenv.
func signedCallbackQuery(orderNo, responseCode string, amount int64) url.Values {
	params := map[string]string{
		"vnp_TxnRef":        orderNo,
		"vnp_ResponseCode":  responseCode,
		"vnp_Amount":        fmt.Sprintf("%d", amount),
		"vnp_BankCode":      "NCB",
		"vnp_TransactionNo": "42",
	}
	hash := utils.SecureHash(params, "test_secret")

	q := url.Values{}
	for k, v := range params {
		q.Set(k, v)
	}
	q.Set("vnp_SecureHash", hash)
	return q
}

func seedPendingOrder(t *testing.T, db *gorm.DB, orderNo string, total int64) *models.Order {
	t.Helper()
	ord := models.Order{
		OrderNo:       orderNo,
		UserID:        999, // aucun utilisateur en base : l'email de confirmation s'arrête là
		Status:        models.OrderCreated,
		PaymentStatus: models.PaymentPending,
		Total:         total,
	}
	if err := db.Create(&ord).Error; err != nil {
		t.Fatalf("création commande: %v", err)
	}
	return &ord
}

func TestVNPayCallbackRejectsBadSignature(t *testing.T) {
	t.Setenv("VNPAY_HASH_SECRET", "test_secret")
	newCallbackTestDB(t)
	r := newCallbackRouter()

	q := signedCallbackQuery("FLTEST1", "00", 4500)
	q.Set("vnp_Amount", "1") // altéré après signature

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/payments/vnpay/callback?"+q.Encode(), nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("statut = %d, attendu %d", w.Code, http.StatusBadRequest)
	}
}

func TestVNPayCallbackMarksOrderPaid(t *testing.T) {
	t.Setenv("VNPAY_HASH_SECRET", "test_secret")
	db := newCallbackTestDB(t)
	r := newCallbackRouter()
	ord := seedPendingOrder(t, db, "FLTEST2", 4500)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/api/payments/vnpay/callback?"+signedCallbackQuery(ord.OrderNo, "00", ord.Total).Encode(), nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("statut = %d, attendu %d (body: %s)", w.Code, http.StatusOK, w.Body.String())
	}

	var reloaded models.Order
	if err := db.Where("order_no = ?", ord.OrderNo).First(&reloaded).Error; err != nil {
		t.Fatalf("relecture commande: %v", err)
	}
	if reloaded.PaymentStatus != models.PaymentPaid {
		t.Errorf("statut paiement = %q, attendu %q", reloaded.PaymentStatus, models.PaymentPaid)
	}
	if reloaded.Status != models.OrderProcessing {
		t.Errorf("statut = %q, attendu %q", reloaded.Status, models.OrderProcessing)
	}
}

func TestVNPayCallbackUnknownOrderIsAcked(t *testing.T) {
	t.Setenv("VNPAY_HASH_SECRET", "test_secret")
	db := newCallbackTestDB(t)
	r := newCallbackRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/api/payments/vnpay/callback?"+signedCallbackQuery("FLINCONNUE", "00", 100).Encode(), nil)
	r.ServeHTTP(w, req)

	// Commande inconnue : on acquitte pour arrêter les rejeux, sans rien créer
	if w.Code != http.StatusOK {
		t.Errorf("statut = %d, attendu %d", w.Code, http.StatusOK)
	}
	var count int64
	db.Model(&models.Payment{}).Count(&count)
	if count != 0 {
		t.Errorf("paiements créés = %d, attendu 0", count)
	}
}

func TestVNPayCallbackTransientDBErrorIsNotAcked(t *testing.T) {
	t.Setenv("VNPAY_HASH_SECRET", "test_secret")
	db := newCallbackTestDB(t)
	r := newCallbackRouter()
	ord := seedPendingOrder(t, db, "FLTEST3", 4500)

	// Base indisponible au moment du callback : la passerelle doit recevoir
	// un 5xx pour retenter la réconciliation, jamais un acquittement.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("accès sql.DB: %v", err)
	}
	sqlDB.Close()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/api/payments/vnpay/callback?"+signedCallbackQuery(ord.OrderNo, "00", ord.Total).Encode(), nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("statut = %d, attendu %d", w.Code, http.StatusInternalServerError)
	}
}

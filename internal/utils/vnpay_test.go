package utils

import (
	"net/url"
	"strings"
	"testing"
)

func TestSecureHashIsOrderIndependent(t *testing.T) {
	a := SecureHash(map[string]string{
		"vnp_TxnRef": "FL123",
		"vnp_Amount": "4500",
	}, "secret")
	b := SecureHash(map[string]string{
		"vnp_Amount": "4500",
		"vnp_TxnRef": "FL123",
	}, "secret")
	if a != b {
		t.Errorf("la signature doit être indépendante de l'ordre d'insertion: %s != %s", a, b)
	}
}

func TestSecureHashDependsOnSecret(t *testing.T) {
	params := map[string]string{"vnp_TxnRef": "FL123"}
	if SecureHash(params, "secret1") == SecureHash(params, "secret2") {
		t.Error("deux secrets différents ne doivent pas produire la même signature")
	}
}

func TestVerifyCallback(t *testing.T) {
	t.Setenv("VNPAY_HASH_SECRET", "test_secret")

	params := map[string]string{
		"vnp_TxnRef":        "FL20260101abcdef12",
		"vnp_Amount":        "4500",
		"vnp_ResponseCode":  "00",
		"vnp_BankCode":      "NCB",
		"vnp_TransactionNo": "98765",
	}
	hash := SecureHash(params, "test_secret")

	query := url.Values{}
	for k, v := range params {
		query.Set(k, v)
	}
	query.Set("vnp_SecureHash", hash)

	if !VerifyCallback(query) {
		t.Fatal("un callback correctement signé doit être accepté")
	}

	// La casse de la signature ne compte pas
	query.Set("vnp_SecureHash", strings.ToUpper(hash))
	if !VerifyCallback(query) {
		t.Error("la comparaison de signature doit ignorer la casse")
	}
	query.Set("vnp_SecureHash", hash)

	// Un seul paramètre altéré invalide la réponse
	tampered := url.Values{}
	for k := range query {
		tampered.Set(k, query.Get(k))
	}
	tampered.Set("vnp_Amount", "1")
	if VerifyCallback(tampered) {
		t.Error("un montant altéré doit invalider la signature")
	}

	// Signature absente
	query.Del("vnp_SecureHash")
	if VerifyCallback(query) {
		t.Error("un callback sans signature doit être rejeté")
	}
}

func TestVerifyCallbackIgnoresHashTypeParam(t *testing.T) {
	t.Setenv("VNPAY_HASH_SECRET", "test_secret")

	params := map[string]string{"vnp_TxnRef": "FL1"}
	hash := SecureHash(params, "test_secret")

	query := url.Values{}
	query.Set("vnp_TxnRef", "FL1")
	query.Set("vnp_SecureHash", hash)
	query.Set("vnp_SecureHashType", "MD5")

	if !VerifyCallback(query) {
		t.Error("vnp_SecureHashType ne doit pas entrer dans le calcul de la signature")
	}
}

func TestBuildPaymentURLIsVerifiable(t *testing.T) {
	t.Setenv("VNPAY_HASH_SECRET", "test_secret")
	t.Setenv("VNPAY_TMN_CODE", "FLEURA01")
	t.Setenv("VNPAY_RETURN_URL", "http://localhost:8080/api/payments/vnpay/callback")

	raw := BuildPaymentURL("FL20260101abcdef12", "Paiement commande", "127.0.0.1", 4500)

	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("URL invalide: %v", err)
	}
	q := u.Query()
	if q.Get("vnp_TxnRef") != "FL20260101abcdef12" {
		t.Errorf("vnp_TxnRef = %q", q.Get("vnp_TxnRef"))
	}
	if q.Get("vnp_Amount") != "4500" {
		t.Errorf("vnp_Amount = %q, attendu 4500", q.Get("vnp_Amount"))
	}

	// L'URL sortante doit passer notre propre vérification
	if !VerifyCallback(q) {
		t.Error("l'URL construite doit porter une signature valide")
	}
}

func TestGeneratePaymentQR(t *testing.T) {
	qr, err := GeneratePaymentQR("https://sandbox.vnpayment.vn/paymentv2/vpcpay.html?vnp_TxnRef=FL1")
	if err != nil {
		t.Fatalf("génération QR: %v", err)
	}
	if !strings.HasPrefix(qr, "data:image/png;base64,") {
		t.Errorf("le QR doit être une data-URL PNG, commence par %q", qr[:min(len(qr), 30)])
	}
}

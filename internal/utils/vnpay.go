package utils

import (
	"crypto/md5"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"net/url"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/skip2/go-qrcode"
)

// Intégration VNPay : construction de l'URL de redirection sortante et
// vérification du callback entrant.
//
// Signature : les paramètres (hors vnp_SecureHash) sont triés par clé,
// concaténés en key=value&..., le secret partagé est ajouté en queue puis
// le tout est passé à MD5. C'est le schéma historique de la passerelle —
// faible cryptographiquement, conservé tel quel pour rester compatible.

const (
	vnpVersion     = "2.0.0"
	vnpCommand     = "pay"
	vnpCurrCode    = "VND"
	vnpOrderType   = "flowers"
	ResponseCodeOK = "00"
)

// SecureHash calcule la signature MD5 des paramètres triés + secret.
func SecureHash(params map[string]string, secret string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for i, k := range keys {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(k)
		sb.WriteByte('=')
		sb.WriteString(params[k])
	}
	sb.WriteString(secret)

	sum := md5.Sum([]byte(sb.String()))
	return hex.EncodeToString(sum[:])
}

// BuildPaymentURL construit l'URL de redirection vers la passerelle pour
// une commande. La passerelle attend le montant multiplié par 100 : nos
// montants en centimes sont déjà dans ce format.
func BuildPaymentURL(orderNo, orderInfo, clientIP string, amountCents int64) string {
	gateway := os.Getenv("VNPAY_URL")
	if gateway == "" {
		gateway = "https://sandbox.vnpayment.vn/paymentv2/vpcpay.html"
	}
	secret := os.Getenv("VNPAY_HASH_SECRET")

	params := map[string]string{
		"vnp_Version":    vnpVersion,
		"vnp_Command":    vnpCommand,
		"vnp_TmnCode":    os.Getenv("VNPAY_TMN_CODE"),
		"vnp_Amount":     fmt.Sprintf("%d", amountCents),
		"vnp_CurrCode":   vnpCurrCode,
		"vnp_TxnRef":     orderNo,
		"vnp_OrderInfo":  orderInfo,
		"vnp_OrderType":  vnpOrderType,
		"vnp_Locale":     "fr",
		"vnp_IpAddr":     clientIP,
		"vnp_CreateDate": time.Now().Format("20060102150405"),
		"vnp_ReturnUrl":  os.Getenv("VNPAY_RETURN_URL"),
	}

	hash := SecureHash(params, secret)

	q := url.Values{}
	for k, v := range params {
		q.Set(k, v)
	}
	q.Set("vnp_SecureHash", hash)

	return gateway + "?" + q.Encode()
}

// VerifyCallback valide la signature d'un callback. Le vnp_SecureHash est
// retiré du jeu de paramètres, la signature est recalculée sur le reste
// trié et comparée sans tenir compte de la casse. Toute divergence — un
// seul caractère modifié suffit — invalide la réponse.
func VerifyCallback(query url.Values) bool {
	received := query.Get("vnp_SecureHash")
	if received == "" {
		return false
	}

	params := make(map[string]string, len(query))
	for k := range query {
		if k == "vnp_SecureHash" || k == "vnp_SecureHashType" {
			continue
		}
		params[k] = query.Get(k)
	}

	expected := SecureHash(params, os.Getenv("VNPAY_HASH_SECRET"))
	return strings.EqualFold(expected, received)
}

// GeneratePaymentQR encode l'URL de paiement en QR base64, prêt pour un
// <img src="..."> côté mobile.
func GeneratePaymentQR(paymentURL string) (string, error) {
	png, err := qrcode.Encode(paymentURL, qrcode.Medium, 256)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

package user

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math/big"
	"net/http"
	"time"

	"fleura_back_end/internal/cache"
	"fleura_back_end/internal/database"
	"fleura_back_end/internal/middleware"
	"fleura_back_end/internal/models"
	"fleura_back_end/internal/tokens"
	"fleura_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	verificationTTL  = 15 * time.Minute
	authCookieName   = "auth_token"
	authCookieMaxAge = 24 * 60 * 60
)

// pendingRegistration : inscription en attente de vérification d'email.
// Vit uniquement dans le token store — l'utilisateur n'existe pas en base
// tant que le code n'est pas validé.
type pendingRegistration struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"password_hash"`
}

// ================== INSCRIPTION & VÉRIFICATION ==================

// POST /api/auth/register
func Register(c *gin.Context) {
	var input struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, http.StatusBadRequest, "Données invalides", err.Error())
		return
	}

	// email déjà pris ?
	var existing models.User
	err := database.DB.Where("email = ?", input.Email).First(&existing).Error
	if err == nil {
		utils.Fail(c, http.StatusConflict, "Un compte avec cet email existe déjà")
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.FailFromError(c, err)
		return
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		utils.FailFromError(c, err)
		return
	}

	pending := pendingRegistration{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hashedPassword,
	}
	payload, _ := json.Marshal(pending)

	code := generateVerificationCode()
	ctx := context.Background()
	if err := tokens.Default.Put(ctx, "pending_reg:"+input.Email, string(payload), verificationTTL); err != nil {
		utils.FailFromError(c, err)
		return
	}
	if err := tokens.Default.Put(ctx, "verify_code:"+input.Email, code, verificationTTL); err != nil {
		utils.FailFromError(c, err)
		return
	}

	go func() {
		html := utils.GenerateVerificationEmailHTML(input.Name, code)
		if err := utils.SendEmail(input.Email, "Votre code de vérification Fleura", html, nil); err != nil {
			log.Printf("❌ Erreur envoi email de vérification à %s: %v", input.Email, err)
		}
	}()

	utils.OK(c, http.StatusOK, "Un code de vérification a été envoyé par email", gin.H{
		"email": input.Email,
	})
}

// POST /api/auth/verify-email
func VerifyEmail(c *gin.Context) {
	var input struct {
		Email string `json:"email" binding:"required,email"`
		Code  string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, http.StatusBadRequest, "Données invalides", err.Error())
		return
	}

	ctx := context.Background()
	code, err := tokens.Default.Get(ctx, "verify_code:"+input.Email)
	if err != nil || code != input.Code {
		utils.Fail(c, http.StatusUnauthorized, "Code invalide ou expiré")
		return
	}

	// usage unique : on consomme l'inscription en attente
	payload, err := tokens.Default.Take(ctx, "pending_reg:"+input.Email)
	if err != nil {
		utils.Fail(c, http.StatusUnauthorized, "Inscription expirée, veuillez recommencer")
		return
	}
	tokens.Default.Delete(ctx, "verify_code:"+input.Email)

	var pending pendingRegistration
	if err := json.Unmarshal([]byte(payload), &pending); err != nil {
		utils.FailFromError(c, err)
		return
	}

	user := models.User{
		Name:     pending.Name,
		Email:    pending.Email,
		Password: pending.PasswordHash,
		Role:     models.RoleCustomer,
		Provider: "local",
	}
	if err := database.DB.Create(&user).Error; err != nil {
		utils.FailFromError(c, err)
		return
	}

	go func() {
		html := utils.GenerateWelcomeEmailHTML(user.Name)
		if err := utils.SendEmail(user.Email, "Bienvenue chez Fleura 🌸", html, nil); err != nil {
			log.Printf("❌ Erreur envoi email de bienvenue à %s: %v", user.Email, err)
		}
	}()

	token, err := utils.GenerateJWT(user)
	if err != nil {
		utils.FailFromError(c, err)
		return
	}
	setAuthCookie(c, token)

	log.Printf("🆕 Compte vérifié et créé : %s", user.Email)
	utils.OK(c, http.StatusCreated, "Compte créé avec succès", gin.H{
		"token": token,
		"user":  user,
	})
}

// ================== LOGIN / LOGOUT ==================

// POST /api/auth/login
func Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, http.StatusBadRequest, "Données invalides", err.Error())
		return
	}

	var user models.User
	err := database.DB.Where("email = ? AND provider = ?", input.Email, "local").First(&user).Error
	if err != nil {
		utils.Fail(c, http.StatusUnauthorized, "Email ou mot de passe incorrect")
		return
	}

	valid, err := utils.VerifyPassword(input.Password, user.Password)
	if err != nil || !valid {
		utils.Fail(c, http.StatusUnauthorized, "Email ou mot de passe incorrect")
		return
	}

	token, err := utils.GenerateJWT(user)
	if err != nil {
		utils.FailFromError(c, err)
		return
	}
	setAuthCookie(c, token)

	utils.OK(c, http.StatusOK, "Connexion réussie", gin.H{
		"token": token,
		"user":  user,
	})
}

// POST /api/auth/logout
func Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(authCookieName, "", -1, "/", "", true, true)
	utils.OK(c, http.StatusOK, "Déconnexion réussie", nil)
}

// GET /api/auth/me
func Me(c *gin.Context) {
	_, user, err := middleware.ResolveActor(c.GetString("user_id"))
	if err != nil {
		utils.FailFromError(c, err)
		return
	}
	utils.OK(c, http.StatusOK, "", user)
}

// PUT /api/auth/profile
func UpdateProfile(c *gin.Context) {
	_, user, err := middleware.ResolveActor(c.GetString("user_id"))
	if err != nil {
		utils.FailFromError(c, err)
		return
	}

	var input struct {
		Name    string `json:"name"`
		Phone   string `json:"phone"`
		Address string `json:"address"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, http.StatusBadRequest, "Données invalides", err.Error())
		return
	}

	if input.Name != "" {
		user.Name = input.Name
	}
	user.Phone = input.Phone
	user.Address = input.Address

	if err := database.DB.Save(user).Error; err != nil {
		utils.FailFromError(c, err)
		return
	}
	cache.InvalidateUserCache(user.PublicID)

	utils.OK(c, http.StatusOK, "Profil mis à jour", user)
}

// ================== UTILITAIRES ==================

// Le cookie porte le même JWT que le body — flag de session auxiliaire
// pour le front servi sur le même domaine.
func setAuthCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(authCookieName, token, authCookieMaxAge, "/", "", true, true)
}

func generateVerificationCode() string {
	n, _ := rand.Int(rand.Reader, big.NewInt(1000000))
	return fmt.Sprintf("%06d", n.Int64())
}

package user

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"fleura_back_end/internal/cache"
	"fleura_back_end/internal/database"
	"fleura_back_end/internal/middleware"
	"fleura_back_end/internal/models"
	"fleura_back_end/internal/tokens"
	"fleura_back_end/internal/utils"

	"github.com/gin-gonic/gin"
)

const resetTokenTTL = 1 * time.Hour

// ================== CHANGE PASSWORD (avec ancien mot de passe) ==================

// POST /api/auth/change-password
func ChangePassword(c *gin.Context) {
	_, u, err := middleware.ResolveActor(c.GetString("user_id"))
	if err != nil {
		utils.FailFromError(c, err)
		return
	}

	var input struct {
		OldPassword string `json:"oldPassword" binding:"required"`
		NewPassword string `json:"newPassword" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, http.StatusBadRequest, "Le nouveau mot de passe doit contenir au moins 8 caractères", err.Error())
		return
	}

	// Les comptes OAuth n'ont pas de mot de passe local
	if u.Provider != "local" {
		utils.Fail(c, http.StatusBadRequest, "Les comptes OAuth ne peuvent pas changer de mot de passe ici")
		return
	}

	valid, err := utils.VerifyPassword(input.OldPassword, u.Password)
	if err != nil || !valid {
		utils.Fail(c, http.StatusUnauthorized, "Ancien mot de passe incorrect")
		return
	}

	hashedPassword, err := utils.HashPassword(input.NewPassword)
	if err != nil {
		utils.FailFromError(c, err)
		return
	}

	u.Password = hashedPassword
	if err := database.DB.Save(u).Error; err != nil {
		utils.FailFromError(c, err)
		return
	}
	cache.InvalidateUserCache(u.PublicID)

	utils.OK(c, http.StatusOK, "Mot de passe changé avec succès", nil)
}

// ================== FORGOT / RESET PASSWORD ==================

// POST /api/auth/forgot-password
func ForgotPassword(c *gin.Context) {
	var input struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, http.StatusBadRequest, "Email requis", err.Error())
		return
	}

	// ⚠️ Ne jamais révéler si l'email existe ou non
	const neutral = "Si cet email existe, un lien de réinitialisation a été envoyé"

	var u models.User
	err := database.DB.Where("email = ? AND provider = ?", input.Email, "local").First(&u).Error
	if err != nil {
		utils.OK(c, http.StatusOK, neutral, nil)
		return
	}

	resetToken := generateResetToken()
	ctx := context.Background()
	if err := tokens.Default.Put(ctx, "reset_token:"+resetToken, u.PublicID, resetTokenTTL); err != nil {
		log.Printf("❌ Erreur sauvegarde token reset: %v", err)
		utils.FailFromError(c, err)
		return
	}

	go sendPasswordResetEmail(u.Email, u.Name, resetToken)

	utils.OK(c, http.StatusOK, neutral, nil)
}

// POST /api/auth/reset-password
func ResetPassword(c *gin.Context) {
	var input struct {
		Token       string `json:"token" binding:"required"`
		NewPassword string `json:"newPassword" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.Fail(c, http.StatusBadRequest, "Le mot de passe doit contenir au moins 8 caractères", err.Error())
		return
	}

	// usage unique : Take consomme le token
	ctx := context.Background()
	userPublicID, err := tokens.Default.Take(ctx, "reset_token:"+input.Token)
	if err != nil {
		utils.Fail(c, http.StatusUnauthorized, "Token invalide ou expiré")
		return
	}

	var u models.User
	if err := database.DB.Where("public_id = ?", userPublicID).First(&u).Error; err != nil {
		utils.Fail(c, http.StatusNotFound, "Utilisateur introuvable")
		return
	}

	hashedPassword, err := utils.HashPassword(input.NewPassword)
	if err != nil {
		utils.FailFromError(c, err)
		return
	}

	u.Password = hashedPassword
	if err := database.DB.Save(&u).Error; err != nil {
		utils.FailFromError(c, err)
		return
	}
	cache.InvalidateUserCache(u.PublicID)

	utils.OK(c, http.StatusOK, "Mot de passe réinitialisé avec succès", nil)
}

// ================== UTILITAIRES ==================

func generateResetToken() string {
	b := make([]byte, 32)
	rand.Read(b)
	return base64.URLEncoding.EncodeToString(b)
}

func sendPasswordResetEmail(email, name, token string) {
	baseURL := os.Getenv("FRONTEND_URL")
	if baseURL == "" {
		baseURL = "http://localhost:5173"
	}
	resetLink := fmt.Sprintf("%s/reset-password?token=%s", baseURL, token)

	html := utils.GeneratePasswordResetHTML(name, resetLink)
	if err := utils.SendEmail(email, "Réinitialisation de votre mot de passe Fleura", html, nil); err != nil {
		log.Printf("❌ Erreur envoi email reset à %s: %v", email, err)
	} else {
		log.Printf("✅ Email de réinitialisation envoyé à %s", email)
	}
}

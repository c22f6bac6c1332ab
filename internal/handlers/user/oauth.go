package user

import (
	"errors"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"

	"fleura_back_end/internal/database"
	"fleura_back_end/internal/models"
	"fleura_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/markbates/goth"
	"github.com/markbates/goth/gothic"
	"gorm.io/gorm"
)

// ================== AUTH SOCIALE (WEB) ==================

// GET /api/auth/:provider
func BeginAuth(c *gin.Context) {
	provider := c.Param("provider")
	if provider == "" {
		utils.Fail(c, http.StatusBadRequest, "Aucun provider spécifié")
		return
	}

	q := c.Request.URL.Query()
	q.Set("provider", provider)
	c.Request.URL.RawQuery = q.Encode()

	gothic.BeginAuthHandler(c.Writer, c.Request)
}

// GET /api/auth/:provider/callback
func CallbackAuth(c *gin.Context) {
	provider := c.Param("provider")

	q := c.Request.URL.Query()
	q.Set("provider", provider)
	c.Request.URL.RawQuery = q.Encode()

	gothUser, err := gothic.CompleteUserAuth(c.Writer, c.Request)
	if err != nil {
		log.Printf("❌ Erreur callback OAuth (%s): %v", provider, err)
		utils.Fail(c, http.StatusBadRequest, "Paramètres OAuth invalides")
		return
	}

	u, err := findOrCreateOAuthUser(provider, gothUser)
	if err != nil {
		utils.FailFromError(c, err)
		return
	}

	token, err := utils.GenerateJWT(*u)
	if err != nil {
		utils.FailFromError(c, err)
		return
	}
	setAuthCookie(c, token)

	redirectURI := os.Getenv("FRONTEND_URL")
	if redirectURI == "" {
		redirectURI = "http://localhost:5173"
	}

	sep := "?"
	if strings.Contains(redirectURI, "?") {
		sep = "&"
	}
	c.Redirect(http.StatusTemporaryRedirect, redirectURI+sep+"token="+url.QueryEscape(token))
}

// ================== UTILITAIRES ==================

// findOrCreateOAuthUser : recherche par (provider, provider_id), puis par
// email pour fusionner un compte local existant, sinon création.
func findOrCreateOAuthUser(provider string, gothUser goth.User) (*models.User, error) {
	var u models.User

	err := database.DB.Where("provider = ? AND provider_id = ?", provider, gothUser.UserID).First(&u).Error
	if err == nil {
		log.Printf("✅ Utilisateur OAuth existant trouvé : %s", u.Email)
		return &u, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// Compte local avec le même email → fusion
	err = database.DB.Where("email = ?", gothUser.Email).First(&u).Error
	if err == nil {
		u.Provider = provider
		u.ProviderID = gothUser.UserID
		if u.Name == "" {
			u.Name = gothUser.Name
		}
		if err := database.DB.Save(&u).Error; err != nil {
			return nil, err
		}
		log.Printf("🔄 Compte existant fusionné avec provider %s : %s", provider, u.Email)
		return &u, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	u = models.User{
		Name:       gothUser.Name,
		Email:      gothUser.Email,
		Role:       models.RoleCustomer,
		Provider:   provider,
		ProviderID: gothUser.UserID,
	}
	if err := database.DB.Create(&u).Error; err != nil {
		return nil, err
	}
	log.Printf("🆕 Utilisateur OAuth créé (%s) : %s", provider, u.Email)
	return &u, nil
}

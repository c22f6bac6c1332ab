package middleware

import (
	"fmt"

	"fleura_back_end/internal/cache"
	"fleura_back_end/internal/models"
	"fleura_back_end/internal/services"
)

// ResolveActor traduit le PublicID du JWT en identité interne pour les
// règles métier. Passe par le cache utilisateur Redis.
func ResolveActor(userPublicID string) (services.Actor, *models.User, error) {
	if userPublicID == "" {
		return services.Actor{}, nil, fmt.Errorf("resolve actor: %w", services.ErrUnauthorized)
	}

	user, err := cache.GetUserFromCache(userPublicID)
	if err != nil {
		return services.Actor{}, nil, fmt.Errorf("utilisateur %s: %w", userPublicID, services.ErrUnauthorized)
	}

	return services.Actor{ID: user.ID, Role: user.Role}, user, nil
}

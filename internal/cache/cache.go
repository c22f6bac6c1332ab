package cache

import (
	"context"
	"encoding/json"
	"time"

	"fleura_back_end/internal/database"
	"fleura_back_end/internal/models"
)

const (
	UserCacheTTL   = 5 * time.Minute
	FlowerCacheTTL = 10 * time.Minute
)

// GetUserFromCache récupère un utilisateur depuis Redis, sinon depuis la
// base SQL, et remplit le cache au passage.
func GetUserFromCache(publicID string) (*models.User, error) {
	ctx := context.Background()
	key := "user:" + publicID

	// 1. Essayer le cache Redis
	if database.Redis != nil {
		if data, err := database.Redis.Get(ctx, key).Result(); err == nil {
			var user models.User
			if json.Unmarshal([]byte(data), &user) == nil {
				return &user, nil
			}
		}
	}

	// 2. Base SQL
	var user models.User
	if err := database.DB.Where("public_id = ?", publicID).First(&user).Error; err != nil {
		return nil, err
	}

	// 3. Mettre en cache
	if database.Redis != nil {
		jsonData, _ := json.Marshal(user)
		database.Redis.Set(ctx, key, jsonData, UserCacheTTL)
	}

	return &user, nil
}

// InvalidateUserCache invalide le cache d'un utilisateur
func InvalidateUserCache(publicID string) {
	if database.Redis == nil {
		return
	}
	database.Redis.Del(context.Background(), "user:"+publicID)
}

// GetFlowerFromCache récupère une fiche fleur (avec catégorie et annonces)
// depuis Redis ou la base SQL.
func GetFlowerFromCache(publicID string) (*models.Flower, error) {
	ctx := context.Background()
	key := "flower:" + publicID

	if database.Redis != nil {
		if data, err := database.Redis.Get(ctx, key).Result(); err == nil {
			var flower models.Flower
			if json.Unmarshal([]byte(data), &flower) == nil {
				return &flower, nil
			}
		}
	}

	var flower models.Flower
	err := database.DB.Preload("Category").Preload("Listings").Preload("Listings.Supplier").
		Where("public_id = ?", publicID).First(&flower).Error
	if err != nil {
		return nil, err
	}

	if database.Redis != nil {
		jsonData, _ := json.Marshal(flower)
		database.Redis.Set(ctx, key, jsonData, FlowerCacheTTL)
	}

	return &flower, nil
}

// InvalidateFlowerCache invalide le cache d'une fleur
func InvalidateFlowerCache(publicID string) {
	if database.Redis == nil {
		return
	}
	database.Redis.Del(context.Background(), "flower:"+publicID)
}

package user

import (
	"context"
	"log"
	"net/http"
	"time"

	"fleura_back_end/internal/database"
	"fleura_back_end/internal/middleware"
	"fleura_back_end/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Autoriser toutes les origines (à ajuster en production)
		return true
	},
}

// CartWebSocket pousse le badge panier (items, total, count) à chaque
// changement, via le canal Redis cart:<user>.
func CartWebSocket(c *gin.Context) {
	userPublicID := c.GetString("user_id")
	actor, _, err := middleware.ResolveActor(userPublicID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("❌ Erreur upgrade WebSocket: %v", err)
		return
	}
	defer conn.Close()

	ctx := context.Background()
	pubsub := database.Redis.Subscribe(ctx, "cart:"+userPublicID)
	defer pubsub.Close()
	ch := pubsub.Channel()

	conn.WriteJSON(map[string]interface{}{
		"type":    "connected",
		"message": "Synchronisation panier activée",
	})

	for {
		select {
		case msg := <-ch:
			if msg.Payload != "updated" && msg.Payload != "cleared" {
				continue
			}

			cart, err := services.GetOrCreateActiveCart(database.DB, actor.ID)
			if err != nil {
				log.Printf("❌ Erreur lecture panier (ws): %v", err)
				continue
			}

			response := map[string]interface{}{
				"type":  "cart_updated",
				"items": cart.Items,
				"total": cart.Total(),
				"count": len(cart.Items),
			}
			if err := conn.WriteJSON(response); err != nil {
				log.Printf("❌ Erreur envoi WebSocket: %v", err)
				return
			}
		case <-time.After(30 * time.Second):
			// Ping pour garder la connexion active
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

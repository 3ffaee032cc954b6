package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"padelmania/internal/cart"
	"padelmania/internal/middleware"
)

const cartPingInterval = 30 * time.Second

var upgrader = websocket.Upgrader{
	// Origins are already enforced by the CORS middleware.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// CartWebSocket handles GET /api/cart/ws: it pushes the cart summary every
// time another tab of the same session changes the cart.
func (h *Handler) CartWebSocket(c *gin.Context) {
	sessionID := middleware.SessionID(c)
	if sessionID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Sesión no iniciada"})
		return
	}
	if h.Subscriber == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Sincronización no disponible"})
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	key := cart.Key(sessionID)
	pubsub, err := h.Subscriber.Subscribe(ctx, key)
	if err != nil {
		h.Log.Error("cart subscribe", zap.String("key", key), zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Sincronización no disponible"})
		return
	}
	defer pubsub.Close()

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.Log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	// Drain client frames so close and pong control messages are processed.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if err := conn.WriteJSON(gin.H{
		"type":    "connected",
		"message": "Sincronización del carrito activada",
	}); err != nil {
		return
	}

	ch := pubsub.Channel()
	ticker := time.NewTicker(cartPingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if msg.Payload != cart.EventUpdated && msg.Payload != cart.EventCleared {
				continue
			}
			store := cart.Load(ctx, h.Carts, key, h.Catalog, cart.WithLogger(h.Log))
			resp := h.cartSummary(ctx, store)
			resp["type"] = "cart_updated"
			resp["event"] = msg.Payload
			if err := conn.WriteJSON(resp); err != nil {
				h.Log.Debug("websocket write failed", zap.Error(err))
				return
			}
		case <-ticker.C:
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

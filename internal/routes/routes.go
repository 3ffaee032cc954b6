package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"

	"padelmania/internal/handlers"
	"padelmania/internal/middleware"
)

// Options configure the middleware around the API.
type Options struct {
	AllowedOrigins []string
	Sessions       sessions.Store
	Limiter        middleware.RateCounter
	ChatRateLimit  int
	Log            *zap.Logger
}

func RegisterRoutes(r *gin.Engine, h *handlers.Handler, opts Options) {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}

	r.Use(gin.Recovery())
	r.Use(middleware.AuditRequests(log))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     opts.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", middleware.SessionHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.SessionHeader, "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Probes
	r.GET("/health", h.Health)
	r.GET("/ready", h.Ready)

	api := r.Group("/api")
	api.Use(middleware.Session(opts.Sessions, log))

	// Catalog
	api.GET("/catalog/status", h.CatalogStatus)
	api.GET("/products", h.ListProducts)
	api.GET("/products/:id", h.GetProduct)
	api.POST("/products/:id/description", h.GenerateDescription)

	// Cart
	cartLimit := middleware.RateLimit(opts.Limiter, "cart", middleware.CartMaxRequests, middleware.CartWindow,
		"Demasiados cambios en el carrito, esperá un momento", log)
	cart := api.Group("/cart")
	{
		cart.GET("", h.GetCart)
		cart.GET("/ws", h.CartWebSocket)
		cart.GET("/checkout", h.Checkout)
		cart.GET("/checkout/qr", h.CheckoutQR)
		cart.POST("/add", cartLimit, h.AddToCart)
		cart.PUT("/:productId", cartLimit, h.UpdateCartItem)
		cart.DELETE("/clear", cartLimit, h.ClearCart)
		cart.DELETE("/:productId", cartLimit, h.RemoveFromCart)
	}

	// Chat
	chatLimit := middleware.RateLimit(opts.Limiter, "chat", opts.ChatRateLimit, middleware.ChatWindow,
		"Demasiados mensajes, esperá un momento", log)
	chat := api.Group("/chat")
	{
		chat.GET("", h.GetChat)
		chat.DELETE("", h.ResetChat)
		chat.POST("/messages", chatLimit, h.PostMessage)
		chat.POST("/quick-replies/:action", chatLimit, h.QuickReply)
	}

	api.POST("/contact",
		middleware.RateLimit(opts.Limiter, "contact", middleware.ContactMaxRequests, middleware.ContactWindow,
			"Ya recibimos tus mensajes, intentá más tarde", log),
		h.SendContact)
}

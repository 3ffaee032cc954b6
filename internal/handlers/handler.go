package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"padelmania/internal/cart"
	"padelmania/internal/catalog"
	"padelmania/internal/chatbot"
	"padelmania/internal/describe"
	"padelmania/internal/middleware"
	"padelmania/internal/recommend"
	"padelmania/internal/search"
	"padelmania/internal/services"
)

// CartSubscriber delivers the events published for one cart key.
type CartSubscriber interface {
	Subscribe(ctx context.Context, key string) (*redis.PubSub, error)
}

// Pricing holds the shop-wide pricing settings.
type Pricing struct {
	Installments          int
	FreeShippingThreshold float64
}

// Deps are the collaborators of the HTTP handlers. Optional ones are nil
// when the backing service is not configured.
type Deps struct {
	Catalog     *catalog.Catalog
	Carts       cart.Storage
	Notifier    cart.Notifier  // optional
	Subscriber  CartSubscriber // optional
	Index       *search.Index  // optional
	Sampler     *recommend.Sampler
	Describer   *describe.Generator
	Chats       *chatbot.Sessions
	Images      *services.ImageResolver
	WhatsApp    *services.WhatsApp
	Mailer      services.ContactSender
	Pricing     Pricing
	ReadyChecks map[string]func(context.Context) error
	Log         *zap.Logger
}

type Handler struct {
	Deps
}

func New(d Deps) *Handler {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	return &Handler{Deps: d}
}

// sessionCart loads the cart of the calling session.
func (h *Handler) sessionCart(c *gin.Context) (*cart.Store, bool) {
	id := middleware.SessionID(c)
	if id == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Sesión no iniciada"})
		return nil, false
	}
	opts := []cart.Option{cart.WithLogger(h.Log)}
	if h.Notifier != nil {
		opts = append(opts, cart.WithNotifier(h.Notifier))
	}
	return cart.Load(c.Request.Context(), h.Carts, cart.Key(id), h.Catalog, opts...), true
}

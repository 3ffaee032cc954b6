package routes

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"padelmania/internal/cache"
	"padelmania/internal/cart"
	"padelmania/internal/catalog"
	"padelmania/internal/chatbot"
	"padelmania/internal/describe"
	"padelmania/internal/handlers"
	"padelmania/internal/middleware"
	"padelmania/internal/models"
	"padelmania/internal/recommend"
	"padelmania/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T, chatLimit int) *gin.Engine {
	t.Helper()
	cat := catalog.New([]models.Product{
		{ID: "1", Title: "PadelNature Pro", Category: "pelotas", Price: 15000, Images: []string{}, Stock: 5, Tags: []string{}, Description: "Pelota."},
	})
	sampler := recommend.New()
	describer, err := describe.New()
	require.NoError(t, err)

	h := handlers.New(handlers.Deps{
		Catalog:   cat,
		Carts:     cart.NewMemoryStorage(),
		Sampler:   sampler,
		Describer: describer,
		Chats:     chatbot.NewSessions(chatbot.New(cat, sampler), 0),
		Images:    services.NewImageResolver(nil, "", "", nil),
		WhatsApp:  services.NewWhatsApp("5491234567890", 6, 50000),
		Mailer:    services.NewLogMailer(zap.NewNop()),
		Pricing:   handlers.Pricing{Installments: 6, FreeShippingThreshold: 50000},
	})

	r := gin.New()
	RegisterRoutes(r, h, Options{
		AllowedOrigins: []string{"http://localhost:5173"},
		Sessions:       middleware.NewCookieStore("test-secret", false),
		Limiter:        cache.NewMemoryRateCounter(),
		ChatRateLimit:  chatLimit,
	})
	return r
}

func TestRoutes_Registered(t *testing.T) {
	r := newTestRouter(t, 30)

	registered := map[string]bool{}
	for _, ri := range r.Routes() {
		registered[ri.Method+" "+ri.Path] = true
	}
	for _, want := range []string{
		"GET /health",
		"GET /ready",
		"GET /api/catalog/status",
		"GET /api/products",
		"GET /api/products/:id",
		"POST /api/products/:id/description",
		"GET /api/cart",
		"POST /api/cart/add",
		"PUT /api/cart/:productId",
		"DELETE /api/cart/:productId",
		"DELETE /api/cart/clear",
		"GET /api/cart/ws",
		"GET /api/cart/checkout",
		"GET /api/cart/checkout/qr",
		"GET /api/chat",
		"POST /api/chat/messages",
		"POST /api/chat/quick-replies/:action",
		"POST /api/contact",
	} {
		assert.True(t, registered[want], want)
	}
}

func TestRoutes_CORS(t *testing.T) {
	r := newTestRouter(t, 30)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/cart", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", middleware.SessionHeader)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.Header.Set("Origin", "http://evil.example.com")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRoutes_ChatIsRateLimited(t *testing.T) {
	r := newTestRouter(t, 2)

	post := func() int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/chat/messages", strings.NewReader(`{"text": "hola"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(middleware.SessionHeader, "limited-session")
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, post())
	assert.Equal(t, http.StatusOK, post())
	assert.Equal(t, http.StatusTooManyRequests, post())
}

func TestRoutes_IssuesSessionCookie(t *testing.T) {
	r := newTestRouter(t, 30)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/cart", nil))
	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, middleware.SessionCookieName, cookies[0].Name)
}

package middleware

import (
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

const (
	SessionCookieName = "padelmania_session"
	SessionHeader     = "X-Session-ID"
	sessionIDKey      = "session_id"
	sessionMaxAge     = 86400 * 30
)

var validSessionID = regexp.MustCompile(`^[A-Za-z0-9_-]{8,64}$`)

// NewCookieStore builds the signed cookie store holding the anonymous
// session id.
func NewCookieStore(secret string, secure bool) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(secret))
	store.MaxAge(sessionMaxAge)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   sessionMaxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// Session attaches an anonymous session id to the request. Clients that
// cannot keep cookies send it in the X-Session-ID header; everyone else gets
// a cookie with a generated id.
func Session(store sessions.Store, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id := c.GetHeader(SessionHeader); id != "" {
			if !validSessionID.MatchString(id) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Identificador de sesión inválido"})
				c.Abort()
				return
			}
			c.Set(sessionIDKey, id)
			c.Next()
			return
		}

		// A cookie that fails to decode yields a fresh session rather than an error.
		sess, err := store.Get(c.Request, SessionCookieName)
		if err != nil {
			log.Debug("discarding unreadable session cookie", zap.Error(err))
		}
		id, _ := sess.Values["id"].(string)
		if id == "" {
			id = uuid.NewString()
			sess.Values["id"] = id
			if err := sess.Save(c.Request, c.Writer); err != nil {
				log.Error("save session cookie", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo iniciar la sesión"})
				c.Abort()
				return
			}
		}

		c.Set(sessionIDKey, id)
		c.Next()
	}
}

// SessionID returns the id set by Session, or "" outside of it.
func SessionID(c *gin.Context) string {
	return c.GetString(sessionIDKey)
}

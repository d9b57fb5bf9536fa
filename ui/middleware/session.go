package middleware

import (
	"net/http"
	"time"

	"edaviz/internal/session"

	"github.com/gin-gonic/gin"
)

const sessionKey = "session"

// EnsureSession attaches the visitor's session to the request, starting a new
// one and setting the cookie when the request carries none that is still live
func EnsureSession(store *session.Store, cookieName string, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, _ := c.Cookie(cookieName)
		sess, created := store.Resolve(raw)
		if created {
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(cookieName, sess.ID.String(), int(ttl.Seconds()), "/", "", false, true)
		}

		c.Set(sessionKey, sess)
		c.Next()
	}
}

// CurrentSession returns the session attached by EnsureSession
func CurrentSession(c *gin.Context) *session.Session {
	return c.MustGet(sessionKey).(*session.Session)
}

// internal/middleware/auth.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/proglide/admin-console/internal/i18n"
	"github.com/proglide/admin-console/internal/session"
	"github.com/proglide/admin-console/internal/utils"
)

const sessionKey = "session"

// Authenticator resolves a bearer token to its session.
type Authenticator interface {
	Authenticate(token string) (*session.Session, error)
}

func SessionRequired(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := utils.GetLangFromContext(c)

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthRequired))
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthInvalidToken))
			c.Abort()
			return
		}

		sess, err := auth.Authenticate(parts[1])
		if err != nil {
			utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthTokenExpired))
			c.Abort()
			return
		}

		c.Set(sessionKey, sess)
		c.Set("session_id", sess.ID)
		c.Next()
	}
}

// GetSession returns the session set by SessionRequired.
func GetSession(c *gin.Context) (*session.Session, bool) {
	v, exists := c.Get(sessionKey)
	if !exists {
		return nil, false
	}
	sess, ok := v.(*session.Session)
	return sess, ok
}

package middleware

import (
	"net/http"
	"strings"

	"tasknest/backend/internal/token"

	"github.com/gin-gonic/gin"
)

// SessionCookie is the cookie carrying the signed session token.
const SessionCookie = "token"

// RequireSession protects /api routes. It reads the session cookie, verifies
// it, and stores the decoded user id in the request context. No database
// access happens before this check passes.
func RequireSession(codec *token.Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := c.Cookie(SessionCookie)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "missing_token",
				"message": "No token provided",
			})
			return
		}

		userID, err := codec.Verify(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "invalid_token",
				"message": "Invalid token",
			})
			return
		}

		c.Set("user_id", userID.String())
		c.Next()
	}
}

// PageGuard redirects browser navigation by token validity: unauthenticated
// requests to the dashboard go to /login, authenticated requests to the
// login/register pages go to /dashboard. Everything else passes through.
func PageGuard(codec *token.Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path

		valid := false
		if tokenStr, err := c.Cookie(SessionCookie); err == nil {
			if _, err := codec.Verify(tokenStr); err == nil {
				valid = true
			}
		}

		if strings.HasPrefix(path, "/dashboard") && !valid {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		if (path == "/login" || path == "/register") && valid {
			c.Redirect(http.StatusFound, "/dashboard")
			c.Abort()
			return
		}

		c.Next()
	}
}

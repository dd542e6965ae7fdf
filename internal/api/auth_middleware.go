package api

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/WiktorStarczewski/miden-arena/internal/constants"
	"github.com/gin-gonic/gin"
)

// setSessionCookie installs the session cookie. The Secure flag follows
// SESSION_SECURE_COOKIE so local development over plain HTTP still works.
func setSessionCookie(c *gin.Context, token string, ttl time.Duration) {
	secure := os.Getenv(constants.EnvSessionSecureCookie) == "1"
	c.SetCookie(constants.CookieSessionName, token, int(ttl.Seconds()), "/", "", secure, true)
}

// clearSessionCookie expires the session cookie immediately.
func clearSessionCookie(c *gin.Context) {
	c.SetCookie(constants.CookieSessionName, "", -1, "/", "", false, true)
}

// sessionToken pulls the token from the cookie, falling back to a bearer
// Authorization header for non-browser clients.
func sessionToken(c *gin.Context) string {
	if token, err := c.Cookie(constants.CookieSessionName); err == nil && token != "" {
		return token
	}
	auth := c.GetHeader(constants.HeaderAuthorization)
	if strings.HasPrefix(auth, constants.BearerPrefix) {
		return strings.TrimPrefix(auth, constants.BearerPrefix)
	}
	return ""
}

func abortUnauthorized(c *gin.Context, reason string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: reason})
}

// AuthRequired validates the session and injects the player identity into
// the request context.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessionToken(c)
		if token == "" {
			abortUnauthorized(c, constants.ErrAuthRequired)
			return
		}
		claims, err := parseAndValidateSession(token)
		if err != nil {
			abortUnauthorized(c, constants.ErrInvalidSession)
			return
		}
		c.Set("account", claims.Account)
		c.Set("displayName", claims.Name)
		c.Next()
	}
}

// Package middleware – bearer-token authentication.
//
// This file resolves the Authorization header into a caller identity and
// stashes it in the Gin context for downstream handlers. Resolution itself
// (signature check, expiry, user lookup, admin allow-listing) lives in the
// auth package; this middleware only owns the transport concerns:
//   - extract the "Bearer <token>" credential,
//   - reject unauthenticated requests with a compact 401 body,
//   - expose the resolved principal via PrincipalFrom.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/petreunite/go-pet-backend/internal/auth"
)

// Context keys used to stash the resolved identity. The userID key is shared
// with the logging and rate-limit middleware, which key their behavior on it.
const (
	ctxKeyPrincipal = "principal"
	ctxKeyUserID    = "userID"
)

// PrincipalFrom returns the principal stored by Authenticated. The second
// return value indicates presence.
func PrincipalFrom(c *gin.Context) (auth.Principal, bool) {
	v, ok := c.Get(ctxKeyPrincipal)
	if !ok {
		return auth.Principal{}, false
	}
	p, ok := v.(auth.Principal)
	return p, ok && p.ID != ""
}

// Authenticated enforces a valid bearer token on every request it guards.
//
// On success it stores the resolved principal under "principal" and its user
// id under "userID", then invokes the next handler. On failure it responds
// 401 with a compact error body and aborts the chain.
func Authenticated(resolver *auth.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader("Authorization"))
		token := ""
		if len(raw) > 7 && strings.EqualFold(raw[:7], "bearer ") {
			token = strings.TrimSpace(raw[7:])
		}
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    "unauthorized",
				"message": "missing bearer token",
			})
			return
		}

		p, err := resolver.Resolve(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    "unauthorized",
				"message": "invalid or expired token",
			})
			return
		}

		c.Set(ctxKeyPrincipal, p)
		c.Set(ctxKeyUserID, p.ID)
		c.Next()
	}
}

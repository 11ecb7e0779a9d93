package middleware

import (
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"portfolio-backend/internal/admin"
	"portfolio-backend/internal/models"
	"portfolio-backend/internal/session"
)

const (
	// SessionIDKey holds the jti of the authenticated session.
	SessionIDKey = "session_id"
	// SessionExpiryKey holds the expiry time of the authenticated session.
	SessionExpiryKey = "session_expires_at"
)

// AdminAuth accepts requests carrying a valid, unrevoked admin session token.
func AdminAuth(tokens *admin.Tokens, revocations session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, msg := bearerToken(c.GetHeader("Authorization"))
		if msg != "" {
			abortUnauthorized(c, msg, "")
			return
		}

		claims, err := tokens.Parse(tokenString)
		if err != nil {
			var detail string
			switch {
			case strings.Contains(err.Error(), "expired"):
				detail = "session has expired"
			case strings.Contains(err.Error(), "signature is invalid"):
				detail = "token signature is invalid"
			default:
				detail = err.Error()
			}
			abortUnauthorized(c, "invalid token", detail)
			return
		}

		revoked, err := revocations.Revoked(c.Request.Context(), claims.ID)
		if err != nil {
			log.Printf("Warning: failed to check session revocation: %v", err)
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, models.ErrorResponse{
				Error:   "session check unavailable",
				Message: err.Error(),
			})
			return
		}
		if revoked {
			abortUnauthorized(c, "invalid token", session.ErrRevoked.Error())
			return
		}

		c.Set(SessionIDKey, claims.ID)
		c.Set(SessionExpiryKey, claims.ExpiresAt.Time)
		c.Next()
	}
}

// SessionTTL is how long the current session has left.
func SessionTTL(c *gin.Context) time.Duration {
	v, ok := c.Get(SessionExpiryKey)
	if !ok {
		return 0
	}
	expires, ok := v.(time.Time)
	if !ok {
		return 0
	}
	return time.Until(expires)
}

func bearerToken(header string) (string, string) {
	if header == "" {
		return "", "missing authorization header"
	}

	// Extract token from "Bearer <token>"
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", "invalid authorization header format"
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", "empty token"
	}

	// Try URL decoding in case the token was URL-encoded
	if decoded, err := url.QueryUnescape(token); err == nil {
		token = decoded
	}

	if len(strings.Split(token, ".")) != 3 {
		return "", "invalid token format"
	}
	return token, ""
}

func abortUnauthorized(c *gin.Context, errText, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
		Error:   errText,
		Message: message,
	})
}

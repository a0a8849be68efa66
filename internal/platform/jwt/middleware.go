// Package jwtmw はHS256トークンによる権限チェックを提供します。
package jwtmw

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"angellist_widget/internal/api"
)

const (
	// CapabilityEditPosts は投稿の編集画面にアクセスできる権限です。
	CapabilityEditPosts = "edit_posts"

	// ContextSubject はgin.Contextにトークンのsubを保存するキーです。
	ContextSubject = "subject"
)

// RequireCapability returns a Gin middleware that admits only bearers of a valid
// token granting capability. Every rejection is a 403.
func RequireCapability(secret, capability string) gin.HandlerFunc {
	key := []byte(secret)
	return func(c *gin.Context) {
		if len(key) == 0 {
			// Server misconfiguration (JWT secret not set)
			c.AbortWithStatusJSON(http.StatusInternalServerError, api.ErrorResponse{Error: "server misconfigured"})
			return
		}

		// 1. Get Authorization header
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			forbid(c)
			return
		}
		tokenStr := strings.TrimPrefix(auth, "Bearer ")

		// 2. Parse and verify JWT signature
		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			// Check signing algorithm (only HMAC allowed)
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return key, nil
		})
		if err != nil || !token.Valid {
			forbid(c)
			return
		}

		// 3. Check capability
		if !claims.HasCapability(capability) {
			forbid(c)
			return
		}

		c.Set(ContextSubject, claims.Subject)
		c.Next()
	}
}

func forbid(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusForbidden, api.ErrorResponse{Error: "You do not have permission to do that."})
}

package http

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader はリクエストIDを受け渡すヘッダー名です。
const RequestIDHeader = "X-Request-ID"

// RequestIDKey はgin.Contextにリクエストidを保存するキーです。
const RequestIDKey = "request_id"

// RequestID はリクエストごとにIDを採番し、レスポンスヘッダーとアクセスログに載せます。
// クライアントが有効なUUIDを送ってきた場合はそれを引き継ぎます。
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set(RequestIDKey, id)
		c.Header(RequestIDHeader, id)

		start := time.Now()
		c.Next()

		slog.Info("request",
			"request_id", id,
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

// AllowMethods rejects any other method with 405 and an Allow header, before later handlers run.
func AllowMethods(methods ...string) gin.HandlerFunc {
	allow := strings.Join(methods, ", ")
	return func(c *gin.Context) {
		for _, m := range methods {
			if c.Request.Method == m {
				c.Next()
				return
			}
		}
		c.Header("Allow", allow)
		c.AbortWithStatus(http.StatusMethodNotAllowed)
	}
}

// IsSecureRequest reports whether the client reached us over HTTPS,
// directly or through a proxy setting X-Forwarded-Proto.
func IsSecureRequest(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}
	return strings.EqualFold(strings.TrimSpace(r.Header.Get("X-Forwarded-Proto")), "https")
}

// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"angellist_widget/internal/api"
)

// pingTimeout はヘルスチェックでRedisの応答を待つ上限です。
const pingTimeout = time.Second

// HealthHandler はサービスヘルスチェック用の /healthz エンドポイントを処理します。
type HealthHandler struct {
	rdb *redis.Client
}

// NewHealthHandler は新しいHealthHandlerを作成します。
// rdbがnilの場合（メモリキャッシュ運用）はRedisの確認を行いません。
func NewHealthHandler(rdb *redis.Client) *HealthHandler {
	return &HealthHandler{rdb: rdb}
}

// Health はHTTPメソッドに応じて適切にレスポンスし、キャッシュを防止します。
// Redisが設定されていて応答しない場合は503を返します。
func (h *HealthHandler) Health(c *gin.Context) {
	// 明示的にキャッシュを防止
	c.Header("Cache-Control", "no-store")

	if c.Request.Method == http.MethodOptions {
		c.Status(http.StatusNoContent)
		return
	}

	res := api.HealthResponse{Status: "ok"}
	status := http.StatusOK
	if h.rdb != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
		defer cancel()
		if err := h.rdb.Ping(ctx).Err(); err != nil {
			slog.Warn("health check: redis ping failed", "error", err)
			res = api.HealthResponse{Status: "degraded", Redis: "down"}
			status = http.StatusServiceUnavailable
		} else {
			res.Redis = "up"
		}
	}

	if c.Request.Method == http.MethodHead {
		c.Status(status)
		return
	}
	c.JSON(status, res)
}

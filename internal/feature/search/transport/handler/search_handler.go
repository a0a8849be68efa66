// Package handler はsearchフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"angellist_widget/internal/api"
	"angellist_widget/internal/feature/search/usecase"
)

const (
	msgQueryMissing = "Search string needed. Use q query parameter."
	msgQueryEmpty   = "No search string provided."
	msgUnavailable  = "AngelList search is unavailable."
)

// SearchUsecase はスタートアップ検索のユースケースインターフェースです。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type SearchUsecase interface {
	Search(ctx context.Context, query string) (json.RawMessage, error)
}

// SearchHandler は検索プロキシのHTTPリクエストを処理します。
type SearchHandler struct {
	uc SearchUsecase
}

// NewSearchHandler は新しいSearchHandlerを作成します。
func NewSearchHandler(uc SearchUsecase) *SearchHandler {
	return &SearchHandler{uc: uc}
}

// SearchStartups はAngelListのスタートアップ検索結果をJSON配列のまま返します。
//
// エンドポイント例:
// GET /search/startups?q=acme
func (h *SearchHandler) SearchStartups(c *gin.Context) {
	q, ok := c.GetQuery("q")
	if !ok {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: msgQueryMissing})
		return
	}

	res, err := h.uc.Search(c.Request.Context(), q)
	if err != nil {
		if errors.Is(err, usecase.ErrEmptyQuery) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: msgQueryEmpty})
			return
		}
		slog.Warn("startup search failed", "query", q, "error", err)
		c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: msgUnavailable})
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", res)
}

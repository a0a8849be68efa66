// Package handler はembedフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"angellist_widget/internal/api"
	companyentity "angellist_widget/internal/feature/company/domain/entity"
	companyhandler "angellist_widget/internal/feature/company/transport/handler"
	"angellist_widget/internal/feature/embed/domain/entity"
	"angellist_widget/internal/feature/embed/usecase"
)

// PostCompaniesUsecase は投稿の企業リストに関するユースケースインターフェースです。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type PostCompaniesUsecase interface {
	List(ctx context.Context, postID uint) (entity.PostCompanies, error)
	Replace(ctx context.Context, postID uint, ids []int) (entity.PostCompanies, error)
	RenderPost(ctx context.Context, postID uint, cfg companyentity.RenderConfig) (string, error)
}

// PostCompaniesHandler は投稿の企業リストのHTTPリクエストを処理します。
type PostCompaniesHandler struct {
	uc       PostCompaniesUsecase
	defaults companyentity.RenderConfig
}

// NewPostCompaniesHandler は新しいPostCompaniesHandlerを作成します。
func NewPostCompaniesHandler(uc PostCompaniesUsecase, defaults companyentity.RenderConfig) *PostCompaniesHandler {
	return &PostCompaniesHandler{uc: uc, defaults: defaults}
}

// List は投稿に登録された企業IDを返します。
//
// エンドポイント例:
// GET /posts/:id/companies
func (h *PostCompaniesHandler) List(c *gin.Context) {
	postID, ok := parsePostID(c)
	if !ok {
		return
	}

	pc, err := h.uc.List(c.Request.Context(), postID)
	if err != nil {
		slog.Error("failed to list post companies", "post_id", postID, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to load companies"})
		return
	}
	c.JSON(http.StatusOK, toResponse(pc))
}

// Replace は投稿の企業リストを置き換えます。重複したIDは最初の出現のみ残します。
//
// エンドポイント例:
// PUT /posts/:id/companies  {"company_ids":[42,7]}
func (h *PostCompaniesHandler) Replace(c *gin.Context) {
	postID, ok := parsePostID(c)
	if !ok {
		return
	}

	var req api.ReplacePostCompaniesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request body"})
		return
	}

	pc, err := h.uc.Replace(c.Request.Context(), postID, req.CompanyIDs)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCompanyID) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
			return
		}
		slog.Error("failed to replace post companies", "post_id", postID, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to save companies"})
		return
	}
	c.JSON(http.StatusOK, toResponse(pc))
}

// Widget は投稿の全企業ウィジェットを<ol>にまとめて返します。1社も描画できなければ204を返します。
//
// エンドポイント例:
// GET /posts/:id/widget?schema_org=true&target=_blank
func (h *PostCompaniesHandler) Widget(c *gin.Context) {
	postID, ok := parsePostID(c)
	if !ok {
		return
	}

	cfg, err := companyhandler.RenderConfigFromRequest(c, h.defaults)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	html, err := h.uc.RenderPost(c.Request.Context(), postID, cfg)
	if err != nil {
		slog.Error("failed to render post companies", "post_id", postID, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to render companies"})
		return
	}
	if html == "" {
		c.Status(http.StatusNoContent)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

func toResponse(pc entity.PostCompanies) api.PostCompaniesResponse {
	ids := pc.CompanyIDs
	if ids == nil {
		ids = []int{}
	}
	return api.PostCompaniesResponse{PostID: pc.PostID, CompanyIDs: ids}
}

func parsePostID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "post id must be a positive integer"})
		return 0, false
	}
	return uint(id), true
}

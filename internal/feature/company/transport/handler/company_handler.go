// Package handler はcompanyフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"angellist_widget/internal/api"
	"angellist_widget/internal/feature/company/domain/entity"
	"angellist_widget/internal/feature/company/usecase"
	platformhttp "angellist_widget/internal/platform/http"
)

// RenderUsecase は企業ウィジェットの描画ユースケースです。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type RenderUsecase interface {
	Render(ctx context.Context, id int, cfg entity.RenderConfig) string
}

// RolesUsecase は企業ロール取得のユースケースです。
type RolesUsecase interface {
	GetRoles(ctx context.Context, id int) ([]any, error)
}

// CompanyHandler は企業ウィジェットとロールのHTTPリクエストを処理します。
type CompanyHandler struct {
	render   RenderUsecase
	roles    RolesUsecase
	defaults entity.RenderConfig
}

// NewCompanyHandler は新しいCompanyHandlerを作成します。
// defaultsはクエリで上書きされなかった場合の描画設定です。
func NewCompanyHandler(render RenderUsecase, roles RolesUsecase, defaults entity.RenderConfig) *CompanyHandler {
	return &CompanyHandler{render: render, roles: roles, defaults: defaults}
}

// Widget は1社分のウィジェットHTMLを返します。描画結果が空の場合は204を返します。
//
// エンドポイント例:
// GET /companies/:id/widget?schema_org=false&target=_top
func (h *CompanyHandler) Widget(c *gin.Context) {
	id, ok := parseCompanyID(c)
	if !ok {
		return
	}

	cfg, err := RenderConfigFromRequest(c, h.defaults)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	html := h.render.Render(c.Request.Context(), id, cfg)
	if html == "" {
		c.Status(http.StatusNoContent)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// Roles は企業に紐づくロール一覧をJSONで返します。
//
// エンドポイント例:
// GET /companies/:id/roles
func (h *CompanyHandler) Roles(c *gin.Context) {
	id, ok := parseCompanyID(c)
	if !ok {
		return
	}

	roles, err := h.roles.GetRoles(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCompanyID) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "roles not found"})
		return
	}
	c.JSON(http.StatusOK, roles)
}

// RenderConfigFromRequest はクエリとリクエストのスキームから描画設定を組み立てます。
// target= のように空文字を明示した場合はそのまま空のブラウジングコンテキストになります。
func RenderConfigFromRequest(c *gin.Context, defaults entity.RenderConfig) (entity.RenderConfig, error) {
	schemaOrg := defaults.SchemaOrg
	if v, ok := c.GetQuery("schema_org"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return entity.RenderConfig{}, errors.New("schema_org must be a boolean")
		}
		schemaOrg = b
	}

	target := defaults.BrowsingContext
	if v, ok := c.GetQuery("target"); ok {
		target = v
	}

	return entity.NewRenderConfig(schemaOrg, target, platformhttp.IsSecureRequest(c.Request)), nil
}

func parseCompanyID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "company id must be a positive integer"})
		return 0, false
	}
	return id, true
}

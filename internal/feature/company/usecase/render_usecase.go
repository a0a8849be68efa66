// Package usecase はcompanyフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"angellist_widget/internal/feature/company/domain/entity"
)

const (
	// MarkupTTL はレンダリング済みHTMLをキャッシュする期間です。
	MarkupTTL = time.Hour
	// sharedFetchTimeout bounds a coalesced fetch that no longer follows any caller's context.
	sharedFetchTimeout = 10 * time.Second
)

// CompanyFetcher はAngelListから企業データを取得するインターフェースです。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type CompanyFetcher interface {
	// GetCompany はデコード済みのJSONオブジェクトを返します。エラーは「データなし」を意味します。
	GetCompany(ctx context.Context, id int) (map[string]any, error)
}

// MarkupCache はレンダリング済みHTMLのキャッシュを抽象化します。
type MarkupCache interface {
	// Get はキャッシュ済みのHTMLを返します。ミス時は ("", false) を返します。
	Get(ctx context.Context, key string) (string, bool)
	// Set はHTMLをTTL付きで保存します。
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// renderUsecase は企業ウィジェットの取得・正規化・キャッシュ・描画を行います。
type renderUsecase struct {
	fetcher CompanyFetcher
	cache   MarkupCache
	ttl     time.Duration
	group   singleflight.Group
}

// NewRenderUsecase はrenderUsecaseの新しいインスタンスを生成します。
// cacheがnilの場合はキャッシュを使わずに毎回取得します。
func NewRenderUsecase(fetcher CompanyFetcher, cache MarkupCache) *renderUsecase {
	return &renderUsecase{fetcher: fetcher, cache: cache, ttl: MarkupTTL}
}

// Render は企業IDと描画設定からHTML断片を返します。
// データが取得できない・非公開・必須項目が欠けている場合は空文字を返し、キャッシュしません。
func (u *renderUsecase) Render(ctx context.Context, id int, cfg entity.RenderConfig) string {
	if id < 1 {
		return ""
	}
	cfg = entity.NewRenderConfig(cfg.SchemaOrg, cfg.BrowsingContext, cfg.Secure)
	key := BuildCacheKey(id, cfg.SchemaOrg, cfg.BrowsingContext, cfg.Secure)

	// 1) Check cache
	if u.cache != nil {
		if html, ok := u.cache.Get(ctx, key); ok && html != "" {
			return html
		}
	}

	// 2) Fetch and render; identical concurrent misses share one fetch.
	// 共有の取得は呼び出し元のctxから切り離す。各呼び出し元は自分のctxで待つ
	ch := u.group.DoChan(key, func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedFetchTimeout)
		defer cancel()

		html := u.build(fetchCtx, id, cfg)
		// 3) Store in cache (best effort)
		if html != "" && u.cache != nil {
			if err := u.cache.Set(fetchCtx, key, html, u.ttl); err != nil {
				slog.Warn("failed to cache company markup", "key", key, "error", err)
			}
		}
		return html, nil
	})

	select {
	case res := <-ch:
		return res.Val.(string)
	case <-ctx.Done():
		slog.Info("company render abandoned", "company_id", id, "error", ctx.Err())
		return ""
	}
}

// build fetches, normalizes, and renders one company without touching the cache.
func (u *renderUsecase) build(ctx context.Context, id int, cfg entity.RenderConfig) string {
	raw, err := u.fetcher.GetCompany(ctx, id)
	if err != nil {
		slog.Warn("company data unavailable", "company_id", id, "error", err)
		return ""
	}

	company, ok := Normalize(raw, id, cfg.Secure)
	if !ok || !company.Renderable() {
		slog.Info("company not renderable", "company_id", id)
		return ""
	}

	html, err := RenderMarkup(company, cfg)
	if err != nil {
		slog.Error("failed to render company markup", "company_id", id, "error", err)
		return ""
	}
	return html
}

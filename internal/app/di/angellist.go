// Package di provides dependency injection factories for creating application components.
package di

import (
	"angellist_widget/internal/platform/externalapi/angellist"
	platformhttp "angellist_widget/internal/platform/http"
	"angellist_widget/internal/shared/ratelimiter"
)

// NewAngelListClient creates a fully configured AngelList client with HTTP client and rate limiter.
func NewAngelListClient(cfg angellist.Config) *angellist.Client {
	cfg = cfg.WithDefaults()
	httpClient := platformhttp.NewHTTPClient(cfg.Timeout)
	limiter := ratelimiter.NewRateLimiter(cfg.RateLimit, cfg.RateInterval)
	return angellist.NewClient(cfg, httpClient, limiter)
}

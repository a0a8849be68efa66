package usecase

import (
	"context"
	"fmt"
	"log/slog"

	companyusecase "angellist_widget/internal/feature/company/usecase"
)

// CachePurger は接頭辞に一致するキャッシュエントリを削除します。
type CachePurger interface {
	Purge(ctx context.Context, prefix string) (int, error)
}

// UninstallResult は削除した件数の集計です。
type UninstallResult struct {
	DeletedRows int64
	PurgedKeys  int
}

// uninstallUsecase は全投稿の企業リストとレンダリング済みキャッシュを削除します。
type uninstallUsecase struct {
	repo   PostCompaniesRepository
	purger CachePurger
}

// NewUninstallUsecase はuninstallUsecaseの新しいインスタンスを生成します。
// purgerがnilの場合はキャッシュの削除をスキップします。
func NewUninstallUsecase(repo PostCompaniesRepository, purger CachePurger) *uninstallUsecase {
	return &uninstallUsecase{repo: repo, purger: purger}
}

// Uninstall deletes every stored company list, then purges the company markup namespace.
func (u *uninstallUsecase) Uninstall(ctx context.Context) (UninstallResult, error) {
	var res UninstallResult

	n, err := u.repo.DeleteAll(ctx)
	if err != nil {
		return res, fmt.Errorf("failed to delete post companies: %w", err)
	}
	res.DeletedRows = n
	slog.Info("deleted post companies", "rows", n)

	if u.purger == nil {
		return res, nil
	}
	purged, err := u.purger.Purge(ctx, companyusecase.CacheNamespace+"-")
	res.PurgedKeys = purged
	if err != nil {
		return res, fmt.Errorf("failed to purge company markup cache: %w", err)
	}
	slog.Info("purged company markup cache", "keys", purged)
	return res, nil
}

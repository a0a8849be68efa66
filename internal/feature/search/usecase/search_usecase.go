// Package usecase はsearchフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyQuery is returned when the search string is blank after trimming.
	ErrEmptyQuery = errors.New("no search string provided")
	// ErrSearchUnavailable is returned when the upstream search could not be completed.
	ErrSearchUnavailable = errors.New("search unavailable")
)

// StartupSearcher はAngelListのスタートアップ検索を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type StartupSearcher interface {
	// SearchStartups は検索結果のJSON配列をそのまま返します。
	SearchStartups(ctx context.Context, query string) (json.RawMessage, error)
}

// searchUsecase は自由入力の文字列でスタートアップを検索します。
type searchUsecase struct {
	searcher StartupSearcher
}

// NewSearchUsecase はsearchUsecaseの新しいインスタンスを生成します。
func NewSearchUsecase(searcher StartupSearcher) *searchUsecase {
	return &searchUsecase{searcher: searcher}
}

// Search trims query and proxies it upstream. The result is the upstream array, unmodified.
func (u *searchUsecase) Search(ctx context.Context, query string) (json.RawMessage, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	res, err := u.searcher.SearchStartups(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSearchUnavailable, err)
	}
	return res, nil
}

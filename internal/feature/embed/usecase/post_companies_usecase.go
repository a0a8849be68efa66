// Package usecase はembedフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	companyentity "angellist_widget/internal/feature/company/domain/entity"
	"angellist_widget/internal/feature/embed/domain/entity"
)

const (
	listOpen  = `<ol class="angellist-companies">`
	listClose = `</ol>`
)

var (
	// ErrInvalidPostID is returned for a zero post id.
	ErrInvalidPostID = errors.New("invalid post id")
	// ErrInvalidCompanyID is returned when a company id in a replacement list is not positive.
	ErrInvalidCompanyID = errors.New("company ids must be positive integers")
)

// PostCompaniesRepository は投稿ごとの企業IDリストの永続化を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type PostCompaniesRepository interface {
	ListCompanyIDs(ctx context.Context, postID uint) ([]int, error)
	// ReplaceCompanyIDs は投稿の企業リストを置き換えます。空のリストは行を削除します。
	ReplaceCompanyIDs(ctx context.Context, postID uint, ids []int) error
	// DeleteAll は全投稿の企業リストを削除し、削除件数を返します。
	DeleteAll(ctx context.Context) (int64, error)
}

// CompanyRenderer は1社分のウィジェットHTMLを描画します。
type CompanyRenderer interface {
	Render(ctx context.Context, id int, cfg companyentity.RenderConfig) string
}

// postCompaniesUsecase は投稿に埋め込む企業リストの参照・更新・描画を行います。
type postCompaniesUsecase struct {
	repo     PostCompaniesRepository
	renderer CompanyRenderer
}

// NewPostCompaniesUsecase はpostCompaniesUsecaseの新しいインスタンスを生成します。
func NewPostCompaniesUsecase(repo PostCompaniesRepository, renderer CompanyRenderer) *postCompaniesUsecase {
	return &postCompaniesUsecase{repo: repo, renderer: renderer}
}

// List は投稿に登録された企業IDを登録順に返します。
func (u *postCompaniesUsecase) List(ctx context.Context, postID uint) (entity.PostCompanies, error) {
	if postID == 0 {
		return entity.PostCompanies{}, ErrInvalidPostID
	}
	ids, err := u.repo.ListCompanyIDs(ctx, postID)
	if err != nil {
		return entity.PostCompanies{}, fmt.Errorf("failed to list companies for post %d: %w", postID, err)
	}
	return entity.PostCompanies{PostID: postID, CompanyIDs: ids}, nil
}

// Replace validates ids, drops duplicates keeping the first occurrence, and stores the result.
func (u *postCompaniesUsecase) Replace(ctx context.Context, postID uint, ids []int) (entity.PostCompanies, error) {
	if postID == 0 {
		return entity.PostCompanies{}, ErrInvalidPostID
	}
	for _, id := range ids {
		if id < 1 {
			return entity.PostCompanies{}, fmt.Errorf("%w: %d", ErrInvalidCompanyID, id)
		}
	}

	ids = entity.Dedupe(ids)
	if err := u.repo.ReplaceCompanyIDs(ctx, postID, ids); err != nil {
		return entity.PostCompanies{}, fmt.Errorf("failed to replace companies for post %d: %w", postID, err)
	}
	return entity.PostCompanies{PostID: postID, CompanyIDs: ids}, nil
}

// RenderPost は投稿の全企業ウィジェットを順序付きリストにまとめます。
// 1社も描画できなかった場合は空文字を返します。
func (u *postCompaniesUsecase) RenderPost(ctx context.Context, postID uint, cfg companyentity.RenderConfig) (string, error) {
	pc, err := u.List(ctx, postID)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, id := range pc.CompanyIDs {
		b.WriteString(u.renderer.Render(ctx, id, cfg))
	}
	if b.Len() == 0 {
		return "", nil
	}
	return listOpen + b.String() + listClose, nil
}

package usecase

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrInvalidCompanyID is returned for non-positive company identifiers.
	ErrInvalidCompanyID = errors.New("invalid company id")
	// ErrRolesUnavailable is returned when no roles could be fetched.
	ErrRolesUnavailable = errors.New("roles unavailable")
)

// RolesFetcher はAngelListから企業のロール一覧を取得するインターフェースです。
type RolesFetcher interface {
	GetRoles(ctx context.Context, id int) ([]any, error)
}

// rolesUsecase は企業に紐づくロール（創業者・投資家など）を取得します。
type rolesUsecase struct {
	fetcher RolesFetcher
}

// NewRolesUsecase はrolesUsecaseの新しいインスタンスを生成します。
func NewRolesUsecase(fetcher RolesFetcher) *rolesUsecase {
	return &rolesUsecase{fetcher: fetcher}
}

// GetRoles は企業IDに紐づくロール一覧を返します。
func (u *rolesUsecase) GetRoles(ctx context.Context, id int) ([]any, error) {
	if id < 1 {
		return nil, ErrInvalidCompanyID
	}
	roles, err := u.fetcher.GetRoles(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: company %d: %v", ErrRolesUnavailable, id, err)
	}
	return roles, nil
}

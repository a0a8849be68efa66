package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"angellist_widget/internal/feature/embed/usecase"
)

type mockPurger struct {
	prefix string
	n      int
	err    error
}

func (m *mockPurger) Purge(ctx context.Context, prefix string) (int, error) {
	m.prefix = prefix
	return m.n, m.err
}

func TestUninstallUsecase_Uninstall(t *testing.T) {
	t.Parallel()

	repo := &mockPostCompaniesRepository{
		DeleteAllFunc: func(ctx context.Context) (int64, error) { return 3, nil },
	}
	purger := &mockPurger{n: 5}

	res, err := usecase.NewUninstallUsecase(repo, purger).Uninstall(context.Background())
	require.NoError(t, err)
	assert.Equal(t, usecase.UninstallResult{DeletedRows: 3, PurgedKeys: 5}, res)
	assert.Equal(t, "angellist-company-", purger.prefix)
}

func TestUninstallUsecase_NilPurger(t *testing.T) {
	t.Parallel()

	repo := &mockPostCompaniesRepository{
		DeleteAllFunc: func(ctx context.Context) (int64, error) { return 1, nil },
	}

	res, err := usecase.NewUninstallUsecase(repo, nil).Uninstall(context.Background())
	require.NoError(t, err)
	assert.Equal(t, usecase.UninstallResult{DeletedRows: 1}, res)
}

func TestUninstallUsecase_Errors(t *testing.T) {
	t.Parallel()

	t.Run("delete fails before purge", func(t *testing.T) {
		t.Parallel()

		expectedErr := errors.New("db down")
		repo := &mockPostCompaniesRepository{
			DeleteAllFunc: func(ctx context.Context) (int64, error) { return 0, expectedErr },
		}
		purger := &mockPurger{}

		_, err := usecase.NewUninstallUsecase(repo, purger).Uninstall(context.Background())
		assert.ErrorIs(t, err, expectedErr)
		assert.Empty(t, purger.prefix, "purge must not run when delete fails")
	})

	t.Run("purge fails", func(t *testing.T) {
		t.Parallel()

		expectedErr := errors.New("scan failed")
		repo := &mockPostCompaniesRepository{
			DeleteAllFunc: func(ctx context.Context) (int64, error) { return 2, nil },
		}
		purger := &mockPurger{n: 1, err: expectedErr}

		res, err := usecase.NewUninstallUsecase(repo, purger).Uninstall(context.Background())
		assert.ErrorIs(t, err, expectedErr)
		assert.Equal(t, usecase.UninstallResult{DeletedRows: 2, PurgedKeys: 1}, res)
	})
}

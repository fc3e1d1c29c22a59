package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/iho/conta/internal/domain"
	"github.com/iho/conta/internal/usecase"
	"github.com/iho/conta/internal/usecase/mocks"
)

func TestCatalogLoader_CacheHit(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockAccountRepository(ctrl)
	cache := mocks.NewMockCache(ctrl)

	raw, err := json.Marshal([]*domain.Account{{Code: "1101", Name: "Caja", Type: domain.AccountTypeAsset, Active: true}})
	require.NoError(t, err)
	cache.EXPECT().Get(gomock.Any(), "catalog:accounts").Return(raw, nil)

	catalog, err := usecase.NewCatalogLoader(repo, cache, 0, zerolog.Nop()).Load(context.Background())
	require.NoError(t, err)

	acc, ok := catalog.Lookup("1101")
	require.True(t, ok)
	assert.Equal(t, "Caja", acc.Name)
}

func TestCatalogLoader_CacheMissFallsBackToRepository(t *testing.T) {
	tests := []struct {
		name     string
		cacheGet func(*mocks.MockCache)
	}{
		{
			name: "miss",
			cacheGet: func(c *mocks.MockCache) {
				c.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, usecase.ErrCacheMiss)
			},
		},
		{
			name: "cache unavailable",
			cacheGet: func(c *mocks.MockCache) {
				c.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, errors.New("connection refused"))
			},
		},
		{
			name: "corrupt payload",
			cacheGet: func(c *mocks.MockCache) {
				c.EXPECT().Get(gomock.Any(), gomock.Any()).Return([]byte("{not json"), nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mocks.NewMockAccountRepository(ctrl)
			cache := mocks.NewMockCache(ctrl)

			tt.cacheGet(cache)
			repo.EXPECT().List(gomock.Any(), domain.AccountFilter{}).Return([]*domain.Account{
				{Code: "4101", Name: "Ventas", Type: domain.AccountTypeIncome, Active: true},
			}, nil)
			cache.EXPECT().Set(gomock.Any(), "catalog:accounts", gomock.Any(), usecase.DefaultCatalogCacheTTL).Return(nil)

			catalog, err := usecase.NewCatalogLoader(repo, cache, 0, zerolog.Nop()).Load(context.Background())
			require.NoError(t, err)
			assert.Equal(t, 1, catalog.Len())
		})
	}
}

func TestCatalogLoader_DuplicateCodes(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockAccountRepository(ctrl)
	repo.EXPECT().List(gomock.Any(), gomock.Any()).Return([]*domain.Account{
		{Code: "1101", Name: "Caja"},
		{Code: "1101", Name: "Caja 2"},
	}, nil)

	_, err := usecase.NewCatalogLoader(repo, nil, 0, zerolog.Nop()).Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrDuplicateAccountCode)
}

func TestCatalogLoader_InvalidateNilSafe(t *testing.T) {
	var loader *usecase.CatalogLoader
	loader.Invalidate(context.Background())
}

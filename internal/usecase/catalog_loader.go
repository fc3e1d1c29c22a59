package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/conta/internal/domain"
)

// CatalogLoader builds the chart of accounts used by validation and posting.
// Loaded accounts are cached as JSON; a cache failure only costs a repository
// round trip.
type CatalogLoader struct {
	accountRepo AccountRepository
	cache       Cache
	ttl         time.Duration
	logger      zerolog.Logger
}

// NewCatalogLoader creates a new CatalogLoader. cache may be nil.
func NewCatalogLoader(accountRepo AccountRepository, cache Cache, ttl time.Duration, logger zerolog.Logger) *CatalogLoader {
	if ttl <= 0 {
		ttl = DefaultCatalogCacheTTL
	}
	return &CatalogLoader{
		accountRepo: accountRepo,
		cache:       cache,
		ttl:         ttl,
		logger:      logger,
	}
}

// Load returns the current catalog.
func (l *CatalogLoader) Load(ctx context.Context) (*domain.Catalog, error) {
	if accounts, ok := l.fromCache(ctx); ok {
		return newCatalog(accounts)
	}

	accounts, err := l.accountRepo.List(ctx, domain.AccountFilter{})
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	l.store(ctx, accounts)

	return newCatalog(accounts)
}

// Invalidate drops the cached catalog after an account write.
func (l *CatalogLoader) Invalidate(ctx context.Context) {
	if l == nil || l.cache == nil {
		return
	}
	if err := l.cache.Delete(ctx, catalogCacheKey); err != nil {
		l.logger.Warn().Err(err).Msg("failed to invalidate catalog cache")
	}
}

func (l *CatalogLoader) fromCache(ctx context.Context) ([]*domain.Account, bool) {
	if l.cache == nil {
		return nil, false
	}

	raw, err := l.cache.Get(ctx, catalogCacheKey)
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			l.logger.Warn().Err(err).Msg("catalog cache read failed")
		}
		return nil, false
	}

	var accounts []*domain.Account
	if err := json.Unmarshal(raw, &accounts); err != nil {
		l.logger.Warn().Err(err).Msg("discarding corrupt catalog cache entry")
		return nil, false
	}

	return accounts, true
}

func (l *CatalogLoader) store(ctx context.Context, accounts []*domain.Account) {
	if l.cache == nil {
		return
	}

	raw, err := json.Marshal(accounts)
	if err != nil {
		l.logger.Warn().Err(err).Msg("failed to encode catalog for cache")
		return
	}
	if err := l.cache.Set(ctx, catalogCacheKey, raw, l.ttl); err != nil {
		l.logger.Warn().Err(err).Msg("catalog cache write failed")
	}
}

func newCatalog(accounts []*domain.Account) (*domain.Catalog, error) {
	list := make([]domain.Account, 0, len(accounts))
	for _, a := range accounts {
		list = append(list, *a)
	}
	return domain.NewCatalog(list)
}

package usecase

import (
	"context"
	"errors"
	"strings"

	"collection-hub/pkg/logger"
	"collection-hub/services/collection/internal/entity"
	"collection-hub/services/collection/internal/repo/persistent"

	lru "github.com/hashicorp/golang-lru"
	"github.com/sahilm/fuzzy"
)

const (
	typeCacheSize       = 128
	defaultProductLimit = 50
	maxProductLimit     = 200
)

type CatalogUseCase interface {
	ListProducts(ctx context.Context, search string, limit int) ([]*entity.Product, error)
	ListCollectionTypes(ctx context.Context) ([]*entity.CollectionType, error)
	CollectionTypeExists(ctx context.Context, id string) (bool, error)
}

type catalogUseCase struct {
	store     persistent.Store
	typeCache *lru.Cache
	logger    *logger.Logger
}

func NewCatalogUseCase(store persistent.Store, logger *logger.Logger) (CatalogUseCase, error) {
	typeCache, err := lru.New(typeCacheSize)
	if err != nil {
		return nil, err
	}
	return &catalogUseCase{
		store:     store,
		typeCache: typeCache,
		logger:    logger,
	}, nil
}

// ListProducts returns published products. With a search term the whole
// published catalog is ranked by fuzzy match on the name.
func (uc *catalogUseCase) ListProducts(ctx context.Context, search string, limit int) ([]*entity.Product, error) {
	if limit <= 0 {
		limit = defaultProductLimit
	}
	if limit > maxProductLimit {
		limit = maxProductLimit
	}

	search = strings.TrimSpace(search)
	if search == "" {
		return uc.store.Catalog().ListPublishedProducts(ctx, limit)
	}

	products, err := uc.store.Catalog().ListPublishedProducts(ctx, 0)
	if err != nil {
		return nil, err
	}

	matches := fuzzy.FindFrom(search, productNames(products))
	result := make([]*entity.Product, 0, min(limit, len(matches)))
	for _, match := range matches {
		if len(result) == limit {
			break
		}
		result = append(result, products[match.Index])
	}
	return result, nil
}

func (uc *catalogUseCase) ListCollectionTypes(ctx context.Context) ([]*entity.CollectionType, error) {
	types, err := uc.store.Catalog().ListCollectionTypes(ctx)
	if err != nil {
		return nil, err
	}
	for _, t := range types {
		uc.typeCache.Add(t.ID, t)
	}
	return types, nil
}

// CollectionTypeExists consults the LRU first. Only positive answers are
// cached, so a type created later is found on the next call.
func (uc *catalogUseCase) CollectionTypeExists(ctx context.Context, id string) (bool, error) {
	if _, ok := uc.typeCache.Get(id); ok {
		return true, nil
	}

	collectionType, err := uc.store.Catalog().GetCollectionType(ctx, id)
	if errors.Is(err, entity.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	uc.typeCache.Add(id, collectionType)
	return true, nil
}

type productNames []*entity.Product

func (p productNames) String(i int) string {
	return p[i].Name
}

func (p productNames) Len() int {
	return len(p)
}

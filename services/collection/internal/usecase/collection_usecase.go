package usecase

import (
	"context"
	"fmt"
	"strings"

	"collection-hub/pkg/logger"
	"collection-hub/pkg/metrics"
	"collection-hub/pkg/queue"
	"collection-hub/services/collection/internal/entity"
	"collection-hub/services/collection/internal/repo/cache"
	"collection-hub/services/collection/internal/repo/persistent"
)

type CollectionUseCase interface {
	CreateCollection(ctx context.Context, input entity.CollectionInput, actorID string) (*entity.Collection, error)
	GetCollection(ctx context.Context, id string) (*entity.Collection, error)
	ListCollections(ctx context.Context, limit, offset int) ([]*entity.Collection, error)
	DeleteCollectionOrDraft(ctx context.Context, id string) error
	CheckSlug(ctx context.Context, name, excludeID string) (string, bool, error)
}

type collectionUseCase struct {
	store     persistent.Store
	catalog   CatalogUseCase
	cache     cache.CollectionCache
	publisher EventPublisher
	logger    *logger.Logger
}

func NewCollectionUseCase(
	store persistent.Store,
	catalog CatalogUseCase,
	collectionCache cache.CollectionCache,
	publisher EventPublisher,
	logger *logger.Logger,
) CollectionUseCase {
	return &collectionUseCase{
		store:     store,
		catalog:   catalog,
		cache:     collectionCache,
		publisher: publisher,
		logger:    logger,
	}
}

// CreateCollection publishes a collection directly, skipping review.
func (uc *collectionUseCase) CreateCollection(ctx context.Context, input entity.CollectionInput, actorID string) (collection *entity.Collection, err error) {
	defer func() { metrics.Observe("create_collection", err) }()

	if err := validateActor(actorID); err != nil {
		return nil, err
	}
	normalizeInput(&input)
	if err := validateInput(&input); err != nil {
		return nil, err
	}
	if err := requireCollectionType(ctx, uc.catalog, input.TypeID); err != nil {
		return nil, err
	}

	err = uc.store.Transaction(ctx, func(tx persistent.Store) error {
		slug, err := NewSlugAllocator(tx.Slugs()).Allocate(ctx, input.Name, "")
		if err != nil {
			return err
		}

		created := &entity.Collection{
			Name:            input.Name,
			Slug:            slug,
			Description:     input.Description,
			ImageURL:        input.ImageURL,
			BannerURL:       input.BannerURL,
			MarketingImages: input.MarketingImages,
			IsFeatured:      input.IsFeatured,
			Status:          entity.CollectionStatusPublished,
			TypeID:          input.TypeID,
			CreatedBy:       actorID,
		}
		if err := tx.Collections().Create(ctx, created); err != nil {
			return err
		}

		if err := NewAssociationManager(tx.Catalog(), tx.Collections()).SetAssociations(ctx, created.ID, input.ProductIDs); err != nil {
			return err
		}

		collection, err = tx.Collections().GetByID(ctx, created.ID)
		return err
	})
	if err != nil {
		return nil, storeError(err)
	}

	uc.logger.Info("Collection %s (%s) published directly by %s", collection.ID, collection.Slug, actorID)
	return collection, nil
}

func (uc *collectionUseCase) GetCollection(ctx context.Context, id string) (*entity.Collection, error) {
	return uc.cache.Get(ctx, id, func(ctx context.Context) (*entity.Collection, error) {
		return uc.store.Collections().GetByID(ctx, id)
	})
}

func (uc *collectionUseCase) ListCollections(ctx context.Context, limit, offset int) ([]*entity.Collection, error) {
	limit, offset = page(limit, offset)
	return uc.store.Collections().List(ctx, limit, offset)
}

// DeleteCollectionOrDraft removes id from the published store if present,
// otherwise from the draft store. Product links go first, in one transaction.
func (uc *collectionUseCase) DeleteCollectionOrDraft(ctx context.Context, id string) (err error) {
	defer func() { metrics.Observe("delete", err) }()

	kind := ""
	err = uc.store.Transaction(ctx, func(tx persistent.Store) error {
		deleted, err := tx.Collections().Delete(ctx, id)
		if err != nil {
			return err
		}
		if deleted {
			kind = "collection"
			return nil
		}

		deleted, err = tx.Reviews().Delete(ctx, id)
		if err != nil {
			return err
		}
		if deleted {
			kind = "draft"
			return nil
		}

		return fmt.Errorf("%w: no collection or draft with id %s", entity.ErrNotFound, id)
	})
	if err != nil {
		return storeError(err)
	}

	if kind == "collection" {
		uc.cache.Invalidate(ctx, id)
	}

	uc.logger.Info("Deleted %s %s", kind, id)
	publishEvent(uc.publisher, uc.logger, queue.EventDeleted, map[string]interface{}{
		"id":   id,
		"kind": kind,
	})
	return nil
}

// CheckSlug reports the slug name would get and whether it is free.
func (uc *collectionUseCase) CheckSlug(ctx context.Context, name, excludeID string) (string, bool, error) {
	slug, err := Slugify(strings.TrimSpace(name))
	if err != nil {
		return "", false, err
	}

	available, err := NewSlugAllocator(uc.store.Slugs()).IsAvailable(ctx, slug, excludeID)
	if err != nil {
		return "", false, err
	}
	return slug, available, nil
}

package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"collection-hub/pkg/logger"
	"collection-hub/pkg/metrics"
	"collection-hub/pkg/queue"
	"collection-hub/services/collection/internal/entity"
	"collection-hub/services/collection/internal/repo/persistent"
)

// ReviewUseCase runs the draft moderation workflow.
type ReviewUseCase interface {
	CreateDraft(ctx context.Context, input entity.CollectionInput, actorID string) (*entity.CollectionReview, error)
	UpdateDraft(ctx context.Context, id string, input entity.CollectionInput) (*entity.CollectionReview, error)
	ApproveDraft(ctx context.Context, id, actorID string) (*entity.Collection, error)
	RejectDraft(ctx context.Context, id, notes, actorID string) (*entity.CollectionReview, error)
	GetDraft(ctx context.Context, id string) (*entity.CollectionReview, error)
	ListDrafts(ctx context.Context, status entity.ReviewStatus, limit, offset int) ([]*entity.CollectionReview, error)
}

type reviewUseCase struct {
	store     persistent.Store
	catalog   CatalogUseCase
	publisher EventPublisher
	logger    *logger.Logger
}

func NewReviewUseCase(
	store persistent.Store,
	catalog CatalogUseCase,
	publisher EventPublisher,
	logger *logger.Logger,
) ReviewUseCase {
	return &reviewUseCase{
		store:     store,
		catalog:   catalog,
		publisher: publisher,
		logger:    logger,
	}
}

func (uc *reviewUseCase) CreateDraft(ctx context.Context, input entity.CollectionInput, actorID string) (review *entity.CollectionReview, err error) {
	defer func() { metrics.Observe("create_draft", err) }()

	if err := uc.checkInput(ctx, &input, actorID); err != nil {
		return nil, err
	}

	err = uc.store.Transaction(ctx, func(tx persistent.Store) error {
		slug, err := NewSlugAllocator(tx.Slugs()).Allocate(ctx, input.Name, "")
		if err != nil {
			return err
		}

		draft := &entity.CollectionReview{
			Name:            input.Name,
			Slug:            slug,
			Description:     input.Description,
			ImageURL:        input.ImageURL,
			BannerURL:       input.BannerURL,
			MarketingImages: input.MarketingImages,
			IsFeatured:      input.IsFeatured,
			Status:          entity.ReviewStatusPending,
			TypeID:          input.TypeID,
			CreatedBy:       actorID,
		}
		if err := tx.Reviews().Create(ctx, draft); err != nil {
			return err
		}

		if err := NewAssociationManager(tx.Catalog(), tx.Reviews()).SetAssociations(ctx, draft.ID, input.ProductIDs); err != nil {
			return err
		}

		review, err = tx.Reviews().GetByID(ctx, draft.ID)
		return err
	})
	if err != nil {
		return nil, storeError(err)
	}

	uc.logger.Info("Draft %s (%s) submitted by %s", review.ID, review.Slug, actorID)
	publishEvent(uc.publisher, uc.logger, queue.EventSubmitted, map[string]interface{}{
		"id":         review.ID,
		"slug":       review.Slug,
		"created_by": review.CreatedBy,
	})
	return review, nil
}

// UpdateDraft rewrites a pending draft. The slug is re-allocated only when the
// name changes, and the product list is always replaced.
func (uc *reviewUseCase) UpdateDraft(ctx context.Context, id string, input entity.CollectionInput) (review *entity.CollectionReview, err error) {
	defer func() { metrics.Observe("update_draft", err) }()

	normalizeInput(&input)
	if err := validateInput(&input); err != nil {
		return nil, err
	}
	if err := uc.requireType(ctx, input.TypeID); err != nil {
		return nil, err
	}

	err = uc.store.Transaction(ctx, func(tx persistent.Store) error {
		draft, err := tx.Reviews().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if draft.Status.IsTerminal() {
			return fmt.Errorf("%w: draft %s is %s and can no longer be edited", entity.ErrInvalidTransition, id, draft.Status)
		}

		if input.Name != draft.Name {
			slug, err := NewSlugAllocator(tx.Slugs()).Allocate(ctx, input.Name, draft.ID)
			if err != nil {
				return err
			}
			draft.Slug = slug
		}

		draft.Name = input.Name
		draft.Description = input.Description
		draft.ImageURL = input.ImageURL
		draft.BannerURL = input.BannerURL
		draft.MarketingImages = input.MarketingImages
		draft.IsFeatured = input.IsFeatured
		draft.TypeID = input.TypeID
		draft.Status = entity.ReviewStatusPending

		if err := tx.Reviews().UpdatePending(ctx, draft); err != nil {
			return err
		}

		if err := NewAssociationManager(tx.Catalog(), tx.Reviews()).SetAssociations(ctx, draft.ID, input.ProductIDs); err != nil {
			return err
		}

		review, err = tx.Reviews().GetByID(ctx, draft.ID)
		return err
	})
	if err != nil {
		return nil, storeError(err)
	}

	return review, nil
}

// ApproveDraft marks a pending draft approved and promotes it in the same
// transaction. Of two concurrent approvals only one passes the status guard.
func (uc *reviewUseCase) ApproveDraft(ctx context.Context, id, actorID string) (collection *entity.Collection, err error) {
	defer func() { metrics.Observe("approve", err) }()

	if err := validateActor(actorID); err != nil {
		return nil, err
	}

	start := time.Now()
	err = uc.store.Transaction(ctx, func(tx persistent.Store) error {
		// The guard takes the row lock, so the draft read after it is the
		// content being approved. Edits committed later fail their own guard.
		changed, err := tx.Reviews().TransitionFromPending(ctx, id, entity.ReviewStatusApproved, actorID, nil)
		if err != nil {
			return err
		}
		if !changed {
			if _, err := tx.Reviews().GetByID(ctx, id); err != nil {
				return err
			}
			return fmt.Errorf("%w: draft %s is no longer pending", entity.ErrInvalidTransition, id)
		}

		draft, err := tx.Reviews().GetByID(ctx, id)
		if err != nil {
			return err
		}

		collection, err = promote(ctx, tx, draft)
		return err
	})
	if err != nil {
		return nil, storeError(err)
	}
	metrics.PromotionDuration.Observe(time.Since(start).Seconds())

	uc.logger.Info("Draft %s approved by %s, published as %s", id, actorID, collection.ID)
	publishEvent(uc.publisher, uc.logger, queue.EventApproved, map[string]interface{}{
		"id":            id,
		"collection_id": collection.ID,
		"slug":          collection.Slug,
		"reviewed_by":   actorID,
	})
	return collection, nil
}

// RejectDraft closes a pending draft. Its product links stay for audit.
func (uc *reviewUseCase) RejectDraft(ctx context.Context, id, notes, actorID string) (review *entity.CollectionReview, err error) {
	defer func() { metrics.Observe("reject", err) }()

	if err := validateActor(actorID); err != nil {
		return nil, err
	}

	notes = strings.TrimSpace(notes)
	if len(notes) > maxNotesLength {
		return nil, fmt.Errorf("%w: notes must be at most %d characters", entity.ErrValidation, maxNotesLength)
	}

	err = uc.store.Transaction(ctx, func(tx persistent.Store) error {
		if _, err := tx.Reviews().GetByID(ctx, id); err != nil {
			return err
		}

		changed, err := tx.Reviews().TransitionFromPending(ctx, id, entity.ReviewStatusRejected, actorID, &notes)
		if err != nil {
			return err
		}
		if !changed {
			return fmt.Errorf("%w: draft %s is no longer pending", entity.ErrInvalidTransition, id)
		}

		review, err = tx.Reviews().GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, storeError(err)
	}

	uc.logger.Info("Draft %s rejected by %s", id, actorID)
	publishEvent(uc.publisher, uc.logger, queue.EventRejected, map[string]interface{}{
		"id":          id,
		"slug":        review.Slug,
		"reviewed_by": actorID,
		"notes":       notes,
	})
	return review, nil
}

func (uc *reviewUseCase) GetDraft(ctx context.Context, id string) (*entity.CollectionReview, error) {
	return uc.store.Reviews().GetByID(ctx, id)
}

func (uc *reviewUseCase) ListDrafts(ctx context.Context, status entity.ReviewStatus, limit, offset int) ([]*entity.CollectionReview, error) {
	if status != "" && !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", entity.ErrValidation, status)
	}
	limit, offset = page(limit, offset)
	return uc.store.Reviews().List(ctx, status, limit, offset)
}

func (uc *reviewUseCase) checkInput(ctx context.Context, input *entity.CollectionInput, actorID string) error {
	if err := validateActor(actorID); err != nil {
		return err
	}
	normalizeInput(input)
	if err := validateInput(input); err != nil {
		return err
	}
	return uc.requireType(ctx, input.TypeID)
}

func (uc *reviewUseCase) requireType(ctx context.Context, typeID string) error {
	return requireCollectionType(ctx, uc.catalog, typeID)
}

func requireCollectionType(ctx context.Context, catalog CatalogUseCase, typeID string) error {
	exists, err := catalog.CollectionTypeExists(ctx, typeID)
	if err != nil {
		return fmt.Errorf("%w: %w", entity.ErrConsistency, err)
	}
	if !exists {
		return fmt.Errorf("%w: unknown collection type %s", entity.ErrValidation, typeID)
	}
	return nil
}

package usecase

import (
	"context"

	"collection-hub/services/collection/internal/entity"
	"collection-hub/services/collection/internal/repo/persistent"
)

// promote copies an approved draft and its product links into the published
// tables. It runs on the approval transaction; any error rolls both back.
func promote(ctx context.Context, tx persistent.Store, draft *entity.CollectionReview) (*entity.Collection, error) {
	// Products may have been unpublished since submission.
	if err := NewAssociationManager(tx.Catalog(), tx.Collections()).Validate(ctx, entity.ProductIDs(draft.Products)); err != nil {
		return nil, err
	}

	collection := &entity.Collection{
		Name:            draft.Name,
		Slug:            draft.Slug,
		Description:     draft.Description,
		ImageURL:        draft.ImageURL,
		BannerURL:       draft.BannerURL,
		MarketingImages: draft.MarketingImages,
		DisplayOrder:    0,
		IsFeatured:      draft.IsFeatured,
		Status:          entity.CollectionStatusPublished,
		TypeID:          draft.TypeID,
		CreatedBy:       draft.CreatedBy,
	}
	if err := tx.Collections().Create(ctx, collection); err != nil {
		return nil, err
	}

	links := make([]entity.ProductLink, len(draft.Products))
	for i, link := range draft.Products {
		links[i] = entity.ProductLink{ProductID: link.ProductID, DisplayOrder: link.DisplayOrder}
	}
	if err := tx.Collections().ReplaceProducts(ctx, collection.ID, links); err != nil {
		return nil, err
	}

	return tx.Collections().GetByID(ctx, collection.ID)
}

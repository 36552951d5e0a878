package usecase

import (
	"context"
	"fmt"

	"collection-hub/services/collection/internal/entity"
	"collection-hub/services/collection/internal/repo/persistent"
)

// MinProducts is the smallest product list a collection or draft may carry.
const MinProducts = 1

// ProductLinker stores the ordered product list of one owner row.
type ProductLinker interface {
	ReplaceProducts(ctx context.Context, ownerID string, links []entity.ProductLink) error
}

// AssociationManager validates product lists against the catalog and writes
// them for a draft or a published collection.
type AssociationManager struct {
	catalog persistent.CatalogRepository
	linker  ProductLinker
}

func NewAssociationManager(catalog persistent.CatalogRepository, linker ProductLinker) *AssociationManager {
	return &AssociationManager{catalog: catalog, linker: linker}
}

// Validate checks that productIDs is long enough, free of duplicates and that
// every id is a published product.
func (m *AssociationManager) Validate(ctx context.Context, productIDs []string) error {
	if len(productIDs) < MinProducts {
		return fmt.Errorf("%w: at least %d product is required", entity.ErrValidation, MinProducts)
	}

	seen := make(map[string]struct{}, len(productIDs))
	for _, id := range productIDs {
		if _, ok := seen[id]; ok {
			return fmt.Errorf("%w: product %s is listed more than once", entity.ErrValidation, id)
		}
		seen[id] = struct{}{}
	}

	found, err := m.catalog.FindPublishedProducts(ctx, productIDs)
	if err != nil {
		return err
	}
	if len(found) != len(productIDs) {
		return fmt.Errorf("%w: %s", entity.ErrValidation, missingProducts(productIDs, found))
	}
	return nil
}

// SetAssociations validates productIDs and replaces the owner's links with
// them, display_order following the given order.
func (m *AssociationManager) SetAssociations(ctx context.Context, ownerID string, productIDs []string) error {
	if err := m.Validate(ctx, productIDs); err != nil {
		return err
	}

	links := make([]entity.ProductLink, len(productIDs))
	for i, id := range productIDs {
		links[i] = entity.ProductLink{ProductID: id, DisplayOrder: i}
	}
	return m.linker.ReplaceProducts(ctx, ownerID, links)
}

func missingProducts(requested []string, found []*entity.Product) string {
	present := make(map[string]struct{}, len(found))
	for _, p := range found {
		present[p.ID] = struct{}{}
	}
	for _, id := range requested {
		if _, ok := present[id]; !ok {
			return fmt.Sprintf("product %s is missing or not published", id)
		}
	}
	return "one or more products are missing or not published"
}

package persistent

import (
	"context"
	"errors"
	"fmt"

	"collection-hub/pkg/models"
	"collection-hub/services/collection/internal/entity"

	"gorm.io/gorm"
)

// CatalogRepository reads products and collection types. The collection
// workflow never writes these tables.
type CatalogRepository interface {
	FindPublishedProducts(ctx context.Context, ids []string) ([]*entity.Product, error)
	ListPublishedProducts(ctx context.Context, limit int) ([]*entity.Product, error)
	ListCollectionTypes(ctx context.Context) ([]*entity.CollectionType, error)
	GetCollectionType(ctx context.Context, id string) (*entity.CollectionType, error)
}

type catalogRepository struct {
	db *gorm.DB
}

// FindPublishedProducts returns the subset of ids that are published and not
// deleted. Callers compare cardinality to detect missing products.
func (r *catalogRepository) FindPublishedProducts(ctx context.Context, ids []string) ([]*entity.Product, error) {
	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if validID(id) {
			valid = append(valid, id)
		}
	}
	if len(valid) == 0 {
		return []*entity.Product{}, nil
	}

	var productModels []models.Product
	if err := r.db.WithContext(ctx).
		Where("id IN ? AND status = ?", valid, models.ProductStatusPublished).
		Find(&productModels).Error; err != nil {
		return nil, err
	}

	products := make([]*entity.Product, len(productModels))
	for i := range productModels {
		products[i] = ToProductEntity(&productModels[i])
	}
	return products, nil
}

func (r *catalogRepository) ListPublishedProducts(ctx context.Context, limit int) ([]*entity.Product, error) {
	var productModels []models.Product
	query := r.db.WithContext(ctx).
		Where("status = ?", models.ProductStatusPublished).
		Order("name ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&productModels).Error; err != nil {
		return nil, err
	}

	products := make([]*entity.Product, len(productModels))
	for i := range productModels {
		products[i] = ToProductEntity(&productModels[i])
	}
	return products, nil
}

func (r *catalogRepository) ListCollectionTypes(ctx context.Context) ([]*entity.CollectionType, error) {
	var typeModels []models.CollectionType
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&typeModels).Error; err != nil {
		return nil, err
	}

	types := make([]*entity.CollectionType, len(typeModels))
	for i := range typeModels {
		types[i] = ToCollectionTypeEntity(&typeModels[i])
	}
	return types, nil
}

func (r *catalogRepository) GetCollectionType(ctx context.Context, id string) (*entity.CollectionType, error) {
	if !validID(id) {
		return nil, fmt.Errorf("%w: collection type %s", entity.ErrNotFound, id)
	}

	var typeModel models.CollectionType
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&typeModel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: collection type %s", entity.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return ToCollectionTypeEntity(&typeModel), nil
}

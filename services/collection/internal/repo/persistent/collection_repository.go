package persistent

import (
	"context"
	"errors"
	"fmt"

	"collection-hub/services/collection/internal/entity"
	"collection-hub/services/collection/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CollectionRepository interface {
	Create(ctx context.Context, collection *entity.Collection) error
	GetByID(ctx context.Context, id string) (*entity.Collection, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Collection, error)
	ReplaceProducts(ctx context.Context, collectionID string, links []entity.ProductLink) error
	Delete(ctx context.Context, id string) (bool, error)
}

type collectionRepository struct {
	db *gorm.DB
}

func (r *collectionRepository) Create(ctx context.Context, collection *entity.Collection) error {
	collectionModel := ToCollectionModel(collection)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(collectionModel).Error; err != nil {
		return err
	}

	collection.ID = collectionModel.ID
	collection.CreatedAt = collectionModel.CreatedAt
	collection.UpdatedAt = collectionModel.UpdatedAt
	return nil
}

func (r *collectionRepository) GetByID(ctx context.Context, id string) (*entity.Collection, error) {
	if !validID(id) {
		return nil, fmt.Errorf("%w: collection %s", entity.ErrNotFound, id)
	}

	var collectionModel model.CollectionModel
	err := r.db.WithContext(ctx).
		Preload("Products", func(db *gorm.DB) *gorm.DB {
			return db.Order("collection_products.display_order ASC")
		}).
		Preload("Products.Product").
		Where("id = ?", id).
		First(&collectionModel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: collection %s", entity.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return ToCollectionEntity(&collectionModel), nil
}

func (r *collectionRepository) List(ctx context.Context, limit, offset int) ([]*entity.Collection, error) {
	var collectionModels []model.CollectionModel
	query := r.db.WithContext(ctx).
		Preload("Products", func(db *gorm.DB) *gorm.DB {
			return db.Order("collection_products.display_order ASC")
		}).
		Order("display_order ASC").
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&collectionModels).Error; err != nil {
		return nil, err
	}

	collections := make([]*entity.Collection, len(collectionModels))
	for i := range collectionModels {
		collections[i] = ToCollectionEntity(&collectionModels[i])
	}
	return collections, nil
}

func (r *collectionRepository) ReplaceProducts(ctx context.Context, collectionID string, links []entity.ProductLink) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("collection_id = ?", collectionID).Delete(&model.CollectionProductModel{}).Error; err != nil {
		return err
	}
	if len(links) == 0 {
		return nil
	}

	rows := make([]model.CollectionProductModel, len(links))
	for i, link := range links {
		rows[i] = model.CollectionProductModel{
			CollectionID: collectionID,
			ProductID:    link.ProductID,
			DisplayOrder: link.DisplayOrder,
		}
	}
	return db.Create(&rows).Error
}

// Delete hard-deletes a live collection and its product links, freeing the slug.
// A soft-deleted row counts as absent.
func (r *collectionRepository) Delete(ctx context.Context, id string) (bool, error) {
	if !validID(id) {
		return false, nil
	}

	db := r.db.WithContext(ctx)
	var count int64
	if err := db.Model(&model.CollectionModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	if count == 0 {
		return false, nil
	}

	if err := db.Where("collection_id = ?", id).Delete(&model.CollectionProductModel{}).Error; err != nil {
		return false, err
	}
	if err := db.Unscoped().Where("id = ?", id).Delete(&model.CollectionModel{}).Error; err != nil {
		return false, err
	}
	return true, nil
}

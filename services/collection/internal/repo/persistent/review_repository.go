package persistent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"collection-hub/services/collection/internal/entity"
	"collection-hub/services/collection/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.CollectionReview) error
	GetByID(ctx context.Context, id string) (*entity.CollectionReview, error)
	List(ctx context.Context, status entity.ReviewStatus, limit, offset int) ([]*entity.CollectionReview, error)
	// UpdatePending rewrites a draft that is still pending. A draft that left
	// pending in the meantime yields ErrInvalidTransition.
	UpdatePending(ctx context.Context, review *entity.CollectionReview) error
	// TransitionFromPending moves a pending draft to status in one conditional
	// update and reports whether this call made the change.
	TransitionFromPending(ctx context.Context, id string, status entity.ReviewStatus, actorID string, notes *string) (bool, error)
	ReplaceProducts(ctx context.Context, reviewID string, links []entity.ProductLink) error
	Delete(ctx context.Context, id string) (bool, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func (r *reviewRepository) Create(ctx context.Context, review *entity.CollectionReview) error {
	reviewModel := ToReviewModel(review)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(reviewModel).Error; err != nil {
		return err
	}

	review.ID = reviewModel.ID
	review.CreatedAt = reviewModel.CreatedAt
	review.UpdatedAt = reviewModel.UpdatedAt
	return nil
}

func (r *reviewRepository) GetByID(ctx context.Context, id string) (*entity.CollectionReview, error) {
	if !validID(id) {
		return nil, fmt.Errorf("%w: draft %s", entity.ErrNotFound, id)
	}

	var reviewModel model.CollectionReviewModel
	err := r.db.WithContext(ctx).
		Preload("Products", func(db *gorm.DB) *gorm.DB {
			return db.Order("collection_review_products.display_order ASC")
		}).
		Preload("Products.Product").
		Where("id = ?", id).
		First(&reviewModel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: draft %s", entity.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return ToReviewEntity(&reviewModel), nil
}

func (r *reviewRepository) List(ctx context.Context, status entity.ReviewStatus, limit, offset int) ([]*entity.CollectionReview, error) {
	var reviewModels []model.CollectionReviewModel
	query := r.db.WithContext(ctx).
		Preload("Products", func(db *gorm.DB) *gorm.DB {
			return db.Order("collection_review_products.display_order ASC")
		}).
		Order("created_at DESC")

	if status != "" {
		query = query.Where("status = ?", string(status))
	}

	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	if err := query.Find(&reviewModels).Error; err != nil {
		return nil, err
	}

	reviews := make([]*entity.CollectionReview, len(reviewModels))
	for i := range reviewModels {
		reviews[i] = ToReviewEntity(&reviewModels[i])
	}
	return reviews, nil
}

// created_by and the review attribution columns are never written here.
func (r *reviewRepository) UpdatePending(ctx context.Context, review *entity.CollectionReview) error {
	reviewModel := ToReviewModel(review)
	result := r.db.WithContext(ctx).
		Model(&model.CollectionReviewModel{}).
		Where("id = ? AND status = ?", review.ID, string(entity.ReviewStatusPending)).
		Select("name", "slug", "description", "image_url", "banner_url", "marketing_images", "is_featured", "type_id", "status", "updated_at").
		Updates(reviewModel)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: draft %s is no longer pending", entity.ErrInvalidTransition, review.ID)
	}
	return nil
}

func (r *reviewRepository) TransitionFromPending(ctx context.Context, id string, status entity.ReviewStatus, actorID string, notes *string) (bool, error) {
	if !validID(id) {
		return false, nil
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":      string(status),
		"reviewed_at": now,
		"updated_at":  now,
	}
	if actorID != "" && validID(actorID) {
		updates["reviewed_by"] = actorID
	}
	if notes != nil {
		updates["reviewer_notes"] = *notes
	}

	result := r.db.WithContext(ctx).
		Model(&model.CollectionReviewModel{}).
		Where("id = ? AND status = ?", id, string(entity.ReviewStatusPending)).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *reviewRepository) ReplaceProducts(ctx context.Context, reviewID string, links []entity.ProductLink) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("collection_review_id = ?", reviewID).Delete(&model.CollectionReviewProductModel{}).Error; err != nil {
		return err
	}
	if len(links) == 0 {
		return nil
	}

	rows := make([]model.CollectionReviewProductModel, len(links))
	for i, link := range links {
		rows[i] = model.CollectionReviewProductModel{
			CollectionReviewID: reviewID,
			ProductID:          link.ProductID,
			DisplayOrder:       link.DisplayOrder,
		}
	}
	return db.Create(&rows).Error
}

func (r *reviewRepository) Delete(ctx context.Context, id string) (bool, error) {
	if !validID(id) {
		return false, nil
	}

	db := r.db.WithContext(ctx)
	var count int64
	if err := db.Model(&model.CollectionReviewModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	if count == 0 {
		return false, nil
	}

	if err := db.Where("collection_review_id = ?", id).Delete(&model.CollectionReviewProductModel{}).Error; err != nil {
		return false, err
	}
	if err := db.Where("id = ?", id).Delete(&model.CollectionReviewModel{}).Error; err != nil {
		return false, err
	}
	return true, nil
}

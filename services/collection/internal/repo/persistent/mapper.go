package persistent

import (
	"encoding/json"

	"collection-hub/pkg/models"
	"collection-hub/services/collection/internal/entity"
	"collection-hub/services/collection/internal/model"

	"gorm.io/datatypes"
)

func ToCollectionEntity(m *model.CollectionModel) *entity.Collection {
	if m == nil {
		return nil
	}

	collection := &entity.Collection{
		ID:              m.ID,
		Name:            m.Name,
		Slug:            m.Slug,
		Description:     m.Description,
		ImageURL:        m.ImageURL,
		BannerURL:       m.BannerURL,
		MarketingImages: decodeImages(m.MarketingImages),
		DisplayOrder:    m.DisplayOrder,
		IsFeatured:      m.IsFeatured,
		Status:          entity.CollectionStatus(m.Status),
		TypeID:          m.TypeID,
		CreatedBy:       m.CreatedBy,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
		Products:        []entity.ProductLink{},
	}

	for i := range m.Products {
		p := &m.Products[i]
		collection.Products = append(collection.Products, entity.ProductLink{
			ID:           p.ID,
			ProductID:    p.ProductID,
			DisplayOrder: p.DisplayOrder,
			Product:      ToProductEntity(p.Product),
		})
	}

	return collection
}

func ToCollectionModel(e *entity.Collection) *model.CollectionModel {
	if e == nil {
		return nil
	}

	return &model.CollectionModel{
		ID:              e.ID,
		Name:            e.Name,
		Slug:            e.Slug,
		Description:     e.Description,
		ImageURL:        e.ImageURL,
		BannerURL:       e.BannerURL,
		MarketingImages: encodeImages(e.MarketingImages),
		DisplayOrder:    e.DisplayOrder,
		IsFeatured:      e.IsFeatured,
		Status:          string(e.Status),
		TypeID:          e.TypeID,
		CreatedBy:       e.CreatedBy,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

func ToReviewEntity(m *model.CollectionReviewModel) *entity.CollectionReview {
	if m == nil {
		return nil
	}

	review := &entity.CollectionReview{
		ID:              m.ID,
		Name:            m.Name,
		Slug:            m.Slug,
		Description:     m.Description,
		ImageURL:        m.ImageURL,
		BannerURL:       m.BannerURL,
		MarketingImages: decodeImages(m.MarketingImages),
		DisplayOrder:    m.DisplayOrder,
		IsFeatured:      m.IsFeatured,
		Status:          entity.ReviewStatus(m.Status),
		ReviewerNotes:   m.ReviewerNotes,
		ReviewedBy:      m.ReviewedBy,
		ReviewedAt:      m.ReviewedAt,
		TypeID:          m.TypeID,
		CreatedBy:       m.CreatedBy,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
		Products:        []entity.ProductLink{},
	}

	for i := range m.Products {
		p := &m.Products[i]
		review.Products = append(review.Products, entity.ProductLink{
			ID:           p.ID,
			ProductID:    p.ProductID,
			DisplayOrder: p.DisplayOrder,
			Product:      ToProductEntity(p.Product),
		})
	}

	return review
}

func ToReviewModel(e *entity.CollectionReview) *model.CollectionReviewModel {
	if e == nil {
		return nil
	}

	return &model.CollectionReviewModel{
		ID:              e.ID,
		Name:            e.Name,
		Slug:            e.Slug,
		Description:     e.Description,
		ImageURL:        e.ImageURL,
		BannerURL:       e.BannerURL,
		MarketingImages: encodeImages(e.MarketingImages),
		DisplayOrder:    e.DisplayOrder,
		IsFeatured:      e.IsFeatured,
		Status:          string(e.Status),
		ReviewerNotes:   e.ReviewerNotes,
		ReviewedBy:      e.ReviewedBy,
		ReviewedAt:      e.ReviewedAt,
		TypeID:          e.TypeID,
		CreatedBy:       e.CreatedBy,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

func ToProductEntity(m *models.Product) *entity.Product {
	if m == nil {
		return nil
	}

	return &entity.Product{
		ID:          m.ID,
		Name:        m.Name,
		Slug:        m.Slug,
		Description: deref(m.Description),
		Price:       m.Price,
		ImageURL:    deref(m.ImageURL),
		Status:      entity.ProductStatus(m.Status),
	}
}

func ToCollectionTypeEntity(m *models.CollectionType) *entity.CollectionType {
	if m == nil {
		return nil
	}

	return &entity.CollectionType{
		ID:          m.ID,
		Name:        m.Name,
		Slug:        m.Slug,
		Description: deref(m.Description),
		Icon:        deref(m.Icon),
	}
}

func encodeImages(urls []string) datatypes.JSON {
	if urls == nil {
		urls = []string{}
	}
	data, _ := json.Marshal(urls)
	return datatypes.JSON(data)
}

func decodeImages(data datatypes.JSON) []string {
	urls := []string{}
	if len(data) == 0 {
		return urls
	}
	_ = json.Unmarshal(data, &urls)
	return urls
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

package model

import (
	"time"

	"collection-hub/pkg/models"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CollectionReviewModel struct {
	ID              string                         `gorm:"type:uuid;primary_key" json:"id"`
	Name            string                         `gorm:"type:varchar(255);not null" json:"name"`
	Slug            string                         `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	Description     string                         `gorm:"type:text" json:"description"`
	ImageURL        string                         `gorm:"type:varchar(500)" json:"image_url"`
	BannerURL       string                         `gorm:"type:varchar(500)" json:"banner_url"`
	MarketingImages datatypes.JSON                 `gorm:"type:jsonb" json:"marketing_images"`
	DisplayOrder    int                            `gorm:"not null;default:0" json:"display_order"`
	IsFeatured      bool                           `gorm:"not null" json:"is_featured"`
	Status          string                         `gorm:"type:varchar(20);not null;index" json:"status"`
	ReviewerNotes   *string                        `gorm:"type:text" json:"reviewer_notes"`
	ReviewedBy      *string                        `gorm:"type:uuid" json:"reviewed_by"`
	ReviewedAt      *time.Time                     `json:"reviewed_at"`
	TypeID          string                         `gorm:"type:uuid;not null;index" json:"type_id"`
	CreatedBy       string                         `gorm:"type:uuid;not null" json:"created_by"`
	CreatedAt       time.Time                      `json:"created_at"`
	UpdatedAt       time.Time                      `json:"updated_at"`
	Products        []CollectionReviewProductModel `gorm:"foreignKey:CollectionReviewID" json:"products,omitempty"`
}

func (CollectionReviewModel) TableName() string {
	return "collections_review"
}

func (r *CollectionReviewModel) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}

type CollectionReviewProductModel struct {
	ID                 string          `gorm:"type:uuid;primary_key" json:"id"`
	CollectionReviewID string          `gorm:"type:uuid;not null;uniqueIndex:idx_collection_review_products_order" json:"collection_review_id"`
	ProductID          string          `gorm:"type:uuid;not null;index" json:"product_id"`
	DisplayOrder       int             `gorm:"not null;uniqueIndex:idx_collection_review_products_order" json:"display_order"`
	CreatedAt          time.Time       `json:"created_at"`
	Product            *models.Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (CollectionReviewProductModel) TableName() string {
	return "collection_review_products"
}

func (rp *CollectionReviewProductModel) BeforeCreate(tx *gorm.DB) error {
	if rp.ID == "" {
		rp.ID = uuid.New().String()
	}
	return nil
}

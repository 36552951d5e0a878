package model

import (
	"time"

	"collection-hub/pkg/models"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CollectionModel struct {
	ID              string                   `gorm:"type:uuid;primary_key" json:"id"`
	Name            string                   `gorm:"type:varchar(255);not null" json:"name"`
	Slug            string                   `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	Description     string                   `gorm:"type:text" json:"description"`
	ImageURL        string                   `gorm:"type:varchar(500)" json:"image_url"`
	BannerURL       string                   `gorm:"type:varchar(500)" json:"banner_url"`
	MarketingImages datatypes.JSON           `gorm:"type:jsonb" json:"marketing_images"`
	DisplayOrder    int                      `gorm:"not null;default:0" json:"display_order"`
	IsFeatured      bool                     `gorm:"not null" json:"is_featured"`
	Status          string                   `gorm:"type:varchar(20);not null" json:"status"`
	TypeID          string                   `gorm:"type:uuid;not null;index" json:"type_id"`
	CreatedBy       string                   `gorm:"type:uuid;not null" json:"created_by"`
	CreatedAt       time.Time                `json:"created_at"`
	UpdatedAt       time.Time                `json:"updated_at"`
	DeletedAt       gorm.DeletedAt           `gorm:"index" json:"-"`
	Products        []CollectionProductModel `gorm:"foreignKey:CollectionID" json:"products,omitempty"`
}

func (CollectionModel) TableName() string {
	return "collections"
}

func (c *CollectionModel) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

type CollectionProductModel struct {
	ID           string          `gorm:"type:uuid;primary_key" json:"id"`
	CollectionID string          `gorm:"type:uuid;not null;uniqueIndex:idx_collection_products_order" json:"collection_id"`
	ProductID    string          `gorm:"type:uuid;not null;index" json:"product_id"`
	DisplayOrder int             `gorm:"not null;uniqueIndex:idx_collection_products_order" json:"display_order"`
	CreatedAt    time.Time       `json:"created_at"`
	Product      *models.Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (CollectionProductModel) TableName() string {
	return "collection_products"
}

func (cp *CollectionProductModel) BeforeCreate(tx *gorm.DB) error {
	if cp.ID == "" {
		cp.ID = uuid.New().String()
	}
	return nil
}

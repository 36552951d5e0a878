package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CollectionType struct {
	ID          string  `gorm:"type:uuid;primary_key" json:"id"`
	Name        string  `gorm:"type:varchar(255);not null" json:"name"`
	Slug        string  `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	Description *string `gorm:"type:text" json:"description"`
	Icon        *string `gorm:"type:varchar(255)" json:"icon"`
}

func (CollectionType) TableName() string {
	return "collection_types"
}

func (t *CollectionType) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return nil
}

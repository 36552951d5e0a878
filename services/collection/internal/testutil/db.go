// Package testutil opens throwaway SQLite databases with the collection schema.
package testutil

import (
	"testing"

	"collection-hub/pkg/models"
	"collection-hub/services/collection/internal/model"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewDB returns an in-memory database migrated from the gorm models. It holds a
// single connection, so concurrent transactions queue instead of interleaving.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{},
		&models.CollectionType{},
		&models.Product{},
		&model.CollectionModel{},
		&model.CollectionProductModel{},
		&model.CollectionReviewModel{},
		&model.CollectionReviewProductModel{},
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return db
}

func SeedUser(t *testing.T, db *gorm.DB, email string, role models.UserRole) *models.User {
	t.Helper()

	user := &models.User{Name: email, Email: email, Role: role}
	require.NoError(t, db.Create(user).Error)
	return user
}

func SeedCollectionType(t *testing.T, db *gorm.DB, name, slug string) *models.CollectionType {
	t.Helper()

	collectionType := &models.CollectionType{Name: name, Slug: slug}
	require.NoError(t, db.Create(collectionType).Error)
	return collectionType
}

func SeedProduct(t *testing.T, db *gorm.DB, name, slug string, status models.ProductStatus) *models.Product {
	t.Helper()

	product := &models.Product{
		Name:   name,
		Slug:   slug,
		Price:  decimal.RequireFromString("19.99"),
		Status: status,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

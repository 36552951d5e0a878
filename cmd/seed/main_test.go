package main

import (
	"testing"

	"collection-hub/pkg/logger"
	"collection-hub/pkg/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestSeedDatabase_Idempotent(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.CollectionType{}, &models.Product{}))

	log := logger.New()

	first, err := seedDatabase(db, log)
	require.NoError(t, err)
	second, err := seedDatabase(db, log)
	require.NoError(t, err)

	require.Len(t, first, len(seedUsers))
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
	}

	var types, products int64
	db.Model(&models.CollectionType{}).Count(&types)
	db.Model(&models.Product{}).Where("status = ?", models.ProductStatusPublished).Count(&products)
	assert.Equal(t, int64(len(collectionTypes)), types)
	assert.Equal(t, int64(len(seedProducts)), products)

	var reviewer models.User
	require.NoError(t, db.Where("email = ?", "reviewer@collections.local").First(&reviewer).Error)
	assert.Equal(t, models.RoleReviewer, reviewer.Role)
}

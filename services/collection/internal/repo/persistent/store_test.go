package persistent_test

import (
	"context"
	"errors"
	"testing"

	"collection-hub/pkg/models"
	"collection-hub/services/collection/internal/entity"
	"collection-hub/services/collection/internal/model"
	"collection-hub/services/collection/internal/repo/persistent"
	"collection-hub/services/collection/internal/testutil"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db       *gorm.DB
	store    persistent.Store
	typeID   string
	userID   string
	products []*models.Product
}

func newFixture(t *testing.T) *fixture {
	db := testutil.NewDB(t)
	collectionType := testutil.SeedCollectionType(t, db, "Color Stories", "color-stories")
	user := testutil.SeedUser(t, db, "editor@example.com", models.RoleEditor)

	return &fixture{
		db:     db,
		store:  persistent.NewStore(db),
		typeID: collectionType.ID,
		userID: user.ID,
		products: []*models.Product{
			testutil.SeedProduct(t, db, "Terracotta Tile", "terracotta-tile", models.ProductStatusPublished),
			testutil.SeedProduct(t, db, "Linen Throw", "linen-throw", models.ProductStatusPublished),
			testutil.SeedProduct(t, db, "Unreleased Lamp", "unreleased-lamp", models.ProductStatusDraft),
		},
	}
}

func (f *fixture) createReview(t *testing.T, slug string) *entity.CollectionReview {
	review := &entity.CollectionReview{
		Name:            slug,
		Slug:            slug,
		MarketingImages: []string{"https://cdn.example.com/a.jpg"},
		Status:          entity.ReviewStatusPending,
		TypeID:          f.typeID,
		CreatedBy:       f.userID,
	}
	require.NoError(t, f.store.Reviews().Create(context.Background(), review))
	return review
}

func TestReviewRepository_CreateAndGet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	review := f.createReview(t, "spring-picks")
	assert.NotEmpty(t, review.ID)

	links := []entity.ProductLink{
		{ProductID: f.products[1].ID, DisplayOrder: 0},
		{ProductID: f.products[0].ID, DisplayOrder: 1},
	}
	require.NoError(t, f.store.Reviews().ReplaceProducts(ctx, review.ID, links))

	got, err := f.store.Reviews().GetByID(ctx, review.ID)
	require.NoError(t, err)
	assert.Equal(t, "spring-picks", got.Slug)
	assert.Equal(t, entity.ReviewStatusPending, got.Status)
	assert.Equal(t, []string{"https://cdn.example.com/a.jpg"}, got.MarketingImages)
	require.Len(t, got.Products, 2)
	assert.Equal(t, []string{f.products[1].ID, f.products[0].ID}, entity.ProductIDs(got.Products))
	require.NotNil(t, got.Products[0].Product)
	assert.Equal(t, "Linen Throw", got.Products[0].Product.Name)
}

func TestReviewRepository_GetByID_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.store.Reviews().GetByID(context.Background(), uuid.New().String())
	assert.True(t, errors.Is(err, entity.ErrNotFound))

	_, err = f.store.Reviews().GetByID(context.Background(), "not-a-uuid")
	assert.True(t, errors.Is(err, entity.ErrNotFound))
}

func TestReviewRepository_ReplaceProducts_FullReplace(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	review := f.createReview(t, "winter-edit")

	require.NoError(t, f.store.Reviews().ReplaceProducts(ctx, review.ID, []entity.ProductLink{
		{ProductID: f.products[0].ID, DisplayOrder: 0},
		{ProductID: f.products[1].ID, DisplayOrder: 1},
	}))
	require.NoError(t, f.store.Reviews().ReplaceProducts(ctx, review.ID, []entity.ProductLink{
		{ProductID: f.products[1].ID, DisplayOrder: 0},
	}))

	var count int64
	require.NoError(t, f.db.Model(&model.CollectionReviewProductModel{}).Where("collection_review_id = ?", review.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestReviewRepository_TransitionFromPending(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	review := f.createReview(t, "autumn-tones")
	notes := "Needs a banner"

	changed, err := f.store.Reviews().TransitionFromPending(ctx, review.ID, entity.ReviewStatusRejected, f.userID, &notes)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = f.store.Reviews().TransitionFromPending(ctx, review.ID, entity.ReviewStatusApproved, f.userID, nil)
	require.NoError(t, err)
	assert.False(t, changed)

	got, err := f.store.Reviews().GetByID(ctx, review.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ReviewStatusRejected, got.Status)
	require.NotNil(t, got.ReviewerNotes)
	assert.Equal(t, notes, *got.ReviewerNotes)
	require.NotNil(t, got.ReviewedBy)
	assert.Equal(t, f.userID, *got.ReviewedBy)
	assert.NotNil(t, got.ReviewedAt)
}

func TestReviewRepository_List_FiltersByStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	first := f.createReview(t, "first")
	f.createReview(t, "second")

	_, err := f.store.Reviews().TransitionFromPending(ctx, first.ID, entity.ReviewStatusApproved, f.userID, nil)
	require.NoError(t, err)

	pending, err := f.store.Reviews().List(ctx, entity.ReviewStatusPending, 10, 0)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "second", pending[0].Slug)

	all, err := f.store.Reviews().List(ctx, "", 10, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestCollectionRepository_DeleteRemovesLinks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	collection := &entity.Collection{
		Name:      "Interiors",
		Slug:      "interiors",
		Status:    entity.CollectionStatusPublished,
		TypeID:    f.typeID,
		CreatedBy: f.userID,
	}
	require.NoError(t, f.store.Collections().Create(ctx, collection))
	require.NoError(t, f.store.Collections().ReplaceProducts(ctx, collection.ID, []entity.ProductLink{
		{ProductID: f.products[0].ID, DisplayOrder: 0},
	}))

	deleted, err := f.store.Collections().Delete(ctx, collection.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	var links int64
	require.NoError(t, f.db.Model(&model.CollectionProductModel{}).Count(&links).Error)
	assert.Zero(t, links)

	deleted, err = f.store.Collections().Delete(ctx, collection.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestCollectionRepository_SoftDeletedIsHidden(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	collection := &entity.Collection{
		Name:      "Archived",
		Slug:      "archived",
		Status:    entity.CollectionStatusPublished,
		TypeID:    f.typeID,
		CreatedBy: f.userID,
	}
	require.NoError(t, f.store.Collections().Create(ctx, collection))
	require.NoError(t, f.db.Delete(&model.CollectionModel{}, "id = ?", collection.ID).Error)

	_, err := f.store.Collections().GetByID(ctx, collection.ID)
	assert.True(t, errors.Is(err, entity.ErrNotFound))

	list, err := f.store.Collections().List(ctx, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, list)

	taken, err := f.store.Slugs().Exists(ctx, "archived", "")
	require.NoError(t, err)
	assert.True(t, taken)
}

func TestCatalogRepository_FindPublishedProducts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.db.Delete(f.products[1]).Error)

	ids := []string{f.products[0].ID, f.products[1].ID, f.products[2].ID, "bogus"}
	found, err := f.store.Catalog().FindPublishedProducts(ctx, ids)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, f.products[0].ID, found[0].ID)
}

func TestSlugRegistry_ExistsAcrossTables(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	review := f.createReview(t, "spring-picks")

	taken, err := f.store.Slugs().Exists(ctx, "spring-picks", "")
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = f.store.Slugs().Exists(ctx, "spring-picks", review.ID)
	require.NoError(t, err)
	assert.False(t, taken)

	collection := &entity.Collection{
		Name:      "Summer",
		Slug:      "summer",
		Status:    entity.CollectionStatusPublished,
		TypeID:    f.typeID,
		CreatedBy: f.userID,
	}
	require.NoError(t, f.store.Collections().Create(ctx, collection))

	taken, err = f.store.Slugs().Exists(ctx, "summer", review.ID)
	require.NoError(t, err)
	assert.True(t, taken)

	require.NoError(t, f.store.Slugs().Lock(ctx, "summer"))
}

func TestStore_TransactionRollsBack(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := f.store.Transaction(ctx, func(tx persistent.Store) error {
		review := &entity.CollectionReview{
			Name:      "Rolled Back",
			Slug:      "rolled-back",
			Status:    entity.ReviewStatusPending,
			TypeID:    f.typeID,
			CreatedBy: f.userID,
		}
		if err := tx.Reviews().Create(ctx, review); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	taken, err := f.store.Slugs().Exists(ctx, "rolled-back", "")
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestStore_UniqueSlugViolation(t *testing.T) {
	f := newFixture(t)
	f.createReview(t, "dup")

	review := &entity.CollectionReview{
		Name:      "dup",
		Slug:      "dup",
		Status:    entity.ReviewStatusPending,
		TypeID:    f.typeID,
		CreatedBy: f.userID,
	}
	err := f.store.Reviews().Create(context.Background(), review)
	require.Error(t, err)
	assert.True(t, persistent.IsUniqueViolation(err))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.False(t, persistent.IsUniqueViolation(nil))
	assert.True(t, persistent.IsUniqueViolation(gorm.ErrDuplicatedKey))
	assert.True(t, persistent.IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, persistent.IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, persistent.IsUniqueViolation(errors.New("connection reset")))
}

func TestReviewRepository_UpdatePending(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	review := f.createReview(t, "draft-one")

	review.Name = "Draft One"
	review.Description = "Updated"
	review.IsFeatured = true
	require.NoError(t, f.store.Reviews().UpdatePending(ctx, review))

	got, err := f.store.Reviews().GetByID(ctx, review.ID)
	require.NoError(t, err)
	assert.Equal(t, "Draft One", got.Name)
	assert.Equal(t, "Updated", got.Description)
	assert.True(t, got.IsFeatured)
	assert.Equal(t, f.userID, got.CreatedBy)

	_, err = f.store.Reviews().TransitionFromPending(ctx, review.ID, entity.ReviewStatusApproved, f.userID, nil)
	require.NoError(t, err)

	err = f.store.Reviews().UpdatePending(ctx, review)
	assert.True(t, errors.Is(err, entity.ErrInvalidTransition))
}

package http

import (
	"context"
	"mime/multipart"

	"collection-hub/services/collection/internal/entity"
	"collection-hub/services/collection/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
)

// MockReviewUseCase is a mock implementation of ReviewUseCase
type MockReviewUseCase struct {
	mock.Mock
}

func (m *MockReviewUseCase) CreateDraft(ctx context.Context, input entity.CollectionInput, actorID string) (*entity.CollectionReview, error) {
	args := m.Called(ctx, input, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.CollectionReview), args.Error(1)
}

func (m *MockReviewUseCase) UpdateDraft(ctx context.Context, id string, input entity.CollectionInput) (*entity.CollectionReview, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.CollectionReview), args.Error(1)
}

func (m *MockReviewUseCase) ApproveDraft(ctx context.Context, id, actorID string) (*entity.Collection, error) {
	args := m.Called(ctx, id, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Collection), args.Error(1)
}

func (m *MockReviewUseCase) RejectDraft(ctx context.Context, id, notes, actorID string) (*entity.CollectionReview, error) {
	args := m.Called(ctx, id, notes, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.CollectionReview), args.Error(1)
}

func (m *MockReviewUseCase) GetDraft(ctx context.Context, id string) (*entity.CollectionReview, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.CollectionReview), args.Error(1)
}

func (m *MockReviewUseCase) ListDrafts(ctx context.Context, status entity.ReviewStatus, limit, offset int) ([]*entity.CollectionReview, error) {
	args := m.Called(ctx, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.CollectionReview), args.Error(1)
}

var _ usecase.ReviewUseCase = (*MockReviewUseCase)(nil)

// MockCollectionUseCase is a mock implementation of CollectionUseCase
type MockCollectionUseCase struct {
	mock.Mock
}

func (m *MockCollectionUseCase) CreateCollection(ctx context.Context, input entity.CollectionInput, actorID string) (*entity.Collection, error) {
	args := m.Called(ctx, input, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Collection), args.Error(1)
}

func (m *MockCollectionUseCase) GetCollection(ctx context.Context, id string) (*entity.Collection, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Collection), args.Error(1)
}

func (m *MockCollectionUseCase) ListCollections(ctx context.Context, limit, offset int) ([]*entity.Collection, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Collection), args.Error(1)
}

func (m *MockCollectionUseCase) DeleteCollectionOrDraft(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCollectionUseCase) CheckSlug(ctx context.Context, name, excludeID string) (string, bool, error) {
	args := m.Called(ctx, name, excludeID)
	return args.String(0), args.Bool(1), args.Error(2)
}

var _ usecase.CollectionUseCase = (*MockCollectionUseCase)(nil)

// MockCatalogUseCase is a mock implementation of CatalogUseCase
type MockCatalogUseCase struct {
	mock.Mock
}

func (m *MockCatalogUseCase) ListProducts(ctx context.Context, search string, limit int) ([]*entity.Product, error) {
	args := m.Called(ctx, search, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Product), args.Error(1)
}

func (m *MockCatalogUseCase) ListCollectionTypes(ctx context.Context) ([]*entity.CollectionType, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.CollectionType), args.Error(1)
}

func (m *MockCatalogUseCase) CollectionTypeExists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

var _ usecase.CatalogUseCase = (*MockCatalogUseCase)(nil)

// MockMediaUseCase is a mock implementation of MediaUseCase
type MockMediaUseCase struct {
	mock.Mock
}

func (m *MockMediaUseCase) UploadMedia(ctx context.Context, actorID string, kind entity.MediaKind, file *multipart.FileHeader) (string, error) {
	args := m.Called(ctx, actorID, kind, file)
	return args.String(0), args.Error(1)
}

var _ usecase.MediaUseCase = (*MockMediaUseCase)(nil)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func withUser(userID string, next gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		next(c)
	}
}

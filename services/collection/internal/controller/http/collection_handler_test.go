package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"collection-hub/pkg/logger"
	"collection-hub/services/collection/internal/entity"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestGetCollection_Success(t *testing.T) {
	mockUseCase := new(MockCollectionUseCase)
	handler := NewCollectionHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.GET("/collections/:id", handler.GetCollection)

	collection := &entity.Collection{
		ID:   "collection-1",
		Slug: "spring-picks",
		Products: []entity.ProductLink{
			{ProductID: "p2", DisplayOrder: 0},
			{ProductID: "p1", DisplayOrder: 1},
		},
	}
	mockUseCase.On("GetCollection", mock.Anything, "collection-1").Return(collection, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/collections/collection-1", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response entity.Collection
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, []string{"p2", "p1"}, entity.ProductIDs(response.Products))

	mockUseCase.AssertExpectations(t)
}

func TestListCollections_DefaultPaging(t *testing.T) {
	mockUseCase := new(MockCollectionUseCase)
	handler := NewCollectionHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.GET("/collections", handler.ListCollections)

	mockUseCase.On("ListCollections", mock.Anything, 20, 0).Return([]*entity.Collection{}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/collections?limit=abc", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestCreateCollection_Success(t *testing.T) {
	mockUseCase := new(MockCollectionUseCase)
	handler := NewCollectionHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/collections", withUser("admin-1", handler.CreateCollection))

	collection := &entity.Collection{ID: "collection-1", Slug: "interiors", Status: entity.CollectionStatusPublished}
	mockUseCase.On("CreateCollection", mock.Anything, mock.MatchedBy(func(in entity.CollectionInput) bool {
		return in.Name == "Interiors" && len(in.ProductIDs) == 1
	}), "admin-1").Return(collection, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/collections", bytes.NewBufferString(`{"name":"Interiors","type_id":"t","product_ids":["p1"]}`))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestDeleteCollection(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"deleted", nil, http.StatusOK},
		{"not found", fmt.Errorf("%w: no collection or draft with id x", entity.ErrNotFound), http.StatusNotFound},
		{"store failure", fmt.Errorf("%w: %w", entity.ErrConsistency, errors.New("deadlock")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUseCase := new(MockCollectionUseCase)
			handler := NewCollectionHandler(mockUseCase, logger.New())

			router := setupTestRouter()
			router.DELETE("/collections/:id", handler.DeleteCollection)

			mockUseCase.On("DeleteCollectionOrDraft", mock.Anything, "x").Return(tt.err)

			w := httptest.NewRecorder()
			req, _ := http.NewRequest("DELETE", "/collections/x", nil)

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			mockUseCase.AssertExpectations(t)
		})
	}
}

func TestCheckSlug(t *testing.T) {
	mockUseCase := new(MockCollectionUseCase)
	handler := NewCollectionHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.GET("/slugs/check", handler.CheckSlug)

	mockUseCase.On("CheckSlug", mock.Anything, "Spring Picks", "draft-1").Return("spring-picks", true, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/slugs/check?name=Spring+Picks&exclude_id=draft-1", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "spring-picks", response["slug"])
	assert.Equal(t, true, response["available"])

	mockUseCase.AssertExpectations(t)
}

func TestListProducts_Search(t *testing.T) {
	mockCatalog := new(MockCatalogUseCase)
	handler := NewCatalogHandler(mockCatalog, new(MockMediaUseCase), logger.New())

	router := setupTestRouter()
	router.GET("/products", handler.ListProducts)

	products := []*entity.Product{{ID: "p1", Name: "Terracotta Tile", Price: decimal.RequireFromString("19.99")}}
	mockCatalog.On("ListProducts", mock.Anything, "tile", 5).Return(products, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/products?search=tile&limit=5", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Terracotta Tile")
	assert.Contains(t, w.Body.String(), `"19.99"`)

	mockCatalog.AssertExpectations(t)
}

func TestListCollectionTypes(t *testing.T) {
	mockCatalog := new(MockCatalogUseCase)
	handler := NewCatalogHandler(mockCatalog, new(MockMediaUseCase), logger.New())

	router := setupTestRouter()
	router.GET("/collection-types", handler.ListCollectionTypes)

	types := []*entity.CollectionType{{ID: "t1", Name: "Sustainability", Slug: "sustainability"}}
	mockCatalog.On("ListCollectionTypes", mock.Anything).Return(types, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/collection-types", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "sustainability")
	mockCatalog.AssertExpectations(t)
}

func TestUploadMedia_Success(t *testing.T) {
	mockMedia := new(MockMediaUseCase)
	handler := NewCatalogHandler(new(MockCatalogUseCase), mockMedia, logger.New())

	router := setupTestRouter()
	router.POST("/media", withUser("editor-1", handler.UploadMedia))

	mockMedia.On("UploadMedia", mock.Anything, "editor-1", entity.MediaKindBanner, mock.AnythingOfType("*multipart.FileHeader")).
		Return("https://media.example.com/collections/editor-1/banner/x.png", nil)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	writer.WriteField("kind", "banner")
	part, _ := writer.CreateFormFile("file", "banner.png")
	part.Write([]byte("png-bytes"))
	writer.Close()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/media", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	var response map[string]string
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "https://media.example.com/collections/editor-1/banner/x.png", response["url"])

	mockMedia.AssertExpectations(t)
}

func TestUploadMedia_MissingFile(t *testing.T) {
	mockMedia := new(MockMediaUseCase)
	handler := NewCatalogHandler(new(MockCatalogUseCase), mockMedia, logger.New())

	router := setupTestRouter()
	router.POST("/media", withUser("editor-1", handler.UploadMedia))

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	writer.WriteField("kind", "image")
	writer.Close()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/media", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockMedia.AssertNotCalled(t, "UploadMedia", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

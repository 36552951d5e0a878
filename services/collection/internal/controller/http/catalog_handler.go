package http

import (
	"net/http"

	"collection-hub/pkg/logger"
	"collection-hub/services/collection/internal/entity"
	"collection-hub/services/collection/internal/usecase"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	catalogUseCase usecase.CatalogUseCase
	mediaUseCase   usecase.MediaUseCase
	logger         *logger.Logger
}

func NewCatalogHandler(catalogUseCase usecase.CatalogUseCase, mediaUseCase usecase.MediaUseCase, logger *logger.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalogUseCase: catalogUseCase,
		mediaUseCase:   mediaUseCase,
		logger:         logger,
	}
}

// ListProducts godoc
// @Summary      List published products
// @Description  With search, products are ranked by fuzzy match on the name.
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Param        search query string false "Search term"
// @Param        limit query int false "Max results (max 200)"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]string
// @Router       /products [get]
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	products, err := h.catalogUseCase.ListProducts(c.Request.Context(), c.Query("search"), queryInt(c, "limit", 0))
	if err != nil {
		respondError(c, h.logger, "list products", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products})
}

// ListCollectionTypes godoc
// @Summary      List collection types
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]string
// @Router       /collection-types [get]
func (h *CatalogHandler) ListCollectionTypes(c *gin.Context) {
	types, err := h.catalogUseCase.ListCollectionTypes(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "list collection types", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"collection_types": types})
}

// UploadMedia godoc
// @Summary      Upload collection media
// @Description  Stores an image and returns the URL to use as image_url, banner_url or in marketing_images.
// @Tags         catalog
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        kind formData string true "Media kind" Enums(image, banner, marketing)
// @Param        file formData file true "Image file (jpeg, png, webp, gif)"
// @Success      201  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /media [post]
func (h *CatalogHandler) UploadMedia(c *gin.Context) {
	userID := c.GetString("user_id")

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File is required"})
		return
	}

	kind := entity.MediaKind(c.PostForm("kind"))
	url, err := h.mediaUseCase.UploadMedia(c.Request.Context(), userID, kind, file)
	if err != nil {
		respondError(c, h.logger, "upload media", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"url":  url,
		"kind": kind,
	})
}

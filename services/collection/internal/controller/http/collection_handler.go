package http

import (
	"net/http"

	"collection-hub/pkg/logger"
	"collection-hub/services/collection/internal/entity"
	"collection-hub/services/collection/internal/usecase"

	"github.com/gin-gonic/gin"
)

type CollectionHandler struct {
	collectionUseCase usecase.CollectionUseCase
	logger            *logger.Logger
}

func NewCollectionHandler(collectionUseCase usecase.CollectionUseCase, logger *logger.Logger) *CollectionHandler {
	return &CollectionHandler{
		collectionUseCase: collectionUseCase,
		logger:            logger,
	}
}

// ListCollections godoc
// @Summary      List published collections
// @Description  Ordered by display_order, newest first within the same order.
// @Tags         collections
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "Page size (max 100)"
// @Param        offset query int false "Offset"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]string
// @Router       /collections [get]
func (h *CollectionHandler) ListCollections(c *gin.Context) {
	limit := queryInt(c, "limit", 20)
	offset := queryInt(c, "offset", 0)

	collections, err := h.collectionUseCase.ListCollections(c.Request.Context(), limit, offset)
	if err != nil {
		respondError(c, h.logger, "list collections", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"collections": collections,
		"limit":       limit,
		"offset":      offset,
	})
}

// GetCollection godoc
// @Summary      Get a published collection
// @Tags         collections
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Collection ID"
// @Success      200  {object}  entity.Collection
// @Failure      404  {object}  map[string]string
// @Router       /collections/{id} [get]
func (h *CollectionHandler) GetCollection(c *gin.Context) {
	collection, err := h.collectionUseCase.GetCollection(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, "get collection", err)
		return
	}

	c.JSON(http.StatusOK, collection)
}

// CreateCollection godoc
// @Summary      Publish a collection without review
// @Tags         collections
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body entity.CollectionInput true "Collection fields"
// @Success      201  {object}  entity.Collection
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /collections [post]
func (h *CollectionHandler) CreateCollection(c *gin.Context) {
	userID := c.GetString("user_id")

	var req entity.CollectionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	collection, err := h.collectionUseCase.CreateCollection(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, h.logger, "create collection", err)
		return
	}

	c.JSON(http.StatusCreated, collection)
}

// DeleteCollection godoc
// @Summary      Delete a collection or draft
// @Description  Looks the id up among published collections first, then among drafts.
// @Tags         collections
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Collection or draft ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /collections/{id} [delete]
func (h *CollectionHandler) DeleteCollection(c *gin.Context) {
	if err := h.collectionUseCase.DeleteCollectionOrDraft(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, "delete collection", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Collection deleted"})
}

// CheckSlug godoc
// @Summary      Check slug availability
// @Tags         collections
// @Produce      json
// @Security     BearerAuth
// @Param        name query string true "Collection name"
// @Param        exclude_id query string false "Draft or collection ID to ignore"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /slugs/check [get]
func (h *CollectionHandler) CheckSlug(c *gin.Context) {
	slug, available, err := h.collectionUseCase.CheckSlug(c.Request.Context(), c.Query("name"), c.Query("exclude_id"))
	if err != nil {
		respondError(c, h.logger, "check slug", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"slug":      slug,
		"available": available,
	})
}

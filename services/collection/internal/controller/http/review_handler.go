package http

import (
	"net/http"

	"collection-hub/pkg/logger"
	"collection-hub/services/collection/internal/entity"
	"collection-hub/services/collection/internal/usecase"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	reviewUseCase usecase.ReviewUseCase
	logger        *logger.Logger
}

func NewReviewHandler(reviewUseCase usecase.ReviewUseCase, logger *logger.Logger) *ReviewHandler {
	return &ReviewHandler{
		reviewUseCase: reviewUseCase,
		logger:        logger,
	}
}

type RejectRequest struct {
	Notes string `json:"notes"`
}

// CreateDraft godoc
// @Summary      Submit a collection draft
// @Description  Allocates a slug, stores the draft with its ordered products and puts it in the pending queue.
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body entity.CollectionInput true "Draft fields"
// @Success      201  {object}  entity.CollectionReview
// @Failure      400  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /reviews [post]
func (h *ReviewHandler) CreateDraft(c *gin.Context) {
	userID := c.GetString("user_id")

	var req entity.CollectionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	draft, err := h.reviewUseCase.CreateDraft(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, h.logger, "create draft", err)
		return
	}

	c.JSON(http.StatusCreated, draft)
}

// ListDrafts godoc
// @Summary      List collection drafts
// @Description  Newest first, optionally filtered by review status.
// @Tags         reviews
// @Produce      json
// @Security     BearerAuth
// @Param        status query string false "Review status" Enums(pending, approved, rejected)
// @Param        limit query int false "Page size (max 100)"
// @Param        offset query int false "Offset"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /reviews [get]
func (h *ReviewHandler) ListDrafts(c *gin.Context) {
	limit := queryInt(c, "limit", 20)
	offset := queryInt(c, "offset", 0)
	status := entity.ReviewStatus(c.Query("status"))

	drafts, err := h.reviewUseCase.ListDrafts(c.Request.Context(), status, limit, offset)
	if err != nil {
		respondError(c, h.logger, "list drafts", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"drafts": drafts,
		"limit":  limit,
		"offset": offset,
	})
}

// GetDraft godoc
// @Summary      Get a collection draft
// @Tags         reviews
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Draft ID"
// @Success      200  {object}  entity.CollectionReview
// @Failure      404  {object}  map[string]string
// @Router       /reviews/{id} [get]
func (h *ReviewHandler) GetDraft(c *gin.Context) {
	draft, err := h.reviewUseCase.GetDraft(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, "get draft", err)
		return
	}

	c.JSON(http.StatusOK, draft)
}

// UpdateDraft godoc
// @Summary      Edit a pending draft
// @Description  Replaces the draft fields and products. The slug changes only when the name does.
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Draft ID"
// @Param        request body entity.CollectionInput true "Draft fields"
// @Success      200  {object}  entity.CollectionReview
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /reviews/{id} [put]
func (h *ReviewHandler) UpdateDraft(c *gin.Context) {
	var req entity.CollectionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	draft, err := h.reviewUseCase.UpdateDraft(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, h.logger, "update draft", err)
		return
	}

	c.JSON(http.StatusOK, draft)
}

// ApproveDraft godoc
// @Summary      Approve a pending draft
// @Description  Publishes the draft as a collection in one transaction.
// @Tags         reviews
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Draft ID"
// @Success      200  {object}  entity.Collection
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /reviews/{id}/approve [post]
func (h *ReviewHandler) ApproveDraft(c *gin.Context) {
	userID := c.GetString("user_id")

	collection, err := h.reviewUseCase.ApproveDraft(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, h.logger, "approve draft", err)
		return
	}

	c.JSON(http.StatusOK, collection)
}

// RejectDraft godoc
// @Summary      Reject a pending draft
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Draft ID"
// @Param        request body RejectRequest false "Reviewer notes"
// @Success      200  {object}  entity.CollectionReview
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /reviews/{id}/reject [post]
func (h *ReviewHandler) RejectDraft(c *gin.Context) {
	userID := c.GetString("user_id")

	var req RejectRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	draft, err := h.reviewUseCase.RejectDraft(c.Request.Context(), c.Param("id"), req.Notes, userID)
	if err != nil {
		respondError(c, h.logger, "reject draft", err)
		return
	}

	c.JSON(http.StatusOK, draft)
}

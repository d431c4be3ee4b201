package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"book-review-backend/internal/domains/review/model"
	"book-review-backend/internal/domains/review/service"
	"book-review-backend/internal/shared/response"
	"book-review-backend/internal/shared/utils"
)

// =====================================================
// REVIEW HANDLER
// =====================================================

type ReviewHandler struct {
	reviewService service.ServiceInterface
}

func NewReviewHandler(reviewService service.ServiceInterface) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
	}
}

// CreateReview
// POST /api/reviews
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	var req model.CreateReviewRequest
	if !utils.BindJSON(c, &req) {
		return
	}

	review, err := h.reviewService.CreateReview(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, review)
}

// GetReview
// GET /api/reviews/:id
func (h *ReviewHandler) GetReview(c *gin.Context) {
	id, ok := utils.ParamUUID(c, "id")
	if !ok {
		return
	}

	review, err := h.reviewService.GetReview(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, review)
}

// GetBookReviews lists a book's reviews, newest first
// GET /api/books/:id/reviews
func (h *ReviewHandler) GetBookReviews(c *gin.Context) {
	bookID, ok := utils.ParamUUID(c, "id")
	if !ok {
		return
	}

	reviews, err := h.reviewService.ListBookReviews(c.Request.Context(), bookID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, reviews)
}

// UpdateReview
// PUT /api/reviews/:id
func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	id, ok := utils.ParamUUID(c, "id")
	if !ok {
		return
	}

	var req model.UpdateReviewRequest
	if !utils.BindJSON(c, &req) {
		return
	}

	review, err := h.reviewService.UpdateReview(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, review)
}

// DeleteReview answers with the book id so clients can refresh it
// DELETE /api/reviews/:id
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	id, ok := utils.ParamUUID(c, "id")
	if !ok {
		return
	}

	bookID, err := h.reviewService.DeleteReview(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, model.DeleteReviewResponse{
		Message: "Review deleted successfully",
		BookID:  bookID,
	})
}

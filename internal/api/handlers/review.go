package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/phonedex/phonedex-backend/internal/models"
	"github.com/phonedex/phonedex-backend/internal/services"
	"github.com/phonedex/phonedex-backend/internal/utils"
)

type ReviewHandler struct {
	reviewService *services.ReviewService
}

func NewReviewHandler(reviewService *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

type createReviewRequest struct {
	CategoryRatings models.CategoryRatings `json:"categoryRatings" binding:"required"`
	Title           string                 `json:"title" binding:"required"`
	Review          string                 `json:"review" binding:"required"`
}

func (h *ReviewHandler) Create(c *gin.Context) {
	var req createReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request data")
		return
	}

	review, err := h.reviewService.Add(c.Request.Context(), c.Param("phone_id"), services.AddReviewInput{
		UserID:          c.GetString("user_id"),
		UserName:        c.GetString("user_name"),
		CategoryRatings: req.CategoryRatings,
		Title:           req.Title,
		Body:            req.Review,
	})
	if err != nil {
		respondServiceError(c, err, "Failed to create review")
		return
	}

	utils.SendCreated(c, "Review created successfully", review)
}

func (h *ReviewHandler) ListForPhone(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	result, err := h.reviewService.ListForPhone(c.Request.Context(), c.Param("phone_id"), page, limit)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch reviews")
		return
	}

	utils.SendSuccess(c, "Reviews retrieved successfully", result)
}

func (h *ReviewHandler) Summary(c *gin.Context) {
	summary, err := h.reviewService.Summary(c.Request.Context(), c.Param("phone_id"))
	if err != nil {
		respondServiceError(c, err, "Failed to fetch rating summary")
		return
	}

	utils.SendSuccess(c, "Rating summary retrieved successfully", summary)
}

func (h *ReviewHandler) Vote(c *gin.Context) {
	reviewID, err := strconv.Atoi(c.Param("review_id"))
	if err != nil {
		utils.SendValidationError(c, "Invalid review ID")
		return
	}

	var req voteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request data")
		return
	}

	review, err := h.reviewService.Vote(c.Request.Context(), c.Param("phone_id"), reviewID, c.GetString("user_id"), req.VoteType)
	if err != nil {
		respondServiceError(c, err, "Failed to vote on review")
		return
	}

	utils.SendSuccess(c, "Vote recorded successfully", review)
}

func (h *ReviewHandler) Delete(c *gin.Context) {
	reviewID, err := strconv.Atoi(c.Param("review_id"))
	if err != nil {
		utils.SendValidationError(c, "Invalid review ID")
		return
	}

	err = h.reviewService.Remove(c.Request.Context(), c.Param("phone_id"), reviewID, c.GetString("user_id"))
	if err != nil {
		respondServiceError(c, err, "Failed to delete review")
		return
	}

	utils.SendSuccess(c, "Review deleted successfully", nil)
}

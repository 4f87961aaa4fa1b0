package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/phonedex/phonedex-backend/internal/services"
	"github.com/phonedex/phonedex-backend/internal/utils"
)

type DiscussionHandler struct {
	discussionService *services.DiscussionService
}

func NewDiscussionHandler(discussionService *services.DiscussionService) *DiscussionHandler {
	return &DiscussionHandler{discussionService: discussionService}
}

type createDiscussionRequest struct {
	Title    string   `json:"title" binding:"required"`
	Content  string   `json:"content" binding:"required"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
	Images   []string `json:"images"`
}

func (h *DiscussionHandler) Create(c *gin.Context) {
	var req createDiscussionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request data")
		return
	}

	discussion, err := h.discussionService.Create(c.Request.Context(), services.CreateDiscussionInput{
		AuthorID:   c.GetString("user_id"),
		AuthorName: c.GetString("user_name"),
		Title:      req.Title,
		Content:    req.Content,
		Category:   req.Category,
		Tags:       req.Tags,
		Images:     req.Images,
	})
	if err != nil {
		respondServiceError(c, err, "Failed to create discussion")
		return
	}

	utils.SendCreated(c, "Discussion created successfully", discussion)
}

func (h *DiscussionHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	var categories []string
	if raw := c.Query("categories"); raw != "" {
		categories = strings.Split(raw, ",")
	}

	result, err := h.discussionService.List(c.Request.Context(), services.DiscussionQuery{
		Page:       page,
		Limit:      limit,
		Filter:     c.DefaultQuery("filter", "trending"),
		Search:     c.Query("search"),
		Categories: categories,
	})
	if err != nil {
		respondServiceError(c, err, "Failed to fetch discussions")
		return
	}

	utils.SendSuccess(c, "Discussions retrieved successfully", result)
}

func (h *DiscussionHandler) Get(c *gin.Context) {
	discussion, err := h.discussionService.Get(c.Request.Context(), c.Param("id"), true)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch discussion")
		return
	}

	utils.SendSuccess(c, "Discussion retrieved successfully", discussion)
}

type voteRequest struct {
	VoteType string `json:"voteType" binding:"required"`
}

func (h *DiscussionHandler) Vote(c *gin.Context) {
	var req voteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request data")
		return
	}

	discussion, err := h.discussionService.Vote(c.Request.Context(), c.Param("id"), c.GetString("user_id"), req.VoteType)
	if err != nil {
		respondServiceError(c, err, "Failed to vote on discussion")
		return
	}

	utils.SendSuccess(c, "Vote recorded successfully", discussion)
}

func (h *DiscussionHandler) Delete(c *gin.Context) {
	err := h.discussionService.Delete(c.Request.Context(), c.Param("id"), c.GetString("user_id"))
	if err != nil {
		respondServiceError(c, err, "Failed to delete discussion")
		return
	}

	utils.SendSuccess(c, "Discussion deleted successfully", nil)
}

type createReplyRequest struct {
	Content       string   `json:"content" binding:"required"`
	Images        []string `json:"images"`
	ParentReplyID *string  `json:"parentReplyId"`
}

func (h *DiscussionHandler) AddReply(c *gin.Context) {
	var req createReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request data")
		return
	}

	reply, err := h.discussionService.AddReply(c.Request.Context(), services.CreateReplyInput{
		DiscussionID:  c.Param("id"),
		AuthorID:      c.GetString("user_id"),
		AuthorName:    c.GetString("user_name"),
		Content:       req.Content,
		Images:        req.Images,
		ParentReplyID: req.ParentReplyID,
	})
	if err != nil {
		respondServiceError(c, err, "Failed to add reply")
		return
	}

	utils.SendCreated(c, "Reply added successfully", reply)
}

func (h *DiscussionHandler) Replies(c *gin.Context) {
	replies, err := h.discussionService.Replies(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to fetch replies")
		return
	}

	utils.SendSuccess(c, "Replies retrieved successfully", replies)
}

func (h *DiscussionHandler) VoteReply(c *gin.Context) {
	var req voteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request data")
		return
	}

	reply, err := h.discussionService.VoteReply(c.Request.Context(), c.Param("replyId"), c.GetString("user_id"), req.VoteType)
	if err != nil {
		respondServiceError(c, err, "Failed to vote on reply")
		return
	}

	utils.SendSuccess(c, "Vote recorded successfully", reply)
}

func (h *DiscussionHandler) DeleteReply(c *gin.Context) {
	err := h.discussionService.DeleteReply(c.Request.Context(), c.Param("replyId"), c.GetString("user_id"))
	if err != nil {
		respondServiceError(c, err, "Failed to delete reply")
		return
	}

	utils.SendSuccess(c, "Reply deleted successfully", nil)
}

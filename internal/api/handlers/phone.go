package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/phonedex/phonedex-backend/internal/services"
	"github.com/phonedex/phonedex-backend/internal/utils"
)

type PhoneHandler struct {
	phoneService *services.PhoneService
}

func NewPhoneHandler(phoneService *services.PhoneService) *PhoneHandler {
	return &PhoneHandler{phoneService: phoneService}
}

func (h *PhoneHandler) List(c *gin.Context) {
	var filter services.PhoneFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		utils.SendValidationError(c, "Invalid filter parameters")
		return
	}

	result, err := h.phoneService.List(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch phones")
		return
	}

	utils.SendSuccess(c, "Phones retrieved successfully", result)
}

func (h *PhoneHandler) Get(c *gin.Context) {
	phone, err := h.phoneService.Get(c.Request.Context(), c.Param("phone_id"))
	if err != nil {
		respondServiceError(c, err, "Failed to fetch phone")
		return
	}

	utils.SendSuccess(c, "Phone retrieved successfully", phone)
}

func (h *PhoneHandler) Create(c *gin.Context) {
	var req services.PhoneInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request data")
		return
	}

	phone, err := h.phoneService.Create(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "Failed to create phone")
		return
	}

	utils.SendCreated(c, "Phone created successfully", phone)
}

func (h *PhoneHandler) Update(c *gin.Context) {
	var req services.PhoneInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request data")
		return
	}

	phone, err := h.phoneService.Update(c.Request.Context(), c.Param("phone_id"), req)
	if err != nil {
		respondServiceError(c, err, "Failed to update phone")
		return
	}

	utils.SendSuccess(c, "Phone updated successfully", phone)
}

func (h *PhoneHandler) Delete(c *gin.Context) {
	err := h.phoneService.Delete(c.Request.Context(), c.Param("phone_id"))
	if err != nil {
		respondServiceError(c, err, "Failed to delete phone")
		return
	}

	utils.SendSuccess(c, "Phone deleted successfully", nil)
}

func (h *PhoneHandler) Stats(c *gin.Context) {
	stats, err := h.phoneService.Stats(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Failed to fetch catalog stats")
		return
	}

	utils.SendSuccess(c, "Catalog stats retrieved successfully", stats)
}

package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/phonedex/phonedex-backend/internal/services"
	"github.com/phonedex/phonedex-backend/internal/utils"
)

type ImageHandler struct {
	imageService *services.ImageService
}

func NewImageHandler(imageService *services.ImageService) *ImageHandler {
	return &ImageHandler{imageService: imageService}
}

func (h *ImageHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		utils.SendValidationError(c, "Image file required")
		return
	}
	defer file.Close()

	result, err := h.imageService.UploadImage(file, header)
	if err != nil {
		respondServiceError(c, err, "Failed to upload image")
		return
	}

	utils.SendCreated(c, "Image uploaded successfully", result)
}

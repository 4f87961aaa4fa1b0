package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/phonedex/phonedex-backend/internal/services"
	"github.com/phonedex/phonedex-backend/internal/utils"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Sync upserts the caller's account from their verified token claims. Clients
// call it once after sign-in.
func (h *UserHandler) Sync(c *gin.Context) {
	user, created, err := h.userService.Sync(c.Request.Context(), services.SyncUserInput{
		UserID: c.GetString("user_id"),
		Email:  c.GetString("user_email"),
		Name:   c.GetString("user_name"),
	})
	if err != nil {
		respondServiceError(c, err, "Failed to sync user")
		return
	}

	if created {
		utils.SendCreated(c, "User created successfully", user)
		return
	}
	utils.SendSuccess(c, "User synced successfully", user)
}

func (h *UserHandler) Me(c *gin.Context) {
	user, err := h.userService.Profile(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		respondServiceError(c, err, "Failed to fetch profile")
		return
	}

	utils.SendSuccess(c, "Profile retrieved successfully", user)
}

type updateProfileRequest struct {
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl"`
}

func (h *UserHandler) UpdateMe(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request data")
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), c.GetString("user_id"), services.UpdateProfileInput{
		Name:      req.Name,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		respondServiceError(c, err, "Failed to update profile")
		return
	}

	utils.SendSuccess(c, "Profile updated successfully", user)
}

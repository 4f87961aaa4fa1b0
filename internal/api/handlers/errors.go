package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/phonedex/phonedex-backend/internal/services"
	"github.com/phonedex/phonedex-backend/internal/utils"
	"github.com/phonedex/phonedex-backend/pkg/logger"
)

// respondServiceError maps the engine's error taxonomy onto HTTP status codes.
// Anything outside the taxonomy is a 500 and gets logged.
func respondServiceError(c *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.SendError(c, http.StatusNotFound, message, err)
	case errors.Is(err, services.ErrInvalidArgument):
		utils.SendError(c, http.StatusBadRequest, message, err)
	case errors.Is(err, services.ErrPermissionDenied):
		utils.SendError(c, http.StatusForbidden, message, err)
	case errors.Is(err, services.ErrConflict):
		utils.SendError(c, http.StatusConflict, message, err)
	default:
		logger.Errorf("%s: %v", message, err)
		utils.SendInternalError(c, message, err)
	}
}

package handlers

import (
	"net/http"

	"github.com/aokitrading/fulfillment-api/internal/dto"
	apierrors "github.com/aokitrading/fulfillment-api/internal/errors"
	"github.com/aokitrading/fulfillment-api/internal/middleware"
	"github.com/aokitrading/fulfillment-api/internal/services"
	"github.com/gin-gonic/gin"
)

// UserHandler serves operator listings for assignee pickers.
type UserHandler struct {
	authService *services.AuthService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(authService *services.AuthService) *UserHandler {
	return &UserHandler{
		authService: authService,
	}
}

// ListUsers returns every operator.
func (h *UserHandler) ListUsers(c *gin.Context) {
	if _, exists := middleware.GetUserID(c); !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	users, err := h.authService.ListUsers()
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch users")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": dto.ToUserDTOs(users),
	})
}

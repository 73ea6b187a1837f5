package handler

import (
	"errors"
	"net/http"

	"filmboard/internal/api/dto"
	"filmboard/internal/api/middleware"
	"filmboard/internal/api/service"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	authService service.AuthService
}

func NewProfileHandler(authService service.AuthService) *ProfileHandler {
	return &ProfileHandler{authService: authService}
}

// RegisterRoutes registers profile read/edit routes
func (h *ProfileHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/:username", h.Get)
	rg.PUT("/:username", middleware.AuthMiddleware(h.authService), h.Update)
}

// Get returns the public view of a profile
// GET /api/auth/profile/:username
func (h *ProfileHandler) Get(c *gin.Context) {
	user, err := h.authService.GetProfile(c.Param("username"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	c.JSON(http.StatusOK, dto.ProfileResponse{
		Username:   user.Username,
		AvatarURL:  user.AvatarURL,
		Bio:        user.Bio,
		DateJoined: user.CreatedAt.Format("2006-01-02"),
	})
}

// Update edits the caller's own profile
// PUT /api/auth/profile/:username
func (h *ProfileHandler) Update(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.authService.UpdateProfile(userID.(string), c.Param("username"), req.AvatarURL, req.Bio)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrNotProfileOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ProfileResponse{
		Username:   user.Username,
		AvatarURL:  user.AvatarURL,
		Bio:        user.Bio,
		DateJoined: user.CreatedAt.Format("2006-01-02"),
	})
}

package handler

import (
	"errors"
	"net/http"

	"filmboard/internal/api/dto"
	"filmboard/internal/api/middleware"
	"filmboard/internal/api/service"

	"github.com/gin-gonic/gin"
)

type FollowHandler struct {
	svc         service.FollowService
	authService service.AuthService
}

func NewFollowHandler(svc service.FollowService, authService service.AuthService) *FollowHandler {
	return &FollowHandler{svc: svc, authService: authService}
}

// RegisterRoutes registers follow-graph routes
func (h *FollowHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/follow", middleware.AuthMiddleware(h.authService), h.Follow)
	router.DELETE("/follow", middleware.AuthMiddleware(h.authService), h.Unfollow)

	users := router.Group("/users")
	{
		// Status personalizes for a logged-in viewer but stays public.
		users.GET("/:username/follow-status", middleware.OptionalAuth(h.authService), h.Status)
		users.GET("/:username/followers", h.Followers)
		users.GET("/:username/following", h.Following)
	}
}

// Follow creates a follow edge
// POST /api/follow
func (h *FollowHandler) Follow(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req dto.FollowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.svc.Follow(c.Request.Context(), userID.(string), req.FollowingUsername); err != nil {
		switch {
		case errors.Is(err, service.ErrSelfFollow):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrTargetNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Unfollow removes a follow edge
// DELETE /api/follow
func (h *FollowHandler) Unfollow(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req dto.FollowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.svc.Unfollow(c.Request.Context(), userID.(string), req.FollowingUsername); err != nil {
		if errors.Is(err, service.ErrTargetNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Status reports follow state and follower count for a profile
// GET /api/users/:username/follow-status
func (h *FollowHandler) Status(c *gin.Context) {
	viewerID := c.GetString("userID") // empty for anonymous viewers

	status, err := h.svc.Status(c.Request.Context(), viewerID, c.Param("username"))
	if err != nil {
		if errors.Is(err, service.ErrTargetNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, status)
}

// Followers lists who follows a user
// GET /api/users/:username/followers
func (h *FollowHandler) Followers(c *gin.Context) {
	list, err := h.svc.Followers(c.Request.Context(), c.Param("username"))
	if err != nil {
		if errors.Is(err, service.ErrTargetNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, list)
}

// Following lists who a user follows
// GET /api/users/:username/following
func (h *FollowHandler) Following(c *gin.Context) {
	list, err := h.svc.Following(c.Request.Context(), c.Param("username"))
	if err != nil {
		if errors.Is(err, service.ErrTargetNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, list)
}

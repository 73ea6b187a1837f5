package handler

import (
	"errors"
	"net/http"
	"strconv"

	"filmboard/internal/api/service"

	"github.com/gin-gonic/gin"
)

type ActivityHandler struct {
	svc         service.ActivityService
	authService service.AuthService
}

func NewActivityHandler(svc service.ActivityService, authService service.AuthService) *ActivityHandler {
	return &ActivityHandler{svc: svc, authService: authService}
}

// RegisterRoutes registers activity feed routes
func (h *ActivityHandler) RegisterRoutes(router *gin.RouterGroup) {
	activity := router.Group("/activity")
	{
		activity.GET("/feed/:username", h.UserFeed)
		activity.GET("/following/:username", h.FollowingFeed)
	}
}

// UserFeed returns a user's own recent activity
// GET /api/activity/feed/:username?limit=50
func (h *ActivityHandler) UserFeed(c *gin.Context) {
	user, err := h.authService.GetProfile(c.Param("username"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	feed, err := h.svc.GetUserFeed(c.Request.Context(), user.ID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, feed)
}

// FollowingFeed returns the recent activity of everyone a user follows.
// Following nobody yields an empty feed, not an error.
// GET /api/activity/following/:username?limit=50
func (h *ActivityHandler) FollowingFeed(c *gin.Context) {
	user, err := h.authService.GetProfile(c.Param("username"))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	feed, err := h.svc.GetFollowingFeed(c.Request.Context(), user.ID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, feed)
}

package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"filmboard/internal/api/dto"
	"filmboard/internal/api/middleware"
	"filmboard/internal/api/service"

	"github.com/gin-gonic/gin"
)

type CollectionHandler struct {
	svc         service.CollectionService
	authService service.AuthService
}

func NewCollectionHandler(svc service.CollectionService, authService service.AuthService) *CollectionHandler {
	return &CollectionHandler{svc: svc, authService: authService}
}

// RegisterRoutes mounts the three collection buckets under the profile
// path. Reads are public; writes require the authenticated user to match
// the profile owner.
func (h *CollectionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/:username/:collection", h.List)
	rg.POST("/:username/:collection", middleware.AuthMiddleware(h.authService), h.Add)
	rg.DELETE("/:username/:collection", middleware.AuthMiddleware(h.authService), h.Remove)
}

// requireOwner enforces that the path username is the authenticated user.
func requireOwner(c *gin.Context) (userID, username string, ok bool) {
	uid, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return "", "", false
	}
	username = c.GetString("username")
	if username != c.Param("username") {
		c.JSON(http.StatusForbidden, gin.H{"error": "you can only modify your own collection"})
		return "", "", false
	}
	return uid.(string), username, true
}

// Add flags a movie in one of the caller's buckets
// POST /api/auth/profile/:username/seenit
func (h *CollectionHandler) Add(c *gin.Context) {
	userID, username, ok := requireOwner(c)
	if !ok {
		return
	}

	var req dto.AddToCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.Add(ctx, userID, username, c.Param("collection"), req.Slug, req.Title); err != nil {
		if errors.Is(err, service.ErrUnknownCollection) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "movie added"})
}

// Remove clears the flag for a movie in one of the caller's buckets
// DELETE /api/auth/profile/:username/seenit
func (h *CollectionHandler) Remove(c *gin.Context) {
	userID, username, ok := requireOwner(c)
	if !ok {
		return
	}

	var req dto.RemoveFromCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.Remove(ctx, userID, username, c.Param("collection"), req.Slug); err != nil {
		if errors.Is(err, service.ErrUnknownCollection) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "movie removed"})
}

// List returns the movies flagged in one bucket for any user (public read)
// GET /api/auth/profile/:username/seenit
func (h *CollectionHandler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	user, err := h.authService.GetProfile(c.Param("username"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	list, err := h.svc.List(ctx, user.ID, c.Param("collection"))
	if err != nil {
		if errors.Is(err, service.ErrUnknownCollection) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, list)
}

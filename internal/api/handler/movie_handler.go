package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"filmboard/internal/api/dto"
	"filmboard/internal/api/middleware"
	"filmboard/internal/api/service"

	"github.com/gin-gonic/gin"
)

type MovieHandler struct {
	svc         service.MovieService
	authService service.AuthService
}

func NewMovieHandler(svc service.MovieService, authService service.AuthService) *MovieHandler {
	return &MovieHandler{svc: svc, authService: authService}
}

// RegisterRoutes registers catalog routes
func (h *MovieHandler) RegisterRoutes(router *gin.RouterGroup) {
	data := router.Group("/data")
	{
		data.GET("/:genre", h.ListByGenre) // ?url= for a single lookup
		data.POST("", middleware.AuthMiddleware(h.authService), middleware.RequireAdmin(), h.Upsert)
	}
	router.GET("/search", h.Search)
}

// ListByGenre lists the catalog for a genre, or resolves a single movie
// when the url query param is present
// GET /api/data/:genre?url=inception-27205
func (h *MovieHandler) ListByGenre(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if slug := c.Query("url"); slug != "" {
		movie, err := h.svc.GetBySlug(ctx, slug)
		if err != nil {
			if errors.Is(err, service.ErrMovieNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, movie)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	movies, err := h.svc.GetByGenre(ctx, c.Param("genre"), page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, movies)
}

// Upsert inserts or refreshes a catalog record (admin only)
// POST /api/data
func (h *MovieHandler) Upsert(c *gin.Context) {
	var req dto.UpsertMovieDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Outbound poster lookup can be slow; give it room.
	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	movie, err := h.svc.Upsert(ctx, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, movie)
}

// Search performs a title/director/slug token search
// GET /api/search?q=inception
func (h *MovieHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q query parameter is required"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	movies, err := h.svc.Search(ctx, query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": movies, "total": len(movies)})
}

package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"filmboard/internal/api/dto"
	"filmboard/internal/api/models"
	"filmboard/internal/api/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockCollectionService mocks the CollectionService interface
type MockCollectionService struct {
	mock.Mock
}

func (m *MockCollectionService) Add(ctx context.Context, userID, username, collection, slug, title string) error {
	args := m.Called(userID, username, collection, slug, title)
	return args.Error(0)
}

func (m *MockCollectionService) Remove(ctx context.Context, userID, username, collection, slug string) error {
	args := m.Called(userID, username, collection, slug)
	return args.Error(0)
}

func (m *MockCollectionService) List(ctx context.Context, userID, collection string) (*dto.CollectionListResponse, error) {
	args := m.Called(userID, collection)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CollectionListResponse), args.Error(1)
}

func aliceClaims() *service.Claims {
	return &service.Claims{
		UserID:   "alice-id",
		Username: "alice",
		Role:     "user",
	}
}

func TestCollectionAdd_SeenIt(t *testing.T) {
	mockAuthService := new(MockAuthService)
	mockSvc := new(MockCollectionService)
	handler := NewCollectionHandler(mockSvc, mockAuthService)
	router := setupRouter()
	handler.RegisterRoutes(router.Group("/api/auth/profile"))

	mockAuthService.On("ValidateToken", "alice-token").Return(aliceClaims(), nil)
	mockSvc.On("Add", "alice-id", "alice", "seenit", "inception-27205", "Inception").Return(nil)

	body, _ := json.Marshal(dto.AddToCollectionRequest{Title: "Inception", Slug: "inception-27205"})
	req, _ := http.NewRequest("POST", "/api/auth/profile/alice/seenit", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: "token", Value: "alice-token"})
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestCollectionList_AfterAdd(t *testing.T) {
	mockAuthService := new(MockAuthService)
	mockSvc := new(MockCollectionService)
	handler := NewCollectionHandler(mockSvc, mockAuthService)
	router := setupRouter()
	handler.RegisterRoutes(router.Group("/api/auth/profile"))

	mockAuthService.On("GetProfile", "alice").Return(&models.User{ID: "alice-id", Username: "alice"}, nil)
	mockSvc.On("List", "alice-id", "seenit").Return(&dto.CollectionListResponse{
		Items: []dto.CollectionItemResponse{{
			ID:        1,
			Title:     "Inception",
			Slug:      "inception-27205",
			IsSeen:    true,
			UpdatedAt: time.Now(),
		}},
		Total: 1,
	}, nil)

	req, _ := http.NewRequest("GET", "/api/auth/profile/alice/seenit", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.CollectionListResponse
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, 1, response.Total)
	if assert.Len(t, response.Items, 1) {
		assert.Equal(t, "inception-27205", response.Items[0].Slug)
		assert.True(t, response.Items[0].IsSeen)
	}

	mockSvc.AssertExpectations(t)
}

func TestCollectionAdd_NotOwner(t *testing.T) {
	mockAuthService := new(MockAuthService)
	mockSvc := new(MockCollectionService)
	handler := NewCollectionHandler(mockSvc, mockAuthService)
	router := setupRouter()
	handler.RegisterRoutes(router.Group("/api/auth/profile"))

	mockAuthService.On("ValidateToken", "bob-token").Return(bobClaims(), nil)

	body, _ := json.Marshal(dto.AddToCollectionRequest{Title: "Inception", Slug: "inception-27205"})
	req, _ := http.NewRequest("POST", "/api/auth/profile/alice/seenit", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: "token", Value: "bob-token"})
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	mockSvc.AssertNotCalled(t, "Add")
}

func TestCollectionAdd_UnknownBucket(t *testing.T) {
	mockAuthService := new(MockAuthService)
	mockSvc := new(MockCollectionService)
	handler := NewCollectionHandler(mockSvc, mockAuthService)
	router := setupRouter()
	handler.RegisterRoutes(router.Group("/api/auth/profile"))

	mockAuthService.On("ValidateToken", "alice-token").Return(aliceClaims(), nil)
	mockSvc.On("Add", "alice-id", "alice", "favorites", "inception-27205", "Inception").
		Return(service.ErrUnknownCollection)

	body, _ := json.Marshal(dto.AddToCollectionRequest{Title: "Inception", Slug: "inception-27205"})
	req, _ := http.NewRequest("POST", "/api/auth/profile/alice/favorites", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: "token", Value: "alice-token"})
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCollectionRemove_Success(t *testing.T) {
	mockAuthService := new(MockAuthService)
	mockSvc := new(MockCollectionService)
	handler := NewCollectionHandler(mockSvc, mockAuthService)
	router := setupRouter()
	handler.RegisterRoutes(router.Group("/api/auth/profile"))

	mockAuthService.On("ValidateToken", "alice-token").Return(aliceClaims(), nil)
	mockSvc.On("Remove", "alice-id", "alice", "wantedforcollection", "inception-27205").Return(nil)

	body, _ := json.Marshal(dto.RemoveFromCollectionRequest{Slug: "inception-27205"})
	req, _ := http.NewRequest("DELETE", "/api/auth/profile/alice/wantedforcollection", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: "token", Value: "alice-token"})
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

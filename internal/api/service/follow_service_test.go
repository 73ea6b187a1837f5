package service

import (
	"context"
	"testing"

	"filmboard/internal/api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockFollowRepository mocks the FollowRepository interface
type MockFollowRepository struct {
	mock.Mock
}

func (m *MockFollowRepository) Add(ctx context.Context, followerID, followingID string) error {
	args := m.Called(followerID, followingID)
	return args.Error(0)
}

func (m *MockFollowRepository) Remove(ctx context.Context, followerID, followingID string) error {
	args := m.Called(followerID, followingID)
	return args.Error(0)
}

func (m *MockFollowRepository) Exists(ctx context.Context, followerID, followingID string) (bool, error) {
	args := m.Called(followerID, followingID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFollowRepository) CountFollowers(ctx context.Context, userID string) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFollowRepository) ListFollowers(ctx context.Context, userID string) ([]models.Follow, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Follow), args.Error(1)
}

func (m *MockFollowRepository) ListFollowing(ctx context.Context, userID string) ([]models.Follow, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Follow), args.Error(1)
}

// MockUserRepository mocks the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func TestFollow_RejectsSelfFollow(t *testing.T) {
	followRepo := new(MockFollowRepository)
	userRepo := new(MockUserRepository)
	svc := NewFollowService(followRepo, userRepo, nil)

	userRepo.On("FindByUsername", "bob").Return(&models.User{ID: "bob-id", Username: "bob"}, nil)

	err := svc.Follow(context.Background(), "bob-id", "bob")
	assert.ErrorIs(t, err, ErrSelfFollow)
	followRepo.AssertNotCalled(t, "Add")
}

func TestFollow_TargetNotFound(t *testing.T) {
	followRepo := new(MockFollowRepository)
	userRepo := new(MockUserRepository)
	svc := NewFollowService(followRepo, userRepo, nil)

	userRepo.On("FindByUsername", "ghost").Return(nil, gorm.ErrRecordNotFound)

	err := svc.Follow(context.Background(), "bob-id", "ghost")
	assert.ErrorIs(t, err, ErrTargetNotFound)
}

func TestFollow_AddsEdge(t *testing.T) {
	followRepo := new(MockFollowRepository)
	userRepo := new(MockUserRepository)
	svc := NewFollowService(followRepo, userRepo, nil)

	userRepo.On("FindByUsername", "alice").Return(&models.User{ID: "alice-id", Username: "alice"}, nil)
	followRepo.On("Add", "bob-id", "alice-id").Return(nil)

	err := svc.Follow(context.Background(), "bob-id", "alice")
	assert.NoError(t, err)
	followRepo.AssertExpectations(t)
}

func TestStatus_ViewerFollowsTarget(t *testing.T) {
	followRepo := new(MockFollowRepository)
	userRepo := new(MockUserRepository)
	svc := NewFollowService(followRepo, userRepo, nil)

	userRepo.On("FindByUsername", "alice").Return(&models.User{ID: "alice-id", Username: "alice"}, nil)
	followRepo.On("Exists", "bob-id", "alice-id").Return(true, nil)
	followRepo.On("CountFollowers", "alice-id").Return(int64(1), nil)

	status, err := svc.Status(context.Background(), "bob-id", "alice")
	assert.NoError(t, err)
	assert.True(t, status.Following)
	assert.Equal(t, int64(1), status.FollowersCount)
}

func TestStatus_AnonymousViewer(t *testing.T) {
	followRepo := new(MockFollowRepository)
	userRepo := new(MockUserRepository)
	svc := NewFollowService(followRepo, userRepo, nil)

	userRepo.On("FindByUsername", "alice").Return(&models.User{ID: "alice-id", Username: "alice"}, nil)
	followRepo.On("CountFollowers", "alice-id").Return(int64(3), nil)

	status, err := svc.Status(context.Background(), "", "alice")
	assert.NoError(t, err)
	assert.False(t, status.Following)
	assert.Equal(t, int64(3), status.FollowersCount)
	followRepo.AssertNotCalled(t, "Exists")
}

func TestFollowers_JoinsUserMetadata(t *testing.T) {
	followRepo := new(MockFollowRepository)
	userRepo := new(MockUserRepository)
	svc := NewFollowService(followRepo, userRepo, nil)

	avatar := "https://img.example.com/bob.png"
	userRepo.On("FindByUsername", "alice").Return(&models.User{ID: "alice-id", Username: "alice"}, nil)
	followRepo.On("ListFollowers", "alice-id").Return([]models.Follow{
		{FollowerID: "bob-id", Follower: &models.User{Username: "bob", AvatarURL: &avatar}},
	}, nil)

	list, err := svc.Followers(context.Background(), "alice")
	assert.NoError(t, err)
	assert.Equal(t, 1, list.Total)
	if assert.Len(t, list.Users, 1) {
		assert.Equal(t, "bob", list.Users[0].Username)
		assert.Equal(t, &avatar, list.Users[0].AvatarURL)
	}
}

package service

import (
	"context"
	"testing"

	"filmboard/internal/api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockCollectionRepository mocks the CollectionRepository interface
type MockCollectionRepository struct {
	mock.Mock
}

func (m *MockCollectionRepository) SetFlag(ctx context.Context, userID, slug, title, flag string, value bool) error {
	args := m.Called(userID, slug, title, flag, value)
	return args.Error(0)
}

func (m *MockCollectionRepository) GetState(ctx context.Context, userID, slug string) (*models.UserMovieState, error) {
	args := m.Called(userID, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserMovieState), args.Error(1)
}

func (m *MockCollectionRepository) ListByFlag(ctx context.Context, userID, flag string) ([]models.UserMovieState, error) {
	args := m.Called(userID, flag)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.UserMovieState), args.Error(1)
}

// recordingActivity captures Record calls for inspection.
type recordingActivity struct {
	activityStub
	records []struct {
		action string
		source string
	}
}

func (r *recordingActivity) Record(ctx context.Context, userID, username, movieTitle, action, source string) {
	r.records = append(r.records, struct {
		action string
		source string
	}{action, source})
}

func TestCollectionAdd_MapsBucketToFlag(t *testing.T) {
	tests := []struct {
		collection string
		flag       string
		source     string
	}{
		{"mycollection", "is_owned", models.ActivitySourceCollection},
		{"wantedforcollection", "is_wanted", models.ActivitySourceWanted},
		{"seenit", "is_seen", models.ActivitySourceSeen},
	}

	for _, tt := range tests {
		t.Run(tt.collection, func(t *testing.T) {
			mockRepo := new(MockCollectionRepository)
			activity := new(recordingActivity)
			svc := NewCollectionService(mockRepo, activity)

			mockRepo.On("SetFlag", "alice-id", "inception-27205", "Inception", tt.flag, true).Return(nil)

			err := svc.Add(context.Background(), "alice-id", "alice", tt.collection, "inception-27205", "Inception")
			assert.NoError(t, err)
			mockRepo.AssertExpectations(t)

			if assert.Len(t, activity.records, 1) {
				assert.Equal(t, "added", activity.records[0].action)
				assert.Equal(t, tt.source, activity.records[0].source)
			}
		})
	}
}

func TestCollectionAdd_UnknownBucket(t *testing.T) {
	mockRepo := new(MockCollectionRepository)
	svc := NewCollectionService(mockRepo, activityStub{})

	err := svc.Add(context.Background(), "alice-id", "alice", "favorites", "inception-27205", "Inception")
	assert.ErrorIs(t, err, ErrUnknownCollection)
	mockRepo.AssertNotCalled(t, "SetFlag")
}

func TestCollectionRemove_MissingStateIsNoop(t *testing.T) {
	mockRepo := new(MockCollectionRepository)
	activity := new(recordingActivity)
	svc := NewCollectionService(mockRepo, activity)

	mockRepo.On("GetState", "alice-id", "inception-27205").Return(nil, gorm.ErrRecordNotFound)

	err := svc.Remove(context.Background(), "alice-id", "alice", "seenit", "inception-27205")
	assert.NoError(t, err)
	mockRepo.AssertNotCalled(t, "SetFlag")
	assert.Empty(t, activity.records)
}

func TestCollectionRemove_StateLookupErrorSurfaces(t *testing.T) {
	mockRepo := new(MockCollectionRepository)
	activity := new(recordingActivity)
	svc := NewCollectionService(mockRepo, activity)

	// Only a missing row is a no-op; a failing lookup must not be
	// mistaken for one.
	mockRepo.On("GetState", "alice-id", "inception-27205").Return(nil, assert.AnError)

	err := svc.Remove(context.Background(), "alice-id", "alice", "seenit", "inception-27205")
	assert.ErrorIs(t, err, assert.AnError)
	mockRepo.AssertNotCalled(t, "SetFlag")
	assert.Empty(t, activity.records)
}

func TestCollectionRemove_ClearsFlagAndRecords(t *testing.T) {
	mockRepo := new(MockCollectionRepository)
	activity := new(recordingActivity)
	svc := NewCollectionService(mockRepo, activity)

	mockRepo.On("GetState", "alice-id", "inception-27205").Return(&models.UserMovieState{
		MovieSlug:  "inception-27205",
		MovieTitle: "Inception",
		IsSeen:     true,
	}, nil)
	mockRepo.On("SetFlag", "alice-id", "inception-27205", "Inception", "is_seen", false).Return(nil)

	err := svc.Remove(context.Background(), "alice-id", "alice", "seenit", "inception-27205")
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)

	if assert.Len(t, activity.records, 1) {
		assert.Equal(t, "removed", activity.records[0].action)
		assert.Equal(t, models.ActivitySourceSeen, activity.records[0].source)
	}
}

func TestCollectionList_UnknownBucket(t *testing.T) {
	mockRepo := new(MockCollectionRepository)
	svc := NewCollectionService(mockRepo, activityStub{})

	_, err := svc.List(context.Background(), "alice-id", "favorites")
	assert.ErrorIs(t, err, ErrUnknownCollection)
}

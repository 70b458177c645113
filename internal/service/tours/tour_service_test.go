package tours

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/theibericoexperience-dev/last-sub001/internal/domain"
)

type MockTourRepository struct {
	mock.Mock
}

func (m *MockTourRepository) List(ctx context.Context) ([]domain.Tour, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Tour), args.Error(1)
}

func (m *MockTourRepository) GetBySlug(ctx context.Context, slug string) (*domain.Tour, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tour), args.Error(1)
}

func (m *MockTourRepository) GetPricingPolicy(ctx context.Context, tourID string) (*domain.TourPricingPolicy, error) {
	args := m.Called(ctx, tourID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TourPricingPolicy), args.Error(1)
}

type MockTourCache struct {
	mock.Mock
}

func (m *MockTourCache) GetTours(ctx context.Context) ([]domain.Tour, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Tour), args.Error(1)
}

func (m *MockTourCache) SetTours(ctx context.Context, tours []domain.Tour) error {
	args := m.Called(ctx, tours)
	return args.Error(0)
}

func TestTourService_List_CacheMiss(t *testing.T) {
	mockRepo := &MockTourRepository{}
	mockCache := &MockTourCache{}

	service := NewTourService(mockRepo, mockCache)

	ctx := context.Background()
	tours := []domain.Tour{
		{
			ID:                        1,
			Slug:                      "iberico-classic",
			Name:                      "Iberico Classic",
			DurationDays:              7,
			BasePricePerTravelerCents: 350_000,
			CreatedAt:                 time.Now(),
		},
	}

	mockCache.On("GetTours", ctx).Return([]domain.Tour(nil), nil)
	mockRepo.On("List", ctx).Return(tours, nil)
	mockCache.On("SetTours", ctx, tours).Return(nil)

	got, err := service.List(ctx)

	assert.NoError(t, err)
	assert.Equal(t, tours, got)
	mockRepo.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestTourService_List_CacheHit(t *testing.T) {
	mockRepo := &MockTourRepository{}
	mockCache := &MockTourCache{}

	service := NewTourService(mockRepo, mockCache)

	ctx := context.Background()
	tours := []domain.Tour{{ID: 1, Slug: "iberico-classic"}}

	mockCache.On("GetTours", ctx).Return(tours, nil)

	got, err := service.List(ctx)

	assert.NoError(t, err)
	assert.Equal(t, tours, got)
	mockRepo.AssertNotCalled(t, "List", mock.Anything)
}

func TestTourService_List_RepoError(t *testing.T) {
	mockRepo := &MockTourRepository{}
	mockCache := &MockTourCache{}

	service := NewTourService(mockRepo, mockCache)

	ctx := context.Background()
	repoErr := errors.New("connection refused")

	mockCache.On("GetTours", ctx).Return([]domain.Tour(nil), nil)
	mockRepo.On("List", ctx).Return([]domain.Tour(nil), repoErr)

	got, err := service.List(ctx)

	assert.Nil(t, got)
	assert.ErrorIs(t, err, repoErr)
}

func TestTourService_GetBySlug(t *testing.T) {
	mockRepo := &MockTourRepository{}

	service := NewTourService(mockRepo, nil)

	ctx := context.Background()
	tour := &domain.Tour{ID: 2, Slug: "andalusia-extension"}

	mockRepo.On("GetBySlug", ctx, "andalusia-extension").Return(tour, nil)

	got, err := service.GetBySlug(ctx, "andalusia-extension")

	assert.NoError(t, err)
	assert.Equal(t, tour, got)
}

package quote

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/theibericoexperience-dev/last-sub001/internal/domain"
	"github.com/theibericoexperience-dev/last-sub001/internal/pricing"
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

type MockPolicyCache struct {
	mock.Mock
}

func (m *MockPolicyCache) GetPolicy(ctx context.Context, tourID string) (*domain.TourPricingPolicy, error) {
	args := m.Called(ctx, tourID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TourPricingPolicy), args.Error(1)
}

func (m *MockPolicyCache) SetPolicy(ctx context.Context, tourID string, policy *domain.TourPricingPolicy) error {
	args := m.Called(ctx, tourID, policy)
	return args.Error(0)
}

var fixedNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time {
	return fixedNow
}

func TestQuoteService_MissingPolicyUsesDefault(t *testing.T) {
	mockRepo := &MockTourRepository{}
	mockCache := &MockPolicyCache{}

	service := NewQuoteService(mockRepo, mockCache, WithClock(fixedClock))

	ctx := context.Background()
	mockCache.On("GetPolicy", ctx, "unknown-tour").Return(nil, nil)
	mockRepo.On("GetPricingPolicy", ctx, "unknown-tour").Return(nil, nil)

	quote, err := service.Quote(ctx, domain.PricingRequest{
		TourID:    "unknown-tour",
		Travelers: 2,
		RoomType:  domain.RoomTypeDouble,
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(200_000), quote.Deposit.TotalCents)
	assert.Equal(t, int64(700_000), quote.BasePriceTotalCents)
	assert.Equal(t, fixedNow, quote.GeneratedAt)
}

func TestQuoteService_CacheHitSkipsRepository(t *testing.T) {
	mockRepo := &MockTourRepository{}
	mockCache := &MockPolicyCache{}

	service := NewQuoteService(mockRepo, mockCache, WithClock(fixedClock))

	ctx := context.Background()
	policy := pricing.DefaultPolicy()
	policy.BasePricePerTravelerCents = 420_000
	mockCache.On("GetPolicy", ctx, "iberico-classic").Return(&policy, nil)

	quote, err := service.Quote(ctx, domain.PricingRequest{
		TourID:    "iberico-classic",
		Travelers: 1,
		RoomType:  domain.RoomTypeDouble,
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(420_000), quote.BasePriceTotalCents)
	mockRepo.AssertNotCalled(t, "GetPricingPolicy", mock.Anything, mock.Anything)
}

func TestQuoteService_CacheMissPopulatesCache(t *testing.T) {
	mockRepo := &MockTourRepository{}
	mockCache := &MockPolicyCache{}

	service := NewQuoteService(mockRepo, mockCache, WithClock(fixedClock))

	ctx := context.Background()
	policy := pricing.DefaultPolicy()
	mockCache.On("GetPolicy", ctx, "iberico-classic").Return(nil, nil)
	mockRepo.On("GetPricingPolicy", ctx, "iberico-classic").Return(&policy, nil)
	mockCache.On("SetPolicy", ctx, "iberico-classic", &policy).Return(nil)

	_, err := service.Quote(ctx, domain.PricingRequest{
		TourID:    "iberico-classic",
		Travelers: 2,
		RoomType:  domain.RoomTypeDouble,
	})

	assert.NoError(t, err)
	mockCache.AssertExpectations(t)
}

func TestQuoteService_StoreErrorPropagates(t *testing.T) {
	mockRepo := &MockTourRepository{}
	mockCache := &MockPolicyCache{}

	service := NewQuoteService(mockRepo, mockCache, WithClock(fixedClock))

	ctx := context.Background()
	storeErr := errors.New("connection refused")
	mockCache.On("GetPolicy", ctx, "iberico-classic").Return(nil, nil)
	mockRepo.On("GetPricingPolicy", ctx, "iberico-classic").Return(nil, storeErr)

	quote, err := service.Quote(ctx, domain.PricingRequest{
		TourID:    "iberico-classic",
		Travelers: 2,
		RoomType:  domain.RoomTypeDouble,
	})

	assert.Nil(t, quote)
	assert.ErrorIs(t, err, storeErr)
}

func TestQuoteService_NilCache(t *testing.T) {
	mockRepo := &MockTourRepository{}

	service := NewQuoteService(mockRepo, nil, WithClock(fixedClock))

	ctx := context.Background()
	mockRepo.On("GetPricingPolicy", ctx, "iberico-classic").Return(nil, nil)

	quote, err := service.Quote(ctx, domain.PricingRequest{
		TourID:    "iberico-classic",
		Travelers: 2,
		RoomType:  domain.RoomTypeDouble,
	})

	assert.NoError(t, err)
	assert.NotNil(t, quote)
}

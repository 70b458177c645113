package quote

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/theibericoexperience-dev/last-sub001/internal/domain"
	"github.com/theibericoexperience-dev/last-sub001/internal/pricing"
	"github.com/theibericoexperience-dev/last-sub001/internal/repository"
)

type QuoteUseCase interface {
	Quote(ctx context.Context, req domain.PricingRequest) (*domain.PricingQuote, error)
}

// PolicyCache is the per-tour policy cache. Cache errors are tolerated; the
// store remains the source of truth.
type PolicyCache interface {
	GetPolicy(ctx context.Context, tourID string) (*domain.TourPricingPolicy, error)
	SetPolicy(ctx context.Context, tourID string, policy *domain.TourPricingPolicy) error
}

type QuoteService struct {
	tours repository.TourRepository
	cache PolicyCache
	now   func() time.Time
	log   *slog.Logger
}

type QuoteServiceOption func(*QuoteService)

// WithClock fixes the quote timestamp source, which is the one impure input
// of the computation.
func WithClock(now func() time.Time) QuoteServiceOption {
	return func(s *QuoteService) {
		s.now = now
	}
}

func NewQuoteService(tours repository.TourRepository, cache PolicyCache, opts ...QuoteServiceOption) *QuoteService {
	service := &QuoteService{
		tours: tours,
		cache: cache,
		now:   time.Now,
		log:   slog.Default(),
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// Quote resolves the tour's pricing policy and runs the engine. A tour with
// no stored policy gets the default policy; only an unreachable policy store
// is an error.
func (s *QuoteService) Quote(ctx context.Context, req domain.PricingRequest) (*domain.PricingQuote, error) {
	policy, err := s.lookupPolicy(ctx, req.TourID)
	if err != nil {
		return nil, fmt.Errorf("resolve pricing policy for %s: %w", req.TourID, err)
	}

	q := pricing.ComputeQuote(policy, req, s.now().UTC())
	return &q, nil
}

func (s *QuoteService) lookupPolicy(ctx context.Context, tourID string) (*domain.TourPricingPolicy, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetPolicy(ctx, tourID); err == nil && cached != nil {
			return cached, nil
		} else if err != nil {
			s.log.Warn("policy cache read failed", "tour_id", tourID, "error", err)
		}
	}

	policy, err := s.tours.GetPricingPolicy(ctx, tourID)
	if err != nil {
		return nil, err
	}
	if s.cache != nil && policy != nil {
		if err := s.cache.SetPolicy(ctx, tourID, policy); err != nil {
			s.log.Warn("policy cache write failed", "tour_id", tourID, "error", err)
		}
	}
	return policy, nil
}

var _ QuoteUseCase = (*QuoteService)(nil)

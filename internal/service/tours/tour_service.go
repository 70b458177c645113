package tours

import (
	"context"

	"github.com/theibericoexperience-dev/last-sub001/internal/domain"
	"github.com/theibericoexperience-dev/last-sub001/internal/repository"
)

type TourUseCase interface {
	List(ctx context.Context) ([]domain.Tour, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Tour, error)
}

type TourCache interface {
	GetTours(ctx context.Context) ([]domain.Tour, error)
	SetTours(ctx context.Context, tours []domain.Tour) error
}

type TourService struct {
	repo  repository.TourRepository
	cache TourCache
}

func NewTourService(repo repository.TourRepository, cache TourCache) *TourService {
	return &TourService{repo: repo, cache: cache}
}

func (s *TourService) List(ctx context.Context) ([]domain.Tour, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetTours(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	tours, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetTours(ctx, tours)
	}
	return tours, nil
}

func (s *TourService) GetBySlug(ctx context.Context, slug string) (*domain.Tour, error) {
	return s.repo.GetBySlug(ctx, slug)
}

var _ TourUseCase = (*TourService)(nil)

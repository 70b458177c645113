package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/theibericoexperience-dev/last-sub001/internal/domain"
)

type TourRepository interface {
	List(ctx context.Context) ([]domain.Tour, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Tour, error)
	GetPricingPolicy(ctx context.Context, tourID string) (*domain.TourPricingPolicy, error)
}

type PGTourRepository struct {
	db *pgxpool.Pool
}

func NewTourRepository(db *pgxpool.Pool) TourRepository {
	return &PGTourRepository{db: db}
}

func (r *PGTourRepository) List(ctx context.Context) ([]domain.Tour, error) {
	rows, err := r.db.Query(ctx, `SELECT id, slug, name, duration_days, base_price_per_traveler_cents, created_at, updated_at FROM tours ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tours := make([]domain.Tour, 0)
	for rows.Next() {
		var t domain.Tour
		if err := rows.Scan(&t.ID, &t.Slug, &t.Name, &t.DurationDays, &t.BasePricePerTravelerCents, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		tours = append(tours, t)
	}
	return tours, rows.Err()
}

func (r *PGTourRepository) GetBySlug(ctx context.Context, slug string) (*domain.Tour, error) {
	row := r.db.QueryRow(ctx, `SELECT id, slug, name, duration_days, base_price_per_traveler_cents, created_at, updated_at FROM tours WHERE slug=$1`, slug)
	var t domain.Tour
	if err := row.Scan(&t.ID, &t.Slug, &t.Name, &t.DurationDays, &t.BasePricePerTravelerCents, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

// GetPricingPolicy returns (nil, nil) when the tour has no stored policy so
// the caller can substitute the default; a missing policy is not an error.
func (r *PGTourRepository) GetPricingPolicy(ctx context.Context, tourID string) (*domain.TourPricingPolicy, error) {
	row := r.db.QueryRow(ctx, `SELECT base_price_per_traveler_cents, deposit_per_traveler_cents, deposit_extra_extension_cents, deposit_extra_single_cents,
		extension_per_day_per_person_cents, insurance_travel_cents, insurance_cancellation_cents, single_supplement_per_day_cents, overrides_allowed
		FROM tour_pricing_policies WHERE tour_slug=$1`, tourID)
	var p domain.TourPricingPolicy
	if err := row.Scan(
		&p.BasePricePerTravelerCents,
		&p.Deposit.PerTravelerCents,
		&p.Deposit.ExtraForExtensionCents,
		&p.Deposit.ExtraForSingleTravelerCents,
		&p.Extension.PerDayPerPersonCents,
		&p.Insurance.TravelCents,
		&p.Insurance.CancellationCents,
		&p.SingleSupplement.PerDayCents,
		&p.OverridesAllowed,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

var _ TourRepository = (*PGTourRepository)(nil)

package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/theibericoexperience-dev/last-sub001/internal/domain"
)

// PaymentRecordRepository stores mirrors of provider payment intents. The
// existence check and insert are separate statements on purpose; whether the
// store additionally enforces uniqueness on provider_payment_intent_id is a
// schema concern, not decided here.
type PaymentRecordRepository interface {
	ExistsByIntentID(ctx context.Context, intentID string) (bool, error)
	Insert(ctx context.Context, rec *domain.PaymentRecord) error
}

type PGPaymentRecordRepository struct {
	db *pgxpool.Pool
}

func NewPaymentRecordRepository(db *pgxpool.Pool) PaymentRecordRepository {
	return &PGPaymentRecordRepository{db: db}
}

func (r *PGPaymentRecordRepository) ExistsByIntentID(ctx context.Context, intentID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM payment_records WHERE provider_payment_intent_id=$1)`, intentID).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PGPaymentRecordRepository) Insert(ctx context.Context, rec *domain.PaymentRecord) error {
	return r.db.QueryRow(ctx, `INSERT INTO payment_records (provider_payment_intent_id, amount_cents, currency, status, raw)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`,
		rec.ProviderPaymentIntentID, rec.AmountCents, rec.Currency, rec.Status, rec.Raw).
		Scan(&rec.CreatedAt)
}

var _ PaymentRecordRepository = (*PGPaymentRecordRepository)(nil)

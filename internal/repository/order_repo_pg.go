package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/theibericoexperience-dev/last-sub001/internal/domain"
)

// OrderRepository covers the order-store mutations the payment event
// processor performs. Orders themselves are created by the booking flow;
// marking an order paid twice is a harmless repeat of the same UPDATE.
type OrderRepository interface {
	MarkPaidByPublicID(ctx context.Context, id uuid.UUID) (int64, error)
	MarkPaidByLegacyID(ctx context.Context, id int64) (int64, error)
	MarkPaidBySessionID(ctx context.Context, sessionID string) (int64, error)
}

type PGOrderRepository struct {
	db *pgxpool.Pool
}

func NewOrderRepository(db *pgxpool.Pool) OrderRepository {
	return &PGOrderRepository{db: db}
}

// MarkPaidByPublicID matches either the UUID column or the textual secondary
// reference column; both id schemes coexist during the migration window.
func (r *PGOrderRepository) MarkPaidByPublicID(ctx context.Context, id uuid.UUID) (int64, error) {
	cmd, err := r.db.Exec(ctx, `UPDATE orders SET status=$1, updated_at=now() WHERE public_id=$2 OR booking_ref=$3`,
		domain.OrderStatusPaid, id, id.String())
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func (r *PGOrderRepository) MarkPaidByLegacyID(ctx context.Context, id int64) (int64, error) {
	cmd, err := r.db.Exec(ctx, `UPDATE orders SET status=$1, updated_at=now() WHERE id=$2`,
		domain.OrderStatusPaid, id)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func (r *PGOrderRepository) MarkPaidBySessionID(ctx context.Context, sessionID string) (int64, error) {
	cmd, err := r.db.Exec(ctx, `UPDATE orders SET status=$1, updated_at=now() WHERE stripe_session_id=$2`,
		domain.OrderStatusPaid, sessionID)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

var _ OrderRepository = (*PGOrderRepository)(nil)

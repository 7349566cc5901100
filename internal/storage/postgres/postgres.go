// internal/storage/postgres/postgres.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"tap-order-pay/internal/commission"
	"tap-order-pay/internal/domain"
	"tap-order-pay/internal/storage"
)

type Storage struct {
	db *pgxpool.Pool
}

func NewStorage(db *pgxpool.Pool) *Storage {
	return &Storage{db: db}
}

// sanitizeName folds every kind of whitespace (NBSP from phone keyboards
// included) into single spaces and drops control characters.
func sanitizeName(s string) string {
	result := make([]rune, 0, len(s))
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			result = append(result, ' ')
		case unicode.IsControl(r):
		default:
			result = append(result, r)
		}
	}
	return strings.Join(strings.Fields(string(result)), " ")
}

func dayRange(day string) (time.Time, time.Time, error) {
	start, err := time.Parse(storage.DayLayout, day)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid day, expected YYYY-MM-DD: %w", err)
	}
	return start, start.AddDate(0, 0, 1), nil
}

// === RestaurantStorage ===

func (s *Storage) CreateRestaurantIfNotExists(ctx context.Context, name string) (int64, error) {
	name = sanitizeName(name)
	if name == "" {
		return 0, fmt.Errorf("restaurant name cannot be empty")
	}

	var id int64
	err := s.db.QueryRow(ctx, `
		INSERT INTO restaurants (name)
		VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`, name).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create or get restaurant: %w", err)
	}
	return id, nil
}

func (s *Storage) FindRestaurantByName(ctx context.Context, name string) (*domain.Restaurant, error) {
	var r domain.Restaurant
	err := s.db.QueryRow(ctx, "SELECT id, name FROM restaurants WHERE name = $1", sanitizeName(name)).Scan(&r.ID, &r.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find restaurant: %w", err)
	}
	return &r, nil
}

// === PaymentStorage ===

const paymentColumns = `
	id, restaurant_id, table_number,
	base_amount, tip_amount, iva_tip, subtotal, tier,
	rate_total, rate_client, rate_restaurant,
	commission_total, commission_client, commission_restaurant,
	iva_client, iva_restaurant, client_charge, restaurant_charge,
	total_charged, restaurant_net, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPayment(row rowScanner) (domain.Payment, error) {
	var p domain.Payment
	b := &p.Breakdown
	err := row.Scan(
		&p.ID, &p.RestaurantID, &p.TableNumber,
		&b.BaseAmount, &b.TipAmount, &b.IVATip, &b.SubtotalForCommission, &b.Tier,
		&b.Rates.XquisitoTotal, &b.Rates.ClientPays, &b.Rates.RestaurantPays,
		&b.XquisitoCommissionTotal, &b.XquisitoCommissionClient, &b.XquisitoCommissionRestaurant,
		&b.IVAXquisitoClient, &b.IVAXquisitoRestaurant, &b.XquisitoClientCharge, &b.XquisitoRestaurantCharge,
		&b.TotalAmountCharged, &b.RestaurantNetAmount, &p.CreatedAt,
	)
	p.CreatedAt = p.CreatedAt.UTC()
	return p, err
}

func (s *Storage) SavePayment(ctx context.Context, p domain.Payment) error {
	b := p.Breakdown
	_, err := s.db.Exec(ctx, `
		INSERT INTO payments (`+paymentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
	`,
		p.ID, p.RestaurantID, p.TableNumber,
		b.BaseAmount, b.TipAmount, b.IVATip, b.SubtotalForCommission, b.Tier,
		b.Rates.XquisitoTotal, b.Rates.ClientPays, b.Rates.RestaurantPays,
		b.XquisitoCommissionTotal, b.XquisitoCommissionClient, b.XquisitoCommissionRestaurant,
		b.IVAXquisitoClient, b.IVAXquisitoRestaurant, b.XquisitoClientCharge, b.XquisitoRestaurantCharge,
		b.TotalAmountCharged, b.RestaurantNetAmount, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}

	slog.Debug("SavePayment completed", "payment_id", p.ID, "restaurant_id", p.RestaurantID,
		"total_charged", commission.FormatAmount(b.TotalAmountCharged))
	return nil
}

func (s *Storage) GetPayment(ctx context.Context, restaurantID int64, id uuid.UUID) (*domain.Payment, error) {
	row := s.db.QueryRow(ctx, `
		SELECT `+paymentColumns+`
		FROM payments
		WHERE restaurant_id = $1 AND id = $2
	`, restaurantID, id)

	p, err := scanPayment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return &p, nil
}

func (s *Storage) ListPayments(ctx context.Context, restaurantID int64, day string) ([]domain.Payment, error) {
	from, to, err := dayRange(day)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(ctx, `
		SELECT `+paymentColumns+`
		FROM payments
		WHERE restaurant_id = $1 AND created_at >= $2 AND created_at < $3
		ORDER BY created_at, id
	`, restaurantID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	payments := []domain.Payment{}
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return payments, nil
}

func (s *Storage) DailySummary(ctx context.Context, restaurantID int64, day string) (*domain.DailySummary, error) {
	from, to, err := dayRange(day)
	if err != nil {
		return nil, err
	}

	sum := domain.DailySummary{RestaurantID: restaurantID, Day: day}
	err = s.db.QueryRow(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(base_amount), 0),
			COALESCE(SUM(tip_amount), 0),
			COALESCE(SUM(commission_client), 0),
			COALESCE(SUM(commission_restaurant), 0),
			COALESCE(SUM(iva_client + iva_restaurant), 0),
			COALESCE(SUM(total_charged), 0),
			COALESCE(SUM(restaurant_net), 0)
		FROM payments
		WHERE restaurant_id = $1 AND created_at >= $2 AND created_at < $3
	`, restaurantID, from, to).Scan(
		&sum.Payments, &sum.BaseTotal, &sum.TipTotal,
		&sum.ClientCommission, &sum.RestaurantCommission, &sum.IVATotal,
		&sum.ChargedTotal, &sum.RestaurantNetTotal,
	)
	if err != nil {
		return nil, fmt.Errorf("daily summary: %w", err)
	}
	return &sum, nil
}

func (s *Storage) DeletePayment(ctx context.Context, restaurantID int64, id uuid.UUID) error {
	result, err := s.db.Exec(ctx, "DELETE FROM payments WHERE restaurant_id = $1 AND id = $2", restaurantID, id)
	if err != nil {
		return fmt.Errorf("delete payment: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("payment %s: %w", id, storage.ErrNotFound)
	}
	return nil
}

// internal/storage/storage.go
package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"tap-order-pay/internal/domain"
)

var ErrNotFound = errors.New("not found")

// DayLayout is the format of the day argument; days are UTC.
const DayLayout = "2006-01-02"

type RestaurantStorage interface {
	CreateRestaurantIfNotExists(ctx context.Context, name string) (int64, error)
	FindRestaurantByName(ctx context.Context, name string) (*domain.Restaurant, error)
}

type PaymentStorage interface {
	SavePayment(ctx context.Context, p domain.Payment) error
	GetPayment(ctx context.Context, restaurantID int64, id uuid.UUID) (*domain.Payment, error)
	ListPayments(ctx context.Context, restaurantID int64, day string) ([]domain.Payment, error)
	DailySummary(ctx context.Context, restaurantID int64, day string) (*domain.DailySummary, error)
	DeletePayment(ctx context.Context, restaurantID int64, id uuid.UUID) error
}

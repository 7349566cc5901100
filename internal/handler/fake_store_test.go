package handler

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"tap-order-pay/internal/domain"
	"tap-order-pay/internal/storage"
)

type fakeStore struct {
	mu          sync.Mutex
	restaurants map[string]int64
	payments    map[uuid.UUID]domain.Payment
	failSave    bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{restaurants: map[string]int64{}, payments: map[uuid.UUID]domain.Payment{}}
}

func (f *fakeStore) CreateRestaurantIfNotExists(ctx context.Context, name string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if id, ok := f.restaurants[name]; ok {
		return id, nil
	}
	id := int64(len(f.restaurants) + 1)
	f.restaurants[name] = id
	return id, nil
}

func (f *fakeStore) FindRestaurantByName(ctx context.Context, name string) (*domain.Restaurant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id, ok := f.restaurants[name]
	if !ok {
		return nil, nil
	}
	return &domain.Restaurant{ID: id, Name: name}, nil
}

func (f *fakeStore) SavePayment(ctx context.Context, p domain.Payment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failSave {
		return errors.New("db down")
	}
	f.payments[p.ID] = p
	return nil
}

func (f *fakeStore) GetPayment(ctx context.Context, restaurantID int64, id uuid.UUID) (*domain.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.payments[id]
	if !ok || p.RestaurantID != restaurantID {
		return nil, storage.ErrNotFound
	}
	return &p, nil
}

func (f *fakeStore) dayPayments(restaurantID int64, day string) ([]domain.Payment, error) {
	from, err := time.Parse(storage.DayLayout, day)
	if err != nil {
		return nil, err
	}
	to := from.AddDate(0, 0, 1)
	out := []domain.Payment{}
	for _, p := range f.payments {
		if p.RestaurantID == restaurantID && !p.CreatedAt.Before(from) && p.CreatedAt.Before(to) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeStore) ListPayments(ctx context.Context, restaurantID int64, day string) ([]domain.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.dayPayments(restaurantID, day)
}

func (f *fakeStore) DailySummary(ctx context.Context, restaurantID int64, day string) (*domain.DailySummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	list, err := f.dayPayments(restaurantID, day)
	if err != nil {
		return nil, err
	}
	sum := &domain.DailySummary{RestaurantID: restaurantID, Day: day, Payments: len(list)}
	for _, p := range list {
		b := p.Breakdown
		sum.BaseTotal += b.BaseAmount
		sum.TipTotal += b.TipAmount
		sum.ClientCommission += b.XquisitoCommissionClient
		sum.RestaurantCommission += b.XquisitoCommissionRestaurant
		sum.IVATotal += b.IVAXquisitoClient + b.IVAXquisitoRestaurant
		sum.ChargedTotal += b.TotalAmountCharged
		sum.RestaurantNetTotal += b.RestaurantNetAmount
	}
	return sum, nil
}

func (f *fakeStore) DeletePayment(ctx context.Context, restaurantID int64, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.payments[id]
	if !ok || p.RestaurantID != restaurantID {
		return storage.ErrNotFound
	}
	delete(f.payments, id)
	return nil
}

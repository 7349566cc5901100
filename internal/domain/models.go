// internal/domain/models.go
package domain

import (
	"time"

	"github.com/google/uuid"

	"tap-order-pay/internal/commission"
)

type Restaurant struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Payment is a charged bill with the commission breakdown frozen at charge time.
type Payment struct {
	ID           uuid.UUID            `json:"id"`
	RestaurantID int64                `json:"restaurant_id"`
	TableNumber  int                  `json:"table_number"`
	Breakdown    commission.Breakdown `json:"breakdown"`
	CreatedAt    time.Time            `json:"created_at"`
}

type DailySummary struct {
	RestaurantID         int64   `json:"restaurant_id"`
	Day                  string  `json:"day"`
	Payments             int     `json:"payments"`
	BaseTotal            float64 `json:"base_total"`
	TipTotal             float64 `json:"tip_total"`
	ClientCommission     float64 `json:"client_commission"`
	RestaurantCommission float64 `json:"restaurant_commission"`
	IVATotal             float64 `json:"iva_total"` // IVA on both commission shares
	ChargedTotal         float64 `json:"charged_total"`
	RestaurantNetTotal   float64 `json:"restaurant_net_total"`
}

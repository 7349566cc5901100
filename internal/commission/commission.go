// internal/commission/commission.go
package commission

import (
	"errors"
	"fmt"
	"math"
)

// IVARate is the Mexican VAT applied to the tip and to each commission share.
const IVARate = 0.16

// ivaMultiplier is folded at compile time, so it is exactly 1.16.
const ivaMultiplier = 1 + IVARate

var ErrInvalidAmount = errors.New("invalid amount")

// Rates are percentages. ClientPays + RestaurantPays == XquisitoTotal.
type Rates struct {
	XquisitoTotal  float64 `json:"xquisito_total"`
	ClientPays     float64 `json:"client_pays"`
	RestaurantPays float64 `json:"restaurant_pays"`
}

type Tier struct {
	Name         string  `json:"name"`
	Min          float64 `json:"min"`
	Max          float64 `json:"-"`
	MaxInclusive bool    `json:"max_inclusive"`
	Rates        Rates   `json:"rates"`
}

func (t Tier) contains(subtotal float64) bool {
	if subtotal < t.Min {
		return false
	}
	if t.MaxInclusive {
		return subtotal <= t.Max
	}
	return subtotal < t.Max
}

var tiers = []Tier{
	{Name: "20-30", Min: 20, Max: 30, MaxInclusive: true, Rates: Rates{11.0, 9.0, 2.0}},
	{Name: "31-49", Min: 31, Max: 49, MaxInclusive: true, Rates: Rates{8.0, 6.0, 2.0}},
	{Name: "50-100", Min: 50, Max: 100, Rates: Rates{5.8, 3.8, 2.0}},
	{Name: "150+", Min: 150, Max: math.Inf(1), Rates: Rates{4.2, 2.2, 2.0}},
}

// Subtotals outside every tier (below 20, the 30-31 and 49-50 gaps and
// 100-150) are charged the 20-30 rates.
var fallback = Tier{Name: "fallback", Min: 0, Max: math.Inf(1), Rates: Rates{11.0, 9.0, 2.0}}

// Tiers returns a copy of the published rate table.
func Tiers() []Tier {
	out := make([]Tier, len(tiers))
	copy(out, tiers)
	return out
}

// RatesFor picks the tier for a subtotal (base + tip).
func RatesFor(subtotal float64) Tier {
	for _, t := range tiers {
		if t.contains(subtotal) {
			return t
		}
	}
	return fallback
}

// Breakdown is not rounded; callers format amounts for display.
type Breakdown struct {
	BaseAmount                   float64 `json:"base_amount"`
	TipAmount                    float64 `json:"tip_amount"`
	IVATip                       float64 `json:"iva_tip"`
	SubtotalForCommission        float64 `json:"subtotal_for_commission"`
	Tier                         string  `json:"tier"`
	Rates                        Rates   `json:"rates"`
	XquisitoCommissionTotal      float64 `json:"xquisito_commission_total"`
	XquisitoCommissionClient     float64 `json:"xquisito_commission_client"`
	XquisitoCommissionRestaurant float64 `json:"xquisito_commission_restaurant"`
	IVAXquisitoClient            float64 `json:"iva_xquisito_client"`
	IVAXquisitoRestaurant        float64 `json:"iva_xquisito_restaurant"`
	XquisitoClientCharge         float64 `json:"xquisito_client_charge"`
	XquisitoRestaurantCharge     float64 `json:"xquisito_restaurant_charge"`
	TotalAmountCharged           float64 `json:"total_amount_charged"`
	RestaurantNetAmount          float64 `json:"restaurant_net_amount"`
}

// CalculateCommissions splits the platform commission on base+tip between
// the customer and the restaurant, each share carrying IVA.
func CalculateCommissions(baseAmount, tipAmount float64) (Breakdown, error) {
	if err := checkAmount("base amount", baseAmount); err != nil {
		return Breakdown{}, err
	}
	if err := checkAmount("tip amount", tipAmount); err != nil {
		return Breakdown{}, err
	}

	subtotal := baseAmount + tipAmount
	tier := RatesFor(subtotal)

	client := subtotal * tier.Rates.ClientPays / 100
	restaurant := subtotal * tier.Rates.RestaurantPays / 100
	// float64() keeps the compiler from fusing these into the sums below.
	clientCharge := float64(client * ivaMultiplier)
	restaurantCharge := float64(restaurant * ivaMultiplier)

	b := Breakdown{
		BaseAmount:                   baseAmount,
		TipAmount:                    tipAmount,
		IVATip:                       tipAmount * IVARate,
		SubtotalForCommission:        subtotal,
		Tier:                         tier.Name,
		Rates:                        tier.Rates,
		XquisitoCommissionTotal:      subtotal * tier.Rates.XquisitoTotal / 100,
		XquisitoCommissionClient:     client,
		XquisitoCommissionRestaurant: restaurant,
		IVAXquisitoClient:            client * IVARate,
		IVAXquisitoRestaurant:        restaurant * IVARate,
		XquisitoClientCharge:         clientCharge,
		XquisitoRestaurantCharge:     restaurantCharge,
		TotalAmountCharged:           baseAmount + tipAmount + clientCharge,
		RestaurantNetAmount:          baseAmount + tipAmount - restaurantCharge,
	}
	if !b.finite() {
		return Breakdown{}, fmt.Errorf("%w: amounts overflow the commission calculation", ErrInvalidAmount)
	}
	return b, nil
}

// finite reports whether no derived amount overflowed to ±Inf.
func (b Breakdown) finite() bool {
	for _, v := range []float64{
		b.SubtotalForCommission, b.IVATip, b.XquisitoCommissionTotal,
		b.XquisitoCommissionClient, b.XquisitoCommissionRestaurant,
		b.IVAXquisitoClient, b.IVAXquisitoRestaurant,
		b.XquisitoClientCharge, b.XquisitoRestaurantCharge,
		b.TotalAmountCharged, b.RestaurantNetAmount,
	} {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return false
		}
	}
	return true
}

func checkAmount(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s is not a finite number", ErrInvalidAmount, name)
	}
	if v < 0 {
		return fmt.Errorf("%w: %s must not be negative, got %v", ErrInvalidAmount, name, v)
	}
	return nil
}

// internal/commission/format.go
package commission

import "github.com/shopspring/decimal"

// Display carries the breakdown amounts formatted to two decimals.
type Display struct {
	BaseAmount                   string `json:"base_amount"`
	TipAmount                    string `json:"tip_amount"`
	IVATip                       string `json:"iva_tip"`
	XquisitoCommissionClient     string `json:"xquisito_commission_client"`
	XquisitoCommissionRestaurant string `json:"xquisito_commission_restaurant"`
	IVAXquisitoClient            string `json:"iva_xquisito_client"`
	IVAXquisitoRestaurant        string `json:"iva_xquisito_restaurant"`
	XquisitoClientCharge         string `json:"xquisito_client_charge"`
	XquisitoRestaurantCharge     string `json:"xquisito_restaurant_charge"`
	TotalAmountCharged           string `json:"total_amount_charged"`
	RestaurantNetAmount          string `json:"restaurant_net_amount"`
}

// FormatAmount renders a money value with two decimals.
func FormatAmount(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

func (b Breakdown) Display() Display {
	return Display{
		BaseAmount:                   FormatAmount(b.BaseAmount),
		TipAmount:                    FormatAmount(b.TipAmount),
		IVATip:                       FormatAmount(b.IVATip),
		XquisitoCommissionClient:     FormatAmount(b.XquisitoCommissionClient),
		XquisitoCommissionRestaurant: FormatAmount(b.XquisitoCommissionRestaurant),
		IVAXquisitoClient:            FormatAmount(b.IVAXquisitoClient),
		IVAXquisitoRestaurant:        FormatAmount(b.IVAXquisitoRestaurant),
		XquisitoClientCharge:         FormatAmount(b.XquisitoClientCharge),
		XquisitoRestaurantCharge:     FormatAmount(b.XquisitoRestaurantCharge),
		TotalAmountCharged:           FormatAmount(b.TotalAmountCharged),
		RestaurantNetAmount:          FormatAmount(b.RestaurantNetAmount),
	}
}

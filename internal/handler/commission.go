// internal/handler/commission.go
package handler

import (
	"errors"
	"log/slog"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"tap-order-pay/internal/commission"
)

// CommissionHandler serves the public quote endpoints used at the table.
type CommissionHandler struct{}

func NewCommissionHandler() *CommissionHandler {
	return &CommissionHandler{}
}

// Tiers godoc
// @Summary Published commission tiers
// @Tags commissions
// @Produce json
// @Success 200 {array} TierView
// @Router /api/v1/commissions/tiers [get]
func (h *CommissionHandler) Tiers(c *gin.Context) {
	tiers := commission.Tiers()
	views := make([]TierView, len(tiers))
	for i, t := range tiers {
		views[i] = TierView{Name: t.Name, Min: t.Min, MaxInclusive: t.MaxInclusive, Rates: t.Rates}
		if !math.IsInf(t.Max, 1) {
			maxVal := t.Max
			views[i].Max = &maxVal
		}
	}
	c.JSON(http.StatusOK, views)
}

// Quote godoc
// @Summary Commission breakdown for a bill
// @Tags commissions
// @Accept json
// @Produce json
// @Param request body QuoteRequest true "Amounts"
// @Success 200 {object} QuoteResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/commissions/quote [post]
func (h *CommissionHandler) Quote(c *gin.Context) {
	var req QuoteRequest
	if !bindJSON(c, &req) {
		return
	}

	b, err := commission.CalculateCommissions(*req.BaseAmount, req.TipAmount)
	if err != nil {
		writeCalcError(c, err)
		return
	}
	c.JSON(http.StatusOK, QuoteResponse{Breakdown: b, Display: b.Display()})
}

// Split godoc
// @Summary Split a bill between diners
// @Tags commissions
// @Accept json
// @Produce json
// @Param request body SplitRequest true "Amounts and number of parts"
// @Success 200 {object} SplitResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/commissions/split [post]
func (h *CommissionHandler) Split(c *gin.Context) {
	var req SplitRequest
	if !bindJSON(c, &req) {
		return
	}

	shares, err := commission.Split(*req.BaseAmount, req.TipAmount, req.Parts)
	if err != nil {
		writeCalcError(c, err)
		return
	}

	resp := SplitResponse{Parts: len(shares), Shares: make([]QuoteResponse, len(shares))}
	total := decimal.Zero
	for i, b := range shares {
		resp.Shares[i] = QuoteResponse{Breakdown: b, Display: b.Display()}
		total = total.Add(decimal.NewFromFloat(b.TotalAmountCharged))
	}
	resp.TotalCharged = total.StringFixed(2)
	c.JSON(http.StatusOK, resp)
}

func writeCalcError(c *gin.Context, err error) {
	if errors.Is(err, commission.ErrInvalidAmount) || errors.Is(err, commission.ErrInvalidSplit) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	slog.Error("commission calculation failed", "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
}

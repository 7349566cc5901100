// internal/handler/payment.go
package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tap-order-pay/internal/commission"
	"tap-order-pay/internal/domain"
	"tap-order-pay/internal/storage"
	val "tap-order-pay/internal/validator"
)

type PaymentHandler struct {
	store storage.PaymentStorage
	now   func() time.Time
	newID func() uuid.UUID
}

func NewPaymentHandler(store storage.PaymentStorage) *PaymentHandler {
	return &PaymentHandler{store: store, now: time.Now, newID: uuid.New}
}

// CreatePayment godoc
// @Summary Record a charged bill with its commission breakdown
// @Tags payments
// @Accept json
// @Produce json
// @Param request body CreatePaymentRequest true "Payment"
// @Success 201 {object} domain.Payment
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/payments [post]
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	var req CreatePaymentRequest
	if !bindJSON(c, &req) {
		return
	}
	restaurantID, ok := restaurantIDFrom(c)
	if !ok {
		return
	}

	b, err := commission.CalculateCommissions(*req.BaseAmount, req.TipAmount)
	if err != nil {
		writeCalcError(c, err)
		return
	}

	p := domain.Payment{
		ID:           h.newID(),
		RestaurantID: restaurantID,
		TableNumber:  req.TableNumber,
		Breakdown:    b,
		CreatedAt:    h.now().UTC().Truncate(time.Microsecond),
	}
	if err := h.store.SavePayment(c.Request.Context(), p); err != nil {
		slog.Error("Failed to save payment", "error", err, "restaurant_id", restaurantID, "table", req.TableNumber)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save payment"})
		return
	}

	slog.Info("Payment recorded", "payment_id", p.ID, "restaurant_id", restaurantID, "table", req.TableNumber,
		"tier", b.Tier, "total_charged", commission.FormatAmount(b.TotalAmountCharged))
	c.JSON(http.StatusCreated, p)
}

// GetPayment godoc
// @Summary Get a payment
// @Tags payments
// @Param id path string true "Payment id"
// @Success 200 {object} domain.Payment
// @Failure 404 {object} map[string]string
// @Router /api/v1/payments/{id} [get]
func (h *PaymentHandler) GetPayment(c *gin.Context) {
	restaurantID, ok := restaurantIDFrom(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payment id"})
		return
	}

	p, err := h.store.GetPayment(c.Request.Context(), restaurantID, id)
	if err != nil {
		writeStoreError(c, err, "GetPayment failed", restaurantID)
		return
	}
	c.JSON(http.StatusOK, p)
}

// ListPayments godoc
// @Summary Payments of one day
// @Tags payments
// @Param day query string false "Day in YYYY-MM-DD format, today (UTC) by default"
// @Success 200 {array} domain.Payment
// @Failure 400 {object} map[string]string
// @Router /api/v1/payments [get]
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	restaurantID, ok := restaurantIDFrom(c)
	if !ok {
		return
	}
	day, ok := h.dayParam(c)
	if !ok {
		return
	}

	payments, err := h.store.ListPayments(c.Request.Context(), restaurantID, day)
	if err != nil {
		writeStoreError(c, err, "ListPayments failed", restaurantID)
		return
	}
	c.JSON(http.StatusOK, payments)
}

// Summary godoc
// @Summary Daily settlement totals
// @Tags payments
// @Param day query string false "Day in YYYY-MM-DD format, today (UTC) by default"
// @Success 200 {object} domain.DailySummary
// @Failure 400 {object} map[string]string
// @Router /api/v1/summary [get]
func (h *PaymentHandler) Summary(c *gin.Context) {
	restaurantID, ok := restaurantIDFrom(c)
	if !ok {
		return
	}
	day, ok := h.dayParam(c)
	if !ok {
		return
	}

	sum, err := h.store.DailySummary(c.Request.Context(), restaurantID, day)
	if err != nil {
		writeStoreError(c, err, "DailySummary failed", restaurantID)
		return
	}
	c.JSON(http.StatusOK, sum)
}

// DeletePayment godoc
// @Summary Void a payment
// @Tags payments
// @Param id path string true "Payment id"
// @Success 200 {object} map[string]string{"status":"ok"}
// @Failure 404 {object} map[string]string
// @Router /api/v1/payments/{id} [delete]
func (h *PaymentHandler) DeletePayment(c *gin.Context) {
	restaurantID, ok := restaurantIDFrom(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payment id"})
		return
	}

	if err := h.store.DeletePayment(c.Request.Context(), restaurantID, id); err != nil {
		writeStoreError(c, err, "DeletePayment failed", restaurantID)
		return
	}

	slog.Info("Payment voided", "payment_id", id, "restaurant_id", restaurantID)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *PaymentHandler) dayParam(c *gin.Context) (string, bool) {
	day := c.Query("day")
	if day == "" {
		return h.now().UTC().Format(storage.DayLayout), true
	}
	if err := val.Validate.Var(day, "isoday"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "day must be in YYYY-MM-DD format"})
		return "", false
	}
	return day, true
}

func writeStoreError(c *gin.Context, err error, msg string, restaurantID int64) {
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "payment not found"})
		return
	}
	slog.Error(msg, "error", err, "restaurant_id", restaurantID)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
}

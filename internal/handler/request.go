// internal/handler/request.go
package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"tap-order-pay/internal/commission"
	"tap-order-pay/internal/middleware"
	val "tap-order-pay/internal/validator"
)

// === DTO ===

type QuoteRequest struct {
	BaseAmount *float64 `json:"base_amount" validate:"required,amount"`
	TipAmount  float64  `json:"tip_amount" validate:"amount"`
}

type SplitRequest struct {
	BaseAmount *float64 `json:"base_amount" validate:"required,amount"`
	TipAmount  float64  `json:"tip_amount" validate:"amount"`
	Parts      int      `json:"parts" validate:"required,min=1,max=50"`
}

type LoginRequest struct {
	Restaurant string `json:"restaurant" validate:"required,notblank,max=120"`
}

type CreatePaymentRequest struct {
	TableNumber int      `json:"table_number" validate:"required,min=1"`
	BaseAmount  *float64 `json:"base_amount" validate:"required,amount"`
	TipAmount   float64  `json:"tip_amount" validate:"amount"`
}

type QuoteResponse struct {
	Breakdown commission.Breakdown `json:"breakdown"`
	Display   commission.Display   `json:"display"`
}

type SplitResponse struct {
	Parts        int             `json:"parts"`
	Shares       []QuoteResponse `json:"shares"`
	TotalCharged string          `json:"total_charged"`
}

type TierView struct {
	Name         string           `json:"name"`
	Min          float64          `json:"min"`
	Max          *float64         `json:"max"`
	MaxInclusive bool             `json:"max_inclusive"`
	Rates        commission.Rates `json:"rates"`
}

func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return false
	}
	if err := validateStruct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

func validateStruct(v any) error {
	if err := val.Validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("invalid input: %w", err)
		}
		var errs []string
		for _, e := range verrs {
			errs = append(errs, fieldErrorToString(e))
		}
		return fmt.Errorf("invalid input: %s", strings.Join(errs, "; "))
	}
	return nil
}

func fieldErrorToString(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", e.Field())
	case "amount":
		return fmt.Sprintf("%s must be a non-negative amount", e.Field())
	case "isoday":
		return fmt.Sprintf("%s must be in YYYY-MM-DD format", e.Field())
	case "notblank":
		return fmt.Sprintf("%s must not be blank", e.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s", e.Field(), e.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", e.Field(), e.Param())
	default:
		return fmt.Sprintf("%s is invalid", e.Field())
	}
}

func restaurantIDFrom(c *gin.Context) (int64, bool) {
	id, ok := middleware.RestaurantID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "restaurant_id missing"})
		return 0, false
	}
	return id, true
}

// internal/handler/auth.go
package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"tap-order-pay/internal/storage"
)

type TokenIssuer interface {
	GenerateToken(restaurantID int64) (string, error)
}

type AuthHandler struct {
	restaurants storage.RestaurantStorage
	tokens      TokenIssuer
}

func NewAuthHandler(restaurants storage.RestaurantStorage, tokens TokenIssuer) *AuthHandler {
	return &AuthHandler{restaurants: restaurants, tokens: tokens}
}

// Login godoc
// @Summary Issue a restaurant session token
// @Description Registers the restaurant on first login
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Restaurant"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Router /api/v1/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	id, err := h.restaurants.CreateRestaurantIfNotExists(c.Request.Context(), req.Restaurant)
	if err != nil {
		slog.Error("Login failed", "error", err, "restaurant", req.Restaurant)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	token, err := h.tokens.GenerateToken(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "restaurant_id": id})
}

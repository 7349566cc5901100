// internal/handler/router.go
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tap-order-pay/internal/middleware"
	"tap-order-pay/internal/storage"
)

type Tokens interface {
	TokenIssuer
	middleware.TokenParser
}

type CombinedStorage interface {
	storage.RestaurantStorage
	storage.PaymentStorage
}

// NewRouter wires every route. webhook may be nil when the bot is disabled.
func NewRouter(store CombinedStorage, tokens Tokens, webhook gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if webhook != nil {
		router.POST("/telegram", webhook)
	}

	commissions := NewCommissionHandler()
	authHandler := NewAuthHandler(store, tokens)
	payments := NewPaymentHandler(store)

	public := router.Group("/api/v1")
	{
		public.POST("/login", authHandler.Login)
		public.GET("/commissions/tiers", commissions.Tiers)
		public.POST("/commissions/quote", commissions.Quote)
		public.POST("/commissions/split", commissions.Split)
	}

	v1 := router.Group("/api/v1")
	v1.Use(middleware.NewAuthMiddleware(tokens).RequireAuth())
	{
		v1.POST("/payments", payments.CreatePayment)
		v1.GET("/payments", payments.ListPayments)
		v1.GET("/payments/:id", payments.GetPayment)
		v1.DELETE("/payments/:id", payments.DeletePayment)
		v1.GET("/summary", payments.Summary)
	}

	return router
}

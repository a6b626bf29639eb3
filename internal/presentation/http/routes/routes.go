package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nashon/pos-ledger-api/internal/config"
	"github.com/nashon/pos-ledger-api/internal/presentation/http/handler"
	"github.com/nashon/pos-ledger-api/internal/presentation/http/middleware"
	"github.com/nashon/pos-ledger-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth     *handler.AuthHandler
	Order    *handler.OrderHandler
	Invoice  *handler.InvoiceHandler
	GiftCard *handler.GiftCardHandler
	Catalog  *handler.CatalogHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager *utils.JWTManager
	Cfg        *config.Config
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.PrometheusMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// Prometheus scrape endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
		}

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		rateLimiter := middleware.NewClientRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h)
	}

	return router
}

func registerProtectedRoutes(g *gin.RouterGroup, h *Handlers) {
	g.GET("/auth/me", h.Auth.Me)

	orders := g.Group("/orders")
	{
		orders.GET("", h.Order.List)
		orders.POST("", h.Order.Create)
		orders.GET("/:id", h.Order.Get)
		orders.PATCH("/:id", h.Order.Update)
		orders.POST("/:id/items", h.Order.AddItem)
		orders.PATCH("/:id/items/:itemId", h.Order.SetItemQuantity)
		orders.DELETE("/:id/items/:itemId", h.Order.RemoveItem)
	}

	invoices := g.Group("/invoices")
	{
		invoices.GET("", h.Invoice.List)
		invoices.POST("", h.Invoice.Create)
		invoices.GET("/:id", h.Invoice.Get)
		invoices.PATCH("/:id", h.Invoice.Update)
		invoices.POST("/:id/items", h.Invoice.AddItem)
		invoices.PATCH("/:id/items/:itemId", h.Invoice.SetItemQuantity)
		invoices.DELETE("/:id/items/:itemId", h.Invoice.RemoveItem)
		invoices.POST("/:id/payments", h.Invoice.AddPayment)
	}

	giftCards := g.Group("/gift-cards")
	{
		giftCards.GET("", h.GiftCard.List)
		giftCards.POST("", h.GiftCard.Issue)
		giftCards.POST("/refresh", h.GiftCard.Refresh)
		giftCards.POST("/redeem", h.GiftCard.Redeem)
		giftCards.POST("/reload", h.GiftCard.Reload)
		giftCards.GET("/:id", h.GiftCard.Get)
		giftCards.PATCH("/:id", h.GiftCard.Update)
	}

	g.GET("/products", h.Catalog.ListProducts)
	g.GET("/customers", h.Catalog.ListCustomers)
	g.POST("/catalog/refresh", h.Catalog.Refresh)
}

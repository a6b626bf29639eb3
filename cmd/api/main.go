package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/nashon/pos-ledger-api/internal/application/service"
	"github.com/nashon/pos-ledger-api/internal/application/store"
	"github.com/nashon/pos-ledger-api/internal/config"
	"github.com/nashon/pos-ledger-api/internal/domain/repository"
	"github.com/nashon/pos-ledger-api/internal/infrastructure/backend"
	"github.com/nashon/pos-ledger-api/internal/infrastructure/events"
	"github.com/nashon/pos-ledger-api/internal/infrastructure/storage"
	"github.com/nashon/pos-ledger-api/internal/presentation/http/handler"
	"github.com/nashon/pos-ledger-api/internal/presentation/http/routes"
	"github.com/nashon/pos-ledger-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	// Select the snapshot store
	var snapshots repository.SnapshotRepository
	switch cfg.Storage.Driver {
	case "postgres":
		db, err := storage.NewPostgresDB(&cfg.Database)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		snapshots = storage.NewGormStore(db)
	default:
		fileStore, err := storage.NewFileStore(cfg.Storage.DataDir)
		if err != nil {
			log.Fatalf("Failed to open snapshot directory: %v", err)
		}
		snapshots = fileStore
	}

	// Initialize document stores and restore persisted collections
	orderStore := store.NewOrderStore(snapshots)
	if err := orderStore.Load(ctx); err != nil {
		log.Fatalf("Failed to load orders: %v", err)
	}
	invoiceStore := store.NewInvoiceStore(snapshots)
	if err := invoiceStore.Load(ctx); err != nil {
		log.Fatalf("Failed to load invoices: %v", err)
	}

	// Backend client and remote collections
	backendClient := backend.NewClient(&cfg.Backend)
	giftCardService := service.NewGiftCardService(backendClient)
	catalogService := service.NewCatalogService(backendClient)

	// Best-effort warm-up; the caches stay empty if the backend is down
	if err := giftCardService.Refresh(ctx); err != nil {
		log.Printf("Warning: initial gift card fetch failed: %v", err)
	}
	if err := catalogService.Refresh(ctx); err != nil {
		log.Printf("Warning: initial catalog fetch failed: %v", err)
	}

	// Document event publisher
	publisher := events.NewNoopPublisher()
	if cfg.Events.AMQPURL != "" {
		p, err := events.NewPublisher(cfg.Events.AMQPURL, cfg.Events.Exchange)
		if err != nil {
			log.Printf("Warning: RabbitMQ unavailable, events disabled: %v", err)
		} else {
			publisher = p
		}
	}
	defer publisher.Close()

	// Initialize JWT manager and auth
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)
	authService := service.NewAuthService(jwtManager, &cfg.Auth)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Order:    handler.NewOrderHandler(orderStore, publisher),
		Invoice:  handler.NewInvoiceHandler(invoiceStore, publisher),
		GiftCard: handler.NewGiftCardHandler(giftCardService),
		Catalog:  handler.NewCatalogHandler(catalogService),
	}

	router := routes.Setup(handlers, &routes.Deps{
		JWTManager: jwtManager,
		Cfg:        cfg,
	})

	log.Printf("%s listening on :%s (storage=%s)", cfg.App.Name, cfg.App.Port, cfg.Storage.Driver)
	if err := router.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

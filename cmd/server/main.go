package main

import (
	"github.com/usmanharun1738/cartar-pos/internal/audit"
	"github.com/usmanharun1738/cartar-pos/internal/cart"
	"github.com/usmanharun1738/cartar-pos/internal/category"
	"github.com/usmanharun1738/cartar-pos/internal/config"
	"github.com/usmanharun1738/cartar-pos/internal/db"
	"github.com/usmanharun1738/cartar-pos/internal/handler"
	"github.com/usmanharun1738/cartar-pos/internal/logger"
	"github.com/usmanharun1738/cartar-pos/internal/money"
	"github.com/usmanharun1738/cartar-pos/internal/order"
	"github.com/usmanharun1738/cartar-pos/internal/product"
	"github.com/usmanharun1738/cartar-pos/internal/variation"

	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()
	log := logger.L()

	database := db.InitDB(cfg)
	defer database.Close()

	auditRepo := audit.NewRepository(database)
	auditor := audit.NewService(auditRepo)

	categoryRepo := category.NewRepository(database)
	categorySvc := category.NewService(categoryRepo)

	variationRepo := variation.NewRepository(database)
	variationSvc := variation.NewService(variationRepo)

	productRepo := product.NewRepository(database)
	productSvc := product.NewService(productRepo, variationRepo, auditor)

	taxRate := money.PercentRate(cfg.TaxRatePercent)
	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo, taxRate)

	store := cart.NewStore()

	router := handler.NewRouter(cfg.JWTSecret, handler.Controllers{
		Catalog:   handler.NewCatalogController(productSvc),
		Cart:      handler.NewCartController(store, productSvc, taxRate),
		Checkout:  handler.NewCheckoutController(store, orderSvc),
		Category:  handler.NewCategoryController(categorySvc),
		Variation: handler.NewVariationController(variationSvc),
		Product:   handler.NewProductController(productSvc),
		Order:     handler.NewOrderController(orderSvc),
		Audit:     handler.NewAuditController(auditor),
	})

	addr := ":" + cfg.AppPort
	log.Info("POS server listening",
		zap.String("addr", addr),
		zap.String("env", cfg.AppEnv),
		zap.String("tax_rate", taxRate.String()),
	)
	if err := router.Run(addr); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

package main

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"foodbasket-be/internal/address"
	"foodbasket-be/internal/api"
	"foodbasket-be/internal/category"
	"foodbasket-be/internal/config"
	"foodbasket-be/internal/db"
	"foodbasket-be/internal/logger"
	"foodbasket-be/internal/loyalty"
	"foodbasket-be/internal/order"
	"foodbasket-be/internal/paylater"
	"foodbasket-be/internal/product"
	"foodbasket-be/internal/user"
	"foodbasket-be/internal/wallet"

	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database, err := db.InitDB(cfg)
	if err != nil {
		logger.L().Fatal("database init failed", zap.Error(err))
	}
	defer database.Close()

	handler := buildHandler(cfg, database)
	router := api.NewRouter(handler)

	go sweepOverdueLoop(handler.PayLaterSvc)

	addr := ":" + cfg.AppPort
	logger.L().Info("server running", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, router); err != nil {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}

// sweepOverdueLoop periodically flips pay-later records past their due
// date to overdue.
func sweepOverdueLoop(svc paylater.Service) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		n, err := svc.SweepOverdue(ctx)
		cancel()

		if err != nil {
			logger.L().Error("overdue sweep failed", zap.Error(err))
			continue
		}
		if n > 0 {
			logger.L().Info("overdue sweep", zap.Int64("flipped", n))
		}
	}
}

func buildHandler(cfg *config.Config, database *sql.DB) *api.Handler {
	userRepo := user.NewRepository(database)
	userSvc := user.NewService(userRepo)

	productRepo := product.NewRepository(database)
	productSvc := product.NewService(productRepo)

	tagRepo := product.NewTagRepository(database)
	tagSvc := product.NewTagService(tagRepo)

	categoryRepo := category.NewRepository(database)
	categorySvc := category.NewService(categoryRepo)

	walletRepo := wallet.NewRepository(database)
	walletSvc := wallet.NewService(walletRepo)

	payLaterRepo := paylater.NewRepository(database)
	payLaterSvc := paylater.NewService(payLaterRepo)

	loyaltyRepo := loyalty.NewRepository(database)
	loyaltySvc := loyalty.NewService(loyaltyRepo)

	addressRepo := address.NewRepository(database)
	addressSvc := address.NewService(addressRepo)

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo, walletSvc, payLaterSvc, loyaltySvc)

	return &api.Handler{
		InternalAPIKey: cfg.OrdersAPIKey,
		UserSvc:        userSvc,
		ProductSvc:     productSvc,
		TagSvc:         tagSvc,
		CategorySvc:    categorySvc,
		OrderSvc:       orderSvc,
		WalletSvc:      walletSvc,
		PayLaterSvc:    payLaterSvc,
		LoyaltySvc:     loyaltySvc,
		AddressSvc:     addressSvc,
	}
}

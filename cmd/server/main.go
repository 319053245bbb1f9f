package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	inventoryapp "github.com/retailbook/backend/internal/application/inventory"
	ledgerapp "github.com/retailbook/backend/internal/application/ledger"
	orderapp "github.com/retailbook/backend/internal/application/order"
	reportapp "github.com/retailbook/backend/internal/application/report"
	tradeapp "github.com/retailbook/backend/internal/application/trade"
	"github.com/retailbook/backend/internal/infrastructure/auth"
	"github.com/retailbook/backend/internal/infrastructure/config"
	"github.com/retailbook/backend/internal/infrastructure/logger"
	"github.com/retailbook/backend/internal/infrastructure/persistence"
	"github.com/retailbook/backend/internal/interfaces/http/handler"
	"github.com/retailbook/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("starting retailbook",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("db_driver", cfg.Database.Driver),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() {
		_ = db.Close()
	}()

	if err := db.Migrate(); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	brandRepo := persistence.NewGormBrandRepository(db.DB)
	manufactureRepo := persistence.NewGormManufactureRepository(db.DB)
	incentiveRepo := persistence.NewGormIncentiveProductRepository(db.DB)
	purchaseTxRepo := persistence.NewGormPurchaseTransactionRepository(db.DB)
	salesTxRepo := persistence.NewGormSalesTransactionRepository(db.DB)
	purchaseReturnRepo := persistence.NewGormPurchaseReturnRepository(db.DB)
	salesReturnRepo := persistence.NewGormSalesReturnRepository(db.DB)
	vendorRepo := persistence.NewGormVendorRepository(db.DB)
	debtorRepo := persistence.NewGormDebtorRepository(db.DB)
	staffRepo := persistence.NewGormStaffRepository(db.DB)
	vendorTxRepo := persistence.NewGormVendorTransactionRepository(db.DB)
	debtorTxRepo := persistence.NewGormDebtorTransactionRepository(db.DB)
	staffTxRepo := persistence.NewGormStaffTransactionRepository(db.DB)
	expenseRepo := persistence.NewGormExpenseRepository(db.DB)
	withdrawalRepo := persistence.NewGormWithdrawalRepository(db.DB)
	closingCashRepo := persistence.NewGormClosingCashRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	salesReportRepo := persistence.NewGormSalesReportRepository(db.DB)
	purchaseReportRepo := persistence.NewGormPurchaseReportRepository(db.DB)
	statsRepo := persistence.NewGormStatsRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	// Application services
	productService := inventoryapp.NewProductService(txScope, productRepo, brandRepo)
	brandService := inventoryapp.NewBrandService(brandRepo, productRepo)
	manufactureService := inventoryapp.NewManufactureService(txScope, manufactureRepo)
	incentiveService := inventoryapp.NewIncentiveService(incentiveRepo)
	purchaseService := tradeapp.NewPurchaseService(txScope, purchaseTxRepo)
	salesService := tradeapp.NewSalesService(txScope, salesTxRepo)
	returnService := tradeapp.NewReturnService(txScope, purchaseReturnRepo, salesReturnRepo)
	transferService := tradeapp.NewTransferService(txScope)
	vendorService := ledgerapp.NewVendorService(vendorRepo, vendorTxRepo)
	debtorService := ledgerapp.NewDebtorService(debtorRepo, debtorTxRepo)
	staffService := ledgerapp.NewStaffService(staffRepo, staffTxRepo)
	statementService := ledgerapp.NewStatementService(vendorTxRepo, debtorTxRepo, staffTxRepo)
	cashbookService := ledgerapp.NewCashbookService(expenseRepo, withdrawalRepo, closingCashRepo)
	customerService := ledgerapp.NewCustomerService(customerRepo)
	orderService := orderapp.NewOrderService(orderRepo)
	reportService := reportapp.NewReportService(
		salesReportRepo, purchaseReportRepo, statsRepo,
		expenseRepo, withdrawalRepo, closingCashRepo,
		debtorTxRepo, orderRepo, productRepo, brandRepo,
	)

	jwtService := auth.NewJWTService(cfg.JWT)

	engine := router.New(router.Config{
		Environment:      cfg.App.Env,
		Logger:           log,
		JWT:              jwtService,
		CORSAllowOrigins: cfg.HTTP.CORSAllowOrigins,
		TrustedProxies:   cfg.HTTP.TrustedProxies,
	}, router.Handlers{
		Products:     handler.NewProductHandler(productService),
		Brands:       handler.NewBrandHandler(brandService),
		Manufactures: handler.NewManufactureHandler(manufactureService),
		Incentives:   handler.NewIncentiveHandler(incentiveService),
		Purchases:    handler.NewPurchaseHandler(purchaseService),
		Sales:        handler.NewSalesHandler(salesService),
		Returns:      handler.NewReturnHandler(returnService),
		Transfers:    handler.NewTransferHandler(transferService),
		Vendors:      handler.NewVendorHandler(vendorService, statementService),
		Debtors:      handler.NewDebtorHandler(debtorService, statementService),
		Staff:        handler.NewStaffHandler(staffService, statementService),
		Cashbook:     handler.NewCashbookHandler(cashbookService),
		Customers:    handler.NewCustomerHandler(customerService),
		Orders:       handler.NewOrderHandler(orderService),
		Reports:      handler.NewReportHandler(reportService),
	})

	server := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("http server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}
	log.Info("server stopped")
}

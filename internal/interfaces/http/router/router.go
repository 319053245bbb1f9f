package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/retailbook/backend/internal/infrastructure/auth"
	"github.com/retailbook/backend/internal/infrastructure/logger"
	"github.com/retailbook/backend/internal/interfaces/http/handler"
	"github.com/retailbook/backend/internal/interfaces/http/middleware"
)

// Config carries what the router needs beyond the handlers themselves.
type Config struct {
	Environment      string
	Logger           *zap.Logger
	JWT              *auth.JWTService
	CORSAllowOrigins []string
	TrustedProxies   []string
}

// Handlers groups every endpoint handler the API mounts.
type Handlers struct {
	Products     *handler.ProductHandler
	Brands       *handler.BrandHandler
	Manufactures *handler.ManufactureHandler
	Incentives   *handler.IncentiveHandler
	Purchases    *handler.PurchaseHandler
	Sales        *handler.SalesHandler
	Returns      *handler.ReturnHandler
	Transfers    *handler.TransferHandler
	Vendors      *handler.PartyHandler
	Debtors      *handler.PartyHandler
	Staff        *handler.PartyHandler
	Cashbook     *handler.CashbookHandler
	Customers    *handler.CustomerHandler
	Orders       *handler.OrderHandler
	Reports      *handler.ReportHandler
}

// New builds the gin engine with all middleware and routes mounted.
func New(cfg Config, h Handlers) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()
	_ = engine.SetTrustedProxies(cfg.TrustedProxies)

	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(cfg.Logger),
		logger.Recovery(cfg.Logger),
		middleware.CORS(cfg.CORSAllowOrigins),
	)

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api/v1")
	api.Use(middleware.Auth(middleware.AuthConfig{Service: cfg.JWT}))

	admin := middleware.RequireAdmin()

	products := api.Group("/products")
	{
		products.POST("", admin, h.Products.Create)
		products.GET("", h.Products.List)
		products.GET("/:id", h.Products.Get)
		products.PUT("/:id", admin, h.Products.Update)
		products.DELETE("/:id", admin, h.Products.Delete)
		products.GET("/uid/:uid", h.Products.GetByUID)
		products.POST("/merge", admin, h.Products.Merge)
	}

	brands := api.Group("/brands")
	{
		brands.POST("", admin, h.Brands.Create)
		brands.GET("", h.Brands.List)
		brands.GET("/:id", h.Brands.Get)
		brands.PUT("/:id", admin, h.Brands.Update)
		brands.DELETE("/:id", admin, h.Brands.Delete)
		brands.POST("/merge", admin, h.Brands.Merge)
	}

	manufactures := api.Group("/manufactures")
	{
		manufactures.POST("", h.Manufactures.Create)
		manufactures.GET("", h.Manufactures.List)
		manufactures.GET("/:id", h.Manufactures.Get)
		manufactures.PUT("/:id", h.Manufactures.Update)
		manufactures.DELETE("/:id", h.Manufactures.Delete)
	}

	incentives := api.Group("/incentives")
	{
		incentives.POST("", admin, h.Incentives.Create)
		incentives.GET("", h.Incentives.List)
		incentives.GET("/:id", h.Incentives.Get)
		incentives.PATCH("/:id", admin, h.Incentives.Update)
		incentives.DELETE("/:id", admin, h.Incentives.Delete)
	}

	purchases := api.Group("/purchases")
	{
		purchases.POST("", h.Purchases.Create)
		purchases.GET("", h.Purchases.List)
		purchases.GET("/:id", h.Purchases.Get)
		purchases.PUT("/:id", h.Purchases.Update)
		purchases.DELETE("/:id", h.Purchases.Delete)
	}

	sales := api.Group("/sales")
	{
		sales.POST("", h.Sales.Create)
		sales.GET("", h.Sales.List)
		sales.GET("/next-bill-no", h.Sales.NextBillNo)
		sales.GET("/:id", h.Sales.Get)
		sales.PUT("/:id", h.Sales.Update)
		sales.DELETE("/:id", h.Sales.Delete)
	}

	purchaseReturns := api.Group("/purchase-returns")
	{
		purchaseReturns.POST("", h.Returns.CreatePurchaseReturn)
		purchaseReturns.GET("", h.Returns.ListPurchaseReturns)
		purchaseReturns.DELETE("/:id", h.Returns.DeletePurchaseReturn)
	}

	salesReturns := api.Group("/sales-returns")
	{
		salesReturns.POST("", h.Returns.CreateSalesReturn)
		salesReturns.GET("", h.Returns.ListSalesReturns)
		salesReturns.DELETE("/:id", h.Returns.DeleteSalesReturn)
	}

	api.POST("/transfers", admin, h.Transfers.Create)

	registerParty(api.Group("/vendors"), h.Vendors, admin)
	registerParty(api.Group("/debtors"), h.Debtors, admin)
	registerParty(api.Group("/staff"), h.Staff, admin)

	expenses := api.Group("/expenses")
	{
		expenses.POST("", h.Cashbook.CreateExpense)
		expenses.GET("", h.Cashbook.ListExpenses)
		expenses.DELETE("/:id", h.Cashbook.DeleteExpense)
	}

	withdrawals := api.Group("/withdrawals")
	{
		withdrawals.POST("", admin, h.Cashbook.CreateWithdrawal)
		withdrawals.GET("", h.Cashbook.ListWithdrawals)
		withdrawals.DELETE("/:id", admin, h.Cashbook.DeleteWithdrawal)
	}

	closingCash := api.Group("/closing-cash")
	{
		closingCash.PUT("", h.Cashbook.RecordClosingCash)
		closingCash.GET("", h.Cashbook.GetClosingCash)
	}

	customers := api.Group("/customers")
	{
		customers.POST("", h.Customers.Create)
		customers.GET("", h.Customers.List)
		customers.PUT("/:id", h.Customers.Update)
		customers.DELETE("/:id", h.Customers.Delete)
		customers.GET("/phone/:phone", h.Customers.LookupByPhone)
	}

	orders := api.Group("/orders")
	{
		orders.POST("", h.Orders.Create)
		orders.GET("", h.Orders.List)
		orders.GET("/:id", h.Orders.Get)
		orders.PUT("/:id", h.Orders.Update)
		orders.DELETE("/:id", h.Orders.Delete)
		orders.POST("/:id/transition", h.Orders.Transition)
	}

	reports := api.Group("/reports")
	{
		reports.GET("/sales", h.Reports.Sales)
		reports.GET("/purchases", h.Reports.Purchases)
		reports.GET("/expenses", h.Reports.Expenses)
		reports.GET("/withdrawals", h.Reports.Withdrawals)
		reports.GET("/cash-flow", h.Reports.CashFlow)
		reports.GET("/stats", h.Reports.Stats)
	}

	return engine
}

// registerParty mounts the shared party ledger routes: CRUD, ledger entries
// and the statement. Mutations are admin-gated; reads are not.
func registerParty(rg *gin.RouterGroup, h *handler.PartyHandler, admin gin.HandlerFunc) {
	rg.POST("", admin, h.Create)
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	rg.PUT("/:id", admin, h.Update)
	rg.DELETE("/:id", admin, h.Delete)
	rg.POST("/:id/transactions", admin, h.AddTransaction)
	rg.DELETE("/transactions/:id", admin, h.DeleteTransaction)
	rg.GET("/:id/statement", h.Statement)
}

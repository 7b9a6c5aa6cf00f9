package http

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/jhoicas/boutique-api/internal/application/auth"
	"github.com/jhoicas/boutique-api/internal/application/catalog"
	"github.com/jhoicas/boutique-api/internal/application/finance"
	"github.com/jhoicas/boutique-api/internal/application/inventory"
	"github.com/jhoicas/boutique-api/internal/application/order"
	"github.com/jhoicas/boutique-api/internal/application/settings"
	"github.com/jhoicas/boutique-api/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AppName        string
	Auth           *auth.AuthUseCase
	Catalog        *catalog.CatalogUseCase
	Orders         *order.Service
	Purchases      *inventory.RecordPurchaseUseCase
	Adjustments    *inventory.AdjustStockUseCase
	Ledger         *finance.LedgerUseCase
	Stats          *finance.StatsUseCase
	Settings       *settings.Provider
	MetricsHandler http.Handler // nil = sin /metrics
	JWTSecret      string
	WebhookSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})
	if deps.MetricsHandler != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.MetricsHandler))
	}

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.Auth)
	api.Post("/auth/login", authHandler.Login)

	// Tienda (público)
	checkoutHandler := NewCheckoutHandler(deps.Orders)
	api.Post("/checkout", checkoutHandler.Checkout)
	api.Post("/webhooks/payment", RequireWebhookSecret(deps.WebhookSecret), checkoutHandler.PaymentWebhook)

	// Back-office (Bearer Token)
	admin := api.Group("/admin", AuthMiddleware(deps.JWTSecret))
	staff := RequireRole(jwt.RoleAdmin, jwt.RoleOperator)
	adminOnly := RequireRole(jwt.RoleAdmin)

	// Pedidos
	orders := admin.Group("/orders", staff)
	orderHandler := NewOrderHandler(deps.Orders)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Post("/:id/processing", orderHandler.MarkProcessing)
	orders.Post("/:id/ship", orderHandler.Ship)
	orders.Post("/:id/deliver", orderHandler.Deliver)
	orders.Post("/:id/cancel", orderHandler.Cancel)

	// Inventario
	inv := admin.Group("/inventory", staff)
	inventoryHandler := NewInventoryHandler(deps.Purchases, deps.Adjustments)
	inv.Post("/purchases", adminOnly, inventoryHandler.RecordPurchase)
	inv.Post("/purchases/:id/reverse", adminOnly, inventoryHandler.ReversePurchase)
	inv.Post("/adjustments", inventoryHandler.AdjustStock)
	inv.Get("/variants/:id/logs", inventoryHandler.ListLogs)

	// Catálogo
	productHandler := NewProductHandler(deps.Catalog)
	products := admin.Group("/products", staff)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", adminOnly, productHandler.Create)
	products.Post("/:id/variants", adminOnly, productHandler.CreateVariant)
	admin.Get("/variants/:id", staff, productHandler.GetVariant)

	// Finanzas
	fin := admin.Group("/finance", adminOnly)
	financeHandler := NewFinanceHandler(deps.Ledger, deps.Stats)
	fin.Post("/entries", financeHandler.CreateEntry)
	fin.Get("/entries", financeHandler.ListEntries)
	fin.Post("/entries/:id/reverse", financeHandler.Reverse)
	fin.Get("/stats", financeHandler.Stats)
	fin.Get("/stats/pdf", financeHandler.StatsPDF)

	// Usuarios del back-office
	users := admin.Group("/users", adminOnly)
	users.Post("/", authHandler.CreateUser)
	users.Get("/", authHandler.ListUsers)
	users.Put("/:id/status", authHandler.SetStatus)

	// Ajustes de la tienda
	st := admin.Group("/settings", adminOnly)
	settingsHandler := NewSettingsHandler(deps.Settings)
	st.Get("/", settingsHandler.Get)
	st.Put("/", settingsHandler.Update)
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockflow-api/internal/application/auth"
	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/application/inventory"
	"github.com/jhoicas/stockflow-api/internal/application/usecase"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
	"github.com/jhoicas/stockflow-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Movements   *inventory.MovementUseCase
	Stats       *inventory.StatsUseCase
	Stocks      *inventory.StockUseCase
	Documents   *inventory.DocumentUseCase
	ProductUC   *usecase.ProductUseCase
	WarehouseUC *usecase.WarehouseUseCase
	LocationUC  *usecase.LocationUseCase
	UserUC      *usecase.UserUseCase
	AuthUC      *auth.AuthUseCase
	JWTSecret   string
	Logger      *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	errs := errorResponder{log: deps.Logger}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")
	requireAuth := AuthMiddleware(deps.JWTSecret)

	// Auth (público salvo logout)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, errs)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/refresh", authHandler.Refresh)
	authGroup.Post("/forgot-password", authHandler.ForgotPassword)
	authGroup.Post("/reset-password", authHandler.ResetPassword)
	authGroup.Post("/logout", requireAuth, authHandler.Logout)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", requireAuth)

	// Users
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC, errs)
	users.Get("/", userHandler.List)
	users.Get("/me", userHandler.Me)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	// Products (+ vista de stock)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.Stocks, errs)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/product-stocks", productHandler.Stocks)
	products.Get("/sku/:sku_code", productHandler.GetBySKU)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Warehouses y locations
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC, deps.LocationUC, errs)
	warehouses := protected.Group("/warehouses")
	warehouses.Post("/", warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/code/:short_code", warehouseHandler.GetByShortCode)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Put("/:id", warehouseHandler.Update)
	warehouses.Delete("/:id", warehouseHandler.Delete)

	locations := protected.Group("/locations")
	locations.Post("/", warehouseHandler.CreateLocation)
	locations.Get("/", warehouseHandler.ListLocations)
	locations.Get("/warehouse/:warehouse_code", warehouseHandler.ListLocationsByWarehouse)
	locations.Get("/:id", warehouseHandler.GetLocation)
	locations.Put("/:id", warehouseHandler.UpdateLocation)
	locations.Delete("/:id", warehouseHandler.DeleteLocation)

	// Product logs: las rutas fijas van antes de /:id
	logs := protected.Group("/product-logs")
	logHandler := NewProductLogHandler(deps.Movements, deps.Stats, deps.Documents, errs)
	logs.Post("/", logHandler.Create)
	logs.Get("/", logHandler.List(repository.ClassAny))
	logs.Get("/with-product-name", logHandler.ListWithProductName(repository.ClassAny))
	logs.Get("/export", logHandler.Export)
	logs.Post("/receipt", logHandler.CreateReceipt)
	logs.Post("/delivery", logHandler.CreateDelivery)
	logs.Put("/receipt/:ref/status", logHandler.AdvanceReceiptStatus)
	logs.Put("/delivery/:ref/status", logHandler.AdvanceDeliveryStatus)
	logs.Get("/stats/receipt", logHandler.ReceiptStats)
	logs.Get("/stats/delivery", logHandler.DeliveryStats)
	logs.Get("/deliveries", logHandler.List(repository.ClassDelivery))
	logs.Get("/deliveries/with-product-name", logHandler.ListWithProductName(repository.ClassDelivery))
	logs.Get("/receipts", logHandler.List(repository.ClassReceipt))
	logs.Get("/receipts/with-product-name", logHandler.ListWithProductName(repository.ClassReceipt))
	logs.Get("/adjustments", logHandler.List(repository.ClassAdjustment))
	logs.Get("/reference/:ref/pdf", logHandler.ReferencePDF)
	logs.Get("/reference/:ref", logHandler.ListByReference)
	logs.Get("/product/:product_id", logHandler.ListByProduct)
	logs.Get("/status/:status", logHandler.ListByStatus)
	logs.Get("/:id", logHandler.GetByID)
	logs.Put("/:id", logHandler.Update)
	logs.Delete("/:id", logHandler.Delete)

	// 404 JSON para rutas desconocidas
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "ROUTE_NOT_FOUND", Message: "ruta no encontrada"})
	})
}

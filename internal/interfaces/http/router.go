package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/smartshelf-api/internal/application/analytics"
	"github.com/jhoicas/smartshelf-api/internal/application/auth"
	"github.com/jhoicas/smartshelf-api/internal/application/inventory"
	"github.com/jhoicas/smartshelf-api/internal/application/purchasing"
	"github.com/jhoicas/smartshelf-api/internal/application/sales"
	"github.com/jhoicas/smartshelf-api/internal/application/usecase"
	"github.com/jhoicas/smartshelf-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	ProductUC    *usecase.ProductUseCase
	SupplierUC   *usecase.SupplierUseCase
	UserUC       *usecase.UserUseCase
	PurchasingUC *purchasing.UseCase
	SalesUC      *sales.UseCase
	ReportUC     *analytics.ReportUseCase
	ForecastUC   *inventory.ForecastUseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
//
// Permisos:
//   - cualquier rol autenticado: lecturas y POST /sales
//   - STORE_MANAGER o ADMIN: altas/cambios de productos, proveedores y órdenes; reportes y pronóstico
//   - ADMIN: /users
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/reset-password-direct", authHandler.ResetPasswordDirect)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("", AuthMiddleware(deps.JWTSecret))
	anyRole := RequireRole(entity.RoleUser, entity.RoleStoreManager, entity.RoleAdmin)
	manager := RequireRole(entity.RoleStoreManager, entity.RoleAdmin)
	admin := RequireRole(entity.RoleAdmin)

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", anyRole, productHandler.List)
	products.Get("/:id", anyRole, productHandler.GetByID)
	products.Post("/", manager, productHandler.Create)
	products.Put("/:id", manager, productHandler.Update)
	products.Delete("/:id", manager, productHandler.Delete)

	// Suppliers
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Get("/", anyRole, supplierHandler.List)
	suppliers.Post("/", manager, supplierHandler.Create)
	suppliers.Put("/:id", manager, supplierHandler.Update)
	suppliers.Delete("/:id", manager, supplierHandler.Delete)

	// Purchase orders
	pos := protected.Group("/pos")
	poHandler := NewPurchaseOrderHandler(deps.PurchasingUC)
	pos.Get("/", anyRole, poHandler.List)
	pos.Post("/", manager, poHandler.Create)
	pos.Put("/:id/approve", manager, poHandler.Approve)
	pos.Put("/:id/receive", manager, poHandler.Receive)

	// Sales
	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SalesUC)
	salesGroup.Post("/", anyRole, saleHandler.Record)
	salesGroup.Get("/report", manager, saleHandler.Report)
	salesGroup.Get("/report/pdf", manager, saleHandler.ReportPDF)

	// Reportes y pronóstico
	analyticsHandler := NewAnalyticsHandler(deps.ReportUC, deps.ForecastUC)
	protected.Get("/reports/analytics", manager, analyticsHandler.GetAnalytics)
	protected.Get("/forecast", manager, analyticsHandler.GetForecast)

	// Users (solo ADMIN)
	userHandler := NewUserHandler(deps.UserUC)
	protected.Get("/users", admin, userHandler.List)
}

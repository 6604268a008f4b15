package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/pos-bom/internal/application/auth"
	"github.com/jhoicas/pos-bom/internal/application/bomstock"
	"github.com/jhoicas/pos-bom/internal/application/inventory"
	"github.com/jhoicas/pos-bom/internal/application/pos"
	"github.com/jhoicas/pos-bom/internal/domain/entity"
	"github.com/jhoicas/pos-bom/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC           *auth.AuthUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	Session          *pos.SessionUseCase
	Submit           *pos.SubmitOrderUseCase
	Executor         *bomstock.DeductionExecutor
	Receipt          *pos.ReceiptUseCase
	Tokens           *jwt.Signer
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.Tokens))
	supervisors := RequireRole(entity.RoleAdmin, entity.RoleSupervisor)

	// Sesión de caja
	posGroup := protected.Group("/pos")
	posHandler := NewPOSHandler(deps.Session, deps.Submit, deps.Executor, deps.Receipt)
	posGroup.Get("/outlets/:outletId/products", posHandler.LoadProducts)
	posGroup.Get("/products/:id/components", posHandler.Components)
	posGroup.Post("/availability", posHandler.CheckAvailability)
	posGroup.Post("/orders/validate", posHandler.ValidateOrder)
	posGroup.Post("/orders", posHandler.SubmitOrder)
	posGroup.Post("/orders/:id/lines/:lineId/deduct", supervisors, posHandler.DeductLine)
	posGroup.Get("/orders/:id/receipt", posHandler.Receipt)

	// Movimientos manuales de inventario
	invGroup := protected.Group("/inventory", supervisors)
	inventoryHandler := NewInventoryHandler(deps.RegisterMovement)
	invGroup.Post("/movements", inventoryHandler.RegisterMovement)
}

package http

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/ghulammujtaba153/Dairy/internal/application/inventory"
	"github.com/ghulammujtaba153/Dairy/internal/application/production"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Movements     *inventory.MovementUseCase
	Replenishment *inventory.ReplenishmentUseCase
	Production    *production.UseCase
	Validator     *validator.Validate
	Log           zerolog.Logger
	JWTSecret     string // vacío: /api sin autenticación
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Validator == nil {
		deps.Validator = NewValidator()
	}
	api := app.Group("/api")
	if deps.JWTSecret != "" {
		api.Use(AuthMiddleware(deps.JWTSecret))
	}

	inv := api.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.Movements, deps.Replenishment, deps.Validator, deps.Log)
	inv.Get("/", inventoryHandler.GetStock)
	inv.Get("/stats", inventoryHandler.GetStats)
	inv.Get("/replenishment", inventoryHandler.GetReplenishmentList)
	inv.Get("/movements", inventoryHandler.GetMovements)
	inv.Get("/movements/:id", inventoryHandler.GetMovement)
	inv.Post("/movement", inventoryHandler.RecordMovement)
	inv.Put("/movement/:id", inventoryHandler.UpdateMovement)
	inv.Delete("/movement/:id", inventoryHandler.DeleteMovement)
	inv.Get("/stock/:product", inventoryHandler.GetProductStock)
	inv.Put("/stock/:product/min-level", inventoryHandler.SetMinStockLevel)

	prod := api.Group("/production")
	productionHandler := NewProductionHandler(deps.Production, deps.Validator, deps.Log)
	// /stats antes de /:id
	prod.Get("/stats", productionHandler.Stats)
	prod.Get("/", productionHandler.List)
	prod.Get("/:id", productionHandler.Get)
	prod.Post("/", productionHandler.Create)
	prod.Put("/:id", productionHandler.Update)
	prod.Delete("/:id", productionHandler.Delete)
}

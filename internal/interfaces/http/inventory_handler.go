package http

import (
	"net/url"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/ghulammujtaba153/Dairy/internal/application/dto"
	"github.com/ghulammujtaba153/Dairy/internal/application/inventory"
)

// InventoryHandler maneja las peticiones HTTP de movimientos y existencias.
type InventoryHandler struct {
	uc            *inventory.MovementUseCase
	replenishment *inventory.ReplenishmentUseCase
	validate      *validator.Validate
	log           zerolog.Logger
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.MovementUseCase, replenishment *inventory.ReplenishmentUseCase, validate *validator.Validate, log zerolog.Logger) *InventoryHandler {
	return &InventoryHandler{uc: uc, replenishment: replenishment, validate: validate, log: log}
}

// RecordMovement godoc
// @Summary      Registrar movimiento de existencias
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MovementRequest  true  "product_name, movement_type (in|out|market), quantity, unit, price opcional"
// @Success      201   {object}  dto.Response
// @Failure      400   {object}  dto.Response
// @Failure      500   {object}  dto.Response
// @Router       /api/inventory/movement [post]
func (h *InventoryHandler) RecordMovement(c *fiber.Ctx) error {
	var req dto.MovementRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	if err := validateStruct(h.validate, req); err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.uc.RecordFromRequest(c.UserContext(), req)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(out, "Movement recorded successfully"))
}

// UpdateMovement godoc
// @Summary      Corregir movimiento (revierte el efecto anterior y aplica el nuevo)
// @Tags         inventory
// @Param        id    path  int                  true  "ID del movimiento"
// @Param        body  body  dto.MovementRequest  true  "movimiento completo"
// @Success      200   {object}  dto.Response
// @Failure      404   {object}  dto.Response
// @Router       /api/inventory/movement/{id} [put]
func (h *InventoryHandler) UpdateMovement(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	var req dto.MovementRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	if err := validateStruct(h.validate, req); err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.uc.UpdateFromRequest(c.UserContext(), id, req)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.OK(out, "Movement updated successfully"))
}

// DeleteMovement godoc
// @Summary      Eliminar movimiento (revierte su efecto)
// @Tags         inventory
// @Param        id  path  int  true  "ID del movimiento"
// @Success      200  {object}  dto.Response
// @Failure      404  {object}  dto.Response
// @Router       /api/inventory/movement/{id} [delete]
func (h *InventoryHandler) DeleteMovement(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.OK(nil, "Movement deleted successfully"))
}

// GetStock godoc
// @Summary      Listar existencias por producto
// @Tags         inventory
// @Success      200  {object}  dto.Response
// @Router       /api/inventory [get]
func (h *InventoryHandler) GetStock(c *fiber.Ctx) error {
	entries, err := h.uc.ListStock(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	out := make([]dto.StockResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, inventory.ToStockResponse(e))
	}
	return c.JSON(dto.OK(out, ""))
}

// GetProductStock godoc
// @Summary      Existencia de un producto
// @Tags         inventory
// @Param        product  path  string  true  "nombre del producto"
// @Success      200  {object}  dto.Response
// @Failure      404  {object}  dto.Response
// @Router       /api/inventory/stock/{product} [get]
func (h *InventoryHandler) GetProductStock(c *fiber.Ctx) error {
	product, err := url.PathUnescape(c.Params("product"))
	if err != nil {
		return invalidBody(c)
	}
	e, err := h.uc.GetStock(c.UserContext(), product)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.OK(inventory.ToStockResponse(e), ""))
}

// GetMovements godoc
// @Summary      Movimientos recientes
// @Tags         inventory
// @Param        product  query  string  false  "filtrar por producto"
// @Param        limit    query  int     false  "máximo de filas (50 por defecto, tope 500)"
// @Success      200  {object}  dto.Response
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) GetMovements(c *fiber.Ctx) error {
	var q dto.MovementQuery
	if err := c.QueryParser(&q); err != nil {
		return invalidBody(c)
	}
	if err := validateStruct(h.validate, q); err != nil {
		return writeError(c, h.log, err)
	}
	movs, err := h.uc.ListMovements(c.UserContext(), q.Product, q.Limit)
	if err != nil {
		return writeError(c, h.log, err)
	}
	out := make([]*dto.MovementResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, inventory.ToMovementResponse(m))
	}
	return c.JSON(dto.OK(out, ""))
}

// GetMovement godoc
// @Summary      Obtener movimiento
// @Tags         inventory
// @Param        id  path  int  true  "ID del movimiento"
// @Success      200  {object}  dto.Response
// @Failure      404  {object}  dto.Response
// @Router       /api/inventory/movements/{id} [get]
func (h *InventoryHandler) GetMovement(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	m, err := h.uc.GetMovement(c.UserContext(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.OK(inventory.ToMovementResponse(m), ""))
}

// GetStats godoc
// @Summary      Valorización y tendencia de 7 días
// @Tags         inventory
// @Success      200  {object}  dto.Response
// @Router       /api/inventory/stats [get]
func (h *InventoryHandler) GetStats(c *fiber.Ctx) error {
	s, err := h.uc.Stats(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.OK(inventory.ToStatsDTO(s), ""))
}

// GetReplenishmentList godoc
// @Summary      Productos bajo su nivel mínimo con cantidad sugerida
// @Tags         inventory
// @Success      200  {object}  dto.Response
// @Router       /api/inventory/replenishment [get]
func (h *InventoryHandler) GetReplenishmentList(c *fiber.Ctx) error {
	list, err := h.replenishment.GenerateReplenishmentList(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.OK(list, ""))
}

// SetMinStockLevel godoc
// @Summary      Fijar nivel mínimo de un producto
// @Tags         inventory
// @Param        product  path  string                    true  "nombre del producto"
// @Param        body     body  dto.MinStockLevelRequest  true  "min_stock_level"
// @Success      200  {object}  dto.Response
// @Failure      404  {object}  dto.Response
// @Router       /api/inventory/stock/{product}/min-level [put]
func (h *InventoryHandler) SetMinStockLevel(c *fiber.Ctx) error {
	product, err := url.PathUnescape(c.Params("product"))
	if err != nil {
		return invalidBody(c)
	}
	var req dto.MinStockLevelRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	if err := validateStruct(h.validate, req); err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.replenishment.SetMinStockLevel(c.UserContext(), product, req.MinStockLevel)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.OK(out, "Min stock level updated"))
}

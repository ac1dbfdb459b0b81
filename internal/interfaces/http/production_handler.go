package http

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/ghulammujtaba153/Dairy/internal/application/dto"
	"github.com/ghulammujtaba153/Dairy/internal/application/production"
)

// ProductionHandler maneja los lotes de producción.
type ProductionHandler struct {
	uc       *production.UseCase
	validate *validator.Validate
	log      zerolog.Logger
}

// NewProductionHandler construye el handler.
func NewProductionHandler(uc *production.UseCase, validate *validator.Validate, log zerolog.Logger) *ProductionHandler {
	return &ProductionHandler{uc: uc, validate: validate, log: log}
}

// Create godoc
// @Summary      Registrar lote de producción (entra la producción al libro)
// @Tags         production
// @Param        body  body  dto.CreateProductionRequest  true  "lote"
// @Success      201   {object}  dto.Response
// @Failure      400   {object}  dto.Response
// @Router       /api/production [post]
func (h *ProductionHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateProductionRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	if err := validateStruct(h.validate, req); err != nil {
		return writeError(c, h.log, err)
	}
	in, err := production.CreateInputFromRequest(req)
	if err != nil {
		return writeError(c, h.log, err)
	}
	b, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(production.ToResponse(b), "Production logged successfully"))
}

// Update godoc
// @Summary      Editar lote (parcial); ajusta el libro por la diferencia de producción
// @Tags         production
// @Param        id    path  int                          true  "ID del lote"
// @Param        body  body  dto.UpdateProductionRequest  true  "campos a cambiar"
// @Success      200   {object}  dto.Response
// @Failure      404   {object}  dto.Response
// @Router       /api/production/{id} [put]
func (h *ProductionHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	var req dto.UpdateProductionRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	if err := validateStruct(h.validate, req); err != nil {
		return writeError(c, h.log, err)
	}
	in, err := production.UpdateInputFromRequest(req)
	if err != nil {
		return writeError(c, h.log, err)
	}
	b, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.OK(production.ToResponse(b), "Production log updated successfully"))
}

// Delete godoc
// @Summary      Eliminar lote (retira su producción del libro)
// @Tags         production
// @Param        id  path  int  true  "ID del lote"
// @Success      200  {object}  dto.Response
// @Router       /api/production/{id} [delete]
func (h *ProductionHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.OK(nil, "Log deleted successfully"))
}

func (h *ProductionHandler) List(c *fiber.Ctx) error {
	batches, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	out := make([]dto.ProductionResponse, 0, len(batches))
	for _, b := range batches {
		out = append(out, production.ToResponse(b))
	}
	return c.JSON(dto.OK(out, ""))
}

func (h *ProductionHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	b, err := h.uc.Get(c.UserContext(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.OK(production.ToResponse(b), ""))
}

func (h *ProductionHandler) Stats(c *fiber.Ctx) error {
	s, err := h.uc.Stats(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.OK(production.ToStatsDTO(s), ""))
}

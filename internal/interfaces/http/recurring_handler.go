package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/misulabs/misu-erp/internal/application/dto"
	"github.com/misulabs/misu-erp/internal/application/usecase"
)

// RecurringHandler maneja las peticiones HTTP de cargos recurrentes.
type RecurringHandler struct {
	uc *usecase.RecurringUseCase
}

// NewRecurringHandler construye el handler.
func NewRecurringHandler(uc *usecase.RecurringUseCase) *RecurringHandler {
	return &RecurringHandler{uc: uc}
}

// Create godoc
// @Summary      Crear cargo recurrente
// @Tags         recurring
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecurringRuleRequest  true  "Datos del cargo"
// @Success      201   {object}  dto.RecurringRuleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/recurring [post]
func (h *RecurringHandler) Create(c *fiber.Ctx) error {
	var in dto.RecurringRuleRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener cargo recurrente por ID
// @Tags         recurring
// @Produce      json
// @Param        id   path  string  true  "ID del cargo"
// @Success      200  {object}  dto.RecurringRuleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/recurring/{id} [get]
func (h *RecurringHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar cargos recurrentes (próximo cobro primero)
// @Tags         recurring
// @Produce      json
// @Success      200  {array}  dto.RecurringRuleResponse
// @Router       /api/recurring [get]
func (h *RecurringHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar cargo recurrente
// @Tags         recurring
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del cargo"
// @Param        body  body  dto.RecurringRuleRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.RecurringRuleResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/recurring/{id} [put]
func (h *RecurringHandler) Update(c *fiber.Ctx) error {
	var in dto.RecurringRuleRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar cargo recurrente
// @Tags         recurring
// @Param        id  path  string  true  "ID del cargo"
// @Success      204
// @Router       /api/recurring/{id} [delete]
func (h *RecurringHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/misulabs/misu-erp/internal/application/dto"
	"github.com/misulabs/misu-erp/internal/application/usecase"
)

// MetricsHandler maneja las métricas mensuales de suscripción y la serie
// derivada growth pulse.
type MetricsHandler struct {
	uc *usecase.MetricsUseCase
}

// NewMetricsHandler construye el handler.
func NewMetricsHandler(uc *usecase.MetricsUseCase) *MetricsHandler {
	return &MetricsHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar la métrica de un mes
// @Tags         metrics
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MetricRequest  true  "Métrica mensual"
// @Success      201   {object}  dto.MetricResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/metrics [post]
func (h *MetricsHandler) Create(c *fiber.Ctx) error {
	var in dto.MetricRequest
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
// @Summary      Obtener métrica por ID
// @Tags         metrics
// @Produce      json
// @Param        id   path  string  true  "ID de la métrica"
// @Success      200  {object}  dto.MetricResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/metrics/{id} [get]
func (h *MetricsHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar métricas mensuales (cronológico)
// @Tags         metrics
// @Produce      json
// @Success      200  {array}  dto.MetricResponse
// @Router       /api/metrics [get]
func (h *MetricsHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar métrica mensual
// @Tags         metrics
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la métrica"
// @Param        body  body  dto.MetricRequest  true  "Valores nuevos"
// @Success      200   {object}  dto.MetricResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/metrics/{id} [put]
func (h *MetricsHandler) Update(c *fiber.Ctx) error {
	var in dto.MetricRequest
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
// @Summary      Eliminar métrica mensual
// @Tags         metrics
// @Param        id  path  string  true  "ID de la métrica"
// @Success      204
// @Router       /api/metrics/{id} [delete]
func (h *MetricsHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GrowthPulse godoc
// @Summary      Serie derivada ARPU / LTV / CAC / razón por mes
// @Tags         metrics
// @Produce      json
// @Success      200  {array}  dto.GrowthPointDTO
// @Router       /api/metrics/growth-pulse [get]
func (h *MetricsHandler) GrowthPulse(c *fiber.Ctx) error {
	out, err := h.uc.GrowthPulse()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// MarketingSpend godoc
// @Summary      Gasto de Marketing del libro mayor para un mes
// @Tags         metrics
// @Produce      json
// @Param        month  query  string  true  "Mes YYYY-MM"
// @Success      200  {object}  dto.MarketingSpendResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/metrics/marketing-spend [get]
func (h *MetricsHandler) MarketingSpend(c *fiber.Ctx) error {
	month := c.Query("month")
	if month == "" {
		return badRequest(c, "MISSING_MONTH", "parámetro month (YYYY-MM) es requerido")
	}
	out, err := h.uc.MarketingSpend(c.Context(), month)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

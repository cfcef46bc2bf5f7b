package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/misulabs/misu-erp/internal/application/analytics"
)

// AnalyticsHandler maneja la analítica de composición del gasto.
type AnalyticsHandler struct {
	uc *appanalytics.SpendUseCase
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(uc *appanalytics.SpendUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

// GetSpendSummary godoc
// @Summary      Composición del gasto por categoría y proveedor en un rango
// @Tags         analytics
// @Produce      json
// @Param        start  query  string  true  "Fecha inicial YYYY-MM-DD"
// @Param        end    query  string  true  "Fecha final YYYY-MM-DD (inclusiva)"
// @Success      200    {object}  dto.SpendSummaryDTO
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/analytics/spend [get]
func (h *AnalyticsHandler) GetSpendSummary(c *fiber.Ctx) error {
	start := c.Query("start")
	end := c.Query("end")
	if start == "" || end == "" {
		return badRequest(c, "MISSING_RANGE", "parámetros start y end (YYYY-MM-DD) son requeridos")
	}
	out, err := h.uc.GetSummary(c.Context(), start, end)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetMonthlyBurn godoc
// @Summary      Gasto total por mes calendario (últimos n meses con datos)
// @Tags         analytics
// @Produce      json
// @Param        months  query  int  false  "Cantidad de meses"  default(6)
// @Success      200     {array}  dto.MonthlyBurnDTO
// @Router       /api/analytics/burn [get]
func (h *AnalyticsHandler) GetMonthlyBurn(c *fiber.Ctx) error {
	months := c.QueryInt("months", 6)
	out, err := h.uc.GetMonthlyBurn(c.Context(), months)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

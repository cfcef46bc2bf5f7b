package http

import (
	"github.com/gofiber/fiber/v2"

	appassembly "github.com/misulabs/misu-erp/internal/application/assembly"
	"github.com/misulabs/misu-erp/internal/application/dto"
)

// AssemblyHandler maneja el endpoint de ensamblaje y la lectura de cantidad
// máxima construible.
type AssemblyHandler struct {
	uc *appassembly.UseCase
}

// NewAssemblyHandler construye el handler.
func NewAssemblyHandler(uc *appassembly.UseCase) *AssemblyHandler {
	return &AssemblyHandler{uc: uc}
}

// Assemble godoc
// @Summary      Ensamblar unidades de un producto consumiendo su BOM
// @Tags         assembly
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.AssembleRequest  true  "Cantidad a ensamblar"
// @Success      200   {object}  dto.AssembleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/assemble [post]
func (h *AssemblyHandler) Assemble(c *fiber.Ctx) error {
	var in dto.AssembleRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	result, err := h.uc.Assemble(c.Context(), c.Params("id"), in.Quantity)
	if err != nil {
		return respondError(c, err)
	}

	consumed := make([]dto.ConsumedLineDTO, 0, len(result.Consumed))
	for _, r := range result.Consumed {
		consumed = append(consumed, dto.ConsumedLineDTO{
			ComponentID:   r.ComponentID,
			ComponentName: r.ComponentName,
			Consumed:      r.Required,
			Remaining:     r.Available.Sub(r.Required),
		})
	}
	return c.JSON(dto.AssembleResponse{
		ProductID:       result.ProductID,
		Quantity:        result.Quantity,
		NewProductStock: result.NewProductStock,
		Consumed:        consumed,
	})
}

// MaxBuildable godoc
// @Summary      Cantidad máxima construible con el stock actual
// @Tags         assembly
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.MaxBuildableResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/max-buildable [get]
func (h *AssemblyHandler) MaxBuildable(c *fiber.Ctx) error {
	productID := c.Params("id")
	max, err := h.uc.MaxBuildable(c.Context(), productID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MaxBuildableResponse{ProductID: productID, MaxBuildable: max})
}

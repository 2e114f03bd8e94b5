package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ecommerce-dashboard-api/internal/application/usecase"
)

// PostalHandler consulta de direcciones por CEP.
type PostalHandler struct {
	uc *usecase.PostalUseCase
}

// NewPostalHandler construye el handler.
func NewPostalHandler(uc *usecase.PostalUseCase) *PostalHandler {
	return &PostalHandler{uc: uc}
}

// Lookup godoc
// @Summary      Dirección de un CEP
// @Tags         postal-codes
// @Produce      json
// @Param        cep  path  string  true  "CEP (con o sin guion)"
// @Success      200  {object}  dto.AddressResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/postal-codes/{cep} [get]
func (h *PostalHandler) Lookup(c *fiber.Ctx) error {
	out, err := h.uc.Lookup(c.UserContext(), c.Params("cep"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Health godoc
// @Summary      Estado del servicio de CEP (consulta un CEP conocido)
// @Tags         postal-codes
// @Produce      json
// @Success      200  {object}  dto.PostalHealthResponse
// @Router       /api/postal-codes/health [get]
func (h *PostalHandler) Health(c *fiber.Ctx) error {
	return c.JSON(h.uc.Health(c.UserContext()))
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/catamarca-comercio/registro-exportadores/internal/application/consulta"
)

// DashboardHandler expone los contadores agregados del tablero.
type DashboardHandler struct {
	uc *consulta.UseCase
}

// NewDashboardHandler construye el handler del tablero.
func NewDashboardHandler(uc *consulta.UseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Resumen godoc
// @Summary      Contadores del tablero de la dirección
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Router       /api/dashboard [get]
// @Security     BearerAuth
func (h *DashboardHandler) Resumen(c *fiber.Ctx) error {
	out, err := h.uc.Dashboard(c.Context())
	if err != nil {
		return respuestaError(c, err)
	}
	return c.JSON(out)
}

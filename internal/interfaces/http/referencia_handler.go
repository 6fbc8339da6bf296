package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/catamarca-comercio/registro-exportadores/internal/application/referencia"
)

// ReferenciaHandler expone la taxonomía de rubros y su saneamiento.
type ReferenciaHandler struct {
	uc *referencia.UseCase
}

// NewReferenciaHandler construye el handler de datos de referencia.
func NewReferenciaHandler(uc *referencia.UseCase) *ReferenciaHandler {
	return &ReferenciaHandler{uc: uc}
}

// ListarRubros godoc
// @Summary      Listar rubros con sus subrubros
// @Tags         referencia
// @Produce      json
// @Success      200  {array}  dto.RubroResponse
// @Router       /api/rubros [get]
func (h *ReferenciaHandler) ListarRubros(c *fiber.Ctx) error {
	out, err := h.uc.ListarRubros(c.Context())
	if err != nil {
		return respuestaError(c, err)
	}
	return c.JSON(out)
}

// SanearRubros godoc
// @Summary      Fusionar rubros duplicados
// @Tags         referencia
// @Produce      json
// @Success      200  {object}  referencia.ResultadoSaneamiento
// @Router       /api/rubros/sanear [post]
// @Security     BearerAuth
func (h *ReferenciaHandler) SanearRubros(c *fiber.Ctx) error {
	out, err := h.uc.SanearRubros(c.Context())
	if err != nil {
		return respuestaError(c, err)
	}
	return c.JSON(out)
}

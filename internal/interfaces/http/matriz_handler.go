package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/catamarca-comercio/registro-exportadores/internal/application/dto"
	"github.com/catamarca-comercio/registro-exportadores/internal/application/matriz"
	"github.com/catamarca-comercio/registro-exportadores/internal/domain/entity"
)

// MatrizHandler expone la matriz de clasificación exportadora.
type MatrizHandler struct {
	uc *matriz.UseCase
}

// NewMatrizHandler construye el handler de la matriz.
func NewMatrizHandler(uc *matriz.UseCase) *MatrizHandler {
	return &MatrizHandler{uc: uc}
}

// Obtener godoc
// @Summary      Matriz persistida de una empresa
// @Tags         matriz
// @Produce      json
// @Param        id  path  string  true  "id de la empresa"
// @Success      200  {object}  dto.MatrizResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/matriz/empresa/{id} [get]
// @Security     BearerAuth
func (h *MatrizHandler) Obtener(c *fiber.Ctx) error {
	m, err := h.uc.Obtener(c.Context(), c.Params("id"))
	if err != nil {
		return respuestaError(c, err)
	}
	return c.JSON(aMatrizResponse(m))
}

// Calcular godoc
// @Summary      Calcular los puntajes sin persistirlos
// @Tags         matriz
// @Produce      json
// @Param        id  path  string  true  "id de la empresa"
// @Success      200  {object}  dto.MatrizResponse
// @Router       /api/matriz/calcular-puntajes/{id} [get]
// @Security     BearerAuth
func (h *MatrizHandler) Calcular(c *fiber.Ctx) error {
	out, err := h.uc.CalcularSinPersistir(c.Context(), c.Params("id"))
	if err != nil {
		return respuestaError(c, err)
	}
	return c.JSON(out)
}

// Clasificar godoc
// @Summary      Clasificar una empresa y persistir el resultado
// @Tags         matriz
// @Produce      json
// @Param        id  path  string  true  "id de la empresa"
// @Success      200  {object}  dto.MatrizResponse
// @Router       /api/matriz/clasificar/{id} [post]
// @Security     BearerAuth
func (h *MatrizHandler) Clasificar(c *fiber.Ctx) error {
	m, err := h.uc.ClasificarEmpresa(c.Context(), c.Params("id"), UsuarioActual(c).ID)
	if err != nil {
		return respuestaError(c, err)
	}
	return c.JSON(aMatrizResponse(m))
}

// CargaManual godoc
// @Summary      Cargar los nueve criterios a mano
// @Tags         matriz
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MatrizManualRequest  true  "criterios"
// @Success      200   {object}  dto.MatrizResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/matriz [post]
// @Security     BearerAuth
func (h *MatrizHandler) CargaManual(c *fiber.Ctx) error {
	var in dto.MatrizManualRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	m, err := h.uc.CargaManual(c.Context(), UsuarioActual(c).ID, in)
	if err != nil {
		return respuestaError(c, err)
	}
	return c.JSON(aMatrizResponse(m))
}

func aMatrizResponse(m *entity.MatrizClasificacion) *dto.MatrizResponse {
	return &dto.MatrizResponse{
		EmpresaID: m.EmpresaID,

		ExperienciaExportadora:  m.ExperienciaExportadora,
		VolumenProduccion:       m.VolumenProduccion,
		PresenciaDigital:        m.PresenciaDigital,
		PosicionArancelaria:     m.PosicionArancelaria,
		ParticipacionInternac:   m.ParticipacionInternac,
		EstructuraInterna:       m.EstructuraInterna,
		InteresExportador:       m.InteresExportador,
		CertificacionesNac:      m.CertificacionesNac,
		CertificacionesInternac: m.CertificacionesInternac,

		PuntajeTotal: m.PuntajeTotal,
		Categoria:    m.Categoria,

		EvaluadoPor:     m.EvaluadoPor,
		FechaEvaluacion: m.FechaEvaluacion,
		Observaciones:   m.Observaciones,
	}
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/catamarca-comercio/registro-exportadores/internal/application/dto"
	"github.com/catamarca-comercio/registro-exportadores/internal/domain/entity"
	"github.com/catamarca-comercio/registro-exportadores/internal/domain/repository"
)

// AuditoriaHandler expone el log de auditoría para administradores.
type AuditoriaHandler struct {
	repo repository.AuditoriaRepository
}

// NewAuditoriaHandler construye el handler de auditoría.
func NewAuditoriaHandler(repo repository.AuditoriaRepository) *AuditoriaHandler {
	return &AuditoriaHandler{repo: repo}
}

// Listar godoc
// @Summary      Listar el log de auditoría
// @Tags         auditoria
// @Produce      json
// @Param        modelo     query  string  false  "filtrar por modelo"
// @Param        objeto_id  query  string  false  "filtrar por objeto"
// @Success      200  {array}  dto.AuditoriaLogResponse
// @Router       /api/auditoria [get]
// @Security     BearerAuth
func (h *AuditoriaHandler) Listar(c *fiber.Ctx) error {
	var in dto.ListarAuditoriaRequest
	if err := c.QueryParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	in.DefaultPage()

	var (
		entradas []*entity.AuditoriaLog
		err      error
	)
	if in.Modelo != "" && in.ObjetoID != "" {
		entradas, err = h.repo.ListByObjeto(c.Context(), in.Modelo, in.ObjetoID, in.Limit)
	} else {
		entradas, err = h.repo.List(c.Context(), in.Limit, in.Offset)
	}
	if err != nil {
		return respuestaError(c, err)
	}

	out := make([]dto.AuditoriaLogResponse, 0, len(entradas))
	for _, e := range entradas {
		out = append(out, dto.AuditoriaLogResponse{
			ID:           e.ID,
			Fecha:        e.Fecha,
			UsuarioID:    e.UsuarioID,
			Accion:       e.Accion,
			Modelo:       e.Modelo,
			ObjetoID:     e.ObjetoID,
			ObjetoNombre: e.ObjetoNombre,
			Descripcion:  e.Descripcion,
			URL:          e.URL,
			Metodo:       e.Metodo,
			Categoria:    e.Categoria,
			Criticidad:   e.Criticidad,
			Exitoso:      e.Exitoso,
		})
	}
	return c.JSON(out)
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/catamarca-comercio/registro-exportadores/internal/application/dto"
	"github.com/catamarca-comercio/registro-exportadores/internal/application/usuario"
)

// UsuarioHandler administra las cuentas del sistema.
type UsuarioHandler struct {
	uc *usuario.UseCase
}

// NewUsuarioHandler construye el handler de usuarios.
func NewUsuarioHandler(uc *usuario.UseCase) *UsuarioHandler {
	return &UsuarioHandler{uc: uc}
}

// Listar godoc
// @Summary      Listar cuentas de usuario
// @Tags         usuarios
// @Produce      json
// @Success      200  {array}  dto.UsuarioResponse
// @Router       /api/usuarios [get]
// @Security     BearerAuth
func (h *UsuarioHandler) Listar(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return cuerpoInvalido(c)
	}
	page.DefaultPage()

	out, err := h.uc.Listar(c.Context(), page)
	if err != nil {
		return respuestaError(c, err)
	}
	return c.JSON(out)
}

// Crear godoc
// @Summary      Crear una cuenta interna
// @Tags         usuarios
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CrearUsuarioRequest  true  "datos de la cuenta"
// @Success      201   {object}  dto.UsuarioResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/usuarios [post]
// @Security     BearerAuth
func (h *UsuarioHandler) Crear(c *fiber.Ctx) error {
	var in dto.CrearUsuarioRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	out, err := h.uc.Crear(c.Context(), UsuarioActual(c).ID, in)
	if err != nil {
		return respuestaError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Desactivar godoc
// @Summary      Desactivar una cuenta
// @Tags         usuarios
// @Produce      json
// @Param        id  path  string  true  "id del usuario"
// @Success      200  {object}  map[string]string
// @Router       /api/usuarios/{id}/desactivar [post]
// @Security     BearerAuth
func (h *UsuarioHandler) Desactivar(c *fiber.Ctx) error {
	if err := h.uc.Desactivar(c.Context(), UsuarioActual(c).ID, c.Params("id")); err != nil {
		return respuestaError(c, err)
	}
	return c.JSON(fiber.Map{"mensaje": "cuenta desactivada"})
}

// Activar godoc
// @Summary      Reactivar una cuenta
// @Tags         usuarios
// @Produce      json
// @Param        id  path  string  true  "id del usuario"
// @Success      200  {object}  map[string]string
// @Router       /api/usuarios/{id}/activar [post]
// @Security     BearerAuth
func (h *UsuarioHandler) Activar(c *fiber.Ctx) error {
	if err := h.uc.Activar(c.Context(), UsuarioActual(c).ID, c.Params("id")); err != nil {
		return respuestaError(c, err)
	}
	return c.JSON(fiber.Map{"mensaje": "cuenta activada"})
}

// ListarRoles godoc
// @Summary      Listar roles con sus capacidades
// @Tags         usuarios
// @Produce      json
// @Success      200  {array}  dto.RolResponse
// @Router       /api/usuarios/roles [get]
// @Security     BearerAuth
func (h *UsuarioHandler) ListarRoles(c *fiber.Ctx) error {
	roles, err := h.uc.ListarRoles(c.Context())
	if err != nil {
		return respuestaError(c, err)
	}
	out := make([]dto.RolResponse, 0, len(roles))
	for _, r := range roles {
		out = append(out, dto.RolResponse{
			ID:          r.ID,
			Nombre:      r.Nombre,
			Capacidades: int(r.Capacidades),
			NivelAcceso: r.NivelAcceso,
		})
	}
	return c.JSON(out)
}

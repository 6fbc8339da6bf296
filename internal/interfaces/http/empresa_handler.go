package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/catamarca-comercio/registro-exportadores/internal/application/autorizacion"
	"github.com/catamarca-comercio/registro-exportadores/internal/application/consulta"
	"github.com/catamarca-comercio/registro-exportadores/internal/application/dto"
	"github.com/catamarca-comercio/registro-exportadores/internal/application/empresa"
)

// EmpresaHandler maneja el padrón aprobado: listados, ficha, edición,
// productos, servicios y exportación a PDF.
type EmpresaHandler struct {
	consultas *consulta.UseCase
	empresas  *empresa.UseCase
	gate      *autorizacion.Gate
	pdf       consulta.PadronPDFGenerator
}

// NewEmpresaHandler construye el handler de empresas.
func NewEmpresaHandler(consultas *consulta.UseCase, empresas *empresa.UseCase, gate *autorizacion.Gate, pdf consulta.PadronPDFGenerator) *EmpresaHandler {
	return &EmpresaHandler{consultas: consultas, empresas: empresas, gate: gate, pdf: pdf}
}

// Listar godoc
// @Summary      Listar el padrón de empresas aprobadas
// @Tags         empresas
// @Produce      json
// @Success      200  {object}  dto.EmpresaListResponse
// @Router       /api/empresas/aprobadas [get]
// @Security     BearerAuth
func (h *EmpresaHandler) Listar(c *fiber.Ctx) error {
	var in dto.ListarEmpresasRequest
	if err := c.QueryParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	out, err := h.consultas.Listar(c.Context(), UsuarioActual(c), in)
	if err != nil {
		return respuestaError(c, err)
	}
	return c.JSON(out)
}

// Crear godoc
// @Summary      Alta directa de una empresa en el padrón
// @Tags         empresas
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CrearEmpresaRequest  true  "datos de la empresa"
// @Success      201   {object}  dto.EmpresaDetalleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/empresas [post]
// @Security     BearerAuth
func (h *EmpresaHandler) Crear(c *fiber.Ctx) error {
	var in dto.CrearEmpresaRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	e, err := h.empresas.Crear(c.Context(), UsuarioActual(c).ID, in)
	if err != nil {
		return respuestaError(c, err)
	}
	out, err := h.consultas.Detalle(c.Context(), UsuarioActual(c), e.ID)
	if err != nil {
		return respuestaError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ExportarPDF godoc
// @Summary      Exportar el padrón filtrado a PDF
// @Tags         empresas
// @Produce      application/pdf
// @Param        campos  query  []string  false  "campos a incluir (repetible)"
// @Success      200  {file}  binary
// @Router       /api/empresas/aprobadas/exportar_pdf [get]
// @Security     BearerAuth
func (h *EmpresaHandler) ExportarPDF(c *fiber.Ctx) error {
	var in dto.ExportarPDFRequest
	if err := c.QueryParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	filas, err := h.consultas.FilasExport(c.Context(), in)
	if err != nil {
		return respuestaError(c, err)
	}
	pdfBytes, err := h.pdf.GenerarPadron(c.Context(), filas)
	if err != nil {
		return respuestaError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="padron-exportadores.pdf"`)
	return c.Send(pdfBytes)
}

// Detalle godoc
// @Summary      Ficha completa de una empresa
// @Tags         empresas
// @Produce      json
// @Param        id  path  string  true  "id de la empresa"
// @Success      200  {object}  dto.EmpresaDetalleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/empresas/{id} [get]
// @Security     BearerAuth
func (h *EmpresaHandler) Detalle(c *fiber.Ctx) error {
	out, err := h.consultas.Detalle(c.Context(), UsuarioActual(c), c.Params("id"))
	if err != nil {
		return respuestaError(c, err)
	}
	return c.JSON(out)
}

// Actualizar godoc
// @Summary      Actualizar una empresa (dueño o editor)
// @Tags         empresas
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "id de la empresa"
// @Param        body  body  dto.ActualizarEmpresaRequest  true  "campos a modificar"
// @Success      200   {object}  dto.EmpresaDetalleResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/empresas/{id} [put]
// @Security     BearerAuth
func (h *EmpresaHandler) Actualizar(c *fiber.Ctx) error {
	var in dto.ActualizarEmpresaRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}

	e, err := h.empresas.Obtener(c.Context(), c.Params("id"))
	if err != nil {
		return respuestaError(c, err)
	}
	if err := h.gate.ExigirEdicionEmpresa(c.Context(), contexto(c), e); err != nil {
		return respuestaError(c, err)
	}

	if _, err := h.empresas.Actualizar(c.Context(), UsuarioActual(c).ID, e.ID, in); err != nil {
		return respuestaError(c, err)
	}
	return h.Detalle(c)
}

// Eliminar godoc
// @Summary      Eliminar una empresa con sus hijos
// @Tags         empresas
// @Produce      json
// @Param        id  path  string  true  "id de la empresa"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/empresas/{id} [delete]
// @Security     BearerAuth
func (h *EmpresaHandler) Eliminar(c *fiber.Ctx) error {
	if err := h.empresas.Eliminar(c.Context(), UsuarioActual(c).ID, c.Params("id")); err != nil {
		return respuestaError(c, err)
	}
	return c.JSON(fiber.Map{"mensaje": "empresa eliminada"})
}

// ─── Productos ───────────────────────────────────────────────────────────────

// ListarProductos devuelve los productos de la empresa.
func (h *EmpresaHandler) ListarProductos(c *fiber.Ctx) error {
	if err := h.autorizarLectura(c); err != nil {
		return respuestaError(c, err)
	}
	out, err := h.empresas.ListarProductos(c.Context(), c.Params("id"))
	if err != nil {
		return respuestaError(c, err)
	}
	return c.JSON(out)
}

// AgregarProducto da de alta un producto (dueño o administrador).
func (h *EmpresaHandler) AgregarProducto(c *fiber.Ctx) error {
	var in dto.ProductoRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	if err := h.autorizarHijos(c); err != nil {
		return respuestaError(c, err)
	}
	p, err := h.empresas.AgregarProducto(c.Context(), UsuarioActual(c).ID, c.Params("id"), in)
	if err != nil {
		return respuestaError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(p)
}

// ActualizarProducto edita un producto existente de la empresa.
func (h *EmpresaHandler) ActualizarProducto(c *fiber.Ctx) error {
	var in dto.ProductoRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	if err := h.autorizarHijos(c); err != nil {
		return respuestaError(c, err)
	}
	p, err := h.empresas.ActualizarProducto(c.Context(), UsuarioActual(c).ID, c.Params("id"), c.Params("productoId"), in)
	if err != nil {
		return respuestaError(c, err)
	}
	return c.JSON(p)
}

// EliminarProducto borra un producto de la empresa.
func (h *EmpresaHandler) EliminarProducto(c *fiber.Ctx) error {
	if err := h.autorizarHijos(c); err != nil {
		return respuestaError(c, err)
	}
	if err := h.empresas.EliminarProducto(c.Context(), UsuarioActual(c).ID, c.Params("id"), c.Params("productoId")); err != nil {
		return respuestaError(c, err)
	}
	return c.JSON(fiber.Map{"mensaje": "producto eliminado"})
}

// ─── Servicios ───────────────────────────────────────────────────────────────

// ListarServicios devuelve los servicios de la empresa.
func (h *EmpresaHandler) ListarServicios(c *fiber.Ctx) error {
	if err := h.autorizarLectura(c); err != nil {
		return respuestaError(c, err)
	}
	out, err := h.empresas.ListarServicios(c.Context(), c.Params("id"))
	if err != nil {
		return respuestaError(c, err)
	}
	return c.JSON(out)
}

// AgregarServicio da de alta un servicio (dueño o administrador).
func (h *EmpresaHandler) AgregarServicio(c *fiber.Ctx) error {
	var in dto.ServicioRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	if err := h.autorizarHijos(c); err != nil {
		return respuestaError(c, err)
	}
	s, err := h.empresas.AgregarServicio(c.Context(), UsuarioActual(c).ID, c.Params("id"), in)
	if err != nil {
		return respuestaError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(s)
}

// EliminarServicio borra un servicio de la empresa.
func (h *EmpresaHandler) EliminarServicio(c *fiber.Ctx) error {
	if err := h.autorizarHijos(c); err != nil {
		return respuestaError(c, err)
	}
	if err := h.empresas.EliminarServicio(c.Context(), UsuarioActual(c).ID, c.Params("id"), c.Params("servicioId")); err != nil {
		return respuestaError(c, err)
	}
	return c.JSON(fiber.Map{"mensaje": "servicio eliminado"})
}

// autorizarHijos carga la empresa padre y aplica la regla de gestión de
// productos y servicios.
func (h *EmpresaHandler) autorizarHijos(c *fiber.Ctx) error {
	e, err := h.empresas.Obtener(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return h.gate.ExigirGestionHijos(c.Context(), contexto(c), e)
}

// autorizarLectura aplica la visibilidad por rol sobre la ficha: los roles
// internos leen cualquier empresa, el rol Empresa solo la propia.
func (h *EmpresaHandler) autorizarLectura(c *fiber.Ctx) error {
	_, err := h.consultas.Detalle(c.Context(), UsuarioActual(c), c.Params("id"))
	return err
}

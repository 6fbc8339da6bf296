package http

import (
	"encoding/json"
	"mime/multipart"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/catamarca-comercio/registro-exportadores/internal/application/dto"
	"github.com/catamarca-comercio/registro-exportadores/internal/application/solicitud"
	"github.com/catamarca-comercio/registro-exportadores/internal/domain/entity"
	"github.com/catamarca-comercio/registro-exportadores/internal/infrastructure/storage"
)

// SolicitudHandler maneja el registro público y el ciclo de revisión.
type SolicitudHandler struct {
	uc      *solicitud.UseCase
	archivo *storage.Local
}

// NewSolicitudHandler construye el handler de solicitudes.
func NewSolicitudHandler(uc *solicitud.UseCase, archivo *storage.Local) *SolicitudHandler {
	return &SolicitudHandler{uc: uc, archivo: archivo}
}

// Registrar godoc
// @Summary      Presentar una solicitud de registro (público)
// @Tags         solicitudes
// @Accept       json
// @Accept       multipart/form-data
// @Produce      json
// @Success      201  {object}  dto.RegistrarSolicitudResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/solicitudes [post]
func (h *SolicitudHandler) Registrar(c *fiber.Ctx) error {
	var in dto.RegistrarSolicitudRequest
	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		var err error
		in, err = h.registroDesdeMultipart(c)
		if err != nil {
			return cuerpoInvalido(c)
		}
	} else if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}

	out, err := h.uc.Registrar(c.Context(), in)
	if err != nil {
		return respuestaError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// registroDesdeMultipart arma el request desde un form multipart: escalares
// por FormValue, bloques anidados como strings JSON y adjuntos al storage.
func (h *SolicitudHandler) registroDesdeMultipart(c *fiber.Ctx) (dto.RegistrarSolicitudRequest, error) {
	in := dto.RegistrarSolicitudRequest{
		RazonSocial:          c.FormValue("razon_social"),
		NombreFantasia:       c.FormValue("nombre_fantasia"),
		TipoSociedad:         c.FormValue("tipo_sociedad"),
		CUIT:                 c.FormValue("cuit"),
		Direccion:            c.FormValue("direccion"),
		CodigoPostal:         c.FormValue("codigo_postal"),
		Departamento:         c.FormValue("departamento"),
		Municipio:            c.FormValue("municipio"),
		Localidad:            c.FormValue("localidad"),
		Latitud:              c.FormValue("latitud"),
		Longitud:             c.FormValue("longitud"),
		Telefono:             c.FormValue("telefono"),
		Correo:               c.FormValue("correo"),
		SitioWeb:             c.FormValue("sitioweb"),
		RedesSociales:        c.FormValue("redes_sociales"),
		TipoEmpresa:          c.FormValue("tipo_empresa"),
		RubroPrincipal:       c.FormValue("rubro_principal"),
		SubRubro:             c.FormValue("sub_rubro"),
		TipoEmpresaRef:       c.FormValue("tipo_empresa_ref"),
		DescripcionActividad: c.FormValue("descripcion_actividad"),

		Exporta:               c.FormValue("exporta"),
		DestinoExporta:        c.FormValue("destinoexporta"),
		TipoExportacion:       c.FormValue("tipo_exportacion"),
		TipoImportacion:       c.FormValue("tipo_importacion"),
		FrecuenciaImportacion: c.FormValue("frecuencia_importacion"),
		Certificaciones:       c.FormValue("certificaciones"),
		IdiomasTrabaja:        c.FormValue("idiomas_trabaja"),

		Importa:                 boolFlex(c.FormValue("importa")),
		CertificadoPyme:         boolFlex(c.FormValue("certificado_pyme")),
		CertificacionesInternac: boolFlex(c.FormValue("certificaciones_internacionales")),
		Promo2Idiomas:           boolFlex(c.FormValue("material_promocional_idiomas")),
		InteresExportar:         boolFlex(c.FormValue("interes_exportar")),
	}

	if err := anidadoJSON(c.FormValue("contacto_principal"), &in.ContactoPrincipal); err != nil {
		return in, err
	}
	if err := anidadoJSON(c.FormValue("contactos_secundarios"), &in.ContactosSecundarios); err != nil {
		return in, err
	}
	if err := anidadoJSON(c.FormValue("productos"), &in.Productos); err != nil {
		return in, err
	}
	if err := anidadoJSON(c.FormValue("servicios"), &in.Servicios); err != nil {
		return in, err
	}
	if err := anidadoJSON(c.FormValue("actividades_promocion"), &in.Actividades); err != nil {
		return in, err
	}

	ahora := time.Now()
	var err error
	if in.CatalogoPath, err = h.guardarAdjunto(c, "catalogo", func(fh *multipart.FileHeader) string {
		return storage.RutaCatalogo(in.RazonSocial, fh.Filename, ahora)
	}); err != nil {
		return in, err
	}
	if in.LogoPath, err = h.guardarAdjunto(c, "logo", func(fh *multipart.FileHeader) string {
		return storage.RutaArchivo("logos", in.RazonSocial, fh.Filename, ahora)
	}); err != nil {
		return in, err
	}
	if in.ArchivoCertsPath, err = h.guardarAdjunto(c, "archivo_certificaciones", func(fh *multipart.FileHeader) string {
		return storage.RutaArchivo("certificaciones", in.RazonSocial, fh.Filename, ahora)
	}); err != nil {
		return in, err
	}
	if in.ArchivoFeriasPath, err = h.guardarAdjunto(c, "archivo_ferias", func(fh *multipart.FileHeader) string {
		return storage.RutaArchivo("ferias", in.RazonSocial, fh.Filename, ahora)
	}); err != nil {
		return in, err
	}
	return in, nil
}

// guardarAdjunto persiste un archivo opcional del form y devuelve su ruta.
// Campo ausente no es error.
func (h *SolicitudHandler) guardarAdjunto(c *fiber.Ctx, campo string, ruta func(*multipart.FileHeader) string) (string, error) {
	fh, err := c.FormFile(campo)
	if err != nil || fh == nil {
		return "", nil
	}
	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()
	return h.archivo.Guardar(ruta(fh), f)
}

// ConfirmarEmail godoc
// @Summary      Confirmar el correo de una solicitud (público)
// @Tags         solicitudes
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "id de la solicitud"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/solicitudes/{id}/confirmar_email [post]
func (h *SolicitudHandler) ConfirmarEmail(c *fiber.Ctx) error {
	var in struct {
		Token string `json:"token"`
	}
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	if err := h.uc.ConfirmarEmail(c.Context(), c.Params("id"), in.Token); err != nil {
		return respuestaError(c, err)
	}
	return c.JSON(fiber.Map{"mensaje": "correo confirmado"})
}

// Listar godoc
// @Summary      Listar solicitudes por estado
// @Tags         solicitudes
// @Produce      json
// @Param        estado  query  string  false  "pendiente | en_revision | aprobada | rechazada"
// @Success      200  {array}  dto.SolicitudResponse
// @Router       /api/solicitudes [get]
// @Security     BearerAuth
func (h *SolicitudHandler) Listar(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return cuerpoInvalido(c)
	}
	page.DefaultPage()

	out, err := h.uc.Listar(c.Context(), c.Query("estado"), page)
	if err != nil {
		return respuestaError(c, err)
	}
	return c.JSON(out)
}

// Obtener godoc
// @Summary      Detalle de una solicitud
// @Tags         solicitudes
// @Produce      json
// @Param        id  path  string  true  "id de la solicitud"
// @Success      200  {object}  dto.SolicitudDetalleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/solicitudes/{id} [get]
// @Security     BearerAuth
func (h *SolicitudHandler) Obtener(c *fiber.Ctx) error {
	s, err := h.uc.Detalle(c.Context(), c.Params("id"))
	if err != nil {
		return respuestaError(c, err)
	}
	return c.JSON(s)
}

// TomarRevision godoc
// @Summary      Pasar una solicitud pendiente a revisión
// @Tags         solicitudes
// @Produce      json
// @Param        id  path  string  true  "id de la solicitud"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/solicitudes/{id}/revision [post]
// @Security     BearerAuth
func (h *SolicitudHandler) TomarRevision(c *fiber.Ctx) error {
	if err := h.uc.TomarEnRevision(c.Context(), c.Params("id"), UsuarioActual(c).ID); err != nil {
		return respuestaError(c, err)
	}
	return c.JSON(fiber.Map{"estado": entity.SolicitudEnRevision})
}

// DevolverPendiente godoc
// @Summary      Devolver una solicitud en revisión a pendiente
// @Tags         solicitudes
// @Produce      json
// @Param        id  path  string  true  "id de la solicitud"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/solicitudes/{id}/pendiente [post]
// @Security     BearerAuth
func (h *SolicitudHandler) DevolverPendiente(c *fiber.Ctx) error {
	if err := h.uc.DevolverAPendiente(c.Context(), c.Params("id")); err != nil {
		return respuestaError(c, err)
	}
	return c.JSON(fiber.Map{"estado": entity.SolicitudPendiente})
}

// Aprobar godoc
// @Summary      Aprobar una solicitud y materializar la empresa
// @Tags         solicitudes
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "id de la solicitud"
// @Param        body  body  dto.ResolverSolicitudRequest  false  "observaciones"
// @Success      200   {object}  dto.AprobarResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/solicitudes/{id}/aprobar [post]
// @Security     BearerAuth
func (h *SolicitudHandler) Aprobar(c *fiber.Ctx) error {
	var in dto.ResolverSolicitudRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return cuerpoInvalido(c)
		}
	}
	out, err := h.uc.Aprobar(c.Context(), c.Params("id"), UsuarioActual(c).ID, in)
	if err != nil {
		return respuestaError(c, err)
	}
	return c.JSON(out)
}

// Rechazar godoc
// @Summary      Rechazar una solicitud
// @Tags         solicitudes
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "id de la solicitud"
// @Param        body  body  dto.ResolverSolicitudRequest  false  "observaciones"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/solicitudes/{id}/rechazar [post]
// @Security     BearerAuth
func (h *SolicitudHandler) Rechazar(c *fiber.Ctx) error {
	var in dto.ResolverSolicitudRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return cuerpoInvalido(c)
		}
	}
	if err := h.uc.Rechazar(c.Context(), c.Params("id"), UsuarioActual(c).ID, in.Observaciones); err != nil {
		return respuestaError(c, err)
	}
	return c.JSON(fiber.Map{"estado": entity.SolicitudRechazada})
}

// anidadoJSON decodifica un bloque anidado enviado como string JSON en un
// campo del form. Campo vacío no es error.
func anidadoJSON(valor string, destino any) error {
	valor = strings.TrimSpace(valor)
	if valor == "" {
		return nil
	}
	return json.Unmarshal([]byte(valor), destino)
}

// boolFlex interpreta las variantes Sí/No del formulario público.
func boolFlex(valor string) dto.FlexBool {
	switch strings.ToLower(strings.TrimSpace(valor)) {
	case "sí", "si", "s", "y", "yes", "true", "1":
		return true
	}
	return false
}

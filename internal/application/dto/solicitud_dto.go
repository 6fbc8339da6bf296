package dto

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/catamarca-comercio/registro-exportadores/internal/domain/entity"
)

// FlexBool acepta booleanos JSON y las variantes "Sí"/"No"/"S"/"N"/"true"
// que envía el formulario público.
type FlexBool bool

// UnmarshalJSON implementa la tolerancia de formato del formulario.
func (b *FlexBool) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*b = false
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "sí", "si", "s", "y", "yes", "true", "1":
			*b = true
		default:
			*b = false
		}
		return nil
	}
	var v bool
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*b = FlexBool(v)
	return nil
}

// Bool devuelve el valor como bool nativo.
func (b FlexBool) Bool() bool { return bool(b) }

// ServiciosFlex acepta un array de servicios o un único objeto suelto
// (formularios viejos enviaban el servicio sin corchetes).
type ServiciosFlex []entity.ServicioJSON

// UnmarshalJSON implementa la tolerancia array-u-objeto.
func (s *ServiciosFlex) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*s = nil
		return nil
	}
	if data[0] == '{' {
		var uno entity.ServicioJSON
		if err := json.Unmarshal(data, &uno); err != nil {
			return err
		}
		*s = ServiciosFlex{uno}
		return nil
	}
	var varios []entity.ServicioJSON
	if err := json.Unmarshal(data, &varios); err != nil {
		return err
	}
	*s = ServiciosFlex(varios)
	return nil
}

// RegistrarSolicitudRequest es el payload público de presentación.
// Los campos anidados pueden llegar como strings JSON cuando el envío es
// multipart; el handler los decodifica antes de llamar al caso de uso.
type RegistrarSolicitudRequest struct {
	RazonSocial    string `json:"razon_social" validate:"required"`
	NombreFantasia string `json:"nombre_fantasia"`
	TipoSociedad   string `json:"tipo_sociedad"`
	CUIT           string `json:"cuit" validate:"required"`
	Direccion      string `json:"direccion"`
	CodigoPostal   string `json:"codigo_postal"`
	Departamento   string `json:"departamento"`
	Municipio      string `json:"municipio"`
	Localidad      string `json:"localidad"`
	Latitud        string `json:"latitud"`
	Longitud       string `json:"longitud"`
	Telefono       string `json:"telefono"`
	Correo         string `json:"correo" validate:"required,email"`
	SitioWeb       string `json:"sitioweb"`
	RedesSociales  string `json:"redes_sociales"`
	TipoEmpresa    string `json:"tipo_empresa" validate:"required,oneof=producto servicio mixta"`

	RubroPrincipal       string `json:"rubro_principal"`
	SubRubro             string `json:"sub_rubro"`
	TipoEmpresaRef       string `json:"tipo_empresa_ref"`
	DescripcionActividad string `json:"descripcion_actividad"`

	ContactoPrincipal    entity.ContactoJSON   `json:"contacto_principal"`
	ContactosSecundarios []entity.ContactoJSON `json:"contactos_secundarios"`

	Productos   []entity.ProductoJSON           `json:"productos"`
	Servicios   ServiciosFlex                   `json:"servicios"`
	Actividades []entity.ActividadPromocionJSON `json:"actividades_promocion"`

	Exporta               string   `json:"exporta"`
	DestinoExporta        string   `json:"destinoexporta"`
	TipoExportacion       string   `json:"tipo_exportacion"`
	Importa               FlexBool `json:"importa"`
	TipoImportacion       string   `json:"tipo_importacion"`
	FrecuenciaImportacion string   `json:"frecuencia_importacion"`

	CertificadoPyme         FlexBool `json:"certificado_pyme"`
	CertificacionesInternac FlexBool `json:"certificaciones_internacionales"`
	Certificaciones         string   `json:"certificaciones"`
	Promo2Idiomas           FlexBool `json:"material_promocional_idiomas"`
	IdiomasTrabaja          string   `json:"idiomas_trabaja"`
	InteresExportar         FlexBool `json:"interes_exportar"`

	// Rutas ya persistidas por el adaptador de storage (multipart).
	CatalogoPath      string `json:"-"`
	LogoPath          string `json:"-"`
	ArchivoCertsPath  string `json:"-"`
	ArchivoFeriasPath string `json:"-"`
}

// RegistrarSolicitudResponse salida del registro público.
type RegistrarSolicitudResponse struct {
	SolicitudID string `json:"solicitud_id"`
	Estado      string `json:"estado"`
	Mensaje     string `json:"mensaje"`
}

// ResolverSolicitudRequest cuerpo de aprobación o rechazo.
type ResolverSolicitudRequest struct {
	Observaciones string `json:"observaciones"`
}

// AprobarResponse salida de la aprobación.
type AprobarResponse struct {
	EmpresaID string `json:"empresa_id"`
}

// ConfirmarEmailRequest cuerpo de confirmación de correo.
type ConfirmarEmailRequest struct {
	Token string `json:"token" validate:"required"`
}

// SolicitudResponse salida resumida de una solicitud para los listados de
// revisión.
type SolicitudResponse struct {
	ID              string     `json:"id"`
	CUIT            string     `json:"cuit"`
	RazonSocial     string     `json:"razon_social"`
	TipoEmpresa     string     `json:"tipo_empresa"`
	Correo          string     `json:"correo"`
	Estado          string     `json:"estado"`
	EmailConfirmado bool       `json:"email_confirmado"`
	FechaCreacion   time.Time  `json:"fecha_creacion"`
	FechaAprobacion *time.Time `json:"fecha_aprobacion,omitempty"`
	EmpresaCreadaID *string    `json:"empresa_creada_id,omitempty"`
	Observaciones   string     `json:"observaciones,omitempty"`
}

// SolicitudDetalleResponse snapshot completo de la presentación para la
// pantalla de revisión. El token de confirmación nunca se expone.
type SolicitudDetalleResponse struct {
	SolicitudResponse

	NombreFantasia       string `json:"nombre_fantasia,omitempty"`
	TipoSociedad         string `json:"tipo_sociedad,omitempty"`
	Direccion            string `json:"direccion"`
	CodigoPostal         string `json:"codigo_postal"`
	Departamento         string `json:"departamento"`
	Municipio            string `json:"municipio"`
	Localidad            string `json:"localidad"`
	Latitud              string `json:"latitud,omitempty"`
	Longitud             string `json:"longitud,omitempty"`
	Telefono             string `json:"telefono"`
	SitioWeb             string `json:"sitio_web,omitempty"`
	RedesSociales        string `json:"redes_sociales,omitempty"`
	RubroPrincipal       string `json:"rubro_principal"`
	SubRubro             string `json:"sub_rubro,omitempty"`
	DescripcionActividad string `json:"descripcion_actividad,omitempty"`

	ContactoPrincipal    entity.ContactoJSON   `json:"contacto_principal"`
	ContactosSecundarios []entity.ContactoJSON `json:"contactos_secundarios,omitempty"`

	Exporta                 string `json:"exporta,omitempty"`
	DestinoExporta          string `json:"destino_exporta,omitempty"`
	TipoExportacion         string `json:"tipo_exportacion,omitempty"`
	Importa                 bool   `json:"importa"`
	TipoImportacion         string `json:"tipo_importacion,omitempty"`
	FrecuenciaImportacion   string `json:"frecuencia_importacion,omitempty"`
	CertificadoPyme         bool   `json:"certificado_pyme"`
	CertificacionesInternac bool   `json:"certificaciones_internacionales"`
	Certificaciones         string `json:"certificaciones,omitempty"`
	Promo2Idiomas           bool   `json:"promo_2_idiomas"`
	IdiomasTrabaja          string `json:"idiomas_trabaja,omitempty"`
	InteresExportar         bool   `json:"interes_exportar"`

	Productos   []entity.ProductoJSON           `json:"productos,omitempty"`
	Servicios   []entity.ServicioJSON           `json:"servicios,omitempty"`
	Actividades []entity.ActividadPromocionJSON `json:"actividades_promocion,omitempty"`

	CatalogoPath      string `json:"catalogo_path,omitempty"`
	LogoPath          string `json:"logo_path,omitempty"`
	ArchivoCertsPath  string `json:"archivo_certificaciones_path,omitempty"`
	ArchivoFeriasPath string `json:"archivo_ferias_path,omitempty"`
}

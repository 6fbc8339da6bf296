package entity

import "time"

// Estados del ciclo de vida de una Solicitud. La transición
// pendiente↔en_revision es reversible; aprobada y rechazada son terminales.
const (
	SolicitudPendiente  = "pendiente"
	SolicitudEnRevision = "en_revision"
	SolicitudAprobada   = "aprobada"
	SolicitudRechazada  = "rechazada"
)

// ContactoJSON es el bloque de contacto tal como llega en el formulario.
// El principal debe venir completo; los secundarios se limitan a dos.
type ContactoJSON struct {
	Nombre   string `json:"nombre"`
	Apellido string `json:"apellido"`
	Cargo    string `json:"cargo"`
	Telefono string `json:"telefono"`
	Email    string `json:"email"`
}

// Completo informa si todos los campos del bloque están presentes.
func (c ContactoJSON) Completo() bool {
	return c.Nombre != "" && c.Apellido != "" && c.Cargo != "" &&
		c.Telefono != "" && c.Email != ""
}

// Vacio informa si el bloque no trae ningún dato.
func (c ContactoJSON) Vacio() bool {
	return c.Nombre == "" && c.Apellido == "" && c.Cargo == "" &&
		c.Telefono == "" && c.Email == ""
}

// ProductoJSON es un producto declarado en el formulario, denormalizado hasta
// la aprobación (las solicitudes rechazadas no generan filas relacionales).
type ProductoJSON struct {
	Nombre              string `json:"nombre"`
	Descripcion         string `json:"descripcion"`
	CapacidadProductiva string `json:"capacidad_productiva"`
	UnidadMedida        string `json:"unidad_medida"`
	Periodo             string `json:"periodo"` // mensual, anual, semanal
	PosicionArancelaria string `json:"posicion_arancelaria"`
	EsPrincipal         bool   `json:"es_principal"`
}

// ServicioJSON es un servicio declarado en el formulario.
type ServicioJSON struct {
	Nombre                  string `json:"nombre"`
	Descripcion             string `json:"descripcion"`
	TipoServicio            string `json:"tipo_servicio"`
	SectorAtendido          string `json:"sector_atendido"`
	Alcance                 string `json:"alcance"` // local, nacional, internacional
	PaisesDestino           string `json:"paises_destino"`
	Idiomas                 string `json:"idiomas"`
	FormaContratacion       string `json:"forma_contratacion"`
	CertificacionesTecnicas string `json:"certificaciones_tecnicas"`
	ExportaServicios        bool   `json:"exporta_servicios"`
}

// Tipos de actividad de promoción internacional.
const (
	ActividadFeria  = "feria"
	ActividadRonda  = "ronda"
	ActividadMision = "mision"
)

// ActividadPromocionJSON es una actividad de promoción internacional declarada.
type ActividadPromocionJSON struct {
	Tipo          string `json:"tipo"` // feria, ronda, mision
	Lugar         string `json:"lugar"`
	Anio          int    `json:"anio"`
	Observaciones string `json:"observaciones"`
}

// Solicitud es una presentación de registro en espera de revisión.
// Identidad (CUIT, razón social) y el snapshot del formulario son inmutables;
// solo mutan el estado y los campos de resolución.
type Solicitud struct {
	ID                   string
	CUIT                 string // 11 dígitos
	RazonSocial          string
	NombreFantasia       string
	TipoSociedad         string
	TipoEmpresa          string // producto, servicio, mixta
	Direccion            string
	CodigoPostal         string
	Departamento         string // texto libre del formulario; se resuelve al aprobar
	Municipio            string
	Localidad            string
	Latitud              string
	Longitud             string
	Telefono             string
	Correo               string
	SitioWeb             string
	RedesSociales        string
	RubroPrincipal       string
	SubRubro             string
	TipoEmpresaRef       string // razón jurídica declarada (SRL, SA, cooperativa...)
	DescripcionActividad string

	ContactoPrincipal    ContactoJSON
	ContactosSecundarios []ContactoJSON // máx. 2

	Exporta                 string // Sí / No, solo mercado nacional / No, solo mercado local
	DestinoExporta          string
	TipoExportacion         string
	Importa                 bool
	TipoImportacion         string
	FrecuenciaImportacion   string
	CertificadoPyme         bool
	CertificacionesInternac bool
	Certificaciones         string
	Promo2Idiomas           bool
	IdiomasTrabaja          string
	InteresExportar         bool

	Productos   []ProductoJSON
	Servicios   []ServicioJSON
	Actividades []ActividadPromocionJSON

	CatalogoPath      string
	LogoPath          string
	ArchivoCertsPath  string
	ArchivoFeriasPath string

	TokenConfirmacion string // UUID para confirmar el correo
	EmailConfirmado   bool

	Estado          string
	UsuarioID       string  // cuenta creada/reutilizada en el registro
	AprobadoPor     *string // admin que resolvió
	FechaAprobacion *time.Time
	Observaciones   string
	EmpresaCreadaID *string // null hasta aprobar; set-null si la empresa se borra
	FechaCreacion   time.Time
}

// EsTerminal informa si la solicitud ya fue resuelta.
func (s *Solicitud) EsTerminal() bool {
	return s.Estado == SolicitudAprobada || s.Estado == SolicitudRechazada
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de empresa (discriminador de la tabla unificada, no tabla-por-clase).
const (
	TipoProducto = "producto"
	TipoServicio = "servicio"
	TipoMixta    = "mixta"
)

// Respuestas válidas para el campo exporta.
const (
	ExportaSi       = "Sí"
	ExportaNacional = "No, solo mercado nacional"
	ExportaLocal    = "No, solo mercado local"
)

// Contacto es un bloque de contacto persistido en la empresa.
// El principal es obligatorio; los dos secundarios son opcionales.
type Contacto struct {
	Nombre   string
	Apellido string
	Cargo    string
	Telefono string
	Email    string
}

// Vacio informa si el bloque no tiene datos.
func (c Contacto) Vacio() bool {
	return c.Nombre == "" && c.Apellido == "" && c.Cargo == "" &&
		c.Telefono == "" && c.Email == ""
}

// Empresa es el registro unificado de una compañía aprobada. El campo Tipo
// discrimina producto/servicio/mixta; los listados "solo producto" o "solo
// servicio" son alias de consulta sobre esta misma tabla, no colecciones aparte.
//
// Los campos que alimentan la matriz de clasificación (capacidad, sitio web,
// ferias, certificaciones) viven denormalizados acá para que el scorer lea
// una sola fila.
type Empresa struct {
	ID             string
	RazonSocial    string
	NombreFantasia string
	CUIT           string // único, 11 dígitos, inmutable después de crear
	TipoSociedad   string
	Tipo           string // producto, servicio, mixta

	Direccion      string
	CodigoPostal   string
	ProvinciaID    *int64
	DepartamentoID *int64
	MunicipioID    *int64
	LocalidadID    *int64
	Latitud        decimal.Decimal
	Longitud       decimal.Decimal
	GeoReferencia  string // texto libre

	Telefono      string
	Correo        string
	SitioWeb      string
	RedesSociales string

	ContactoPrincipal  Contacto // obligatorio
	ContactoSecundario Contacto
	ContactoTerciario  Contacto

	Exporta               string // ver constantes Exporta*
	DestinoExporta        string
	TipoExportacion       string
	Importa               bool
	TipoImportacion       string
	FrecuenciaImportacion string

	CertificadoPyme         bool
	CertificacionesInternac bool   // tiene certificaciones internacionales
	Certificaciones         string // texto libre separado por comas

	Promo2Idiomas   bool // material promocional en dos o más idiomas
	IdiomasTrabaja  string
	InteresExportar bool

	ParticipoFeriaNacional      bool
	ParticipoFeriaInternacional bool

	// Capacidad productiva declarada del producto principal, normalizable a
	// anual por PeriodoCapacidad para el criterio 2 de la matriz.
	CapacidadProductiva decimal.Decimal
	PeriodoCapacidad    string // mensual, anual, semanal

	RubroID       *int64
	SubRubroID    *int64
	TipoEmpresaID *int64

	DescripcionActividad string
	Observaciones        string

	LogoPath          string
	CatalogoPath      string
	ArchivoCertsPath  string
	ArchivoFeriasPath string

	UsuarioID          string // cuenta dueña (rol Empresa)
	CreadoPor          string
	ActualizadoPor     string
	FechaCreacion      time.Time
	FechaActualizacion time.Time
}

// AdmiteProductos informa si el tipo permite filas ProductoEmpresa.
func (e *Empresa) AdmiteProductos() bool {
	return e.Tipo == TipoProducto || e.Tipo == TipoMixta
}

// AdmiteServicios informa si el tipo permite filas ServicioEmpresa.
func (e *Empresa) AdmiteServicios() bool {
	return e.Tipo == TipoServicio || e.Tipo == TipoMixta
}

// EsPropietario informa si el usuario indicado es la cuenta dueña.
func (e *Empresa) EsPropietario(usuarioID string) bool {
	return usuarioID != "" && e.UsuarioID == usuarioID
}

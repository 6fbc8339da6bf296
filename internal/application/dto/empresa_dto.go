package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ContactoDTO bloque de contacto en entradas y salidas.
type ContactoDTO struct {
	Nombre   string `json:"nombre"`
	Apellido string `json:"apellido"`
	Cargo    string `json:"cargo"`
	Telefono string `json:"telefono"`
	Email    string `json:"email"`
}

// EmpresaResponse salida completa de una empresa.
type EmpresaResponse struct {
	ID             string `json:"id"`
	RazonSocial    string `json:"razon_social"`
	NombreFantasia string `json:"nombre_fantasia"`
	CUIT           string `json:"cuit"`
	TipoSociedad   string `json:"tipo_sociedad"`
	Tipo           string `json:"tipo_empresa"`

	Direccion     string          `json:"direccion"`
	CodigoPostal  string          `json:"codigo_postal"`
	Departamento  string          `json:"departamento,omitempty"`
	Municipio     string          `json:"municipio,omitempty"`
	Localidad     string          `json:"localidad,omitempty"`
	Latitud       decimal.Decimal `json:"latitud"`
	Longitud      decimal.Decimal `json:"longitud"`
	GeoReferencia string          `json:"geolocalizacion,omitempty"`

	Telefono      string `json:"telefono"`
	Correo        string `json:"correo"`
	SitioWeb      string `json:"sitioweb"`
	RedesSociales string `json:"redes_sociales"`

	ContactoPrincipal  ContactoDTO  `json:"contacto_principal"`
	ContactoSecundario *ContactoDTO `json:"contacto_secundario,omitempty"`
	ContactoTerciario  *ContactoDTO `json:"contacto_terciario,omitempty"`

	Exporta         string `json:"exporta"`
	DestinoExporta  string `json:"destinoexporta"`
	Importa         bool   `json:"importa"`
	CertificadoPyme bool   `json:"certificadopyme"`
	Certificaciones string `json:"certificaciones"`
	Promo2Idiomas   bool   `json:"promo2idiomas"`
	IdiomasTrabaja  string `json:"idiomas_trabaja"`
	InteresExportar bool   `json:"interes_exportar"`

	Rubro           string `json:"rubro_principal,omitempty"`
	CategoriaMatriz string `json:"categoria_matriz,omitempty"`
	Observaciones   string `json:"observaciones,omitempty"`

	FechaCreacion      time.Time `json:"fecha_creacion"`
	FechaActualizacion time.Time `json:"fecha_actualizacion"`
}

// ListarEmpresasRequest filtros del listado de empresas. Los listados "solo
// producto" y "solo servicio" se obtienen fijando TipoEmpresa.
type ListarEmpresasRequest struct {
	Busqueda        string    `query:"search"`
	TipoEmpresa     string    `query:"tipo_empresa"`
	Exporta         string    `query:"exporta"`
	Importa         *FlexBool `query:"importa"`
	CertificadoPyme *FlexBool `query:"certificadopyme"`
	Promo2Idiomas   *FlexBool `query:"promo2idiomas"`
	Rubro           *int64    `query:"rubro"`
	Departamento    *int64    `query:"departamento"`
	TipoSociedad    *int64    `query:"tipo_sociedad"`
	Categoria       string    `query:"categoria"`
	Orden           string    `query:"orden"`
	Descendente     bool      `query:"desc"`

	PageRequest
}

// EmpresaListResponse lista paginada de empresas.
type EmpresaListResponse struct {
	Items []EmpresaResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// ActualizarEmpresaRequest entrada de actualización. CUIT, fecha de creación
// y creador no figuran: son inmutables. Punteros para distinguir "no enviado".
type ActualizarEmpresaRequest struct {
	RazonSocial    *string `json:"razon_social"`
	NombreFantasia *string `json:"nombre_fantasia"`
	Direccion      *string `json:"direccion"`
	CodigoPostal   *string `json:"codigo_postal"`
	Telefono       *string `json:"telefono"`
	Correo         *string `json:"correo" validate:"omitempty,email"`
	SitioWeb       *string `json:"sitioweb"`
	RedesSociales  *string `json:"redes_sociales"`

	ContactoPrincipal  *ContactoDTO `json:"contacto_principal"`
	ContactoSecundario *ContactoDTO `json:"contacto_secundario"`
	ContactoTerciario  *ContactoDTO `json:"contacto_terciario"`

	Exporta         *string   `json:"exporta"`
	DestinoExporta  *string   `json:"destinoexporta"`
	Importa         *FlexBool `json:"importa"`
	CertificadoPyme *FlexBool `json:"certificadopyme"`
	Certificaciones *string   `json:"certificaciones"`
	Promo2Idiomas   *FlexBool `json:"promo2idiomas"`
	IdiomasTrabaja  *string   `json:"idiomas_trabaja"`
	InteresExportar *FlexBool `json:"interes_exportar"`
	Observaciones   *string   `json:"observaciones"`
}

// CrearEmpresaRequest alta directa de una empresa por personal de la
// dirección, sin pasar por el circuito de solicitudes. Los campos opcionales
// son los mismos de la edición.
type CrearEmpresaRequest struct {
	RazonSocial  string `json:"razon_social" validate:"required"`
	CUIT         string `json:"cuit" validate:"required"`
	TipoSociedad string `json:"tipo_sociedad"`
	TipoEmpresa  string `json:"tipo_empresa" validate:"required,oneof=producto servicio mixta"`
	UsuarioID    string `json:"usuario_id"`

	ActualizarEmpresaRequest
}

// ProductoRequest alta/edición de un producto de la empresa.
type ProductoRequest struct {
	Nombre              string          `json:"nombre" validate:"required"`
	Descripcion         string          `json:"descripcion"`
	CapacidadProductiva decimal.Decimal `json:"capacidad_productiva"`
	UnidadMedida        string          `json:"unidad_medida"`
	Periodo             string          `json:"periodo" validate:"omitempty,oneof=mensual anual semanal"`
	EsPrincipal         bool            `json:"es_principal"`
	Precio              decimal.Decimal `json:"precio"`
	Moneda              string          `json:"moneda"`
	PosicionArancelaria string          `json:"posicion_arancelaria"`
}

// ProductoResponse salida de un producto con su posición arancelaria si tiene.
type ProductoResponse struct {
	ID                  string          `json:"id"`
	Nombre              string          `json:"nombre"`
	Descripcion         string          `json:"descripcion"`
	CapacidadProductiva decimal.Decimal `json:"capacidad_productiva"`
	UnidadMedida        string          `json:"unidad_medida"`
	Periodo             string          `json:"periodo"`
	EsPrincipal         bool            `json:"es_principal"`
	Precio              decimal.Decimal `json:"precio"`
	Moneda              string          `json:"moneda"`
	PosicionArancelaria string          `json:"posicion_arancelaria,omitempty"`
}

// ServicioRequest alta/edición de un servicio de la empresa.
type ServicioRequest struct {
	Nombre                  string `json:"nombre" validate:"required"`
	Descripcion             string `json:"descripcion"`
	TipoServicio            string `json:"tipo_servicio"`
	SectorAtendido          string `json:"sector_atendido"`
	Alcance                 string `json:"alcance" validate:"omitempty,oneof=local nacional internacional"`
	PaisesDestino           string `json:"paises_destino"`
	ExportaServicios        bool   `json:"exporta_servicios"`
	FormaContratacion       string `json:"forma_contratacion"`
	CertificacionesTecnicas string `json:"certificaciones_tecnicas"`
	EquipoTecnico           bool   `json:"equipo_tecnico"`
	EquipoComercial         bool   `json:"equipo_comercial"`
}

// ServicioResponse salida de un servicio.
type ServicioResponse struct {
	ID                      string `json:"id"`
	Nombre                  string `json:"nombre"`
	Descripcion             string `json:"descripcion"`
	TipoServicio            string `json:"tipo_servicio"`
	SectorAtendido          string `json:"sector_atendido"`
	Alcance                 string `json:"alcance"`
	PaisesDestino           string `json:"paises_destino"`
	ExportaServicios        bool   `json:"exporta_servicios"`
	FormaContratacion       string `json:"forma_contratacion"`
	CertificacionesTecnicas string `json:"certificaciones_tecnicas"`
}

// EmpresaDetalleResponse detalle con hijos, matriz y cola de auditoría.
type EmpresaDetalleResponse struct {
	Empresa   EmpresaResponse    `json:"empresa"`
	Productos []ProductoResponse `json:"productos,omitempty"`
	Servicios []ServicioResponse `json:"servicios,omitempty"`
	Matriz    *MatrizResponse    `json:"matriz,omitempty"`
	Auditoria []AuditoriaEntrada `json:"auditoria,omitempty"`
}

// AuditoriaEntrada entrada resumida del registro de auditoría.
type AuditoriaEntrada struct {
	Fecha       time.Time `json:"fecha"`
	Accion      string    `json:"accion"`
	Descripcion string    `json:"descripcion"`
	UsuarioID   *string   `json:"usuario_id,omitempty"`
}

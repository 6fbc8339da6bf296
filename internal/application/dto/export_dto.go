package dto

// Secciones del PDF de exportación.
const (
	SeccionIdentidad = "identidad"
	SeccionContacto  = "contacto"
	SeccionComercial = "comercial"
)

// CampoExport describe un campo exportable: etiqueta visible y sección.
type CampoExport struct {
	Etiqueta string
	Seccion  string
}

// CamposExport es la whitelist de campos del PDF del padrón. La selección
// es dinámica (query param `campos` repetible) y está desacoplada del modelo:
// un campo fuera de esta tabla se ignora en silencio.
var CamposExport = map[string]CampoExport{
	"razon_social":     {"Razón social", SeccionIdentidad},
	"nombre_fantasia":  {"Nombre de fantasía", SeccionIdentidad},
	"cuit_cuil":        {"CUIT/CUIL", SeccionIdentidad},
	"tipo_sociedad":    {"Tipo de sociedad", SeccionIdentidad},
	"tipo_empresa":     {"Tipo de empresa", SeccionIdentidad},
	"fecha_creacion":   {"Fecha de alta", SeccionIdentidad},
	"rubro_principal":  {"Rubro principal", SeccionIdentidad},
	"categoria_matriz": {"Categoría exportadora", SeccionIdentidad},

	"departamento":                 {"Departamento", SeccionContacto},
	"municipio":                    {"Municipio", SeccionContacto},
	"localidad":                    {"Localidad", SeccionContacto},
	"direccion":                    {"Dirección", SeccionContacto},
	"codigo_postal":                {"Código postal", SeccionContacto},
	"provincia":                    {"Provincia", SeccionContacto},
	"geolocalizacion":              {"Geolocalización", SeccionContacto},
	"telefono":                     {"Teléfono", SeccionContacto},
	"correo":                       {"Correo", SeccionContacto},
	"sitioweb":                     {"Sitio web", SeccionContacto},
	"email_secundario":             {"Email secundario", SeccionContacto},
	"email_terciario":              {"Email terciario", SeccionContacto},
	"contacto_principal_nombre":    {"Contacto principal", SeccionContacto},
	"contacto_principal_cargo":     {"Cargo (principal)", SeccionContacto},
	"contacto_principal_telefono":  {"Teléfono (principal)", SeccionContacto},
	"contacto_principal_email":     {"Email (principal)", SeccionContacto},
	"contacto_secundario_nombre":   {"Contacto secundario", SeccionContacto},
	"contacto_secundario_cargo":    {"Cargo (secundario)", SeccionContacto},
	"contacto_secundario_telefono": {"Teléfono (secundario)", SeccionContacto},
	"contacto_secundario_email":    {"Email (secundario)", SeccionContacto},

	"exporta":          {"Exporta", SeccionComercial},
	"destinoexporta":   {"Destino de exportación", SeccionComercial},
	"importa":          {"Importa", SeccionComercial},
	"interes_exportar": {"Interés exportador", SeccionComercial},
	"certificadopyme":  {"Certificado MiPYME", SeccionComercial},
	"certificaciones":  {"Certificaciones", SeccionComercial},
	"promo2idiomas":    {"Material en 2+ idiomas", SeccionComercial},
	"idiomas_trabaja":  {"Idiomas de trabajo", SeccionComercial},
	"ferias":           {"Ferias", SeccionComercial},
	"rondas":           {"Rondas de negocio", SeccionComercial},
	"misiones":         {"Misiones comerciales", SeccionComercial},
	"observaciones":    {"Observaciones", SeccionComercial},
}

// ExportarPDFRequest filtros y selección de campos del PDF.
type ExportarPDFRequest struct {
	TipoEmpresa  string   `query:"tipo_empresa"`
	Exporta      string   `query:"exporta"`
	Departamento *int64   `query:"departamento"`
	Rubro        *int64   `query:"rubro"`
	Busqueda     string   `query:"search"`
	Campos       []string `query:"campos"`
}

// FilaExport es una empresa proyectada a los campos seleccionados,
// agrupados por sección.
type FilaExport struct {
	RazonSocial string
	Secciones   map[string][]ValorExport // sección -> campos en orden de selección
}

// ValorExport par etiqueta/valor de un campo seleccionado.
type ValorExport struct {
	Etiqueta string
	Valor    string
}

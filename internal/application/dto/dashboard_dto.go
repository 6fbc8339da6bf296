package dto

import "time"

// DashboardResponse agrega los contadores del tablero de la dirección.
type DashboardResponse struct {
	SolicitudesPorEstado map[string]int    `json:"solicitudes_por_estado"`
	EmpresasPorExporta   map[string]int    `json:"empresas_por_exporta"`
	EmpresasPorTipo      map[string]int    `json:"empresas_por_tipo"`
	EmpresasPorRubro     map[string]int    `json:"empresas_por_rubro"`
	EmpresasPorCategoria map[string]int    `json:"empresas_por_categoria"`
	ActividadReciente    int               `json:"actividad_reciente"` // altas últimos 30 días
	UltimasEmpresas      []EmpresaReciente `json:"ultimas_empresas"`
}

// EmpresaReciente empresa con anotación de categoría para el widget de
// últimas altas.
type EmpresaReciente struct {
	ID            string    `json:"id"`
	RazonSocial   string    `json:"razon_social"`
	Tipo          string    `json:"tipo_empresa"`
	Categoria     string    `json:"categoria,omitempty"`
	FechaCreacion time.Time `json:"fecha_creacion"`
}

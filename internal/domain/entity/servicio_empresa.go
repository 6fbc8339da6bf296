package entity

import "time"

// Tipos de servicio admitidos (enum cerrado de 8).
var TiposServicio = []string{
	"consultoria",
	"software",
	"turismo",
	"logistica",
	"capacitacion",
	"diseno",
	"ingenieria",
	"otros",
}

// Sectores atendidos (enum cerrado de 7).
var SectoresAtendidos = []string{
	"agroindustria",
	"mineria",
	"energia",
	"comercio",
	"salud",
	"educacion",
	"gobierno",
}

// Alcances geográficos de un servicio.
const (
	AlcanceLocal         = "local"
	AlcanceNacional      = "nacional"
	AlcanceInternacional = "internacional"
)

// Formas de contratación de un servicio.
var FormasContratacion = []string{
	"proyecto",
	"abono_mensual",
	"por_hora",
	"licencia",
	"otra",
}

// ServicioEmpresa es un servicio de una empresa de tipo servicio o mixta.
type ServicioEmpresa struct {
	ID                      string
	EmpresaID               string
	Nombre                  string
	Descripcion             string
	TipoServicio            string
	SectorAtendido          string
	Alcance                 string // local, nacional, internacional
	PaisesDestino           string // texto libre
	ExportaServicios        bool
	FormaContratacion       string
	CertificacionesTecnicas string
	EquipoTecnico           bool
	EquipoComercial         bool
	FechaCreacion           time.Time
}

// TipoServicioValido informa si el valor pertenece al enum cerrado.
func TipoServicioValido(v string) bool {
	for _, t := range TiposServicio {
		if t == v {
			return true
		}
	}
	return false
}

// SectorAtendidoValido informa si el valor pertenece al enum cerrado.
func SectorAtendidoValido(v string) bool {
	for _, s := range SectoresAtendidos {
		if s == v {
			return true
		}
	}
	return false
}

package entity

import "time"

// Capacidad es una máscara de bits asociada a un Rol.
// Los nombres son contrato externo estable: se serializan en respuestas de
// configuración y se usan en los chequeos de autorización por operación.
type Capacidad uint32

const (
	CapCrearEmpresa Capacidad = 1 << iota
	CapEditarEmpresa
	CapEliminarEmpresa
	CapVerAuditoria
	CapExportar
	CapImportar
	CapGestionarUsuarios
	CapAccederAdmin
	CapVerUsuarios
	CapVerConfiguracion
	CapAprobar
	CapVerPendientes
	CapVerReportes
	CapVerMapa
	CapVerMatriz
)

// CapacidadesTodas agrupa los 15 bits definidos.
const CapacidadesTodas Capacidad = CapVerMatriz<<1 - 1

// Niveles de acceso de los roles. El rol Empresa (nivel 0) solo lo asigna el
// camino de registro público, nunca un administrador.
const (
	NivelEmpresa       = 0
	NivelConsultor     = 1
	NivelAnalista      = 2
	NivelAdministrador = 3
)

// Nombres de roles distinguidos.
const (
	RolAdministrador = "Administrador"
	RolAnalista      = "Analista"
	RolConsultor     = "Consultor"
	RolEmpresa       = "Empresa"
)

// Rol agrupa un conjunto fijo de capacidades y un nivel de acceso.
type Rol struct {
	ID          int64
	Nombre      string // único
	Capacidades Capacidad
	NivelAcceso int // 0=Empresa, 1=Consultor, 2=Analista, 3=Administrador
}

// Tiene informa si el rol posee la capacidad indicada.
func (r *Rol) Tiene(c Capacidad) bool {
	if r == nil {
		return false
	}
	return r.Capacidades&c != 0
}

// EsInterno informa si el rol corresponde a personal de la dirección
// (Consultor, Analista o Administrador). Esos roles ven todas las empresas
// en los listados; el rol Empresa solo ve las propias.
func (r *Rol) EsInterno() bool {
	return r != nil && r.NivelAcceso >= NivelConsultor
}

// Usuario representa una cuenta del sistema. Los usuarios nunca se borran:
// se desactivan con Activo=false.
type Usuario struct {
	ID                 string
	Email              string // único, no vacío
	ClaveHash          string // bcrypt, nunca en claro después de persistir
	RolID              *int64
	Rol                *Rol // cargado por el repositorio junto al usuario
	EsSuperusuario     bool
	DebeCambiarClave   bool
	TokenRecuperacion  string     // UUID de un solo uso; vacío si no hay reset en curso
	TokenExpira        *time.Time // vencimiento del token (24 h desde la emisión)
	Activo             bool
	FechaCreacion      time.Time
	FechaActualizacion time.Time
}

// TieneCapacidad replica la regla central de autorización: superusuario
// siempre puede; sin rol no hay capacidades.
func (u *Usuario) TieneCapacidad(c Capacidad) bool {
	if u == nil {
		return false
	}
	if u.EsSuperusuario {
		return true
	}
	return u.Rol.Tiene(c)
}

package entity

import (
	"encoding/json"
	"time"
)

// Acciones auditadas.
const (
	AccionCrear           = "CREAR"
	AccionActualizar      = "ACTUALIZAR"
	AccionEliminar        = "ELIMINAR"
	AccionAprobar         = "APROBAR"
	AccionRechazar        = "RECHAZAR"
	AccionLogin           = "LOGIN"
	AccionLogout          = "LOGOUT"
	AccionLoginFallido    = "LOGIN_FALLIDO"
	AccionCambioClave     = "CAMBIO_CLAVE"
	AccionResetClave      = "RESET_CLAVE"
	AccionPermisoDenegado = "PERMISO_DENEGADO"
)

// Criticidad de una entrada de auditoría.
const (
	CriticidadBaja    = "BAJA"
	CriticidadMedia   = "MEDIA"
	CriticidadAlta    = "ALTA"
	CriticidadCritica = "CRITICA"
)

// AuditoriaLog es una entrada inmutable del registro de auditoría.
// Nunca se actualiza ni se borra desde la aplicación.
type AuditoriaLog struct {
	ID              int64
	Fecha           time.Time
	UsuarioID       *string // nil para eventos de sistema
	Accion          string
	Modelo          string // Empresa, Solicitud, Usuario...
	ObjetoID        string
	ObjetoNombre    string // representación legible
	Descripcion     string
	SnapshotAntes   json.RawMessage
	SnapshotDespues json.RawMessage
	URL             string
	Metodo          string
	Categoria       string
	Criticidad      string
	Exitoso         bool
	SesionID        string
}

// Tipos de notificación por correo.
const (
	NotifConfirmacion = "confirmacion"
	NotifAprobacion   = "aprobacion"
	NotifRechazo      = "rechazo"
	NotifRecuperacion = "recuperacion"
)

// Notificacion registra cada intento de correo saliente, con el error si falló.
// El fallo del envío nunca bloquea la transacción principal.
type Notificacion struct {
	ID          int64
	SolicitudID *string
	Tipo        string
	Destino     string
	Asunto      string
	CuerpoHTML  string
	Enviado     bool
	Error       string
	Fecha       time.Time
}

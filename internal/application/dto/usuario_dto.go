package dto

import "time"

// LoginRequest entrada de login por email y contraseña.
type LoginRequest struct {
	Email string `json:"email" validate:"required,email"`
	Clave string `json:"clave" validate:"required"`
}

// LoginResponse salida con token bearer y datos básicos del usuario.
type LoginResponse struct {
	Token            string          `json:"token"`
	Usuario          UsuarioResponse `json:"usuario"`
	DebeCambiarClave bool            `json:"debe_cambiar_clave"`
}

// UsuarioResponse salida de un usuario (sin hash de clave).
type UsuarioResponse struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	Rol           string    `json:"rol"`
	NivelAcceso   int       `json:"nivel_acceso"`
	Activo        bool      `json:"activo"`
	FechaCreacion time.Time `json:"fecha_creacion"`
}

// CrearUsuarioRequest entrada para que un administrador cree un usuario interno.
type CrearUsuarioRequest struct {
	Email string `json:"email" validate:"required,email"`
	Clave string `json:"clave" validate:"required,min=8"`
	Rol   string `json:"rol" validate:"required,oneof=Administrador Analista Consultor"`
}

// SolicitarResetRequest entrada para pedir recuperación de contraseña.
type SolicitarResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetClaveRequest entrada para completar la recuperación con el token UUID.
type ResetClaveRequest struct {
	Token      string `json:"token" validate:"required"`
	ClaveNueva string `json:"clave_nueva" validate:"required,min=8"`
}

// CambiarClaveRequest entrada para cambio de contraseña autenticado.
// Limpia el flag debe_cambiar_clave.
type CambiarClaveRequest struct {
	ClaveActual string `json:"clave_actual" validate:"required"`
	ClaveNueva  string `json:"clave_nueva" validate:"required,min=8"`
}

// RolResponse rol con su máscara de capacidades.
type RolResponse struct {
	ID          int64  `json:"id"`
	Nombre      string `json:"nombre"`
	Capacidades int    `json:"capacidades"`
	NivelAcceso int    `json:"nivel_acceso"`
}

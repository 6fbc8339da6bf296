package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrUsuarioNotFound     = errors.New("usuario no encontrado")
	ErrEmailYaRegistrado   = errors.New("el email ya está registrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrCUITDuplicado       = errors.New("ya existe una solicitud aprobada con ese CUIT")
	ErrUnauthorized        = errors.New("no autorizado")
	ErrForbidden           = errors.New("acceso denegado")
	ErrConflict            = errors.New("conflicto con el estado actual")
	ErrEstadoInvalido      = errors.New("solo se pueden aprobar solicitudes pendientes")
	ErrTokenInvalido       = errors.New("token inválido")
	ErrTokenExpirado       = errors.New("el token ha expirado")
	ErrSolicitudPendiente  = errors.New("tu solicitud de registro está pendiente de aprobación")
	ErrSolicitudRechazada  = errors.New("tu solicitud fue rechazada")
	ErrDebeCambiarClave    = errors.New("debe cambiar su contraseña antes de continuar")
	ErrTipoEmpresaInvalido = errors.New("el tipo de empresa no admite este tipo de registro")
)

package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/catamarca-comercio/registro-exportadores/internal/application/dto"
	"github.com/catamarca-comercio/registro-exportadores/internal/domain"
)

// respuestaError traduce los errores sentinela del dominio a códigos HTTP.
// El mensaje va en castellano tal como lo define el dominio; los detalles
// internos de un error inesperado no se filtran al cliente.
func respuestaError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrEstadoInvalido),
		errors.Is(err, domain.ErrConflict),
		errors.Is(err, domain.ErrCUITDuplicado),
		errors.Is(err, domain.ErrTokenInvalido),
		errors.Is(err, domain.ErrTokenExpirado),
		errors.Is(err, domain.ErrSolicitudPendiente),
		errors.Is(err, domain.ErrSolicitudRechazada),
		errors.Is(err, domain.ErrDebeCambiarClave),
		errors.Is(err, domain.ErrTipoEmpresaInvalido):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})

	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})

	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado"})

	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUsuarioNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})

	case errors.Is(err, domain.ErrEmailYaRegistrado):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}

// cuerpoInvalido respuesta estándar cuando el body no parsea.
func cuerpoInvalido(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

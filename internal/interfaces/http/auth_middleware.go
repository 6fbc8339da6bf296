package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/catamarca-comercio/registro-exportadores/internal/application/autorizacion"
	"github.com/catamarca-comercio/registro-exportadores/internal/application/dto"
	"github.com/catamarca-comercio/registro-exportadores/internal/domain/entity"
	"github.com/catamarca-comercio/registro-exportadores/internal/domain/repository"
	"github.com/catamarca-comercio/registro-exportadores/pkg/jwt"
)

// Local key del usuario autenticado en Fiber.
const LocalUsuario = "usuario"

// AuthMiddleware valida el Bearer Token JWT y carga el usuario completo (con
// su rol) a c.Locals. El token solo acredita identidad: rol, capacidades y
// estado activo se leen de la base en cada request, así una desactivación
// tiene efecto inmediato.
func AuthMiddleware(jwtSecret string, usuarios repository.UsuarioRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}

		u, err := usuarios.GetByID(c.Context(), claims.UserID)
		if err != nil {
			return respuestaError(c, err)
		}
		if u == nil || !u.Activo {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "cuenta inexistente o desactivada"})
		}
		c.Locals(LocalUsuario, u)
		return c.Next()
	}
}

// RequiereCapacidad autoriza la operación contra el gate y audita el rechazo.
func RequiereCapacidad(gate *autorizacion.Gate, cap entity.Capacidad) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := gate.ExigirCapacidad(c.Context(), contexto(c), cap); err != nil {
			return respuestaError(c, err)
		}
		return c.Next()
	}
}

// UsuarioActual devuelve el usuario del contexto (después del middleware de
// auth). nil en rutas públicas.
func UsuarioActual(c *fiber.Ctx) *entity.Usuario {
	u, _ := c.Locals(LocalUsuario).(*entity.Usuario)
	return u
}

// contexto arma el contexto de autorización del request.
func contexto(c *fiber.Ctx) autorizacion.Contexto {
	return autorizacion.Contexto{
		Usuario: UsuarioActual(c),
		URL:     c.OriginalURL(),
		Metodo:  c.Method(),
	}
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/catamarca-comercio/registro-exportadores/internal/application/auth"
	"github.com/catamarca-comercio/registro-exportadores/internal/application/dto"
)

// AuthHandler maneja login, recuperación y cambio de contraseña.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, clave"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	if in.Email == "" || in.Clave == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email y clave son requeridos"})
	}
	out, err := h.uc.Login(c.Context(), in)
	if err != nil {
		if auth.ErrCredenciales(err) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
		}
		return respuestaError(c, err)
	}
	return c.JSON(out)
}

// SolicitarReset godoc
// @Summary      Solicitar recuperación de contraseña
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SolicitarResetRequest  true  "email"
// @Success      200   {object}  map[string]string
// @Router       /api/auth/recuperar [post]
func (h *AuthHandler) SolicitarReset(c *fiber.Ctx) error {
	var in dto.SolicitarResetRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	if in.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email requerido"})
	}
	if err := h.uc.SolicitarReset(c.Context(), in.Email); err != nil {
		return respuestaError(c, err)
	}
	// Respuesta uniforme exista o no el email.
	return c.JSON(fiber.Map{"mensaje": "si el correo está registrado vas a recibir las instrucciones"})
}

// ResetClave godoc
// @Summary      Completar recuperación con token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ResetClaveRequest  true  "token, clave_nueva"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/auth/reset [post]
func (h *AuthHandler) ResetClave(c *fiber.Ctx) error {
	var in dto.ResetClaveRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	if in.Token == "" || len(in.ClaveNueva) < 8 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "token y clave nueva de al menos 8 caracteres son requeridos"})
	}
	if err := h.uc.ResetClave(c.Context(), in); err != nil {
		return respuestaError(c, err)
	}
	return c.JSON(fiber.Map{"mensaje": "contraseña actualizada"})
}

// CambiarClave godoc
// @Summary      Cambiar la contraseña propia
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CambiarClaveRequest  true  "clave_actual, clave_nueva"
// @Success      200   {object}  map[string]string
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/cambiar-clave [post]
// @Security     BearerAuth
func (h *AuthHandler) CambiarClave(c *fiber.Ctx) error {
	var in dto.CambiarClaveRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	if len(in.ClaveNueva) < 8 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "la clave nueva debe tener al menos 8 caracteres"})
	}
	u := UsuarioActual(c)
	if err := h.uc.CambiarClave(c.Context(), u.ID, in); err != nil {
		return respuestaError(c, err)
	}
	return c.JSON(fiber.Map{"mensaje": "contraseña actualizada"})
}

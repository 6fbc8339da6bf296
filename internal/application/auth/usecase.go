package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/catamarca-comercio/registro-exportadores/internal/application/auditoria"
	"github.com/catamarca-comercio/registro-exportadores/internal/application/dto"
	"github.com/catamarca-comercio/registro-exportadores/internal/application/notificacion"
	"github.com/catamarca-comercio/registro-exportadores/internal/domain"
	"github.com/catamarca-comercio/registro-exportadores/internal/domain/entity"
	"github.com/catamarca-comercio/registro-exportadores/internal/domain/repository"
	"github.com/catamarca-comercio/registro-exportadores/pkg/jwt"
)

// VigenciaTokenReset es la ventana de validez del token de recuperación.
const VigenciaTokenReset = 24 * time.Hour

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: login, recuperación y cambio
// de contraseña.
type AuthUseCase struct {
	usuarioRepo   repository.UsuarioRepository
	solicitudRepo repository.SolicitudRepository
	notificador   *notificacion.Notificador
	auditor       *auditoria.Registrador
	jwtCfg        JWTConfig
	ahora         func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	usuarioRepo repository.UsuarioRepository,
	solicitudRepo repository.SolicitudRepository,
	notificador *notificacion.Notificador,
	auditor *auditoria.Registrador,
	jwtCfg JWTConfig,
) *AuthUseCase {
	return &AuthUseCase{
		usuarioRepo:   usuarioRepo,
		solicitudRepo: solicitudRepo,
		notificador:   notificador,
		auditor:       auditor,
		jwtCfg:        jwtCfg,
		ahora:         time.Now,
	}
}

// Login verifica email/clave, aplica las reglas de solicitud pendiente o
// rechazada y genera el JWT.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	u, err := uc.usuarioRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUsuarioNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.ClaveHash), []byte(in.Clave)); err != nil {
		uc.auditarLogin(ctx, u, entity.AccionLoginFallido, false)
		return nil, domain.ErrUnauthorized
	}
	if !u.Activo {
		return nil, domain.ErrForbidden
	}

	// Cuentas del rol Empresa: la solicitud manda. Pendiente o rechazada
	// bloquean el ingreso con mensaje propio; cualquier otro fallo en la
	// consulta cae a la autenticación normal para no romper el login
	// cuando las migraciones están a medias.
	if u.Rol != nil && u.Rol.NivelAcceso == entity.NivelEmpresa {
		if sol, err := uc.solicitudRepo.GetByUsuario(ctx, u.ID); err == nil && sol != nil {
			switch sol.Estado {
			case entity.SolicitudPendiente, entity.SolicitudEnRevision:
				return nil, domain.ErrSolicitudPendiente
			case entity.SolicitudRechazada:
				return nil, domain.ErrSolicitudRechazada
			}
		}
	}

	rolNombre := ""
	nivel := entity.NivelEmpresa
	if u.Rol != nil {
		rolNombre = u.Rol.Nombre
		nivel = u.Rol.NivelAcceso
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, u.ID, rolNombre, nivel, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	uc.auditarLogin(ctx, u, entity.AccionLogin, true)

	return &dto.LoginResponse{
		Token:            token,
		Usuario:          *toUsuarioResponse(u),
		DebeCambiarClave: u.DebeCambiarClave,
	}, nil
}

// SolicitarReset emite un token UUID con vencimiento a 24 h y dispara el
// correo de recuperación. Para no filtrar qué emails existen, un email
// desconocido no es error.
func (uc *AuthUseCase) SolicitarReset(ctx context.Context, email string) error {
	u, err := uc.usuarioRepo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if u == nil || !u.Activo {
		return nil
	}
	token := uuid.New().String()
	expira := uc.ahora().Add(VigenciaTokenReset)
	u.TokenRecuperacion = token
	u.TokenExpira = &expira
	u.FechaActualizacion = uc.ahora()
	if err := uc.usuarioRepo.Update(ctx, u); err != nil {
		return err
	}
	asunto, cuerpo := notificacion.CuerpoRecuperacion(token)
	uc.notificador.EnviarAsync(nil, entity.NotifRecuperacion, u.Email, asunto, cuerpo)
	return nil
}

// ResetClave completa la recuperación. El token es de un solo uso: se limpia
// tanto al usarse como al detectarse vencido.
func (uc *AuthUseCase) ResetClave(ctx context.Context, in dto.ResetClaveRequest) error {
	u, err := uc.usuarioRepo.GetByTokenRecuperacion(ctx, in.Token)
	if err != nil {
		return err
	}
	if u == nil || u.TokenRecuperacion == "" || u.TokenRecuperacion != in.Token {
		return domain.ErrTokenInvalido
	}
	if !u.Activo {
		return domain.ErrForbidden
	}
	if u.TokenExpira == nil || uc.ahora().After(*u.TokenExpira) {
		u.TokenRecuperacion = ""
		u.TokenExpira = nil
		_ = uc.usuarioRepo.Update(ctx, u)
		return domain.ErrTokenExpirado
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.ClaveNueva), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.ClaveHash = string(hash)
	u.TokenRecuperacion = ""
	u.TokenExpira = nil
	u.DebeCambiarClave = false
	u.FechaActualizacion = uc.ahora()
	if err := uc.usuarioRepo.Update(ctx, u); err != nil {
		return err
	}
	uc.auditarLogin(ctx, u, entity.AccionResetClave, true)
	return nil
}

// CambiarClave cambio autenticado; es la única mutación permitida con
// debe_cambiar_clave pendiente, y lo limpia.
func (uc *AuthUseCase) CambiarClave(ctx context.Context, usuarioID string, in dto.CambiarClaveRequest) error {
	u, err := uc.usuarioRepo.GetByID(ctx, usuarioID)
	if err != nil {
		return err
	}
	if u == nil {
		return domain.ErrUsuarioNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.ClaveHash), []byte(in.ClaveActual)); err != nil {
		return domain.ErrUnauthorized
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.ClaveNueva), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.ClaveHash = string(hash)
	u.DebeCambiarClave = false
	u.FechaActualizacion = uc.ahora()
	if err := uc.usuarioRepo.Update(ctx, u); err != nil {
		return err
	}
	uc.auditarLogin(ctx, u, entity.AccionCambioClave, true)
	return nil
}

// ConAhora reemplaza el reloj (tests de vencimiento de token).
func (uc *AuthUseCase) ConAhora(fn func() time.Time) { uc.ahora = fn }

func (uc *AuthUseCase) auditarLogin(ctx context.Context, u *entity.Usuario, accion string, exitoso bool) {
	if uc.auditor == nil {
		return
	}
	uc.auditor.Registrar(ctx, auditoria.Entrada{
		UsuarioID:    &u.ID,
		Accion:       accion,
		Modelo:       "Usuario",
		ObjetoID:     u.ID,
		ObjetoNombre: u.Email,
		Categoria:    "autenticacion",
		Exitoso:      exitoso,
	})
}

// ErrCredenciales agrupa los errores que el handler mapea a 401.
func ErrCredenciales(err error) bool {
	return errors.Is(err, domain.ErrUsuarioNotFound) || errors.Is(err, domain.ErrUnauthorized)
}

func toUsuarioResponse(u *entity.Usuario) *dto.UsuarioResponse {
	if u == nil {
		return nil
	}
	rol := ""
	nivel := entity.NivelEmpresa
	if u.Rol != nil {
		rol = u.Rol.Nombre
		nivel = u.Rol.NivelAcceso
	}
	return &dto.UsuarioResponse{
		ID:            u.ID,
		Email:         u.Email,
		Rol:           rol,
		NivelAcceso:   nivel,
		Activo:        u.Activo,
		FechaCreacion: u.FechaCreacion,
	}
}

// Package usuario implementa la gestión de cuentas internas por parte de un
// administrador: alta de personal de la dirección, listado y activación.
// Las cuentas con rol Empresa nacen únicamente por el registro público.
package usuario

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/catamarca-comercio/registro-exportadores/internal/application/auditoria"
	"github.com/catamarca-comercio/registro-exportadores/internal/application/dto"
	"github.com/catamarca-comercio/registro-exportadores/internal/domain"
	"github.com/catamarca-comercio/registro-exportadores/internal/domain/entity"
	"github.com/catamarca-comercio/registro-exportadores/internal/domain/repository"
)

// UseCase agrupa las operaciones de administración de usuarios.
type UseCase struct {
	usuarioRepo repository.UsuarioRepository
	rolRepo     repository.RolRepository
	auditor     *auditoria.Registrador
	log         zerolog.Logger
}

// NewUseCase construye el caso de uso de usuarios.
func NewUseCase(usuarios repository.UsuarioRepository, roles repository.RolRepository, auditor *auditoria.Registrador, log zerolog.Logger) *UseCase {
	return &UseCase{usuarioRepo: usuarios, rolRepo: roles, auditor: auditor, log: log}
}

// Crear da de alta una cuenta interna. El rol tiene que ser de personal de
// la dirección; el alta con rol Empresa se rechaza siempre. La cuenta nace
// obligada a cambiar la contraseña en el primer ingreso.
func (uc *UseCase) Crear(ctx context.Context, adminID string, in dto.CrearUsuarioRequest) (*dto.UsuarioResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" {
		return nil, fmt.Errorf("%w: falta el email", domain.ErrInvalidInput)
	}

	existente, err := uc.usuarioRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existente != nil {
		return nil, domain.ErrEmailYaRegistrado
	}

	rol, err := uc.rolRepo.GetByNombre(ctx, in.Rol)
	if err != nil {
		return nil, err
	}
	if rol == nil {
		return nil, fmt.Errorf("%w: rol %q desconocido", domain.ErrInvalidInput, in.Rol)
	}
	if !rol.EsInterno() {
		return nil, fmt.Errorf("%w: el rol Empresa solo se asigna por el registro público", domain.ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Clave), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &entity.Usuario{
		ID:               uuid.NewString(),
		Email:            email,
		ClaveHash:        string(hash),
		RolID:            &rol.ID,
		Rol:              rol,
		Activo:           true,
		DebeCambiarClave: true,
		FechaCreacion:    time.Now(),
	}
	if err := uc.usuarioRepo.Create(ctx, u); err != nil {
		return nil, err
	}

	uc.auditar(ctx, adminID, entity.AccionCrear, u, fmt.Sprintf("Alta de usuario %s con rol %s", u.Email, rol.Nombre))
	uc.log.Info().Str("usuario", u.ID).Str("rol", rol.Nombre).Msg("usuario interno creado")
	return toUsuarioResponse(u), nil
}

// Listar devuelve la página de usuarios del sistema.
func (uc *UseCase) Listar(ctx context.Context, page dto.PageRequest) ([]dto.UsuarioResponse, error) {
	page.DefaultPage()
	usuarios, err := uc.usuarioRepo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UsuarioResponse, 0, len(usuarios))
	for _, u := range usuarios {
		out = append(out, *toUsuarioResponse(u))
	}
	return out, nil
}

// Desactivar bloquea el ingreso de una cuenta sin borrarla. Un administrador
// no puede desactivarse a sí mismo.
func (uc *UseCase) Desactivar(ctx context.Context, adminID, usuarioID string) error {
	if adminID == usuarioID {
		return fmt.Errorf("%w: no podés desactivar tu propia cuenta", domain.ErrInvalidInput)
	}
	u, err := uc.usuarioRepo.GetByID(ctx, usuarioID)
	if err != nil {
		return err
	}
	if u == nil {
		return domain.ErrUsuarioNotFound
	}
	if !u.Activo {
		return nil
	}

	u.Activo = false
	u.FechaActualizacion = time.Now()
	if err := uc.usuarioRepo.Update(ctx, u); err != nil {
		return err
	}
	uc.auditar(ctx, adminID, entity.AccionEliminar, u, fmt.Sprintf("Desactivación de %s", u.Email))
	return nil
}

// Activar rehabilita una cuenta desactivada.
func (uc *UseCase) Activar(ctx context.Context, adminID, usuarioID string) error {
	u, err := uc.usuarioRepo.GetByID(ctx, usuarioID)
	if err != nil {
		return err
	}
	if u == nil {
		return domain.ErrUsuarioNotFound
	}
	if u.Activo {
		return nil
	}

	u.Activo = true
	u.FechaActualizacion = time.Now()
	if err := uc.usuarioRepo.Update(ctx, u); err != nil {
		return err
	}
	uc.auditar(ctx, adminID, entity.AccionActualizar, u, fmt.Sprintf("Reactivación de %s", u.Email))
	return nil
}

// ListarRoles devuelve los roles definidos, para el formulario de alta.
func (uc *UseCase) ListarRoles(ctx context.Context) ([]*entity.Rol, error) {
	return uc.rolRepo.List(ctx)
}

func (uc *UseCase) auditar(ctx context.Context, adminID, accion string, u *entity.Usuario, descripcion string) {
	if uc.auditor == nil {
		return
	}
	uc.auditor.Registrar(ctx, auditoria.Entrada{
		UsuarioID:    &adminID,
		Accion:       accion,
		Modelo:       "Usuario",
		ObjetoID:     u.ID,
		ObjetoNombre: u.Email,
		Descripcion:  descripcion,
		Criticidad:   entity.CriticidadMedia,
		Exitoso:      true,
	})
}

func toUsuarioResponse(u *entity.Usuario) *dto.UsuarioResponse {
	out := &dto.UsuarioResponse{
		ID:            u.ID,
		Email:         u.Email,
		Activo:        u.Activo,
		FechaCreacion: u.FechaCreacion,
	}
	if u.Rol != nil {
		out.Rol = u.Rol.Nombre
		out.NivelAcceso = u.Rol.NivelAcceso
	}
	return out
}

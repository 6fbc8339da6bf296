package repository

import (
	"context"

	"github.com/catamarca-comercio/registro-exportadores/internal/domain/entity"
)

// UsuarioRepository define el puerto de persistencia para Usuario (DIP).
// Las lecturas devuelven el usuario con su Rol cargado.
type UsuarioRepository interface {
	Create(ctx context.Context, u *entity.Usuario) error
	GetByID(ctx context.Context, id string) (*entity.Usuario, error)
	GetByEmail(ctx context.Context, email string) (*entity.Usuario, error)
	GetByTokenRecuperacion(ctx context.Context, token string) (*entity.Usuario, error)
	Update(ctx context.Context, u *entity.Usuario) error
	List(ctx context.Context, limit, offset int) ([]*entity.Usuario, error)
}

// RolRepository define el puerto de persistencia para Rol.
type RolRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Rol, error)
	GetByNombre(ctx context.Context, nombre string) (*entity.Rol, error)
	List(ctx context.Context) ([]*entity.Rol, error)
	Create(ctx context.Context, r *entity.Rol) error
}

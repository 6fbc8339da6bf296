package repository

import (
	"context"

	"github.com/catamarca-comercio/registro-exportadores/internal/domain/entity"
)

// SolicitudRepository define el puerto de persistencia para Solicitud.
type SolicitudRepository interface {
	Create(ctx context.Context, s *entity.Solicitud) error
	GetByID(ctx context.Context, id string) (*entity.Solicitud, error)
	GetByUsuario(ctx context.Context, usuarioID string) (*entity.Solicitud, error)
	// ExisteAprobadaPorCUIT informa si ya hay una solicitud aprobada con ese
	// CUIT (bloquea re-presentaciones en el paso 1 del registro).
	ExisteAprobadaPorCUIT(ctx context.Context, cuit string) (bool, error)
	// Update persiste estado, resolución y vínculo a empresa. El snapshot del
	// formulario es inmutable y no se reescribe.
	Update(ctx context.Context, s *entity.Solicitud) error
	List(ctx context.Context, estado string, limit, offset int) ([]*entity.Solicitud, error)
	CountPorEstado(ctx context.Context) (map[string]int, error)
}

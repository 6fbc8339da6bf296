package repository

import (
	"context"

	"github.com/catamarca-comercio/registro-exportadores/internal/domain/entity"
)

// MatrizRepository define el puerto para la matriz de clasificación.
// Hay a lo sumo una fila por empresa; Upsert actualiza si ya existe.
type MatrizRepository interface {
	Upsert(ctx context.Context, m *entity.MatrizClasificacion) error
	GetByEmpresa(ctx context.Context, empresaID string) (*entity.MatrizClasificacion, error)
	// CountPorCategoria agrupa las matrices persistidas por categoría
	// (widget del dashboard).
	CountPorCategoria(ctx context.Context) (map[string]int, error)
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/catamarca-comercio/registro-exportadores/internal/application/referencia"
	"github.com/catamarca-comercio/registro-exportadores/internal/application/solicitud"
	"github.com/catamarca-comercio/registro-exportadores/internal/domain/repository"
)

// El runner cubre los tres caminos transaccionales de la aplicación.
var (
	_ solicitud.TxRunner  = (*TxRunner)(nil)
	_ referencia.TxRunner = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunRegistro corre el paso atómico del registro público: cuenta, rol y
// solicitud se crean juntos o no se crea nada.
func (r *TxRunner) RunRegistro(ctx context.Context, fn func(solicitud.ReposRegistro) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := solicitud.ReposRegistro{
		Usuarios:    NewUsuarioRepository(tx),
		Roles:       NewRolRepository(tx),
		Solicitudes: NewSolicitudRepository(tx),
	}
	if err := fn(repos); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunAprobacion corre la materialización de una aprobación: solicitud,
// empresa, hijos y referencias en una sola transacción.
func (r *TxRunner) RunAprobacion(ctx context.Context, fn func(solicitud.ReposAprobacion) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := solicitud.ReposAprobacion{
		Solicitudes: NewSolicitudRepository(tx),
		Empresas:    NewEmpresaRepository(tx),
		Productos:   NewProductoRepository(tx),
		Servicios:   NewServicioRepository(tx),
		Referencias: NewReferenciaRepository(tx),
	}
	if err := fn(repos); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunReferencias corre una fusión de rubros duplicados como paso atómico.
func (r *TxRunner) RunReferencias(ctx context.Context, fn func(repository.ReferenciaRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewReferenciaRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

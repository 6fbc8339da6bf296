package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/catamarca-comercio/registro-exportadores/internal/domain/entity"
	"github.com/catamarca-comercio/registro-exportadores/internal/domain/repository"
)

var _ repository.AuditoriaRepository = (*AuditoriaRepo)(nil)

const columnasAuditoria = `
	id, fecha, usuario_id, accion, modelo, objeto_id, objeto_nombre,
	descripcion, snapshot_antes, snapshot_despues, url, metodo,
	categoria, criticidad, exitoso, sesion_id`

// AuditoriaRepo implementación del registro de auditoría sobre PostgreSQL.
// La tabla es append-only: no hay UPDATE ni DELETE.
type AuditoriaRepo struct {
	q Querier
}

func NewAuditoriaRepository(q Querier) *AuditoriaRepo {
	return &AuditoriaRepo{q: q}
}

// Append inserta una entrada inmutable.
func (r *AuditoriaRepo) Append(ctx context.Context, e *entity.AuditoriaLog) error {
	query := `
		INSERT INTO auditoria_log (
			fecha, usuario_id, accion, modelo, objeto_id, objeto_nombre,
			descripcion, snapshot_antes, snapshot_despues, url, metodo,
			categoria, criticidad, exitoso, sesion_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id`

	err := r.q.QueryRow(ctx, query,
		e.Fecha, e.UsuarioID, e.Accion, e.Modelo, e.ObjetoID, e.ObjetoNombre,
		e.Descripcion, []byte(e.SnapshotAntes), []byte(e.SnapshotDespues), e.URL, e.Metodo,
		e.Categoria, e.Criticidad, e.Exitoso, e.SesionID,
	).Scan(&e.ID)
	if err != nil {
		return fmt.Errorf("insert auditoria: %w", err)
	}
	return nil
}

// List devuelve entradas paginadas, las más recientes primero.
func (r *AuditoriaRepo) List(ctx context.Context, limit, offset int) ([]*entity.AuditoriaLog, error) {
	query := `SELECT ` + columnasAuditoria + `
		FROM auditoria_log ORDER BY fecha DESC, id DESC LIMIT $1 OFFSET $2`

	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list auditoria: %w", err)
	}
	defer rows.Close()
	return scanEntradas(rows)
}

// ListByObjeto devuelve el historial de un objeto puntual.
func (r *AuditoriaRepo) ListByObjeto(ctx context.Context, modelo, objetoID string, limit int) ([]*entity.AuditoriaLog, error) {
	query := `SELECT ` + columnasAuditoria + `
		FROM auditoria_log WHERE modelo = $1 AND objeto_id = $2
		ORDER BY fecha DESC, id DESC LIMIT $3`

	rows, err := r.q.Query(ctx, query, modelo, objetoID, limit)
	if err != nil {
		return nil, fmt.Errorf("list auditoria por objeto: %w", err)
	}
	defer rows.Close()
	return scanEntradas(rows)
}

func scanEntradas(rows pgx.Rows) ([]*entity.AuditoriaLog, error) {
	var list []*entity.AuditoriaLog
	for rows.Next() {
		var (
			e       entity.AuditoriaLog
			antes   []byte
			despues []byte
		)
		err := rows.Scan(
			&e.ID, &e.Fecha, &e.UsuarioID, &e.Accion, &e.Modelo, &e.ObjetoID, &e.ObjetoNombre,
			&e.Descripcion, &antes, &despues, &e.URL, &e.Metodo,
			&e.Categoria, &e.Criticidad, &e.Exitoso, &e.SesionID,
		)
		if err != nil {
			return nil, fmt.Errorf("scan auditoria: %w", err)
		}
		e.SnapshotAntes = antes
		e.SnapshotDespues = despues
		list = append(list, &e)
	}
	return list, rows.Err()
}

// ─── Notificaciones ──────────────────────────────────────────────────────────

var _ repository.NotificacionRepository = (*NotificacionRepo)(nil)

// NotificacionRepo persiste los intentos de correo saliente.
type NotificacionRepo struct {
	q Querier
}

func NewNotificacionRepository(q Querier) *NotificacionRepo {
	return &NotificacionRepo{q: q}
}

func (r *NotificacionRepo) Create(ctx context.Context, n *entity.Notificacion) error {
	query := `
		INSERT INTO notificaciones (solicitud_id, tipo, destino, asunto, cuerpo_html, enviado, error, fecha)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	err := r.q.QueryRow(ctx, query,
		n.SolicitudID, n.Tipo, n.Destino, n.Asunto, n.CuerpoHTML, n.Enviado, n.Error, n.Fecha,
	).Scan(&n.ID)
	if err != nil {
		return fmt.Errorf("insert notificacion: %w", err)
	}
	return nil
}

// MarcarEnviado registra el resultado del intento. Con errorTexto vacío se
// marca como enviado.
func (r *NotificacionRepo) MarcarEnviado(ctx context.Context, id int64, errorTexto string) error {
	query := `UPDATE notificaciones SET enviado = ($2 = ''), error = $2 WHERE id = $1`
	if _, err := r.q.Exec(ctx, query, id, errorTexto); err != nil {
		return fmt.Errorf("marcar notificacion: %w", err)
	}
	return nil
}

func (r *NotificacionRepo) ListBySolicitud(ctx context.Context, solicitudID string) ([]*entity.Notificacion, error) {
	query := `
		SELECT id, solicitud_id, tipo, destino, asunto, cuerpo_html, enviado, error, fecha
		FROM notificaciones WHERE solicitud_id = $1 ORDER BY fecha DESC`

	rows, err := r.q.Query(ctx, query, solicitudID)
	if err != nil {
		return nil, fmt.Errorf("list notificaciones: %w", err)
	}
	defer rows.Close()

	var list []*entity.Notificacion
	for rows.Next() {
		var n entity.Notificacion
		err := rows.Scan(&n.ID, &n.SolicitudID, &n.Tipo, &n.Destino, &n.Asunto,
			&n.CuerpoHTML, &n.Enviado, &n.Error, &n.Fecha)
		if err != nil {
			return nil, fmt.Errorf("scan notificacion: %w", err)
		}
		list = append(list, &n)
	}
	return list, rows.Err()
}

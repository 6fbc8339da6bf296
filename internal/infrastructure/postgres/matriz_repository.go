package postgres

import (
	"context"
	"fmt"

	"github.com/catamarca-comercio/registro-exportadores/internal/domain/entity"
	"github.com/catamarca-comercio/registro-exportadores/internal/domain/repository"
)

var _ repository.MatrizRepository = (*MatrizRepo)(nil)

// MatrizRepo implementación del puerto MatrizRepository sobre PostgreSQL.
// La tabla tiene constraint único sobre empresa_id: recalcular actualiza la
// fila existente en lugar de duplicarla.
type MatrizRepo struct {
	q Querier
}

// NewMatrizRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMatrizRepository(q Querier) *MatrizRepo {
	return &MatrizRepo{q: q}
}

const columnasMatriz = `
	id, empresa_id,
	experiencia_exportadora, volumen_produccion, presencia_digital, posicion_arancelaria,
	participacion_internac, estructura_interna, interes_exportador,
	certificaciones_nac, certificaciones_internac,
	puntaje_total, categoria, evaluado_por, fecha_evaluacion, observaciones`

// Upsert crea la evaluación de una empresa o reemplaza la existente.
func (r *MatrizRepo) Upsert(ctx context.Context, m *entity.MatrizClasificacion) error {
	query := `
		INSERT INTO matriz_clasificacion (` + columnasMatriz + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (empresa_id) DO UPDATE SET
			experiencia_exportadora = EXCLUDED.experiencia_exportadora,
			volumen_produccion = EXCLUDED.volumen_produccion,
			presencia_digital = EXCLUDED.presencia_digital,
			posicion_arancelaria = EXCLUDED.posicion_arancelaria,
			participacion_internac = EXCLUDED.participacion_internac,
			estructura_interna = EXCLUDED.estructura_interna,
			interes_exportador = EXCLUDED.interes_exportador,
			certificaciones_nac = EXCLUDED.certificaciones_nac,
			certificaciones_internac = EXCLUDED.certificaciones_internac,
			puntaje_total = EXCLUDED.puntaje_total,
			categoria = EXCLUDED.categoria,
			evaluado_por = EXCLUDED.evaluado_por,
			fecha_evaluacion = EXCLUDED.fecha_evaluacion,
			observaciones = EXCLUDED.observaciones`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.EmpresaID,
		m.ExperienciaExportadora, m.VolumenProduccion, m.PresenciaDigital, m.PosicionArancelaria,
		m.ParticipacionInternac, m.EstructuraInterna, m.InteresExportador,
		m.CertificacionesNac, m.CertificacionesInternac,
		m.PuntajeTotal, m.Categoria, m.EvaluadoPor, m.FechaEvaluacion, m.Observaciones,
	)
	if err != nil {
		return fmt.Errorf("upsert matriz: %w", err)
	}
	return nil
}

// GetByEmpresa obtiene la evaluación de una empresa si existe.
func (r *MatrizRepo) GetByEmpresa(ctx context.Context, empresaID string) (*entity.MatrizClasificacion, error) {
	query := `SELECT ` + columnasMatriz + ` FROM matriz_clasificacion WHERE empresa_id = $1`
	var m entity.MatrizClasificacion
	err := r.q.QueryRow(ctx, query, empresaID).Scan(
		&m.ID, &m.EmpresaID,
		&m.ExperienciaExportadora, &m.VolumenProduccion, &m.PresenciaDigital, &m.PosicionArancelaria,
		&m.ParticipacionInternac, &m.EstructuraInterna, &m.InteresExportador,
		&m.CertificacionesNac, &m.CertificacionesInternac,
		&m.PuntajeTotal, &m.Categoria, &m.EvaluadoPor, &m.FechaEvaluacion, &m.Observaciones,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get matriz: %w", err)
	}
	return &m, nil
}

// CountPorCategoria agrupa las evaluaciones persistidas por categoría.
func (r *MatrizRepo) CountPorCategoria(ctx context.Context) (map[string]int, error) {
	rows, err := r.q.Query(ctx, `SELECT categoria, COUNT(*) FROM matriz_clasificacion GROUP BY categoria`)
	if err != nil {
		return nil, fmt.Errorf("count matriz: %w", err)
	}
	defer rows.Close()

	out := map[string]int{}
	for rows.Next() {
		var categoria string
		var n int
		if err := rows.Scan(&categoria, &n); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		out[categoria] = n
	}
	return out, rows.Err()
}

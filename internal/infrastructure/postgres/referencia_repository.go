package postgres

import (
	"context"
	"fmt"

	"github.com/catamarca-comercio/registro-exportadores/internal/domain/entity"
	"github.com/catamarca-comercio/registro-exportadores/internal/domain/repository"
	"github.com/catamarca-comercio/registro-exportadores/pkg/slug"
)

var _ repository.ReferenciaRepository = (*ReferenciaRepo)(nil)

// ReferenciaRepo implementación del puerto ReferenciaRepository sobre
// PostgreSQL. Los GetOrCreate deduplican por nombre case-insensitive dentro
// del padre y sintetizan el código desde el nombre.
type ReferenciaRepo struct {
	q Querier
}

// NewReferenciaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReferenciaRepository(q Querier) *ReferenciaRepo {
	return &ReferenciaRepo{q: q}
}

// ─── Geografía ───────────────────────────────────────────────────────────────

// GetProvincia busca una provincia por nombre.
func (r *ReferenciaRepo) GetProvincia(ctx context.Context, nombre string) (*entity.Provincia, error) {
	query := `SELECT id, nombre, latitud, longitud FROM provincias WHERE LOWER(nombre) = LOWER($1)`
	var p entity.Provincia
	err := r.q.QueryRow(ctx, query, nombre).Scan(&p.ID, &p.Nombre, &p.Latitud, &p.Longitud)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get provincia: %w", err)
	}
	return &p, nil
}

// GetProvinciaByID obtiene una provincia por ID.
func (r *ReferenciaRepo) GetProvinciaByID(ctx context.Context, id int64) (*entity.Provincia, error) {
	query := `SELECT id, nombre, latitud, longitud FROM provincias WHERE id = $1`
	var p entity.Provincia
	err := r.q.QueryRow(ctx, query, id).Scan(&p.ID, &p.Nombre, &p.Latitud, &p.Longitud)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get provincia: %w", err)
	}
	return &p, nil
}

// GetOrCreateDepartamento busca un departamento por nombre dentro de la
// provincia o lo crea.
func (r *ReferenciaRepo) GetOrCreateDepartamento(ctx context.Context, provinciaID int64, nombre string) (*entity.Departamento, error) {
	var d entity.Departamento
	err := r.q.QueryRow(ctx,
		`SELECT id, provincia_id, nombre, codigo FROM departamentos
		 WHERE provincia_id = $1 AND LOWER(nombre) = LOWER($2)`,
		provinciaID, nombre,
	).Scan(&d.ID, &d.ProvinciaID, &d.Nombre, &d.Codigo)
	if err == nil {
		return &d, nil
	}
	if !isNoRows(err) {
		return nil, fmt.Errorf("get departamento: %w", err)
	}

	d = entity.Departamento{ProvinciaID: provinciaID, Nombre: nombre, Codigo: slug.De(nombre)}
	err = r.q.QueryRow(ctx,
		`INSERT INTO departamentos (provincia_id, nombre, codigo) VALUES ($1, $2, $3) RETURNING id`,
		d.ProvinciaID, d.Nombre, d.Codigo,
	).Scan(&d.ID)
	if err != nil {
		return nil, fmt.Errorf("insert departamento: %w", err)
	}
	return &d, nil
}

// GetOrCreateMunicipio busca un municipio por nombre dentro del departamento
// o lo crea.
func (r *ReferenciaRepo) GetOrCreateMunicipio(ctx context.Context, departamentoID int64, nombre string) (*entity.Municipio, error) {
	var m entity.Municipio
	err := r.q.QueryRow(ctx,
		`SELECT id, departamento_id, nombre, codigo FROM municipios
		 WHERE departamento_id = $1 AND LOWER(nombre) = LOWER($2)`,
		departamentoID, nombre,
	).Scan(&m.ID, &m.DepartamentoID, &m.Nombre, &m.Codigo)
	if err == nil {
		return &m, nil
	}
	if !isNoRows(err) {
		return nil, fmt.Errorf("get municipio: %w", err)
	}

	m = entity.Municipio{DepartamentoID: departamentoID, Nombre: nombre, Codigo: slug.De(nombre)}
	err = r.q.QueryRow(ctx,
		`INSERT INTO municipios (departamento_id, nombre, codigo) VALUES ($1, $2, $3) RETURNING id`,
		m.DepartamentoID, m.Nombre, m.Codigo,
	).Scan(&m.ID)
	if err != nil {
		return nil, fmt.Errorf("insert municipio: %w", err)
	}
	return &m, nil
}

// GetOrCreateLocalidad busca una localidad por nombre dentro del municipio o
// la crea.
func (r *ReferenciaRepo) GetOrCreateLocalidad(ctx context.Context, municipioID int64, nombre string) (*entity.Localidad, error) {
	var l entity.Localidad
	err := r.q.QueryRow(ctx,
		`SELECT id, municipio_id, nombre, codigo FROM localidades
		 WHERE municipio_id = $1 AND LOWER(nombre) = LOWER($2)`,
		municipioID, nombre,
	).Scan(&l.ID, &l.MunicipioID, &l.Nombre, &l.Codigo)
	if err == nil {
		return &l, nil
	}
	if !isNoRows(err) {
		return nil, fmt.Errorf("get localidad: %w", err)
	}

	l = entity.Localidad{MunicipioID: municipioID, Nombre: nombre, Codigo: slug.De(nombre)}
	err = r.q.QueryRow(ctx,
		`INSERT INTO localidades (municipio_id, nombre, codigo) VALUES ($1, $2, $3) RETURNING id`,
		l.MunicipioID, l.Nombre, l.Codigo,
	).Scan(&l.ID)
	if err != nil {
		return nil, fmt.Errorf("insert localidad: %w", err)
	}
	return &l, nil
}

// GetDepartamentoByID obtiene un departamento por ID.
func (r *ReferenciaRepo) GetDepartamentoByID(ctx context.Context, id int64) (*entity.Departamento, error) {
	var d entity.Departamento
	err := r.q.QueryRow(ctx,
		`SELECT id, provincia_id, nombre, codigo FROM departamentos WHERE id = $1`, id,
	).Scan(&d.ID, &d.ProvinciaID, &d.Nombre, &d.Codigo)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get departamento: %w", err)
	}
	return &d, nil
}

// GetMunicipioByID obtiene un municipio por ID.
func (r *ReferenciaRepo) GetMunicipioByID(ctx context.Context, id int64) (*entity.Municipio, error) {
	var m entity.Municipio
	err := r.q.QueryRow(ctx,
		`SELECT id, departamento_id, nombre, codigo FROM municipios WHERE id = $1`, id,
	).Scan(&m.ID, &m.DepartamentoID, &m.Nombre, &m.Codigo)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get municipio: %w", err)
	}
	return &m, nil
}

// GetLocalidadByID obtiene una localidad por ID.
func (r *ReferenciaRepo) GetLocalidadByID(ctx context.Context, id int64) (*entity.Localidad, error) {
	var l entity.Localidad
	err := r.q.QueryRow(ctx,
		`SELECT id, municipio_id, nombre, codigo FROM localidades WHERE id = $1`, id,
	).Scan(&l.ID, &l.MunicipioID, &l.Nombre, &l.Codigo)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get localidad: %w", err)
	}
	return &l, nil
}

// ─── Rubros ──────────────────────────────────────────────────────────────────

// GetOrCreateRubro busca un rubro por (nombre, tipo) o lo crea.
func (r *ReferenciaRepo) GetOrCreateRubro(ctx context.Context, nombre, tipo string) (*entity.Rubro, error) {
	var rb entity.Rubro
	err := r.q.QueryRow(ctx,
		`SELECT id, nombre, tipo, unidad_medida, orden FROM rubros
		 WHERE LOWER(nombre) = LOWER($1) AND tipo = $2
		 ORDER BY id LIMIT 1`,
		nombre, tipo,
	).Scan(&rb.ID, &rb.Nombre, &rb.Tipo, &rb.UnidadMedida, &rb.Orden)
	if err == nil {
		return &rb, nil
	}
	if !isNoRows(err) {
		return nil, fmt.Errorf("get rubro: %w", err)
	}

	rb = entity.Rubro{Nombre: nombre, Tipo: tipo}
	err = r.q.QueryRow(ctx,
		`INSERT INTO rubros (nombre, tipo, unidad_medida, orden) VALUES ($1, $2, '', 0) RETURNING id`,
		rb.Nombre, rb.Tipo,
	).Scan(&rb.ID)
	if err != nil {
		return nil, fmt.Errorf("insert rubro: %w", err)
	}
	return &rb, nil
}

// GetOrCreateSubRubro busca un subrubro por nombre dentro del rubro o lo crea.
func (r *ReferenciaRepo) GetOrCreateSubRubro(ctx context.Context, rubroID int64, nombre string) (*entity.SubRubro, error) {
	var s entity.SubRubro
	err := r.q.QueryRow(ctx,
		`SELECT id, rubro_id, nombre FROM subrubros
		 WHERE rubro_id = $1 AND LOWER(nombre) = LOWER($2)`,
		rubroID, nombre,
	).Scan(&s.ID, &s.RubroID, &s.Nombre)
	if err == nil {
		return &s, nil
	}
	if !isNoRows(err) {
		return nil, fmt.Errorf("get subrubro: %w", err)
	}

	s = entity.SubRubro{RubroID: rubroID, Nombre: nombre}
	err = r.q.QueryRow(ctx,
		`INSERT INTO subrubros (rubro_id, nombre) VALUES ($1, $2) RETURNING id`,
		s.RubroID, s.Nombre,
	).Scan(&s.ID)
	if err != nil {
		return nil, fmt.Errorf("insert subrubro: %w", err)
	}
	return &s, nil
}

// GetRubroByID obtiene un rubro por ID.
func (r *ReferenciaRepo) GetRubroByID(ctx context.Context, id int64) (*entity.Rubro, error) {
	var rb entity.Rubro
	err := r.q.QueryRow(ctx,
		`SELECT id, nombre, tipo, unidad_medida, orden FROM rubros WHERE id = $1`, id,
	).Scan(&rb.ID, &rb.Nombre, &rb.Tipo, &rb.UnidadMedida, &rb.Orden)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get rubro: %w", err)
	}
	return &rb, nil
}

// ListRubros devuelve todos los rubros ordenados.
func (r *ReferenciaRepo) ListRubros(ctx context.Context) ([]*entity.Rubro, error) {
	rows, err := r.q.Query(ctx, `SELECT id, nombre, tipo, unidad_medida, orden FROM rubros ORDER BY orden, nombre`)
	if err != nil {
		return nil, fmt.Errorf("list rubros: %w", err)
	}
	defer rows.Close()

	var list []*entity.Rubro
	for rows.Next() {
		var rb entity.Rubro
		if err := rows.Scan(&rb.ID, &rb.Nombre, &rb.Tipo, &rb.UnidadMedida, &rb.Orden); err != nil {
			return nil, fmt.Errorf("scan rubro: %w", err)
		}
		list = append(list, &rb)
	}
	return list, rows.Err()
}

// ListSubRubros devuelve los subrubros de un rubro.
func (r *ReferenciaRepo) ListSubRubros(ctx context.Context, rubroID int64) ([]*entity.SubRubro, error) {
	rows, err := r.q.Query(ctx, `SELECT id, rubro_id, nombre FROM subrubros WHERE rubro_id = $1 ORDER BY nombre`, rubroID)
	if err != nil {
		return nil, fmt.Errorf("list subrubros: %w", err)
	}
	defer rows.Close()

	var list []*entity.SubRubro
	for rows.Next() {
		var s entity.SubRubro
		if err := rows.Scan(&s.ID, &s.RubroID, &s.Nombre); err != nil {
			return nil, fmt.Errorf("scan subrubro: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// CreateRubro persiste un rubro (lo usa el seed de la taxonomía).
func (r *ReferenciaRepo) CreateRubro(ctx context.Context, rb *entity.Rubro) error {
	err := r.q.QueryRow(ctx,
		`INSERT INTO rubros (nombre, tipo, unidad_medida, orden) VALUES ($1, $2, $3, $4) RETURNING id`,
		rb.Nombre, rb.Tipo, rb.UnidadMedida, rb.Orden,
	).Scan(&rb.ID)
	if err != nil {
		return fmt.Errorf("insert rubro: %w", err)
	}
	return nil
}

// ─── Saneamiento de duplicados ───────────────────────────────────────────────

// MoverSubRubros reasigna todos los subrubros de un rubro a otro.
func (r *ReferenciaRepo) MoverSubRubros(ctx context.Context, desdeRubroID, haciaRubroID int64) error {
	_, err := r.q.Exec(ctx, `UPDATE subrubros SET rubro_id = $2 WHERE rubro_id = $1`, desdeRubroID, haciaRubroID)
	if err != nil {
		return fmt.Errorf("mover subrubros: %w", err)
	}
	return nil
}

// EliminarSubRubro borra un subrubro.
func (r *ReferenciaRepo) EliminarSubRubro(ctx context.Context, id int64) error {
	_, err := r.q.Exec(ctx, `DELETE FROM subrubros WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("eliminar subrubro: %w", err)
	}
	return nil
}

// RepuntarEmpresas mueve las empresas de un rubro a otro.
func (r *ReferenciaRepo) RepuntarEmpresas(ctx context.Context, desdeRubroID, haciaRubroID int64) error {
	_, err := r.q.Exec(ctx, `UPDATE empresas SET rubro_id = $2 WHERE rubro_id = $1`, desdeRubroID, haciaRubroID)
	if err != nil {
		return fmt.Errorf("repuntar empresas: %w", err)
	}
	return nil
}

// EliminarRubro borra un rubro. Falla si todavía tiene subrubros o empresas
// apuntando (restricción de FK), lo cual es deliberado.
func (r *ReferenciaRepo) EliminarRubro(ctx context.Context, id int64) error {
	_, err := r.q.Exec(ctx, `DELETE FROM rubros WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("eliminar rubro: %w", err)
	}
	return nil
}

// ─── Tipos de empresa ────────────────────────────────────────────────────────

// GetOrCreateTipoEmpresa busca una razón jurídica por nombre o la crea.
func (r *ReferenciaRepo) GetOrCreateTipoEmpresa(ctx context.Context, nombre string) (*entity.TipoEmpresaRef, error) {
	var t entity.TipoEmpresaRef
	err := r.q.QueryRow(ctx,
		`SELECT id, nombre, codigo FROM tipos_empresa WHERE LOWER(nombre) = LOWER($1)`, nombre,
	).Scan(&t.ID, &t.Nombre, &t.Codigo)
	if err == nil {
		return &t, nil
	}
	if !isNoRows(err) {
		return nil, fmt.Errorf("get tipo empresa: %w", err)
	}

	t = entity.TipoEmpresaRef{Nombre: nombre, Codigo: slug.De(nombre)}
	err = r.q.QueryRow(ctx,
		`INSERT INTO tipos_empresa (nombre, codigo) VALUES ($1, $2) RETURNING id`,
		t.Nombre, t.Codigo,
	).Scan(&t.ID)
	if err != nil {
		return nil, fmt.Errorf("insert tipo empresa: %w", err)
	}
	return &t, nil
}

// GetTipoEmpresaByID obtiene una razón jurídica por ID.
func (r *ReferenciaRepo) GetTipoEmpresaByID(ctx context.Context, id int64) (*entity.TipoEmpresaRef, error) {
	var t entity.TipoEmpresaRef
	err := r.q.QueryRow(ctx, `SELECT id, nombre, codigo FROM tipos_empresa WHERE id = $1`, id).
		Scan(&t.ID, &t.Nombre, &t.Codigo)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tipo empresa: %w", err)
	}
	return &t, nil
}

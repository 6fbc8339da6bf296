package postgres

import (
	"context"
	"fmt"

	"github.com/catamarca-comercio/registro-exportadores/internal/domain/entity"
	"github.com/catamarca-comercio/registro-exportadores/internal/domain/repository"
)

var _ repository.ProductoRepository = (*ProductoRepo)(nil)

// ProductoRepo implementación del puerto ProductoRepository sobre
// PostgreSQL, incluida la posición arancelaria (a lo sumo una por producto).
type ProductoRepo struct {
	q Querier
}

// NewProductoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductoRepository(q Querier) *ProductoRepo {
	return &ProductoRepo{q: q}
}

const columnasProducto = `
	id, empresa_id, nombre, descripcion, capacidad_productiva, unidad_medida,
	periodo, es_principal, precio, moneda, fecha_creacion`

// Create persiste un producto.
func (r *ProductoRepo) Create(ctx context.Context, p *entity.ProductoEmpresa) error {
	query := `
		INSERT INTO productos_empresa (` + columnasProducto + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.EmpresaID, p.Nombre, p.Descripcion, p.CapacidadProductiva, p.UnidadMedida,
		p.Periodo, p.EsPrincipal, p.Precio, p.Moneda, p.FechaCreacion,
	)
	if err != nil {
		return fmt.Errorf("insert producto: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductoRepo) GetByID(ctx context.Context, id string) (*entity.ProductoEmpresa, error) {
	query := `SELECT ` + columnasProducto + ` FROM productos_empresa WHERE id = $1`
	p, err := scanProducto(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get producto: %w", err)
	}
	return p, nil
}

// ListByEmpresa devuelve los productos de una empresa, el principal primero.
func (r *ProductoRepo) ListByEmpresa(ctx context.Context, empresaID string) ([]*entity.ProductoEmpresa, error) {
	query := `
		SELECT ` + columnasProducto + ` FROM productos_empresa
		WHERE empresa_id = $1
		ORDER BY es_principal DESC, fecha_creacion`
	rows, err := r.q.Query(ctx, query, empresaID)
	if err != nil {
		return nil, fmt.Errorf("list productos: %w", err)
	}
	defer rows.Close()

	var list []*entity.ProductoEmpresa
	for rows.Next() {
		p, err := scanProducto(rows)
		if err != nil {
			return nil, fmt.Errorf("scan producto: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Update actualiza un producto.
func (r *ProductoRepo) Update(ctx context.Context, p *entity.ProductoEmpresa) error {
	query := `
		UPDATE productos_empresa SET nombre = $2, descripcion = $3, capacidad_productiva = $4,
			unidad_medida = $5, periodo = $6, es_principal = $7, precio = $8, moneda = $9
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Nombre, p.Descripcion, p.CapacidadProductiva,
		p.UnidadMedida, p.Periodo, p.EsPrincipal, p.Precio, p.Moneda,
	)
	if err != nil {
		return fmt.Errorf("update producto: %w", err)
	}
	return nil
}

// Delete elimina un producto; su posición arancelaria cae en cascada.
func (r *ProductoRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM productos_empresa WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete producto: %w", err)
	}
	return nil
}

// UpsertPosicion crea o reemplaza la posición arancelaria de un producto.
func (r *ProductoRepo) UpsertPosicion(ctx context.Context, pos *entity.PosicionArancelaria) error {
	query := `
		INSERT INTO posiciones_arancelarias (id, producto_id, codigo, descripcion)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (producto_id) DO UPDATE SET codigo = EXCLUDED.codigo, descripcion = EXCLUDED.descripcion`
	_, err := r.q.Exec(ctx, query, pos.ID, pos.ProductoID, pos.Codigo, pos.Descripcion)
	if err != nil {
		return fmt.Errorf("upsert posicion arancelaria: %w", err)
	}
	return nil
}

// GetPosicion obtiene la posición arancelaria de un producto si declara una.
func (r *ProductoRepo) GetPosicion(ctx context.Context, productoID string) (*entity.PosicionArancelaria, error) {
	query := `SELECT id, producto_id, codigo, descripcion FROM posiciones_arancelarias WHERE producto_id = $1`
	var pos entity.PosicionArancelaria
	err := r.q.QueryRow(ctx, query, productoID).Scan(&pos.ID, &pos.ProductoID, &pos.Codigo, &pos.Descripcion)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get posicion arancelaria: %w", err)
	}
	return &pos, nil
}

// EmpresaTienePosicion informa si algún producto de la empresa declara
// posición arancelaria.
func (r *ProductoRepo) EmpresaTienePosicion(ctx context.Context, empresaID string) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM posiciones_arancelarias pa
			JOIN productos_empresa p ON p.id = pa.producto_id
			WHERE p.empresa_id = $1)`
	var existe bool
	if err := r.q.QueryRow(ctx, query, empresaID).Scan(&existe); err != nil {
		return false, fmt.Errorf("empresa tiene posicion: %w", err)
	}
	return existe, nil
}

func scanProducto(row filaScanner) (*entity.ProductoEmpresa, error) {
	var p entity.ProductoEmpresa
	err := row.Scan(
		&p.ID, &p.EmpresaID, &p.Nombre, &p.Descripcion, &p.CapacidadProductiva, &p.UnidadMedida,
		&p.Periodo, &p.EsPrincipal, &p.Precio, &p.Moneda, &p.FechaCreacion,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

var _ repository.ServicioRepository = (*ServicioRepo)(nil)

// ServicioRepo implementación del puerto ServicioRepository sobre PostgreSQL.
type ServicioRepo struct {
	q Querier
}

// NewServicioRepository construye el adaptador. Pasar pool o tx (Querier).
func NewServicioRepository(q Querier) *ServicioRepo {
	return &ServicioRepo{q: q}
}

const columnasServicio = `
	id, empresa_id, nombre, descripcion, tipo_servicio, sector_atendido, alcance,
	paises_destino, exporta_servicios, forma_contratacion, certificaciones_tecnicas,
	equipo_tecnico, equipo_comercial, fecha_creacion`

// Create persiste un servicio.
func (r *ServicioRepo) Create(ctx context.Context, s *entity.ServicioEmpresa) error {
	query := `
		INSERT INTO servicios_empresa (` + columnasServicio + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.EmpresaID, s.Nombre, s.Descripcion, s.TipoServicio, s.SectorAtendido, s.Alcance,
		s.PaisesDestino, s.ExportaServicios, s.FormaContratacion, s.CertificacionesTecnicas,
		s.EquipoTecnico, s.EquipoComercial, s.FechaCreacion,
	)
	if err != nil {
		return fmt.Errorf("insert servicio: %w", err)
	}
	return nil
}

// GetByID obtiene un servicio por ID.
func (r *ServicioRepo) GetByID(ctx context.Context, id string) (*entity.ServicioEmpresa, error) {
	query := `SELECT ` + columnasServicio + ` FROM servicios_empresa WHERE id = $1`
	s, err := scanServicio(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get servicio: %w", err)
	}
	return s, nil
}

// ListByEmpresa devuelve los servicios de una empresa.
func (r *ServicioRepo) ListByEmpresa(ctx context.Context, empresaID string) ([]*entity.ServicioEmpresa, error) {
	query := `
		SELECT ` + columnasServicio + ` FROM servicios_empresa
		WHERE empresa_id = $1 ORDER BY fecha_creacion`
	rows, err := r.q.Query(ctx, query, empresaID)
	if err != nil {
		return nil, fmt.Errorf("list servicios: %w", err)
	}
	defer rows.Close()

	var list []*entity.ServicioEmpresa
	for rows.Next() {
		s, err := scanServicio(rows)
		if err != nil {
			return nil, fmt.Errorf("scan servicio: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// Update actualiza un servicio.
func (r *ServicioRepo) Update(ctx context.Context, s *entity.ServicioEmpresa) error {
	query := `
		UPDATE servicios_empresa SET nombre = $2, descripcion = $3, tipo_servicio = $4,
			sector_atendido = $5, alcance = $6, paises_destino = $7, exporta_servicios = $8,
			forma_contratacion = $9, certificaciones_tecnicas = $10, equipo_tecnico = $11,
			equipo_comercial = $12
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.Nombre, s.Descripcion, s.TipoServicio,
		s.SectorAtendido, s.Alcance, s.PaisesDestino, s.ExportaServicios,
		s.FormaContratacion, s.CertificacionesTecnicas, s.EquipoTecnico,
		s.EquipoComercial,
	)
	if err != nil {
		return fmt.Errorf("update servicio: %w", err)
	}
	return nil
}

// Delete elimina un servicio.
func (r *ServicioRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM servicios_empresa WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete servicio: %w", err)
	}
	return nil
}

func scanServicio(row filaScanner) (*entity.ServicioEmpresa, error) {
	var s entity.ServicioEmpresa
	err := row.Scan(
		&s.ID, &s.EmpresaID, &s.Nombre, &s.Descripcion, &s.TipoServicio, &s.SectorAtendido, &s.Alcance,
		&s.PaisesDestino, &s.ExportaServicios, &s.FormaContratacion, &s.CertificacionesTecnicas,
		&s.EquipoTecnico, &s.EquipoComercial, &s.FechaCreacion,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/catamarca-comercio/registro-exportadores/internal/domain"
	"github.com/catamarca-comercio/registro-exportadores/internal/domain/entity"
	"github.com/catamarca-comercio/registro-exportadores/internal/domain/repository"
)

var (
	_ repository.EmpresaRepository      = (*EmpresaRepo)(nil)
	_ repository.EmpresaStatsRepository = (*EmpresaRepo)(nil)
)

// EmpresaRepo implementación de los puertos EmpresaRepository y
// EmpresaStatsRepository sobre PostgreSQL. Los bloques de contacto se
// guardan en columnas JSONB.
type EmpresaRepo struct {
	q Querier
}

// NewEmpresaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewEmpresaRepository(q Querier) *EmpresaRepo {
	return &EmpresaRepo{q: q}
}

const columnasEmpresa = `
	e.id, e.razon_social, e.nombre_fantasia, e.cuit, e.tipo_sociedad, e.tipo_empresa,
	e.direccion, e.codigo_postal, e.provincia_id, e.departamento_id, e.municipio_id, e.localidad_id,
	e.latitud, e.longitud, e.geo_referencia,
	e.telefono, e.correo, e.sitioweb, e.redes_sociales,
	e.contacto_principal, e.contacto_secundario, e.contacto_terciario,
	e.exporta, e.destino_exporta, e.tipo_exportacion, e.importa, e.tipo_importacion, e.frecuencia_importacion,
	e.certificado_pyme, e.certificaciones_internac, e.certificaciones,
	e.promo2idiomas, e.idiomas_trabaja, e.interes_exportar,
	e.participo_feria_nacional, e.participo_feria_internacional,
	e.capacidad_productiva, e.periodo_capacidad,
	e.rubro_id, e.sub_rubro_id, e.tipo_empresa_id,
	e.descripcion_actividad, e.observaciones,
	e.logo_path, e.catalogo_path, e.archivo_certs_path, e.archivo_ferias_path,
	e.usuario_id, e.creado_por, e.actualizado_por, e.fecha_creacion, e.fecha_actualizacion`

// Create persiste una empresa nueva.
func (r *EmpresaRepo) Create(ctx context.Context, e *entity.Empresa) error {
	query := `
		INSERT INTO empresas (
			id, razon_social, nombre_fantasia, cuit, tipo_sociedad, tipo_empresa,
			direccion, codigo_postal, provincia_id, departamento_id, municipio_id, localidad_id,
			latitud, longitud, geo_referencia,
			telefono, correo, sitioweb, redes_sociales,
			contacto_principal, contacto_secundario, contacto_terciario,
			exporta, destino_exporta, tipo_exportacion, importa, tipo_importacion, frecuencia_importacion,
			certificado_pyme, certificaciones_internac, certificaciones,
			promo2idiomas, idiomas_trabaja, interes_exportar,
			participo_feria_nacional, participo_feria_internacional,
			capacidad_productiva, periodo_capacidad,
			rubro_id, sub_rubro_id, tipo_empresa_id,
			descripcion_actividad, observaciones,
			logo_path, catalogo_path, archivo_certs_path, archivo_ferias_path,
			usuario_id, creado_por, actualizado_por, fecha_creacion, fecha_actualizacion)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17,
			$18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31, $32, $33,
			$34, $35, $36, $37, $38, $39, $40, $41, $42, $43, $44, $45, $46, $47, $48, $49,
			$50, $51, $52)`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.RazonSocial, e.NombreFantasia, e.CUIT, e.TipoSociedad, e.Tipo,
		e.Direccion, e.CodigoPostal, e.ProvinciaID, e.DepartamentoID, e.MunicipioID, e.LocalidadID,
		e.Latitud, e.Longitud, e.GeoReferencia,
		e.Telefono, e.Correo, e.SitioWeb, e.RedesSociales,
		comoJSON(e.ContactoPrincipal), comoJSON(e.ContactoSecundario), comoJSON(e.ContactoTerciario),
		e.Exporta, e.DestinoExporta, e.TipoExportacion, e.Importa, e.TipoImportacion, e.FrecuenciaImportacion,
		e.CertificadoPyme, e.CertificacionesInternac, e.Certificaciones,
		e.Promo2Idiomas, e.IdiomasTrabaja, e.InteresExportar,
		e.ParticipoFeriaNacional, e.ParticipoFeriaInternacional,
		e.CapacidadProductiva, e.PeriodoCapacidad,
		e.RubroID, e.SubRubroID, e.TipoEmpresaID,
		e.DescripcionActividad, e.Observaciones,
		e.LogoPath, e.CatalogoPath, e.ArchivoCertsPath, e.ArchivoFeriasPath,
		e.UsuarioID, e.CreadoPor, e.ActualizadoPor, e.FechaCreacion, e.FechaActualizacion,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrCUITDuplicado
		}
		return fmt.Errorf("insert empresa: %w", err)
	}
	return nil
}

// GetByID obtiene una empresa por ID.
func (r *EmpresaRepo) GetByID(ctx context.Context, id string) (*entity.Empresa, error) {
	return r.buscar(ctx, "e.id = $1", id)
}

// GetByCUIT obtiene una empresa por CUIT.
func (r *EmpresaRepo) GetByCUIT(ctx context.Context, cuit string) (*entity.Empresa, error) {
	return r.buscar(ctx, "e.cuit = $1", cuit)
}

// GetByUsuario obtiene la empresa de una cuenta dueña.
func (r *EmpresaRepo) GetByUsuario(ctx context.Context, usuarioID string) (*entity.Empresa, error) {
	return r.buscar(ctx, "e.usuario_id = $1", usuarioID)
}

func (r *EmpresaRepo) buscar(ctx context.Context, cond string, arg any) (*entity.Empresa, error) {
	query := fmt.Sprintf(`SELECT %s FROM empresas e WHERE %s LIMIT 1`, columnasEmpresa, cond)
	e, err := scanEmpresa(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get empresa: %w", err)
	}
	return e, nil
}

// Update actualiza una empresa. CUIT y datos de creación no se reescriben.
func (r *EmpresaRepo) Update(ctx context.Context, e *entity.Empresa) error {
	query := `
		UPDATE empresas SET
			razon_social = $2, nombre_fantasia = $3, tipo_sociedad = $4, tipo_empresa = $5,
			direccion = $6, codigo_postal = $7, provincia_id = $8, departamento_id = $9,
			municipio_id = $10, localidad_id = $11, latitud = $12, longitud = $13, geo_referencia = $14,
			telefono = $15, correo = $16, sitioweb = $17, redes_sociales = $18,
			contacto_principal = $19, contacto_secundario = $20, contacto_terciario = $21,
			exporta = $22, destino_exporta = $23, tipo_exportacion = $24, importa = $25,
			tipo_importacion = $26, frecuencia_importacion = $27,
			certificado_pyme = $28, certificaciones_internac = $29, certificaciones = $30,
			promo2idiomas = $31, idiomas_trabaja = $32, interes_exportar = $33,
			participo_feria_nacional = $34, participo_feria_internacional = $35,
			capacidad_productiva = $36, periodo_capacidad = $37,
			rubro_id = $38, sub_rubro_id = $39, tipo_empresa_id = $40,
			descripcion_actividad = $41, observaciones = $42,
			logo_path = $43, catalogo_path = $44, archivo_certs_path = $45, archivo_ferias_path = $46,
			actualizado_por = $47, fecha_actualizacion = $48
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.RazonSocial, e.NombreFantasia, e.TipoSociedad, e.Tipo,
		e.Direccion, e.CodigoPostal, e.ProvinciaID, e.DepartamentoID,
		e.MunicipioID, e.LocalidadID, e.Latitud, e.Longitud, e.GeoReferencia,
		e.Telefono, e.Correo, e.SitioWeb, e.RedesSociales,
		comoJSON(e.ContactoPrincipal), comoJSON(e.ContactoSecundario), comoJSON(e.ContactoTerciario),
		e.Exporta, e.DestinoExporta, e.TipoExportacion, e.Importa,
		e.TipoImportacion, e.FrecuenciaImportacion,
		e.CertificadoPyme, e.CertificacionesInternac, e.Certificaciones,
		e.Promo2Idiomas, e.IdiomasTrabaja, e.InteresExportar,
		e.ParticipoFeriaNacional, e.ParticipoFeriaInternacional,
		e.CapacidadProductiva, e.PeriodoCapacidad,
		e.RubroID, e.SubRubroID, e.TipoEmpresaID,
		e.DescripcionActividad, e.Observaciones,
		e.LogoPath, e.CatalogoPath, e.ArchivoCertsPath, e.ArchivoFeriasPath,
		e.ActualizadoPor, e.FechaActualizacion,
	)
	if err != nil {
		return fmt.Errorf("update empresa: %w", err)
	}
	return nil
}

// Delete elimina una empresa. Los hijos caen por ON DELETE CASCADE y la
// solicitud de origen queda con empresa_creada_id en null (SET NULL).
func (r *EmpresaRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM empresas WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete empresa: %w", err)
	}
	return nil
}

// List devuelve empresas que pasan el filtro, paginadas.
func (r *EmpresaRepo) List(ctx context.Context, f repository.FiltroEmpresas) ([]*entity.Empresa, error) {
	where, args := condicionesFiltro(f)
	query := fmt.Sprintf(`
		SELECT %s
		FROM empresas e
		LEFT JOIN departamentos d ON d.id = e.departamento_id
		LEFT JOIN municipios m ON m.id = e.municipio_id
		LEFT JOIN localidades l ON l.id = e.localidad_id
		LEFT JOIN rubros rb ON rb.id = e.rubro_id
		LEFT JOIN matriz_clasificacion mc ON mc.empresa_id = e.id
		%s
		ORDER BY %s`, columnasEmpresa, where, ordenFiltro(f))
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.Limit, f.Offset)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list empresas: %w", err)
	}
	defer rows.Close()

	var list []*entity.Empresa
	for rows.Next() {
		e, err := scanEmpresa(rows)
		if err != nil {
			return nil, fmt.Errorf("scan empresa: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

// Count cuenta las empresas que pasan el filtro, sin paginación.
func (r *EmpresaRepo) Count(ctx context.Context, f repository.FiltroEmpresas) (int, error) {
	where, args := condicionesFiltro(f)
	query := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM empresas e
		LEFT JOIN departamentos d ON d.id = e.departamento_id
		LEFT JOIN municipios m ON m.id = e.municipio_id
		LEFT JOIN localidades l ON l.id = e.localidad_id
		LEFT JOIN rubros rb ON rb.id = e.rubro_id
		LEFT JOIN matriz_clasificacion mc ON mc.empresa_id = e.id
		%s`, where)
	var n int
	if err := r.q.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count empresas: %w", err)
	}
	return n, nil
}

// condicionesFiltro arma el WHERE parametrizado del listado.
func condicionesFiltro(f repository.FiltroEmpresas) (string, []any) {
	var conds []string
	var args []any

	agregar := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.UsuarioID != "" {
		agregar("e.usuario_id = $%d", f.UsuarioID)
	}
	if f.Tipo != "" {
		agregar("e.tipo_empresa = $%d", f.Tipo)
	}
	if f.Exporta != "" {
		agregar("e.exporta = $%d", f.Exporta)
	}
	if f.Importa != nil {
		agregar("e.importa = $%d", *f.Importa)
	}
	if f.CertificadoPyme != nil {
		agregar("e.certificado_pyme = $%d", *f.CertificadoPyme)
	}
	if f.Promo2Idiomas != nil {
		agregar("e.promo2idiomas = $%d", *f.Promo2Idiomas)
	}
	if f.RubroID != nil {
		agregar("e.rubro_id = $%d", *f.RubroID)
	}
	if f.TipoEmpresaID != nil {
		agregar("e.tipo_empresa_id = $%d", *f.TipoEmpresaID)
	}
	if f.DepartamentoID != nil {
		agregar("e.departamento_id = $%d", *f.DepartamentoID)
	}
	if f.CategoriaMatriz != "" {
		agregar("mc.categoria = $%d", f.CategoriaMatriz)
	}
	if f.Busqueda != "" {
		args = append(args, "%"+f.Busqueda+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf(`(
			e.razon_social ILIKE $%d OR e.cuit ILIKE $%d OR e.correo ILIKE $%d OR
			e.telefono ILIKE $%d OR e.direccion ILIKE $%d OR
			d.nombre ILIKE $%d OR m.nombre ILIKE $%d OR l.nombre ILIKE $%d OR rb.nombre ILIKE $%d)`,
			n, n, n, n, n, n, n, n, n))
	}

	if len(conds) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}

// ordenFiltro traduce el campo de orden pedido a SQL. Cualquier valor fuera
// de la lista cae al orden por defecto.
func ordenFiltro(f repository.FiltroEmpresas) string {
	dir := "ASC"
	if f.Descendente {
		dir = "DESC"
	}
	switch f.Orden {
	case "razon_social":
		return "e.razon_social " + dir
	case "fecha_creacion":
		return "e.fecha_creacion " + dir
	case "puntaje":
		return "mc.puntaje_total " + dir + " NULLS LAST"
	default:
		return "e.fecha_creacion DESC"
	}
}

func scanEmpresa(row filaScanner) (*entity.Empresa, error) {
	var (
		e                                entity.Empresa
		principal, secundario, terciario []byte
	)
	err := row.Scan(
		&e.ID, &e.RazonSocial, &e.NombreFantasia, &e.CUIT, &e.TipoSociedad, &e.Tipo,
		&e.Direccion, &e.CodigoPostal, &e.ProvinciaID, &e.DepartamentoID, &e.MunicipioID, &e.LocalidadID,
		&e.Latitud, &e.Longitud, &e.GeoReferencia,
		&e.Telefono, &e.Correo, &e.SitioWeb, &e.RedesSociales,
		&principal, &secundario, &terciario,
		&e.Exporta, &e.DestinoExporta, &e.TipoExportacion, &e.Importa, &e.TipoImportacion, &e.FrecuenciaImportacion,
		&e.CertificadoPyme, &e.CertificacionesInternac, &e.Certificaciones,
		&e.Promo2Idiomas, &e.IdiomasTrabaja, &e.InteresExportar,
		&e.ParticipoFeriaNacional, &e.ParticipoFeriaInternacional,
		&e.CapacidadProductiva, &e.PeriodoCapacidad,
		&e.RubroID, &e.SubRubroID, &e.TipoEmpresaID,
		&e.DescripcionActividad, &e.Observaciones,
		&e.LogoPath, &e.CatalogoPath, &e.ArchivoCertsPath, &e.ArchivoFeriasPath,
		&e.UsuarioID, &e.CreadoPor, &e.ActualizadoPor, &e.FechaCreacion, &e.FechaActualizacion,
	)
	if err != nil {
		return nil, err
	}
	if err := desdeJSON(principal, &e.ContactoPrincipal); err != nil {
		return nil, err
	}
	if err := desdeJSON(secundario, &e.ContactoSecundario); err != nil {
		return nil, err
	}
	if err := desdeJSON(terciario, &e.ContactoTerciario); err != nil {
		return nil, err
	}
	return &e, nil
}

// ─── Agregaciones del dashboard ──────────────────────────────────────────────

// CountPorExporta agrupa las empresas por respuesta al campo exporta.
func (r *EmpresaRepo) CountPorExporta(ctx context.Context) (map[string]int, error) {
	return r.contarPor(ctx, `SELECT exporta, COUNT(*) FROM empresas GROUP BY exporta`)
}

// CountPorTipo agrupa por tipo de empresa.
func (r *EmpresaRepo) CountPorTipo(ctx context.Context) (map[string]int, error) {
	return r.contarPor(ctx, `SELECT tipo_empresa, COUNT(*) FROM empresas GROUP BY tipo_empresa`)
}

// CountPorRubro agrupa por nombre de rubro; las empresas sin rubro no cuentan.
func (r *EmpresaRepo) CountPorRubro(ctx context.Context) (map[string]int, error) {
	return r.contarPor(ctx, `
		SELECT rb.nombre, COUNT(*)
		FROM empresas e
		JOIN rubros rb ON rb.id = e.rubro_id
		GROUP BY rb.nombre`)
}

func (r *EmpresaRepo) contarPor(ctx context.Context, query string) (map[string]int, error) {
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("count empresas: %w", err)
	}
	defer rows.Close()

	out := map[string]int{}
	for rows.Next() {
		var clave string
		var n int
		if err := rows.Scan(&clave, &n); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		out[clave] = n
	}
	return out, rows.Err()
}

// CountCreadasDesde cuenta las altas a partir de una fecha.
func (r *EmpresaRepo) CountCreadasDesde(ctx context.Context, desde time.Time) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM empresas WHERE fecha_creacion >= $1`, desde).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count empresas recientes: %w", err)
	}
	return n, nil
}

// UltimasCreadas devuelve las n altas más recientes.
func (r *EmpresaRepo) UltimasCreadas(ctx context.Context, n int) ([]*entity.Empresa, error) {
	return r.List(ctx, repository.FiltroEmpresas{Orden: "fecha_creacion", Descendente: true, Limit: n})
}

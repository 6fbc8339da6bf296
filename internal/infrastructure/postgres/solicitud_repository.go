package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/catamarca-comercio/registro-exportadores/internal/domain/entity"
	"github.com/catamarca-comercio/registro-exportadores/internal/domain/repository"
)

var _ repository.SolicitudRepository = (*SolicitudRepo)(nil)

// SolicitudRepo implementación del puerto SolicitudRepository sobre
// PostgreSQL. El snapshot del formulario (contactos, productos, servicios,
// actividades) se guarda en columnas JSONB: las solicitudes rechazadas nunca
// generan filas relacionales.
type SolicitudRepo struct {
	q Querier
}

// NewSolicitudRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSolicitudRepository(q Querier) *SolicitudRepo {
	return &SolicitudRepo{q: q}
}

const columnasSolicitud = `
	id, cuit, razon_social, nombre_fantasia, tipo_sociedad, tipo_empresa,
	direccion, codigo_postal, departamento, municipio, localidad, latitud, longitud,
	telefono, correo, sitioweb, redes_sociales,
	rubro_principal, sub_rubro, tipo_empresa_ref, descripcion_actividad,
	contacto_principal, contactos_secundarios,
	exporta, destino_exporta, tipo_exportacion, importa, tipo_importacion, frecuencia_importacion,
	certificado_pyme, certificaciones_internac, certificaciones,
	promo2idiomas, idiomas_trabaja, interes_exportar,
	productos, servicios, actividades,
	catalogo_path, logo_path, archivo_certs_path, archivo_ferias_path,
	token_confirmacion, email_confirmado,
	estado, usuario_id, aprobado_por, fecha_aprobacion, observaciones, empresa_creada_id,
	fecha_creacion`

// Create persiste una solicitud nueva con su snapshot completo.
func (r *SolicitudRepo) Create(ctx context.Context, s *entity.Solicitud) error {
	query := `
		INSERT INTO solicitudes (` + columnasSolicitud + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17,
			$18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31, $32, $33,
			$34, $35, $36, $37, $38, $39, $40, $41, $42, $43, $44, $45, $46, $47, $48, $49,
			$50, $51)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.CUIT, s.RazonSocial, s.NombreFantasia, s.TipoSociedad, s.TipoEmpresa,
		s.Direccion, s.CodigoPostal, s.Departamento, s.Municipio, s.Localidad, s.Latitud, s.Longitud,
		s.Telefono, s.Correo, s.SitioWeb, s.RedesSociales,
		s.RubroPrincipal, s.SubRubro, s.TipoEmpresaRef, s.DescripcionActividad,
		comoJSON(s.ContactoPrincipal), comoJSON(s.ContactosSecundarios),
		s.Exporta, s.DestinoExporta, s.TipoExportacion, s.Importa, s.TipoImportacion, s.FrecuenciaImportacion,
		s.CertificadoPyme, s.CertificacionesInternac, s.Certificaciones,
		s.Promo2Idiomas, s.IdiomasTrabaja, s.InteresExportar,
		comoJSON(s.Productos), comoJSON(s.Servicios), comoJSON(s.Actividades),
		s.CatalogoPath, s.LogoPath, s.ArchivoCertsPath, s.ArchivoFeriasPath,
		s.TokenConfirmacion, s.EmailConfirmado,
		s.Estado, s.UsuarioID, s.AprobadoPor, s.FechaAprobacion, s.Observaciones, s.EmpresaCreadaID,
		s.FechaCreacion,
	)
	if err != nil {
		return fmt.Errorf("insert solicitud: %w", err)
	}
	return nil
}

// GetByID obtiene una solicitud por ID.
func (r *SolicitudRepo) GetByID(ctx context.Context, id string) (*entity.Solicitud, error) {
	return r.buscar(ctx, "id = $1", id)
}

// GetByUsuario obtiene la solicitud de una cuenta (la más reciente si
// hubiera más de una por correcciones manuales).
func (r *SolicitudRepo) GetByUsuario(ctx context.Context, usuarioID string) (*entity.Solicitud, error) {
	return r.buscar(ctx, "usuario_id = $1", usuarioID)
}

func (r *SolicitudRepo) buscar(ctx context.Context, cond string, arg any) (*entity.Solicitud, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM solicitudes WHERE %s
		ORDER BY fecha_creacion DESC LIMIT 1`, columnasSolicitud, cond)
	s, err := scanSolicitud(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get solicitud: %w", err)
	}
	return s, nil
}

// ExisteAprobadaPorCUIT informa si ya hay una solicitud aprobada con ese CUIT.
func (r *SolicitudRepo) ExisteAprobadaPorCUIT(ctx context.Context, cuit string) (bool, error) {
	var existe bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM solicitudes WHERE cuit = $1 AND estado = $2)`,
		cuit, entity.SolicitudAprobada,
	).Scan(&existe)
	if err != nil {
		return false, fmt.Errorf("existe solicitud aprobada: %w", err)
	}
	return existe, nil
}

// Update persiste estado, resolución y vínculo a empresa. El snapshot del
// formulario es inmutable y no se reescribe.
func (r *SolicitudRepo) Update(ctx context.Context, s *entity.Solicitud) error {
	query := `
		UPDATE solicitudes SET estado = $2, email_confirmado = $3, aprobado_por = $4,
			fecha_aprobacion = $5, observaciones = $6, empresa_creada_id = $7
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.Estado, s.EmailConfirmado, s.AprobadoPor,
		s.FechaAprobacion, s.Observaciones, s.EmpresaCreadaID,
	)
	if err != nil {
		return fmt.Errorf("update solicitud: %w", err)
	}
	return nil
}

// List devuelve solicitudes paginadas, opcionalmente filtradas por estado,
// las más nuevas primero.
func (r *SolicitudRepo) List(ctx context.Context, estado string, limit, offset int) ([]*entity.Solicitud, error) {
	query := `
		SELECT ` + columnasSolicitud + ` FROM solicitudes
		WHERE ($1 = '' OR estado = $1)
		ORDER BY fecha_creacion DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, estado, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list solicitudes: %w", err)
	}
	defer rows.Close()

	var list []*entity.Solicitud
	for rows.Next() {
		s, err := scanSolicitud(rows)
		if err != nil {
			return nil, fmt.Errorf("scan solicitud: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// CountPorEstado agrupa las solicitudes por estado.
func (r *SolicitudRepo) CountPorEstado(ctx context.Context) (map[string]int, error) {
	rows, err := r.q.Query(ctx, `SELECT estado, COUNT(*) FROM solicitudes GROUP BY estado`)
	if err != nil {
		return nil, fmt.Errorf("count solicitudes: %w", err)
	}
	defer rows.Close()

	out := map[string]int{}
	for rows.Next() {
		var estado string
		var n int
		if err := rows.Scan(&estado, &n); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		out[estado] = n
	}
	return out, rows.Err()
}

func scanSolicitud(row filaScanner) (*entity.Solicitud, error) {
	var (
		s                                       entity.Solicitud
		contactoPrincipal, contactosSecundarios []byte
		productos, servicios, actividades       []byte
	)
	err := row.Scan(
		&s.ID, &s.CUIT, &s.RazonSocial, &s.NombreFantasia, &s.TipoSociedad, &s.TipoEmpresa,
		&s.Direccion, &s.CodigoPostal, &s.Departamento, &s.Municipio, &s.Localidad, &s.Latitud, &s.Longitud,
		&s.Telefono, &s.Correo, &s.SitioWeb, &s.RedesSociales,
		&s.RubroPrincipal, &s.SubRubro, &s.TipoEmpresaRef, &s.DescripcionActividad,
		&contactoPrincipal, &contactosSecundarios,
		&s.Exporta, &s.DestinoExporta, &s.TipoExportacion, &s.Importa, &s.TipoImportacion, &s.FrecuenciaImportacion,
		&s.CertificadoPyme, &s.CertificacionesInternac, &s.Certificaciones,
		&s.Promo2Idiomas, &s.IdiomasTrabaja, &s.InteresExportar,
		&productos, &servicios, &actividades,
		&s.CatalogoPath, &s.LogoPath, &s.ArchivoCertsPath, &s.ArchivoFeriasPath,
		&s.TokenConfirmacion, &s.EmailConfirmado,
		&s.Estado, &s.UsuarioID, &s.AprobadoPor, &s.FechaAprobacion, &s.Observaciones, &s.EmpresaCreadaID,
		&s.FechaCreacion,
	)
	if err != nil {
		return nil, err
	}
	if err := desdeJSON(contactoPrincipal, &s.ContactoPrincipal); err != nil {
		return nil, err
	}
	if err := desdeJSON(contactosSecundarios, &s.ContactosSecundarios); err != nil {
		return nil, err
	}
	if err := desdeJSON(productos, &s.Productos); err != nil {
		return nil, err
	}
	if err := desdeJSON(servicios, &s.Servicios); err != nil {
		return nil, err
	}
	if err := desdeJSON(actividades, &s.Actividades); err != nil {
		return nil, err
	}
	return &s, nil
}

// comoJSON serializa un valor para una columna JSONB. Un error acá sería un
// bug de tipos, así que degrada a null.
func comoJSON(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return b
}

func desdeJSON(b []byte, dest any) error {
	if len(b) == 0 {
		return nil
	}
	return json.Unmarshal(b, dest)
}

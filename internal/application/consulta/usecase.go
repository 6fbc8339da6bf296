// Package consulta implementa la cara de lectura del padrón: listados con
// visibilidad por rol, detalle con hijos, tablero de la dirección y la
// proyección de campos para el PDF de exportación.
package consulta

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/catamarca-comercio/registro-exportadores/internal/application/autorizacion"
	"github.com/catamarca-comercio/registro-exportadores/internal/application/dto"
	"github.com/catamarca-comercio/registro-exportadores/internal/domain"
	"github.com/catamarca-comercio/registro-exportadores/internal/domain/entity"
	"github.com/catamarca-comercio/registro-exportadores/internal/domain/repository"
)

// UseCase agrupa las consultas del padrón. No escribe nada salvo el registro
// de auditoría de accesos denegados (vía el gate).
type UseCase struct {
	empresaRepo   repository.EmpresaRepository
	stats         repository.EmpresaStatsRepository
	productoRepo  repository.ProductoRepository
	servicioRepo  repository.ServicioRepository
	solicitudRepo repository.SolicitudRepository
	matrizRepo    repository.MatrizRepository
	referencias   repository.ReferenciaRepository
	auditoriaRepo repository.AuditoriaRepository
	gate          *autorizacion.Gate
	log           zerolog.Logger
}

// NewUseCase construye el caso de uso de consulta.
func NewUseCase(
	empresas repository.EmpresaRepository,
	stats repository.EmpresaStatsRepository,
	productos repository.ProductoRepository,
	servicios repository.ServicioRepository,
	solicitudes repository.SolicitudRepository,
	matrices repository.MatrizRepository,
	referencias repository.ReferenciaRepository,
	auditorias repository.AuditoriaRepository,
	gate *autorizacion.Gate,
	log zerolog.Logger,
) *UseCase {
	return &UseCase{
		empresaRepo:   empresas,
		stats:         stats,
		productoRepo:  productos,
		servicioRepo:  servicios,
		solicitudRepo: solicitudes,
		matrizRepo:    matrices,
		referencias:   referencias,
		auditoriaRepo: auditorias,
		gate:          gate,
		log:           log,
	}
}

// colaAuditoria cantidad de entradas de auditoría que acompaña al detalle.
const colaAuditoria = 10

// Detalle arma la ficha completa de una empresa: datos, productos o
// servicios según el tipo, matriz si fue evaluada y la cola de auditoría.
func (uc *UseCase) Detalle(ctx context.Context, u *entity.Usuario, empresaID string) (*dto.EmpresaDetalleResponse, error) {
	e, err := uc.empresaRepo.GetByID(ctx, empresaID)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	if !puedeVer(u, e) {
		return nil, domain.ErrForbidden
	}

	nom := uc.nuevosNombres()
	out := &dto.EmpresaDetalleResponse{Empresa: uc.toEmpresaResponse(ctx, e, nom)}

	if e.AdmiteProductos() {
		productos, err := uc.productoRepo.ListByEmpresa(ctx, e.ID)
		if err != nil {
			return nil, err
		}
		for _, p := range productos {
			pos, err := uc.productoRepo.GetPosicion(ctx, p.ID)
			if err != nil {
				return nil, err
			}
			out.Productos = append(out.Productos, toProductoResponse(p, pos))
		}
	}
	if e.AdmiteServicios() {
		servicios, err := uc.servicioRepo.ListByEmpresa(ctx, e.ID)
		if err != nil {
			return nil, err
		}
		for _, s := range servicios {
			out.Servicios = append(out.Servicios, toServicioResponse(s))
		}
	}

	m, err := uc.matrizRepo.GetByEmpresa(ctx, e.ID)
	if err != nil {
		return nil, err
	}
	if m != nil {
		out.Matriz = toMatrizResponse(m)
	}

	entradas, err := uc.auditoriaRepo.ListByObjeto(ctx, "Empresa", e.ID, colaAuditoria)
	if err != nil {
		return nil, err
	}
	for _, a := range entradas {
		out.Auditoria = append(out.Auditoria, dto.AuditoriaEntrada{
			Fecha:       a.Fecha,
			Accion:      a.Accion,
			Descripcion: a.Descripcion,
			UsuarioID:   a.UsuarioID,
		})
	}
	return out, nil
}

// puedeVer replica la regla de visibilidad de los listados para el acceso
// directo por ID: roles internos ven todo, el rol Empresa solo lo propio.
func puedeVer(u *entity.Usuario, e *entity.Empresa) bool {
	if u == nil {
		return false
	}
	if u.EsSuperusuario || u.Rol.EsInterno() {
		return true
	}
	return e.EsPropietario(u.ID)
}

// nombres memoiza la resolución ID → nombre de los datos de referencia
// durante un request. Un nombre irresoluble sale vacío, nunca corta la
// consulta.
type nombres struct {
	refs       repository.ReferenciaRepository
	provincias map[int64]string
	deptos     map[int64]string
	municipios map[int64]string
	locs       map[int64]string
	rubros     map[int64]string
	tipos      map[int64]string
}

func (uc *UseCase) nuevosNombres() *nombres {
	return &nombres{
		refs:       uc.referencias,
		provincias: map[int64]string{},
		deptos:     map[int64]string{},
		municipios: map[int64]string{},
		locs:       map[int64]string{},
		rubros:     map[int64]string{},
		tipos:      map[int64]string{},
	}
}

func (n *nombres) provincia(ctx context.Context, id *int64) string {
	return n.memo(ctx, id, n.provincias, func(ctx context.Context, id int64) (string, error) {
		p, err := n.refs.GetProvinciaByID(ctx, id)
		if err != nil || p == nil {
			return "", err
		}
		return p.Nombre, nil
	})
}

func (n *nombres) departamento(ctx context.Context, id *int64) string {
	return n.memo(ctx, id, n.deptos, func(ctx context.Context, id int64) (string, error) {
		d, err := n.refs.GetDepartamentoByID(ctx, id)
		if err != nil || d == nil {
			return "", err
		}
		return d.Nombre, nil
	})
}

func (n *nombres) municipio(ctx context.Context, id *int64) string {
	return n.memo(ctx, id, n.municipios, func(ctx context.Context, id int64) (string, error) {
		m, err := n.refs.GetMunicipioByID(ctx, id)
		if err != nil || m == nil {
			return "", err
		}
		return m.Nombre, nil
	})
}

func (n *nombres) localidad(ctx context.Context, id *int64) string {
	return n.memo(ctx, id, n.locs, func(ctx context.Context, id int64) (string, error) {
		l, err := n.refs.GetLocalidadByID(ctx, id)
		if err != nil || l == nil {
			return "", err
		}
		return l.Nombre, nil
	})
}

func (n *nombres) rubro(ctx context.Context, id *int64) string {
	return n.memo(ctx, id, n.rubros, func(ctx context.Context, id int64) (string, error) {
		r, err := n.refs.GetRubroByID(ctx, id)
		if err != nil || r == nil {
			return "", err
		}
		return r.Nombre, nil
	})
}

func (n *nombres) tipoEmpresa(ctx context.Context, id *int64) string {
	return n.memo(ctx, id, n.tipos, func(ctx context.Context, id int64) (string, error) {
		t, err := n.refs.GetTipoEmpresaByID(ctx, id)
		if err != nil || t == nil {
			return "", err
		}
		return t.Nombre, nil
	})
}

func (n *nombres) memo(ctx context.Context, id *int64, cache map[int64]string, busca func(context.Context, int64) (string, error)) string {
	if id == nil {
		return ""
	}
	if nombre, ok := cache[*id]; ok {
		return nombre
	}
	nombre, err := busca(ctx, *id)
	if err != nil {
		nombre = ""
	}
	cache[*id] = nombre
	return nombre
}

func (uc *UseCase) toEmpresaResponse(ctx context.Context, e *entity.Empresa, nom *nombres) dto.EmpresaResponse {
	out := dto.EmpresaResponse{
		ID:             e.ID,
		RazonSocial:    e.RazonSocial,
		NombreFantasia: e.NombreFantasia,
		CUIT:           e.CUIT,
		TipoSociedad:   e.TipoSociedad,
		Tipo:           e.Tipo,

		Direccion:     e.Direccion,
		CodigoPostal:  e.CodigoPostal,
		Departamento:  nom.departamento(ctx, e.DepartamentoID),
		Municipio:     nom.municipio(ctx, e.MunicipioID),
		Localidad:     nom.localidad(ctx, e.LocalidadID),
		Latitud:       e.Latitud,
		Longitud:      e.Longitud,
		GeoReferencia: e.GeoReferencia,

		Telefono:      e.Telefono,
		Correo:        e.Correo,
		SitioWeb:      e.SitioWeb,
		RedesSociales: e.RedesSociales,

		ContactoPrincipal: toContactoDTO(e.ContactoPrincipal),

		Exporta:         e.Exporta,
		DestinoExporta:  e.DestinoExporta,
		Importa:         e.Importa,
		CertificadoPyme: e.CertificadoPyme,
		Certificaciones: e.Certificaciones,
		Promo2Idiomas:   e.Promo2Idiomas,
		IdiomasTrabaja:  e.IdiomasTrabaja,
		InteresExportar: e.InteresExportar,

		Rubro:         nom.rubro(ctx, e.RubroID),
		Observaciones: e.Observaciones,

		FechaCreacion:      e.FechaCreacion,
		FechaActualizacion: e.FechaActualizacion,
	}
	if !e.ContactoSecundario.Vacio() {
		c := toContactoDTO(e.ContactoSecundario)
		out.ContactoSecundario = &c
	}
	if !e.ContactoTerciario.Vacio() {
		c := toContactoDTO(e.ContactoTerciario)
		out.ContactoTerciario = &c
	}
	if m, err := uc.matrizRepo.GetByEmpresa(ctx, e.ID); err == nil && m != nil {
		out.CategoriaMatriz = m.Categoria
	}
	return out
}

func toContactoDTO(c entity.Contacto) dto.ContactoDTO {
	return dto.ContactoDTO{
		Nombre:   c.Nombre,
		Apellido: c.Apellido,
		Cargo:    c.Cargo,
		Telefono: c.Telefono,
		Email:    c.Email,
	}
}

func toProductoResponse(p *entity.ProductoEmpresa, pos *entity.PosicionArancelaria) dto.ProductoResponse {
	out := dto.ProductoResponse{
		ID:                  p.ID,
		Nombre:              p.Nombre,
		Descripcion:         p.Descripcion,
		CapacidadProductiva: p.CapacidadProductiva,
		UnidadMedida:        p.UnidadMedida,
		Periodo:             p.Periodo,
		EsPrincipal:         p.EsPrincipal,
		Precio:              p.Precio,
		Moneda:              p.Moneda,
	}
	if pos != nil {
		out.PosicionArancelaria = pos.Codigo
	}
	return out
}

func toServicioResponse(s *entity.ServicioEmpresa) dto.ServicioResponse {
	return dto.ServicioResponse{
		ID:                      s.ID,
		Nombre:                  s.Nombre,
		Descripcion:             s.Descripcion,
		TipoServicio:            s.TipoServicio,
		SectorAtendido:          s.SectorAtendido,
		Alcance:                 s.Alcance,
		PaisesDestino:           s.PaisesDestino,
		ExportaServicios:        s.ExportaServicios,
		FormaContratacion:       s.FormaContratacion,
		CertificacionesTecnicas: s.CertificacionesTecnicas,
	}
}

func toMatrizResponse(m *entity.MatrizClasificacion) *dto.MatrizResponse {
	return &dto.MatrizResponse{
		EmpresaID: m.EmpresaID,

		ExperienciaExportadora:  m.ExperienciaExportadora,
		VolumenProduccion:       m.VolumenProduccion,
		PresenciaDigital:        m.PresenciaDigital,
		PosicionArancelaria:     m.PosicionArancelaria,
		ParticipacionInternac:   m.ParticipacionInternac,
		EstructuraInterna:       m.EstructuraInterna,
		InteresExportador:       m.InteresExportador,
		CertificacionesNac:      m.CertificacionesNac,
		CertificacionesInternac: m.CertificacionesInternac,

		PuntajeTotal: m.PuntajeTotal,
		Categoria:    m.Categoria,

		EvaluadoPor:     m.EvaluadoPor,
		FechaEvaluacion: m.FechaEvaluacion,
		Observaciones:   m.Observaciones,
	}
}

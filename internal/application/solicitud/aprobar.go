package solicitud

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/catamarca-comercio/registro-exportadores/internal/application/auditoria"
	"github.com/catamarca-comercio/registro-exportadores/internal/application/dto"
	"github.com/catamarca-comercio/registro-exportadores/internal/application/notificacion"
	"github.com/catamarca-comercio/registro-exportadores/internal/domain"
	"github.com/catamarca-comercio/registro-exportadores/internal/domain/entity"
	"github.com/catamarca-comercio/registro-exportadores/internal/domain/matriz"
	"github.com/catamarca-comercio/registro-exportadores/internal/domain/repository"
)

// provinciaLocal es el único subárbol geográfico expuesto en este despliegue.
const provinciaLocal = "Catamarca"

// Aprobar materializa una solicitud pendiente en una Empresa con sus filas
// hijas, dentro de una única transacción. El cálculo de la matriz y el correo
// de aprobación corren después del commit; si la matriz falla queda logueado
// pero la empresa ya creada no se revierte.
func (uc *UseCase) Aprobar(ctx context.Context, solicitudID, adminID string, in dto.ResolverSolicitudRequest) (*dto.AprobarResponse, error) {
	var (
		empresa *entity.Empresa
		sol     *entity.Solicitud
	)

	err := uc.tx.RunAprobacion(ctx, func(r ReposAprobacion) error {
		s, err := r.Solicitudes.GetByID(ctx, solicitudID)
		if err != nil {
			return err
		}
		if s == nil {
			return domain.ErrNotFound
		}
		// Una segunda aprobación en vuelo observa el estado terminal acá
		// y aborta; en_revision cuenta como pendiente de resolución.
		if s.EsTerminal() {
			return domain.ErrEstadoInvalido
		}

		e, err := materializarEmpresa(ctx, r, s, adminID)
		if err != nil {
			return err
		}

		ahora := time.Now()
		s.Estado = entity.SolicitudAprobada
		s.AprobadoPor = &adminID
		s.FechaAprobacion = &ahora
		s.Observaciones = in.Observaciones
		s.EmpresaCreadaID = &e.ID
		if err := r.Solicitudes.Update(ctx, s); err != nil {
			return err
		}

		empresa, sol = e, s
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Fuera de la transacción: la matriz es best-effort.
	if uc.clasificador != nil {
		if _, err := uc.clasificador.ClasificarEmpresa(ctx, empresa.ID, adminID); err != nil {
			uc.log.Error().Err(err).Str("empresa_id", empresa.ID).
				Msg("clasificación posterior a la aprobación")
		}
	}
	if uc.notificador != nil {
		asunto, cuerpo := notificacion.CuerpoAprobacion(
			sol.RazonSocial, sol.ContactoPrincipal.Email, sol.CUIT)
		uc.notificador.EnviarAsync(&sol.ID, entity.NotifAprobacion, sol.ContactoPrincipal.Email, asunto, cuerpo)
	}
	uc.auditar(ctx, auditoria.Entrada{
		UsuarioID:    &adminID,
		Accion:       entity.AccionAprobar,
		Modelo:       "Solicitud",
		ObjetoID:     sol.ID,
		ObjetoNombre: sol.RazonSocial,
		Descripcion:  fmt.Sprintf("solicitud aprobada, empresa %s creada", empresa.ID),
		Despues:      sol,
		Criticidad:   entity.CriticidadAlta,
		Exitoso:      true,
	})

	return &dto.AprobarResponse{EmpresaID: empresa.ID}, nil
}

// materializarEmpresa construye la Empresa y sus filas hijas a partir del
// snapshot del formulario, resolviendo las referencias por nombre.
func materializarEmpresa(ctx context.Context, r ReposAprobacion, s *entity.Solicitud, adminID string) (*entity.Empresa, error) {
	refs, err := resolverReferencias(ctx, r.Referencias, s)
	if err != nil {
		return nil, err
	}

	creador := adminID
	if creador == "" {
		creador = s.UsuarioID
	}

	e := &entity.Empresa{
		ID:             uuid.New().String(),
		RazonSocial:    s.RazonSocial,
		NombreFantasia: s.NombreFantasia,
		CUIT:           s.CUIT,
		TipoSociedad:   s.TipoSociedad,
		Tipo:           s.TipoEmpresa,

		Direccion:      s.Direccion,
		CodigoPostal:   s.CodigoPostal,
		ProvinciaID:    refs.ProvinciaID,
		DepartamentoID: refs.DepartamentoID,
		MunicipioID:    refs.MunicipioID,
		LocalidadID:    refs.LocalidadID,
		Latitud:        decimalODefecto(s.Latitud),
		Longitud:       decimalODefecto(s.Longitud),

		Telefono:      s.Telefono,
		Correo:        s.Correo,
		SitioWeb:      s.SitioWeb,
		RedesSociales: s.RedesSociales,

		ContactoPrincipal: contactoDesdeJSON(s.ContactoPrincipal),

		Exporta:               s.Exporta,
		DestinoExporta:        s.DestinoExporta,
		TipoExportacion:       s.TipoExportacion,
		Importa:               s.Importa,
		TipoImportacion:       s.TipoImportacion,
		FrecuenciaImportacion: s.FrecuenciaImportacion,

		CertificadoPyme: s.CertificadoPyme,
		// El formulario puede no traer el flag: se infiere del texto libre
		// para que la matriz no pierda el criterio 9.
		CertificacionesInternac: s.CertificacionesInternac || matriz.TieneCertInternacional(s.Certificaciones),
		Certificaciones:         s.Certificaciones,

		Promo2Idiomas:   s.Promo2Idiomas,
		IdiomasTrabaja:  s.IdiomasTrabaja,
		InteresExportar: s.InteresExportar,

		ParticipoFeriaInternacional: participoEnFerias(s.Actividades),

		RubroID:       refs.RubroID,
		SubRubroID:    refs.SubRubroID,
		TipoEmpresaID: refs.TipoEmpresaID,

		DescripcionActividad: s.DescripcionActividad,

		LogoPath:          s.LogoPath,
		CatalogoPath:      s.CatalogoPath,
		ArchivoCertsPath:  s.ArchivoCertsPath,
		ArchivoFeriasPath: s.ArchivoFeriasPath,

		UsuarioID:          s.UsuarioID,
		CreadoPor:          creador,
		ActualizadoPor:     creador,
		FechaCreacion:      time.Now(),
		FechaActualizacion: time.Now(),
	}

	if capacidad, periodo, ok := capacidadPrincipal(s.Productos); ok {
		e.CapacidadProductiva = capacidad
		e.PeriodoCapacidad = periodo
	}
	if secundarios := s.ContactosSecundarios; len(secundarios) > 0 {
		e.ContactoSecundario = contactoDesdeJSON(secundarios[0])
		if len(secundarios) > 1 {
			e.ContactoTerciario = contactoDesdeJSON(secundarios[1])
		}
	}

	if err := r.Empresas.Create(ctx, e); err != nil {
		return nil, err
	}

	if e.AdmiteProductos() {
		if err := crearProductos(ctx, r.Productos, e.ID, s.Productos); err != nil {
			return nil, err
		}
	}
	if e.AdmiteServicios() {
		if err := crearServicios(ctx, r.Servicios, e.ID, s.Servicios); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// referenciasResueltas son las claves foráneas resueltas desde los strings
// libres del formulario.
type referenciasResueltas struct {
	ProvinciaID    *int64
	DepartamentoID *int64
	MunicipioID    *int64
	LocalidadID    *int64
	RubroID        *int64
	SubRubroID     *int64
	TipoEmpresaID  *int64
}

// resolverReferencias crea las filas de referencia faltantes sobre la marcha,
// deduplicando por (nombre, padre). Comportamiento heredado del padrón: los
// strings libres del formulario son autoritativos.
func resolverReferencias(ctx context.Context, refs repository.ReferenciaRepository, s *entity.Solicitud) (referenciasResueltas, error) {
	var out referenciasResueltas

	prov, err := refs.GetProvincia(ctx, provinciaLocal)
	if err != nil {
		return out, err
	}
	if prov != nil {
		out.ProvinciaID = &prov.ID
		if s.Departamento != "" {
			depto, err := refs.GetOrCreateDepartamento(ctx, prov.ID, s.Departamento)
			if err != nil {
				return out, err
			}
			out.DepartamentoID = &depto.ID
			if s.Municipio != "" {
				muni, err := refs.GetOrCreateMunicipio(ctx, depto.ID, s.Municipio)
				if err != nil {
					return out, err
				}
				out.MunicipioID = &muni.ID
				if s.Localidad != "" {
					loc, err := refs.GetOrCreateLocalidad(ctx, muni.ID, s.Localidad)
					if err != nil {
						return out, err
					}
					out.LocalidadID = &loc.ID
				}
			}
		}
	}

	if s.RubroPrincipal != "" {
		rubro, err := refs.GetOrCreateRubro(ctx, s.RubroPrincipal, tipoRubro(s.TipoEmpresa))
		if err != nil {
			return out, err
		}
		out.RubroID = &rubro.ID
		if s.SubRubro != "" {
			sub, err := refs.GetOrCreateSubRubro(ctx, rubro.ID, s.SubRubro)
			if err != nil {
				return out, err
			}
			out.SubRubroID = &sub.ID
		}
	}

	if nombre := nombreTipoEmpresaRef(s); nombre != "" {
		ref, err := refs.GetOrCreateTipoEmpresa(ctx, nombre)
		if err != nil {
			return out, err
		}
		out.TipoEmpresaID = &ref.ID
	}
	return out, nil
}

func crearProductos(ctx context.Context, repo repository.ProductoRepository, empresaID string, productos []entity.ProductoJSON) error {
	for _, p := range productos {
		prod := &entity.ProductoEmpresa{
			ID:                  uuid.New().String(),
			EmpresaID:           empresaID,
			Nombre:              p.Nombre,
			Descripcion:         p.Descripcion,
			CapacidadProductiva: decimalODefecto(p.CapacidadProductiva),
			UnidadMedida:        p.UnidadMedida,
			Periodo:             periodoODefecto(p.Periodo),
			EsPrincipal:         p.EsPrincipal,
			FechaCreacion:       time.Now(),
		}
		if err := repo.Create(ctx, prod); err != nil {
			return err
		}
		if p.PosicionArancelaria != "" && entity.PosicionArancelariaValida(p.PosicionArancelaria) {
			pos := &entity.PosicionArancelaria{
				ID:         uuid.New().String(),
				ProductoID: prod.ID,
				Codigo:     p.PosicionArancelaria,
			}
			if err := repo.UpsertPosicion(ctx, pos); err != nil {
				return err
			}
		}
	}
	return nil
}

func crearServicios(ctx context.Context, repo repository.ServicioRepository, empresaID string, servicios []entity.ServicioJSON) error {
	for _, s := range servicios {
		srv := &entity.ServicioEmpresa{
			ID:                      uuid.New().String(),
			EmpresaID:               empresaID,
			Nombre:                  s.Nombre,
			Descripcion:             s.Descripcion,
			TipoServicio:            s.TipoServicio,
			SectorAtendido:          s.SectorAtendido,
			Alcance:                 s.Alcance,
			PaisesDestino:           s.PaisesDestino,
			ExportaServicios:        s.ExportaServicios,
			FormaContratacion:       s.FormaContratacion,
			CertificacionesTecnicas: s.CertificacionesTecnicas,
			FechaCreacion:           time.Now(),
		}
		if err := repo.Create(ctx, srv); err != nil {
			return err
		}
	}
	return nil
}

// capacidadPrincipal toma la capacidad del producto marcado principal, o del
// primero declarado, para denormalizarla en la empresa (criterio 2).
func capacidadPrincipal(productos []entity.ProductoJSON) (decimal.Decimal, string, bool) {
	if len(productos) == 0 {
		return decimal.Zero, "", false
	}
	elegido := productos[0]
	for _, p := range productos {
		if p.EsPrincipal {
			elegido = p
			break
		}
	}
	return decimalODefecto(elegido.CapacidadProductiva), periodoODefecto(elegido.Periodo), true
}

// participoEnFerias informa si alguna actividad declarada es una feria.
// Las actividades del formulario son todas de promoción internacional.
func participoEnFerias(actividades []entity.ActividadPromocionJSON) bool {
	for _, a := range actividades {
		if a.Tipo == entity.ActividadFeria {
			return true
		}
	}
	return false
}

// tipoRubro mapea el discriminador de empresa al tipo de rubro.
func tipoRubro(tipoEmpresa string) string {
	switch tipoEmpresa {
	case entity.TipoProducto:
		return entity.RubroProducto
	case entity.TipoServicio:
		return entity.RubroServicio
	case entity.TipoMixta:
		return entity.RubroMixto
	default:
		return entity.RubroOtro
	}
}

func nombreTipoEmpresaRef(s *entity.Solicitud) string {
	if s.TipoEmpresaRef != "" {
		return s.TipoEmpresaRef
	}
	return s.TipoSociedad
}

func contactoDesdeJSON(c entity.ContactoJSON) entity.Contacto {
	return entity.Contacto{
		Nombre:   c.Nombre,
		Apellido: c.Apellido,
		Cargo:    c.Cargo,
		Telefono: c.Telefono,
		Email:    c.Email,
	}
}

// decimalODefecto parsea un decimal del formulario; texto inválido vale cero.
func decimalODefecto(v string) decimal.Decimal {
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func periodoODefecto(p string) string {
	switch p {
	case entity.PeriodoMensual, entity.PeriodoSemanal, entity.PeriodoAnual:
		return p
	default:
		return entity.PeriodoAnual
	}
}

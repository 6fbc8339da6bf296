// Package solicitud implementa el ciclo de vida de las solicitudes de
// registro: presentación pública, revisión, aprobación (que materializa la
// Empresa con sus hijos) y rechazo. Los correos y el cálculo de la matriz
// quedan fuera de las transacciones principales.
package solicitud

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/catamarca-comercio/registro-exportadores/internal/application/auditoria"
	"github.com/catamarca-comercio/registro-exportadores/internal/application/dto"
	"github.com/catamarca-comercio/registro-exportadores/internal/application/notificacion"
	"github.com/catamarca-comercio/registro-exportadores/internal/domain"
	"github.com/catamarca-comercio/registro-exportadores/internal/domain/entity"
	"github.com/catamarca-comercio/registro-exportadores/internal/domain/repository"
)

// UseCase orquesta las transiciones de la solicitud.
type UseCase struct {
	tx            TxRunner
	solicitudRepo repository.SolicitudRepository
	clasificador  Clasificador
	notificador   *notificacion.Notificador
	auditor       *auditoria.Registrador
	log           zerolog.Logger
}

// NewUseCase construye el caso de uso. clasificador, notificador y auditor
// pueden ser nil en pruebas que no los ejercitan.
func NewUseCase(
	tx TxRunner,
	solicitudRepo repository.SolicitudRepository,
	clasificador Clasificador,
	notificador *notificacion.Notificador,
	auditor *auditoria.Registrador,
	log zerolog.Logger,
) *UseCase {
	return &UseCase{
		tx:            tx,
		solicitudRepo: solicitudRepo,
		clasificador:  clasificador,
		notificador:   notificador,
		auditor:       auditor,
		log:           log,
	}
}

// Obtener devuelve una solicitud por id.
func (uc *UseCase) Obtener(ctx context.Context, id string) (*entity.Solicitud, error) {
	s, err := uc.solicitudRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

// Listar devuelve las solicitudes, opcionalmente filtradas por estado.
func (uc *UseCase) Listar(ctx context.Context, estado string, page dto.PageRequest) ([]dto.SolicitudResponse, error) {
	page.DefaultPage()
	sols, err := uc.solicitudRepo.List(ctx, estado, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SolicitudResponse, 0, len(sols))
	for _, s := range sols {
		out = append(out, toSolicitudResponse(s))
	}
	return out, nil
}

// TomarEnRevision marca una solicitud pendiente como en revisión. La
// transición es reversible con DevolverAPendiente.
func (uc *UseCase) TomarEnRevision(ctx context.Context, id, adminID string) error {
	s, err := uc.Obtener(ctx, id)
	if err != nil {
		return err
	}
	if s.Estado != entity.SolicitudPendiente {
		return domain.ErrEstadoInvalido
	}
	s.Estado = entity.SolicitudEnRevision
	return uc.solicitudRepo.Update(ctx, s)
}

// DevolverAPendiente revierte una solicitud en revisión al estado pendiente.
func (uc *UseCase) DevolverAPendiente(ctx context.Context, id string) error {
	s, err := uc.Obtener(ctx, id)
	if err != nil {
		return err
	}
	if s.Estado != entity.SolicitudEnRevision {
		return domain.ErrEstadoInvalido
	}
	s.Estado = entity.SolicitudPendiente
	return uc.solicitudRepo.Update(ctx, s)
}

// Rechazar pasa una solicitud a rechazada con las observaciones del revisor
// y dispara el correo de rechazo. No crea ninguna empresa.
func (uc *UseCase) Rechazar(ctx context.Context, id, adminID, observaciones string) error {
	s, err := uc.Obtener(ctx, id)
	if err != nil {
		return err
	}
	if s.EsTerminal() {
		return domain.ErrEstadoInvalido
	}
	antes := *s

	ahora := time.Now()
	s.Estado = entity.SolicitudRechazada
	s.AprobadoPor = &adminID
	s.FechaAprobacion = &ahora
	s.Observaciones = observaciones
	if err := uc.solicitudRepo.Update(ctx, s); err != nil {
		return err
	}

	if uc.notificador != nil {
		asunto, cuerpo := notificacion.CuerpoRechazo(s.RazonSocial, observaciones)
		uc.notificador.EnviarAsync(&s.ID, entity.NotifRechazo, s.ContactoPrincipal.Email, asunto, cuerpo)
	}
	uc.auditar(ctx, auditoria.Entrada{
		UsuarioID:    &adminID,
		Accion:       entity.AccionRechazar,
		Modelo:       "Solicitud",
		ObjetoID:     s.ID,
		ObjetoNombre: s.RazonSocial,
		Descripcion:  fmt.Sprintf("solicitud rechazada: %s", observaciones),
		Antes:        antes,
		Despues:      s,
		Exitoso:      true,
	})
	return nil
}

// ConfirmarEmail valida el token UUID enviado por correo y marca la solicitud
// como confirmada.
func (uc *UseCase) ConfirmarEmail(ctx context.Context, id, token string) error {
	s, err := uc.Obtener(ctx, id)
	if err != nil {
		return err
	}
	if token == "" || s.TokenConfirmacion != token {
		return domain.ErrTokenInvalido
	}
	if s.EmailConfirmado {
		return nil
	}
	s.EmailConfirmado = true
	return uc.solicitudRepo.Update(ctx, s)
}

func (uc *UseCase) auditar(ctx context.Context, e auditoria.Entrada) {
	if uc.auditor != nil {
		uc.auditor.Registrar(ctx, e)
	}
}

// Detalle arma el snapshot completo para la pantalla de revisión.
func (uc *UseCase) Detalle(ctx context.Context, id string) (*dto.SolicitudDetalleResponse, error) {
	s, err := uc.Obtener(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.SolicitudDetalleResponse{
		SolicitudResponse: toSolicitudResponse(s),

		NombreFantasia:       s.NombreFantasia,
		TipoSociedad:         s.TipoSociedad,
		Direccion:            s.Direccion,
		CodigoPostal:         s.CodigoPostal,
		Departamento:         s.Departamento,
		Municipio:            s.Municipio,
		Localidad:            s.Localidad,
		Latitud:              s.Latitud,
		Longitud:             s.Longitud,
		Telefono:             s.Telefono,
		SitioWeb:             s.SitioWeb,
		RedesSociales:        s.RedesSociales,
		RubroPrincipal:       s.RubroPrincipal,
		SubRubro:             s.SubRubro,
		DescripcionActividad: s.DescripcionActividad,

		ContactoPrincipal:    s.ContactoPrincipal,
		ContactosSecundarios: s.ContactosSecundarios,

		Exporta:                 s.Exporta,
		DestinoExporta:          s.DestinoExporta,
		TipoExportacion:         s.TipoExportacion,
		Importa:                 s.Importa,
		TipoImportacion:         s.TipoImportacion,
		FrecuenciaImportacion:   s.FrecuenciaImportacion,
		CertificadoPyme:         s.CertificadoPyme,
		CertificacionesInternac: s.CertificacionesInternac,
		Certificaciones:         s.Certificaciones,
		Promo2Idiomas:           s.Promo2Idiomas,
		IdiomasTrabaja:          s.IdiomasTrabaja,
		InteresExportar:         s.InteresExportar,

		Productos:   s.Productos,
		Servicios:   s.Servicios,
		Actividades: s.Actividades,

		CatalogoPath:      s.CatalogoPath,
		LogoPath:          s.LogoPath,
		ArchivoCertsPath:  s.ArchivoCertsPath,
		ArchivoFeriasPath: s.ArchivoFeriasPath,
	}, nil
}

func toSolicitudResponse(s *entity.Solicitud) dto.SolicitudResponse {
	return dto.SolicitudResponse{
		ID:              s.ID,
		CUIT:            s.CUIT,
		RazonSocial:     s.RazonSocial,
		TipoEmpresa:     s.TipoEmpresa,
		Correo:          s.Correo,
		Estado:          s.Estado,
		EmailConfirmado: s.EmailConfirmado,
		FechaCreacion:   s.FechaCreacion,
		FechaAprobacion: s.FechaAprobacion,
		EmpresaCreadaID: s.EmpresaCreadaID,
		Observaciones:   s.Observaciones,
	}
}

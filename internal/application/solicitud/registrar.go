package solicitud

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/catamarca-comercio/registro-exportadores/internal/application/auditoria"
	"github.com/catamarca-comercio/registro-exportadores/internal/application/dto"
	"github.com/catamarca-comercio/registro-exportadores/internal/application/notificacion"
	"github.com/catamarca-comercio/registro-exportadores/internal/domain"
	"github.com/catamarca-comercio/registro-exportadores/internal/domain/entity"
	"github.com/catamarca-comercio/registro-exportadores/pkg/cuit"
)

// MaxContactosSecundarios tope de contactos secundarios por presentación.
const MaxContactosSecundarios = 2

// Registrar procesa la presentación pública del formulario. El alta del
// usuario y la inserción de la solicitud corren en una sola transacción; el
// correo de confirmación sale después del commit y su fallo no revierte nada.
func (uc *UseCase) Registrar(ctx context.Context, in dto.RegistrarSolicitudRequest) (*dto.RegistrarSolicitudResponse, error) {
	cuitNorm := cuit.Normalizar(in.CUIT)
	if err := cuit.Validar(cuitNorm); err != nil {
		return nil, fmt.Errorf("%w: el CUIT debe tener 11 dígitos", domain.ErrInvalidInput)
	}
	if err := cuit.ValidarDigitoVerificador(cuitNorm); err != nil {
		// Consultivo: el padrón histórico tiene CUITs que no lo cumplen.
		uc.log.Warn().Str("cuit", cuitNorm).Msg("dígito verificador de CUIT inválido")
	}
	if !in.ContactoPrincipal.Completo() {
		return nil, fmt.Errorf("%w: el contacto principal debe tener nombre, apellido, cargo, teléfono y email", domain.ErrInvalidInput)
	}
	switch in.TipoEmpresa {
	case entity.TipoProducto, entity.TipoServicio, entity.TipoMixta:
	default:
		return nil, domain.ErrTipoEmpresaInvalido
	}

	secundarios := in.ContactosSecundarios
	if len(secundarios) > MaxContactosSecundarios {
		secundarios = secundarios[:MaxContactosSecundarios]
	}

	s := &entity.Solicitud{
		ID:                   uuid.New().String(),
		CUIT:                 cuitNorm,
		RazonSocial:          strings.TrimSpace(in.RazonSocial),
		NombreFantasia:       in.NombreFantasia,
		TipoSociedad:         in.TipoSociedad,
		TipoEmpresa:          in.TipoEmpresa,
		Direccion:            in.Direccion,
		CodigoPostal:         in.CodigoPostal,
		Departamento:         in.Departamento,
		Municipio:            in.Municipio,
		Localidad:            in.Localidad,
		Latitud:              in.Latitud,
		Longitud:             in.Longitud,
		Telefono:             in.Telefono,
		Correo:               strings.ToLower(strings.TrimSpace(in.Correo)),
		SitioWeb:             normalizarSitioWeb(in.SitioWeb),
		RedesSociales:        in.RedesSociales,
		RubroPrincipal:       in.RubroPrincipal,
		SubRubro:             in.SubRubro,
		TipoEmpresaRef:       in.TipoEmpresaRef,
		DescripcionActividad: in.DescripcionActividad,

		ContactoPrincipal:    in.ContactoPrincipal,
		ContactosSecundarios: secundarios,

		Exporta:                 in.Exporta,
		DestinoExporta:          in.DestinoExporta,
		TipoExportacion:         in.TipoExportacion,
		Importa:                 in.Importa.Bool(),
		TipoImportacion:         in.TipoImportacion,
		FrecuenciaImportacion:   in.FrecuenciaImportacion,
		CertificadoPyme:         in.CertificadoPyme.Bool(),
		CertificacionesInternac: in.CertificacionesInternac.Bool(),
		Certificaciones:         in.Certificaciones,
		Promo2Idiomas:           in.Promo2Idiomas.Bool(),
		IdiomasTrabaja:          in.IdiomasTrabaja,
		InteresExportar:         in.InteresExportar.Bool(),

		Productos:   in.Productos,
		Servicios:   []entity.ServicioJSON(in.Servicios),
		Actividades: in.Actividades,

		CatalogoPath:      in.CatalogoPath,
		LogoPath:          in.LogoPath,
		ArchivoCertsPath:  in.ArchivoCertsPath,
		ArchivoFeriasPath: in.ArchivoFeriasPath,

		TokenConfirmacion: uuid.New().String(),
		Estado:            entity.SolicitudPendiente,
		FechaCreacion:     time.Now(),
	}

	emailLogin := strings.ToLower(strings.TrimSpace(in.ContactoPrincipal.Email))

	err := uc.tx.RunRegistro(ctx, func(r ReposRegistro) error {
		dup, err := r.Solicitudes.ExisteAprobadaPorCUIT(ctx, cuitNorm)
		if err != nil {
			return err
		}
		if dup {
			return domain.ErrCUITDuplicado
		}

		u, err := r.Usuarios.GetByEmail(ctx, emailLogin)
		if err != nil {
			return err
		}
		if u != nil {
			// Reutilización: solo cuentas del rol Empresa. Un email ya
			// asignado a personal interno rechaza la presentación.
			if u.Rol == nil || u.Rol.Nombre != entity.RolEmpresa {
				return domain.ErrEmailYaRegistrado
			}
		} else {
			rolEmpresa, err := r.Roles.GetByNombre(ctx, entity.RolEmpresa)
			if err != nil {
				return err
			}
			if rolEmpresa == nil {
				return fmt.Errorf("rol %q no cargado en la base", entity.RolEmpresa)
			}
			hash, err := bcrypt.GenerateFromPassword([]byte(cuitNorm), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			u = &entity.Usuario{
				ID:               uuid.New().String(),
				Email:            emailLogin,
				ClaveHash:        string(hash),
				RolID:            &rolEmpresa.ID,
				Rol:              rolEmpresa,
				DebeCambiarClave: true,
				Activo:           true,
				FechaCreacion:    time.Now(),
			}
			if err := r.Usuarios.Create(ctx, u); err != nil {
				return err
			}
		}

		s.UsuarioID = u.ID
		return r.Solicitudes.Create(ctx, s)
	})
	if err != nil {
		return nil, err
	}

	if uc.notificador != nil {
		asunto, cuerpo := notificacion.CuerpoConfirmacion(s.RazonSocial, s.TokenConfirmacion)
		uc.notificador.EnviarAsync(&s.ID, entity.NotifConfirmacion, emailLogin, asunto, cuerpo)
	}
	uc.auditar(ctx, auditoria.Entrada{
		Accion:       entity.AccionCrear,
		Modelo:       "Solicitud",
		ObjetoID:     s.ID,
		ObjetoNombre: s.RazonSocial,
		Descripcion:  "presentación pública de registro",
		Despues:      s,
		Exitoso:      true,
	})

	return &dto.RegistrarSolicitudResponse{
		SolicitudID: s.ID,
		Estado:      s.Estado,
		Mensaje:     "Solicitud recibida. Revisá tu correo para confirmar la presentación.",
	}, nil
}

// normalizarSitioWeb antepone https:// cuando la URL llega sin esquema.
func normalizarSitioWeb(url string) string {
	url = strings.TrimSpace(url)
	if url == "" {
		return ""
	}
	if !strings.HasPrefix(strings.ToLower(url), "http://") &&
		!strings.HasPrefix(strings.ToLower(url), "https://") {
		return "https://" + url
	}
	return url
}

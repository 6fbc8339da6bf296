// Package empresa implementa la edición autenticada de las empresas aprobadas
// y la gestión de sus productos y servicios. La autorización por operación y
// por objeto corre antes, en el gate; acá solo se aplican las reglas de
// escritura: CUIT, fecha de creación y creador son inmutables.
package empresa

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/catamarca-comercio/registro-exportadores/internal/application/auditoria"
	"github.com/catamarca-comercio/registro-exportadores/internal/application/dto"
	"github.com/catamarca-comercio/registro-exportadores/internal/domain"
	"github.com/catamarca-comercio/registro-exportadores/internal/domain/entity"
	"github.com/catamarca-comercio/registro-exportadores/internal/domain/repository"
	"github.com/catamarca-comercio/registro-exportadores/pkg/cuit"
)

// UseCase gestiona empresas y sus hijos.
type UseCase struct {
	empresaRepo  repository.EmpresaRepository
	productoRepo repository.ProductoRepository
	servicioRepo repository.ServicioRepository
	auditor      *auditoria.Registrador
}

// NewUseCase construye el caso de uso. auditor puede ser nil en pruebas.
func NewUseCase(
	empresaRepo repository.EmpresaRepository,
	productoRepo repository.ProductoRepository,
	servicioRepo repository.ServicioRepository,
	auditor *auditoria.Registrador,
) *UseCase {
	return &UseCase{
		empresaRepo:  empresaRepo,
		productoRepo: productoRepo,
		servicioRepo: servicioRepo,
		auditor:      auditor,
	}
}

// Obtener devuelve una empresa por id.
func (uc *UseCase) Obtener(ctx context.Context, id string) (*entity.Empresa, error) {
	e, err := uc.empresaRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	return e, nil
}

// Crear da de alta una empresa directamente, sin pasar por el circuito de
// solicitudes. Es el camino con el que se cargó el padrón histórico; el CUIT
// es único dentro del padrón.
func (uc *UseCase) Crear(ctx context.Context, actorID string, in dto.CrearEmpresaRequest) (*entity.Empresa, error) {
	cuitNorm := cuit.Normalizar(in.CUIT)
	if err := cuit.Validar(cuitNorm); err != nil {
		return nil, fmt.Errorf("%w: el CUIT debe tener 11 dígitos", domain.ErrInvalidInput)
	}
	razon := strings.TrimSpace(in.RazonSocial)
	if razon == "" {
		return nil, fmt.Errorf("%w: la razón social es obligatoria", domain.ErrInvalidInput)
	}
	switch in.TipoEmpresa {
	case entity.TipoProducto, entity.TipoServicio, entity.TipoMixta:
	default:
		return nil, domain.ErrTipoEmpresaInvalido
	}

	existente, err := uc.empresaRepo.GetByCUIT(ctx, cuitNorm)
	if err != nil {
		return nil, err
	}
	if existente != nil {
		return nil, domain.ErrCUITDuplicado
	}

	ahora := time.Now()
	e := &entity.Empresa{
		ID:                 uuid.New().String(),
		RazonSocial:        razon,
		CUIT:               cuitNorm,
		TipoSociedad:       in.TipoSociedad,
		Tipo:               in.TipoEmpresa,
		UsuarioID:          in.UsuarioID,
		CreadoPor:          actorID,
		ActualizadoPor:     actorID,
		FechaCreacion:      ahora,
		FechaActualizacion: ahora,
	}
	if err := aplicarCampos(e, in.ActualizarEmpresaRequest); err != nil {
		return nil, err
	}

	if err := uc.empresaRepo.Create(ctx, e); err != nil {
		return nil, err
	}
	uc.auditar(ctx, actorID, entity.AccionCrear, e.ID, e.RazonSocial,
		"empresa creada por carga directa", nil, e)
	return e, nil
}

// Actualizar aplica los campos enviados sobre la empresa. CUIT, fecha de
// creación y creador nunca cambian; actualizador y fecha de actualización se
// refrescan en cada guardado.
func (uc *UseCase) Actualizar(ctx context.Context, actorID, empresaID string, in dto.ActualizarEmpresaRequest) (*entity.Empresa, error) {
	e, err := uc.Obtener(ctx, empresaID)
	if err != nil {
		return nil, err
	}
	antes := *e

	// La razón social la corrige personal de la dirección; el dueño de la
	// cuenta nunca la cambia.
	if in.RazonSocial != nil && actorID == e.UsuarioID {
		return nil, domain.ErrForbidden
	}
	if err := aplicarCampos(e, in); err != nil {
		return nil, err
	}

	e.ActualizadoPor = actorID
	e.FechaActualizacion = time.Now()

	if err := uc.empresaRepo.Update(ctx, e); err != nil {
		return nil, err
	}
	uc.auditar(ctx, actorID, entity.AccionActualizar, e.ID, e.RazonSocial,
		"empresa actualizada", antes, e)
	return e, nil
}

// aplicarCampos vuelca los campos enviados sobre la entidad. La razón social
// es editable pero nunca puede quedar vacía.
func aplicarCampos(e *entity.Empresa, in dto.ActualizarEmpresaRequest) error {
	if in.RazonSocial != nil {
		razon := strings.TrimSpace(*in.RazonSocial)
		if razon == "" {
			return domain.ErrInvalidInput
		}
		e.RazonSocial = razon
	}
	aplicarString(&e.NombreFantasia, in.NombreFantasia)
	aplicarString(&e.Direccion, in.Direccion)
	aplicarString(&e.CodigoPostal, in.CodigoPostal)
	aplicarString(&e.Telefono, in.Telefono)
	aplicarString(&e.Correo, in.Correo)
	aplicarString(&e.SitioWeb, in.SitioWeb)
	aplicarString(&e.RedesSociales, in.RedesSociales)
	aplicarString(&e.DestinoExporta, in.DestinoExporta)
	aplicarString(&e.Certificaciones, in.Certificaciones)
	aplicarString(&e.IdiomasTrabaja, in.IdiomasTrabaja)
	aplicarString(&e.Observaciones, in.Observaciones)
	aplicarBool(&e.Importa, in.Importa)
	aplicarBool(&e.CertificadoPyme, in.CertificadoPyme)
	aplicarBool(&e.Promo2Idiomas, in.Promo2Idiomas)
	aplicarBool(&e.InteresExportar, in.InteresExportar)

	if in.Exporta != nil {
		switch *in.Exporta {
		case entity.ExportaSi, entity.ExportaNacional, entity.ExportaLocal:
			e.Exporta = *in.Exporta
		default:
			return domain.ErrInvalidInput
		}
	}
	if in.ContactoPrincipal != nil {
		c := contactoDesdeDTO(*in.ContactoPrincipal)
		if c.Vacio() {
			return domain.ErrInvalidInput
		}
		e.ContactoPrincipal = c
	}
	if in.ContactoSecundario != nil {
		e.ContactoSecundario = contactoDesdeDTO(*in.ContactoSecundario)
	}
	if in.ContactoTerciario != nil {
		e.ContactoTerciario = contactoDesdeDTO(*in.ContactoTerciario)
	}
	return nil
}

// Eliminar borra la empresa y, por cascada, sus productos y servicios.
func (uc *UseCase) Eliminar(ctx context.Context, actorID, empresaID string) error {
	e, err := uc.Obtener(ctx, empresaID)
	if err != nil {
		return err
	}
	if err := uc.empresaRepo.Delete(ctx, empresaID); err != nil {
		return err
	}
	uc.auditar(ctx, actorID, entity.AccionEliminar, e.ID, e.RazonSocial,
		"empresa eliminada", e, nil)
	return nil
}

// ─── productos ───────────────────────────────────────────────────────────────

// AgregarProducto crea un producto. Solo las empresas de tipo producto o
// mixta admiten productos; la regla se aplica acá, no por constraint.
func (uc *UseCase) AgregarProducto(ctx context.Context, actorID, empresaID string, in dto.ProductoRequest) (dto.ProductoResponse, error) {
	e, err := uc.Obtener(ctx, empresaID)
	if err != nil {
		return dto.ProductoResponse{}, err
	}
	if !e.AdmiteProductos() {
		return dto.ProductoResponse{}, domain.ErrTipoEmpresaInvalido
	}

	p := &entity.ProductoEmpresa{
		ID:                  uuid.New().String(),
		EmpresaID:           empresaID,
		Nombre:              in.Nombre,
		Descripcion:         in.Descripcion,
		CapacidadProductiva: in.CapacidadProductiva,
		UnidadMedida:        in.UnidadMedida,
		Periodo:             in.Periodo,
		EsPrincipal:         in.EsPrincipal,
		Precio:              in.Precio,
		Moneda:              in.Moneda,
		FechaCreacion:       time.Now(),
	}
	if err := uc.productoRepo.Create(ctx, p); err != nil {
		return dto.ProductoResponse{}, err
	}
	if err := uc.guardarPosicion(ctx, p.ID, in.PosicionArancelaria); err != nil {
		return dto.ProductoResponse{}, err
	}
	uc.auditar(ctx, actorID, entity.AccionCrear, p.ID, p.Nombre,
		"producto agregado a "+e.RazonSocial, nil, p)
	resp := toProductoResponse(p)
	resp.PosicionArancelaria = in.PosicionArancelaria
	return resp, nil
}

// ActualizarProducto edita un producto existente de la empresa.
func (uc *UseCase) ActualizarProducto(ctx context.Context, actorID, empresaID, productoID string, in dto.ProductoRequest) (dto.ProductoResponse, error) {
	p, err := uc.productoDeEmpresa(ctx, empresaID, productoID)
	if err != nil {
		return dto.ProductoResponse{}, err
	}
	antes := *p

	p.Nombre = in.Nombre
	p.Descripcion = in.Descripcion
	p.CapacidadProductiva = in.CapacidadProductiva
	p.UnidadMedida = in.UnidadMedida
	p.Periodo = in.Periodo
	p.EsPrincipal = in.EsPrincipal
	p.Precio = in.Precio
	p.Moneda = in.Moneda

	if err := uc.productoRepo.Update(ctx, p); err != nil {
		return dto.ProductoResponse{}, err
	}
	if err := uc.guardarPosicion(ctx, p.ID, in.PosicionArancelaria); err != nil {
		return dto.ProductoResponse{}, err
	}
	uc.auditar(ctx, actorID, entity.AccionActualizar, p.ID, p.Nombre,
		"producto actualizado", antes, p)
	resp := toProductoResponse(p)
	resp.PosicionArancelaria = in.PosicionArancelaria
	return resp, nil
}

// EliminarProducto borra un producto y su posición arancelaria.
func (uc *UseCase) EliminarProducto(ctx context.Context, actorID, empresaID, productoID string) error {
	p, err := uc.productoDeEmpresa(ctx, empresaID, productoID)
	if err != nil {
		return err
	}
	if err := uc.productoRepo.Delete(ctx, productoID); err != nil {
		return err
	}
	uc.auditar(ctx, actorID, entity.AccionEliminar, p.ID, p.Nombre,
		"producto eliminado", p, nil)
	return nil
}

// ListarProductos devuelve los productos con su posición arancelaria.
func (uc *UseCase) ListarProductos(ctx context.Context, empresaID string) ([]dto.ProductoResponse, error) {
	productos, err := uc.productoRepo.ListByEmpresa(ctx, empresaID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductoResponse, 0, len(productos))
	for _, p := range productos {
		resp := toProductoResponse(p)
		if pos, err := uc.productoRepo.GetPosicion(ctx, p.ID); err == nil && pos != nil {
			resp.PosicionArancelaria = pos.Codigo
		}
		out = append(out, resp)
	}
	return out, nil
}

// ─── servicios ───────────────────────────────────────────────────────────────

// AgregarServicio crea un servicio. Solo empresas de tipo servicio o mixta.
func (uc *UseCase) AgregarServicio(ctx context.Context, actorID, empresaID string, in dto.ServicioRequest) (dto.ServicioResponse, error) {
	e, err := uc.Obtener(ctx, empresaID)
	if err != nil {
		return dto.ServicioResponse{}, err
	}
	if !e.AdmiteServicios() {
		return dto.ServicioResponse{}, domain.ErrTipoEmpresaInvalido
	}
	if in.TipoServicio != "" && !entity.TipoServicioValido(in.TipoServicio) {
		return dto.ServicioResponse{}, domain.ErrInvalidInput
	}
	if in.SectorAtendido != "" && !entity.SectorAtendidoValido(in.SectorAtendido) {
		return dto.ServicioResponse{}, domain.ErrInvalidInput
	}

	s := &entity.ServicioEmpresa{
		ID:                      uuid.New().String(),
		EmpresaID:               empresaID,
		Nombre:                  in.Nombre,
		Descripcion:             in.Descripcion,
		TipoServicio:            in.TipoServicio,
		SectorAtendido:          in.SectorAtendido,
		Alcance:                 in.Alcance,
		PaisesDestino:           in.PaisesDestino,
		ExportaServicios:        in.ExportaServicios,
		FormaContratacion:       in.FormaContratacion,
		CertificacionesTecnicas: in.CertificacionesTecnicas,
		EquipoTecnico:           in.EquipoTecnico,
		EquipoComercial:         in.EquipoComercial,
		FechaCreacion:           time.Now(),
	}
	if err := uc.servicioRepo.Create(ctx, s); err != nil {
		return dto.ServicioResponse{}, err
	}
	uc.auditar(ctx, actorID, entity.AccionCrear, s.ID, s.Nombre,
		"servicio agregado a "+e.RazonSocial, nil, s)
	return toServicioResponse(s), nil
}

// EliminarServicio borra un servicio de la empresa.
func (uc *UseCase) EliminarServicio(ctx context.Context, actorID, empresaID, servicioID string) error {
	s, err := uc.servicioRepo.GetByID(ctx, servicioID)
	if err != nil {
		return err
	}
	if s == nil || s.EmpresaID != empresaID {
		return domain.ErrNotFound
	}
	if err := uc.servicioRepo.Delete(ctx, servicioID); err != nil {
		return err
	}
	uc.auditar(ctx, actorID, entity.AccionEliminar, s.ID, s.Nombre,
		"servicio eliminado", s, nil)
	return nil
}

// ListarServicios devuelve los servicios de la empresa.
func (uc *UseCase) ListarServicios(ctx context.Context, empresaID string) ([]dto.ServicioResponse, error) {
	servicios, err := uc.servicioRepo.ListByEmpresa(ctx, empresaID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ServicioResponse, 0, len(servicios))
	for _, s := range servicios {
		out = append(out, toServicioResponse(s))
	}
	return out, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (uc *UseCase) productoDeEmpresa(ctx context.Context, empresaID, productoID string) (*entity.ProductoEmpresa, error) {
	p, err := uc.productoRepo.GetByID(ctx, productoID)
	if err != nil {
		return nil, err
	}
	if p == nil || p.EmpresaID != empresaID {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (uc *UseCase) guardarPosicion(ctx context.Context, productoID, codigo string) error {
	if codigo == "" {
		return nil
	}
	if !entity.PosicionArancelariaValida(codigo) {
		return domain.ErrInvalidInput
	}
	return uc.productoRepo.UpsertPosicion(ctx, &entity.PosicionArancelaria{
		ID:         uuid.New().String(),
		ProductoID: productoID,
		Codigo:     codigo,
	})
}

func (uc *UseCase) auditar(ctx context.Context, actorID, accion, objetoID, nombre, descripcion string, antes, despues any) {
	if uc.auditor == nil {
		return
	}
	uc.auditor.Registrar(ctx, auditoria.Entrada{
		UsuarioID:    &actorID,
		Accion:       accion,
		Modelo:       "Empresa",
		ObjetoID:     objetoID,
		ObjetoNombre: nombre,
		Descripcion:  descripcion,
		Antes:        antes,
		Despues:      despues,
		Exitoso:      true,
	})
}

func aplicarString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func aplicarBool(dst *bool, v *dto.FlexBool) {
	if v != nil {
		*dst = v.Bool()
	}
}

func contactoDesdeDTO(c dto.ContactoDTO) entity.Contacto {
	return entity.Contacto{
		Nombre:   c.Nombre,
		Apellido: c.Apellido,
		Cargo:    c.Cargo,
		Telefono: c.Telefono,
		Email:    c.Email,
	}
}

func toProductoResponse(p *entity.ProductoEmpresa) dto.ProductoResponse {
	return dto.ProductoResponse{
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

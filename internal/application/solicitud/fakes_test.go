package solicitud_test

import (
	"context"
	"strings"
	"sync"

	"github.com/catamarca-comercio/registro-exportadores/internal/application/solicitud"
	"github.com/catamarca-comercio/registro-exportadores/internal/domain"
	"github.com/catamarca-comercio/registro-exportadores/internal/domain/entity"
	"github.com/catamarca-comercio/registro-exportadores/internal/domain/repository"
)

// Fakes en memoria de los repositorios. El TxRunner de prueba ejecuta la
// función directamente, sin transacción real.

type txRunnerFake struct {
	registro   solicitud.ReposRegistro
	aprobacion solicitud.ReposAprobacion
}

func (t *txRunnerFake) RunRegistro(_ context.Context, fn func(solicitud.ReposRegistro) error) error {
	return fn(t.registro)
}

func (t *txRunnerFake) RunAprobacion(_ context.Context, fn func(solicitud.ReposAprobacion) error) error {
	return fn(t.aprobacion)
}

// ─── usuarios y roles ────────────────────────────────────────────────────────

type usuarioRepoFake struct {
	mu       sync.Mutex
	usuarios map[string]*entity.Usuario // por email
}

func newUsuarioRepoFake() *usuarioRepoFake {
	return &usuarioRepoFake{usuarios: map[string]*entity.Usuario{}}
}

func (f *usuarioRepoFake) Create(_ context.Context, u *entity.Usuario) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.usuarios[u.Email]; ok {
		return domain.ErrEmailYaRegistrado
	}
	f.usuarios[u.Email] = u
	return nil
}

func (f *usuarioRepoFake) GetByID(_ context.Context, id string) (*entity.Usuario, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.usuarios {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (f *usuarioRepoFake) GetByEmail(_ context.Context, email string) (*entity.Usuario, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.usuarios[email], nil
}

func (f *usuarioRepoFake) GetByTokenRecuperacion(_ context.Context, token string) (*entity.Usuario, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.usuarios {
		if u.TokenRecuperacion != "" && u.TokenRecuperacion == token {
			return u, nil
		}
	}
	return nil, nil
}

func (f *usuarioRepoFake) Update(_ context.Context, u *entity.Usuario) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.usuarios[u.Email] = u
	return nil
}

func (f *usuarioRepoFake) List(_ context.Context, _, _ int) ([]*entity.Usuario, error) {
	return nil, nil
}

type rolRepoFake struct {
	roles []*entity.Rol
}

func newRolRepoFake() *rolRepoFake {
	return &rolRepoFake{roles: []*entity.Rol{
		{ID: 1, Nombre: entity.RolAdministrador, Capacidades: entity.CapacidadesTodas, NivelAcceso: entity.NivelAdministrador},
		{ID: 4, Nombre: entity.RolEmpresa, NivelAcceso: entity.NivelEmpresa},
	}}
}

func (f *rolRepoFake) GetByID(_ context.Context, id int64) (*entity.Rol, error) {
	for _, r := range f.roles {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, nil
}

func (f *rolRepoFake) GetByNombre(_ context.Context, nombre string) (*entity.Rol, error) {
	for _, r := range f.roles {
		if r.Nombre == nombre {
			return r, nil
		}
	}
	return nil, nil
}

func (f *rolRepoFake) List(_ context.Context) ([]*entity.Rol, error) { return f.roles, nil }
func (f *rolRepoFake) Create(_ context.Context, r *entity.Rol) error {
	f.roles = append(f.roles, r)
	return nil
}

// ─── solicitudes ─────────────────────────────────────────────────────────────

type solicitudRepoFake struct {
	mu          sync.Mutex
	solicitudes map[string]*entity.Solicitud
}

func newSolicitudRepoFake() *solicitudRepoFake {
	return &solicitudRepoFake{solicitudes: map[string]*entity.Solicitud{}}
}

func (f *solicitudRepoFake) Create(_ context.Context, s *entity.Solicitud) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.solicitudes[s.ID] = s
	return nil
}

func (f *solicitudRepoFake) GetByID(_ context.Context, id string) (*entity.Solicitud, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.solicitudes[id], nil
}

func (f *solicitudRepoFake) GetByUsuario(_ context.Context, usuarioID string) (*entity.Solicitud, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.solicitudes {
		if s.UsuarioID == usuarioID {
			return s, nil
		}
	}
	return nil, nil
}

func (f *solicitudRepoFake) ExisteAprobadaPorCUIT(_ context.Context, cuit string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.solicitudes {
		if s.CUIT == cuit && s.Estado == entity.SolicitudAprobada {
			return true, nil
		}
	}
	return false, nil
}

func (f *solicitudRepoFake) Update(_ context.Context, s *entity.Solicitud) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.solicitudes[s.ID] = s
	return nil
}

func (f *solicitudRepoFake) List(_ context.Context, estado string, _, _ int) ([]*entity.Solicitud, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Solicitud
	for _, s := range f.solicitudes {
		if estado == "" || s.Estado == estado {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *solicitudRepoFake) CountPorEstado(_ context.Context) (map[string]int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := map[string]int{}
	for _, s := range f.solicitudes {
		out[s.Estado]++
	}
	return out, nil
}

// ─── empresas y sus hijos ────────────────────────────────────────────────────

type empresaRepoFake struct {
	mu       sync.Mutex
	empresas map[string]*entity.Empresa
}

func newEmpresaRepoFake() *empresaRepoFake {
	return &empresaRepoFake{empresas: map[string]*entity.Empresa{}}
}

func (f *empresaRepoFake) Create(_ context.Context, e *entity.Empresa) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, otra := range f.empresas {
		if otra.CUIT == e.CUIT {
			return domain.ErrCUITDuplicado
		}
	}
	f.empresas[e.ID] = e
	return nil
}

func (f *empresaRepoFake) GetByID(_ context.Context, id string) (*entity.Empresa, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.empresas[id], nil
}

func (f *empresaRepoFake) GetByCUIT(_ context.Context, cuit string) (*entity.Empresa, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.empresas {
		if e.CUIT == cuit {
			return e, nil
		}
	}
	return nil, nil
}

func (f *empresaRepoFake) GetByUsuario(_ context.Context, usuarioID string) (*entity.Empresa, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.empresas {
		if e.UsuarioID == usuarioID {
			return e, nil
		}
	}
	return nil, nil
}

func (f *empresaRepoFake) Update(_ context.Context, e *entity.Empresa) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.empresas[e.ID] = e
	return nil
}

func (f *empresaRepoFake) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.empresas, id)
	return nil
}

func (f *empresaRepoFake) List(_ context.Context, filtro repository.FiltroEmpresas) ([]*entity.Empresa, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Empresa
	for _, e := range f.empresas {
		if filtro.UsuarioID != "" && e.UsuarioID != filtro.UsuarioID {
			continue
		}
		if filtro.Tipo != "" && e.Tipo != filtro.Tipo {
			continue
		}
		if filtro.Busqueda != "" &&
			!strings.Contains(strings.ToLower(e.RazonSocial), strings.ToLower(filtro.Busqueda)) &&
			!strings.Contains(e.CUIT, filtro.Busqueda) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (f *empresaRepoFake) Count(ctx context.Context, filtro repository.FiltroEmpresas) (int, error) {
	out, err := f.List(ctx, filtro)
	return len(out), err
}

type productoRepoFake struct {
	mu         sync.Mutex
	productos  map[string]*entity.ProductoEmpresa
	posiciones map[string]*entity.PosicionArancelaria // por producto
}

func newProductoRepoFake() *productoRepoFake {
	return &productoRepoFake{
		productos:  map[string]*entity.ProductoEmpresa{},
		posiciones: map[string]*entity.PosicionArancelaria{},
	}
}

func (f *productoRepoFake) Create(_ context.Context, p *entity.ProductoEmpresa) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.productos[p.ID] = p
	return nil
}

func (f *productoRepoFake) GetByID(_ context.Context, id string) (*entity.ProductoEmpresa, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.productos[id], nil
}

func (f *productoRepoFake) ListByEmpresa(_ context.Context, empresaID string) ([]*entity.ProductoEmpresa, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.ProductoEmpresa
	for _, p := range f.productos {
		if p.EmpresaID == empresaID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *productoRepoFake) Update(_ context.Context, p *entity.ProductoEmpresa) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.productos[p.ID] = p
	return nil
}

func (f *productoRepoFake) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.productos, id)
	delete(f.posiciones, id)
	return nil
}

func (f *productoRepoFake) UpsertPosicion(_ context.Context, pos *entity.PosicionArancelaria) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.posiciones[pos.ProductoID] = pos
	return nil
}

func (f *productoRepoFake) GetPosicion(_ context.Context, productoID string) (*entity.PosicionArancelaria, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.posiciones[productoID], nil
}

func (f *productoRepoFake) EmpresaTienePosicion(_ context.Context, empresaID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.productos {
		if p.EmpresaID == empresaID {
			if _, ok := f.posiciones[p.ID]; ok {
				return true, nil
			}
		}
	}
	return false, nil
}

type servicioRepoFake struct {
	mu        sync.Mutex
	servicios map[string]*entity.ServicioEmpresa
}

func newServicioRepoFake() *servicioRepoFake {
	return &servicioRepoFake{servicios: map[string]*entity.ServicioEmpresa{}}
}

func (f *servicioRepoFake) Create(_ context.Context, s *entity.ServicioEmpresa) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.servicios[s.ID] = s
	return nil
}

func (f *servicioRepoFake) GetByID(_ context.Context, id string) (*entity.ServicioEmpresa, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.servicios[id], nil
}

func (f *servicioRepoFake) ListByEmpresa(_ context.Context, empresaID string) ([]*entity.ServicioEmpresa, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.ServicioEmpresa
	for _, s := range f.servicios {
		if s.EmpresaID == empresaID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *servicioRepoFake) Update(_ context.Context, s *entity.ServicioEmpresa) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.servicios[s.ID] = s
	return nil
}

func (f *servicioRepoFake) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.servicios, id)
	return nil
}

// ─── referencias ─────────────────────────────────────────────────────────────

type referenciaRepoFake struct {
	mu            sync.Mutex
	nextID        int64
	provincias    []*entity.Provincia
	departamentos []*entity.Departamento
	municipios    []*entity.Municipio
	localidades   []*entity.Localidad
	rubros        []*entity.Rubro
	subrubros     []*entity.SubRubro
	tipos         []*entity.TipoEmpresaRef
}

func newReferenciaRepoFake() *referenciaRepoFake {
	return &referenciaRepoFake{
		nextID:     100,
		provincias: []*entity.Provincia{{ID: 1, Nombre: "Catamarca"}},
	}
}

func (f *referenciaRepoFake) siguiente() int64 {
	f.nextID++
	return f.nextID
}

func (f *referenciaRepoFake) GetProvincia(_ context.Context, nombre string) (*entity.Provincia, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.provincias {
		if strings.EqualFold(p.Nombre, nombre) {
			return p, nil
		}
	}
	return nil, nil
}

func (f *referenciaRepoFake) GetProvinciaByID(_ context.Context, id int64) (*entity.Provincia, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.provincias {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (f *referenciaRepoFake) GetOrCreateDepartamento(_ context.Context, provinciaID int64, nombre string) (*entity.Departamento, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, d := range f.departamentos {
		if d.ProvinciaID == provinciaID && strings.EqualFold(d.Nombre, nombre) {
			return d, nil
		}
	}
	d := &entity.Departamento{ID: f.siguiente(), ProvinciaID: provinciaID, Nombre: nombre}
	f.departamentos = append(f.departamentos, d)
	return d, nil
}

func (f *referenciaRepoFake) GetOrCreateMunicipio(_ context.Context, departamentoID int64, nombre string) (*entity.Municipio, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.municipios {
		if m.DepartamentoID == departamentoID && strings.EqualFold(m.Nombre, nombre) {
			return m, nil
		}
	}
	m := &entity.Municipio{ID: f.siguiente(), DepartamentoID: departamentoID, Nombre: nombre}
	f.municipios = append(f.municipios, m)
	return m, nil
}

func (f *referenciaRepoFake) GetOrCreateLocalidad(_ context.Context, municipioID int64, nombre string) (*entity.Localidad, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, l := range f.localidades {
		if l.MunicipioID == municipioID && strings.EqualFold(l.Nombre, nombre) {
			return l, nil
		}
	}
	l := &entity.Localidad{ID: f.siguiente(), MunicipioID: municipioID, Nombre: nombre}
	f.localidades = append(f.localidades, l)
	return l, nil
}

func (f *referenciaRepoFake) GetDepartamentoByID(_ context.Context, id int64) (*entity.Departamento, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, d := range f.departamentos {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, nil
}

func (f *referenciaRepoFake) GetMunicipioByID(_ context.Context, id int64) (*entity.Municipio, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.municipios {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, nil
}

func (f *referenciaRepoFake) GetLocalidadByID(_ context.Context, id int64) (*entity.Localidad, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, l := range f.localidades {
		if l.ID == id {
			return l, nil
		}
	}
	return nil, nil
}

func (f *referenciaRepoFake) GetOrCreateRubro(_ context.Context, nombre, tipo string) (*entity.Rubro, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.rubros {
		if strings.EqualFold(r.Nombre, nombre) && r.Tipo == tipo {
			return r, nil
		}
	}
	r := &entity.Rubro{ID: f.siguiente(), Nombre: nombre, Tipo: tipo}
	f.rubros = append(f.rubros, r)
	return r, nil
}

func (f *referenciaRepoFake) GetOrCreateSubRubro(_ context.Context, rubroID int64, nombre string) (*entity.SubRubro, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.subrubros {
		if s.RubroID == rubroID && strings.EqualFold(s.Nombre, nombre) {
			return s, nil
		}
	}
	s := &entity.SubRubro{ID: f.siguiente(), RubroID: rubroID, Nombre: nombre}
	f.subrubros = append(f.subrubros, s)
	return s, nil
}

func (f *referenciaRepoFake) GetRubroByID(_ context.Context, id int64) (*entity.Rubro, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.rubros {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, nil
}

func (f *referenciaRepoFake) ListRubros(_ context.Context) ([]*entity.Rubro, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*entity.Rubro{}, f.rubros...), nil
}

func (f *referenciaRepoFake) ListSubRubros(_ context.Context, rubroID int64) ([]*entity.SubRubro, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.SubRubro
	for _, s := range f.subrubros {
		if s.RubroID == rubroID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *referenciaRepoFake) CreateRubro(_ context.Context, r *entity.Rubro) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r.ID == 0 {
		r.ID = f.siguiente()
	}
	f.rubros = append(f.rubros, r)
	return nil
}

func (f *referenciaRepoFake) MoverSubRubros(_ context.Context, desdeRubroID, haciaRubroID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.subrubros {
		if s.RubroID == desdeRubroID {
			s.RubroID = haciaRubroID
		}
	}
	return nil
}

func (f *referenciaRepoFake) EliminarSubRubro(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, s := range f.subrubros {
		if s.ID == id {
			f.subrubros = append(f.subrubros[:i], f.subrubros[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *referenciaRepoFake) RepuntarEmpresas(_ context.Context, _, _ int64) error { return nil }

func (f *referenciaRepoFake) EliminarRubro(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, r := range f.rubros {
		if r.ID == id {
			f.rubros = append(f.rubros[:i], f.rubros[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *referenciaRepoFake) GetOrCreateTipoEmpresa(_ context.Context, nombre string) (*entity.TipoEmpresaRef, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.tipos {
		if strings.EqualFold(t.Nombre, nombre) {
			return t, nil
		}
	}
	t := &entity.TipoEmpresaRef{ID: f.siguiente(), Nombre: nombre}
	f.tipos = append(f.tipos, t)
	return t, nil
}

func (f *referenciaRepoFake) GetTipoEmpresaByID(_ context.Context, id int64) (*entity.TipoEmpresaRef, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.tipos {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, nil
}

// ─── matriz ──────────────────────────────────────────────────────────────────

type matrizRepoFake struct {
	mu       sync.Mutex
	upserts  int
	porEmpre map[string]*entity.MatrizClasificacion
}

func newMatrizRepoFake() *matrizRepoFake {
	return &matrizRepoFake{porEmpre: map[string]*entity.MatrizClasificacion{}}
}

func (f *matrizRepoFake) Upsert(_ context.Context, m *entity.MatrizClasificacion) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.upserts++
	if previa, ok := f.porEmpre[m.EmpresaID]; ok {
		m.ID = previa.ID
	}
	f.porEmpre[m.EmpresaID] = m
	return nil
}

func (f *matrizRepoFake) GetByEmpresa(_ context.Context, empresaID string) (*entity.MatrizClasificacion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.porEmpre[empresaID], nil
}

func (f *matrizRepoFake) CountPorCategoria(_ context.Context) (map[string]int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := map[string]int{}
	for _, m := range f.porEmpre {
		out[m.Categoria]++
	}
	return out, nil
}

package consulta_test

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/catamarca-comercio/registro-exportadores/internal/domain/entity"
	"github.com/catamarca-comercio/registro-exportadores/internal/domain/repository"
)

// Los fakes embeben el puerto para no implementar los métodos que la
// consulta nunca invoca; llamarlos revienta el test, que es lo deseado.

// ─── Empresas ────────────────────────────────────────────────────────────────

type empresaRepoFake struct {
	repository.EmpresaRepository
	empresas []*entity.Empresa
}

func (f *empresaRepoFake) GetByID(_ context.Context, id string) (*entity.Empresa, error) {
	for _, e := range f.empresas {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, nil
}

func (f *empresaRepoFake) List(_ context.Context, fl repository.FiltroEmpresas) ([]*entity.Empresa, error) {
	var out []*entity.Empresa
	for _, e := range f.empresas {
		if f.pasa(e, fl) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *empresaRepoFake) Count(_ context.Context, fl repository.FiltroEmpresas) (int, error) {
	n := 0
	for _, e := range f.empresas {
		if f.pasa(e, fl) {
			n++
		}
	}
	return n, nil
}

func (f *empresaRepoFake) pasa(e *entity.Empresa, fl repository.FiltroEmpresas) bool {
	if fl.UsuarioID != "" && e.UsuarioID != fl.UsuarioID {
		return false
	}
	if fl.Tipo != "" && e.Tipo != fl.Tipo {
		return false
	}
	if fl.Exporta != "" && e.Exporta != fl.Exporta {
		return false
	}
	if fl.Busqueda != "" && !strings.Contains(strings.ToLower(e.RazonSocial), strings.ToLower(fl.Busqueda)) {
		return false
	}
	return true
}

// statsFake agrega sobre el mismo slice del repositorio de empresas.
type statsFake struct {
	empresas *empresaRepoFake
}

func (f *statsFake) CountPorExporta(context.Context) (map[string]int, error) {
	out := map[string]int{}
	for _, e := range f.empresas.empresas {
		out[e.Exporta]++
	}
	return out, nil
}

func (f *statsFake) CountPorTipo(context.Context) (map[string]int, error) {
	out := map[string]int{}
	for _, e := range f.empresas.empresas {
		out[e.Tipo]++
	}
	return out, nil
}

func (f *statsFake) CountPorRubro(context.Context) (map[string]int, error) {
	out := map[string]int{}
	for _, e := range f.empresas.empresas {
		if e.RubroID != nil {
			out[strconv.FormatInt(*e.RubroID, 10)]++
		}
	}
	return out, nil
}

func (f *statsFake) CountCreadasDesde(_ context.Context, desde time.Time) (int, error) {
	n := 0
	for _, e := range f.empresas.empresas {
		if !e.FechaCreacion.Before(desde) {
			n++
		}
	}
	return n, nil
}

func (f *statsFake) UltimasCreadas(_ context.Context, n int) ([]*entity.Empresa, error) {
	empresas := f.empresas.empresas
	if len(empresas) > n {
		empresas = empresas[len(empresas)-n:]
	}
	out := make([]*entity.Empresa, len(empresas))
	for i, e := range empresas {
		out[len(empresas)-1-i] = e
	}
	return out, nil
}

// ─── Productos y servicios ───────────────────────────────────────────────────

type productoRepoFake struct {
	repository.ProductoRepository
	productos  []*entity.ProductoEmpresa
	posiciones map[string]*entity.PosicionArancelaria // productoID -> posición
}

func (f *productoRepoFake) ListByEmpresa(_ context.Context, empresaID string) ([]*entity.ProductoEmpresa, error) {
	var out []*entity.ProductoEmpresa
	for _, p := range f.productos {
		if p.EmpresaID == empresaID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *productoRepoFake) GetPosicion(_ context.Context, productoID string) (*entity.PosicionArancelaria, error) {
	return f.posiciones[productoID], nil
}

type servicioRepoFake struct {
	repository.ServicioRepository
	servicios []*entity.ServicioEmpresa
}

func (f *servicioRepoFake) ListByEmpresa(_ context.Context, empresaID string) ([]*entity.ServicioEmpresa, error) {
	var out []*entity.ServicioEmpresa
	for _, s := range f.servicios {
		if s.EmpresaID == empresaID {
			out = append(out, s)
		}
	}
	return out, nil
}

// ─── Solicitudes, matriz y auditoría ─────────────────────────────────────────

type solicitudRepoFake struct {
	repository.SolicitudRepository
	solicitudes []*entity.Solicitud
	porEstado   map[string]int
}

func (f *solicitudRepoFake) GetByUsuario(_ context.Context, usuarioID string) (*entity.Solicitud, error) {
	for _, s := range f.solicitudes {
		if s.UsuarioID == usuarioID {
			return s, nil
		}
	}
	return nil, nil
}

func (f *solicitudRepoFake) CountPorEstado(context.Context) (map[string]int, error) {
	return f.porEstado, nil
}

// matrizRepoFake respeta la cancelación del contexto igual que el
// repositorio real sobre pgx.
type matrizRepoFake struct {
	repository.MatrizRepository
	filas map[string]*entity.MatrizClasificacion // empresaID -> fila
}

func (f *matrizRepoFake) GetByEmpresa(ctx context.Context, empresaID string) (*entity.MatrizClasificacion, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return f.filas[empresaID], nil
}

func (f *matrizRepoFake) CountPorCategoria(ctx context.Context) (map[string]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := map[string]int{}
	for _, m := range f.filas {
		out[m.Categoria]++
	}
	return out, nil
}

type auditoriaRepoFake struct {
	repository.AuditoriaRepository
	entradas []*entity.AuditoriaLog
}

func (f *auditoriaRepoFake) ListByObjeto(_ context.Context, modelo, objetoID string, limit int) ([]*entity.AuditoriaLog, error) {
	var out []*entity.AuditoriaLog
	for _, a := range f.entradas {
		if a.Modelo == modelo && a.ObjetoID == objetoID {
			out = append(out, a)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

// ─── Referencias ─────────────────────────────────────────────────────────────

type referenciaRepoFake struct {
	repository.ReferenciaRepository
	provincias    map[int64]string
	departamentos map[int64]string
	municipios    map[int64]string
	localidades   map[int64]string
	rubros        map[int64]string
	tipos         map[int64]string
}

func (f *referenciaRepoFake) GetProvinciaByID(_ context.Context, id int64) (*entity.Provincia, error) {
	if nombre, ok := f.provincias[id]; ok {
		return &entity.Provincia{ID: id, Nombre: nombre}, nil
	}
	return nil, nil
}

func (f *referenciaRepoFake) GetDepartamentoByID(_ context.Context, id int64) (*entity.Departamento, error) {
	if nombre, ok := f.departamentos[id]; ok {
		return &entity.Departamento{ID: id, Nombre: nombre}, nil
	}
	return nil, nil
}

func (f *referenciaRepoFake) GetMunicipioByID(_ context.Context, id int64) (*entity.Municipio, error) {
	if nombre, ok := f.municipios[id]; ok {
		return &entity.Municipio{ID: id, Nombre: nombre}, nil
	}
	return nil, nil
}

func (f *referenciaRepoFake) GetLocalidadByID(_ context.Context, id int64) (*entity.Localidad, error) {
	if nombre, ok := f.localidades[id]; ok {
		return &entity.Localidad{ID: id, Nombre: nombre}, nil
	}
	return nil, nil
}

func (f *referenciaRepoFake) GetRubroByID(_ context.Context, id int64) (*entity.Rubro, error) {
	if nombre, ok := f.rubros[id]; ok {
		return &entity.Rubro{ID: id, Nombre: nombre}, nil
	}
	return nil, nil
}

func (f *referenciaRepoFake) GetTipoEmpresaByID(_ context.Context, id int64) (*entity.TipoEmpresaRef, error) {
	if nombre, ok := f.tipos[id]; ok {
		return &entity.TipoEmpresaRef{ID: id, Nombre: nombre}, nil
	}
	return nil, nil
}

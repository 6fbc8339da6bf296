package matriz_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catamarca-comercio/registro-exportadores/internal/application/dto"
	"github.com/catamarca-comercio/registro-exportadores/internal/application/matriz"
	"github.com/catamarca-comercio/registro-exportadores/internal/domain"
	"github.com/catamarca-comercio/registro-exportadores/internal/domain/entity"
	"github.com/catamarca-comercio/registro-exportadores/internal/domain/repository"
)

// ─── fakes mínimos ───────────────────────────────────────────────────────────

type empresaRepoFake struct {
	empresas map[string]*entity.Empresa
}

func (f *empresaRepoFake) Create(_ context.Context, e *entity.Empresa) error {
	f.empresas[e.ID] = e
	return nil
}
func (f *empresaRepoFake) GetByID(_ context.Context, id string) (*entity.Empresa, error) {
	return f.empresas[id], nil
}
func (f *empresaRepoFake) GetByCUIT(_ context.Context, _ string) (*entity.Empresa, error) {
	return nil, nil
}
func (f *empresaRepoFake) GetByUsuario(_ context.Context, _ string) (*entity.Empresa, error) {
	return nil, nil
}
func (f *empresaRepoFake) Update(_ context.Context, e *entity.Empresa) error {
	f.empresas[e.ID] = e
	return nil
}
func (f *empresaRepoFake) Delete(_ context.Context, id string) error {
	delete(f.empresas, id)
	return nil
}
func (f *empresaRepoFake) List(_ context.Context, _ repository.FiltroEmpresas) ([]*entity.Empresa, error) {
	return nil, nil
}
func (f *empresaRepoFake) Count(_ context.Context, _ repository.FiltroEmpresas) (int, error) {
	return 0, nil
}

type productoRepoFake struct {
	conPosicion map[string]bool // por empresa
}

func (f *productoRepoFake) Create(_ context.Context, _ *entity.ProductoEmpresa) error { return nil }
func (f *productoRepoFake) GetByID(_ context.Context, _ string) (*entity.ProductoEmpresa, error) {
	return nil, nil
}
func (f *productoRepoFake) ListByEmpresa(_ context.Context, _ string) ([]*entity.ProductoEmpresa, error) {
	return nil, nil
}
func (f *productoRepoFake) Update(_ context.Context, _ *entity.ProductoEmpresa) error { return nil }
func (f *productoRepoFake) Delete(_ context.Context, _ string) error                  { return nil }
func (f *productoRepoFake) UpsertPosicion(_ context.Context, _ *entity.PosicionArancelaria) error {
	return nil
}
func (f *productoRepoFake) GetPosicion(_ context.Context, _ string) (*entity.PosicionArancelaria, error) {
	return nil, nil
}
func (f *productoRepoFake) EmpresaTienePosicion(_ context.Context, empresaID string) (bool, error) {
	return f.conPosicion[empresaID], nil
}

type matrizRepoFake struct {
	upserts int
	filas   map[string]*entity.MatrizClasificacion
}

func (f *matrizRepoFake) Upsert(_ context.Context, m *entity.MatrizClasificacion) error {
	f.upserts++
	if previa, ok := f.filas[m.EmpresaID]; ok {
		m.ID = previa.ID
	}
	f.filas[m.EmpresaID] = m
	return nil
}
func (f *matrizRepoFake) GetByEmpresa(_ context.Context, empresaID string) (*entity.MatrizClasificacion, error) {
	return f.filas[empresaID], nil
}
func (f *matrizRepoFake) CountPorCategoria(_ context.Context) (map[string]int, error) {
	return nil, nil
}

func armar(t *testing.T) (*matriz.UseCase, *empresaRepoFake, *productoRepoFake, *matrizRepoFake) {
	t.Helper()
	empresas := &empresaRepoFake{empresas: map[string]*entity.Empresa{}}
	productos := &productoRepoFake{conPosicion: map[string]bool{}}
	matrices := &matrizRepoFake{filas: map[string]*entity.MatrizClasificacion{}}
	return matriz.NewUseCase(empresas, productos, matrices), empresas, productos, matrices
}

func empresaExportadora() *entity.Empresa {
	return &entity.Empresa{
		ID:                      "emp-1",
		RazonSocial:             "Bodega del Valle SRL",
		Tipo:                    entity.TipoProducto,
		Exporta:                 entity.ExportaSi,
		CapacidadProductiva:     decimal.NewFromInt(2000),
		PeriodoCapacidad:        entity.PeriodoAnual,
		SitioWeb:                "https://x.com",
		ContactoSecundario:      entity.Contacto{Nombre: "Pedro", Email: "p@x.com"},
		Promo2Idiomas:           true,
		CertificadoPyme:         true,
		CertificacionesInternac: true,
		Certificaciones:         "SENASA, ISO 9001",
	}
}

// ─── clasificación automática ────────────────────────────────────────────────

func TestClasificarEmpresa(t *testing.T) {
	uc, empresas, productos, matrices := armar(t)
	ctx := context.Background()
	e := empresaExportadora()
	require.NoError(t, empresas.Create(ctx, e))
	productos.conPosicion[e.ID] = true

	m, err := uc.ClasificarEmpresa(ctx, e.ID, "admin-1")
	require.NoError(t, err)
	assert.Equal(t, [9]int{3, 3, 2, 1, 0, 2, 0, 2, 2}, m.Criterios())
	assert.Equal(t, 15, m.PuntajeTotal)
	assert.Equal(t, entity.CategoriaExportadora, m.Categoria)
	assert.Equal(t, "admin-1", m.EvaluadoPor)
	assert.Equal(t, 1, matrices.upserts)
}

func TestClasificarEmpresa_Idempotente(t *testing.T) {
	uc, empresas, productos, matrices := armar(t)
	ctx := context.Background()
	e := empresaExportadora()
	require.NoError(t, empresas.Create(ctx, e))
	productos.conPosicion[e.ID] = true

	primera, err := uc.ClasificarEmpresa(ctx, e.ID, "admin-1")
	require.NoError(t, err)
	segunda, err := uc.ClasificarEmpresa(ctx, e.ID, "admin-1")
	require.NoError(t, err)

	// Mismos puntajes y una única fila: el upsert pisa, no duplica.
	assert.Equal(t, primera.Criterios(), segunda.Criterios())
	assert.Equal(t, primera.ID, segunda.ID)
	assert.Len(t, matrices.filas, 1)
	assert.Equal(t, 2, matrices.upserts)
}

func TestClasificarEmpresa_Inexistente(t *testing.T) {
	uc, _, _, _ := armar(t)
	_, err := uc.ClasificarEmpresa(context.Background(), "no-existe", "admin-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCalcularSinPersistir_NoEscribe(t *testing.T) {
	uc, empresas, _, matrices := armar(t)
	ctx := context.Background()
	e := empresaExportadora()
	require.NoError(t, empresas.Create(ctx, e))

	out, err := uc.CalcularSinPersistir(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, 14, out.PuntajeTotal, "sin posición arancelaria el criterio 4 vale 0")
	assert.Equal(t, 0, matrices.upserts)
}

// ─── carga manual ────────────────────────────────────────────────────────────

func TestCargaManual_RecalculaTotalYCategoria(t *testing.T) {
	uc, empresas, _, _ := armar(t)
	ctx := context.Background()
	e := empresaExportadora()
	require.NoError(t, empresas.Create(ctx, e))

	m, err := uc.CargaManual(ctx, "admin-1", dto.MatrizManualRequest{
		EmpresaID:              e.ID,
		ExperienciaExportadora: 1,
		VolumenProduccion:      2,
		PresenciaDigital:       2,
		EstructuraInterna:      1,
		InteresExportador:      1,
	})
	require.NoError(t, err)
	assert.Equal(t, 7, m.PuntajeTotal)
	assert.Equal(t, entity.CategoriaPotencialExportadora, m.Categoria)
}

func TestCargaManual_PuntajeFueraDeRango(t *testing.T) {
	uc, empresas, _, _ := armar(t)
	ctx := context.Background()
	e := empresaExportadora()
	require.NoError(t, empresas.Create(ctx, e))

	_, err := uc.CargaManual(ctx, "admin-1", dto.MatrizManualRequest{
		EmpresaID:         e.ID,
		VolumenProduccion: 4,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCargaManual_EmpresaInexistente(t *testing.T) {
	uc, _, _, _ := armar(t)
	_, err := uc.CargaManual(context.Background(), "admin-1", dto.MatrizManualRequest{EmpresaID: "nada"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

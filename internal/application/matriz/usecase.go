// Package matriz persiste la matriz de clasificación exportadora sobre el
// scorer puro de domain/matriz: cálculo automático, consulta sin persistir y
// carga manual de puntajes por un administrador.
package matriz

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/catamarca-comercio/registro-exportadores/internal/application/dto"
	"github.com/catamarca-comercio/registro-exportadores/internal/domain"
	"github.com/catamarca-comercio/registro-exportadores/internal/domain/entity"
	"github.com/catamarca-comercio/registro-exportadores/internal/domain/matriz"
	"github.com/catamarca-comercio/registro-exportadores/internal/domain/repository"
)

// UseCase calcula y persiste matrices de clasificación.
type UseCase struct {
	empresaRepo  repository.EmpresaRepository
	productoRepo repository.ProductoRepository
	matrizRepo   repository.MatrizRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	empresaRepo repository.EmpresaRepository,
	productoRepo repository.ProductoRepository,
	matrizRepo repository.MatrizRepository,
) *UseCase {
	return &UseCase{
		empresaRepo:  empresaRepo,
		productoRepo: productoRepo,
		matrizRepo:   matrizRepo,
	}
}

// ClasificarEmpresa calcula los nueve criterios y hace upsert de la fila.
// Recalcular sobre una empresa sin cambios produce puntajes idénticos y no
// duplica la fila.
func (uc *UseCase) ClasificarEmpresa(ctx context.Context, empresaID, evaluadorID string) (*entity.MatrizClasificacion, error) {
	p, err := uc.calcular(ctx, empresaID)
	if err != nil {
		return nil, err
	}

	m := &entity.MatrizClasificacion{
		ID:        uuid.New().String(),
		EmpresaID: empresaID,

		ExperienciaExportadora:  p.ExperienciaExportadora,
		VolumenProduccion:       p.VolumenProduccion,
		PresenciaDigital:        p.PresenciaDigital,
		PosicionArancelaria:     p.PosicionArancelaria,
		ParticipacionInternac:   p.ParticipacionInternac,
		EstructuraInterna:       p.EstructuraInterna,
		InteresExportador:       p.InteresExportador,
		CertificacionesNac:      p.CertificacionesNac,
		CertificacionesInternac: p.CertificacionesInternac,

		PuntajeTotal: p.Total(),
		Categoria:    matriz.Categoria(p.Total()),

		EvaluadoPor:     evaluadorID,
		FechaEvaluacion: time.Now(),
	}
	if err := uc.matrizRepo.Upsert(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// CalcularSinPersistir devuelve los puntajes computados sin tocar la base.
func (uc *UseCase) CalcularSinPersistir(ctx context.Context, empresaID string) (*dto.MatrizResponse, error) {
	p, err := uc.calcular(ctx, empresaID)
	if err != nil {
		return nil, err
	}
	return &dto.MatrizResponse{
		EmpresaID:               empresaID,
		ExperienciaExportadora:  p.ExperienciaExportadora,
		VolumenProduccion:       p.VolumenProduccion,
		PresenciaDigital:        p.PresenciaDigital,
		PosicionArancelaria:     p.PosicionArancelaria,
		ParticipacionInternac:   p.ParticipacionInternac,
		EstructuraInterna:       p.EstructuraInterna,
		InteresExportador:       p.InteresExportador,
		CertificacionesNac:      p.CertificacionesNac,
		CertificacionesInternac: p.CertificacionesInternac,
		PuntajeTotal:            p.Total(),
		Categoria:               matriz.Categoria(p.Total()),
	}, nil
}

// CargaManual acepta los nueve puntajes de un administrador. El total y la
// categoría se recomputan siempre desde los puntajes recibidos; cualquier
// total o categoría que mande el cliente se ignora.
func (uc *UseCase) CargaManual(ctx context.Context, evaluadorID string, in dto.MatrizManualRequest) (*entity.MatrizClasificacion, error) {
	e, err := uc.empresaRepo.GetByID(ctx, in.EmpresaID)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	for _, v := range [9]int{
		in.ExperienciaExportadora, in.VolumenProduccion, in.PresenciaDigital,
		in.PosicionArancelaria, in.ParticipacionInternac, in.EstructuraInterna,
		in.InteresExportador, in.CertificacionesNac, in.CertificacionesInternac,
	} {
		if v < 0 || v > 3 {
			return nil, domain.ErrInvalidInput
		}
	}

	m := &entity.MatrizClasificacion{
		ID:        uuid.New().String(),
		EmpresaID: in.EmpresaID,

		ExperienciaExportadora:  in.ExperienciaExportadora,
		VolumenProduccion:       in.VolumenProduccion,
		PresenciaDigital:        in.PresenciaDigital,
		PosicionArancelaria:     in.PosicionArancelaria,
		ParticipacionInternac:   in.ParticipacionInternac,
		EstructuraInterna:       in.EstructuraInterna,
		InteresExportador:       in.InteresExportador,
		CertificacionesNac:      in.CertificacionesNac,
		CertificacionesInternac: in.CertificacionesInternac,

		EvaluadoPor:     evaluadorID,
		FechaEvaluacion: time.Now(),
		Observaciones:   in.Observaciones,
	}
	total := 0
	for _, v := range m.Criterios() {
		total += v
	}
	m.PuntajeTotal = total
	m.Categoria = matriz.Categoria(total)

	if err := uc.matrizRepo.Upsert(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Obtener devuelve la matriz persistida de una empresa.
func (uc *UseCase) Obtener(ctx context.Context, empresaID string) (*entity.MatrizClasificacion, error) {
	m, err := uc.matrizRepo.GetByEmpresa(ctx, empresaID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	return m, nil
}

func (uc *UseCase) calcular(ctx context.Context, empresaID string) (matriz.Puntajes, error) {
	e, err := uc.empresaRepo.GetByID(ctx, empresaID)
	if err != nil {
		return matriz.Puntajes{}, err
	}
	if e == nil {
		return matriz.Puntajes{}, domain.ErrNotFound
	}
	tienePosicion, err := uc.productoRepo.EmpresaTienePosicion(ctx, empresaID)
	if err != nil {
		return matriz.Puntajes{}, err
	}
	return matriz.Calcular(matriz.DesdeEmpresa(e, tienePosicion)), nil
}

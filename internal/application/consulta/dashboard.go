package consulta

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/catamarca-comercio/registro-exportadores/internal/application/dto"
	"github.com/catamarca-comercio/registro-exportadores/internal/domain/entity"
)

// Ventana de "actividad reciente" del tablero.
const diasActividadReciente = 30

// Cantidad de últimas altas que muestra el widget.
const ultimasAltas = 5

// Dashboard arma los contadores del tablero de la dirección. Las
// agregaciones son independientes entre sí y se consultan en paralelo.
func (uc *UseCase) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	out := &dto.DashboardResponse{}

	// El contexto del grupo se cancela al terminar Wait; las consultas
	// posteriores al Wait usan el contexto del llamador.
	var recientes []*entity.Empresa
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.SolicitudesPorEstado, err = uc.solicitudRepo.CountPorEstado(gctx)
		return err
	})
	g.Go(func() (err error) {
		out.EmpresasPorExporta, err = uc.stats.CountPorExporta(gctx)
		return err
	})
	g.Go(func() (err error) {
		out.EmpresasPorTipo, err = uc.stats.CountPorTipo(gctx)
		return err
	})
	g.Go(func() (err error) {
		out.EmpresasPorRubro, err = uc.stats.CountPorRubro(gctx)
		return err
	})
	g.Go(func() (err error) {
		out.EmpresasPorCategoria, err = uc.matrizRepo.CountPorCategoria(gctx)
		return err
	})
	g.Go(func() (err error) {
		desde := time.Now().AddDate(0, 0, -diasActividadReciente)
		out.ActividadReciente, err = uc.stats.CountCreadasDesde(gctx, desde)
		return err
	})
	g.Go(func() (err error) {
		recientes, err = uc.stats.UltimasCreadas(gctx, ultimasAltas)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out.UltimasEmpresas = make([]dto.EmpresaReciente, 0, len(recientes))
	for _, e := range recientes {
		item := dto.EmpresaReciente{
			ID:            e.ID,
			RazonSocial:   e.RazonSocial,
			Tipo:          e.Tipo,
			FechaCreacion: e.FechaCreacion,
		}
		if m, err := uc.matrizRepo.GetByEmpresa(ctx, e.ID); err == nil && m != nil {
			item.Categoria = m.Categoria
		}
		out.UltimasEmpresas = append(out.UltimasEmpresas, item)
	}
	return out, nil
}

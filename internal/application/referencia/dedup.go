// Package referencia mantiene la taxonomía de rubros: listado para el
// formulario público y saneamiento de duplicados. La aprobación crea rubros
// a partir de texto libre, así que con el tiempo aparecen pares
// (nombre, tipo) repetidos que hay que fusionar.
package referencia

import (
	"context"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/catamarca-comercio/registro-exportadores/internal/application/dto"
	"github.com/catamarca-comercio/registro-exportadores/internal/domain/entity"
	"github.com/catamarca-comercio/registro-exportadores/internal/domain/repository"
)

// TxRunner corre una fusión completa dentro de una transacción: mover o
// borrar subrubros, repuntar empresas y borrar el rubro duplicado son un
// solo paso atómico.
type TxRunner interface {
	RunReferencias(ctx context.Context, fn func(repository.ReferenciaRepository) error) error
}

// UseCase agrupa las operaciones sobre datos de referencia.
type UseCase struct {
	tx   TxRunner
	refs repository.ReferenciaRepository
	log  zerolog.Logger
}

// NewUseCase construye el caso de uso de referencia.
func NewUseCase(tx TxRunner, refs repository.ReferenciaRepository, log zerolog.Logger) *UseCase {
	return &UseCase{tx: tx, refs: refs, log: log}
}

// ListarRubros devuelve la taxonomía completa con subrubros, ordenada como
// la carga el seed (campo Orden y después nombre).
func (uc *UseCase) ListarRubros(ctx context.Context) ([]dto.RubroResponse, error) {
	rubros, err := uc.refs.ListRubros(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RubroResponse, 0, len(rubros))
	for _, r := range rubros {
		item := dto.RubroResponse{
			ID:           r.ID,
			Nombre:       r.Nombre,
			Tipo:         r.Tipo,
			UnidadMedida: r.UnidadMedida,
		}
		subs, err := uc.refs.ListSubRubros(ctx, r.ID)
		if err != nil {
			return nil, err
		}
		for _, s := range subs {
			item.SubRubros = append(item.SubRubros, dto.SubRubroResponse{ID: s.ID, Nombre: s.Nombre})
		}
		out = append(out, item)
	}
	return out, nil
}

// Fusion es el resultado de fusionar un rubro duplicado en su canónico.
type Fusion struct {
	Nombre      string `json:"nombre"`
	Tipo        string `json:"tipo"`
	CanonicoID  int64  `json:"canonico_id"`
	EliminadoID int64  `json:"eliminado_id"`
}

// ResultadoSaneamiento resume una corrida de SanearRubros.
type ResultadoSaneamiento struct {
	Fusiones            []Fusion `json:"fusiones"`
	SubRubrosEliminados int      `json:"subrubros_eliminados"`
}

// SanearRubros fusiona los rubros con (nombre, tipo) repetido. El de menor
// ID es el canónico; de cada duplicado se borran los subrubros cuyo nombre
// ya existe en el canónico, se mueve el resto, se repuntan las empresas y
// recién entonces se elimina el rubro. Cada fusión corre en su propia
// transacción, así una corrida interrumpida deja pares enteros sin tocar.
func (uc *UseCase) SanearRubros(ctx context.Context) (*ResultadoSaneamiento, error) {
	rubros, err := uc.refs.ListRubros(ctx)
	if err != nil {
		return nil, err
	}

	grupos := map[string][]*entity.Rubro{}
	for _, r := range rubros {
		clave := strings.ToLower(strings.TrimSpace(r.Nombre)) + "|" + r.Tipo
		grupos[clave] = append(grupos[clave], r)
	}

	out := &ResultadoSaneamiento{}
	for _, grupo := range grupos {
		if len(grupo) < 2 {
			continue
		}
		sort.Slice(grupo, func(i, j int) bool { return grupo[i].ID < grupo[j].ID })
		canonico := grupo[0]
		for _, duplicado := range grupo[1:] {
			eliminados, err := uc.fusionar(ctx, canonico, duplicado)
			if err != nil {
				return out, err
			}
			out.SubRubrosEliminados += eliminados
			out.Fusiones = append(out.Fusiones, Fusion{
				Nombre:      canonico.Nombre,
				Tipo:        canonico.Tipo,
				CanonicoID:  canonico.ID,
				EliminadoID: duplicado.ID,
			})
			uc.log.Info().
				Str("rubro", canonico.Nombre).
				Int64("canonico", canonico.ID).
				Int64("eliminado", duplicado.ID).
				Msg("rubro duplicado fusionado")
		}
	}
	return out, nil
}

func (uc *UseCase) fusionar(ctx context.Context, canonico, duplicado *entity.Rubro) (int, error) {
	eliminados := 0
	err := uc.tx.RunReferencias(ctx, func(refs repository.ReferenciaRepository) error {
		subsCanonico, err := refs.ListSubRubros(ctx, canonico.ID)
		if err != nil {
			return err
		}
		existentes := make(map[string]bool, len(subsCanonico))
		for _, s := range subsCanonico {
			existentes[strings.ToLower(strings.TrimSpace(s.Nombre))] = true
		}

		subsDuplicado, err := refs.ListSubRubros(ctx, duplicado.ID)
		if err != nil {
			return err
		}
		for _, s := range subsDuplicado {
			if !existentes[strings.ToLower(strings.TrimSpace(s.Nombre))] {
				continue
			}
			if err := refs.EliminarSubRubro(ctx, s.ID); err != nil {
				return err
			}
			eliminados++
		}

		if err := refs.MoverSubRubros(ctx, duplicado.ID, canonico.ID); err != nil {
			return err
		}
		if err := refs.RepuntarEmpresas(ctx, duplicado.ID, canonico.ID); err != nil {
			return err
		}
		return refs.EliminarRubro(ctx, duplicado.ID)
	})
	if err != nil {
		return 0, err
	}
	return eliminados, nil
}

// Package auditoria construye y persiste entradas del registro de auditoría.
// El registro es best-effort: un fallo al auditar se loguea y nunca corta la
// operación principal.
package auditoria

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/catamarca-comercio/registro-exportadores/internal/domain/entity"
	"github.com/catamarca-comercio/registro-exportadores/internal/domain/repository"
)

// Registrador escribe entradas de auditoría.
type Registrador struct {
	repo repository.AuditoriaRepository
	log  zerolog.Logger
}

// New construye el registrador.
func New(repo repository.AuditoriaRepository, log zerolog.Logger) *Registrador {
	return &Registrador{repo: repo, log: log}
}

// Entrada parámetros de una anotación de auditoría.
type Entrada struct {
	UsuarioID    *string
	Accion       string
	Modelo       string
	ObjetoID     string
	ObjetoNombre string
	Descripcion  string
	Antes        any
	Despues      any
	URL          string
	Metodo       string
	Categoria    string
	Criticidad   string
	Exitoso      bool
	SesionID     string
}

// Registrar serializa los snapshots y agrega la entrada. Nunca retorna error.
func (r *Registrador) Registrar(ctx context.Context, e Entrada) {
	if e.Criticidad == "" {
		e.Criticidad = entity.CriticidadBaja
	}
	log := &entity.AuditoriaLog{
		Fecha:           time.Now(),
		UsuarioID:       e.UsuarioID,
		Accion:          e.Accion,
		Modelo:          e.Modelo,
		ObjetoID:        e.ObjetoID,
		ObjetoNombre:    e.ObjetoNombre,
		Descripcion:     e.Descripcion,
		SnapshotAntes:   snapshot(e.Antes),
		SnapshotDespues: snapshot(e.Despues),
		URL:             e.URL,
		Metodo:          e.Metodo,
		Categoria:       e.Categoria,
		Criticidad:      e.Criticidad,
		Exitoso:         e.Exitoso,
		SesionID:        e.SesionID,
	}
	if err := r.repo.Append(ctx, log); err != nil {
		r.log.Error().Err(err).Str("accion", e.Accion).Str("modelo", e.Modelo).
			Msg("registrar auditoría")
	}
}

// PermisoDenegado anota un intento de operación sin capacidad suficiente.
func (r *Registrador) PermisoDenegado(ctx context.Context, usuarioID *string, url, metodo, descripcion string) {
	r.Registrar(ctx, Entrada{
		UsuarioID:   usuarioID,
		Accion:      entity.AccionPermisoDenegado,
		Descripcion: descripcion,
		URL:         url,
		Metodo:      metodo,
		Categoria:   "autorizacion",
		Criticidad:  entity.CriticidadMedia,
		Exitoso:     false,
	})
}

// snapshot serializa el estado de una fila como JSON. Las fechas salen en
// ISO-8601 y los decimales con la representación de shopspring.
func snapshot(v any) json.RawMessage {
	if v == nil {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return json.RawMessage(`{"error":"snapshot no serializable"}`)
	}
	return data
}

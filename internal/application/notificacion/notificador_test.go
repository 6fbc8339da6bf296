package notificacion

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catamarca-comercio/registro-exportadores/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

// notificacionRepoFake guarda los intentos en memoria y avisa por canal
// cuando MarcarEnviado cierra el ciclo del envío asíncrono.
type notificacionRepoFake struct {
	mu    sync.Mutex
	filas []*entity.Notificacion
	listo chan struct{}
}

func newNotificacionRepoFake() *notificacionRepoFake {
	return &notificacionRepoFake{listo: make(chan struct{}, 1)}
}

func (f *notificacionRepoFake) Create(ctx context.Context, n *entity.Notificacion) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	n.ID = int64(len(f.filas) + 1)
	f.filas = append(f.filas, n)
	return nil
}

func (f *notificacionRepoFake) MarcarEnviado(ctx context.Context, id int64, errorTexto string) error {
	f.mu.Lock()
	for _, n := range f.filas {
		if n.ID == id {
			n.Enviado = errorTexto == ""
			n.Error = errorTexto
		}
	}
	f.mu.Unlock()
	f.listo <- struct{}{}
	return nil
}

func (f *notificacionRepoFake) ListBySolicitud(ctx context.Context, solicitudID string) ([]*entity.Notificacion, error) {
	return nil, nil
}

func (f *notificacionRepoFake) fila(t *testing.T, id int64) *entity.Notificacion {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, n := range f.filas {
		if n.ID == id {
			return n
		}
	}
	t.Fatalf("no existe la notificación %d", id)
	return nil
}

type senderFake struct {
	err      error
	destinos []string
}

func (s *senderFake) Send(ctx context.Context, destino, asunto, cuerpoHTML string) error {
	s.destinos = append(s.destinos, destino)
	return s.err
}

func esperar(t *testing.T, repo *notificacionRepoFake) {
	t.Helper()
	select {
	case <-repo.listo:
	case <-time.After(2 * time.Second):
		t.Fatal("el envío asíncrono no terminó a tiempo")
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// Envío exitoso: la fila queda con enviado=true y sin error.
func TestEnviarAsync_ExitoMarcaEnviado(t *testing.T) {
	repo := newNotificacionRepoFake()
	sender := &senderFake{}
	n := New(repo, sender, zerolog.Nop())

	solicitudID := "sol-1"
	n.EnviarAsync(&solicitudID, entity.NotifConfirmacion, "empresa@test.local", "asunto", "<p>hola</p>")
	esperar(t, repo)

	fila := repo.fila(t, 1)
	assert.True(t, fila.Enviado)
	assert.Empty(t, fila.Error)
	assert.Equal(t, []string{"empresa@test.local"}, sender.destinos)
	require.NotNil(t, fila.SolicitudID)
	assert.Equal(t, "sol-1", *fila.SolicitudID)
}

// Fallo de SMTP: la fila queda como fallida con el texto del error y el
// fallo no se propaga.
func TestEnviarAsync_FalloSMTPQuedaRegistrado(t *testing.T) {
	repo := newNotificacionRepoFake()
	sender := &senderFake{err: errors.New("conexión rechazada")}
	n := New(repo, sender, zerolog.Nop())

	n.EnviarAsync(nil, entity.NotifRecuperacion, "usuario@test.local", "asunto", "<p>token</p>")
	esperar(t, repo)

	fila := repo.fila(t, 1)
	assert.False(t, fila.Enviado)
	assert.Contains(t, fila.Error, "conexión rechazada")
}

// Sin SMTP configurado (sender nil): el intento queda registrado como
// fallido con el motivo fijo, sin intentar conexión.
func TestEnviarAsync_SinSMTPRegistraDeshabilitado(t *testing.T) {
	repo := newNotificacionRepoFake()
	n := New(repo, nil, zerolog.Nop())

	n.EnviarAsync(nil, entity.NotifAprobacion, "empresa@test.local", "asunto", "<p>ok</p>")
	esperar(t, repo)

	fila := repo.fila(t, 1)
	assert.False(t, fila.Enviado)
	assert.Equal(t, "smtp deshabilitado", fila.Error)
}

// Las plantillas interpolan los datos del destinatario.
func TestPlantillas_InterpolanDatos(t *testing.T) {
	asunto, cuerpo := CuerpoAprobacion("Bodega del Valle SRL", "duenio@bodega.ar", "30712345678")
	assert.Equal(t, "Tu solicitud fue aprobada", asunto)
	assert.Contains(t, cuerpo, "Bodega del Valle SRL")
	assert.Contains(t, cuerpo, "duenio@bodega.ar")
	assert.Contains(t, cuerpo, "30712345678")

	asunto, cuerpo = CuerpoRechazo("Bodega del Valle SRL", "falta el catálogo")
	assert.Equal(t, "Tu solicitud fue rechazada", asunto)
	assert.Contains(t, cuerpo, "falta el catálogo")
}

// Package notificacion despacha los correos del ciclo de vida (confirmación,
// aprobación, rechazo, recuperación de clave) fuera de la transacción
// principal. Cada intento queda registrado en la tabla de notificaciones;
// un fallo de SMTP se anota como error y nunca se propaga al request.
package notificacion

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/catamarca-comercio/registro-exportadores/internal/domain/entity"
	"github.com/catamarca-comercio/registro-exportadores/internal/domain/repository"
)

// EmailSender es el puerto hacia el transporte SMTP real.
type EmailSender interface {
	Send(ctx context.Context, destino, asunto, cuerpoHTML string) error
}

// Notificador persiste y envía notificaciones en una goroutine independiente,
// con su propio context.Background() + timeout, desacoplado del ciclo HTTP.
type Notificador struct {
	repo   repository.NotificacionRepository
	sender EmailSender // nil cuando no hay SMTP configurado
	log    zerolog.Logger
}

// New construye el notificador. sender puede ser nil: en ese caso todo
// intento queda registrado como fallido con el motivo "smtp deshabilitado".
func New(repo repository.NotificacionRepository, sender EmailSender, log zerolog.Logger) *Notificador {
	return &Notificador{repo: repo, sender: sender, log: log}
}

// EnviarAsync registra el intento y dispara el envío en background.
// solicitudID puede ser nil (ej. recuperación de clave).
func (n *Notificador) EnviarAsync(solicitudID *string, tipo, destino, asunto, cuerpoHTML string) {
	go n.enviar(solicitudID, tipo, destino, asunto, cuerpoHTML)
}

func (n *Notificador) enviar(solicitudID *string, tipo, destino, asunto, cuerpoHTML string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	notif := &entity.Notificacion{
		SolicitudID: solicitudID,
		Tipo:        tipo,
		Destino:     destino,
		Asunto:      asunto,
		CuerpoHTML:  cuerpoHTML,
		Fecha:       time.Now(),
	}
	if err := n.repo.Create(ctx, notif); err != nil {
		n.log.Error().Err(err).Str("tipo", tipo).Msg("registrar notificación")
		return
	}

	if n.sender == nil {
		_ = n.repo.MarcarEnviado(ctx, notif.ID, "smtp deshabilitado")
		return
	}
	if err := n.sender.Send(ctx, destino, asunto, cuerpoHTML); err != nil {
		n.log.Warn().Err(err).Str("destino", destino).Str("tipo", tipo).Msg("envío de correo")
		_ = n.repo.MarcarEnviado(ctx, notif.ID, err.Error())
		return
	}
	_ = n.repo.MarcarEnviado(ctx, notif.ID, "")
}

// Package email implementa el transporte SMTP del notificador usando gomail.
package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/catamarca-comercio/registro-exportadores/internal/application/notificacion"
	"github.com/catamarca-comercio/registro-exportadores/pkg/config"
)

var _ notificacion.EmailSender = (*GomailSender)(nil)

// GomailSender envía correos HTML por SMTP. Cada Send abre y cierra su
// propia conexión: el volumen de correo del registro es bajo y no justifica
// mantener un daemon de envío.
type GomailSender struct {
	dialer *gomail.Dialer
	from   string
}

// NewGomailSender construye el sender desde la configuración SMTP.
// Devuelve nil si el SMTP no está habilitado: el notificador interpreta un
// sender nil como modo deshabilitado.
func NewGomailSender(cfg config.SMTPConfig) *GomailSender {
	if !cfg.Habilitado() {
		return nil
	}
	return &GomailSender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.From,
	}
}

// Send envía un correo HTML. Respeta la cancelación del context cerrando
// el intento antes de marcar el resultado.
func (s *GomailSender) Send(ctx context.Context, destino, asunto, cuerpoHTML string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", destino)
	m.SetHeader("Subject", asunto)
	m.SetBody("text/html", cuerpoHTML)

	errCh := make(chan error, 1)
	go func() { errCh <- s.dialer.DialAndSend(m) }()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("enviar correo a %s: %w", destino, err)
		}
		return nil
	}
}

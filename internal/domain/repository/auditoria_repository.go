package repository

import (
	"context"

	"github.com/catamarca-comercio/registro-exportadores/internal/domain/entity"
)

// AuditoriaRepository define el puerto del registro de auditoría.
// Solo inserta y lee: ninguna entrada se actualiza ni se borra.
type AuditoriaRepository interface {
	Append(ctx context.Context, e *entity.AuditoriaLog) error
	List(ctx context.Context, limit, offset int) ([]*entity.AuditoriaLog, error)
	ListByObjeto(ctx context.Context, modelo, objetoID string, limit int) ([]*entity.AuditoriaLog, error)
}

// NotificacionRepository define el puerto para los intentos de correo saliente.
type NotificacionRepository interface {
	Create(ctx context.Context, n *entity.Notificacion) error
	MarcarEnviado(ctx context.Context, id int64, errorTexto string) error
	ListBySolicitud(ctx context.Context, solicitudID string) ([]*entity.Notificacion, error)
}

package dto

import "time"

// AuditoriaLogResponse entrada completa del log para la vista de administración.
type AuditoriaLogResponse struct {
	ID           int64     `json:"id"`
	Fecha        time.Time `json:"fecha"`
	UsuarioID    *string   `json:"usuario_id,omitempty"`
	Accion       string    `json:"accion"`
	Modelo       string    `json:"modelo"`
	ObjetoID     string    `json:"objeto_id"`
	ObjetoNombre string    `json:"objeto_nombre"`
	Descripcion  string    `json:"descripcion"`
	URL          string    `json:"url,omitempty"`
	Metodo       string    `json:"metodo,omitempty"`
	Categoria    string    `json:"categoria"`
	Criticidad   string    `json:"criticidad"`
	Exitoso      bool      `json:"exitoso"`
}

// ListarAuditoriaRequest filtros del listado de auditoría.
type ListarAuditoriaRequest struct {
	Modelo   string `query:"modelo"`
	ObjetoID string `query:"objeto_id"`
	PageRequest
}

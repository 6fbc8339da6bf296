package dto

import "time"

// MatrizResponse salida completa de la matriz de clasificación.
type MatrizResponse struct {
	EmpresaID string `json:"empresa_id"`

	ExperienciaExportadora  int `json:"experiencia_exportadora"`
	VolumenProduccion       int `json:"volumen_produccion"`
	PresenciaDigital        int `json:"presencia_digital"`
	PosicionArancelaria     int `json:"posicion_arancelaria"`
	ParticipacionInternac   int `json:"participacion_internacionalizacion"`
	EstructuraInterna       int `json:"estructura_interna"`
	InteresExportador       int `json:"interes_exportador"`
	CertificacionesNac      int `json:"certificaciones_nacionales"`
	CertificacionesInternac int `json:"certificaciones_internacionales"`

	PuntajeTotal int    `json:"puntaje_total"`
	Categoria    string `json:"categoria"`

	EvaluadoPor     string    `json:"evaluado_por,omitempty"`
	FechaEvaluacion time.Time `json:"fecha_evaluacion"`
	Observaciones   string    `json:"observaciones,omitempty"`
}

// MatrizManualRequest carga manual de los nueve criterios por un
// administrador. Total y categoría enviados por el cliente se ignoran:
// siempre se recalculan de los puntajes.
type MatrizManualRequest struct {
	EmpresaID string `json:"empresa_id" validate:"required"`

	ExperienciaExportadora  int `json:"experiencia_exportadora" validate:"min=0,max=3"`
	VolumenProduccion       int `json:"volumen_produccion" validate:"min=0,max=3"`
	PresenciaDigital        int `json:"presencia_digital" validate:"min=0,max=3"`
	PosicionArancelaria     int `json:"posicion_arancelaria" validate:"min=0,max=3"`
	ParticipacionInternac   int `json:"participacion_internacionalizacion" validate:"min=0,max=3"`
	EstructuraInterna       int `json:"estructura_interna" validate:"min=0,max=3"`
	InteresExportador       int `json:"interes_exportador" validate:"min=0,max=3"`
	CertificacionesNac      int `json:"certificaciones_nacionales" validate:"min=0,max=3"`
	CertificacionesInternac int `json:"certificaciones_internacionales" validate:"min=0,max=3"`

	Observaciones string `json:"observaciones"`
}

package entity

import "time"

// Categorías de la matriz de clasificación exportadora.
const (
	CategoriaExportadora          = "exportadora"           // total >= 12
	CategoriaPotencialExportadora = "potencial_exportadora" // 6..11
	CategoriaEtapaInicial         = "etapa_inicial"         // <= 5
)

// MatrizClasificacion es la evaluación de madurez exportadora de una empresa:
// nueve criterios enteros en [0,3], total derivado y categoría derivada.
// Una fila por empresa (constraint único sobre EmpresaID); recalcular hace upsert.
type MatrizClasificacion struct {
	ID        string
	EmpresaID string // único

	ExperienciaExportadora  int // 1
	VolumenProduccion       int // 2
	PresenciaDigital        int // 3
	PosicionArancelaria     int // 4
	ParticipacionInternac   int // 5
	EstructuraInterna       int // 6
	InteresExportador       int // 7
	CertificacionesNac      int // 8
	CertificacionesInternac int // 9

	PuntajeTotal int    // siempre la suma de los nueve criterios
	Categoria    string // función pura del total

	EvaluadoPor     string
	FechaEvaluacion time.Time
	Observaciones   string
}

// Criterios devuelve los nueve puntajes en orden.
func (m *MatrizClasificacion) Criterios() [9]int {
	return [9]int{
		m.ExperienciaExportadora,
		m.VolumenProduccion,
		m.PresenciaDigital,
		m.PosicionArancelaria,
		m.ParticipacionInternac,
		m.EstructuraInterna,
		m.InteresExportador,
		m.CertificacionesNac,
		m.CertificacionesInternac,
	}
}

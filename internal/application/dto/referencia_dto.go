package dto

// RubroResponse rubro de la taxonomía con sus subrubros, para las opciones
// del formulario público.
type RubroResponse struct {
	ID           int64              `json:"id"`
	Nombre       string             `json:"nombre"`
	Tipo         string             `json:"tipo"`
	UnidadMedida string             `json:"unidad_medida,omitempty"`
	SubRubros    []SubRubroResponse `json:"subrubros,omitempty"`
}

// SubRubroResponse subrubro de un rubro.
type SubRubroResponse struct {
	ID     int64  `json:"id"`
	Nombre string `json:"nombre"`
}

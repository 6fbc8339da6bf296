package entity

import "github.com/shopspring/decimal"

// Jerarquía geográfica estricta: Provincia → Departamento → Municipio → Localidad.
// Son lecturas puras en tiempo de request; la importación masiva corre offline.
// En este despliegue solo se expone el subárbol de Catamarca.

// Provincia es el nodo raíz de la jerarquía geográfica.
type Provincia struct {
	ID       int64
	Nombre   string
	Latitud  decimal.Decimal
	Longitud decimal.Decimal
	GeoJSON  []byte // geometría opcional
}

// Departamento pertenece a una Provincia.
type Departamento struct {
	ID          int64
	ProvinciaID int64
	Nombre      string
	Codigo      string
	Latitud     decimal.Decimal
	Longitud    decimal.Decimal
	GeoJSON     []byte
}

// Municipio pertenece a un Departamento.
type Municipio struct {
	ID             int64
	DepartamentoID int64
	Nombre         string
	Codigo         string
	Latitud        decimal.Decimal
	Longitud       decimal.Decimal
	GeoJSON        []byte
}

// Localidad pertenece a un Municipio.
type Localidad struct {
	ID          int64
	MunicipioID int64
	Nombre      string
	Codigo      string
	Latitud     decimal.Decimal
	Longitud    decimal.Decimal
}

// Tipos de rubro.
const (
	RubroProducto = "producto"
	RubroServicio = "servicio"
	RubroMixto    = "mixto"
	RubroOtro     = "otro"
)

// Unidades de medida estándar para la capacidad productiva por rubro.
var UnidadesMedida = []string{
	"kilogramos",
	"toneladas",
	"litros",
	"unidades",
	"metros",
	"horas",
}

// Rubro es un sector de la taxonomía de industria.
// (nombre, tipo) debería ser único; cuando hay duplicados el de menor ID es
// canónico y el saneamiento los fusiona (ver application/referencia).
type Rubro struct {
	ID           int64
	Nombre       string
	Tipo         string // producto, servicio, mixto, otro
	UnidadMedida string
	Orden        int
}

// SubRubro pertenece a un Rubro.
type SubRubro struct {
	ID      int64
	RubroID int64
	Nombre  string
}

// TipoEmpresaRef es la razón jurídica de referencia (SRL, SA, cooperativa...).
type TipoEmpresaRef struct {
	ID     int64
	Nombre string
	Codigo string
}

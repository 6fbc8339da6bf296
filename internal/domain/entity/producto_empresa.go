package entity

import (
	"regexp"
	"time"

	"github.com/shopspring/decimal"
)

// Períodos de la capacidad productiva declarada.
const (
	PeriodoMensual = "mensual"
	PeriodoAnual   = "anual"
	PeriodoSemanal = "semanal"
)

// ProductoEmpresa es un producto de una empresa de tipo producto o mixta.
// EsPrincipal es una marca orientativa: puede haber varios principales.
type ProductoEmpresa struct {
	ID                  string
	EmpresaID           string
	Nombre              string
	Descripcion         string
	CapacidadProductiva decimal.Decimal
	UnidadMedida        string
	Periodo             string // mensual, anual, semanal
	EsPrincipal         bool
	Precio              decimal.Decimal
	Moneda              string
	FechaCreacion       time.Time
}

// PosicionArancelaria es el código arancelario 4-2-2 de un producto.
// A lo sumo una por producto.
type PosicionArancelaria struct {
	ID          string
	ProductoID  string
	Codigo      string // NNNN.NN.NN
	Descripcion string
}

var posicionPattern = regexp.MustCompile(`^\d{4}\.\d{2}\.\d{2}$`)

// PosicionArancelariaValida verifica el formato 4-2-2 (ej. 2204.21.00).
func PosicionArancelariaValida(codigo string) bool {
	return posicionPattern.MatchString(codigo)
}

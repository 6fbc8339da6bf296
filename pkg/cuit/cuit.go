// Package cuit valida el identificador tributario argentino CUIT/CUIL.
package cuit

import (
	"fmt"
	"unicode"
)

// pesos para el dígito verificador CUIT (módulo 11, AFIP).
// Se aplican a los 10 primeros dígitos, de izquierda a derecha.
var cuitWeights = [10]int{5, 4, 3, 2, 7, 6, 5, 4, 3, 2}

// Validar exige exactamente 11 dígitos (con o sin guiones: "20-12345678-0").
// Es la única validación dura del registro; el dígito verificador se chequea
// aparte con ValidarDigitoVerificador porque el padrón histórico contiene
// CUITs cargados a mano que no lo cumplen.
func Validar(cuit string) error {
	digits := extraerDigitos(cuit)
	if len(digits) != 11 {
		return fmt.Errorf("cuit: debe tener 11 dígitos, se encontraron %d", len(digits))
	}
	return nil
}

// Normalizar devuelve los 11 dígitos sin separadores.
func Normalizar(cuit string) string {
	return string(extraerDigitos(cuit))
}

// ValidarDigitoVerificador verifica el dígito final según el algoritmo
// módulo 11 de AFIP. Chequeo consultivo, no bloqueante.
func ValidarDigitoVerificador(cuit string) error {
	digits := extraerDigitos(cuit)
	if len(digits) != 11 {
		return fmt.Errorf("cuit: debe tener 11 dígitos, se encontraron %d", len(digits))
	}
	var sum int
	for i := 0; i < 10; i++ {
		sum += int(digits[i]-'0') * cuitWeights[i]
	}
	resto := sum % 11
	esperado := 11 - resto
	switch esperado {
	case 11:
		esperado = 0
	case 10:
		esperado = 9
	}
	if int(digits[10]-'0') != esperado {
		return fmt.Errorf("cuit: dígito verificador inválido: esperado %d, recibido %c", esperado, digits[10])
	}
	return nil
}

func extraerDigitos(s string) []byte {
	var out []byte
	for _, r := range s {
		if unicode.IsDigit(r) {
			out = append(out, byte(r))
		}
	}
	return out
}

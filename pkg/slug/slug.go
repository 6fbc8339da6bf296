// Package slug genera identificadores aptos para nombres de archivo a partir
// de razones sociales con tildes y signos.
package slug

import (
	"strings"
	"unicode"
)

const maxLen = 50

// reemplazos de vocales acentuadas y eñe antes de descartar no alfanuméricos.
var acentos = strings.NewReplacer(
	"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ü", "u", "ñ", "n",
	"Á", "a", "É", "e", "Í", "i", "Ó", "o", "Ú", "u", "Ü", "u", "Ñ", "n",
)

// De convierte un texto a slug: minúsculas, no-alfanuméricos a guiones,
// guiones repetidos colapsados, recortado a 50 caracteres.
func De(texto string) string {
	s := acentos.Replace(strings.ToLower(texto))
	var b strings.Builder
	ultimoGuion := true // evita guion inicial
	for _, r := range s {
		if r > unicode.MaxASCII {
			continue
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			ultimoGuion = false
			continue
		}
		if !ultimoGuion {
			b.WriteByte('-')
			ultimoGuion = true
		}
	}
	out := strings.Trim(b.String(), "-")
	if len(out) > maxLen {
		out = strings.Trim(out[:maxLen], "-")
	}
	return out
}

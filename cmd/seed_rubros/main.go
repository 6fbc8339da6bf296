// seed_rubros genera el script SQL para poblar la taxonomía de rubros y
// subrubros a partir de un CSV con columnas: tipo, rubro, subrubro,
// unidad_medida, orden. Las filas sin subrubro cargan solo el rubro.
//
// Uso: go run ./cmd/seed_rubros [ruta/rubros.csv]
// Por defecto busca rubros.csv en el directorio actual.
// Escribe: internal/infrastructure/postgres/migrations/002_seed_rubros.sql
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/catamarca-comercio/registro-exportadores/pkg/slug"
)

type rubroSeed struct {
	nombre       string
	tipo         string
	unidadMedida string
	orden        int
	subrubros    []string
}

func main() {
	csvPath := "rubros.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}
	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	filas, err := r.ReadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}
	if len(filas) == 0 {
		fmt.Fprintln(os.Stderr, "CSV vacío")
		os.Exit(1)
	}

	// La clave es (tipo, nombre): el mismo nombre puede existir como rubro
	// de producto y de servicio.
	porClave := make(map[string]*rubroSeed)
	var orden []string
	for i, fila := range filas {
		if i == 0 && strings.EqualFold(strings.TrimSpace(fila[0]), "tipo") {
			continue // cabecera
		}
		if len(fila) < 2 {
			fmt.Fprintf(os.Stderr, "Fila %d: se esperan al menos tipo y rubro\n", i+1)
			os.Exit(1)
		}
		tipo := strings.ToLower(strings.TrimSpace(fila[0]))
		if tipo != "producto" && tipo != "servicio" {
			fmt.Fprintf(os.Stderr, "Fila %d: tipo inválido %q (producto|servicio)\n", i+1, fila[0])
			os.Exit(1)
		}
		nombre := strings.TrimSpace(fila[1])
		if nombre == "" {
			continue
		}

		clave := tipo + "|" + strings.ToLower(nombre)
		rs, ok := porClave[clave]
		if !ok {
			rs = &rubroSeed{nombre: nombre, tipo: tipo}
			if len(fila) > 3 {
				rs.unidadMedida = strings.TrimSpace(fila[3])
			}
			if len(fila) > 4 {
				rs.orden, _ = strconv.Atoi(strings.TrimSpace(fila[4]))
			}
			porClave[clave] = rs
			orden = append(orden, clave)
		}
		if len(fila) > 2 {
			if sub := strings.TrimSpace(fila[2]); sub != "" {
				rs.subrubros = append(rs.subrubros, sub)
			}
		}
	}

	moduleRoot := findModuleRoot()
	outPath := filepath.Join(moduleRoot, "internal", "infrastructure", "postgres", "migrations", "002_seed_rubros.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	out.WriteString("-- Taxonomía de rubros y subrubros\n")
	out.WriteString("-- Generado desde rubros.csv por cmd/seed_rubros\n\n")

	totalSub := 0
	for _, clave := range orden {
		rs := porClave[clave]
		fmt.Fprintf(out, "INSERT INTO rubros (codigo, nombre, tipo, unidad_medida, orden)\n")
		fmt.Fprintf(out, "SELECT '%s', '%s', '%s', '%s', %d\n",
			escapeSQL(slug.De(rs.nombre)), escapeSQL(rs.nombre), rs.tipo, escapeSQL(rs.unidadMedida), rs.orden)
		fmt.Fprintf(out, "WHERE NOT EXISTS (SELECT 1 FROM rubros WHERE LOWER(nombre) = LOWER('%s') AND tipo = '%s');\n\n",
			escapeSQL(rs.nombre), rs.tipo)

		for _, sub := range rs.subrubros {
			fmt.Fprintf(out, "INSERT INTO sub_rubros (rubro_id, codigo, nombre)\n")
			fmt.Fprintf(out, "SELECT id, '%s', '%s' FROM rubros WHERE LOWER(nombre) = LOWER('%s') AND tipo = '%s'\n",
				escapeSQL(slug.De(sub)), escapeSQL(sub), escapeSQL(rs.nombre), rs.tipo)
			fmt.Fprintf(out, "ON CONFLICT DO NOTHING;\n")
			totalSub++
		}
		out.WriteString("\n")
	}

	fmt.Printf("Generado %s: %d rubros, %d subrubros\n", outPath, len(orden), totalSub)
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}

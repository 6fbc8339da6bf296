// Package pdf implementa la exportación del padrón de empresas a PDF.
//
// Layout de la página A4, un bloque por empresa:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  CABECERA: Padrón de Empresas Exportadoras + fecha          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RAZÓN SOCIAL DE LA EMPRESA                                 │
//	│  Identificación:  etiqueta / valor de los campos elegidos   │
//	│  Ubicación y contacto:  etiqueta / valor                    │
//	│  Perfil comercial:  etiqueta / valor                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  (siguiente empresa...)                                     │
//	│  PIE: total de empresas exportadas                          │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/catamarca-comercio/registro-exportadores/internal/application/dto"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 120, Green: 47, Blue: 64} // bordó institucional
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// Títulos de sección en orden de render.
var secciones = []struct {
	clave  string
	titulo string
}{
	{dto.SeccionIdentidad, "Identificación"},
	{dto.SeccionContacto, "Ubicación y contacto"},
	{dto.SeccionComercial, "Perfil comercial"},
}

// ── Generator ─────────────────────────────────────────────────────────────────

// GeneradorPadron implementa consulta.PadronPDFGenerator usando Maroto v2.
type GeneradorPadron struct{}

// NewGeneradorPadron construye el generador.
func NewGeneradorPadron() *GeneradorPadron { return &GeneradorPadron{} }

// GenerarPadron genera el PDF del padrón y devuelve sus bytes.
func (g *GeneradorPadron) GenerarPadron(_ context.Context, filas []dto.FilaExport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Padrón de Empresas Exportadoras", true).
		WithAuthor("Dirección Provincial de Comercio - Catamarca", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(cabeceraRows()...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	for _, fila := range filas {
		m.AddRows(empresaRows(fila)...)
		m.AddRows(line.NewRow(2, props.Line{Color: colorGray, Thickness: 0.2}))
	}

	m.AddRows(pieRow(len(filas)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar padrón: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// cabeceraRows: título del documento + organismo emisor + fecha.
func cabeceraRows() []core.Row {
	fecha := time.Now().Format("02/01/2006")

	return []core.Row{
		row.New(16).Add(
			col.New(8).Add(
				text.New("PADRÓN DE EMPRESAS EXPORTADORAS", props.Text{
					Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
				}),
				text.New("Dirección Provincial de Comercio - Provincia de Catamarca", props.Text{
					Size: 8, Top: 9, Color: colorGray,
				}),
			),
			col.New(4).Add(
				text.New("Fecha de emisión", props.Text{
					Size: 8, Align: align.Right, Top: 1, Color: colorGray,
				}),
				text.New(fecha, props.Text{
					Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 7,
				}),
			),
		),
	}
}

// empresaRows: bloque de una empresa con sus secciones seleccionadas.
func empresaRows(fila dto.FilaExport) []core.Row {
	rows := []core.Row{
		row.New(8).Add(col.New(12).Add(
			text.New(fila.RazonSocial, props.Text{
				Style: fontstyle.Bold, Size: 11, Color: colorPrimary, Top: 2,
			}),
		)),
	}

	for _, sec := range secciones {
		valores := fila.Secciones[sec.clave]
		if len(valores) == 0 {
			continue
		}
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New(sec.titulo, props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorGray, Top: 1,
			}),
		)))
		rows = append(rows, camposRows(valores)...)
	}
	return rows
}

// camposRows: pares etiqueta/valor de a dos por fila.
func camposRows(valores []dto.ValorExport) []core.Row {
	campo := func(v dto.ValorExport) core.Col {
		return col.New(6).Add(
			text.New(v.Etiqueta+":", props.Text{
				Style: fontstyle.Bold, Size: 8, Top: 0.5,
			}),
			text.New(nonEmpty(v.Valor, "—"), props.Text{
				Size: 8, Top: 0.5, Left: 38, Color: colorGray,
			}),
		)
	}

	var rows []core.Row
	for i := 0; i < len(valores); i += 2 {
		r := row.New(5).Add(campo(valores[i]))
		if i+1 < len(valores) {
			r.Add(campo(valores[i+1]))
		}
		rows = append(rows, r)
	}
	return rows
}

// pieRow: total de empresas incluidas en el documento.
func pieRow(total int) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Total de empresas: %d", total), props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 3, Color: colorGray,
		}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

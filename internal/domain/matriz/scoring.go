// Package matriz implementa la Matriz de Clasificación Exportadora: nueve
// criterios ponderados que puntúan la madurez exportadora de una empresa y
// derivan su categoría. El cálculo es determinístico y no hace llamadas
// externas; la persistencia vive en application/matriz.
package matriz

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/catamarca-comercio/registro-exportadores/internal/domain/entity"
)

// Umbrales de categoría sobre el puntaje total (rango 0..18).
const (
	UmbralExportadora = 12
	UmbralPotencial   = 6
)

// Certificaciones nacionales reconocidas: organismos argentinos de sanidad,
// vitivinicultura y tecnología industrial. Se busca por contención dentro de
// cada token (separado por comas) en mayúsculas.
var certificacionesNacionales = []string{
	"SENASA", "INV", "RPE", "RNPA", "INAL", "INTI", "INTA",
}

// Certificaciones internacionales reconocidas.
var certificacionesInternacionales = []string{
	"ISO", "HACCP", "ORGÁNICO", "ORGANIC", "KOSHER", "HALAL",
	"FAIR TRADE", "BRC", "IFS",
}

// Entrada reúne los campos denormalizados de la Empresa que alimentan el
// scorer. Se construye con DesdeEmpresa para que el cálculo quede en una
// sola lectura de fila más el flag de posición arancelaria.
type Entrada struct {
	Exporta                 string
	CapacidadProductiva     decimal.Decimal
	PeriodoCapacidad        string
	SitioWeb                string
	RedesSociales           string
	TienePosicionArancel    bool
	FeriaNacional           bool
	FeriaInternacional      bool
	Promo2Idiomas           bool
	TieneContactoSecundario bool
	InteresExportar         bool
	CertificadoPyme         bool
	CertificacionesInternac bool
	Certificaciones         string
}

// DesdeEmpresa proyecta una Empresa a la entrada del scorer.
// tienePosicion indica si algún ProductoEmpresa de la empresa declara
// posición arancelaria (criterio 4).
func DesdeEmpresa(e *entity.Empresa, tienePosicion bool) Entrada {
	return Entrada{
		Exporta:                 e.Exporta,
		CapacidadProductiva:     e.CapacidadProductiva,
		PeriodoCapacidad:        e.PeriodoCapacidad,
		SitioWeb:                e.SitioWeb,
		RedesSociales:           e.RedesSociales,
		TienePosicionArancel:    tienePosicion,
		FeriaNacional:           e.ParticipoFeriaNacional,
		FeriaInternacional:      e.ParticipoFeriaInternacional,
		Promo2Idiomas:           e.Promo2Idiomas,
		TieneContactoSecundario: !e.ContactoSecundario.Vacio(),
		InteresExportar:         e.InteresExportar,
		CertificadoPyme:         e.CertificadoPyme,
		CertificacionesInternac: e.CertificacionesInternac,
		Certificaciones:         e.Certificaciones,
	}
}

// Puntajes son los nueve criterios, cada uno en [0,3].
type Puntajes struct {
	ExperienciaExportadora  int
	VolumenProduccion       int
	PresenciaDigital        int
	PosicionArancelaria     int
	ParticipacionInternac   int
	EstructuraInterna       int
	InteresExportador       int
	CertificacionesNac      int
	CertificacionesInternac int
}

// Total es la suma de los nueve criterios (0..18).
func (p Puntajes) Total() int {
	return p.ExperienciaExportadora + p.VolumenProduccion + p.PresenciaDigital +
		p.PosicionArancelaria + p.ParticipacionInternac + p.EstructuraInterna +
		p.InteresExportador + p.CertificacionesNac + p.CertificacionesInternac
}

// Calcular evalúa los nueve criterios sobre la entrada.
func Calcular(in Entrada) Puntajes {
	return Puntajes{
		ExperienciaExportadora:  puntajeExperiencia(in),
		VolumenProduccion:       puntajeVolumen(in),
		PresenciaDigital:        puntajeDigital(in),
		PosicionArancelaria:     puntajePosicion(in),
		ParticipacionInternac:   puntajeInternacionalizacion(in),
		EstructuraInterna:       puntajeEstructura(in),
		InteresExportador:       puntajeInteres(in),
		CertificacionesNac:      puntajeCertNacionales(in),
		CertificacionesInternac: puntajeCertInternacionales(in),
	}
}

// Categoria deriva la categoría a partir del puntaje total.
func Categoria(total int) string {
	switch {
	case total >= UmbralExportadora:
		return entity.CategoriaExportadora
	case total >= UmbralPotencial:
		return entity.CategoriaPotencialExportadora
	default:
		return entity.CategoriaEtapaInicial
	}
}

// Criterio 1: experiencia exportadora. Exporta actualmente → 3.
func puntajeExperiencia(in Entrada) int {
	if in.Exporta == entity.ExportaSi {
		return 3
	}
	return 0
}

// Criterio 2: volumen de producción. La capacidad se normaliza a anual
// (×12 mensual, ×52 semanal) antes de aplicar los umbrales.
func puntajeVolumen(in Entrada) int {
	anual := CapacidadAnual(in.CapacidadProductiva, in.PeriodoCapacidad)
	switch {
	case anual.GreaterThanOrEqual(decimal.NewFromInt(1000)):
		return 3
	case anual.GreaterThanOrEqual(decimal.NewFromInt(100)):
		return 2
	case anual.GreaterThan(decimal.Zero):
		return 1
	default:
		return 0
	}
}

// CapacidadAnual normaliza la capacidad declarada según el período.
func CapacidadAnual(capacidad decimal.Decimal, periodo string) decimal.Decimal {
	switch periodo {
	case entity.PeriodoMensual:
		return capacidad.Mul(decimal.NewFromInt(12))
	case entity.PeriodoSemanal:
		return capacidad.Mul(decimal.NewFromInt(52))
	default: // anual o sin declarar
		return capacidad
	}
}

// Criterio 3: presencia digital. Sitio web o redes sociales → 2.
func puntajeDigital(in Entrada) int {
	if in.SitioWeb != "" || in.RedesSociales != "" {
		return 2
	}
	return 0
}

// Criterio 4: posición arancelaria declarada en algún producto → 1.
func puntajePosicion(in Entrada) int {
	if in.TienePosicionArancel {
		return 1
	}
	return 0
}

// Criterio 5: participación en ferias (nacional o internacional) → 2.
func puntajeInternacionalizacion(in Entrada) int {
	if in.FeriaNacional || in.FeriaInternacional {
		return 2
	}
	return 0
}

// Criterio 6: estructura interna. Material en dos idiomas y contacto
// secundario → 2 (alta); uno de los dos → 1 (media).
func puntajeEstructura(in Entrada) int {
	switch {
	case in.Promo2Idiomas && in.TieneContactoSecundario:
		return 2
	case in.Promo2Idiomas || in.TieneContactoSecundario:
		return 1
	default:
		return 0
	}
}

// Criterio 7: interés exportador declarado → 1.
func puntajeInteres(in Entrada) int {
	if in.InteresExportar {
		return 1
	}
	return 0
}

// Criterio 8: certificaciones nacionales. Cuenta el certificado MiPYME más
// cada token de `certificaciones` que mencione un organismo nacional.
func puntajeCertNacionales(in Entrada) int {
	count := 0
	if in.CertificadoPyme {
		count++
	}
	count += contarTokens(in.Certificaciones, certificacionesNacionales)
	switch {
	case count >= 2:
		return 2
	case count == 1:
		return 1
	default:
		return 0
	}
}

// Criterio 9: certificaciones internacionales. Sin el flag el puntaje es 0.
// Con el flag el puntaje es 2, tenga o no tokens reconocidos: la búsqueda de
// tokens se mantiene porque es el comportamiento histórico del evaluador.
func puntajeCertInternacionales(in Entrada) int {
	if !in.CertificacionesInternac {
		return 0
	}
	if contarTokens(in.Certificaciones, certificacionesInternacionales) > 0 {
		return 2
	}
	return 2
}

// TieneCertInternacional informa si el texto de certificaciones menciona
// alguna certificación internacional reconocida. La aprobación lo usa para
// inferir el flag cuando el formulario no lo trae.
func TieneCertInternacional(certificaciones string) bool {
	return contarTokens(certificaciones, certificacionesInternacionales) > 0
}

// contarTokens separa por comas y cuenta los tokens cuya forma en mayúsculas
// contiene alguna de las marcas buscadas.
func contarTokens(texto string, marcas []string) int {
	if texto == "" {
		return 0
	}
	count := 0
	for _, token := range strings.Split(texto, ",") {
		up := strings.ToUpper(strings.TrimSpace(token))
		if up == "" {
			continue
		}
		for _, marca := range marcas {
			if strings.Contains(up, marca) {
				count++
				break
			}
		}
	}
	return count
}

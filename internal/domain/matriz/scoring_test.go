package matriz_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catamarca-comercio/registro-exportadores/internal/domain/entity"
	"github.com/catamarca-comercio/registro-exportadores/internal/domain/matriz"
)

// ──────────────────────────────────────────────────────────────────────────────
// Vector completo: bodega que exporta, con capacidad mensual alta, sitio web,
// posición arancelaria, MiPYME + SENASA + ISO 9001 y contacto secundario.
// Puntajes esperados: (3,3,2,1,0,2,0,2,2) → total 15 → exportadora.
// ──────────────────────────────────────────────────────────────────────────────

func entradaBodega() matriz.Entrada {
	return matriz.Entrada{
		Exporta:                 entity.ExportaSi,
		CapacidadProductiva:     decimal.NewFromInt(2000),
		PeriodoCapacidad:        entity.PeriodoAnual,
		SitioWeb:                "https://x.com",
		TienePosicionArancel:    true,
		Promo2Idiomas:           true,
		TieneContactoSecundario: true,
		CertificadoPyme:         true,
		CertificacionesInternac: true,
		Certificaciones:         "SENASA, ISO 9001",
	}
}

func TestCalcular_VectorBodegaExportadora(t *testing.T) {
	p := matriz.Calcular(entradaBodega())

	assert.Equal(t, 3, p.ExperienciaExportadora, "exporta=Sí debe puntuar 3")
	assert.Equal(t, 3, p.VolumenProduccion, "2000 anual debe puntuar 3")
	assert.Equal(t, 2, p.PresenciaDigital)
	assert.Equal(t, 1, p.PosicionArancelaria)
	assert.Equal(t, 0, p.ParticipacionInternac, "sin ferias declaradas")
	assert.Equal(t, 2, p.EstructuraInterna, "dos idiomas + contacto secundario")
	assert.Equal(t, 0, p.InteresExportador)
	assert.Equal(t, 2, p.CertificacionesNac, "MiPYME + SENASA = 2 menciones")
	assert.Equal(t, 2, p.CertificacionesInternac)

	require.Equal(t, 15, p.Total())
	assert.Equal(t, entity.CategoriaExportadora, matriz.Categoria(p.Total()))
}

func TestCalcular_EsDeterministico(t *testing.T) {
	in := entradaBodega()
	primero := matriz.Calcular(in)
	segundo := matriz.Calcular(in)
	assert.Equal(t, primero, segundo, "misma entrada debe producir mismos puntajes")
}

func TestCalcular_EmpresaSinDatos(t *testing.T) {
	p := matriz.Calcular(matriz.Entrada{})
	assert.Equal(t, 0, p.Total())
	assert.Equal(t, entity.CategoriaEtapaInicial, matriz.Categoria(0))
}

// ──────────────────────────────────────────────────────────────────────────────
// Criterio 2: normalización de capacidad a anual
// ──────────────────────────────────────────────────────────────────────────────

func TestCapacidadAnual_Normalizacion(t *testing.T) {
	cases := []struct {
		nombre    string
		capacidad int64
		periodo   string
		esperado  int64
	}{
		{"anual queda igual", 500, entity.PeriodoAnual, 500},
		{"mensual por 12", 10, entity.PeriodoMensual, 120},
		{"semanal por 52", 5, entity.PeriodoSemanal, 260},
		{"sin periodo se asume anual", 700, "", 700},
	}
	for _, tc := range cases {
		t.Run(tc.nombre, func(t *testing.T) {
			got := matriz.CapacidadAnual(decimal.NewFromInt(tc.capacidad), tc.periodo)
			assert.True(t, got.Equal(decimal.NewFromInt(tc.esperado)),
				"esperado %d, obtenido %s", tc.esperado, got)
		})
	}
}

func TestCalcular_UmbralesVolumen(t *testing.T) {
	cases := []struct {
		capacidad int64
		periodo   string
		esperado  int
	}{
		{2000, entity.PeriodoAnual, 3},
		{1000, entity.PeriodoAnual, 3},
		{999, entity.PeriodoAnual, 2},
		{100, entity.PeriodoAnual, 2},
		{99, entity.PeriodoAnual, 1},
		{1, entity.PeriodoAnual, 1},
		{0, entity.PeriodoAnual, 0},
		{90, entity.PeriodoMensual, 3}, // 1080 anual
		{2, entity.PeriodoSemanal, 2},  // 104 anual
	}
	for _, tc := range cases {
		p := matriz.Calcular(matriz.Entrada{
			CapacidadProductiva: decimal.NewFromInt(tc.capacidad),
			PeriodoCapacidad:    tc.periodo,
		})
		assert.Equal(t, tc.esperado, p.VolumenProduccion,
			"capacidad %d %s", tc.capacidad, tc.periodo)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Criterios 6, 8 y 9: estructura y certificaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestCalcular_EstructuraInterna(t *testing.T) {
	alta := matriz.Calcular(matriz.Entrada{Promo2Idiomas: true, TieneContactoSecundario: true})
	assert.Equal(t, 2, alta.EstructuraInterna)

	soloIdiomas := matriz.Calcular(matriz.Entrada{Promo2Idiomas: true})
	assert.Equal(t, 1, soloIdiomas.EstructuraInterna)

	soloContacto := matriz.Calcular(matriz.Entrada{TieneContactoSecundario: true})
	assert.Equal(t, 1, soloContacto.EstructuraInterna)
}

func TestCalcular_CertificacionesNacionales(t *testing.T) {
	// "ISO 9001" no es organismo nacional; no debe contar en el criterio 8.
	soloISO := matriz.Calcular(matriz.Entrada{Certificaciones: "ISO 9001"})
	assert.Equal(t, 0, soloISO.CertificacionesNac)

	soloPyme := matriz.Calcular(matriz.Entrada{CertificadoPyme: true})
	assert.Equal(t, 1, soloPyme.CertificacionesNac)

	dos := matriz.Calcular(matriz.Entrada{Certificaciones: "Registro SENASA, habilitación INV"})
	assert.Equal(t, 2, dos.CertificacionesNac)

	// La contención es sobre el token en mayúsculas: "senasa" en minúsculas cuenta.
	minusculas := matriz.Calcular(matriz.Entrada{Certificaciones: "senasa"})
	assert.Equal(t, 1, minusculas.CertificacionesNac)
}

func TestCalcular_CertificacionesInternacionales_RequiereFlag(t *testing.T) {
	// Tokens internacionales sin el flag puntúan 0.
	sinFlag := matriz.Calcular(matriz.Entrada{Certificaciones: "HACCP, KOSHER"})
	assert.Equal(t, 0, sinFlag.CertificacionesInternac)

	// Con el flag el puntaje es 2, con o sin tokens reconocidos.
	conFlagYTokens := matriz.Calcular(matriz.Entrada{
		CertificacionesInternac: true,
		Certificaciones:         "HACCP",
	})
	assert.Equal(t, 2, conFlagYTokens.CertificacionesInternac)

	soloFlag := matriz.Calcular(matriz.Entrada{CertificacionesInternac: true})
	assert.Equal(t, 2, soloFlag.CertificacionesInternac)
}

func TestTieneCertInternacional(t *testing.T) {
	assert.True(t, matriz.TieneCertInternacional("SENASA, ISO 9001"))
	assert.True(t, matriz.TieneCertInternacional("orgánico certificado"))
	assert.False(t, matriz.TieneCertInternacional("SENASA, INTI"))
	assert.False(t, matriz.TieneCertInternacional(""))
}

// ──────────────────────────────────────────────────────────────────────────────
// Categoría: función pura del total
// ──────────────────────────────────────────────────────────────────────────────

func TestCategoria_Umbrales(t *testing.T) {
	cases := []struct {
		total    int
		esperado string
	}{
		{18, entity.CategoriaExportadora},
		{12, entity.CategoriaExportadora},
		{11, entity.CategoriaPotencialExportadora},
		{6, entity.CategoriaPotencialExportadora},
		{5, entity.CategoriaEtapaInicial},
		{0, entity.CategoriaEtapaInicial},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.esperado, matriz.Categoria(tc.total), "total %d", tc.total)
	}
}

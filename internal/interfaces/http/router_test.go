package http_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catamarca-comercio/registro-exportadores/internal/application/autorizacion"
	"github.com/catamarca-comercio/registro-exportadores/internal/domain/entity"
	apphttp "github.com/catamarca-comercio/registro-exportadores/internal/interfaces/http"
)

// buildRouterApp levanta el router real con el middleware de autenticación.
// Los casos de uso no se inyectan: estos tests cortan antes, en el gate de
// capacidades o en el parseo del cuerpo.
func buildRouterApp(repo *usuarioRepoFake) *fiber.App {
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Usuarios:  repo,
		Gate:      autorizacion.New(nil),
		JWTSecret: testJWTSecret,
	})
	return app
}

// doRuta lanza una petición JSON autenticada contra el router real.
func doRuta(t *testing.T, app *fiber.App, metodo, ruta, authHeader, body string) *http.Response {
	t.Helper()
	var lector io.Reader
	if body != "" {
		lector = strings.NewReader(body)
	}
	req := httptest.NewRequest(metodo, ruta, lector)
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Resolución de solicitudes: aprobar y rechazar piden gestión de usuarios,
// no alcanza con el bit de aprobación.
// ──────────────────────────────────────────────────────────────────────────────

func TestRutaAprobar_ConGestionDeUsuariosPasaElGate(t *testing.T) {
	u := usuarioConRol("u-gestor", entity.CapGestionarUsuarios, entity.NivelAdministrador)
	app := buildRouterApp(&usuarioRepoFake{porID: map[string]*entity.Usuario{u.ID: u}})

	// El cuerpo malformado corta en el parseo: si llega ahí, el gate pasó.
	resp := doRuta(t, app, http.MethodPost, "/api/solicitudes/s-1/aprobar", tokenPara(t, u), `{"observaciones":`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	cuerpo, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(cuerpo), "INVALID_BODY")
}

func TestRutaAprobar_SoloBitDeAprobacionEsDenegado(t *testing.T) {
	u := usuarioConRol("u-aprobador", entity.CapAprobar|entity.CapVerPendientes, entity.NivelAnalista)
	app := buildRouterApp(&usuarioRepoFake{porID: map[string]*entity.Usuario{u.ID: u}})

	resp := doRuta(t, app, http.MethodPost, "/api/solicitudes/s-1/aprobar", tokenPara(t, u), ``)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRutaRechazar_SoloBitDeAprobacionEsDenegado(t *testing.T) {
	u := usuarioConRol("u-aprobador", entity.CapAprobar|entity.CapVerPendientes, entity.NivelAnalista)
	app := buildRouterApp(&usuarioRepoFake{porID: map[string]*entity.Usuario{u.ID: u}})

	resp := doRuta(t, app, http.MethodPost, "/api/solicitudes/s-1/rechazar", tokenPara(t, u), ``)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRutaRechazar_ConGestionDeUsuariosPasaElGate(t *testing.T) {
	u := usuarioConRol("u-gestor", entity.CapGestionarUsuarios, entity.NivelAdministrador)
	app := buildRouterApp(&usuarioRepoFake{porID: map[string]*entity.Usuario{u.ID: u}})

	resp := doRuta(t, app, http.MethodPost, "/api/solicitudes/s-1/rechazar", tokenPara(t, u), `{"observaciones":`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Alta directa de empresas: pide el bit de creación.
// ──────────────────────────────────────────────────────────────────────────────

func TestRutaCrearEmpresa_ConCapacidadPasaElGate(t *testing.T) {
	u := usuarioConRol("u-cargador", entity.CapCrearEmpresa, entity.NivelAnalista)
	app := buildRouterApp(&usuarioRepoFake{porID: map[string]*entity.Usuario{u.ID: u}})

	resp := doRuta(t, app, http.MethodPost, "/api/empresas/", tokenPara(t, u), `{"razon_social":`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	cuerpo, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(cuerpo), "INVALID_BODY")
}

func TestRutaCrearEmpresa_SinCapacidadEsDenegado(t *testing.T) {
	u := usuarioConRol("u-editor", entity.CapEditarEmpresa|entity.CapExportar, entity.NivelAnalista)
	app := buildRouterApp(&usuarioRepoFake{porID: map[string]*entity.Usuario{u.ID: u}})

	resp := doRuta(t, app, http.MethodPost, "/api/empresas/", tokenPara(t, u), `{}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

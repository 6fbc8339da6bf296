package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catamarca-comercio/registro-exportadores/internal/application/autorizacion"
	"github.com/catamarca-comercio/registro-exportadores/internal/domain/entity"
	apphttp "github.com/catamarca-comercio/registro-exportadores/internal/interfaces/http"
	pkgjwt "github.com/catamarca-comercio/registro-exportadores/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "secreto-de-test-para-unit-tests"
	testIssuer    = "registro-exportadores-test"
	testExpMin    = 60
)

// usuarioRepoFake sirve cuentas en memoria indexadas por ID.
type usuarioRepoFake struct {
	porID map[string]*entity.Usuario
}

func (f *usuarioRepoFake) Create(ctx context.Context, u *entity.Usuario) error { return nil }

func (f *usuarioRepoFake) GetByID(ctx context.Context, id string) (*entity.Usuario, error) {
	return f.porID[id], nil
}

func (f *usuarioRepoFake) GetByEmail(ctx context.Context, email string) (*entity.Usuario, error) {
	return nil, nil
}

func (f *usuarioRepoFake) GetByTokenRecuperacion(ctx context.Context, token string) (*entity.Usuario, error) {
	return nil, nil
}

func (f *usuarioRepoFake) Update(ctx context.Context, u *entity.Usuario) error { return nil }

func (f *usuarioRepoFake) List(ctx context.Context, limit, offset int) ([]*entity.Usuario, error) {
	return nil, nil
}

func usuarioConRol(id string, caps entity.Capacidad, nivel int) *entity.Usuario {
	return &entity.Usuario{
		ID:     id,
		Email:  id + "@test.local",
		Activo: true,
		Rol:    &entity.Rol{ID: 1, Nombre: "rol-test", Capacidades: caps, NivelAcceso: nivel},
	}
}

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para validar el token y cargar el usuario desde el repo
//   - RequiereCapacidad para autorizar la operación
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func buildTestApp(repo *usuarioRepoFake, cap entity.Capacidad) *fiber.App {
	app := fiber.New()
	gate := autorizacion.New(nil)
	app.Get("/protegida",
		apphttp.AuthMiddleware(testJWTSecret, repo),
		apphttp.RequiereCapacidad(gate, cap),
		func(c *fiber.Ctx) error {
			u := apphttp.UsuarioActual(c)
			return c.JSON(fiber.Map{"ok": true, "email": u.Email})
		},
	)
	return app
}

// tokenPara genera un JWT válido para la cuenta indicada.
func tokenPara(t *testing.T, u *entity.Usuario) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, u.ID, u.Rol.Nombre, u.Rol.NivelAcceso, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

// doRequest lanza una petición GET /protegida y devuelve la respuesta.
func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protegida", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: cuenta activa con la capacidad requerida → HTTP 200.
func TestAuthMiddleware_CuentaActivaConCapacidadPasa(t *testing.T) {
	u := usuarioConRol("u-analista", entity.CapVerPendientes, entity.NivelAnalista)
	app := buildTestApp(&usuarioRepoFake{porID: map[string]*entity.Usuario{u.ID: u}}, entity.CapVerPendientes)

	resp := doRequest(t, app, tokenPara(t, u))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "u-analista@test.local", body["email"],
		"el usuario de locals debe ser el cargado desde el repositorio")
}

// Caso 2: sin header Authorization → HTTP 401 MISSING_TOKEN.
func TestAuthMiddleware_SinHeaderRetorna401(t *testing.T) {
	app := buildTestApp(&usuarioRepoFake{porID: map[string]*entity.Usuario{}}, entity.CapVerPendientes)

	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_TOKEN")
}

// Caso 3: token malformado → HTTP 401 INVALID_TOKEN.
func TestAuthMiddleware_TokenInvalidoRetorna401(t *testing.T) {
	app := buildTestApp(&usuarioRepoFake{porID: map[string]*entity.Usuario{}}, entity.CapVerPendientes)

	resp := doRequest(t, app, "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_TOKEN")
}

// Caso 4: token válido pero la cuenta fue desactivada después de emitirlo →
// HTTP 401. El estado se lee de la base en cada request.
func TestAuthMiddleware_CuentaDesactivadaRetorna401(t *testing.T) {
	u := usuarioConRol("u-baja", entity.CapVerPendientes, entity.NivelAnalista)
	tok := tokenPara(t, u)
	u.Activo = false
	app := buildTestApp(&usuarioRepoFake{porID: map[string]*entity.Usuario{u.ID: u}}, entity.CapVerPendientes)

	resp := doRequest(t, app, tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode,
		"una cuenta desactivada no debe poder operar aunque el token siga vigente")
}

// Caso 5: token válido de una cuenta que ya no existe → HTTP 401.
func TestAuthMiddleware_CuentaInexistenteRetorna401(t *testing.T) {
	u := usuarioConRol("u-fantasma", entity.CapVerPendientes, entity.NivelAnalista)
	app := buildTestApp(&usuarioRepoFake{porID: map[string]*entity.Usuario{}}, entity.CapVerPendientes)

	resp := doRequest(t, app, tokenPara(t, u))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequiereCapacidad
// ──────────────────────────────────────────────────────────────────────────────

// Caso 6: la cuenta no tiene la capacidad requerida → HTTP 403 FORBIDDEN.
func TestRequiereCapacidad_SinCapacidadRetorna403(t *testing.T) {
	u := usuarioConRol("u-consultor", entity.CapExportar|entity.CapVerReportes, entity.NivelConsultor)
	app := buildTestApp(&usuarioRepoFake{porID: map[string]*entity.Usuario{u.ID: u}}, entity.CapGestionarUsuarios)

	resp := doRequest(t, app, tokenPara(t, u))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
}

// Caso 7: superusuario sin el bit explícito → pasa igual.
func TestRequiereCapacidad_SuperusuarioPasaSinBit(t *testing.T) {
	u := usuarioConRol("u-super", 0, entity.NivelAdministrador)
	u.EsSuperusuario = true
	app := buildTestApp(&usuarioRepoFake{porID: map[string]*entity.Usuario{u.ID: u}}, entity.CapGestionarUsuarios)

	resp := doRequest(t, app, tokenPara(t, u))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// Caso 8: cambio de contraseña pendiente bloquea cualquier operación con
// capacidad → HTTP 400 con el mensaje del dominio.
func TestRequiereCapacidad_DebeCambiarClaveBloquea(t *testing.T) {
	u := usuarioConRol("u-reset", entity.CapVerPendientes, entity.NivelAnalista)
	u.DebeCambiarClave = true
	app := buildTestApp(&usuarioRepoFake{porID: map[string]*entity.Usuario{u.ID: u}}, entity.CapVerPendientes)

	resp := doRequest(t, app, tokenPara(t, u))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

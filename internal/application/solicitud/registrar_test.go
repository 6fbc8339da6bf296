package solicitud_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/catamarca-comercio/registro-exportadores/internal/application/dto"
	matrizuc "github.com/catamarca-comercio/registro-exportadores/internal/application/matriz"
	"github.com/catamarca-comercio/registro-exportadores/internal/application/solicitud"
	"github.com/catamarca-comercio/registro-exportadores/internal/domain"
	"github.com/catamarca-comercio/registro-exportadores/internal/domain/entity"
)

// entorno reúne los fakes y el caso de uso bajo prueba.
type entorno struct {
	usuarios    *usuarioRepoFake
	roles       *rolRepoFake
	solicitudes *solicitudRepoFake
	empresas    *empresaRepoFake
	productos   *productoRepoFake
	servicios   *servicioRepoFake
	referencias *referenciaRepoFake
	matrices    *matrizRepoFake
	uc          *solicitud.UseCase
}

func armarEntorno(t *testing.T) *entorno {
	t.Helper()
	e := &entorno{
		usuarios:    newUsuarioRepoFake(),
		roles:       newRolRepoFake(),
		solicitudes: newSolicitudRepoFake(),
		empresas:    newEmpresaRepoFake(),
		productos:   newProductoRepoFake(),
		servicios:   newServicioRepoFake(),
		referencias: newReferenciaRepoFake(),
		matrices:    newMatrizRepoFake(),
	}
	tx := &txRunnerFake{
		registro: solicitud.ReposRegistro{
			Usuarios:    e.usuarios,
			Roles:       e.roles,
			Solicitudes: e.solicitudes,
		},
		aprobacion: solicitud.ReposAprobacion{
			Solicitudes: e.solicitudes,
			Empresas:    e.empresas,
			Productos:   e.productos,
			Servicios:   e.servicios,
			Referencias: e.referencias,
		},
	}
	clasificador := matrizuc.NewUseCase(e.empresas, e.productos, e.matrices)
	e.uc = solicitud.NewUseCase(tx, e.solicitudes, clasificador, nil, nil, zerolog.Nop())
	return e
}

// presentacionBodega arma el formulario del caso de prueba de una bodega
// exportadora de tipo producto.
func presentacionBodega() dto.RegistrarSolicitudRequest {
	return dto.RegistrarSolicitudRequest{
		RazonSocial:    "Bodega del Valle SRL",
		NombreFantasia: "Bodega del Valle",
		TipoSociedad:   "SRL",
		CUIT:           "20-12345678-0",
		Direccion:      "Ruta 40 km 12",
		CodigoPostal:   "4700",
		Departamento:   "Tinogasta",
		Municipio:      "Tinogasta",
		Localidad:      "Tinogasta",
		Telefono:       "3834123456",
		Correo:         "info@bodegadelvalle.com.ar",
		SitioWeb:       "x.com",
		TipoEmpresa:    entity.TipoProducto,
		RubroPrincipal: "Vitivinicultura",
		SubRubro:       "Vinos finos",
		ContactoPrincipal: entity.ContactoJSON{
			Nombre:   "Marta",
			Apellido: "Olmos",
			Cargo:    "Gerenta",
			Telefono: "3834123456",
			Email:    "molmos@bodegadelvalle.com.ar",
		},
		ContactosSecundarios: []entity.ContactoJSON{
			{Nombre: "Pedro", Apellido: "Paz", Cargo: "Ventas", Telefono: "383400000", Email: "ppaz@bodegadelvalle.com.ar"},
		},
		Productos: []entity.ProductoJSON{
			{
				Nombre:              "Vino Malbec",
				CapacidadProductiva: "2000",
				Periodo:             entity.PeriodoAnual,
				UnidadMedida:        "litros",
				PosicionArancelaria: "2204.21.00",
				EsPrincipal:         true,
			},
		},
		Exporta:         entity.ExportaSi,
		CertificadoPyme: true,
		Certificaciones: "SENASA, ISO 9001",
		Promo2Idiomas:   true,
	}
}

func TestRegistrar_HappyPath(t *testing.T) {
	e := armarEntorno(t)
	ctx := context.Background()

	out, err := e.uc.Registrar(ctx, presentacionBodega())
	require.NoError(t, err)
	assert.Equal(t, entity.SolicitudPendiente, out.Estado)

	s, err := e.solicitudes.GetByID(ctx, out.SolicitudID)
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, "20123456780", s.CUIT, "el CUIT se normaliza sin guiones")
	assert.Equal(t, "https://x.com", s.SitioWeb, "se antepone el esquema")
	assert.NotEmpty(t, s.TokenConfirmacion)
	assert.False(t, s.EmailConfirmado)

	// La cuenta se crea con el correo del contacto principal y clave = CUIT.
	u, err := e.usuarios.GetByEmail(ctx, "molmos@bodegadelvalle.com.ar")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, u.ID, s.UsuarioID)
	assert.True(t, u.DebeCambiarClave)
	assert.True(t, u.Activo)
	require.NotNil(t, u.Rol)
	assert.Equal(t, entity.RolEmpresa, u.Rol.Nombre)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.ClaveHash), []byte("20123456780")))
}

func TestRegistrar_CUITInvalido(t *testing.T) {
	e := armarEntorno(t)
	in := presentacionBodega()
	in.CUIT = "123"

	_, err := e.uc.Registrar(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegistrar_ContactoPrincipalIncompleto(t *testing.T) {
	e := armarEntorno(t)
	in := presentacionBodega()
	in.ContactoPrincipal.Cargo = ""

	_, err := e.uc.Registrar(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegistrar_TipoEmpresaInvalido(t *testing.T) {
	e := armarEntorno(t)
	in := presentacionBodega()
	in.TipoEmpresa = "industrial"

	_, err := e.uc.Registrar(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrTipoEmpresaInvalido)
}

func TestRegistrar_ContactosSecundariosSeRecortanADos(t *testing.T) {
	e := armarEntorno(t)
	ctx := context.Background()
	in := presentacionBodega()
	in.ContactosSecundarios = []entity.ContactoJSON{
		{Nombre: "A", Apellido: "A", Cargo: "a", Telefono: "1", Email: "a@x.com"},
		{Nombre: "B", Apellido: "B", Cargo: "b", Telefono: "2", Email: "b@x.com"},
		{Nombre: "C", Apellido: "C", Cargo: "c", Telefono: "3", Email: "c@x.com"},
	}

	out, err := e.uc.Registrar(ctx, in)
	require.NoError(t, err)
	s, _ := e.solicitudes.GetByID(ctx, out.SolicitudID)
	assert.Len(t, s.ContactosSecundarios, 2)
}

func TestRegistrar_CUITYaAprobadoRechaza(t *testing.T) {
	e := armarEntorno(t)
	ctx := context.Background()

	primera, err := e.uc.Registrar(ctx, presentacionBodega())
	require.NoError(t, err)
	_, err = e.uc.Aprobar(ctx, primera.SolicitudID, "admin-1", dto.ResolverSolicitudRequest{})
	require.NoError(t, err)

	// Nueva presentación con el mismo CUIT y otro correo de contacto.
	in := presentacionBodega()
	in.ContactoPrincipal.Email = "otro@bodegadelvalle.com.ar"
	_, err = e.uc.Registrar(ctx, in)
	assert.ErrorIs(t, err, domain.ErrCUITDuplicado)
}

func TestRegistrar_EmailDePersonalInternoRechaza(t *testing.T) {
	e := armarEntorno(t)
	ctx := context.Background()

	admin, _ := e.roles.GetByNombre(ctx, entity.RolAdministrador)
	require.NoError(t, e.usuarios.Create(ctx, &entity.Usuario{
		ID:     "u-admin",
		Email:  "molmos@bodegadelvalle.com.ar",
		Rol:    admin,
		Activo: true,
	}))

	_, err := e.uc.Registrar(ctx, presentacionBodega())
	assert.ErrorIs(t, err, domain.ErrEmailYaRegistrado)
}

func TestRegistrar_ReutilizaCuentaEmpresaExistente(t *testing.T) {
	e := armarEntorno(t)
	ctx := context.Background()

	rolEmpresa, _ := e.roles.GetByNombre(ctx, entity.RolEmpresa)
	require.NoError(t, e.usuarios.Create(ctx, &entity.Usuario{
		ID:     "u-existente",
		Email:  "molmos@bodegadelvalle.com.ar",
		Rol:    rolEmpresa,
		Activo: true,
	}))

	out, err := e.uc.Registrar(ctx, presentacionBodega())
	require.NoError(t, err)
	s, _ := e.solicitudes.GetByID(ctx, out.SolicitudID)
	assert.Equal(t, "u-existente", s.UsuarioID)
}

func TestConfirmarEmail(t *testing.T) {
	e := armarEntorno(t)
	ctx := context.Background()

	out, err := e.uc.Registrar(ctx, presentacionBodega())
	require.NoError(t, err)
	s, _ := e.solicitudes.GetByID(ctx, out.SolicitudID)

	err = e.uc.ConfirmarEmail(ctx, s.ID, "token-que-no-es")
	assert.ErrorIs(t, err, domain.ErrTokenInvalido)

	require.NoError(t, e.uc.ConfirmarEmail(ctx, s.ID, s.TokenConfirmacion))
	confirmada, _ := e.solicitudes.GetByID(ctx, s.ID)
	assert.True(t, confirmada.EmailConfirmado)
}

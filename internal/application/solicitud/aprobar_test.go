package solicitud_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catamarca-comercio/registro-exportadores/internal/application/dto"
	"github.com/catamarca-comercio/registro-exportadores/internal/domain"
	"github.com/catamarca-comercio/registro-exportadores/internal/domain/entity"
)

func TestAprobar_HappyPath(t *testing.T) {
	e := armarEntorno(t)
	ctx := context.Background()

	registrada, err := e.uc.Registrar(ctx, presentacionBodega())
	require.NoError(t, err)

	out, err := e.uc.Aprobar(ctx, registrada.SolicitudID, "admin-1", dto.ResolverSolicitudRequest{
		Observaciones: "documentación en regla",
	})
	require.NoError(t, err)
	require.NotEmpty(t, out.EmpresaID)

	// La solicitud queda terminal y enlazada a la empresa.
	s, _ := e.solicitudes.GetByID(ctx, registrada.SolicitudID)
	assert.Equal(t, entity.SolicitudAprobada, s.Estado)
	require.NotNil(t, s.AprobadoPor)
	assert.Equal(t, "admin-1", *s.AprobadoPor)
	require.NotNil(t, s.FechaAprobacion)
	require.NotNil(t, s.EmpresaCreadaID)
	assert.Equal(t, out.EmpresaID, *s.EmpresaCreadaID)

	// La empresa copia el snapshot y denormaliza los campos de la matriz.
	emp, _ := e.empresas.GetByID(ctx, out.EmpresaID)
	require.NotNil(t, emp)
	assert.Equal(t, entity.TipoProducto, emp.Tipo)
	assert.Equal(t, "20123456780", emp.CUIT)
	assert.Equal(t, entity.ExportaSi, emp.Exporta)
	assert.Equal(t, "2000", emp.CapacidadProductiva.String())
	assert.Equal(t, entity.PeriodoAnual, emp.PeriodoCapacidad)
	assert.True(t, emp.CertificacionesInternac, "se infiere del token ISO en certificaciones")
	assert.Equal(t, s.UsuarioID, emp.UsuarioID)
	assert.Equal(t, "admin-1", emp.CreadoPor)
	assert.NotNil(t, emp.DepartamentoID)
	assert.NotNil(t, emp.RubroID)

	// Un producto con su posición arancelaria.
	productos, _ := e.productos.ListByEmpresa(ctx, emp.ID)
	require.Len(t, productos, 1)
	assert.Equal(t, "Vino Malbec", productos[0].Nombre)
	pos, _ := e.productos.GetPosicion(ctx, productos[0].ID)
	require.NotNil(t, pos)
	assert.Equal(t, "2204.21.00", pos.Codigo)

	// La matriz se calcula y persiste fuera de la transacción.
	m, _ := e.matrices.GetByEmpresa(ctx, emp.ID)
	require.NotNil(t, m)
	assert.Equal(t, [9]int{3, 3, 2, 1, 0, 2, 0, 2, 2}, m.Criterios())
	assert.Equal(t, 15, m.PuntajeTotal)
	assert.Equal(t, entity.CategoriaExportadora, m.Categoria)
}

func TestAprobar_DosVecesFalla(t *testing.T) {
	e := armarEntorno(t)
	ctx := context.Background()

	registrada, err := e.uc.Registrar(ctx, presentacionBodega())
	require.NoError(t, err)
	_, err = e.uc.Aprobar(ctx, registrada.SolicitudID, "admin-1", dto.ResolverSolicitudRequest{})
	require.NoError(t, err)

	_, err = e.uc.Aprobar(ctx, registrada.SolicitudID, "admin-1", dto.ResolverSolicitudRequest{})
	assert.ErrorIs(t, err, domain.ErrEstadoInvalido)
}

func TestAprobar_SolicitudInexistente(t *testing.T) {
	e := armarEntorno(t)
	_, err := e.uc.Aprobar(context.Background(), "no-existe", "admin-1", dto.ResolverSolicitudRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAprobar_EnRevisionTambienSeAprueba(t *testing.T) {
	e := armarEntorno(t)
	ctx := context.Background()

	registrada, err := e.uc.Registrar(ctx, presentacionBodega())
	require.NoError(t, err)
	require.NoError(t, e.uc.TomarEnRevision(ctx, registrada.SolicitudID, "admin-1"))

	_, err = e.uc.Aprobar(ctx, registrada.SolicitudID, "admin-1", dto.ResolverSolicitudRequest{})
	assert.NoError(t, err)
}

func TestAprobar_Mixta_CreaProductosYServicios(t *testing.T) {
	e := armarEntorno(t)
	ctx := context.Background()

	in := presentacionBodega()
	in.CUIT = "30-70876543-8"
	in.TipoEmpresa = entity.TipoMixta
	in.ContactoPrincipal.Email = "mixta@test.com"
	in.Servicios = dto.ServiciosFlex{{
		Nombre:       "Enoturismo",
		TipoServicio: "turismo",
		Alcance:      entity.AlcanceNacional,
	}}

	out, err := e.uc.Registrar(ctx, in)
	require.NoError(t, err)
	aprobada, err := e.uc.Aprobar(ctx, out.SolicitudID, "admin-1", dto.ResolverSolicitudRequest{})
	require.NoError(t, err)

	productos, _ := e.productos.ListByEmpresa(ctx, aprobada.EmpresaID)
	servicios, _ := e.servicios.ListByEmpresa(ctx, aprobada.EmpresaID)
	assert.Len(t, productos, 1)
	assert.Len(t, servicios, 1)
}

func TestAprobar_Servicio_IgnoraProductosDeclarados(t *testing.T) {
	e := armarEntorno(t)
	ctx := context.Background()

	in := presentacionBodega()
	in.CUIT = "30-71112223-9"
	in.TipoEmpresa = entity.TipoServicio
	in.ContactoPrincipal.Email = "servicio@test.com"
	in.Servicios = dto.ServiciosFlex{{Nombre: "Consultoría", TipoServicio: "consultoria"}}

	out, err := e.uc.Registrar(ctx, in)
	require.NoError(t, err)
	aprobada, err := e.uc.Aprobar(ctx, out.SolicitudID, "admin-1", dto.ResolverSolicitudRequest{})
	require.NoError(t, err)

	productos, _ := e.productos.ListByEmpresa(ctx, aprobada.EmpresaID)
	servicios, _ := e.servicios.ListByEmpresa(ctx, aprobada.EmpresaID)
	assert.Empty(t, productos, "una empresa de servicios no materializa productos")
	assert.Len(t, servicios, 1)
}

func TestAprobar_ReferenciasSeDeduplicanPorNombre(t *testing.T) {
	e := armarEntorno(t)
	ctx := context.Background()

	primera, err := e.uc.Registrar(ctx, presentacionBodega())
	require.NoError(t, err)
	ap1, err := e.uc.Aprobar(ctx, primera.SolicitudID, "admin-1", dto.ResolverSolicitudRequest{})
	require.NoError(t, err)

	in := presentacionBodega()
	in.CUIT = "27-23456789-4"
	in.ContactoPrincipal.Email = "segunda@test.com"
	segunda, err := e.uc.Registrar(ctx, in)
	require.NoError(t, err)
	ap2, err := e.uc.Aprobar(ctx, segunda.SolicitudID, "admin-1", dto.ResolverSolicitudRequest{})
	require.NoError(t, err)

	e1, _ := e.empresas.GetByID(ctx, ap1.EmpresaID)
	e2, _ := e.empresas.GetByID(ctx, ap2.EmpresaID)
	assert.Equal(t, *e1.DepartamentoID, *e2.DepartamentoID, "mismo departamento por nombre")
	assert.Equal(t, *e1.RubroID, *e2.RubroID, "mismo rubro por (nombre, tipo)")
}

func TestRechazar(t *testing.T) {
	e := armarEntorno(t)
	ctx := context.Background()

	registrada, err := e.uc.Registrar(ctx, presentacionBodega())
	require.NoError(t, err)
	require.NoError(t, e.uc.Rechazar(ctx, registrada.SolicitudID, "admin-1", "falta el certificado PyME"))

	s, _ := e.solicitudes.GetByID(ctx, registrada.SolicitudID)
	assert.Equal(t, entity.SolicitudRechazada, s.Estado)
	assert.Equal(t, "falta el certificado PyME", s.Observaciones)
	assert.Nil(t, s.EmpresaCreadaID, "el rechazo no crea empresa")

	// Terminal: ni re-rechazo ni aprobación posterior.
	assert.ErrorIs(t, e.uc.Rechazar(ctx, s.ID, "admin-1", "otra vez"), domain.ErrEstadoInvalido)
	_, err = e.uc.Aprobar(ctx, s.ID, "admin-1", dto.ResolverSolicitudRequest{})
	assert.ErrorIs(t, err, domain.ErrEstadoInvalido)
}

func TestRevision_IdaYVuelta(t *testing.T) {
	e := armarEntorno(t)
	ctx := context.Background()

	registrada, err := e.uc.Registrar(ctx, presentacionBodega())
	require.NoError(t, err)

	require.NoError(t, e.uc.TomarEnRevision(ctx, registrada.SolicitudID, "admin-1"))
	s, _ := e.solicitudes.GetByID(ctx, registrada.SolicitudID)
	assert.Equal(t, entity.SolicitudEnRevision, s.Estado)

	require.NoError(t, e.uc.DevolverAPendiente(ctx, registrada.SolicitudID))
	s, _ = e.solicitudes.GetByID(ctx, registrada.SolicitudID)
	assert.Equal(t, entity.SolicitudPendiente, s.Estado)

	// No se puede tomar en revisión dos veces seguidas.
	require.NoError(t, e.uc.TomarEnRevision(ctx, registrada.SolicitudID, "admin-1"))
	assert.ErrorIs(t, e.uc.TomarEnRevision(ctx, registrada.SolicitudID, "admin-1"), domain.ErrEstadoInvalido)
}

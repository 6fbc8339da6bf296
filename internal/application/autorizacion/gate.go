// Package autorizacion implementa los dos chequeos ortogonales del sistema:
// la operación (¿puede este usuario invocar esto?) y el objeto (¿puede tocar
// esta fila?), más el estrechamiento de visibilidad de los listados.
package autorizacion

import (
	"context"

	"github.com/catamarca-comercio/registro-exportadores/internal/application/auditoria"
	"github.com/catamarca-comercio/registro-exportadores/internal/domain"
	"github.com/catamarca-comercio/registro-exportadores/internal/domain/entity"
	"github.com/catamarca-comercio/registro-exportadores/internal/domain/repository"
)

// Gate resuelve autorización por capacidad y por propiedad.
type Gate struct {
	auditor *auditoria.Registrador
}

// New construye el gate. auditor puede ser nil en tests.
func New(auditor *auditoria.Registrador) *Gate {
	return &Gate{auditor: auditor}
}

// Contexto de request para los chequeos: quién y desde dónde.
type Contexto struct {
	Usuario *entity.Usuario
	URL     string
	Metodo  string
}

// ExigirCapacidad verifica la capacidad y audita el rechazo.
// Un usuario con debe_cambiar_clave pendiente no puede mutar nada, salvo el
// cambio de contraseña (ese camino no pasa por acá).
func (g *Gate) ExigirCapacidad(ctx context.Context, rc Contexto, cap entity.Capacidad) error {
	if rc.Usuario == nil {
		return domain.ErrUnauthorized
	}
	if rc.Usuario.DebeCambiarClave {
		g.denegar(ctx, rc, "mutación bloqueada: cambio de contraseña pendiente")
		return domain.ErrDebeCambiarClave
	}
	if !rc.Usuario.TieneCapacidad(cap) {
		g.denegar(ctx, rc, "capacidad insuficiente")
		return domain.ErrForbidden
	}
	return nil
}

// ExigirEdicionEmpresa permite editar si el usuario tiene la capacidad de
// edición o si es el dueño de la empresa.
func (g *Gate) ExigirEdicionEmpresa(ctx context.Context, rc Contexto, e *entity.Empresa) error {
	if rc.Usuario == nil {
		return domain.ErrUnauthorized
	}
	if rc.Usuario.DebeCambiarClave {
		g.denegar(ctx, rc, "mutación bloqueada: cambio de contraseña pendiente")
		return domain.ErrDebeCambiarClave
	}
	if rc.Usuario.TieneCapacidad(entity.CapEditarEmpresa) {
		return nil
	}
	if e.EsPropietario(rc.Usuario.ID) {
		return nil
	}
	g.denegar(ctx, rc, "no es dueño ni tiene capacidad de edición")
	return domain.ErrForbidden
}

// ExigirGestionHijos autoriza altas/bajas de productos y servicios:
// administrador o dueño de la empresa padre.
func (g *Gate) ExigirGestionHijos(ctx context.Context, rc Contexto, e *entity.Empresa) error {
	if rc.Usuario == nil {
		return domain.ErrUnauthorized
	}
	if rc.Usuario.DebeCambiarClave {
		g.denegar(ctx, rc, "mutación bloqueada: cambio de contraseña pendiente")
		return domain.ErrDebeCambiarClave
	}
	if rc.Usuario.TieneCapacidad(entity.CapEditarEmpresa) || e.EsPropietario(rc.Usuario.ID) {
		return nil
	}
	g.denegar(ctx, rc, "no es dueño de la empresa padre")
	return domain.ErrForbidden
}

// FiltrarVisibilidad estrecha un filtro de listado según el rol: los roles
// internos (Consultor, Analista, Administrador) ven todo; el rol Empresa
// solo sus propias filas.
func (g *Gate) FiltrarVisibilidad(u *entity.Usuario, f repository.FiltroEmpresas) repository.FiltroEmpresas {
	if u == nil {
		f.UsuarioID = "-" // sin usuario no hay filas visibles
		return f
	}
	if u.EsSuperusuario || u.Rol.EsInterno() {
		return f
	}
	f.UsuarioID = u.ID
	return f
}

func (g *Gate) denegar(ctx context.Context, rc Contexto, motivo string) {
	if g.auditor == nil {
		return
	}
	var uid *string
	if rc.Usuario != nil {
		uid = &rc.Usuario.ID
	}
	g.auditor.PermisoDenegado(ctx, uid, rc.URL, rc.Metodo, motivo)
}

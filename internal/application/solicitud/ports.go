package solicitud

import (
	"context"

	"github.com/catamarca-comercio/registro-exportadores/internal/domain/entity"
	"github.com/catamarca-comercio/registro-exportadores/internal/domain/repository"
)

// ReposRegistro son los repositorios que participan de la transacción de
// registro público: alta o reutilización de usuario más inserción de la
// solicitud.
type ReposRegistro struct {
	Usuarios    repository.UsuarioRepository
	Roles       repository.RolRepository
	Solicitudes repository.SolicitudRepository
}

// ReposAprobacion son los repositorios que participan de la transacción de
// aprobación: resolución de referencias, materialización de la empresa con
// sus hijos y actualización de la solicitud.
type ReposAprobacion struct {
	Solicitudes repository.SolicitudRepository
	Empresas    repository.EmpresaRepository
	Productos   repository.ProductoRepository
	Servicios   repository.ServicioRepository
	Referencias repository.ReferenciaRepository
}

// TxRunner ejecuta fn dentro de una transacción, con repositorios ligados a
// ella. Si fn retorna error la transacción completa se revierte.
type TxRunner interface {
	RunRegistro(ctx context.Context, fn func(r ReposRegistro) error) error
	RunAprobacion(ctx context.Context, fn func(r ReposAprobacion) error) error
}

// Clasificador calcula y persiste la matriz de una empresa. La aprobación lo
// invoca fuera de la transacción principal: su fallo se loguea y no revierte
// la empresa creada.
type Clasificador interface {
	ClasificarEmpresa(ctx context.Context, empresaID, evaluadorID string) (*entity.MatrizClasificacion, error)
}

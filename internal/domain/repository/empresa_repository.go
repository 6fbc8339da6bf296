package repository

import (
	"context"
	"time"

	"github.com/catamarca-comercio/registro-exportadores/internal/domain/entity"
)

// FiltroEmpresas reúne búsqueda, filtros categóricos y visibilidad por dueño
// para los listados de empresas. El campo UsuarioID, cuando no es vacío,
// restringe el resultado a las empresas de esa cuenta (rol Empresa).
type FiltroEmpresas struct {
	// Busqueda es subcadena case-insensitive sobre razón social, CUIT, correo,
	// teléfono, dirección y los nombres de departamento, municipio, localidad
	// y rubro.
	Busqueda string

	Tipo            string // producto, servicio, mixta
	Exporta         string
	Importa         *bool
	CertificadoPyme *bool
	Promo2Idiomas   *bool
	RubroID         *int64
	TipoEmpresaID   *int64
	DepartamentoID  *int64
	// CategoriaMatriz filtra por la categoría de la matriz (join a la tabla
	// de clasificación).
	CategoriaMatriz string

	UsuarioID string

	// Orden admite razon_social, fecha_creacion y puntaje; vacío ordena por
	// fecha_creacion descendente.
	Orden       string
	Descendente bool

	Limit  int
	Offset int
}

// EmpresaRepository define el puerto de persistencia para Empresa.
type EmpresaRepository interface {
	Create(ctx context.Context, e *entity.Empresa) error
	GetByID(ctx context.Context, id string) (*entity.Empresa, error)
	GetByCUIT(ctx context.Context, cuit string) (*entity.Empresa, error)
	GetByUsuario(ctx context.Context, usuarioID string) (*entity.Empresa, error)
	Update(ctx context.Context, e *entity.Empresa) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f FiltroEmpresas) ([]*entity.Empresa, error)
	Count(ctx context.Context, f FiltroEmpresas) (int, error)
}

// EmpresaStatsRepository agrega los contadores del dashboard. Separado del
// CRUD para que los casos de uso que solo listan no dependan de agregaciones.
type EmpresaStatsRepository interface {
	CountPorExporta(ctx context.Context) (map[string]int, error)
	CountPorTipo(ctx context.Context) (map[string]int, error)
	CountPorRubro(ctx context.Context) (map[string]int, error)
	CountCreadasDesde(ctx context.Context, desde time.Time) (int, error)
	UltimasCreadas(ctx context.Context, n int) ([]*entity.Empresa, error)
}

// ProductoRepository define el puerto para productos y sus posiciones
// arancelarias (a lo sumo una por producto).
type ProductoRepository interface {
	Create(ctx context.Context, p *entity.ProductoEmpresa) error
	GetByID(ctx context.Context, id string) (*entity.ProductoEmpresa, error)
	ListByEmpresa(ctx context.Context, empresaID string) ([]*entity.ProductoEmpresa, error)
	Update(ctx context.Context, p *entity.ProductoEmpresa) error
	Delete(ctx context.Context, id string) error
	UpsertPosicion(ctx context.Context, pos *entity.PosicionArancelaria) error
	GetPosicion(ctx context.Context, productoID string) (*entity.PosicionArancelaria, error)
	// EmpresaTienePosicion informa si algún producto de la empresa declara
	// posición arancelaria (criterio 4 de la matriz).
	EmpresaTienePosicion(ctx context.Context, empresaID string) (bool, error)
}

// ServicioRepository define el puerto para servicios de empresa.
type ServicioRepository interface {
	Create(ctx context.Context, s *entity.ServicioEmpresa) error
	GetByID(ctx context.Context, id string) (*entity.ServicioEmpresa, error)
	ListByEmpresa(ctx context.Context, empresaID string) ([]*entity.ServicioEmpresa, error)
	Update(ctx context.Context, s *entity.ServicioEmpresa) error
	Delete(ctx context.Context, id string) error
}

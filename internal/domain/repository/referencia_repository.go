package repository

import (
	"context"

	"github.com/catamarca-comercio/registro-exportadores/internal/domain/entity"
)

// ReferenciaRepository define el puerto de lectura/alta de datos de
// referencia: geografía, rubros y tipos de empresa. Las lecturas son
// inmutables en tiempo de request; las altas solo ocurren en la aprobación
// (resolución de strings libres) y en los jobs de importación offline.
type ReferenciaRepository interface {
	// Geografía. Los Get buscan por nombre dentro del padre; los GetOrCreate
	// crean la fila con código sintetizado si el nombre no existe,
	// deduplicando por (nombre, padre).
	GetProvincia(ctx context.Context, nombre string) (*entity.Provincia, error)
	GetProvinciaByID(ctx context.Context, id int64) (*entity.Provincia, error)
	GetOrCreateDepartamento(ctx context.Context, provinciaID int64, nombre string) (*entity.Departamento, error)
	GetOrCreateMunicipio(ctx context.Context, departamentoID int64, nombre string) (*entity.Municipio, error)
	GetOrCreateLocalidad(ctx context.Context, municipioID int64, nombre string) (*entity.Localidad, error)
	GetDepartamentoByID(ctx context.Context, id int64) (*entity.Departamento, error)
	GetMunicipioByID(ctx context.Context, id int64) (*entity.Municipio, error)
	GetLocalidadByID(ctx context.Context, id int64) (*entity.Localidad, error)

	// Rubros.
	GetOrCreateRubro(ctx context.Context, nombre, tipo string) (*entity.Rubro, error)
	GetOrCreateSubRubro(ctx context.Context, rubroID int64, nombre string) (*entity.SubRubro, error)
	GetRubroByID(ctx context.Context, id int64) (*entity.Rubro, error)
	ListRubros(ctx context.Context) ([]*entity.Rubro, error)
	ListSubRubros(ctx context.Context, rubroID int64) ([]*entity.SubRubro, error)
	CreateRubro(ctx context.Context, r *entity.Rubro) error

	// Saneamiento de duplicados (ver application/referencia).
	MoverSubRubros(ctx context.Context, desdeRubroID, haciaRubroID int64) error
	EliminarSubRubro(ctx context.Context, id int64) error
	RepuntarEmpresas(ctx context.Context, desdeRubroID, haciaRubroID int64) error
	EliminarRubro(ctx context.Context, id int64) error

	// Tipos de empresa (razón jurídica).
	GetOrCreateTipoEmpresa(ctx context.Context, nombre string) (*entity.TipoEmpresaRef, error)
	GetTipoEmpresaByID(ctx context.Context, id int64) (*entity.TipoEmpresaRef, error)
}

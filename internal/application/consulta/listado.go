package consulta

import (
	"context"

	"github.com/catamarca-comercio/registro-exportadores/internal/application/dto"
	"github.com/catamarca-comercio/registro-exportadores/internal/domain/entity"
	"github.com/catamarca-comercio/registro-exportadores/internal/domain/repository"
)

// Listar devuelve la página de empresas visible para el usuario. El gate
// estrecha el filtro antes de tocar el repositorio: los roles internos ven
// todo el padrón, el rol Empresa solo sus propias filas.
func (uc *UseCase) Listar(ctx context.Context, u *entity.Usuario, in dto.ListarEmpresasRequest) (*dto.EmpresaListResponse, error) {
	in.DefaultPage()
	f := uc.gate.FiltrarVisibilidad(u, filtroDesdeRequest(in))

	total, err := uc.empresaRepo.Count(ctx, f)
	if err != nil {
		return nil, err
	}
	empresas, err := uc.empresaRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}

	nom := uc.nuevosNombres()
	out := &dto.EmpresaListResponse{
		Items: make([]dto.EmpresaResponse, 0, len(empresas)),
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}
	for _, e := range empresas {
		out.Items = append(out.Items, uc.toEmpresaResponse(ctx, e, nom))
	}
	return out, nil
}

func filtroDesdeRequest(in dto.ListarEmpresasRequest) repository.FiltroEmpresas {
	f := repository.FiltroEmpresas{
		Busqueda:        in.Busqueda,
		Tipo:            in.TipoEmpresa,
		Exporta:         in.Exporta,
		RubroID:         in.Rubro,
		TipoEmpresaID:   in.TipoSociedad,
		DepartamentoID:  in.Departamento,
		CategoriaMatriz: in.Categoria,
		Orden:           in.Orden,
		Descendente:     in.Descendente,
		Limit:           in.Limit,
		Offset:          in.Offset,
	}
	if in.Importa != nil {
		v := in.Importa.Bool()
		f.Importa = &v
	}
	if in.CertificadoPyme != nil {
		v := in.CertificadoPyme.Bool()
		f.CertificadoPyme = &v
	}
	if in.Promo2Idiomas != nil {
		v := in.Promo2Idiomas.Bool()
		f.Promo2Idiomas = &v
	}
	return f
}

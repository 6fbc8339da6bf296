package consulta

import (
	"context"
	"fmt"
	"strings"

	"github.com/catamarca-comercio/registro-exportadores/internal/application/dto"
	"github.com/catamarca-comercio/registro-exportadores/internal/domain/entity"
	"github.com/catamarca-comercio/registro-exportadores/internal/domain/repository"
)

// PadronPDFGenerator es el puerto hacia el renderizador del PDF del padrón.
type PadronPDFGenerator interface {
	GenerarPadron(ctx context.Context, filas []dto.FilaExport) ([]byte, error)
}

// camposPorDefecto selección cuando el request no trae `campos`.
var camposPorDefecto = []string{
	"razon_social",
	"cuit_cuil",
	"tipo_empresa",
	"rubro_principal",
	"departamento",
	"telefono",
	"correo",
	"exporta",
	"categoria_matriz",
}

// FilasExport proyecta las empresas que pasan el filtro a los campos
// seleccionados, agrupados por sección en el orden de selección. Un campo
// fuera de la whitelist se ignora en silencio; un campo repetido cuenta una
// sola vez.
func (uc *UseCase) FilasExport(ctx context.Context, in dto.ExportarPDFRequest) ([]dto.FilaExport, error) {
	campos := depurarCampos(in.Campos)

	f := repository.FiltroEmpresas{
		Busqueda:       in.Busqueda,
		Tipo:           in.TipoEmpresa,
		Exporta:        in.Exporta,
		RubroID:        in.Rubro,
		DepartamentoID: in.Departamento,
	}
	// Limit cero exporta el padrón completo.
	empresas, err := uc.empresaRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}

	nom := uc.nuevosNombres()
	filas := make([]dto.FilaExport, 0, len(empresas))
	for _, e := range empresas {
		fila := dto.FilaExport{
			RazonSocial: e.RazonSocial,
			Secciones:   map[string][]dto.ValorExport{},
		}
		sol := uc.solicitudPerezosa(ctx, e)
		for _, campo := range campos {
			def := dto.CamposExport[campo]
			fila.Secciones[def.Seccion] = append(fila.Secciones[def.Seccion], dto.ValorExport{
				Etiqueta: def.Etiqueta,
				Valor:    uc.valorCampo(ctx, e, campo, nom, sol),
			})
		}
		filas = append(filas, fila)
	}
	return filas, nil
}

// depurarCampos filtra contra la whitelist preservando el orden y quitando
// repetidos. Vacío cae a la selección por defecto.
func depurarCampos(campos []string) []string {
	if len(campos) == 0 {
		campos = camposPorDefecto
	}
	vistos := make(map[string]bool, len(campos))
	out := make([]string, 0, len(campos))
	for _, c := range campos {
		c = strings.ToLower(strings.TrimSpace(c))
		if _, ok := dto.CamposExport[c]; !ok || vistos[c] {
			continue
		}
		vistos[c] = true
		out = append(out, c)
	}
	return out
}

// solicitudPerezosa difiere la búsqueda de la solicitud de origen hasta el
// primer campo que la necesita (ferias, rondas, misiones) y la memoiza.
func (uc *UseCase) solicitudPerezosa(ctx context.Context, e *entity.Empresa) func() *entity.Solicitud {
	var (
		cargada bool
		s       *entity.Solicitud
	)
	return func() *entity.Solicitud {
		if !cargada {
			cargada = true
			if e.UsuarioID != "" {
				s, _ = uc.solicitudRepo.GetByUsuario(ctx, e.UsuarioID)
			}
		}
		return s
	}
}

func (uc *UseCase) valorCampo(ctx context.Context, e *entity.Empresa, campo string, nom *nombres, sol func() *entity.Solicitud) string {
	switch campo {
	case "razon_social":
		return e.RazonSocial
	case "nombre_fantasia":
		return e.NombreFantasia
	case "cuit_cuil":
		return e.CUIT
	case "tipo_sociedad":
		return e.TipoSociedad
	case "tipo_empresa":
		return e.Tipo
	case "fecha_creacion":
		return e.FechaCreacion.Format("02/01/2006")
	case "rubro_principal":
		return nom.rubro(ctx, e.RubroID)
	case "categoria_matriz":
		if m, err := uc.matrizRepo.GetByEmpresa(ctx, e.ID); err == nil && m != nil {
			return m.Categoria
		}
		return ""

	case "departamento":
		return nom.departamento(ctx, e.DepartamentoID)
	case "municipio":
		return nom.municipio(ctx, e.MunicipioID)
	case "localidad":
		return nom.localidad(ctx, e.LocalidadID)
	case "direccion":
		return e.Direccion
	case "codigo_postal":
		return e.CodigoPostal
	case "provincia":
		return nom.provincia(ctx, e.ProvinciaID)
	case "geolocalizacion":
		if e.GeoReferencia != "" {
			return e.GeoReferencia
		}
		if !e.Latitud.IsZero() || !e.Longitud.IsZero() {
			return fmt.Sprintf("%s, %s", e.Latitud.String(), e.Longitud.String())
		}
		return ""
	case "telefono":
		return e.Telefono
	case "correo":
		return e.Correo
	case "sitioweb":
		return e.SitioWeb
	case "email_secundario":
		return e.ContactoSecundario.Email
	case "email_terciario":
		return e.ContactoTerciario.Email
	case "contacto_principal_nombre":
		return nombreCompleto(e.ContactoPrincipal)
	case "contacto_principal_cargo":
		return e.ContactoPrincipal.Cargo
	case "contacto_principal_telefono":
		return e.ContactoPrincipal.Telefono
	case "contacto_principal_email":
		return e.ContactoPrincipal.Email
	case "contacto_secundario_nombre":
		return nombreCompleto(e.ContactoSecundario)
	case "contacto_secundario_cargo":
		return e.ContactoSecundario.Cargo
	case "contacto_secundario_telefono":
		return e.ContactoSecundario.Telefono
	case "contacto_secundario_email":
		return e.ContactoSecundario.Email

	case "exporta":
		return e.Exporta
	case "destinoexporta":
		return e.DestinoExporta
	case "importa":
		return siNo(e.Importa)
	case "interes_exportar":
		return siNo(e.InteresExportar)
	case "certificadopyme":
		return siNo(e.CertificadoPyme)
	case "certificaciones":
		return e.Certificaciones
	case "promo2idiomas":
		return siNo(e.Promo2Idiomas)
	case "idiomas_trabaja":
		return e.IdiomasTrabaja
	case "ferias":
		return actividades(sol(), entity.ActividadFeria)
	case "rondas":
		return actividades(sol(), entity.ActividadRonda)
	case "misiones":
		return actividades(sol(), entity.ActividadMision)
	case "observaciones":
		return e.Observaciones
	}
	return ""
}

func siNo(v bool) string {
	if v {
		return "Sí"
	}
	return "No"
}

// actividades resume las actividades de promoción del tipo pedido tal como
// se declararon en el formulario de registro.
func actividades(s *entity.Solicitud, tipo string) string {
	if s == nil {
		return ""
	}
	var partes []string
	for _, a := range s.Actividades {
		if a.Tipo != tipo {
			continue
		}
		switch {
		case a.Lugar != "" && a.Anio > 0:
			partes = append(partes, fmt.Sprintf("%s (%d)", a.Lugar, a.Anio))
		case a.Lugar != "":
			partes = append(partes, a.Lugar)
		case a.Anio > 0:
			partes = append(partes, fmt.Sprintf("%d", a.Anio))
		}
	}
	return strings.Join(partes, "; ")
}

func nombreCompleto(c entity.Contacto) string {
	return strings.TrimSpace(strings.TrimSpace(c.Nombre) + " " + strings.TrimSpace(c.Apellido))
}

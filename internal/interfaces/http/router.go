package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/catamarca-comercio/registro-exportadores/internal/application/auth"
	"github.com/catamarca-comercio/registro-exportadores/internal/application/autorizacion"
	"github.com/catamarca-comercio/registro-exportadores/internal/application/consulta"
	"github.com/catamarca-comercio/registro-exportadores/internal/application/empresa"
	"github.com/catamarca-comercio/registro-exportadores/internal/application/matriz"
	"github.com/catamarca-comercio/registro-exportadores/internal/application/referencia"
	"github.com/catamarca-comercio/registro-exportadores/internal/application/solicitud"
	"github.com/catamarca-comercio/registro-exportadores/internal/application/usuario"
	"github.com/catamarca-comercio/registro-exportadores/internal/domain/entity"
	"github.com/catamarca-comercio/registro-exportadores/internal/domain/repository"
	"github.com/catamarca-comercio/registro-exportadores/internal/infrastructure/storage"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	SolicitudUC *solicitud.UseCase
	EmpresaUC   *empresa.UseCase
	ConsultaUC  *consulta.UseCase
	MatrizUC    *matriz.UseCase
	UsuarioUC   *usuario.UseCase
	RefUC       *referencia.UseCase
	Auditoria   repository.AuditoriaRepository
	Usuarios    repository.UsuarioRepository
	Gate        *autorizacion.Gate
	PDF         consulta.PadronPDFGenerator
	Archivos    *storage.Local
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	authHandler := NewAuthHandler(deps.AuthUC)
	solicitudHandler := NewSolicitudHandler(deps.SolicitudUC, deps.Archivos)
	empresaHandler := NewEmpresaHandler(deps.ConsultaUC, deps.EmpresaUC, deps.Gate, deps.PDF)
	matrizHandler := NewMatrizHandler(deps.MatrizUC)
	usuarioHandler := NewUsuarioHandler(deps.UsuarioUC)
	refHandler := NewReferenciaHandler(deps.RefUC)
	auditoriaHandler := NewAuditoriaHandler(deps.Auditoria)
	dashboardHandler := NewDashboardHandler(deps.ConsultaUC)

	// Público: registro de solicitudes, confirmación de correo, login,
	// recuperación de contraseña y la taxonomía de rubros del formulario.
	api.Post("/auth/login", authHandler.Login)
	api.Post("/auth/recuperar", authHandler.SolicitarReset)
	api.Post("/auth/reset", authHandler.ResetClave)
	api.Post("/solicitudes", solicitudHandler.Registrar)
	api.Post("/solicitudes/:id/confirmar_email", solicitudHandler.ConfirmarEmail)
	api.Get("/rubros", refHandler.ListarRubros)

	// Protegido (requiere Bearer Token y cuenta activa).
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.Usuarios))

	protected.Post("/auth/cambiar-clave", authHandler.CambiarClave)

	// Solicitudes pendientes y su ciclo de revisión. La lectura y la
	// revisión piden ver pendientes; la resolución pide gestión.
	verPendientes := RequiereCapacidad(deps.Gate, entity.CapVerPendientes)
	solicitudes := protected.Group("/solicitudes")
	solicitudes.Get("/", verPendientes, solicitudHandler.Listar)
	solicitudes.Get("/:id", verPendientes, solicitudHandler.Obtener)
	solicitudes.Post("/:id/revision", verPendientes, solicitudHandler.TomarRevision)
	solicitudes.Post("/:id/pendiente", verPendientes, solicitudHandler.DevolverPendiente)
	solicitudes.Post("/:id/aprobar", RequiereCapacidad(deps.Gate, entity.CapGestionarUsuarios), solicitudHandler.Aprobar)
	solicitudes.Post("/:id/rechazar", RequiereCapacidad(deps.Gate, entity.CapGestionarUsuarios), solicitudHandler.Rechazar)

	// Padrón aprobado. La visibilidad por rol se resuelve en el caso de
	// uso; la edición carga la empresa y consulta la regla de dueño.
	empresas := protected.Group("/empresas")
	empresas.Post("/", RequiereCapacidad(deps.Gate, entity.CapCrearEmpresa), empresaHandler.Crear)
	empresas.Get("/aprobadas", empresaHandler.Listar)
	empresas.Get("/aprobadas/exportar_pdf", RequiereCapacidad(deps.Gate, entity.CapExportar), empresaHandler.ExportarPDF)
	empresas.Get("/:id", empresaHandler.Detalle)
	empresas.Put("/:id", empresaHandler.Actualizar)
	empresas.Delete("/:id", RequiereCapacidad(deps.Gate, entity.CapEliminarEmpresa), empresaHandler.Eliminar)

	empresas.Get("/:id/productos", empresaHandler.ListarProductos)
	empresas.Post("/:id/productos", empresaHandler.AgregarProducto)
	empresas.Put("/:id/productos/:productoId", empresaHandler.ActualizarProducto)
	empresas.Delete("/:id/productos/:productoId", empresaHandler.EliminarProducto)

	empresas.Get("/:id/servicios", empresaHandler.ListarServicios)
	empresas.Post("/:id/servicios", empresaHandler.AgregarServicio)
	empresas.Delete("/:id/servicios/:servicioId", empresaHandler.EliminarServicio)

	// Matriz de clasificación exportadora.
	matrizGroup := protected.Group("/matriz", RequiereCapacidad(deps.Gate, entity.CapVerMatriz))
	matrizGroup.Get("/empresa/:id", matrizHandler.Obtener)
	matrizGroup.Get("/calcular-puntajes/:id", matrizHandler.Calcular)
	matrizGroup.Post("/clasificar/:id", RequiereCapacidad(deps.Gate, entity.CapAprobar), matrizHandler.Clasificar)
	matrizGroup.Post("/", RequiereCapacidad(deps.Gate, entity.CapAccederAdmin), matrizHandler.CargaManual)

	// Tablero y reportes.
	protected.Get("/dashboard", RequiereCapacidad(deps.Gate, entity.CapVerReportes), dashboardHandler.Resumen)

	// Administración de cuentas.
	usuarios := protected.Group("/usuarios", RequiereCapacidad(deps.Gate, entity.CapVerUsuarios))
	usuarios.Get("/", usuarioHandler.Listar)
	usuarios.Get("/roles", usuarioHandler.ListarRoles)
	usuarios.Post("/", RequiereCapacidad(deps.Gate, entity.CapGestionarUsuarios), usuarioHandler.Crear)
	usuarios.Post("/:id/desactivar", RequiereCapacidad(deps.Gate, entity.CapGestionarUsuarios), usuarioHandler.Desactivar)
	usuarios.Post("/:id/activar", RequiereCapacidad(deps.Gate, entity.CapGestionarUsuarios), usuarioHandler.Activar)

	// Saneamiento de rubros y log de auditoría (solo administración).
	protected.Post("/rubros/sanear", RequiereCapacidad(deps.Gate, entity.CapAccederAdmin), refHandler.SanearRubros)
	protected.Get("/auditoria", RequiereCapacidad(deps.Gate, entity.CapVerAuditoria), auditoriaHandler.Listar)
}

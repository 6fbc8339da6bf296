package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/catamarca-comercio/registro-exportadores/internal/application/auditoria"
	"github.com/catamarca-comercio/registro-exportadores/internal/application/auth"
	"github.com/catamarca-comercio/registro-exportadores/internal/application/autorizacion"
	"github.com/catamarca-comercio/registro-exportadores/internal/application/consulta"
	"github.com/catamarca-comercio/registro-exportadores/internal/application/empresa"
	"github.com/catamarca-comercio/registro-exportadores/internal/application/matriz"
	"github.com/catamarca-comercio/registro-exportadores/internal/application/notificacion"
	"github.com/catamarca-comercio/registro-exportadores/internal/application/referencia"
	"github.com/catamarca-comercio/registro-exportadores/internal/application/solicitud"
	"github.com/catamarca-comercio/registro-exportadores/internal/application/usuario"
	"github.com/catamarca-comercio/registro-exportadores/internal/infrastructure/email"
	infrapdf "github.com/catamarca-comercio/registro-exportadores/internal/infrastructure/pdf"
	"github.com/catamarca-comercio/registro-exportadores/internal/infrastructure/postgres"
	"github.com/catamarca-comercio/registro-exportadores/internal/infrastructure/storage"
	httpRouter "github.com/catamarca-comercio/registro-exportadores/internal/interfaces/http"
	"github.com/catamarca-comercio/registro-exportadores/pkg/config"
	"github.com/catamarca-comercio/registro-exportadores/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	usuarioRepo := postgres.NewUsuarioRepository(pool)
	rolRepo := postgres.NewRolRepository(pool)
	solicitudRepo := postgres.NewSolicitudRepository(pool)
	empresaRepo := postgres.NewEmpresaRepository(pool)
	productoRepo := postgres.NewProductoRepository(pool)
	servicioRepo := postgres.NewServicioRepository(pool)
	matrizRepo := postgres.NewMatrizRepository(pool)
	referenciaRepo := postgres.NewReferenciaRepository(pool)
	auditoriaRepo := postgres.NewAuditoriaRepository(pool)
	notificacionRepo := postgres.NewNotificacionRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	auditor := auditoria.New(auditoriaRepo, log.Zerolog())
	gate := autorizacion.New(auditor)

	// Con SMTP deshabilitado los envíos quedan registrados como fallidos.
	var sender notificacion.EmailSender
	if s := email.NewGomailSender(cfg.SMTP); s != nil {
		sender = s
	}
	notificador := notificacion.New(notificacionRepo, sender, log.Zerolog())

	archivos := storage.NewLocal(cfg.Storage)
	pdfGenerator := infrapdf.NewGeneradorPadron()

	matrizUC := matriz.NewUseCase(empresaRepo, productoRepo, matrizRepo)
	solicitudUC := solicitud.NewUseCase(txRunner, solicitudRepo, matrizUC, notificador, auditor, log.Zerolog())
	empresaUC := empresa.NewUseCase(empresaRepo, productoRepo, servicioRepo, auditor)
	consultaUC := consulta.NewUseCase(
		empresaRepo, empresaRepo, productoRepo, servicioRepo,
		solicitudRepo, matrizRepo, referenciaRepo, auditoriaRepo,
		gate, log.Zerolog(),
	)
	usuarioUC := usuario.NewUseCase(usuarioRepo, rolRepo, auditor, log.Zerolog())
	referenciaUC := referencia.NewUseCase(txRunner, referenciaRepo, log.Zerolog())
	authUC := auth.NewAuthUseCase(usuarioRepo, solicitudRepo, notificador, auditor, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    25 * 1024 * 1024, // catálogos y logos adjuntos
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Registro de Exportadores de Catamarca",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		SolicitudUC: solicitudUC,
		EmpresaUC:   empresaUC,
		ConsultaUC:  consultaUC,
		MatrizUC:    matrizUC,
		UsuarioUC:   usuarioUC,
		RefUC:       referenciaUC,
		Auditoria:   auditoriaRepo,
		Usuarios:    usuarioRepo,
		Gate:        gate,
		PDF:         pdfGenerator,
		Archivos:    archivos,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

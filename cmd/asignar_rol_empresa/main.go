// asignar_rol_empresa asigna el rol Empresa a las cuentas históricas que
// quedaron sin rol: usuarios creados por el camino de registro público antes
// de que existiera la tabla de roles. No toca cuentas con rol asignado ni
// superusuarios.
//
// Uso: go run ./cmd/asignar_rol_empresa
// Lee la configuración de la base desde el entorno, igual que cmd/api.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/catamarca-comercio/registro-exportadores/internal/domain/entity"
	"github.com/catamarca-comercio/registro-exportadores/internal/infrastructure/postgres"
	"github.com/catamarca-comercio/registro-exportadores/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	var rolID int64
	err = pool.QueryRow(ctx, `SELECT id FROM roles WHERE nombre = $1`, entity.RolEmpresa).Scan(&rolID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Buscar rol %s: %v\n", entity.RolEmpresa, err)
		os.Exit(1)
	}

	// Solo cuentas sin rol que sean dueñas de al menos una solicitud: así no
	// se pisa a cuentas internas creadas a mano sin rol por error de carga.
	tag, err := pool.Exec(ctx, `
		UPDATE usuarios
		SET rol_id = $1, fecha_actualizacion = NOW()
		WHERE rol_id IS NULL
		  AND es_superusuario = FALSE
		  AND id IN (SELECT DISTINCT usuario_id FROM solicitudes)`, rolID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Asignar rol: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Rol %s asignado a %d cuentas\n", entity.RolEmpresa, tag.RowsAffected())
}

package postgres

import (
	"context"
	"fmt"

	"github.com/catamarca-comercio/registro-exportadores/internal/domain"
	"github.com/catamarca-comercio/registro-exportadores/internal/domain/entity"
	"github.com/catamarca-comercio/registro-exportadores/internal/domain/repository"
)

var _ repository.UsuarioRepository = (*UsuarioRepo)(nil)

// UsuarioRepo implementación del puerto UsuarioRepository sobre PostgreSQL.
type UsuarioRepo struct {
	q Querier
}

// NewUsuarioRepository construye el adaptador. Pasar pool o tx (Querier).
func NewUsuarioRepository(q Querier) *UsuarioRepo {
	return &UsuarioRepo{q: q}
}

const columnasUsuario = `
	u.id, u.email, u.clave_hash, u.rol_id, u.es_superusuario, u.debe_cambiar_clave,
	u.token_recuperacion, u.token_expira, u.activo, u.fecha_creacion, u.fecha_actualizacion,
	r.id, r.nombre, r.capacidades, r.nivel_acceso`

// Create persiste un nuevo usuario.
func (r *UsuarioRepo) Create(ctx context.Context, u *entity.Usuario) error {
	query := `
		INSERT INTO usuarios (id, email, clave_hash, rol_id, es_superusuario, debe_cambiar_clave,
			token_recuperacion, token_expira, activo, fecha_creacion, fecha_actualizacion)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		u.ID, u.Email, u.ClaveHash, u.RolID, u.EsSuperusuario, u.DebeCambiarClave,
		u.TokenRecuperacion, u.TokenExpira, u.Activo, u.FechaCreacion, u.FechaActualizacion,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailYaRegistrado
		}
		return fmt.Errorf("insert usuario: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID, con su rol cargado.
func (r *UsuarioRepo) GetByID(ctx context.Context, id string) (*entity.Usuario, error) {
	return r.buscar(ctx, "u.id = $1", id)
}

// GetByEmail obtiene un usuario por email.
func (r *UsuarioRepo) GetByEmail(ctx context.Context, email string) (*entity.Usuario, error) {
	return r.buscar(ctx, "u.email = $1", email)
}

// GetByTokenRecuperacion obtiene el usuario dueño de un token de reset
// vigente o vencido; el caso de uso decide qué hacer con el vencimiento.
func (r *UsuarioRepo) GetByTokenRecuperacion(ctx context.Context, token string) (*entity.Usuario, error) {
	if token == "" {
		return nil, nil
	}
	return r.buscar(ctx, "u.token_recuperacion = $1", token)
}

func (r *UsuarioRepo) buscar(ctx context.Context, cond string, arg any) (*entity.Usuario, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM usuarios u
		LEFT JOIN roles r ON r.id = u.rol_id
		WHERE %s
		LIMIT 1`, columnasUsuario, cond)
	u, err := scanUsuario(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get usuario: %w", err)
	}
	return u, nil
}

// Update actualiza un usuario.
func (r *UsuarioRepo) Update(ctx context.Context, u *entity.Usuario) error {
	query := `
		UPDATE usuarios SET email = $2, clave_hash = $3, rol_id = $4, es_superusuario = $5,
			debe_cambiar_clave = $6, token_recuperacion = $7, token_expira = $8, activo = $9,
			fecha_actualizacion = $10
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		u.ID, u.Email, u.ClaveHash, u.RolID, u.EsSuperusuario,
		u.DebeCambiarClave, u.TokenRecuperacion, u.TokenExpira, u.Activo,
		u.FechaActualizacion,
	)
	if err != nil {
		return fmt.Errorf("update usuario: %w", err)
	}
	return nil
}

// List devuelve usuarios con paginación, los más nuevos primero.
func (r *UsuarioRepo) List(ctx context.Context, limit, offset int) ([]*entity.Usuario, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM usuarios u
		LEFT JOIN roles r ON r.id = u.rol_id
		ORDER BY u.fecha_creacion DESC
		LIMIT $1 OFFSET $2`, columnasUsuario)
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list usuarios: %w", err)
	}
	defer rows.Close()

	var list []*entity.Usuario
	for rows.Next() {
		u, err := scanUsuario(rows)
		if err != nil {
			return nil, fmt.Errorf("scan usuario: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

type filaScanner interface {
	Scan(dest ...any) error
}

func scanUsuario(row filaScanner) (*entity.Usuario, error) {
	var (
		u              entity.Usuario
		rolID          *int64
		rolNombre      *string
		rolCapacidades *int64
		rolNivel       *int
	)
	err := row.Scan(
		&u.ID, &u.Email, &u.ClaveHash, &u.RolID, &u.EsSuperusuario, &u.DebeCambiarClave,
		&u.TokenRecuperacion, &u.TokenExpira, &u.Activo, &u.FechaCreacion, &u.FechaActualizacion,
		&rolID, &rolNombre, &rolCapacidades, &rolNivel,
	)
	if err != nil {
		return nil, err
	}
	if rolID != nil {
		u.Rol = &entity.Rol{
			ID:          *rolID,
			Nombre:      *rolNombre,
			Capacidades: entity.Capacidad(*rolCapacidades),
			NivelAcceso: *rolNivel,
		}
	}
	return &u, nil
}

var _ repository.RolRepository = (*RolRepo)(nil)

// RolRepo implementación del puerto RolRepository sobre PostgreSQL.
type RolRepo struct {
	q Querier
}

// NewRolRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRolRepository(q Querier) *RolRepo {
	return &RolRepo{q: q}
}

// GetByID obtiene un rol por ID.
func (r *RolRepo) GetByID(ctx context.Context, id int64) (*entity.Rol, error) {
	return r.buscar(ctx, "id = $1", id)
}

// GetByNombre obtiene un rol por nombre.
func (r *RolRepo) GetByNombre(ctx context.Context, nombre string) (*entity.Rol, error) {
	return r.buscar(ctx, "nombre = $1", nombre)
}

func (r *RolRepo) buscar(ctx context.Context, cond string, arg any) (*entity.Rol, error) {
	query := fmt.Sprintf(`SELECT id, nombre, capacidades, nivel_acceso FROM roles WHERE %s`, cond)
	var rol entity.Rol
	var capacidades int64
	err := r.q.QueryRow(ctx, query, arg).Scan(&rol.ID, &rol.Nombre, &capacidades, &rol.NivelAcceso)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get rol: %w", err)
	}
	rol.Capacidades = entity.Capacidad(capacidades)
	return &rol, nil
}

// List devuelve todos los roles ordenados por nivel de acceso.
func (r *RolRepo) List(ctx context.Context) ([]*entity.Rol, error) {
	rows, err := r.q.Query(ctx, `SELECT id, nombre, capacidades, nivel_acceso FROM roles ORDER BY nivel_acceso DESC`)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()

	var list []*entity.Rol
	for rows.Next() {
		var rol entity.Rol
		var capacidades int64
		if err := rows.Scan(&rol.ID, &rol.Nombre, &capacidades, &rol.NivelAcceso); err != nil {
			return nil, fmt.Errorf("scan rol: %w", err)
		}
		rol.Capacidades = entity.Capacidad(capacidades)
		list = append(list, &rol)
	}
	return list, rows.Err()
}

// Create persiste un rol (solo lo usa el seed inicial).
func (r *RolRepo) Create(ctx context.Context, rol *entity.Rol) error {
	query := `
		INSERT INTO roles (nombre, capacidades, nivel_acceso)
		VALUES ($1, $2, $3)
		RETURNING id`
	err := r.q.QueryRow(ctx, query, rol.Nombre, int64(rol.Capacidades), rol.NivelAcceso).Scan(&rol.ID)
	if err != nil {
		return fmt.Errorf("insert rol: %w", err)
	}
	return nil
}

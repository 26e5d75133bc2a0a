package repo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/mherrera-dev/refaccionaria/internal/models"
)

type PostgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) GetByUsername(usuario string) (models.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var u models.User
	err := r.db.QueryRowContext(ctx,
		`SELECT id, usuario, password_hash, nombre, created_at FROM usuarios WHERE usuario = $1`, usuario).
		Scan(&u.ID, &u.Usuario, &u.PasswordHash, &u.Nombre, &u.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	return u, err
}

func (r *PostgresUserRepository) GetByID(id int) (models.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var u models.User
	err := r.db.QueryRowContext(ctx,
		`SELECT id, usuario, password_hash, nombre, created_at FROM usuarios WHERE id = $1`, id).
		Scan(&u.ID, &u.Usuario, &u.PasswordHash, &u.Nombre, &u.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	return u, err
}

func (r *PostgresUserRepository) Create(u models.User) (models.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := r.db.QueryRowContext(ctx,
		`INSERT INTO usuarios (usuario, password_hash, nombre) VALUES ($1, $2, $3) RETURNING id, created_at`,
		u.Usuario, u.PasswordHash, u.Nombre).
		Scan(&u.ID, &u.CreatedAt)

	if isUniqueViolation(err) {
		return models.User{}, ErrDuplicatedValueUnique
	}
	return u, err
}

func (r *PostgresUserRepository) Count() (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var total int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM usuarios`).Scan(&total)
	return total, err
}

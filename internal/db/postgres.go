package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Connect opens the database and verifies the connection.
func Connect(databaseURL string) (*sql.DB, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("database URL is not configured")
	}

	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS usuarios (
		id SERIAL PRIMARY KEY,
		usuario TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		nombre TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS productos (
		id SERIAL PRIMARY KEY,
		nombre TEXT NOT NULL,
		categoria TEXT NOT NULL,
		precio DOUBLE PRECISION NOT NULL,
		stock INTEGER NOT NULL DEFAULT 0,
		codigo_sku TEXT UNIQUE NOT NULL,
		descripcion TEXT NOT NULL DEFAULT '',
		estado TEXT NOT NULL DEFAULT 'activo',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS ventas (
		id SERIAL PRIMARY KEY,
		producto_id INTEGER NOT NULL REFERENCES productos(id),
		cantidad INTEGER NOT NULL,
		precio_unitario DOUBLE PRECISION NOT NULL,
		precio_total DOUBLE PRECISION NOT NULL,
		fecha TIMESTAMPTZ NOT NULL DEFAULT now(),
		usuario_id INTEGER REFERENCES usuarios(id)
	)`,
}

// InitSchema creates the tables if they do not exist. Safe to run on every
// startup.
func InitSchema(db *sql.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

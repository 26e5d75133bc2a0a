package repo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/mherrera-dev/refaccionaria/internal/models"
)

const productColumns = `id, nombre, categoria, precio, stock, codigo_sku, descripcion, estado, created_at, updated_at`

type PostgresProductRepository struct {
	db *sql.DB
}

func NewPostgresProductRepository(db *sql.DB) *PostgresProductRepository {
	return &PostgresProductRepository{db: db}
}

func scanProduct(row interface{ Scan(dest ...any) error }) (models.Product, error) {
	var p models.Product
	err := row.Scan(&p.ID, &p.Nombre, &p.Categoria, &p.Precio, &p.Stock,
		&p.CodigoSKU, &p.Descripcion, &p.Estado, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (r *PostgresProductRepository) GetAll(onlyActive bool) ([]models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM productos`
	if onlyActive {
		query += ` WHERE estado = 'activo'`
	}
	query += ` ORDER BY nombre ASC`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectProducts(rows)
}

func (r *PostgresProductRepository) Search(term string) ([]models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM productos
		WHERE (nombre ILIKE $1 OR categoria ILIKE $1 OR codigo_sku ILIKE $1)
		AND estado = 'activo'
		ORDER BY nombre ASC`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, "%"+term+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectProducts(rows)
}

func collectProducts(rows *sql.Rows) ([]models.Product, error) {
	var products []models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *PostgresProductRepository) GetByID(id int) (models.Product, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	p, err := scanProduct(r.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM productos WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	return p, err
}

func (r *PostgresProductRepository) Create(p models.Product) (models.Product, error) {
	query := `INSERT INTO productos (nombre, categoria, precio, stock, codigo_sku, descripcion, estado, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := r.db.QueryRowContext(ctx, query, p.Nombre, p.Categoria, p.Precio, p.Stock,
		p.CodigoSKU, p.Descripcion, p.Estado, p.CreatedAt, p.UpdatedAt).Scan(&p.ID)
	if isUniqueViolation(err) {
		return models.Product{}, ErrDuplicatedValueUnique
	}
	return p, err
}

func (r *PostgresProductRepository) Update(p models.Product) (models.Product, error) {
	query := `UPDATE productos SET nombre = $1, categoria = $2, precio = $3, stock = $4,
		codigo_sku = $5, descripcion = $6, updated_at = $7 WHERE id = $8`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query, p.Nombre, p.Categoria, p.Precio, p.Stock,
		p.CodigoSKU, p.Descripcion, p.UpdatedAt, p.ID)
	if isUniqueViolation(err) {
		return models.Product{}, ErrDuplicatedValueUnique
	}
	if err != nil {
		return models.Product{}, err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return models.Product{}, ErrProductNotFound
	}
	return r.GetByID(p.ID)
}

func (r *PostgresProductRepository) Deactivate(id int) error {
	query := `UPDATE productos SET estado = 'inactivo', updated_at = $1 WHERE id = $2`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

package repo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/mherrera-dev/refaccionaria/internal/models"
)

const saleColumns = `v.id, v.producto_id, v.cantidad, v.precio_unitario, v.precio_total, v.fecha, v.usuario_id, p.nombre, p.codigo_sku`

type PostgresSaleRepository struct {
	db *sql.DB
}

func NewPostgresSaleRepository(db *sql.DB) *PostgresSaleRepository {
	return &PostgresSaleRepository{db: db}
}

func scanSale(row interface{ Scan(dest ...any) error }) (models.Sale, error) {
	var s models.Sale
	err := row.Scan(&s.ID, &s.ProductoID, &s.Cantidad, &s.PrecioUnitario,
		&s.PrecioTotal, &s.Fecha, &s.UsuarioID, &s.ProductoNombre, &s.CodigoSKU)
	return s, err
}

func (r *PostgresSaleRepository) GetAll() ([]models.Sale, error) {
	query := `SELECT ` + saleColumns + `
		FROM ventas v
		INNER JOIN productos p ON v.producto_id = p.id
		ORDER BY v.fecha DESC`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sales []models.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, err
		}
		sales = append(sales, s)
	}
	return sales, rows.Err()
}

func (r *PostgresSaleRepository) GetByID(id int) (models.Sale, error) {
	query := `SELECT ` + saleColumns + `
		FROM ventas v
		INNER JOIN productos p ON v.producto_id = p.id
		WHERE v.id = $1`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	s, err := scanSale(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Sale{}, ErrSaleNotFound
	}
	return s, err
}

// Create inserts the sale and decrements the product stock inside a single
// transaction. The decrement is conditional on the product being active and
// holding enough stock, so two concurrent sales can never drive stock below
// zero: the second one sees zero rows affected and the transaction rolls back.
func (r *PostgresSaleRepository) Create(s models.Sale) (models.Sale, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Sale{}, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE productos SET stock = stock - $1, updated_at = $2
		 WHERE id = $3 AND estado = 'activo' AND stock >= $1`,
		s.Cantidad, time.Now().UTC(), s.ProductoID)
	if err != nil {
		return models.Sale{}, err
	}

	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return models.Sale{}, r.classifyRejection(ctx, tx, s)
	}

	err = tx.QueryRowContext(ctx,
		`INSERT INTO ventas (producto_id, cantidad, precio_unitario, precio_total, fecha, usuario_id)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		s.ProductoID, s.Cantidad, s.PrecioUnitario, s.PrecioTotal, s.Fecha, s.UsuarioID).
		Scan(&s.ID)
	if err != nil {
		return models.Sale{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.Sale{}, err
	}
	return r.GetByID(s.ID)
}

// classifyRejection turns a zero-row conditional decrement into a typed error.
func (r *PostgresSaleRepository) classifyRejection(ctx context.Context, tx *sql.Tx, s models.Sale) error {
	var estado models.ProductStatus
	var stock int
	err := tx.QueryRowContext(ctx,
		`SELECT estado, stock FROM productos WHERE id = $1`, s.ProductoID).
		Scan(&estado, &stock)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrProductNotFound
	}
	if err != nil {
		return err
	}
	if estado != models.ProductActive {
		return ErrProductInactive
	}
	return ErrInsufficientStock
}

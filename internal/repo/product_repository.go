package repo

import "github.com/mherrera-dev/refaccionaria/internal/models"

// ProductRepository defines the interface for product data operations.
type ProductRepository interface {
	// GetAll returns products ordered by nombre. With onlyActive it skips
	// deactivated products.
	GetAll(onlyActive bool) ([]models.Product, error)
	// Search returns active products whose nombre, categoria or SKU contains
	// the term, ordered by nombre.
	Search(term string) ([]models.Product, error)
	GetByID(id int) (models.Product, error)
	Create(p models.Product) (models.Product, error)
	Update(p models.Product) (models.Product, error)
	// Deactivate soft-deletes a product. The row stays retrievable by id.
	Deactivate(id int) error
}

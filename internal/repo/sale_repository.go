package repo

import "github.com/mherrera-dev/refaccionaria/internal/models"

// SaleRepository defines the interface for sale data operations.
type SaleRepository interface {
	// GetAll returns all sales joined with product display fields, newest
	// first.
	GetAll() ([]models.Sale, error)
	GetByID(id int) (models.Sale, error)
	// Create inserts the sale and decrements the product stock as one atomic
	// operation. It fails with ErrProductNotFound, ErrProductInactive or
	// ErrInsufficientStock without writing anything; stock can never go
	// negative, even under concurrent requests.
	Create(s models.Sale) (models.Sale, error)
}

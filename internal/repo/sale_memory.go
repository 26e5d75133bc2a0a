package repo

import (
	"sort"
	"sync"

	"github.com/mherrera-dev/refaccionaria/internal/models"
)

// InMemorySaleRepository is an in-memory implementation of SaleRepository.
// It shares the product repository so sale creation can decrement stock and
// join product display fields, mirroring the postgres implementation.
type InMemorySaleRepository struct {
	mu       sync.Mutex
	sales    []models.Sale
	nextID   int
	products *InMemoryProductRepository
}

func NewInMemorySaleRepository(products *InMemoryProductRepository) *InMemorySaleRepository {
	return &InMemorySaleRepository{nextID: 1, products: products}
}

func (r *InMemorySaleRepository) GetAll() ([]models.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.Sale, len(r.sales))
	copy(out, r.sales)
	sort.Slice(out, func(i, j int) bool {
		return out[i].Fecha.After(out[j].Fecha)
	})
	return out, nil
}

func (r *InMemorySaleRepository) GetByID(id int) (models.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range r.sales {
		if s.ID == id {
			return s, nil
		}
	}
	return models.Sale{}, ErrSaleNotFound
}

func (r *InMemorySaleRepository) Create(s models.Sale) (models.Sale, error) {
	if err := r.products.decrementStock(s.ProductoID, s.Cantidad); err != nil {
		return models.Sale{}, err
	}

	product, err := r.products.GetByID(s.ProductoID)
	if err != nil {
		return models.Sale{}, err
	}
	s.ProductoNombre = product.Nombre
	s.CodigoSKU = product.CodigoSKU

	r.mu.Lock()
	defer r.mu.Unlock()
	s.ID = r.nextID
	r.nextID++
	r.sales = append(r.sales, s)
	return s, nil
}

func (r *InMemorySaleRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sales = nil
	r.nextID = 1
}

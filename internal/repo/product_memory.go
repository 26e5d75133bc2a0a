package repo

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/mherrera-dev/refaccionaria/internal/models"
)

// InMemoryProductRepository is an in-memory implementation of
// ProductRepository.
type InMemoryProductRepository struct {
	mu       sync.Mutex
	products []models.Product
	nextID   int
}

func NewInMemoryProductRepository() *InMemoryProductRepository {
	return &InMemoryProductRepository{nextID: 1}
}

func sortByNombre(products []models.Product) {
	sort.Slice(products, func(i, j int) bool {
		return products[i].Nombre < products[j].Nombre
	})
}

func (r *InMemoryProductRepository) GetAll(onlyActive bool) ([]models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Product
	for _, p := range r.products {
		if onlyActive && !p.Active() {
			continue
		}
		out = append(out, p)
	}
	sortByNombre(out)
	return out, nil
}

func (r *InMemoryProductRepository) Search(term string) ([]models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	term = strings.ToLower(term)
	var out []models.Product
	for _, p := range r.products {
		if !p.Active() {
			continue
		}
		if strings.Contains(strings.ToLower(p.Nombre), term) ||
			strings.Contains(strings.ToLower(p.Categoria), term) ||
			strings.Contains(strings.ToLower(p.CodigoSKU), term) {
			out = append(out, p)
		}
	}
	sortByNombre(out)
	return out, nil
}

func (r *InMemoryProductRepository) GetByID(id int) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.getByIDLocked(id)
}

func (r *InMemoryProductRepository) getByIDLocked(id int) (models.Product, error) {
	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

func (r *InMemoryProductRepository) Create(p models.Product) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.products {
		if existing.CodigoSKU == p.CodigoSKU {
			return models.Product{}, ErrDuplicatedValueUnique
		}
	}

	p.ID = r.nextID
	r.nextID++
	r.products = append(r.products, p)
	return p, nil
}

func (r *InMemoryProductRepository) Update(p models.Product) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Existence first: a missing row can never trip the unique constraint,
	// matching the postgres implementation.
	for i, existing := range r.products {
		if existing.ID != p.ID {
			continue
		}
		for _, other := range r.products {
			if other.CodigoSKU == p.CodigoSKU && other.ID != p.ID {
				return models.Product{}, ErrDuplicatedValueUnique
			}
		}
		p.Estado = existing.Estado
		p.CreatedAt = existing.CreatedAt
		r.products[i] = p
		return p, nil
	}
	return models.Product{}, ErrProductNotFound
}

func (r *InMemoryProductRepository) Deactivate(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.products {
		if p.ID == id {
			r.products[i].Estado = models.ProductInactive
			r.products[i].UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return ErrProductNotFound
}

// decrementStock applies the conditional decrement used by sale creation.
func (r *InMemoryProductRepository) decrementStock(id, cantidad int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.products {
		if p.ID != id {
			continue
		}
		if !p.Active() {
			return ErrProductInactive
		}
		if p.Stock < cantidad {
			return ErrInsufficientStock
		}
		r.products[i].Stock -= cantidad
		return nil
	}
	return ErrProductNotFound
}

func (r *InMemoryProductRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products = nil
	r.nextID = 1
}

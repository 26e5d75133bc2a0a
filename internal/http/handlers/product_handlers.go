package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mherrera-dev/refaccionaria/internal/models"
	"github.com/mherrera-dev/refaccionaria/internal/repo"
)

const msgProductNotFound = "Producto no encontrado"

// productID reads the {id} path parameter. A non-numeric id can never match
// a row, so it is reported as not found.
func productID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	return id, err == nil
}

// ListProductsHandler lists products, optionally filtered.
// GET /productos?buscar=&soloActivos=
func (s *Server) ListProductsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var products []models.Product
	var err error
	if buscar := q.Get("buscar"); buscar != "" {
		products, err = s.products.Search(buscar)
	} else {
		products, err = s.products.GetAll(q.Get("soloActivos") == "true")
	}
	if err != nil {
		s.log.Error().Err(err).Msg("could not fetch products")
		s.fail(w, errInternal, "Error al obtener productos")
		return
	}

	resp := ProductsResponse{Success: true, Productos: make([]ProductResponse, len(products))}
	for i, p := range products {
		resp.Productos[i] = toProductResponse(p)
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// GetProductByIDHandler returns one product, active or not.
// GET /productos/{id}
func (s *Server) GetProductByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(r)
	if !ok {
		s.fail(w, errNotFound, msgProductNotFound)
		return
	}

	product, err := s.products.GetByID(id)
	if errors.Is(err, repo.ErrProductNotFound) {
		s.fail(w, errNotFound, msgProductNotFound)
		return
	}
	if err != nil {
		s.log.Error().Err(err).Int("id", id).Msg("could not fetch product")
		s.fail(w, errInternal, "Error al obtener producto")
		return
	}

	s.writeJSON(w, http.StatusOK, ProductEnvelope{Success: true, Producto: toProductResponse(product)})
}

// CreateProductHandler adds a product to the catalog.
// POST /productos
func (s *Server) CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := s.readJSON(w, r, &req); err != nil {
		s.fail(w, errValidation, msgProductFieldsRequired)
		return
	}

	in, msg := parseProductRequest(req)
	if msg != "" {
		s.fail(w, errValidation, msg)
		return
	}

	now := time.Now().UTC()
	created, err := s.products.Create(models.Product{
		Nombre:      in.Nombre,
		Categoria:   in.Categoria,
		Precio:      in.Precio,
		Stock:       in.Stock,
		CodigoSKU:   in.CodigoSKU,
		Descripcion: in.Descripcion,
		Estado:      models.ProductActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		if errors.Is(err, repo.ErrDuplicatedValueUnique) {
			s.fail(w, errConflict, "El código SKU ya existe")
			return
		}
		s.log.Error().Err(err).Msg("could not create product")
		s.fail(w, errInternal, "Error al crear producto")
		return
	}

	s.writeJSON(w, http.StatusCreated, ProductEnvelope{
		Success:  true,
		Message:  "Producto creado exitosamente",
		Producto: toProductResponse(created),
	})
}

// UpdateProductHandler overwrites all mutable fields of a product.
// PUT /productos/{id}
func (s *Server) UpdateProductHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(r)
	if !ok {
		s.fail(w, errNotFound, msgProductNotFound)
		return
	}

	if _, err := s.products.GetByID(id); err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			s.fail(w, errNotFound, msgProductNotFound)
			return
		}
		s.log.Error().Err(err).Int("id", id).Msg("could not fetch product")
		s.fail(w, errInternal, "Error al actualizar producto")
		return
	}

	var req ProductRequest
	if err := s.readJSON(w, r, &req); err != nil {
		s.fail(w, errValidation, msgProductFieldsRequired)
		return
	}

	in, msg := parseProductRequest(req)
	if msg != "" {
		s.fail(w, errValidation, msg)
		return
	}

	updated, err := s.products.Update(models.Product{
		ID:          id,
		Nombre:      in.Nombre,
		Categoria:   in.Categoria,
		Precio:      in.Precio,
		Stock:       in.Stock,
		CodigoSKU:   in.CodigoSKU,
		Descripcion: in.Descripcion,
		UpdatedAt:   time.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, repo.ErrDuplicatedValueUnique) {
			s.fail(w, errConflict, "El código SKU ya existe")
			return
		}
		if errors.Is(err, repo.ErrProductNotFound) {
			s.fail(w, errNotFound, msgProductNotFound)
			return
		}
		s.log.Error().Err(err).Int("id", id).Msg("could not update product")
		s.fail(w, errInternal, "Error al actualizar producto")
		return
	}

	s.writeJSON(w, http.StatusOK, ProductEnvelope{
		Success:  true,
		Message:  "Producto actualizado exitosamente",
		Producto: toProductResponse(updated),
	})
}

// DeleteProductHandler deactivates a product. The row is kept and stays
// retrievable by id.
// DELETE /productos/{id}
func (s *Server) DeleteProductHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(r)
	if !ok {
		s.fail(w, errNotFound, msgProductNotFound)
		return
	}

	if _, err := s.products.GetByID(id); err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			s.fail(w, errNotFound, msgProductNotFound)
			return
		}
		s.log.Error().Err(err).Int("id", id).Msg("could not fetch product")
		s.fail(w, errInternal, "Error al eliminar producto")
		return
	}

	if err := s.products.Deactivate(id); err != nil {
		// The row existed a moment ago; losing it now is a store problem,
		// not a caller problem.
		s.log.Error().Err(err).Int("id", id).Msg("could not deactivate product")
		s.fail(w, errInternal, "Error al eliminar producto")
		return
	}

	s.writeJSON(w, http.StatusOK, MessageResponse{
		Success: true,
		Message: "Producto eliminado exitosamente",
	})
}

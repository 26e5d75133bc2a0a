package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/mherrera-dev/refaccionaria/internal/models"
	"github.com/mherrera-dev/refaccionaria/internal/repo"
)

// ListSalesHandler returns all sales with product display fields, newest
// first.
// GET /ventas
func (s *Server) ListSalesHandler(w http.ResponseWriter, r *http.Request) {
	sales, err := s.sales.GetAll()
	if err != nil {
		s.log.Error().Err(err).Msg("could not fetch sales")
		s.fail(w, errInternal, "Error al obtener ventas")
		return
	}

	resp := SalesResponse{Success: true, Ventas: make([]SaleResponse, len(sales))}
	for i, sale := range sales {
		resp.Ventas[i] = toSaleResponse(sale)
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// CreateSaleHandler registers a sale: it validates the quantity against the
// product's state and stock, snapshots the current price, and hands the
// insert plus the stock decrement to the repository as one atomic operation.
// POST /ventas
func (s *Server) CreateSaleHandler(w http.ResponseWriter, r *http.Request) {
	var req SaleRequest
	if err := s.readJSON(w, r, &req); err != nil {
		s.fail(w, errValidation, msgSaleFieldsRequired)
		return
	}

	if req.ProductoID == "" || req.Cantidad == "" {
		s.fail(w, errValidation, msgSaleFieldsRequired)
		return
	}

	productoID, err := strconv.Atoi(req.ProductoID.String())
	if err != nil {
		s.fail(w, errValidation, msgSaleFieldsRequired)
		return
	}

	cantidad, msg := parseCantidad(req.Cantidad.String())
	if msg != "" {
		s.fail(w, errValidation, msg)
		return
	}

	product, err := s.products.GetByID(productoID)
	if errors.Is(err, repo.ErrProductNotFound) {
		s.fail(w, errNotFound, msgProductNotFound)
		return
	}
	if err != nil {
		s.log.Error().Err(err).Int("producto_id", productoID).Msg("could not fetch product")
		s.fail(w, errInternal, "Error al registrar venta")
		return
	}

	if !product.Active() {
		s.fail(w, errValidation, "El producto no está disponible")
		return
	}
	if product.Stock < cantidad {
		s.fail(w, errValidation, fmt.Sprintf("Stock insuficiente. Stock disponible: %d", product.Stock))
		return
	}

	fecha := time.Now().UTC()
	if req.Fecha != "" {
		parsed, err := time.Parse(time.RFC3339, req.Fecha)
		if err != nil {
			s.fail(w, errValidation, "La fecha no es válida")
			return
		}
		fecha = parsed
	}

	sale := models.Sale{
		ProductoID:     productoID,
		Cantidad:       cantidad,
		PrecioUnitario: product.Precio,
		PrecioTotal:    product.Precio * float64(cantidad),
		Fecha:          fecha,
	}
	if sess, ok := s.currentSession(r); ok && sess.UserID != 0 {
		userID := sess.UserID
		sale.UsuarioID = &userID
	}

	created, err := s.sales.Create(sale)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrInsufficientStock):
			// A concurrent sale won the race; report the stock that is
			// actually left.
			stock := 0
			if current, ferr := s.products.GetByID(productoID); ferr == nil {
				stock = current.Stock
			}
			s.fail(w, errValidation, fmt.Sprintf("Stock insuficiente. Stock disponible: %d", stock))
		case errors.Is(err, repo.ErrProductInactive):
			s.fail(w, errValidation, "El producto no está disponible")
		case errors.Is(err, repo.ErrProductNotFound):
			s.fail(w, errNotFound, msgProductNotFound)
		default:
			s.log.Error().Err(err).Int("producto_id", productoID).Msg("could not register sale")
			s.fail(w, errInternal, "Error al registrar venta")
		}
		return
	}

	s.writeJSON(w, http.StatusCreated, SaleEnvelope{
		Success: true,
		Message: "Venta registrada exitosamente",
		Venta:   toSaleResponse(created),
	})
}

package handlers

import (
	"encoding/json"
	"time"

	"github.com/mherrera-dev/refaccionaria/internal/models"
)

type RegisterRequest struct {
	Usuario  string `json:"usuario"`
	Password string `json:"password"`
	Nombre   string `json:"nombre"`
}

type LoginRequest struct {
	Usuario  string `json:"usuario"`
	Password string `json:"password"`
}

// flexNumber accepts a JSON number or a string, the two forms the inventory
// and sales forms submit. Whether the value is actually numeric is decided by
// the validation step, which owns the error message.
type flexNumber string

func (n *flexNumber) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*n = flexNumber(s)
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(b, &num); err != nil {
		return err
	}
	*n = flexNumber(num.String())
	return nil
}

func (n flexNumber) String() string { return string(n) }

type ProductRequest struct {
	Nombre      string     `json:"nombre"`
	Categoria   string     `json:"categoria"`
	Precio      flexNumber `json:"precio"`
	Stock       flexNumber `json:"stock"`
	CodigoSKU   string     `json:"codigo_sku"`
	Descripcion string     `json:"descripcion"`
}

type SaleRequest struct {
	ProductoID flexNumber `json:"producto_id"`
	Cantidad   flexNumber `json:"cantidad"`
	Fecha      string     `json:"fecha"`
}

// MessageResponse is the uniform body for failures and message-only successes.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type UserPayload struct {
	ID      int    `json:"id"`
	Usuario string `json:"usuario"`
	Nombre  string `json:"nombre"`
}

type AuthResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	User    UserPayload `json:"user"`
}

type CheckUsersResponse struct {
	Success   bool `json:"success"`
	HasUsers  bool `json:"hasUsers"`
	UserCount int  `json:"userCount"`
}

type ProductResponse struct {
	ID          int     `json:"id"`
	Nombre      string  `json:"nombre"`
	Categoria   string  `json:"categoria"`
	Precio      float64 `json:"precio"`
	Stock       int     `json:"stock"`
	CodigoSKU   string  `json:"codigo_sku"`
	Descripcion string  `json:"descripcion"`
	Activo      bool    `json:"activo"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

type ProductsResponse struct {
	Success   bool              `json:"success"`
	Productos []ProductResponse `json:"productos"`
}

type ProductEnvelope struct {
	Success  bool            `json:"success"`
	Message  string          `json:"message,omitempty"`
	Producto ProductResponse `json:"producto"`
}

type SaleResponse struct {
	ID             int     `json:"id"`
	ProductoID     int     `json:"producto_id"`
	Cantidad       int     `json:"cantidad"`
	PrecioUnitario float64 `json:"precio_unitario"`
	PrecioTotal    float64 `json:"precio_total"`
	Fecha          string  `json:"fecha"`
	UsuarioID      *int    `json:"usuario_id"`
	ProductoNombre string  `json:"producto_nombre"`
	CodigoSKU      string  `json:"codigo_sku"`
}

type SalesResponse struct {
	Success bool           `json:"success"`
	Ventas  []SaleResponse `json:"ventas"`
}

type SaleEnvelope struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Venta   SaleResponse `json:"venta"`
}

func toUserPayload(u models.User) UserPayload {
	return UserPayload{ID: u.ID, Usuario: u.Usuario, Nombre: u.Nombre}
}

func toProductResponse(p models.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Nombre:      p.Nombre,
		Categoria:   p.Categoria,
		Precio:      p.Precio,
		Stock:       p.Stock,
		CodigoSKU:   p.CodigoSKU,
		Descripcion: p.Descripcion,
		Activo:      p.Active(),
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   p.UpdatedAt.Format(time.RFC3339),
	}
}

func toSaleResponse(s models.Sale) SaleResponse {
	return SaleResponse{
		ID:             s.ID,
		ProductoID:     s.ProductoID,
		Cantidad:       s.Cantidad,
		PrecioUnitario: s.PrecioUnitario,
		PrecioTotal:    s.PrecioTotal,
		Fecha:          s.Fecha.Format(time.RFC3339),
		UsuarioID:      s.UsuarioID,
		ProductoNombre: s.ProductoNombre,
		CodigoSKU:      s.CodigoSKU,
	}
}

package models

import "time"

// ProductStatus is the lifecycle state of a product. Deleting a product
// flips it to inactive; rows are never removed.
type ProductStatus string

const (
	ProductActive   ProductStatus = "activo"
	ProductInactive ProductStatus = "inactivo"
)

// Product represents an item in the store catalog.
type Product struct {
	ID          int           `json:"id"`
	Nombre      string        `json:"nombre"`
	Categoria   string        `json:"categoria"`
	Precio      float64       `json:"precio"`
	Stock       int           `json:"stock"`
	CodigoSKU   string        `json:"codigo_sku"`
	Descripcion string        `json:"descripcion"`
	Estado      ProductStatus `json:"estado"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

func (p Product) Active() bool {
	return p.Estado == ProductActive
}

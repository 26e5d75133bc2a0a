package models

import "time"

// Sale is an immutable record of a sold product. PrecioUnitario and
// PrecioTotal are snapshots taken at sale time; later price changes on the
// product never alter them.
type Sale struct {
	ID             int       `json:"id"`
	ProductoID     int       `json:"producto_id"`
	Cantidad       int       `json:"cantidad"`
	PrecioUnitario float64   `json:"precio_unitario"`
	PrecioTotal    float64   `json:"precio_total"`
	Fecha          time.Time `json:"fecha"`
	UsuarioID      *int      `json:"usuario_id"`

	// Joined product display fields.
	ProductoNombre string `json:"producto_nombre"`
	CodigoSKU      string `json:"codigo_sku"`
}

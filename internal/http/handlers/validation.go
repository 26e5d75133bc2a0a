package handlers

import (
	"strconv"
	"strings"
)

const (
	msgProductFieldsRequired = "Todos los campos requeridos deben ser proporcionados"
	msgProductNumbersInvalid = "Precio y stock deben ser números válidos"
	msgSaleFieldsRequired    = "Producto y cantidad son requeridos"
	msgCantidadInvalid       = "La cantidad debe ser un número mayor a 0"
)

// productInput is a validated, parsed product payload.
type productInput struct {
	Nombre      string
	Categoria   string
	Precio      float64
	Stock       int
	CodigoSKU   string
	Descripcion string
}

// parseProductRequest validates the create/update payload. It returns the
// parsed input and an empty message, or a message describing the rejection.
func parseProductRequest(req ProductRequest) (productInput, string) {
	in := productInput{
		Nombre:      strings.TrimSpace(req.Nombre),
		Categoria:   strings.TrimSpace(req.Categoria),
		CodigoSKU:   strings.TrimSpace(req.CodigoSKU),
		Descripcion: req.Descripcion,
	}

	if in.Nombre == "" || in.Categoria == "" || in.CodigoSKU == "" ||
		req.Precio == "" || req.Stock == "" {
		return productInput{}, msgProductFieldsRequired
	}

	precio, err := strconv.ParseFloat(req.Precio.String(), 64)
	if err != nil || precio < 0 {
		return productInput{}, msgProductNumbersInvalid
	}
	stock, err := strconv.Atoi(req.Stock.String())
	if err != nil || stock < 0 {
		return productInput{}, msgProductNumbersInvalid
	}

	in.Precio = precio
	in.Stock = stock
	return in, ""
}

// parseCantidad parses a sale quantity, which must be an integer greater
// than zero.
func parseCantidad(n string) (int, string) {
	cantidad, err := strconv.Atoi(n)
	if err != nil || cantidad <= 0 {
		return 0, msgCantidadInvalid
	}
	return cantidad, ""
}

package repo

import "errors"

// ErrUserNotFound is returned when a user is not found in the repository.
var ErrUserNotFound = errors.New("user not found")

// ErrProductNotFound is returned when a product is not found in the repository.
var ErrProductNotFound = errors.New("product not found")

// ErrSaleNotFound is returned when a sale is not found in the repository.
var ErrSaleNotFound = errors.New("sale not found")

// ErrDuplicatedValueUnique is returned when an insert or update violates a
// unique constraint (username, SKU).
var ErrDuplicatedValueUnique = errors.New("unique constraint violation")

// ErrProductInactive is returned when a sale targets a deactivated product.
var ErrProductInactive = errors.New("product is inactive")

// ErrInsufficientStock is returned when the requested quantity exceeds the
// product's current stock.
var ErrInsufficientStock = errors.New("insufficient stock")

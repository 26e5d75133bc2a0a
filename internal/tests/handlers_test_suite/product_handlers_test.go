package handlers_test_suite

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	handler "github.com/mherrera-dev/refaccionaria/internal/http/handlers"
)

func decodeProduct(t *testing.T, w *httptest.ResponseRecorder) handler.ProductResponse {
	t.Helper()
	var resp handler.ProductEnvelope
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding product response: %v", err)
	}
	return resp.Producto
}

func decodeProducts(t *testing.T, w *httptest.ResponseRecorder) []handler.ProductResponse {
	t.Helper()
	var resp handler.ProductsResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding products response: %v", err)
	}
	return resp.Productos
}

func TestCreateProductRoundTrip(t *testing.T) {
	r := setup()
	cookie := loginAsAdmin(r)

	w := createProduct(r, cookie, sampleProduct())
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d: %s", w.Code, w.Body.String())
	}
	created := decodeProduct(t, w)

	got := doJSON(r, http.MethodGet, fmt.Sprintf("/productos/%d", created.ID), nil, cookie)
	if got.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", got.Code)
	}
	fetched := decodeProduct(t, got)

	if fetched.Nombre != "Filtro de aceite" || fetched.Categoria != "Filtros" {
		t.Errorf("unexpected product: %+v", fetched)
	}
	if fetched.Precio != 120.50 {
		t.Errorf("expected precio 120.50, got %v", fetched.Precio)
	}
	if fetched.Stock != 10 {
		t.Errorf("expected stock 10, got %v", fetched.Stock)
	}
	if fetched.CodigoSKU != "F-001" {
		t.Errorf("expected SKU F-001, got %q", fetched.CodigoSKU)
	}
	if !fetched.Activo {
		t.Error("expected product to be active")
	}
}

func TestCreateProductAcceptsNumericStrings(t *testing.T) {
	r := setup()
	cookie := loginAsAdmin(r)

	payload := sampleProduct()
	payload["precio"] = "99.90"
	payload["stock"] = "4"

	w := createProduct(r, cookie, payload)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d: %s", w.Code, w.Body.String())
	}
	created := decodeProduct(t, w)
	if created.Precio != 99.90 || created.Stock != 4 {
		t.Errorf("expected precio 99.90 stock 4, got %v / %v", created.Precio, created.Stock)
	}
}

func TestCreateProductValidation(t *testing.T) {
	r := setup()
	cookie := loginAsAdmin(r)

	tests := []struct {
		name    string
		mutate  func(map[string]any)
		message string
	}{
		{"missing nombre", func(p map[string]any) { delete(p, "nombre") },
			"Todos los campos requeridos deben ser proporcionados"},
		{"missing precio", func(p map[string]any) { delete(p, "precio") },
			"Todos los campos requeridos deben ser proporcionados"},
		{"missing sku", func(p map[string]any) { delete(p, "codigo_sku") },
			"Todos los campos requeridos deben ser proporcionados"},
		{"precio not a number", func(p map[string]any) { p["precio"] = "doce" },
			"Precio y stock deben ser números válidos"},
		{"stock not an integer", func(p map[string]any) { p["stock"] = "3.5" },
			"Precio y stock deben ser números válidos"},
		{"negative precio", func(p map[string]any) { p["precio"] = -1 },
			"Precio y stock deben ser números válidos"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := sampleProduct()
			tt.mutate(payload)

			w := createProduct(r, cookie, payload)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", w.Code)
			}
			if resp := decodeMessage(w); resp.Message != tt.message {
				t.Errorf("expected message %q, got %q", tt.message, resp.Message)
			}
		})
	}
}

func TestCreateProductDuplicateSKU(t *testing.T) {
	r := setup()
	cookie := loginAsAdmin(r)

	first := createProduct(r, cookie, sampleProduct())
	if first.Code != http.StatusCreated {
		t.Fatalf("expected 201 for first product, got %d", first.Code)
	}
	created := decodeProduct(t, first)

	second := sampleProduct()
	second["nombre"] = "Otro filtro"
	w := createProduct(r, cookie, second)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for duplicate SKU, got %d", w.Code)
	}
	if resp := decodeMessage(w); resp.Message != "El código SKU ya existe" {
		t.Errorf("unexpected message %q", resp.Message)
	}

	// The first product must be untouched.
	got := doJSON(r, http.MethodGet, fmt.Sprintf("/productos/%d", created.ID), nil, cookie)
	if fetched := decodeProduct(t, got); fetched.Nombre != "Filtro de aceite" {
		t.Errorf("first product was modified: %+v", fetched)
	}
}

func TestUpdateProduct(t *testing.T) {
	r := setup()
	cookie := loginAsAdmin(r)

	created := decodeProduct(t, createProduct(r, cookie, sampleProduct()))

	payload := map[string]any{
		"nombre":      "Filtro de aire",
		"categoria":   "Filtros",
		"precio":      135.00,
		"stock":       8,
		"codigo_sku":  "F-001",
		"descripcion": "Filtro de repuesto",
	}
	w := doJSON(r, http.MethodPut, fmt.Sprintf("/productos/%d", created.ID), payload, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	updated := decodeProduct(t, w)
	if updated.Nombre != "Filtro de aire" || updated.Precio != 135.00 || updated.Stock != 8 {
		t.Errorf("unexpected updated product: %+v", updated)
	}
	if updated.Descripcion != "Filtro de repuesto" {
		t.Errorf("expected descripcion to be overwritten, got %q", updated.Descripcion)
	}

	missing := doJSON(r, http.MethodPut, "/productos/999", payload, cookie)
	if missing.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown product, got %d", missing.Code)
	}
}

func TestSoftDelete(t *testing.T) {
	r := setup()
	cookie := loginAsAdmin(r)

	created := decodeProduct(t, createProduct(r, cookie, sampleProduct()))

	w := doJSON(r, http.MethodDelete, fmt.Sprintf("/productos/%d", created.ID), nil, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for delete, got %d", w.Code)
	}

	// Gone from the active-only listing.
	active := decodeProducts(t, doJSON(r, http.MethodGet, "/productos?soloActivos=true", nil, cookie))
	if len(active) != 0 {
		t.Errorf("expected no active products, got %d", len(active))
	}

	// Still present in the full listing and retrievable by id.
	all := decodeProducts(t, doJSON(r, http.MethodGet, "/productos", nil, cookie))
	if len(all) != 1 {
		t.Fatalf("expected 1 product in full listing, got %d", len(all))
	}
	got := doJSON(r, http.MethodGet, fmt.Sprintf("/productos/%d", created.ID), nil, cookie)
	if got.Code != http.StatusOK {
		t.Fatalf("expected 200 fetching soft-deleted product, got %d", got.Code)
	}
	if fetched := decodeProduct(t, got); fetched.Activo {
		t.Error("expected activo=false after delete")
	}

	missing := doJSON(r, http.MethodDelete, "/productos/999", nil, cookie)
	if missing.Code != http.StatusNotFound {
		t.Errorf("expected 404 deleting unknown product, got %d", missing.Code)
	}
}

func TestGetProductNotFound(t *testing.T) {
	r := setup()
	cookie := loginAsAdmin(r)

	w := doJSON(r, http.MethodGet, "/productos/42", nil, cookie)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestSearchProducts(t *testing.T) {
	r := setup()
	cookie := loginAsAdmin(r)

	products := []map[string]any{
		{"nombre": "Filtro de aceite", "categoria": "Filtros", "precio": 120.50, "stock": 10, "codigo_sku": "F-001"},
		{"nombre": "Bujía", "categoria": "Encendido", "precio": 45.00, "stock": 30, "codigo_sku": "B-010"},
		{"nombre": "Balata delantera", "categoria": "Frenos", "precio": 350.00, "stock": 6, "codigo_sku": "FR-201"},
	}
	var ids []int
	for _, p := range products {
		w := createProduct(r, cookie, p)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
		ids = append(ids, decodeProduct(t, w).ID)
	}

	// Matches nombre, categoria and SKU.
	byName := decodeProducts(t, doJSON(r, http.MethodGet, "/productos?buscar=filtro", nil, cookie))
	if len(byName) != 1 || byName[0].Nombre != "Filtro de aceite" {
		t.Errorf("unexpected search result by nombre: %+v", byName)
	}
	byCategory := decodeProducts(t, doJSON(r, http.MethodGet, "/productos?buscar=Frenos", nil, cookie))
	if len(byCategory) != 1 || byCategory[0].Nombre != "Balata delantera" {
		t.Errorf("unexpected search result by categoria: %+v", byCategory)
	}
	bySKU := decodeProducts(t, doJSON(r, http.MethodGet, "/productos?buscar=B-010", nil, cookie))
	if len(bySKU) != 1 || bySKU[0].Nombre != "Bujía" {
		t.Errorf("unexpected search result by SKU: %+v", bySKU)
	}

	// Search skips inactive products.
	doJSON(r, http.MethodDelete, fmt.Sprintf("/productos/%d", ids[0]), nil, cookie)
	afterDelete := decodeProducts(t, doJSON(r, http.MethodGet, "/productos?buscar=filtro", nil, cookie))
	if len(afterDelete) != 0 {
		t.Errorf("expected inactive product to be excluded from search, got %+v", afterDelete)
	}
}

func TestListProductsOrderedByName(t *testing.T) {
	r := setup()
	cookie := loginAsAdmin(r)

	for _, p := range []map[string]any{
		{"nombre": "Zapata", "categoria": "Frenos", "precio": 90.0, "stock": 2, "codigo_sku": "Z-001"},
		{"nombre": "Amortiguador", "categoria": "Suspensión", "precio": 800.0, "stock": 4, "codigo_sku": "A-001"},
	} {
		createProduct(r, cookie, p)
	}

	list := decodeProducts(t, doJSON(r, http.MethodGet, "/productos", nil, cookie))
	if len(list) != 2 {
		t.Fatalf("expected 2 products, got %d", len(list))
	}
	if list[0].Nombre != "Amortiguador" || list[1].Nombre != "Zapata" {
		t.Errorf("expected ascending order by nombre, got %q then %q", list[0].Nombre, list[1].Nombre)
	}
}

func TestProductsRequireSession(t *testing.T) {
	r := setup()

	w := doJSON(r, http.MethodPost, "/productos", sampleProduct(), nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without session, got %d", w.Code)
	}
	if resp := decodeMessage(w); resp.Message != "No autenticado" {
		t.Errorf("unexpected message %q", resp.Message)
	}
}

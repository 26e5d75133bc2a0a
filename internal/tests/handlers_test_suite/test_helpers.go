package handlers_test_suite

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/rs/zerolog"

	api "github.com/mherrera-dev/refaccionaria/internal/http"
	handler "github.com/mherrera-dev/refaccionaria/internal/http/handlers"
	"github.com/mherrera-dev/refaccionaria/internal/repo"
	"github.com/mherrera-dev/refaccionaria/internal/session"
)

var (
	userRepo    *repo.InMemoryUserRepository
	productRepo *repo.InMemoryProductRepository
	saleRepo    *repo.InMemorySaleRepository
	sessions    *session.MemoryStore
)

const cookieName = "sid"

// setup builds a fresh router over in-memory repositories and an in-memory
// session store.
func setup() http.Handler {
	userRepo = repo.NewInMemoryUserRepository()
	productRepo = repo.NewInMemoryProductRepository()
	saleRepo = repo.NewInMemorySaleRepository(productRepo)
	sessions = session.NewMemoryStore(24 * time.Hour)

	srv := handler.New(userRepo, productRepo, saleRepo, sessions,
		handler.CookieSettings{Name: cookieName, MaxAge: 24 * time.Hour}, zerolog.Nop())
	gate := api.NewSessionGate(sessions, cookieName, zerolog.Nop())
	return api.NewRouter(srv, gate, api.Options{})
}

// doJSON performs a request with a JSON body (may be nil) and an optional
// session cookie. The Accept header marks the caller as a JSON client so the
// session gate answers 401 instead of redirecting.
func doJSON(r http.Handler, method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// doBrowser performs a request without the JSON Accept header, the way a
// plain browser navigation would.
func doBrowser(r http.Handler, method, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == cookieName {
			return c
		}
	}
	return nil
}

func registerUser(r http.Handler, usuario, password, nombre string) *httptest.ResponseRecorder {
	return doJSON(r, http.MethodPost, "/auth/register", map[string]any{
		"usuario":  usuario,
		"password": password,
		"nombre":   nombre,
	}, nil)
}

func loginUser(r http.Handler, usuario, password string) *httptest.ResponseRecorder {
	return doJSON(r, http.MethodPost, "/auth/login", map[string]any{
		"usuario":  usuario,
		"password": password,
	}, nil)
}

// loginAsAdmin registers the first user and returns its session cookie.
func loginAsAdmin(r http.Handler) *http.Cookie {
	w := registerUser(r, "admin", "secret1", "Admin")
	return sessionCookie(w)
}

func createProduct(r http.Handler, cookie *http.Cookie, payload map[string]any) *httptest.ResponseRecorder {
	return doJSON(r, http.MethodPost, "/productos", payload, cookie)
}

func sampleProduct() map[string]any {
	return map[string]any{
		"nombre":     "Filtro de aceite",
		"categoria":  "Filtros",
		"precio":     120.50,
		"stock":      10,
		"codigo_sku": "F-001",
	}
}

func decodeMessage(w *httptest.ResponseRecorder) handler.MessageResponse {
	var resp handler.MessageResponse
	_ = json.NewDecoder(w.Body).Decode(&resp)
	return resp
}

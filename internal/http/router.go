package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mherrera-dev/refaccionaria/internal/http/handlers"
)

// Options tunes optional router behavior.
type Options struct {
	// RateLimit applies the per-IP limiter to the credential endpoints.
	RateLimit bool
	// StaticDir serves the frontend from disk when non-empty.
	StaticDir string
}

// NewRouter builds the full route table with the session gate applied to the
// protected groups.
func NewRouter(s *handlers.Server, gate *SessionGate, opts Options) http.Handler {
	r := chi.NewRouter()

	limited := func(r chi.Router) chi.Router {
		if opts.RateLimit {
			return r.With(RateLimit)
		}
		return r
	}

	r.Get("/", s.HomeHandler)

	r.Route("/auth", func(r chi.Router) {
		r.Get("/check-users", s.CheckUsersHandler)
		limited(r).Post("/register", s.RegisterHandler)
		limited(r).Post("/login", s.LoginHandler)
		r.With(gate.RequireAuth).Get("/me", s.MeHandler)
		r.Post("/logout", s.LogoutHandler)
	})

	r.Route("/productos", func(r chi.Router) {
		r.Use(gate.RequireAuth)
		r.Get("/", s.ListProductsHandler)
		r.Get("/{id}", s.GetProductByIDHandler)
		r.Post("/", s.CreateProductHandler)
		r.Put("/{id}", s.UpdateProductHandler)
		r.Delete("/{id}", s.DeleteProductHandler)
	})

	r.Route("/ventas", func(r chi.Router) {
		r.Use(gate.RequireAuth)
		r.Get("/", s.ListSalesHandler)
		r.Post("/", s.CreateSaleHandler)
	})

	if opts.StaticDir != "" {
		fs := http.FileServer(http.Dir(opts.StaticDir))
		for _, page := range []string{"/dashboard.html", "/inventario.html", "/ventas.html"} {
			r.With(gate.RequireAuth).Get(page, fs.ServeHTTP)
		}
		for _, page := range []string{"/login.html", "/registro.html"} {
			r.With(gate.RequireGuest).Get(page, fs.ServeHTTP)
		}
		r.NotFound(fs.ServeHTTP)
	}

	return r
}

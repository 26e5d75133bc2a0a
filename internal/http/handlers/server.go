package handlers

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/mherrera-dev/refaccionaria/internal/models"
	"github.com/mherrera-dev/refaccionaria/internal/repo"
	"github.com/mherrera-dev/refaccionaria/internal/session"
)

// CookieSettings controls the session cookie the auth handlers issue.
type CookieSettings struct {
	Name   string
	Secure bool
	MaxAge time.Duration
}

// Server holds the dependencies of all request handlers. Repositories and the
// session store are injected so tests can swap in in-memory implementations.
type Server struct {
	users    repo.UserRepository
	products repo.ProductRepository
	sales    repo.SaleRepository
	sessions session.Store
	cookies  CookieSettings
	log      zerolog.Logger
}

func New(users repo.UserRepository, products repo.ProductRepository, sales repo.SaleRepository,
	sessions session.Store, cookies CookieSettings, log zerolog.Logger) *Server {
	return &Server{
		users:    users,
		products: products,
		sales:    sales,
		sessions: sessions,
		cookies:  cookies,
		log:      log,
	}
}

// establishSession creates a server-side session for the user and sets the
// cookie on the response.
func (s *Server) establishSession(w http.ResponseWriter, r *http.Request, u models.User) error {
	id, err := s.sessions.Create(r.Context(), session.Session{
		UserID:  u.ID,
		Usuario: u.Usuario,
		Nombre:  u.Nombre,
	})
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     s.cookies.Name,
		Value:    id,
		Path:     "/",
		MaxAge:   int(s.cookies.MaxAge.Seconds()),
		HttpOnly: true,
		Secure:   s.cookies.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.cookies.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.cookies.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// currentSession resolves the caller's session: from the request context when
// the auth gate already ran, otherwise straight from the cookie.
func (s *Server) currentSession(r *http.Request) (session.Session, bool) {
	if sess, ok := session.FromContext(r.Context()); ok {
		return sess, true
	}

	cookie, err := r.Cookie(s.cookies.Name)
	if err != nil || cookie.Value == "" {
		return session.Session{}, false
	}
	sess, err := s.sessions.Get(r.Context(), cookie.Value)
	if err != nil {
		return session.Session{}, false
	}
	return sess, true
}

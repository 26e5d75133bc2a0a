package http

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	rl "github.com/mherrera-dev/refaccionaria/internal/http/rate_limiter"
	"github.com/mherrera-dev/refaccionaria/internal/session"
)

// SessionGate admits or rejects requests based on the presence of an
// authenticated session.
type SessionGate struct {
	sessions   session.Store
	cookieName string
	log        zerolog.Logger
}

func NewSessionGate(sessions session.Store, cookieName string, log zerolog.Logger) *SessionGate {
	return &SessionGate{sessions: sessions, cookieName: cookieName, log: log}
}

// wantsJSON reports whether the caller expects a JSON response rather than a
// browser redirect.
func wantsJSON(r *http.Request) bool {
	if r.Header.Get("X-Requested-With") == "XMLHttpRequest" {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "json")
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": message})
}

func (g *SessionGate) lookup(r *http.Request) (session.Session, bool) {
	cookie, err := r.Cookie(g.cookieName)
	if err != nil || cookie.Value == "" {
		return session.Session{}, false
	}
	sess, err := g.sessions.Get(r.Context(), cookie.Value)
	if err != nil {
		return session.Session{}, false
	}
	return sess, true
}

// RequireAuth admits requests carrying a valid session and injects it into
// the request context. JSON callers get a 401 body; browsers are redirected
// to the login page.
func (g *SessionGate) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := g.lookup(r)
		if !ok {
			g.log.Debug().Str("path", r.URL.Path).Msg("unauthenticated request rejected")
			if wantsJSON(r) {
				writeJSONError(w, http.StatusUnauthorized, "No autenticado")
			} else {
				http.Redirect(w, r, "/login.html", http.StatusFound)
			}
			return
		}

		next.ServeHTTP(w, r.WithContext(session.NewContext(r.Context(), sess)))
	})
}

// RequireGuest is the inverse gate: an authenticated caller is sent to the
// dashboard instead.
func (g *SessionGate) RequireGuest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := g.lookup(r); ok {
			http.Redirect(w, r, "/dashboard.html", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RateLimit applies a per-IP token bucket, used on the credential endpoints
// to slow down brute forcing.
func RateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}

		if !rl.GetVisitor(ip).Allow() {
			writeJSONError(w, http.StatusTooManyRequests, "Demasiadas solicitudes. Intenta de nuevo más tarde.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

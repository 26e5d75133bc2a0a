package handlers

import (
	"errors"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/mherrera-dev/refaccionaria/internal/models"
	"github.com/mherrera-dev/refaccionaria/internal/repo"
)

const msgInvalidCredentials = "Usuario o contraseña incorrectos"

// RegisterHandler creates the first (and only) user of the system.
// POST /auth/register
func (s *Server) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := s.readJSON(w, r, &req); err != nil {
		s.fail(w, errValidation, "Usuario, contraseña y nombre son requeridos")
		return
	}

	if req.Usuario == "" || req.Password == "" || req.Nombre == "" {
		s.fail(w, errValidation, "Usuario, contraseña y nombre son requeridos")
		return
	}
	if len(req.Password) < 6 {
		s.fail(w, errValidation, "La contraseña debe tener al menos 6 caracteres")
		return
	}

	if _, err := s.users.GetByUsername(req.Usuario); err == nil {
		s.fail(w, errConflict, "El nombre de usuario ya está en uso")
		return
	} else if !errors.Is(err, repo.ErrUserNotFound) {
		s.log.Error().Err(err).Msg("register: username lookup failed")
		s.fail(w, errInternal, "Error al registrar usuario")
		return
	}

	// Registration is open only while the system has no users at all.
	count, err := s.users.Count()
	if err != nil {
		s.log.Error().Err(err).Msg("register: user count failed")
		s.fail(w, errInternal, "Error al registrar usuario")
		return
	}
	if count > 0 {
		s.fail(w, errPolicy, "Ya existen usuarios en el sistema. El registro está deshabilitado.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.log.Error().Err(err).Msg("register: password hashing failed")
		s.fail(w, errInternal, "Error al registrar usuario")
		return
	}

	user, err := s.users.Create(models.User{
		Usuario:      req.Usuario,
		PasswordHash: string(hashed),
		Nombre:       req.Nombre,
	})
	if err != nil {
		if errors.Is(err, repo.ErrDuplicatedValueUnique) {
			s.fail(w, errConflict, "El nombre de usuario ya está en uso")
			return
		}
		s.log.Error().Err(err).Msg("register: insert failed")
		s.fail(w, errInternal, "Error al registrar usuario")
		return
	}

	if err := s.establishSession(w, r, user); err != nil {
		s.log.Error().Err(err).Msg("register: session creation failed")
		s.fail(w, errInternal, "Error al registrar usuario")
		return
	}

	s.writeJSON(w, http.StatusCreated, AuthResponse{
		Success: true,
		Message: "Usuario creado exitosamente",
		User:    toUserPayload(user),
	})
}

// LoginHandler authenticates a user and establishes a session.
// POST /auth/login
func (s *Server) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := s.readJSON(w, r, &req); err != nil {
		s.fail(w, errValidation, "Usuario y contraseña son requeridos")
		return
	}

	if req.Usuario == "" || req.Password == "" {
		s.fail(w, errValidation, "Usuario y contraseña son requeridos")
		return
	}

	// Unknown username and wrong password produce the identical response so
	// the endpoint leaks nothing about which usernames exist.
	user, err := s.users.GetByUsername(req.Usuario)
	if errors.Is(err, repo.ErrUserNotFound) {
		s.fail(w, errAuth, msgInvalidCredentials)
		return
	}
	if err != nil {
		s.log.Error().Err(err).Msg("login: username lookup failed")
		s.fail(w, errInternal, "Error al iniciar sesión")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		s.fail(w, errAuth, msgInvalidCredentials)
		return
	}

	if err := s.establishSession(w, r, user); err != nil {
		s.log.Error().Err(err).Msg("login: session creation failed")
		s.fail(w, errInternal, "Error al iniciar sesión")
		return
	}

	s.writeJSON(w, http.StatusOK, AuthResponse{
		Success: true,
		Message: "Inicio de sesión exitoso",
		User:    toUserPayload(user),
	})
}

// LogoutHandler destroys the caller's session, if any.
// POST /auth/logout
func (s *Server) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(s.cookies.Name); err == nil && cookie.Value != "" {
		if err := s.sessions.Destroy(r.Context(), cookie.Value); err != nil {
			s.log.Error().Err(err).Msg("logout: session destroy failed")
			s.fail(w, errInternal, "Error al cerrar sesión")
			return
		}
	}

	s.clearSessionCookie(w)
	s.writeJSON(w, http.StatusOK, MessageResponse{
		Success: true,
		Message: "Sesión cerrada exitosamente",
	})
}

// MeHandler returns the authenticated user. It re-checks the session itself
// rather than trusting that the gate ran upstream.
// GET /auth/me
func (s *Server) MeHandler(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.currentSession(r)
	if !ok || sess.UserID == 0 {
		s.fail(w, errAuth, "No autenticado")
		return
	}

	user, err := s.users.GetByID(sess.UserID)
	if errors.Is(err, repo.ErrUserNotFound) {
		s.fail(w, errNotFound, "Usuario no encontrado")
		return
	}
	if err != nil {
		s.log.Error().Err(err).Msg("me: user lookup failed")
		s.fail(w, errInternal, "Error al obtener información del usuario")
		return
	}

	s.writeJSON(w, http.StatusOK, AuthResponse{Success: true, User: toUserPayload(user)})
}

// CheckUsersHandler reports whether any user exists, so the front end can
// route between the register and login flows.
// GET /auth/check-users
func (s *Server) CheckUsersHandler(w http.ResponseWriter, r *http.Request) {
	count, err := s.users.Count()
	if err != nil {
		s.log.Error().Err(err).Msg("check-users: count failed")
		s.fail(w, errInternal, "Error al verificar usuarios")
		return
	}

	s.writeJSON(w, http.StatusOK, CheckUsersResponse{
		Success:   true,
		HasUsers:  count > 0,
		UserCount: count,
	})
}

// HomeHandler routes the browser to the right page: dashboard when a session
// exists, the register page when the system has no users yet, the login page
// otherwise.
// GET /
func (s *Server) HomeHandler(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.currentSession(r); ok {
		http.Redirect(w, r, "/dashboard.html", http.StatusFound)
		return
	}

	count, err := s.users.Count()
	if err != nil || count > 0 {
		http.Redirect(w, r, "/login.html", http.StatusFound)
		return
	}
	http.Redirect(w, r, "/registro.html", http.StatusFound)
}

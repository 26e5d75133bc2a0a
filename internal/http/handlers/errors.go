package handlers

import "net/http"

// errorKind is the closed set of failure categories handlers can report.
// Every failure renders the same {success:false, message} body; the kind only
// selects the status code.
type errorKind int

const (
	errValidation errorKind = iota // malformed, missing or out-of-range input
	errAuth                        // bad credentials or missing session
	errPolicy                      // action disallowed by system state
	errNotFound
	errConflict // uniqueness violation reported by the store
	errInternal
)

func (k errorKind) status() int {
	switch k {
	case errValidation, errConflict:
		return http.StatusBadRequest
	case errAuth:
		return http.StatusUnauthorized
	case errPolicy:
		return http.StatusForbidden
	case errNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(w http.ResponseWriter, kind errorKind, message string) {
	s.writeJSON(w, kind.status(), MessageResponse{Success: false, Message: message})
}

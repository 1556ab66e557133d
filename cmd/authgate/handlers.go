package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	authgate "github.com/boffins/authgate"
	"github.com/boffins/authgate/middleware"
)

type server struct {
	engine          *authgate.Engine
	users           *memoryUsers
	sessionLifetime time.Duration
	cookieSecure    bool
}

type credentialsBody struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeErrorKind(w http.ResponseWriter, status int, kind string) {
	writeJSON(w, status, map[string]string{"error": kind})
}

func decodeCredentials(w http.ResponseWriter, r *http.Request) (credentialsBody, bool) {
	var body credentialsBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErrorKind(w, http.StatusBadRequest, "invalid_request")
		return credentialsBody{}, false
	}
	return body, true
}

// mapAuthError translates engine sentinels into the wire contract. Any
// unrecognized error becomes a plain 500 with no internal detail.
func mapAuthError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, authgate.ErrInvalidCredentials):
		writeErrorKind(w, http.StatusUnauthorized, "invalid_credentials")
	case errors.Is(err, authgate.ErrAccountExists):
		writeErrorKind(w, http.StatusConflict, "account_exists")
	case errors.Is(err, authgate.ErrPasswordPolicy):
		writeErrorKind(w, http.StatusBadRequest, "password_policy")
	case errors.Is(err, authgate.ErrSignupInvalid):
		writeErrorKind(w, http.StatusBadRequest, "invalid_request")
	case errors.Is(err, authgate.ErrRoleInvalid):
		writeErrorKind(w, http.StatusBadRequest, "role_invalid")
	case errors.Is(err, authgate.ErrStoreUnavailable):
		writeErrorKind(w, http.StatusServiceUnavailable, "store_unavailable")
	default:
		writeErrorKind(w, http.StatusInternalServerError, "internal")
	}
}

func (s *server) handleSignup(w http.ResponseWriter, r *http.Request) {
	body, ok := decodeCredentials(w, r)
	if !ok {
		return
	}

	result, err := s.engine.Signup(r.Context(), authgate.SignupRequest{
		Identifier: body.Identifier,
		Password:   body.Password,
	})
	if err != nil {
		mapAuthError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"user_id": result.UserID,
		"role":    string(result.Role),
	})
}

func (s *server) handleLogin(w http.ResponseWriter, r *http.Request) {
	body, ok := decodeCredentials(w, r)
	if !ok {
		return
	}

	sess, err := s.engine.LoginSession(r.Context(), body.Identifier, body.Password)
	if err != nil {
		mapAuthError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     authgate.SessionCookieName,
		Value:    sess.SessionID,
		Path:     "/",
		MaxAge:   int(s.sessionLifetime.Seconds()),
		HttpOnly: true,
		Secure:   s.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]string{"csrf_token": sess.CSRFToken})
}

func (s *server) handleAPILogin(w http.ResponseWriter, r *http.Request) {
	body, ok := decodeCredentials(w, r)
	if !ok {
		return
	}

	token, err := s.engine.LoginToken(r.Context(), body.Identifier, body.Password)
	if err != nil {
		mapAuthError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (s *server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if sid, ok := middleware.SessionIDFromContext(r.Context()); ok {
		if err := s.engine.Logout(r.Context(), sid); err != nil {
			mapAuthError(w, err)
			return
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     authgate.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFromContext(r.Context())
	writeJSON(w, http.StatusOK, map[string]string{
		"subject": principal.Subject,
		"role":    string(principal.Role),
		"method":  string(principal.Method),
	})
}

func (s *server) handleAdminUsers(w http.ResponseWriter, r *http.Request) {
	s.users.mu.Lock()
	identifiers := make([]string, 0, len(s.users.users))
	for id := range s.users.users {
		identifiers = append(identifiers, id)
	}
	s.users.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{"users": identifiers})
}

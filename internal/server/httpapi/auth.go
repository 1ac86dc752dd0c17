package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/edupilot/internal/common"
	"github.com/dmitrijs2005/edupilot/internal/server/services"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type okResponse struct {
	OK    bool   `json:"ok"`
	Email string `json:"email,omitempty"`
}

func (s *Server) setSessionCookie(w http.ResponseWriter, tok *services.SessionToken) {
	http.SetCookie(w, &http.Cookie{
		Name:     common.SessionCookieName,
		Value:    tok.Token,
		Path:     "/",
		MaxAge:   int(s.sessionTTL.Seconds()),
		Expires:  tok.ExpiresAt,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     common.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeServiceError(w, r, err, "")
		return
	}

	tok, err := s.deps.Users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			writeError(w, http.StatusUnauthorized, "Invalid email or password.")
			return
		}
		s.writeServiceError(w, r, err, "")
		return
	}

	s.setSessionCookie(w, tok)
	writeJSON(w, http.StatusOK, okResponse{OK: true})
}

func (s *Server) signup(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeServiceError(w, r, err, "")
		return
	}

	tok, err := s.deps.Users.Signup(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorConflict) {
			writeError(w, http.StatusConflict, "User already exists.")
			return
		}
		s.writeServiceError(w, r, err, "")
		return
	}

	s.setSessionCookie(w, tok)
	writeJSON(w, http.StatusOK, okResponse{OK: true})
}

// logout always succeeds; the cookie is expired either way.
func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(common.SessionCookieName); err == nil && c.Value != "" {
		if err := s.deps.Users.Logout(r.Context(), c.Value); err != nil {
			s.logger.Warn(r.Context(), "logout failed", "error", err)
		}
	}
	clearSessionCookie(w)
	writeJSON(w, http.StatusOK, okResponse{OK: true})
}

func (s *Server) session(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie(common.SessionCookieName)
	if err != nil || c.Value == "" {
		writeError(w, http.StatusUnauthorized, "Unauthorized.")
		return
	}
	user, err := s.deps.Users.Authenticate(r.Context(), c.Value)
	if err != nil {
		s.writeServiceError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, okResponse{OK: true, Email: user.Email})
}

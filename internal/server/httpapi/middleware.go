package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/edupilot/internal/common"
	"github.com/dmitrijs2005/edupilot/internal/server/auth"
	"github.com/dmitrijs2005/edupilot/internal/server/models"
)

type ctxKey string

const userKey ctxKey = "user"

// UserFromContext returns the user attached by the API session guard.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	u, ok := ctx.Value(userKey).(*models.User)
	return u, ok
}

// responseWriter captures the status code for the access log.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rw, r)

		s.logger.Info(r.Context(), "request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration", time.Since(start),
			"remote_addr", r.RemoteAddr,
		)
	})
}

func (s *Server) isProtected(path string) bool {
	for _, p := range s.deps.ProtectedPaths {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// sessionGate redirects protected view requests without a verifiable
// session cookie to the login page. Only the token signature and expiry
// are checked.
func (s *Server) sessionGate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.isProtected(r.URL.Path) && !s.hasValidCookie(r) {
			http.Redirect(w, r, s.deps.LoginPath, http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) hasValidCookie(r *http.Request) bool {
	c, err := r.Cookie(common.SessionCookieName)
	if err != nil || c.Value == "" {
		return false
	}
	_, err = auth.ParseToken(c.Value, s.secret)
	return err == nil
}

// requireSession rejects API calls without a live server-side session.
func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
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
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey, user)))
	})
}

type recoveryLogger struct {
	s *Server
}

func (l recoveryLogger) Println(v ...interface{}) {
	l.s.logger.Error(context.Background(), "panic recovered", "error", fmt.Sprint(v...))
}

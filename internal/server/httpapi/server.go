// Package httpapi exposes the REST endpoints for tasks, study logs,
// sessions and exports, and mounts the HTML views behind the session gate.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/edupilot/internal/common"
	"github.com/dmitrijs2005/edupilot/internal/logging"
	"github.com/dmitrijs2005/edupilot/internal/records"
	"github.com/dmitrijs2005/edupilot/internal/server/config"
	"github.com/dmitrijs2005/edupilot/internal/server/models"
	"github.com/dmitrijs2005/edupilot/internal/server/services"
	gorillahandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

type TaskService interface {
	List(ctx context.Context) ([]records.Task, error)
	Create(ctx context.Context, in records.TaskInput) (*records.Task, error)
	Update(ctx context.Context, id string, patch records.TaskPatch) (*records.Task, error)
	Delete(ctx context.Context, id string) error
}

type StudyLogService interface {
	List(ctx context.Context) ([]records.StudyLog, error)
	Create(ctx context.Context, in records.StudyLogInput) (*records.StudyLog, error)
	Update(ctx context.Context, id string, patch records.StudyLogPatch) (*records.StudyLog, error)
	Delete(ctx context.Context, id string) error
}

type UserService interface {
	Signup(ctx context.Context, email, password string) (*services.SessionToken, error)
	Login(ctx context.Context, email, password string) (*services.SessionToken, error)
	Logout(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

type ExportService interface {
	Export(ctx context.Context) (*services.ExportResult, error)
}

type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Views mounts HTML pages on the router.
type Views interface {
	Register(r *mux.Router)
}

// Deps groups what the server delegates to.
type Deps struct {
	Tasks     TaskService
	StudyLogs StudyLogService
	Users     UserService
	Exports   ExportService
	Health    HealthChecker
	Views     Views
	// ProtectedPaths are view prefixes that redirect to LoginPath without
	// a valid session cookie.
	ProtectedPaths []string
	LoginPath      string
}

type Server struct {
	address           string
	deps              Deps
	logger            logging.Logger
	secret            []byte
	sessionTTL        time.Duration
	requireAPISession bool
	allowedOrigins    []string
}

func NewServer(cfg *config.Config, l logging.Logger, deps Deps) *Server {
	ttl := cfg.SessionTTL
	if ttl <= 0 {
		ttl = common.DefaultSessionTTL
	}
	if deps.LoginPath == "" {
		deps.LoginPath = "/auth"
	}
	return &Server{
		address:           cfg.HTTPAddr,
		deps:              deps,
		logger:            l.With("module", "http_server"),
		secret:            []byte(cfg.SecretKey),
		sessionTTL:        ttl,
		requireAPISession: cfg.RequireAPISession,
		allowedOrigins:    cfg.CORSAllowedOrigins,
	}
}

// Handler builds the full middleware chain around the router.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", s.health).Methods(http.MethodGet)

	r.HandleFunc("/auth/login", s.login).Methods(http.MethodPost)
	r.HandleFunc("/auth/signup", s.signup).Methods(http.MethodPost)
	r.HandleFunc("/auth/logout", s.logout).Methods(http.MethodPost)
	r.HandleFunc("/auth/session", s.session).Methods(http.MethodGet)

	api := func(h http.HandlerFunc) http.Handler {
		if s.requireAPISession {
			return s.requireSession(h)
		}
		return h
	}
	r.Handle("/tasks", api(s.listTasks)).Methods(http.MethodGet)
	r.Handle("/tasks", api(s.createTask)).Methods(http.MethodPost)
	r.Handle("/tasks/{id}", api(s.updateTask)).Methods(http.MethodPatch)
	r.Handle("/tasks/{id}", api(s.deleteTask)).Methods(http.MethodDelete)
	r.Handle("/studyLogs", api(s.listStudyLogs)).Methods(http.MethodGet)
	r.Handle("/studyLogs", api(s.createStudyLog)).Methods(http.MethodPost)
	r.Handle("/studyLogs/{id}", api(s.updateStudyLog)).Methods(http.MethodPatch)
	r.Handle("/studyLogs/{id}", api(s.deleteStudyLog)).Methods(http.MethodDelete)
	r.Handle("/export", api(s.export)).Methods(http.MethodPost)

	if s.deps.Views != nil {
		s.deps.Views.Register(r)
	}

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "Not found.")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed.")
	})

	var h http.Handler = r
	h = s.sessionGate(h)
	h = gorillahandlers.CORS(
		gorillahandlers.AllowedHeaders([]string{"X-Requested-With", "Content-Type"}),
		gorillahandlers.AllowedMethods([]string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}),
		gorillahandlers.AllowedOrigins(s.allowedOrigins),
		gorillahandlers.AllowCredentials(),
	)(h)
	h = gorillahandlers.RecoveryHandler(gorillahandlers.RecoveryLogger(recoveryLogger{s}))(h)
	return s.loggingMiddleware(h)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown failed", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	if s.deps.Health != nil {
		if err := s.deps.Health.Ping(r.Context()); err != nil {
			s.logger.Error(r.Context(), "health check failed", "error", err)
			writeError(w, http.StatusServiceUnavailable, "Database unavailable.")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) export(w http.ResponseWriter, r *http.Request) {
	res, err := s.deps.Exports.Export(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err, "")
		return
	}

	l := s.logger
	if u, ok := UserFromContext(r.Context()); ok {
		l = l.With("user_id", u.ID)
	}
	l.Info(r.Context(), "export created", "key", res.Key)

	writeJSON(w, http.StatusOK, res)
}

package httpapi

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/dmitrijs2005/edupilot/internal/common"
	"github.com/dmitrijs2005/edupilot/internal/logging"
	"github.com/dmitrijs2005/edupilot/internal/server/models"
	"github.com/dmitrijs2005/edupilot/internal/server/services"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pageViews serves a marker for every protected path.
type pageViews struct{}

func (pageViews) Register(r *mux.Router) {
	r.HandleFunc("/dashboard", func(w http.ResponseWriter, _ *http.Request) { w.Write([]byte("dashboard")) })
	r.HandleFunc("/profile/edit", func(w http.ResponseWriter, _ *http.Request) { w.Write([]byte("profile")) })
	r.HandleFunc("/auth", func(w http.ResponseWriter, _ *http.Request) { w.Write([]byte("login")) })
}

func gateHandler(t *testing.T) http.Handler {
	deps := fakeDeps()
	deps.Views = pageViews{}
	return newHandler(t, testConfig(), deps)
}

func TestGate_RedirectsWithoutCookie(t *testing.T) {
	rec := do(gateHandler(t), http.MethodGet, "/dashboard", "")

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/auth", rec.Header().Get("Location"))
}

func TestGate_PrefixMatch(t *testing.T) {
	rec := do(gateHandler(t), http.MethodGet, "/profile/edit", "")
	assert.Equal(t, http.StatusFound, rec.Code)
}

func TestGate_RejectsBadCookies(t *testing.T) {
	h := gateHandler(t)

	expired := validCookie(t, time.Now().Add(-time.Minute))
	rec := do(h, http.MethodGet, "/dashboard", "", expired)
	assert.Equal(t, http.StatusFound, rec.Code)

	rec = do(h, http.MethodGet, "/dashboard", "", &http.Cookie{Name: "session", Value: "forged"})
	assert.Equal(t, http.StatusFound, rec.Code)
}

func TestGate_PassesValidCookie(t *testing.T) {
	rec := do(gateHandler(t), http.MethodGet, "/dashboard", "", validCookie(t, time.Now().Add(time.Hour)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "dashboard", rec.Body.String())
}

func TestGate_IgnoresPublicPaths(t *testing.T) {
	h := gateHandler(t)

	rec := do(h, http.MethodGet, "/auth", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(h, http.MethodGet, "/tasks", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAPISession(t *testing.T) {
	cfg := testConfig()
	cfg.RequireAPISession = true
	fu := &fakeUsers{authErr: common.ErrorUnauthorized}
	deps := fakeDeps()
	deps.Users = fu
	h := newHandler(t, cfg, deps)

	rec := do(h, http.MethodGet, "/tasks", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(h, http.MethodGet, "/tasks", "", &http.Cookie{Name: "session", Value: "revoked"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	fu.authErr = nil
	fu.user = &models.User{ID: "u1"}
	rec = do(h, http.MethodGet, "/tasks", "", &http.Cookie{Name: "session", Value: "live"})
	assert.Equal(t, http.StatusOK, rec.Code)

	// auth endpoints stay open
	fu.token = &services.SessionToken{Token: "t", ExpiresAt: time.Now().Add(time.Hour)}
	rec = do(h, http.MethodPost, "/auth/login", `{"email":"a@b.c","password":"password1"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireSession_AttachesUser(t *testing.T) {
	s := NewServer(testConfig(), logging.Nop{}, Deps{Users: &fakeUsers{user: &models.User{ID: "u1", Email: "a@b.c"}}})

	var got *models.User
	h := s.requireSession(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got, _ = UserFromContext(r.Context())
	}))
	do(h, http.MethodGet, "/tasks", "", &http.Cookie{Name: "session", Value: "live"})

	require.NotNil(t, got)
	assert.Equal(t, "a@b.c", got.Email)

	_, ok := UserFromContext(context.Background())
	assert.False(t, ok)
}

func TestLoggingMiddleware_RecordsStatus(t *testing.T) {
	var buf bytes.Buffer
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	deps := fakeDeps()
	deps.Tasks = &fakeTasks{updateErr: common.ErrorNotFound}

	h := NewServer(testConfig(), log, deps).Handler()
	do(h, http.MethodPatch, "/tasks/x", `{}`)

	out := buf.String()
	assert.Contains(t, out, "method=PATCH")
	assert.Contains(t, out, "path=/tasks/x")
	assert.Contains(t, out, "status=404")
}

func TestExport_LogsSessionUser(t *testing.T) {
	var buf bytes.Buffer
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	cfg := testConfig()
	cfg.RequireAPISession = true
	deps := fakeDeps()
	deps.Users = &fakeUsers{user: &models.User{ID: "u1"}}
	deps.Exports = &fakeExports{res: &services.ExportResult{Key: "exports/k.json", URL: "http://s3/k"}}

	h := NewServer(cfg, log, deps).Handler()
	rec := do(h, http.MethodPost, "/export", "", &http.Cookie{Name: "session", Value: "live"})
	require.Equal(t, http.StatusOK, rec.Code)

	out := buf.String()
	assert.Contains(t, out, `msg="export created"`)
	assert.Contains(t, out, "user_id=u1")
	assert.Contains(t, out, "key=exports/k.json")
}

func TestRecovery(t *testing.T) {
	deps := fakeDeps()
	deps.Exports = nil

	rec := do(newHandler(t, testConfig(), deps), http.MethodPost, "/export", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestExportAndHealth(t *testing.T) {
	deps := fakeDeps()
	deps.Exports = &fakeExports{res: &services.ExportResult{Key: "exports/2025/03/10/x.json", URL: "http://s3/x"}}
	h := newHandler(t, testConfig(), deps)

	rec := do(h, http.MethodPost, "/export", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"key":"exports/2025/03/10/x.json","url":"http://s3/x"}`, rec.Body.String())

	rec = do(h, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	deps.Health = fakeHealth{err: common.ErrorUnavailable}
	rec = do(newHandler(t, testConfig(), deps), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestCORS_Preflight(t *testing.T) {
	h := newHandler(t, testConfig(), fakeDeps())

	req, _ := http.NewRequest(http.MethodOptions, "/tasks", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
	rec := serve(h, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

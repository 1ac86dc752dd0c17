package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/edupilot/internal/logging"
	"github.com/dmitrijs2005/edupilot/internal/records"
	"github.com/dmitrijs2005/edupilot/internal/server/auth"
	"github.com/dmitrijs2005/edupilot/internal/server/config"
	"github.com/dmitrijs2005/edupilot/internal/server/models"
	"github.com/dmitrijs2005/edupilot/internal/server/services"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type fakeTasks struct {
	list      []records.Task
	listErr   error
	created   *records.Task
	createErr error
	gotInput  records.TaskInput
	updated   *records.Task
	updateErr error
	gotID     string
	gotPatch  records.TaskPatch
	deleteErr error
}

func (f *fakeTasks) List(context.Context) ([]records.Task, error) { return f.list, f.listErr }
func (f *fakeTasks) Create(_ context.Context, in records.TaskInput) (*records.Task, error) {
	f.gotInput = in
	return f.created, f.createErr
}
func (f *fakeTasks) Update(_ context.Context, id string, p records.TaskPatch) (*records.Task, error) {
	f.gotID, f.gotPatch = id, p
	return f.updated, f.updateErr
}
func (f *fakeTasks) Delete(_ context.Context, id string) error {
	f.gotID = id
	return f.deleteErr
}

type fakeStudyLogs struct {
	list      []records.StudyLog
	created   *records.StudyLog
	createErr error
	updated   *records.StudyLog
	updateErr error
	deleteErr error
}

func (f *fakeStudyLogs) List(context.Context) ([]records.StudyLog, error) { return f.list, nil }
func (f *fakeStudyLogs) Create(context.Context, records.StudyLogInput) (*records.StudyLog, error) {
	return f.created, f.createErr
}
func (f *fakeStudyLogs) Update(context.Context, string, records.StudyLogPatch) (*records.StudyLog, error) {
	return f.updated, f.updateErr
}
func (f *fakeStudyLogs) Delete(context.Context, string) error { return f.deleteErr }

type fakeUsers struct {
	token     *services.SessionToken
	signupErr error
	loginErr  error
	logoutErr error
	loggedOut string
	user      *models.User
	authErr   error
}

func (f *fakeUsers) Signup(context.Context, string, string) (*services.SessionToken, error) {
	return f.token, f.signupErr
}
func (f *fakeUsers) Login(context.Context, string, string) (*services.SessionToken, error) {
	return f.token, f.loginErr
}
func (f *fakeUsers) Logout(_ context.Context, token string) error {
	f.loggedOut = token
	return f.logoutErr
}
func (f *fakeUsers) Authenticate(context.Context, string) (*models.User, error) {
	return f.user, f.authErr
}

type fakeExports struct {
	res *services.ExportResult
	err error
}

func (f *fakeExports) Export(context.Context) (*services.ExportResult, error) { return f.res, f.err }

type fakeHealth struct{ err error }

func (f fakeHealth) Ping(context.Context) error { return f.err }

func testConfig() *config.Config {
	return &config.Config{
		HTTPAddr:           "127.0.0.1:0",
		SecretKey:          testSecret,
		SessionTTL:         7 * 24 * time.Hour,
		CORSAllowedOrigins: []string{"*"},
	}
}

func fakeDeps() Deps {
	return Deps{
		Tasks:          &fakeTasks{},
		StudyLogs:      &fakeStudyLogs{},
		Users:          &fakeUsers{},
		Exports:        &fakeExports{},
		Health:         fakeHealth{},
		ProtectedPaths: []string{"/dashboard", "/profile"},
	}
}

func newHandler(t *testing.T, cfg *config.Config, deps Deps) http.Handler {
	t.Helper()
	return NewServer(cfg, logging.Nop{}, deps).Handler()
}

func do(h http.Handler, method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return serve(h, req)
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func validCookie(t *testing.T, expiresAt time.Time) *http.Cookie {
	t.Helper()
	tok, err := auth.GenerateToken("s1", "u1", []byte(testSecret), expiresAt)
	require.NoError(t, err)
	return &http.Cookie{Name: "session", Value: tok}
}

func sessionCookieFrom(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == "session" {
			return c
		}
	}
	return nil
}

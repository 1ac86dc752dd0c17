package httpapi

import (
	"net/http"
	"testing"
	"time"

	"github.com/dmitrijs2005/edupilot/internal/common"
	"github.com/dmitrijs2005/edupilot/internal/server/models"
	"github.com/dmitrijs2005/edupilot/internal/server/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin_SetsCookie(t *testing.T) {
	exp := time.Now().Add(7 * 24 * time.Hour)
	deps := fakeDeps()
	deps.Users = &fakeUsers{token: &services.SessionToken{Token: "tok", ExpiresAt: exp}}

	rec := do(newHandler(t, testConfig(), deps), http.MethodPost, "/auth/login", `{"email":"a@b.c","password":"password1"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())

	c := sessionCookieFrom(rec)
	require.NotNil(t, c)
	assert.Equal(t, "tok", c.Value)
	assert.Equal(t, "/", c.Path)
	assert.True(t, c.HttpOnly)
	assert.True(t, c.Secure)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
	assert.Equal(t, 7*24*60*60, c.MaxAge)
}

func TestLogin_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"bad credentials", common.ErrorUnauthorized, http.StatusUnauthorized, "Invalid email or password."},
		{"missing fields", common.NewValidationError("", "Email and password are required."), http.StatusBadRequest, "Email and password are required."},
		{"storage", common.ErrorUnavailable, http.StatusInternalServerError, "Internal server error."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps := fakeDeps()
			deps.Users = &fakeUsers{loginErr: tt.err}

			rec := do(newHandler(t, testConfig(), deps), http.MethodPost, "/auth/login", `{"email":"a@b.c"}`)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.msg, decodeError(t, rec.Body.Bytes()))
			assert.Nil(t, sessionCookieFrom(rec))
		})
	}
}

func TestSignup(t *testing.T) {
	fu := &fakeUsers{token: &services.SessionToken{Token: "tok", ExpiresAt: time.Now().Add(time.Hour)}}
	deps := fakeDeps()
	deps.Users = fu
	h := newHandler(t, testConfig(), deps)

	rec := do(h, http.MethodPost, "/auth/signup", `{"email":"a@b.c","password":"password1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, sessionCookieFrom(rec))

	fu.signupErr = common.ErrorConflict
	rec = do(h, http.MethodPost, "/auth/signup", `{"email":"a@b.c","password":"password1"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"error":"User already exists."}`, rec.Body.String())

	fu.signupErr = common.NewValidationError("password", "Password must be at least 8 characters.")
	rec = do(h, http.MethodPost, "/auth/signup", `{"email":"a@b.c","password":"short"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Password must be at least 8 characters.", decodeError(t, rec.Body.Bytes()))
}

func TestLogout_ExpiresCookie(t *testing.T) {
	fu := &fakeUsers{}
	deps := fakeDeps()
	deps.Users = fu

	rec := do(newHandler(t, testConfig(), deps), http.MethodPost, "/auth/logout", "", &http.Cookie{Name: "session", Value: "tok"})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "tok", fu.loggedOut)
	c := sessionCookieFrom(rec)
	require.NotNil(t, c)
	assert.Equal(t, "", c.Value)
	assert.Less(t, c.MaxAge, 0)
}

func TestLogout_WithoutCookie(t *testing.T) {
	fu := &fakeUsers{}
	deps := fakeDeps()
	deps.Users = fu

	rec := do(newHandler(t, testConfig(), deps), http.MethodPost, "/auth/logout", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "", fu.loggedOut)
}

func TestSession(t *testing.T) {
	fu := &fakeUsers{user: &models.User{ID: "u1", Email: "a@b.c"}}
	deps := fakeDeps()
	deps.Users = fu
	h := newHandler(t, testConfig(), deps)

	rec := do(h, http.MethodGet, "/auth/session", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(h, http.MethodGet, "/auth/session", "", &http.Cookie{Name: "session", Value: "tok"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true,"email":"a@b.c"}`, rec.Body.String())

	fu.authErr = common.ErrorUnauthorized
	rec = do(h, http.MethodGet, "/auth/session", "", &http.Cookie{Name: "session", Value: "tok"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

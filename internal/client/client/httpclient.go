package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/edupilot/internal/common"
	"github.com/dmitrijs2005/edupilot/internal/records"
)

// HTTPClient talks to the edupilot REST API. The session token from login
// or signup is kept in memory and sent as the session cookie on every call.
type HTTPClient struct {
	baseURL string
	http    *http.Client

	mu           sync.RWMutex
	sessionToken string
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sessionToken
}

func (c *HTTPClient) setToken(t string) {
	c.mu.Lock()
	c.sessionToken = t
	c.mu.Unlock()
}

// do sends body as JSON and decodes a 2xx answer into out when out is not nil.
func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any) (*http.Response, error) {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if t := c.token(); t != "" {
		req.AddCookie(&http.Cookie{Name: common.SessionCookieName, Value: t})
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp, c.mapError(resp.StatusCode, data)
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return resp, fmt.Errorf("decode %s %s: %w", method, path, err)
		}
	}
	return resp, nil
}

func (c *HTTPClient) mapError(status int, body []byte) error {
	var e struct {
		Error string `json:"error"`
	}
	_ = json.Unmarshal(body, &e)
	return &APIError{Status: status, Message: e.Error}
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *HTTPClient) authenticate(ctx context.Context, path, email, password string) error {
	resp, err := c.do(ctx, http.MethodPost, path, credentials{Email: email, Password: password}, nil)
	if err != nil {
		return err
	}
	for _, ck := range resp.Cookies() {
		if ck.Name == common.SessionCookieName {
			c.setToken(ck.Value)
			return nil
		}
	}
	return fmt.Errorf("%s: no session cookie in response", path)
}

func (c *HTTPClient) Signup(ctx context.Context, email, password string) error {
	return c.authenticate(ctx, "/auth/signup", email, password)
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) error {
	return c.authenticate(ctx, "/auth/login", email, password)
}

// Logout ends the server session and forgets the local token.
func (c *HTTPClient) Logout(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
	c.setToken("")
	return err
}

// Session returns the email of the signed-in user.
func (c *HTTPClient) Session(ctx context.Context) (string, error) {
	var out struct {
		Email string `json:"email"`
	}
	if _, err := c.do(ctx, http.MethodGet, "/auth/session", nil, &out); err != nil {
		return "", err
	}
	return out.Email, nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, "/healthz", nil, nil)
	return err
}

func (c *HTTPClient) ListTasks(ctx context.Context) ([]records.Task, error) {
	var out []records.Task
	_, err := c.do(ctx, http.MethodGet, "/tasks", nil, &out)
	return out, err
}

func (c *HTTPClient) CreateTask(ctx context.Context, in records.TaskInput) (*records.Task, error) {
	var out records.Task
	if _, err := c.do(ctx, http.MethodPost, "/tasks", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UpdateTask(ctx context.Context, id string, patch records.TaskPatch) (*records.Task, error) {
	var out records.Task
	if _, err := c.do(ctx, http.MethodPatch, "/tasks/"+url.PathEscape(id), patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) DeleteTask(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/tasks/"+url.PathEscape(id), nil, nil)
	return err
}

func (c *HTTPClient) ListStudyLogs(ctx context.Context) ([]records.StudyLog, error) {
	var out []records.StudyLog
	_, err := c.do(ctx, http.MethodGet, "/studyLogs", nil, &out)
	return out, err
}

func (c *HTTPClient) CreateStudyLog(ctx context.Context, in records.StudyLogInput) (*records.StudyLog, error) {
	var out records.StudyLog
	if _, err := c.do(ctx, http.MethodPost, "/studyLogs", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UpdateStudyLog(ctx context.Context, id string, patch records.StudyLogPatch) (*records.StudyLog, error) {
	var out records.StudyLog
	if _, err := c.do(ctx, http.MethodPatch, "/studyLogs/"+url.PathEscape(id), patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) DeleteStudyLog(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/studyLogs/"+url.PathEscape(id), nil, nil)
	return err
}

func (c *HTTPClient) Export(ctx context.Context) (*ExportResult, error) {
	var out ExportResult
	if _, err := c.do(ctx, http.MethodPost, "/export", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

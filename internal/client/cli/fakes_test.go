package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/edupilot/internal/client/client"
	"github.com/dmitrijs2005/edupilot/internal/client/config"
	"github.com/dmitrijs2005/edupilot/internal/common"
	"github.com/dmitrijs2005/edupilot/internal/logging"
	"github.com/dmitrijs2005/edupilot/internal/records"
)

// fakeAPI is an in-memory client.Client.
type fakeAPI struct {
	email    string
	password string
	session  string

	tasks []records.Task
	logs  []records.StudyLog
	seq   int

	// fail makes every data call return this error
	fail      error
	pingErr   error
	exportRes *client.ExportResult
}

var _ client.Client = (*fakeAPI)(nil)

func (f *fakeAPI) Signup(ctx context.Context, email, password string) error {
	if f.email == email {
		return &client.APIError{Status: 409, Message: "User already exists."}
	}
	f.email, f.password, f.session = email, password, email
	return nil
}

func (f *fakeAPI) Login(ctx context.Context, email, password string) error {
	if email != f.email || password != f.password {
		return &client.APIError{Status: 401, Message: "Invalid email or password."}
	}
	f.session = email
	return nil
}

func (f *fakeAPI) Logout(ctx context.Context) error {
	f.session = ""
	return nil
}

func (f *fakeAPI) Session(ctx context.Context) (string, error) {
	if f.session == "" {
		return "", client.ErrUnauthorized
	}
	return f.session, nil
}

func (f *fakeAPI) Ping(ctx context.Context) error { return f.pingErr }

func (f *fakeAPI) nextID(prefix string) string {
	f.seq++
	return fmt.Sprintf("%s%d", prefix, f.seq)
}

func (f *fakeAPI) ListTasks(ctx context.Context) ([]records.Task, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	return append([]records.Task(nil), f.tasks...), nil
}

func (f *fakeAPI) CreateTask(ctx context.Context, in records.TaskInput) (*records.Task, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	t, err := records.NewTask(in, f.nextID("t"), time.Now().UTC())
	if err != nil {
		return nil, err
	}
	f.tasks = append([]records.Task{t}, f.tasks...)
	return &t, nil
}

func (f *fakeAPI) UpdateTask(ctx context.Context, id string, p records.TaskPatch) (*records.Task, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			p.Apply(&f.tasks[i])
			t := f.tasks[i]
			return &t, nil
		}
	}
	return nil, &client.APIError{Status: 404, Message: "Task not found."}
}

func (f *fakeAPI) DeleteTask(ctx context.Context, id string) error {
	if f.fail != nil {
		return f.fail
	}
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return &client.APIError{Status: 404, Message: "Task not found."}
}

func (f *fakeAPI) ListStudyLogs(ctx context.Context) ([]records.StudyLog, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	return append([]records.StudyLog(nil), f.logs...), nil
}

func (f *fakeAPI) CreateStudyLog(ctx context.Context, in records.StudyLogInput) (*records.StudyLog, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	l, err := records.NewStudyLog(in, f.nextID("l"), time.Now().UTC())
	if err != nil {
		return nil, err
	}
	f.logs = append([]records.StudyLog{l}, f.logs...)
	return &l, nil
}

func (f *fakeAPI) UpdateStudyLog(ctx context.Context, id string, p records.StudyLogPatch) (*records.StudyLog, error) {
	return nil, common.ErrorNotFound
}

func (f *fakeAPI) DeleteStudyLog(ctx context.Context, id string) error {
	if f.fail != nil {
		return f.fail
	}
	for i := range f.logs {
		if f.logs[i].ID == id {
			f.logs = append(f.logs[:i], f.logs[i+1:]...)
			return nil
		}
	}
	return &client.APIError{Status: 404, Message: "Study log not found."}
}

func (f *fakeAPI) Export(ctx context.Context) (*client.ExportResult, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	return f.exportRes, nil
}

// memDrafts is an in-memory drafts.Repository.
type memDrafts struct {
	data map[string][]byte
}

func (m *memDrafts) Get(ctx context.Context, kind string) ([]byte, error) { return m.data[kind], nil }
func (m *memDrafts) Save(ctx context.Context, kind string, body []byte) error {
	if m.data == nil {
		m.data = map[string][]byte{}
	}
	m.data[kind] = body
	return nil
}
func (m *memDrafts) Delete(ctx context.Context, kind string) error {
	delete(m.data, kind)
	return nil
}
func (m *memDrafts) List(ctx context.Context) (map[string][]byte, error) { return m.data, nil }

type testApp struct {
	*App
	api    *fakeAPI
	drafts *memDrafts
	out    *bytes.Buffer
}

// newTestApp builds an App reading the given input lines.
func newTestApp(t *testing.T, api *fakeAPI, lines ...string) *testApp {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()

	drafts := &memDrafts{}
	out := &bytes.Buffer{}
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	a := newApp(cfg, api, &client.Repositories{Drafts: drafts}, logging.Nop{}, in, out)
	return &testApp{App: a, api: api, drafts: drafts, out: out}
}

// stubPassword makes getPassword return pw.
func stubPassword(t *testing.T, pw string) {
	t.Helper()
	orig := getPassword
	getPassword = func(io.Writer) ([]byte, error) { return []byte(pw), nil }
	t.Cleanup(func() { getPassword = orig })
}

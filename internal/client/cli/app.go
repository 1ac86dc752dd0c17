package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/edupilot/internal/client/client"
	"github.com/dmitrijs2005/edupilot/internal/client/config"
	"github.com/dmitrijs2005/edupilot/internal/client/store"
	"github.com/dmitrijs2005/edupilot/internal/client/tui"
	"github.com/dmitrijs2005/edupilot/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// onlineCheckInterval is how often the connectivity watcher pings the server.
const onlineCheckInterval = 30 * time.Second

type App struct {
	config *config.Config
	api    client.Client
	repos  *client.Repositories
	tasks  *store.TaskStore
	logs   *store.StudyLogStore
	styles *tui.Styles
	log    logging.Logger

	in     io.Reader
	out    io.Writer
	reader *bufio.Reader

	email string

	mu   sync.Mutex
	mode Mode
}

func NewApp(ctx context.Context, c *config.Config, l logging.Logger) (*App, error) {
	repos, err := client.InitDatabase(ctx, c.DraftDB)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	api := client.NewHTTPClient(c.ServerURL, c.RequestTimeout)
	return newApp(c, api, repos, l, os.Stdin, os.Stdout), nil
}

func newApp(c *config.Config, api client.Client, repos *client.Repositories, l logging.Logger, in io.Reader, out io.Writer) *App {
	a := &App{
		config: c,
		api:    api,
		repos:  repos,
		styles: tui.DefaultStyles(),
		log:    l.With("module", "cli"),
		in:     in,
		out:    out,
		reader: bufio.NewReader(in),
	}
	a.resetStores()
	return a
}

// resetStores starts both lists empty. The draft repository is shared.
func (a *App) resetStores() {
	var drafts store.DraftRepository
	if a.repos != nil && a.repos.Drafts != nil {
		drafts = a.repos.Drafts
	}
	a.tasks = store.NewTaskStore(a.api)
	a.logs = store.NewStudyLogStore(a.api, drafts)
}

func (a *App) isLoggedIn() bool {
	return a.email != ""
}

func (a *App) currentMode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.log.Info(ctx, "connectivity changed", "mode", mode)
	}
}

func (a *App) getStatus() string {
	s := ""
	if a.email != "" {
		s = a.email + " "
	}
	if m := a.currentMode(); m != "" {
		s += string(m)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// checkOnline pings the server once and records the result.
func (a *App) checkOnline(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := a.api.Ping(ctx); err != nil {
		a.setMode(ctx, ModeOffline)
		return
	}
	a.setMode(ctx, ModeOnline)
}

// StartOnlineStatusWatcher pings the server every interval until ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// Run starts the REPL and blocks until the user leaves or input ends.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if a.repos != nil {
		defer a.repos.Close()
	}

	printlnFn("Welcome to edupilot (type 'help' for commands)")
	a.checkOnline(ctx)
	go a.StartOnlineStatusWatcher(ctx, onlineCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader)
}

// Package views renders the server-side HTML pages: the login page, the
// dashboard and the placeholder module pages behind the session gate.
package views

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/dmitrijs2005/edupilot/internal/insights"
	"github.com/dmitrijs2005/edupilot/internal/logging"
	"github.com/dmitrijs2005/edupilot/internal/records"
	"github.com/gorilla/mux"
)

//go:embed templates/*.html
var templateFS embed.FS

// LoginPath is where the gate sends visitors without a session.
const LoginPath = "/auth"

// NavItem is one entry of the sidebar.
type NavItem struct {
	Href  string
	Label string
}

// Nav lists the protected pages in sidebar order.
var Nav = []NavItem{
	{"/dashboard", "Dashboard"},
	{"/study-tracker", "Study Tracker"},
	{"/analytics", "Analytics"},
	{"/leaderboard", "Leaderboard"},
	{"/ai-planner", "AI Planner"},
	{"/profile", "Profile"},
	{"/settings", "Settings"},
}

// ProtectedPaths returns the path prefixes that require a session.
func ProtectedPaths() []string {
	out := make([]string, len(Nav))
	for i, n := range Nav {
		out[i] = n.Href
	}
	return out
}

type TaskLister interface {
	List(ctx context.Context) ([]records.Task, error)
}

type StudyLogLister interface {
	List(ctx context.Context) ([]records.StudyLog, error)
}

// Pages serves the HTML views.
type Pages struct {
	pages     map[string]*template.Template
	tasks     TaskLister
	studyLogs StudyLogLister
	log       logging.Logger
}

var funcs = template.FuncMap{
	"date": func(t time.Time) string { return t.Format("Jan 2, 2006") },
	"hours": func(minutes int) string {
		return fmt.Sprintf("%dh %02dm", minutes/60, minutes%60)
	},
}

// New parses the embedded templates.
func New(tasks TaskLister, studyLogs StudyLogLister, log logging.Logger) (*Pages, error) {
	p := &Pages{
		pages:     make(map[string]*template.Template),
		tasks:     tasks,
		studyLogs: studyLogs,
		log:       log.With("module", "views"),
	}
	for _, name := range []string{"auth.html", "dashboard.html", "module.html"} {
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		p.pages[name] = t
	}
	return p, nil
}

// Register mounts the pages on r.
func (p *Pages) Register(r *mux.Router) {
	r.Handle("/", http.RedirectHandler("/dashboard", http.StatusFound)).Methods(http.MethodGet)
	r.HandleFunc(LoginPath, p.authPage).Methods(http.MethodGet)
	r.HandleFunc("/dashboard", p.dashboard).Methods(http.MethodGet)
	for _, item := range Nav[1:] {
		r.HandleFunc(item.Href, p.modulePage(item)).Methods(http.MethodGet)
	}
}

type page struct {
	Title  string
	Active string
	Nav    []NavItem
	Data   any
}

func (p *Pages) render(w http.ResponseWriter, r *http.Request, name string, pg page) {
	pg.Nav = Nav
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := p.pages[name].ExecuteTemplate(w, "layout", pg); err != nil {
		p.log.Error(r.Context(), "render failed", "page", name, "error", err)
	}
}

func (p *Pages) authPage(w http.ResponseWriter, r *http.Request) {
	p.render(w, r, "auth.html", page{Title: "Sign in"})
}

// Dashboard is the data behind the dashboard page.
type Dashboard struct {
	Counts     map[records.Status]int
	Statuses   []records.Status
	Completion int
	Tags       []string
	Upcoming   []records.Task
	Study      insights.StudySummary
	Recent     []records.StudyLog
}

// DashboardSize is how many upcoming tasks and recent sessions are shown.
const DashboardSize = 5

// BuildDashboard derives the dashboard from the current records.
func BuildDashboard(tasks []records.Task, logs []records.StudyLog) Dashboard {
	recent := logs
	if len(recent) > DashboardSize {
		recent = recent[:DashboardSize]
	}
	return Dashboard{
		Counts:     insights.CountsByStatus(tasks),
		Statuses:   records.Statuses,
		Completion: insights.CompletionPercent(tasks),
		Tags:       insights.TagUniverse(tasks),
		Upcoming:   insights.SoonestDue(tasks, DashboardSize),
		Study:      insights.SummarizeStudy(logs),
		Recent:     recent,
	}
}

func (p *Pages) dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tasks, err := p.tasks.List(ctx)
	if err != nil {
		http.Error(w, "Internal server error.", http.StatusInternalServerError)
		return
	}
	logs, err := p.studyLogs.List(ctx)
	if err != nil {
		http.Error(w, "Internal server error.", http.StatusInternalServerError)
		return
	}

	p.render(w, r, "dashboard.html", page{Title: "Dashboard", Active: "/dashboard", Data: BuildDashboard(tasks, logs)})
}

func (p *Pages) modulePage(item NavItem) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p.render(w, r, "module.html", page{Title: item.Label, Active: item.Href, Data: item})
	}
}

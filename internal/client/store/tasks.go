package store

import (
	"context"
	"time"

	"github.com/dmitrijs2005/edupilot/internal/common"
	"github.com/dmitrijs2005/edupilot/internal/insights"
	"github.com/dmitrijs2005/edupilot/internal/records"
)

// UpcomingSize is how many unfinished tasks TaskMetrics lists.
const UpcomingSize = 5

type TaskAPI interface {
	ListTasks(ctx context.Context) ([]records.Task, error)
	CreateTask(ctx context.Context, in records.TaskInput) (*records.Task, error)
	UpdateTask(ctx context.Context, id string, patch records.TaskPatch) (*records.Task, error)
	DeleteTask(ctx context.Context, id string) error
}

// TaskStore is the task list of the client.
type TaskStore struct {
	*Store[records.Task]
	api TaskAPI
	now func() time.Time
}

func NewTaskStore(api TaskAPI) *TaskStore {
	return &TaskStore{
		Store: New[records.Task](),
		api:   api,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Load fetches the list from the server.
func (s *TaskStore) Load(ctx context.Context) error {
	return s.Refresh(ctx, s.api.ListTasks)
}

// Add validates in locally, shows the task at the top of the list right
// away and asks the server to create it.
func (s *TaskStore) Add(ctx context.Context, in records.TaskInput) (*records.Task, error) {
	t, err := records.NewTask(in, "", s.now())
	if err != nil {
		s.Dispatch(Fail[records.Task]{Err: message(err)})
		return nil, err
	}

	_, created, err := s.Create(ctx, t, func(ctx context.Context) (*records.Task, error) {
		return s.api.CreateTask(ctx, in)
	})
	return created, err
}

// Patch applies p to task id locally and sends it to the server.
func (s *TaskStore) Patch(ctx context.Context, id string, p records.TaskPatch) (*records.Task, error) {
	p, err := p.Normalize()
	if err != nil {
		s.Dispatch(Fail[records.Task]{Err: message(err)})
		return nil, err
	}

	current, ok := s.Find(id)
	if !ok {
		s.Dispatch(Fail[records.Task]{Err: "Task not found."})
		return nil, common.ErrorNotFound
	}
	updated := current.WithRecordID(id)
	p.Apply(&updated)
	updated.UpdatedAt = records.Touch(current.UpdatedAt, s.now())

	_, rec, err := s.Update(ctx, id, updated, func(ctx context.Context) (*records.Task, error) {
		return s.api.UpdateTask(ctx, id, p)
	})
	return rec, err
}

// SetStatus moves task id to status.
func (s *TaskStore) SetStatus(ctx context.Context, id string, status records.Status) (*records.Task, error) {
	return s.Patch(ctx, id, records.TaskPatch{Status: &status})
}

// Remove drops task id locally and on the server.
func (s *TaskStore) Remove(ctx context.Context, id string) error {
	_, err := s.Delete(ctx, id, func(ctx context.Context) error {
		return s.api.DeleteTask(ctx, id)
	})
	return err
}

// Filter narrows the visible tasks. The zero filter shows everything.
func (s *TaskStore) Filter(f insights.Filter) {
	if f.IsZero() {
		s.SetFilter(nil)
		return
	}
	s.SetFilter(f)
}

// ActiveFilter returns the filter in effect.
func (s *TaskStore) ActiveFilter() insights.Filter {
	f, _ := s.State().Filter.(insights.Filter)
	return f
}

// TaskMetrics are the dashboard numbers for the whole task list.
type TaskMetrics struct {
	Counts     map[records.Status]int
	Completion int
	Tags       []string
	Upcoming   []records.Task
}

// Metrics computes TaskMetrics over every task, ignoring the filter.
func (s *TaskStore) Metrics() TaskMetrics {
	tasks := s.Items()
	return TaskMetrics{
		Counts:     insights.CountsByStatus(tasks),
		Completion: insights.CompletionPercent(tasks),
		Tags:       insights.TagUniverse(tasks),
		Upcoming:   insights.SoonestDue(tasks, UpcomingSize),
	}
}

package services

import (
	"context"

	"github.com/dmitrijs2005/edupilot/internal/logging"
	"github.com/dmitrijs2005/edupilot/internal/records"
	"github.com/dmitrijs2005/edupilot/internal/server/repositories/repomanager"
)

// TaskService implements the task endpoints on top of the tasks repository.
type TaskService struct {
	repomanager repomanager.RepositoryManager
	log         logging.Logger
}

func NewTaskService(m repomanager.RepositoryManager, log logging.Logger) *TaskService {
	return &TaskService{repomanager: m, log: log.With("module", "tasks")}
}

// List returns every task, newest first.
func (s *TaskService) List(ctx context.Context) ([]records.Task, error) {
	list, err := s.repomanager.Tasks().List(ctx)
	if err != nil {
		return nil, storageError(ctx, s.log, "list tasks", err)
	}
	return list, nil
}

// Create validates in, fills defaults and stores the task. Invalid input is
// rejected before anything is persisted.
func (s *TaskService) Create(ctx context.Context, in records.TaskInput) (*records.Task, error) {
	task, err := records.NewTask(in, newID(), nowFn())
	if err != nil {
		return nil, err
	}
	created, err := s.repomanager.Tasks().Create(ctx, &task)
	if err != nil {
		return nil, storageError(ctx, s.log, "create task", err)
	}
	s.log.Debug(ctx, "task created", "id", created.ID)
	return created, nil
}

// Update applies a partial patch. Unknown ids yield common.ErrorNotFound.
func (s *TaskService) Update(ctx context.Context, id string, patch records.TaskPatch) (*records.Task, error) {
	patch, err := patch.Normalize()
	if err != nil {
		return nil, err
	}
	updated, err := s.repomanager.Tasks().Update(ctx, id, patch, nowFn())
	if err != nil {
		return nil, storageError(ctx, s.log, "update task", err)
	}
	return updated, nil
}

func (s *TaskService) Delete(ctx context.Context, id string) error {
	if err := s.repomanager.Tasks().Delete(ctx, id); err != nil {
		return storageError(ctx, s.log, "delete task", err)
	}
	s.log.Debug(ctx, "task deleted", "id", id)
	return nil
}

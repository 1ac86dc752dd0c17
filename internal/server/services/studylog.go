package services

import (
	"context"

	"github.com/dmitrijs2005/edupilot/internal/logging"
	"github.com/dmitrijs2005/edupilot/internal/records"
	"github.com/dmitrijs2005/edupilot/internal/server/repositories/repomanager"
)

// StudyLogService implements the study log endpoints.
type StudyLogService struct {
	repomanager repomanager.RepositoryManager
	log         logging.Logger
}

func NewStudyLogService(m repomanager.RepositoryManager, log logging.Logger) *StudyLogService {
	return &StudyLogService{repomanager: m, log: log.With("module", "studylogs")}
}

// List returns the most recent study logs, newest date first.
func (s *StudyLogService) List(ctx context.Context) ([]records.StudyLog, error) {
	list, err := s.repomanager.StudyLogs().List(ctx)
	if err != nil {
		return nil, storageError(ctx, s.log, "list study logs", err)
	}
	return list, nil
}

func (s *StudyLogService) Create(ctx context.Context, in records.StudyLogInput) (*records.StudyLog, error) {
	l, err := records.NewStudyLog(in, newID(), nowFn())
	if err != nil {
		return nil, err
	}
	created, err := s.repomanager.StudyLogs().Create(ctx, &l)
	if err != nil {
		return nil, storageError(ctx, s.log, "create study log", err)
	}
	return created, nil
}

func (s *StudyLogService) Update(ctx context.Context, id string, patch records.StudyLogPatch) (*records.StudyLog, error) {
	patch, err := patch.Normalize()
	if err != nil {
		return nil, err
	}
	updated, err := s.repomanager.StudyLogs().Update(ctx, id, patch, nowFn())
	if err != nil {
		return nil, storageError(ctx, s.log, "update study log", err)
	}
	return updated, nil
}

func (s *StudyLogService) Delete(ctx context.Context, id string) error {
	if err := s.repomanager.StudyLogs().Delete(ctx, id); err != nil {
		return storageError(ctx, s.log, "delete study log", err)
	}
	return nil
}

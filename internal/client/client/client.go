package client

import (
	"context"

	"github.com/dmitrijs2005/edupilot/internal/records"
)

// ExportResult locates a snapshot uploaded by the server.
type ExportResult struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

type Client interface {
	Signup(ctx context.Context, email, password string) error
	Login(ctx context.Context, email, password string) error
	Logout(ctx context.Context) error
	Session(ctx context.Context) (string, error)
	Ping(ctx context.Context) error

	ListTasks(ctx context.Context) ([]records.Task, error)
	CreateTask(ctx context.Context, in records.TaskInput) (*records.Task, error)
	UpdateTask(ctx context.Context, id string, patch records.TaskPatch) (*records.Task, error)
	DeleteTask(ctx context.Context, id string) error

	ListStudyLogs(ctx context.Context) ([]records.StudyLog, error)
	CreateStudyLog(ctx context.Context, in records.StudyLogInput) (*records.StudyLog, error)
	UpdateStudyLog(ctx context.Context, id string, patch records.StudyLogPatch) (*records.StudyLog, error)
	DeleteStudyLog(ctx context.Context, id string) error

	Export(ctx context.Context) (*ExportResult, error)
}

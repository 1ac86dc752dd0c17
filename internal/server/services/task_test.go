package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/edupilot/internal/common"
	"github.com/dmitrijs2005/edupilot/internal/logging"
	"github.com/dmitrijs2005/edupilot/internal/records"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

var t0 = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func TestTaskService_CreateDefaults(t *testing.T) {
	fixClock(t, t0, "task-1")
	s := NewTaskService(newSQLiteManager(t), logging.Nop{})

	got, err := s.Create(context.Background(), records.TaskInput{Title: ptr("Write essay")})
	require.NoError(t, err)

	assert.Equal(t, "task-1", got.ID)
	assert.Equal(t, records.StatusTodo, got.Status)
	assert.Equal(t, records.PriorityMedium, got.Priority)
	assert.Equal(t, []string{}, got.Tags)
	assert.Equal(t, "", got.Description)
	assert.True(t, got.DueDate.Equal(t0))
}

func TestTaskService_BlankTitleNotPersisted(t *testing.T) {
	m := newSQLiteManager(t)
	s := NewTaskService(m, logging.Nop{})

	_, err := s.Create(context.Background(), records.TaskInput{Title: ptr("   ")})
	require.ErrorIs(t, err, common.ErrorValidation)
	assert.Equal(t, "Title is required.", common.UserMessage(err, ""))

	list, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestTaskService_PatchLeavesOtherFields(t *testing.T) {
	fixClock(t, t0, "task-1")
	s := NewTaskService(newSQLiteManager(t), logging.Nop{})
	ctx := context.Background()

	_, err := s.Create(ctx, records.TaskInput{
		Title:       ptr("A"),
		Description: ptr("d"),
		Tags:        &[]string{"x"},
		Priority:    ptr(records.PriorityHigh),
	})
	require.NoError(t, err)

	nowFn = func() time.Time { return t0.Add(time.Minute) }
	got, err := s.Update(ctx, "task-1", records.TaskPatch{Status: ptr(records.StatusDone)})
	require.NoError(t, err)

	assert.Equal(t, records.StatusDone, got.Status)
	assert.Equal(t, "A", got.Title)
	assert.Equal(t, "d", got.Description)
	assert.Equal(t, []string{"x"}, got.Tags)
	assert.Equal(t, records.PriorityHigh, got.Priority)
	assert.False(t, got.UpdatedAt.Before(got.CreatedAt))
}

func TestTaskService_DeleteThenUpdateIsNotFound(t *testing.T) {
	fixClock(t, t0, "task-1")
	s := NewTaskService(newSQLiteManager(t), logging.Nop{})
	ctx := context.Background()

	_, err := s.Create(ctx, records.TaskInput{Title: ptr("A")})
	require.NoError(t, err)
	require.NoError(t, s.Delete(ctx, "task-1"))

	_, err = s.Update(ctx, "task-1", records.TaskPatch{Title: ptr("B")})
	assert.ErrorIs(t, err, common.ErrorNotFound)
	assert.ErrorIs(t, s.Delete(ctx, "task-1"), common.ErrorNotFound)
}

func TestTaskService_UpdateRejectsBlankTitle(t *testing.T) {
	s := NewTaskService(newSQLiteManager(t), logging.Nop{})
	_, err := s.Update(context.Background(), "any", records.TaskPatch{Title: ptr(" ")})
	assert.ErrorIs(t, err, common.ErrorValidation)
}

func TestTaskService_StorageFailureIsUnavailable(t *testing.T) {
	s := NewTaskService(brokenManager{}, logging.Nop{})
	ctx := context.Background()

	_, err := s.List(ctx)
	assert.ErrorIs(t, err, common.ErrorUnavailable)
	_, err = s.Create(ctx, records.TaskInput{Title: ptr("x")})
	assert.ErrorIs(t, err, common.ErrorUnavailable)
	assert.ErrorIs(t, s.Delete(ctx, "x"), common.ErrorUnavailable)
}

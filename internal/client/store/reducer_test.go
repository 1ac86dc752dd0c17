package store

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/edupilot/internal/insights"
	"github.com/dmitrijs2005/edupilot/internal/records"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func task(id, title string, status records.Status) records.Task {
	t0 := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	return records.Task{
		ID: id, Title: title, Tags: []string{}, Priority: records.PriorityMedium,
		Status: status, DueDate: t0, CreatedAt: t0, UpdatedAt: t0,
	}
}

func ids(tasks []records.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func loaded(tasks ...records.Task) State[records.Task] {
	return Reduce(State[records.Task]{}, Action[records.Task](Load[records.Task]{Items: tasks}))
}

func TestReduce_CreateCommitReplacesTempRecord(t *testing.T) {
	s := loaded(task("a", "A", records.StatusTodo))

	s = Reduce[records.Task](s, Begin[records.Task]{Mutation: 1, Op: OpCreate, RecordID: "tmp-1", Record: task("tmp-1", "B", records.StatusTodo)})
	assert.Equal(t, []string{"tmp-1", "a"}, ids(s.Items))
	assert.Equal(t, Pending, s.Mutations[1].Phase)
	assert.Equal(t, []string{"a"}, ids(s.Mutations[1].Snapshot))

	canonical := task("srv-1", "B", records.StatusTodo)
	s = Reduce[records.Task](s, Commit[records.Task]{Mutation: 1, Record: &canonical})
	assert.Equal(t, []string{"srv-1", "a"}, ids(s.Items))
	assert.Equal(t, Committed, s.Mutations[1].Phase)
	assert.Nil(t, s.Mutations[1].Snapshot)
	assert.Empty(t, s.Error)
}

func TestReduce_CreateRollbackRemovesOnlyTempRecord(t *testing.T) {
	s := loaded(task("a", "A", records.StatusTodo))

	s = Reduce[records.Task](s, Begin[records.Task]{Mutation: 1, Op: OpCreate, RecordID: "tmp-1", Record: task("tmp-1", "B", records.StatusTodo)})
	s = Reduce[records.Task](s, Begin[records.Task]{Mutation: 2, Op: OpCreate, RecordID: "tmp-2", Record: task("tmp-2", "C", records.StatusTodo)})
	c := task("srv-2", "C", records.StatusTodo)
	s = Reduce[records.Task](s, Commit[records.Task]{Mutation: 2, Record: &c})

	s = Reduce[records.Task](s, Rollback[records.Task]{Mutation: 1, Err: "Title is required."})
	assert.Equal(t, []string{"srv-2", "a"}, ids(s.Items))
	assert.Equal(t, RolledBack, s.Mutations[1].Phase)
	assert.Equal(t, "Title is required.", s.Mutations[1].Err)
	assert.Equal(t, "Title is required.", s.Error)
}

func TestReduce_UpdateAndDeleteRollbackRestoreSnapshot(t *testing.T) {
	before := []records.Task{task("a", "A", records.StatusTodo), task("b", "B", records.StatusTodo)}

	tests := []struct {
		name  string
		begin Begin[records.Task]
		mid   []string
	}{
		{
			name:  "update",
			begin: Begin[records.Task]{Mutation: 1, Op: OpUpdate, RecordID: "b", Record: task("b", "B2", records.StatusDone)},
			mid:   []string{"a", "b"},
		},
		{
			name:  "delete",
			begin: Begin[records.Task]{Mutation: 1, Op: OpDelete, RecordID: "a"},
			mid:   []string{"b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := loaded(before...)
			s = Reduce[records.Task](s, tt.begin)
			assert.Equal(t, tt.mid, ids(s.Items))

			s = Reduce[records.Task](s, Rollback[records.Task]{Mutation: 1, Err: "boom"})
			if diff := cmp.Diff(before, s.Items); diff != "" {
				t.Errorf("items mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, RolledBack, s.Mutations[1].Phase)
		})
	}
}

func TestReduce_RollbackKeepsOverlappingCommits(t *testing.T) {
	tests := []struct {
		name  string
		begin Begin[records.Task]
		want  []string
	}{
		{
			name:  "update",
			begin: Begin[records.Task]{Mutation: 2, Op: OpUpdate, RecordID: "b", Record: task("b", "B2", records.StatusDone)},
			want:  []string{"srv-a", "b", "c"},
		},
		{
			name:  "delete",
			begin: Begin[records.Task]{Mutation: 2, Op: OpDelete, RecordID: "c"},
			want:  []string{"srv-a", "b", "c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := loaded(task("b", "B", records.StatusTodo), task("c", "C", records.StatusTodo))
			s = Reduce[records.Task](s, Begin[records.Task]{Mutation: 1, Op: OpCreate, RecordID: "tmp-1", Record: task("tmp-1", "A", records.StatusTodo)})
			s = Reduce[records.Task](s, tt.begin)

			canonical := task("srv-a", "A", records.StatusTodo)
			s = Reduce[records.Task](s, Commit[records.Task]{Mutation: 1, Record: &canonical})
			s = Reduce[records.Task](s, Rollback[records.Task]{Mutation: 2, Err: "boom"})

			assert.Equal(t, tt.want, ids(s.Items))
			assert.Equal(t, "B", s.Items[1].Title)
			assert.Equal(t, records.StatusTodo, s.Items[1].Status)
		})
	}
}

func TestReduce_RollbackKeepsOtherUpdates(t *testing.T) {
	s := loaded(task("a", "A", records.StatusTodo), task("b", "B", records.StatusTodo))
	s = Reduce[records.Task](s, Begin[records.Task]{Mutation: 1, Op: OpUpdate, RecordID: "a", Record: task("a", "A2", records.StatusTodo)})
	s = Reduce[records.Task](s, Begin[records.Task]{Mutation: 2, Op: OpUpdate, RecordID: "b", Record: task("b", "B2", records.StatusTodo)})
	s = Reduce[records.Task](s, Commit[records.Task]{Mutation: 2})
	s = Reduce[records.Task](s, Rollback[records.Task]{Mutation: 1, Err: "boom"})

	want := []records.Task{task("a", "A", records.StatusTodo), task("b", "B2", records.StatusTodo)}
	if diff := cmp.Diff(want, s.Items); diff != "" {
		t.Errorf("items mismatch (-want +got):\n%s", diff)
	}
}

func TestReduce_UpdateCommitUsesServerRecord(t *testing.T) {
	s := loaded(task("a", "A", records.StatusTodo))
	s = Reduce[records.Task](s, Begin[records.Task]{Mutation: 1, Op: OpUpdate, RecordID: "a", Record: task("a", "local", records.StatusTodo)})
	assert.Equal(t, "local", s.Items[0].Title)

	srv := task("a", "server", records.StatusDone)
	s = Reduce[records.Task](s, Commit[records.Task]{Mutation: 1, Record: &srv})
	assert.Equal(t, "server", s.Items[0].Title)
	assert.Equal(t, records.StatusDone, s.Items[0].Status)
}

func TestReduce_IgnoresSettledAndUnknownMutations(t *testing.T) {
	s := loaded(task("a", "A", records.StatusTodo))
	s = Reduce[records.Task](s, Begin[records.Task]{Mutation: 1, Op: OpDelete, RecordID: "a"})
	s = Reduce[records.Task](s, Commit[records.Task]{Mutation: 1})
	require.Empty(t, s.Items)

	after := Reduce[records.Task](s, Rollback[records.Task]{Mutation: 1, Err: "late"})
	assert.Empty(t, after.Items)
	assert.Equal(t, Committed, after.Mutations[1].Phase)
	assert.Empty(t, after.Error)

	after = Reduce[records.Task](s, Commit[records.Task]{Mutation: 42})
	assert.Equal(t, s, after)
}

func TestReduce_DoesNotModifyInput(t *testing.T) {
	s := loaded(task("a", "A", records.StatusTodo), task("b", "B", records.StatusTodo))
	items := append([]records.Task(nil), s.Items...)

	_ = Reduce[records.Task](s, Begin[records.Task]{Mutation: 1, Op: OpUpdate, RecordID: "a", Record: task("a", "X", records.StatusDone)})
	_ = Reduce[records.Task](s, Begin[records.Task]{Mutation: 2, Op: OpDelete, RecordID: "b"})

	assert.Equal(t, items, s.Items)
	assert.Empty(t, s.Mutations)
}

func TestReduce_FilterDraftAndErrors(t *testing.T) {
	urgent := task("a", "A", records.StatusTodo)
	urgent.Priority = records.PriorityHigh
	urgent.Tags = []string{"math"}
	s := loaded(urgent, task("b", "B", records.StatusDone))

	s = Reduce[records.Task](s, SetFilter[records.Task]{Filter: insights.Filter{Priority: records.PriorityHigh, Tag: "math"}})
	assert.Equal(t, []string{"a"}, ids(s.Visible()))
	assert.Len(t, s.Items, 2)

	s = Reduce[records.Task](s, SetFilter[records.Task]{})
	assert.Equal(t, []string{"a", "b"}, ids(s.Visible()))

	d := task("", "draft", records.StatusTodo)
	s = Reduce[records.Task](s, SetDraft[records.Task]{Draft: &d})
	d.Title = "changed"
	require.NotNil(t, s.Draft)
	assert.Equal(t, "draft", s.Draft.Title)
	s = Reduce[records.Task](s, SetDraft[records.Task]{})
	assert.Nil(t, s.Draft)

	s = Reduce[records.Task](s, Fail[records.Task]{Err: "offline"})
	assert.Equal(t, "offline", s.Error)
	s = Reduce[records.Task](s, ClearError[records.Task]{})
	assert.Empty(t, s.Error)
}

func TestPhaseAndOpString(t *testing.T) {
	assert.Equal(t, "pending", Pending.String())
	assert.Equal(t, "rolled back", RolledBack.String())
	assert.Equal(t, "committed", Committed.String())
	assert.Equal(t, "create", OpCreate.String())
	assert.Equal(t, "delete", OpDelete.String())
	assert.Equal(t, "unknown", Op(9).String())
}

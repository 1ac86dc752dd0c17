package store

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/edupilot/internal/common"
	"github.com/google/uuid"
)

// TempIDPrefix marks ids minted locally for records the server has not
// confirmed yet.
const TempIDPrefix = "tmp-"

// newTempID is a test seam.
var newTempID = func() string { return TempIDPrefix + uuid.NewString() }

// Store serializes state transitions behind a mutex. Server calls run
// outside the lock, so mutations of different records may overlap; each
// one is reconciled by its id.
type Store[T Record[T]] struct {
	mu    sync.Mutex
	state State[T]
	seq   int64
}

func New[T Record[T]]() *Store[T] {
	return &Store[T]{state: State[T]{Mutations: map[int64]Mutation[T]{}}}
}

// Dispatch applies a to the current state.
func (s *Store[T]) Dispatch(a Action[T]) {
	s.mu.Lock()
	s.state = Reduce(s.state, a)
	s.mu.Unlock()
}

func (s *Store[T]) begin(op Op, id string, rec T) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.state = Reduce[T](s.state, Begin[T]{Mutation: s.seq, Op: op, RecordID: id, Record: rec})
	return s.seq
}

// State returns a copy of the current state.
func (s *Store[T]) State() State[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	st.Items = cloneItems(st.Items)
	st.Mutations = cloneMutations(st.Mutations)
	return st
}

// Items returns every record, unfiltered.
func (s *Store[T]) Items() []T { return s.State().Items }

// Visible returns the records that pass the active filter.
func (s *Store[T]) Visible() []T { return s.State().Visible() }

// Err returns the last user-facing error, or "".
func (s *Store[T]) Err() string { return s.State().Error }

// Phase reports where mutation id stands.
func (s *Store[T]) Phase(id int64) (Phase, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.state.Mutations[id]
	return m.Phase, ok
}

func (s *Store[T]) SetFilter(m Matcher[T]) { s.Dispatch(SetFilter[T]{Filter: m}) }
func (s *Store[T]) SetDraft(d *T)          { s.Dispatch(SetDraft[T]{Draft: d}) }
func (s *Store[T]) ClearError()            { s.Dispatch(ClearError[T]{}) }

// Refresh replaces the list with the result of fetch. On failure the list
// is kept and the error message recorded.
func (s *Store[T]) Refresh(ctx context.Context, fetch func(context.Context) ([]T, error)) error {
	items, err := fetch(ctx)
	if err != nil {
		s.Dispatch(Fail[T]{Err: message(err)})
		return err
	}
	s.Dispatch(Load[T]{Items: items})
	return nil
}

// Create prepends rec under a temporary id, then calls create. The temporary
// record is swapped for the server's on success and removed on failure.
func (s *Store[T]) Create(ctx context.Context, rec T, create func(context.Context) (*T, error)) (int64, *T, error) {
	tempID := newTempID()
	m := s.begin(OpCreate, tempID, rec.WithRecordID(tempID))

	created, err := create(ctx)
	if err != nil {
		s.Dispatch(Rollback[T]{Mutation: m, Err: message(err)})
		return m, nil, err
	}
	s.Dispatch(Commit[T]{Mutation: m, Record: created})
	return m, created, nil
}

// Update replaces record id with updated locally, then calls update. On
// failure the whole list returns to its state before the call.
func (s *Store[T]) Update(ctx context.Context, id string, updated T, update func(context.Context) (*T, error)) (int64, *T, error) {
	m := s.begin(OpUpdate, id, updated)

	rec, err := update(ctx)
	if err != nil {
		s.Dispatch(Rollback[T]{Mutation: m, Err: message(err)})
		return m, nil, err
	}
	s.Dispatch(Commit[T]{Mutation: m, Record: rec})
	return m, rec, nil
}

// Delete removes record id locally, then calls del. On failure the whole
// list returns to its state before the call.
func (s *Store[T]) Delete(ctx context.Context, id string, del func(context.Context) error) (int64, error) {
	var zero T
	m := s.begin(OpDelete, id, zero)

	if err := del(ctx); err != nil {
		s.Dispatch(Rollback[T]{Mutation: m, Err: message(err)})
		return m, err
	}
	s.Dispatch(Commit[T]{Mutation: m})
	return m, nil
}

// Find returns the record with id.
func (s *Store[T]) Find(id string) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := indexOf(s.state.Items, id); i >= 0 {
		return s.state.Items[i], true
	}
	var zero T
	return zero, false
}

// message turns err into the text shown to the user.
func message(err error) string {
	return common.UserMessage(err, err.Error())
}

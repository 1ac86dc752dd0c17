// Package store holds the client-side record lists and applies mutations
// optimistically: the local list changes first and is reconciled once the
// server answers.
//
// All state transitions go through Reduce, a pure function over State and
// an Action. Store is the stateful shell that runs the server calls and
// feeds their outcome back into Reduce.
package store

// Record is anything with a string id that can be re-labelled.
type Record[T any] interface {
	RecordID() string
	WithRecordID(id string) T
}

// Matcher selects visible records.
type Matcher[T any] interface {
	Match(T) bool
}

// Op is the kind of mutation.
type Op int

const (
	OpCreate Op = iota
	OpUpdate
	OpDelete
)

func (o Op) String() string {
	switch o {
	case OpCreate:
		return "create"
	case OpUpdate:
		return "update"
	case OpDelete:
		return "delete"
	}
	return "unknown"
}

// Phase is where a mutation stands.
type Phase int

const (
	Pending Phase = iota
	Committed
	RolledBack
)

func (p Phase) String() string {
	switch p {
	case Pending:
		return "pending"
	case Committed:
		return "committed"
	case RolledBack:
		return "rolled back"
	}
	return "unknown"
}

// Mutation tracks one optimistic change.
type Mutation[T any] struct {
	ID       int64
	Op       Op
	RecordID string
	Phase    Phase
	// Snapshot is the list before the change; kept while Pending. A
	// rollback restores only RecordID from it.
	Snapshot []T
	Err      string
}

// State is everything the store holds.
type State[T any] struct {
	Items     []T
	Mutations map[int64]Mutation[T]
	Filter    Matcher[T]
	Draft     *T
	Error     string
}

// Action is an input to Reduce.
type Action[T any] interface {
	reduce(State[T]) State[T]
}

// Load replaces the list with fresh server data.
type Load[T any] struct {
	Items []T
}

// Begin applies an optimistic change. For OpCreate and OpUpdate Record is
// the new local version; for OpDelete only RecordID is used.
type Begin[T Record[T]] struct {
	Mutation int64
	Op       Op
	RecordID string
	Record   T
}

// Commit reconciles a mutation with the server's canonical record, if any.
type Commit[T Record[T]] struct {
	Mutation int64
	Record   *T
}

// Rollback undoes a failed mutation and records Err as the user-facing
// message.
type Rollback[T Record[T]] struct {
	Mutation int64
	Err      string
}

// SetFilter changes the active filter; nil shows everything.
type SetFilter[T any] struct {
	Filter Matcher[T]
}

// SetDraft replaces the edit draft; nil clears it.
type SetDraft[T any] struct {
	Draft *T
}

// Fail records a user-facing error without touching the list.
type Fail[T any] struct {
	Err string
}

// ClearError drops the current error message.
type ClearError[T any] struct{}

// Reduce returns the state that results from applying a to s. It never
// modifies s.
func Reduce[T any](s State[T], a Action[T]) State[T] {
	return a.reduce(s)
}

func cloneItems[T any](items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	return out
}

func cloneMutations[T any](m map[int64]Mutation[T]) map[int64]Mutation[T] {
	out := make(map[int64]Mutation[T], len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	return out
}

func indexOf[T Record[T]](items []T, id string) int {
	for i, it := range items {
		if it.RecordID() == id {
			return i
		}
	}
	return -1
}

func without[T Record[T]](items []T, id string) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if it.RecordID() != id {
			out = append(out, it)
		}
	}
	return out
}

// restore puts the snapshot version of id back into items. A record that
// is gone again is placed after its nearest surviving predecessor.
func restore[T Record[T]](items, snapshot []T, id string) []T {
	si := indexOf(snapshot, id)
	if si < 0 {
		return cloneItems(items)
	}
	rec := snapshot[si]

	out := cloneItems(items)
	if i := indexOf(out, id); i >= 0 {
		out[i] = rec
		return out
	}

	at := 0
	for j := si - 1; j >= 0; j-- {
		if i := indexOf(out, snapshot[j].RecordID()); i >= 0 {
			at = i + 1
			break
		}
	}
	out = append(out, rec)
	copy(out[at+1:], out[at:])
	out[at] = rec
	return out
}

func (a Load[T]) reduce(s State[T]) State[T] {
	s.Items = cloneItems(a.Items)
	return s
}

func (a Begin[T]) reduce(s State[T]) State[T] {
	snapshot := cloneItems(s.Items)

	switch a.Op {
	case OpCreate:
		items := make([]T, 0, len(s.Items)+1)
		items = append(items, a.Record)
		s.Items = append(items, s.Items...)
	case OpUpdate:
		items := cloneItems(s.Items)
		if i := indexOf(items, a.RecordID); i >= 0 {
			items[i] = a.Record
		}
		s.Items = items
	case OpDelete:
		s.Items = without(s.Items, a.RecordID)
	}

	s.Mutations = cloneMutations(s.Mutations)
	s.Mutations[a.Mutation] = Mutation[T]{
		ID:       a.Mutation,
		Op:       a.Op,
		RecordID: a.RecordID,
		Phase:    Pending,
		Snapshot: snapshot,
	}
	return s
}

func (a Commit[T]) reduce(s State[T]) State[T] {
	m, ok := s.Mutations[a.Mutation]
	if !ok || m.Phase != Pending {
		return s
	}

	if a.Record != nil && m.Op != OpDelete {
		items := cloneItems(s.Items)
		if i := indexOf(items, m.RecordID); i >= 0 {
			items[i] = *a.Record
		}
		s.Items = items
	}

	m.Phase = Committed
	m.Snapshot = nil
	s.Mutations = cloneMutations(s.Mutations)
	s.Mutations[a.Mutation] = m
	return s
}

func (a Rollback[T]) reduce(s State[T]) State[T] {
	m, ok := s.Mutations[a.Mutation]
	if !ok || m.Phase != Pending {
		return s
	}

	// only the target record is touched; other mutations may have landed since
	if m.Op == OpCreate {
		s.Items = without(s.Items, m.RecordID)
	} else {
		s.Items = restore(s.Items, m.Snapshot, m.RecordID)
	}

	m.Phase = RolledBack
	m.Snapshot = nil
	m.Err = a.Err
	s.Mutations = cloneMutations(s.Mutations)
	s.Mutations[a.Mutation] = m
	s.Error = a.Err
	return s
}

func (a SetFilter[T]) reduce(s State[T]) State[T] {
	s.Filter = a.Filter
	return s
}

func (a SetDraft[T]) reduce(s State[T]) State[T] {
	if a.Draft == nil {
		s.Draft = nil
		return s
	}
	d := *a.Draft
	s.Draft = &d
	return s
}

func (a Fail[T]) reduce(s State[T]) State[T] {
	s.Error = a.Err
	return s
}

func (ClearError[T]) reduce(s State[T]) State[T] {
	s.Error = ""
	return s
}

// Visible returns the items that pass the active filter.
func (s State[T]) Visible() []T {
	if s.Filter == nil {
		return cloneItems(s.Items)
	}
	out := make([]T, 0, len(s.Items))
	for _, it := range s.Items {
		if s.Filter.Match(it) {
			out = append(out, it)
		}
	}
	return out
}

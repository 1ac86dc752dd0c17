package records

// Priority of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Status of a task.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusBlocked    Status = "blocked"
	StatusDone       Status = "done"
)

// Statuses lists every status in board order.
var Statuses = []Status{StatusTodo, StatusInProgress, StatusBlocked, StatusDone}

func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusBlocked, StatusDone:
		return true
	}
	return false
}

// Mood recorded with a study session.
type Mood string

const (
	MoodFocused Mood = "focused"
	MoodAverage Mood = "average"
	MoodTired   Mood = "tired"
)

// Moods lists every mood.
var Moods = []Mood{MoodFocused, MoodAverage, MoodTired}

func (m Mood) Valid() bool {
	switch m {
	case MoodFocused, MoodAverage, MoodTired:
		return true
	}
	return false
}

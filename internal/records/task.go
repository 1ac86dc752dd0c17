package records

import (
	"strings"
	"time"

	"github.com/dmitrijs2005/edupilot/internal/common"
)

// Task is a to-do item.
type Task struct {
	ID          string    `json:"id" gorm:"primaryKey;size:36"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description" gorm:"not null;default:''"`
	Tags        []string  `json:"tags" gorm:"serializer:json;not null"`
	Priority    Priority  `json:"priority" gorm:"size:16;not null"`
	Status      Status    `json:"status" gorm:"size:16;not null"`
	DueDate     time.Time `json:"dueDate" gorm:"not null"`
	CreatedAt   time.Time `json:"createdAt" gorm:"not null;index;autoCreateTime:false"`
	UpdatedAt   time.Time `json:"updatedAt" gorm:"not null;autoUpdateTime:false"`
}

// TaskInput is the body of a create request. Only Title is required.
type TaskInput struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Tags        *[]string  `json:"tags"`
	Priority    *Priority  `json:"priority"`
	Status      *Status    `json:"status"`
	DueDate     *Timestamp `json:"dueDate"`
}

// TaskPatch is the body of a partial update. Absent fields are left alone.
type TaskPatch struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Tags        *[]string  `json:"tags,omitempty"`
	Priority    *Priority  `json:"priority,omitempty"`
	Status      *Status    `json:"status,omitempty"`
	DueDate     *Timestamp `json:"dueDate,omitempty"`
}

// NormalizeTags trims every tag and drops the empty ones. Order and
// duplicates are kept. The result is never nil.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			out = append(out, tag)
		}
	}
	return out
}

func validatePriority(p *Priority) error {
	if p != nil && !p.Valid() {
		return common.NewValidationError("priority", "Priority must be one of low, medium, high.")
	}
	return nil
}

func validateStatus(s *Status) error {
	if s != nil && !s.Valid() {
		return common.NewValidationError("status", "Status must be one of todo, in_progress, blocked, done.")
	}
	return nil
}

// NewTask validates in and materializes a full record with the given id and
// creation time. Missing optional fields receive their defaults.
func NewTask(in TaskInput, id string, now time.Time) (Task, error) {
	var title string
	if in.Title != nil {
		title = strings.TrimSpace(*in.Title)
	}
	if title == "" {
		return Task{}, common.NewValidationError("title", "Title is required.")
	}
	if err := validatePriority(in.Priority); err != nil {
		return Task{}, err
	}
	if err := validateStatus(in.Status); err != nil {
		return Task{}, err
	}

	t := Task{
		ID:        id,
		Title:     title,
		Tags:      []string{},
		Priority:  PriorityMedium,
		Status:    StatusTodo,
		DueDate:   now,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if in.Description != nil {
		t.Description = strings.TrimSpace(*in.Description)
	}
	if in.Tags != nil {
		t.Tags = NormalizeTags(*in.Tags)
	}
	if in.Priority != nil {
		t.Priority = *in.Priority
	}
	if in.Status != nil {
		t.Status = *in.Status
	}
	if in.DueDate != nil {
		t.DueDate = in.DueDate.Time()
	}
	return t, nil
}

// Normalize validates the patch and returns a copy with text trimmed and
// tags cleaned. A present title must not trim to empty.
func (p TaskPatch) Normalize() (TaskPatch, error) {
	out := p
	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		if title == "" {
			return TaskPatch{}, common.NewValidationError("title", "Title is required.")
		}
		out.Title = &title
	}
	if p.Description != nil {
		d := strings.TrimSpace(*p.Description)
		out.Description = &d
	}
	if p.Tags != nil {
		tags := NormalizeTags(*p.Tags)
		out.Tags = &tags
	}
	if err := validatePriority(p.Priority); err != nil {
		return TaskPatch{}, err
	}
	if err := validateStatus(p.Status); err != nil {
		return TaskPatch{}, err
	}
	return out, nil
}

// Empty reports whether the patch carries no field at all.
func (p TaskPatch) Empty() bool {
	return len(p.Assignments()) == 0
}

// Assignments lists the present fields as column/value pairs in a stable
// order. Tags are returned as []string.
func (p TaskPatch) Assignments() []Assignment {
	var a []Assignment
	if p.Title != nil {
		a = append(a, Assignment{"title", *p.Title})
	}
	if p.Description != nil {
		a = append(a, Assignment{"description", *p.Description})
	}
	if p.Tags != nil {
		a = append(a, Assignment{"tags", *p.Tags})
	}
	if p.Priority != nil {
		a = append(a, Assignment{"priority", string(*p.Priority)})
	}
	if p.Status != nil {
		a = append(a, Assignment{"status", string(*p.Status)})
	}
	if p.DueDate != nil {
		a = append(a, Assignment{"due_date", p.DueDate.Time()})
	}
	return a
}

// Apply copies the present fields onto t. UpdatedAt is not touched.
func (p TaskPatch) Apply(t *Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Tags != nil {
		t.Tags = append([]string{}, (*p.Tags)...)
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.DueDate != nil {
		t.DueDate = p.DueDate.Time()
	}
}

// RecordID returns the task id.
func (t Task) RecordID() string { return t.ID }

// WithRecordID returns a copy of t carrying id.
func (t Task) WithRecordID(id string) Task {
	t.ID = id
	t.Tags = append([]string{}, t.Tags...)
	return t
}

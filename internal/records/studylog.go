package records

import (
	"math"
	"strings"
	"time"

	"github.com/dmitrijs2005/edupilot/internal/common"
)

// Duration bounds for a study session, in minutes.
const (
	MinDuration     = 5
	MaxDuration     = 720
	DefaultDuration = 25
)

// StudyLog is one recorded study session.
type StudyLog struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	Subject   string    `json:"subject" gorm:"not null"`
	Duration  int       `json:"duration" gorm:"not null"`
	Mood      Mood      `json:"mood" gorm:"size:16;not null"`
	Notes     string    `json:"notes" gorm:"not null;default:''"`
	Date      time.Time `json:"date" gorm:"not null;index"`
	CreatedAt time.Time `json:"createdAt" gorm:"not null;autoCreateTime:false"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"not null;autoUpdateTime:false"`
}

// StudyLogInput is the body of a create request. Only Subject is required.
type StudyLogInput struct {
	Subject  *string    `json:"subject"`
	Duration *float64   `json:"duration"`
	Mood     *Mood      `json:"mood"`
	Notes    *string    `json:"notes"`
	Date     *Timestamp `json:"date"`
}

// StudyLogPatch is the body of a partial update.
type StudyLogPatch struct {
	Subject  *string    `json:"subject,omitempty"`
	Duration *float64   `json:"duration,omitempty"`
	Mood     *Mood      `json:"mood,omitempty"`
	Notes    *string    `json:"notes,omitempty"`
	Date     *Timestamp `json:"date,omitempty"`
}

// ClampDuration rounds d to whole minutes and forces it into
// [MinDuration, MaxDuration]. NaN maps to MinDuration.
func ClampDuration(d float64) int {
	if math.IsNaN(d) || d < MinDuration {
		return MinDuration
	}
	if d > MaxDuration {
		return MaxDuration
	}
	return int(math.Round(d))
}

func validateMood(m *Mood) error {
	if m != nil && !m.Valid() {
		return common.NewValidationError("mood", "Mood must be one of focused, average, tired.")
	}
	return nil
}

// NewStudyLog validates in and materializes a full record.
func NewStudyLog(in StudyLogInput, id string, now time.Time) (StudyLog, error) {
	var subject string
	if in.Subject != nil {
		subject = strings.TrimSpace(*in.Subject)
	}
	if subject == "" {
		return StudyLog{}, common.NewValidationError("subject", "Subject is required.")
	}
	if err := validateMood(in.Mood); err != nil {
		return StudyLog{}, err
	}

	l := StudyLog{
		ID:        id,
		Subject:   subject,
		Duration:  DefaultDuration,
		Mood:      MoodFocused,
		Date:      now,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if in.Duration != nil {
		l.Duration = ClampDuration(*in.Duration)
	}
	if in.Mood != nil {
		l.Mood = *in.Mood
	}
	if in.Notes != nil {
		l.Notes = strings.TrimSpace(*in.Notes)
	}
	if in.Date != nil {
		l.Date = in.Date.Time()
	}
	return l, nil
}

// Normalize validates the patch and returns a copy with the subject trimmed
// and the duration clamped. Notes are stored as sent.
func (p StudyLogPatch) Normalize() (StudyLogPatch, error) {
	out := p
	if p.Subject != nil {
		subject := strings.TrimSpace(*p.Subject)
		if subject == "" {
			return StudyLogPatch{}, common.NewValidationError("subject", "Subject is required.")
		}
		out.Subject = &subject
	}
	if p.Duration != nil {
		d := float64(ClampDuration(*p.Duration))
		out.Duration = &d
	}
	if err := validateMood(p.Mood); err != nil {
		return StudyLogPatch{}, err
	}
	return out, nil
}

// Assignments lists the present fields as column/value pairs in a stable order.
func (p StudyLogPatch) Assignments() []Assignment {
	var a []Assignment
	if p.Subject != nil {
		a = append(a, Assignment{"subject", *p.Subject})
	}
	if p.Duration != nil {
		a = append(a, Assignment{"duration", ClampDuration(*p.Duration)})
	}
	if p.Mood != nil {
		a = append(a, Assignment{"mood", string(*p.Mood)})
	}
	if p.Notes != nil {
		a = append(a, Assignment{"notes", *p.Notes})
	}
	if p.Date != nil {
		a = append(a, Assignment{"date", p.Date.Time()})
	}
	return a
}

// Apply copies the present fields onto l. UpdatedAt is not touched.
func (p StudyLogPatch) Apply(l *StudyLog) {
	if p.Subject != nil {
		l.Subject = *p.Subject
	}
	if p.Duration != nil {
		l.Duration = ClampDuration(*p.Duration)
	}
	if p.Mood != nil {
		l.Mood = *p.Mood
	}
	if p.Notes != nil {
		l.Notes = *p.Notes
	}
	if p.Date != nil {
		l.Date = p.Date.Time()
	}
}

// RecordID returns the study log id.
func (l StudyLog) RecordID() string { return l.ID }

// WithRecordID returns a copy of l carrying id.
func (l StudyLog) WithRecordID(id string) StudyLog {
	l.ID = id
	return l
}

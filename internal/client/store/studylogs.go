package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/dmitrijs2005/edupilot/internal/client/repositories/drafts"
	"github.com/dmitrijs2005/edupilot/internal/common"
	"github.com/dmitrijs2005/edupilot/internal/insights"
	"github.com/dmitrijs2005/edupilot/internal/records"
)

type StudyLogAPI interface {
	ListStudyLogs(ctx context.Context) ([]records.StudyLog, error)
	CreateStudyLog(ctx context.Context, in records.StudyLogInput) (*records.StudyLog, error)
	UpdateStudyLog(ctx context.Context, id string, patch records.StudyLogPatch) (*records.StudyLog, error)
	DeleteStudyLog(ctx context.Context, id string) error
}

// DraftRepository persists unsent form input.
type DraftRepository interface {
	Get(ctx context.Context, kind string) ([]byte, error)
	Save(ctx context.Context, kind string, body []byte) error
	Delete(ctx context.Context, kind string) error
}

// StudyLogStore is the study log list of the client together with the
// draft of the next entry.
type StudyLogStore struct {
	*Store[records.StudyLog]
	api    StudyLogAPI
	drafts DraftRepository
	now    func() time.Time
}

// NewStudyLogStore builds the store. repo may be nil, in which case the
// draft lives in memory only.
func NewStudyLogStore(api StudyLogAPI, repo DraftRepository) *StudyLogStore {
	return &StudyLogStore{
		Store:  New[records.StudyLog](),
		api:    api,
		drafts: repo,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Load fetches the list from the server and restores a saved draft.
func (s *StudyLogStore) Load(ctx context.Context) error {
	if err := s.RestoreDraft(ctx); err != nil {
		return err
	}
	return s.Refresh(ctx, s.api.ListStudyLogs)
}

// Add validates in locally, shows the entry right away and asks the server
// to create it. The list is kept newest first by date.
func (s *StudyLogStore) Add(ctx context.Context, in records.StudyLogInput) (*records.StudyLog, error) {
	l, err := records.NewStudyLog(in, "", s.now())
	if err != nil {
		s.Dispatch(Fail[records.StudyLog]{Err: message(err)})
		return nil, err
	}

	_, created, err := s.Create(ctx, l, func(ctx context.Context) (*records.StudyLog, error) {
		return s.api.CreateStudyLog(ctx, in)
	})
	if err != nil {
		return nil, err
	}
	s.Dispatch(Load[records.StudyLog]{Items: byDateDesc(s.Items())})
	return created, nil
}

// Patch applies p to entry id locally and sends it to the server.
func (s *StudyLogStore) Patch(ctx context.Context, id string, p records.StudyLogPatch) (*records.StudyLog, error) {
	p, err := p.Normalize()
	if err != nil {
		s.Dispatch(Fail[records.StudyLog]{Err: message(err)})
		return nil, err
	}

	current, ok := s.Find(id)
	if !ok {
		s.Dispatch(Fail[records.StudyLog]{Err: "Study log not found."})
		return nil, common.ErrorNotFound
	}
	updated := current
	p.Apply(&updated)
	updated.UpdatedAt = records.Touch(current.UpdatedAt, s.now())

	_, rec, err := s.Update(ctx, id, updated, func(ctx context.Context) (*records.StudyLog, error) {
		return s.api.UpdateStudyLog(ctx, id, p)
	})
	return rec, err
}

// Remove drops entry id locally and on the server.
func (s *StudyLogStore) Remove(ctx context.Context, id string) error {
	_, err := s.Delete(ctx, id, func(ctx context.Context) error {
		return s.api.DeleteStudyLog(ctx, id)
	})
	return err
}

// Summary totals the minutes of every loaded entry.
func (s *StudyLogStore) Summary() insights.StudySummary {
	return insights.SummarizeStudy(s.Items())
}

// Draft returns the current draft, if any.
func (s *StudyLogStore) Draft() *records.StudyLogInput {
	d := s.State().Draft
	if d == nil {
		return nil
	}
	return draftInput(*d)
}

// SaveDraft keeps in as the draft, in memory and in the draft repository.
func (s *StudyLogStore) SaveDraft(ctx context.Context, in records.StudyLogInput) error {
	var d records.StudyLog
	if in.Subject != nil {
		d.Subject = *in.Subject
	}
	if in.Duration != nil {
		d.Duration = records.ClampDuration(*in.Duration)
	}
	if in.Mood != nil {
		d.Mood = *in.Mood
	}
	if in.Notes != nil {
		d.Notes = *in.Notes
	}
	s.SetDraft(&d)

	if s.drafts == nil {
		return nil
	}
	body, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to encode draft: %w", err)
	}
	return s.drafts.Save(ctx, drafts.KindStudyLog, body)
}

// DiscardDraft forgets the draft.
func (s *StudyLogStore) DiscardDraft(ctx context.Context) error {
	s.SetDraft(nil)
	if s.drafts == nil {
		return nil
	}
	return s.drafts.Delete(ctx, drafts.KindStudyLog)
}

// RestoreDraft loads the persisted draft into the state. A corrupt draft is
// dropped.
func (s *StudyLogStore) RestoreDraft(ctx context.Context) error {
	if s.drafts == nil {
		return nil
	}
	body, err := s.drafts.Get(ctx, drafts.KindStudyLog)
	if err != nil {
		return err
	}
	if body == nil {
		return nil
	}
	var d records.StudyLog
	if err := json.Unmarshal(body, &d); err != nil {
		return s.drafts.Delete(ctx, drafts.KindStudyLog)
	}
	s.SetDraft(&d)
	return nil
}

func draftInput(d records.StudyLog) *records.StudyLogInput {
	in := &records.StudyLogInput{}
	if d.Subject != "" {
		in.Subject = &d.Subject
	}
	if d.Duration != 0 {
		dur := float64(d.Duration)
		in.Duration = &dur
	}
	if d.Mood != "" {
		in.Mood = &d.Mood
	}
	if d.Notes != "" {
		in.Notes = &d.Notes
	}
	return in
}

func byDateDesc(logs []records.StudyLog) []records.StudyLog {
	sort.SliceStable(logs, func(i, j int) bool {
		return logs[i].Date.After(logs[j].Date)
	})
	return logs
}

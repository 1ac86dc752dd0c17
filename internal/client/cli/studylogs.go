package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/edupilot/internal/common"
	"github.com/dmitrijs2005/edupilot/internal/records"
)

// Logs refreshes the study log and prints it.
func (a *App) Logs(ctx context.Context) error {
	if err := a.logs.Load(ctx); err != nil {
		fmt.Fprintln(a.out, a.styles.ErrorLine(userMessage(err)))
	}
	fmt.Fprintln(a.out, a.styles.StudyLogList(a.logs.Visible()))
	return nil
}

// AddLog prompts for a study session, starting from the saved draft. The
// draft is saved after every answer and dropped once the server accepts
// the entry.
func (a *App) AddLog(ctx context.Context) error {
	if a.logs.Draft() == nil {
		if err := a.logs.RestoreDraft(ctx); err != nil {
			a.log.Warn(ctx, "failed to restore draft", "error", err)
		}
	}

	in := records.StudyLogInput{}
	if d := a.logs.Draft(); d != nil {
		in = *d
		fmt.Fprintln(a.out, "Continuing your saved draft.")
	}

	subject, err := GetTextWithDefault(a.reader, "Subject", deref(in.Subject), a.out)
	if err != nil {
		return err
	}
	in.Subject = &subject
	if err := a.logs.SaveDraft(ctx, in); err != nil {
		return err
	}

	def := strconv.Itoa(records.DefaultDuration)
	if in.Duration != nil {
		def = strconv.FormatFloat(*in.Duration, 'f', -1, 64)
	}
	minutes, err := GetTextWithDefault(a.reader, "Duration in minutes", def, a.out)
	if err != nil {
		return err
	}
	d, err := strconv.ParseFloat(minutes, 64)
	if err != nil {
		return common.NewValidationError("duration", "Duration must be a number of minutes.")
	}
	in.Duration = &d
	if err := a.logs.SaveDraft(ctx, in); err != nil {
		return err
	}

	mood := string(records.MoodFocused)
	if in.Mood != nil {
		mood = string(*in.Mood)
	}
	mood, err = GetTextWithDefault(a.reader, "Mood (focused, average, tired)", mood, a.out)
	if err != nil {
		return err
	}
	m := records.Mood(mood)
	in.Mood = &m

	notes, err := GetTextWithDefault(a.reader, "Notes", deref(in.Notes), a.out)
	if err != nil {
		return err
	}
	in.Notes = &notes
	if err := a.logs.SaveDraft(ctx, in); err != nil {
		return err
	}

	l, err := a.logs.Add(ctx, in)
	if err != nil {
		return err
	}
	if err := a.logs.DiscardDraft(ctx); err != nil {
		a.log.Warn(ctx, "failed to discard draft", "error", err)
	}
	fmt.Fprintf(a.out, "Logged %d min of %s.\n", l.Duration, l.Subject)
	return nil
}

// DeleteLog handles "dellog <id>".
func (a *App) DeleteLog(ctx context.Context, args []string) error {
	if len(args) != 1 {
		printlnFn("Usage: dellog <id>")
		return nil
	}
	if err := a.logs.Remove(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Deleted.")
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

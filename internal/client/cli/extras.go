package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/edupilot/internal/client/tui"
	"github.com/dmitrijs2005/edupilot/internal/filex"
	"github.com/dmitrijs2005/edupilot/internal/netx"
	"github.com/dmitrijs2005/edupilot/internal/records"
)

// runFocus and downloadExport are test seams.
var runFocus = tui.RunFocus
var downloadExport = netx.DownloadPresignedURL

// Dashboard refreshes both lists and prints the summary.
func (a *App) Dashboard(ctx context.Context) error {
	for _, load := range []func(context.Context) error{a.tasks.Load, a.logs.Load} {
		if err := load(ctx); err != nil {
			fmt.Fprintln(a.out, a.styles.ErrorLine(userMessage(err)))
			break
		}
	}
	fmt.Fprintln(a.out, a.styles.Dashboard(a.tasks.Metrics(), a.logs.Summary()))
	return nil
}

// Focus runs a focus timer and, when logged in, offers to record the
// focused time as a study session.
func (a *App) Focus(ctx context.Context) error {
	minutes := a.config.FocusMinutes
	if minutes <= 0 {
		minutes = tui.DefaultFocusMinutes
	}

	res, err := runFocus(ctx, time.Duration(minutes)*time.Minute, a.styles, a.in, a.out)
	if err != nil {
		return err
	}

	focused := res.Minutes()
	if res.Completed {
		fmt.Fprintf(a.out, "Session complete: %d min.\n", focused)
	} else {
		fmt.Fprintf(a.out, "Stopped after %d min.\n", focused)
	}
	if focused < 1 || !a.isLoggedIn() {
		return nil
	}

	ok, err := Confirm(a.reader, fmt.Sprintf("Log %d min as a study session?", focused), a.out)
	if err != nil || !ok {
		return err
	}
	subject, err := getSimpleText(a.reader, "Subject", a.out)
	if err != nil {
		return err
	}

	d := float64(focused)
	mood := records.MoodFocused
	l, err := a.logs.Add(ctx, records.StudyLogInput{Subject: &subject, Duration: &d, Mood: &mood})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Logged %d min of %s.\n", l.Duration, l.Subject)
	return nil
}

// Export asks the server for a snapshot and optionally downloads it.
func (a *App) Export(ctx context.Context) error {
	res, err := a.api.Export(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Exported to %s\n%s\n", res.Key, res.URL)

	path, err := getSimpleText(a.reader, "Save to file (empty to skip)", a.out)
	if err != nil || path == "" {
		return err
	}

	body, err := downloadExport(ctx, res.URL)
	if err != nil {
		return err
	}
	if err := filex.EnsureParentDir(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, body, 0o600); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Saved %d bytes to %s\n", len(body), path)
	return nil
}

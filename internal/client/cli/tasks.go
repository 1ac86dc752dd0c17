package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/edupilot/internal/common"
	"github.com/dmitrijs2005/edupilot/internal/insights"
	"github.com/dmitrijs2005/edupilot/internal/records"
)

const dueDateLayout = "2006-01-02"

// Tasks refreshes the task list and prints the visible part of it. When the
// server cannot be reached the cached list is shown.
func (a *App) Tasks(ctx context.Context) error {
	if err := a.tasks.Load(ctx); err != nil {
		fmt.Fprintln(a.out, a.styles.ErrorLine(userMessage(err)))
	}
	fmt.Fprintln(a.out, a.styles.TaskList(a.tasks.Visible(), a.tasks.ActiveFilter()))
	return nil
}

// AddTask prompts for the task fields and creates it.
func (a *App) AddTask(ctx context.Context) error {
	in, err := a.promptTask()
	if err != nil {
		return err
	}

	t, err := a.tasks.Add(ctx, in)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, a.styles.TaskCard(*t))
	return nil
}

func (a *App) promptTask() (records.TaskInput, error) {
	var in records.TaskInput

	title, err := getSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return in, err
	}
	in.Title = &title

	desc, err := GetMultiline(a.reader, "Description", a.out)
	if err != nil {
		return in, err
	}
	if desc != "" {
		in.Description = &desc
	}

	tags, err := getSimpleText(a.reader, "Tags (comma separated)", a.out)
	if err != nil {
		return in, err
	}
	if list := SplitList(tags); len(list) > 0 {
		in.Tags = &list
	}

	prio, err := GetTextWithDefault(a.reader, "Priority (low, medium, high)", string(records.PriorityMedium), a.out)
	if err != nil {
		return in, err
	}
	p := records.Priority(prio)
	in.Priority = &p

	due, err := getSimpleText(a.reader, "Due date (YYYY-MM-DD, empty for today)", a.out)
	if err != nil {
		return in, err
	}
	if due != "" {
		d, err := parseDueDate(due)
		if err != nil {
			return in, err
		}
		in.DueDate = records.At(d)
	}
	return in, nil
}

func parseDueDate(s string) (time.Time, error) {
	d, err := time.ParseInLocation(dueDateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, common.NewValidationError("dueDate", "Due date must look like 2006-01-02.")
	}
	return d.UTC(), nil
}

// SetStatus handles "status <id> <status>".
func (a *App) SetStatus(ctx context.Context, args []string) error {
	if len(args) != 2 {
		printlnFn("Usage: status <id> <todo|in_progress|blocked|done>")
		return nil
	}

	t, err := a.tasks.SetStatus(ctx, args[0], records.Status(args[1]))
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, a.styles.TaskCard(*t))
	return nil
}

// DeleteTask handles "deltask <id>".
func (a *App) DeleteTask(ctx context.Context, args []string) error {
	if len(args) != 1 {
		printlnFn("Usage: deltask <id>")
		return nil
	}
	if err := a.tasks.Remove(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Deleted.")
	return nil
}

// Filter handles "filter [status=..] [priority=..] [tag=..]". Without
// arguments it clears the filter.
func (a *App) Filter(ctx context.Context, args []string) error {
	f, err := parseFilter(args)
	if err != nil {
		return err
	}
	a.tasks.Filter(f)
	fmt.Fprintln(a.out, a.styles.TaskList(a.tasks.Visible(), f))
	return nil
}

// parseFilter reads key=value pairs. "any" or an empty value means no
// constraint on that key.
func parseFilter(args []string) (insights.Filter, error) {
	var f insights.Filter
	for _, arg := range args {
		k, v, ok := strings.Cut(arg, "=")
		if !ok {
			return insights.Filter{}, common.NewValidationError("filter", fmt.Sprintf("Expected key=value, got %q.", arg))
		}
		if v == "any" {
			v = ""
		}

		switch k {
		case "status":
			s := records.Status(v)
			if v != "" && !s.Valid() {
				return insights.Filter{}, common.NewValidationError("status", "Status must be one of todo, in_progress, blocked, done.")
			}
			f.Status = s
		case "priority":
			p := records.Priority(v)
			if v != "" && !p.Valid() {
				return insights.Filter{}, common.NewValidationError("priority", "Priority must be one of low, medium, high.")
			}
			f.Priority = p
		case "tag":
			f.Tag = strings.TrimSpace(v)
		default:
			return insights.Filter{}, common.NewValidationError("filter", fmt.Sprintf("Unknown filter %q.", k))
		}
	}
	return f, nil
}

package insights

import (
	"sort"

	"github.com/dmitrijs2005/edupilot/internal/records"
)

// CountsByStatus counts tasks per status. Every known status is present in
// the result, possibly with zero.
func CountsByStatus(tasks []records.Task) map[records.Status]int {
	counts := make(map[records.Status]int, len(records.Statuses))
	for _, s := range records.Statuses {
		counts[s] = 0
	}
	for _, t := range tasks {
		counts[t.Status]++
	}
	return counts
}

// CompletionPercent is the rounded share of done tasks, 0 for an empty list.
func CompletionPercent(tasks []records.Task) int {
	if len(tasks) == 0 {
		return 0
	}
	done := 0
	for _, t := range tasks {
		if t.Status == records.StatusDone {
			done++
		}
	}
	return (done*100 + len(tasks)/2) / len(tasks)
}

// TagUniverse returns every tag used by tasks, sorted and without duplicates.
func TagUniverse(tasks []records.Task) []string {
	seen := make(map[string]struct{})
	for _, t := range tasks {
		for _, tag := range t.Tags {
			seen[tag] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for tag := range seen {
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}

// SoonestDue returns at most n unfinished tasks ordered by due date, earliest
// first. Ties keep their input order.
func SoonestDue(tasks []records.Task, n int) []records.Task {
	if n <= 0 {
		return []records.Task{}
	}
	open := make([]records.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Status != records.StatusDone {
			open = append(open, t)
		}
	}
	sort.SliceStable(open, func(i, j int) bool {
		return open[i].DueDate.Before(open[j].DueDate)
	})
	if len(open) > n {
		open = open[:n]
	}
	return open
}

// StudySummary aggregates study sessions.
type StudySummary struct {
	Sessions     int
	TotalMinutes int
	ByMood       map[records.Mood]int
}

// SummarizeStudy totals minutes overall and per mood.
func SummarizeStudy(logs []records.StudyLog) StudySummary {
	s := StudySummary{ByMood: make(map[records.Mood]int, len(records.Moods))}
	for _, m := range records.Moods {
		s.ByMood[m] = 0
	}
	for _, l := range logs {
		s.Sessions++
		s.TotalMinutes += l.Duration
		s.ByMood[l.Mood] += l.Duration
	}
	return s
}

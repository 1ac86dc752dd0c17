package jobs

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/edupilot/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePurger struct {
	calls atomic.Int32
	n     int64
	err   error
}

func (f *fakePurger) PurgeExpiredSessions(context.Context) (int64, error) {
	f.calls.Add(1)
	return f.n, f.err
}

func textLogger() (logging.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(&buf, nil))), &buf
}

func TestPurgeSessions_LogsCount(t *testing.T) {
	log, buf := textLogger()
	p := &fakePurger{n: 3}

	PurgeSessions(context.Background(), p, log)()

	assert.Equal(t, int32(1), p.calls.Load())
	assert.Contains(t, buf.String(), "count=3")
}

func TestPurgeSessions_QuietWhenNothingExpired(t *testing.T) {
	log, buf := textLogger()

	PurgeSessions(context.Background(), &fakePurger{}, log)()

	assert.Empty(t, buf.String())
}

func TestPurgeSessions_LogsFailure(t *testing.T) {
	log, buf := textLogger()

	PurgeSessions(context.Background(), &fakePurger{err: errors.New("db down")}, log)()

	assert.Contains(t, buf.String(), "session purge failed")
	assert.Contains(t, buf.String(), "db down")
}

func TestSchedulePurge(t *testing.T) {
	s := NewScheduler(time.UTC, logging.Nop{})

	_, err := s.SchedulePurge(context.Background(), "@every 1h", &fakePurger{})
	require.NoError(t, err)
	assert.Equal(t, 1, s.Len())

	_, err = s.SchedulePurge(context.Background(), "not a schedule", &fakePurger{})
	assert.Error(t, err)
	assert.Equal(t, 1, s.Len())
}

func TestRun_FiresAndStops(t *testing.T) {
	s := NewScheduler(time.UTC, logging.Nop{})
	p := &fakePurger{}
	ctx, cancel := context.WithCancel(context.Background())

	_, err := s.SchedulePurge(ctx, "@every 1s", p)
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return p.calls.Load() > 0 }, 3*time.Second, 50*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop")
	}
}

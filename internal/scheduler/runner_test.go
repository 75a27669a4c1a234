package scheduler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunner_ScansImmediatelyAndOnTicks(t *testing.T) {
	var calls atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r := NewRunner(10*time.Millisecond, func(context.Context) error {
		if calls.Add(1) == 3 {
			cancel()
		}
		return nil
	}, quietLogger())

	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("runner did not stop after cancellation")
	}
	assert.GreaterOrEqual(t, calls.Load(), int32(3))
}

func TestRunner_FailedCycleDoesNotStopLoop(t *testing.T) {
	var calls atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r := NewRunner(5*time.Millisecond, func(context.Context) error {
		if calls.Add(1) >= 2 {
			cancel()
		}
		return errors.New("database is locked")
	}, quietLogger())

	require.NoError(t, r.Run(ctx))
	assert.GreaterOrEqual(t, calls.Load(), int32(2))
}

func TestRunner_RejectsInvalidConfig(t *testing.T) {
	r := NewRunner(0, func(context.Context) error { return nil }, nil)
	assert.Error(t, r.Run(context.Background()))

	r = NewRunner(time.Second, nil, nil)
	assert.Error(t, r.Run(context.Background()))
}

package srv

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriodic_RunsUntilShutdown(t *testing.T) {
	var calls atomic.Int32
	p := NewPeriodic("test", 5*time.Millisecond, func(ctx context.Context) error {
		if calls.Add(1) == 2 {
			return errors.New("logged and ignored")
		}
		return nil
	})

	done := make(chan error, 1)
	go func() { done <- p.Start(context.Background()) }()

	require.Eventually(t, func() bool { return calls.Load() >= 3 }, time.Second, time.Millisecond)
	require.NoError(t, p.Shutdown(context.Background()))
	// second shutdown must not panic on a closed channel
	require.NoError(t, p.Shutdown(context.Background()))

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("periodic service did not stop")
	}
}

func TestPeriodic_StopsOnContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := NewPeriodic("test", time.Hour, func(ctx context.Context) error { return nil })

	done := make(chan error, 1)
	go func() { done <- p.Start(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("periodic service ignored context cancellation")
	}
}

func TestCleanup_CallsFunc(t *testing.T) {
	called := false
	svc := NewCleanup(func() error { called = true; return nil })

	require.NoError(t, svc.Start(context.Background()))
	require.NoError(t, svc.Shutdown(context.Background()))
	assert.True(t, called)
}

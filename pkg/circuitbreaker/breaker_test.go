package circuitbreaker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errUpstream = errors.New("upstream down")

func failN(b *Breaker, n int) {
	for i := 0; i < n; i++ {
		_ = b.Execute(context.Background(), func() error { return errUpstream })
	}
}

func TestBreakerStaysClosedOnSuccess(t *testing.T) {
	b := New("test", Settings{FailureThreshold: 2})

	for i := 0; i < 10; i++ {
		require.NoError(t, b.Execute(context.Background(), func() error { return nil }))
	}
	assert.Equal(t, StateClosed, b.State())
}

func TestBreakerTripsAfterConsecutiveFailures(t *testing.T) {
	b := New("test", Settings{FailureThreshold: 3})

	failN(b, 3)
	assert.Equal(t, StateOpen, b.State())

	err := b.Execute(context.Background(), func() error {
		t.Fatal("upstream must not be called while open")
		return nil
	})
	assert.ErrorIs(t, err, ErrOpen)
}

func TestBreakerSuccessResetsFailureCount(t *testing.T) {
	b := New("test", Settings{FailureThreshold: 3})

	failN(b, 2)
	require.NoError(t, b.Execute(context.Background(), func() error { return nil }))
	failN(b, 2)

	assert.Equal(t, StateClosed, b.State())
}

func TestBreakerProbesAfterOpenTimeout(t *testing.T) {
	b := New("test", Settings{
		FailureThreshold: 1,
		OpenTimeout:      5 * time.Millisecond,
		SuccessThreshold: 1,
	})

	failN(b, 1)
	require.Equal(t, StateOpen, b.State())

	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, StateHalfOpen, b.State())

	require.NoError(t, b.Execute(context.Background(), func() error { return nil }))
	assert.Equal(t, StateClosed, b.State())
}

func TestBreakerHalfOpenFailureReopens(t *testing.T) {
	b := New("test", Settings{
		FailureThreshold: 1,
		OpenTimeout:      5 * time.Millisecond,
	})

	failN(b, 1)
	time.Sleep(10 * time.Millisecond)
	require.Equal(t, StateHalfOpen, b.State())

	failN(b, 1)
	assert.Equal(t, StateOpen, b.State())
}

func TestBreakerLimitsHalfOpenProbes(t *testing.T) {
	b := New("test", Settings{
		FailureThreshold: 1,
		OpenTimeout:      5 * time.Millisecond,
		HalfOpenMax:      1,
		SuccessThreshold: 2,
	})

	failN(b, 1)
	time.Sleep(10 * time.Millisecond)
	require.Equal(t, StateHalfOpen, b.State())

	started := make(chan struct{})
	release := make(chan struct{})
	go func() {
		_ = b.Execute(context.Background(), func() error {
			close(started)
			<-release
			return nil
		})
	}()
	<-started

	err := b.Execute(context.Background(), func() error { return nil })
	assert.ErrorIs(t, err, ErrTooManyRequests)
	close(release)
}

func TestBreakerCountsPanicAsFailure(t *testing.T) {
	b := New("test", Settings{FailureThreshold: 1})

	assert.Panics(t, func() {
		_ = b.Execute(context.Background(), func() error { panic("boom") })
	})
	assert.Equal(t, StateOpen, b.State())
}

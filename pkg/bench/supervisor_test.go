package bench

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSupervisor_CompletesWithinDeadline(t *testing.T) {
	def := mustDefinition(t, quickOpts(Options{
		Timeout: time.Second,
	}))
	c := newCase(def, def.Variations()[0])

	results, err := (&Supervisor{}).Execute(context.Background(), c)
	require.NoError(t, err)
	assert.Len(t, results, 4)
}

func TestSupervisor_TimeoutProducesNoResult(t *testing.T) {
	def := mustDefinition(t, quickOpts(Options{
		Timeout: 50 * time.Millisecond,
		MaxTime: 10 * time.Second,
		Action: func(ctx context.Context, args Args) error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(5 * time.Second):
				return nil
			}
		},
	}))
	c := newCase(def, def.Variations()[0])

	start := time.Now()
	results, err := (&Supervisor{}).Execute(context.Background(), c)
	waited := time.Since(start)

	var te *TimeoutError
	require.ErrorAs(t, err, &te)
	assert.Nil(t, results)
	assert.Equal(t, c.ID(), te.CaseID)
	assert.Equal(t, 50*time.Millisecond, te.Deadline)
	assert.GreaterOrEqual(t, te.Elapsed, 50*time.Millisecond)
	// The wait is bounded even though the action wanted 5 seconds.
	assert.Less(t, waited, time.Second)
}

func TestSupervisor_AbandonsNonCooperativeAction(t *testing.T) {
	release := make(chan struct{})
	def := mustDefinition(t, quickOpts(Options{
		Timeout: 50 * time.Millisecond,
		MaxTime: 10 * time.Second,
		Action: func(ctx context.Context, args Args) error {
			// Ignores its context entirely.
			<-release
			return nil
		},
	}))
	c := newCase(def, def.Variations()[0])

	start := time.Now()
	_, err := (&Supervisor{}).Execute(context.Background(), c)
	waited := time.Since(start)
	close(release)

	var te *TimeoutError
	require.ErrorAs(t, err, &te)
	assert.Less(t, waited, time.Second)
}

func TestSupervisor_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	def := mustDefinition(t, quickOpts(Options{
		Timeout: 10 * time.Second,
		MaxTime: 10 * time.Second,
		Action: func(ctx context.Context, args Args) error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(5 * time.Second):
				return nil
			}
		},
	}))
	c := newCase(def, def.Variations()[0])

	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := (&Supervisor{}).Execute(ctx, c)
	assert.ErrorIs(t, err, context.Canceled)
}

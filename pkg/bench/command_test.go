//go:build unix

package bench

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandAction_RunsProcess(t *testing.T) {
	action := CommandAction("true")
	assert.NoError(t, action(context.Background(), nil))
}

func TestCommandAction_ReportsFailureWithOutput(t *testing.T) {
	action := CommandAction("sh", "-c", "echo diagnostics >&2; exit 3")
	err := action(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "diagnostics")
}

func TestCommandAction_AppendsVariationFlags(t *testing.T) {
	// Fails unless the flags arrive sorted after the fixed args.
	action := CommandAction("sh", "-c", `test "$1 $2" = "--mode=fast --size=10"`, "check")
	err := action(context.Background(), Args{"size": 10, "mode": "fast"})
	assert.NoError(t, err)
}

func TestCommandAction_KilledOnDeadline(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := CommandAction("sleep", "5")(ctx, nil)
	waited := time.Since(start)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, waited, time.Second)
}

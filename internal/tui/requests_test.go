package tui

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestTracker_Supersede(t *testing.T) {
	tr := newRequestTracker()

	ctxA, genA := tr.begin(context.Background(), slotView)
	ctxB, genB := tr.begin(context.Background(), slotView)

	require.Error(t, ctxA.Err(), "first request is cancelled when superseded")
	assert.NoError(t, ctxB.Err())
	assert.Greater(t, genB, genA)

	assert.False(t, tr.current(slotView, genA))
	assert.True(t, tr.current(slotView, genB))

	assert.False(t, tr.finish(slotView, genA))
	assert.True(t, tr.finish(slotView, genB))
	assert.False(t, tr.finish(slotView, genB), "finish is one-shot")
}

func TestRequestTracker_SlotsIndependent(t *testing.T) {
	tr := newRequestTracker()

	_, viewGen := tr.begin(context.Background(), slotView)
	authCtx, authGen := tr.begin(context.Background(), slotAuth)

	tr.cancel(slotView)
	assert.False(t, tr.current(slotView, viewGen))
	assert.True(t, tr.current(slotAuth, authGen))
	assert.NoError(t, authCtx.Err())

	tr.cancelAll()
	assert.Error(t, authCtx.Err())
	assert.False(t, tr.finish(slotAuth, authGen))
}

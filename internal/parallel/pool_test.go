package parallel

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolRunsAllTasks(t *testing.T) {
	p := New(4)
	defer p.Close()

	var completed int64
	ctx := context.Background()
	const n = 50
	for i := 0; i < n; i++ {
		err := p.Submit(ctx, func() {
			atomic.AddInt64(&completed, 1)
		})
		require.NoError(t, err)
	}

	p.Close()
	assert.Equal(t, int64(n), atomic.LoadInt64(&completed))
}

func TestPoolSubmitAfterCloseFails(t *testing.T) {
	p := New(2)
	p.Close()

	err := p.Submit(context.Background(), func() {})
	assert.ErrorIs(t, err, ErrPoolClosed)
}

func TestPoolSubmitRespectsContext(t *testing.T) {
	p := New(1)
	defer p.Close()

	// Saturate the single worker with a blocking task so the queue can't
	// immediately accept the next Submit.
	block := make(chan struct{})
	require.NoError(t, p.Submit(context.Background(), func() { <-block }))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	err := p.Submit(ctx, func() {})
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	close(block)
}

func TestPoolCloseIsIdempotent(t *testing.T) {
	p := New(2)
	p.Close()
	assert.NotPanics(t, func() { p.Close() })
}

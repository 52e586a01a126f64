package output

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsyncDeliversInOrder(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	a := NewAsync(rec, 16)

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	wg.Add(1)
	go a.Run(ctx, &wg)

	a.Sustain([]float64{220})
	for i := 0; i < 10; i++ {
		a.Play(PlaybackEvent{Beat: uint64(i), Audible: true})
	}

	require.Eventually(t, func() bool { return len(rec.Events()) == 10 }, time.Second, time.Millisecond)
	cancel()
	wg.Wait()

	for i, ev := range rec.Events() {
		assert.Equal(t, uint64(i), ev.Beat)
	}
	assert.Equal(t, [][]float64{{220}}, rec.sustains)
	assert.Zero(t, a.Dropped())

	require.NoError(t, a.Close())
	assert.True(t, rec.closed)
}

func TestAsyncDropsWhenFull(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	a := NewAsync(rec, 2)

	// nothing is draining the queue yet
	for i := 0; i < 5; i++ {
		a.Play(PlaybackEvent{Beat: uint64(i)})
	}
	assert.Equal(t, uint64(3), a.Dropped())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var wg sync.WaitGroup
	wg.Add(1)
	err := a.Run(ctx, &wg)
	assert.ErrorIs(t, err, context.Canceled)

	events := rec.Events()
	require.Len(t, events, 2)
	assert.Equal(t, uint64(0), events[0].Beat)
	assert.Equal(t, uint64(1), events[1].Beat)
}

func TestNewAsyncDefaultSize(t *testing.T) {
	t.Parallel()

	a := NewAsync(&recorder{}, 0)
	assert.Equal(t, DefaultQueueSize, cap(a.queue))
}

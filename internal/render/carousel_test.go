package render

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type manualTicker struct {
	c       chan time.Time
	stopped bool
}

func (m *manualTicker) C() <-chan time.Time { return m.c }
func (m *manualTicker) Stop()               { m.stopped = true }

func TestCarousel_IndexAt(t *testing.T) {
	c := NewCarousel([]string{"a", "b", "c"})

	tests := []struct {
		elapsed time.Duration
		want    int
	}{
		{0, 0},
		{4999 * time.Millisecond, 0},
		{5 * time.Second, 1},
		{10 * time.Second, 2},
		{15 * time.Second, 0},
		{31 * time.Second, 0},
		{-time.Second, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, c.IndexAt(tt.elapsed), tt.elapsed.String())
	}
}

func TestCarousel_StaticImages(t *testing.T) {
	for _, images := range [][]string{nil, {"only"}} {
		c := NewCarousel(images)

		assert.False(t, c.Rotates())
		assert.Zero(t, c.IndexAt(time.Hour))

		started := false
		c.Run(context.Background(), func(time.Duration) Ticker {
			started = true
			return &manualTicker{c: make(chan time.Time)}
		}, func(int) {})

		assert.False(t, started)
	}
}

func TestCarousel_RunLoops(t *testing.T) {
	c := NewCarousel([]string{"a", "b", "c"})
	ticker := &manualTicker{c: make(chan time.Time)}

	ctx, cancel := context.WithCancel(context.Background())
	shown := make(chan int, 16)
	done := make(chan struct{})

	var period time.Duration

	go func() {
		defer close(done)

		c.Run(ctx, func(d time.Duration) Ticker {
			period = d
			return ticker
		}, func(i int) { shown <- i })
	}()

	for range 5 {
		ticker.c <- time.Now()
	}

	cancel()
	<-done

	close(shown)

	var got []int
	for i := range shown {
		got = append(got, i)
	}

	require.Equal(t, []int{0, 1, 2, 0, 1, 2}, got)
	assert.Equal(t, CarouselInterval, period)
	assert.True(t, ticker.stopped)
	assert.EqualValues(t, 5000, c.IntervalMillis())
}

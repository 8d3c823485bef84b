package render

import (
	"context"
	"time"
)

// CarouselInterval is how long each hero image stays on screen.
const CarouselInterval = 5 * time.Second

// Ticker is the part of time.Ticker the carousel needs.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFunc starts a ticker firing every d.
type TickerFunc func(d time.Duration) Ticker

type timeTicker struct {
	t *time.Ticker
}

func (t timeTicker) C() <-chan time.Time { return t.t.C }
func (t timeTicker) Stop()               { t.t.Stop() }

// NewTicker is the TickerFunc backed by time.NewTicker.
func NewTicker(d time.Duration) Ticker {
	return timeTicker{t: time.NewTicker(d)}
}

// Carousel cycles through the images of a hero section.
//
// The page only carries the image list and IntervalMillis; the rotation
// itself runs in static/js/site.js. IndexAt and Run are the timing model that
// script follows.
type Carousel struct {
	Images []string
}

// NewCarousel returns a carousel over images.
func NewCarousel(images []string) Carousel {
	return Carousel{Images: images}
}

// Rotates reports whether the carousel changes image at all.
func (c Carousel) Rotates() bool {
	return len(c.Images) > 1
}

// IntervalMillis is the period handed to the browser script.
func (c Carousel) IntervalMillis() int64 {
	return CarouselInterval.Milliseconds()
}

// IndexAt returns the image shown after elapsed time. The sequence loops
// back to the first image after the last one.
func (c Carousel) IndexAt(elapsed time.Duration) int {
	if !c.Rotates() || elapsed < 0 {
		return 0
	}

	return int(elapsed/CarouselInterval) % len(c.Images)
}

// Run calls show with the index of each image as it comes up, starting with
// the first one, until ctx ends. With one image or none no ticker is
// started and show is called once.
func (c Carousel) Run(ctx context.Context, newTicker TickerFunc, show func(int)) {
	if len(c.Images) == 0 {
		return
	}

	show(0)

	if !c.Rotates() {
		return
	}

	t := newTicker(CarouselInterval)
	defer t.Stop()

	i := 0

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C():
			i = (i + 1) % len(c.Images)
			show(i)
		}
	}
}

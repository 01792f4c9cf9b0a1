package clock

import (
	"sync"
	"time"
)

// Handle cancels a scheduled callback. Cancel is idempotent.
type Handle interface {
	Cancel()
}

// Clock provides wall-clock time and fixed-interval scheduling
type Clock interface {
	Now() time.Time
	// Every calls fn once per interval until the returned handle is cancelled
	Every(interval time.Duration, fn func()) Handle
}

type realClock struct{}

// New returns a Clock backed by the system time and time.Ticker
func New() Clock {
	return realClock{}
}

func (realClock) Now() time.Time {
	return time.Now()
}

func (realClock) Every(interval time.Duration, fn func()) Handle {
	h := &tickerHandle{stop: make(chan struct{})}
	ticker := time.NewTicker(interval)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-h.stop:
				return
			case <-ticker.C:
				// A tick racing with Cancel is dropped here; callers still
				// guard against one late delivery with their own token.
				select {
				case <-h.stop:
					return
				default:
				}
				fn()
			}
		}
	}()

	return h
}

type tickerHandle struct {
	once sync.Once
	stop chan struct{}
}

func (h *tickerHandle) Cancel() {
	h.once.Do(func() { close(h.stop) })
}

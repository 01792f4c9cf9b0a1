package clock

import (
	"sync"
	"time"
)

// Fake is a manually driven Clock for tests. Callbacks run synchronously
// inside Advance, each one with Now() set to its scheduled fire time.
type Fake struct {
	mu      sync.Mutex
	now     time.Time
	seq     int
	entries []*fakeEntry
}

type fakeEntry struct {
	seq       int
	interval  time.Duration
	next      time.Time
	fn        func()
	cancelled bool
	clock     *Fake
}

// NewFake creates a fake clock starting at the given time
func NewFake(start time.Time) *Fake {
	return &Fake{now: start}
}

func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *Fake) Every(interval time.Duration, fn func()) Handle {
	f.mu.Lock()
	defer f.mu.Unlock()

	if interval <= 0 {
		interval = time.Second
	}
	f.seq++
	e := &fakeEntry{
		seq:      f.seq,
		interval: interval,
		next:     f.now.Add(interval),
		fn:       fn,
		clock:    f,
	}
	f.entries = append(f.entries, e)
	return e
}

// Advance moves the clock forward by d, firing every due callback in
// chronological order (registration order breaks ties).
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	target := f.now.Add(d)

	for {
		e := f.nextDueLocked(target)
		if e == nil {
			break
		}
		f.now = e.next
		e.next = e.next.Add(e.interval)
		f.mu.Unlock()
		e.fn()
		f.mu.Lock()
	}

	f.now = target
	f.mu.Unlock()
}

// Pending returns the number of live scheduled callbacks
func (f *Fake) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, e := range f.entries {
		if !e.cancelled {
			n++
		}
	}
	return n
}

func (f *Fake) nextDueLocked(target time.Time) *fakeEntry {
	var due *fakeEntry
	live := f.entries[:0]
	for _, e := range f.entries {
		if e.cancelled {
			continue
		}
		live = append(live, e)
		if e.next.After(target) {
			continue
		}
		if due == nil || e.next.Before(due.next) || (e.next.Equal(due.next) && e.seq < due.seq) {
			due = e
		}
	}
	f.entries = live
	return due
}

func (e *fakeEntry) Cancel() {
	e.clock.mu.Lock()
	defer e.clock.mu.Unlock()
	e.cancelled = true
}

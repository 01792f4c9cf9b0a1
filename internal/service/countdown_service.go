package service

import (
	"sync"
	"time"

	"github.com/andy/pomodolist/internal/clock"
	"github.com/andy/pomodolist/internal/domain"
	"github.com/rs/zerolog/log"
)

// tickInterval is the resolution of every scheduled recompute
const tickInterval = time.Second

// CountdownService manages the countdown/overrun state machine
type CountdownService interface {
	// Configure sets a new duration and returns to Paused with a full cycle
	Configure(d time.Duration)

	// Toggle switches between Paused and Running; from Overrun it pauses
	Toggle()

	// Reset returns to Paused with the full duration and no overrun
	Reset()

	// Snapshot recomputes derived values at the current time
	Snapshot() domain.Countdown

	// Close cancels every outstanding schedule
	Close()
}

type countdownService struct {
	mu    sync.Mutex
	clock clock.Clock

	phase           domain.CountdownPhase
	total           int64
	remaining       int64
	startedAt       time.Time
	leftOffset      time.Duration // elapsed before startedAt
	overrunBaseline int64
	overrun         int64

	handle clock.Handle
	gen    uint64 // bumped on every cancel; stale ticks compare against it
}

// NewCountdownService creates a paused countdown with the given duration
func NewCountdownService(c clock.Clock, d time.Duration) CountdownService {
	s := &countdownService{clock: c, phase: domain.CountdownPaused}
	s.configureLocked(d)
	return s
}

func (s *countdownService) Configure(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.configureLocked(d)
	log.Debug().Int64("total_seconds", s.total).Msg("countdown configured")
}

func (s *countdownService) configureLocked(d time.Duration) {
	s.cancelLocked()
	total := int64(d / time.Second)
	if total < 0 {
		total = 0
	}
	s.total = total
	s.remaining = total
	s.phase = domain.CountdownPaused
	s.leftOffset = 0
	s.startedAt = time.Time{}
	s.overrunBaseline = 0
	s.overrun = 0
}

func (s *countdownService) Toggle() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()

	switch s.phase {
	case domain.CountdownPaused:
		if s.remaining == 0 {
			// Re-arm a fresh cycle
			s.remaining = s.total
			s.leftOffset = 0
			s.overrunBaseline = 0
			s.overrun = 0
		}
		s.startedAt = now
		s.phase = domain.CountdownRunning

		if s.remaining == 0 {
			s.enterOverrunLocked()
		} else {
			s.scheduleLocked()
		}
		log.Debug().Int64("remaining_seconds", s.remaining).Msg("countdown resumed")

	case domain.CountdownRunning:
		s.refreshLocked(now)
		if s.phase == domain.CountdownRunning {
			// Keep sub-second progress across the pause
			s.leftOffset += now.Sub(s.startedAt)
			s.cancelLocked()
			s.phase = domain.CountdownPaused
			log.Debug().Int64("remaining_seconds", s.remaining).Msg("countdown paused")
			return
		}
		// Expired during the refresh; fall through to pausing the overrun
		s.pauseOverrunLocked(now)

	case domain.CountdownOverrun:
		s.pauseOverrunLocked(now)
	}
}

func (s *countdownService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelLocked()
	s.phase = domain.CountdownPaused
	s.remaining = s.total
	s.leftOffset = 0
	s.startedAt = time.Time{}
	s.overrunBaseline = 0
	s.overrun = 0
	log.Debug().Msg("countdown reset")
}

func (s *countdownService) Snapshot() domain.Countdown {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.refreshLocked(s.clock.Now())
	return domain.Countdown{
		Phase:                  s.phase,
		TotalSeconds:           s.total,
		RemainingSeconds:       s.remaining,
		StartedAt:              s.startedAt,
		LeftOffsetSeconds:      int64(s.leftOffset / time.Second),
		OverrunBaselineSeconds: s.overrunBaseline,
		OverrunSeconds:         s.overrun,
	}
}

func (s *countdownService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked()
}

// scheduleLocked arms the shared one-second tick for the current phase
func (s *countdownService) scheduleLocked() {
	s.cancelLocked()
	gen := s.gen
	s.handle = s.clock.Every(tickInterval, func() { s.tick(gen) })
}

func (s *countdownService) cancelLocked() {
	if s.handle != nil {
		s.handle.Cancel()
		s.handle = nil
	}
	s.gen++
}

func (s *countdownService) tick(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		return
	}
	s.refreshLocked(s.clock.Now())
}

// elapsedLocked returns whole seconds consumed in the current cycle at now
func (s *countdownService) elapsedLocked(now time.Time) int64 {
	return int64((s.leftOffset + now.Sub(s.startedAt)) / time.Second)
}

// refreshLocked recomputes remaining and overrun from wall-clock deltas
func (s *countdownService) refreshLocked(now time.Time) {
	switch s.phase {
	case domain.CountdownRunning:
		remaining := s.total - s.elapsedLocked(now)
		if remaining < 0 {
			remaining = 0
		}
		s.remaining = remaining
		if s.remaining == 0 {
			s.enterOverrunLocked()
			s.refreshLocked(now)
		}

	case domain.CountdownOverrun:
		past := s.elapsedLocked(now) - s.total
		if past < 0 {
			past = 0
		}
		s.overrun = s.overrunBaseline + past
	}
}

func (s *countdownService) enterOverrunLocked() {
	s.phase = domain.CountdownOverrun
	s.remaining = 0
	// Swap the countdown tick for the overrun tick
	s.scheduleLocked()
	log.Info().Int64("total_seconds", s.total).Msg("countdown expired, tracking overrun")
}

func (s *countdownService) pauseOverrunLocked(now time.Time) {
	s.refreshLocked(now)
	s.cancelLocked()
	s.overrunBaseline = s.overrun
	s.phase = domain.CountdownPaused
	log.Debug().Int64("overrun_seconds", s.overrun).Msg("overrun paused")
}

package domain

import "time"

type CountdownPhase string

const (
	CountdownPaused  CountdownPhase = "paused"
	CountdownRunning CountdownPhase = "running"
	CountdownOverrun CountdownPhase = "overrun"
)

// Countdown is a point-in-time view of the countdown engine
type Countdown struct {
	Phase                  CountdownPhase
	TotalSeconds           int64
	RemainingSeconds       int64
	StartedAt              time.Time // most recent resume
	LeftOffsetSeconds      int64     // elapsed before StartedAt
	OverrunBaselineSeconds int64
	OverrunSeconds         int64
}

// IsPaused reports whether nothing is accumulating
func (c Countdown) IsPaused() bool {
	return c.Phase == CountdownPaused
}

// ElapsedSeconds returns countdown time consumed in the current cycle
func (c Countdown) ElapsedSeconds() int64 {
	return c.TotalSeconds - c.RemainingSeconds
}

// Progress returns the elapsed fraction of the cycle in [0, 1]
func (c Countdown) Progress() float64 {
	if c.TotalSeconds <= 0 {
		return 1
	}
	return float64(c.ElapsedSeconds()) / float64(c.TotalSeconds)
}

// Remaining formats the remaining time as [HH:]MM:SS
func (c Countdown) Remaining() string {
	return FormatClock(c.RemainingSeconds)
}

// Overrun formats time past expiry as -[HH:]MM:SS, or "" when there is none
func (c Countdown) Overrun() string {
	if c.OverrunSeconds <= 0 {
		return ""
	}
	return "-" + FormatClock(c.OverrunSeconds)
}

// Preset is a named countdown duration offered by the presentation
type Preset struct {
	Label    string
	Duration time.Duration
}

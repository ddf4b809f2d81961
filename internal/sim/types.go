package sim

import (
	"fmt"
	"strings"
)

// Sample is one observable record: the schedule temperature plus the total
// energy and total magnetization of the lattice at the moment of sampling.
// Per-site normalization is left to the reporting layer.
type Sample struct {
	Temperature   float64 `json:"temperature"`
	Energy        float64 `json:"energy"`
	Magnetization float64 `json:"magnetization"`
}

// Schedule is an ordered sequence of temperatures to simulate.
type Schedule []float64

// DefaultSchedule returns the standard batch range [1.0, 3.0) stepped by
// 0.1. Values are built by index so float accumulation cannot drop or
// duplicate the last step.
func DefaultSchedule() Schedule {
	s := make(Schedule, 20)
	for i := range s {
		s[i] = 1.0 + 0.1*float64(i)
	}
	return s
}

// RangeSchedule returns temperatures start, start+step, ... up to but
// excluding stop.
func RangeSchedule(start, stop, step float64) (Schedule, error) {
	if step <= 0 {
		return nil, fmt.Errorf("%w: step %g", ErrInvalidSchedule, step)
	}
	var s Schedule
	for i := 0; ; i++ {
		v := start + step*float64(i)
		if v >= stop-1e-9 {
			break
		}
		s = append(s, v)
	}
	if len(s) == 0 {
		return nil, fmt.Errorf("%w: empty range [%g, %g)", ErrInvalidSchedule, start, stop)
	}
	return s, nil
}

// Metric accumulates a summary statistic over sampled observables.
type Metric interface {
	Name() string
	Observe(s Sample)
	Value() float64
	Reset()
}

// Observer receives progress notifications. Purely observational; the
// runner never depends on what an observer does.
type Observer interface {
	// OnTemperature fires at the start of each temperature block.
	OnTemperature(temp float64)
	// OnSweep fires every tenth sweep within a temperature block.
	OnSweep(temp float64, sweep, total int)
}

// Mode selects between the live single-temperature view and the batch
// temperature sweep.
type Mode int

const (
	ModeFull Mode = iota
	ModeVisual
)

func (m Mode) String() string {
	switch m {
	case ModeVisual:
		return "visual"
	default:
		return "full"
	}
}

// ParseMode maps a mode name to its Mode. Unrecognized names are rejected
// rather than silently falling back to batch mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "full":
		return ModeFull, nil
	case "visual":
		return ModeVisual, nil
	default:
		return ModeFull, fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

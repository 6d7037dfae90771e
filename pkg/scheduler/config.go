package scheduler

import (
	"errors"
	"fmt"

	"github.com/harrisonrobin/dayplan/pkg/clock"
	"github.com/harrisonrobin/dayplan/pkg/model"
)

// ErrInvalidConfig is returned by New for configurations that cannot drive a search.
var ErrInvalidConfig = errors.New("invalid scheduler config")

const (
	DefaultBreakDuration = 15
	DefaultGranularity   = 15
)

// LunchBreak describes the preferred lunch window. It only affects slot search
// when Reserve is set.
type LunchBreak struct {
	Duration      int
	PreferredTime clock.Clock
	Reserve       bool
}

// Window returns the lunch interval as [start, end).
func (l LunchBreak) Window() (clock.Clock, clock.Clock) {
	return l.PreferredTime, l.PreferredTime.Add(l.Duration)
}

// Config is the immutable input a Scheduler is built from.
type Config struct {
	WorkingHours  model.WorkingHours
	BreakDuration int // minutes; gaps shorter than this are rounded up into a break
	Granularity   int // minutes between candidate start times
	LunchBreak    LunchBreak
}

// DefaultConfig returns a 09:00-17:00 day with 15 minute breaks and scan steps.
func DefaultConfig() Config {
	return Config{
		WorkingHours: model.WorkingHours{
			Start: clock.MustParse("09:00"),
			End:   clock.MustParse("17:00"),
		},
		BreakDuration: DefaultBreakDuration,
		Granularity:   DefaultGranularity,
		LunchBreak: LunchBreak{
			Duration:      60,
			PreferredTime: clock.MustParse("12:00"),
		},
	}
}

// Validate reports configuration errors. An empty working window is allowed;
// it simply yields empty schedules.
func (c Config) Validate() error {
	if c.Granularity <= 0 {
		return fmt.Errorf("%w: granularity must be positive, got %d", ErrInvalidConfig, c.Granularity)
	}
	if c.BreakDuration < 0 {
		return fmt.Errorf("%w: break duration must not be negative, got %d", ErrInvalidConfig, c.BreakDuration)
	}
	if c.LunchBreak.Reserve && c.LunchBreak.Duration <= 0 {
		return fmt.Errorf("%w: reserved lunch break needs a positive duration", ErrInvalidConfig)
	}
	return nil
}

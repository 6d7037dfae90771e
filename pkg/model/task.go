package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/harrisonrobin/dayplan/pkg/clock"
)

// ErrInvalidTask is returned by Task.Validate.
var ErrInvalidTask = errors.New("invalid task")

// Task is a unit of work to place on the day's schedule.
type Task struct {
	ID       string       `json:"id" yaml:"id"`
	Name     string       `json:"name" yaml:"name"`
	Duration int          `json:"duration" yaml:"duration"` // minutes
	Priority Priority     `json:"priority" yaml:"priority"`
	Deadline *clock.Clock `json:"deadline,omitempty" yaml:"deadline,omitempty"`
}

// HasDeadline reports whether the task carries a deadline.
func (t Task) HasDeadline() bool { return t.Deadline != nil }

// Validate checks the fields a task needs before it can be scheduled.
func (t Task) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidTask)
	}
	if t.Duration <= 0 {
		return fmt.Errorf("%w: %q has non-positive duration %d", ErrInvalidTask, t.Name, t.Duration)
	}
	if !t.Priority.IsValid() {
		return fmt.Errorf("%w: %q: %w", ErrInvalidTask, t.Name, ErrInvalidPriority)
	}
	return nil
}

// PlacedTask is a Task with a concrete slot on the schedule.
type PlacedTask struct {
	Task              `yaml:",inline"`
	StartTime         clock.Clock    `json:"startTime" yaml:"start_time"`
	EndTime           clock.Clock    `json:"endTime" yaml:"end_time"`
	OptimizationScore float64        `json:"optimizationScore" yaml:"optimization_score"`
	State             PlacementState `json:"state" yaml:"state"`
}

// Span returns the number of minutes between start and end, breaks included.
func (p PlacedTask) Span() int { return p.EndTime.Sub(p.StartTime) }

// Overlaps reports whether [start, end) intersects the task's slot.
// Touching endpoints do not overlap.
func (p PlacedTask) Overlaps(start, end clock.Clock) bool {
	return start < p.EndTime && end > p.StartTime
}

// WorkingHours is the daily window tasks may be placed in.
type WorkingHours struct {
	Start clock.Clock `json:"start" yaml:"start"`
	End   clock.Clock `json:"end" yaml:"end"`
}

// Minutes returns the length of the window; zero or negative means nothing fits.
func (w WorkingHours) Minutes() int { return w.End.Sub(w.Start) }

// Metrics summarises the quality of a schedule. All values are in [0,1].
type Metrics struct {
	Efficiency float64 `json:"efficiency" yaml:"efficiency"`
	Coverage   float64 `json:"coverage" yaml:"coverage"`
	Balance    float64 `json:"balance" yaml:"balance"`
}

package scheduler

import (
	"math"

	"github.com/harrisonrobin/dayplan/pkg/clock"
	"github.com/harrisonrobin/dayplan/pkg/model"
)

const (
	// urgencyHorizon is the 8 hour reference window deadlines are measured against.
	urgencyHorizon = 480.0
	// deadlineTolerance is how far (4h) a slot may sit from the deadline and still score.
	deadlineTolerance = 240.0
	minFactor         = 0.1

	peakEfficiency    = 1.3
	goodEfficiency    = 1.1
	offHourEfficiency = 0.7
	highPriorityBonus = 1.2
)

// Urgency scores how pressing a task is at the given time of day.
func Urgency(task model.Task, current clock.Clock) float64 {
	base := task.Priority.Weight()
	if !task.HasDeadline() {
		return base
	}

	until := float64(task.Deadline.Sub(current))
	multiplier := math.Max(minFactor, 1-until/urgencyHorizon)
	return base * (1 + multiplier)
}

func isPeakHour(hour int) bool {
	switch hour {
	case 9, 10, 14, 15:
		return true
	}
	return false
}

func isGoodHour(hour int) bool {
	switch hour {
	case 8, 11, 13, 16:
		return true
	}
	return false
}

// TimeOfDayEfficiency rates the hour a task would start in.
func TimeOfDayEfficiency(task model.Task, start clock.Clock) float64 {
	hour := start.Hour()

	score := 1.0
	switch {
	case isPeakHour(hour):
		score = peakEfficiency
	case isGoodHour(hour):
		score = goodEfficiency
	case hour < 8 || hour > 17:
		score = offHourEfficiency
	}

	if task.Priority == model.PriorityHigh && isPeakHour(hour) {
		score *= highPriorityBonus
	}
	return score
}

// DeadlineProximity rewards starts near the task's deadline.
func DeadlineProximity(task model.Task, start clock.Clock) float64 {
	if !task.HasDeadline() {
		return 1.0
	}
	diff := math.Abs(float64(start.Sub(*task.Deadline)))
	return math.Max(minFactor, 1-diff/deadlineTolerance)
}

// SlotScore is the composite desirability of starting task at start.
func SlotScore(task model.Task, start clock.Clock) float64 {
	return Urgency(task, start) * TimeOfDayEfficiency(task, start) * DeadlineProximity(task, start)
}

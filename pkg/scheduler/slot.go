package scheduler

import (
	"github.com/harrisonrobin/dayplan/pkg/clock"
	"github.com/harrisonrobin/dayplan/pkg/model"
)

// Slot is a candidate [StartTime, EndTime) interval with its score.
type Slot struct {
	StartTime clock.Clock
	EndTime   clock.Clock
	Score     float64
}

func conflicts(schedule []model.PlacedTask, start, end clock.Clock) bool {
	for _, placed := range schedule {
		if placed.Overlaps(start, end) {
			return true
		}
	}
	return false
}

// FindOptimalSlot scans [workStart, workEnd] in Granularity steps and returns
// the highest scoring slot that does not collide with schedule. Ties keep the
// earliest candidate. ok is false when nothing fits.
func (s *Scheduler) FindOptimalSlot(task model.Task, schedule []model.PlacedTask, workStart, workEnd clock.Clock) (best Slot, ok bool) {
	if task.Duration <= 0 {
		return Slot{}, false
	}

	lunch := s.cfg.LunchBreak
	lunchStart, lunchEnd := lunch.Window()

	bestScore := -1.0
	last := workEnd.Add(-task.Duration)
	for start := workStart; start <= last; start = start.Add(s.cfg.Granularity) {
		end := start.Add(task.Duration)

		if conflicts(schedule, start, end) || end > workEnd {
			continue
		}
		if lunch.Reserve && start < lunchEnd && end > lunchStart {
			continue
		}

		score := SlotScore(task, start)
		if score > bestScore {
			bestScore = score
			best = Slot{StartTime: start, EndTime: end, Score: score}
			ok = true
		}
	}
	return best, ok
}

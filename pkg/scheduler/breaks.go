package scheduler

import (
	"github.com/harrisonrobin/dayplan/pkg/model"
)

// AddBreaks returns a copy of a start-ordered schedule where every task
// followed by a gap shorter than BreakDuration has its end extended by a full
// break. The extension may run past the next task's start.
func (s *Scheduler) AddBreaks(schedule []model.PlacedTask) []model.PlacedTask {
	out := make([]model.PlacedTask, len(schedule))
	copy(out, schedule)
	return s.addBreaks(out)
}

// addBreaks works in place.
func (s *Scheduler) addBreaks(schedule []model.PlacedTask) []model.PlacedTask {
	if len(schedule) <= 1 {
		return schedule
	}

	brk := s.cfg.BreakDuration
	for i := 0; i < len(schedule)-1; i++ {
		cur := &schedule[i]
		gap := schedule[i+1].StartTime.Sub(cur.EndTime)
		if gap <= 0 || gap >= brk {
			continue
		}

		cur.EndTime = cur.EndTime.Add(brk)
		from := cur.State
		if from == "" {
			from = model.StatePlaced
		}
		state, err := advance(from, EventBreak)
		if err != nil {
			s.log.Debug().Err(err).Str("task_id", cur.ID).Msg("break transition skipped")
		}
		cur.State = state

		s.log.Debug().
			Str("task_id", cur.ID).
			Int("gap", gap).
			Str("end", cur.EndTime.String()).
			Msg("merged gap into break")
	}
	return schedule
}

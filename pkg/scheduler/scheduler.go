// Package scheduler places a day's tasks into working hours.
//
// Tasks are ordered by urgency at the start of the day and placed greedily, one
// at a time, into the best scoring free slot. Placed tasks are never moved to
// make room for later ones. Tasks that do not fit are left out of the schedule
// and reported in Result.Unscheduled.
package scheduler

import (
	"fmt"
	"sort"

	"github.com/harrisonrobin/dayplan/pkg/model"
	"github.com/rs/zerolog"
)

// Scheduler is immutable after New and safe for concurrent use.
type Scheduler struct {
	cfg Config
	log zerolog.Logger
}

// Option customises a Scheduler.
type Option func(*Scheduler)

// WithLogger sets the logger used for debug output. The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Scheduler) { s.log = l }
}

// New validates cfg and returns a Scheduler bound to it.
func New(cfg Config, opts ...Option) (*Scheduler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if _, err := newPlacementMachine(model.StateUnplaced); err != nil {
		return nil, fmt.Errorf("scheduler: %w", err)
	}

	s := &Scheduler{cfg: cfg, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Result is the outcome of a planning run.
type Result struct {
	Schedule    []model.PlacedTask `json:"schedule" yaml:"schedule"`
	Unscheduled []model.Task       `json:"unscheduled" yaml:"unscheduled"`
	Metrics     model.Metrics      `json:"metrics" yaml:"metrics"`
}

// Optimize returns the tasks that could be placed, ordered by start time,
// with small gaps merged into breaks. Empty input yields an empty schedule.
func (s *Scheduler) Optimize(tasks []model.Task) []model.PlacedTask {
	schedule, _ := s.place(tasks)
	return schedule
}

// Plan runs Optimize and CalculateMetrics and also reports the omitted tasks.
func (s *Scheduler) Plan(tasks []model.Task) Result {
	schedule, unscheduled := s.place(tasks)
	if unscheduled == nil {
		unscheduled = []model.Task{}
	}
	return Result{
		Schedule:    schedule,
		Unscheduled: unscheduled,
		Metrics:     s.CalculateMetrics(schedule, tasks),
	}
}

func (s *Scheduler) place(tasks []model.Task) ([]model.PlacedTask, []model.Task) {
	schedule := make([]model.PlacedTask, 0, len(tasks))
	if len(tasks) == 0 {
		return schedule, nil
	}

	workStart := s.cfg.WorkingHours.Start
	workEnd := s.cfg.WorkingHours.End

	// Urgency is taken at the start of the day; it only decides placement order.
	ordered := make([]model.Task, len(tasks))
	copy(ordered, tasks)
	sort.SliceStable(ordered, func(i, j int) bool {
		return Urgency(ordered[i], workStart) > Urgency(ordered[j], workStart)
	})

	var unscheduled []model.Task
	for _, task := range ordered {
		slot, ok := s.FindOptimalSlot(task, schedule, workStart, workEnd)
		if !ok {
			s.log.Debug().
				Str("task_id", task.ID).
				Str("task", task.Name).
				Int("duration", task.Duration).
				Msg("no free slot, task left unscheduled")
			unscheduled = append(unscheduled, task)
			continue
		}

		state, err := advance(model.StateUnplaced, EventPlace)
		if err != nil {
			s.log.Warn().Err(err).Str("task_id", task.ID).Msg("placement transition failed")
			state = model.StatePlaced
		}
		schedule = append(schedule, model.PlacedTask{
			Task:              task,
			StartTime:         slot.StartTime,
			EndTime:           slot.EndTime,
			OptimizationScore: slot.Score,
			State:             state,
		})
	}

	sort.SliceStable(schedule, func(i, j int) bool {
		return schedule[i].StartTime < schedule[j].StartTime
	})

	return s.addBreaks(schedule), unscheduled
}

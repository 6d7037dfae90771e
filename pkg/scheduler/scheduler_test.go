package scheduler

import (
	"errors"
	"reflect"
	"testing"

	"github.com/harrisonrobin/dayplan/pkg/model"
)

// sampleTasks mirrors the starter list shown to new users.
func sampleTasks() []model.Task {
	return []model.Task{
		{ID: "1", Name: "Morning workout", Duration: 60, Priority: model.PriorityHigh, Deadline: deadline("09:00")},
		{ID: "2", Name: "Team meeting", Duration: 90, Priority: model.PriorityHigh, Deadline: deadline("10:30")},
		{ID: "3", Name: "Project review", Duration: 45, Priority: model.PriorityMedium, Deadline: deadline("14:00")},
		{ID: "4", Name: "Email responses", Duration: 30, Priority: model.PriorityLow, Deadline: deadline("16:00")},
	}
}

func startTimes(schedule []model.PlacedTask) []string {
	out := make([]string, len(schedule))
	for i, p := range schedule {
		out[i] = p.ID + "@" + p.StartTime.String()
	}
	return out
}

func TestNew_InvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero granularity", func(c *Config) { c.Granularity = 0 }},
		{"negative break", func(c *Config) { c.BreakDuration = -1 }},
		{"reserved lunch without duration", func(c *Config) { c.LunchBreak = LunchBreak{Reserve: true} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if _, err := New(cfg); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("New() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestOptimize_Empty(t *testing.T) {
	s := newTestScheduler(t, DefaultConfig())

	for _, tasks := range [][]model.Task{nil, {}} {
		got := s.Optimize(tasks)
		if got == nil || len(got) != 0 {
			t.Errorf("Optimize(%v) = %v, want empty non-nil slice", tasks, got)
		}
	}

	if m := s.CalculateMetrics(nil, nil); m != (model.Metrics{}) {
		t.Errorf("CalculateMetrics(empty) = %+v, want zero", m)
	}
}

func TestOptimize_SingleUrgentTask(t *testing.T) {
	s := newTestScheduler(t, DefaultConfig())
	tasks := []model.Task{
		{ID: "w", Name: "Workout", Duration: 60, Priority: model.PriorityHigh, Deadline: deadline("09:00")},
	}

	result := s.Plan(tasks)
	if len(result.Schedule) != 1 {
		t.Fatalf("expected 1 placed task, got %d", len(result.Schedule))
	}
	got := result.Schedule[0]
	if got.ID != "w" || got.StartTime != at("09:00") || got.EndTime != at("10:00") {
		t.Errorf("placed = %s %s-%s, want w 09:00-10:00", got.ID, got.StartTime, got.EndTime)
	}
	if got.State != model.StatePlaced {
		t.Errorf("State = %q, want placed", got.State)
	}
	if result.Metrics.Coverage != 1 {
		t.Errorf("Coverage = %v, want 1", result.Metrics.Coverage)
	}
	if len(result.Unscheduled) != 0 {
		t.Errorf("Unscheduled = %v, want none", result.Unscheduled)
	}
}

func TestOptimize_TasksLongerThanWindowAreDropped(t *testing.T) {
	s := newTestScheduler(t, hours("09:00", "10:00"))
	tasks := []model.Task{
		{ID: "a", Name: "Deep work", Duration: 480, Priority: model.PriorityHigh},
		{ID: "b", Name: "More deep work", Duration: 480, Priority: model.PriorityLow},
	}

	result := s.Plan(tasks)
	if len(result.Schedule) != 0 {
		t.Fatalf("expected empty schedule, got %v", startTimes(result.Schedule))
	}
	if result.Metrics.Coverage != 0 {
		t.Errorf("Coverage = %v, want 0", result.Metrics.Coverage)
	}
	if len(result.Unscheduled) != 2 {
		t.Errorf("expected 2 unscheduled tasks, got %d", len(result.Unscheduled))
	}
}

func TestOptimize_UrgencyDecidesPlacementOrder(t *testing.T) {
	s := newTestScheduler(t, DefaultConfig())
	tasks := []model.Task{
		{ID: "low", Name: "Filing", Duration: 60, Priority: model.PriorityLow},
		{ID: "high", Name: "Release", Duration: 60, Priority: model.PriorityHigh},
	}

	got := startTimes(s.Optimize(tasks))
	want := []string{"high@09:00", "low@10:00"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("schedule = %v, want %v", got, want)
	}
}

func TestOptimize_EqualScoresPreferEarlierSlots(t *testing.T) {
	s := newTestScheduler(t, DefaultConfig())
	var tasks []model.Task
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		tasks = append(tasks, model.Task{ID: id, Name: id, Duration: 60, Priority: model.PriorityLow})
	}

	got := startTimes(s.Optimize(tasks))
	want := []string{"a@09:00", "b@10:00", "e@11:00", "c@14:00", "d@15:00"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("schedule = %v, want %v", got, want)
	}
}

func TestOptimize_SmallGapBecomesBreak(t *testing.T) {
	s := newTestScheduler(t, DefaultConfig())
	tasks := []model.Task{
		{ID: "a", Name: "Standup", Duration: 20, Priority: model.PriorityHigh},
		{ID: "b", Name: "Pairing", Duration: 50, Priority: model.PriorityHigh},
	}

	schedule := s.Optimize(tasks)
	if len(schedule) != 2 {
		t.Fatalf("expected 2 placed tasks, got %d", len(schedule))
	}
	a, b := schedule[0], schedule[1]
	if a.StartTime != at("09:00") || b.StartTime != at("09:30") {
		t.Fatalf("schedule = %v, want a@09:00 b@09:30", startTimes(schedule))
	}
	if a.EndTime != at("09:35") {
		t.Errorf("a.EndTime = %s, want 09:35", a.EndTime)
	}
	if a.State != model.StateBreakAdjusted {
		t.Errorf("a.State = %q, want break_adjusted", a.State)
	}
	if b.EndTime != at("10:20") || b.State != model.StatePlaced {
		t.Errorf("b = %s %q, want 10:20 placed", b.EndTime, b.State)
	}
}

func TestOptimize_ScheduleProperties(t *testing.T) {
	s := newTestScheduler(t, DefaultConfig())
	tasks := append(sampleTasks(),
		model.Task{ID: "5", Name: "Write report", Duration: 120, Priority: model.PriorityMedium},
		model.Task{ID: "6", Name: "Call supplier", Duration: 25, Priority: model.PriorityLow, Deadline: deadline("11:00")},
		model.Task{ID: "7", Name: "Plan sprint", Duration: 75, Priority: model.PriorityHigh},
	)

	schedule := s.Optimize(tasks)
	if len(schedule) == 0 {
		t.Fatal("expected tasks to be placed")
	}

	seen := map[string]bool{}
	for i, p := range schedule {
		if seen[p.ID] {
			t.Errorf("task %s placed twice", p.ID)
		}
		seen[p.ID] = true

		if p.Span() < p.Duration {
			t.Errorf("task %s spans %d minutes, shorter than its duration %d", p.ID, p.Span(), p.Duration)
		}
		if p.StartTime < at("09:00") || p.StartTime.Add(p.Duration) > at("17:00") {
			t.Errorf("task %s at %s is outside working hours", p.ID, p.StartTime)
		}
		if p.OptimizationScore < 0 {
			t.Errorf("task %s has negative score", p.ID)
		}
		if i > 0 && schedule[i-1].StartTime > p.StartTime {
			t.Errorf("schedule not ordered by start at index %d", i)
		}

		// Slots as placed, before any break extension, never intersect.
		for _, q := range schedule[i+1:] {
			if p.StartTime < q.StartTime.Add(q.Duration) && p.StartTime.Add(p.Duration) > q.StartTime {
				t.Errorf("tasks %s and %s overlap", p.ID, q.ID)
			}
		}
	}

	m := s.CalculateMetrics(schedule, tasks)
	if m.Coverage < 0 || m.Coverage > 1 {
		t.Errorf("Coverage = %v, want within [0,1]", m.Coverage)
	}
	if m.Balance < 0 || m.Balance > 1 {
		t.Errorf("Balance = %v, want within [0,1]", m.Balance)
	}
	if m.Efficiency < 0 || m.Efficiency > 1 {
		t.Errorf("Efficiency = %v, want within [0,1]", m.Efficiency)
	}
}

func TestOptimize_Deterministic(t *testing.T) {
	s := newTestScheduler(t, DefaultConfig())
	tasks := sampleTasks()
	before := sampleTasks()

	first := s.Optimize(tasks)
	second := s.Optimize(tasks)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Optimize is not deterministic:\n%v\n%v", first, second)
	}
	if !reflect.DeepEqual(tasks, before) {
		t.Error("Optimize mutated its input")
	}
}

func TestPlan_ReportsUnscheduled(t *testing.T) {
	s := newTestScheduler(t, hours("09:00", "11:00"))
	tasks := []model.Task{
		{ID: "fits", Name: "Short", Duration: 90, Priority: model.PriorityHigh},
		{ID: "too-big", Name: "Long", Duration: 60, Priority: model.PriorityLow},
	}

	result := s.Plan(tasks)
	if got := startTimes(result.Schedule); !reflect.DeepEqual(got, []string{"fits@09:00"}) {
		t.Errorf("schedule = %v, want [fits@09:00]", got)
	}
	if len(result.Unscheduled) != 1 || result.Unscheduled[0].ID != "too-big" {
		t.Errorf("Unscheduled = %v, want [too-big]", result.Unscheduled)
	}
	if !approxEqual(result.Metrics.Coverage, 0.6) {
		t.Errorf("Coverage = %v, want 0.6", result.Metrics.Coverage)
	}
}

package taskwarrior

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/harrisonrobin/dayplan/pkg/clock"
	"github.com/harrisonrobin/dayplan/pkg/model"
)

// DefaultDuration is used for tasks without an estimate.
const DefaultDuration = 30 * time.Minute

var durationPart = regexp.MustCompile(`(\d+)([HMS])`)

// ParseDuration parses the time part of an ISO 8601 duration (PT1H30M) as
// written by Taskwarrior duration UDAs.
func ParseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	if len(s) < 2 || s[0] != 'P' {
		return 0, fmt.Errorf("invalid ISO 8601 duration format: %s", s)
	}
	s = s[1:]
	if len(s) == 0 || s[0] != 'T' {
		return 0, fmt.Errorf("invalid ISO 8601 duration (missing T): P%s", s)
	}
	s = s[1:]

	var total time.Duration
	for _, match := range durationPart.FindAllStringSubmatch(s, -1) {
		value, _ := strconv.Atoi(match[1])
		switch match[2] {
		case "H":
			total += time.Duration(value) * time.Hour
		case "M":
			total += time.Duration(value) * time.Minute
		case "S":
			total += time.Duration(value) * time.Second
		}
	}

	if total == 0 {
		return 0, fmt.Errorf("invalid ISO 8601 duration: PT%s", s)
	}
	return total, nil
}

func priorityFromTaskwarrior(p string) model.Priority {
	switch p {
	case "H":
		return model.PriorityHigh
	case "L":
		return model.PriorityLow
	default:
		return model.PriorityMedium
	}
}

// ToModel converts pending, unblocked Taskwarrior tasks into scheduler tasks
// for the given day. Completed, deleted, waiting and blocked tasks are skipped.
func ToModel(tasks []Task, day time.Time) ([]model.Task, error) {
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Status != PENDING || t.isBlocked() {
			continue
		}

		est, err := ParseDuration(t.Est)
		if err != nil {
			return nil, fmt.Errorf("task %s: %w", t.UUID, err)
		}
		if est <= 0 {
			est = DefaultDuration
		}
		minutes := int(est.Round(time.Minute) / time.Minute)
		if minutes < 1 {
			minutes = 1
		}

		task := model.Task{
			ID:       t.UUID,
			Name:     t.Description,
			Duration: minutes,
			Priority: priorityFromTaskwarrior(t.Priority),
		}
		if t.Due != nil && !t.Due.IsZero() {
			task.Deadline = clock.DeadlineOn(t.Due.Time, day)
		}
		out = append(out, task)
	}
	return out, nil
}

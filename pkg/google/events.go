// Package google renders planned tasks as Google Calendar event payloads.
package google

import (
	"fmt"
	"strings"
	"time"

	"github.com/harrisonrobin/dayplan/pkg/clock"
	"github.com/harrisonrobin/dayplan/pkg/colors"
	"github.com/harrisonrobin/dayplan/pkg/model"
	"google.golang.org/api/calendar/v3"
)

// TaskIDProperty is the private extended property holding the task ID.
const TaskIDProperty = "dayplan_task_id"

// EventList wraps the events for day in a calendar.Events list titled with
// the target calendar's name.
func EventList(calendarName string, schedule []model.PlacedTask, day time.Time) *calendar.Events {
	return &calendar.Events{
		Kind:    "calendar#events",
		Summary: calendarName,
		Items:   EventsFor(schedule, day),
	}
}

// EventsFor converts a schedule into calendar events on day, in day's location.
func EventsFor(schedule []model.PlacedTask, day time.Time) []*calendar.Event {
	events := make([]*calendar.Event, 0, len(schedule))
	for _, pt := range schedule {
		events = append(events, eventFor(pt, day))
	}
	return events
}

// wallClock places c on day as a wall-clock time, so DST changes do not shift it.
func wallClock(day time.Time, c clock.Clock) time.Time {
	m := c.Minutes()
	return time.Date(day.Year(), day.Month(), day.Day(), m/clock.MinutesPerHour, m%clock.MinutesPerHour, 0, 0, day.Location())
}

func eventFor(pt model.PlacedTask, day time.Time) *calendar.Event {
	start := wallClock(day, pt.StartTime)
	end := wallClock(day, pt.EndTime)

	return &calendar.Event{
		Summary:     pt.Name,
		Description: description(pt),
		ColorId:     colors.ForPriority(pt.Priority),
		Start:       &calendar.EventDateTime{DateTime: start.Format(time.RFC3339)},
		End:         &calendar.EventDateTime{DateTime: end.Format(time.RFC3339)},
		ExtendedProperties: &calendar.EventExtendedProperties{
			Private: map[string]string{TaskIDProperty: pt.ID},
		},
	}
}

func description(pt model.PlacedTask) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Priority: %s\n", pt.Priority)
	if pt.Deadline != nil {
		fmt.Fprintf(&b, "Deadline: %s\n", pt.Deadline.String())
	}
	fmt.Fprintf(&b, "Score: %.2f\n", pt.OptimizationScore)
	if pt.State == model.StateBreakAdjusted {
		b.WriteString("Includes break\n")
	}
	fmt.Fprintf(&b, "ID: %s\n", pt.ID)
	return b.String()
}

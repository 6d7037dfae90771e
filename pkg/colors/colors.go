// Package colors maps task priorities onto Google Calendar event color IDs.
package colors

import "github.com/harrisonrobin/dayplan/pkg/model"

// Google Calendar event palette IDs.
const (
	Lavender  = "1"
	Sage      = "2"
	Grape     = "3"
	Flamingo  = "4"
	Banana    = "5"
	Tangerine = "6"
	Peacock   = "7"
	Graphite  = "8"
	Blueberry = "9"
	Basil     = "10"
	Tomato    = "11"
)

// ForPriority returns the event color for a priority. Unknown priorities get Graphite.
func ForPriority(p model.Priority) string {
	switch p {
	case model.PriorityHigh:
		return Tomato
	case model.PriorityMedium:
		return Banana
	case model.PriorityLow:
		return Sage
	default:
		return Graphite
	}
}

package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidPriority is returned when a priority is outside high/medium/low.
var ErrInvalidPriority = errors.New("invalid task priority")

// Priority is the closed set of task priorities.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Base urgency weights per priority.
const (
	weightHigh    = 100
	weightMedium  = 50
	weightLow     = 25
	weightDefault = weightLow
)

// AllPriorities returns every valid priority, highest first.
func AllPriorities() []Priority {
	return []Priority{PriorityHigh, PriorityMedium, PriorityLow}
}

func priorityNames() string {
	names := make([]string, 0, 3)
	for _, p := range AllPriorities() {
		names = append(names, string(p))
	}
	return strings.Join(names, ", ")
}

// IsValid returns true if p is one of high, medium or low.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

// Weight returns the base urgency weight. Anything outside the set weighs as low.
func (p Priority) Weight() float64 {
	switch p {
	case PriorityHigh:
		return weightHigh
	case PriorityMedium:
		return weightMedium
	case PriorityLow:
		return weightLow
	default:
		return weightDefault
	}
}

func (p Priority) String() string { return string(p) }

// ParsePriority parses a string into a Priority. The empty string yields medium.
func ParsePriority(s string) (Priority, error) {
	if s == "" {
		return PriorityMedium, nil
	}
	p := Priority(s)
	if !p.IsValid() {
		return "", fmt.Errorf("%w: %q, want one of %s", ErrInvalidPriority, s, priorityNames())
	}
	return p, nil
}

// MarshalJSON implements json.Marshaler.
func (p Priority) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(p))
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Priority) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParsePriority(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (p *Priority) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParsePriority(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// PlacementState tracks a task through scheduling.
type PlacementState string

const (
	StateUnplaced      PlacementState = "unplaced"
	StatePlaced        PlacementState = "placed"
	StateBreakAdjusted PlacementState = "break_adjusted"
)

// Package tasklist reads, edits and writes the task files fed to the scheduler.
//
// A task file is YAML (JSON works too, being a subset) holding either a bare
// list of tasks or a document with a top-level "tasks" key. The order of the
// list is meaningful: tasks of equal urgency are placed in list order.
package tasklist

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/harrisonrobin/dayplan/pkg/clock"
	"github.com/harrisonrobin/dayplan/pkg/model"
	"gopkg.in/yaml.v3"
)

// ErrTaskNotFound is returned when an ID does not match any task in the list.
var ErrTaskNotFound = errors.New("task not found")

// List is an ordered task list.
type List struct {
	Tasks []model.Task `yaml:"tasks"`
}

// Decode parses a task list from r and normalises it: missing priorities
// become medium and missing IDs are filled in.
func Decode(r io.Reader) (*List, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read task list: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return &List{}, nil
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("failed to decode task list: %w", err)
	}

	list := &List{}
	root := &node
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	switch root.Kind {
	case yaml.SequenceNode:
		err = root.Decode(&list.Tasks)
	case yaml.MappingNode:
		err = root.Decode(list)
	default:
		err = fmt.Errorf("expected a list of tasks or a tasks: key")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode task list: %w", err)
	}

	for i := range list.Tasks {
		normalize(&list.Tasks[i])
		if err := list.Tasks[i].Validate(); err != nil {
			return nil, fmt.Errorf("task %d: %w", i+1, err)
		}
	}
	return list, nil
}

// Load reads the task list at path. A missing file is an empty list.
func Load(path string) (*List, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &List{}, nil
		}
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

// Save writes the list to path as YAML.
func Save(path string, list *List) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("failed to create task list directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to open task list for writing: %w", err)
	}
	defer f.Close()

	encoder := yaml.NewEncoder(f)
	encoder.SetIndent(2)
	if err := encoder.Encode(list); err != nil {
		return fmt.Errorf("failed to encode task list: %w", err)
	}
	return encoder.Close()
}

func normalize(t *model.Task) {
	if t.Priority == "" {
		t.Priority = model.PriorityMedium
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
}

// Add validates task, assigns an ID when it has none and appends it.
func (l *List) Add(task model.Task) (model.Task, error) {
	normalize(&task)
	if err := task.Validate(); err != nil {
		return model.Task{}, err
	}
	if l.index(task.ID) >= 0 {
		return model.Task{}, fmt.Errorf("duplicate task id %q", task.ID)
	}
	l.Tasks = append(l.Tasks, task)
	return task, nil
}

// Remove deletes the task with the given ID.
func (l *List) Remove(id string) error {
	i := l.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	l.Tasks = append(l.Tasks[:i], l.Tasks[i+1:]...)
	return nil
}

// Move repositions the task with the given ID to index to, clamped to the list.
func (l *List) Move(id string, to int) error {
	from := l.index(id)
	if from < 0 {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	if to < 0 {
		to = 0
	}
	if to >= len(l.Tasks) {
		to = len(l.Tasks) - 1
	}

	task := l.Tasks[from]
	l.Tasks = append(l.Tasks[:from], l.Tasks[from+1:]...)
	l.Tasks = append(l.Tasks[:to], append([]model.Task{task}, l.Tasks[to:]...)...)
	return nil
}

// Get returns the task with the given ID.
func (l *List) Get(id string) (model.Task, bool) {
	i := l.index(id)
	if i < 0 {
		return model.Task{}, false
	}
	return l.Tasks[i], true
}

func (l *List) index(id string) int {
	for i, t := range l.Tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// Sample returns the starter list written by `dayplan init`.
func Sample() *List {
	at := func(s string) *clock.Clock {
		c := clock.MustParse(s)
		return &c
	}
	return &List{Tasks: []model.Task{
		{ID: uuid.NewString(), Name: "Morning workout", Duration: 60, Priority: model.PriorityHigh, Deadline: at("09:00")},
		{ID: uuid.NewString(), Name: "Team meeting", Duration: 90, Priority: model.PriorityHigh, Deadline: at("10:30")},
		{ID: uuid.NewString(), Name: "Project review", Duration: 45, Priority: model.PriorityMedium, Deadline: at("14:00")},
		{ID: uuid.NewString(), Name: "Email responses", Duration: 30, Priority: model.PriorityLow, Deadline: at("16:00")},
	}}
}

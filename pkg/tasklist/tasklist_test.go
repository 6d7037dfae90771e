package tasklist

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/harrisonrobin/dayplan/pkg/clock"
	"github.com/harrisonrobin/dayplan/pkg/model"
)

func ids(l *List) string {
	var out []string
	for _, t := range l.Tasks {
		out = append(out, t.ID)
	}
	return strings.Join(out, ",")
}

func TestDecode_YAMLDocument(t *testing.T) {
	input := `
tasks:
  - id: "1"
    name: Morning workout
    duration: 60
    priority: high
    deadline: "09:00"
  - name: Email responses
    duration: 30
`
	list, err := Decode(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(list.Tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(list.Tasks))
	}

	first := list.Tasks[0]
	if first.ID != "1" || first.Priority != model.PriorityHigh || *first.Deadline != clock.MustParse("09:00") {
		t.Errorf("unexpected first task: %+v", first)
	}

	second := list.Tasks[1]
	if second.Priority != model.PriorityMedium {
		t.Errorf("Priority = %q, want medium default", second.Priority)
	}
	if _, err := uuid.Parse(second.ID); err != nil {
		t.Errorf("expected generated UUID, got %q", second.ID)
	}
}

func TestDecode_JSONList(t *testing.T) {
	input := `[{"id":"a","name":"Review","duration":45,"priority":"medium","deadline":"14:00"}]`

	list, err := Decode(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if ids(list) != "a" || list.Tasks[0].Duration != 45 {
		t.Errorf("unexpected list: %+v", list.Tasks)
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := map[string]string{
		"bad priority": "- name: x\n  duration: 10\n  priority: urgent\n",
		"bad deadline": "- name: x\n  duration: 10\n  deadline: noon\n",
		"no duration":  "- name: x\n",
		"scalar":       "hello",
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Decode(strings.NewReader(input)); err == nil {
				t.Errorf("expected error for %q", input)
			}
		})
	}
}

func TestDecode_Empty(t *testing.T) {
	list, err := Decode(strings.NewReader("  \n"))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(list.Tasks) != 0 {
		t.Errorf("expected empty list, got %d tasks", len(list.Tasks))
	}
}

func TestAddRemoveMove(t *testing.T) {
	list := &List{}
	for _, id := range []string{"a", "b", "c", "d"} {
		if _, err := list.Add(model.Task{ID: id, Name: id, Duration: 15, Priority: model.PriorityLow}); err != nil {
			t.Fatalf("Add(%s) failed: %v", id, err)
		}
	}

	if _, err := list.Add(model.Task{ID: "a", Name: "dup", Duration: 5}); err == nil {
		t.Error("expected duplicate id error")
	}
	if _, err := list.Add(model.Task{Name: "", Duration: 5}); !errors.Is(err, model.ErrInvalidTask) {
		t.Errorf("Add(invalid) error = %v, want ErrInvalidTask", err)
	}

	added, err := list.Add(model.Task{Name: "generated", Duration: 5})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if added.ID == "" || added.Priority != model.PriorityMedium {
		t.Errorf("unexpected normalised task: %+v", added)
	}
	if err := list.Remove(added.ID); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	if err := list.Move("d", 0); err != nil {
		t.Fatalf("Move failed: %v", err)
	}
	if got := ids(list); got != "d,a,b,c" {
		t.Errorf("after Move(d, 0) = %s", got)
	}
	if err := list.Move("d", 99); err != nil {
		t.Fatalf("Move failed: %v", err)
	}
	if got := ids(list); got != "a,b,c,d" {
		t.Errorf("after Move(d, 99) = %s", got)
	}
	if err := list.Move("a", 2); err != nil {
		t.Fatalf("Move failed: %v", err)
	}
	if got := ids(list); got != "b,c,a,d" {
		t.Errorf("after Move(a, 2) = %s", got)
	}

	if err := list.Remove("zzz"); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("Remove(missing) error = %v, want ErrTaskNotFound", err)
	}
	if err := list.Move("zzz", 0); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("Move(missing) error = %v, want ErrTaskNotFound", err)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.yaml")

	sample := Sample()
	if err := Save(path, sample); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if ids(loaded) != ids(sample) {
		t.Errorf("ids = %s, want %s", ids(loaded), ids(sample))
	}
	for i, task := range loaded.Tasks {
		want := sample.Tasks[i]
		if task.Name != want.Name || task.Duration != want.Duration || task.Priority != want.Priority || *task.Deadline != *want.Deadline {
			t.Errorf("task %d = %+v, want %+v", i, task, want)
		}
	}
}

func TestLoad_Missing(t *testing.T) {
	list, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(list.Tasks) != 0 {
		t.Errorf("expected empty list")
	}
}

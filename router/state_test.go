package router

import "testing"

func TestTaskStateSlotFilling(t *testing.T) {
	s := NewTaskState()
	if s.Active() {
		t.Error("fresh state should not be active")
	}

	s.StartAction("create_event", []string{"title", "start_time"}, []string{"duration"})
	if !s.Active() || s.IsComplete() {
		t.Error("expected active, incomplete state")
	}
	if s.NextMissingArg() != "title" {
		t.Errorf("expected title first, got %s", s.NextMissingArg())
	}

	s.UpdateArgument("title", "dentist")
	if s.NextMissingArg() != "start_time" {
		t.Errorf("expected start_time next, got %s", s.NextMissingArg())
	}

	s.UpdateArgument("start_time", "3 pm")
	if !s.IsComplete() {
		t.Error("expected complete after all required args")
	}
	if s.CollectedArgs["title"] != "dentist" {
		t.Errorf("unexpected collected args: %v", s.CollectedArgs)
	}
}

func TestTaskStateOptionalArgsDoNotBlock(t *testing.T) {
	s := NewTaskState()
	s.StartAction("create_event", []string{"title"}, []string{"duration", "location"})

	s.UpdateArgument("duration", "1 hour")
	if s.IsComplete() {
		t.Error("optional arg must not satisfy a required one")
	}
	s.UpdateArgument("title", "lunch")
	if !s.IsComplete() {
		t.Error("expected complete once required args are in")
	}
}

func TestTaskStateReset(t *testing.T) {
	s := NewTaskState()
	s.StartAction("create_note", []string{"title", "content"}, nil)
	s.UpdateArgument("title", "x")
	s.AddHistory("make a note", "What should the note say?")

	s.Reset()
	if s.Active() || len(s.CollectedArgs) != 0 || len(s.History) != 0 {
		t.Error("expected fully cleared state after Reset")
	}
	if s.NextMissingArg() != "" {
		t.Error("expected no missing args after Reset")
	}
}

func TestTaskStateStartActionDiscardsPrevious(t *testing.T) {
	s := NewTaskState()
	s.StartAction("create_note", []string{"title", "content"}, nil)
	s.UpdateArgument("title", "old")

	s.StartAction("add_todo", []string{"item"}, nil)
	if s.ActionName != "add_todo" || len(s.CollectedArgs) != 0 {
		t.Error("starting a new action must discard prior state")
	}
	if s.NextMissingArg() != "item" {
		t.Errorf("expected item missing, got %s", s.NextMissingArg())
	}
}

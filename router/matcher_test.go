package router

import "testing"

func TestClassifySimpleActions(t *testing.T) {
	m := NewMatcher()

	cases := []struct {
		input  string
		action string
	}{
		{"hello there", "greeting"},
		{"what time is it", "get_time"},
		{"what's the date", "get_date"},
		{"what day is it", "get_day"},
		{"create an event called dentist at 3 pm", "create_event"},
		{"schedule a meeting with Sarah tomorrow", "create_event"},
		{"what's on my calendar", "get_events"},
		{"do I have any events today", "get_events"},
		{"create a note about groceries", "create_note"},
		{"read my shopping note", "read_note"},
		{"edit the meeting note", "edit_note"},
		{"delete the old note", "delete_note"},
		{"list my notes", "list_notes"},
		{"show my notes", "list_notes"},
		{"add milk to my todo", "add_todo"},
		{"show my to-do list", "show_todo"},
		{"clear my todo list", "clear_todo"},
		{"remove item 2 from my todo list", "remove_todo_item"},
	}
	for _, c := range cases {
		intent, action := m.Classify(c.input)
		if intent != IntentSimple {
			t.Errorf("Classify(%q) intent = %s, want simple", c.input, intent)
			continue
		}
		if action != c.action {
			t.Errorf("Classify(%q) action = %s, want %s", c.input, action, c.action)
		}
	}
}

func TestClassifyAgentRequests(t *testing.T) {
	m := NewMatcher()

	inputs := []string{
		"check my calendar and then create a note with my first free slot",
		"if I'm free tonight, schedule dinner at 7",
		"check if I have events tomorrow and add a reminder",
		"read my homework note and then add its first task to my todo list",
	}
	for _, in := range inputs {
		if intent, _ := m.Classify(in); intent != IntentAgent {
			t.Errorf("Classify(%q) = %s, want agent", in, intent)
		}
	}
}

func TestClassifyGeneralQueries(t *testing.T) {
	m := NewMatcher()

	inputs := []string{
		"what's the capital of France",
		"tell me a joke",
		"wow that's interesting",
		"",
	}
	for _, in := range inputs {
		if intent, _ := m.Classify(in); intent != IntentQuery {
			t.Errorf("Classify(%q) = %s, want query", in, intent)
		}
	}
}

func TestClassifyFirstMatchWins(t *testing.T) {
	m := NewMatcher()

	// "show" appears in both list_notes and read_note vocabularies; the more
	// specific pattern is ordered first
	intent, action := m.Classify("show my notes")
	if intent != IntentSimple || action != "list_notes" {
		t.Errorf("expected list_notes, got %s/%s", intent, action)
	}
}

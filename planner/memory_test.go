package planner

import (
	"strings"
	"testing"
)

func TestMemoryStoreAndRetrieve(t *testing.T) {
	m := NewMemory()
	m.Store("count", 3)
	m.Store("name", "dinner")

	v, ok := m.Retrieve("count")
	if !ok || v != 3 {
		t.Errorf("expected count=3, got %v (ok=%v)", v, ok)
	}
	if !m.Has("name") {
		t.Error("expected name to exist")
	}
	if m.Has("missing") {
		t.Error("did not expect missing to exist")
	}
}

func TestMemoryOverwriteKeepsHistory(t *testing.T) {
	m := NewMemory()
	m.Store("x", "first")
	m.Store("x", "second")

	v, _ := m.Retrieve("x")
	if v != "second" {
		t.Errorf("expected latest value, got %v", v)
	}
	if len(m.History()) != 2 {
		t.Errorf("expected 2 history entries, got %d", len(m.History()))
	}
}

func TestMemoryHistoryPreviewTruncation(t *testing.T) {
	m := NewMemory()
	long := strings.Repeat("a", 150)
	m.Store("big", long)

	h := m.History()
	if len(h) != 1 {
		t.Fatalf("expected 1 history entry, got %d", len(h))
	}
	if len(h[0].Preview) != 103 || !strings.HasSuffix(h[0].Preview, "...") {
		t.Errorf("expected 100-char preview with ellipsis, got %d chars", len(h[0].Preview))
	}

	// The stored value itself must not be truncated
	v, _ := m.Retrieve("big")
	if v != long {
		t.Error("stored value was truncated")
	}
}

func TestMemoryClear(t *testing.T) {
	m := NewMemory()
	m.Store("a", 1)
	m.Clear()

	if m.Has("a") {
		t.Error("expected a to be gone after Clear")
	}
	if len(m.History()) != 0 {
		t.Error("expected empty history after Clear")
	}
}

func TestSubstituteTemplates(t *testing.T) {
	m := NewMemory()
	m.Store("title", "Team sync")
	m.Store("count", float64(4))
	m.Store("done", true)

	cases := []struct {
		in, want string
	}{
		{"Event: ${title}", "Event: Team sync"},
		{"${count} events, done=${done}", "4 events, done=true"},
		{"no templates here", "no templates here"},
		{"${missing} stays", "${missing} stays"},
		{"${title} and ${missing}", "Team sync and ${missing}"},
	}
	for _, c := range cases {
		if got := m.SubstituteTemplates(c.in); got != c.want {
			t.Errorf("SubstituteTemplates(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestSubstituteTemplatesStructuredValue(t *testing.T) {
	m := NewMemory()
	m.Store("items", []interface{}{"a", "b"})

	got := m.SubstituteTemplates("list: ${items}")
	if got != `list: ["a","b"]` {
		t.Errorf("unexpected substitution: %q", got)
	}
}

func TestValidateTemplateVariables(t *testing.T) {
	m := NewMemory()
	m.Store("known", 1)

	missing := m.ValidateTemplateVariables("${known} ${gone} ${also_gone}")
	if len(missing) != 2 || missing[0] != "gone" || missing[1] != "also_gone" {
		t.Errorf("unexpected missing set: %v", missing)
	}
	if got := m.ValidateTemplateVariables("${known}"); len(got) != 0 {
		t.Errorf("expected no missing variables, got %v", got)
	}
}

func TestFormatForLLMEmpty(t *testing.T) {
	m := NewMemory()
	if got := m.FormatForLLM(); got != "No data available" {
		t.Errorf("expected placeholder, got %q", got)
	}
}

func TestFormatForLLMDeterministicOrder(t *testing.T) {
	m := NewMemory()
	m.Store("zebra", 1)
	m.Store("apple", 2)

	got := m.FormatForLLM()
	if strings.Index(got, "apple") > strings.Index(got, "zebra") {
		t.Errorf("expected sorted variable order, got:\n%s", got)
	}
}

func TestFormatForLLMTruncatesLongStrings(t *testing.T) {
	m := NewMemory()
	m.Store("essay", strings.Repeat("x", 300))

	got := m.FormatForLLM()
	if !strings.Contains(got, strings.Repeat("x", 200)+"...") {
		t.Error("expected 200-char truncation with ellipsis")
	}
	if strings.Contains(got, strings.Repeat("x", 201)) {
		t.Error("string was not truncated at 200 chars")
	}
}

func TestStringifyValue(t *testing.T) {
	cases := []struct {
		in   interface{}
		want string
	}{
		{nil, ""},
		{"plain", "plain"},
		{float64(7), "7"},
		{7.5, "7.5"},
		{true, "true"},
		{map[string]interface{}{"k": "v"}, `{"k":"v"}`},
	}
	for _, c := range cases {
		if got := stringifyValue(c.in); got != c.want {
			t.Errorf("stringifyValue(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

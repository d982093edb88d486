package planner

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"
)

// templatePattern matches ${variable_name} placeholders
var templatePattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// HistoryEntry is one append-only record of a memory write
type HistoryEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Variable  string    `json:"variable"`
	Preview   string    `json:"preview"`
}

// Memory is the execution-scoped store of step outputs. It is owned by a
// single plan run; the executor clears it before every run.
type Memory struct {
	variables map[string]interface{}
	history   []HistoryEntry
	createdAt time.Time
}

// NewMemory creates an empty memory store
func NewMemory() *Memory {
	return &Memory{
		variables: make(map[string]interface{}),
		createdAt: time.Now(),
	}
}

// Store saves a variable, overwriting any previous value. The history entry
// carries a truncated preview; the stored value itself is never truncated.
func (m *Memory) Store(name string, value interface{}) {
	m.variables[name] = value

	preview := stringifyValue(value)
	if len(preview) > 100 {
		preview = preview[:100] + "..."
	}
	m.history = append(m.history, HistoryEntry{
		Timestamp: time.Now(),
		Variable:  name,
		Preview:   preview,
	})
}

// Retrieve returns a stored variable and whether it exists
func (m *Memory) Retrieve(name string) (interface{}, bool) {
	v, ok := m.variables[name]
	return v, ok
}

// Has reports whether a variable exists
func (m *Memory) Has(name string) bool {
	_, ok := m.variables[name]
	return ok
}

// Variables returns a snapshot copy of all stored variables
func (m *Memory) Variables() map[string]interface{} {
	snapshot := make(map[string]interface{}, len(m.variables))
	for k, v := range m.variables {
		snapshot[k] = v
	}
	return snapshot
}

// History returns the write log
func (m *Memory) History() []HistoryEntry {
	out := make([]HistoryEntry, len(m.history))
	copy(out, m.history)
	return out
}

// Clear resets variables and history
func (m *Memory) Clear() {
	m.variables = make(map[string]interface{})
	m.history = nil
	m.createdAt = time.Now()
}

// SubstituteTemplates replaces every ${name} occurrence with the stringified
// stored value. An unresolved ${name} is left verbatim; the executor detects
// that separately via ValidateTemplateVariables.
func (m *Memory) SubstituteTemplates(text string) string {
	return templatePattern.ReplaceAllStringFunc(text, func(match string) string {
		name := match[2 : len(match)-1]
		if value, ok := m.variables[name]; ok {
			return stringifyValue(value)
		}
		return match
	})
}

// ValidateTemplateVariables returns the names of template variables in text
// that are not present in memory
func (m *Memory) ValidateTemplateVariables(text string) []string {
	var missing []string
	for _, match := range templatePattern.FindAllStringSubmatch(text, -1) {
		if !m.Has(match[1]) {
			missing = append(missing, match[1])
		}
	}
	return missing
}

// FormatForLLM renders all variables as a readable listing for inclusion in
// a reasoning prompt
func (m *Memory) FormatForLLM() string {
	if len(m.variables) == 0 {
		return "No data available"
	}

	// Stable ordering keeps reasoning prompts deterministic
	names := make([]string, 0, len(m.variables))
	for name := range m.variables {
		names = append(names, name)
	}
	sort.Strings(names)

	lines := make([]string, 0, len(names))
	for _, name := range names {
		lines = append(lines, fmt.Sprintf("  %s: %s", name, formatValueForLLM(m.variables[name])))
	}
	return strings.Join(lines, "\n")
}

// formatValueForLLM pretty-prints structured values and truncates long strings
func formatValueForLLM(value interface{}) string {
	switch v := value.(type) {
	case string:
		if len(v) > 200 {
			return v[:200] + "..."
		}
		return v
	case nil:
		return "null"
	case map[string]interface{}, []interface{}:
		data, err := json.MarshalIndent(v, "  ", "  ")
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(data)
	default:
		return stringifyValue(value)
	}
}

// stringifyValue converts any stored value to its template-substitution text
func stringifyValue(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		// JSON numbers decode as float64; render integral values without a
		// trailing .0
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%g", v)
	case bool:
		return fmt.Sprintf("%t", v)
	case map[string]interface{}, []interface{}:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(data)
	default:
		return fmt.Sprintf("%v", v)
	}
}

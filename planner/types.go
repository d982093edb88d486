package planner

import (
	"time"

	"sam/providers"
)

// Plan is a goal plus an ordered list of steps. It is immutable once built;
// execution never mutates it.
type Plan struct {
	Goal  string `json:"goal"`
	Steps []Step `json:"steps"`
}

// Step is one unit of plan work. Exactly one of Action, Reasoning, or
// Condition is set; the validator enforces this before execution.
type Step struct {
	ID        string                 `json:"id"`
	Action    string                 `json:"action,omitempty"`
	Args      map[string]interface{} `json:"args,omitempty"`
	Reasoning string                 `json:"reasoning,omitempty"`
	Condition string                 `json:"condition,omitempty"`
	NextID    string                 `json:"next_id,omitempty"`
	SaveAs    string                 `json:"save_as,omitempty"`
}

// StepKind identifies the variant of a step
type StepKind string

const (
	KindAction      StepKind = "action"
	KindReasoning   StepKind = "reasoning"
	KindConditional StepKind = "conditional"
	KindInvalid     StepKind = "invalid"
)

// Kind returns the step's variant, or KindInvalid when the step does not
// carry exactly one of the three content fields
func (s *Step) Kind() StepKind {
	n := 0
	kind := KindInvalid
	if s.Action != "" {
		n++
		kind = KindAction
	}
	if s.Reasoning != "" {
		n++
		kind = KindReasoning
	}
	if s.Condition != "" {
		n++
		kind = KindConditional
	}
	if n != 1 {
		return KindInvalid
	}
	return kind
}

// ValidationResult is the outcome of static plan validation
type ValidationResult struct {
	IsValid bool     `json:"is_valid"`
	Errors  []string `json:"errors"`
}

// StepResult records the outcome of one executed step
type StepResult struct {
	StepNumber    int                    `json:"step_number"`
	StepType      StepKind               `json:"step_type"`
	Action        string                 `json:"action,omitempty"`
	Instruction   string                 `json:"instruction,omitempty"`
	Condition     string                 `json:"condition,omitempty"`
	Args          map[string]interface{} `json:"args,omitempty"`
	Result        interface{}            `json:"result,omitempty"`
	IsValid       bool                   `json:"is_valid,omitempty"`
	Error         string                 `json:"error,omitempty"`
	ExecutionTime time.Duration          `json:"execution_time"`
}

// ExecutionResult is the plan-level outcome
type ExecutionResult struct {
	Success          bool                   `json:"success"`
	Goal             string                 `json:"goal"`
	Results          []StepResult           `json:"results"`
	FinalMemory      map[string]interface{} `json:"final_memory"`
	ExecutionTime    time.Duration          `json:"execution_time"`
	Error            string                 `json:"error,omitempty"`
	ValidationErrors []string               `json:"validation_errors,omitempty"`
}

// TextGenerator is the text-generation collaborator. Implementations return
// either model output or an "Error: ..." string (see providers.IsErrorReply);
// they never panic.
type TextGenerator interface {
	Generate(messages []providers.Message, maxTokens int, temperature float32) string
}

// ActionRunner executes a named action against the outside world
type ActionRunner interface {
	Execute(name string, args map[string]interface{}) (string, error)
}

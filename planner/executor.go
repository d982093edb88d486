package planner

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rohanthewiz/logger"
	"sam/actions"
	"sam/providers"
)

// simpleConditionPattern matches conditions of the form ${var} == literal
var simpleConditionPattern = regexp.MustCompile(`^\s*\$\{([^}]+)\}\s*==\s*(.+?)\s*$`)

// Executor runs validated plans step by step against a shared memory store.
// Execution is strictly sequential: conditionals are evaluated and recorded
// but next_id is never branched to. ExecutePlan calls on one Executor are
// serialized so a new run can never observe a prior run's memory writes.
type Executor struct {
	mu        sync.Mutex
	reasoning *ReasoningEngine
	runner    ActionRunner
	schema    map[string]actions.Spec
	validator *Validator
	memory    *Memory
}

// NewExecutor creates a plan executor
func NewExecutor(reasoning *ReasoningEngine, runner ActionRunner, schema map[string]actions.Spec) *Executor {
	return &Executor{
		reasoning: reasoning,
		runner:    runner,
		schema:    schema,
		validator: NewValidator(),
		memory:    NewMemory(),
	}
}

// Memory exposes the executor's memory store (for rendering and tests)
func (e *Executor) Memory() *Memory {
	return e.memory
}

// Reset discards memory and any prior run state
func (e *Executor) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.memory.Clear()
}

// ExecutePlan validates a plan and executes it step by step, stopping at the
// first failing step. All errors come back as data on the result; ExecutePlan
// itself never panics or returns a Go error.
func (e *Executor) ExecutePlan(plan *Plan) ExecutionResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	if plan == nil {
		return ExecutionResult{
			Success:     false,
			Error:       "no plan to execute",
			Results:     []StepResult{},
			FinalMemory: map[string]interface{}{},
		}
	}

	validation := e.validator.ValidatePlan(plan, e.schema)
	if !validation.IsValid {
		return ExecutionResult{
			Success:          false,
			Goal:             plan.Goal,
			Error:            "Plan validation failed",
			ValidationErrors: validation.Errors,
			Results:          []StepResult{},
			FinalMemory:      map[string]interface{}{},
		}
	}

	e.memory.Clear()

	start := time.Now()
	results := make([]StepResult, 0, len(plan.Steps))

	for i := range plan.Steps {
		step := &plan.Steps[i]
		stepResult := e.executeStep(step, i+1)
		results = append(results, stepResult)

		// save_as writes through immediately, so the value is visible to
		// later steps (and kept even if a later step fails)
		if step.SaveAs != "" {
			e.memory.Store(step.SaveAs, stepResult.Result)
		}

		if stepResult.Error != "" {
			logger.Info("Plan halted on step failure",
				"goal", plan.Goal, "step", step.ID, "error", stepResult.Error)
			return ExecutionResult{
				Success:       false,
				Goal:          plan.Goal,
				Error:         fmt.Sprintf("Step %d failed: %s", i+1, stepResult.Error),
				Results:       results,
				FinalMemory:   e.memory.Variables(),
				ExecutionTime: time.Since(start),
			}
		}
	}

	return ExecutionResult{
		Success:       true,
		Goal:          plan.Goal,
		Results:       results,
		FinalMemory:   e.memory.Variables(),
		ExecutionTime: time.Since(start),
	}
}

// executeStep dispatches one step by variant and times it
func (e *Executor) executeStep(step *Step, num int) StepResult {
	start := time.Now()

	var result StepResult
	switch step.Kind() {
	case KindAction:
		result = e.executeActionStep(step)
	case KindReasoning:
		result = e.executeReasoningStep(step)
	case KindConditional:
		result = e.executeConditionalStep(step)
	default:
		result = StepResult{
			StepType: KindInvalid,
			Error:    "step must have exactly one of 'action', 'reasoning', or 'condition'",
		}
	}

	result.StepNumber = num
	result.ExecutionTime = time.Since(start)
	return result
}

// executeActionStep substitutes template variables into string arguments,
// fails explicitly on any still-unresolved reference, then invokes the action
func (e *Executor) executeActionStep(step *Step) StepResult {
	substituted := make(map[string]interface{}, len(step.Args))
	for key, value := range step.Args {
		if str, ok := value.(string); ok {
			substituted[key] = e.memory.SubstituteTemplates(str)
		} else {
			substituted[key] = value
		}
	}

	var missing []string
	for _, value := range substituted {
		if str, ok := value.(string); ok {
			missing = append(missing, e.memory.ValidateTemplateVariables(str)...)
		}
	}
	sort.Strings(missing)
	if len(missing) > 0 {
		return StepResult{
			StepType: KindAction,
			Action:   step.Action,
			Args:     substituted,
			Error:    fmt.Sprintf("Missing template variables: %s", strings.Join(missing, ", ")),
		}
	}

	result, err := e.runner.Execute(step.Action, substituted)
	if err != nil {
		return StepResult{
			StepType: KindAction,
			Action:   step.Action,
			Args:     substituted,
			Error:    fmt.Sprintf("Action execution failed: %s", err.Error()),
		}
	}

	return StepResult{
		StepType: KindAction,
		Action:   step.Action,
		Args:     substituted,
		Result:   result,
	}
}

// executeReasoningStep resolves the instruction against current memory. An
// invalid verdict from ValidateReasoningResult is routed into the same
// halt-on-error path as an action failure.
func (e *Executor) executeReasoningStep(step *Step) StepResult {
	result := e.reasoning.ExecuteReasoningStep(step.Reasoning, e.memory)
	isValid := e.reasoning.ValidateReasoningResult(result, step.Reasoning)

	stepResult := StepResult{
		StepType:    KindReasoning,
		Instruction: step.Reasoning,
		Result:      result,
		IsValid:     isValid,
	}
	if !isValid {
		stepResult.Error = fmt.Sprintf("Reasoning produced an unusable result: %v", result)
	}
	return stepResult
}

// executeConditionalStep evaluates the condition and records its outcome.
// Plans run sequentially; next_id is accepted in the plan shape but not
// jumped to.
func (e *Executor) executeConditionalStep(step *Step) StepResult {
	value, err := e.evaluateCondition(step.Condition)

	stepResult := StepResult{
		StepType:  KindConditional,
		Condition: step.Condition,
		Result:    value,
	}
	if err != nil {
		stepResult.Error = err.Error()
	}
	return stepResult
}

// evaluateCondition handles ${var} == literal directly from memory; anything
// more complex is forwarded to the reasoning engine as a yes/no question
func (e *Executor) evaluateCondition(condition string) (bool, error) {
	if m := simpleConditionPattern.FindStringSubmatch(condition); m != nil {
		name, literal := m[1], m[2]
		value, ok := e.memory.Retrieve(name)
		if !ok {
			return false, fmt.Errorf("Missing template variables: %s", name)
		}
		return compareWithLiteral(value, literal), nil
	}

	// Complex condition: ask the reasoning engine for a yes/no verdict
	instruction := fmt.Sprintf(
		`Evaluate whether the following condition is true based on the available data: %s. Answer only "yes" or "no".`,
		condition)
	result := e.reasoning.ExecuteReasoningStep(instruction, e.memory)
	if !e.reasoning.ValidateReasoningResult(result, instruction) {
		return false, fmt.Errorf("could not evaluate condition: %v", result)
	}

	str := strings.ToLower(strings.TrimSpace(fmt.Sprintf("%v", result)))
	return strings.HasPrefix(str, "yes") || str == "true", nil
}

// compareWithLiteral coerces the right-hand literal (true/false, integer, or
// quoted/bare string) and compares it against the stored value
func compareWithLiteral(value interface{}, literal string) bool {
	literal = strings.TrimSpace(literal)

	switch literal {
	case "true", "false":
		want := literal == "true"
		switch v := value.(type) {
		case bool:
			return v == want
		case string:
			return strings.EqualFold(v, literal)
		}
		return false
	}

	if n, err := strconv.Atoi(literal); err == nil {
		switch v := value.(type) {
		case int:
			return v == n
		case float64:
			return v == float64(n)
		case string:
			parsed, perr := strconv.Atoi(strings.TrimSpace(v))
			return perr == nil && parsed == n
		}
		return false
	}

	literal = strings.Trim(literal, `"'`)
	return stringifyValue(value) == literal
}

var _ TextGenerator = (*providers.Client)(nil)

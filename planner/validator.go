package planner

import (
	"fmt"
	"sort"
	"strings"

	"sam/actions"
)

// maxPlanSteps bounds how long a generated plan may be
const maxPlanSteps = 10

// Validator statically checks plan structure, action/argument compatibility,
// and variable-reference soundness before any step executes. ValidatePlan is
// a pure function of plan and schema.
type Validator struct{}

// NewValidator creates a Validator
func NewValidator() *Validator {
	return &Validator{}
}

// ValidatePlan runs all checks and accumulates every finding. A structural
// failure (missing goal or steps) suppresses the step-level checks.
func (v *Validator) ValidatePlan(plan *Plan, schema map[string]actions.Spec) ValidationResult {
	var errs []string

	structural := v.validateStructure(plan)
	if len(structural) > 0 {
		return ValidationResult{IsValid: false, Errors: structural}
	}

	errs = append(errs, v.validateSteps(plan.Steps, schema)...)
	errs = append(errs, v.validateMemoryReferences(plan.Steps)...)
	errs = append(errs, v.validateLogicalFlow(plan.Steps)...)

	return ValidationResult{IsValid: len(errs) == 0, Errors: errs}
}

func (v *Validator) validateStructure(plan *Plan) []string {
	var errs []string
	if plan == nil {
		return []string{"plan is nil"}
	}
	if strings.TrimSpace(plan.Goal) == "" {
		errs = append(errs, "missing required key: 'goal'")
	}
	if plan.Steps == nil {
		errs = append(errs, "missing required key: 'steps'")
	} else if len(plan.Steps) == 0 {
		errs = append(errs, "'steps' cannot be empty")
	}
	return errs
}

func (v *Validator) validateSteps(steps []Step, schema map[string]actions.Spec) []string {
	var errs []string
	for i := range steps {
		errs = append(errs, v.validateSingleStep(&steps[i], i+1, schema)...)
	}
	return errs
}

func (v *Validator) validateSingleStep(step *Step, num int, schema map[string]actions.Spec) []string {
	var errs []string

	if step.ID == "" {
		errs = append(errs, fmt.Sprintf("Step %d: missing 'id' field", num))
	}

	switch step.Kind() {
	case KindAction:
		errs = append(errs, v.validateActionStep(step, num, schema)...)
	case KindReasoning:
		if strings.TrimSpace(step.Reasoning) == "" {
			errs = append(errs, fmt.Sprintf("Step %d: 'reasoning' cannot be empty", num))
		}
	case KindConditional:
		if strings.TrimSpace(step.Condition) == "" {
			errs = append(errs, fmt.Sprintf("Step %d: 'condition' cannot be empty", num))
		}
	default:
		errs = append(errs, fmt.Sprintf("Step %d: must have exactly one of 'action', 'reasoning', or 'condition'", num))
	}

	if step.SaveAs != "" && strings.TrimSpace(step.SaveAs) == "" {
		errs = append(errs, fmt.Sprintf("Step %d: 'save_as' cannot be empty", num))
	}

	return errs
}

func (v *Validator) validateActionStep(step *Step, num int, schema map[string]actions.Spec) []string {
	var errs []string

	spec, known := schema[step.Action]
	if !known {
		errs = append(errs, fmt.Sprintf("Step %d: unknown action '%s'", num, step.Action))
		return errs
	}

	valid := make(map[string]bool, len(spec.RequiredArgs)+len(spec.OptionalArgs))
	for _, a := range spec.RequiredArgs {
		valid[a] = true
	}
	for _, a := range spec.OptionalArgs {
		valid[a] = true
	}

	for _, name := range sortedArgNames(step.Args) {
		if !valid[name] {
			errs = append(errs, fmt.Sprintf("Step %d: invalid argument '%s' for action '%s'", num, name, step.Action))
		}
		if !isScalar(step.Args[name]) {
			errs = append(errs, fmt.Sprintf("Step %d: argument '%s' must be a primitive type", num, name))
		}
	}

	for _, required := range spec.RequiredArgs {
		if _, present := step.Args[required]; !present {
			errs = append(errs, fmt.Sprintf("Step %d: missing required argument '%s' for action '%s'", num, required, step.Action))
		}
	}

	return errs
}

// validateMemoryReferences walks steps in order with a defined-variable set,
// flagging any ${name} reference in a string argument that is not defined by
// a strictly earlier step's save_as.
func (v *Validator) validateMemoryReferences(steps []Step) []string {
	var errs []string
	defined := make(map[string]bool)

	for i := range steps {
		step := &steps[i]
		for _, argName := range sortedArgNames(step.Args) {
			str, ok := step.Args[argName].(string)
			if !ok {
				continue
			}
			for _, match := range templatePattern.FindAllStringSubmatch(str, -1) {
				if !defined[match[1]] {
					errs = append(errs, fmt.Sprintf("Step %d: references undefined variable '${%s}' in argument '%s'",
						i+1, match[1], argName))
				}
			}
		}
		if step.SaveAs != "" {
			defined[step.SaveAs] = true
		}
	}
	return errs
}

func (v *Validator) validateLogicalFlow(steps []Step) []string {
	var errs []string

	if len(steps) > maxPlanSteps {
		errs = append(errs, fmt.Sprintf("Plan has too many steps (max %d)", maxPlanSteps))
	}

	defined := make(map[string]int)
	for i := range steps {
		name := steps[i].SaveAs
		if name == "" {
			continue
		}
		if _, dup := defined[name]; dup {
			errs = append(errs, fmt.Sprintf("Step %d: variable '%s' is defined multiple times", i+1, name))
		}
		defined[name] = i
	}
	return errs
}

// sortedArgNames keeps error ordering stable across runs
func sortedArgNames(args map[string]interface{}) []string {
	names := make([]string, 0, len(args))
	for name := range args {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// isScalar reports whether an argument value is a JSON scalar (or null)
func isScalar(value interface{}) bool {
	switch value.(type) {
	case nil, string, bool, float64, int, int64:
		return true
	default:
		return false
	}
}

package planner

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"sam/actions"
)

func testSchema() map[string]actions.Spec {
	return map[string]actions.Spec{
		"create_note": {
			Description:  "Create a note",
			RequiredArgs: []string{"title", "content"},
		},
		"get_events": {
			Description:  "Get events",
			OptionalArgs: []string{"date", "limit"},
		},
		"get_time": {
			Description: "Get the current time",
		},
	}
}

func hasError(result ValidationResult, substr string) bool {
	for _, e := range result.Errors {
		if strings.Contains(e, substr) {
			return true
		}
	}
	return false
}

func TestValidateValidPlan(t *testing.T) {
	plan := &Plan{
		Goal: "note the time",
		Steps: []Step{
			{ID: "step1", Action: "get_time", SaveAs: "now"},
			{ID: "step2", Action: "create_note", Args: map[string]interface{}{
				"title":   "time",
				"content": "it is ${now}",
			}},
		},
	}

	result := NewValidator().ValidatePlan(plan, testSchema())
	if !result.IsValid {
		t.Errorf("expected valid plan, got errors: %v", result.Errors)
	}
}

func TestValidateStructuralFailures(t *testing.T) {
	v := NewValidator()
	schema := testSchema()

	result := v.ValidatePlan(nil, schema)
	if result.IsValid {
		t.Error("nil plan should not validate")
	}

	result = v.ValidatePlan(&Plan{Steps: []Step{{ID: "s", Action: "get_time"}}}, schema)
	if !hasError(result, "missing required key: 'goal'") {
		t.Errorf("expected missing goal error, got %v", result.Errors)
	}

	result = v.ValidatePlan(&Plan{Goal: "g"}, schema)
	if !hasError(result, "missing required key: 'steps'") {
		t.Errorf("expected missing steps error, got %v", result.Errors)
	}

	result = v.ValidatePlan(&Plan{Goal: "g", Steps: []Step{}}, schema)
	if !hasError(result, "'steps' cannot be empty") {
		t.Errorf("expected empty steps error, got %v", result.Errors)
	}
}

func TestValidateUnknownAction(t *testing.T) {
	plan := &Plan{Goal: "g", Steps: []Step{{ID: "s1", Action: "launch_rocket"}}}
	result := NewValidator().ValidatePlan(plan, testSchema())
	if !hasError(result, "unknown action 'launch_rocket'") {
		t.Errorf("expected unknown action error, got %v", result.Errors)
	}
}

func TestValidateArgumentChecks(t *testing.T) {
	v := NewValidator()
	schema := testSchema()

	// unknown argument
	plan := &Plan{Goal: "g", Steps: []Step{
		{ID: "s1", Action: "get_events", Args: map[string]interface{}{"color": "red"}},
	}}
	result := v.ValidatePlan(plan, schema)
	if !hasError(result, "invalid argument 'color'") {
		t.Errorf("expected invalid argument error, got %v", result.Errors)
	}

	// missing required argument
	plan = &Plan{Goal: "g", Steps: []Step{
		{ID: "s1", Action: "create_note", Args: map[string]interface{}{"title": "t"}},
	}}
	result = v.ValidatePlan(plan, schema)
	if !hasError(result, "missing required argument 'content'") {
		t.Errorf("expected missing required argument error, got %v", result.Errors)
	}

	// non-scalar argument
	plan = &Plan{Goal: "g", Steps: []Step{
		{ID: "s1", Action: "get_events", Args: map[string]interface{}{
			"date": map[string]interface{}{"nested": true},
		}},
	}}
	result = v.ValidatePlan(plan, schema)
	if !hasError(result, "must be a primitive type") {
		t.Errorf("expected primitive type error, got %v", result.Errors)
	}
}

func TestValidateStepShape(t *testing.T) {
	v := NewValidator()
	schema := testSchema()

	plan := &Plan{Goal: "g", Steps: []Step{{Action: "get_time"}}}
	result := v.ValidatePlan(plan, schema)
	if !hasError(result, "Step 1: missing 'id' field") {
		t.Errorf("expected missing id error, got %v", result.Errors)
	}

	plan = &Plan{Goal: "g", Steps: []Step{
		{ID: "s1", Action: "get_time", Reasoning: "also think"},
	}}
	result = v.ValidatePlan(plan, schema)
	if !hasError(result, "exactly one of 'action', 'reasoning', or 'condition'") {
		t.Errorf("expected variant error, got %v", result.Errors)
	}

	plan = &Plan{Goal: "g", Steps: []Step{{ID: "s1"}}}
	result = v.ValidatePlan(plan, schema)
	if result.IsValid {
		t.Error("step with no variant should not validate")
	}
}

func TestValidateUndefinedVariableReference(t *testing.T) {
	plan := &Plan{Goal: "g", Steps: []Step{
		{ID: "s1", Action: "create_note", Args: map[string]interface{}{
			"title":   "t",
			"content": "value is ${result}",
		}},
	}}
	result := NewValidator().ValidatePlan(plan, testSchema())
	if !hasError(result, "references undefined variable '${result}' in argument 'content'") {
		t.Errorf("expected undefined variable error, got %v", result.Errors)
	}
}

func TestValidateReferenceOrdering(t *testing.T) {
	// A reference to a variable defined by a LATER step is still undefined
	plan := &Plan{Goal: "g", Steps: []Step{
		{ID: "s1", Action: "create_note", Args: map[string]interface{}{
			"title":   "t",
			"content": "${later}",
		}},
		{ID: "s2", Action: "get_time", SaveAs: "later"},
	}}
	result := NewValidator().ValidatePlan(plan, testSchema())
	if !hasError(result, "undefined variable '${later}'") {
		t.Errorf("expected forward reference to fail, got %v", result.Errors)
	}
}

func TestValidateDuplicateSaveAs(t *testing.T) {
	plan := &Plan{Goal: "g", Steps: []Step{
		{ID: "s1", Action: "get_time", SaveAs: "x"},
		{ID: "s2", Action: "get_time", SaveAs: "x"},
	}}
	result := NewValidator().ValidatePlan(plan, testSchema())
	if !hasError(result, "variable 'x' is defined multiple times") {
		t.Errorf("expected duplicate definition error, got %v", result.Errors)
	}
}

func TestValidateTooManySteps(t *testing.T) {
	steps := make([]Step, 11)
	for i := range steps {
		steps[i] = Step{ID: fmt.Sprintf("s%d", i+1), Action: "get_time"}
	}
	result := NewValidator().ValidatePlan(&Plan{Goal: "g", Steps: steps}, testSchema())
	if !hasError(result, "too many steps (max 10)") {
		t.Errorf("expected step limit error, got %v", result.Errors)
	}
}

func TestValidateAccumulatesAllErrors(t *testing.T) {
	plan := &Plan{Goal: "g", Steps: []Step{
		{ID: "s1", Action: "nope"},
		{ID: "s2", Action: "create_note", Args: map[string]interface{}{
			"content": "${gone}",
		}},
	}}
	result := NewValidator().ValidatePlan(plan, testSchema())
	if len(result.Errors) < 3 {
		t.Errorf("expected all findings reported, got %v", result.Errors)
	}
}

func TestValidateIsDeterministic(t *testing.T) {
	plan := &Plan{Goal: "g", Steps: []Step{
		{ID: "s1", Action: "nope"},
		{ID: "s2", Action: "create_note", Args: map[string]interface{}{"title": "t"}},
	}}
	v := NewValidator()
	schema := testSchema()

	first := v.ValidatePlan(plan, schema)
	for i := 0; i < 5; i++ {
		again := v.ValidatePlan(plan, schema)
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("validation not deterministic: %v vs %v", first, again)
		}
	}
}

package planner

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rohanthewiz/logger"
	"sam/actions"
	"sam/providers"
)

const planningSystemPrompt = "You are a planning assistant. Respond with only valid JSON."

// Generator turns a natural language goal into a structured plan via one
// language model call, then validates the result before returning it
type Generator struct {
	llm       TextGenerator
	validator *Validator
}

// NewGenerator creates a plan generator
func NewGenerator(llm TextGenerator) *Generator {
	return &Generator{llm: llm, validator: NewValidator()}
}

// GeneratePlan produces a validated plan for a goal. On any failure the plan
// is nil, ok is false, and errs describes what went wrong (model errors,
// unparseable output, or validation failures).
func (g *Generator) GeneratePlan(goal string, schema map[string]actions.Spec) (plan *Plan, ok bool, errs []string) {
	prompt := buildPlanningPrompt(goal, schema)

	reply := g.llm.Generate([]providers.Message{
		providers.SystemPrompt(planningSystemPrompt),
		providers.UserMessage(prompt),
	}, 1000, 0.1)

	if providers.IsErrorReply(reply) {
		return nil, false, []string{reply}
	}

	plan, err := parsePlanJSON(reply)
	if err != nil {
		logger.Warn("Unparseable plan from model", "goal", goal, "error", err.Error())
		return nil, false, []string{err.Error()}
	}

	validation := g.validator.ValidatePlan(plan, schema)
	if !validation.IsValid {
		logger.Info("Generated plan failed validation",
			"goal", goal, "errors", strings.Join(validation.Errors, "; "))
		return nil, false, validation.Errors
	}

	return plan, true, nil
}

// parsePlanJSON extracts the JSON object from model output that may carry
// surrounding prose or code fences, and checks the structural essentials
// before handing the plan to full validation
func parsePlanJSON(reply string) (*Plan, error) {
	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object found in model output")
	}

	raw := reply[start : end+1]

	var shape map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &shape); err != nil {
		return nil, fmt.Errorf("invalid JSON in model output: %s", err.Error())
	}
	if _, isStr := shape["goal"].(string); !isStr {
		return nil, fmt.Errorf("plan is missing a 'goal' string")
	}
	if _, isList := shape["steps"].([]interface{}); !isList {
		return nil, fmt.Errorf("plan is missing a 'steps' list")
	}

	var plan Plan
	if err := json.Unmarshal([]byte(raw), &plan); err != nil {
		return nil, fmt.Errorf("plan does not match the expected shape: %s", err.Error())
	}
	return &plan, nil
}

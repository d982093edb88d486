package router

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rohanthewiz/logger"
	"sam/actions"
	"sam/db"
	"sam/planner"
)

const cancelReply = "Current task and follow-ups have been cancelled."

// RunRecorder persists completed plan runs. A nil recorder disables
// persistence.
type RunRecorder interface {
	SaveRun(run *db.PlanRun) error
}

// Orchestrator is the single entry point for user messages. It checks
// commands, classifies intent, and routes to slot-filling, the plan engine,
// or a general-query reply. One Orchestrator serves all sessions; per-session
// slot-filling state lives in the states map.
type Orchestrator struct {
	mu        sync.Mutex
	registry  *actions.Registry
	matcher   *Matcher
	extractor *Extractor
	generator *planner.Generator
	executor  *planner.Executor
	recorder  RunRecorder
	states    map[string]*TaskState
}

// NewOrchestrator wires the full routing pipeline
func NewOrchestrator(llm planner.TextGenerator, registry *actions.Registry, recorder RunRecorder) *Orchestrator {
	return &Orchestrator{
		registry:  registry,
		matcher:   NewMatcher(),
		extractor: NewExtractor(llm),
		generator: planner.NewGenerator(llm),
		executor:  planner.NewExecutor(planner.NewReasoningEngine(llm), registry, registry.Schema()),
		recorder:  recorder,
		states:    map[string]*TaskState{},
	}
}

// HandleMessage processes one user message for a session and returns the
// reply text. It never returns an error; every failure becomes a sentence.
func (o *Orchestrator) HandleMessage(sessionID, input string) string {
	o.mu.Lock()
	defer o.mu.Unlock()

	state := o.states[sessionID]
	if state == nil {
		state = NewTaskState()
		o.states[sessionID] = state
	}

	if isCancelCommand(input) {
		state.Reset()
		o.executor.Reset()
		return cancelReply
	}

	// A reply while an action is mid slot-filling answers the open question
	if state.Active() && !state.IsComplete() {
		return o.handleFollowup(state, input)
	}

	intent, actionName := o.matcher.Classify(input)
	logger.Debug("Classified message", "intent", string(intent), "action", actionName)

	switch intent {
	case IntentSimple:
		return o.handleSimpleAction(state, input, actionName)
	case IntentAgent:
		return o.handleAgenticRequest(sessionID, input)
	default:
		return o.extractor.GeneralResponse(input)
	}
}

func isCancelCommand(input string) bool {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "cancel", "reset", "sam cancel", "sam reset", "never mind", "nevermind":
		return true
	}
	return false
}

// handleSimpleAction runs the fast slot-filling path: extract what the
// message already carries, then either execute or ask for the first missing
// required argument.
func (o *Orchestrator) handleSimpleAction(state *TaskState, input, actionName string) string {
	schema := o.registry.Schema()
	spec, known := schema[actionName]
	if !known {
		return fmt.Sprintf("Sorry, I don't know how to do '%s'.", actionName)
	}

	// Switching actions mid-conversation abandons the previous one
	if state.ActionName != "" && state.ActionName != actionName {
		state.Reset()
	}
	if state.ActionName == "" {
		state.StartAction(actionName, spec.RequiredArgs, spec.OptionalArgs)
	}

	if len(spec.RequiredArgs) == 0 && len(spec.OptionalArgs) == 0 {
		state.Reset()
		return o.runAction(actionName, map[string]interface{}{})
	}

	for name, value := range o.extractor.ExtractArguments(input, actionName, spec) {
		state.UpdateArgument(name, value)
	}

	if missing := state.NextMissingArg(); missing != "" {
		question := o.extractor.FollowupQuestion(actionName, missing)
		state.AddHistory(input, question)
		return question
	}

	args := state.CollectedArgs
	state.Reset()
	return o.runAction(actionName, args)
}

// handleFollowup consumes the user's answer to the pending question. A
// usable value advances the slot-filling; a generic one re-asks.
func (o *Orchestrator) handleFollowup(state *TaskState, reply string) string {
	missing := state.NextMissingArg()
	if missing == "" {
		state.Reset()
		return "Nothing is in progress. What would you like to do?"
	}

	value := o.extractor.ExtractArgumentFromReply(reply, missing)
	if value == nil {
		question := o.extractor.FollowupQuestion(state.ActionName, missing)
		state.AddHistory(reply, question)
		return question
	}

	state.UpdateArgument(missing, value)
	state.AddHistory(reply, "")

	if !state.IsComplete() {
		next := state.NextMissingArg()
		question := o.extractor.FollowupQuestion(state.ActionName, next)
		state.AddHistory("", question)
		return question
	}

	actionName, args := state.ActionName, state.CollectedArgs
	state.Reset()
	return o.runAction(actionName, args)
}

func (o *Orchestrator) runAction(name string, args map[string]interface{}) string {
	result, err := o.registry.Execute(name, args)
	if err != nil {
		logger.LogErr(err, "action failed", "action", name)
		return fmt.Sprintf("Sorry, I couldn't do that. %s", err.Error())
	}
	return result
}

// handleAgenticRequest runs the full plan pipeline: generate, execute,
// persist the run, and phrase the outcome
func (o *Orchestrator) handleAgenticRequest(sessionID, input string) string {
	plan, ok, errs := o.generator.GeneratePlan(input, o.registry.Schema())
	if !ok {
		msg := "Sorry, I couldn't create a plan for that request."
		if len(errs) > 0 {
			shown := errs
			if len(shown) > 3 {
				shown = shown[:3]
			}
			msg += " Errors: " + strings.Join(shown, ", ")
		}
		return msg
	}

	result := o.executor.ExecutePlan(plan)
	o.recordRun(sessionID, plan, result)

	if !result.Success {
		errText := result.Error
		if errText == "" {
			errText = "Unknown error"
		}
		return fmt.Sprintf("Sorry, I couldn't complete that request. Error: %s", errText)
	}

	return formatAgenticResponse(result)
}

// recordRun persists the run for later inspection; failures are logged only
func (o *Orchestrator) recordRun(sessionID string, plan *planner.Plan, result planner.ExecutionResult) {
	if o.recorder == nil {
		return
	}

	planJSON, err := json.Marshal(plan)
	if err != nil {
		logger.LogErr(err, "failed to encode plan")
		return
	}
	resultJSON, err := json.Marshal(result)
	if err != nil {
		logger.LogErr(err, "failed to encode execution result")
		return
	}

	run := &db.PlanRun{
		ID:         uuid.New().String(),
		SessionID:  sessionID,
		Goal:       plan.Goal,
		Plan:       string(planJSON),
		Result:     string(resultJSON),
		Success:    result.Success,
		DurationMs: result.ExecutionTime.Milliseconds(),
	}
	if err := o.recorder.SaveRun(run); err != nil {
		logger.LogErr(err, "failed to save plan run", "goal", plan.Goal)
	}
}

// formatAgenticResponse phrases a successful execution for the user. The
// last step's output is what the user asked for.
func formatAgenticResponse(result planner.ExecutionResult) string {
	if len(result.Results) > 0 {
		final := result.Results[len(result.Results)-1]
		switch final.StepType {
		case planner.KindAction:
			if str, ok := final.Result.(string); ok && str != "" {
				return str
			}
			return "Task completed successfully."
		case planner.KindReasoning:
			return fmt.Sprintf("I've analyzed the information and found: %v", final.Result)
		}
	}
	return fmt.Sprintf("I've completed your request: %s. It took %.1f seconds.",
		result.Goal, result.ExecutionTime.Seconds())
}

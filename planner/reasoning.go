package planner

import (
	"encoding/json"
	"strconv"
	"strings"

	"sam/providers"
)

// InsufficientData is the sentinel the reasoning model returns when an
// instruction cannot be satisfied from the data in memory
const InsufficientData = "INSUFFICIENT_DATA"

// maxReasoningResultLen bounds the size of a reasoning result considered valid
const maxReasoningResultLen = 1000

// ReasoningEngine resolves a single reasoning step against the current
// memory state via the text-generation collaborator
type ReasoningEngine struct {
	llm TextGenerator
}

// NewReasoningEngine creates a ReasoningEngine
func NewReasoningEngine(llm TextGenerator) *ReasoningEngine {
	return &ReasoningEngine{llm: llm}
}

// ExecuteReasoningStep runs the instruction with the memory snapshot embedded
// in the prompt and returns the parsed result
func (r *ReasoningEngine) ExecuteReasoningStep(instruction string, memory *Memory) interface{} {
	prompt := buildReasoningPrompt(instruction, memory.FormatForLLM())

	reply := r.llm.Generate([]providers.Message{
		providers.SystemPrompt("You are a reasoning engine. Provide concise, accurate responses."),
		providers.UserMessage(prompt),
	}, 200, 0.05)

	return parseReasoningResult(reply)
}

// ValidateReasoningResult flags results that are empty, an error sentinel,
// or oversized. Callers treat a false verdict as a step failure.
func (r *ReasoningEngine) ValidateReasoningResult(result interface{}, instruction string) bool {
	if result == nil {
		return false
	}
	if str, ok := result.(string); ok {
		if str == "" {
			return false
		}
		upper := strings.ToUpper(str)
		if upper == InsufficientData || upper == "ERROR" || upper == "REASONING_ERROR" {
			return false
		}
		if strings.HasPrefix(upper, "ERROR:") {
			return false
		}
		if len(str) > maxReasoningResultLen {
			return false
		}
	}
	return true
}

// parseReasoningResult turns a raw model reply into a typed result:
// structured JSON first, then numeric coercion, then a single layer of
// surrounding quotes, else the trimmed string as-is.
func parseReasoningResult(reply string) interface{} {
	reply = strings.TrimSpace(reply)

	if strings.ToUpper(reply) == InsufficientData {
		return InsufficientData
	}
	if strings.HasPrefix(strings.ToUpper(reply), "ERROR:") {
		return reply
	}

	if strings.HasPrefix(reply, "{") || strings.HasPrefix(reply, "[") {
		var structured interface{}
		if err := json.Unmarshal([]byte(reply), &structured); err == nil {
			return structured
		}
	}

	if strings.Contains(reply, ".") {
		if f, err := strconv.ParseFloat(reply, 64); err == nil {
			return f
		}
	} else if n, err := strconv.Atoi(reply); err == nil {
		return n
	}

	if len(reply) >= 2 {
		if (strings.HasPrefix(reply, `"`) && strings.HasSuffix(reply, `"`)) ||
			(strings.HasPrefix(reply, "'") && strings.HasSuffix(reply, "'")) {
			return reply[1 : len(reply)-1]
		}
	}

	return reply
}

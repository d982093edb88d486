package router

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rohanthewiz/logger"
	"sam/actions"
	"sam/planner"
	"sam/providers"
)

// followupQuestions holds the canned follow-up for each action/argument pair.
// Anything not listed falls back to a generic phrasing.
var followupQuestions = map[[2]string]string{
	{"create_note", "title"}:           "What should the note be called?",
	{"create_note", "content"}:         "What should the note say?",
	{"create_event", "title"}:          "What is the title of the event?",
	{"create_event", "start_time"}:     "When should the event start?",
	{"create_event", "duration"}:       "How long will the event last?",
	{"create_event", "description"}:    "What is the description of the event?",
	{"create_event", "location"}:       "Where will the event take place?",
	{"create_event", "date"}:           "On what date should the event be scheduled?",
	{"add_todo", "item"}:               "What would you like to add to your to-do list?",
	{"read_note", "title"}:             "What is the title of the note you want to read?",
	{"edit_note", "title"}:             "What is the title of the note you want to edit?",
	{"edit_note", "content"}:           "What should the updated note say?",
	{"delete_note", "title"}:           "What is the title of the note you want to delete?",
	{"remove_todo_item", "item_number"}: "Which item number would you like to remove from your to-do list?",
}

const extractionSystemPrompt = "You are an argument extraction assistant. Output only valid JSON."

// Extractor pulls action arguments out of free-form user text with one model
// call per extraction
type Extractor struct {
	llm planner.TextGenerator
}

// NewExtractor creates an Extractor
func NewExtractor(llm planner.TextGenerator) *Extractor {
	return &Extractor{llm: llm}
}

// ExtractArguments asks the model for every argument of an action that is
// clearly present in the message. Null and absent arguments are dropped; on
// any model or parse failure the result is simply empty.
func (e *Extractor) ExtractArguments(input, action string, spec actions.Spec) map[string]interface{} {
	argNames := append(append([]string(nil), spec.RequiredArgs...), spec.OptionalArgs...)

	prompt := fmt.Sprintf(
		"You are extracting arguments for the action [%s].\n"+
			"Arguments: [%s]\n"+
			"Extract ONLY the arguments that are clearly present in the user's message. "+
			"Do NOT use generic words like 'new', 'something', 'a note', 'an event', 'the note', 'the event' as argument values. "+
			"Only extract specific, meaningful values. If the user says something generic like 'read a note', do NOT extract 'a note' as the title.\n"+
			"Output a JSON object with only the arguments you are certain about.\n"+
			"Examples:\n"+
			"- User prompt: 'create an event called studying at 9 pm tomorrow'\n"+
			"  Output: {\"title\": \"studying\", \"start_time\": \"9 pm tomorrow\"}\n"+
			"- User prompt: 'create a new note'\n"+
			"  Output: {}\n"+
			"User prompt: %s",
		action, strings.Join(argNames, ", "), input)

	reply := e.llm.Generate([]providers.Message{
		providers.SystemPrompt(extractionSystemPrompt),
		providers.UserMessage(prompt),
	}, 200, 0.05)

	if providers.IsErrorReply(reply) {
		logger.Warn("Argument extraction failed", "action", action, "error", reply)
		return map[string]interface{}{}
	}

	extracted := map[string]interface{}{}
	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start < 0 || end <= start {
		return extracted
	}
	if err := json.Unmarshal([]byte(reply[start:end+1]), &extracted); err != nil {
		logger.Debug("Unparseable extraction output", "action", action, "reply", reply)
		return map[string]interface{}{}
	}

	for name, value := range extracted {
		if value == nil {
			delete(extracted, name)
		}
	}
	return extracted
}

// ExtractArgumentFromReply pulls a single argument value out of a follow-up
// reply. Returns nil when the reply is generic or extraction fails, which
// makes the caller re-ask the question.
func (e *Extractor) ExtractArgumentFromReply(reply, argName string) interface{} {
	prompt := fmt.Sprintf(
		"You are extracting the value for argument [%s]. "+
			"Extract ONLY the value, as a JSON string. "+
			"If the reply is generic (like 'new' or 'something'), return null.\n"+
			"Examples:\n"+
			"- User reply: 'studying' -> \"studying\"\n"+
			"- User reply: 'the name is new' -> null\n"+
			"User reply: %s",
		argName, reply)

	out := e.llm.Generate([]providers.Message{
		providers.SystemPrompt(extractionSystemPrompt),
		providers.UserMessage(prompt),
	}, 100, 0.05)

	if providers.IsErrorReply(out) {
		logger.Warn("Follow-up extraction failed", "arg", argName, "error", out)
		return nil
	}

	out = strings.TrimSpace(out)
	if out == "" || strings.EqualFold(out, "null") {
		return nil
	}

	var value interface{}
	if err := json.Unmarshal([]byte(out), &value); err == nil {
		if str, ok := value.(string); ok && strings.TrimSpace(str) == "" {
			return nil
		}
		return value
	}
	return out
}

// FollowupQuestion returns the question to ask for a missing argument
func (e *Extractor) FollowupQuestion(action, argName string) string {
	if q, ok := followupQuestions[[2]string{action, argName}]; ok {
		return q
	}
	return fmt.Sprintf("What should the %s be?", strings.ReplaceAll(argName, "_", " "))
}

// GeneralResponse answers a conversational message outside the action
// vocabulary
func (e *Extractor) GeneralResponse(query string) string {
	system := "You are SAM, a personal assistant. Respond naturally to each query as if it's a fresh conversation.\n" +
		"For factual, info questions (what is, how many, when, where): Give direct, concise answers.\n" +
		"For conversational comments (wow, that's cool, etc.): Respond naturally and conversationally.\n" +
		"For social questions (jokes, favorites, etc.): Be warm and engaging.\n" +
		"For complex questions (academic, technical, etc.): Be slightly more detailed, but still concise.\n" +
		"Keep responses natural and conversational (1-2 sentences)."

	reply := e.llm.Generate([]providers.Message{
		providers.SystemPrompt(system),
		providers.UserMessage(query),
	}, 500, 0.1)

	if providers.IsErrorReply(reply) {
		logger.Warn("General response failed", "error", reply)
		return "Sorry, I'm having trouble answering right now."
	}
	return reply
}

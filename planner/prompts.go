package planner

import (
	"fmt"
	"sort"
	"strings"

	"sam/actions"
)

// buildReasoningPrompt embeds the memory listing and the instruction into the
// reasoning prompt. The guidance block keeps small models on track: empty
// calendars mean free time, and INSUFFICIENT_DATA is the give-up sentinel.
func buildReasoningPrompt(instruction, memoryContext string) string {
	return fmt.Sprintf(`You are a reasoning engine that performs logical operations on data.

AVAILABLE DATA:
%s

INSTRUCTION:
%s

INSTRUCTIONS:
1. Analyze the available data above
2. Follow the instruction precisely
3. Return ONLY the result, formatted appropriately
4. If the instruction asks for a specific format (like a timestamp), use that format
5. If the data shows "no events" or empty lists, interpret this as "all time is free"
6. For time-based reasoning with no events, suggest reasonable default times (e.g., "7:00 PM")
7. When parsing natural language responses, extract the relevant information:
   - From numbered lists like "1. homework\n2. club things\n3. to do" extract the title that matches
   - From "You have 2 events today. Work meeting at 6 PM, and Gym at 8 PM." extract event details
8. If you cannot complete the instruction with available data, return "INSUFFICIENT_DATA"
9. Be concise and precise in your response

EXAMPLES:
- Instruction: "Find the note titled 'homework' from the notes list"
- Data: "1. homework\n2. club things\n3. to do"
- Result: "homework"

Result:`, memoryContext, instruction)
}

// buildPlanningPrompt lists the action catalog and worked examples of the
// save_as / ${var} convention, then asks for a JSON plan for the goal
func buildPlanningPrompt(goal string, schema map[string]actions.Spec) string {
	return fmt.Sprintf(`You are a planning agent that creates structured execution plans from user goals.

AVAILABLE ACTIONS:
%s

TASK: Create a step-by-step plan to accomplish the user's goal.

INSTRUCTIONS:
1. Analyze the goal carefully and break it down into logical steps
2. Use the available actions to create a plan
3. Consider what information might be needed (e.g., check availability before creating events)
4. Use reasoning steps when you need to process data or make decisions
5. Store intermediate results using the "save_as" field when needed
6. Use template variables like ${variable_name} to reference stored data
7. CRITICAL: Every step that produces data needed by later steps MUST include a "save_as" field
8. Return ONLY a valid JSON object with this exact structure:

{
    "goal": "description of the user's goal",
    "steps": [
        {
            "id": "s1",
            "action": "action_name",
            "args": {"arg1": "value1"},
            "save_as": "variable_name"
        },
        {
            "id": "s2",
            "reasoning": "process the data to find the best time",
            "save_as": "result_variable"
        },
        {
            "id": "s3",
            "action": "create_event",
            "args": {"title": "dinner", "start_time": "${result_variable}"}
        }
    ]
}

EXAMPLES:

User: "create a dinner event tonight when im free"
{
    "goal": "Create a dinner event for tonight when the user is available",
    "steps": [
        {
            "id": "s1",
            "action": "get_events",
            "args": {"date": "today"},
            "save_as": "events_list"
        },
        {
            "id": "s2",
            "reasoning": "Find first available 1-hour slot between 6 PM and 10 PM from the events list",
            "save_as": "free_slot"
        },
        {
            "id": "s3",
            "action": "create_event",
            "args": {"title": "dinner", "start_time": "${free_slot}"}
        }
    ]
}

User: "read my homework note and create an event with the subject name"
{
    "goal": "Read homework note content and create an event with the subject",
    "steps": [
        {
            "id": "s1",
            "action": "list_notes",
            "args": {},
            "save_as": "notes_list"
        },
        {
            "id": "s2",
            "reasoning": "Find the note titled 'homework' from the notes list",
            "save_as": "homework_note_title"
        },
        {
            "id": "s3",
            "action": "read_note",
            "args": {"title": "${homework_note_title}"},
            "save_as": "homework_content"
        },
        {
            "id": "s4",
            "reasoning": "Extract the subject name from the homework content",
            "save_as": "subject_name"
        },
        {
            "id": "s5",
            "action": "create_event",
            "args": {"title": "${subject_name}", "start_time": "9:00 PM"}
        }
    ]
}

IMPORTANT: Every step that produces data needed by later steps MUST include a "save_as" field to store the result in memory.

User: "%s"

Return ONLY the JSON plan:`, formatActionsForPrompt(schema), goal)
}

// formatActionsForPrompt renders the action catalog in a model-friendly form
func formatActionsForPrompt(schema map[string]actions.Spec) string {
	names := make([]string, 0, len(schema))
	for name := range schema {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	for i, name := range names {
		spec := schema[name]
		if i > 0 {
			sb.WriteString("\n")
		}

		// Usage notes steer the model toward the right data source
		note := ""
		switch name {
		case "list_notes":
			note = " (returns numbered list of note titles, not content)"
		case "read_note":
			note = " (returns the actual content of a specific note)"
		case "get_events":
			note = " (returns event details, not just titles)"
		}

		fmt.Fprintf(&sb, "- %s:\n  Description: %s%s\n  Required args: %s\n  Optional args: %s",
			name, spec.Description, note, formatArgList(spec.RequiredArgs), formatArgList(spec.OptionalArgs))
	}
	return sb.String()
}

func formatArgList(args []string) string {
	if len(args) == 0 {
		return "none"
	}
	return strings.Join(args, ", ")
}

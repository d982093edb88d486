package router

import (
	"regexp"
	"strings"
)

// Intent classifies what kind of handling a message needs
type Intent string

const (
	// IntentSimple is a direct action request, handled with slot-filling
	IntentSimple Intent = "simple"
	// IntentAgent is a multi-step request, handled by the plan engine
	IntentAgent Intent = "agent"
	// IntentQuery is general conversation, answered directly by the model
	IntentQuery Intent = "query"
)

// actionPattern maps a compiled pattern to the action it indicates
type actionPattern struct {
	re     *regexp.Regexp
	action string
}

// Matcher classifies a message by keyword and pattern matching. Patterns are
// checked in order and the first hit wins. A message carrying sequencing or
// conditional words is routed to the planner before any action pattern is
// tried; anything with no action match becomes a general query.
type Matcher struct {
	patterns   []actionPattern
	connectors *regexp.Regexp
}

// NewMatcher builds the default matcher over the built-in action vocabulary
func NewMatcher() *Matcher {
	mk := func(expr, action string) actionPattern {
		return actionPattern{re: regexp.MustCompile(expr), action: action}
	}
	return &Matcher{
		patterns: []actionPattern{
			mk(`^(hi|hello|hey|good (morning|afternoon|evening))\b`, "greeting"),
			mk(`\bwhat time is it\b|\bcurrent time\b|\btell me the time\b`, "get_time"),
			mk(`\bwhat('s| is) (the |today's )?date\b|\btoday's date\b`, "get_date"),
			mk(`\bwhat day (is it|is today)\b`, "get_day"),
			mk(`\b(create|add|schedule|make|set up)\b.*\b(event|meeting|appointment)\b`, "create_event"),
			mk(`\b(what('s| is) (on )?my (calendar|schedule)|my events|events (today|tomorrow|this week)|upcoming events|do i have any events)\b`, "get_events"),
			mk(`\b(list|show|what) (all )?(my )?notes\b`, "list_notes"),
			mk(`\b(create|make|write|take)\b.*\bnote\b`, "create_note"),
			mk(`\b(read|open|show)\b.*\bnote\b`, "read_note"),
			mk(`\b(edit|update|change)\b.*\bnote\b`, "edit_note"),
			mk(`\b(delete|remove|trash)\b.*\bnote\b`, "delete_note"),
			mk(`\bclear\b.*\bto( |-)?do\b`, "clear_todo"),
			mk(`\b(remove|delete|take off)\b.*\b(item|number)\b.*\b(list|to( |-)?do)\b|\bremove item\b`, "remove_todo_item"),
			mk(`\b(show|what('s| is) on)\b.*\bto( |-)?do\b|\bmy to( |-)?do list\b`, "show_todo"),
			mk(`\b(add|put)\b.*\bto( |-)?do\b|\bto my list\b`, "add_todo"),
		},
		connectors: regexp.MustCompile(`\b(and then|then |after that|if i('m| am)|when i('m| am)|check (if|whether)|first\b.*\bthen)\b`),
	}
}

// Classify returns the intent for a message, plus the matched action name
// when the intent is simple
func (m *Matcher) Classify(input string) (Intent, string) {
	text := strings.ToLower(strings.TrimSpace(input))
	if text == "" {
		return IntentQuery, ""
	}

	if m.connectors.MatchString(text) {
		return IntentAgent, ""
	}

	for _, p := range m.patterns {
		if p.re.MatchString(text) {
			return IntentSimple, p.action
		}
	}
	return IntentQuery, ""
}

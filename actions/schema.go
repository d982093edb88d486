package actions

// Spec describes one action's argument contract
type Spec struct {
	Description  string   `json:"description"`
	RequiredArgs []string `json:"required_args"`
	OptionalArgs []string `json:"optional_args"`
}

// Schema is the catalog of actions the assistant can perform.
// Both the plan validator and the plan generator's prompt are driven by it.
var Schema = map[string]Spec{
	"create_event": {
		Description:  "Create a new calendar event with a specific title and start time. Optionally include duration, description, location, or date.",
		RequiredArgs: []string{"title", "start_time"},
		OptionalArgs: []string{"duration", "description", "location", "date"},
	},
	"get_events": {
		Description:  "Show the user's calendar events, optionally filtered by date or a limit on the number of events.",
		RequiredArgs: []string{},
		OptionalArgs: []string{"date", "upcoming_only", "limit"},
	},
	"get_time": {
		Description:  "Tell the user the current time.",
		RequiredArgs: []string{},
		OptionalArgs: []string{},
	},
	"get_date": {
		Description:  "Tell the user today's date.",
		RequiredArgs: []string{},
		OptionalArgs: []string{},
	},
	"get_day": {
		Description:  "Tell the user the current day of the week.",
		RequiredArgs: []string{},
		OptionalArgs: []string{},
	},
	"create_note": {
		Description:  "Create a new note with a specific title and content. Notes are for storing information, ideas, or reminders that are not part of your todo list.",
		RequiredArgs: []string{"title", "content"},
		OptionalArgs: []string{},
	},
	"read_note": {
		Description:  "Display the content of a specific note by its title.",
		RequiredArgs: []string{"title"},
		OptionalArgs: []string{},
	},
	"edit_note": {
		Description:  "Edit the content of an existing personal note, identified by its title. Notes are for information, not tasks.",
		RequiredArgs: []string{"title", "content"},
		OptionalArgs: []string{},
	},
	"delete_note": {
		Description:  "Delete a personal note from your collection, identified by its title. Notes are not your todo list.",
		RequiredArgs: []string{"title"},
		OptionalArgs: []string{},
	},
	"list_notes": {
		Description:  "List all personal notes you have created. Notes are separate from your todo list.",
		RequiredArgs: []string{},
		OptionalArgs: []string{},
	},
	"add_todo": {
		Description:  "Add a new task or item to your todo list. The todo list is for things you need to do, not for storing general notes.",
		RequiredArgs: []string{"item"},
		OptionalArgs: []string{},
	},
	"show_todo": {
		Description:  "Show your current todo list. Use this to see your todo list, not your notes.",
		RequiredArgs: []string{},
		OptionalArgs: []string{},
	},
	"clear_todo": {
		Description:  "Clear all tasks and items from your todo list. This does not affect your notes.",
		RequiredArgs: []string{},
		OptionalArgs: []string{},
	},
	"remove_todo_item": {
		Description:  "Remove a specific task or item from your todo list by its number. This does not affect your notes.",
		RequiredArgs: []string{"item_number"},
		OptionalArgs: []string{},
	},
	"greeting": {
		Description:  "Respond to greetings or friendly messages from the user.",
		RequiredArgs: []string{},
		OptionalArgs: []string{},
	},
}

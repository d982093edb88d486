package actions

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rohanthewiz/serr"
	"sam/db"
)

// DefaultRegistry builds the standard action registry backed by the given stores
func DefaultRegistry(events *db.EventStore, notes *db.NoteStore, todos *db.TodoStore) *Registry {
	r := NewRegistry()
	svc := &services{events: events, notes: notes, todos: todos}

	register := func(name string, fn ExecutorFunc) {
		spec, ok := Schema[name]
		if !ok {
			panic("action not in schema: " + name)
		}
		r.Register(name, spec, fn)
	}

	register("create_event", svc.createEvent)
	register("get_events", svc.getEvents)
	register("get_time", svc.getTime)
	register("get_date", svc.getDate)
	register("get_day", svc.getDay)
	register("create_note", svc.createNote)
	register("read_note", svc.readNote)
	register("edit_note", svc.editNote)
	register("delete_note", svc.deleteNote)
	register("list_notes", svc.listNotes)
	register("add_todo", svc.addTodo)
	register("show_todo", svc.showTodo)
	register("clear_todo", svc.clearTodo)
	register("remove_todo_item", svc.removeTodoItem)
	register("greeting", svc.greeting)

	return r
}

type services struct {
	events *db.EventStore
	notes  *db.NoteStore
	todos  *db.TodoStore
}

func (s *services) createEvent(args map[string]interface{}) (string, error) {
	title, _ := GetString(args, "title")
	startTime, _ := GetString(args, "start_time")
	if title == "" || startTime == "" {
		return "", serr.New("create_event requires title and start_time")
	}

	ev := &db.Event{Title: title, StartTime: startTime}
	ev.Date, _ = GetString(args, "date")
	ev.Duration, _ = GetString(args, "duration")
	ev.Description, _ = GetString(args, "description")
	ev.Location, _ = GetString(args, "location")

	if err := s.events.CreateEvent(ev); err != nil {
		return "", err
	}
	return fmt.Sprintf("I've created an event called '%s' for %s.", title, startTime), nil
}

func (s *services) getEvents(args map[string]interface{}) (string, error) {
	filter := db.EventFilter{}
	filter.Date, _ = GetString(args, "date")
	filter.Limit, _ = GetInt(args, "limit")
	// Default to today's events when no filter is given
	if filter.Date == "" && filter.Limit == 0 {
		filter.Date = "today"
	}

	events, err := s.events.GetEvents(filter)
	if err != nil {
		return "", err
	}
	if len(events) == 0 {
		return "You have no events scheduled.", nil
	}

	dayStr := ""
	switch filter.Date {
	case "today", "tomorrow":
		dayStr = " " + filter.Date
	}

	eventStrs := make([]string, 0, len(events))
	for _, ev := range events {
		eventStrs = append(eventStrs, formatEvent(ev))
	}
	if len(events) == 1 {
		return fmt.Sprintf("You have 1 event%s. %s.", dayStr, eventStrs[0]), nil
	}
	return fmt.Sprintf("You have %d events%s. %s.", len(events), dayStr, formatListNatural(eventStrs)), nil
}

func (s *services) getTime(args map[string]interface{}) (string, error) {
	return "It is " + formatClock(time.Now()) + ".", nil
}

func (s *services) getDate(args map[string]interface{}) (string, error) {
	return "Today is " + time.Now().Format("Monday, January 2, 2006") + ".", nil
}

func (s *services) getDay(args map[string]interface{}) (string, error) {
	return "It's " + time.Now().Format("Monday") + ".", nil
}

func (s *services) createNote(args map[string]interface{}) (string, error) {
	title, _ := GetString(args, "title")
	content, _ := GetString(args, "content")
	if title == "" {
		return "", serr.New("create_note requires a title")
	}
	if err := s.notes.CreateNote(title, content); err != nil {
		return "Sorry, I couldn't create that note.", nil
	}
	return fmt.Sprintf("I've created a note titled '%s'.", title), nil
}

func (s *services) readNote(args map[string]interface{}) (string, error) {
	title, _ := GetString(args, "title")
	note, err := s.notes.GetNoteByTitle(title)
	if err != nil {
		return "", err
	}
	if note == nil {
		return fmt.Sprintf("I couldn't find a note titled '%s'.", title), nil
	}
	reply := fmt.Sprintf("Here's your note titled '%s'.", title)
	if note.Content != "" {
		reply += " " + note.Content
	}
	return reply, nil
}

func (s *services) editNote(args map[string]interface{}) (string, error) {
	title, _ := GetString(args, "title")
	content, _ := GetString(args, "content")
	ok, err := s.notes.EditNote(title, content)
	if err != nil {
		return "", err
	}
	if !ok {
		return fmt.Sprintf("Sorry, I couldn't update your note titled '%s'.", title), nil
	}
	return fmt.Sprintf("I've updated your note titled '%s'.", title), nil
}

func (s *services) deleteNote(args map[string]interface{}) (string, error) {
	title, _ := GetString(args, "title")
	ok, err := s.notes.DeleteNoteByTitle(title)
	if err != nil {
		return "", err
	}
	if !ok {
		return fmt.Sprintf("Sorry, I couldn't delete your note titled '%s'.", title), nil
	}
	return fmt.Sprintf("I've deleted your note titled '%s'.", title), nil
}

// listNotes returns a numbered list of note titles so downstream reasoning
// steps can pick one out
func (s *services) listNotes(args map[string]interface{}) (string, error) {
	notes, err := s.notes.GetAllNotes()
	if err != nil {
		return "", err
	}
	if len(notes) == 0 {
		return "You don't have any notes yet.", nil
	}
	var sb strings.Builder
	for i, n := range notes {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "%d. %s", i+1, n.Title)
	}
	return sb.String(), nil
}

func (s *services) addTodo(args map[string]interface{}) (string, error) {
	item, _ := GetString(args, "item")
	if item == "" {
		return "", serr.New("add_todo requires an item")
	}
	if err := s.todos.AddItem(item); err != nil {
		return "", err
	}
	return fmt.Sprintf("I've added '%s' to your to-do list.", item), nil
}

func (s *services) showTodo(args map[string]interface{}) (string, error) {
	items, err := s.todos.GetItems()
	if err != nil {
		return "", err
	}
	if len(items) == 0 {
		return "Your to-do list is empty.", nil
	}
	var sb strings.Builder
	for i, it := range items {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "%d. %s", i+1, it.Item)
	}
	return sb.String(), nil
}

func (s *services) clearTodo(args map[string]interface{}) (string, error) {
	if err := s.todos.Clear(); err != nil {
		return "", err
	}
	return "I've cleared your to-do list.", nil
}

func (s *services) removeTodoItem(args map[string]interface{}) (string, error) {
	number, ok := GetInt(args, "item_number")
	if !ok {
		// Template substitution yields strings, so accept numeric strings too
		if str, sok := GetString(args, "item_number"); sok {
			if n, err := strconv.Atoi(strings.TrimSpace(str)); err == nil {
				number, ok = n, true
			}
		}
	}
	if !ok {
		return "", serr.New("remove_todo_item requires a numeric item_number")
	}

	removed, err := s.todos.RemoveItem(number)
	if err != nil {
		return "", err
	}
	if !removed {
		return fmt.Sprintf("Sorry, I couldn't remove item %d from your to-do list.", number), nil
	}
	return fmt.Sprintf("I've removed item %d from your to-do list.", number), nil
}

func (s *services) greeting(args map[string]interface{}) (string, error) {
	return "Hello! How can I help you today?", nil
}

// formatListNatural joins items as "a, b, and c"
func formatListNatural(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	}
	return strings.Join(items[:len(items)-1], ", ") + ", and " + items[len(items)-1]
}

// formatClock renders a time as "7 PM" or "7:30 PM"
func formatClock(t time.Time) string {
	if t.Minute() == 0 {
		return t.Format("3 PM")
	}
	return t.Format("3:04 PM")
}

func formatEvent(ev db.Event) string {
	if ev.Location != "" {
		return fmt.Sprintf("%s at %s in %s", ev.Title, ev.StartTime, ev.Location)
	}
	return fmt.Sprintf("%s at %s", ev.Title, ev.StartTime)
}

package router

import (
	"strings"
	"testing"

	"sam/actions"
	"sam/db"
	"sam/providers"
)

// fakeLLM serves canned replies in order and records user prompts
type fakeLLM struct {
	replies []string
	calls   int
	prompts []string
}

func (f *fakeLLM) Generate(messages []providers.Message, maxTokens int, temperature float32) string {
	for _, m := range messages {
		if m.Role == providers.RoleUser {
			f.prompts = append(f.prompts, m.Content)
		}
	}
	if f.calls >= len(f.replies) {
		return "Error: no scripted reply"
	}
	reply := f.replies[f.calls]
	f.calls++
	return reply
}

// memoryRecorder keeps saved runs in a slice
type memoryRecorder struct {
	runs []*db.PlanRun
}

func (r *memoryRecorder) SaveRun(run *db.PlanRun) error {
	r.runs = append(r.runs, run)
	return nil
}

// testRegistry registers a handful of real action names with canned behavior
func testRegistry(t *testing.T) *actions.Registry {
	t.Helper()
	reg := actions.NewRegistry()
	reg.Register("get_time", actions.Spec{Description: "Current time"},
		actions.ExecutorFunc(func(args map[string]interface{}) (string, error) {
			return "It's currently 3 PM.", nil
		}))
	reg.Register("create_note", actions.Spec{
		Description:  "Create a note",
		RequiredArgs: []string{"title", "content"},
	}, actions.ExecutorFunc(func(args map[string]interface{}) (string, error) {
		title, _ := actions.GetString(args, "title")
		return "I've saved your note titled '" + title + "'.", nil
	}))
	reg.Register("greeting", actions.Spec{Description: "Greet"},
		actions.ExecutorFunc(func(args map[string]interface{}) (string, error) {
			return "Hello! How can I help?", nil
		}))
	return reg
}

func TestHandleMessageZeroArgAction(t *testing.T) {
	llm := &fakeLLM{}
	o := NewOrchestrator(llm, testRegistry(t), nil)

	reply := o.HandleMessage("s1", "what time is it")
	if reply != "It's currently 3 PM." {
		t.Errorf("unexpected reply: %q", reply)
	}
	if llm.calls != 0 {
		t.Error("zero-arg action must not call the model")
	}
}

func TestHandleMessageSlotFillingFlow(t *testing.T) {
	// First turn extracts only the title; content is asked for and then
	// supplied in the follow-up turn.
	llm := &fakeLLM{replies: []string{
		`{"title": "groceries"}`,
		`"milk and eggs"`,
	}}
	o := NewOrchestrator(llm, testRegistry(t), nil)

	reply := o.HandleMessage("s1", "create a note called groceries")
	if reply != "What should the note say?" {
		t.Fatalf("expected follow-up question, got %q", reply)
	}

	reply = o.HandleMessage("s1", "milk and eggs")
	if reply != "I've saved your note titled 'groceries'." {
		t.Errorf("expected executed action, got %q", reply)
	}
}

func TestHandleMessageFollowupReAsksOnGenericReply(t *testing.T) {
	llm := &fakeLLM{replies: []string{
		`{}`,
		`null`,
		`"shopping"`,
		`"milk"`,
	}}
	o := NewOrchestrator(llm, testRegistry(t), nil)

	reply := o.HandleMessage("s1", "create a note")
	if reply != "What should the note be called?" {
		t.Fatalf("expected title question, got %q", reply)
	}

	// Generic answer gets the same question again
	reply = o.HandleMessage("s1", "a new one")
	if reply != "What should the note be called?" {
		t.Errorf("expected re-asked question, got %q", reply)
	}

	reply = o.HandleMessage("s1", "shopping")
	if reply != "What should the note say?" {
		t.Errorf("expected content question, got %q", reply)
	}

	reply = o.HandleMessage("s1", "milk")
	if !strings.Contains(reply, "'shopping'") {
		t.Errorf("expected executed action, got %q", reply)
	}
}

func TestHandleMessageCancelResetsState(t *testing.T) {
	llm := &fakeLLM{replies: []string{`{}`}}
	o := NewOrchestrator(llm, testRegistry(t), nil)

	o.HandleMessage("s1", "create a note")
	reply := o.HandleMessage("s1", "cancel")
	if reply != cancelReply {
		t.Errorf("unexpected cancel reply: %q", reply)
	}

	// Next message is a fresh classification, not a follow-up answer
	reply = o.HandleMessage("s1", "what time is it")
	if reply != "It's currently 3 PM." {
		t.Errorf("expected fresh action after cancel, got %q", reply)
	}
}

func TestHandleMessageSessionsAreIndependent(t *testing.T) {
	llm := &fakeLLM{replies: []string{`{}`}}
	o := NewOrchestrator(llm, testRegistry(t), nil)

	o.HandleMessage("s1", "create a note")

	// A different session must not be treated as answering s1's question
	reply := o.HandleMessage("s2", "hello")
	if reply != "Hello! How can I help?" {
		t.Errorf("expected greeting in fresh session, got %q", reply)
	}
}

func TestHandleMessageAgenticFlow(t *testing.T) {
	planJSON := `{"goal": "note the time", "steps": [
		{"id": "s1", "action": "get_time", "save_as": "now"},
		{"id": "s2", "action": "create_note",
		 "args": {"title": "time", "content": "it is ${now}"}}
	]}`
	llm := &fakeLLM{replies: []string{planJSON}}
	recorder := &memoryRecorder{}
	o := NewOrchestrator(llm, testRegistry(t), recorder)

	reply := o.HandleMessage("s1", "check the time and then save it in a note")
	if reply != "I've saved your note titled 'time'." {
		t.Errorf("expected final action result, got %q", reply)
	}

	if len(recorder.runs) != 1 {
		t.Fatalf("expected 1 persisted run, got %d", len(recorder.runs))
	}
	run := recorder.runs[0]
	if !run.Success || run.Goal != "note the time" || run.SessionID != "s1" {
		t.Errorf("unexpected persisted run: %+v", run)
	}
	if !strings.Contains(run.Result, "final_memory") {
		t.Error("expected serialized execution result")
	}
}

func TestHandleMessageAgenticPlanFailure(t *testing.T) {
	llm := &fakeLLM{replies: []string{"I cannot plan that."}}
	o := NewOrchestrator(llm, testRegistry(t), nil)

	reply := o.HandleMessage("s1", "if I'm free tonight, schedule dinner")
	if !strings.HasPrefix(reply, "Sorry, I couldn't create a plan") {
		t.Errorf("unexpected reply: %q", reply)
	}
}

func TestHandleMessageGeneralQuery(t *testing.T) {
	llm := &fakeLLM{replies: []string{"The moon's diameter is 2,159 miles."}}
	o := NewOrchestrator(llm, testRegistry(t), nil)

	reply := o.HandleMessage("s1", "how big is the moon")
	if reply != "The moon's diameter is 2,159 miles." {
		t.Errorf("unexpected reply: %q", reply)
	}
}

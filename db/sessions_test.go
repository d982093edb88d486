package db

import (
	"database/sql"
	"io"
	"os"
	"strings"
	"testing"
)

// newTestDB opens an in-memory database with the full schema applied.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	conn, err := sql.Open("duckdb", "")
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	d := &DB{conn: conn}
	if err := d.Migrate(); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return d
}

// captureStdout runs fn while redirecting os.Stdout and returns what was written.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w
	defer func() { os.Stdout = old }()
	fn()
	w.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("failed to read captured output: %v", err)
	}
	return string(out)
}

func TestAddMessageSuccess(t *testing.T) {
	d := newTestDB(t)
	store := NewSessionStore(d)

	sess, err := store.CreateSession("New Chat")
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	var addErr error
	out := captureStdout(t, func() {
		addErr = store.AddMessage(sess.ID, "user", "hello")
	})
	if addErr != nil {
		t.Fatalf("AddMessage failed: %v", addErr)
	}
	if strings.Contains(out, "SErr") {
		t.Errorf("AddMessage wrote diagnostics on success: %q", out)
	}

	msgs, err := store.GetMessages(sess.ID)
	if err != nil {
		t.Fatalf("GetMessages failed: %v", err)
	}
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(msgs))
	}
	if msgs[0].Role != "user" || msgs[0].Content != "hello" {
		t.Errorf("unexpected message: %+v", msgs[0])
	}
}

func TestSaveRunSuccess(t *testing.T) {
	d := newTestDB(t)
	store := NewPlanRunStore(d)

	run := &PlanRun{
		ID:         "run-1",
		Goal:       "schedule dinner",
		Plan:       `{"goal":"schedule dinner","steps":[]}`,
		Result:     `{"success":true}`,
		Success:    true,
		DurationMs: 12,
	}

	var saveErr error
	out := captureStdout(t, func() {
		saveErr = store.SaveRun(run)
	})
	if saveErr != nil {
		t.Fatalf("SaveRun failed: %v", saveErr)
	}
	if strings.Contains(out, "SErr") {
		t.Errorf("SaveRun wrote diagnostics on success: %q", out)
	}

	got, err := store.GetRun("run-1")
	if err != nil {
		t.Fatalf("GetRun failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected saved run, got nil")
	}
	if got.Goal != run.Goal || !got.Success {
		t.Errorf("unexpected run: %+v", got)
	}
}

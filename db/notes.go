package db

import (
	"database/sql"
	"time"

	"github.com/rohanthewiz/serr"
)

// Note represents a personal note
type Note struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NoteStore handles note persistence
type NoteStore struct {
	db *DB
}

// NewNoteStore creates a new NoteStore
func NewNoteStore(db *DB) *NoteStore {
	return &NoteStore{db: db}
}

// CreateNote inserts a new note. Titles are unique; creating a note with an
// existing title fails.
func (s *NoteStore) CreateNote(title, content string) error {
	_, err := s.db.Exec(`INSERT INTO notes (title, content) VALUES (?, ?)`, title, content)
	if err != nil {
		return serr.Wrap(err, "failed to create note")
	}
	return nil
}

// GetNoteByTitle retrieves a note by its title. Returns nil if not found.
func (s *NoteStore) GetNoteByTitle(title string) (*Note, error) {
	var n Note
	err := s.db.QueryRow(`
		SELECT id, title, content, created_at, updated_at FROM notes WHERE title = ?`,
		title).Scan(&n.ID, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, serr.Wrap(err, "failed to get note")
	}
	return &n, nil
}

// EditNote replaces the content of an existing note. Returns false if no note
// with that title exists.
func (s *NoteStore) EditNote(title, content string) (bool, error) {
	res, err := s.db.Exec(`
		UPDATE notes SET content = ?, updated_at = CURRENT_TIMESTAMP WHERE title = ?`,
		content, title)
	if err != nil {
		return false, serr.Wrap(err, "failed to edit note")
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// DeleteNoteByTitle removes a note. Returns false if no note with that title exists.
func (s *NoteStore) DeleteNoteByTitle(title string) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM notes WHERE title = ?`, title)
	if err != nil {
		return false, serr.Wrap(err, "failed to delete note")
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// GetAllNotes returns all notes in creation order
func (s *NoteStore) GetAllNotes() ([]Note, error) {
	rows, err := s.db.Query(`SELECT id, title, content, created_at, updated_at FROM notes ORDER BY id`)
	if err != nil {
		return nil, serr.Wrap(err, "failed to query notes")
	}
	defer rows.Close()

	var notes []Note
	for rows.Next() {
		var n Note
		if err := rows.Scan(&n.ID, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, serr.Wrap(err, "failed to scan note")
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

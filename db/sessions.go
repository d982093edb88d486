package db

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rohanthewiz/serr"
)

// Session represents a chat session
type Session struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Message represents one message of a session transcript
type Message struct {
	ID        int       `json:"id"`
	SessionID string    `json:"session_id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionStore handles session and transcript persistence
type SessionStore struct {
	db *DB
}

// NewSessionStore creates a new SessionStore
func NewSessionStore(db *DB) *SessionStore {
	return &SessionStore{db: db}
}

// CreateSession creates a new chat session
func (s *SessionStore) CreateSession(title string) (*Session, error) {
	sess := &Session{
		ID:    uuid.New().String(),
		Title: title,
	}
	err := s.db.QueryRow(`
		INSERT INTO sessions (id, title) VALUES (?, ?)
		RETURNING created_at, updated_at`,
		sess.ID, sess.Title).Scan(&sess.CreatedAt, &sess.UpdatedAt)
	if err != nil {
		return nil, serr.Wrap(err, "failed to create session")
	}
	return sess, nil
}

// GetSession retrieves a session by ID. Returns nil if not found.
func (s *SessionStore) GetSession(id string) (*Session, error) {
	var sess Session
	err := s.db.QueryRow(`
		SELECT id, title, created_at, updated_at FROM sessions WHERE id = ?`,
		id).Scan(&sess.ID, &sess.Title, &sess.CreatedAt, &sess.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, serr.Wrap(err, "failed to get session")
	}
	return &sess, nil
}

// ListSessions returns all sessions, most recent first
func (s *SessionStore) ListSessions() ([]Session, error) {
	rows, err := s.db.Query(`SELECT id, title, created_at, updated_at FROM sessions ORDER BY updated_at DESC`)
	if err != nil {
		return nil, serr.Wrap(err, "failed to list sessions")
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var sess Session
		if err := rows.Scan(&sess.ID, &sess.Title, &sess.CreatedAt, &sess.UpdatedAt); err != nil {
			return nil, serr.Wrap(err, "failed to scan session")
		}
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

// DeleteSession removes a session and its messages
func (s *SessionStore) DeleteSession(id string) error {
	return s.db.Transaction(func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM messages WHERE session_id = ?`, id); err != nil {
			return serr.Wrap(err, "failed to delete session messages")
		}
		if _, err := tx.Exec(`DELETE FROM sessions WHERE id = ?`, id); err != nil {
			return serr.Wrap(err, "failed to delete session")
		}
		return nil
	})
}

// AddMessage appends a message to a session transcript
func (s *SessionStore) AddMessage(sessionID, role, content string) error {
	_, err := s.db.Exec(`INSERT INTO messages (session_id, role, content) VALUES (?, ?, ?)`,
		sessionID, role, content)
	if err != nil {
		return serr.Wrap(err, "failed to add message")
	}
	_, err = s.db.Exec(`UPDATE sessions SET updated_at = CURRENT_TIMESTAMP WHERE id = ?`, sessionID)
	if err != nil {
		return serr.Wrap(err, "failed to touch session")
	}
	return nil
}

// GetMessages returns the transcript of a session in order
func (s *SessionStore) GetMessages(sessionID string) ([]Message, error) {
	rows, err := s.db.Query(`
		SELECT id, session_id, role, content, created_at
		FROM messages WHERE session_id = ? ORDER BY id`, sessionID)
	if err != nil {
		return nil, serr.Wrap(err, "failed to query messages")
	}
	defer rows.Close()

	var msgs []Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.SessionID, &m.Role, &m.Content, &m.CreatedAt); err != nil {
			return nil, serr.Wrap(err, "failed to scan message")
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

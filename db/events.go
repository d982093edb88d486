package db

import (
	"time"

	"github.com/rohanthewiz/serr"
)

// Event represents a calendar event
type Event struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	StartTime   string    `json:"start_time"`
	Date        string    `json:"date,omitempty"`
	Duration    string    `json:"duration,omitempty"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// EventStore handles calendar event persistence
type EventStore struct {
	db *DB
}

// NewEventStore creates a new EventStore
func NewEventStore(db *DB) *EventStore {
	return &EventStore{db: db}
}

// CreateEvent inserts a new calendar event
func (s *EventStore) CreateEvent(ev *Event) error {
	if ev.Date == "" {
		ev.Date = "today"
	}
	_, err := s.db.Exec(`
		INSERT INTO events (title, start_time, event_date, duration, description, location)
		VALUES (?, ?, ?, ?, ?, ?)`,
		ev.Title, ev.StartTime, ev.Date, ev.Duration, ev.Description, ev.Location)
	if err != nil {
		return serr.Wrap(err, "failed to create event")
	}
	return nil
}

// EventFilter narrows GetEvents results
type EventFilter struct {
	Date  string
	Limit int
}

// GetEvents returns events, optionally filtered by date and limited in count
func (s *EventStore) GetEvents(filter EventFilter) ([]Event, error) {
	query := `
		SELECT id, title, start_time, COALESCE(event_date, ''), COALESCE(duration, ''),
		       COALESCE(description, ''), COALESCE(location, ''), created_at
		FROM events`
	args := []interface{}{}

	if filter.Date != "" {
		query += " WHERE event_date = ?"
		args = append(args, filter.Date)
	}
	query += " ORDER BY id"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, serr.Wrap(err, "failed to query events")
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var ev Event
		if err := rows.Scan(&ev.ID, &ev.Title, &ev.StartTime, &ev.Date, &ev.Duration,
			&ev.Description, &ev.Location, &ev.CreatedAt); err != nil {
			return nil, serr.Wrap(err, "failed to scan event")
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

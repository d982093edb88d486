package db

import (
	"database/sql"

	"github.com/rohanthewiz/serr"
)

// TodoItem represents one entry on the todo list
type TodoItem struct {
	ID       int    `json:"id"`
	Item     string `json:"item"`
	Position int    `json:"position"`
}

// TodoStore handles todo list persistence
type TodoStore struct {
	db *DB
}

// NewTodoStore creates a new TodoStore
func NewTodoStore(db *DB) *TodoStore {
	return &TodoStore{db: db}
}

// AddItem appends an item to the end of the todo list
func (s *TodoStore) AddItem(item string) error {
	var maxPos sql.NullInt64
	if err := s.db.QueryRow(`SELECT MAX(position) FROM todos`).Scan(&maxPos); err != nil {
		return serr.Wrap(err, "failed to get max todo position")
	}
	pos := int64(1)
	if maxPos.Valid {
		pos = maxPos.Int64 + 1
	}
	_, err := s.db.Exec(`INSERT INTO todos (item, position) VALUES (?, ?)`, item, pos)
	if err != nil {
		return serr.Wrap(err, "failed to add todo item")
	}
	return nil
}

// GetItems returns all todo items in list order
func (s *TodoStore) GetItems() ([]TodoItem, error) {
	rows, err := s.db.Query(`SELECT id, item, position FROM todos ORDER BY position`)
	if err != nil {
		return nil, serr.Wrap(err, "failed to query todos")
	}
	defer rows.Close()

	var items []TodoItem
	for rows.Next() {
		var it TodoItem
		if err := rows.Scan(&it.ID, &it.Item, &it.Position); err != nil {
			return nil, serr.Wrap(err, "failed to scan todo item")
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// RemoveItem removes the item at the given 1-based list number and renumbers
// the remainder. Returns false if the number is out of range.
func (s *TodoStore) RemoveItem(number int) (bool, error) {
	items, err := s.GetItems()
	if err != nil {
		return false, err
	}
	if number < 1 || number > len(items) {
		return false, nil
	}

	target := items[number-1]
	err = s.db.Transaction(func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM todos WHERE id = ?`, target.ID); err != nil {
			return serr.Wrap(err, "failed to delete todo item")
		}
		if _, err := tx.Exec(`UPDATE todos SET position = position - 1 WHERE position > ?`,
			target.Position); err != nil {
			return serr.Wrap(err, "failed to renumber todos")
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// Clear removes every item from the todo list
func (s *TodoStore) Clear() error {
	_, err := s.db.Exec(`DELETE FROM todos`)
	if err != nil {
		return serr.Wrap(err, "failed to clear todos")
	}
	return nil
}

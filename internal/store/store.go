// Package store provides SQLite-backed storage for habits and chat messages.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/theirongolddev/lifeos/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// ErrNotFound is returned when a row addressed by ID does not exist.
var ErrNotFound = errors.New("store: not found")

// MemoryDSN keeps all data in process memory.
const MemoryDSN = ":memory:"

// Store wraps the SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at dbPath. Pass MemoryDSN (or "") for a
// process-scoped database that vanishes on exit.
func Open(dbPath string) (*Store, error) {
	dsn := MemoryDSN
	if dbPath != "" && dbPath != MemoryDSN {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("creating store dir: %w", err)
		}
		dsn = dbPath + "?_pragma=journal_mode(wal)&_pragma=synchronous(normal)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening store db: %w", err)
	}
	// Every pooled connection to :memory: would get its own empty database.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// InsertHabit appends a habit at the end of the list.
func (s *Store) InsertHabit(h model.Habit) error {
	_, err := s.db.Exec(`INSERT INTO habits (habit_id, name, category, completed, custom)
		VALUES (?, ?, ?, ?, ?)`,
		h.ID, h.Name, string(h.Category), boolInt(h.Completed), boolInt(h.Custom),
	)
	if err != nil {
		return fmt.Errorf("inserting habit: %w", err)
	}
	return nil
}

// ListHabits returns all habits in insertion order.
func (s *Store) ListHabits() ([]model.Habit, error) {
	rows, err := s.db.Query(`SELECT seq, habit_id, name, category, completed, custom
		FROM habits ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var habits []model.Habit
	for rows.Next() {
		var h model.Habit
		var category string
		var completed, custom int
		if err := rows.Scan(&h.Position, &h.ID, &h.Name, &category, &completed, &custom); err != nil {
			return nil, err
		}
		h.Category = model.Category(category)
		h.Completed = completed != 0
		h.Custom = custom != 0
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

// GetHabit returns one habit by ID.
func (s *Store) GetHabit(id string) (model.Habit, error) {
	var h model.Habit
	var category string
	var completed, custom int
	err := s.db.QueryRow(`SELECT seq, habit_id, name, category, completed, custom
		FROM habits WHERE habit_id = ?`, id).
		Scan(&h.Position, &h.ID, &h.Name, &category, &completed, &custom)
	if errors.Is(err, sql.ErrNoRows) {
		return h, ErrNotFound
	}
	if err != nil {
		return h, err
	}
	h.Category = model.Category(category)
	h.Completed = completed != 0
	h.Custom = custom != 0
	return h, nil
}

// ToggleHabit flips a habit's completed flag and returns the updated habit.
func (s *Store) ToggleHabit(id string) (model.Habit, error) {
	res, err := s.db.Exec("UPDATE habits SET completed = 1 - completed WHERE habit_id = ?", id)
	if err != nil {
		return model.Habit{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.Habit{}, ErrNotFound
	}
	return s.GetHabit(id)
}

// DeleteHabit removes a habit.
func (s *Store) DeleteHabit(id string) error {
	res, err := s.db.Exec("DELETE FROM habits WHERE habit_id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// ResetHabits clears every completed flag and returns how many were set.
func (s *Store) ResetHabits() (int, error) {
	res, err := s.db.Exec("UPDATE habits SET completed = 0 WHERE completed = 1")
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

// HabitCounts returns the number of completed and total habits.
func (s *Store) HabitCounts() (completed, total int, err error) {
	err = s.db.QueryRow("SELECT COALESCE(SUM(completed), 0), COUNT(*) FROM habits").Scan(&completed, &total)
	return completed, total, err
}

// InsertMessage appends a message to its mode's log.
func (s *Store) InsertMessage(m model.Message) error {
	_, err := s.db.Exec(`INSERT INTO messages (message_id, mode, sender, body, created_at, saved)
		VALUES (?, ?, ?, ?, ?, ?)`,
		m.ID, string(m.Mode), string(m.Sender), m.Text,
		m.Timestamp.UTC().Format(time.RFC3339Nano), boolInt(m.Saved),
	)
	if err != nil {
		return fmt.Errorf("inserting message: %w", err)
	}
	return nil
}

// ListMessages returns a mode's messages in insertion order. When savedOnly
// is true only bookmarked messages are returned.
func (s *Store) ListMessages(mode model.Mode, savedOnly bool) ([]model.Message, error) {
	query := `SELECT message_id, mode, sender, body, created_at, saved
		FROM messages WHERE mode = ?`
	if savedOnly {
		query += " AND saved = 1"
	}
	query += " ORDER BY seq"

	rows, err := s.db.Query(query, string(mode))
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var msgs []model.Message
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

// LastUserMessage returns the most recent USER message for a mode.
func (s *Store) LastUserMessage(mode model.Mode) (model.Message, error) {
	row := s.db.QueryRow(`SELECT message_id, mode, sender, body, created_at, saved
		FROM messages WHERE mode = ? AND sender = ? ORDER BY seq DESC LIMIT 1`,
		string(mode), string(model.SenderUser))
	m, err := scanMessage(row)
	if errors.Is(err, sql.ErrNoRows) {
		return m, ErrNotFound
	}
	return m, err
}

// ToggleMessageSaved flips a message's saved flag and returns the update.
// Message IDs are unique within a mode.
func (s *Store) ToggleMessageSaved(mode model.Mode, id string) (model.Message, error) {
	res, err := s.db.Exec("UPDATE messages SET saved = 1 - saved WHERE mode = ? AND message_id = ?", string(mode), id)
	if err != nil {
		return model.Message{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.Message{}, ErrNotFound
	}
	row := s.db.QueryRow(`SELECT message_id, mode, sender, body, created_at, saved
		FROM messages WHERE mode = ? AND message_id = ?`, string(mode), id)
	return scanMessage(row)
}

// MessageCount returns the number of stored messages in a mode.
func (s *Store) MessageCount(mode model.Mode) (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM messages WHERE mode = ?", string(mode)).Scan(&count)
	return count, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMessage(sc scanner) (model.Message, error) {
	var m model.Message
	var mode, sender, created string
	var saved int
	if err := sc.Scan(&m.ID, &mode, &sender, &m.Text, &created, &saved); err != nil {
		return m, err
	}
	m.Mode = model.Mode(mode)
	m.Sender = model.Sender(sender)
	m.Saved = saved != 0
	m.Timestamp, _ = time.Parse(time.RFC3339Nano, created)
	return m, nil
}

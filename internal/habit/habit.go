// Package habit tracks the daily hijrah habits.
package habit

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/theirongolddev/lifeos/internal/model"
	"github.com/theirongolddev/lifeos/internal/store"
)

var (
	// ErrNotFound is returned when no habit has the given ID.
	ErrNotFound = errors.New("habit: not found")
	// ErrInvalidHabit is returned for a blank name or unknown category.
	ErrInvalidHabit = errors.New("habit: invalid habit")
)

// Seeds are the habits every tracker starts with.
var Seeds = []model.Habit{
	{ID: "1", Name: "Shalat Subuh Berjamaah", Category: model.CategoryIbadah, Completed: true},
	{ID: "2", Name: "Dzikir Pagi", Category: model.CategoryIbadah},
	{ID: "3", Name: "Tilawah 1 Halaman", Category: model.CategoryIbadah},
	{ID: "4", Name: "Minum 2L Air (HARA)", Category: model.CategoryHealth, Completed: true},
	{ID: "5", Name: "Jalan Kaki 30 Menit", Category: model.CategoryHealth},
}

// Tracker manages habits stored in a Store.
type Tracker struct {
	st *store.Store
}

// New returns a Tracker over st, seeding the default habits when it is empty.
func New(st *store.Store) (*Tracker, error) {
	t := &Tracker{st: st}
	_, total, err := st.HabitCounts()
	if err != nil {
		return nil, fmt.Errorf("counting habits: %w", err)
	}
	if total == 0 {
		for _, h := range Seeds {
			if err := st.InsertHabit(h); err != nil {
				return nil, fmt.Errorf("seeding habits: %w", err)
			}
		}
	}
	return t, nil
}

// Add creates a custom habit.
func (t *Tracker) Add(name string, category model.Category) (model.Habit, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Habit{}, fmt.Errorf("%w: name is required", ErrInvalidHabit)
	}
	if !category.Valid() {
		return model.Habit{}, fmt.Errorf("%w: unknown category %q", ErrInvalidHabit, category)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return model.Habit{}, fmt.Errorf("generating habit id: %w", err)
	}
	h := model.Habit{ID: id.String(), Name: name, Category: category, Custom: true}
	if err := t.st.InsertHabit(h); err != nil {
		return model.Habit{}, err
	}
	return h, nil
}

// Toggle flips a habit between done and not done.
func (t *Tracker) Toggle(id string) (model.Habit, error) {
	h, err := t.st.ToggleHabit(id)
	if errors.Is(err, store.ErrNotFound) {
		return h, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return h, err
}

// Delete removes a habit.
func (t *Tracker) Delete(id string) error {
	err := t.st.DeleteHabit(id)
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return err
}

// List returns all habits in display order.
func (t *Tracker) List() ([]model.Habit, error) {
	return t.st.ListHabits()
}

// Progress is a completion summary.
type Progress struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
	Percent   int `json:"percent"`
}

// Progress returns the rounded completion percentage, 0 when there are no habits.
func (t *Tracker) Progress() (Progress, error) {
	done, total, err := t.st.HabitCounts()
	if err != nil {
		return Progress{}, err
	}
	p := Progress{Completed: done, Total: total}
	if total > 0 {
		p.Percent = int(math.Round(float64(done) / float64(total) * 100))
	}
	return p, nil
}

// ResetDay marks every habit as not done.
func (t *Tracker) ResetDay() (int, error) {
	return t.st.ResetHabits()
}

package model

// Category groups habits on the tracker.
type Category string

const (
	CategoryIbadah  Category = "ibadah"
	CategoryHealth  Category = "health"
	CategoryMindset Category = "mindset"
	CategoryWork    Category = "work"
)

// Categories lists every category in display order.
var Categories = []Category{CategoryIbadah, CategoryHealth, CategoryMindset, CategoryWork}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Label returns the display name for the category.
func (c Category) Label() string {
	switch c {
	case CategoryIbadah:
		return "Ibadah"
	case CategoryHealth:
		return "Kesehatan"
	case CategoryMindset:
		return "Mindset"
	case CategoryWork:
		return "Kerja"
	default:
		return string(c)
	}
}

// Habit is one tracked daily habit.
type Habit struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Category  Category `json:"category"`
	Completed bool     `json:"completed"`
	Custom    bool     `json:"custom"`
	Position  int      `json:"-"`
}

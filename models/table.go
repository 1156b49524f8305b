package models

// Table is a named seating resource. The name is the business key.
type Table struct {
	name      string
	seatCount int
	reserved  bool
}

// NewTable returns a free table.
func NewTable(name string, seatCount int) Table {
	return Table{name: name, seatCount: seatCount}
}

func (t Table) Name() string {
	return t.name
}

func (t Table) SeatCount() int {
	return t.seatCount
}

func (t Table) Reserved() bool {
	return t.reserved
}

// Book marks the table reserved without any guard.
func (t *Table) Book() {
	t.reserved = true
}

// Release marks the table free without any guard.
func (t *Table) Release() {
	t.reserved = false
}

// Equal reports whether both tables carry the same name.
func (t Table) Equal(other Table) bool {
	return t.name == other.name
}

package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTableBookAndRelease(t *testing.T) {
	table := NewTable("Table 1", 4)
	assert.False(t, table.Reserved())

	table.Book()
	table.Book()
	assert.True(t, table.Reserved())

	table.Release()
	table.Release()
	assert.False(t, table.Reserved())
}

func TestTableEqualByName(t *testing.T) {
	a := NewTable("Table 1", 4)
	b := NewTable("Table 1", 8)
	b.Book()

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(NewTable("Table 2", 4)))
}

func TestBookingEqual(t *testing.T) {
	from := time.Date(2024, 5, 10, 18, 0, 0, 0, time.UTC)
	to := from.Add(2 * time.Hour)
	base := NewBooking("Alice", "+79991112233", from, to, "Table 2")

	assert.True(t, base.Equal(NewBooking("Alice", "+79991112233", from.In(time.FixedZone("MSK", 3*3600)), to, "Table 2")))

	cases := map[string]Booking{
		"guest": NewBooking("Bob", "+79991112233", from, to, "Table 2"),
		"phone": NewBooking("Alice", "+79991112200", from, to, "Table 2"),
		"from":  NewBooking("Alice", "+79991112233", from.Add(time.Minute), to, "Table 2"),
		"to":    NewBooking("Alice", "+79991112233", from, to.Add(time.Minute), "Table 2"),
		"table": NewBooking("Alice", "+79991112233", from, to, "Table 3"),
	}
	for field, other := range cases {
		assert.False(t, base.Equal(other), "differs by %s", field)
	}
}

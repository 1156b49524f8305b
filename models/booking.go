package models

import "time"

// Booking is an immutable reservation of one table for a guest.
type Booking struct {
	guestName string
	phone     string
	from      time.Time
	to        time.Time
	tableName string
}

func NewBooking(guestName, phone string, from, to time.Time, tableName string) Booking {
	return Booking{
		guestName: guestName,
		phone:     phone,
		from:      from,
		to:        to,
		tableName: tableName,
	}
}

func (b Booking) GuestName() string {
	return b.guestName
}

func (b Booking) Phone() string {
	return b.phone
}

func (b Booking) From() time.Time {
	return b.from
}

func (b Booking) To() time.Time {
	return b.to
}

func (b Booking) TableName() string {
	return b.tableName
}

// Equal compares the full booking tuple.
func (b Booking) Equal(other Booking) bool {
	return b.guestName == other.guestName &&
		b.phone == other.phone &&
		b.from.Equal(other.from) &&
		b.to.Equal(other.to) &&
		b.tableName == other.tableName
}

package services

import (
	"time"

	"github.com/yeremiapane/restaurant-tables/models"
)

const (
	StatusFree   = "free"
	StatusBooked = "booked"
)

type TableView struct {
	Name     string `json:"name"`
	Seats    int    `json:"seats"`
	Reserved bool   `json:"reserved"`
	Status   string `json:"status"`
}

type BookingView struct {
	GuestName string    `json:"guest_name"`
	Phone     string    `json:"phone"`
	From      time.Time `json:"from"`
	To        time.Time `json:"to"`
	Table     string    `json:"table"`
}

// Stats is the dashboard summary pushed with every floor change.
type Stats struct {
	FreeTables  int `json:"free_tables"`
	FreeSeats   int `json:"free_seats"`
	TotalTables int `json:"total_tables"`
	Bookings    int `json:"bookings"`
}

// FloorSnapshot is sent to a display when it connects.
type FloorSnapshot struct {
	Tables   []TableView   `json:"tables"`
	Bookings []BookingView `json:"bookings"`
	Stats    Stats         `json:"stats"`
}

func NewStats(s models.FloorStats) Stats {
	return Stats{
		FreeTables:  s.FreeTables,
		FreeSeats:   s.FreeSeats,
		TotalTables: s.TotalTables,
		Bookings:    s.Bookings,
	}
}

func NewTableView(t models.Table) TableView {
	status := StatusFree
	if t.Reserved() {
		status = StatusBooked
	}
	return TableView{
		Name:     t.Name(),
		Seats:    t.SeatCount(),
		Reserved: t.Reserved(),
		Status:   status,
	}
}

func NewBookingView(b models.Booking) BookingView {
	return BookingView{
		GuestName: b.GuestName(),
		Phone:     b.Phone(),
		From:      b.From(),
		To:        b.To(),
		Table:     b.TableName(),
	}
}

// Booking converts the view back into a ledger value.
func (v BookingView) Booking() models.Booking {
	return models.NewBooking(v.GuestName, v.Phone, v.From, v.To, v.Table)
}

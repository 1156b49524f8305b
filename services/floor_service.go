package services

import (
	"context"
	"fmt"

	"github.com/yeremiapane/restaurant-tables/kds"
	"github.com/yeremiapane/restaurant-tables/models"
	"github.com/yeremiapane/restaurant-tables/utils"
)

// Broadcaster pushes floor events to connected displays.
type Broadcaster interface {
	Broadcast(msg kds.Message)
}

// Actor identifies who triggered a mutation, for the journal.
type Actor struct {
	Name      string
	RequestID string
}

// FloorService serves one restaurant session: it forwards operations to the aggregate,
// journals every successful mutation and notifies the floor displays.
type FloorService struct {
	restaurant *models.Restaurant
	journal    *Journal
	hub        Broadcaster
}

func NewFloorService(restaurant *models.Restaurant, journal *Journal, hub Broadcaster) *FloorService {
	return &FloorService{
		restaurant: restaurant,
		journal:    journal,
		hub:        hub,
	}
}

func (s *FloorService) Tables() []TableView {
	tables := s.restaurant.Tables()
	views := make([]TableView, 0, len(tables))
	for _, t := range tables {
		views = append(views, NewTableView(t))
	}
	return views
}

func (s *FloorService) Table(name string) (TableView, error) {
	t, err := s.restaurant.Table(name)
	if err != nil {
		return TableView{}, err
	}
	return NewTableView(t), nil
}

func (s *FloorService) Bookings() []BookingView {
	bookings := s.restaurant.Bookings()
	views := make([]BookingView, 0, len(bookings))
	for _, b := range bookings {
		views = append(views, NewBookingView(b))
	}
	return views
}

func (s *FloorService) Stats() Stats {
	return NewStats(s.restaurant.Stats())
}

// Snapshot is the whole floor read at one point in time.
func (s *FloorService) Snapshot() FloorSnapshot {
	tables, bookings, stats := s.restaurant.Snapshot()
	snap := FloorSnapshot{
		Tables:   make([]TableView, 0, len(tables)),
		Bookings: make([]BookingView, 0, len(bookings)),
		Stats:    NewStats(stats),
	}
	for _, t := range tables {
		snap.Tables = append(snap.Tables, NewTableView(t))
	}
	for _, b := range bookings {
		snap.Bookings = append(snap.Bookings, NewBookingView(b))
	}
	return snap
}

func (s *FloorService) AddTable(ctx context.Context, actor Actor, name string, seats int) (TableView, error) {
	if err := s.restaurant.AddTable(models.NewTable(name, seats)); err != nil {
		return TableView{}, err
	}

	view := NewTableView(models.NewTable(name, seats))
	s.record(ctx, actor, models.ActionTableCreate, name, "", fmt.Sprintf("%d seats", seats))
	s.publish(kds.EventTableCreate, "table", view)
	utils.InfoLogger.Printf("New table created: %s (seats=%d)", name, seats)
	return view, nil
}

// DeleteTable removes the table and its bookings. Unknown names are a no-op and
// report false.
func (s *FloorService) DeleteTable(ctx context.Context, actor Actor, name string) bool {
	removed, cascaded := s.restaurant.DeleteTable(name)
	if !removed {
		return false
	}

	s.record(ctx, actor, models.ActionTableDelete, name, "", fmt.Sprintf("%d bookings removed", cascaded))
	s.publish(kds.EventTableDelete, "table", map[string]string{"name": name})
	utils.InfoLogger.Printf("Table %s deleted (%d bookings removed)", name, cascaded)
	return true
}

func (s *FloorService) TakeTable(ctx context.Context, actor Actor, name string) (TableView, error) {
	if err := s.restaurant.TakeTableByName(name); err != nil {
		return TableView{}, err
	}
	return s.afterTableChange(ctx, actor, models.ActionTableTake, name)
}

func (s *FloorService) ReleaseTable(ctx context.Context, actor Actor, name string) (TableView, error) {
	if err := s.restaurant.ReleaseTableByName(name); err != nil {
		return TableView{}, err
	}
	return s.afterTableChange(ctx, actor, models.ActionTableRelease, name)
}

// AddBooking records the booking. The returned flag is false when an identical
// booking already existed and nothing changed.
func (s *FloorService) AddBooking(ctx context.Context, actor Actor, booking models.Booking) (bool, error) {
	added, err := s.restaurant.AddBooking(booking)
	if err != nil || !added {
		return added, err
	}

	view := NewBookingView(booking)
	s.record(ctx, actor, models.ActionBookingCreate, booking.TableName(), booking.GuestName(),
		fmt.Sprintf("%s - %s", booking.From().Format("2006-01-02 15:04"), booking.To().Format("15:04")))
	s.publish(kds.EventBookingCreate, "booking", view)
	utils.InfoLogger.Printf("Booking for %s on %s created", booking.GuestName(), booking.TableName())
	return true, nil
}

func (s *FloorService) DeleteBookings(ctx context.Context, actor Actor, bookings []models.Booking) error {
	if err := s.restaurant.DeleteBookings(bookings); err != nil {
		return err
	}

	views := make([]BookingView, 0, len(bookings))
	for _, b := range bookings {
		views = append(views, NewBookingView(b))
		s.record(ctx, actor, models.ActionBookingDelete, b.TableName(), b.GuestName(), "")
	}
	s.publish(kds.EventBookingDelete, "bookings", views)
	utils.InfoLogger.Printf("%d bookings deleted", len(bookings))
	return nil
}

func (s *FloorService) afterTableChange(ctx context.Context, actor Actor, action, name string) (TableView, error) {
	view, err := s.Table(name)
	if err != nil {
		return TableView{}, err
	}
	s.record(ctx, actor, action, name, "", view.Status)
	s.publish(kds.EventTableUpdate, "table", view)
	utils.InfoLogger.Printf("Table %s status changed to %s", name, view.Status)
	return view, nil
}

// record writes a journal row. The floor change has already happened, so failures
// are logged and not returned.
func (s *FloorService) record(ctx context.Context, actor Actor, action, table, guest, detail string) {
	if s.journal == nil {
		return
	}
	entry := &models.ActivityLog{
		Action:    action,
		TableName: table,
		GuestName: guest,
		Actor:     actor.Name,
		RequestID: actor.RequestID,
		Detail:    detail,
	}
	if err := s.journal.Record(ctx, entry); err != nil {
		utils.ErrorLogger.Printf("Error recording %s for %s: %v", action, table, err)
	}
}

func (s *FloorService) publish(event, key string, payload interface{}) {
	if s.hub == nil {
		return
	}
	s.hub.Broadcast(kds.Message{
		Event: event,
		Data: map[string]interface{}{
			key:     payload,
			"stats": s.Stats(),
		},
	})
}

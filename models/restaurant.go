package models

import "sync"

// Restaurant owns the table inventory and the booking ledger and keeps them consistent.
// A table is reserved iff exactly one booking references it, except for tables taken
// through TakeTableByName, which are reserved without a ledger entry.
type Restaurant struct {
	mu       sync.RWMutex
	tables   []*Table
	bookings []Booking
}

func NewRestaurant() *Restaurant {
	return &Restaurant{}
}

// Tables returns a snapshot of the tables in insertion order.
func (r *Restaurant) Tables() []Table {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Table, 0, len(r.tables))
	for _, t := range r.tables {
		out = append(out, *t)
	}
	return out
}

// Bookings returns a snapshot of the ledger in insertion order.
func (r *Restaurant) Bookings() []Booking {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Booking, len(r.bookings))
	copy(out, r.bookings)
	return out
}

// Table looks up a single table by name.
func (r *Restaurant) Table(name string) (Table, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, err := r.findTable(name)
	if err != nil {
		return Table{}, err
	}
	return *t, nil
}

func (r *Restaurant) AddTable(table Table) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, t := range r.tables {
		if t.Equal(table) {
			return duplicateTable(table.Name())
		}
	}
	added := table
	r.tables = append(r.tables, &added)
	return nil
}

// AddBooking reserves the booked table and appends the booking.
// An exact duplicate of an existing booking is ignored and reported as not added.
func (r *Restaurant) AddBooking(booking Booking) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	table, err := r.findTable(booking.TableName())
	if err != nil {
		return false, err
	}
	if r.hasBooking(booking) {
		return false, nil
	}
	if table.Reserved() {
		return false, tableAlreadyBooked(table.Name())
	}

	table.Book()
	r.bookings = append(r.bookings, booking)
	return true, nil
}

// DeleteTable drops the table and every booking on it. It reports whether the
// table existed and how many bookings went with it; unknown names are a no-op.
func (r *Restaurant) DeleteTable(name string) (removed bool, cascaded int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.findTable(name); err != nil {
		return false, 0
	}
	before := len(r.bookings)
	r.dropBookingsFor(name)
	cascaded = before - len(r.bookings)

	kept := r.tables[:0]
	for _, t := range r.tables {
		if t.Name() != name {
			kept = append(kept, t)
		}
	}
	clear(r.tables[len(kept):])
	r.tables = kept
	return true, cascaded
}

// TakeTableByName seats walk-in guests. No booking is recorded.
func (r *Restaurant) TakeTableByName(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	table, err := r.findTable(name)
	if err != nil {
		return err
	}
	if table.Reserved() {
		return tableAlreadyBooked(table.Name())
	}
	table.Book()
	return nil
}

func (r *Restaurant) ReleaseTableByName(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	table, err := r.findTable(name)
	if err != nil {
		return err
	}
	if !table.Reserved() {
		return tableIsFree(table.Name())
	}
	r.dropBookingsFor(name)
	table.Release()
	return nil
}

// DeleteBookings removes each booking from the ledger and releases its table
// unless another booking still holds it. Nothing is changed if any booking
// points at an unknown table.
func (r *Restaurant) DeleteBookings(bookings []Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tables := make([]*Table, 0, len(bookings))
	for _, b := range bookings {
		t, err := r.findTable(b.TableName())
		if err != nil {
			return err
		}
		tables = append(tables, t)
	}

	for i, b := range bookings {
		kept := r.bookings[:0]
		for _, existing := range r.bookings {
			if !existing.Equal(b) {
				kept = append(kept, existing)
			}
		}
		r.bookings = kept
		if !r.isBooked(tables[i].Name()) {
			tables[i].Release()
		}
	}
	return nil
}

func (r *Restaurant) CountFreeTables() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.statsLocked().FreeTables
}

func (r *Restaurant) CountFreeSeats() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.statsLocked().FreeSeats
}

// FloorStats are the floor counters read at a single point in time.
type FloorStats struct {
	FreeTables  int
	FreeSeats   int
	TotalTables int
	Bookings    int
}

func (r *Restaurant) Stats() FloorStats {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.statsLocked()
}

// Snapshot returns tables, bookings and counters taken under one lock.
func (r *Restaurant) Snapshot() ([]Table, []Booking, FloorStats) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tables := make([]Table, 0, len(r.tables))
	for _, t := range r.tables {
		tables = append(tables, *t)
	}
	bookings := make([]Booking, len(r.bookings))
	copy(bookings, r.bookings)
	return tables, bookings, r.statsLocked()
}

func (r *Restaurant) statsLocked() FloorStats {
	stats := FloorStats{TotalTables: len(r.tables), Bookings: len(r.bookings)}
	for _, t := range r.tables {
		if !t.Reserved() {
			stats.FreeTables++
			stats.FreeSeats += t.SeatCount()
		}
	}
	return stats
}

func (r *Restaurant) findTable(name string) (*Table, error) {
	for _, t := range r.tables {
		if t.Name() == name {
			return t, nil
		}
	}
	return nil, tableNotFound(name)
}

func (r *Restaurant) hasBooking(booking Booking) bool {
	for _, b := range r.bookings {
		if b.Equal(booking) {
			return true
		}
	}
	return false
}

func (r *Restaurant) isBooked(name string) bool {
	for _, b := range r.bookings {
		if b.TableName() == name {
			return true
		}
	}
	return false
}

func (r *Restaurant) dropBookingsFor(name string) {
	kept := r.bookings[:0]
	for _, b := range r.bookings {
		if b.TableName() != name {
			kept = append(kept, b)
		}
	}
	r.bookings = kept
}

package models

import "time"

// Activity actions recorded in the journal.
const (
	ActionTableCreate   = "table_create"
	ActionTableDelete   = "table_delete"
	ActionTableTake     = "table_take"
	ActionTableRelease  = "table_release"
	ActionBookingCreate = "booking_create"
	ActionBookingDelete = "booking_delete"
)

// ActivityLog is one journal row per successful floor mutation.
type ActivityLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Action    string    `gorm:"type:varchar(50);not null;index:idx_action" json:"action"`
	TableName string    `gorm:"type:varchar(100);not null;index" json:"table_name"`
	GuestName string    `gorm:"type:varchar(255)" json:"guest_name,omitempty"`
	Actor     string    `gorm:"type:varchar(255)" json:"actor,omitempty"`
	RequestID string    `gorm:"type:varchar(64)" json:"request_id,omitempty"`
	Detail    string    `gorm:"type:text" json:"detail,omitempty"`
	Processed bool      `gorm:"default:false;index:idx_processed" json:"-"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

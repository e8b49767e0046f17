package models

import "time"

const DefaultCustomerName = "Guest"

// Booking records a confirmed ticket reservation. Rows are insert-only;
// nothing in the system updates or deletes them.
type Booking struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	EventID      uint      `gorm:"not null;index" json:"event_id"`
	Quantity     int       `gorm:"not null;check:quantity > 0" json:"quantity"`
	CustomerName string    `gorm:"size:100;not null;default:'Guest'" json:"customer_name"`
	Reference    string    `gorm:"size:36;uniqueIndex" json:"reference"`
	CreatedAt    time.Time `json:"created_at"`

	Event *Event `gorm:"foreignKey:EventID" json:"event,omitempty"`
}

// EventSnapshot is the event as it existed when a booking was confirmed.
type EventSnapshot struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Date string `json:"date"`
}

// Confirmation is the result of a successful booking confirmation.
type Confirmation struct {
	BookingID        uint
	Reference        string
	Event            EventSnapshot
	RequestedTickets int
	RemainingTickets int
}

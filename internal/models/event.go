package models

import "time"

// Event is a bookable event. Tickets is the unsold-ticket count and is
// only ever decremented through the booking transaction.
type Event struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Date      string    `gorm:"size:10;not null;index" json:"date"` // YYYY-MM-DD
	Tickets   int       `gorm:"not null;check:tickets >= 0" json:"tickets"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

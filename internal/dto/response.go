package dto

import (
	"time"

	"github.com/huy1480/CPSC3720-TigerTix-TeamTeam/internal/models"
)

type EventResponse struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Date    string `json:"date"`
	Tickets int    `json:"tickets"`
}

type ConfirmationResponse struct {
	BookingID        uint                 `json:"booking_id"`
	Reference        string               `json:"reference"`
	Event            models.EventSnapshot `json:"event"`
	RequestedTickets int                  `json:"requested_tickets"`
	RemainingTickets int                  `json:"remaining_tickets"`
}

type BookingResponse struct {
	ID           uint      `json:"id"`
	EventID      uint      `json:"event_id"`
	Quantity     int       `json:"quantity"`
	CustomerName string    `json:"customer_name"`
	Reference    string    `json:"reference"`
	CreatedAt    time.Time `json:"created_at"`
}

type UserResponse struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
}

type ChatResponse struct {
	Reply        string                `json:"reply"`
	Events       []EventResponse       `json:"events,omitempty"`
	Confirmation *ConfirmationResponse `json:"confirmation,omitempty"`
}

type ErrorResponse struct {
	Message   string `json:"message"`
	Available *int   `json:"available,omitempty"`
	EventName string `json:"event_name,omitempty"`
}

func ToEventResponse(e *models.Event) EventResponse {
	return EventResponse{
		ID:      e.ID,
		Name:    e.Name,
		Date:    e.Date,
		Tickets: e.Tickets,
	}
}

func ToConfirmationResponse(c *models.Confirmation) ConfirmationResponse {
	return ConfirmationResponse{
		BookingID:        c.BookingID,
		Reference:        c.Reference,
		Event:            c.Event,
		RequestedTickets: c.RequestedTickets,
		RemainingTickets: c.RemainingTickets,
	}
}

func ToBookingResponse(b *models.Booking) BookingResponse {
	return BookingResponse{
		ID:           b.ID,
		EventID:      b.EventID,
		Quantity:     b.Quantity,
		CustomerName: b.CustomerName,
		Reference:    b.Reference,
		CreatedAt:    b.CreatedAt,
	}
}

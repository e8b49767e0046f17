package dto

type ConfirmBookingRequest struct {
	Quantity     int64  `json:"quantity"`
	CustomerName string `json:"customer_name"`
}

type CreateEventRequest struct {
	Name    string `json:"name"`
	Date    string `json:"date"`
	Tickets int    `json:"tickets"`
}

type UpdateEventRequest struct {
	Name    string `json:"name"`
	Date    string `json:"date"`
	Tickets int    `json:"tickets"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ChatRequest struct {
	Message string `json:"message"`
}

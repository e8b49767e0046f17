package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/huy1480/CPSC3720-TigerTix-TeamTeam/internal/dto"
	"github.com/huy1480/CPSC3720-TigerTix-TeamTeam/internal/service"
	"github.com/huy1480/CPSC3720-TigerTix-TeamTeam/pkg/llm"
	"github.com/labstack/echo/v4"
)

const chatSystemPrompt = `You are the TigerTix booking assistant. Reply with a single JSON object
and nothing else, using this shape:
{"action":"list_events"|"book"|"reply","event_id":<int>,"quantity":<int>,"customer_name":"<string>","reply":"<string>"}
Use "book" only when the user clearly asks to buy tickets for a specific event
from the list. Use "list_events" when they ask what is available. Otherwise use
"reply" with a short helpful answer in the reply field.`

// chatIntent is the structured command parsed out of the model's JSON reply.
type chatIntent struct {
	Action       string `json:"action"`
	EventID      int64  `json:"event_id"`
	Quantity     int64  `json:"quantity"`
	CustomerName string `json:"customer_name"`
	Reply        string `json:"reply"`
}

// ChatHandler is glue between the chat assistant and the booking service:
// it asks the model for a structured intent and dispatches it to the same
// operations the REST endpoints use.
type ChatHandler struct {
	completer llm.Completer
	bookings  service.BookingService
}

func NewChatHandler(completer llm.Completer, bookings service.BookingService) *ChatHandler {
	return &ChatHandler{completer: completer, bookings: bookings}
}

func (h *ChatHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/v1/chat", h.Chat)
}

func (h *ChatHandler) Chat(c echo.Context) error {
	var req dto.ChatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(req.Message) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "message is required")
	}

	ctx := c.Request().Context()

	// The model sees the live event list so it can resolve names to ids.
	events, err := h.bookings.ListEvents(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	catalog, _ := json.Marshal(events)
	prompt := fmt.Sprintf("Available events: %s\n\nUser: %s", catalog, req.Message)

	raw, err := h.completer.Complete(ctx, chatSystemPrompt, prompt)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, "assistant is unavailable")
	}

	intent, err := parseIntent(raw)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, "assistant returned an unreadable answer")
	}

	switch intent.Action {
	case "list_events":
		resp := make([]dto.EventResponse, len(events))
		for i, e := range events {
			resp[i] = dto.ToEventResponse(&e)
		}
		return c.JSON(http.StatusOK, dto.ChatResponse{
			Reply:  "Here are the upcoming events.",
			Events: resp,
		})

	case "book":
		confirmation, err := h.bookings.ConfirmBooking(ctx, intent.EventID, intent.Quantity, intent.CustomerName)
		if err != nil {
			return bookingErrToHTTP(c, err)
		}
		cr := dto.ToConfirmationResponse(confirmation)
		return c.JSON(http.StatusOK, dto.ChatResponse{
			Reply: fmt.Sprintf("Booked %d ticket(s) for %s. %d remaining.",
				cr.RequestedTickets, cr.Event.Name, cr.RemainingTickets),
			Confirmation: &cr,
		})

	default:
		reply := intent.Reply
		if reply == "" {
			reply = "Sorry, I didn't catch that. Ask me about events or tickets."
		}
		return c.JSON(http.StatusOK, dto.ChatResponse{Reply: reply})
	}
}

// parseIntent tolerates models that wrap the JSON in markdown fences.
func parseIntent(raw string) (*chatIntent, error) {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSuffix(strings.TrimSpace(raw), "```")
	}

	var intent chatIntent
	if err := json.Unmarshal([]byte(raw), &intent); err != nil {
		return nil, fmt.Errorf("parse intent: %w", err)
	}
	return &intent, nil
}

package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/huy1480/CPSC3720-TigerTix-TeamTeam/internal/dto"
	"github.com/huy1480/CPSC3720-TigerTix-TeamTeam/internal/models"
	"github.com/huy1480/CPSC3720-TigerTix-TeamTeam/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCompleter struct {
	reply string
	err   error
}

func (f *fakeCompleter) Complete(ctx context.Context, system, user string) (string, error) {
	return f.reply, f.err
}

func chatService() *mockBookingService {
	return &mockBookingService{
		listEventsFn: func(ctx context.Context) ([]models.Event, error) {
			return []models.Event{{ID: 1, Name: "Jazz Night", Date: "2025-12-01", Tickets: 50}}, nil
		},
		confirmFn: func(ctx context.Context, eventID, quantity int64, customerName string) (*models.Confirmation, error) {
			return &models.Confirmation{
				BookingID:        3,
				Event:            models.EventSnapshot{ID: uint(eventID), Name: "Jazz Night", Date: "2025-12-01"},
				RequestedTickets: int(quantity),
				RemainingTickets: 50 - int(quantity),
			}, nil
		},
	}
}

func TestChat_ListEvents(t *testing.T) {
	completer := &fakeCompleter{reply: `{"action":"list_events"}`}

	e := echo.New()
	c, rec := newBookingContext(e, http.MethodPost, "/api/v1/chat",
		`{"message":"what events are on?"}`, "")

	h := NewChatHandler(completer, chatService())
	require.NoError(t, h.Chat(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp dto.ChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Events, 1)
	assert.Equal(t, "Jazz Night", resp.Events[0].Name)
}

func TestChat_Book(t *testing.T) {
	completer := &fakeCompleter{
		reply: `{"action":"book","event_id":1,"quantity":2,"customer_name":"Alice"}`,
	}

	e := echo.New()
	c, rec := newBookingContext(e, http.MethodPost, "/api/v1/chat",
		`{"message":"book 2 tickets for jazz night"}`, "")

	h := NewChatHandler(completer, chatService())
	require.NoError(t, h.Chat(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp dto.ChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Confirmation)
	assert.Equal(t, 2, resp.Confirmation.RequestedTickets)
	assert.Equal(t, 48, resp.Confirmation.RemainingTickets)
}

func TestChat_BookInsufficient(t *testing.T) {
	completer := &fakeCompleter{
		reply: `{"action":"book","event_id":1,"quantity":99}`,
	}
	svc := chatService()
	svc.confirmFn = func(ctx context.Context, eventID, quantity int64, customerName string) (*models.Confirmation, error) {
		return nil, &service.InsufficientTicketsError{EventName: "Jazz Night", Available: 3}
	}

	e := echo.New()
	c, rec := newBookingContext(e, http.MethodPost, "/api/v1/chat",
		`{"message":"book 99 tickets"}`, "")

	h := NewChatHandler(completer, svc)
	require.NoError(t, h.Chat(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Available)
	assert.Equal(t, 3, *resp.Available)
}

func TestChat_PlainReply(t *testing.T) {
	completer := &fakeCompleter{reply: `{"action":"reply","reply":"Hi! Ask me about events."}`}

	e := echo.New()
	c, rec := newBookingContext(e, http.MethodPost, "/api/v1/chat",
		`{"message":"hello"}`, "")

	h := NewChatHandler(completer, chatService())
	require.NoError(t, h.Chat(c))

	var resp dto.ChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Hi! Ask me about events.", resp.Reply)
}

func TestChat_FencedJSON(t *testing.T) {
	completer := &fakeCompleter{reply: "```json\n{\"action\":\"list_events\"}\n```"}

	e := echo.New()
	c, rec := newBookingContext(e, http.MethodPost, "/api/v1/chat",
		`{"message":"events?"}`, "")

	h := NewChatHandler(completer, chatService())
	require.NoError(t, h.Chat(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestChat_UnreadableModelOutput(t *testing.T) {
	completer := &fakeCompleter{reply: "sure, I booked that for you!"}

	e := echo.New()
	c, _ := newBookingContext(e, http.MethodPost, "/api/v1/chat",
		`{"message":"book something"}`, "")

	err := NewChatHandler(completer, chatService()).Chat(c)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadGateway, he.Code)
}

func TestChat_EmptyMessage(t *testing.T) {
	e := echo.New()
	c, _ := newBookingContext(e, http.MethodPost, "/api/v1/chat",
		`{"message":"  "}`, "")

	err := NewChatHandler(&fakeCompleter{}, chatService()).Chat(c)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

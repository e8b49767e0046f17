//go:build integration

package integration

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/huy1480/CPSC3720-TigerTix-TeamTeam/internal/models"
	"github.com/huy1480/CPSC3720-TigerTix-TeamTeam/internal/repository"
	"github.com/huy1480/CPSC3720-TigerTix-TeamTeam/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var eventIDCounter uint = 0

func nextEventID() uint {
	eventIDCounter++
	return eventIDCounter
}

func createTestEvent(t *testing.T, name, date string, tickets int) *models.Event {
	t.Helper()
	event := &models.Event{
		ID:      nextEventID(),
		Name:    name,
		Date:    date,
		Tickets: tickets,
	}
	require.NoError(t, testDB.Create(event).Error)
	return event
}

func newBookingService() service.BookingService {
	eventRepo := repository.NewEventRepository(testDB)
	bookingRepo := repository.NewBookingRepository(testDB)
	return service.NewBookingService(bookingRepo, eventRepo, nil)
}

func countBookings(eventID uint) int64 {
	var n int64
	testDB.Model(&models.Booking{}).Where("event_id = ?", eventID).Count(&n)
	return n
}

func currentTickets(t *testing.T, eventID uint) int {
	t.Helper()
	var event models.Event
	require.NoError(t, testDB.First(&event, eventID).Error)
	return event.Tickets
}

// Two simultaneous confirmations against an event with a single ticket:
// exactly one wins, the other reports zero availability.
func TestConcurrentBooking_LastTicket(t *testing.T) {
	cleanTables()
	event := createTestEvent(t, "Jazz Night", "2025-12-01", 1)
	svc := newBookingService()

	var wg sync.WaitGroup
	results := make(chan error, 2)

	wg.Add(2)
	for i := 0; i < 2; i++ {
		go func() {
			defer wg.Done()
			_, err := svc.ConfirmBooking(context.Background(), int64(event.ID), 1, "")
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var successes, insufficient int
	for err := range results {
		if err == nil {
			successes++
			continue
		}
		var ie *service.InsufficientTicketsError
		require.ErrorAs(t, err, &ie)
		assert.Equal(t, 0, ie.Available)
		insufficient++
	}

	assert.Equal(t, 1, successes, "exactly one booking should win the last ticket")
	assert.Equal(t, 1, insufficient)
	assert.Equal(t, 0, currentTickets(t, event.ID))
	assert.EqualValues(t, 1, countBookings(event.ID))
}

// Conservation under load: initial tickets minus the sum of confirmed
// quantities equals the remaining count, and never goes negative.
func TestConcurrentBooking_NoOverselling(t *testing.T) {
	cleanTables()
	const initial = 50
	event := createTestEvent(t, "Jazz Night", "2025-12-01", initial)
	svc := newBookingService()

	workers := 30
	perWorker := int64(2) // 60 tickets requested against 50

	var wg sync.WaitGroup
	confirmed := make(chan int, workers)

	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(n int) {
			defer wg.Done()
			conf, err := svc.ConfirmBooking(context.Background(), int64(event.ID), perWorker, fmt.Sprintf("customer-%02d", n))
			if err == nil {
				confirmed <- conf.RequestedTickets
			}
		}(i)
	}
	wg.Wait()
	close(confirmed)

	sold := 0
	for q := range confirmed {
		sold += q
	}

	remaining := currentTickets(t, event.ID)
	assert.GreaterOrEqual(t, remaining, 0, "tickets must never go negative")
	assert.Equal(t, initial-sold, remaining, "conservation: initial - sum(confirmed) = remaining")

	var quantitySum int64
	testDB.Model(&models.Booking{}).Where("event_id = ?", event.ID).
		Select("COALESCE(SUM(quantity), 0)").Scan(&quantitySum)
	assert.EqualValues(t, sold, quantitySum)
}

// A failed confirmation leaves no trace: tickets untouched, no booking row.
func TestConfirmBooking_AtomicOnFailure(t *testing.T) {
	cleanTables()
	event := createTestEvent(t, "Jazz Night", "2025-12-01", 3)
	svc := newBookingService()

	_, err := svc.ConfirmBooking(context.Background(), int64(event.ID), 5, "Alice")

	var ie *service.InsufficientTicketsError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, 3, ie.Available)
	assert.Equal(t, "Jazz Night", ie.EventName)

	assert.Equal(t, 3, currentTickets(t, event.ID), "inventory untouched after failure")
	assert.EqualValues(t, 0, countBookings(event.ID), "no booking row after failure")
}

// Booking exactly the remaining inventory drains it to zero; the next
// attempt reports zero availability.
func TestConfirmBooking_ExactBoundary(t *testing.T) {
	cleanTables()
	event := createTestEvent(t, "Jazz Night", "2025-12-01", 3)
	svc := newBookingService()

	conf, err := svc.ConfirmBooking(context.Background(), int64(event.ID), 3, "")
	require.NoError(t, err)
	assert.Equal(t, 0, conf.RemainingTickets)
	assert.Equal(t, 0, currentTickets(t, event.ID))

	_, err = svc.ConfirmBooking(context.Background(), int64(event.ID), 1, "")
	var ie *service.InsufficientTicketsError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, 0, ie.Available)
}

func TestConfirmBooking_Seeded(t *testing.T) {
	cleanTables()
	event := createTestEvent(t, "Jazz Night", "2025-12-01", 50)
	svc := newBookingService()

	conf, err := svc.ConfirmBooking(context.Background(), int64(event.ID), 2, "Alice")
	require.NoError(t, err)
	assert.Equal(t, "Jazz Night", conf.Event.Name)
	assert.Equal(t, "2025-12-01", conf.Event.Date)
	assert.Equal(t, 2, conf.RequestedTickets)
	assert.Equal(t, 48, conf.RemainingTickets)

	got, err := svc.GetEvent(context.Background(), int64(event.ID))
	require.NoError(t, err)
	assert.Equal(t, 48, got.Tickets)

	var booking models.Booking
	require.NoError(t, testDB.First(&booking, conf.BookingID).Error)
	assert.Equal(t, "Alice", booking.CustomerName)
	assert.Equal(t, 2, booking.Quantity)
}

func TestConfirmBooking_EventNotFound(t *testing.T) {
	cleanTables()
	svc := newBookingService()

	_, err := svc.ConfirmBooking(context.Background(), 999999, 1, "")
	assert.ErrorIs(t, err, service.ErrEventNotFound)
	assert.EqualValues(t, 0, countBookings(999999))
}

func TestListEvents_OrderedByDate(t *testing.T) {
	cleanTables()
	createTestEvent(t, "Winter Formal", "2025-12-15", 10)
	createTestEvent(t, "Spring Gala", "2025-04-01", 10)
	createTestEvent(t, "Jazz Night", "2025-12-01", 10)
	svc := newBookingService()

	events, err := svc.ListEvents(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "Spring Gala", events[0].Name)
	assert.Equal(t, "Jazz Night", events[1].Name)
	assert.Equal(t, "Winter Formal", events[2].Name)
}

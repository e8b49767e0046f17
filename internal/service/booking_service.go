package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/huy1480/CPSC3720-TigerTix-TeamTeam/internal/models"
	"github.com/huy1480/CPSC3720-TigerTix-TeamTeam/internal/repository"
	"github.com/huy1480/CPSC3720-TigerTix-TeamTeam/pkg/rabbitmq"
	"gorm.io/gorm"
)

type BookingService interface {
	ConfirmBooking(ctx context.Context, eventID, quantity int64, customerName string) (*models.Confirmation, error)
	GetEvent(ctx context.Context, eventID int64) (*models.Event, error)
	ListEvents(ctx context.Context) ([]models.Event, error)
	GetBooking(ctx context.Context, id uint) (*models.Booking, error)
	ListBookings(ctx context.Context, eventID int64) ([]models.Booking, error)
}

type bookingService struct {
	bookingRepo repository.BookingRepository
	eventRepo   repository.EventRepository
	publisher   *rabbitmq.Publisher
}

func NewBookingService(bookingRepo repository.BookingRepository, eventRepo repository.EventRepository, publisher *rabbitmq.Publisher) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		eventRepo:   eventRepo,
		publisher:   publisher,
	}
}

// ConfirmBooking atomically checks availability, decrements the event's
// ticket count, and inserts the booking row. It is the only write path for
// event inventory. All storage work happens inside one transaction holding a
// row lock on the event, so two confirmations against the same event are
// applied one at a time and the tickets column can never go negative.
func (s *bookingService) ConfirmBooking(ctx context.Context, eventID, quantity int64, customerName string) (*models.Confirmation, error) {
	// Validation happens before any storage access.
	if eventID <= 0 {
		return nil, fmt.Errorf("%w: event id must be a positive integer", ErrInvalidArgument)
	}
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be a positive integer", ErrInvalidArgument)
	}
	if customerName == "" {
		customerName = models.DefaultCustomerName
	}

	var result *models.Confirmation

	err := s.bookingRepo.InTransaction(ctx, func(tx *gorm.DB) error {
		// 1. Lock the event row — serializes concurrent bookings for it
		event, err := s.eventRepo.FindByIDForUpdate(ctx, tx, uint(eventID))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}
			return fmt.Errorf("lock event %d: %w", eventID, err)
		}

		// 2. Check availability against the locked row
		if event.Tickets < int(quantity) {
			return &InsufficientTicketsError{EventName: event.Name, Available: event.Tickets}
		}

		// 3. Guarded decrement: the WHERE tickets >= ? predicate re-checks
		// availability inside the UPDATE, closing any window a second writer
		// could slip through.
		affected, err := s.eventRepo.DecrementTickets(ctx, tx, event.ID, int(quantity))
		if err != nil {
			return fmt.Errorf("decrement tickets for event %d: %w", event.ID, err)
		}
		if affected == 0 {
			return &InsufficientTicketsError{EventName: event.Name, Available: event.Tickets}
		}

		// 4. Record the booking
		booking := &models.Booking{
			EventID:      event.ID,
			Quantity:     int(quantity),
			CustomerName: customerName,
			Reference:    uuid.NewString(),
		}
		if err := s.bookingRepo.Create(ctx, tx, booking); err != nil {
			return fmt.Errorf("insert booking for event %d: %w", event.ID, err)
		}

		// Remaining count comes from the locked pre-decrement read; no other
		// writer can touch the row before this transaction commits.
		result = &models.Confirmation{
			BookingID: booking.ID,
			Reference: booking.Reference,
			Event: models.EventSnapshot{
				ID:   event.ID,
				Name: event.Name,
				Date: event.Date,
			},
			RequestedTickets: int(quantity),
			RemainingTickets: event.Tickets - int(quantity),
		}
		return nil
	})
	if err != nil {
		return nil, classifyBookingErr(err)
	}

	// Notify after commit; the confirmation does not depend on the broker.
	if s.publisher != nil {
		_ = s.publisher.Publish("booking.confirmed", result)
	}

	return result, nil
}

// classifyBookingErr folds transaction failures into the service error
// taxonomy: domain errors pass through untouched, everything else (driver
// errors, lock timeouts, commit failures) surfaces as ErrStorage.
func classifyBookingErr(err error) error {
	var insufficient *InsufficientTicketsError
	if errors.Is(err, ErrEventNotFound) || errors.As(err, &insufficient) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrStorage, err)
}

func (s *bookingService) GetEvent(ctx context.Context, eventID int64) (*models.Event, error) {
	if eventID <= 0 {
		return nil, fmt.Errorf("%w: event id must be a positive integer", ErrInvalidArgument)
	}
	event, err := s.eventRepo.FindByID(ctx, uint(eventID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return event, nil
}

func (s *bookingService) ListEvents(ctx context.Context) ([]models.Event, error) {
	events, err := s.eventRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return events, nil
}

func (s *bookingService) GetBooking(ctx context.Context, id uint) (*models.Booking, error) {
	booking, err := s.bookingRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return booking, nil
}

func (s *bookingService) ListBookings(ctx context.Context, eventID int64) ([]models.Booking, error) {
	if eventID <= 0 {
		return nil, fmt.Errorf("%w: event id must be a positive integer", ErrInvalidArgument)
	}
	bookings, err := s.bookingRepo.FindByEventID(ctx, uint(eventID))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return bookings, nil
}

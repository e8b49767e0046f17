package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/huy1480/CPSC3720-TigerTix-TeamTeam/internal/models"
	"github.com/huy1480/CPSC3720-TigerTix-TeamTeam/internal/repository"
	"github.com/huy1480/CPSC3720-TigerTix-TeamTeam/pkg/rabbitmq"
	"gorm.io/gorm"
)

const maxEventNameLen = 100

type EventService interface {
	CreateEvent(ctx context.Context, event *models.Event) error
	UpdateEvent(ctx context.Context, id int64, name, date string, tickets int) (*models.Event, error)
	DeleteEvent(ctx context.Context, id int64) error
	GetEvent(ctx context.Context, id int64) (*models.Event, error)
	ListEvents(ctx context.Context) ([]models.Event, error)
}

type eventService struct {
	repo      repository.EventRepository
	publisher *rabbitmq.Publisher
}

func NewEventService(repo repository.EventRepository, publisher *rabbitmq.Publisher) EventService {
	return &eventService{repo: repo, publisher: publisher}
}

func validateEventFields(name, date string, tickets int) error {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > maxEventNameLen {
		return fmt.Errorf("%w: name must be 1-%d characters", ErrInvalidArgument, maxEventNameLen)
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidArgument)
	}
	if tickets < 0 {
		return fmt.Errorf("%w: tickets must not be negative", ErrInvalidArgument)
	}
	return nil
}

func (s *eventService) CreateEvent(ctx context.Context, event *models.Event) error {
	if err := validateEventFields(event.Name, event.Date, event.Tickets); err != nil {
		return err
	}
	event.Name = strings.TrimSpace(event.Name)

	if err := s.repo.Create(ctx, event); err != nil {
		return fmt.Errorf("%w: create event: %v", ErrStorage, err)
	}

	if s.publisher != nil {
		_ = s.publisher.Publish("event.created", event)
	}
	return nil
}

func (s *eventService) UpdateEvent(ctx context.Context, id int64, name, date string, tickets int) (*models.Event, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: event id must be a positive integer", ErrInvalidArgument)
	}
	if err := validateEventFields(name, date, tickets); err != nil {
		return nil, err
	}

	event, err := s.repo.FindByID(ctx, uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	event.Name = strings.TrimSpace(name)
	event.Date = date
	event.Tickets = tickets
	if err := s.repo.Update(ctx, event); err != nil {
		return nil, fmt.Errorf("%w: update event: %v", ErrStorage, err)
	}

	if s.publisher != nil {
		_ = s.publisher.Publish("event.updated", event)
	}
	return event, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: event id must be a positive integer", ErrInvalidArgument)
	}
	if err := s.repo.Delete(ctx, uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		return fmt.Errorf("%w: delete event: %v", ErrStorage, err)
	}

	if s.publisher != nil {
		_ = s.publisher.Publish("event.deleted", map[string]int64{"id": id})
	}
	return nil
}

func (s *eventService) GetEvent(ctx context.Context, id int64) (*models.Event, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: event id must be a positive integer", ErrInvalidArgument)
	}
	event, err := s.repo.FindByID(ctx, uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return event, nil
}

func (s *eventService) ListEvents(ctx context.Context) ([]models.Event, error) {
	events, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return events, nil
}

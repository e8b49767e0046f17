package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/huy1480/CPSC3720-TigerTix-TeamTeam/internal/dto"
	"github.com/huy1480/CPSC3720-TigerTix-TeamTeam/internal/service"
	"github.com/labstack/echo/v4"
)

type BookingHandler struct {
	svc service.BookingService
}

func NewBookingHandler(svc service.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

func (h *BookingHandler) RegisterRoutes(e *echo.Echo) {
	events := e.Group("/api/v1/events")
	events.GET("", h.ListEvents)
	events.GET("/:id", h.GetEvent)
	events.POST("/:id/bookings", h.ConfirmBooking)
	events.GET("/:id/bookings", h.ListBookings)

	e.GET("/api/v1/bookings/:id", h.GetBooking)
}

func (h *BookingHandler) ConfirmBooking(c echo.Context) error {
	// Signed parse so negative ids reach the service's own validation.
	eventID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
	}

	var req dto.ConfirmBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	confirmation, err := h.svc.ConfirmBooking(c.Request().Context(), eventID, req.Quantity, req.CustomerName)
	if err != nil {
		return bookingErrToHTTP(c, err)
	}

	return c.JSON(http.StatusCreated, dto.ToConfirmationResponse(confirmation))
}

func bookingErrToHTTP(c echo.Context, err error) error {
	var insufficient *service.InsufficientTicketsError
	switch {
	case errors.As(err, &insufficient):
		available := insufficient.Available
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Message:   insufficient.Error(),
			Available: &available,
			EventName: insufficient.EventName,
		})
	case errors.Is(err, service.ErrInvalidArgument):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrEventNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

func (h *BookingHandler) GetEvent(c echo.Context) error {
	eventID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
	}

	event, err := h.svc.GetEvent(c.Request().Context(), eventID)
	if err != nil {
		return bookingErrToHTTP(c, err)
	}

	return c.JSON(http.StatusOK, dto.ToEventResponse(event))
}

func (h *BookingHandler) ListEvents(c echo.Context) error {
	events, err := h.svc.ListEvents(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := make([]dto.EventResponse, len(events))
	for i, e := range events {
		resp[i] = dto.ToEventResponse(&e)
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *BookingHandler) GetBooking(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid booking id")
	}

	booking, err := h.svc.GetBooking(c.Request().Context(), uint(id))
	if err != nil {
		if errors.Is(err, service.ErrBookingNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) ListBookings(c echo.Context) error {
	eventID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
	}

	bookings, err := h.svc.ListBookings(c.Request().Context(), eventID)
	if err != nil {
		return bookingErrToHTTP(c, err)
	}

	resp := make([]dto.BookingResponse, len(bookings))
	for i, b := range bookings {
		resp[i] = dto.ToBookingResponse(&b)
	}

	return c.JSON(http.StatusOK, resp)
}

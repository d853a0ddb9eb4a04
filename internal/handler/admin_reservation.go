package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/marianaluz/balloon-event-booking/internal/booking"
	"github.com/marianaluz/balloon-event-booking/internal/quote"
	"github.com/marianaluz/balloon-event-booking/internal/repository"
)

// AdminReservationHandler exposes the back-office reservation operations:
// listing, inspection, payment confirmation, cancellation, arrival check-in
// and agenda management.  All routes require the ADMIN role.
type AdminReservationHandler struct {
	Booking      *booking.Service
	Reservations *repository.ReservationRepo
	Agenda       *repository.AgendaRepo
}

func NewAdminReservationHandler(svc *booking.Service, reservations *repository.ReservationRepo, agenda *repository.AgendaRepo) *AdminReservationHandler {
	return &AdminReservationHandler{Booking: svc, Reservations: reservations, Agenda: agenda}
}

func reservationID(c echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid reservation id")
	}
	return id, nil
}

// ListReservations handles GET /v1/admin/reservations.  Optional query
// params: status, from, to (event-date range, YYYY-MM-DD).
func (h *AdminReservationHandler) ListReservations(c echo.Context) error {
	status := c.QueryParam("status")
	var from, to *time.Time
	if s := c.QueryParam("from"); s != "" {
		d, err := time.Parse(quote.DateLayout, s)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "from must be YYYY-MM-DD"})
		}
		from = &d
	}
	if s := c.QueryParam("to"); s != "" {
		d, err := time.Parse(quote.DateLayout, s)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "to must be YYYY-MM-DD"})
		}
		to = &d
	}

	list, err := h.Reservations.List(c.Request().Context(), status, from, to)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reservations"})
	}
	items := make([]reservationResp, 0, len(list))
	for _, r := range list {
		items = append(items, toReservationResp(r))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetReservation handles GET /v1/admin/reservations/:id.
func (h *AdminReservationHandler) GetReservation(c echo.Context) error {
	id, err := reservationID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	res, err := h.Booking.GetReservation(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reservation"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": toReservationResp(res)})
}

// ConfirmPayment handles POST /v1/admin/reservations/:id/confirm-payment.
// The transition also claims the daily agenda slot; a full or blocked date
// responds 409.
func (h *AdminReservationHandler) ConfirmPayment(c echo.Context) error {
	id, err := reservationID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	res, err := h.Booking.ConfirmPayment(c.Request().Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrReservationNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		case errors.Is(err, repository.ErrInvalidTransition):
			return c.JSON(http.StatusConflict, echo.Map{"error": "reservation is not awaiting payment"})
		case errors.Is(err, repository.ErrDateUnavailable):
			return c.JSON(http.StatusConflict, echo.Map{"error": "event date is blocked or full"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to confirm payment"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": toReservationResp(res)})
}

// Cancel handles POST /v1/admin/reservations/:id/cancel.
func (h *AdminReservationHandler) Cancel(c echo.Context) error {
	id, err := reservationID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if err := h.Booking.CancelReservation(c.Request().Context(), id); err != nil {
		switch {
		case errors.Is(err, repository.ErrReservationNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		case errors.Is(err, repository.ErrInvalidTransition):
			return c.JSON(http.StatusConflict, echo.Map{"error": "reservation is not awaiting payment"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to cancel reservation"})
	}
	return c.NoContent(http.StatusNoContent)
}

// RegisterArrival handles POST /v1/admin/reservations/:id/arrival.  Only
// CONFIRMED reservations take a check-in; repeating refreshes the timestamp.
func (h *AdminReservationHandler) RegisterArrival(c echo.Context) error {
	id, err := reservationID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if err := h.Booking.RegisterArrival(c.Request().Context(), id); err != nil {
		switch {
		case errors.Is(err, repository.ErrReservationNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		case errors.Is(err, repository.ErrInvalidTransition):
			return c.JSON(http.StatusConflict, echo.Map{"error": "reservation is not confirmed"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to register arrival"})
	}
	return c.NoContent(http.StatusNoContent)
}

// GetAgendaDay handles GET /v1/admin/agenda/:date.
func (h *AdminReservationHandler) GetAgendaDay(c echo.Context) error {
	date, err := time.Parse(quote.DateLayout, c.Param("date"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}
	day, err := h.Agenda.Get(c.Request().Context(), date)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load agenda"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"date":        date.Format(quote.DateLayout),
		"confirmed":   day.Confirmed,
		"daily_limit": day.DailyLimit,
		"blocked":     day.Blocked,
	})
}

type agendaPatch struct {
	Blocked    *bool `json:"blocked"`
	DailyLimit *int  `json:"daily_limit"`
}

// PatchAgendaDay handles PATCH /v1/admin/agenda/:date: manual blocks and
// per-date limit overrides.
func (h *AdminReservationHandler) PatchAgendaDay(c echo.Context) error {
	date, err := time.Parse(quote.DateLayout, c.Param("date"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}
	var p agendaPatch
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if p.Blocked == nil && p.DailyLimit == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "blocked or daily_limit required"})
	}
	ctx := c.Request().Context()
	if p.Blocked != nil {
		if err := h.Agenda.SetBlocked(ctx, date, *p.Blocked); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update agenda"})
		}
	}
	if p.DailyLimit != nil {
		if *p.DailyLimit < 1 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "daily_limit must be at least 1"})
		}
		if err := h.Agenda.SetDailyLimit(ctx, date, *p.DailyLimit); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update agenda"})
		}
	}
	day, err := h.Agenda.Get(ctx, date)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load agenda"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"date":        date.Format(quote.DateLayout),
		"confirmed":   day.Confirmed,
		"daily_limit": day.DailyLimit,
		"blocked":     day.Blocked,
	})
}

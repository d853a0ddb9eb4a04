package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/marianaluz/balloon-event-booking/internal/booking"
	"github.com/marianaluz/balloon-event-booking/internal/model"
	"github.com/marianaluz/balloon-event-booking/internal/quote"
	"github.com/marianaluz/balloon-event-booking/internal/repository"
)

// CheckoutHandler turns a completed quote draft into a reservation.  The
// draft is deleted only after the reservation is persisted; a failed
// checkout leaves it intact so the customer can fix and retry.
type CheckoutHandler struct {
	Quotes       *repository.QuoteStore
	Booking      *booking.Service
	Reservations *repository.ReservationRepo
}

func NewCheckoutHandler(quotes *repository.QuoteStore, svc *booking.Service, reservations *repository.ReservationRepo) *CheckoutHandler {
	return &CheckoutHandler{Quotes: quotes, Booking: svc, Reservations: reservations}
}

type checkoutReq struct {
	Name  string  `json:"name"`
	Phone string  `json:"phone"`
	Email *string `json:"email"`
}

// reservationResp is the wire shape for a reservation.
type reservationResp struct {
	ID            uint64  `json:"id"`
	Code          string  `json:"code"`
	CustomerName  string  `json:"customer_name"`
	Phone         string  `json:"phone"`
	Email         *string `json:"email,omitempty"`
	EventDate     string  `json:"event_date"`
	Location      string  `json:"location"`
	Theme         string  `json:"theme"`
	Category      string  `json:"category"`
	Plan          string  `json:"plan"`
	PlanCents     int64   `json:"plan_cents"`
	UpsellsCents  int64   `json:"upsells_cents"`
	ServicesCents int64   `json:"services_cents"`
	DiscountCents int64   `json:"discount_cents"`
	TotalCents    int64   `json:"total_cents"`
	PaymentMethod string  `json:"payment_method"`
	Status        string  `json:"status"`
	ArrivalAt     *string `json:"arrival_at,omitempty"`
	CreatedAt     string  `json:"created_at"`
	ExpiresAt     string  `json:"expires_at"`
}

func toReservationResp(r model.Reservation) reservationResp {
	resp := reservationResp{
		ID:            r.ID,
		Code:          r.Code,
		CustomerName:  r.CustomerName,
		Phone:         r.Phone,
		Email:         r.Email,
		EventDate:     r.EventDate.Format(quote.DateLayout),
		Location:      r.Location,
		Theme:         r.Theme,
		Category:      r.Category,
		Plan:          r.Plan,
		PlanCents:     r.PlanCents,
		UpsellsCents:  r.UpsellsCents,
		ServicesCents: r.ServicesCents,
		DiscountCents: r.DiscountCents,
		TotalCents:    r.TotalCents,
		PaymentMethod: r.PaymentMethod,
		Status:        r.Status,
		CreatedAt:     r.CreatedAt.Format(time.RFC3339),
		ExpiresAt:     r.ExpiresAt.Format(time.RFC3339),
	}
	if r.ArrivalAt != nil {
		s := r.ArrivalAt.Format(time.RFC3339)
		resp.ArrivalAt = &s
	}
	return resp
}

// Checkout handles POST /v1/quotes/:token/checkout.  It validates the draft,
// creates the reservation in AWAITING_PAYMENT and consumes the draft.
func (h *CheckoutHandler) Checkout(c echo.Context) error {
	if h.Quotes == nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "quoting unavailable"})
	}
	token := c.Param("token")
	ctx := c.Request().Context()

	q, err := h.Quotes.Get(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrQuoteNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "quote not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load quote"})
	}

	var req checkoutReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	cust := booking.CustomerInfo{
		Name:  strings.TrimSpace(req.Name),
		Phone: strings.TrimSpace(req.Phone),
		Email: req.Email,
	}
	if cust.Name == "" {
		cust.Name = q.CustomerName
	}

	res, err := h.Booking.CreateReservation(ctx, q, cust)
	if err != nil {
		switch {
		case booking.IsIncomplete(err):
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
		case errors.Is(err, quote.ErrInvalidField):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create reservation"})
	}

	// The draft did its job; a delete failure only delays Redis expiry.
	_ = h.Quotes.Delete(ctx, token)

	return c.JSON(http.StatusCreated, echo.Map{
		"reservation":     toReservationResp(res),
		"due_today_cents": q.AmountDueTodayCents(),
	})
}

// TrackReservation handles GET /v1/reservations/:code.  Customers hold only
// the human-readable code from checkout, so the public lookup goes by code
// rather than by id.
func (h *CheckoutHandler) TrackReservation(c echo.Context) error {
	code := strings.TrimSpace(c.Param("code"))
	if code == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "code is required"})
	}

	res, err := h.Reservations.GetByCode(c.Request().Context(), code)
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reservation"})
	}
	return c.JSON(http.StatusOK, echo.Map{"reservation": toReservationResp(res)})
}

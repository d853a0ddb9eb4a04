package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/marianaluz/balloon-event-booking/internal/catalog"
	"github.com/marianaluz/balloon-event-booking/internal/pricing"
	"github.com/marianaluz/balloon-event-booking/internal/quote"
	"github.com/marianaluz/balloon-event-booking/internal/repository"
)

// QuoteHandler drives the public quote quiz.  A draft lives in Redis behind
// an opaque token; every mutation loads the draft, applies one change
// through the aggregate's setters and saves the result, so the stored
// pricing always matches the stored selections.
type QuoteHandler struct {
	Catalog catalog.Catalog
	Store   *repository.QuoteStore
}

func NewQuoteHandler(cat catalog.Catalog, store *repository.QuoteStore) *QuoteHandler {
	return &QuoteHandler{Catalog: cat, Store: store}
}

// quoteResp is the draft plus derived fields the quiz UI renders.
type quoteResp struct {
	Token        string       `json:"token"`
	Quote        *quote.Quote `json:"quote"`
	DueToday     int64        `json:"due_today_cents"`
	ReadyToBook  bool         `json:"ready_to_book"`
	MissingField string       `json:"missing,omitempty"`
}

func (h *QuoteHandler) respond(c echo.Context, status int, token string, q *quote.Quote) error {
	resp := quoteResp{Token: token, Quote: q, DueToday: q.AmountDueTodayCents()}
	if err := q.Validate(); err != nil {
		resp.MissingField = strings.TrimPrefix(err.Error(), quote.ErrIncompleteQuote.Error()+": ")
	} else {
		resp.ReadyToBook = true
	}
	return c.JSON(status, resp)
}

// CreateQuote handles POST /v1/quotes.  It opens a fresh draft and returns
// its token.
func (h *QuoteHandler) CreateQuote(c echo.Context) error {
	if h.Store == nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "quoting unavailable"})
	}
	token, q, err := h.Store.Create(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create quote"})
	}
	return h.respond(c, http.StatusCreated, token, q)
}

// GetQuote handles GET /v1/quotes/:token.
func (h *QuoteHandler) GetQuote(c echo.Context) error {
	if h.Store == nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "quoting unavailable"})
	}
	token := c.Param("token")
	q, err := h.Store.Get(c.Request().Context(), token)
	if err != nil {
		if errors.Is(err, repository.ErrQuoteNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "quote not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load quote"})
	}
	return h.respond(c, http.StatusOK, token, q)
}

// quotePatch carries one quiz answer.  Exactly one field group is applied
// per request, mirroring one tap in the UI.
type quotePatch struct {
	CustomerName  *string `json:"customer_name"`
	EventType     *string `json:"event_type"`
	Theme         *string `json:"theme"`
	EventDate     *string `json:"event_date"`
	Location      *string `json:"location"`
	Plan          *string `json:"plan"`
	LEDUnits      *int    `json:"led_units"`
	ToggleUpsell  *string `json:"toggle_upsell"`
	ToggleService *string `json:"toggle_service"`
	PaymentSplit  *string `json:"payment_split"`
}

// PatchQuote handles PATCH /v1/quotes/:token.  Each present field is applied
// in order; the first failure aborts the request and nothing is saved, so a
// draft never persists a half-applied mutation.
func (h *QuoteHandler) PatchQuote(c echo.Context) error {
	if h.Store == nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "quoting unavailable"})
	}
	token := c.Param("token")
	ctx := c.Request().Context()

	q, err := h.Store.Get(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrQuoteNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "quote not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load quote"})
	}

	var p quotePatch
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := h.apply(q, p); err != nil {
		switch {
		case errors.Is(err, pricing.ErrUnknownPlan):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown plan"})
		case errors.Is(err, pricing.ErrInvalidQuantity):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "quantity must not be negative"})
		case errors.Is(err, quote.ErrInvalidField):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update quote"})
	}

	if err := h.Store.Save(ctx, token, q); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to save quote"})
	}
	return h.respond(c, http.StatusOK, token, q)
}

func (h *QuoteHandler) apply(q *quote.Quote, p quotePatch) error {
	if p.CustomerName != nil {
		q.SetCustomerName(*p.CustomerName)
	}
	if p.EventType != nil {
		q.SetEventType(*p.EventType)
	}
	if p.Theme != nil {
		if err := q.SetTheme(*p.Theme); err != nil {
			return err
		}
	}
	if p.EventDate != nil {
		if err := q.SetEventDate(*p.EventDate); err != nil {
			return err
		}
	}
	if p.Location != nil {
		if err := q.SetLocation(*p.Location); err != nil {
			return err
		}
	}
	if p.Plan != nil {
		if err := q.SelectPlan(h.Catalog, *p.Plan); err != nil {
			return err
		}
	}
	if p.LEDUnits != nil {
		if err := q.SetLEDUnits(h.Catalog, *p.LEDUnits); err != nil {
			return err
		}
	}
	if p.ToggleUpsell != nil {
		if err := q.ToggleUpsell(h.Catalog, *p.ToggleUpsell); err != nil {
			return err
		}
	}
	if p.ToggleService != nil {
		if err := q.ToggleService(h.Catalog, *p.ToggleService); err != nil {
			return err
		}
	}
	if p.PaymentSplit != nil {
		if err := q.SetPaymentSplit(quote.PaymentSplit(*p.PaymentSplit)); err != nil {
			return err
		}
	}
	return nil
}

// ResetQuote handles POST /v1/quotes/:token/reset.  The draft keeps its
// token but returns to all defaults.
func (h *QuoteHandler) ResetQuote(c echo.Context) error {
	if h.Store == nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "quoting unavailable"})
	}
	token := c.Param("token")
	ctx := c.Request().Context()

	q, err := h.Store.Get(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrQuoteNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "quote not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load quote"})
	}
	q.Reset()
	if err := h.Store.Save(ctx, token, q); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to save quote"})
	}
	return h.respond(c, http.StatusOK, token, q)
}

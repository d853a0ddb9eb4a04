package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/marianaluz/balloon-event-booking/internal/catalog"
	"github.com/marianaluz/balloon-event-booking/internal/quote"
	"github.com/marianaluz/balloon-event-booking/internal/repository"
)

// PublicHandler serves the unauthenticated browse endpoints: the price
// catalog the quiz renders and per-date availability.  Both sit behind the
// Redis response cache.
type PublicHandler struct {
	Catalog catalog.Catalog
	Agenda  *repository.AgendaRepo
}

func NewPublicHandler(cat catalog.Catalog, agenda *repository.AgendaRepo) *PublicHandler {
	return &PublicHandler{Catalog: cat, Agenda: agenda}
}

// GetCatalog handles GET /v1/catalog.  Prices are integer cents.
func (h *PublicHandler) GetCatalog(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"plans": h.Catalog.Plans,
		"upsells": echo.Map{
			"garland_cents":  h.Catalog.GarlandCents,
			"led_unit_cents": h.Catalog.LEDUnitCents,
			"table_cents":    h.Catalog.TableCents,
		},
		"services": echo.Map{
			"delivery_cents":     h.Catalog.DeliveryCents,
			"setup_cents":        h.Catalog.SetupCents,
			"pickup_cents":       h.Catalog.PickupCents,
			"full_bundle_cents":  h.Catalog.FullBundleCents,
			"self_service_cents": 0,
		},
	})
}

// GetAvailability handles GET /v1/availability/:date.  It reports whether a
// date can still take a confirmed event, without exposing who booked.
func (h *PublicHandler) GetAvailability(c echo.Context) error {
	date, err := time.Parse(quote.DateLayout, c.Param("date"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}
	day, err := h.Agenda.Get(c.Request().Context(), date)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load availability"})
	}
	available := !day.Blocked && day.Confirmed < day.DailyLimit
	return c.JSON(http.StatusOK, echo.Map{
		"date":      date.Format(quote.DateLayout),
		"available": available,
	})
}

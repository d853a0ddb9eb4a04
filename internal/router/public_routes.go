package router

import (
	"github.com/labstack/echo/v4"

	"github.com/marianaluz/balloon-event-booking/internal/handler"
)

// RegisterPublic registers the guest-facing booking flow: catalog and
// availability reads plus the quote quiz and checkout.  No JWT applies.
// The response cache wraps only the reads; quote mutations must never be
// cached.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, q *handler.QuoteHandler, ck *handler.CheckoutHandler, cache echo.MiddlewareFunc) {
	e.GET("/v1/catalog", p.GetCatalog, cache)
	e.GET("/v1/availability/:date", p.GetAvailability, cache)

	e.POST("/v1/quotes", q.CreateQuote)
	e.GET("/v1/quotes/:token", q.GetQuote)
	e.PATCH("/v1/quotes/:token", q.PatchQuote)
	e.POST("/v1/quotes/:token/reset", q.ResetQuote)
	e.POST("/v1/quotes/:token/checkout", ck.Checkout)
	e.GET("/v1/reservations/:code", ck.TrackReservation)
}

// RegisterCron registers the scheduler-facing sweep endpoint.  Guarded by
// the shared CRON_SECRET inside the handler, not by JWT middleware.
func RegisterCron(e *echo.Echo, cr *handler.CronHandler) {
	e.POST("/v1/cron/sweep-expired", cr.SweepExpired)
}

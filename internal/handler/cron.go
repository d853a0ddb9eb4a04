package handler

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/marianaluz/balloon-event-booking/internal/booking"
)

// CronHandler exposes the expiration sweep to an external scheduler.  The
// route is guarded by a shared bearer secret rather than a user JWT so a
// plain curl in a cron job can call it.
type CronHandler struct {
	Secret  string
	Booking *booking.Service
}

func NewCronHandler(secret string, svc *booking.Service) *CronHandler {
	return &CronHandler{Secret: secret, Booking: svc}
}

// SweepExpired handles POST /v1/cron/sweep-expired.  Safe to schedule at any
// frequency; a run that finds nothing overdue reports zero.
func (h *CronHandler) SweepExpired(c echo.Context) error {
	auth := c.Request().Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
	}
	token := strings.TrimPrefix(auth, "Bearer ")
	if subtle.ConstantTimeCompare([]byte(token), []byte(h.Secret)) != 1 {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
	}

	ids, err := h.Booking.SweepExpired(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "sweep failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"expired":     len(ids),
		"expired_ids": ids,
	})
}

package router

import (
	"github.com/labstack/echo/v4"

	"github.com/marianaluz/balloon-event-booking/internal/handler"
	"github.com/marianaluz/balloon-event-booking/internal/middleware"
	"github.com/marianaluz/balloon-event-booking/internal/model"
)

// RegisterAdmin registers back-office endpoints under /v1/admin.  All routes
// require a valid JWT carrying the ADMIN role.
func RegisterAdmin(e *echo.Echo, r *handler.AdminReservationHandler, f *handler.AdminFinanceHandler, jwtSecret string) {
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin),
	)

	g.GET("/reservations", r.ListReservations)
	g.GET("/reservations/:id", r.GetReservation)
	g.POST("/reservations/:id/confirm-payment", r.ConfirmPayment)
	// Operator tooling historically used a second verb for the same
	// AWAITING_PAYMENT -> CONFIRMED transition.
	g.POST("/reservations/:id/confirm", r.ConfirmPayment)
	g.POST("/reservations/:id/cancel", r.Cancel)
	g.POST("/reservations/:id/arrival", r.RegisterArrival)

	g.GET("/agenda/:date", r.GetAgendaDay)
	g.PATCH("/agenda/:date", r.PatchAgendaDay)

	g.POST("/finance/entries", f.CreateEntry)
	g.GET("/finance/summary", f.MonthlySummary)
	g.GET("/customers/:phone", f.GetCustomer)
}

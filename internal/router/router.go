package router // route registration for the booking API

import (
	"github.com/labstack/echo/v4"

	"github.com/marianaluz/balloon-event-booking/internal/handler"
	"github.com/marianaluz/balloon-event-booking/internal/middleware"
	"github.com/marianaluz/balloon-event-booking/internal/model"
)

// RegisterRoutes registers routes that do not require authentication.
// Currently only the health check lives here.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers authentication routes and the protected /v1/me
// endpoint.  Unauthenticated token operations live under /v1/auth.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole(model.RoleAdmin, model.RoleCustomer))
	auth.GET("/me", a.Me)
}

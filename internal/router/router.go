// Package router registers the application's HTTP routes on an Echo
// instance, split into public routes and session-protected routes.
package router

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/gastroflow/gastroflow/internal/config"
	"github.com/gastroflow/gastroflow/internal/handler"
	"github.com/gastroflow/gastroflow/internal/middleware"
)

// Handlers groups everything the router needs to wire.
type Handlers struct {
	Auth        *handler.AuthHandler
	Loyalty     *handler.LoyaltyHandler
	Reservation *handler.ReservationHandler
	Menu        *handler.MenuHandler
	Reviews     *handler.ReviewsHandler
}

// Register sets up middleware and all routes.  Public endpoints cover the
// menu, auth entry points, guest booking and the draft relay; everything
// identity-scoped sits behind the session middleware.
func Register(e *echo.Echo, cfg config.Config, rdb *redis.Client, h Handlers) {
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())
	e.Use(middleware.RateLimit(rdb, cfg.RateLimitRPM))
	e.Validator = handler.NewCustomValidator()

	e.GET("/healthz", handler.Health)

	v1 := e.Group("/v1")

	// Menu browsing, open to guests.
	v1.GET("/menu/products", h.Menu.Products)
	v1.GET("/menu/categories", h.Menu.Categories)
	v1.GET("/menu/allergens", h.Menu.Allergens)

	// Auth entry points.
	v1.POST("/auth/register", h.Auth.Register)
	v1.POST("/auth/login", h.Auth.Login)

	// Booking: creation works for guests too, so the session is optional
	// and only used to link ownership.  The draft relay bridges the
	// booking-then-login interruption, so it cannot require a session.
	v1.POST("/reservations", h.Reservation.Create, middleware.OptionalSession(cfg.JWTSecret))
	v1.GET("/reservations/slots", h.Reservation.Slots)
	v1.POST("/reservations/draft", h.Reservation.StageDraft)
	v1.POST("/reservations/draft/consume", h.Reservation.ConsumeDraft)

	// Review summary for the home page.
	v1.POST("/reviews/summary", h.Reviews.Summarize)

	// Session-scoped endpoints.
	auth := e.Group("/v1", middleware.SessionAuth(cfg.JWTSecret))
	auth.POST("/auth/logout", h.Auth.Logout)
	auth.GET("/me", h.Auth.Me)
	auth.PATCH("/profile", h.Auth.UpdateProfile)
	auth.POST("/visits", h.Loyalty.RegisterVisit)
	auth.GET("/visits", h.Loyalty.ListVisits)
	auth.GET("/benefits/active", h.Loyalty.ActiveBenefits)
	auth.GET("/benefits/used", h.Loyalty.UsedBenefits)
	auth.POST("/benefits/:id/redeem", h.Loyalty.Redeem)
	auth.GET("/reservations", h.Reservation.List)
	auth.POST("/reservations/:id/confirm", h.Reservation.Confirm)
	auth.POST("/reservations/:id/cancel", h.Reservation.Cancel)
}

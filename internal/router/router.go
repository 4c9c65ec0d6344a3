package router

// Route registration.  Public reads sit behind the response cache,
// everything sits behind the rate limiter, and the /v1 group requires
// a valid access token.  Role gates are applied per route group.

import (
	"github.com/labstack/echo/v4"

	"github.com/fbranqinho/sportify-studio-sub001/internal/handler"
	"github.com/fbranqinho/sportify-studio-sub001/internal/middleware"
	"github.com/fbranqinho/sportify-studio-sub001/internal/model"
)

// Handlers bundles every handler the router wires up.
type Handlers struct {
	Auth      *handler.AuthHandler
	Pitch     *handler.PitchHandler
	Schedule  *handler.ScheduleHandler
	Booking   *handler.BookingHandler
	Match     *handler.MatchHandler
	Team      *handler.TeamHandler
	Promotion *handler.PromotionHandler
}

// Middlewares bundles the cross-cutting middleware built in main.
type Middlewares struct {
	Cache       echo.MiddlewareFunc
	RateLimit   echo.MiddlewareFunc
	JWT         echo.MiddlewareFunc
	JWTOptional echo.MiddlewareFunc
}

// RegisterRoutes mounts the full API surface on e.
func RegisterRoutes(e *echo.Echo, h Handlers, mw Middlewares) {
	e.Use(mw.RateLimit)

	e.GET("/healthz", handler.Health)

	// Public catalogue and schedule, cached.  The schedule route also
	// serves authenticated callers: with a bearer token the grid is
	// resolved for the caller's role, and the cache skips the request.
	pub := e.Group("/v1", mw.Cache)
	pub.GET("/pitches", h.Pitch.List)
	pub.GET("/pitches/:id", h.Pitch.Get)
	pub.GET("/pitches/:id/schedule", h.Schedule.Day, mw.JWTOptional)

	// Authentication.
	auth := e.Group("/v1/auth")
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)
	auth.POST("/refresh", h.Auth.Refresh)
	auth.POST("/refresh-access", h.Auth.RefreshAccess)
	auth.POST("/logout", h.Auth.Logout)

	// Authenticated API.
	v1 := e.Group("/v1", mw.JWT)

	v1.GET("/me", h.Auth.Me)

	// Reservations.
	v1.POST("/pitches/:id/reservations", h.Booking.Book)
	v1.GET("/my-reservations", h.Booking.Mine)
	v1.GET("/reservations/:id", h.Booking.Get)
	v1.POST("/reservations/:id/pay", h.Booking.Pay)
	v1.PUT("/reservations/:id/cancel", h.Booking.Cancel)

	// Matches.
	v1.GET("/matches/:id", h.Match.Get)
	v1.POST("/reservations/:id/match", h.Match.Create,
		middleware.RequireRole(model.RoleManager))
	v1.POST("/matches/:id/challenge", h.Match.Challenge,
		middleware.RequireRole(model.RoleManager))
	v1.POST("/matches/:id/apply", h.Match.Apply,
		middleware.RequireRole(model.RolePlayer))
	v1.PUT("/matches/:id/start", h.Match.Start,
		middleware.RequireRole(model.RoleManager, model.RoleReferee))
	v1.PUT("/matches/:id/finish", h.Match.Finish,
		middleware.RequireRole(model.RoleManager, model.RoleReferee))

	// Teams.
	v1.GET("/my-teams", h.Team.Mine, middleware.RequireRole(model.RoleManager))
	teams := v1.Group("/teams", middleware.RequireRole(model.RoleManager))
	teams.POST("", h.Team.Create)
	teams.POST("/:id/players", h.Team.AddPlayer)

	// Pitch management.
	pitches := v1.Group("/pitches", middleware.RequireRole(model.RoleOwner, model.RoleAdmin))
	pitches.POST("", h.Pitch.Create)
	pitches.PUT("/:id", h.Pitch.Update)
	pitches.DELETE("/:id", h.Pitch.Delete)

	// Promotions.
	promos := v1.Group("/promotions",
		middleware.RequireRole(model.RolePromoter, model.RoleOwner, model.RoleAdmin))
	promos.POST("", h.Promotion.Create)
	promos.GET("", h.Promotion.List)
	promos.DELETE("/:id", h.Promotion.Delete)
}

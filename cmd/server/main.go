package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/fbranqinho/sportify-studio-sub001/internal/config"
	"github.com/fbranqinho/sportify-studio-sub001/internal/database"
	"github.com/fbranqinho/sportify-studio-sub001/internal/handler"
	"github.com/fbranqinho/sportify-studio-sub001/internal/middleware"
	"github.com/fbranqinho/sportify-studio-sub001/internal/queue"
	"github.com/fbranqinho/sportify-studio-sub001/internal/repository"
	"github.com/fbranqinho/sportify-studio-sub001/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	redisClient := config.NewRedisClient()
	if redisClient == nil {
		log.Println("redis unavailable, cache and rate limiting disabled")
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	pitches := repository.NewPitchRepo(db)
	reservations := repository.NewReservationRepo(db)
	matches := repository.NewMatchRepo(db)
	teams := repository.NewTeamRepo(db)
	promotions := repository.NewPromotionRepo(db)

	handlers := router.Handlers{
		Auth:      handler.NewAuthHandler(users, tokens, cfg),
		Pitch:     handler.NewPitchHandler(pitches),
		Schedule:  handler.NewScheduleHandler(pitches, reservations, matches, promotions),
		Booking:   handler.NewBookingHandler(pitches, reservations, promotions),
		Match:     handler.NewMatchHandler(reservations, matches, teams, pitches),
		Team:      handler.NewTeamHandler(teams),
		Promotion: handler.NewPromotionHandler(promotions),
	}
	middlewares := router.Middlewares{
		Cache:       middleware.NewRedisCache(redisClient, config.LoadCacheConfig()),
		RateLimit:   middleware.NewTokenBucket(redisClient, config.LoadRateLimitConfig(), cfg.JWTSecret),
		JWT:         middleware.JWTAuth(cfg.JWTSecret),
		JWTOptional: middleware.JWTOptional(cfg.JWTSecret),
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	router.RegisterRoutes(e, handlers, middlewares)

	go queue.StartPaidConsumer()

	log.Printf("listening on :%s (%s)", cfg.Port, cfg.Env)
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}

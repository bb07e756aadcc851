package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // .env loader for local development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/timeseller/timeseller-api/internal/config"
	"github.com/timeseller/timeseller-api/internal/database"
	"github.com/timeseller/timeseller-api/internal/handler"
	"github.com/timeseller/timeseller-api/internal/middleware"
	"github.com/timeseller/timeseller-api/internal/queue"
	"github.com/timeseller/timeseller-api/internal/repository"
	"github.com/timeseller/timeseller-api/internal/router"
)

func main() {
	_ = godotenv.Load() // best-effort; real deployments set env directly
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database open: %v", err)
	}
	if err := database.Migrate(db, cfg.DBName); err != nil {
		log.Fatalf("database migrate: %v", err)
	}

	users := repository.NewUserRepo(db)
	experiences := repository.NewExperienceRepo(db)
	reservations := repository.NewReservationRepo(db)
	reviews := repository.NewReviewRepo(db)
	applications := repository.NewSellerApplicationRepo(db)

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = router.HTTPErrorHandler()

	// Redis is optional: without it rate limiting and the public response
	// cache silently disable.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; rate limiting and response cache disabled")
	}
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	publicCache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users))
	router.RegisterExperience(e, handler.NewExperienceHandler(experiences, reviews), cfg.JWTSecret, users, publicCache)
	router.RegisterReservation(e, handler.NewReservationHandler(experiences, reservations), cfg.JWTSecret)
	router.RegisterReview(e, handler.NewReviewHandler(reservations, reviews), cfg.JWTSecret)
	router.RegisterSeller(e, handler.NewSellerHandler(applications))
	router.RegisterSellerPage(e, handler.NewSellerPageHandler(experiences, reservations, reviews), cfg.JWTSecret, users)

	// Confirmation notifications for seller applications are consumed in the
	// background; the loop reconnects on its own.
	go func() {
		if err := queue.StartSellerAppliedConsumer(); err != nil {
			log.Printf("seller-applied consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

package main // Entry point

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/marianaluz/balloon-event-booking/internal/booking"
	"github.com/marianaluz/balloon-event-booking/internal/catalog"
	"github.com/marianaluz/balloon-event-booking/internal/config"
	"github.com/marianaluz/balloon-event-booking/internal/database"
	"github.com/marianaluz/balloon-event-booking/internal/handler"
	"github.com/marianaluz/balloon-event-booking/internal/middleware"
	"github.com/marianaluz/balloon-event-booking/internal/queue"
	"github.com/marianaluz/balloon-event-booking/internal/repository"
	"github.com/marianaluz/balloon-event-booking/internal/router"
	queuepub "github.com/marianaluz/balloon-event-booking/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	cat := catalog.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Nil Redis degrades gracefully: limiter and cache pass through and the
	// quote flow reports unavailable.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; cache, rate limiting and quoting disabled")
	}

	// Repositories
	reservations := repository.NewReservationRepo(db, cfg.AgendaDailyLimit)
	customers := repository.NewCustomerRepo(db)
	finance := repository.NewFinanceRepo(db)
	agenda := repository.NewAgendaRepo(db, cfg.AgendaDailyLimit)
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)

	var quotes *repository.QuoteStore
	if rdb != nil {
		quotes = repository.NewQuoteStore(rdb, time.Duration(cfg.QuoteTTLHours)*time.Hour)
	}

	// Lifecycle service
	svc := booking.NewService(
		reservations, customers, finance,
		queuepub.PublishReservationConfirmed,
		time.Duration(cfg.PaymentGraceMin)*time.Minute,
	)

	// Background consumer writes confirmed reservations to logs/reservation.log.
	go func() {
		if err := queue.StartConfirmedConsumer(); err != nil {
			log.Printf("reservation consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users, tokens), cfg.JWTSecret)
	router.RegisterPublic(e,
		handler.NewPublicHandler(cat, agenda),
		handler.NewQuoteHandler(cat, quotes),
		handler.NewCheckoutHandler(quotes, svc, reservations),
		cacheMW,
	)
	router.RegisterAdmin(e,
		handler.NewAdminReservationHandler(svc, reservations, agenda),
		handler.NewAdminFinanceHandler(finance, customers),
		cfg.JWTSecret,
	)
	router.RegisterCron(e, handler.NewCronHandler(cfg.CronSecret, svc))

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

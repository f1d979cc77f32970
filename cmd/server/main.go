package main

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/gastroflow/gastroflow/internal/config"
	"github.com/gastroflow/gastroflow/internal/handler"
	"github.com/gastroflow/gastroflow/internal/logger"
	"github.com/gastroflow/gastroflow/internal/menu"
	"github.com/gastroflow/gastroflow/internal/model"
	"github.com/gastroflow/gastroflow/internal/queue"
	"github.com/gastroflow/gastroflow/internal/router"
	"github.com/gastroflow/gastroflow/internal/store"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Warn("redis unavailable, rate limiting and draft persistence disabled")
	}

	session := store.NewSession(cfg.AuthLatency, cfg.BcryptCost, rdb, log)

	// Domain events ride on hooks so a missing broker never affects the
	// request path.
	publisher := queue.NewPublisher(log)
	session.Reservations.OnConfirmed(func(r model.Reservation) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = publisher.PublishReservationConfirmed(ctx, queue.ReservationConfirmedEvent{
			ReservationID: r.ID,
			Date:          r.Date.Format("2006-01-02"),
			Time:          r.Time,
			People:        r.People,
			Preference:    string(r.Preference),
			Nombre:        r.Contact.Nombre,
			Email:         r.Contact.Email,
			ConfirmedAt:   time.Now().UTC().Format(time.RFC3339),
		})
	})
	session.Benefits.OnMinted(func(b model.Benefit) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = publisher.PublishBenefitMinted(ctx, queue.BenefitMintedEvent{
			BenefitID: b.ID,
			Name:      b.Name,
			MintedAt:  time.Now().UTC().Format(time.RFC3339),
		})
	})
	if cfg.EventsEnabled {
		go queue.StartEventsConsumer(log)
	}

	e := echo.New()
	e.HideBanner = true
	router.Register(e, cfg, rdb, router.Handlers{
		Auth:        handler.NewAuthHandler(cfg, session, log),
		Loyalty:     handler.NewLoyaltyHandler(session, log),
		Reservation: handler.NewReservationHandler(session, log),
		Menu:        handler.NewMenuHandler(menu.NewCatalog()),
		Reviews:     handler.NewReviewsHandler(cfg.SummaryURL, log),
	})

	addr := ":" + cfg.Port
	log.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env))
	if err := e.Start(addr); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

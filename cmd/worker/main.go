package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mesalibre/reserva-api/internal/config"
	dbpkg "github.com/mesalibre/reserva-api/internal/db"
	"github.com/mesalibre/reserva-api/internal/events"
	infraRepo "github.com/mesalibre/reserva-api/internal/infra/repository"
	"github.com/mesalibre/reserva-api/internal/metrics"
	"github.com/mesalibre/reserva-api/internal/notify"
	usecase "github.com/mesalibre/reserva-api/internal/usecase/booking"
	"github.com/mesalibre/reserva-api/internal/worker"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	metrics.Register()

	repo := infraRepo.NewBookingGormRepository(db)
	sender := notify.NewSMTPSender(cfg.SMTPAddr(), cfg.MailFrom)
	queue := events.NewRedisQueue(redisClient, cfg.EventQueue)

	reminder := worker.NewReminder(repo, sender, cfg.ReminderWindowHours)
	sweeper := worker.NewNoShowSweeper(
		usecase.NewMarkNoShows(repo, cfg.NoShowToleranceMin),
	)
	notifier := worker.NewNotifier(queue, repo, sender)

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	go notifier.Run(ctx)

	poll := time.Duration(cfg.WorkerPollSeconds) * time.Second
	ticker := time.NewTicker(poll)
	defer ticker.Stop()

	log.Info().Dur("poll", poll).Msg("worker running")

	runSweeps(ctx, reminder, sweeper)

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("worker shutting down")
			return
		case <-ticker.C:
			runSweeps(ctx, reminder, sweeper)
		}
	}
}

func runSweeps(ctx context.Context, reminder *worker.Reminder, sweeper *worker.NoShowSweeper) {
	if sent, err := reminder.Run(ctx); err != nil {
		log.Error().Err(err).Msg("reminder sweep failed")
	} else if sent > 0 {
		log.Info().Int("sent", sent).Msg("reminders sent")
	}

	if _, err := sweeper.Run(ctx); err != nil {
		log.Error().Err(err).Msg("no-show sweep failed")
	}
}

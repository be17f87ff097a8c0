package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/Kamal-Nayan-Kumar/expense-tracker/internal/config"
	"github.com/Kamal-Nayan-Kumar/expense-tracker/internal/database"
	"github.com/Kamal-Nayan-Kumar/expense-tracker/internal/extraction"
	"github.com/Kamal-Nayan-Kumar/expense-tracker/internal/handlers"
	"github.com/Kamal-Nayan-Kumar/expense-tracker/internal/telegram"
)

// requestTimeout bounds every outbound call so a stuck collaborator cannot
// stall the webhook handler past the transport's own retry policy.
const requestTimeout = 30 * time.Second

func main() {
	log := newLogger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		log = log.Level(level)
	}

	ctx := context.Background()

	db, err := database.New(ctx, cfg.MongoURI, cfg.MongoDB, cfg.MongoColl, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize MongoDB")
	}
	defer db.Close(ctx)

	tg, err := telegram.NewClient(cfg.TelegramToken, requestTimeout, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create Telegram client")
	}

	engine, err := extraction.NewEngine(ctx, cfg.GeminiAPIKey, cfg.GeminiModel,
		&http.Client{Timeout: requestTimeout}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create extraction engine")
	}

	handler := handlers.NewWebhookHandler(db, engine, tg, log)

	// Optional scheduled report push to a configured chat. The job chain
	// recovers panics so a faulty push cannot take the webhook server down;
	// the webhook path has the same containment in its HTTP adapter.
	if cfg.ReportCron != "" && cfg.ReportChatID != 0 {
		c := cron.New(cron.WithChain(cron.Recover(cron.PrintfLogger(&log))))
		_, err := c.AddFunc(cfg.ReportCron, func() {
			log.Info().Int64("chat_id", cfg.ReportChatID).Msg("pushing scheduled report")
			handler.Report(context.Background(), cfg.ReportChatID, cfg.ReportChatID, "month")
		})
		if err != nil {
			log.Fatal().Err(err).Str("spec", cfg.ReportCron).Msg("failed to add report cron job")
		}
		c.Start()
		defer c.Stop()
	}

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler.Router(),
		ReadTimeout:  requestTimeout,
		WriteTimeout: requestTimeout,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("webhook server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
}

func newLogger() zerolog.Logger {
	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	return zerolog.New(output).With().Timestamp().Logger()
}

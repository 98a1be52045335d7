package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/kankrittapon/calendar/internal/config"
	"github.com/kankrittapon/calendar/internal/database"
	"github.com/kankrittapon/calendar/internal/domain/service"
	"github.com/kankrittapon/calendar/internal/handlers"
	"github.com/kankrittapon/calendar/internal/logger"
	"github.com/kankrittapon/calendar/internal/scheduler"
	"github.com/kankrittapon/calendar/internal/socket"
	"github.com/kankrittapon/calendar/migrator/sqlite"
	"github.com/slack-go/slack"
	"github.com/slack-go/slack/socketmode"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logger.Debug(".env file not found")
	}

	cfg := config.Load()

	if err := logger.Init(logger.Config{Level: cfg.LogLevel, File: cfg.LogFile}); err != nil {
		logger.Fatal("failed to initialize logger", "error", err)
	}

	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		logger.Fatal("failed to initialize database", "error", err)
	}
	defer db.Close()

	logger.Info("running migrations")
	if err := sqlite.Migrate(db.DB()); err != nil {
		logger.Fatal("failed to run migrations", "error", err)
	}

	var slackOptions []slack.Option
	if cfg.SlackAppToken != "" {
		slackOptions = append(slackOptions, slack.OptionAppLevelToken(cfg.SlackAppToken))
	}
	slackClient := slack.New(cfg.SlackBotToken, slackOptions...)

	services := service.NewInstance(database.NewInstance(db), slackClient, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sched := scheduler.New(services.Digest, cfg.CronSpec, cfg.Location())
	if err := sched.Start(); err != nil {
		logger.Fatal("failed to start scheduler", "error", err)
	}
	defer sched.Stop()

	if cfg.SlackAppToken != "" {
		listener := socket.New(socketmode.New(slackClient), services.Chat)
		go func() {
			if err := listener.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("socket mode listener stopped", "error", err)
			}
		}()
	}

	router := handlers.NewRouter(
		handlers.NewSlackHandler(services.Chat, cfg.SlackSigningSecret),
		handlers.NewScheduleHandler(services.Schedule),
		handlers.NewAdminHandler(services.Admin, services.Digest),
		cfg.AdminToken,
	)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("failed to start server", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shut down server", "error", err)
	}
}

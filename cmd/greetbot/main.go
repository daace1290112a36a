// Package main contains the entrypoint for the greetbot Telegram bot.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tgbot "github.com/go-telegram/bot"

	"github.com/edgard/greetbot/internal/bot"
	"github.com/edgard/greetbot/internal/bot/handlers"
	"github.com/edgard/greetbot/internal/bot/tasks"
	"github.com/edgard/greetbot/internal/config"
	"github.com/edgard/greetbot/internal/gemini"
	"github.com/edgard/greetbot/internal/logger"
	"github.com/edgard/greetbot/internal/session"
	"github.com/edgard/greetbot/internal/telegram"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	exitCode := run(ctx, os.Args[1:])
	stop()
	os.Exit(exitCode)
}

// run wires all components and blocks until the bot stops. It returns 0 on
// a clean shutdown and 1 on any failure.
func run(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("greetbot", flag.ContinueOnError)
	configPath := fs.String("config", "config.yaml", "Path to optional configuration file")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	// Missing secrets are reported here, before any client exists.
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "path", *configPath, "error", err)
		return 1
	}

	log := logger.NewLogger(cfg.Logger.Level, cfg.Logger.JSON)
	log.Debug("Logger initialized", "level", cfg.Logger.Level, "json", cfg.Logger.JSON)

	gemClient, err := gemini.NewClient(ctx, cfg.Gemini, log)
	if err != nil {
		log.Error("Failed to initialize Gemini client", "error", err)
		return 1
	}

	sess := session.New(log)
	sess.OnConnect(func(self session.Identity) {
		log.Info("We have logged in", "as", self.String())
	})

	hDeps := handlers.HandlerDeps{
		Logger:  log,
		Config:  cfg,
		Session: sess,
	}

	tg, err := telegram.NewTelegramBot(cfg.Telegram.Token, log,
		tgbot.WithMiddlewares(logger.Middleware(log)),
		tgbot.WithDefaultHandler(handlers.NewDefaultHandler(hDeps)),
		telegram.WithPollTimeout(cfg.Telegram.PollTimeout),
	)
	if err != nil {
		log.Error("Failed to create Telegram bot", "error", err)
		return 1
	}

	if err := telegram.RegisterHandlers(tg, log, handlers.RegisterAllHandlers(hDeps)); err != nil {
		log.Error("Failed to register Telegram handlers", "error", err)
		return 1
	}

	tDeps := tasks.TaskDeps{
		Logger:   log,
		Session:  sess,
		Telegram: tg,
	}
	sched, err := bot.NewScheduler(log, &cfg.Scheduler, tasks.RegisterAllTasks(tDeps))
	if err != nil {
		log.Error("Failed to create scheduler", "error", err)
		return 1
	}

	app := bot.NewBot(log, cfg, sess, gemClient, tg, sched)

	log.Info("Starting bot...")
	runErr := app.Run(ctx)

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		log.Error("Bot stopped due to error", "error", runErr)
		return 1
	}

	log.Info("Bot stopped gracefully.")
	return 0
}

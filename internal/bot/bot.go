// Package bot implements the core bot functionality, lifecycle management,
// and component orchestration for greetbot.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/edgard/greetbot/internal/config"
	"github.com/edgard/greetbot/internal/gemini"
	"github.com/edgard/greetbot/internal/session"
)

// Listener is the chat platform client the bot connects and polls with.
// *bot.Bot from github.com/go-telegram/bot satisfies it.
type Listener interface {
	session.IdentityFetcher
	// Start blocks, dispatching updates to handlers, until ctx is done.
	Start(ctx context.Context)
}

// Bot represents the main bot application and manages its components' lifecycle.
type Bot struct {
	logger       *slog.Logger
	cfg          *config.Config
	session      *session.Session
	geminiClient gemini.Client
	listener     Listener
	scheduler    *Scheduler
}

// NewBot creates a new instance of the bot with all required dependencies.
func NewBot(
	logger *slog.Logger,
	cfg *config.Config,
	sess *session.Session,
	geminiClient gemini.Client,
	listener Listener,
	scheduler *Scheduler,
) *Bot {
	return &Bot{
		logger:       logger.With("component", "bot_orchestrator"),
		cfg:          cfg,
		session:      sess,
		geminiClient: geminiClient,
		listener:     listener,
		scheduler:    scheduler,
	}
}

// Run connects the session and then runs the listener and scheduler until
// the context is cancelled. A failed connect is returned without retry.
func (b *Bot) Run(ctx context.Context) error {
	b.logger.Info("Starting bot orchestrator...")

	if b.cfg.Gemini.VerifyOnStart {
		b.logger.Info("Verifying Gemini API access...")
		if err := b.geminiClient.Ping(ctx); err != nil {
			return fmt.Errorf("gemini verification failed: %w", err)
		}
	}

	if err := b.session.Connect(ctx, b.listener); err != nil {
		return fmt.Errorf("failed to connect to telegram: %w", err)
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		b.logger.Info("Starting Telegram bot listener...")

		b.listener.Start(gCtx)
		b.logger.Info("Telegram bot listener stopped.")

		if gCtx.Err() == nil {
			b.logger.Warn("Telegram bot listener stopped unexpectedly without context cancellation.")
			return fmt.Errorf("telegram listener stopped unexpectedly")
		}
		return nil
	})

	g.Go(func() error {
		b.logger.Info("Starting scheduler...")
		if err := b.scheduler.Start(); err != nil {
			b.logger.Error("Failed to start scheduler", "error", err)
			return fmt.Errorf("failed to start scheduler: %w", err)
		}

		<-gCtx.Done()
		b.logger.Info("Shutdown signal received, stopping scheduler...")

		if err := b.scheduler.Stop(); err != nil {
			b.logger.Error("Error stopping scheduler", "error", err)
		}

		return nil
	})

	b.logger.Info("Bot orchestrator running. Waiting for shutdown signal or error...")
	err := g.Wait()

	if err != nil && !errors.Is(err, context.Canceled) {
		b.logger.Error("Bot orchestrator stopped due to error", "error", err)
		return err
	}

	b.logger.Info("Bot orchestrator stopped gracefully.")
	return nil
}

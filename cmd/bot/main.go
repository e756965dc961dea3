package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/summarypro/summarybot/internal/api"
	"github.com/summarypro/summarybot/internal/config"
	"github.com/summarypro/summarybot/internal/database"
	"github.com/summarypro/summarybot/internal/llm"
	"github.com/summarypro/summarybot/internal/ratelimit"
	"github.com/summarypro/summarybot/internal/repository/sqlite"
	"github.com/summarypro/summarybot/internal/scheduler"
	"github.com/summarypro/summarybot/internal/summary"
	"github.com/summarypro/summarybot/internal/telegram"
	"github.com/summarypro/summarybot/internal/threads"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logger.SetLevel(logrus.InfoLevel)

	if err := run(logger); err != nil {
		logger.WithError(err).Fatal("Bot stopped")
	}
}

func run(logger *logrus.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg.Telegram.Token == "" {
		return errors.New("telegram bot token is not configured (set TG_TOKEN)")
	}

	db, err := database.NewConnection(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.RunMigrations(cfg.Database.Path); err != nil {
		return err
	}

	names, err := cfg.ThreadNames()
	if err != nil {
		return err
	}
	directory := threads.NewDirectory(names, cfg.Threads.General)

	messageRepo := sqlite.NewMessageRepository(db.DB, cfg.Summary.ThreadID)
	summaryLogRepo := sqlite.NewSummaryLogRepository(db.DB)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	model, err := llm.NewSummarizer(ctx, llm.ProviderOptions{
		Provider: cfg.LLM.Provider,
		APIKey:   cfg.LLM.APIKey,
		BaseURL:  cfg.LLM.BaseURL,
		Config:   llm.DefaultGenerationConfig(cfg.LLM.Model),
	}, logger)
	if err != nil {
		return err
	}
	recorded := llm.NewRecordingSummarizer(model, summaryLogRepo, logger)

	service := summary.NewService(messageRepo, recorded, directory, logger)

	gate := ratelimit.NewSlidingWindowLimiter(
		cfg.Summary.QueryLimit,
		time.Duration(cfg.Summary.QueryWindowSeconds)*time.Second,
	)

	client := telegram.NewClient(cfg.Telegram.APIBaseURL, cfg.Telegram.Token,
		time.Duration(cfg.Telegram.PollTimeout+10)*time.Second)

	bot := telegram.NewBot(client, messageRepo, service, gate, telegram.Options{
		SummaryChatID:   cfg.Summary.ChatID,
		SummaryThreadID: cfg.Summary.ThreadID,
		MaxMessageCount: cfg.Summary.MaxMessageCount,
		AllowedBots:     cfg.Telegram.AllowedBots,
		PollTimeout:     cfg.Telegram.PollTimeout,
	}, logger)

	sched, err := scheduler.New(service, client, scheduler.Options{
		Times:    cfg.Schedule.Times,
		Timezone: cfg.Schedule.Timezone,
		ChatID:   cfg.Summary.ChatID,
		ThreadID: cfg.Summary.ThreadID,
		Lookback: time.Duration(cfg.Summary.DefaultLookbackHours) * time.Hour,
	}, logger)
	if err != nil {
		return err
	}
	sched.Start()
	defer sched.Stop()

	if cfg.Server.Enabled {
		app := api.NewServer(summaryLogRepo, logger)
		go func() {
			addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
			logger.WithField("addr", addr).Info("Starting status server")
			if err := app.Listen(addr); err != nil {
				logger.WithError(err).Error("Status server stopped")
			}
		}()
		defer app.Shutdown()
	}

	logger.Info("Starting the bot and job scheduler")
	if err := bot.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	logger.Info("Shutting down")
	return nil
}

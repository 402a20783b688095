package container

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/senseilabs/sensei-bot/internal/audit"
	"github.com/senseilabs/sensei-bot/internal/config"
	"github.com/senseilabs/sensei-bot/internal/history"
	"github.com/senseilabs/sensei-bot/internal/pdf"
	"github.com/senseilabs/sensei-bot/internal/session"
	"github.com/senseilabs/sensei-bot/internal/telegram"
	"github.com/senseilabs/sensei-bot/internal/workflow"
)

type Container struct {
	Config          *config.Config
	Controller      *workflow.Controller
	Bot             *telegram.Bot
	TelegramHandler *telegram.Handler
}

func New() *Container {
	config.Init()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var sessions session.Repository
	var results history.Repository
	if cfg.DatabaseDriver == config.DriverMemory {
		logrus.Info("no database configured, sessions are kept in memory")
		sessions = session.NewMemoryRepository()
		results = history.NewMemoryRepository()
	} else {
		if err := config.Connect(ctx, cfg.DatabaseDriver, cfg.DatabaseDSN); err != nil {
			logrus.Fatalf("failed to connect to database: %v", err)
		}
		if err := session.AutoMigrate(config.DB); err != nil {
			logrus.Fatalf("failed to migrate sessions table: %v", err)
		}
		if err := history.AutoMigrate(config.DB); err != nil {
			logrus.Fatalf("failed to migrate quiz results table: %v", err)
		}
		sessions = session.NewRepository(config.DB)
		results = history.NewRepository(config.DB)
	}

	var provider audit.Provider
	switch cfg.AuditProvider {
	case config.ProviderOpenAI:
		provider = audit.NewOpenAIProvider(cfg.OpenAIAPIKey)
	default:
		provider, err = audit.NewGeminiProvider(ctx, cfg.GeminiAPIKey)
		if err != nil {
			logrus.Fatalf("failed to create audit provider: %v", err)
		}
	}

	controller := workflow.NewController(
		audit.NewService(provider, cfg.AuditTimeout),
		sessions,
		history.NewService(results),
		pdf.RenderQuizDocument,
	)

	bot, err := telegram.NewBot(cfg.TelegramToken, controller)
	if err != nil {
		logrus.Fatalf("failed to create Telegram bot: %v", err)
	}

	return &Container{
		Config:          cfg,
		Controller:      controller,
		Bot:             bot,
		TelegramHandler: telegram.NewHandler(bot),
	}
}

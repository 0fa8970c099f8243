package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/nfrund/userdesk/internal/app"
	"github.com/nfrund/userdesk/internal/auth"
	"github.com/nfrund/userdesk/internal/config"
	"github.com/nfrund/userdesk/internal/database"
	"github.com/nfrund/userdesk/internal/email"
	"github.com/nfrund/userdesk/internal/logging"
	"github.com/nfrund/userdesk/internal/pubsub"
	"github.com/nfrund/userdesk/internal/registry"
	"github.com/nfrund/userdesk/internal/rendering"
	"github.com/nfrund/userdesk/internal/server"
	"github.com/nfrund/userdesk/internal/users"
)

func main() {
	if err := run(context.Background()); err != nil {
		slog.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	logging.New()

	cfg, err := config.New()
	if err != nil {
		return err
	}

	db, err := database.NewDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close(context.Background())

	emailer, err := email.NewEmailService(cfg)
	if err != nil {
		return err
	}

	ps := pubsub.NewWatermillBridge()
	defer ps.Close()

	userStore := database.NewUserStore(db, cfg)
	svc := users.NewService(users.Dependencies{
		Repository: userStore,
		Mailer:     emailer,
		Publisher:  ps,
		BaseURL:    cfg.GetAppBaseURL(),
	})

	s, err := server.New(server.Dependencies{
		Config:   cfg,
		Users:    svc,
		Auth:     auth.NewManager(userStore),
		Renderer: rendering.NewUniversalRenderer(),
	})
	if err != nil {
		return err
	}

	reg := registry.New(cfg)
	modules := app.NewModules(app.Dependencies{
		Users:      svc,
		Subscriber: ps,
		Logger:     slog.Default(),
	})
	if err := s.InitModules(ctx, modules, reg); err != nil {
		return err
	}
	s.RegisterRoutes()

	return s.Start(ctx)
}

package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/nfrund/userdesk/internal/config"
	"github.com/nfrund/userdesk/internal/database"
	"github.com/nfrund/userdesk/internal/email"
	"github.com/nfrund/userdesk/internal/logging"
	"github.com/nfrund/userdesk/internal/users"
	"github.com/spf13/cobra"
)

// serviceOpener connects the users service. The returned func releases it.
type serviceOpener func(ctx context.Context) (*users.Service, func(), error)

// newRootCmd builds the command tree. open is called lazily by commands that
// need the database.
func newRootCmd(open serviceOpener) *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:   "userdesk-cli",
		Short: "userdesk administration tool",
		Long: `userdesk-cli manages user records from the terminal. It talks to the same
database as the server, configured through the environment or a .env file.

Use "userdesk-cli [command] --help" for more information about a specific command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Logs go to stderr so command output stays clean.
			handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: logging.ParseLevel(logLevel)})
			slog.SetDefault(slog.New(handler))
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "minimum log level (debug, info, warn, error)")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newUsersCmd(open))
	root.AddCommand(newEventsCmd())
	return root
}

// Execute executes the root command
func Execute() {
	if err := newRootCmd(openService).Execute(); err != nil {
		if !errors.Is(err, errActionFailed) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func openService(ctx context.Context) (*users.Service, func(), error) {
	cfg, err := config.New()
	if err != nil {
		return nil, nil, err
	}
	db, err := database.NewDB(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to database: %w", err)
	}
	closeDB := func() { _ = db.Close(context.Background()) }

	mailer, err := email.NewEmailService(cfg)
	if err != nil {
		closeDB()
		return nil, nil, err
	}
	svc := users.NewService(users.Dependencies{
		Repository: database.NewUserStore(db, cfg),
		Mailer:     mailer,
		BaseURL:    cfg.GetAppBaseURL(),
	})
	return svc, closeDB, nil
}

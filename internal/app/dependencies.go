package app

import (
	"log/slog"

	"github.com/nfrund/userdesk/internal/pubsub"
	"github.com/nfrund/userdesk/internal/users"
)

// Dependencies holds the core services that are required by the application's modules.
// This struct is passed from the main application entrypoint to wire up the modules.
type Dependencies struct {
	Users      *users.Service
	Subscriber pubsub.Subscriber
	Logger     *slog.Logger
}

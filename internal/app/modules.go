package app

import (
	"github.com/nfrund/userdesk/internal/module"
	"github.com/nfrund/userdesk/internal/modules/admin"
)

// NewModules creates and returns the list of all active modules for the application.
// This is the single source of truth for which features are enabled.
func NewModules(deps Dependencies) []module.Module {
	return []module.Module{
		// Add new application modules here.
		admin.New(admin.Dependencies{
			Service:    deps.Users,
			Subscriber: deps.Subscriber,
			Logger:     deps.Logger,
		}),
	}
}
